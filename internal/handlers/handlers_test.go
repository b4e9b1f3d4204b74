package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/aadhidev/stockify/internal/auth"
	"github.com/aadhidev/stockify/internal/models"
	"github.com/aadhidev/stockify/internal/repo"
	"github.com/aadhidev/stockify/internal/service"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func initTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to connect to in-memory db")

	err = db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.InventoryItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.ActivityLog{},
	)
	require.NoError(t, err, "failed to migrate tables")
	return db
}

type env struct {
	db        *gorm.DB
	repo      *repo.GormRepo
	audit     *service.AuditService
	tokens    *auth.TokenService
	inventory *InventoryHandler
	orders    *OrderHandler
	activity  *ActivityHandler
	users     *UserHandler
	authHdl   *AuthHandler
	admin     service.Actor
	user      service.Actor
}

func newEnv(t *testing.T) *env {
	t.Helper()

	db := initTestDB(t)
	r := &repo.GormRepo{DB: db}
	audit := &service.AuditService{Repo: r}
	tokens := &auth.TokenService{
		DB:            db,
		JWTSecret:     []byte("access-secret"),
		RefreshSecret: []byte("refresh-secret"),
	}

	return &env{
		db:        db,
		repo:      r,
		audit:     audit,
		tokens:    tokens,
		inventory: &InventoryHandler{Svc: &service.InventoryService{Repo: r, Audit: audit}},
		orders:    &OrderHandler{Svc: &service.OrderService{Repo: r, Audit: audit}},
		activity:  &ActivityHandler{Svc: audit},
		users:     &UserHandler{Svc: &service.UserService{Repo: r, Audit: audit}},
		authHdl:   &AuthHandler{Repo: r, Audit: audit, Tokens: tokens, AdminCode: "stockroom"},
		admin:     service.Actor{ID: uuid.New(), Role: models.RoleAdmin},
		user:      service.Actor{ID: uuid.New(), Role: models.RoleUser},
	}
}

// request builds an echo context the way the auth middleware leaves it:
// actor identity already resolved onto the context.
func request(t *testing.T, method, target string, body any, actor *service.Actor) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	e := echo.New()
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if actor != nil {
		c.Set("userID", actor.ID)
		c.Set("role", actor.Role)
	}
	return c, rec
}

func requireHTTPError(t *testing.T, err error, code int) {
	t.Helper()

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError, got %v", err)
	require.Equal(t, code, he.Code)
}
