package service

import (
	"testing"

	"github.com/aadhidev/stockify/internal/models"
	"github.com/aadhidev/stockify/internal/repo"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
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

type fixture struct {
	db        *gorm.DB
	repo      *repo.GormRepo
	audit     *AuditService
	inventory *InventoryService
	orders    *OrderService
	users     *UserService
	admin     Actor
	user      Actor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := initTestDB(t)
	r := &repo.GormRepo{DB: db}
	audit := &AuditService{Repo: r}

	return &fixture{
		db:        db,
		repo:      r,
		audit:     audit,
		inventory: &InventoryService{Repo: r, Audit: audit},
		orders:    &OrderService{Repo: r, Audit: audit},
		users:     &UserService{Repo: r, Audit: audit},
		admin:     Actor{ID: uuid.New(), Role: models.RoleAdmin},
		user:      Actor{ID: uuid.New(), Role: models.RoleUser},
	}
}

func (f *fixture) auditCount(t *testing.T, action models.Action, entity models.Entity) int64 {
	t.Helper()

	var count int64
	err := f.db.Model(&models.ActivityLog{}).
		Where("action = ? AND entity = ?", action, entity).
		Count(&count).Error
	require.NoError(t, err)
	return count
}
