package auth

import (
	"net/http"
	"strings"

	"github.com/aadhidev/stockify/internal/models"
	"github.com/aadhidev/stockify/internal/service"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// RequireLogin resolves the bearer token and stores the acting user on
// the request context. Handlers behind it can rely on ActorFrom.
func (t *TokenService) RequireLogin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, role, err := t.actorFromRequest(c)
		if err != nil {
			return err
		}
		c.Set("userID", userID)
		c.Set("role", role)
		return next(c)
	}
}

// AdminOnly additionally requires the admin tier. A rejected caller
// reaches no handler and leaves no audit entry.
func (t *TokenService) AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, role, err := t.actorFromRequest(c)
		if err != nil {
			return err
		}
		if !role.Admin() {
			return echo.NewHTTPError(http.StatusForbidden, "not enough rights")
		}
		c.Set("userID", userID)
		c.Set("role", role)
		return next(c)
	}
}

func (t *TokenService) actorFromRequest(c echo.Context) (uuid.UUID, models.Role, error) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return uuid.Nil, "", echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
	}
	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || raw == "" {
		return uuid.Nil, "", echo.NewHTTPError(http.StatusUnauthorized, "malformed authorization header")
	}

	userID, role, err := t.ParseAccess(raw)
	if err != nil {
		return uuid.Nil, "", echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	return userID, role, nil
}

// ActorFrom reads the identity the middleware stored on the context.
func ActorFrom(c echo.Context) (service.Actor, error) {
	userID, ok1 := c.Get("userID").(uuid.UUID)
	role, ok2 := c.Get("role").(models.Role)
	if !ok1 || !ok2 {
		return service.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	return service.Actor{ID: userID, Role: role}, nil
}
