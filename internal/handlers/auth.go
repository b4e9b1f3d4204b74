package handlers

import (
	"errors"
	"net/http"

	"github.com/aadhidev/stockify/internal/auth"
	"github.com/aadhidev/stockify/internal/hash"
	"github.com/aadhidev/stockify/internal/logging"
	"github.com/aadhidev/stockify/internal/models"
	"github.com/aadhidev/stockify/internal/repo"
	"github.com/aadhidev/stockify/internal/service"
	"github.com/aadhidev/stockify/internal/transport"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type AuthHandler struct {
	Repo      *repo.GormRepo
	Audit     *service.AuditService
	Tokens    *auth.TokenService
	AdminCode string
}

func (h *AuthHandler) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		l.Warn("register_error", "status", 400, "reason", "missing fields")
		return echo.NewHTTPError(http.StatusBadRequest, "username, email and password are required")
	}

	exists, err := h.Repo.UserExists(ctx, req.Username, req.Email)
	if err != nil {
		l.Error("register_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	if exists {
		l.Warn("register_error", "status", 400, "reason", "user already exists")
		return echo.NewHTTPError(http.StatusBadRequest, "user already exists")
	}

	role := models.RoleUser
	if h.AdminCode != "" && req.AdminCode == h.AdminCode {
		role = models.RoleAdmin
	}

	hashed, err := hash.HashPassword(req.Password)
	if err != nil {
		l.Error("register_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	user := models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hashed,
		Role:         role,
	}
	if err := h.Repo.CreateUser(ctx, &user); err != nil {
		l.Error("register_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	h.Audit.Record(ctx, user.ID, models.ActionRegister, models.EntityAuth, nil,
		"user registered as "+string(role))

	access, refresh, err := h.Tokens.IssuePair(ctx, &user)
	if err != nil {
		l.Error("register_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	l.Info("register_success", "user_id", user.ID, "role", string(role))
	return c.JSON(http.StatusCreated, map[string]any{
		"user":  user,
		"token": transport.TokenResponse{AccessToken: access, RefreshToken: refresh},
	})
}

func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Email == "" || req.Password == "" {
		l.Warn("login_error", "status", 400, "reason", "missing fields")
		return echo.NewHTTPError(http.StatusBadRequest, "email and password are required")
	}

	user, err := h.Repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("login_error", "status", 401, "reason", "unknown email")
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
		}
		l.Error("login_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	if !hash.CheckPassword(user.PasswordHash, req.Password) {
		l.Warn("login_error", "status", 401, "reason", "password mismatch")
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}

	h.Audit.Record(ctx, user.ID, models.ActionLogin, models.EntityAuth, nil, "user logged in")

	access, refresh, err := h.Tokens.IssuePair(ctx, user)
	if err != nil {
		l.Error("login_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	l.Info("login_success", "user_id", user.ID)
	return c.JSON(http.StatusOK, map[string]any{
		"user":  user,
		"token": transport.TokenResponse{AccessToken: access, RefreshToken: refresh},
	})
}

func (h *AuthHandler) Refresh(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.refresh")

	var req transport.RefreshRequest
	if err := c.Bind(&req); err != nil || req.RefreshToken == "" {
		l.Warn("refresh_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	access, refresh, err := h.Tokens.Rotate(ctx, req.RefreshToken)
	if err != nil {
		l.Warn("refresh_error", "status", 401, "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid refresh token")
	}

	l.Info("refresh_success")
	return c.JSON(http.StatusOK, transport.TokenResponse{AccessToken: access, RefreshToken: refresh})
}
