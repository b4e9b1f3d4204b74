package handlers

import (
	"net/http"

	"github.com/aadhidev/stockify/internal/auth"
	"github.com/aadhidev/stockify/internal/logging"
	"github.com/aadhidev/stockify/internal/service"
	"github.com/aadhidev/stockify/internal/transport"
	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	Svc *service.UserService
}

func (h *UserHandler) Profile(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.profile")

	actor, err := auth.ActorFrom(c)
	if err != nil {
		return err
	}

	user, err := h.Svc.Profile(ctx, actor.ID)
	if err != nil {
		he := httpError(err)
		l.Warn("profile_error", "status", he.Code, "error", err)
		return he
	}

	return c.JSON(http.StatusOK, user)
}

func (h *UserHandler) UpdateProfile(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.update_profile")

	actor, err := auth.ActorFrom(c)
	if err != nil {
		return err
	}

	var req transport.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_profile_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, err := h.Svc.UpdateProfile(ctx, req, actor)
	if err != nil {
		he := httpError(err)
		l.Warn("update_profile_error", "status", he.Code, "error", err)
		return he
	}

	l.Info("update_profile_success", "user_id", user.ID)
	return c.JSON(http.StatusOK, user)
}

func (h *UserHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.list")

	actor, err := auth.ActorFrom(c)
	if err != nil {
		return err
	}

	users, err := h.Svc.List(ctx, actor)
	if err != nil {
		he := httpError(err)
		l.Warn("list_users_error", "status", he.Code, "error", err)
		return he
	}

	return c.JSON(http.StatusOK, users)
}
