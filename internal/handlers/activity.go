package handlers

import (
	"net/http"
	"time"

	"github.com/aadhidev/stockify/internal/auth"
	"github.com/aadhidev/stockify/internal/logging"
	"github.com/aadhidev/stockify/internal/models"
	"github.com/aadhidev/stockify/internal/repo"
	"github.com/aadhidev/stockify/internal/service"
	"github.com/labstack/echo/v4"
)

type ActivityHandler struct {
	Svc *service.AuditService
}

func (h *ActivityHandler) Query(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "activity.query")

	actor, err := auth.ActorFrom(c)
	if err != nil {
		return err
	}

	f := repo.ActivityFilter{
		Action: models.Action(c.QueryParam("action")),
		Entity: models.Entity(c.QueryParam("entity")),
	}
	if start, end := c.QueryParam("start_date"), c.QueryParam("end_date"); start != "" && end != "" {
		from, err := time.Parse(time.RFC3339, start)
		if err != nil {
			l.Warn("query_activity_error", "status", 400, "reason", "invalid start_date", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "invalid start_date")
		}
		to, err := time.Parse(time.RFC3339, end)
		if err != nil {
			l.Warn("query_activity_error", "status", 400, "reason", "invalid end_date", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "invalid end_date")
		}
		f.From, f.To = from, to
	}

	entries, err := h.Svc.Query(ctx, f, actor)
	if err != nil {
		he := httpError(err)
		l.Warn("query_activity_error", "status", he.Code, "error", err)
		return he
	}

	return c.JSON(http.StatusOK, entries)
}

func (h *ActivityHandler) MyHistory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "activity.my_history")

	actor, err := auth.ActorFrom(c)
	if err != nil {
		return err
	}

	entries, err := h.Svc.UserHistory(ctx, actor.ID)
	if err != nil {
		he := httpError(err)
		l.Error("user_activity_error", "status", he.Code, "error", err)
		return he
	}

	return c.JSON(http.StatusOK, entries)
}
