package handlers

import (
	"net/http"
	"strconv"

	"github.com/aadhidev/stockify/internal/auth"
	"github.com/aadhidev/stockify/internal/logging"
	"github.com/aadhidev/stockify/internal/repo"
	"github.com/aadhidev/stockify/internal/service"
	"github.com/aadhidev/stockify/internal/transport"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type InventoryHandler struct {
	Svc *service.InventoryService
}

func (h *InventoryHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "inventory.list")

	actor, err := auth.ActorFrom(c)
	if err != nil {
		return err
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("page_size"))
	f := repo.ItemFilter{
		Category: c.QueryParam("category"),
		Search:   c.QueryParam("search"),
		Page:     page,
		PageSize: size,
	}
	items, err := h.Svc.List(ctx, f, actor)
	if err != nil {
		he := httpError(err)
		l.Error("list_items_error", "status", he.Code, "error", err)
		return he
	}

	l.Info("list_items_success", "count", len(items))
	return c.JSON(http.StatusOK, items)
}

func (h *InventoryHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "inventory.get")

	actor, err := auth.ActorFrom(c)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("get_item_error", "status", 400, "reason", "invalid item id", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid item id")
	}

	item, err := h.Svc.Get(ctx, id, actor)
	if err != nil {
		he := httpError(err)
		l.Warn("get_item_error", "status", he.Code, "error", err)
		return he
	}

	return c.JSON(http.StatusOK, item)
}

func (h *InventoryHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "inventory.create")

	actor, err := auth.ActorFrom(c)
	if err != nil {
		return err
	}

	var req transport.ItemRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_item_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	item, err := h.Svc.Create(ctx, req, actor)
	if err != nil {
		he := httpError(err)
		l.Warn("create_item_error", "status", he.Code, "error", err)
		return he
	}

	l.Info("create_item_success", "item_id", item.ID)
	return c.JSON(http.StatusCreated, item)
}

func (h *InventoryHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "inventory.update")

	actor, err := auth.ActorFrom(c)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("update_item_error", "status", 400, "reason", "invalid item id", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid item id")
	}

	var req transport.ItemRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_item_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	item, err := h.Svc.Update(ctx, id, req, actor)
	if err != nil {
		he := httpError(err)
		l.Warn("update_item_error", "status", he.Code, "error", err)
		return he
	}

	l.Info("update_item_success", "item_id", item.ID)
	return c.JSON(http.StatusOK, item)
}

func (h *InventoryHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "inventory.delete")

	actor, err := auth.ActorFrom(c)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("delete_item_error", "status", 400, "reason", "invalid item id", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid item id")
	}

	if err := h.Svc.Delete(ctx, id, actor); err != nil {
		he := httpError(err)
		l.Warn("delete_item_error", "status", he.Code, "error", err)
		return he
	}

	l.Info("delete_item_success", "item_id", id)
	return c.NoContent(http.StatusNoContent)
}
