package handlers

import (
	"context"
	"net/http"

	"github.com/aadhidev/stockify/internal/auth"
	"github.com/aadhidev/stockify/internal/logging"
	"github.com/aadhidev/stockify/internal/models"
	"github.com/aadhidev/stockify/internal/service"
	"github.com/aadhidev/stockify/internal/transport"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	Svc *service.OrderService
}

func (h *OrderHandler) Place(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.place")

	actor, err := auth.ActorFrom(c)
	if err != nil {
		return err
	}

	var req transport.PlaceOrderRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("place_order_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Svc.Place(ctx, req, actor.ID)
	if err != nil {
		he := httpError(err)
		l.Warn("place_order_error", "status", he.Code, "error", err)
		return he
	}

	l.Info("place_order_success", "order_id", order.ID)
	return c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) Pay(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.pay")

	actor, err := auth.ActorFrom(c)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("pay_order_error", "status", 400, "reason", "invalid order id", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	order, err := h.Svc.Pay(ctx, id, actor.ID)
	if err != nil {
		he := httpError(err)
		l.Warn("pay_order_error", "status", he.Code, "error", err)
		return he
	}

	l.Info("pay_order_success", "order_id", order.ID)
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) Accept(c echo.Context) error {
	return h.transition(c, "accept", h.Svc.Accept)
}

func (h *OrderHandler) Deliver(c echo.Context) error {
	return h.transition(c, "deliver", h.Svc.Deliver)
}

func (h *OrderHandler) Reject(c echo.Context) error {
	return h.transition(c, "reject", h.Svc.Reject)
}

func (h *OrderHandler) transition(c echo.Context, name string, apply func(ctx context.Context, id uuid.UUID, actor service.Actor) (*models.Order, error)) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order."+name)

	actor, err := auth.ActorFrom(c)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn(name+"_order_error", "status", 400, "reason", "invalid order id", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	order, err := apply(ctx, id, actor)
	if err != nil {
		he := httpError(err)
		l.Warn(name+"_order_error", "status", he.Code, "error", err)
		return he
	}

	l.Info(name+"_order_success", "order_id", order.ID, "order_status", order.Status)
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) ListMine(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.list_mine")

	actor, err := auth.ActorFrom(c)
	if err != nil {
		return err
	}

	orders, err := h.Svc.ListMine(ctx, actor.ID)
	if err != nil {
		he := httpError(err)
		l.Error("list_orders_error", "status", he.Code, "error", err)
		return he
	}

	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) ListAll(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.list_all")

	actor, err := auth.ActorFrom(c)
	if err != nil {
		return err
	}

	orders, err := h.Svc.ListAll(ctx, actor)
	if err != nil {
		he := httpError(err)
		l.Error("list_orders_error", "status", he.Code, "error", err)
		return he
	}

	return c.JSON(http.StatusOK, orders)
}
