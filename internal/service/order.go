package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/aadhidev/stockify/internal/models"
	"github.com/aadhidev/stockify/internal/repo"
	"github.com/aadhidev/stockify/internal/transport"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type orderEvent string

const (
	eventAccept  orderEvent = "accept"
	eventDeliver orderEvent = "deliver"
	eventReject  orderEvent = "reject"
)

type transitionKey struct {
	from  models.OrderStatus
	event orderEvent
}

// transitions is the whole status graph. An (status, event) pair not
// listed here is illegal, there is no fallthrough: delivered and
// cancelled have no outgoing edges.
var transitions = map[transitionKey]models.OrderStatus{
	{models.OrderStatusPending, eventAccept}:   models.OrderStatusAccepted,
	{models.OrderStatusAccepted, eventDeliver}: models.OrderStatusDelivered,
	{models.OrderStatusPending, eventReject}:   models.OrderStatusCancelled,
}

type OrderService struct {
	Repo  *repo.GormRepo
	Audit *AuditService
}

func (s *OrderService) Place(ctx context.Context, req transport.PlaceOrderRequest, userID uuid.UUID) (*models.Order, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: items required", ErrInvalidArgument)
	}

	var items []models.OrderItem
	for i := range req.Items {
		itemID, err := uuid.Parse(req.Items[i].ItemID)
		if err != nil {
			return nil, fmt.Errorf("%w: item_id %q is not a valid id", ErrInvalidArgument, req.Items[i].ItemID)
		}
		if req.Items[i].Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity must be > 0", ErrInvalidArgument)
		}
		if _, err := s.Repo.GetItem(ctx, itemID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: item %s", ErrNotFound, itemID)
			}
			return nil, err
		}

		items = append(items, models.OrderItem{
			ItemID:       itemID,
			Quantity:     req.Items[i].Quantity,
			Requirements: req.Items[i].Requirements,
			Position:     i,
		})
	}

	order := &models.Order{
		UserID:        userID,
		Status:        models.OrderStatusPending,
		PaymentStatus: models.PaymentStatusPending,
		Items:         items,
	}
	if err := s.Repo.CreateOrder(ctx, order); err != nil {
		return nil, err
	}

	s.Audit.Record(ctx, userID, models.ActionCreate, models.EntityOrder, &order.ID,
		fmt.Sprintf("placed order with %d lines", len(items)))
	return order, nil
}

// Pay flips the payment flag for the caller's own order. Paying twice is
// a no-op that reports success without a second audit entry; paying a
// cancelled order is refused.
func (s *OrderService) Pay(ctx context.Context, orderID, userID uuid.UUID) (*models.Order, error) {
	order, err := s.Repo.GetUserOrder(ctx, orderID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %s", ErrNotFound, orderID)
		}
		return nil, err
	}

	if order.Status == models.OrderStatusCancelled {
		return nil, fmt.Errorf("%w: cannot pay a cancelled order", ErrInvalidTransition)
	}
	if order.PaymentStatus == models.PaymentStatusPaid {
		return order, nil
	}

	if err := s.Repo.SetPaymentStatus(ctx, order, models.PaymentStatusPaid); err != nil {
		if errors.Is(err, repo.ErrStaleVersion) {
			return nil, fmt.Errorf("%w: order %s was updated concurrently", ErrConflict, orderID)
		}
		return nil, err
	}
	order.PaymentStatus = models.PaymentStatusPaid

	s.Audit.Record(ctx, userID, models.ActionUpdate, models.EntityOrder, &order.ID, "order payment received")
	return order, nil
}

func (s *OrderService) Accept(ctx context.Context, orderID uuid.UUID, actor Actor) (*models.Order, error) {
	return s.transition(ctx, orderID, eventAccept, actor)
}

func (s *OrderService) Deliver(ctx context.Context, orderID uuid.UUID, actor Actor) (*models.Order, error) {
	return s.transition(ctx, orderID, eventDeliver, actor)
}

func (s *OrderService) Reject(ctx context.Context, orderID uuid.UUID, actor Actor) (*models.Order, error) {
	return s.transition(ctx, orderID, eventReject, actor)
}

func (s *OrderService) transition(ctx context.Context, orderID uuid.UUID, event orderEvent, actor Actor) (*models.Order, error) {
	if !actor.Role.Admin() {
		return nil, ErrForbidden
	}

	order, err := s.Repo.GetOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %s", ErrNotFound, orderID)
		}
		return nil, err
	}

	next, ok := transitions[transitionKey{from: order.Status, event: event}]
	if !ok {
		return nil, fmt.Errorf("%w: cannot %s an order in status %q", ErrInvalidTransition, event, order.Status)
	}

	if event == eventAccept {
		err = s.Repo.AcceptOrder(ctx, order)
	} else {
		err = s.Repo.SetStatus(ctx, order, next)
	}
	if err != nil {
		if errors.Is(err, repo.ErrStockExhausted) {
			return nil, fmt.Errorf("%w: order %s asks for more than is in stock", ErrInsufficientStock, orderID)
		}
		if errors.Is(err, repo.ErrStaleVersion) {
			return nil, fmt.Errorf("%w: order %s was updated concurrently", ErrConflict, orderID)
		}
		return nil, err
	}
	order.Status = next

	s.Audit.Record(ctx, actor.ID, models.ActionUpdate, models.EntityOrder, &order.ID, "order "+string(next))
	return order, nil
}

func (s *OrderService) ListMine(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	orders, err := s.Repo.ListOrders(ctx, &userID)
	if err != nil {
		return nil, err
	}
	s.Audit.Record(ctx, userID, models.ActionView, models.EntityOrder, nil, "viewed own orders")
	return orders, nil
}

func (s *OrderService) ListAll(ctx context.Context, actor Actor) ([]models.Order, error) {
	if !actor.Role.Admin() {
		return nil, ErrForbidden
	}
	orders, err := s.Repo.ListOrders(ctx, nil)
	if err != nil {
		return nil, err
	}
	s.Audit.Record(ctx, actor.ID, models.ActionView, models.EntityOrder, nil, "viewed all orders")
	return orders, nil
}
