package repo

import (
	"context"

	"github.com/aadhidev/stockify/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func (r *GormRepo) CreateOrder(ctx context.Context, order *models.Order) error {
	return r.DB.WithContext(ctx).Create(order).Error
}

func (r *GormRepo) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order := models.Order{}
	if err := r.withLines(ctx).Where("id = ?", id).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// GetUserOrder scopes the lookup by owner, a foreign order id reads as
// absent rather than as someone else's order.
func (r *GormRepo) GetUserOrder(ctx context.Context, id, userID uuid.UUID) (*models.Order, error) {
	order := models.Order{}
	if err := r.withLines(ctx).Where("id = ? AND user_id = ?", id, userID).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormRepo) ListOrders(ctx context.Context, userID *uuid.UUID) ([]models.Order, error) {
	q := r.withLines(ctx)
	if userID != nil {
		q = q.Where("user_id = ?", *userID)
	}

	var orders []models.Order
	if err := q.Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// SetStatus applies a status change guarded by the order version.
func (r *GormRepo) SetStatus(ctx context.Context, order *models.Order, status models.OrderStatus) error {
	return r.casOrder(ctx, r.DB, order, map[string]any{"status": status})
}

func (r *GormRepo) SetPaymentStatus(ctx context.Context, order *models.Order, status models.PaymentStatus) error {
	return r.casOrder(ctx, r.DB, order, map[string]any{"payment_status": status})
}

// AcceptOrder moves the order to the accepted status and decrements
// catalog stock for every line in one transaction. Each decrement is
// conditional on the remaining quantity, so stock can never go negative;
// any shortfall rolls the whole transition back.
func (r *GormRepo) AcceptOrder(ctx context.Context, order *models.Order) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range order.Items {
			res := tx.Model(&models.InventoryItem{}).
				Where("id = ? AND quantity >= ?", order.Items[i].ItemID, order.Items[i].Quantity).
				Updates(map[string]any{
					"quantity": gorm.Expr("quantity - ?", order.Items[i].Quantity),
					"version":  gorm.Expr("version + 1"),
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ErrStockExhausted
			}
		}
		return r.casOrder(ctx, tx, order, map[string]any{"status": models.OrderStatusAccepted})
	})
}

func (r *GormRepo) casOrder(ctx context.Context, db *gorm.DB, order *models.Order, fields map[string]any) error {
	fields["version"] = order.Version + 1
	res := db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ? AND version = ?", order.ID, order.Version).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStaleVersion
	}
	order.Version++
	return nil
}

func (r *GormRepo) withLines(ctx context.Context) *gorm.DB {
	return r.DB.WithContext(ctx).Model(&models.Order{}).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Items.Item")
}
