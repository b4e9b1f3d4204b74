package repo

import (
	"context"
	"strings"

	"github.com/aadhidev/stockify/internal/models"
	"github.com/aadhidev/stockify/internal/util"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ItemFilter struct {
	Category string
	Search   string
	Page     int
	PageSize int
}

func (r *GormRepo) ListItems(ctx context.Context, f ItemFilter) ([]models.InventoryItem, error) {
	q := r.DB.WithContext(ctx).Model(&models.InventoryItem{})
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.Search != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(f.Search)+"%")
	}
	offset, limit := util.Calculate(f.Page, f.PageSize)

	var items []models.InventoryItem
	if err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) GetItem(ctx context.Context, id uuid.UUID) (*models.InventoryItem, error) {
	item := models.InventoryItem{}
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *GormRepo) CreateItem(ctx context.Context, item *models.InventoryItem) error {
	return r.DB.WithContext(ctx).Create(item).Error
}

// SaveItem writes back a loaded item guarded by its version. A zero
// RowsAffected after a successful load means a concurrent update won.
func (r *GormRepo) SaveItem(ctx context.Context, item *models.InventoryItem) error {
	res := r.DB.WithContext(ctx).Model(&models.InventoryItem{}).
		Where("id = ? AND version = ?", item.ID, item.Version).
		Updates(map[string]any{
			"name":          item.Name,
			"category":      item.Category,
			"quantity":      item.Quantity,
			"price":         item.Price,
			"supplier":      item.Supplier,
			"description":   item.Description,
			"updated_by_id": item.UpdatedByID,
			"version":       item.Version + 1,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStaleVersion
	}
	item.Version++
	return nil
}

func (r *GormRepo) DeleteItem(ctx context.Context, id uuid.UUID) error {
	res := r.DB.WithContext(ctx).Delete(&models.InventoryItem{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
