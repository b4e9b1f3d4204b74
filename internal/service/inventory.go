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

type InventoryService struct {
	Repo  *repo.GormRepo
	Audit *AuditService
}

func (s *InventoryService) List(ctx context.Context, f repo.ItemFilter, actor Actor) ([]models.InventoryItem, error) {
	items, err := s.Repo.ListItems(ctx, f)
	if err != nil {
		return nil, err
	}
	s.Audit.Record(ctx, actor.ID, models.ActionView, models.EntityInventory, nil, "viewed inventory list")
	return items, nil
}

func (s *InventoryService) Get(ctx context.Context, id uuid.UUID, actor Actor) (*models.InventoryItem, error) {
	item, err := s.Repo.GetItem(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: item %s", ErrNotFound, id)
		}
		return nil, err
	}
	s.Audit.Record(ctx, actor.ID, models.ActionView, models.EntityInventory, &item.ID, "viewed inventory item details")
	return item, nil
}

func (s *InventoryService) Create(ctx context.Context, req transport.ItemRequest, actor Actor) (*models.InventoryItem, error) {
	if !actor.Role.Admin() {
		return nil, ErrForbidden
	}
	if err := validateItem(req); err != nil {
		return nil, err
	}

	item := &models.InventoryItem{
		Name:        req.Name,
		Category:    req.Category,
		Quantity:    req.Quantity,
		Price:       req.Price,
		Supplier:    req.Supplier,
		Description: req.Description,
		AddedByID:   actor.ID,
	}
	if err := s.Repo.CreateItem(ctx, item); err != nil {
		return nil, err
	}

	s.Audit.Record(ctx, actor.ID, models.ActionCreate, models.EntityInventory, &item.ID, "created new inventory item")
	return item, nil
}

// Update overwrites every mutable attribute and forces UpdatedBy to the
// acting admin. The write is version-guarded: a concurrent update between
// load and save surfaces as ErrConflict.
func (s *InventoryService) Update(ctx context.Context, id uuid.UUID, req transport.ItemRequest, actor Actor) (*models.InventoryItem, error) {
	if !actor.Role.Admin() {
		return nil, ErrForbidden
	}
	if err := validateItem(req); err != nil {
		return nil, err
	}

	item, err := s.Repo.GetItem(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: item %s", ErrNotFound, id)
		}
		return nil, err
	}

	item.Name = req.Name
	item.Category = req.Category
	item.Quantity = req.Quantity
	item.Price = req.Price
	item.Supplier = req.Supplier
	item.Description = req.Description
	item.UpdatedByID = &actor.ID

	if err := s.Repo.SaveItem(ctx, item); err != nil {
		if errors.Is(err, repo.ErrStaleVersion) {
			return nil, fmt.Errorf("%w: item %s was updated concurrently", ErrConflict, id)
		}
		return nil, err
	}

	s.Audit.Record(ctx, actor.ID, models.ActionUpdate, models.EntityInventory, &item.ID, "updated inventory item")
	return item, nil
}

func (s *InventoryService) Delete(ctx context.Context, id uuid.UUID, actor Actor) error {
	if !actor.Role.Admin() {
		return ErrForbidden
	}

	if err := s.Repo.DeleteItem(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: item %s", ErrNotFound, id)
		}
		return err
	}

	s.Audit.Record(ctx, actor.ID, models.ActionDelete, models.EntityInventory, &id, "deleted inventory item")
	return nil
}

func validateItem(req transport.ItemRequest) error {
	if req.Name == "" {
		return fmt.Errorf("%w: name required", ErrInvalidArgument)
	}
	if req.Quantity < 0 {
		return fmt.Errorf("%w: quantity must be >= 0", ErrInvalidArgument)
	}
	if req.Price.IsNegative() {
		return fmt.Errorf("%w: price must be >= 0", ErrInvalidArgument)
	}
	return nil
}
