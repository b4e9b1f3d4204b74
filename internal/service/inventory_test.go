package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/aadhidev/stockify/internal/models"
	"github.com/aadhidev/stockify/internal/repo"
	"github.com/aadhidev/stockify/internal/transport"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestCreateItemValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.inventory.Create(ctx, transport.ItemRequest{Quantity: 1}, f.admin)
	require.ErrorIs(t, err, ErrInvalidArgument, "empty name")

	_, err = f.inventory.Create(ctx, transport.ItemRequest{Name: "Widget", Quantity: -1}, f.admin)
	require.ErrorIs(t, err, ErrInvalidArgument, "negative quantity")

	_, err = f.inventory.Create(ctx, transport.ItemRequest{
		Name:  "Widget",
		Price: decimal.RequireFromString("-0.01"),
	}, f.admin)
	require.ErrorIs(t, err, ErrInvalidArgument, "negative price")

	require.EqualValues(t, 0, f.auditCount(t, models.ActionCreate, models.EntityInventory))
}

func TestCreateItemRecordsActor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	start := time.Now()

	item, err := f.inventory.Create(ctx, transport.ItemRequest{
		Name:     "Widget",
		Category: "tools",
		Quantity: 5,
		Price:    decimal.RequireFromString("9.99"),
		Supplier: "Acme",
	}, f.admin)
	require.NoError(t, err)
	require.Equal(t, f.admin.ID, item.AddedByID)
	require.Nil(t, item.UpdatedByID)
	require.EqualValues(t, 5, item.Quantity)

	var entry models.ActivityLog
	err = f.db.Where("action = ? AND entity = ?", models.ActionCreate, models.EntityInventory).
		First(&entry).Error
	require.NoError(t, err)
	require.Equal(t, f.admin.ID, entry.UserID)
	require.NotNil(t, entry.EntityID)
	require.Equal(t, item.ID, *entry.EntityID)
	require.False(t, entry.Timestamp.Before(start.Add(-time.Second)))
}

func TestInventoryAdminGates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	item, err := f.inventory.Create(ctx, transport.ItemRequest{Name: "Widget", Quantity: 5}, f.admin)
	require.NoError(t, err)
	before := f.auditCount(t, models.ActionUpdate, models.EntityInventory)

	_, err = f.inventory.Create(ctx, transport.ItemRequest{Name: "Other"}, f.user)
	require.ErrorIs(t, err, ErrForbidden)

	_, err = f.inventory.Update(ctx, item.ID, transport.ItemRequest{Name: "Hacked"}, f.user)
	require.ErrorIs(t, err, ErrForbidden)

	err = f.inventory.Delete(ctx, item.ID, f.user)
	require.ErrorIs(t, err, ErrForbidden)

	reloaded, err := f.repo.GetItem(ctx, item.ID)
	require.NoError(t, err)
	require.Equal(t, "Widget", reloaded.Name, "forbidden calls must not mutate")
	require.Equal(t, before, f.auditCount(t, models.ActionUpdate, models.EntityInventory))
}

func TestUpdateItemOverwritesAndStampsActor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	item, err := f.inventory.Create(ctx, transport.ItemRequest{
		Name:     "Widget",
		Category: "tools",
		Quantity: 5,
		Price:    decimal.RequireFromString("9.99"),
	}, f.admin)
	require.NoError(t, err)

	updated, err := f.inventory.Update(ctx, item.ID, transport.ItemRequest{
		Name:     "Widget v2",
		Category: "hardware",
		Quantity: 7,
		Price:    decimal.RequireFromString("12.50"),
		Supplier: "Acme",
	}, f.admin)
	require.NoError(t, err)
	require.Equal(t, "Widget v2", updated.Name)
	require.Equal(t, "hardware", updated.Category)
	require.EqualValues(t, 7, updated.Quantity)
	require.NotNil(t, updated.UpdatedByID)
	require.Equal(t, f.admin.ID, *updated.UpdatedByID)

	_, err = f.inventory.Update(ctx, uuid.New(), transport.ItemRequest{Name: "x"}, f.admin)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = f.inventory.Update(ctx, item.ID, transport.ItemRequest{Name: "x", Quantity: -2}, f.admin)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestUpdateItemDetectsLostRace(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	item, err := f.inventory.Create(ctx, transport.ItemRequest{Name: "Widget", Quantity: 5}, f.admin)
	require.NoError(t, err)

	stale := *item
	err = f.repo.SaveItem(ctx, item)
	require.NoError(t, err)

	err = f.repo.SaveItem(ctx, &stale)
	require.ErrorIs(t, err, repo.ErrStaleVersion)
}

func TestDeleteItem(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	item, err := f.inventory.Create(ctx, transport.ItemRequest{Name: "Widget", Quantity: 5}, f.admin)
	require.NoError(t, err)

	require.NoError(t, f.inventory.Delete(ctx, item.ID, f.admin))
	require.ErrorIs(t, f.inventory.Delete(ctx, item.ID, f.admin), ErrNotFound)

	_, err = f.inventory.Get(ctx, item.ID, f.admin)
	require.ErrorIs(t, err, ErrNotFound)

	require.EqualValues(t, 1, f.auditCount(t, models.ActionDelete, models.EntityInventory))
}

func TestListItemsFilters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, it := range []transport.ItemRequest{
		{Name: "Left-Handed Hammer", Category: "tools", Quantity: 2},
		{Name: "Screwdriver", Category: "tools", Quantity: 4},
		{Name: "Copper Wire", Category: "materials", Quantity: 10},
	} {
		_, err := f.inventory.Create(ctx, it, f.admin)
		require.NoError(t, err)
	}

	all, err := f.inventory.List(ctx, repo.ItemFilter{}, f.user)
	require.NoError(t, err)
	require.Len(t, all, 3)

	tools, err := f.inventory.List(ctx, repo.ItemFilter{Category: "tools"}, f.user)
	require.NoError(t, err)
	require.Len(t, tools, 2)

	// substring, case-insensitive
	hammers, err := f.inventory.List(ctx, repo.ItemFilter{Search: "hAmMe"}, f.user)
	require.NoError(t, err)
	require.Len(t, hammers, 1)
	require.Equal(t, "Left-Handed Hammer", hammers[0].Name)

	none, err := f.inventory.List(ctx, repo.ItemFilter{Category: "tools", Search: "wire"}, f.user)
	require.NoError(t, err)
	require.Len(t, none, 0)

	require.EqualValues(t, 4, f.auditCount(t, models.ActionView, models.EntityInventory),
		"each list call must audit exactly once")
}

func TestListItemsPagination(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		item, err := f.inventory.Create(ctx, transport.ItemRequest{
			Name:     fmt.Sprintf("Bolt %d", i),
			Category: "fasteners",
			Quantity: 1,
		}, f.admin)
		require.NoError(t, err)
		// spread creation times so page order is stable
		require.NoError(t, f.db.Model(item).
			Update("created_at", time.Now().Add(time.Duration(-i)*time.Minute)).Error)
	}

	first, err := f.inventory.List(ctx, repo.ItemFilter{Page: 1, PageSize: 2}, f.user)
	require.NoError(t, err)
	require.Len(t, first, 2)

	second, err := f.inventory.List(ctx, repo.ItemFilter{Page: 2, PageSize: 2}, f.user)
	require.NoError(t, err)
	require.Len(t, second, 2)
	require.NotEqual(t, first[0].ID, second[0].ID)

	last, err := f.inventory.List(ctx, repo.ItemFilter{Page: 3, PageSize: 2}, f.user)
	require.NoError(t, err)
	require.Len(t, last, 1)

	// out-of-range values fall back to sane defaults
	def, err := f.inventory.List(ctx, repo.ItemFilter{Page: -1, PageSize: 1000}, f.user)
	require.NoError(t, err)
	require.Len(t, def, 5)
}
