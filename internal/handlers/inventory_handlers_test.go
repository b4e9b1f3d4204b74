package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/aadhidev/stockify/internal/models"
	"github.com/aadhidev/stockify/internal/transport"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func createItem(t *testing.T, e *env, req transport.ItemRequest) models.InventoryItem {
	t.Helper()

	c, rec := request(t, http.MethodPost, "/admin/inventory", req, &e.admin)
	require.NoError(t, e.inventory.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var item models.InventoryItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &item))
	return item
}

func TestCreateItemHandler(t *testing.T) {
	e := newEnv(t)

	item := createItem(t, e, transport.ItemRequest{
		Name:     "Widget",
		Category: "tools",
		Quantity: 5,
		Price:    decimal.RequireFromString("9.99"),
	})
	require.Equal(t, "Widget", item.Name)
	require.EqualValues(t, 5, item.Quantity)
	require.Equal(t, e.admin.ID, item.AddedByID)

	// non-admin actor is refused with no mutation
	c, _ := request(t, http.MethodPost, "/admin/inventory", transport.ItemRequest{Name: "Nope"}, &e.user)
	requireHTTPError(t, e.inventory.Create(c), http.StatusForbidden)

	var count int64
	require.NoError(t, e.db.Model(&models.InventoryItem{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestGetItemHandler(t *testing.T) {
	e := newEnv(t)
	item := createItem(t, e, transport.ItemRequest{Name: "Widget", Quantity: 5})

	c, rec := request(t, http.MethodGet, "/inventory/"+item.ID.String(), nil, &e.user)
	c.SetParamNames("id")
	c.SetParamValues(item.ID.String())
	require.NoError(t, e.inventory.Get(c))
	require.Equal(t, http.StatusOK, rec.Code)

	c, _ = request(t, http.MethodGet, "/inventory/undefined", nil, &e.user)
	c.SetParamNames("id")
	c.SetParamValues("undefined")
	requireHTTPError(t, e.inventory.Get(c), http.StatusBadRequest)

	c, _ = request(t, http.MethodGet, "/inventory/x", nil, &e.user)
	c.SetParamNames("id")
	c.SetParamValues("3b4b5e86-0000-0000-0000-000000000000")
	requireHTTPError(t, e.inventory.Get(c), http.StatusNotFound)
}

func TestUpdateItemHandler(t *testing.T) {
	e := newEnv(t)
	item := createItem(t, e, transport.ItemRequest{Name: "Widget", Quantity: 5})

	body := transport.ItemRequest{Name: "Widget v2", Quantity: 9, Price: decimal.RequireFromString("1.25")}
	c, rec := request(t, http.MethodPut, "/admin/inventory/"+item.ID.String(), body, &e.admin)
	c.SetParamNames("id")
	c.SetParamValues(item.ID.String())
	require.NoError(t, e.inventory.Update(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var updated models.InventoryItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	require.Equal(t, "Widget v2", updated.Name)
	require.EqualValues(t, 9, updated.Quantity)

	body.Quantity = -1
	c, _ = request(t, http.MethodPut, "/admin/inventory/"+item.ID.String(), body, &e.admin)
	c.SetParamNames("id")
	c.SetParamValues(item.ID.String())
	requireHTTPError(t, e.inventory.Update(c), http.StatusBadRequest)
}

func TestDeleteItemHandler(t *testing.T) {
	e := newEnv(t)
	item := createItem(t, e, transport.ItemRequest{Name: "Widget", Quantity: 5})

	c, rec := request(t, http.MethodDelete, "/admin/inventory/"+item.ID.String(), nil, &e.admin)
	c.SetParamNames("id")
	c.SetParamValues(item.ID.String())
	require.NoError(t, e.inventory.Delete(c))
	require.Equal(t, http.StatusNoContent, rec.Code)

	c, _ = request(t, http.MethodDelete, "/admin/inventory/"+item.ID.String(), nil, &e.admin)
	c.SetParamNames("id")
	c.SetParamValues(item.ID.String())
	requireHTTPError(t, e.inventory.Delete(c), http.StatusNotFound)
}

func TestListItemsHandler(t *testing.T) {
	e := newEnv(t)
	createItem(t, e, transport.ItemRequest{Name: "Hammer", Category: "tools", Quantity: 1})
	createItem(t, e, transport.ItemRequest{Name: "Wire", Category: "materials", Quantity: 2})

	c, rec := request(t, http.MethodGet, "/inventory?search=ham", nil, &e.user)
	require.NoError(t, e.inventory.List(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var items []models.InventoryItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 1)
	require.Equal(t, "Hammer", items[0].Name)
}
