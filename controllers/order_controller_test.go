package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/models"
)

type mockOrderStore struct {
	orders      map[int]*models.Order
	byBuyer     []models.Order
	all         []models.Order
	err         error
	lastID      int
	lastStatus  string
	updateCalls int
}

func (m *mockOrderStore) UpdateStatus(ctx context.Context, id int, status string) (*models.Order, error) {
	m.updateCalls++
	m.lastID = id
	m.lastStatus = status
	if m.err != nil {
		return nil, m.err
	}
	order, ok := m.orders[id]
	if !ok {
		return nil, nil
	}
	order.Status = status
	return order, nil
}

func (m *mockOrderStore) FindByBuyer(ctx context.Context, buyerID int) ([]models.Order, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.byBuyer, nil
}

func (m *mockOrderStore) FindAll(ctx context.Context) ([]models.Order, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.all, nil
}

func setupOrderRouter(store *mockOrderStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	ctrl := NewOrderController(store)

	router := gin.New()
	router.GET("/orders", fakeAuth, ctrl.GetOrders)
	router.GET("/admin/orders", fakeAuth, ctrl.GetAllOrders)
	router.PUT("/admin/orders/:orderId/status", fakeAuth, ctrl.UpdateOrderStatus)
	return router
}

func putStatus(t *testing.T, router *gin.Engine, orderID, status string) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(gin.H{"status": status})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPut, "/admin/orders/"+orderID+"/status", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestUpdateOrderStatusSuccess(t *testing.T) {
	store := &mockOrderStore{orders: map[int]*models.Order{
		42: {ID: 42, BuyerID: 7, Status: models.OrderStatusNotProcessed, Payment: json.RawMessage(`{"success":true}`)},
	}}
	router := setupOrderRouter(store)

	w := putStatus(t, router, "42", models.OrderStatusShipped)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 42, store.lastID)
	assert.Equal(t, models.OrderStatusShipped, store.lastStatus)

	var order models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &order))
	assert.Equal(t, 42, order.ID)
	assert.Equal(t, models.OrderStatusShipped, order.Status)
}

func TestUpdateOrderStatusIdempotent(t *testing.T) {
	store := &mockOrderStore{orders: map[int]*models.Order{
		42: {ID: 42, Status: models.OrderStatusProcessing},
	}}
	router := setupOrderRouter(store)

	first := putStatus(t, router, "42", models.OrderStatusProcessing)
	second := putStatus(t, router, "42", models.OrderStatusProcessing)

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
}

func TestUpdateOrderStatusNotFoundReturnsNull(t *testing.T) {
	store := &mockOrderStore{orders: map[int]*models.Order{}}
	router := setupOrderRouter(store)

	w := putStatus(t, router, "999", models.OrderStatusShipped)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "null", w.Body.String())
}

func TestUpdateOrderStatusPersistenceError(t *testing.T) {
	store := &mockOrderStore{err: assert.AnError}
	router := setupOrderRouter(store)

	w := putStatus(t, router, "42", models.OrderStatusShipped)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
	assert.Contains(t, w.Body.String(), `"error"`)
}

func TestUpdateOrderStatusInvalidID(t *testing.T) {
	router := setupOrderRouter(&mockOrderStore{})

	w := putStatus(t, router, "not-a-number", models.OrderStatusShipped)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateOrderStatusMissingStatus(t *testing.T) {
	store := &mockOrderStore{orders: map[int]*models.Order{42: {ID: 42}}}
	router := setupOrderRouter(store)

	req := httptest.NewRequest(http.MethodPut, "/admin/orders/42/status", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, store.updateCalls)
}

func TestGetOrdersReturnsBuyerOrders(t *testing.T) {
	store := &mockOrderStore{byBuyer: []models.Order{
		{ID: 2, BuyerID: 7, Status: models.OrderStatusShipped},
		{ID: 1, BuyerID: 7, Status: models.OrderStatusDelivered},
	}}
	router := setupOrderRouter(store)

	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var orders []models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &orders))
	require.Len(t, orders, 2)
	assert.Equal(t, 2, orders[0].ID)
}

func TestGetAllOrdersError(t *testing.T) {
	router := setupOrderRouter(&mockOrderStore{err: assert.AnError})

	req := httptest.NewRequest(http.MethodGet, "/admin/orders", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
