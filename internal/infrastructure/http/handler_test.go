package httptransport

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	appcart "github.com/ferrishop/commerce-core/internal/application/cart"
	appcatalog "github.com/ferrishop/commerce-core/internal/application/catalog"
	appinventory "github.com/ferrishop/commerce-core/internal/application/inventory"
	apporder "github.com/ferrishop/commerce-core/internal/application/order"
	apppayment "github.com/ferrishop/commerce-core/internal/application/payment"
	appuser "github.com/ferrishop/commerce-core/internal/application/user"
	"github.com/ferrishop/commerce-core/internal/infrastructure/gateway"
	"github.com/ferrishop/commerce-core/internal/infrastructure/id"
	"github.com/ferrishop/commerce-core/internal/infrastructure/memory"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	catalogRepo := memory.NewCatalogRepository()
	orderRepo := memory.NewOrderRepository()
	paymentRepo := memory.NewPaymentRepository()
	userRepo := memory.NewUserRepository()
	cartRepo := memory.NewCartRepository()
	idGen := id.NewUUIDGenerator()

	h := NewHandler(
		appcatalog.NewService(catalogRepo, idGen),
		appinventory.NewService(catalogRepo, nil),
		apporder.NewService(orderRepo, catalogRepo, userRepo, idGen, nil),
		apppayment.NewService(paymentRepo, orderRepo, gateway.NewSimulated(1.0), memory.NewUnitOfWork(), idGen, nil, nil),
		appcart.NewService(cartRepo, catalogRepo, userRepo, idGen),
		appuser.NewService(userRepo, idGen),
	)
	return h.Router(zap.NewNop(), NewMetrics(prometheus.NewRegistry()))
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst))
}

func createTestProduct(t *testing.T, router http.Handler, name, price string, stock int) string {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/products", map[string]any{
		"name":           name,
		"price":          price,
		"stock_quantity": stock,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		ID string `json:"id"`
	}
	decodeBody(t, rec, &resp)
	return resp.ID
}

func registerTestUser(t *testing.T, router http.Handler, username string) string {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/users", map[string]any{
		"username": username,
		"email":    username + "@example.com",
		"password": "longenough",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		ID string `json:"id"`
	}
	decodeBody(t, rec, &resp)
	return resp.ID
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t)
	rec := doJSON(t, router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestProductLifecycleOverHTTP(t *testing.T) {
	router := newTestRouter(t)

	productID := createTestProduct(t, router, "Widget", "9.99", 10)

	rec := doJSON(t, router, http.MethodGet, "/products/"+productID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var product struct {
		Name        string `json:"name"`
		IsAvailable bool   `json:"is_available"`
	}
	decodeBody(t, rec, &product)
	assert.Equal(t, "Widget", product.Name)
	assert.True(t, product.IsAvailable)

	rec = doJSON(t, router, http.MethodPut, "/products/"+productID, map[string]any{
		"name":  "Gadget",
		"price": "19.99",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, router, http.MethodDelete, "/products/"+productID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/products/"+productID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateProductRejectsBadInput(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/products", map[string]any{
		"name":  "",
		"price": "9.99",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/products", map[string]any{
		"name":    "Widget",
		"price":   "9.99",
		"unknown": true,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "unknown fields are rejected")
}

func TestInventoryEndpoints(t *testing.T) {
	router := newTestRouter(t)
	productID := createTestProduct(t, router, "Widget", "9.99", 100)

	rec := doJSON(t, router, http.MethodPost, "/inventory/"+productID+"/reduce", map[string]any{"quantity": 30})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var product struct {
		StockQuantity int `json:"stock_quantity"`
	}
	decodeBody(t, rec, &product)
	assert.Equal(t, 70, product.StockQuantity)

	rec = doJSON(t, router, http.MethodPost, "/inventory/"+productID+"/reduce", map[string]any{"quantity": 100})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "shortage maps to a client error")

	rec = doJSON(t, router, http.MethodGet, fmt.Sprintf("/inventory/%s/availability?quantity=70", productID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var availability struct {
		Available bool `json:"available"`
	}
	decodeBody(t, rec, &availability)
	assert.True(t, availability.Available)

	rec = doJSON(t, router, http.MethodPost, "/inventory/missing/add", map[string]any{"quantity": 1})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestOrderAndPaymentFlowOverHTTP(t *testing.T) {
	router := newTestRouter(t)
	userID := registerTestUser(t, router, "alice")
	productID := createTestProduct(t, router, "Widget", "99.99", 10)

	rec := doJSON(t, router, http.MethodPost, "/orders", map[string]any{
		"user_id":     userID,
		"product_ids": []string{productID},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var order struct {
		ID          string `json:"id"`
		TotalAmount string `json:"total_amount"`
		Status      string `json:"status"`
	}
	decodeBody(t, rec, &order)
	assert.Equal(t, "CREATED", order.Status)
	assert.Equal(t, "99.99", order.TotalAmount)

	rec = doJSON(t, router, http.MethodPost, "/payments", map[string]any{
		"order_id": order.ID,
		"method":   "CREDIT_CARD",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var payment struct {
		ID     string `json:"id"`
		Status string `json:"status"`
		Amount string `json:"amount"`
	}
	decodeBody(t, rec, &payment)
	assert.Equal(t, "PENDING", payment.Status)
	assert.Equal(t, "99.99", payment.Amount)

	rec = doJSON(t, router, http.MethodPost, "/payments", map[string]any{
		"order_id": order.ID,
		"method":   "WALLET",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "second payment for the order is rejected")

	rec = doJSON(t, router, http.MethodPost, "/payments/"+payment.ID+"/process", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var processed struct {
		Status string `json:"status"`
	}
	decodeBody(t, rec, &processed)
	assert.Equal(t, "COMPLETED", processed.Status)

	rec = doJSON(t, router, http.MethodGet, "/orders/"+order.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &order)
	assert.Equal(t, "CONFIRMED", order.Status)

	rec = doJSON(t, router, http.MethodPost, "/payments/"+payment.ID+"/refund", map[string]any{"reason": "test"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var refunded struct {
		Status      string `json:"status"`
		ProcessedAt string `json:"processed_at"`
	}
	decodeBody(t, rec, &refunded)
	assert.Equal(t, "REFUNDED", refunded.Status)
	assert.NotEmpty(t, refunded.ProcessedAt)

	rec = doJSON(t, router, http.MethodGet, "/orders/"+order.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &order)
	assert.Equal(t, "REFUNDED", order.Status)
}

func TestPaymentErrorMapping(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/payments", map[string]any{
		"order_id": "missing",
		"method":   "CASH",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "unknown method is rejected before the order lookup")

	rec = doJSON(t, router, http.MethodPost, "/payments", map[string]any{
		"order_id": "missing",
		"method":   "CREDIT_CARD",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/payments/missing/process", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/payments/missing/refund", map[string]any{"reason": "x"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestOrderStatusEndpoint(t *testing.T) {
	router := newTestRouter(t)
	userID := registerTestUser(t, router, "alice")
	productID := createTestProduct(t, router, "Widget", "5.00", 10)

	rec := doJSON(t, router, http.MethodPost, "/orders", map[string]any{
		"user_id":     userID,
		"product_ids": []string{productID},
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var order struct {
		ID string `json:"id"`
	}
	decodeBody(t, rec, &order)

	rec = doJSON(t, router, http.MethodPut, "/orders/"+order.ID+"/status", map[string]any{
		"status":          "SHIPPED",
		"tracking_number": "TRACK-1",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var updated struct {
		Status         string `json:"status"`
		TrackingNumber string `json:"tracking_number"`
	}
	decodeBody(t, rec, &updated)
	assert.Equal(t, "SHIPPED", updated.Status)
	assert.Equal(t, "TRACK-1", updated.TrackingNumber)

	rec = doJSON(t, router, http.MethodPut, "/orders/"+order.ID+"/status", map[string]any{"status": "BOGUS"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/orders?status=SHIPPED", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []map[string]any
	decodeBody(t, rec, &list)
	assert.Len(t, list, 1)
}

func TestUserEndpoints(t *testing.T) {
	router := newTestRouter(t)
	userID := registerTestUser(t, router, "alice")

	rec := doJSON(t, router, http.MethodGet, "/users/"+userID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password", "credentials never leave the service")

	rec = doJSON(t, router, http.MethodPost, "/users", map[string]any{
		"username": "alice",
		"email":    "other@example.com",
		"password": "longenough",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "duplicate username")

	rec = doJSON(t, router, http.MethodGet, "/users/"+userID+"/orders", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/users/missing/orders", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUserRoleEndpoints(t *testing.T) {
	router := newTestRouter(t)
	aliceID := registerTestUser(t, router, "alice")
	registerTestUser(t, router, "bob")

	rec := doJSON(t, router, http.MethodPut, "/users/"+aliceID+"/role", map[string]any{"role": "ADMIN"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var updated struct {
		Role string `json:"role"`
	}
	decodeBody(t, rec, &updated)
	assert.Equal(t, "ADMIN", updated.Role)

	rec = doJSON(t, router, http.MethodGet, "/users?role=ADMIN", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var admins []struct {
		Username string `json:"username"`
	}
	decodeBody(t, rec, &admins)
	require.Len(t, admins, 1)
	assert.Equal(t, "alice", admins[0].Username)

	rec = doJSON(t, router, http.MethodPut, "/users/"+aliceID+"/role", map[string]any{"role": "SUPERUSER"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodPut, "/users/missing/role", map[string]any{"role": "ADMIN"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/users?role=bogus", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateUserEndpoint(t *testing.T) {
	router := newTestRouter(t)
	userID := registerTestUser(t, router, "alice")

	rec := doJSON(t, router, http.MethodPut, "/users/"+userID, map[string]any{
		"email": "alice@new.example",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var updated struct {
		Username string `json:"username"`
		Email    string `json:"email"`
	}
	decodeBody(t, rec, &updated)
	assert.Equal(t, "alice", updated.Username, "omitted field keeps its value")
	assert.Equal(t, "alice@new.example", updated.Email)

	rec = doJSON(t, router, http.MethodPut, "/users/"+userID, map[string]any{"password": "tiny"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodPut, "/users/missing", map[string]any{"email": "x@y.z"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCartEndpoints(t *testing.T) {
	router := newTestRouter(t)
	userID := registerTestUser(t, router, "alice")
	productID := createTestProduct(t, router, "Widget", "5.00", 10)

	rec := doJSON(t, router, http.MethodPost, "/carts/"+userID+"/items", map[string]any{"product_id": productID})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, router, http.MethodGet, "/carts/"+userID+"/total", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var total struct {
		Total string `json:"total"`
	}
	decodeBody(t, rec, &total)
	assert.Equal(t, "5", total.Total)

	rec = doJSON(t, router, http.MethodDelete, "/carts/"+userID+"/items/"+productID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodDelete, "/carts/"+userID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var cleared struct {
		ProductIDs []string `json:"product_ids"`
	}
	decodeBody(t, rec, &cleared)
	assert.Empty(t, cleared.ProductIDs)
}

func TestSearchAndFilterEndpoints(t *testing.T) {
	router := newTestRouter(t)
	createTestProduct(t, router, "Red Widget", "5.00", 1)
	createTestProduct(t, router, "Gadget", "50.00", 0)

	rec := doJSON(t, router, http.MethodGet, "/products/search?name=widget", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []map[string]any
	decodeBody(t, rec, &list)
	assert.Len(t, list, 1)

	rec = doJSON(t, router, http.MethodGet, "/products/filter?min_price=10&max_price=100", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &list)
	assert.Len(t, list, 1)

	rec = doJSON(t, router, http.MethodGet, "/products/filter?min_price=abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/products/unavailable", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &list)
	assert.Len(t, list, 1)
}

func TestCombinedSearchFilterEndpoint(t *testing.T) {
	router := newTestRouter(t)
	createTestProduct(t, router, "Red Widget", "5.00", 1)
	createTestProduct(t, router, "Blue Widget", "50.00", 0)
	createTestProduct(t, router, "Gadget", "50.00", 1)

	rec := doJSON(t, router, http.MethodGet, "/products/search-filter?name=widget&min_price=10&max_price=100", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []map[string]any
	decodeBody(t, rec, &list)
	require.Len(t, list, 1)
	assert.Equal(t, "Blue Widget", list[0]["name"])

	rec = doJSON(t, router, http.MethodGet, "/products/search-filter?name=widget&available=true", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &list)
	require.Len(t, list, 1)
	assert.Equal(t, "Red Widget", list[0]["name"])

	rec = doJSON(t, router, http.MethodGet, "/products/search-filter?available=maybe", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
