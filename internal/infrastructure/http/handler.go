// Package httptransport adapts the engine to HTTP: routing, request shaping
// and status-code mapping. No business rule lives here.
package httptransport

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	appcart "github.com/ferrishop/commerce-core/internal/application/cart"
	appcatalog "github.com/ferrishop/commerce-core/internal/application/catalog"
	appinventory "github.com/ferrishop/commerce-core/internal/application/inventory"
	apporder "github.com/ferrishop/commerce-core/internal/application/order"
	apppayment "github.com/ferrishop/commerce-core/internal/application/payment"
	appuser "github.com/ferrishop/commerce-core/internal/application/user"
	domcat "github.com/ferrishop/commerce-core/internal/domain/catalog"
	domorder "github.com/ferrishop/commerce-core/internal/domain/order"
	dompay "github.com/ferrishop/commerce-core/internal/domain/payment"
	domuser "github.com/ferrishop/commerce-core/internal/domain/user"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Handler struct {
	catalog   *appcatalog.Service
	inventory *appinventory.Service
	orders    *apporder.Service
	payments  *apppayment.Service
	carts     *appcart.Service
	users     *appuser.Service
}

func NewHandler(
	catalog *appcatalog.Service,
	inventory *appinventory.Service,
	orders *apporder.Service,
	payments *apppayment.Service,
	carts *appcart.Service,
	users *appuser.Service,
) *Handler {
	return &Handler{
		catalog:   catalog,
		inventory: inventory,
		orders:    orders,
		payments:  payments,
		carts:     carts,
		users:     users,
	}
}

func (h *Handler) Router(logger *zap.Logger, metrics *Metrics) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))
	r.Use(Instrument(logger, metrics))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/products", func(r chi.Router) {
		r.Post("/", h.handleCreateProduct)
		r.Get("/", h.handleListProducts)
		r.Get("/search", h.handleSearchProducts)
		r.Get("/filter", h.handleFilterProducts)
		r.Get("/search-filter", h.handleSearchAndFilter)
		r.Get("/available", h.handleAvailableProducts)
		r.Get("/unavailable", h.handleUnavailableProducts)
		r.Get("/{productID}", h.handleGetProduct)
		r.Put("/{productID}", h.handleUpdateProduct)
		r.Delete("/{productID}", h.handleDeleteProduct)
	})

	r.Route("/inventory", func(r chi.Router) {
		r.Get("/low-stock", h.handleLowStock)
		r.Get("/out-of-stock", h.handleOutOfStock)
		r.Get("/available", h.handleInStock)
		r.Post("/{productID}/add", h.handleAddStock)
		r.Post("/{productID}/reduce", h.handleReduceStock)
		r.Post("/{productID}/set", h.handleSetStock)
		r.Post("/{productID}/min-level", h.handleSetMinStockLevel)
		r.Get("/{productID}/availability", h.handleCheckAvailability)
	})

	r.Route("/orders", func(r chi.Router) {
		r.Post("/", h.handleCreateOrder)
		r.Get("/", h.handleOrdersByStatus)
		r.Get("/{orderID}", h.handleGetOrder)
		r.Put("/{orderID}/status", h.handleUpdateOrderStatus)
	})

	r.Route("/payments", func(r chi.Router) {
		r.Post("/", h.handleCreatePayment)
		r.Get("/", h.handlePaymentsByStatus)
		r.Get("/transaction/{transactionID}", h.handlePaymentByTransaction)
		r.Get("/order/{orderID}", h.handlePaymentByOrder)
		r.Get("/{paymentID}", h.handleGetPayment)
		r.Post("/{paymentID}/process", h.handleProcessPayment)
		r.Post("/{paymentID}/refund", h.handleRefundPayment)
	})

	r.Route("/users", func(r chi.Router) {
		r.Post("/", h.handleRegisterUser)
		r.Get("/", h.handleListUsers)
		r.Get("/{userID}", h.handleGetUser)
		r.Put("/{userID}", h.handleUpdateUser)
		r.Put("/{userID}/role", h.handleUpdateUserRole)
		r.Get("/{userID}/orders", h.handleOrdersForUser)
	})

	r.Route("/carts/{userID}", func(r chi.Router) {
		r.Get("/", h.handleGetCart)
		r.Delete("/", h.handleClearCart)
		r.Get("/total", h.handleCartTotal)
		r.Post("/items", h.handleCartAddItem)
		r.Delete("/items/{productID}", h.handleCartRemoveItem)
	})

	return r
}

func decodeJSON(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dst)
}

// --- products ---

type createProductRequest struct {
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stock_quantity"`
	MinStockLevel *int            `json:"min_stock_level"`
}

func (h *Handler) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	minLevel := -1
	if req.MinStockLevel != nil {
		minLevel = *req.MinStockLevel
	}
	product, err := h.catalog.CreateProduct(r.Context(), appcatalog.CreateProductInput{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
		MinStockLevel: minLevel,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toProductResponse(product))
}

func (h *Handler) handleListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.GetAllProducts(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductResponses(products))
}

func (h *Handler) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.catalog.GetProductByID(r.Context(), chi.URLParam(r, "productID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductResponse(product))
}

type updateProductRequest struct {
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity *int            `json:"stock_quantity"`
	MinStockLevel *int            `json:"min_stock_level"`
}

func (h *Handler) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req updateProductRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	input := appcatalog.UpdateProductInput{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		StockQuantity: -1,
		MinStockLevel: -1,
	}
	if req.StockQuantity != nil {
		input.StockQuantity = *req.StockQuantity
	}
	if req.MinStockLevel != nil {
		input.MinStockLevel = *req.MinStockLevel
	}

	product, err := h.catalog.UpdateProduct(r.Context(), chi.URLParam(r, "productID"), input)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductResponse(product))
}

func (h *Handler) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.DeleteProduct(r.Context(), chi.URLParam(r, "productID")); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleSearchProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.SearchProducts(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductResponses(products))
}

// queryPrice parses an optional decimal query parameter; absent means nil.
func queryPrice(r *http.Request, key string) (*decimal.Decimal, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, nil
	}
	parsed, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func (h *Handler) handleFilterProducts(w http.ResponseWriter, r *http.Request) {
	minPrice, err := queryPrice(r, "min_price")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	maxPrice, err := queryPrice(r, "max_price")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	products, err := h.catalog.FilterByPrice(r.Context(), minPrice, maxPrice)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductResponses(products))
}

func (h *Handler) handleSearchAndFilter(w http.ResponseWriter, r *http.Request) {
	minPrice, err := queryPrice(r, "min_price")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	maxPrice, err := queryPrice(r, "max_price")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	var available *bool
	if raw := r.URL.Query().Get("available"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, errors.New("available must be a boolean"))
			return
		}
		available = &parsed
	}

	products, err := h.catalog.SearchAndFilter(r.Context(), appcatalog.SearchFilterInput{
		Name:      r.URL.Query().Get("name"),
		MinPrice:  minPrice,
		MaxPrice:  maxPrice,
		Available: available,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductResponses(products))
}

func (h *Handler) handleAvailableProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.GetAvailableProducts(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductResponses(products))
}

func (h *Handler) handleUnavailableProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.GetUnavailableProducts(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductResponses(products))
}

// --- inventory ---

type stockRequest struct {
	Quantity int `json:"quantity"`
}

func (h *Handler) handleAddStock(w http.ResponseWriter, r *http.Request) {
	h.handleStockMutation(w, r, h.inventory.AddStock)
}

func (h *Handler) handleReduceStock(w http.ResponseWriter, r *http.Request) {
	h.handleStockMutation(w, r, h.inventory.ReduceStock)
}

func (h *Handler) handleSetStock(w http.ResponseWriter, r *http.Request) {
	h.handleStockMutation(w, r, h.inventory.SetStock)
}

func (h *Handler) handleSetMinStockLevel(w http.ResponseWriter, r *http.Request) {
	h.handleStockMutation(w, r, h.inventory.SetMinStockLevel)
}

func (h *Handler) handleStockMutation(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, productID string, quantity int) (*domcat.Product, error),
) {
	var req stockRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	product, err := op(r.Context(), chi.URLParam(r, "productID"), req.Quantity)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductResponse(product))
}

func (h *Handler) handleLowStock(w http.ResponseWriter, r *http.Request) {
	products, err := h.inventory.LowStockProducts(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductResponses(products))
}

func (h *Handler) handleOutOfStock(w http.ResponseWriter, r *http.Request) {
	products, err := h.inventory.OutOfStockProducts(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductResponses(products))
}

func (h *Handler) handleInStock(w http.ResponseWriter, r *http.Request) {
	products, err := h.inventory.AvailableProducts(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductResponses(products))
}

func (h *Handler) handleCheckAvailability(w http.ResponseWriter, r *http.Request) {
	quantity, err := strconv.Atoi(r.URL.Query().Get("quantity"))
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.New("quantity must be an integer"))
		return
	}
	available, err := h.inventory.CheckAvailability(r.Context(), chi.URLParam(r, "productID"), quantity)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"available": available})
}

// --- orders ---

type createOrderRequest struct {
	UserID     string   `json:"user_id"`
	ProductIDs []string `json:"product_ids"`
}

func (h *Handler) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	order, err := h.orders.CreateOrder(r.Context(), req.UserID, req.ProductIDs)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toOrderResponse(order))
}

func (h *Handler) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.orders.GetOrderByID(r.Context(), chi.URLParam(r, "orderID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(order))
}

type updateOrderStatusRequest struct {
	Status         string `json:"status"`
	TrackingNumber string `json:"tracking_number"`
}

func (h *Handler) handleUpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req updateOrderStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	status, err := domorder.ParseStatus(req.Status)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	order, err := h.orders.UpdateOrderStatus(r.Context(), chi.URLParam(r, "orderID"), status, req.TrackingNumber)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(order))
}

func (h *Handler) handleOrdersByStatus(w http.ResponseWriter, r *http.Request) {
	status, err := domorder.ParseStatus(r.URL.Query().Get("status"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	orders, err := h.orders.GetOrdersByStatus(r.Context(), status)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponses(orders))
}

func (h *Handler) handleOrdersForUser(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.GetOrdersForUser(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponses(orders))
}

// --- payments ---

type createPaymentRequest struct {
	OrderID string `json:"order_id"`
	Method  string `json:"method"`
}

func (h *Handler) handleCreatePayment(w http.ResponseWriter, r *http.Request) {
	var req createPaymentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	method, err := dompay.ParseMethod(req.Method)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	payment, err := h.payments.CreatePayment(r.Context(), req.OrderID, method)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toPaymentResponse(payment))
}

func (h *Handler) handleGetPayment(w http.ResponseWriter, r *http.Request) {
	payment, err := h.payments.GetPaymentByID(r.Context(), chi.URLParam(r, "paymentID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPaymentResponse(payment))
}

func (h *Handler) handleProcessPayment(w http.ResponseWriter, r *http.Request) {
	payment, err := h.payments.ProcessPayment(r.Context(), chi.URLParam(r, "paymentID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPaymentResponse(payment))
}

type refundPaymentRequest struct {
	Reason string `json:"reason"`
}

func (h *Handler) handleRefundPayment(w http.ResponseWriter, r *http.Request) {
	var req refundPaymentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	payment, err := h.payments.RefundPayment(r.Context(), chi.URLParam(r, "paymentID"), req.Reason)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPaymentResponse(payment))
}

func (h *Handler) handlePaymentByOrder(w http.ResponseWriter, r *http.Request) {
	payment, err := h.payments.GetPaymentByOrder(r.Context(), chi.URLParam(r, "orderID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPaymentResponse(payment))
}

func (h *Handler) handlePaymentByTransaction(w http.ResponseWriter, r *http.Request) {
	payment, err := h.payments.GetPaymentByTransactionID(r.Context(), chi.URLParam(r, "transactionID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPaymentResponse(payment))
}

func (h *Handler) handlePaymentsByStatus(w http.ResponseWriter, r *http.Request) {
	status, err := dompay.ParseStatus(r.URL.Query().Get("status"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	payments, err := h.payments.GetPaymentsByStatus(r.Context(), status)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPaymentResponses(payments))
}

// --- users ---

type registerUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (h *Handler) handleRegisterUser(w http.ResponseWriter, r *http.Request) {
	var req registerUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	registered, err := h.users.Register(r.Context(), appuser.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     domuser.Role(req.Role),
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toUserResponse(registered))
}

func (h *Handler) handleGetUser(w http.ResponseWriter, r *http.Request) {
	found, err := h.users.GetUserByID(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(found))
}

func (h *Handler) handleListUsers(w http.ResponseWriter, r *http.Request) {
	var (
		all []*domuser.User
		err error
	)
	if raw := r.URL.Query().Get("role"); raw != "" {
		role, parseErr := domuser.ParseRole(raw)
		if parseErr != nil {
			writeDomainError(w, parseErr)
			return
		}
		all, err = h.users.GetUsersByRole(r.Context(), role)
	} else {
		all, err = h.users.GetAllUsers(r.Context())
	}
	if err != nil {
		writeDomainError(w, err)
		return
	}
	out := make([]userResponse, 0, len(all))
	for _, u := range all {
		out = append(out, toUserResponse(u))
	}
	writeJSON(w, http.StatusOK, out)
}

type updateUserRoleRequest struct {
	Role string `json:"role"`
}

func (h *Handler) handleUpdateUserRole(w http.ResponseWriter, r *http.Request) {
	var req updateUserRoleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	role, err := domuser.ParseRole(req.Role)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	updated, err := h.users.UpdateUserRole(r.Context(), chi.URLParam(r, "userID"), role)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(updated))
}

type updateUserRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
}

func (h *Handler) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	var req updateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	input := appuser.UpdateUserInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	}
	if req.Role != nil {
		role, err := domuser.ParseRole(*req.Role)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		input.Role = &role
	}

	updated, err := h.users.UpdateUser(r.Context(), chi.URLParam(r, "userID"), input)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(updated))
}

// --- carts ---

func (h *Handler) handleGetCart(w http.ResponseWriter, r *http.Request) {
	found, err := h.carts.GetOrCreateCart(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCartResponse(found))
}

type cartItemRequest struct {
	ProductID string `json:"product_id"`
}

func (h *Handler) handleCartAddItem(w http.ResponseWriter, r *http.Request) {
	var req cartItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	updated, err := h.carts.AddProduct(r.Context(), chi.URLParam(r, "userID"), req.ProductID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCartResponse(updated))
}

func (h *Handler) handleCartRemoveItem(w http.ResponseWriter, r *http.Request) {
	updated, err := h.carts.RemoveProduct(r.Context(), chi.URLParam(r, "userID"), chi.URLParam(r, "productID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCartResponse(updated))
}

func (h *Handler) handleClearCart(w http.ResponseWriter, r *http.Request) {
	updated, err := h.carts.ClearCart(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCartResponse(updated))
}

func (h *Handler) handleCartTotal(w http.ResponseWriter, r *http.Request) {
	total, err := h.carts.CartTotal(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]decimal.Decimal{"total": total})
}
