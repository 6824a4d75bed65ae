package httptransport

import (
	"time"

	domcart "github.com/ferrishop/commerce-core/internal/domain/cart"
	domcat "github.com/ferrishop/commerce-core/internal/domain/catalog"
	domorder "github.com/ferrishop/commerce-core/internal/domain/order"
	dompay "github.com/ferrishop/commerce-core/internal/domain/payment"
	domuser "github.com/ferrishop/commerce-core/internal/domain/user"
	"github.com/shopspring/decimal"
)

type productResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stock_quantity"`
	MinStockLevel int             `json:"min_stock_level"`
	IsAvailable   bool            `json:"is_available"`
	IsLowStock    bool            `json:"is_low_stock"`
}

func toProductResponse(p *domcat.Product) productResponse {
	return productResponse{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		StockQuantity: p.StockQuantity,
		MinStockLevel: p.MinStockLevel,
		IsAvailable:   p.IsAvailable,
		IsLowStock:    p.LowStock(),
	}
}

func toProductResponses(products []*domcat.Product) []productResponse {
	out := make([]productResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return out
}

type orderResponse struct {
	ID             string          `json:"id"`
	UserID         string          `json:"user_id"`
	ProductIDs     []string        `json:"product_ids"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	OrderDate      time.Time       `json:"order_date"`
	Status         string          `json:"status"`
	TrackingNumber string          `json:"tracking_number,omitempty"`
}

func toOrderResponse(o *domorder.Order) orderResponse {
	return orderResponse{
		ID:             o.ID,
		UserID:         o.UserID,
		ProductIDs:     o.ProductIDs,
		TotalAmount:    o.TotalAmount,
		OrderDate:      o.OrderDate,
		Status:         string(o.Status),
		TrackingNumber: o.TrackingNumber,
	}
}

func toOrderResponses(orders []*domorder.Order) []orderResponse {
	out := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}
	return out
}

type paymentResponse struct {
	ID              string          `json:"id"`
	OrderID         string          `json:"order_id"`
	Method          string          `json:"method"`
	Amount          decimal.Decimal `json:"amount"`
	Status          string          `json:"status"`
	TransactionID   string          `json:"transaction_id"`
	GatewayResponse string          `json:"gateway_response,omitempty"`
	FailureReason   string          `json:"failure_reason,omitempty"`
	ProcessedAt     *time.Time      `json:"processed_at,omitempty"`
}

func toPaymentResponse(p *dompay.Payment) paymentResponse {
	resp := paymentResponse{
		ID:              p.ID,
		OrderID:         p.OrderID,
		Method:          string(p.Method),
		Amount:          p.Amount,
		Status:          string(p.Status),
		TransactionID:   p.TransactionID,
		GatewayResponse: p.GatewayResponse,
		FailureReason:   p.FailureReason,
	}
	if !p.ProcessedAt.IsZero() {
		processedAt := p.ProcessedAt
		resp.ProcessedAt = &processedAt
	}
	return resp
}

func toPaymentResponses(payments []*dompay.Payment) []paymentResponse {
	out := make([]paymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, toPaymentResponse(p))
	}
	return out
}

type userResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

func toUserResponse(u *domuser.User) userResponse {
	return userResponse{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Role:     string(u.Role),
	}
}

type cartResponse struct {
	ID         string   `json:"id"`
	UserID     string   `json:"user_id"`
	ProductIDs []string `json:"product_ids"`
}

func toCartResponse(c *domcart.Cart) cartResponse {
	return cartResponse{
		ID:         c.ID,
		UserID:     c.UserID,
		ProductIDs: c.ProductIDs,
	}
}
