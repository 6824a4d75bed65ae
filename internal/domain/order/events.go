package order

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderCreatedEvent is emitted after an order has been persisted. Consumers
// observe it best-effort; order creation does not depend on delivery.
type OrderCreatedEvent struct {
	OrderID     string
	UserID      string
	ProductIDs  []string
	TotalAmount decimal.Decimal
	OccurredAt  time.Time
}

func (OrderCreatedEvent) EventName() string { return "order.created" }

func NewOrderCreatedEvent(o *Order) OrderCreatedEvent {
	return OrderCreatedEvent{
		OrderID:     o.ID,
		UserID:      o.UserID,
		ProductIDs:  append([]string(nil), o.ProductIDs...),
		TotalAmount: o.TotalAmount,
		OccurredAt:  time.Now().UTC(),
	}
}
