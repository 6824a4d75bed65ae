package payment

import "context"

// Repository persists payments. Insert must reject a second payment for the
// same order with ErrAlreadyExists, atomically with respect to concurrent
// inserts (unique index or an order-scoped lock).
type Repository interface {
	Insert(ctx context.Context, payment *Payment) error
	FindByID(ctx context.Context, id string) (*Payment, error)
	FindByOrder(ctx context.Context, orderID string) (*Payment, error)
	FindByStatus(ctx context.Context, status Status) ([]*Payment, error)
	FindByTransactionID(ctx context.Context, transactionID string) (*Payment, error)
	Update(ctx context.Context, id string, mutate func(*Payment) error) (*Payment, error)
}
