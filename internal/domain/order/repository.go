package order

import "context"

type Repository interface {
	Insert(ctx context.Context, order *Order) error
	FindByID(ctx context.Context, id string) (*Order, error)
	FindByUser(ctx context.Context, userID string) ([]*Order, error)
	FindByStatus(ctx context.Context, status Status) ([]*Order, error)
	// Update runs the mutation under the store's serialization boundary for
	// the given order id.
	Update(ctx context.Context, id string, mutate func(*Order) error) (*Order, error)
}
