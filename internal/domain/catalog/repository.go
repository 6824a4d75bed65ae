package catalog

import "context"

// Repository is the catalog store contract. Update runs the mutation inside the
// store's serialization boundary for the given product id, so check-then-act
// sequences (stock reduction, price snapshots of a single row) never interleave
// with a concurrent write to the same product.
type Repository interface {
	Insert(ctx context.Context, product *Product) error
	FindByID(ctx context.Context, id string) (*Product, error)
	// FindAllByID resolves a batch of ids in one consistent read; products
	// that do not exist are simply absent from the result.
	FindAllByID(ctx context.Context, ids []string) ([]*Product, error)
	FindAll(ctx context.Context) ([]*Product, error)
	Update(ctx context.Context, id string, mutate func(*Product) error) (*Product, error)
	Delete(ctx context.Context, id string) error
}
