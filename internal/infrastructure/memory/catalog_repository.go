package memory

import (
	"context"
	"fmt"
	"sync"

	domain "github.com/ferrishop/commerce-core/internal/domain/catalog"
)

// CatalogRepository keeps products in a map guarded by one RWMutex. Update
// holds the write lock across the whole mutate callback, so check-then-act
// sequences against a product never interleave; FindAllByID reads the whole
// batch under a single read lock, so a price snapshot never observes a
// half-applied concurrent edit.
type CatalogRepository struct {
	mu       sync.RWMutex
	products map[string]*domain.Product
}

func NewCatalogRepository() *CatalogRepository {
	return &CatalogRepository{
		products: make(map[string]*domain.Product),
	}
}

func (r *CatalogRepository) Insert(ctx context.Context, product *domain.Product) error {
	_ = ctx
	if product == nil || product.ID == "" {
		return fmt.Errorf("catalog repository: id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.products[product.ID] = product.Clone()
	return nil
}

func (r *CatalogRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return product.Clone(), nil
}

func (r *CatalogRepository) FindAllByID(ctx context.Context, ids []string) ([]*domain.Product, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	found := make([]*domain.Product, 0, len(ids))
	for _, id := range ids {
		if product, ok := r.products[id]; ok {
			found = append(found, product.Clone())
		}
	}
	return found, nil
}

func (r *CatalogRepository) FindAll(ctx context.Context) ([]*domain.Product, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]*domain.Product, 0, len(r.products))
	for _, product := range r.products {
		all = append(all, product.Clone())
	}
	return all, nil
}

func (r *CatalogRepository) Update(ctx context.Context, id string, mutate func(*domain.Product) error) (*domain.Product, error) {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}

	candidate := current.Clone()
	if err := mutate(candidate); err != nil {
		return nil, err
	}
	candidate.Version = current.Version + 1

	r.products[id] = candidate
	return candidate.Clone(), nil
}

func (r *CatalogRepository) Delete(ctx context.Context, id string) error {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.products, id)
	return nil
}
