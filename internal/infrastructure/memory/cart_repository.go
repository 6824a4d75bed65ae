package memory

import (
	"context"
	"fmt"
	"sync"

	domain "github.com/ferrishop/commerce-core/internal/domain/cart"
)

type CartRepository struct {
	mu     sync.RWMutex
	byUser map[string]*domain.Cart
}

func NewCartRepository() *CartRepository {
	return &CartRepository{
		byUser: make(map[string]*domain.Cart),
	}
}

func (r *CartRepository) Save(ctx context.Context, cart *domain.Cart) error {
	_ = ctx
	if cart == nil || cart.UserID == "" {
		return fmt.Errorf("cart repository: user id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.byUser[cart.UserID] = cart.Clone()
	return nil
}

func (r *CartRepository) FindByUser(ctx context.Context, userID string) (*domain.Cart, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	cart, ok := r.byUser[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cart.Clone(), nil
}
