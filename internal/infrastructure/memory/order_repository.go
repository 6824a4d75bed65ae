package memory

import (
	"context"
	"fmt"
	"sync"

	domain "github.com/ferrishop/commerce-core/internal/domain/order"
)

type OrderRepository struct {
	mu     sync.RWMutex
	orders map[string]*domain.Order
}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{
		orders: make(map[string]*domain.Order),
	}
}

func (r *OrderRepository) Insert(ctx context.Context, order *domain.Order) error {
	_ = ctx
	if order == nil || order.ID == "" {
		return fmt.Errorf("order repository: id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.orders[order.ID] = order.Clone()
	return nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return order.Clone(), nil
}

func (r *OrderRepository) FindByUser(ctx context.Context, userID string) ([]*domain.Order, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	var found []*domain.Order
	for _, order := range r.orders {
		if order.UserID == userID {
			found = append(found, order.Clone())
		}
	}
	return found, nil
}

func (r *OrderRepository) FindByStatus(ctx context.Context, status domain.Status) ([]*domain.Order, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	var found []*domain.Order
	for _, order := range r.orders {
		if order.Status == status {
			found = append(found, order.Clone())
		}
	}
	return found, nil
}

func (r *OrderRepository) Update(ctx context.Context, id string, mutate func(*domain.Order) error) (*domain.Order, error) {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}

	candidate := current.Clone()
	if err := mutate(candidate); err != nil {
		return nil, err
	}

	r.orders[id] = candidate
	return candidate.Clone(), nil
}
