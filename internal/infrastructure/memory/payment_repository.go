package memory

import (
	"context"
	"fmt"
	"sync"

	domain "github.com/ferrishop/commerce-core/internal/domain/payment"
)

// PaymentRepository enforces the one-payment-per-order rule with a by-order
// index checked under the same write lock as the insert, so two concurrent
// inserts for one order cannot both pass the check.
type PaymentRepository struct {
	mu       sync.RWMutex
	payments map[string]*domain.Payment
	byOrder  map[string]string
}

func NewPaymentRepository() *PaymentRepository {
	return &PaymentRepository{
		payments: make(map[string]*domain.Payment),
		byOrder:  make(map[string]string),
	}
}

func (r *PaymentRepository) Insert(ctx context.Context, payment *domain.Payment) error {
	_ = ctx
	if payment == nil || payment.ID == "" {
		return fmt.Errorf("payment repository: id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byOrder[payment.OrderID]; exists {
		return domain.ErrAlreadyExists
	}

	r.payments[payment.ID] = payment.Clone()
	r.byOrder[payment.OrderID] = payment.ID
	return nil
}

func (r *PaymentRepository) FindByID(ctx context.Context, id string) (*domain.Payment, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	payment, ok := r.payments[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return payment.Clone(), nil
}

func (r *PaymentRepository) FindByOrder(ctx context.Context, orderID string) (*domain.Payment, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byOrder[orderID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return r.payments[id].Clone(), nil
}

func (r *PaymentRepository) FindByStatus(ctx context.Context, status domain.Status) ([]*domain.Payment, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	var found []*domain.Payment
	for _, payment := range r.payments {
		if payment.Status == status {
			found = append(found, payment.Clone())
		}
	}
	return found, nil
}

func (r *PaymentRepository) FindByTransactionID(ctx context.Context, transactionID string) (*domain.Payment, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, payment := range r.payments {
		if payment.TransactionID == transactionID {
			return payment.Clone(), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *PaymentRepository) Update(ctx context.Context, id string, mutate func(*domain.Payment) error) (*domain.Payment, error) {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.payments[id]
	if !ok {
		return nil, domain.ErrNotFound
	}

	candidate := current.Clone()
	if err := mutate(candidate); err != nil {
		return nil, err
	}

	r.payments[id] = candidate
	return candidate.Clone(), nil
}
