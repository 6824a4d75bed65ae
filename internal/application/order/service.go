// Package order implements the order workflow: creation over a one-shot
// pricing snapshot, direct status updates, and status-indexed retrieval.
package order

import (
	"context"
	"fmt"

	domcat "github.com/ferrishop/commerce-core/internal/domain/catalog"
	domain "github.com/ferrishop/commerce-core/internal/domain/order"
	domoutbox "github.com/ferrishop/commerce-core/internal/domain/outbox"
	domuser "github.com/ferrishop/commerce-core/internal/domain/user"
	"github.com/ferrishop/commerce-core/internal/infrastructure/id"
	"github.com/ferrishop/commerce-core/internal/pkg/logging"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Service struct {
	orders      domain.Repository
	catalog     domcat.Repository
	users       domuser.Repository
	idGenerator id.Generator
	publisher   domoutbox.Publisher
}

func NewService(
	orders domain.Repository,
	catalog domcat.Repository,
	users domuser.Repository,
	idGen id.Generator,
	publisher domoutbox.Publisher,
) *Service {
	return &Service{
		orders:      orders,
		catalog:     catalog,
		users:       users,
		idGenerator: idGen,
		publisher:   publisher,
	}
}

// CreateOrder resolves the user and every referenced product, sums the current
// prices into a frozen total, and persists a CREATED order. The product batch
// is read in one consistent snapshot, so a concurrent price edit is either
// entirely in or entirely out of the total. Stock is deliberately not
// reserved or decremented here; that is a separate inventory call.
func (s *Service) CreateOrder(ctx context.Context, userID string, productIDs []string) (*domain.Order, error) {
	logger := logging.FromContext(ctx).With(zap.String("component", "order_service"))

	if userID == "" {
		return nil, domain.ErrUserRequired
	}
	if len(productIDs) == 0 {
		return nil, domain.ErrNoProducts
	}

	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}

	distinct := distinctIDs(productIDs)
	products, err := s.catalog.FindAllByID(ctx, distinct)
	if err != nil {
		return nil, fmt.Errorf("order: resolve products: %w", err)
	}
	if len(products) != len(distinct) {
		return nil, domcat.ErrProductsMissing
	}

	// Decimal addition is exact, commutative and associative, so the total
	// does not depend on map iteration order.
	total := decimal.Zero
	for _, p := range products {
		total = total.Add(p.Price)
	}

	entity, err := domain.New(s.idGenerator.NewID(), userID, distinct, total)
	if err != nil {
		return nil, err
	}

	if err := s.orders.Insert(ctx, entity); err != nil {
		logger.Error("order_insert_failed", zap.String("order_id", entity.ID), zap.Error(err))
		return nil, fmt.Errorf("order: insert: %w", err)
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, domain.NewOrderCreatedEvent(entity)); err != nil {
			logger.Warn("order_created_publish_failed", zap.String("order_id", entity.ID), zap.Error(err))
		}
	}

	logger.Info("order_created",
		zap.String("order_id", entity.ID),
		zap.String("user_id", userID),
		zap.Int("products", len(distinct)),
		zap.String("total", entity.TotalAmount.String()),
	)
	return entity, nil
}

// UpdateOrderStatus overwrites the order status and, when non-blank, the
// tracking number. Any status value from the closed set is accepted here.
func (s *Service) UpdateOrderStatus(ctx context.Context, orderID string, status domain.Status, trackingNumber string) (*domain.Order, error) {
	return s.orders.Update(ctx, orderID, func(o *domain.Order) error {
		o.SetStatus(status, trackingNumber)
		return nil
	})
}

// GetOrdersForUser lists a user's orders; the user must exist.
func (s *Service) GetOrdersForUser(ctx context.Context, userID string) ([]*domain.Order, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.orders.FindByUser(ctx, userID)
}

func (s *Service) GetOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	return s.orders.FindByID(ctx, orderID)
}

func (s *Service) GetOrdersByStatus(ctx context.Context, status domain.Status) ([]*domain.Order, error) {
	return s.orders.FindByStatus(ctx, status)
}

func distinctIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
