// Package inventory is the stock ledger: the single owner of stock counter
// mutation. Every mutation is a check-then-act executed inside the catalog
// store's per-product serialization boundary, so concurrent reductions can
// never oversell.
package inventory

import (
	"context"
	"errors"

	domcat "github.com/ferrishop/commerce-core/internal/domain/catalog"
	domoutbox "github.com/ferrishop/commerce-core/internal/domain/outbox"
	"github.com/ferrishop/commerce-core/internal/pkg/logging"
	"go.uber.org/zap"
)

type Service struct {
	catalog   domcat.Repository
	publisher domoutbox.Publisher
}

func NewService(catalog domcat.Repository, publisher domoutbox.Publisher) *Service {
	return &Service{
		catalog:   catalog,
		publisher: publisher,
	}
}

// AddStock increments a product's stock and returns the updated product.
func (s *Service) AddStock(ctx context.Context, productID string, quantity int) (*domcat.Product, error) {
	updated, err := s.catalog.Update(ctx, productID, func(p *domcat.Product) error {
		return p.AddStock(quantity)
	})
	if err != nil {
		return nil, err
	}
	s.notifyIfLow(ctx, updated)
	return updated, nil
}

// ReduceStock decrements a product's stock if enough remains. On shortage it
// returns catalog.InsufficientStockError and the stock is left untouched; two
// concurrent reductions serialize, so their combined effect never oversells.
func (s *Service) ReduceStock(ctx context.Context, productID string, quantity int) (*domcat.Product, error) {
	updated, err := s.catalog.Update(ctx, productID, func(p *domcat.Product) error {
		return p.ReduceStock(quantity)
	})
	if err != nil {
		var insufficient *domcat.InsufficientStockError
		if errors.As(err, &insufficient) {
			logging.FromContext(ctx).Warn("stock_reduction_rejected",
				zap.String("component", "inventory_service"),
				zap.String("product_id", productID),
				zap.Int("available", insufficient.Available),
				zap.Int("requested", insufficient.Requested),
			)
		}
		return nil, err
	}
	s.notifyIfLow(ctx, updated)
	return updated, nil
}

// SetStock overwrites a product's stock with an absolute value.
func (s *Service) SetStock(ctx context.Context, productID string, quantity int) (*domcat.Product, error) {
	updated, err := s.catalog.Update(ctx, productID, func(p *domcat.Product) error {
		return p.SetStock(quantity)
	})
	if err != nil {
		return nil, err
	}
	s.notifyIfLow(ctx, updated)
	return updated, nil
}

// SetMinStockLevel adjusts a product's low-stock threshold. Raising the
// threshold can newly put a product below it, so this notifies too.
func (s *Service) SetMinStockLevel(ctx context.Context, productID string, level int) (*domcat.Product, error) {
	updated, err := s.catalog.Update(ctx, productID, func(p *domcat.Product) error {
		return p.SetMinStockLevel(level)
	})
	if err != nil {
		return nil, err
	}
	s.notifyIfLow(ctx, updated)
	return updated, nil
}

// LowStockProducts lists products at or below their low-stock threshold.
func (s *Service) LowStockProducts(ctx context.Context) ([]*domcat.Product, error) {
	return s.filter(ctx, (*domcat.Product).LowStock)
}

// OutOfStockProducts lists products with zero stock.
func (s *Service) OutOfStockProducts(ctx context.Context) ([]*domcat.Product, error) {
	return s.filter(ctx, func(p *domcat.Product) bool { return !p.InStock() })
}

// AvailableProducts lists products with stock remaining.
func (s *Service) AvailableProducts(ctx context.Context) ([]*domcat.Product, error) {
	return s.filter(ctx, (*domcat.Product).InStock)
}

// CheckAvailability reports whether the product exists and has at least the
// requested quantity in stock.
func (s *Service) CheckAvailability(ctx context.Context, productID string, quantity int) (bool, error) {
	product, err := s.catalog.FindByID(ctx, productID)
	if errors.Is(err, domcat.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return product.StockQuantity >= quantity, nil
}

func (s *Service) filter(ctx context.Context, keep func(*domcat.Product) bool) ([]*domcat.Product, error) {
	all, err := s.catalog.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	var matched []*domcat.Product
	for _, p := range all {
		if keep(p) {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

func (s *Service) notifyIfLow(ctx context.Context, p *domcat.Product) {
	if s.publisher == nil || p == nil || !p.LowStock() {
		return
	}
	if err := s.publisher.Publish(ctx, domcat.NewStockLowEvent(p)); err != nil {
		logging.FromContext(ctx).Warn("stock_low_publish_failed",
			zap.String("component", "inventory_service"),
			zap.String("product_id", p.ID),
			zap.Error(err),
		)
	}
}
