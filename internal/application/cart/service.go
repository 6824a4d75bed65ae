// Package cart is simple per-user cart bookkeeping. The cart is a mutable set
// of product references with a derived total; order creation does not read it.
package cart

import (
	"context"
	"errors"

	domain "github.com/ferrishop/commerce-core/internal/domain/cart"
	domcat "github.com/ferrishop/commerce-core/internal/domain/catalog"
	domuser "github.com/ferrishop/commerce-core/internal/domain/user"
	"github.com/ferrishop/commerce-core/internal/infrastructure/id"
	"github.com/shopspring/decimal"
)

type Service struct {
	carts       domain.Repository
	catalog     domcat.Repository
	users       domuser.Repository
	idGenerator id.Generator
}

func NewService(carts domain.Repository, catalog domcat.Repository, users domuser.Repository, idGen id.Generator) *Service {
	return &Service{
		carts:       carts,
		catalog:     catalog,
		users:       users,
		idGenerator: idGen,
	}
}

// GetOrCreateCart returns the user's cart, creating an empty one on first use.
func (s *Service) GetOrCreateCart(ctx context.Context, userID string) (*domain.Cart, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}

	existing, err := s.carts.FindByUser(ctx, userID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	fresh := domain.New(s.idGenerator.NewID(), userID)
	if err := s.carts.Save(ctx, fresh); err != nil {
		return nil, err
	}
	return fresh, nil
}

func (s *Service) AddProduct(ctx context.Context, userID, productID string) (*domain.Cart, error) {
	if _, err := s.catalog.FindByID(ctx, productID); err != nil {
		return nil, err
	}
	return s.mutate(ctx, userID, func(c *domain.Cart) { c.AddProduct(productID) })
}

func (s *Service) RemoveProduct(ctx context.Context, userID, productID string) (*domain.Cart, error) {
	if _, err := s.catalog.FindByID(ctx, productID); err != nil {
		return nil, err
	}
	return s.mutate(ctx, userID, func(c *domain.Cart) { c.RemoveProduct(productID) })
}

func (s *Service) ClearCart(ctx context.Context, userID string) (*domain.Cart, error) {
	return s.mutate(ctx, userID, func(c *domain.Cart) { c.Clear() })
}

// CartTotal derives the current total from live catalog prices. Products that
// have since been deleted contribute nothing.
func (s *Service) CartTotal(ctx context.Context, userID string) (decimal.Decimal, error) {
	cart, err := s.GetOrCreateCart(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}
	products, err := s.catalog.FindAllByID(ctx, cart.ProductIDs)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, p := range products {
		total = total.Add(p.Price)
	}
	return total, nil
}

func (s *Service) mutate(ctx context.Context, userID string, apply func(*domain.Cart)) (*domain.Cart, error) {
	cart, err := s.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	apply(cart)
	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}
