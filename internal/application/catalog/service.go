// Package catalog is the product maintenance surface: single-entity CRUD and
// search with no invariants beyond field validation. Stock mutation lives in
// the inventory service, not here; this service only seeds the initial
// quantity at creation and applies absolute overwrites on update.
package catalog

import (
	"context"
	"strings"

	domain "github.com/ferrishop/commerce-core/internal/domain/catalog"
	"github.com/ferrishop/commerce-core/internal/infrastructure/id"
	"github.com/shopspring/decimal"
)

// maxPriceFilter is the open upper bound for price-range filtering.
var maxPriceFilter = decimal.RequireFromString("999999.99")

type Service struct {
	catalog     domain.Repository
	idGenerator id.Generator
}

func NewService(catalog domain.Repository, idGen id.Generator) *Service {
	return &Service{
		catalog:     catalog,
		idGenerator: idGen,
	}
}

type CreateProductInput struct {
	Name          string
	Description   string
	Price         decimal.Decimal
	StockQuantity int
	// MinStockLevel falls back to the domain default when negative.
	MinStockLevel int
}

func (s *Service) CreateProduct(ctx context.Context, input CreateProductInput) (*domain.Product, error) {
	minLevel := input.MinStockLevel
	if minLevel < 0 {
		minLevel = domain.DefaultMinStockLevel
	}
	product, err := domain.New(
		s.idGenerator.NewID(),
		strings.TrimSpace(input.Name),
		input.Description,
		input.Price,
		input.StockQuantity,
		minLevel,
	)
	if err != nil {
		return nil, err
	}
	if err := s.catalog.Insert(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

type UpdateProductInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	// StockQuantity and MinStockLevel are applied only when non-negative.
	StockQuantity int
	MinStockLevel int
}

func (s *Service) UpdateProduct(ctx context.Context, productID string, input UpdateProductInput) (*domain.Product, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, domain.ErrInvalidName
	}
	if input.Price.IsNegative() {
		return nil, domain.ErrInvalidPrice
	}
	return s.catalog.Update(ctx, productID, func(p *domain.Product) error {
		p.Name = strings.TrimSpace(input.Name)
		p.Description = input.Description
		p.Price = input.Price
		if input.StockQuantity >= 0 {
			if err := p.SetStock(input.StockQuantity); err != nil {
				return err
			}
		}
		if input.MinStockLevel >= 0 {
			if err := p.SetMinStockLevel(input.MinStockLevel); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Service) GetProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	return s.catalog.FindByID(ctx, productID)
}

func (s *Service) GetAllProducts(ctx context.Context) ([]*domain.Product, error) {
	return s.catalog.FindAll(ctx)
}

func (s *Service) DeleteProduct(ctx context.Context, productID string) error {
	return s.catalog.Delete(ctx, productID)
}

// SearchProducts returns products whose name contains the query,
// case-insensitively. A blank query returns everything.
func (s *Service) SearchProducts(ctx context.Context, query string) ([]*domain.Product, error) {
	query = strings.TrimSpace(query)
	all, err := s.catalog.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if query == "" {
		return all, nil
	}

	needle := strings.ToLower(query)
	var matched []*domain.Product
	for _, p := range all {
		if strings.Contains(strings.ToLower(p.Name), needle) {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

// FilterByPrice returns products priced within [minPrice, maxPrice]. Nil
// bounds default to zero and the catalog-wide maximum respectively.
func (s *Service) FilterByPrice(ctx context.Context, minPrice, maxPrice *decimal.Decimal) ([]*domain.Product, error) {
	lo := decimal.Zero
	hi := maxPriceFilter
	if minPrice != nil {
		lo = *minPrice
	}
	if maxPrice != nil {
		hi = *maxPrice
	}

	all, err := s.catalog.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	var matched []*domain.Product
	for _, p := range all {
		if p.Price.GreaterThanOrEqual(lo) && p.Price.LessThanOrEqual(hi) {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

// SearchFilterInput combines the individual search criteria; nil (or blank)
// fields do not constrain the result.
type SearchFilterInput struct {
	Name      string
	MinPrice  *decimal.Decimal
	MaxPrice  *decimal.Decimal
	Available *bool
}

// SearchAndFilter returns products matching every given criterion at once:
// name substring, price range and availability.
func (s *Service) SearchAndFilter(ctx context.Context, input SearchFilterInput) ([]*domain.Product, error) {
	all, err := s.catalog.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(strings.TrimSpace(input.Name))
	var matched []*domain.Product
	for _, p := range all {
		if needle != "" && !strings.Contains(strings.ToLower(p.Name), needle) {
			continue
		}
		if input.MinPrice != nil && p.Price.LessThan(*input.MinPrice) {
			continue
		}
		if input.MaxPrice != nil && p.Price.GreaterThan(*input.MaxPrice) {
			continue
		}
		if input.Available != nil && p.IsAvailable != *input.Available {
			continue
		}
		matched = append(matched, p)
	}
	return matched, nil
}

func (s *Service) GetAvailableProducts(ctx context.Context) ([]*domain.Product, error) {
	return s.filterAvailability(ctx, true)
}

func (s *Service) GetUnavailableProducts(ctx context.Context) ([]*domain.Product, error) {
	return s.filterAvailability(ctx, false)
}

func (s *Service) filterAvailability(ctx context.Context, available bool) ([]*domain.Product, error) {
	all, err := s.catalog.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	var matched []*domain.Product
	for _, p := range all {
		if p.IsAvailable == available {
			matched = append(matched, p)
		}
	}
	return matched, nil
}
