package catalog

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound          = errors.New("catalog: product not found")
	ErrProductsMissing   = errors.New("catalog: one or more products not found")
	ErrInvalidName       = errors.New("catalog: product name must not be empty")
	ErrInvalidPrice      = errors.New("catalog: price must be zero or greater")
	ErrInvalidQuantity   = errors.New("catalog: quantity must be greater than zero")
	ErrInvalidStockLevel = errors.New("catalog: stock level must be zero or greater")
	ErrInsufficientStock = errors.New("catalog: insufficient stock")
)

// InsufficientStockError reports how short a stock reduction fell so callers can
// decide between retrying with less or aborting.
type InsufficientStockError struct {
	ProductID string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("catalog: insufficient stock: available %d, requested %d", e.Available, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// DefaultMinStockLevel is applied when a product is created without an explicit
// low-stock threshold.
const DefaultMinStockLevel = 5

// Product is the catalog entry plus its authoritative stock counters.
// IsAvailable is derived from StockQuantity and recomputed on every stock or
// threshold mutation; it is never set independently in normal flow.
type Product struct {
	ID            string
	Name          string
	Description   string
	Price         decimal.Decimal
	StockQuantity int
	MinStockLevel int
	IsAvailable   bool

	// Version stamps the stock value for optimistic concurrency control in
	// stores that cannot hold a per-row lock across a read-modify-write.
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

func New(id, name, description string, price decimal.Decimal, stockQuantity, minStockLevel int) (*Product, error) {
	if name == "" {
		return nil, ErrInvalidName
	}
	if price.IsNegative() {
		return nil, ErrInvalidPrice
	}
	if stockQuantity < 0 {
		return nil, ErrInvalidStockLevel
	}
	if minStockLevel < 0 {
		return nil, ErrInvalidStockLevel
	}

	now := time.Now().UTC()
	p := &Product{
		ID:            id,
		Name:          name,
		Description:   description,
		Price:         price,
		StockQuantity: stockQuantity,
		MinStockLevel: minStockLevel,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	p.updateAvailability()
	return p, nil
}

// AddStock increments the stock counter and recomputes availability.
func (p *Product) AddStock(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	p.StockQuantity += quantity
	p.updateAvailability()
	p.touch()
	return nil
}

// ReduceStock decrements the stock counter only when enough stock remains.
// On shortage it returns InsufficientStockError and leaves the product unchanged.
func (p *Product) ReduceStock(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if p.StockQuantity < quantity {
		return &InsufficientStockError{
			ProductID: p.ID,
			Available: p.StockQuantity,
			Requested: quantity,
		}
	}
	p.StockQuantity -= quantity
	p.updateAvailability()
	p.touch()
	return nil
}

// SetStock overwrites the stock counter with an absolute value.
func (p *Product) SetStock(quantity int) error {
	if quantity < 0 {
		return ErrInvalidStockLevel
	}
	p.StockQuantity = quantity
	p.updateAvailability()
	p.touch()
	return nil
}

// SetMinStockLevel adjusts the low-stock threshold.
func (p *Product) SetMinStockLevel(level int) error {
	if level < 0 {
		return ErrInvalidStockLevel
	}
	p.MinStockLevel = level
	p.updateAvailability()
	p.touch()
	return nil
}

func (p *Product) InStock() bool { return p.StockQuantity > 0 }

func (p *Product) LowStock() bool { return p.StockQuantity <= p.MinStockLevel }

func (p *Product) Clone() *Product {
	if p == nil {
		return nil
	}
	clone := *p
	return &clone
}

func (p *Product) updateAvailability() {
	p.IsAvailable = p.StockQuantity > 0
}

func (p *Product) touch() {
	p.UpdatedAt = time.Now().UTC()
}
