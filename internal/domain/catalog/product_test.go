package catalog

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProduct(t *testing.T, stock, minLevel int) *Product {
	t.Helper()
	p, err := New("p-1", "Widget", "A widget", decimal.RequireFromString("9.99"), stock, minLevel)
	require.NoError(t, err)
	return p
}

func TestNewProductValidation(t *testing.T) {
	price := decimal.RequireFromString("9.99")

	tests := []struct {
		name    string
		product string
		price   decimal.Decimal
		stock   int
		min     int
		wantErr error
	}{
		{name: "empty name", product: "", price: price, stock: 1, min: 1, wantErr: ErrInvalidName},
		{name: "negative price", product: "Widget", price: decimal.RequireFromString("-0.01"), stock: 1, min: 1, wantErr: ErrInvalidPrice},
		{name: "negative stock", product: "Widget", price: price, stock: -1, min: 1, wantErr: ErrInvalidStockLevel},
		{name: "negative min level", product: "Widget", price: price, stock: 1, min: -1, wantErr: ErrInvalidStockLevel},
		{name: "zero price ok", product: "Widget", price: decimal.Zero, stock: 0, min: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := New("p-1", tt.product, "", tt.price, tt.stock, tt.min)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, p)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.stock > 0, p.IsAvailable)
		})
	}
}

func TestReduceStockShortageLeavesProductUnchanged(t *testing.T) {
	p := newTestProduct(t, 100, 5)

	require.NoError(t, p.ReduceStock(30))
	assert.Equal(t, 70, p.StockQuantity)

	err := p.ReduceStock(100)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	var shortage *InsufficientStockError
	require.ErrorAs(t, err, &shortage)
	assert.Equal(t, 70, shortage.Available)
	assert.Equal(t, 100, shortage.Requested)

	assert.Equal(t, 70, p.StockQuantity, "rejected reduction must not change stock")
	assert.True(t, p.IsAvailable)
}

func TestReduceStockToZeroFlipsAvailability(t *testing.T) {
	p := newTestProduct(t, 3, 5)

	require.NoError(t, p.ReduceStock(3))
	assert.Equal(t, 0, p.StockQuantity)
	assert.False(t, p.IsAvailable)
	assert.False(t, p.InStock())

	require.NoError(t, p.AddStock(1))
	assert.True(t, p.IsAvailable)
}

func TestStockMutationRejectsNonPositiveQuantity(t *testing.T) {
	p := newTestProduct(t, 10, 5)

	assert.ErrorIs(t, p.AddStock(0), ErrInvalidQuantity)
	assert.ErrorIs(t, p.AddStock(-1), ErrInvalidQuantity)
	assert.ErrorIs(t, p.ReduceStock(0), ErrInvalidQuantity)
	assert.ErrorIs(t, p.SetStock(-1), ErrInvalidStockLevel)
	assert.ErrorIs(t, p.SetMinStockLevel(-1), ErrInvalidStockLevel)
	assert.Equal(t, 10, p.StockQuantity)
}

func TestLowStock(t *testing.T) {
	p := newTestProduct(t, 6, 5)
	assert.False(t, p.LowStock())

	require.NoError(t, p.ReduceStock(1))
	assert.True(t, p.LowStock(), "at threshold counts as low")

	require.NoError(t, p.SetMinStockLevel(3))
	assert.False(t, p.LowStock())
}

func TestSetStockOverwrites(t *testing.T) {
	p := newTestProduct(t, 10, 5)

	require.NoError(t, p.SetStock(0))
	assert.False(t, p.IsAvailable)

	require.NoError(t, p.SetStock(42))
	assert.Equal(t, 42, p.StockQuantity)
	assert.True(t, p.IsAvailable)
}

func TestCloneIsIndependent(t *testing.T) {
	p := newTestProduct(t, 10, 5)
	clone := p.Clone()

	require.NoError(t, clone.ReduceStock(10))
	assert.Equal(t, 10, p.StockQuantity)
	assert.Equal(t, 0, clone.StockQuantity)
}

func TestInsufficientStockErrorUnwraps(t *testing.T) {
	err := error(&InsufficientStockError{ProductID: "p-1", Available: 1, Requested: 2})
	assert.True(t, errors.Is(err, ErrInsufficientStock))
	assert.Contains(t, err.Error(), "available 1")
	assert.Contains(t, err.Error(), "requested 2")
}
