package cart

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("cart: not found")

// Cart is a mutable set of product references owned by one user. The total is
// derived from current catalog prices at read time; order creation does not
// consume the cart.
type Cart struct {
	ID         string
	UserID     string
	ProductIDs []string
	UpdatedAt  time.Time
}

func New(id, userID string) *Cart {
	return &Cart{
		ID:        id,
		UserID:    userID,
		UpdatedAt: time.Now().UTC(),
	}
}

func (c *Cart) AddProduct(productID string) {
	for _, id := range c.ProductIDs {
		if id == productID {
			return
		}
	}
	c.ProductIDs = append(c.ProductIDs, productID)
	c.touch()
}

func (c *Cart) RemoveProduct(productID string) {
	for i, id := range c.ProductIDs {
		if id == productID {
			c.ProductIDs = append(c.ProductIDs[:i], c.ProductIDs[i+1:]...)
			c.touch()
			return
		}
	}
}

func (c *Cart) Clear() {
	c.ProductIDs = nil
	c.touch()
}

func (c *Cart) Clone() *Cart {
	if c == nil {
		return nil
	}
	clone := *c
	clone.ProductIDs = append([]string(nil), c.ProductIDs...)
	return &clone
}

func (c *Cart) touch() {
	c.UpdatedAt = time.Now().UTC()
}

type Repository interface {
	Save(ctx context.Context, cart *Cart) error
	FindByUser(ctx context.Context, userID string) (*Cart, error)
}
