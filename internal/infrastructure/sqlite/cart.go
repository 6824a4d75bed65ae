package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	domain "github.com/ferrishop/commerce-core/internal/domain/cart"
)

type CartRepository struct {
	store *Store
}

func (s *Store) Carts() *CartRepository { return &CartRepository{store: s} }

func (r *CartRepository) Save(ctx context.Context, cart *domain.Cart) error {
	productIDs, err := json.Marshal(cart.ProductIDs)
	if err != nil {
		return fmt.Errorf("sqlite: encode cart products: %w", err)
	}
	_, err = r.store.querier(ctx).ExecContext(ctx,
		`INSERT INTO carts (id, user_id, product_ids, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET product_ids = excluded.product_ids, updated_at = excluded.updated_at`,
		cart.ID, cart.UserID, string(productIDs), formatTime(cart.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("sqlite: save cart: %w", err)
	}
	return nil
}

func (r *CartRepository) FindByUser(ctx context.Context, userID string) (*domain.Cart, error) {
	var (
		c          domain.Cart
		productIDs string
		updatedAt  string
	)
	err := r.store.querier(ctx).QueryRowContext(ctx,
		`SELECT id, user_id, product_ids, updated_at FROM carts WHERE user_id = ?`, userID).
		Scan(&c.ID, &c.UserID, &productIDs, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: scan cart: %w", err)
	}

	if err := json.Unmarshal([]byte(productIDs), &c.ProductIDs); err != nil {
		return nil, fmt.Errorf("sqlite: decode cart products: %w", err)
	}
	if c.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}
