package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	domain "github.com/ferrishop/commerce-core/internal/domain/order"
	"github.com/shopspring/decimal"
)

type OrderRepository struct {
	store *Store
}

func (s *Store) Orders() *OrderRepository { return &OrderRepository{store: s} }

const orderColumns = "id, user_id, product_ids, total_amount, order_date, status, tracking_number, updated_at"

func (r *OrderRepository) Insert(ctx context.Context, order *domain.Order) error {
	productIDs, err := json.Marshal(order.ProductIDs)
	if err != nil {
		return fmt.Errorf("sqlite: encode product ids: %w", err)
	}
	_, err = r.store.querier(ctx).ExecContext(ctx,
		`INSERT INTO orders (`+orderColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		order.ID, order.UserID, string(productIDs), order.TotalAmount.String(),
		formatTime(order.OrderDate), string(order.Status), order.TrackingNumber,
		formatTime(order.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("sqlite: insert order: %w", err)
	}
	return nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	row := r.store.querier(ctx).QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = ?`, id)
	return scanOrder(row)
}

func (r *OrderRepository) FindByUser(ctx context.Context, userID string) ([]*domain.Order, error) {
	rows, err := r.store.querier(ctx).QueryContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE user_id = ? ORDER BY order_date`, userID)
	if err != nil {
		return nil, fmt.Errorf("sqlite: find orders by user: %w", err)
	}
	defer rows.Close()
	return collectOrders(rows)
}

func (r *OrderRepository) FindByStatus(ctx context.Context, status domain.Status) ([]*domain.Order, error) {
	rows, err := r.store.querier(ctx).QueryContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE status = ? ORDER BY order_date`, string(status))
	if err != nil {
		return nil, fmt.Errorf("sqlite: find orders by status: %w", err)
	}
	defer rows.Close()
	return collectOrders(rows)
}

// Update runs the mutation inside a unit so the read and the write commit
// together even when called outside an enclosing WithinUnit.
func (r *OrderRepository) Update(ctx context.Context, id string, mutate func(*domain.Order) error) (*domain.Order, error) {
	var updated *domain.Order
	err := r.store.WithinUnit(ctx, func(ctx context.Context) error {
		current, err := r.FindByID(ctx, id)
		if err != nil {
			return err
		}

		candidate := current.Clone()
		if err := mutate(candidate); err != nil {
			return err
		}

		_, err = r.store.querier(ctx).ExecContext(ctx,
			`UPDATE orders SET status = ?, tracking_number = ?, updated_at = ? WHERE id = ?`,
			string(candidate.Status), candidate.TrackingNumber, formatTime(candidate.UpdatedAt), id)
		if err != nil {
			return fmt.Errorf("sqlite: update order: %w", err)
		}
		updated = candidate
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	var (
		o                    domain.Order
		productIDs           string
		total                string
		orderDate, updatedAt string
		status               string
	)
	err := row.Scan(&o.ID, &o.UserID, &productIDs, &total, &orderDate, &status, &o.TrackingNumber, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: scan order: %w", err)
	}

	if err := json.Unmarshal([]byte(productIDs), &o.ProductIDs); err != nil {
		return nil, fmt.Errorf("sqlite: decode product ids: %w", err)
	}
	if o.TotalAmount, err = decimal.NewFromString(total); err != nil {
		return nil, fmt.Errorf("sqlite: parse total: %w", err)
	}
	o.Status = domain.Status(status)
	if o.OrderDate, err = parseTime(orderDate); err != nil {
		return nil, err
	}
	if o.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &o, nil
}

func collectOrders(rows *sql.Rows) ([]*domain.Order, error) {
	var orders []*domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}
