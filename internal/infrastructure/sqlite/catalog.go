package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	domain "github.com/ferrishop/commerce-core/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// updateRetries bounds the optimistic version-check loop. Contention on a
// single product is short-lived; running out of retries surfaces as an error
// rather than a silent lost update.
const updateRetries = 10

type CatalogRepository struct {
	store *Store
}

func (s *Store) Catalog() *CatalogRepository { return &CatalogRepository{store: s} }

const productColumns = "id, name, description, price, stock_quantity, min_stock_level, is_available, version, created_at, updated_at"

func (r *CatalogRepository) Insert(ctx context.Context, product *domain.Product) error {
	q := r.store.querier(ctx)
	_, err := q.ExecContext(ctx,
		`INSERT INTO products (`+productColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		product.ID, product.Name, product.Description, product.Price.String(),
		product.StockQuantity, product.MinStockLevel, boolToInt(product.IsAvailable),
		product.Version, formatTime(product.CreatedAt), formatTime(product.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("sqlite: insert product: %w", err)
	}
	return nil
}

func (r *CatalogRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	row := r.store.querier(ctx).QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = ?`, id)
	return scanProduct(row)
}

func (r *CatalogRepository) FindAllByID(ctx context.Context, ids []string) ([]*domain.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := r.store.querier(ctx).QueryContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE id IN (`+placeholders+`)`, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: find products: %w", err)
	}
	defer rows.Close()
	return collectProducts(rows)
}

func (r *CatalogRepository) FindAll(ctx context.Context) ([]*domain.Product, error) {
	rows, err := r.store.querier(ctx).QueryContext(ctx,
		`SELECT `+productColumns+` FROM products ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list products: %w", err)
	}
	defer rows.Close()
	return collectProducts(rows)
}

// Update re-reads the row, applies the mutation and writes it back guarded by
// the version stamp. A concurrent writer bumps the version and this attempt
// retries on the fresh row.
func (r *CatalogRepository) Update(ctx context.Context, id string, mutate func(*domain.Product) error) (*domain.Product, error) {
	q := r.store.querier(ctx)

	for attempt := 0; attempt < updateRetries; attempt++ {
		current, err := r.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}

		candidate := current.Clone()
		if err := mutate(candidate); err != nil {
			return nil, err
		}
		candidate.Version = current.Version + 1

		res, err := q.ExecContext(ctx,
			`UPDATE products
			 SET name = ?, description = ?, price = ?, stock_quantity = ?,
			     min_stock_level = ?, is_available = ?, version = ?, updated_at = ?
			 WHERE id = ? AND version = ?`,
			candidate.Name, candidate.Description, candidate.Price.String(),
			candidate.StockQuantity, candidate.MinStockLevel, boolToInt(candidate.IsAvailable),
			candidate.Version, formatTime(candidate.UpdatedAt),
			id, current.Version,
		)
		if err != nil {
			return nil, fmt.Errorf("sqlite: update product: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return nil, err
		}
		if affected == 1 {
			return candidate, nil
		}
	}
	return nil, fmt.Errorf("sqlite: update product %s: version conflict persisted", id)
}

func (r *CatalogRepository) Delete(ctx context.Context, id string) error {
	res, err := r.store.querier(ctx).ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: delete product: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	var (
		p                    domain.Product
		price                string
		available            int
		createdAt, updatedAt string
	)
	err := row.Scan(&p.ID, &p.Name, &p.Description, &price, &p.StockQuantity,
		&p.MinStockLevel, &available, &p.Version, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: scan product: %w", err)
	}

	if p.Price, err = decimal.NewFromString(price); err != nil {
		return nil, fmt.Errorf("sqlite: parse price: %w", err)
	}
	p.IsAvailable = available != 0
	if p.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if p.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func collectProducts(rows *sql.Rows) ([]*domain.Product, error) {
	var products []*domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("sqlite: parse time: %w", err)
	}
	return t, nil
}
