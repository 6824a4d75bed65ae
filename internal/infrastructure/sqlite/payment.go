package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	domain "github.com/ferrishop/commerce-core/internal/domain/payment"
	"github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
)

type PaymentRepository struct {
	store *Store
}

func (s *Store) Payments() *PaymentRepository { return &PaymentRepository{store: s} }

const paymentColumns = "id, order_id, method, amount, status, transaction_id, gateway_response, failure_reason, created_at, processed_at, updated_at"

func (r *PaymentRepository) Insert(ctx context.Context, payment *domain.Payment) error {
	_, err := r.store.querier(ctx).ExecContext(ctx,
		`INSERT INTO payments (`+paymentColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		payment.ID, payment.OrderID, string(payment.Method), payment.Amount.String(),
		string(payment.Status), payment.TransactionID, payment.GatewayResponse,
		payment.FailureReason, formatTime(payment.CreatedAt), nullableTime(payment.ProcessedAt),
		formatTime(payment.UpdatedAt),
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return domain.ErrAlreadyExists
		}
		return fmt.Errorf("sqlite: insert payment: %w", err)
	}
	return nil
}

func (r *PaymentRepository) FindByID(ctx context.Context, id string) (*domain.Payment, error) {
	row := r.store.querier(ctx).QueryRowContext(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE id = ?`, id)
	return scanPayment(row)
}

func (r *PaymentRepository) FindByOrder(ctx context.Context, orderID string) (*domain.Payment, error) {
	row := r.store.querier(ctx).QueryRowContext(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE order_id = ?`, orderID)
	return scanPayment(row)
}

func (r *PaymentRepository) FindByStatus(ctx context.Context, status domain.Status) ([]*domain.Payment, error) {
	rows, err := r.store.querier(ctx).QueryContext(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE status = ? ORDER BY created_at`, string(status))
	if err != nil {
		return nil, fmt.Errorf("sqlite: find payments by status: %w", err)
	}
	defer rows.Close()

	var payments []*domain.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

func (r *PaymentRepository) FindByTransactionID(ctx context.Context, transactionID string) (*domain.Payment, error) {
	row := r.store.querier(ctx).QueryRowContext(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE transaction_id = ?`, transactionID)
	return scanPayment(row)
}

func (r *PaymentRepository) Update(ctx context.Context, id string, mutate func(*domain.Payment) error) (*domain.Payment, error) {
	var updated *domain.Payment
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
			`UPDATE payments
			 SET status = ?, gateway_response = ?, failure_reason = ?, processed_at = ?, updated_at = ?
			 WHERE id = ?`,
			string(candidate.Status), candidate.GatewayResponse, candidate.FailureReason,
			nullableTime(candidate.ProcessedAt), formatTime(candidate.UpdatedAt), id)
		if err != nil {
			return fmt.Errorf("sqlite: update payment: %w", err)
		}
		updated = candidate
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func scanPayment(row rowScanner) (*domain.Payment, error) {
	var (
		p                    domain.Payment
		method, status       string
		amount               string
		createdAt, updatedAt string
		processedAt          sql.NullString
	)
	err := row.Scan(&p.ID, &p.OrderID, &method, &amount, &status, &p.TransactionID,
		&p.GatewayResponse, &p.FailureReason, &createdAt, &processedAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: scan payment: %w", err)
	}

	p.Method = domain.Method(method)
	p.Status = domain.Status(status)
	if p.Amount, err = decimal.NewFromString(amount); err != nil {
		return nil, fmt.Errorf("sqlite: parse amount: %w", err)
	}
	if p.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if p.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	if processedAt.Valid {
		if p.ProcessedAt, err = parseTime(processedAt.String); err != nil {
			return nil, err
		}
	}
	return &p, nil
}

func nullableTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return formatTime(t)
}
