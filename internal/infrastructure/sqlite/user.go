package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	domain "github.com/ferrishop/commerce-core/internal/domain/user"
	"github.com/mattn/go-sqlite3"
)

type UserRepository struct {
	store *Store
}

func (s *Store) Users() *UserRepository { return &UserRepository{store: s} }

const userColumns = "id, username, email, password_hash, role, created_at"

func (r *UserRepository) Insert(ctx context.Context, user *domain.User) error {
	_, err := r.store.querier(ctx).ExecContext(ctx,
		`INSERT INTO users (`+userColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		user.ID, user.Username, user.Email, user.PasswordHash, string(user.Role),
		formatTime(user.CreatedAt),
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return domain.ErrAlreadyExists
		}
		return fmt.Errorf("sqlite: insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	row := r.store.querier(ctx).QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	row := r.store.querier(ctx).QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = ?`, username)
	return scanUser(row)
}

func (r *UserRepository) FindAll(ctx context.Context) ([]*domain.User, error) {
	rows, err := r.store.querier(ctx).QueryContext(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY username`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list users: %w", err)
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// Update runs the mutation inside a unit so the read and the write commit
// together even when called outside an enclosing WithinUnit.
func (r *UserRepository) Update(ctx context.Context, id string, mutate func(*domain.User) error) (*domain.User, error) {
	var updated *domain.User
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
			`UPDATE users SET username = ?, email = ?, password_hash = ?, role = ? WHERE id = ?`,
			candidate.Username, candidate.Email, candidate.PasswordHash, string(candidate.Role), id)
		if err != nil {
			var sqliteErr sqlite3.Error
			if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
				return domain.ErrAlreadyExists
			}
			return fmt.Errorf("sqlite: update user: %w", err)
		}
		updated = candidate
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func scanUser(row rowScanner) (*domain.User, error) {
	var (
		u         domain.User
		role      string
		createdAt string
	)
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &role, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: scan user: %w", err)
	}
	u.Role = domain.Role(role)
	if u.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	return &u, nil
}
