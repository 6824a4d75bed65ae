package user

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound        = errors.New("user: not found")
	ErrAlreadyExists   = errors.New("user: username already taken")
	ErrInvalidUsername = errors.New("user: username must not be empty")
	ErrInvalidEmail    = errors.New("user: email must not be empty")
	ErrWeakPassword    = errors.New("user: password must be at least 6 characters")
	ErrInvalidRole     = errors.New("user: role is required")
	ErrUnknownRole     = errors.New("user: unknown role")
)

type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleAdmin    Role = "ADMIN"
)

// ParseRole maps a wire value onto the closed role set. It belongs to the
// boundary; the core only ever handles the typed values.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleCustomer, RoleAdmin:
		return Role(s), nil
	case "":
		return "", ErrInvalidRole
	default:
		return "", ErrUnknownRole
	}
}

type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

func New(id, username, email, passwordHash string, role Role) *User {
	if role == "" {
		role = RoleCustomer
	}
	return &User{
		ID:           id,
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
}

func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

type Repository interface {
	Insert(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindAll(ctx context.Context) ([]*User, error)
	// Update applies mutate to the stored user inside the store's
	// serialization boundary and returns the updated user.
	Update(ctx context.Context, id string, mutate func(*User) error) (*User, error)
}
