// Package user is the user directory: registration with credential hashing,
// role administration and lookups. The order workflow only consumes lookups.
package user

import (
	"context"
	"strings"

	domain "github.com/ferrishop/commerce-core/internal/domain/user"
	"github.com/ferrishop/commerce-core/internal/infrastructure/id"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

type Service struct {
	users       domain.Repository
	idGenerator id.Generator
	bcryptCost  int
}

func NewService(users domain.Repository, idGen id.Generator) *Service {
	return &Service{
		users:       users,
		idGenerator: idGen,
		bcryptCost:  bcrypt.DefaultCost,
	}
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
	Role     domain.Role
}

func (s *Service) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(input.Email)

	if username == "" {
		return nil, domain.ErrInvalidUsername
	}
	if email == "" {
		return nil, domain.ErrInvalidEmail
	}
	if len(input.Password) < minPasswordLength {
		return nil, domain.ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.bcryptCost)
	if err != nil {
		return nil, err
	}

	entity := domain.New(s.idGenerator.NewID(), username, email, string(hash), input.Role)
	if err := s.users.Insert(ctx, entity); err != nil {
		return nil, err
	}
	return entity, nil
}

// VerifyPassword checks a candidate password against the stored hash.
func (s *Service) VerifyPassword(ctx context.Context, username, password string) (*domain.User, error) {
	entity, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(entity.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrNotFound
	}
	return entity, nil
}

func (s *Service) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

func (s *Service) GetAllUsers(ctx context.Context) ([]*domain.User, error) {
	return s.users.FindAll(ctx)
}

// UpdateUserRole overwrites a user's role.
func (s *Service) UpdateUserRole(ctx context.Context, userID string, role domain.Role) (*domain.User, error) {
	if role == "" {
		return nil, domain.ErrInvalidRole
	}
	return s.users.Update(ctx, userID, func(u *domain.User) error {
		u.Role = role
		return nil
	})
}

func (s *Service) GetUsersByRole(ctx context.Context, role domain.Role) ([]*domain.User, error) {
	all, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	var matched []*domain.User
	for _, u := range all {
		if u.Role == role {
			matched = append(matched, u)
		}
	}
	return matched, nil
}

// UpdateUserInput carries a partial update; nil fields are left as they are.
type UpdateUserInput struct {
	Username *string
	Email    *string
	Password *string
	Role     *domain.Role
}

// UpdateUser applies the non-nil fields of input. A new password is validated
// and re-hashed the same way registration hashes it.
func (s *Service) UpdateUser(ctx context.Context, userID string, input UpdateUserInput) (*domain.User, error) {
	var passwordHash string
	if input.Password != nil {
		if len(*input.Password) < minPasswordLength {
			return nil, domain.ErrWeakPassword
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), s.bcryptCost)
		if err != nil {
			return nil, err
		}
		passwordHash = string(hash)
	}

	return s.users.Update(ctx, userID, func(u *domain.User) error {
		if input.Username != nil {
			username := strings.TrimSpace(*input.Username)
			if username == "" {
				return domain.ErrInvalidUsername
			}
			u.Username = username
		}
		if input.Email != nil {
			email := strings.TrimSpace(*input.Email)
			if email == "" {
				return domain.ErrInvalidEmail
			}
			u.Email = email
		}
		if passwordHash != "" {
			u.PasswordHash = passwordHash
		}
		if input.Role != nil {
			u.Role = *input.Role
		}
		return nil
	})
}
