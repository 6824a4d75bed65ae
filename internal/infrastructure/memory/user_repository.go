package memory

import (
	"context"
	"fmt"
	"sync"

	domain "github.com/ferrishop/commerce-core/internal/domain/user"
)

type UserRepository struct {
	mu         sync.RWMutex
	users      map[string]*domain.User
	byUsername map[string]string
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		users:      make(map[string]*domain.User),
		byUsername: make(map[string]string),
	}
}

func (r *UserRepository) Insert(ctx context.Context, user *domain.User) error {
	_ = ctx
	if user == nil || user.ID == "" {
		return fmt.Errorf("user repository: id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byUsername[user.Username]; exists {
		return domain.ErrAlreadyExists
	}

	r.users[user.ID] = user.Clone()
	r.byUsername[user.Username] = user.ID
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return user.Clone(), nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byUsername[username]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return r.users[id].Clone(), nil
}

func (r *UserRepository) Update(ctx context.Context, id string, mutate func(*domain.User) error) (*domain.User, error) {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}

	candidate := current.Clone()
	if err := mutate(candidate); err != nil {
		return nil, err
	}

	if candidate.Username != current.Username {
		if other, taken := r.byUsername[candidate.Username]; taken && other != id {
			return nil, domain.ErrAlreadyExists
		}
		delete(r.byUsername, current.Username)
		r.byUsername[candidate.Username] = id
	}

	r.users[id] = candidate
	return candidate.Clone(), nil
}

func (r *UserRepository) FindAll(ctx context.Context) ([]*domain.User, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]*domain.User, 0, len(r.users))
	for _, user := range r.users {
		all = append(all, user.Clone())
	}
	return all, nil
}
