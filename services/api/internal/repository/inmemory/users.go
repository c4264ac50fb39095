// Package inmemory holds map and slice backed repositories used by tests and STORAGE_DRIVER=memory.
package inmemory

import (
	"context"
	"sync"
	"time"

	"github.com/diagnosis/gympass/services/api/internal/domain"
	"github.com/google/uuid"
)

type UsersRepository struct {
	mu    sync.RWMutex
	items []domain.User
}

func NewUsersRepository() *UsersRepository {
	return &UsersRepository{}
}

func (r *UsersRepository) Create(_ context.Context, params domain.CreateUserParams) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.items {
		if u.Email == params.Email {
			return nil, domain.ErrEmailAlreadyExists
		}
	}

	role := params.Role
	if role == "" {
		role = domain.RoleMember
	}

	u := domain.User{
		ID:           uuid.NewString(),
		Name:         params.Name,
		Email:        params.Email,
		PasswordHash: params.PasswordHash,
		Role:         role,
		CreatedAt:    time.Now(),
	}
	r.items = append(r.items, u)
	return &u, nil
}

func (r *UsersRepository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.items {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *UsersRepository) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.items {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, nil
}
