package auth

import (
	"context"
	"sort"
	"sync"
	"time"

	"cuattro/internal/apperr"
)

type InMemoryUserRepository struct {
	mu    sync.Mutex
	users map[string]*User
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{
		users: make(map[string]*User),
	}
}

func (r *InMemoryUserRepository) Provision(ctx context.Context, user *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	if existing, ok := r.users[user.ID]; ok {
		existing.Name = user.Name
		existing.Email = user.Email
		existing.UpdatedAt = now
		*user = *existing
		return nil
	}

	user.CreatedAt = now
	user.UpdatedAt = now
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *InMemoryUserRepository) FindByID(ctx context.Context, id string) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, apperr.NotFoundf("Usuário %s não encontrado.", id)
	}
	out := *user
	return &out, nil
}

func (r *InMemoryUserRepository) List(ctx context.Context) ([]User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *InMemoryUserRepository) UpdateRole(ctx context.Context, id string, role Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return apperr.NotFoundf("Usuário %s não encontrado.", id)
	}
	user.Role = role
	user.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *InMemoryUserRepository) UpdateName(ctx context.Context, id, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return apperr.NotFoundf("Usuário %s não encontrado.", id)
	}
	user.Name = name
	user.UpdatedAt = time.Now().UTC()
	return nil
}
