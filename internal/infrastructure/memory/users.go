package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-api-vendor/internal/domain"
)

type UserRepo struct {
	mu      sync.RWMutex
	users   map[string]domain.User
	byEmail map[string]string
}

func NewUserRepo() *UserRepo {
	return &UserRepo{
		users:   make(map[string]domain.User),
		byEmail: make(map[string]string),
	}
}

// Create fails with domain.ErrConflict when the id or the email is already taken.
func (r *UserRepo) Create(_ context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.UserID]; ok {
		return fmt.Errorf("user %s exists: %w", u.UserID, domain.ErrConflict)
	}
	if _, ok := r.byEmail[u.Email]; ok {
		return fmt.Errorf("email %s exists: %w", u.Email, domain.ErrConflict)
	}
	r.users[u.UserID] = *u
	r.byEmail[u.Email] = u.UserID
	return nil
}

func (r *UserRepo) Get(_ context.Context, userID string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[userID]
	if !ok {
		return nil, fmt.Errorf("user not found: %w", domain.ErrNotFound)
	}
	return &u, nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	id, ok := r.byEmail[email]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("user not found: %w", domain.ErrNotFound)
	}
	return r.Get(ctx, id)
}

func (r *UserRepo) TouchLastLogin(_ context.Context, userID string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return fmt.Errorf("user not found: %w", domain.ErrNotFound)
	}
	u.LastLoginAt = &at
	u.UpdatedAt = at
	r.users[userID] = u
	return nil
}
