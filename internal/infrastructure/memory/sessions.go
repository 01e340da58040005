package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-api-vendor/internal/domain"
)

type SessionRepo struct {
	mu       sync.RWMutex
	sessions map[string]domain.Session
}

func NewSessionRepo() *SessionRepo {
	return &SessionRepo{sessions: make(map[string]domain.Session)}
}

func (r *SessionRepo) GetByUser(_ context.Context, userID string) (*domain.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[userID]
	if !ok {
		return nil, fmt.Errorf("session not found: %w", domain.ErrNotFound)
	}
	return &s, nil
}

func (r *SessionRepo) Create(_ context.Context, s *domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[s.UserID]; ok {
		return fmt.Errorf("session for %s exists: %w", s.UserID, domain.ErrConflict)
	}
	r.sessions[s.UserID] = *s
	return nil
}
