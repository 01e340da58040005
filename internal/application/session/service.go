package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-api-vendor/internal/domain"
	"github.com/go-api-vendor/internal/pkg/id"
)

// Service hands out the single session token of a user.
type Service interface {
	// GetOrCreate returns the user's existing session or creates one. The
	// token is stable across calls; it is never rotated.
	GetOrCreate(ctx context.Context, userID string) (*domain.Session, error)
}

type sessionStore interface {
	GetByUser(ctx context.Context, userID string) (*domain.Session, error)
	Create(ctx context.Context, s *domain.Session) error
}

type tokenSigner interface {
	Sign(userID, sessionID string) (string, error)
}

type ServiceDeps struct {
	SessionRepo sessionStore
	Signer      tokenSigner
	Now         func() time.Time
}

type service struct {
	repo   sessionStore
	signer tokenSigner
	now    func() time.Time
}

func NewService(deps ServiceDeps) Service {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &service{repo: deps.SessionRepo, signer: deps.Signer, now: now}
}

func (s *service) GetOrCreate(ctx context.Context, userID string) (*domain.Session, error) {
	sess, err := s.repo.GetByUser(ctx, userID)
	if err == nil {
		return sess, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	sessionID := id.New()
	token, err := s.signer.Sign(userID, sessionID)
	if err != nil {
		return nil, fmt.Errorf("sign session token: %w", err)
	}
	sess = &domain.Session{
		UserID:    userID,
		SessionID: sessionID,
		Token:     token,
		CreatedAt: s.now().UTC(),
	}
	err = s.repo.Create(ctx, sess)
	if errors.Is(err, domain.ErrConflict) {
		// lost a race with a concurrent login; the winner's token stands
		return s.repo.GetByUser(ctx, userID)
	}
	if err != nil {
		return nil, err
	}
	return sess, nil
}
