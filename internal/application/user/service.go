package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-api-vendor/internal/domain"
	"github.com/go-api-vendor/internal/pkg/id"
	"github.com/go-api-vendor/internal/pkg/validate"
	"golang.org/x/crypto/bcrypt"
)

const maxPasswordBytes = 72

type Service interface {
	// Signup registers a password-backed user. It does not log the user in.
	Signup(ctx context.Context, req domain.SignupRequest) (*domain.User, error)
	Profile(ctx context.Context, userID string) (*domain.User, error)
}

type userStore interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) error
}

type ServiceDeps struct {
	UserRepo userStore
	Now      func() time.Time
}

type service struct {
	repo userStore
	now  func() time.Time
}

func NewService(deps ServiceDeps) Service {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &service{repo: deps.UserRepo, now: now}
}

func (s *service) Signup(ctx context.Context, req domain.SignupRequest) (*domain.User, error) {
	req.Email = domain.NormalizeEmail(req.Email)
	req.Name = strings.TrimSpace(req.Name)
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	// bcrypt reads at most 72 bytes; the validator counts runes.
	if len(req.Password) > maxPasswordBytes {
		return nil, fmt.Errorf("password must be at most %d bytes: %w", maxPasswordBytes, domain.ErrValidation)
	}

	_, err := s.repo.GetByEmail(ctx, req.Email)
	if err == nil {
		return nil, fmt.Errorf("%s: %w", req.Email, domain.ErrEmailTaken)
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	now := s.now().UTC()
	u := &domain.User{
		UserID:       id.New(),
		Email:        req.Email,
		DisplayName:  req.Name,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, fmt.Errorf("%s: %w", req.Email, domain.ErrEmailTaken)
		}
		return nil, err
	}
	return u, nil
}

func (s *service) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.Get(ctx, userID)
}
