package wallet

import (
	"context"
	"fmt"
	"time"

	"github.com/go-api-vendor/internal/domain"
	"github.com/go-api-vendor/internal/metrics"
	"github.com/shopspring/decimal"
)

type Service interface {
	// Credit adds amount to the user's wallet, creating it on first use.
	Credit(ctx context.Context, userID string, amount decimal.Decimal) (*domain.Wallet, error)
	// Balance fails with domain.ErrNotFound until the first credit.
	Balance(ctx context.Context, userID string) (decimal.Decimal, error)
}

type walletStore interface {
	Credit(ctx context.Context, userID string, amount decimal.Decimal, at time.Time) (*domain.Wallet, error)
	Get(ctx context.Context, userID string) (*domain.Wallet, error)
}

type recorder interface {
	RecordWalletCredit()
}

type ServiceDeps struct {
	WalletRepo walletStore
	Metrics    recorder
	Now        func() time.Time
}

type service struct {
	repo    walletStore
	metrics recorder
	now     func() time.Time
}

func NewService(deps ServiceDeps) Service {
	s := &service{repo: deps.WalletRepo, metrics: deps.Metrics, now: deps.Now}
	if s.now == nil {
		s.now = time.Now
	}
	if s.metrics == nil {
		s.metrics = metrics.Nop{}
	}
	return s
}

func (s *service) Credit(ctx context.Context, userID string, amount decimal.Decimal) (*domain.Wallet, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("amount must be greater than zero: %w", domain.ErrInvalidAmount)
	}
	w, err := s.repo.Credit(ctx, userID, amount, s.now().UTC())
	if err != nil {
		return nil, err
	}
	s.metrics.RecordWalletCredit()
	return w, nil
}

func (s *service) Balance(ctx context.Context, userID string) (decimal.Decimal, error) {
	w, err := s.repo.Get(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}
	return w.Balance, nil
}
