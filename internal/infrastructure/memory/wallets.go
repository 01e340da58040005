package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-api-vendor/internal/domain"
	"github.com/shopspring/decimal"
)

type WalletRepo struct {
	mu      sync.Mutex
	wallets map[string]domain.Wallet
}

func NewWalletRepo() *WalletRepo {
	return &WalletRepo{wallets: make(map[string]domain.Wallet)}
}

func (r *WalletRepo) Credit(_ context.Context, userID string, amount decimal.Decimal, at time.Time) (*domain.Wallet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.wallets[userID]
	if !ok {
		w = domain.Wallet{UserID: userID, Balance: decimal.Zero, CreatedAt: at}
	}
	w.Balance = w.Balance.Add(amount)
	w.UpdatedAt = at
	r.wallets[userID] = w
	return &w, nil
}

func (r *WalletRepo) Get(_ context.Context, userID string) (*domain.Wallet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.wallets[userID]
	if !ok {
		return nil, fmt.Errorf("wallet not found: %w", domain.ErrNotFound)
	}
	return &w, nil
}
