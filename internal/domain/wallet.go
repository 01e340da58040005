package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Wallet is the per-user balance. PK: user_id.
type Wallet struct {
	UserID    string
	Balance   decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreditWalletRequest accepts the amount either as a JSON number or as a
// numeric string, so clients can send exact decimals.
type CreditWalletRequest struct {
	Amount json.RawMessage `json:"amount"`
}

// ParseAmount decodes the requested amount. Anything that is not a strictly
// positive number of at most AmountScale decimal places and MaxAmountDigits
// integer digits fails with ErrInvalidAmount.
func (r CreditWalletRequest) ParseAmount() (decimal.Decimal, error) {
	raw := bytes.TrimSpace(r.Amount)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return decimal.Zero, fmt.Errorf("amount is required: %w", ErrInvalidAmount)
	}
	amount, err := parseAmountText(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("amount %.40q is not a number: %w", raw, ErrInvalidAmount)
	}
	if err := CheckAmountRange(amount); err != nil {
		return decimal.Zero, fmt.Errorf("%v: %w", err, ErrInvalidAmount)
	}
	if !amount.Equal(amount.Truncate(AmountScale)) {
		return decimal.Zero, fmt.Errorf("amount has more than %d decimal places: %w", AmountScale, ErrInvalidAmount)
	}
	if !amount.IsPositive() {
		return decimal.Zero, fmt.Errorf("amount must be greater than zero: %w", ErrInvalidAmount)
	}
	return amount, nil
}
