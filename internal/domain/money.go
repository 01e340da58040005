package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

const (
	// MaxAmountDigits bounds the integer part of any money value.
	MaxAmountDigits = 15
	// AmountScale is the number of decimal places a wallet amount may carry.
	AmountScale = 2
	// maxAmountText bounds the textual form so parsing stays cheap.
	maxAmountText = 40
)

var errAmountTooLong = errors.New("amount is too long")

// parseAmountText parses a JSON number or numeric string without
// trusting its length or exponent.
func parseAmountText(raw []byte) (decimal.Decimal, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) > maxAmountText+2 {
		return decimal.Zero, errAmountTooLong
	}
	s := string(raw)
	if len(raw) > 0 && raw[0] == '"' {
		if err := json.Unmarshal(raw, &s); err != nil {
			return decimal.Zero, err
		}
	}
	return decimal.NewFromString(s)
}

// CheckAmountRange rejects values whose magnitude or precision would make
// formatting or storage expensive.
func CheckAmountRange(d decimal.Decimal) error {
	exp := int(d.Exponent())
	if exp < -maxAmountText || exp > MaxAmountDigits {
		return errors.New("amount is out of range")
	}
	if d.NumDigits()+exp > MaxAmountDigits {
		return fmt.Errorf("amount must have at most %d integer digits", MaxAmountDigits)
	}
	return nil
}

// Amount is a bounded money value decoded from a JSON number or numeric string.
type Amount struct {
	decimal.Decimal
}

func NewAmount(d decimal.Decimal) *Amount { return &Amount{Decimal: d} }

func (a *Amount) UnmarshalJSON(b []byte) error {
	d, err := parseAmountText(b)
	if err != nil {
		return fmt.Errorf("amount: %w", err)
	}
	a.Decimal = d
	return nil
}
