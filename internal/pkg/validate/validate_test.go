package validate

import (
	"errors"
	"testing"

	"github.com/go-api-vendor/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStruct_Valid(t *testing.T) {
	err := Struct(domain.SendOTPRequest{Email: "a@x.com"})
	assert.NoError(t, err)
}

func TestStruct_BadEmail_WrapsValidation(t *testing.T) {
	err := Struct(domain.SendOTPRequest{Email: "not-an-email"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrValidation))
	assert.Contains(t, err.Error(), "email must be a valid email address")
}

func TestStruct_ShortPassword(t *testing.T) {
	err := Struct(domain.SignupRequest{Email: "a@x.com", Name: "A", Password: "short"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "password must be at least 8 characters")
}

func TestStruct_EmptySequence(t *testing.T) {
	amt := decimal.NewFromInt(10)
	err := Struct(domain.Quotation{
		CustomerName: "Acme",
		Date:         "2024-01-01",
		Processes:    []string{},
		Products:     []string{"Tiles"},
		TotalArea:    "100 sq ft",
		TotalAmount:  domain.NewAmount(amt),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "processes")
}

func TestStruct_MissingPointerField(t *testing.T) {
	err := Struct(domain.Quotation{
		CustomerName: "Acme",
		Date:         "2024-01-01",
		Processes:    []string{"Cutting"},
		Products:     []string{"Tiles"},
		TotalArea:    "100 sq ft",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "total_amount is required")
}
