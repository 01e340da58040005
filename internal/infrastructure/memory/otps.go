// Package memory holds process-local implementations of the persistent and
// blob stores. Data lives for the lifetime of the process.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-api-vendor/internal/domain"
)

type otpKey struct{ email, code string }

// OTPRepo mirrors dynamo.OTPRepo.
type OTPRepo struct {
	mu   sync.Mutex
	otps map[otpKey]domain.OTP
}

func NewOTPRepo() *OTPRepo {
	return &OTPRepo{otps: make(map[otpKey]domain.OTP)}
}

func (r *OTPRepo) Put(_ context.Context, o *domain.OTP) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.otps[otpKey{o.Email, o.Code}] = *o
	return nil
}

func (r *OTPRepo) Get(_ context.Context, email, code string) (*domain.OTP, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.otps[otpKey{email, code}]
	if !ok {
		return nil, fmt.Errorf("otp not found: %w", domain.ErrNotFound)
	}
	return &o, nil
}

func (r *OTPRepo) DeleteByEmail(_ context.Context, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for k := range r.otps {
		if k.email == email {
			delete(r.otps, k)
		}
	}
	return nil
}

func (r *OTPRepo) MarkUsed(_ context.Context, email, code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := otpKey{email, code}
	o, ok := r.otps[k]
	if !ok || o.Used {
		return fmt.Errorf("mark otp used: %w", domain.ErrAlreadyUsed)
	}
	o.Used = true
	r.otps[k] = o
	return nil
}
