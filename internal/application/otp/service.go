package otp

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"github.com/go-api-vendor/internal/domain"
	"github.com/go-api-vendor/internal/infrastructure/smtp"
	"github.com/go-api-vendor/internal/metrics"
	"github.com/go-api-vendor/internal/pkg/id"
	"github.com/go-api-vendor/internal/pkg/validate"
)

// Verification results reported to metrics.
const (
	resultSuccess = "success"
	resultInvalid = "invalid"
	resultExpired = "expired"
	resultUsed    = "used"
	resultError   = "error"
)

// VerifyResult is the outcome of a successful verification.
type VerifyResult struct {
	Token string
	// Created is true when the user identity was created by this verification.
	Created bool
	User    *domain.User
}

type Service interface {
	// Issue replaces any outstanding codes for email with a fresh one and
	// mails it. It returns the normalised address.
	Issue(ctx context.Context, email string) (string, error)
	Verify(ctx context.Context, email, code string) (*VerifyResult, error)
}

type otpStore interface {
	DeleteByEmail(ctx context.Context, email string) error
	Put(ctx context.Context, o *domain.OTP) error
	Get(ctx context.Context, email, code string) (*domain.OTP, error)
	MarkUsed(ctx context.Context, email, code string) error
}

type userStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) error
	TouchLastLogin(ctx context.Context, userID string, at time.Time) error
}

type sessionIssuer interface {
	GetOrCreate(ctx context.Context, userID string) (*domain.Session, error)
}

type mailer interface {
	SendEmail(ctx context.Context, msg smtp.Message) error
}

type recorder interface {
	RecordOTPIssued()
	RecordOTPVerification(result string)
}

type ServiceDeps struct {
	OTPRepo  otpStore
	UserRepo userStore
	Sessions sessionIssuer
	Mailer   mailer
	Metrics  recorder
	Now      func() time.Time
	// NewCode overrides code generation; nil uses crypto/rand.
	NewCode func() (string, error)
}

type service struct {
	otps     otpStore
	users    userStore
	sessions sessionIssuer
	mailer   mailer
	metrics  recorder
	now      func() time.Time
	newCode  func() (string, error)
}

func NewService(deps ServiceDeps) Service {
	s := &service{
		otps:     deps.OTPRepo,
		users:    deps.UserRepo,
		sessions: deps.Sessions,
		mailer:   deps.Mailer,
		metrics:  deps.Metrics,
		now:      deps.Now,
		newCode:  deps.NewCode,
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newCode == nil {
		s.newCode = generateCode
	}
	if s.metrics == nil {
		s.metrics = metrics.Nop{}
	}
	return s
}

func (s *service) Issue(ctx context.Context, email string) (string, error) {
	email = domain.NormalizeEmail(email)
	if err := validate.Struct(domain.SendOTPRequest{Email: email}); err != nil {
		return "", err
	}

	if err := s.otps.DeleteByEmail(ctx, email); err != nil {
		return "", fmt.Errorf("invalidate previous codes: %w", err)
	}
	code, err := s.newCode()
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}
	now := s.now().UTC()
	rec := &domain.OTP{
		Email:     email,
		Code:      code,
		CreatedAt: now,
		PurgeAt:   now.Add(domain.OTPRetention).Unix(),
	}
	if err := s.otps.Put(ctx, rec); err != nil {
		return "", fmt.Errorf("store code: %w", err)
	}

	text, html, err := renderBodies(emailData{Code: code, Minutes: int(domain.OTPLifetime / time.Minute)})
	if err != nil {
		return "", fmt.Errorf("render email: %w", err)
	}
	if err := s.mailer.SendEmail(ctx, smtp.Message{
		To:      email,
		Subject: emailSubject,
		Text:    text,
		HTML:    html,
	}); err != nil {
		slog.ErrorContext(ctx, "otp email delivery failed", "email", email, "err", err)
		return "", fmt.Errorf("send code to %s: %w: %w", email, domain.ErrDelivery, err)
	}

	s.metrics.RecordOTPIssued()
	slog.InfoContext(ctx, "otp sent", "email", email)
	return email, nil
}

func (s *service) Verify(ctx context.Context, email, code string) (*VerifyResult, error) {
	email = domain.NormalizeEmail(email)
	code = strings.TrimSpace(code)
	if err := validate.Struct(domain.VerifyOTPRequest{Email: email, OTP: code}); err != nil {
		return nil, err
	}

	res, err := s.verify(ctx, email, code)
	switch {
	case err == nil:
		s.metrics.RecordOTPVerification(resultSuccess)
	case errors.Is(err, domain.ErrInvalidCode):
		s.metrics.RecordOTPVerification(resultInvalid)
	case errors.Is(err, domain.ErrExpired):
		s.metrics.RecordOTPVerification(resultExpired)
	case errors.Is(err, domain.ErrAlreadyUsed):
		s.metrics.RecordOTPVerification(resultUsed)
	default:
		s.metrics.RecordOTPVerification(resultError)
	}
	return res, err
}

func (s *service) verify(ctx context.Context, email, code string) (*VerifyResult, error) {
	rec, err := s.otps.Get(ctx, email, code)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("no matching code: %w", domain.ErrInvalidCode)
	}
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	switch rec.Status(now) {
	case domain.OTPExpired:
		return nil, fmt.Errorf("code issued at %s: %w", rec.CreatedAt.Format(time.RFC3339), domain.ErrExpired)
	case domain.OTPUsed:
		return nil, fmt.Errorf("code: %w", domain.ErrAlreadyUsed)
	}
	// Conditional update; only one concurrent caller gets past this.
	if err := s.otps.MarkUsed(ctx, email, code); err != nil {
		return nil, err
	}

	u, created, err := s.getOrCreateUser(ctx, email, now)
	if err != nil {
		return nil, err
	}
	if err := s.users.TouchLastLogin(ctx, u.UserID, now); err != nil {
		return nil, fmt.Errorf("record login: %w", err)
	}
	u.LastLoginAt = &now

	sess, err := s.sessions.GetOrCreate(ctx, u.UserID)
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}
	return &VerifyResult{Token: sess.Token, Created: created, User: u}, nil
}

func (s *service) getOrCreateUser(ctx context.Context, email string, now time.Time) (*domain.User, bool, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		return u, false, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, false, err
	}
	u = &domain.User{
		UserID:      id.New(),
		Email:       email,
		DisplayName: domain.DefaultDisplayName(email),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err = s.users.Create(ctx, u)
	if errors.Is(err, domain.ErrConflict) {
		u, err = s.users.GetByEmail(ctx, email)
		return u, false, err
	}
	if err != nil {
		return nil, false, fmt.Errorf("create user: %w", err)
	}
	return u, true, nil
}

// generateCode draws each digit independently; leading zeros are kept.
func generateCode() (string, error) {
	var b strings.Builder
	ten := big.NewInt(10)
	for i := 0; i < domain.OTPLength; i++ {
		n, err := rand.Int(rand.Reader, ten)
		if err != nil {
			return "", err
		}
		b.WriteByte(byte('0' + n.Int64()))
	}
	return b.String(), nil
}
