package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/go-api-vendor/internal/domain"
	jwtinfra "github.com/go-api-vendor/internal/infrastructure/jwt"
	"github.com/go-api-vendor/internal/infrastructure/smtp"
	"github.com/go-api-vendor/internal/metrics"
	"github.com/shopspring/decimal"
)

// UserRepository is the minimal interface the router requires from a user store.
type UserRepository interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) error
	TouchLastLogin(ctx context.Context, userID string, at time.Time) error
}

// SessionRepository is the minimal interface the router requires from a session store.
type SessionRepository interface {
	GetByUser(ctx context.Context, userID string) (*domain.Session, error)
	// Create fails with domain.ErrConflict when the user already has a session.
	Create(ctx context.Context, s *domain.Session) error
}

// OTPRepository is the minimal interface the router requires from an OTP store.
type OTPRepository interface {
	DeleteByEmail(ctx context.Context, email string) error
	Put(ctx context.Context, o *domain.OTP) error
	Get(ctx context.Context, email, code string) (*domain.OTP, error)
	// MarkUsed must flip used=false to true atomically; otherwise domain.ErrAlreadyUsed.
	MarkUsed(ctx context.Context, email, code string) error
}

// DocumentRepository is the minimal interface the router requires from a document store.
type DocumentRepository interface {
	GetBySlot(ctx context.Context, userID string, t domain.DocumentType) (*domain.Document, error)
	Create(ctx context.Context, d *domain.Document) error
	Replace(ctx context.Context, d *domain.Document) error
	ListByUser(ctx context.Context, userID string) ([]domain.Document, error)
	Get(ctx context.Context, userID, documentID string) (*domain.Document, error)
}

// WalletRepository is the minimal interface the router requires from a wallet store.
type WalletRepository interface {
	Credit(ctx context.Context, userID string, amount decimal.Decimal, at time.Time) (*domain.Wallet, error)
	Get(ctx context.Context, userID string) (*domain.Wallet, error)
}

// ObjectStore is the minimal interface the router requires from an object storage backend.
type ObjectStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
	PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
}

// Mailer delivers OTP emails.
type Mailer interface {
	SendEmail(ctx context.Context, msg smtp.Message) error
}

// EventPublisher announces document uploads.
type EventPublisher interface {
	Publish(ctx context.Context, subject, message string) error
}

// PDFRenderer turns a quotation into PDF bytes.
type PDFRenderer interface {
	Render(q domain.Quotation) ([]byte, error)
}

// TokenProvider signs and verifies session tokens.
type TokenProvider interface {
	Sign(userID, sessionID string) (string, error)
	Verify(token string) (*jwtinfra.Claims, error)
}

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	UserRepo     UserRepository
	SessionRepo  SessionRepository
	OTPRepo      OTPRepository
	DocumentRepo DocumentRepository
	WalletRepo   WalletRepository
	Objects      ObjectStore
	Mailer       Mailer
	Events       EventPublisher // optional
	PDF          PDFRenderer
	Tokens       TokenProvider
	Metrics      metrics.Recorder

	// MetricsHandler serves /metrics when set.
	MetricsHandler http.Handler
	// Now overrides the clock; nil uses time.Now.
	Now func() time.Time
}
