package domain

import "time"

const (
	// OTPLifetime is how long an issued code stays verifiable.
	OTPLifetime = 5 * time.Minute
	// OTPRetention only feeds the DynamoDB TTL attribute; expiry is decided by OTPLifetime.
	OTPRetention = 24 * time.Hour
	OTPLength    = 6
)

// OTP is a one-time code issued to an email address.
// PK: email, SK: code.
type OTP struct {
	Email     string    `dynamodbav:"email"`
	Code      string    `dynamodbav:"code"`
	CreatedAt time.Time `dynamodbav:"created_at"`
	Used      bool      `dynamodbav:"used"`
	PurgeAt   int64     `dynamodbav:"purge_at"` // TTL (Unix seconds)
}

type OTPStatus int

const (
	OTPActive OTPStatus = iota
	OTPExpired
	OTPUsed
)

func (s OTPStatus) String() string {
	switch s {
	case OTPActive:
		return "active"
	case OTPExpired:
		return "expired"
	case OTPUsed:
		return "used"
	default:
		return "unknown"
	}
}

// Status derives the lifecycle state at now. Expiry takes precedence over use.
func (o OTP) Status(now time.Time) OTPStatus {
	if o.CreatedAt.Before(now.Add(-OTPLifetime)) {
		return OTPExpired
	}
	if o.Used {
		return OTPUsed
	}
	return OTPActive
}

type SendOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type VerifyOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required,len=6,numeric"`
}
