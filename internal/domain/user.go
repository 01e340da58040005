package domain

import (
	"strings"
	"time"
)

type User struct {
	UserID       string     `json:"id" dynamodbav:"user_id"`
	Email        string     `json:"email" dynamodbav:"email"`
	DisplayName  string     `json:"display_name" dynamodbav:"display_name"`
	PasswordHash string     `json:"-" dynamodbav:"password_hash,omitempty"`
	LastLoginAt  *time.Time `json:"last_login" dynamodbav:"last_login_at,omitempty"`
	CreatedAt    time.Time  `json:"date_joined" dynamodbav:"created_at"`
	UpdatedAt    time.Time  `json:"-" dynamodbav:"updated_at"`
}

type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// NormalizeEmail trims and lower-cases an address so it can serve as the identity key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// DefaultDisplayName derives a display name from the local part of an email address.
func DefaultDisplayName(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return local
}
