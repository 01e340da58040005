package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without leaking infrastructure details.
var (
	ErrValidation   = errors.New("validation error")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")

	// OTP lifecycle.
	ErrInvalidCode = errors.New("invalid OTP")
	ErrExpired     = errors.New("OTP has expired")
	ErrAlreadyUsed = errors.New("OTP has already been used")

	ErrEmailTaken = errors.New("email is already registered")

	// Document uploads.
	ErrFileTooLarge        = errors.New("file too large")
	ErrUnsupportedType     = errors.New("unsupported file type")
	ErrInvalidDocumentType = errors.New("invalid document type")

	ErrInvalidAmount = errors.New("invalid amount")

	// ErrDelivery marks a failure of the outbound email transport.
	ErrDelivery = errors.New("delivery failed")
)
