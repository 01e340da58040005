package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-api-vendor/internal/domain"
	"github.com/go-api-vendor/internal/transport/http/middleware"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

const internalMessage = "An error occurred. Please try again."

// clientErrors maps domain errors to the status and message sent to the client.
// An empty message means the wrapped error text is passed through.
var clientErrors = []struct {
	target  error
	status  int
	message string
}{
	{domain.ErrValidation, http.StatusBadRequest, ""},
	{domain.ErrInvalidCode, http.StatusBadRequest, "Invalid OTP"},
	{domain.ErrExpired, http.StatusBadRequest, "OTP has expired"},
	{domain.ErrAlreadyUsed, http.StatusBadRequest, "OTP has already been used"},
	{domain.ErrEmailTaken, http.StatusBadRequest, "A user with this email already exists."},
	{domain.ErrFileTooLarge, http.StatusBadRequest, "File size cannot exceed 10MB."},
	{domain.ErrUnsupportedType, http.StatusBadRequest, "Only PDF, JPG, JPEG and PNG files are allowed."},
	{domain.ErrInvalidDocumentType, http.StatusBadRequest, "Invalid document type."},
	{domain.ErrInvalidAmount, http.StatusBadRequest, "Amount must be a positive number."},
	{domain.ErrUnauthorized, http.StatusUnauthorized, "Authentication credentials were not provided."},
	{domain.ErrNotFound, http.StatusNotFound, "Not found."},
}

// respondError is the single place where service errors become HTTP responses.
// Unexpected failures are logged and answered with a generic 500; details are
// attached only when debug is set.
func respondError(w http.ResponseWriter, r *http.Request, op string, debug bool, err error) {
	for _, ce := range clientErrors {
		if errors.Is(err, ce.target) {
			msg := ce.message
			if msg == "" {
				msg = strings.TrimSuffix(err.Error(), ": "+ce.target.Error())
			}
			writeError(w, ce.status, msg)
			return
		}
	}

	attrs := []any{"op", op, "request_id", chimiddleware.GetReqID(r.Context()), "err", err}
	if claims, ok := middleware.ClaimsFromContext(r.Context()); ok {
		attrs = append(attrs, "user_id", claims.UserID)
	}
	slog.ErrorContext(r.Context(), "request failed", attrs...)

	msg := internalMessage
	if errors.Is(err, domain.ErrDelivery) {
		msg = "Failed to send OTP. Please check your email configuration."
	}
	env := MessageEnvelope{Error: msg}
	if debug {
		env.Details = err.Error()
	}
	writeJSON(w, http.StatusInternalServerError, env)
}

// userID returns the authenticated user, writing a 401 when there is none.
func userID(w http.ResponseWriter, r *http.Request) (string, bool) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok || claims.UserID == "" {
		writeError(w, http.StatusUnauthorized, "Authentication credentials were not provided.")
		return "", false
	}
	return claims.UserID, true
}
