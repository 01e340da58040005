package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-api-vendor/internal/domain"
)

const maxJSONBody = 1 << 20

// MessageEnvelope is the generic response wrapper.
type MessageEnvelope struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	Details string `json:"details,omitempty"`
}

type SendOTPEnvelope struct {
	Message string `json:"message"`
	Email   string `json:"email"`
}

type LoginEnvelope struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	Created bool   `json:"created"`
}

type ProfileEnvelope struct {
	Profile *domain.User `json:"profile"`
}

type DocumentEnvelope struct {
	Message  string        `json:"message,omitempty"`
	Document *DocumentView `json:"document"`
}

type DocumentListEnvelope struct {
	Documents []DocumentView `json:"documents"`
	Count     int            `json:"count"`
}

type WalletEnvelope struct {
	Message string      `json:"message"`
	Wallet  *WalletView `json:"wallet"`
}

type BalanceEnvelope struct {
	Balance string `json:"balance"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, MessageEnvelope{Error: msg})
}

// decodeJSON reads a bounded JSON body into v. Malformed input is a validation error.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", domain.ErrValidation)
	}
	return nil
}
