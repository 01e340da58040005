package handler

import (
	"net/http"

	"github.com/go-api-vendor/internal/application/user"
	"github.com/go-api-vendor/internal/domain"
)

// UserHandler handles signup and profile endpoints.
type UserHandler struct {
	svc   user.Service
	debug bool
}

func NewUserHandler(svc user.Service, debug bool) *UserHandler {
	return &UserHandler{svc: svc, debug: debug}
}

func (h *UserHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req domain.SignupRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, "signup", h.debug, err)
		return
	}
	if _, err := h.svc.Signup(r.Context(), req); err != nil {
		respondError(w, r, "signup", h.debug, err)
		return
	}
	writeJSON(w, http.StatusCreated, MessageEnvelope{Message: "Signup successful"})
}

func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	u, err := h.svc.Profile(r.Context(), uid)
	if err != nil {
		respondError(w, r, "profile", h.debug, err)
		return
	}
	writeJSON(w, http.StatusOK, ProfileEnvelope{Profile: u})
}
