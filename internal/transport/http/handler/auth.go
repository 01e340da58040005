package handler

import (
	"net/http"

	"github.com/go-api-vendor/internal/application/otp"
	"github.com/go-api-vendor/internal/domain"
)

// OTPHandler serves passwordless email login.
type OTPHandler struct {
	svc   otp.Service
	debug bool
}

func NewOTPHandler(svc otp.Service, debug bool) *OTPHandler {
	return &OTPHandler{svc: svc, debug: debug}
}

func (h *OTPHandler) SendOTP(w http.ResponseWriter, r *http.Request) {
	var req domain.SendOTPRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, "send_otp", h.debug, err)
		return
	}
	email, err := h.svc.Issue(r.Context(), req.Email)
	if err != nil {
		respondError(w, r, "send_otp", h.debug, err)
		return
	}
	writeJSON(w, http.StatusOK, SendOTPEnvelope{Message: "OTP sent to your email.", Email: email})
}

func (h *OTPHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req domain.VerifyOTPRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, "verify_otp", h.debug, err)
		return
	}
	res, err := h.svc.Verify(r.Context(), req.Email, req.OTP)
	if err != nil {
		respondError(w, r, "verify_otp", h.debug, err)
		return
	}
	writeJSON(w, http.StatusOK, LoginEnvelope{Message: "Login successful", Token: res.Token, Created: res.Created})
}
