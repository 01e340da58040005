package handler

import (
	"net/http"
	"time"

	"github.com/go-api-vendor/internal/application/wallet"
	"github.com/go-api-vendor/internal/domain"
)

// WalletView renders balances with two decimal places.
type WalletView struct {
	Balance   string    `json:"balance"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type WalletHandler struct {
	svc   wallet.Service
	debug bool
}

func NewWalletHandler(svc wallet.Service, debug bool) *WalletHandler {
	return &WalletHandler{svc: svc, debug: debug}
}

func (h *WalletHandler) Credit(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	var req domain.CreditWalletRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, "credit_wallet", h.debug, err)
		return
	}
	amount, err := req.ParseAmount()
	if err != nil {
		respondError(w, r, "credit_wallet", h.debug, err)
		return
	}
	wl, err := h.svc.Credit(r.Context(), uid, amount)
	if err != nil {
		respondError(w, r, "credit_wallet", h.debug, err)
		return
	}
	writeJSON(w, http.StatusOK, WalletEnvelope{
		Message: "Wallet credited successfully",
		Wallet: &WalletView{
			Balance:   wl.Balance.StringFixed(2),
			CreatedAt: wl.CreatedAt,
			UpdatedAt: wl.UpdatedAt,
		},
	})
}

func (h *WalletHandler) Balance(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	bal, err := h.svc.Balance(r.Context(), uid)
	if err != nil {
		respondError(w, r, "wallet_balance", h.debug, err)
		return
	}
	writeJSON(w, http.StatusOK, BalanceEnvelope{Balance: bal.StringFixed(2)})
}
