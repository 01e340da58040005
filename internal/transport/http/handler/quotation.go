package handler

import (
	"net/http"
	"strconv"

	"github.com/go-api-vendor/internal/application/quotation"
	"github.com/go-api-vendor/internal/domain"
)

type QuotationHandler struct {
	svc   quotation.Service
	debug bool
}

func NewQuotationHandler(svc quotation.Service, debug bool) *QuotationHandler {
	return &QuotationHandler{svc: svc, debug: debug}
}

func (h *QuotationHandler) Render(w http.ResponseWriter, r *http.Request) {
	if _, ok := userID(w, r); !ok {
		return
	}
	var q domain.Quotation
	if err := decodeJSON(w, r, &q); err != nil {
		respondError(w, r, "render_quotation", h.debug, err)
		return
	}
	out, err := h.svc.Render(r.Context(), q)
	if err != nil {
		respondError(w, r, "render_quotation", h.debug, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="quotation.pdf"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(out)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}
