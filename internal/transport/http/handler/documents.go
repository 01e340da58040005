package handler

import (
	"errors"
	"fmt"
	"math"
	"net/http"

	"github.com/go-api-vendor/internal/application/document"
	"github.com/go-api-vendor/internal/domain"
	"github.com/go-chi/chi/v5"
)

const (
	// multipartOverhead is allowed on top of the file itself for boundaries and other fields.
	multipartOverhead = 1 << 20
	multipartMemory   = 2 << 20
)

// DocumentView adds presentation fields to a stored document.
type DocumentView struct {
	*domain.Document
	DocumentTypeDisplay string  `json:"document_type_display"`
	FileSizeMB          float64 `json:"file_size_mb"`
}

func newDocumentView(d *domain.Document) *DocumentView {
	return &DocumentView{
		Document:            d,
		DocumentTypeDisplay: d.Type.Display(),
		FileSizeMB:          math.Round(float64(d.Size)/(1<<20)*100) / 100,
	}
}

// DocumentHandler serves identity-proof uploads.
type DocumentHandler struct {
	svc   document.Service
	debug bool
}

func NewDocumentHandler(svc document.Service, debug bool) *DocumentHandler {
	return &DocumentHandler{svc: svc, debug: debug}
}

func (h *DocumentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, domain.MaxDocumentSize+multipartOverhead)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			respondError(w, r, "upload_document", h.debug, fmt.Errorf("request body: %w", domain.ErrFileTooLarge))
			return
		}
		respondError(w, r, "upload_document", h.debug, fmt.Errorf("invalid multipart form: %w", domain.ErrValidation))
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, r, "upload_document", h.debug, fmt.Errorf("file is required: %w", domain.ErrValidation))
		return
	}
	defer file.Close()

	res, err := h.svc.Upload(r.Context(), document.UploadRequest{
		UserID:   uid,
		Type:     domain.DocumentType(r.FormValue("document_type")),
		Filename: header.Filename,
		Size:     header.Size,
		Content:  file,
	})
	if err != nil {
		respondError(w, r, "upload_document", h.debug, err)
		return
	}
	status := http.StatusOK
	if res.Created {
		status = http.StatusCreated
	}
	writeJSON(w, status, DocumentEnvelope{Message: res.Message(), Document: newDocumentView(res.Document)})
}

func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	docs, err := h.svc.List(r.Context(), uid, domain.DocumentType(r.URL.Query().Get("document_type")))
	if err != nil {
		respondError(w, r, "list_documents", h.debug, err)
		return
	}
	views := make([]DocumentView, len(docs))
	for i := range docs {
		views[i] = *newDocumentView(&docs[i])
	}
	writeJSON(w, http.StatusOK, DocumentListEnvelope{Documents: views, Count: len(views)})
}

func (h *DocumentHandler) Get(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	d, err := h.svc.Get(r.Context(), uid, chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, "get_document", h.debug, err)
		return
	}
	writeJSON(w, http.StatusOK, DocumentEnvelope{Document: newDocumentView(d)})
}
