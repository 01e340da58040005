package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-api-vendor/internal/application/document"
	"github.com/go-api-vendor/internal/domain"
	jwtinfra "github.com/go-api-vendor/internal/infrastructure/jwt"
	"github.com/go-api-vendor/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockDocumentSvc struct{ mock.Mock }

func (m *mockDocumentSvc) Upload(ctx context.Context, req document.UploadRequest) (*document.UploadResult, error) {
	args := m.Called(ctx, req)
	if r, _ := args.Get(0).(*document.UploadResult); r != nil {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockDocumentSvc) List(ctx context.Context, userID string, filter domain.DocumentType) ([]domain.Document, error) {
	args := m.Called(ctx, userID, filter)
	return args.Get(0).([]domain.Document), args.Error(1)
}

func (m *mockDocumentSvc) Get(ctx context.Context, userID, documentID string) (*domain.Document, error) {
	args := m.Called(ctx, userID, documentID)
	if d, _ := args.Get(0).(*domain.Document); d != nil {
		return d, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockWalletSvc struct{ mock.Mock }

func (m *mockWalletSvc) Credit(ctx context.Context, userID string, amount decimal.Decimal) (*domain.Wallet, error) {
	args := m.Called(ctx, userID, amount)
	if w, _ := args.Get(0).(*domain.Wallet); w != nil {
		return w, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockWalletSvc) Balance(ctx context.Context, userID string) (decimal.Decimal, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

type mockQuotationSvc struct{ mock.Mock }

func (m *mockQuotationSvc) Render(ctx context.Context, q domain.Quotation) ([]byte, error) {
	args := m.Called(ctx, q)
	b, _ := args.Get(0).([]byte)
	return b, args.Error(1)
}

// --- helpers ---

func authed(req *http.Request, userID string) *http.Request {
	ctx := middleware.WithClaims(req.Context(), &jwtinfra.Claims{UserID: userID})
	return req.WithContext(ctx)
}

func multipartBody(t *testing.T, fields map[string]string, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if filename != "" {
		fw, err := mw.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &body, mw.FormDataContentType()
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) MessageEnvelope {
	t.Helper()
	var env MessageEnvelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	return env
}

// --- respondError ---

func TestRespondError_ClientErrors(t *testing.T) {
	cases := []struct {
		err    error
		status int
		msg    string
	}{
		{fmt.Errorf("email must be a valid email address: %w", domain.ErrValidation), http.StatusBadRequest, "email must be a valid email address"},
		{fmt.Errorf("a@x.com: %w", domain.ErrInvalidCode), http.StatusBadRequest, "Invalid OTP"},
		{fmt.Errorf("a@x.com: %w", domain.ErrExpired), http.StatusBadRequest, "OTP has expired"},
		{domain.ErrAlreadyUsed, http.StatusBadRequest, "OTP has already been used"},
		{domain.ErrEmailTaken, http.StatusBadRequest, "A user with this email already exists."},
		{domain.ErrInvalidAmount, http.StatusBadRequest, "Amount must be a positive number."},
		{fmt.Errorf("document 42: %w", domain.ErrNotFound), http.StatusNotFound, "Not found."},
	}
	for _, tc := range cases {
		rr := httptest.NewRecorder()
		respondError(rr, httptest.NewRequest(http.MethodGet, "/", nil), "test", true, tc.err)

		assert.Equal(t, tc.status, rr.Code, tc.err.Error())
		env := decodeEnvelope(t, rr)
		assert.Equal(t, tc.msg, env.Error)
		assert.Empty(t, env.Details)
	}
}

func TestRespondError_InternalDetailsOnlyInDebug(t *testing.T) {
	err := errors.New("dynamodb: throttled")

	rr := httptest.NewRecorder()
	respondError(rr, httptest.NewRequest(http.MethodGet, "/", nil), "test", false, err)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	env := decodeEnvelope(t, rr)
	assert.Equal(t, internalMessage, env.Error)
	assert.Empty(t, env.Details)

	rr = httptest.NewRecorder()
	respondError(rr, httptest.NewRequest(http.MethodGet, "/", nil), "test", true, err)
	env = decodeEnvelope(t, rr)
	assert.Equal(t, "dynamodb: throttled", env.Details)
}

func TestRespondError_DeliveryFailure(t *testing.T) {
	err := fmt.Errorf("send code to a@x.com: %w: %w", domain.ErrDelivery, errors.New("550 mailbox unavailable"))

	rr := httptest.NewRecorder()
	respondError(rr, httptest.NewRequest(http.MethodPost, "/", nil), "send_otp", false, err)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "Failed to send OTP. Please check your email configuration.", decodeEnvelope(t, rr).Error)
}

// --- health ---

func TestHealth_Ping(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/health-check/{action}", NewHealthHandler().Ping)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health-check/ping", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "pong", decodeEnvelope(t, rr).Message)

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health-check/reboot", nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

// --- documents ---

func TestDocumentUpload_StatusFollowsSlotState(t *testing.T) {
	doc := &domain.Document{DocumentID: "d1", Type: domain.DocumentTypeIDProofA, Filename: "a.pdf", Size: 1536 << 10}
	cases := []struct {
		created bool
		status  int
		message string
	}{
		{true, http.StatusCreated, "Aadhar Card uploaded successfully"},
		{false, http.StatusOK, "Aadhar Card updated successfully"},
	}
	for _, tc := range cases {
		svc := &mockDocumentSvc{}
		svc.On("Upload", mock.Anything, mock.MatchedBy(func(req document.UploadRequest) bool {
			return req.UserID == "u1" && req.Type == domain.DocumentTypeIDProofA && req.Filename == "a.pdf" && req.Size == 4
		})).Return(&document.UploadResult{Document: doc, Created: tc.created}, nil)

		body, ct := multipartBody(t, map[string]string{"document_type": "id_proof_a"}, "a.pdf", []byte("%PDF"))
		req := httptest.NewRequest(http.MethodPost, "/upload-document", body)
		req.Header.Set("Content-Type", ct)
		rr := httptest.NewRecorder()
		NewDocumentHandler(svc, false).Upload(rr, authed(req, "u1"))

		assert.Equal(t, tc.status, rr.Code)
		var env struct {
			Message  string `json:"message"`
			Document struct {
				ID         string  `json:"id"`
				Display    string  `json:"document_type_display"`
				FileSizeMB float64 `json:"file_size_mb"`
			} `json:"document"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
		assert.Equal(t, tc.message, env.Message)
		assert.Equal(t, "d1", env.Document.ID)
		assert.Equal(t, "Aadhar Card", env.Document.Display)
		assert.Equal(t, 1.5, env.Document.FileSizeMB)
		svc.AssertExpectations(t)
	}
}

func TestDocumentUpload_MissingFile(t *testing.T) {
	svc := &mockDocumentSvc{}
	body, ct := multipartBody(t, map[string]string{"document_type": "id_proof_a"}, "", nil)
	req := httptest.NewRequest(http.MethodPost, "/upload-document", body)
	req.Header.Set("Content-Type", ct)
	rr := httptest.NewRecorder()

	NewDocumentHandler(svc, false).Upload(rr, authed(req, "u1"))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "file is required", decodeEnvelope(t, rr).Error)
	svc.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
}

func TestDocumentUpload_BodyOverLimit(t *testing.T) {
	svc := &mockDocumentSvc{}
	body, ct := multipartBody(t, map[string]string{"document_type": "id_proof_a"}, "big.pdf", make([]byte, 12<<20))
	req := httptest.NewRequest(http.MethodPost, "/upload-document", body)
	req.Header.Set("Content-Type", ct)
	rr := httptest.NewRecorder()

	NewDocumentHandler(svc, false).Upload(rr, authed(req, "u1"))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "File size cannot exceed 10MB.", decodeEnvelope(t, rr).Error)
	svc.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
}

func TestDocumentUpload_NoClaims(t *testing.T) {
	rr := httptest.NewRecorder()
	NewDocumentHandler(&mockDocumentSvc{}, false).Upload(rr, httptest.NewRequest(http.MethodPost, "/upload-document", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestDocumentList_PassesFilterAndCounts(t *testing.T) {
	svc := &mockDocumentSvc{}
	svc.On("List", mock.Anything, "u1", domain.DocumentTypeIDProofB).
		Return([]domain.Document{{DocumentID: "d2", Type: domain.DocumentTypeIDProofB}}, nil)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/documents?document_type=id_proof_b", nil)
	NewDocumentHandler(svc, false).List(rr, authed(req, "u1"))

	require.Equal(t, http.StatusOK, rr.Code)
	var env struct {
		Documents []map[string]interface{} `json:"documents"`
		Count     int                      `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	assert.Equal(t, 1, env.Count)
	assert.Equal(t, "PAN Card", env.Documents[0]["document_type_display"])
	assert.NotContains(t, env.Documents[0], "user_id")
}

// --- wallet ---

func TestWalletBalance_TwoDecimalPlaces(t *testing.T) {
	svc := &mockWalletSvc{}
	svc.On("Balance", mock.Anything, "u1").Return(decimal.NewFromInt(75), nil)

	rr := httptest.NewRecorder()
	NewWalletHandler(svc, false).Balance(rr, authed(httptest.NewRequest(http.MethodGet, "/wallet/balance", nil), "u1"))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"balance":"75.00"}`, rr.Body.String())
}

func TestWalletCredit(t *testing.T) {
	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	svc := &mockWalletSvc{}
	svc.On("Credit", mock.Anything, "u1", mock.MatchedBy(func(d decimal.Decimal) bool {
		return d.Equal(decimal.RequireFromString("25.5"))
	})).Return(&domain.Wallet{UserID: "u1", Balance: decimal.RequireFromString("25.5"), CreatedAt: now, UpdatedAt: now}, nil)

	req := httptest.NewRequest(http.MethodPost, "/wallet/credit", bytes.NewBufferString(`{"amount":"25.50"}`))
	rr := httptest.NewRecorder()
	NewWalletHandler(svc, false).Credit(rr, authed(req, "u1"))

	require.Equal(t, http.StatusOK, rr.Code)
	var env struct {
		Message string `json:"message"`
		Wallet  struct {
			Balance string `json:"balance"`
		} `json:"wallet"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	assert.Equal(t, "Wallet credited successfully", env.Message)
	assert.Equal(t, "25.50", env.Wallet.Balance)
}

func TestWalletCredit_RejectsBeforeService(t *testing.T) {
	svc := &mockWalletSvc{}
	for _, body := range []string{`{"amount":-1}`, `{"amount":"ten"}`, `{}`} {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/wallet/credit", bytes.NewBufferString(body))
		NewWalletHandler(svc, false).Credit(rr, authed(req, "u1"))
		assert.Equal(t, http.StatusBadRequest, rr.Code, body)
	}
	svc.AssertNotCalled(t, "Credit", mock.Anything, mock.Anything, mock.Anything)
}

// --- quotation ---

func TestQuotationRender_Headers(t *testing.T) {
	pdfBytes := []byte("%PDF-1.3 fake")
	svc := &mockQuotationSvc{}
	svc.On("Render", mock.Anything, mock.AnythingOfType("domain.Quotation")).Return(pdfBytes, nil)

	body := `{"customer_name":"Acme","date":"2024-05-01","processes":["Cut"],"products":["Slab"],"total_area":"10","total_amount":"99.9"}`
	rr := httptest.NewRecorder()
	NewQuotationHandler(svc, false).Render(rr, authed(httptest.NewRequest(http.MethodPost, "/quotation/pdf", bytes.NewBufferString(body)), "u1"))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/pdf", rr.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="quotation.pdf"`, rr.Header().Get("Content-Disposition"))
	assert.Equal(t, "13", rr.Header().Get("Content-Length"))
	assert.Equal(t, pdfBytes, rr.Body.Bytes())
}

func TestQuotationRender_MalformedBody(t *testing.T) {
	svc := &mockQuotationSvc{}
	rr := httptest.NewRecorder()
	NewQuotationHandler(svc, false).Render(rr, authed(httptest.NewRequest(http.MethodPost, "/quotation/pdf", bytes.NewBufferString("{")), "u1"))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "invalid request body", decodeEnvelope(t, rr).Error)
}
