package document

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/go-api-vendor/internal/domain"
	"github.com/go-api-vendor/internal/metrics"
	"github.com/go-api-vendor/internal/pkg/id"
)

const (
	ActionCreated = "created"
	ActionUpdated = "updated"
)

type UploadRequest struct {
	UserID   string
	Type     domain.DocumentType
	Filename string
	Size     int64
	Content  io.Reader
}

type UploadResult struct {
	Document *domain.Document
	// Created is false when an existing slot was replaced.
	Created bool
}

// Message is the human-readable outcome, e.g. "PAN Card updated successfully".
func (r UploadResult) Message() string {
	verb := "uploaded"
	if !r.Created {
		verb = "updated"
	}
	return fmt.Sprintf("%s %s successfully", r.Document.Type.Display(), verb)
}

type Service interface {
	// Upload fills the (user, type) slot, replacing the blob of an occupied one.
	Upload(ctx context.Context, req UploadRequest) (*UploadResult, error)
	// List returns the user's documents, newest upload first, optionally narrowed to one type.
	List(ctx context.Context, userID string, filter domain.DocumentType) ([]domain.Document, error)
	Get(ctx context.Context, userID, documentID string) (*domain.Document, error)
}

type documentStore interface {
	GetBySlot(ctx context.Context, userID string, t domain.DocumentType) (*domain.Document, error)
	Create(ctx context.Context, d *domain.Document) error
	Replace(ctx context.Context, d *domain.Document) error
	ListByUser(ctx context.Context, userID string) ([]domain.Document, error)
	// Get is scoped to the owner: another user's document is ErrNotFound.
	Get(ctx context.Context, userID, documentID string) (*domain.Document, error)
}

type blobStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
	PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
}

type eventPublisher interface {
	Publish(ctx context.Context, subject, message string) error
}

type recorder interface {
	RecordDocumentUpload(documentType, action string)
}

type ServiceDeps struct {
	DocumentRepo documentStore
	Blobs        blobStore
	// Events is optional; uploads are announced when set.
	Events  eventPublisher
	Metrics recorder
	URLTTL  time.Duration
	Now     func() time.Time
}

type service struct {
	repo    documentStore
	blobs   blobStore
	events  eventPublisher
	metrics recorder
	urlTTL  time.Duration
	now     func() time.Time
}

func NewService(deps ServiceDeps) Service {
	s := &service{
		repo:    deps.DocumentRepo,
		blobs:   deps.Blobs,
		events:  deps.Events,
		metrics: deps.Metrics,
		urlTTL:  deps.URLTTL,
		now:     deps.Now,
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.metrics == nil {
		s.metrics = metrics.Nop{}
	}
	if s.urlTTL <= 0 {
		s.urlTTL = 15 * time.Minute
	}
	return s
}

func (s *service) Upload(ctx context.Context, req UploadRequest) (*UploadResult, error) {
	if req.Size > domain.MaxDocumentSize {
		return nil, fmt.Errorf("%d bytes exceeds %d: %w", req.Size, domain.MaxDocumentSize, domain.ErrFileTooLarge)
	}
	filename := path.Base(strings.ReplaceAll(req.Filename, `\`, "/"))
	contentType, ok := domain.DocumentContentType(filename)
	if !ok {
		return nil, fmt.Errorf("%q: only PDF, JPG, JPEG and PNG files are allowed: %w", filename, domain.ErrUnsupportedType)
	}
	if !req.Type.Valid() {
		return nil, fmt.Errorf("%q: %w", req.Type, domain.ErrInvalidDocumentType)
	}

	existing, err := s.repo.GetBySlot(ctx, req.UserID, req.Type)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	key := fmt.Sprintf("documents/%s/%s/%s-%s", req.UserID, req.Type, id.New(), sanitize(filename))
	hash := sha256.New()
	counter := &countingReader{r: io.TeeReader(req.Content, hash)}
	if _, err := s.blobs.Upload(ctx, key, counter, contentType); err != nil {
		return nil, fmt.Errorf("store blob: %w", err)
	}

	now := s.now().UTC()
	doc := &domain.Document{
		DocumentID:  id.New(),
		UserID:      req.UserID,
		Type:        req.Type,
		Object:      key,
		Filename:    filename,
		Size:        counter.n,
		ContentType: contentType,
		Hash:        hex.EncodeToString(hash.Sum(nil)),
		UploadedAt:  now,
		CreatedAt:   now,
	}

	created := existing == nil
	if created {
		err = s.repo.Create(ctx, doc)
		if errors.Is(err, domain.ErrConflict) {
			// a concurrent upload filled the slot first; last write wins
			existing, err = s.repo.GetBySlot(ctx, req.UserID, req.Type)
			created = false
		}
	}
	if err == nil && !created {
		doc.DocumentID = existing.DocumentID
		doc.Verified = existing.Verified
		doc.CreatedAt = existing.CreatedAt
		err = s.repo.Replace(ctx, doc)
	}
	if err != nil {
		s.deleteBlob(ctx, key)
		return nil, fmt.Errorf("persist document: %w", err)
	}
	if existing != nil && existing.Object != "" && existing.Object != key {
		s.deleteBlob(ctx, existing.Object)
	}

	action := ActionCreated
	if !created {
		action = ActionUpdated
	}
	s.metrics.RecordDocumentUpload(string(doc.Type), action)
	s.publish(ctx, action, doc)

	if err := s.attachURL(ctx, doc); err != nil {
		return nil, err
	}
	return &UploadResult{Document: doc, Created: created}, nil
}

func (s *service) List(ctx context.Context, userID string, filter domain.DocumentType) ([]domain.Document, error) {
	all, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	docs := make([]domain.Document, 0, len(all))
	for _, d := range all {
		if filter != "" && d.Type != filter {
			continue
		}
		docs = append(docs, d)
	}
	sort.SliceStable(docs, func(i, j int) bool {
		return docs[i].UploadedAt.After(docs[j].UploadedAt)
	})
	for i := range docs {
		if err := s.attachURL(ctx, &docs[i]); err != nil {
			return nil, err
		}
	}
	return docs, nil
}

// Get hides documents owned by other users behind ErrNotFound.
func (s *service) Get(ctx context.Context, userID, documentID string) (*domain.Document, error) {
	d, err := s.repo.Get(ctx, userID, documentID)
	if err != nil {
		return nil, err
	}
	if err := s.attachURL(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *service) attachURL(ctx context.Context, d *domain.Document) error {
	url, err := s.blobs.PresignedURL(ctx, d.Object, s.urlTTL)
	if err != nil {
		return fmt.Errorf("document url: %w", err)
	}
	d.URL = url
	return nil
}

func (s *service) deleteBlob(ctx context.Context, key string) {
	if err := s.blobs.Delete(ctx, key); err != nil {
		slog.WarnContext(ctx, "failed to delete document blob", "key", key, "err", err)
	}
}

type uploadEvent struct {
	Event        string    `json:"event"`
	DocumentID   string    `json:"document_id"`
	UserID       string    `json:"user_id"`
	DocumentType string    `json:"document_type"`
	Filename     string    `json:"filename"`
	Size         int64     `json:"size"`
	UploadedAt   time.Time `json:"uploaded_at"`
}

func (s *service) publish(ctx context.Context, action string, d *domain.Document) {
	if s.events == nil {
		return
	}
	event := "document.uploaded"
	if action == ActionUpdated {
		event = "document.updated"
	}
	body, err := json.Marshal(uploadEvent{
		Event:        event,
		DocumentID:   d.DocumentID,
		UserID:       d.UserID,
		DocumentType: string(d.Type),
		Filename:     d.Filename,
		Size:         d.Size,
		UploadedAt:   d.UploadedAt,
	})
	if err != nil {
		slog.WarnContext(ctx, "encode document event", "err", err)
		return
	}
	if err := s.events.Publish(ctx, event, string(body)); err != nil {
		slog.WarnContext(ctx, "publish document event", "event", event, "document_id", d.DocumentID, "err", err)
	}
}

// sanitize keeps object keys to a conservative character set.
func sanitize(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
