package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-api-vendor/internal/domain"
)

type slotKey struct {
	userID string
	typ    domain.DocumentType
}

type DocumentRepo struct {
	mu    sync.RWMutex
	slots map[slotKey]domain.Document
}

func NewDocumentRepo() *DocumentRepo {
	return &DocumentRepo{slots: make(map[slotKey]domain.Document)}
}

func (r *DocumentRepo) GetBySlot(_ context.Context, userID string, t domain.DocumentType) (*domain.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.slots[slotKey{userID, t}]
	if !ok {
		return nil, fmt.Errorf("document not found: %w", domain.ErrNotFound)
	}
	return &d, nil
}

func (r *DocumentRepo) Create(_ context.Context, d *domain.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := slotKey{d.UserID, d.Type}
	if _, ok := r.slots[k]; ok {
		return fmt.Errorf("slot %s/%s occupied: %w", d.UserID, d.Type, domain.ErrConflict)
	}
	r.slots[k] = *d
	return nil
}

func (r *DocumentRepo) Replace(_ context.Context, d *domain.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.slots[slotKey{d.UserID, d.Type}] = *d
	return nil
}

func (r *DocumentRepo) ListByUser(_ context.Context, userID string) ([]domain.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var docs []domain.Document
	for k, d := range r.slots {
		if k.userID == userID {
			docs = append(docs, d)
		}
	}
	return docs, nil
}

func (r *DocumentRepo) Get(_ context.Context, userID, documentID string) (*domain.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for k, d := range r.slots {
		if k.userID == userID && d.DocumentID == documentID {
			return &d, nil
		}
	}
	return nil, fmt.Errorf("document not found: %w", domain.ErrNotFound)
}
