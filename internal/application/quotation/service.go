package quotation

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-api-vendor/internal/domain"
	"github.com/go-api-vendor/internal/metrics"
	"github.com/go-api-vendor/internal/pkg/validate"
)

type Service interface {
	// Render validates q and returns it as a PDF document.
	Render(ctx context.Context, q domain.Quotation) ([]byte, error)
}

type renderer interface {
	Render(q domain.Quotation) ([]byte, error)
}

type recorder interface {
	RecordQuotationRendered()
}

type ServiceDeps struct {
	Renderer renderer
	Metrics  recorder
}

type service struct {
	renderer renderer
	metrics  recorder
}

func NewService(deps ServiceDeps) Service {
	s := &service{renderer: deps.Renderer, metrics: deps.Metrics}
	if s.metrics == nil {
		s.metrics = metrics.Nop{}
	}
	return s
}

func (s *service) Render(_ context.Context, q domain.Quotation) ([]byte, error) {
	q = normalize(q)
	if err := validate.Struct(q); err != nil {
		return nil, err
	}
	if err := domain.CheckAmountRange(q.TotalAmount.Decimal); err != nil {
		return nil, fmt.Errorf("total_amount: %v: %w", err, domain.ErrValidation)
	}
	out, err := s.renderer.Render(q)
	if err != nil {
		return nil, fmt.Errorf("render quotation: %w", err)
	}
	s.metrics.RecordQuotationRendered()
	return out, nil
}

func normalize(q domain.Quotation) domain.Quotation {
	q.CustomerName = strings.TrimSpace(q.CustomerName)
	q.Date = strings.TrimSpace(q.Date)
	q.TotalArea = strings.TrimSpace(q.TotalArea)
	q.Processes = trimAll(q.Processes)
	q.Products = trimAll(q.Products)
	return q
}

func trimAll(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = strings.TrimSpace(v)
	}
	return out
}
