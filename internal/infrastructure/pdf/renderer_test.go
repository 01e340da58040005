package pdf

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/go-api-vendor/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleQuotation() domain.Quotation {
	amount := decimal.RequireFromString("1234.5")
	return domain.Quotation{
		CustomerName: "Acme Interiors",
		Date:         "2024-05-01",
		Processes:    []string{"Cutting", "Polishing"},
		Products:     []string{"Granite slab"},
		TotalArea:    "120 sq ft",
		TotalAmount:  domain.NewAmount(amount),
	}
}

func TestRender_ProducesPDF(t *testing.T) {
	out, err := NewRenderer().Render(sampleQuotation())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	assert.True(t, bytes.Contains(out, []byte("%%EOF")))
}

func TestRender_Deterministic(t *testing.T) {
	r := NewRenderer()
	a, err := r.Render(sampleQuotation())
	require.NoError(t, err)
	b, err := r.Render(sampleQuotation())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestRender_Paginates(t *testing.T) {
	q := sampleQuotation()
	q.Products = nil
	for i := 0; i < 80; i++ {
		q.Products = append(q.Products, fmt.Sprintf("Product %d", i))
	}
	doc := NewRenderer().layout(q)
	require.NoError(t, doc.Error())
	assert.Greater(t, doc.PageCount(), 1)
}

func TestRender_NonLatinTextDoesNotFail(t *testing.T) {
	q := sampleQuotation()
	q.CustomerName = "Café Müller"
	_, err := NewRenderer().Render(q)
	assert.NoError(t, err)
}
