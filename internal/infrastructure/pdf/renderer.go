// Package pdf renders quotations with go-pdf/fpdf.
package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-api-vendor/internal/domain"
	"github.com/go-pdf/fpdf"
)

const (
	lineHeight = 8.0
	margin     = 20.0
)

// fixedStamp pins the document dates so identical input renders identical bytes.
var fixedStamp = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

type rgb struct{ r, g, b int }

var (
	headerFill = rgb{128, 128, 128}
	headerText = rgb{245, 245, 245}
	bodyFill   = rgb{245, 245, 220}
	black      = rgb{0, 0, 0}
)

// Renderer lays a quotation out on US Letter pages.
type Renderer struct{}

func NewRenderer() *Renderer { return &Renderer{} }

func (r *Renderer) Render(q domain.Quotation) ([]byte, error) {
	doc := r.layout(q)
	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render quotation: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) layout(q domain.Quotation) *fpdf.Fpdf {
	doc := fpdf.New("P", "mm", "Letter", "")
	doc.SetCreationDate(fixedStamp)
	doc.SetModificationDate(fixedStamp)
	doc.SetCatalogSort(true)
	doc.SetMargins(margin, margin, margin)
	doc.SetAutoPageBreak(true, margin)
	doc.SetTitle("Quotation", true)
	tr := doc.UnicodeTranslatorFromDescriptor("")

	doc.AddPage()
	width, _ := doc.GetPageSize()
	contentWidth := width - 2*margin

	doc.SetFont("Helvetica", "B", 20)
	doc.CellFormat(contentWidth, 12, "Quotation", "", 1, "C", false, 0, "")
	doc.Ln(4)

	doc.SetFont("Helvetica", "", 12)
	doc.CellFormat(contentWidth, lineHeight, tr("Customer Name: "+q.CustomerName), "", 1, "L", false, 0, "")
	doc.CellFormat(contentWidth, lineHeight, tr("Date: "+q.Date), "", 1, "L", false, 0, "")
	doc.Ln(4)

	table(doc, tr, contentWidth, "Processes", q.Processes)
	table(doc, tr, contentWidth, "Products", q.Products)

	doc.SetFont("Helvetica", "", 12)
	doc.CellFormat(contentWidth, lineHeight, tr("Total Area: "+q.TotalArea), "", 1, "L", false, 0, "")
	doc.Ln(2)

	amount := "0.00"
	if q.TotalAmount != nil {
		amount = q.TotalAmount.StringFixed(2)
	}
	doc.SetFont("Helvetica", "B", 16)
	doc.CellFormat(contentWidth, 10, "Total Amount: $"+amount, "", 1, "L", false, 0, "")
	return doc
}

// table draws a single-column grid: grey header row, beige body rows.
func table(doc *fpdf.Fpdf, tr func(string) string, width float64, title string, rows []string) {
	doc.SetDrawColor(black.r, black.g, black.b)

	doc.SetFont("Helvetica", "B", 12)
	doc.SetFillColor(headerFill.r, headerFill.g, headerFill.b)
	doc.SetTextColor(headerText.r, headerText.g, headerText.b)
	doc.CellFormat(width, lineHeight, title, "1", 1, "C", true, 0, "")

	doc.SetFont("Helvetica", "", 11)
	doc.SetFillColor(bodyFill.r, bodyFill.g, bodyFill.b)
	doc.SetTextColor(black.r, black.g, black.b)
	for _, row := range rows {
		doc.MultiCell(width, lineHeight, tr(row), "1", "C", true)
	}
	doc.Ln(6)
}
