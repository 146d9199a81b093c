package render

import (
	"bytes"
	"fmt"
	"os"

	"github.com/avolkova/foodgram-backend/internal/app/service"
	"github.com/avolkova/foodgram-backend/pkg/logger"
	"github.com/go-pdf/fpdf"
)

const (
	pdfFontName   = "ListFont"
	pdfTitleSize  = 16.0
	pdfBodySize   = 12.0
	pdfLineHeight = 8.0
)

// PDFRenderer renders shopping lists as PDF documents. The font is read once
// at construction; each Render call builds a fresh document from it, so the
// renderer is safe for concurrent use.
type PDFRenderer struct {
	font []byte
}

// NewPDFRenderer loads the TTF font at fontPath. The font must cover the
// non-ASCII characters that ingredient names can contain, so a missing or
// empty font file is a startup error.
func NewPDFRenderer(fontPath string) (*PDFRenderer, error) {
	font, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load PDF font %s: %w", fontPath, err)
	}
	if len(font) == 0 {
		return nil, fmt.Errorf("PDF font %s is empty", fontPath)
	}

	logger.Info("PDF font loaded", map[string]interface{}{
		"path":  fontPath,
		"bytes": len(font),
	})
	return &PDFRenderer{font: font}, nil
}

func (r *PDFRenderer) ContentType() string { return "application/pdf" }

func (r *PDFRenderer) Extension() string { return "pdf" }

// Render writes the shopping list as a one-column PDF. An empty list still
// produces a valid document with just the heading.
func (r *PDFRenderer) Render(items []service.ShoppingListItem) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.AddUTF8FontFromBytes(pdfFontName, "", r.font)
	doc.AddPage()

	doc.SetFont(pdfFontName, "", pdfTitleSize)
	doc.CellFormat(0, 12, "Shopping list", "", 1, "C", false, 0, "")
	doc.Ln(4)

	doc.SetFont(pdfFontName, "", pdfBodySize)
	for _, item := range items {
		line := fmt.Sprintf("%s %s%s", item.Name, FormatAmount(item.Amount), item.Unit)
		doc.CellFormat(0, pdfLineHeight, line, "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		logger.Error("Failed to render shopping list PDF", err, map[string]interface{}{
			"item_count": len(items),
		})
		return nil, err
	}
	return buf.Bytes(), nil
}
