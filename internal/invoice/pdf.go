package invoice

import (
	"bytes"
	"context"
	"fmt"

	"github.com/go-pdf/fpdf"
)

// PDFRenderer draws a Layout with fpdf's core fonts. Output is byte-for-byte
// stable for a given layout: document dates come from the bill and catalog
// dictionaries are written in sorted order.
type PDFRenderer struct {
	compress bool
}

func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{compress: true}
}

func (r *PDFRenderer) Render(ctx context.Context, l Layout) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetCompression(r.compress)
	pdf.SetCreationDate(l.CreatedAt)
	pdf.SetModificationDate(l.CreatedAt)
	pdf.SetCatalogSort(true)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(l.Title, true)
	pdf.SetCreator("salon", false)

	// Core fonts are cp1252; anything outside it prints as a placeholder glyph.
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	for p := 0; p < l.Pages; p++ {
		pdf.AddPage()
		for _, it := range l.PageItems(p) {
			style := ""
			if it.Font.Bold {
				style = "B"
			}
			pdf.SetFont(it.Font.Family, style, it.Font.Size)
			pdf.Text(it.X, it.Y, tr(it.Text))
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}
