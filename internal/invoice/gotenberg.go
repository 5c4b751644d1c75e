package invoice

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/rushi-salon/salon/report"
	"github.com/rushi-salon/salon/web"
)

// HTMLConverter turns an HTML document into PDF bytes.
type HTMLConverter interface {
	RenderHTML(ctx context.Context, html string, page report.Page) ([]byte, error)
}

// GotenbergRenderer prints the layout as absolutely positioned HTML and has
// Gotenberg convert it. Chromium stamps its own document dates, so output is
// not byte-stable across calls.
type GotenbergRenderer struct {
	converter HTMLConverter
	tpl       *template.Template
}

// fullBleed lets the template own the one-inch margins.
var fullBleed = report.Page{Width: pageWidthPt / 72, Height: pageHeightPt / 72}

// helveticaAscent converts a baseline to the top of the glyph box.
const helveticaAscent = 0.718

type htmlItem struct {
	X, Top, Size float64
	Bold         bool
	Text         string
}

type htmlDocument struct {
	Title string
	Pages [][]htmlItem
}

func NewGotenbergRenderer(converter HTMLConverter) (*GotenbergRenderer, error) {
	tpl, err := template.ParseFS(web.Templates, "templates/invoice.html")
	if err != nil {
		return nil, fmt.Errorf("parse invoice template: %w", err)
	}
	return &GotenbergRenderer{converter: converter, tpl: tpl}, nil
}

func (r *GotenbergRenderer) Render(ctx context.Context, l Layout) ([]byte, error) {
	html, err := r.buildHTML(l)
	if err != nil {
		return nil, fmt.Errorf("render template: %w", err)
	}
	return r.converter.RenderHTML(ctx, html, fullBleed)
}

func (r *GotenbergRenderer) buildHTML(l Layout) (string, error) {
	doc := htmlDocument{Title: l.Title, Pages: make([][]htmlItem, l.Pages)}
	for _, it := range l.Items {
		doc.Pages[it.Page] = append(doc.Pages[it.Page], htmlItem{
			X:    it.X,
			Top:  it.Y - it.Font.Size*helveticaAscent,
			Size: it.Font.Size,
			Bold: it.Font.Bold,
			Text: it.Text,
		})
	}
	var buf bytes.Buffer
	if err := r.tpl.ExecuteTemplate(&buf, "invoice.html", doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}
