package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/andy/invoicedesk/internal/domain"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// PaperSelector is the CSS selector of the printable region in the HTML
const PaperSelector = ".invoice-paper"

// Renderer projects invoices into HTML pages
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the embedded templates
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("invoice.html.tmpl").
		Funcs(template.FuncMap{
			"orDash":  orDash,
			"company": companyOrPlaceholder,
		}).
		ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse invoice templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

type htmlView struct {
	Data     domain.InvoiceData
	Logo     template.URL
	HasLogo  bool
	Extended bool
	Rows     []domain.InvoiceItem
}

// RenderHTML renders a complete HTML document for the invoice
func (r *Renderer) RenderHTML(data domain.InvoiceData, logo string, t Template) (string, error) {
	view := htmlView{
		Data:     data,
		Extended: t == Extended,
		Rows:     Rows(data.Items, t),
	}
	if isImageDataURI(logo) {
		// data URIs are rejected by html/template unless marked safe
		view.Logo = template.URL(logo)
		view.HasLogo = true
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("render invoice html: %w", err)
	}
	return buf.String(), nil
}

func isImageDataURI(s string) bool {
	return strings.HasPrefix(s, "data:image/") && strings.Contains(s, ";base64,")
}
