package render

import (
	"fmt"
	"strings"

	"github.com/andy/invoicedesk/internal/domain"
)

// Template selects one of the fixed invoice layouts
type Template int

const (
	// Compact shows company, customer, items and totals
	Compact Template = iota
	// Extended adds brand and Arabic names, footer, signature and pads the
	// item table to a fixed height
	Extended
)

// MinExtendedRows is the item table height of the extended layout
const MinExtendedRows = 10

// String returns the template name
func (t Template) String() string {
	switch t {
	case Compact:
		return "compact"
	case Extended:
		return "extended"
	default:
		return "unknown"
	}
}

// ParseTemplate parses a template name. Empty means compact.
func ParseTemplate(s string) (Template, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "compact":
		return Compact, nil
	case "extended":
		return Extended, nil
	}
	return Compact, fmt.Errorf("unknown template %q (want compact or extended)", s)
}

// Next cycles to the other template
func (t Template) Next() Template {
	if t == Compact {
		return Extended
	}
	return Compact
}

// Rows returns the item rows to print. The extended layout appends blank
// rows until the table has MinExtendedRows rows.
func Rows(items []domain.InvoiceItem, t Template) []domain.InvoiceItem {
	n := len(items)
	if t == Extended && n < MinExtendedRows {
		n = MinExtendedRows
	}
	rows := make([]domain.InvoiceItem, n)
	copy(rows, items)
	return rows
}

// orDash returns "—" for an empty value
func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}

// companyOrPlaceholder returns the company name or its placeholder
func companyOrPlaceholder(s string) string {
	if s == "" {
		return "Company Name"
	}
	return s
}
