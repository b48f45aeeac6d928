package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// MIMEPDF is the MIME type of every exported document
const MIMEPDF = "application/pdf"

// Document is one exported file, ready to be saved or offered for download
type Document struct {
	Name     string
	MIMEType string
	Data     []byte
}

// Filename returns the export file name for a voucher number:
// invoice-<voucher>.pdf, or invoice-draft.pdf when the voucher is empty.
// Unlike a plain empty check, a voucher of only spaces also yields draft,
// and "/" or "\" become "-" so the name never leaves the output directory.
func Filename(voucherNo string) string {
	stem := strings.TrimSpace(voucherNo)
	if stem == "" {
		stem = "draft"
	}
	// keep the name a single path element
	stem = strings.NewReplacer("/", "-", "\\", "-").Replace(stem)
	return fmt.Sprintf("invoice-%s.pdf", stem)
}

// WriteFile saves the document into dir and returns the full path
func WriteFile(dir string, doc *Document) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(dir, doc.Name)
	if err := os.WriteFile(path, doc.Data, 0644); err != nil {
		return "", fmt.Errorf("write %s: %w", doc.Name, err)
	}
	return path, nil
}
