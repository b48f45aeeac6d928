package tui

import (
	"fmt"
	"strings"
)

// truncateStr truncates a string to the specified length with ellipsis
func truncateStr(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}

// formatBytes formats a size as "N B", "N.N KB" or "N.N MB"
func formatBytes(n int) string {
	switch {
	case n < 1024:
		return fmt.Sprintf("%d B", n)
	case n < 1024*1024:
		return fmt.Sprintf("%.1f KB", float64(n)/1024)
	default:
		return fmt.Sprintf("%.1f MB", float64(n)/(1024*1024))
	}
}

// describeLogo summarizes a data URI for the status area
func describeLogo(dataURI string) string {
	if dataURI == "" {
		return "none"
	}
	mime := strings.TrimPrefix(dataURI, "data:")
	payload := ""
	if i := strings.Index(mime, ";base64,"); i >= 0 {
		payload = mime[i+len(";base64,"):]
		mime = mime[:i]
	}
	// base64 carries 3 bytes per 4 characters
	return fmt.Sprintf("%s, %s", mime, formatBytes(len(payload)*3/4))
}

// exportTracker remembers which invoices have an export in flight. It is
// only touched from the Bubble Tea event loop.
type exportTracker struct {
	pending map[string]bool
}

func newExportTracker() *exportTracker {
	return &exportTracker{pending: make(map[string]bool)}
}

func (t *exportTracker) start(id string) { t.pending[id] = true }
func (t *exportTracker) done(id string)  { delete(t.pending, id) }
func (t *exportTracker) busy(id string) bool {
	return t.pending[id]
}
func (t *exportTracker) any() bool { return len(t.pending) > 0 }
