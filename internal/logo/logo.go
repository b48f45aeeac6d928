package logo

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// Extensions accepted by the logo file picker
var Extensions = []string{".png", ".jpg", ".jpeg", ".gif", ".webp", ".svg"}

// Loader reads logo files into data URIs
type Loader struct {
	Logger *log.Logger // optional
}

// Load reads path and returns "data:<mime>;base64,<payload>".
// Cancelling ctx abandons the result.
func (l Loader) Load(ctx context.Context, path string) (string, error) {
	type result struct {
		uri string
		err error
	}
	done := make(chan result, 1)
	go func() {
		uri, err := Encode(path)
		done <- result{uri, err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		if r.err == nil && !IsImageURI(r.uri) && l.Logger != nil {
			l.Logger.Warn("logo content is not an image", "path", path)
		}
		return r.uri, r.err
	}
}

// Encode reads a file and returns it as a data URI. The content type is
// sniffed; files that are not images are encoded anyway.
func Encode(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read logo: %w", err)
	}

	mime := http.DetectContentType(data)
	if strings.EqualFold(filepath.Ext(path), ".svg") && !strings.HasPrefix(mime, "image/") {
		// sniffing reports SVG as text/xml or text/plain
		mime = "image/svg+xml"
	}

	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// IsImageURI reports whether a data URI carries an image MIME type
func IsImageURI(uri string) bool {
	return strings.HasPrefix(uri, "data:image/")
}
