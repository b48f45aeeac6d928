package export

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/go-rod/rod/lib/launcher"
)

// ErrBrowserNotFound is returned when no Chrome/Chromium can be located and
// downloading is disabled
var ErrBrowserNotFound = errors.New("no Chrome or Chromium browser found")

var browserNames = []string{
	"chromium-browser", "chromium", "google-chrome",
	"google-chrome-stable", "chrome",
}

var browserPaths = []string{
	"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
	"/Applications/Chromium.app/Contents/MacOS/Chromium",
}

// ResolveBrowser returns the path of the browser used for rasterizing.
// Order: configured path, PATH lookup, well-known install locations, then a
// cached Chromium download when download is true.
func ResolveBrowser(configured string, download bool) (string, error) {
	if configured != "" {
		if _, err := os.Stat(configured); err != nil {
			return "", fmt.Errorf("configured browser: %w", err)
		}
		return configured, nil
	}

	for _, name := range browserNames {
		if path, err := exec.LookPath(name); err == nil {
			return path, nil
		}
	}
	for _, path := range browserPaths {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	if !download {
		return "", ErrBrowserNotFound
	}

	// Stored under ~/.cache/rod/browser and reused on later runs
	path, err := launcher.NewBrowser().Get()
	if err != nil {
		return "", fmt.Errorf("download browser: %w", err)
	}
	return path, nil
}
