package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/andy/invoicedesk/internal/render"
	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/chromedp"
)

// ErrClosed is returned when rasterizing with a closed ChromeRasterizer
var ErrClosed = errors.New("rasterizer is closed")

// Rasterizer captures the printable region of an HTML page as a PNG image
type Rasterizer interface {
	Rasterize(ctx context.Context, html string) ([]byte, error)
}

// ChromeOptions configures a ChromeRasterizer
type ChromeOptions struct {
	ExecPath  string        // empty lets chromedp search itself
	NoSandbox bool          // required when running as root, e.g. in containers
	Scale     float64       // device scale factor, 2 by default
	Timeout   time.Duration // per capture; zero or negative disables it

	// Resolve locates the browser on first start when ExecPath is empty
	Resolve func() (string, error)
}

// A4 at 96 dpi
const (
	viewportWidth  = 794
	viewportHeight = 1123
)

// ChromeRasterizer renders HTML in headless Chrome. The browser is started on
// the first capture and reused until Close.
type ChromeRasterizer struct {
	opts ChromeOptions

	mu            sync.Mutex
	started       bool
	closed        bool
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc
}

// NewChromeRasterizer creates a rasterizer without starting the browser
func NewChromeRasterizer(opts ChromeOptions) *ChromeRasterizer {
	if opts.Scale <= 0 {
		opts.Scale = 2
	}
	return &ChromeRasterizer{opts: opts}
}

func (r *ChromeRasterizer) browser() (context.Context, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil, ErrClosed
	}
	if r.started {
		return r.browserCtx, nil
	}

	allocOpts := append(
		chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("hide-scrollbars", true),
		chromedp.Flag("no-first-run", true),
	)
	execPath := r.opts.ExecPath
	if execPath == "" && r.opts.Resolve != nil {
		path, err := r.opts.Resolve()
		if err != nil {
			return nil, err
		}
		execPath = path
	}
	if execPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(execPath))
	}
	if r.opts.NoSandbox {
		allocOpts = append(allocOpts, chromedp.NoSandbox)
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), allocOpts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return nil, fmt.Errorf("start browser: %w", err)
	}

	r.started = true
	r.allocCancel = allocCancel
	r.browserCtx = browserCtx
	r.browserCancel = browserCancel
	return browserCtx, nil
}

// Rasterize loads html and returns a PNG of the invoice paper region
func (r *ChromeRasterizer) Rasterize(ctx context.Context, html string) ([]byte, error) {
	browserCtx, err := r.browser()
	if err != nil {
		return nil, err
	}

	f, err := os.CreateTemp("", "invoicedesk-*.html")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	name := f.Name()
	defer os.Remove(name)

	if _, err := f.WriteString(html); err != nil {
		f.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("close temp file: %w", err)
	}
	abs, err := filepath.Abs(name)
	if err != nil {
		return nil, fmt.Errorf("resolve temp file: %w", err)
	}

	if r.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.opts.Timeout)
		defer cancel()
	}

	tabCtx, tabCancel := chromedp.NewContext(browserCtx)
	defer tabCancel()

	// the tab must also stop when the caller's context ends
	stop := context.AfterFunc(ctx, tabCancel)
	defer stop()

	var buf []byte
	if err := chromedp.Run(tabCtx,
		chromedp.EmulateViewport(viewportWidth, viewportHeight),
		chromedp.ActionFunc(func(ctx context.Context) error {
			white := &cdp.RGBA{R: 255, G: 255, B: 255, A: 1}
			return emulation.SetDefaultBackgroundColorOverride().WithColor(white).Do(ctx)
		}),
		chromedp.Navigate("file://"+abs),
		chromedp.WaitVisible(render.PaperSelector, chromedp.ByQuery),
		chromedp.ScreenshotScale(render.PaperSelector, r.opts.Scale, &buf, chromedp.ByQuery),
	); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("rasterize: %w", ctxErr)
		}
		return nil, fmt.Errorf("rasterize: %w", err)
	}
	return buf, nil
}

// Close stops the browser. It is safe to call more than once.
func (r *ChromeRasterizer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true
	if r.started {
		r.browserCancel()
		r.allocCancel()
	}
	return nil
}
