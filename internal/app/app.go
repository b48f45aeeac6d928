package app

import (
	"fmt"
	"io"
	"os"

	"github.com/andy/invoicedesk/internal/config"
	"github.com/andy/invoicedesk/internal/export"
	"github.com/andy/invoicedesk/internal/logo"
	"github.com/andy/invoicedesk/internal/render"
	"github.com/andy/invoicedesk/internal/workspace"
	"github.com/charmbracelet/log"
)

// App is the dependency injection container for all application components
type App struct {
	Config *config.Config
	Logger *log.Logger

	Workspace  *workspace.Workspace
	Rasterizer *export.ChromeRasterizer
	Exporter   *export.Pipeline
	Logos      logo.Loader

	configPath string
	logFile    io.Closer
}

// Options tweak how the app is built
type Options struct {
	ConfigPath string // empty means the default path
	Debug      bool   // force debug logging
}

// New creates a new App instance, initializing all dependencies
// It handles:
// 1. Loading config
// 2. Opening the log file
// 3. Creating the workspace
// 4. Wiring the export pipeline (the browser starts on first export)
func New(opts Options) (*App, error) {
	path := opts.ConfigPath
	if path == "" {
		path = config.DefaultConfigPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	a, err := NewWithConfig(cfg, opts.Debug)
	if err != nil {
		return nil, err
	}
	a.configPath = path
	return a, nil
}

// NewWithConfig creates an App with a provided config (useful for testing).
// SaveConfig writes to the default path.
func NewWithConfig(cfg *config.Config, debug bool) (*App, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to create directories: %w", err)
	}

	logger, closer, err := newLogger(cfg.Log, debug)
	if err != nil {
		return nil, err
	}

	renderer, err := render.NewRenderer()
	if err != nil {
		closer.Close()
		return nil, err
	}

	rasterizer := export.NewChromeRasterizer(export.ChromeOptions{
		NoSandbox: cfg.Browser.NoSandbox,
		Scale:     cfg.Export.Scale,
		Timeout:   cfg.Export.Timeout,
		Resolve: func() (string, error) {
			path, err := export.ResolveBrowser(cfg.Browser.ChromePath, cfg.Browser.Download)
			if err != nil {
				return "", err
			}
			logger.Info("using browser", "path", path)
			return path, nil
		},
	})

	pipeline := export.NewPipeline(
		renderer,
		rasterizer,
		export.PDFEncoder{Creator: "invoicedesk"},
		cfg.Template(),
		logger.WithPrefix("export"),
	)

	return &App{
		Config:     cfg,
		Logger:     logger,
		Workspace:  workspace.New(workspace.WithLogger(logger.WithPrefix("workspace"))),
		Rasterizer: rasterizer,
		Exporter:   pipeline,
		Logos:      logo.Loader{Logger: logger.WithPrefix("logo")},
		configPath: config.DefaultConfigPath(),
		logFile:    closer,
	}, nil
}

// Close cleanly shuts down the application
func (a *App) Close() error {
	if a.Rasterizer != nil {
		a.Rasterizer.Close()
	}
	if a.logFile != nil {
		return a.logFile.Close()
	}
	return nil
}

// SaveConfig writes cfg to the file the app was loaded from
func (a *App) SaveConfig(cfg *config.Config) error {
	return cfg.Save(a.configPath)
}

// ConfigPath returns the file SaveConfig writes to
func (a *App) ConfigPath() string {
	return a.configPath
}

// OutputDir returns where exported documents are written
func (a *App) OutputDir() string {
	return a.Config.Export.OutputDir
}

func newLogger(cfg config.LogConfig, debug bool) (*log.Logger, io.Closer, error) {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		level = log.InfoLevel
	}
	if debug {
		level = log.DebugLevel
	}

	// The TUI owns the terminal, so logs only go to the file in debug mode
	if cfg.Path == "" || level > log.DebugLevel {
		return log.New(io.Discard), nopCloser{}, nil
	}

	f, err := os.OpenFile(cfg.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	logger := log.NewWithOptions(f, log.Options{
		Level:           level,
		ReportTimestamp: true,
		Prefix:          "invoicedesk",
	})
	return logger, f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
