package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/andy/invoicedesk/internal/render"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// Export settings
	Export ExportConfig `yaml:"export"`

	// Headless browser used to rasterize invoices
	Browser BrowserConfig `yaml:"browser"`

	// Log settings
	Log LogConfig `yaml:"log"`
}

type ExportConfig struct {
	OutputDir string        `yaml:"output_dir"` // Directory for generated PDFs
	Template  string        `yaml:"template"`   // "compact" or "extended"
	Scale     float64       `yaml:"scale"`      // Device scale used when rasterizing
	Timeout   time.Duration `yaml:"timeout"`    // Per-export browser timeout
}

type BrowserConfig struct {
	ChromePath string `yaml:"chrome_path"` // Empty means search PATH
	NoSandbox  bool   `yaml:"no_sandbox"`  // Needed when running as root
	Download   bool   `yaml:"download"`    // Fetch Chromium when none is installed
}

type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	Path  string `yaml:"path"`  // Log file; the TUI owns the terminal
}

func configDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home dir unavailable
		return filepath.Join(".", ".config", "invoicedesk")
	}
	return filepath.Join(homeDir, ".config", "invoicedesk")
}

// DefaultConfigPath returns ~/.config/invoicedesk/config.yaml
func DefaultConfigPath() string {
	return filepath.Join(configDir(), "config.yaml")
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	dir := configDir()

	return &Config{
		Export: ExportConfig{
			OutputDir: filepath.Join(dir, "invoices"),
			Template:  render.Compact.String(),
			Scale:     2,
			Timeout:   30 * time.Second,
		},
		Browser: BrowserConfig{
			Download: true,
		},
		Log: LogConfig{
			Level: "info",
			Path:  filepath.Join(dir, "invoicedesk.log"),
		},
	}
}

// Load loads config from the given path, or returns defaults if file doesn't exist
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// LoadDefault loads from the default config path
func LoadDefault() (*Config, error) {
	return Load(DefaultConfigPath())
}

// Validate checks values that YAML alone cannot
func (c *Config) Validate() error {
	if _, err := render.ParseTemplate(c.Export.Template); err != nil {
		return err
	}
	if c.Export.Scale < 0 || c.Export.Scale > 4 {
		return fmt.Errorf("export scale must be between 0 and 4, got %v", c.Export.Scale)
	}
	if c.Export.OutputDir == "" {
		return fmt.Errorf("export output_dir is required")
	}
	return nil
}

// Template returns the configured layout
func (c *Config) Template() render.Template {
	t, _ := render.ParseTemplate(c.Export.Template)
	return t
}

// Save writes the config to the given path
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// EnsureDirectories creates the output and log directories
func (c *Config) EnsureDirectories() error {
	if err := os.MkdirAll(c.Export.OutputDir, 0755); err != nil {
		return err
	}
	if c.Log.Path != "" {
		if err := os.MkdirAll(filepath.Dir(c.Log.Path), 0755); err != nil {
			return err
		}
	}
	return nil
}
