package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/andy/invoicedesk/internal/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, render.Compact, cfg.Template())
	assert.Equal(t, 30*time.Second, cfg.Export.Timeout)
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yml := `
export:
  template: extended
  timeout: 5s
browser:
  no_sandbox: true
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, render.Extended, cfg.Template())
	assert.Equal(t, 5*time.Second, cfg.Export.Timeout)
	assert.True(t, cfg.Browser.NoSandbox)
	assert.True(t, cfg.Browser.Download, "untouched keys keep defaults")
	assert.Equal(t, DefaultConfig().Export.OutputDir, cfg.Export.OutputDir)
}

func TestLoad_InvalidTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("export:\n  template: glossy\n"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Export.OutputDir = filepath.Join(dir, "out")
	cfg.Export.Template = "extended"
	cfg.Browser.ChromePath = "/usr/bin/chromium"
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestEnsureDirectories(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.Export.OutputDir = filepath.Join(dir, "a", "b")
	cfg.Log.Path = filepath.Join(dir, "logs", "app.log")

	require.NoError(t, cfg.EnsureDirectories())

	assert.DirExists(t, cfg.Export.OutputDir)
	assert.DirExists(t, filepath.Join(dir, "logs"))
}
