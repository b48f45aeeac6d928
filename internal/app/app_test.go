package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/andy/invoicedesk/internal/config"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Export.OutputDir = filepath.Join(dir, "out")
	cfg.Log.Path = filepath.Join(dir, "logs", "invoicedesk.log")
	return cfg
}

func TestNewWithConfig_WiresComponents(t *testing.T) {
	cfg := testConfig(t)

	a, err := NewWithConfig(cfg, false)
	require.NoError(t, err)
	defer a.Close()

	assert.NotNil(t, a.Workspace)
	assert.Equal(t, config.DefaultConfigPath(), a.ConfigPath())
	assert.NotNil(t, a.Exporter)
	assert.Equal(t, cfg.Template(), a.Exporter.Template())
	assert.Equal(t, cfg.Export.OutputDir, a.OutputDir())
	assert.DirExists(t, cfg.Export.OutputDir)
}

func TestNewWithConfig_InfoLevelLogsNothing(t *testing.T) {
	cfg := testConfig(t)

	a, err := NewWithConfig(cfg, false)
	require.NoError(t, err)
	a.Logger.Info("hidden")
	require.NoError(t, a.Close())

	assert.NoFileExists(t, cfg.Log.Path)
}

func TestNewWithConfig_DebugWritesLogFile(t *testing.T) {
	cfg := testConfig(t)

	a, err := NewWithConfig(cfg, true)
	require.NoError(t, err)
	assert.Equal(t, log.DebugLevel, a.Logger.GetLevel())
	a.Logger.Debug("workspace ready", "invoices", a.Workspace.Len())
	require.NoError(t, a.Close())

	raw, err := os.ReadFile(cfg.Log.Path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "workspace ready")
}

func TestNew_InvalidConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("export:\n  scale: 9\n"), 0644))

	_, err := New(Options{ConfigPath: path})
	assert.Error(t, err)
}

func TestClose_Idempotent(t *testing.T) {
	a, err := NewWithConfig(testConfig(t), false)
	require.NoError(t, err)

	assert.NoError(t, a.Close())
	assert.NoError(t, a.Rasterizer.Close())
}

func TestSaveConfig_WritesToLoadedPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	cfg := testConfig(t)
	require.NoError(t, cfg.Save(path))

	a, err := New(Options{ConfigPath: path})
	require.NoError(t, err)
	defer a.Close()
	require.Equal(t, path, a.ConfigPath())

	a.Config.Export.Template = "extended"
	require.NoError(t, a.SaveConfig(a.Config))

	reloaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "extended", reloaded.Export.Template)
}
