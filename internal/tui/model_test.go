package tui

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/andy/invoicedesk/internal/app"
	"github.com/andy/invoicedesk/internal/config"
	"github.com/andy/invoicedesk/internal/editor"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) *app.App {
	t.Helper()
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Export.OutputDir = filepath.Join(dir, "out")
	cfg.Log.Path = ""

	a, err := app.NewWithConfig(cfg, false)
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })
	return a
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m Model, msgs ...tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(Model)
	}
	return m, cmd
}

func newTestModel(t *testing.T) (Model, *app.App) {
	a := newTestApp(t)
	m, _ := send(t, New(a), tea.WindowSizeMsg{Width: 140, Height: 60})
	return m, a
}

func TestEmptyWorkspace(t *testing.T) {
	m, _ := newTestModel(t)

	assert.Nil(t, m.invoice)
	assert.Contains(t, m.View(), "No invoices yet")
}

func TestNewInvoiceBecomesActive(t *testing.T) {
	m, a := newTestModel(t)

	m, _ = send(t, m, runes("n"), runes("n"))

	require.Equal(t, 2, a.Workspace.Len())
	list := a.Workspace.List()
	assert.Equal(t, list[1].ID, a.Workspace.ActiveID())
	require.NotNil(t, m.invoice)
	assert.Equal(t, list[1].ID, m.invoice.Editor().ID())
	assert.Equal(t, editor.Editing, m.invoice.Editor().State())
}

func TestSwitchTabs(t *testing.T) {
	m, a := newTestModel(t)
	m, _ = send(t, m, runes("n"), runes("n"), runes("n"))
	list := a.Workspace.List()

	m, _ = send(t, m, runes("["))
	assert.Equal(t, list[1].ID, m.invoice.Editor().ID())

	m, _ = send(t, m, runes("]"), runes("]"))
	assert.Equal(t, list[0].ID, m.invoice.Editor().ID(), "wraps around")
}

func TestEditSaveUpdatesTab(t *testing.T) {
	m, a := newTestModel(t)
	m, _ = send(t, m, runes("n"))

	// first slot is the company name
	m, _ = send(t, m,
		tea.KeyMsg{Type: tea.KeyEnter},
		runes("Acme"),
		tea.KeyMsg{Type: tea.KeyCtrlS},
	)

	active, ok := a.Workspace.Active()
	require.True(t, ok)
	assert.Equal(t, "Acme", active.Data.CompanyName)
	assert.Equal(t, editor.Viewing, m.invoice.Editor().State())
	assert.Equal(t, "Draft – Acme", active.Data.Title())
	assert.Contains(t, m.viewTabs(), "Acme")
}

func TestUnsavedEditsDroppedOnSwitch(t *testing.T) {
	m, a := newTestModel(t)
	m, _ = send(t, m, runes("n"), runes("n"))

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter}, runes("Unsaved"), tea.KeyMsg{Type: tea.KeyEsc})
	m, _ = send(t, m, runes("["), runes("]"))

	assert.Empty(t, m.invoice.Editor().Data().CompanyName)
	for _, inv := range a.Workspace.List() {
		assert.Empty(t, inv.Data.CompanyName)
	}
}

func TestAddAndRemoveRows(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = send(t, m, runes("n"), runes("a"), runes("a"))
	assert.Equal(t, 3, m.invoice.Editor().ItemCount())

	m, _ = send(t, m, runes("x"), runes("x"), runes("x"))
	assert.Equal(t, 1, m.invoice.Editor().ItemCount(), "last row is kept")
}

func TestDeleteFallsBackToFirst(t *testing.T) {
	m, a := newTestModel(t)
	m, _ = send(t, m, runes("n"), runes("n"), runes("n"))
	first := a.Workspace.List()[0].ID

	m, cmd := send(t, m, runes("D"), runes("y"))
	require.NotNil(t, cmd)
	m, _ = send(t, m, cmd())

	assert.Equal(t, 2, a.Workspace.Len())
	assert.Equal(t, first, m.invoice.Editor().ID())
}

func TestDeleteCancelled(t *testing.T) {
	m, a := newTestModel(t)
	m, _ = send(t, m, runes("n"))

	m, cmd := send(t, m, runes("D"), runes("n"))
	assert.Nil(t, cmd)
	assert.Equal(t, 1, a.Workspace.Len())
	assert.NotNil(t, m.invoice)
}

func TestDeleteLastShowsEmptyState(t *testing.T) {
	m, a := newTestModel(t)
	m, _ = send(t, m, runes("n"))

	m, cmd := send(t, m, runes("D"), runes("y"))
	m, _ = send(t, m, cmd())

	assert.Equal(t, 0, a.Workspace.Len())
	assert.Nil(t, m.invoice)
	assert.Contains(t, m.View(), "No invoices yet")
}

func TestQuitBlockedDuringExport(t *testing.T) {
	m, _ := newTestModel(t)
	m.exports.start("busy")

	m, cmd := send(t, m, runes("q"))
	assert.Nil(t, cmd)
	assert.Contains(t, m.quitMsg, "Export in progress")

	m, _ = send(t, m, exportDoneMsg{id: "busy", err: errors.New("no browser")})
	assert.ErrorContains(t, m.err, "no browser")

	_, cmd = send(t, m, runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestDownloadWhileBusyIsRejected(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = send(t, m, runes("n"), tea.KeyMsg{Type: tea.KeyCtrlS})
	m.exports.start(m.invoice.Editor().ID())

	_, cmd := send(t, m, runes("d"))
	assert.Nil(t, cmd)
	assert.Equal(t, "Export already in progress", m.invoice.status)
}

func TestTypingSuppressesGlobalKeys(t *testing.T) {
	m, a := newTestModel(t)
	m, _ = send(t, m, runes("n"), tea.KeyMsg{Type: tea.KeyEnter})

	m, _ = send(t, m, runes("n"), runes("q"))

	assert.Equal(t, 1, a.Workspace.Len())
	assert.Equal(t, "nq", m.invoice.Editor().Data().CompanyName)
}

func TestSettingsSave(t *testing.T) {
	a := newTestApp(t)
	sm := NewSettingsModel(a).(*SettingsModel)
	var written *config.Config
	sm.save = func(cfg *config.Config) error { written = cfg; return nil }

	sm.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, sm.IsCapturingInput())
	sm.fields[settingsFieldTemplate].SetValue("Extended")

	msg := sm.saveSettings()()

	// the live config only changes once the result reaches Update
	require.NotNil(t, written)
	assert.Equal(t, "extended", written.Export.Template)
	assert.Equal(t, "compact", a.Config.Export.Template)

	sm.Update(msg)
	assert.Equal(t, "extended", a.Config.Export.Template)
	assert.False(t, sm.IsCapturingInput())
}

func TestSettingsSaveFailureKeepsConfig(t *testing.T) {
	a := newTestApp(t)
	sm := NewSettingsModel(a).(*SettingsModel)
	sm.save = func(*config.Config) error { return errors.New("read-only") }

	sm.Update(tea.KeyMsg{Type: tea.KeyEnter})
	sm.fields[settingsFieldTemplate].SetValue("extended")
	sm.Update(sm.saveSettings()())

	assert.ErrorContains(t, sm.err, "read-only")
	assert.True(t, sm.IsCapturingInput())
	assert.Equal(t, "compact", a.Config.Export.Template)
}

func TestSettingsRejectsUnknownTemplate(t *testing.T) {
	a := newTestApp(t)
	sm := NewSettingsModel(a).(*SettingsModel)
	sm.save = func(*config.Config) error { return nil }

	sm.Update(tea.KeyMsg{Type: tea.KeyEnter})
	sm.fields[settingsFieldTemplate].SetValue("glossy")
	sm.Update(sm.saveSettings()())

	assert.Error(t, sm.err)
	assert.True(t, sm.IsCapturingInput())
	assert.Equal(t, "compact", a.Config.Export.Template)
}
