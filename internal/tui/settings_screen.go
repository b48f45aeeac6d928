package tui

import (
	"fmt"
	"strings"

	"github.com/andy/invoicedesk/internal/app"
	"github.com/andy/invoicedesk/internal/config"
	"github.com/andy/invoicedesk/internal/render"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type settingsMode int

const (
	settingsModeView settingsMode = iota
	settingsModeEdit
)

// settings form field indices
const (
	settingsFieldOutputDir = iota
	settingsFieldTemplate
	settingsFieldChromePath
	settingsFieldCount
)

// SettingsModel manages the settings screen
type SettingsModel struct {
	app        *app.App
	mode       settingsMode
	fields     []textinput.Model
	fieldFocus int
	err        error
	statusMsg  string
	save       func(*config.Config) error
}

// NewSettingsModel creates a new settings screen
func NewSettingsModel(a *app.App) tea.Model {
	return &SettingsModel{
		app:  a,
		mode: settingsModeView,
		save: a.SaveConfig,
	}
}

// IsCapturingInput returns true when the edit form is active
func (m *SettingsModel) IsCapturingInput() bool {
	return m.mode == settingsModeEdit
}

func (m *SettingsModel) Init() tea.Cmd {
	return nil
}

func (m *SettingsModel) initForm() {
	m.fields = make([]textinput.Model, settingsFieldCount)
	cfg := m.app.Config

	// Output directory
	m.fields[settingsFieldOutputDir] = textinput.New()
	m.fields[settingsFieldOutputDir].Placeholder = "/path/to/invoices"
	m.fields[settingsFieldOutputDir].CharLimit = 256
	m.fields[settingsFieldOutputDir].Width = 60
	m.fields[settingsFieldOutputDir].SetValue(cfg.Export.OutputDir)

	// Default template
	m.fields[settingsFieldTemplate] = textinput.New()
	m.fields[settingsFieldTemplate].Placeholder = "compact or extended"
	m.fields[settingsFieldTemplate].CharLimit = 20
	m.fields[settingsFieldTemplate].Width = 20
	m.fields[settingsFieldTemplate].SetValue(cfg.Export.Template)

	// Browser
	m.fields[settingsFieldChromePath] = textinput.New()
	m.fields[settingsFieldChromePath].Placeholder = "search PATH"
	m.fields[settingsFieldChromePath].CharLimit = 256
	m.fields[settingsFieldChromePath].Width = 60
	m.fields[settingsFieldChromePath].SetValue(cfg.Browser.ChromePath)

	m.fieldFocus = settingsFieldOutputDir
	m.fields[settingsFieldOutputDir].Focus()
}

// saveSettings writes an edited copy of the config. The live config is only
// touched from Update, once settingsSavedMsg arrives.
func (m *SettingsModel) saveSettings() tea.Cmd {
	outputDir := strings.TrimSpace(m.fields[settingsFieldOutputDir].Value())
	templateName := m.fields[settingsFieldTemplate].Value()
	chromePath := strings.TrimSpace(m.fields[settingsFieldChromePath].Value())
	cfg := *m.app.Config
	save := m.save

	return func() tea.Msg {
		if outputDir == "" {
			return settingsSavedMsg{err: fmt.Errorf("output directory is required")}
		}

		t, err := render.ParseTemplate(templateName)
		if err != nil {
			return settingsSavedMsg{err: err}
		}

		cfg.Export.OutputDir = outputDir
		cfg.Export.Template = t.String()
		cfg.Browser.ChromePath = chromePath

		if err := save(&cfg); err != nil {
			return settingsSavedMsg{err: fmt.Errorf("failed to save config: %w", err)}
		}

		return settingsSavedMsg{cfg: &cfg}
	}
}

func (m *SettingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.mode == settingsModeEdit {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.err = nil
		switch {
		case msg.String() == "enter":
			m.mode = settingsModeEdit
			m.statusMsg = ""
			m.initForm()
			return m, m.fields[m.fieldFocus].Focus()
		}
	}

	return m, nil
}

func (m *SettingsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case settingsSavedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		*m.app.Config = *msg.cfg
		m.mode = settingsModeView
		m.statusMsg = "Settings saved. Browser changes apply after restart."
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			m.mode = settingsModeView
			m.err = nil
			return m, nil

		case "tab", "down":
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus = (m.fieldFocus + 1) % settingsFieldCount
			return m, m.fields[m.fieldFocus].Focus()

		case "shift+tab", "up":
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus = (m.fieldFocus - 1 + settingsFieldCount) % settingsFieldCount
			return m, m.fields[m.fieldFocus].Focus()

		case "enter":
			if m.fieldFocus == settingsFieldCount-1 {
				return m, m.saveSettings()
			}
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus++
			return m, m.fields[m.fieldFocus].Focus()

		case "ctrl+s":
			return m, m.saveSettings()
		}
	}

	// Update the focused text input
	var cmd tea.Cmd
	m.fields[m.fieldFocus], cmd = m.fields[m.fieldFocus].Update(msg)
	return m, cmd
}

func (m *SettingsModel) View() string {
	if m.mode == settingsModeEdit {
		return m.viewForm()
	}
	return m.viewSettings()
}

func (m *SettingsModel) viewSettings() string {
	var s string
	s += titleStyle.Render("Settings") + "\n\n"

	if m.statusMsg != "" {
		s += lipgloss.NewStyle().Foreground(successColor).
			Render("  "+m.statusMsg) + "\n\n"
	}

	cfg := m.app.Config

	labelStyle := lipgloss.NewStyle().Bold(true).Width(22)
	valueStyle := lipgloss.NewStyle().Foreground(primaryColor)

	chrome := cfg.Browser.ChromePath
	if chrome == "" {
		chrome = "(search PATH)"
	}

	s += subtitleStyle.Render("  Export Settings") + "\n\n"
	s += fmt.Sprintf("  %s %s\n", labelStyle.Render("Output Directory:"), valueStyle.Render(cfg.Export.OutputDir))
	s += fmt.Sprintf("  %s %s\n", labelStyle.Render("Template:"), valueStyle.Render(cfg.Export.Template))
	s += fmt.Sprintf("  %s %s\n", labelStyle.Render("Timeout:"), valueStyle.Render(cfg.Export.Timeout.String()))
	s += fmt.Sprintf("  %s %s\n", labelStyle.Render("Browser:"), valueStyle.Render(chrome))
	s += fmt.Sprintf("  %s %s\n", labelStyle.Render("Log File:"), valueStyle.Render(cfg.Log.Path))

	s += "\n" + helpStyle.Render("  enter: edit settings  i: back to invoices")

	return s
}

func (m *SettingsModel) viewForm() string {
	var s string
	s += titleStyle.Render("Edit Settings") + "\n\n"

	labels := []string{"Output Directory:", "Template:", "Browser Path:"}
	for i, label := range labels {
		indicator := "  "
		if i == m.fieldFocus {
			indicator = "> "
		}
		labelStyle := subtitleStyle
		if i == m.fieldFocus {
			labelStyle = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
		}
		s += fmt.Sprintf("%s%s\n  %s\n\n", indicator, labelStyle.Render(label), m.fields[i].View())
	}

	if m.err != nil {
		s += lipgloss.NewStyle().Foreground(errorColor).
			Render(fmt.Sprintf("  Error: %v", m.err)) + "\n\n"
	}

	s += helpStyle.Render("  tab/shift+tab: navigate fields  ctrl+s: save  enter: next/save  esc: cancel")

	return s
}
