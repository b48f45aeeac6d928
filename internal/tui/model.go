package tui

import (
	"fmt"
	"strings"

	"github.com/andy/invoicedesk/internal/app"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Screen represents the current active screen
type Screen int

const (
	ScreenInvoices Screen = iota
	ScreenSettings
)

// String returns the screen name
func (s Screen) String() string {
	switch s {
	case ScreenInvoices:
		return "Invoices"
	case ScreenSettings:
		return "Settings"
	default:
		return "Unknown"
	}
}

// Model is the root Bubble Tea model
type Model struct {
	app           *app.App
	currentScreen Screen
	width         int
	height        int

	// Screen for the active invoice, rebuilt whenever the active invoice
	// changes; unsaved edits are dropped with it
	invoice  *InvoiceModel
	settings tea.Model

	exports *exportTracker

	// Status/error state
	err       error
	statusMsg string
	quitMsg   string // shown when quit is blocked
}

// New creates a new root model
func New(a *app.App) Model {
	return Model{
		app:           a,
		currentScreen: ScreenInvoices,
		exports:       newExportTracker(),
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

// contentSize is the space left for a screen inside the frame
func (m *Model) contentSize() (int, int) {
	w := m.width - 6   // border (2) + padding (4)
	h := m.height - 14 // border, padding, header, tabs, dividers, footer
	return max(w, 20), max(h, 5)
}

// syncInvoice makes the invoice screen follow the workspace's active invoice
func (m *Model) syncInvoice() {
	active, ok := m.app.Workspace.Active()
	if !ok {
		m.invoice = nil
		return
	}
	if m.invoice != nil && m.invoice.Editor().ID() == active.ID {
		return
	}
	w, h := m.contentSize()
	m.invoice = NewInvoiceModel(m.app, active, m.exports, w, h)
}

func (m *Model) addInvoice() {
	m.app.Workspace.Add()
	m.currentScreen = ScreenInvoices
	m.syncInvoice()
}

// cycleInvoice selects the invoice delta tabs away from the active one
func (m *Model) cycleInvoice(delta int) {
	list := m.app.Workspace.List()
	if len(list) < 2 {
		return
	}
	current := 0
	activeID := m.app.Workspace.ActiveID()
	for i, inv := range list {
		if inv.ID == activeID {
			current = i
			break
		}
	}
	next := list[(current+delta+len(list))%len(list)]
	if err := m.app.Workspace.Select(next.ID); err != nil {
		m.err = err
		return
	}
	m.syncInvoice()
}

// InputCapturer is implemented by screens that capture keyboard input (e.g. text forms).
// When active, global keys (n, [, ], q, ...) are suppressed.
type InputCapturer interface {
	IsCapturingInput() bool
}

// activeScreenCapturingInput returns true if the current screen is capturing text input
func (m *Model) activeScreenCapturingInput() bool {
	var screen tea.Model
	switch m.currentScreen {
	case ScreenInvoices:
		if m.invoice != nil {
			screen = m.invoice
		}
	case ScreenSettings:
		screen = m.settings
	}
	if ic, ok := screen.(InputCapturer); ok {
		return ic.IsCapturingInput()
	}
	return false
}

// Update implements tea.Model - routes keys to screens
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.invoice != nil {
			w, h := m.contentSize()
			m.invoice.Update(tea.WindowSizeMsg{Width: w, Height: h})
		}
		return m, nil

	case tea.KeyMsg:
		// Clear quit warning on any keypress
		m.quitMsg = ""

		if msg.String() == "ctrl+c" {
			return m.quit()
		}

		// Skip global keys when a screen is capturing text input
		if !m.activeScreenCapturingInput() {
			switch {
			case key.Matches(msg, DefaultKeyMap.Quit):
				return m.quit()

			case key.Matches(msg, DefaultKeyMap.New):
				m.err = nil
				m.statusMsg = ""
				m.addInvoice()
				return m, nil

			case key.Matches(msg, DefaultKeyMap.NextTab):
				m.cycleInvoice(1)
				return m, nil

			case key.Matches(msg, DefaultKeyMap.PrevTab):
				m.cycleInvoice(-1)
				return m, nil

			case key.Matches(msg, DefaultKeyMap.Settings):
				m.currentScreen = ScreenSettings
				if m.settings == nil {
					m.settings = NewSettingsModel(m.app)
					return m, m.settings.Init()
				}
				return m, nil

			case key.Matches(msg, DefaultKeyMap.Invoices):
				m.currentScreen = ScreenInvoices
				return m, nil
			}
		}

	case WorkspaceChangedMsg:
		m.syncInvoice()
		return m, nil

	case exportDoneMsg:
		m.exports.done(msg.id)
		if msg.err != nil {
			m.err = fmt.Errorf("export failed: %w", msg.err)
			m.statusMsg = ""
		} else {
			m.err = nil
			m.statusMsg = "Saved " + msg.path
		}
		return m, nil
	}

	// Route message to current screen
	var cmd tea.Cmd
	switch m.currentScreen {
	case ScreenInvoices:
		if m.invoice != nil {
			_, cmd = m.invoice.Update(msg)
		}
	case ScreenSettings:
		if m.settings != nil {
			m.settings, cmd = m.settings.Update(msg)
		}
	}

	return m, cmd
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	if m.exports.any() {
		m.quitMsg = "Export in progress. Wait for it to finish before quitting."
		return m, nil
	}
	return m, tea.Quit
}

// viewTabs renders the invoice tab strip in insertion order
func (m Model) viewTabs() string {
	list := m.app.Workspace.List()
	if len(list) == 0 {
		return ""
	}
	activeID := m.app.Workspace.ActiveID()
	tabs := make([]string, 0, len(list))
	for _, inv := range list {
		title := truncateStr(inv.Data.Title(), 28)
		if inv.ID == activeID {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, tabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewEmpty() string {
	var s string
	s += titleStyle.Render("Invoices") + "\n\n"
	s += "  No invoices yet. Create one to get started.\n\n"
	s += helpStyle.Render("  n: create invoice")
	return s
}

// View implements tea.Model - renders header + tabs + current screen + footer
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	// Header
	header := headerStyle.Render(fmt.Sprintf("invoicedesk - %s", m.currentScreen.String()))

	// Footer with workspace keys
	footer := footerStyle.Render("[N]ew invoice  [ ] switch invoice  [I]nvoices  [,] Settings  [Q]uit")

	// Current screen content
	var content string
	switch m.currentScreen {
	case ScreenInvoices:
		if m.invoice != nil {
			content = m.viewTabs() + "\n\n" + m.invoice.View()
		} else {
			content = m.viewEmpty()
		}
	case ScreenSettings:
		if m.settings != nil {
			content = m.settings.View()
		} else {
			content = "Loading..."
		}
	}

	// Error/warning display
	errorDisplay := ""
	switch {
	case m.quitMsg != "":
		errorDisplay = lipgloss.NewStyle().
			Foreground(warningColor).
			Render(fmt.Sprintf("\n%s", m.quitMsg))
	case m.err != nil:
		errorDisplay = lipgloss.NewStyle().
			Foreground(errorColor).
			Render(fmt.Sprintf("\nError: %s", m.err.Error()))
	case m.statusMsg != "":
		errorDisplay = lipgloss.NewStyle().
			Foreground(successColor).
			Render(fmt.Sprintf("\n%s", m.statusMsg))
	}

	// Divider line between header and content
	innerWidth := m.width - 6 // account for border (2) + padding (4)
	if innerWidth < 20 {
		innerWidth = 20
	}
	dividerWidth := innerWidth - 12
	if dividerWidth < 10 {
		dividerWidth = 10
	}
	divider := lipgloss.NewStyle().Foreground(borderColor).Render(
		strings.Repeat("─", dividerWidth),
	)

	body := fmt.Sprintf("%s\n%s\n\n%s%s\n\n%s\n%s", header, divider, content, errorDisplay, divider, footer)

	// Wrap in border, sized to terminal
	frame := appBorderStyle.
		Width(innerWidth).
		Height(m.height - 4) // leave room for border top/bottom
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, frame.Render(body))
}

// Run starts the TUI
func Run(a *app.App) error {
	p := tea.NewProgram(New(a), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
