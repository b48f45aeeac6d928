package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/andy/invoicedesk/internal/app"
	"github.com/andy/invoicedesk/internal/domain"
	"github.com/andy/invoicedesk/internal/editor"
	"github.com/andy/invoicedesk/internal/export"
	"github.com/andy/invoicedesk/internal/logo"
	"github.com/andy/invoicedesk/internal/render"
	"github.com/andy/invoicedesk/internal/workspace"
	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type invoiceMode int

const (
	invoiceModeForm          invoiceMode = iota
	invoiceModeTyping                    // text input bound to the focused slot
	invoiceModePickLogo                  // file picker open
	invoiceModeConfirmDelete             // y/n confirmation before delete
)

// slot is one editable cell of the form: a header field, or one column of
// an item row
type slot struct {
	field domain.Field
	row   int
	col   domain.ItemField
}

func (s slot) isItem() bool { return s.field == "" }

// InvoiceModel edits and previews the active invoice
type InvoiceModel struct {
	app     *app.App
	ed      *editor.Editor
	exports *exportTracker

	mode     invoiceMode
	template render.Template
	cursor   int
	input    textinput.Model
	picker   filepicker.Model
	preview  viewport.Model
	width    int
	height   int
	err      error
	status   string
}

// NewInvoiceModel creates the screen for one workspace invoice
func NewInvoiceModel(a *app.App, inv domain.SavedInvoice, exports *exportTracker, width, height int) *InvoiceModel {
	input := textinput.New()
	input.CharLimit = 256
	input.Prompt = ""

	m := &InvoiceModel{
		app:      a,
		ed:       editor.New(inv, a.Workspace, editor.WithLogger(a.Logger.WithPrefix("editor"))),
		exports:  exports,
		template: a.Config.Template(),
		input:    input,
		preview:  viewport.New(width, height),
	}
	m.resize(width, height)
	return m
}

// IsCapturingInput returns true while typing, picking a logo or confirming
func (m *InvoiceModel) IsCapturingInput() bool {
	return m.mode != invoiceModeForm
}

// Editor exposes the editor for the invoice on screen
func (m *InvoiceModel) Editor() *editor.Editor {
	return m.ed
}

func (m *InvoiceModel) Init() tea.Cmd {
	return nil
}

func (m *InvoiceModel) resize(width, height int) {
	m.width, m.height = width, height
	m.input.Width = max(width-24, 10)
	m.preview.Width = width
	m.preview.Height = max(height-4, 3)
	m.refreshPreview()
}

func (m *InvoiceModel) refreshPreview() {
	if m.ed.State() != editor.Viewing {
		return
	}
	m.preview.SetContent(render.RenderText(m.ed.Data(), m.ed.Logo(), m.template, m.width))
}

// slots lists every editable cell in form order
func (m *InvoiceModel) slots() []slot {
	fields := domain.Fields()
	cols := domain.ItemFields()
	rows := m.ed.ItemCount()

	out := make([]slot, 0, len(fields)+rows*len(cols))
	for _, f := range fields {
		out = append(out, slot{field: f.Field})
	}
	for r := 0; r < rows; r++ {
		for _, c := range cols {
			out = append(out, slot{row: r, col: c.Field})
		}
	}
	return out
}

func (m *InvoiceModel) current() slot {
	s := m.slots()
	if m.cursor >= len(s) {
		m.cursor = len(s) - 1
	}
	return s[m.cursor]
}

func (m *InvoiceModel) slotValue(s slot) string {
	data := m.ed.Data()
	if s.isItem() {
		if s.row >= len(data.Items) {
			return ""
		}
		v, _ := data.Items[s.row].Get(s.col)
		return v
	}
	v, _ := data.Get(s.field)
	return v
}

func (m *InvoiceModel) setSlotValue(s slot, value string) error {
	if s.isItem() {
		return m.ed.UpdateItem(s.row, s.col, value)
	}
	return m.ed.UpdateField(s.field, value)
}

func (m *InvoiceModel) moveCursor(delta int) {
	n := len(m.slots())
	m.cursor = (m.cursor + delta + n) % n
}

func (m *InvoiceModel) startTyping() tea.Cmd {
	m.mode = invoiceModeTyping
	m.input.SetValue(m.slotValue(m.current()))
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m *InvoiceModel) stopTyping() {
	m.input.Blur()
	m.mode = invoiceModeForm
}

func (m *InvoiceModel) openPicker() tea.Cmd {
	fp := filepicker.New()
	fp.AllowedTypes = logo.Extensions
	if wd, err := os.Getwd(); err == nil {
		fp.CurrentDirectory = wd
	}
	m.picker = fp
	m.mode = invoiceModePickLogo
	return m.picker.Init()
}

func (m *InvoiceModel) loadLogo(path string) tea.Cmd {
	ed := m.ed
	loader := m.app.Logos
	return func() tea.Msg {
		err := ed.LoadLogo(context.Background(), loader, path)
		return logoLoadedMsg{id: ed.ID(), path: path, err: err}
	}
}

func (m *InvoiceModel) exportInvoice() tea.Cmd {
	if m.exports.busy(m.ed.ID()) || m.ed.Exporting() {
		m.status = "Export already in progress"
		return nil
	}
	m.exports.start(m.ed.ID())
	m.status = ""
	m.err = nil

	ed := m.ed
	pipeline := m.app.Exporter.WithTemplate(m.template)
	dir := m.app.OutputDir()
	return func() tea.Msg {
		doc, err := ed.Export(context.Background(), pipeline)
		if err != nil {
			return exportDoneMsg{id: ed.ID(), err: err}
		}
		path, err := export.WriteFile(dir, doc)
		return exportDoneMsg{id: ed.ID(), path: path, err: err}
	}
}

func (m *InvoiceModel) deleteInvoice() tea.Cmd {
	err := m.ed.Delete()
	if err != nil && !errors.Is(err, workspace.ErrInvoiceNotFound) {
		m.err = err
		return nil
	}
	return func() tea.Msg { return WorkspaceChangedMsg{} }
}

func (m *InvoiceModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		if m.mode == invoiceModePickLogo {
			var cmd tea.Cmd
			m.picker, cmd = m.picker.Update(msg)
			return m, cmd
		}
		return m, nil

	case logoLoadedMsg:
		if msg.id != m.ed.ID() {
			return m, nil
		}
		if msg.err != nil {
			m.err = fmt.Errorf("logo: %w", msg.err)
			return m, nil
		}
		m.status = "Logo loaded from " + msg.path
		m.refreshPreview()
		return m, nil

	case exportDoneMsg:
		// the root model reports the result; only refresh the label here
		return m, nil
	}

	switch m.mode {
	case invoiceModeTyping:
		return m.updateTyping(msg)
	case invoiceModePickLogo:
		return m.updatePicker(msg)
	case invoiceModeConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.ed.State() == editor.Viewing {
			var cmd tea.Cmd
			m.preview, cmd = m.preview.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	m.err = nil
	if key.Matches(keyMsg, DefaultKeyMap.Delete) {
		m.mode = invoiceModeConfirmDelete
		return m, nil
	}

	if m.ed.State() == editor.Viewing {
		return m.updateViewing(keyMsg)
	}
	return m.updateForm(keyMsg)
}

func (m *InvoiceModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, DefaultKeyMap.Save):
		if err := m.ed.Save(); err != nil {
			m.err = err
			return m, nil
		}
		m.status = "Saved"
		m.preview.GotoTop()
		m.refreshPreview()
		return m, nil

	case key.Matches(msg, DefaultKeyMap.Type):
		return m, m.startTyping()

	case key.Matches(msg, DefaultKeyMap.Down), key.Matches(msg, DefaultKeyMap.NextSlot):
		m.moveCursor(1)

	case key.Matches(msg, DefaultKeyMap.Up), key.Matches(msg, DefaultKeyMap.PrevSlot):
		m.moveCursor(-1)

	case key.Matches(msg, DefaultKeyMap.AddItem):
		m.ed.AddItem()
		// jump to the first cell of the new row
		m.cursor = len(m.slots()) - len(domain.ItemFields())

	case key.Matches(msg, DefaultKeyMap.RemoveItem):
		if s := m.current(); s.isItem() {
			m.ed.RemoveItem(s.row)
			m.current()
		}

	case key.Matches(msg, DefaultKeyMap.PickLogo):
		return m, m.openPicker()

	case key.Matches(msg, DefaultKeyMap.ClearLogo):
		m.ed.ClearLogo()
		m.status = "Logo removed"
	}
	return m, nil
}

func (m *InvoiceModel) updateViewing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, DefaultKeyMap.Edit):
		if err := m.ed.Edit(); err != nil {
			m.err = err
		}
		m.status = ""
		return m, nil

	case key.Matches(msg, DefaultKeyMap.Download):
		return m, m.exportInvoice()

	case key.Matches(msg, DefaultKeyMap.Template):
		m.template = m.template.Next()
		m.refreshPreview()
		return m, nil
	}

	var cmd tea.Cmd
	m.preview, cmd = m.preview.Update(msg)
	return m, cmd
}

func (m *InvoiceModel) updateTyping(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc", "enter":
			m.stopTyping()
			return m, nil
		case "tab", "shift+tab":
			m.stopTyping()
			if keyMsg.String() == "tab" {
				m.moveCursor(1)
			} else {
				m.moveCursor(-1)
			}
			return m, m.startTyping()
		case "ctrl+s":
			m.stopTyping()
			return m.updateForm(keyMsg)
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if err := m.setSlotValue(m.current(), m.input.Value()); err != nil {
		m.err = err
	}
	return m, cmd
}

func (m *InvoiceModel) updatePicker(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && key.Matches(keyMsg, DefaultKeyMap.Back) {
		m.mode = invoiceModeForm
		return m, nil
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	if ok, path := m.picker.DidSelectFile(msg); ok {
		m.mode = invoiceModeForm
		m.status = "Loading logo..."
		return m, m.loadLogo(path)
	}
	if ok, path := m.picker.DidSelectDisabledFile(msg); ok {
		m.err = fmt.Errorf("%s is not an image", path)
		return m, cmd
	}
	return m, cmd
}

func (m *InvoiceModel) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	m.mode = invoiceModeForm
	if keyMsg.String() == "y" {
		return m, m.deleteInvoice()
	}
	// Any other key cancels
	return m, nil
}

func (m *InvoiceModel) View() string {
	switch m.mode {
	case invoiceModePickLogo:
		return m.viewPicker()
	case invoiceModeConfirmDelete:
		return m.viewConfirmDelete()
	}
	if m.ed.State() == editor.Viewing {
		return m.viewPreview()
	}
	return m.viewForm()
}

func (m *InvoiceModel) viewStatus() string {
	var s string
	if m.err != nil {
		s += lipgloss.NewStyle().Foreground(errorColor).
			Render(fmt.Sprintf("  Error: %v", m.err)) + "\n"
	} else if m.status != "" {
		s += lipgloss.NewStyle().Foreground(successColor).
			Render("  "+m.status) + "\n"
	}
	return s
}

func (m *InvoiceModel) viewForm() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Edit Invoice") + "  ")
	b.WriteString(subtitleStyle.Render("Logo: "+describeLogo(m.ed.Logo())) + "\n\n")

	cur := m.current()
	data := m.ed.Data()

	// header fields in three columns
	colWidth := max((m.width-4)/3, 24)
	var cells []string
	for _, f := range domain.Fields() {
		v, _ := data.Get(f.Field)
		label := labelStyle.Render(f.Label + ":")
		if !cur.isItem() && cur.field == f.Field {
			label = focusedLabelStyle.Render("> " + f.Label + ":")
		}
		cell := label + " " + truncateStr(v, colWidth-lipgloss.Width(label)-2)
		cells = append(cells, lipgloss.NewStyle().Width(colWidth).Render(cell))
	}
	for i := 0; i < len(cells); i += 3 {
		end := min(i+3, len(cells))
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells[i:end]...) + "\n")
	}
	b.WriteString("\n")

	selected := -1
	if cur.isItem() {
		selected = cur.row
	}
	b.WriteString(render.ItemsTable(data.Items, m.width, selected) + "\n\n")

	// the focused cell in full, editable with enter
	label := m.slotLabel(cur)
	value := m.slotValue(cur)
	if m.mode == invoiceModeTyping {
		value = m.input.View()
	}
	b.WriteString(focusedLabelStyle.Render(label+":") + " " + value + "\n\n")

	b.WriteString(m.viewStatus())
	if m.mode == invoiceModeTyping {
		b.WriteString(helpStyle.Render("  type to edit  tab/shift+tab: next/prev field  enter/esc: done  ctrl+s: save & view"))
	} else {
		b.WriteString(helpStyle.Render("  ↑/↓: move  enter: edit field  a: add row  x: remove row  l: logo  L: remove logo  ctrl+s: save & view  D: delete"))
	}
	return b.String()
}

func (m *InvoiceModel) slotLabel(s slot) string {
	if !s.isItem() {
		for _, f := range domain.Fields() {
			if f.Field == s.field {
				return f.Label
			}
		}
		return string(s.field)
	}
	for _, c := range domain.ItemFields() {
		if c.Field == s.col {
			return fmt.Sprintf("Row %d %s", s.row+1, c.Label)
		}
	}
	return fmt.Sprintf("Row %d", s.row+1)
}

func (m *InvoiceModel) viewPreview() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Invoice") + "  ")
	b.WriteString(subtitleStyle.Render("template: "+m.template.String()) + "\n\n")
	b.WriteString(m.preview.View() + "\n\n")
	b.WriteString(m.viewStatus())

	download := "d: download PDF"
	if m.exports.busy(m.ed.ID()) {
		download = busyStyle.Render("Generating...")
	}
	b.WriteString(helpStyle.Render("  e: edit  ") + download +
		helpStyle.Render("  t: toggle template  ↑/↓: scroll  D: delete"))
	return b.String()
}

func (m *InvoiceModel) viewPicker() string {
	var s string
	s += titleStyle.Render("Choose Logo") + "\n"
	s += subtitleStyle.Render("  "+m.picker.CurrentDirectory) + "\n\n"
	s += m.picker.View() + "\n"
	s += m.viewStatus()
	s += helpStyle.Render("  enter: select  esc: cancel")
	return s
}

func (m *InvoiceModel) viewConfirmDelete() string {
	var s string
	s += titleStyle.Render("Delete Invoice") + "\n\n"
	s += fmt.Sprintf("  %s\n\n", m.ed.Data().Title())
	s += lipgloss.NewStyle().Foreground(warningColor).Render("  Delete this invoice? (y/n)") + "\n"
	return s
}
