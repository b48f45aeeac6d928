package tui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Quit key.Binding
	Back key.Binding

	// Workspace
	New      key.Binding
	NextTab  key.Binding
	PrevTab  key.Binding
	Settings key.Binding
	Invoices key.Binding

	// Editing
	Type       key.Binding
	Save       key.Binding
	AddItem    key.Binding
	RemoveItem key.Binding
	PickLogo   key.Binding
	ClearLogo  key.Binding
	Delete     key.Binding

	// Viewing
	Edit     key.Binding
	Download key.Binding
	Template key.Binding

	// Movement
	Up       key.Binding
	Down     key.Binding
	NextSlot key.Binding
	PrevSlot key.Binding
}

var DefaultKeyMap = KeyMap{
	Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Back:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	New:        key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new invoice")),
	NextTab:    key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next invoice")),
	PrevTab:    key.NewBinding(key.WithKeys("["), key.WithHelp("[", "previous invoice")),
	Settings:   key.NewBinding(key.WithKeys(","), key.WithHelp(",", "settings")),
	Invoices:   key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "invoices")),
	Type:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "edit field")),
	Save:       key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save & view")),
	AddItem:    key.NewBinding(key.WithKeys("a", "+"), key.WithHelp("a", "add row")),
	RemoveItem: key.NewBinding(key.WithKeys("x", "-"), key.WithHelp("x", "remove row")),
	PickLogo:   key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "logo")),
	ClearLogo:  key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "remove logo")),
	Delete:     key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "delete invoice")),
	Edit:       key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
	Download:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "download PDF")),
	Template:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "toggle template")),
	Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	NextSlot:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
	PrevSlot:   key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous field")),
}
