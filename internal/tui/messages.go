package tui

import "github.com/andy/invoicedesk/internal/config"

// WorkspaceChangedMsg tells the root model that invoices were added,
// deleted or selected, so the active screen must be rebuilt
type WorkspaceChangedMsg struct{}

// exportDoneMsg reports the end of a PDF export for invoice id
type exportDoneMsg struct {
	id   string
	path string
	err  error
}

// logoLoadedMsg reports the end of a logo file read for invoice id
type logoLoadedMsg struct {
	id   string
	path string
	err  error
}

// settingsSavedMsg reports the result of writing the config file.
// cfg is the config that was written; nil on error.
type settingsSavedMsg struct {
	cfg *config.Config
	err error
}
