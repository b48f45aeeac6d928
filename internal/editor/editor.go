package editor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/andy/invoicedesk/internal/domain"
	"github.com/andy/invoicedesk/internal/export"
	"github.com/andy/invoicedesk/internal/workspace"
	"github.com/charmbracelet/log"
	"github.com/qmuntal/stateless"
)

// State is the editor mode
type State string

const (
	Editing State = "editing"
	Viewing State = "viewing"
)

const (
	triggerSave = "save"
	triggerEdit = "edit"
)

var (
	ErrExportInProgress = errors.New("export already in progress")
	ErrItemOutOfRange   = errors.New("item index out of range")
)

// Store is where the editor commits and deletes its invoice
type Store interface {
	Save(id string, data domain.InvoiceData, opts ...workspace.SaveOption) error
	Delete(id string) error
}

// Exporter turns an invoice into a downloadable document
type Exporter interface {
	Export(ctx context.Context, data domain.InvoiceData, logo string) (*export.Document, error)
}

// LogoSource reads a logo file into a data URI
type LogoSource interface {
	Load(ctx context.Context, path string) (string, error)
}

// Editor holds the working copy of one invoice and switches it between
// editing and viewing. Field edits are not blocked while viewing.
type Editor struct {
	id     string
	store  Store
	logger *log.Logger

	mu        sync.Mutex
	machine   *stateless.StateMachine
	working   domain.InvoiceData
	committed domain.InvoiceData
	logo      string

	exporting atomic.Bool
}

// Option configures an Editor
type Option func(*Editor)

// WithLogger attaches a logger
func WithLogger(l *log.Logger) Option {
	return func(e *Editor) {
		e.logger = l
	}
}

// New creates an editor over a saved invoice. It starts in Editing.
func New(inv domain.SavedInvoice, store Store, opts ...Option) *Editor {
	e := &Editor{
		id:        inv.ID,
		store:     store,
		working:   inv.Data.Clone(),
		committed: inv.Data.Clone(),
		logo:      inv.Logo,
	}
	for _, o := range opts {
		o(e)
	}
	if e.logger == nil {
		e.logger = log.New(io.Discard)
	}
	e.working.Normalize()

	e.machine = stateless.NewStateMachine(Editing)

	e.machine.Configure(Editing).
		OnEntryFrom(triggerEdit, e.onEdit).
		Permit(triggerSave, Viewing)

	e.machine.Configure(Viewing).
		Permit(triggerEdit, Editing)

	return e
}

// ID returns the id of the invoice being edited
func (e *Editor) ID() string {
	return e.id
}

// State returns the current mode
func (e *Editor) State() State {
	return e.machine.MustState().(State)
}

// Data returns a copy of the working copy
func (e *Editor) Data() domain.InvoiceData {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.working.Clone()
}

// Logo returns the logo held locally
func (e *Editor) Logo() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.logo
}

// Exporting reports whether an export is running
func (e *Editor) Exporting() bool {
	return e.exporting.Load()
}

// Save commits the working copy and logo to the store and switches to Viewing.
// If the store fails the editor stays in Editing with its edits intact.
func (e *Editor) Save() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	// commit before the transition; the machine switches state ahead of
	// entry actions, so a failing action would still leave us in Viewing
	if e.machine.MustState() == Editing {
		if err := e.commit(); err != nil {
			return fmt.Errorf("save invoice %s: %w", e.id, err)
		}
	}
	if err := e.machine.Fire(triggerSave); err != nil {
		return fmt.Errorf("save invoice %s: %w", e.id, err)
	}
	return nil
}

// Edit switches back to Editing with the last committed data as working copy
func (e *Editor) Edit() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.machine.Fire(triggerEdit); err != nil {
		return fmt.Errorf("edit invoice %s: %w", e.id, err)
	}
	return nil
}

// Delete asks the store to remove the invoice. The editor itself is left
// as is; its owner is expected to drop it.
func (e *Editor) Delete() error {
	return e.store.Delete(e.id)
}

// commit runs with e.mu held
func (e *Editor) commit() error {
	data := e.working.Clone()
	err := e.store.Save(e.id, data, workspace.WithLogo(e.logo))
	if err != nil && !errors.Is(err, workspace.ErrInvoiceNotFound) {
		return err
	}
	e.committed = data
	e.logger.Debug("invoice committed", "id", e.id, "items", len(data.Items))
	return nil
}

// onEdit runs inside Fire with e.mu held
func (e *Editor) onEdit(_ context.Context, _ ...any) error {
	e.working = e.committed.Clone()
	return nil
}

// UpdateField replaces one scalar field of the working copy
func (e *Editor) UpdateField(f domain.Field, value string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.working.Set(f, value)
}

// UpdateItem replaces one field of the item at index
func (e *Editor) UpdateItem(index int, f domain.ItemField, value string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if index < 0 || index >= len(e.working.Items) {
		return fmt.Errorf("%w: %d", ErrItemOutOfRange, index)
	}
	return e.working.Items[index].Set(f, value)
}

// AddItem appends a blank item
func (e *Editor) AddItem() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.working.Items = append(e.working.Items, domain.EmptyItem())
}

// RemoveItem removes the item at index. With a single item left it does nothing.
func (e *Editor) RemoveItem(index int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.working.Items) <= 1 {
		return
	}
	if index < 0 || index >= len(e.working.Items) {
		return
	}

	items := make([]domain.InvoiceItem, 0, len(e.working.Items)-1)
	items = append(items, e.working.Items[:index]...)
	items = append(items, e.working.Items[index+1:]...)
	e.working.Items = items
}

// ItemCount returns the number of items in the working copy
func (e *Editor) ItemCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.working.Items)
}

// SetLogo replaces the local logo. It reaches the store on the next Save.
func (e *Editor) SetLogo(dataURI string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.logo = dataURI
}

// ClearLogo removes the local logo
func (e *Editor) ClearLogo() {
	e.SetLogo("")
}

// LoadLogo reads a logo file and assigns it once the read completes.
// On failure the current logo is kept. Overlapping loads: last one wins.
func (e *Editor) LoadLogo(ctx context.Context, src LogoSource, path string) error {
	uri, err := src.Load(ctx, path)
	if err != nil {
		e.logger.Warn("logo load failed", "id", e.id, "path", path, "err", err)
		return fmt.Errorf("load logo: %w", err)
	}
	e.SetLogo(uri)
	return nil
}

// Export renders the working copy through exp. Only one export may run at a
// time; a concurrent call fails with ErrExportInProgress.
func (e *Editor) Export(ctx context.Context, exp Exporter) (*export.Document, error) {
	if !e.exporting.CompareAndSwap(false, true) {
		return nil, ErrExportInProgress
	}
	defer e.exporting.Store(false)

	e.mu.Lock()
	data := e.working.Clone()
	logo := e.logo
	e.mu.Unlock()

	doc, err := exp.Export(ctx, data, logo)
	if err != nil {
		e.logger.Error("export failed", "id", e.id, "err", err)
		return nil, fmt.Errorf("export invoice %s: %w", e.id, err)
	}
	e.logger.Info("invoice exported", "id", e.id, "file", doc.Name, "bytes", len(doc.Data))
	return doc, nil
}
