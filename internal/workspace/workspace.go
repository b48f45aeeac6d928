package workspace

import (
	"errors"
	"io"
	"sync"

	"github.com/andy/invoicedesk/internal/domain"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// ErrInvoiceNotFound is returned by Save, Delete and Select for an unknown id.
// The collection is never modified in that case.
var ErrInvoiceNotFound = errors.New("invoice not found")

// SaveOption customizes Save
type SaveOption func(*saveOptions)

type saveOptions struct {
	logo    string
	setLogo bool
}

// WithLogo replaces the stored logo as part of a save. Without it the
// previous logo is kept.
func WithLogo(logo string) SaveOption {
	return func(o *saveOptions) {
		o.logo = logo
		o.setLogo = true
	}
}

// Workspace owns the open invoices and which one is active.
// Values going in and out are deep copies.
type Workspace struct {
	mu       sync.RWMutex
	invoices []domain.SavedInvoice
	activeID string // empty means no active invoice
	newID    func() string
	logger   *log.Logger
}

// Option configures a Workspace
type Option func(*Workspace)

// WithIDGenerator overrides the id source (uuid by default)
func WithIDGenerator(gen func() string) Option {
	return func(w *Workspace) {
		w.newID = gen
	}
}

// WithLogger attaches a logger
func WithLogger(l *log.Logger) Option {
	return func(w *Workspace) {
		w.logger = l
	}
}

// New creates an empty workspace
func New(opts ...Option) *Workspace {
	w := &Workspace{
		newID: uuid.NewString,
	}
	for _, o := range opts {
		o(w)
	}
	if w.logger == nil {
		w.logger = log.New(io.Discard)
	}
	return w
}

// Add creates a blank invoice at the end of the collection and makes it active
func (w *Workspace) Add() domain.SavedInvoice {
	w.mu.Lock()
	defer w.mu.Unlock()

	inv := domain.SavedInvoice{
		ID:   w.newID(),
		Data: domain.NewInvoiceData(),
	}
	w.invoices = append(w.invoices, inv)
	w.activeID = inv.ID

	w.logger.Debug("invoice added", "id", inv.ID, "count", len(w.invoices))
	return inv.Clone()
}

// Save replaces the data of the invoice with the given id. The logo is
// replaced only when WithLogo is passed.
func (w *Workspace) Save(id string, data domain.InvoiceData, opts ...SaveOption) error {
	var o saveOptions
	for _, opt := range opts {
		opt(&o)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	i := w.indexOf(id)
	if i < 0 {
		w.logger.Debug("save ignored, unknown invoice", "id", id)
		return ErrInvoiceNotFound
	}

	w.invoices[i].Data = data.Clone()
	if o.setLogo {
		w.invoices[i].Logo = o.logo
	}

	w.logger.Debug("invoice saved", "id", id, "voucher", data.VoucherNo, "logo_replaced", o.setLogo)
	return nil
}

// Delete removes the invoice. If it was active, the first remaining invoice
// becomes active, or nothing when the collection is now empty.
func (w *Workspace) Delete(id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	i := w.indexOf(id)
	if i < 0 {
		w.logger.Debug("delete ignored, unknown invoice", "id", id)
		return ErrInvoiceNotFound
	}

	w.invoices = append(w.invoices[:i], w.invoices[i+1:]...)

	if w.activeID == id {
		w.activeID = ""
		if len(w.invoices) > 0 {
			w.activeID = w.invoices[0].ID
		}
	}

	w.logger.Debug("invoice deleted", "id", id, "active", w.activeID, "count", len(w.invoices))
	return nil
}

// Select makes id the active invoice
func (w *Workspace) Select(id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.indexOf(id) < 0 {
		return ErrInvoiceNotFound
	}
	w.activeID = id
	return nil
}

// Active returns the active invoice. ok is false when there is none or the
// active id no longer matches a record.
func (w *Workspace) Active() (inv domain.SavedInvoice, ok bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if w.activeID == "" {
		return domain.SavedInvoice{}, false
	}
	i := w.indexOf(w.activeID)
	if i < 0 {
		return domain.SavedInvoice{}, false
	}
	return w.invoices[i].Clone(), true
}

// ActiveID returns the active id, or "" when nothing is active
func (w *Workspace) ActiveID() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.activeID
}

// Get returns the invoice with the given id
func (w *Workspace) Get(id string) (domain.SavedInvoice, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	i := w.indexOf(id)
	if i < 0 {
		return domain.SavedInvoice{}, false
	}
	return w.invoices[i].Clone(), true
}

// List returns every invoice in insertion order
func (w *Workspace) List() []domain.SavedInvoice {
	w.mu.RLock()
	defer w.mu.RUnlock()

	out := make([]domain.SavedInvoice, len(w.invoices))
	for i, inv := range w.invoices {
		out[i] = inv.Clone()
	}
	return out
}

// Len returns the number of invoices
func (w *Workspace) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.invoices)
}

func (w *Workspace) indexOf(id string) int {
	for i, inv := range w.invoices {
		if inv.ID == id {
			return i
		}
	}
	return -1
}
