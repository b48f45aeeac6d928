package domain

import (
	"errors"
	"fmt"
)

// ErrUnknownField is returned when a field name does not exist on the model
var ErrUnknownField = errors.New("unknown invoice field")

// InvoiceItem is one printed row of an invoice. Every value is free text;
// totals are entered by the operator, never computed.
type InvoiceItem struct {
	AcCode       string `yaml:"ac_code"`
	Description  string `yaml:"description"`
	Quantity     string `yaml:"quantity"`
	Rate         string `yaml:"rate"`
	TaxableValue string `yaml:"taxable_value"`
	VatPercent   string `yaml:"vat_percent"`
	Vat          string `yaml:"vat"`
	TotalAmount  string `yaml:"total_amount"`
}

// InvoiceData is the full content of one invoice. It carries the superset of
// the compact and extended layouts; the extended-only fields may stay empty.
type InvoiceData struct {
	// Company identity
	CompanyName       string `yaml:"company_name"`
	CompanyBrandName  string `yaml:"company_brand_name,omitempty"`
	CompanyArabicName string `yaml:"company_arabic_name,omitempty"`
	CompanyTrn        string `yaml:"company_trn"`

	// Invoice identifiers
	VoucherNo   string `yaml:"voucher_no"`
	Ref         string `yaml:"ref"`
	InvoiceDate string `yaml:"invoice_date"`
	PaymentDue  string `yaml:"payment_due"` // a date or free text

	// Customer / billing
	CustomerName    string `yaml:"customer_name"`
	TrnNo           string `yaml:"trn_no"`
	CustomerCode    string `yaml:"customer_code"`
	CustomerRef     string `yaml:"customer_ref"`
	CustomerRefName string `yaml:"customer_ref_name"`
	PoBox           string `yaml:"po_box"`
	ClientCode      string `yaml:"client_code"`

	// Items in printed order
	Items []InvoiceItem `yaml:"items"`

	// Totals
	SubTotal      string `yaml:"sub_total"`
	VatTotal      string `yaml:"vat_total"`
	GrandTotal    string `yaml:"grand_total"`
	AmountInWords string `yaml:"amount_in_words"`

	// Footer
	FooterContact string `yaml:"footer_contact,omitempty"`
	FooterEmail   string `yaml:"footer_email,omitempty"`
}

// SavedInvoice is a workspace entry: an identity, its content and its logo
type SavedInvoice struct {
	ID   string
	Data InvoiceData
	Logo string // data URI, or empty
}

// EmptyItem returns an item with every field blank
func EmptyItem() InvoiceItem {
	return InvoiceItem{}
}

// NewInvoiceData returns a blank invoice with exactly one blank item.
// Each call allocates its own item slice.
func NewInvoiceData() InvoiceData {
	return InvoiceData{
		Items: []InvoiceItem{EmptyItem()},
	}
}

// Clone returns a deep copy of the invoice
func (d InvoiceData) Clone() InvoiceData {
	out := d
	out.Items = make([]InvoiceItem, len(d.Items))
	copy(out.Items, d.Items)
	return out
}

// Clone returns a deep copy of the saved invoice
func (s SavedInvoice) Clone() SavedInvoice {
	out := s
	out.Data = s.Data.Clone()
	return out
}

// Title is the short label used for tabs: "<voucher or Draft> – <company>"
func (d InvoiceData) Title() string {
	title := d.VoucherNo
	if title == "" {
		title = "Draft"
	}
	if d.CompanyName != "" {
		title = fmt.Sprintf("%s – %s", title, d.CompanyName)
	}
	return title
}

// Normalize restores the one-item invariant on data that came from outside
// the model (for example a hand-written YAML file with no items).
func (d *InvoiceData) Normalize() {
	if len(d.Items) == 0 {
		d.Items = []InvoiceItem{EmptyItem()}
	}
}
