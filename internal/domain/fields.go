package domain

import "fmt"

// Field names a scalar field of InvoiceData
type Field string

const (
	FieldCompanyName       Field = "companyName"
	FieldCompanyBrandName  Field = "companyBrandName"
	FieldCompanyArabicName Field = "companyArabicName"
	FieldCompanyTrn        Field = "companyTrn"
	FieldVoucherNo         Field = "voucherNo"
	FieldRef               Field = "ref"
	FieldInvoiceDate       Field = "invoiceDate"
	FieldPaymentDue        Field = "paymentDue"
	FieldCustomerName      Field = "customerName"
	FieldTrnNo             Field = "trnNo"
	FieldCustomerCode      Field = "customerCode"
	FieldCustomerRef       Field = "customerRef"
	FieldCustomerRefName   Field = "customerRefName"
	FieldPoBox             Field = "poBox"
	FieldClientCode        Field = "clientCode"
	FieldSubTotal          Field = "subTotal"
	FieldVatTotal          Field = "vatTotal"
	FieldGrandTotal        Field = "grandTotal"
	FieldAmountInWords     Field = "amountInWords"
	FieldFooterContact     Field = "footerContact"
	FieldFooterEmail       Field = "footerEmail"
)

// ItemField names a field of InvoiceItem
type ItemField string

const (
	ItemAcCode       ItemField = "acCode"
	ItemDescription  ItemField = "description"
	ItemQuantity     ItemField = "quantity"
	ItemRate         ItemField = "rate"
	ItemTaxableValue ItemField = "taxableValue"
	ItemVatPercent   ItemField = "vatPercent"
	ItemVat          ItemField = "vat"
	ItemTotalAmount  ItemField = "totalAmount"
)

// FieldSpec pairs a field with the label shown in forms
type FieldSpec struct {
	Field Field
	Label string
}

// ItemFieldSpec pairs an item field with its column header
type ItemFieldSpec struct {
	Field ItemField
	Label string
}

var fieldSpecs = []FieldSpec{
	{FieldCompanyName, "Company Name"},
	{FieldCompanyBrandName, "Brand Name"},
	{FieldCompanyArabicName, "Arabic Name"},
	{FieldCompanyTrn, "Company TRN"},
	{FieldVoucherNo, "Voucher No"},
	{FieldRef, "Ref"},
	{FieldInvoiceDate, "Invoice Date"},
	{FieldPaymentDue, "Payment Due"},
	{FieldCustomerName, "Customer Name"},
	{FieldTrnNo, "TRN No"},
	{FieldCustomerCode, "Customer Code"},
	{FieldCustomerRef, "Customer Ref"},
	{FieldCustomerRefName, "Customer Ref Name"},
	{FieldPoBox, "PO Box"},
	{FieldClientCode, "Client Code"},
	{FieldSubTotal, "Sub Total"},
	{FieldVatTotal, "VAT Total"},
	{FieldGrandTotal, "Grand Total"},
	{FieldAmountInWords, "Amount in Words"},
	{FieldFooterContact, "Footer Contact"},
	{FieldFooterEmail, "Footer Email"},
}

var itemFieldSpecs = []ItemFieldSpec{
	{ItemAcCode, "AC Code"},
	{ItemDescription, "Description"},
	{ItemQuantity, "Qty"},
	{ItemRate, "Rate"},
	{ItemTaxableValue, "Taxable Value"},
	{ItemVatPercent, "VAT %"},
	{ItemVat, "VAT"},
	{ItemTotalAmount, "Total"},
}

// Fields lists the scalar fields in form order
func Fields() []FieldSpec {
	out := make([]FieldSpec, len(fieldSpecs))
	copy(out, fieldSpecs)
	return out
}

// ItemFields lists the item fields in column order
func ItemFields() []ItemFieldSpec {
	out := make([]ItemFieldSpec, len(itemFieldSpecs))
	copy(out, itemFieldSpecs)
	return out
}

func (d *InvoiceData) fieldPtr(f Field) *string {
	switch f {
	case FieldCompanyName:
		return &d.CompanyName
	case FieldCompanyBrandName:
		return &d.CompanyBrandName
	case FieldCompanyArabicName:
		return &d.CompanyArabicName
	case FieldCompanyTrn:
		return &d.CompanyTrn
	case FieldVoucherNo:
		return &d.VoucherNo
	case FieldRef:
		return &d.Ref
	case FieldInvoiceDate:
		return &d.InvoiceDate
	case FieldPaymentDue:
		return &d.PaymentDue
	case FieldCustomerName:
		return &d.CustomerName
	case FieldTrnNo:
		return &d.TrnNo
	case FieldCustomerCode:
		return &d.CustomerCode
	case FieldCustomerRef:
		return &d.CustomerRef
	case FieldCustomerRefName:
		return &d.CustomerRefName
	case FieldPoBox:
		return &d.PoBox
	case FieldClientCode:
		return &d.ClientCode
	case FieldSubTotal:
		return &d.SubTotal
	case FieldVatTotal:
		return &d.VatTotal
	case FieldGrandTotal:
		return &d.GrandTotal
	case FieldAmountInWords:
		return &d.AmountInWords
	case FieldFooterContact:
		return &d.FooterContact
	case FieldFooterEmail:
		return &d.FooterEmail
	}
	return nil
}

func (it *InvoiceItem) fieldPtr(f ItemField) *string {
	switch f {
	case ItemAcCode:
		return &it.AcCode
	case ItemDescription:
		return &it.Description
	case ItemQuantity:
		return &it.Quantity
	case ItemRate:
		return &it.Rate
	case ItemTaxableValue:
		return &it.TaxableValue
	case ItemVatPercent:
		return &it.VatPercent
	case ItemVat:
		return &it.Vat
	case ItemTotalAmount:
		return &it.TotalAmount
	}
	return nil
}

// Get returns the value of a scalar field
func (d InvoiceData) Get(f Field) (string, error) {
	p := d.fieldPtr(f)
	if p == nil {
		return "", fmt.Errorf("%w: %q", ErrUnknownField, f)
	}
	return *p, nil
}

// Set stores value verbatim in a scalar field
func (d *InvoiceData) Set(f Field, value string) error {
	p := d.fieldPtr(f)
	if p == nil {
		return fmt.Errorf("%w: %q", ErrUnknownField, f)
	}
	*p = value
	return nil
}

// Get returns the value of an item field
func (it InvoiceItem) Get(f ItemField) (string, error) {
	p := it.fieldPtr(f)
	if p == nil {
		return "", fmt.Errorf("%w: %q", ErrUnknownField, f)
	}
	return *p, nil
}

// Set stores value verbatim in an item field
func (it *InvoiceItem) Set(f ItemField, value string) error {
	p := it.fieldPtr(f)
	if p == nil {
		return fmt.Errorf("%w: %q", ErrUnknownField, f)
	}
	*p = value
	return nil
}
