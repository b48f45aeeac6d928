package render

import (
	"fmt"
	"strings"

	"github.com/andy/invoicedesk/internal/domain"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	paperTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	brandStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	labelStyle      = lipgloss.NewStyle().Bold(true)
	mutedStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	headerCellStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle       = lipgloss.NewStyle().Padding(0, 1)
	numCellStyle    = cellStyle.Align(lipgloss.Right)
	grandStyle      = lipgloss.NewStyle().Bold(true)
)

// RenderText renders the printable view for a terminal of the given width
func RenderText(data domain.InvoiceData, logo string, t Template, width int) string {
	var b strings.Builder

	// Header
	var left []string
	if logo != "" {
		left = append(left, mutedStyle.Render("[logo]"))
	} else {
		left = append(left, mutedStyle.Render("[Logo]"))
	}
	if t == Extended && data.CompanyBrandName != "" {
		left = append(left, brandStyle.Render(data.CompanyBrandName))
	}
	left = append(left, labelStyle.Render(companyOrPlaceholder(data.CompanyName)))
	if t == Extended {
		if data.CompanyArabicName != "" {
			left = append(left, data.CompanyArabicName)
		}
		if data.CompanyTrn != "" {
			left = append(left, "TRN: "+data.CompanyTrn)
		}
	}

	title := "INVOICE"
	if t == Extended {
		title = "TAX INVOICE"
	}
	right := []string{paperTitleStyle.Render(title)}
	if t == Extended {
		right = append(right, meta("Ref", data.Ref))
	}
	right = append(right,
		meta("Voucher No", data.VoucherNo),
		meta("Date", data.InvoiceDate),
		meta("Payment Due", data.PaymentDue),
	)

	leftBlock := lipgloss.JoinVertical(lipgloss.Left, left...)
	rightBlock := lipgloss.JoinVertical(lipgloss.Right, right...)
	gap := width - lipgloss.Width(leftBlock) - lipgloss.Width(rightBlock)
	if gap < 2 {
		gap = 2
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, leftBlock, strings.Repeat(" ", gap), rightBlock))
	b.WriteString("\n\n")

	// Bill to
	b.WriteString(labelStyle.Render("BILL TO ") + orDash(data.CustomerName) + "\n")
	if data.PoBox != "" {
		b.WriteString(data.PoBox + "\n")
	}
	b.WriteString(fmt.Sprintf("%s %s   %s %s   %s %s\n",
		labelStyle.Render("TRN:"), orDash(data.TrnNo),
		labelStyle.Render("Customer Code:"), orDash(data.CustomerCode),
		labelStyle.Render("Client Code:"), orDash(data.ClientCode),
	))
	if t == Extended {
		b.WriteString(fmt.Sprintf("%s %s   ", labelStyle.Render("Customer Ref:"), orDash(data.CustomerRef)))
	}
	b.WriteString(fmt.Sprintf("%s %s\n\n", labelStyle.Render("Customer Ref Name:"), orDash(data.CustomerRefName)))

	// Items
	b.WriteString(ItemsTable(Rows(data.Items, t), width, -1))
	b.WriteString("\n\n")

	// Totals
	b.WriteString(totalLine("Sub Total", data.SubTotal, width, lipgloss.NewStyle()))
	b.WriteString(totalLine("VAT Total", data.VatTotal, width, lipgloss.NewStyle()))
	b.WriteString(totalLine("Grand Total", data.GrandTotal, width, grandStyle))

	if data.AmountInWords != "" {
		b.WriteString("\n" + lipgloss.NewStyle().Italic(true).Render(data.AmountInWords) + "\n")
	}

	if t == Extended {
		b.WriteString("\n\n")
		sig := fmt.Sprintf("%-30s%30s", "______________________", "______________________")
		b.WriteString(sig + "\n")
		b.WriteString(fmt.Sprintf("%-30s%30s\n", "Receiver's Signature", "Authorised Signatory"))
		if data.FooterContact != "" || data.FooterEmail != "" {
			b.WriteString("\n" + mutedStyle.Render(strings.TrimSpace(data.FooterContact+"  "+data.FooterEmail)))
		}
	}

	return b.String()
}

// ItemsTable renders items as a bordered table. selected highlights a row
// (pass -1 for none).
func ItemsTable(items []domain.InvoiceItem, width, selected int) string {
	specs := domain.ItemFields()
	headers := make([]string, len(specs))
	for i, s := range specs {
		headers[i] = s.Label
	}

	rows := make([][]string, len(items))
	for i, it := range items {
		rows[i] = []string{
			it.AcCode, it.Description, it.Quantity, it.Rate,
			it.TaxableValue, it.VatPercent, it.Vat, it.TotalAmount,
		}
	}

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(mutedStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			var s lipgloss.Style
			switch {
			case row == table.HeaderRow:
				return headerCellStyle
			case col >= 2:
				s = numCellStyle
			default:
				s = cellStyle
			}
			if row == selected {
				s = s.Reverse(true)
			}
			return s
		})
	if width > 0 {
		tbl = tbl.Width(width)
	}
	return tbl.Render()
}

func meta(label, value string) string {
	return labelStyle.Render(label+":") + " " + value
}

func totalLine(label, value string, width int, style lipgloss.Style) string {
	line := fmt.Sprintf("%-14s %14s", label, value)
	pad := width - lipgloss.Width(line)
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat(" ", pad) + style.Render(line) + "\n"
}
