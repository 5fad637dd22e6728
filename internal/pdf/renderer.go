// Package pdf renders invoices into printable PDF documents.
package pdf

import (
	"bytes"
	"context"
	"fmt"

	"github.com/jung-kurt/gofpdf/v2"

	"github.com/ledgerline/ledgerline/internal/invoices"
	"github.com/ledgerline/ledgerline/internal/money"
	"github.com/ledgerline/ledgerline/internal/settings"
)

// ProfileSource provides the business profile printed in the header.
type ProfileSource interface {
	Get(ctx context.Context) (*settings.Settings, error)
}

// Renderer draws invoice PDFs with the business profile in the header.
type Renderer struct {
	profiles ProfileSource
}

// NewRenderer builds a Renderer instance.
func NewRenderer(profiles ProfileSource) *Renderer {
	return &Renderer{profiles: profiles}
}

const (
	pageWidth = 210.0
	marginX   = 15.0
	contentW  = pageWidth - 2*marginX
)

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// RenderInvoice produces the PDF document for one invoice.
func (r *Renderer) RenderInvoice(ctx context.Context, inv *invoices.InvoiceWithRelations) ([]byte, error) {
	profile, err := r.profiles.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load business profile: %w", err)
	}
	return Render(inv, profile)
}

// Render draws the document. Split out from RenderInvoice so tests can feed
// a profile directly.
func Render(inv *invoices.InvoiceWithRelations, profile *settings.Settings) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(marginX, 15, marginX)
	pdf.AddPage()

	drawHeader(pdf, inv, profile)
	drawParties(pdf, inv, profile)
	drawItemsTable(pdf, inv)
	drawTotals(pdf, inv)
	drawFooter(pdf, inv, profile)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render invoice pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func drawHeader(pdf *gofpdf.Fpdf, inv *invoices.InvoiceWithRelations, profile *settings.Settings) {
	// Title band
	pdf.SetFillColor(41, 98, 255)
	pdf.Rect(0, 0, pageWidth, 30, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 22)
	pdf.SetXY(marginX, 8)
	pdf.CellFormat(contentW/2, 10, "INVOICE", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(contentW/2, 10, inv.Number, "", 1, "R", false, 0, "")

	if profile != nil && profile.BusinessName != "" {
		pdf.SetXY(marginX, 18)
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(contentW, 5, profile.BusinessName, "", 1, "L", false, 0, "")
	}

	pdf.SetTextColor(0, 0, 0)
	pdf.SetY(36)
}

func drawParties(pdf *gofpdf.Fpdf, inv *invoices.InvoiceWithRelations, profile *settings.Settings) {
	colW := contentW / 2
	top := pdf.GetY()

	// Invoice details, left column
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(colW, 6, "Invoice Details", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(colW, 5, "Issue Date: "+inv.IssueDate.Format("02 Jan 2006"), "", 1, "L", false, 0, "")
	pdf.CellFormat(colW, 5, "Due Date: "+inv.DueDate.Format("02 Jan 2006"), "", 1, "L", false, 0, "")
	pdf.CellFormat(colW, 5, "Status: "+string(invoices.EffectiveStatus(&inv.Invoice)), "", 1, "L", false, 0, "")
	if inv.Project != nil {
		pdf.CellFormat(colW, 5, "Project: "+inv.Project.Name, "", 1, "L", false, 0, "")
	}

	// Bill-to box, right column
	pdf.SetXY(marginX+colW, top)
	pdf.SetFillColor(245, 245, 245)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(colW, 6, "BILL TO", "", 1, "L", true, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	if inv.Client != nil {
		name := inv.Client.Name
		if company := deref(inv.Client.Company); company != "" {
			name = company + " (" + name + ")"
		}
		pdf.SetX(marginX + colW)
		pdf.CellFormat(colW, 5, name, "", 1, "L", false, 0, "")
		pdf.SetX(marginX + colW)
		pdf.CellFormat(colW, 5, inv.Client.Email, "", 1, "L", false, 0, "")
	}

	pdf.SetY(top + 32)
}

func drawItemsTable(pdf *gofpdf.Fpdf, inv *invoices.InvoiceWithRelations) {
	descW := contentW - 25 - 35 - 35

	pdf.SetFillColor(41, 98, 255)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(descW, 8, "Description", "1", 0, "L", true, 0, "")
	pdf.CellFormat(25, 8, "Qty", "1", 0, "C", true, 0, "")
	pdf.CellFormat(35, 8, "Rate ("+inv.Currency+")", "1", 0, "R", true, 0, "")
	pdf.CellFormat(35, 8, "Amount ("+inv.Currency+")", "1", 1, "R", true, 0, "")

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "", 9)
	for _, item := range inv.Items {
		pdf.CellFormat(descW, 7, item.Description, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 7, trimZeros(item.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 7, money.FormatPlain(item.Rate, inv.Currency), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 7, money.FormatPlain(item.Amount, inv.Currency), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)
}

func trimZeros(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	if s[len(s)-3:] == ".00" {
		return s[:len(s)-3]
	}
	return s
}

func drawTotals(pdf *gofpdf.Fpdf, inv *invoices.InvoiceWithRelations) {
	labelW := 40.0
	valueW := 35.0
	x := marginX + contentW - labelW - valueW

	row := func(label, value string, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 9)
		pdf.SetX(x)
		pdf.CellFormat(labelW, 6, label, "", 0, "R", false, 0, "")
		pdf.CellFormat(valueW, 6, value, "", 1, "R", false, 0, "")
	}

	row("Subtotal", money.FormatPlain(inv.Subtotal, inv.Currency), false)
	if inv.Discount > 0 {
		row("Discount", "-"+money.FormatPlain(inv.Discount, inv.Currency), false)
	}
	if inv.TaxRate > 0 {
		row(fmt.Sprintf("Tax (%s%%)", trimZeros(inv.TaxRate)), money.FormatPlain(inv.TaxAmount, inv.Currency), false)
	}
	row("Total ("+inv.Currency+")", money.FormatPlain(inv.Total, inv.Currency), true)

	if paid := inv.PaidAmount(); paid > 0 {
		row("Paid", money.FormatPlain(paid, inv.Currency), false)
		row("Amount Due", money.FormatPlain(inv.AmountDue(), inv.Currency), true)
	}
	pdf.Ln(6)
}

func drawFooter(pdf *gofpdf.Fpdf, inv *invoices.InvoiceWithRelations, profile *settings.Settings) {
	section := func(title, body string) {
		if body == "" {
			return
		}
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(contentW, 6, title, "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.MultiCell(contentW, 5, body, "", "L", false)
		pdf.Ln(2)
	}

	section("Notes", deref(inv.Notes))
	section("Terms", deref(inv.Terms))

	if profile != nil {
		var bank string
		if name := deref(profile.BankName); name != "" {
			bank = "Bank: " + name
			if acct := deref(profile.BankAccountNo); acct != "" {
				bank += "  A/C: " + acct
			}
			if ifsc := deref(profile.BankIFSC); ifsc != "" {
				bank += "  IFSC: " + ifsc
			}
		}
		section("Payment Details", bank)
		section("", deref(profile.Signature))
	}
}
