// Package pdf renders invoice documents for email delivery.
package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"

	"github.com/tresmastres/or-hayeladim/internal/domain"
)

// Issuer identifies the organization on generated documents.
type Issuer struct {
	Name    string
	TaxID   string
	Address string
}

// Generator renders invoice PDFs with a fixed issuer identity.
type Generator struct {
	issuer Issuer
}

func NewGenerator(issuer Issuer) *Generator {
	return &Generator{issuer: issuer}
}

// FormatAmount renders cents as a decimal money string, e.g. "120.00 EUR".
func FormatAmount(cents int64, currency string) string {
	amount := decimal.NewFromInt(cents).Div(decimal.NewFromInt(100))
	return amount.StringFixed(2) + " " + currency
}

// Invoice renders a single invoice as an A4 PDF document.
// The member is the invoice recipient.
func (g *Generator) Invoice(inv domain.Invoice, member domain.Member) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Invoice "+inv.FullNumber, true)
	pdf.AddPage()

	// Issuer block
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, g.issuer.Name)
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	if g.issuer.TaxID != "" {
		pdf.Cell(0, 6, "Tax ID: "+g.issuer.TaxID)
		pdf.Ln(5)
	}
	if g.issuer.Address != "" {
		pdf.Cell(0, 6, g.issuer.Address)
		pdf.Ln(5)
	}
	pdf.Ln(6)

	// Invoice identity
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 8, "Invoice "+inv.FullNumber)
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(40, 6, "Issue date:")
	pdf.Cell(0, 6, inv.IssueDate.Format("2006-01-02"))
	pdf.Ln(6)
	if inv.DueDate != nil {
		pdf.Cell(40, 6, "Due date:")
		pdf.Cell(0, 6, inv.DueDate.Format("2006-01-02"))
		pdf.Ln(6)
	}
	pdf.Cell(40, 6, "Status:")
	pdf.Cell(0, 6, string(inv.Status))
	pdf.Ln(10)

	// Recipient block
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(0, 6, "Billed to")
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, member.FullName())
	pdf.Ln(5)
	if member.Email != "" {
		pdf.Cell(0, 6, member.Email)
		pdf.Ln(5)
	}
	pdf.Ln(8)

	// Single line item table
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(235, 235, 235)
	pdf.CellFormat(140, 8, "Description", "1", 0, "L", true, 0, "")
	pdf.CellFormat(50, 8, "Amount", "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	description := inv.Description
	if description == "" {
		description = "Membership fee"
	}
	pdf.CellFormat(140, 8, description, "1", 0, "L", false, 0, "")
	pdf.CellFormat(50, 8, FormatAmount(inv.AmountCents, inv.Currency), "1", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(140, 8, "Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(50, 8, FormatAmount(inv.AmountCents, inv.Currency), "1", 1, "R", false, 0, "")

	// Footer
	pdf.SetY(-25)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.Cell(0, 5, fmt.Sprintf("Generated %s", time.Now().Format("2006-01-02 15:04")))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render invoice pdf: %w", err)
	}
	return buf.Bytes(), nil
}
