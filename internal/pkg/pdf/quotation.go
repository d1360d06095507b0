// Package pdf renders printable quotation and invoice documents.
package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/chimfwembeC/tekrem-erp-sub007/internal/domain/party"
	"github.com/chimfwembeC/tekrem-erp-sub007/internal/domain/quotation"
)

// RenderQuotation renders a quotation as an A4 PDF.
func RenderQuotation(q quotation.Quotation, client party.Contact) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Quotation")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Number: %s", q.Number))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Client: %s (%s)", client.Name, client.Email))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Date: %s", q.CreatedAt.Format("2006-01-02")))
	if q.ExpiryDate != nil {
		pdf.Ln(7)
		pdf.Cell(0, 8, fmt.Sprintf("Valid until: %s", q.ExpiryDate.Format("2006-01-02")))
	}
	pdf.Ln(10)

	renderItems(pdf, q.Items)
	renderTotals(pdf, q.Subtotal.StringFixed(2), q.TaxRate.StringFixed(2), q.TaxAmount.StringFixed(2),
		q.DiscountAmount.StringFixed(2), q.TotalAmount.StringFixed(2))

	pdf.Ln(10)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.Cell(0, 8, fmt.Sprintf("Status: %s", q.Status))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render quotation PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderInvoice renders an invoice as an A4 PDF.
func RenderInvoice(inv quotation.Invoice, client party.Contact) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Invoice")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Number: %s", inv.Number))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Client: %s (%s)", client.Name, client.Email))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Issued: %s", inv.IssuedAt.Format("2006-01-02")))
	if inv.DueDate != nil {
		pdf.Ln(7)
		pdf.Cell(0, 8, fmt.Sprintf("Due: %s", inv.DueDate.Format("2006-01-02")))
	}
	pdf.Ln(10)

	renderItems(pdf, inv.Items)
	renderTotals(pdf, inv.Subtotal.StringFixed(2), inv.TaxRate.StringFixed(2), inv.TaxAmount.StringFixed(2),
		inv.DiscountAmount.StringFixed(2), inv.TotalAmount.StringFixed(2))

	if inv.Status == quotation.InvoiceStatusPaid && inv.PaidAt != nil {
		pdf.Ln(10)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, fmt.Sprintf("PAID %s", inv.PaidAt.Format("2006-01-02")))
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render invoice PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func renderItems(pdf *gofpdf.Fpdf, items []quotation.LineItem) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(90, 8, "Description", "1", 0, "L", false, 0, "")
	pdf.CellFormat(25, 8, "Qty", "1", 0, "R", false, 0, "")
	pdf.CellFormat(35, 8, "Unit Price", "1", 0, "R", false, 0, "")
	pdf.CellFormat(35, 8, "Line Total", "1", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	for _, item := range items {
		pdf.CellFormat(90, 8, item.Description, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 8, item.Quantity.String(), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 8, item.UnitPrice.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 8, item.LineTotal.StringFixed(2), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)
}

func renderTotals(pdf *gofpdf.Fpdf, subtotal, taxRate, taxAmount, discount, total string) {
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Subtotal: %s", subtotal))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Tax (%s%%): %s", taxRate, taxAmount))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Discount: %s", discount))
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Total: %s", total))
}

// RenderCertificate renders a training completion certificate.
func RenderCertificate(number, employeeName, trainingTitle string, issuedAt time.Time, expiresAt *time.Time) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 24)
	pdf.CellFormat(0, 20, "Certificate of Completion", "", 1, "C", false, 0, "")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 14)
	pdf.CellFormat(0, 10, "This certifies that", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, employeeName, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 14)
	pdf.CellFormat(0, 10, "has successfully completed", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 12, trainingTitle, "", 1, "C", false, 0, "")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 8, fmt.Sprintf("Certificate No: %s", number), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 8, fmt.Sprintf("Issued: %s", issuedAt.Format("2006-01-02")), "", 1, "C", false, 0, "")
	if expiresAt != nil {
		pdf.CellFormat(0, 8, fmt.Sprintf("Valid until: %s", expiresAt.Format("2006-01-02")), "", 1, "C", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render certificate PDF: %w", err)
	}
	return buf.Bytes(), nil
}
