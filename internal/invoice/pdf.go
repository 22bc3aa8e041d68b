package invoice

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// RenderPDF renders a printable statement for a persisted invoice. The
// amounts are taken from the stored invoice as-is; nothing is recomputed
// here.
func RenderPDF(inv *Invoice) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "B", 16)
	pdf.AddPage()

	pdf.Cell(0, 10, "INVOICE")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Invoice No: %s", inv.Number))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", inv.Date.Format("2006-01-02")))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Customer: %s - %s", inv.Customer.Code, inv.Customer.Name))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Status: %s", inv.Status))
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(70, 7, "Description", "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, 7, "Period", "1", 0, "C", false, 0, "")
	pdf.CellFormat(15, 7, "Qty", "1", 0, "C", false, 0, "")
	pdf.CellFormat(25, 7, "Unit Price", "1", 0, "C", false, 0, "")
	pdf.CellFormat(25, 7, "Discount", "1", 0, "C", false, 0, "")
	pdf.CellFormat(25, 7, "Amount", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)

	for _, item := range inv.Items {
		period := ""
		if item.PeriodStart != nil && item.PeriodEnd != nil {
			period = fmt.Sprintf("%s - %s",
				item.PeriodStart.Format("01-02"), item.PeriodEnd.Format("01-02"))
		}

		pdf.CellFormat(70, 7, item.Description, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, period, "1", 0, "C", false, 0, "")
		pdf.CellFormat(15, 7, fmt.Sprintf("%.0f", item.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(25, 7, fmt.Sprintf("%.0f", item.UnitPrice), "1", 0, "R", false, 0, "")
		pdf.CellFormat(25, 7, fmt.Sprintf("%.0f", item.ItemDiscount), "1", 0, "R", false, 0, "")
		pdf.CellFormat(25, 7, fmt.Sprintf("%.0f", item.Amount()), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Sub Total: %.0f Ks", inv.SubTotal))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Discount: %.0f Ks", inv.DiscountAmount))
	pdf.Ln(5)
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Grand Total: %.0f Ks", inv.TotalAmount))

	if inv.Remark != "" {
		pdf.Ln(10)
		pdf.SetFont("Arial", "I", 9)
		pdf.Cell(0, 6, fmt.Sprintf("Remark: %s", inv.Remark))
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering invoice pdf: %w", err)
	}

	return buf.Bytes(), nil
}
