package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/expense-tracker/internal/models"
	"github.com/expense-tracker/internal/report"
	"github.com/go-pdf/fpdf"
)

const (
	// PDFContentType is the MIME type for the PDF export
	PDFContentType = "application/pdf"

	descriptionLimit = 50
)

// PDFFilename builds the attachment name embedding the generation time
func PDFFilename(now time.Time) string {
	return fmt.Sprintf("expense_report_%s.pdf", now.Format("20060102_150405"))
}

// RenderPDF produces the expense report document: a financial summary
// table, the per-category breakdown restricted to categories with a
// nonzero total, and the detailed expense table. categories fixes the
// breakdown row order.
func RenderPDF(expenses []models.Expense, summary report.Summary, categories []string, now time.Time) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 18)
	pdf.AddPage()

	// Title
	pdf.SetFont("Helvetica", "B", 24)
	pdf.SetTextColor(0, 0, 139)
	pdf.CellFormat(0, 14, "Expense Report", "", 1, "C", false, 0, "")
	pdf.Ln(6)

	// Summary section
	sectionHeading(pdf, "Financial Summary")

	utilization := "N/A"
	if summary.UtilizationPct != nil {
		utilization = summary.UtilizationPct.StringFixed(1) + "%"
	}
	summaryRows := [][2]string{
		{"Total Expenses", summary.Total.StringFixed(2)},
		{"Budget Amount", summary.BudgetAmount.StringFixed(2)},
		{"Remaining", summary.Remaining.StringFixed(2)},
		{"Budget Utilization", utilization},
	}

	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(0, 0, 0)
	for _, row := range summaryRows {
		pdf.CellFormat(60, 8, row[0], "1", 0, "L", false, 0, "")
		pdf.CellFormat(45, 8, row[1], "1", 1, "L", false, 0, "")
	}
	pdf.Ln(8)

	// Category breakdown
	sectionHeading(pdf, "Expenses by Category")

	shares := summary.Shares(categories)
	if len(shares) > 0 {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetFillColor(0, 100, 0)
		pdf.SetTextColor(245, 245, 245)
		pdf.CellFormat(60, 8, "Category", "1", 0, "L", true, 0, "")
		pdf.CellFormat(45, 8, "Amount", "1", 0, "L", true, 0, "")
		pdf.CellFormat(30, 8, "Percentage", "1", 1, "L", true, 0, "")

		pdf.SetFont("Helvetica", "", 11)
		pdf.SetTextColor(0, 0, 0)
		for _, share := range shares {
			pdf.CellFormat(60, 8, share.Name, "1", 0, "L", false, 0, "")
			pdf.CellFormat(45, 8, share.Amount.StringFixed(2), "1", 0, "L", false, 0, "")
			pdf.CellFormat(30, 8, share.Percentage.StringFixed(1)+"%", "1", 1, "L", false, 0, "")
		}
	} else {
		pdf.SetFont("Helvetica", "", 11)
		pdf.SetTextColor(0, 0, 0)
		pdf.CellFormat(0, 8, "No expenses found in any category.", "", 1, "L", false, 0, "")
	}
	pdf.Ln(8)

	// Detailed expenses
	sectionHeading(pdf, "Detailed Expenses")

	if len(expenses) > 0 {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetFillColor(139, 0, 0)
		pdf.SetTextColor(245, 245, 245)
		pdf.CellFormat(45, 8, "Title", "1", 0, "L", true, 0, "")
		pdf.CellFormat(28, 8, "Amount", "1", 0, "L", true, 0, "")
		pdf.CellFormat(26, 8, "Date", "1", 0, "L", true, 0, "")
		pdf.CellFormat(30, 8, "Category", "1", 0, "L", true, 0, "")
		pdf.CellFormat(60, 8, "Description", "1", 1, "L", true, 0, "")

		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(0, 0, 0)
		for i := range expenses {
			e := &expenses[i]
			fill := i%2 == 1
			pdf.SetFillColor(211, 211, 211)
			pdf.CellFormat(45, 7, e.Title, "1", 0, "L", fill, 0, "")
			pdf.CellFormat(28, 7, e.Amount.StringFixed(2), "1", 0, "L", fill, 0, "")
			pdf.CellFormat(26, 7, e.Date.Format("2006-01-02"), "1", 0, "L", fill, 0, "")
			pdf.CellFormat(30, 7, e.Category, "1", 0, "L", fill, 0, "")
			pdf.CellFormat(60, 7, TruncateDescription(e.Description), "1", 1, "L", fill, 0, "")
		}
	} else {
		pdf.SetFont("Helvetica", "", 11)
		pdf.SetTextColor(0, 0, 0)
		pdf.CellFormat(0, 8, "No expenses found.", "", 1, "L", false, 0, "")
	}

	// Footer
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(0, 6,
		fmt.Sprintf("Report generated on %s", now.Format("2006-01-02 15:04:05")),
		"", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func sectionHeading(pdf *fpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(0, 0, 139)
	pdf.CellFormat(0, 10, title, "", 1, "L", false, 0, "")
	pdf.Ln(2)
}

// TruncateDescription shortens a description to the detail-table limit,
// marking cut-off text with an ellipsis
func TruncateDescription(s string) string {
	runes := []rune(s)
	if len(runes) <= descriptionLimit {
		return s
	}
	return string(runes[:descriptionLimit]) + "..."
}
