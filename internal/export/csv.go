// Package export renders a user's expense data as downloadable documents:
// a delimited text file and a PDF report.
package export

import (
	"fmt"
	"io"

	"github.com/expense-tracker/internal/models"
)

const (
	// CSVFilename is the attachment name for the delimited export
	CSVFilename = "expenses.csv"
	// CSVContentType is the MIME type for the delimited export
	CSVContentType = "text/csv"

	csvHeader = "Title,Amount,Date,Category,Payment Method,Description,Created At\n"
)

// WriteCSV streams the expense list to w one row at a time: a header line
// followed by one line per expense. Title and description are wrapped in
// quotes; embedded quotes and commas are passed through unescaped, which
// is part of the documented export contract.
func WriteCSV(w io.Writer, expenses []models.Expense) error {
	if _, err := io.WriteString(w, csvHeader); err != nil {
		return err
	}
	for i := range expenses {
		if _, err := io.WriteString(w, CSVRow(&expenses[i])); err != nil {
			return err
		}
	}
	return nil
}

// CSVRow formats a single expense as one export line
func CSVRow(e *models.Expense) string {
	return fmt.Sprintf("\"%s\",%s,%s,%s,%s,\"%s\",%s\n",
		e.Title,
		e.Amount.String(),
		e.Date.Format("2006-01-02"),
		e.Category,
		e.PaymentMethod,
		e.Description,
		e.CreatedAt.Format("2006-01-02 15:04:05"),
	)
}
