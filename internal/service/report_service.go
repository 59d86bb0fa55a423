package service

import (
	"errors"
	"io"
	"time"

	"github.com/expense-tracker/internal/export"
	"github.com/expense-tracker/internal/middleware"
	"github.com/expense-tracker/internal/models"
	"github.com/expense-tracker/internal/report"
	"github.com/expense-tracker/internal/repository"
)

// ReportService computes dashboard/report aggregates and drives the
// export renderers
type ReportService struct {
	expenses ExpenseStore
	budgets  BudgetStore
}

// NewReportService creates a new ReportService
func NewReportService(expenses ExpenseStore, budgets BudgetStore) *ReportService {
	return &ReportService{
		expenses: expenses,
		budgets:  budgets,
	}
}

// Summary aggregates all of the user's expenses against their budget. The
// breakdown runs over the fixed default category enumeration; spending in
// user-created categories counts toward the total but gets no breakdown
// row. The name list is returned alongside so renderers keep a stable row
// order.
func (s *ReportService) Summary(userID uint) (report.Summary, []string, error) {
	expenses, err := s.expenses.ListByUser(userID, repository.ListFilter{})
	if err != nil {
		return report.Summary{}, nil, err
	}

	budget, err := s.budgets.GetByUserID(userID)
	if err != nil && !errors.Is(err, repository.ErrBudgetNotFound) {
		return report.Summary{}, nil, err
	}

	names := models.DefaultCategoryNames()
	return report.Summarize(expenses, budget, names), names, nil
}

// ListForExport retrieves the user's full expense list ordered by date
// descending, the order both exports use
func (s *ReportService) ListForExport(userID uint) ([]models.Expense, error) {
	return s.expenses.ListByUser(userID, repository.ListFilter{})
}

// WriteCSV streams the user's expenses to w in the delimited export
// format
func (s *ReportService) WriteCSV(userID uint, w io.Writer) error {
	expenses, err := s.ListForExport(userID)
	if err != nil {
		return err
	}

	middleware.LogInfo("CSV export requested by user %d", userID)
	return export.WriteCSV(w, expenses)
}

// RenderPDF produces the PDF report and its timestamped filename
func (s *ReportService) RenderPDF(userID uint) ([]byte, string, error) {
	expenses, err := s.ListForExport(userID)
	if err != nil {
		return nil, "", err
	}

	summary, names, err := s.Summary(userID)
	if err != nil {
		return nil, "", err
	}

	now := time.Now()
	content, err := export.RenderPDF(expenses, summary, names, now)
	if err != nil {
		return nil, "", err
	}

	middleware.LogInfo("PDF export completed successfully for user %d", userID)
	return content, export.PDFFilename(now), nil
}
