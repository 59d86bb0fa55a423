package export_test

import (
	"strings"
	"testing"
	"time"

	"github.com/expense-tracker/internal/export"
	"github.com/expense-tracker/internal/models"
	"github.com/expense-tracker/internal/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPDFFilename(t *testing.T) {
	now := time.Date(2026, time.March, 10, 14, 5, 9, 0, time.UTC)
	assert.Equal(t, "expense_report_20260310_140509.pdf", export.PDFFilename(now))
}

func TestTruncateDescription(t *testing.T) {
	short := "short description"
	assert.Equal(t, short, export.TruncateDescription(short))

	long := strings.Repeat("a", 60)
	got := export.TruncateDescription(long)
	assert.Equal(t, strings.Repeat("a", 50)+"...", got)

	// Exactly at the limit is left alone
	exact := strings.Repeat("b", 50)
	assert.Equal(t, exact, export.TruncateDescription(exact))

	// Multibyte input is cut on rune boundaries
	wide := strings.Repeat("ä", 60)
	assert.Equal(t, strings.Repeat("ä", 50)+"...", export.TruncateDescription(wide))
}

func TestRenderPDFProducesDocument(t *testing.T) {
	expenses := []models.Expense{sampleExpense()}
	summary := report.Summarize(expenses, nil, []string{"Food"})

	content, err := export.RenderPDF(expenses, summary, []string{"Food"}, time.Now())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(content), "%PDF"), "output must be a PDF document")
}

func TestRenderPDFEmpty(t *testing.T) {
	summary := report.Summarize(nil, nil, nil)

	content, err := export.RenderPDF(nil, summary, nil, time.Now())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(content), "%PDF"))
}
