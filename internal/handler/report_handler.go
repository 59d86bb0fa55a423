package handler

import (
	"fmt"
	"net/http"

	"github.com/expense-tracker/internal/export"
	"github.com/expense-tracker/internal/middleware"
	"github.com/expense-tracker/internal/service"
	"github.com/expense-tracker/pkg/response"
	"github.com/gin-gonic/gin"
)

// ReportHandler handles the dashboard, reports and export requests
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Dashboard returns the spending summary for the dashboard view
// GET /api/v1/dashboard
func (h *ReportHandler) Dashboard(c *gin.Context) {
	summary, _, err := h.reportService.Summary(middleware.GetUserID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	alert := "No Alerts"
	if summary.Overspent {
		alert = "Overspending!"
	}
	response.Success(c, gin.H{
		"name":               middleware.GetUsername(c),
		"total_expenses":     summary.Total,
		"budget_amount":      summary.BudgetAmount,
		"remaining":          summary.Remaining,
		"overspending_alert": alert,
		"by_category":        summary.ByCategory,
	})
}

// Reports returns the aggregate report data
// GET /api/v1/reports
func (h *ReportHandler) Reports(c *gin.Context) {
	summary, categories, err := h.reportService.Summary(middleware.GetUserID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, gin.H{
		"total_expenses": summary.Total,
		"budget_amount":  summary.BudgetAmount,
		"remaining":      summary.Remaining,
		"overspent":      summary.Overspent,
		"utilization":    summary.UtilizationPct,
		"by_category":    summary.ByCategory,
		"shares":         summary.Shares(categories),
	})
}

// ExportCSV streams the expense list as a CSV attachment
// GET /api/v1/export/csv
func (h *ReportHandler) ExportCSV(c *gin.Context) {
	c.Header("Content-Type", export.CSVContentType)
	c.Header("Content-Disposition", fmt.Sprintf("attachment;filename=%s", export.CSVFilename))
	c.Status(http.StatusOK)

	if err := h.reportService.WriteCSV(middleware.GetUserID(c), c.Writer); err != nil {
		// Headers are already out; all we can do is log
		middleware.LogError("Error exporting CSV: %v", err)
	}
}

// ExportPDF returns the PDF report as an attachment
// GET /api/v1/export/pdf
func (h *ReportHandler) ExportPDF(c *gin.Context) {
	content, filename, err := h.reportService.RenderPDF(middleware.GetUserID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, export.PDFContentType, content)
}

// RegisterRoutes registers dashboard, report and export routes
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup, userOnly gin.HandlerFunc) {
	rg.GET("/dashboard", userOnly, h.Dashboard)
	rg.GET("/reports", userOnly, h.Reports)

	exports := rg.Group("/export", userOnly)
	{
		exports.GET("/csv", h.ExportCSV)
		exports.GET("/pdf", h.ExportPDF)
	}
}
