package handler

import (
	"strconv"

	"github.com/expense-tracker/internal/middleware"
	"github.com/expense-tracker/internal/repository"
	"github.com/expense-tracker/internal/service"
	"github.com/expense-tracker/pkg/response"
	"github.com/gin-gonic/gin"
)

// ExpenseHandler handles expense CRUD requests
type ExpenseHandler struct {
	expenseService *service.ExpenseService
	reportService  *service.ReportService
}

// NewExpenseHandler creates a new ExpenseHandler
func NewExpenseHandler(expenseService *service.ExpenseService, reportService *service.ReportService) *ExpenseHandler {
	return &ExpenseHandler{
		expenseService: expenseService,
		reportService:  reportService,
	}
}

// Create records a new expense
// POST /api/v1/expenses
func (h *ExpenseHandler) Create(c *gin.Context) {
	var req service.ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	expense, err := h.expenseService.Create(middleware.GetUserID(c), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Created(c, expense)
}

// List retrieves expenses with the optional category filter and search
// term, plus the per-category totals over all of the user's expenses
// GET /api/v1/expenses?category=Food&search=coffee
func (h *ExpenseHandler) List(c *gin.Context) {
	userID := middleware.GetUserID(c)

	filter := repository.ListFilter{
		Category: c.DefaultQuery("category", "All"),
		Search:   c.Query("search"),
	}

	expenses, err := h.expenseService.List(userID, filter)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	summary, _, err := h.reportService.Summary(userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, gin.H{
		"expenses":          expenses,
		"selected_category": filter.Category,
		"search_term":       filter.Search,
		"by_category":       summary.ByCategory,
	})
}

// Get retrieves one expense
// GET /api/v1/expenses/:id
func (h *ExpenseHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.BadRequest(c, "invalid expense id")
		return
	}

	expense, err := h.expenseService.Get(middleware.GetUserID(c), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, expense)
}

// Update rewrites an expense
// PUT /api/v1/expenses/:id
func (h *ExpenseHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.BadRequest(c, "invalid expense id")
		return
	}

	var req service.ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	expense, err := h.expenseService.Update(middleware.GetUserID(c), id, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, expense)
}

// Delete removes an expense
// DELETE /api/v1/expenses/:id
func (h *ExpenseHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.BadRequest(c, "invalid expense id")
		return
	}

	if err := h.expenseService.Delete(middleware.GetUserID(c), id); err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"message": "Expense deleted successfully!"})
}

// RegisterRoutes registers expense routes
func (h *ExpenseHandler) RegisterRoutes(rg *gin.RouterGroup, userOnly gin.HandlerFunc) {
	expenses := rg.Group("/expenses", userOnly)
	{
		expenses.POST("", h.Create)
		expenses.GET("", h.List)
		expenses.GET("/:id", h.Get)
		expenses.PUT("/:id", h.Update)
		expenses.DELETE("/:id", h.Delete)
	}
}

func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	return uint(id), err
}
