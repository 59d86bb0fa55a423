package handler

import (
	"github.com/expense-tracker/internal/middleware"
	"github.com/expense-tracker/internal/service"
	"github.com/expense-tracker/pkg/response"
	"github.com/gin-gonic/gin"
)

// BudgetHandler handles budget requests
type BudgetHandler struct {
	budgetService *service.BudgetService
}

// NewBudgetHandler creates a new BudgetHandler
func NewBudgetHandler(budgetService *service.BudgetService) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService}
}

// Get returns the budget measured against the current month's spend
// GET /api/v1/budget
func (h *BudgetHandler) Get(c *gin.Context) {
	view, err := h.budgetService.Get(middleware.GetUserID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, view)
}

// Set stores the budget amount (create-or-update)
// POST /api/v1/budget
func (h *BudgetHandler) Set(c *gin.Context) {
	var req struct {
		Budget string `json:"budget"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	view, err := h.budgetService.Set(middleware.GetUserID(c), req.Budget)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, view)
}

// RegisterRoutes registers budget routes
func (h *BudgetHandler) RegisterRoutes(rg *gin.RouterGroup, userOnly gin.HandlerFunc) {
	budget := rg.Group("/budget", userOnly)
	{
		budget.GET("", h.Get)
		budget.POST("", h.Set)
	}
}
