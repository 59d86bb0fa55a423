package handler

import (
	"github.com/expense-tracker/internal/middleware"
	"github.com/expense-tracker/internal/service"
	"github.com/expense-tracker/pkg/response"
	"github.com/gin-gonic/gin"
)

// CategoryHandler handles category management requests
type CategoryHandler struct {
	categoryService *service.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// Create adds a new category
// POST /api/v1/categories
func (h *CategoryHandler) Create(c *gin.Context) {
	var req service.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	category, err := h.categoryService.Create(middleware.GetUserID(c), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Created(c, category)
}

// List retrieves the caller's categories ordered by name
// GET /api/v1/categories
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.categoryService.List(middleware.GetUserID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, categories)
}

// Delete removes a category if no expenses reference it
// DELETE /api/v1/categories/:id
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.BadRequest(c, "invalid category id")
		return
	}

	if err := h.categoryService.Delete(middleware.GetUserID(c), id); err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"message": "Category deleted successfully!"})
}

// RegisterRoutes registers category routes
func (h *CategoryHandler) RegisterRoutes(rg *gin.RouterGroup, userOnly gin.HandlerFunc) {
	categories := rg.Group("/categories", userOnly)
	{
		categories.POST("", h.Create)
		categories.GET("", h.List)
		categories.DELETE("/:id", h.Delete)
	}
}
