package handler

import (
	"strconv"

	"github.com/expense-tracker/internal/middleware"
	"github.com/expense-tracker/internal/repository"
	"github.com/expense-tracker/internal/service"
	"github.com/expense-tracker/pkg/response"
	"github.com/gin-gonic/gin"
)

const adminUserPageSize = 20

// AdminHandler handles the admin area requests
type AdminHandler struct {
	adminService *service.AdminService
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(adminService *service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// Dashboard returns system-wide statistics and the caller's recent actions
// GET /api/v1/admin/dashboard
func (h *AdminHandler) Dashboard(c *gin.Context) {
	stats, err := h.adminService.Dashboard(middleware.GetUserID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, stats)
}

// ListUsers retrieves users with search, role and status filters
// GET /api/v1/admin/users?page=1&search=alice&role=user&status=active
func (h *AdminHandler) ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	query := repository.UserListQuery{
		Search:   c.Query("search"),
		Role:     c.DefaultQuery("role", "all"),
		Status:   c.DefaultQuery("status", "all"),
		Page:     page,
		PageSize: adminUserPageSize,
	}

	users, total, err := h.adminService.ListUsers(query)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SuccessPaginated(c, users, total, query.Page, query.PageSize)
}

// GetUser returns detailed statistics for one user
// GET /api/v1/admin/users/:id
func (h *AdminHandler) GetUser(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}

	detail, err := h.adminService.GetUserDetail(id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, detail)
}

// DeleteUser removes a user and all their data
// DELETE /api/v1/admin/users/:id
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}

	err = h.adminService.DeleteUser(middleware.GetUserID(c), id, c.ClientIP())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"message": "User and all their data have been permanently deleted."})
}

// RegisterRoutes registers admin routes
func (h *AdminHandler) RegisterRoutes(rg *gin.RouterGroup, adminRequired gin.HandlerFunc) {
	admin := rg.Group("/admin", adminRequired)
	{
		admin.GET("/dashboard", h.Dashboard)
		admin.GET("/users", h.ListUsers)
		admin.GET("/users/:id", h.GetUser)
		admin.DELETE("/users/:id", h.DeleteUser)
	}
}
