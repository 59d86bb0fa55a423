package handler

import (
	"github.com/expense-tracker/internal/guard"
	"github.com/expense-tracker/internal/middleware"
	"github.com/expense-tracker/internal/models"
	"github.com/expense-tracker/internal/service"
	"github.com/expense-tracker/pkg/response"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles registration, login/logout and profile requests
type AuthHandler struct {
	authService      *service.AuthService
	sessionTTLSecond int
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *service.AuthService, sessionTTLSeconds int) *AuthHandler {
	return &AuthHandler{
		authService:      authService,
		sessionTTLSecond: sessionTTLSeconds,
	}
}

// Register handles user registration
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req service.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, err := h.authService.Register(&req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Created(c, gin.H{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
	})
}

// Login handles user login
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req service.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	token, user, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.SetCookie(middleware.SessionCookie, token, h.sessionTTLSecond, "/", "", false, true)

	redirect := guard.TargetDashboard
	if user.Role == models.RoleAdmin {
		redirect = guard.TargetAdminDashboard
	}
	response.Success(c, gin.H{
		"id":       user.ID,
		"username": user.Username,
		"role":     user.Role,
		"redirect": redirect,
	})
}

// Logout handles logout
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	token := middleware.GetSessionToken(c)
	if err := h.authService.Logout(c.Request.Context(), token); err != nil {
		handleServiceError(c, err)
		return
	}

	middleware.LogInfo("User logged out: %s", middleware.GetUsername(c))
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	response.Success(c, gin.H{"message": "Logged out successfully"})
}

// Profile returns the caller's account
// GET /api/v1/profile
func (h *AuthHandler) Profile(c *gin.Context) {
	user, err := h.authService.GetUserByID(middleware.GetUserID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, user)
}

// UpdateProfile changes the caller's username and email
// PUT /api/v1/profile
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req service.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, err := h.authService.UpdateProfile(c.Request.Context(),
		middleware.GetUserID(c), middleware.GetSessionToken(c), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, user)
}

// ChangePassword replaces the caller's password and ends the session
// POST /api/v1/profile/change-password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req service.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	err := h.authService.ChangePassword(c.Request.Context(),
		middleware.GetUserID(c), middleware.GetSessionToken(c), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	response.Success(c, gin.H{"message": "Password changed successfully! Please login again."})
}

// DeleteAccount permanently removes the caller's account and data
// POST /api/v1/profile/delete-account
func (h *AuthHandler) DeleteAccount(c *gin.Context) {
	var req service.DeleteAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	err := h.authService.DeleteAccount(c.Request.Context(),
		middleware.GetUserID(c), middleware.GetSessionToken(c), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	response.Success(c, gin.H{"message": "Your account has been permanently deleted."})
}

// RegisterRoutes registers auth and profile routes
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup, loginRequired gin.HandlerFunc) {
	auth := rg.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/logout", loginRequired, h.Logout)
	}

	profile := rg.Group("/profile", loginRequired)
	{
		profile.GET("", h.Profile)
		profile.PUT("", h.UpdateProfile)
		profile.POST("/change-password", h.ChangePassword)
		profile.POST("/delete-account", h.DeleteAccount)
	}
}
