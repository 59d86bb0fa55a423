package handler

import (
	"errors"

	"github.com/expense-tracker/internal/middleware"
	"github.com/expense-tracker/internal/repository"
	"github.com/expense-tracker/internal/service"
	"github.com/expense-tracker/pkg/response"
	"github.com/gin-gonic/gin"
)

// handleServiceError maps service and repository errors to the curated
// API responses. Anything unrecognized is logged server-side and surfaced
// as a generic failure.
func handleServiceError(c *gin.Context, err error) {
	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		response.BadRequest(c, validationErr.Message)
		return
	}

	var inUseErr *service.CategoryInUseError
	if errors.As(err, &inUseErr) {
		response.BadRequest(c, inUseErr.Error())
		return
	}

	switch {
	case errors.Is(err, service.ErrUsernameTaken):
		response.Conflict(c, "Username already exists. Please choose a different username.")
	case errors.Is(err, service.ErrEmailTaken):
		response.Conflict(c, "Email already exists. Please use a different email address.")
	case errors.Is(err, service.ErrDuplicateUser):
		response.Conflict(c, "Username or Email already exists.")
	case errors.Is(err, repository.ErrCategoryExists):
		response.Conflict(c, "Category already exists.")
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Unauthorized(c, "Invalid credentials. Try again.")
	case errors.Is(err, service.ErrWrongPassword):
		response.Unauthorized(c, "Current password is incorrect.")
	case errors.Is(err, repository.ErrUserNotFound),
		errors.Is(err, repository.ErrExpenseNotFound),
		errors.Is(err, repository.ErrCategoryNotFound):
		response.NotFound(c, err.Error())
	default:
		middleware.LogError("unexpected error: %v", err)
		response.InternalError(c, "An unexpected error occurred. Please try again.")
	}
}
