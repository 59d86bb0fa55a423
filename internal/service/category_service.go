package service

import (
	"strings"
	"unicode/utf8"

	"github.com/expense-tracker/internal/middleware"
	"github.com/expense-tracker/internal/models"
	"github.com/expense-tracker/internal/repository"
)

const (
	defaultCategoryColor = "#3b82f6"
	defaultCategoryIcon  = "📁"
)

// CategoryService handles user-defined category management
type CategoryService struct {
	categories CategoryStore
	expenses   ExpenseStore
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categories CategoryStore, expenses ExpenseStore) *CategoryService {
	return &CategoryService{
		categories: categories,
		expenses:   expenses,
	}
}

// CategoryRequest represents the create category payload
type CategoryRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

// Create adds a new category for the user
func (s *CategoryService) Create(userID uint, req *CategoryRequest) (*models.Category, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, validationErr("Category name is required.")
	}
	if utf8.RuneCountInString(name) > 50 {
		return nil, validationErr("Category name is too long (maximum 50 characters).")
	}

	exists, err := s.categories.ExistsByUserAndName(userID, name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, repository.ErrCategoryExists
	}

	color := req.Color
	if color == "" {
		color = defaultCategoryColor
	}
	icon := req.Icon
	if icon == "" {
		icon = defaultCategoryIcon
	}

	category := &models.Category{
		UserID: userID,
		Name:   name,
		Color:  color,
		Icon:   icon,
	}
	if err := s.categories.Create(category); err != nil {
		return nil, err
	}

	middleware.LogInfo("Category '%s' created by user %d", name, userID)
	return category, nil
}

// List retrieves the user's categories ordered by name
func (s *CategoryService) List(userID uint) ([]models.Category, error) {
	return s.categories.ListByUser(userID)
}

// Delete removes a category unless the user still has expenses referencing
// its name
func (s *CategoryService) Delete(userID, id uint) error {
	category, err := s.categories.GetByIDAndUserID(id, userID)
	if err != nil {
		return err
	}

	count, err := s.expenses.CountByUserAndCategory(userID, category.Name)
	if err != nil {
		return err
	}
	if count > 0 {
		return &CategoryInUseError{Name: category.Name, Count: count}
	}

	if err := s.categories.Delete(id, userID); err != nil {
		return err
	}

	middleware.LogInfo("Category '%s' deleted by user %d", category.Name, userID)
	return nil
}
