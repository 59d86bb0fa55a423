package repository

import (
	"errors"

	"github.com/expense-tracker/internal/models"
	"gorm.io/gorm"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryExists   = errors.New("category already exists")
)

// CategoryRepository handles category data access
type CategoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// Create creates a new category
func (r *CategoryRepository) Create(category *models.Category) error {
	err := r.db.Create(category).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrCategoryExists
	}
	return err
}

// GetByIDAndUserID retrieves a category by ID scoped to its owner
func (r *CategoryRepository) GetByIDAndUserID(id, userID uint) (*models.Category, error) {
	var category models.Category
	result := r.db.Where("id = ? AND user_id = ?", id, userID).First(&category)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, result.Error
	}
	return &category, nil
}

// ListByUser retrieves a user's categories ordered by name
func (r *CategoryRepository) ListByUser(userID uint) ([]models.Category, error) {
	var categories []models.Category
	result := r.db.Where("user_id = ?", userID).Order("name").Find(&categories)
	return categories, result.Error
}

// NamesByUser retrieves the names of a user's categories ordered by name
func (r *CategoryRepository) NamesByUser(userID uint) ([]string, error) {
	var names []string
	err := r.db.Model(&models.Category{}).
		Where("user_id = ?", userID).
		Order("name").
		Pluck("name", &names).Error
	return names, err
}

// ExistsByUserAndName checks if a user already has a category with the
// given name
func (r *CategoryRepository) ExistsByUserAndName(userID uint, name string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Category{}).
		Where("user_id = ? AND name = ?", userID, name).
		Count(&count).Error
	return count > 0, err
}

// Delete removes a category scoped to its owner
func (r *CategoryRepository) Delete(id, userID uint) error {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Category{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

// CountByUserID counts a user's categories
func (r *CategoryRepository) CountByUserID(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Category{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
