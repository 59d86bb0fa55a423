package repository

import (
	"errors"
	"time"

	"github.com/expense-tracker/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrExpenseNotFound = errors.New("expense not found")
)

// ExpenseRepository handles expense data access
type ExpenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository creates a new ExpenseRepository
func NewExpenseRepository(db *gorm.DB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

// Create creates a new expense
func (r *ExpenseRepository) Create(expense *models.Expense) error {
	return r.db.Create(expense).Error
}

// GetByIDAndUserID retrieves an expense by ID scoped to its owner
func (r *ExpenseRepository) GetByIDAndUserID(id, userID uint) (*models.Expense, error) {
	var expense models.Expense
	result := r.db.Where("id = ? AND user_id = ?", id, userID).First(&expense)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrExpenseNotFound
		}
		return nil, result.Error
	}
	return &expense, nil
}

// Update saves expense changes
func (r *ExpenseRepository) Update(expense *models.Expense) error {
	return r.db.Save(expense).Error
}

// Delete removes an expense scoped to its owner
func (r *ExpenseRepository) Delete(id, userID uint) error {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Expense{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrExpenseNotFound
	}
	return nil
}

// ListFilter is the expense listing filter. Category "All" or empty means
// no category restriction; Search is a case-insensitive substring match
// over title, description and category.
type ListFilter struct {
	Category string
	Search   string
}

// ListByUser retrieves a user's expenses with optional filtering, ordered
// by expense date descending
func (r *ExpenseRepository) ListByUser(userID uint, filter ListFilter) ([]models.Expense, error) {
	query := r.db.Where("user_id = ?", userID)

	if filter.Category != "" && filter.Category != "All" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ? OR category ILIKE ?",
			pattern, pattern, pattern)
	}

	var expenses []models.Expense
	result := query.Order("date DESC").Find(&expenses)
	return expenses, result.Error
}

// ListByUserFromDate retrieves a user's expenses with date >= from
func (r *ExpenseRepository) ListByUserFromDate(userID uint, from time.Time) ([]models.Expense, error) {
	var expenses []models.Expense
	result := r.db.Where("user_id = ? AND date >= ?", userID, from).
		Order("date DESC").
		Find(&expenses)
	return expenses, result.Error
}

// RecentByUser retrieves the most recently recorded expenses for a user
func (r *ExpenseRepository) RecentByUser(userID uint, limit int) ([]models.Expense, error) {
	var expenses []models.Expense
	result := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&expenses)
	return expenses, result.Error
}

// CountByUserID counts a user's expenses
func (r *ExpenseRepository) CountByUserID(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Expense{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// CountByUserAndCategory counts a user's expenses referencing a category
// name
func (r *ExpenseRepository) CountByUserAndCategory(userID uint, category string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Expense{}).
		Where("user_id = ? AND category = ?", userID, category).
		Count(&count).Error
	return count, err
}

// CountAll counts all expenses across users
func (r *ExpenseRepository) CountAll() (int64, error) {
	var count int64
	err := r.db.Model(&models.Expense{}).Count(&count).Error
	return count, err
}

// SumAll totals all expense amounts across users
func (r *ExpenseRepository) SumAll() (decimal.Decimal, error) {
	var total struct {
		Sum decimal.Decimal
	}
	err := r.db.Model(&models.Expense{}).
		Select("COALESCE(SUM(amount), 0) as sum").
		Scan(&total).Error
	return total.Sum, err
}

// SumCreatedSince totals expense amounts recorded after the given time
func (r *ExpenseRepository) SumCreatedSince(since time.Time) (decimal.Decimal, error) {
	var total struct {
		Sum decimal.Decimal
	}
	err := r.db.Model(&models.Expense{}).
		Select("COALESCE(SUM(amount), 0) as sum").
		Where("created_at >= ?", since).
		Scan(&total).Error
	return total.Sum, err
}

// CategoryStat is one group-by row of the category statistics
type CategoryStat struct {
	Category string          `json:"category"`
	Count    int64           `json:"count"`
	Total    decimal.Decimal `json:"total"`
}

// CategoryStats groups expense count and total per category, ordered by
// total descending. userID 0 aggregates across all users.
func (r *ExpenseRepository) CategoryStats(userID uint) ([]CategoryStat, error) {
	query := r.db.Model(&models.Expense{}).
		Select("category, COUNT(id) as count, SUM(amount) as total").
		Group("category").
		Order("SUM(amount) DESC")
	if userID != 0 {
		query = query.Where("user_id = ?", userID)
	}

	var rows []CategoryStat
	err := query.Scan(&rows).Error
	return rows, err
}
