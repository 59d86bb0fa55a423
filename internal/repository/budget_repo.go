package repository

import (
	"errors"

	"github.com/expense-tracker/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrBudgetNotFound = errors.New("budget not found")
)

// BudgetRepository handles budget data access
type BudgetRepository struct {
	db *gorm.DB
}

// NewBudgetRepository creates a new BudgetRepository
func NewBudgetRepository(db *gorm.DB) *BudgetRepository {
	return &BudgetRepository{db: db}
}

// GetByUserID retrieves the user's budget
func (r *BudgetRepository) GetByUserID(userID uint) (*models.Budget, error) {
	var budget models.Budget
	result := r.db.Where("user_id = ?", userID).First(&budget)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrBudgetNotFound
		}
		return nil, result.Error
	}
	return &budget, nil
}

// Set creates the user's budget row or updates the amount if one exists.
// The unique index on user_id makes concurrent first-time sets converge on
// a single row.
func (r *BudgetRepository) Set(userID uint, amount decimal.Decimal) error {
	budget := models.Budget{
		UserID: userID,
		Amount: amount,
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"amount", "updated_at"}),
	}).Create(&budget).Error
}

// CountByUserID counts budget rows for a user
func (r *BudgetRepository) CountByUserID(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Budget{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
