package service

import (
	"context"
	"time"

	"github.com/expense-tracker/internal/models"
	"github.com/expense-tracker/internal/repository"
	"github.com/expense-tracker/internal/session"
	"github.com/shopspring/decimal"
)

// The store interfaces describe what the services need from the
// persistence and session layers. The gorm repositories satisfy them in
// production; tests substitute in-memory fakes.

// UserStore is the user persistence contract
type UserStore interface {
	Create(user *models.User, categories []models.Category) error
	GetByID(id uint) (*models.User, error)
	GetActiveByEmail(email string) (*models.User, error)
	ExistsByUsername(username string, excludeID uint) (bool, error)
	ExistsByEmail(email string, excludeID uint) (bool, error)
	Update(user *models.User) error
	UpdateLastLogin(id uint, at time.Time) error
	List(q repository.UserListQuery) ([]models.User, int64, error)
	CountAll() (int64, error)
	CountActive() (int64, error)
	CountCreatedSince(since time.Time) (int64, error)
	TopSpenders(limit int) ([]repository.UserSpend, error)
	DeleteWithOwnedData(userID uint, purgeAdminLogs bool) error
}

// ExpenseStore is the expense persistence contract
type ExpenseStore interface {
	Create(expense *models.Expense) error
	GetByIDAndUserID(id, userID uint) (*models.Expense, error)
	Update(expense *models.Expense) error
	Delete(id, userID uint) error
	ListByUser(userID uint, filter repository.ListFilter) ([]models.Expense, error)
	ListByUserFromDate(userID uint, from time.Time) ([]models.Expense, error)
	RecentByUser(userID uint, limit int) ([]models.Expense, error)
	CountByUserID(userID uint) (int64, error)
	CountByUserAndCategory(userID uint, category string) (int64, error)
	CountAll() (int64, error)
	SumAll() (decimal.Decimal, error)
	SumCreatedSince(since time.Time) (decimal.Decimal, error)
	CategoryStats(userID uint) ([]repository.CategoryStat, error)
}

// BudgetStore is the budget persistence contract
type BudgetStore interface {
	GetByUserID(userID uint) (*models.Budget, error)
	Set(userID uint, amount decimal.Decimal) error
	CountByUserID(userID uint) (int64, error)
}

// CategoryStore is the category persistence contract
type CategoryStore interface {
	Create(category *models.Category) error
	GetByIDAndUserID(id, userID uint) (*models.Category, error)
	ListByUser(userID uint) ([]models.Category, error)
	NamesByUser(userID uint) ([]string, error)
	ExistsByUserAndName(userID uint, name string) (bool, error)
	Delete(id, userID uint) error
	CountByUserID(userID uint) (int64, error)
}

// AdminLogStore is the audit log contract
type AdminLogStore interface {
	Create(entry *models.AdminLog) error
	RecentByAdmin(adminID uint, limit int) ([]models.AdminLog, error)
}

// SessionManager is the slice of the session store the services need
type SessionManager interface {
	Create(ctx context.Context, data session.Data) (string, error)
	Update(ctx context.Context, token string, data session.Data) error
	Delete(ctx context.Context, token string) error
}
