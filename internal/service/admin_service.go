package service

import (
	"fmt"
	"time"

	"github.com/expense-tracker/internal/middleware"
	"github.com/expense-tracker/internal/models"
	"github.com/expense-tracker/internal/repository"
	"github.com/shopspring/decimal"
)

// AdminService handles system-wide statistics and user administration.
// Every mutation appends an AdminLog row.
type AdminService struct {
	users      UserStore
	expenses   ExpenseStore
	categories CategoryStore
	budgets    BudgetStore
	adminLogs  AdminLogStore
}

// NewAdminService creates a new AdminService
func NewAdminService(
	users UserStore,
	expenses ExpenseStore,
	categories CategoryStore,
	budgets BudgetStore,
	adminLogs AdminLogStore,
) *AdminService {
	return &AdminService{
		users:      users,
		expenses:   expenses,
		categories: categories,
		budgets:    budgets,
		adminLogs:  adminLogs,
	}
}

// DashboardStats is the admin dashboard data
type DashboardStats struct {
	TotalUsers        int64                     `json:"total_users"`
	ActiveUsers       int64                     `json:"active_users"`
	TotalExpenses     decimal.Decimal           `json:"total_expenses"`
	TotalExpenseCount int64                     `json:"total_expense_count"`
	RecentUsers       int64                     `json:"recent_users"`
	RecentExpenses    decimal.Decimal           `json:"recent_expenses"`
	TopUsers          []repository.UserSpend    `json:"top_users"`
	CategoryStats     []repository.CategoryStat `json:"category_stats"`
	RecentActions     []models.AdminLog         `json:"recent_actions"`
}

// Dashboard collects the system-wide statistics plus the calling admin's
// latest audit entries
func (s *AdminService) Dashboard(adminID uint) (*DashboardStats, error) {
	totalUsers, err := s.users.CountAll()
	if err != nil {
		return nil, err
	}
	activeUsers, err := s.users.CountActive()
	if err != nil {
		return nil, err
	}
	totalExpenses, err := s.expenses.SumAll()
	if err != nil {
		return nil, err
	}
	totalExpenseCount, err := s.expenses.CountAll()
	if err != nil {
		return nil, err
	}

	weekAgo := time.Now().AddDate(0, 0, -7)
	recentUsers, err := s.users.CountCreatedSince(weekAgo)
	if err != nil {
		return nil, err
	}
	recentExpenses, err := s.expenses.SumCreatedSince(weekAgo)
	if err != nil {
		return nil, err
	}

	topUsers, err := s.users.TopSpenders(5)
	if err != nil {
		return nil, err
	}
	categoryStats, err := s.expenses.CategoryStats(0)
	if err != nil {
		return nil, err
	}
	recentActions, err := s.adminLogs.RecentByAdmin(adminID, 10)
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		TotalUsers:        totalUsers,
		ActiveUsers:       activeUsers,
		TotalExpenses:     totalExpenses,
		TotalExpenseCount: totalExpenseCount,
		RecentUsers:       recentUsers,
		RecentExpenses:    recentExpenses,
		TopUsers:          topUsers,
		CategoryStats:     categoryStats,
		RecentActions:     recentActions,
	}, nil
}

// ListUsers retrieves users with admin filtering and pagination
func (s *AdminService) ListUsers(q repository.UserListQuery) ([]models.User, int64, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = 20
	}
	return s.users.List(q)
}

// UserDetail is the admin view of one user
type UserDetail struct {
	User           *models.User              `json:"user"`
	TotalSpent     decimal.Decimal           `json:"total_spent"`
	ExpenseCount   int64                     `json:"expense_count"`
	RecentExpenses []models.Expense          `json:"recent_expenses"`
	CategoryStats  []repository.CategoryStat `json:"category_stats"`
}

// GetUserDetail collects per-user statistics for the admin view
func (s *AdminService) GetUserDetail(userID uint) (*UserDetail, error) {
	user, err := s.users.GetByID(userID)
	if err != nil {
		return nil, err
	}

	expenses, err := s.expenses.ListByUser(userID, repository.ListFilter{})
	if err != nil {
		return nil, err
	}
	totalSpent := decimal.Zero
	for _, e := range expenses {
		totalSpent = totalSpent.Add(e.Amount)
	}

	recent, err := s.expenses.RecentByUser(userID, 10)
	if err != nil {
		return nil, err
	}
	categoryStats, err := s.expenses.CategoryStats(userID)
	if err != nil {
		return nil, err
	}

	return &UserDetail{
		User:           user,
		TotalSpent:     totalSpent,
		ExpenseCount:   int64(len(expenses)),
		RecentExpenses: recent,
		CategoryStats:  categoryStats,
	}, nil
}

// DeleteUser removes a user with all their data, including admin log rows
// naming them, and records the action in the audit log
func (s *AdminService) DeleteUser(adminID, targetID uint, callerIP string) error {
	user, err := s.users.GetByID(targetID)
	if err != nil {
		return err
	}

	expenseCount, err := s.expenses.CountByUserID(targetID)
	if err != nil {
		return err
	}
	categoryCount, err := s.categories.CountByUserID(targetID)
	if err != nil {
		return err
	}
	budgetCount, err := s.budgets.CountByUserID(targetID)
	if err != nil {
		return err
	}

	if err := s.users.DeleteWithOwnedData(targetID, true); err != nil {
		return err
	}

	s.logAction(adminID, "User deleted", nil,
		fmt.Sprintf("Deleted user %s (%s) with %d expenses, %d categories, %d budgets",
			user.Username, user.Email, expenseCount, categoryCount, budgetCount),
		callerIP)

	middleware.LogInfo("User %s deleted by admin %d", user.Username, adminID)
	return nil
}

// logAction appends an audit row; audit failures are logged, never
// propagated into the admin flow
func (s *AdminService) logAction(adminID uint, action string, targetUserID *uint, details, callerIP string) {
	entry := &models.AdminLog{
		AdminID:      adminID,
		Action:       action,
		TargetUserID: targetUserID,
		Details:      details,
		IPAddress:    callerIP,
	}
	if err := s.adminLogs.Create(entry); err != nil {
		middleware.LogError("failed to record admin action %q: %v", action, err)
	}
}
