package service

import (
	"errors"
	"time"

	"github.com/expense-tracker/internal/middleware"
	"github.com/expense-tracker/internal/repository"
	"github.com/expense-tracker/internal/validate"
	"github.com/shopspring/decimal"
)

// BudgetService handles the monthly budget
type BudgetService struct {
	budgets  BudgetStore
	expenses ExpenseStore
}

// NewBudgetService creates a new BudgetService
func NewBudgetService(budgets BudgetStore, expenses ExpenseStore) *BudgetService {
	return &BudgetService{
		budgets:  budgets,
		expenses: expenses,
	}
}

// BudgetView is the budget page data: the configured amount measured
// against the current calendar month's spend
type BudgetView struct {
	BudgetAmount  decimal.Decimal `json:"budget_amount"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	Remaining     decimal.Decimal `json:"remaining"`
}

// Get returns the user's budget against the current month's expenses
func (s *BudgetService) Get(userID uint) (*BudgetView, error) {
	budgetAmount := decimal.Zero
	budget, err := s.budgets.GetByUserID(userID)
	if err != nil && !errors.Is(err, repository.ErrBudgetNotFound) {
		return nil, err
	}
	if budget != nil {
		budgetAmount = budget.Amount
	}

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local)
	expenses, err := s.expenses.ListByUserFromDate(userID, monthStart)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}

	return &BudgetView{
		BudgetAmount:  budgetAmount,
		TotalExpenses: total,
		Remaining:     budgetAmount.Sub(total),
	}, nil
}

// Set validates and stores the budget amount, creating the row on first
// use and updating it afterwards
func (s *BudgetService) Set(userID uint, amountStr string) (*BudgetView, error) {
	if amountStr == "" {
		return nil, validationErr("Budget amount is required.")
	}
	ok, amount, message := validate.Amount(amountStr)
	if !ok {
		return nil, validationErr(message)
	}

	if err := s.budgets.Set(userID, amount); err != nil {
		return nil, err
	}

	middleware.LogInfo("Budget updated by user %d: %s", userID, amount)
	return s.Get(userID)
}
