package service

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/expense-tracker/internal/middleware"
	"github.com/expense-tracker/internal/models"
	"github.com/expense-tracker/internal/repository"
	"github.com/expense-tracker/internal/validate"
	"github.com/shopspring/decimal"
)

// ExpenseService handles expense CRUD operations
type ExpenseService struct {
	expenses   ExpenseStore
	categories CategoryStore
}

// NewExpenseService creates a new ExpenseService
func NewExpenseService(expenses ExpenseStore, categories CategoryStore) *ExpenseService {
	return &ExpenseService{
		expenses:   expenses,
		categories: categories,
	}
}

// ExpenseRequest represents the create/update expense payload
type ExpenseRequest struct {
	Title         string `json:"title"`
	Amount        string `json:"amount"`
	Date          string `json:"date"`
	Category      string `json:"category"`
	PaymentMethod string `json:"payment_method"`
	Description   string `json:"description"`
}

type expenseInput struct {
	title         string
	amount        decimal.Decimal
	date          time.Time
	category      string
	paymentMethod models.PaymentMethod
	description   string
}

// validateExpense runs the full input validation for create and update,
// including the category-ownership check
func (s *ExpenseService) validateExpense(userID uint, req *ExpenseRequest) (*expenseInput, error) {
	title := strings.TrimSpace(req.Title)
	description := strings.TrimSpace(req.Description)

	if title == "" || req.Amount == "" || req.Date == "" || req.Category == "" || req.PaymentMethod == "" {
		return nil, validationErr("All required fields must be filled.")
	}
	if utf8.RuneCountInString(title) > 200 {
		return nil, validationErr("Title is too long (maximum 200 characters).")
	}
	if utf8.RuneCountInString(description) > 500 {
		return nil, validationErr("Description is too long (maximum 500 characters).")
	}

	ok, amount, message := validate.Amount(req.Amount)
	if !ok {
		return nil, validationErr(message)
	}

	ok, date, message := validate.Date(req.Date)
	if !ok {
		return nil, validationErr(message)
	}

	names, err := s.categories.NamesByUser(userID)
	if err != nil {
		return nil, err
	}
	known := false
	for _, name := range names {
		if name == req.Category {
			known = true
			break
		}
	}
	if !known {
		return nil, validationErr("Invalid category selected.")
	}

	method := models.PaymentMethod(req.PaymentMethod)
	if !method.IsValid() {
		return nil, validationErr("Invalid payment method selected.")
	}

	return &expenseInput{
		title:         title,
		amount:        amount,
		date:          date,
		category:      req.Category,
		paymentMethod: method,
		description:   description,
	}, nil
}

// Create records a new expense for the user
func (s *ExpenseService) Create(userID uint, req *ExpenseRequest) (*models.Expense, error) {
	input, err := s.validateExpense(userID, req)
	if err != nil {
		return nil, err
	}

	expense := &models.Expense{
		UserID:        userID,
		Title:         input.title,
		Amount:        input.amount,
		Date:          input.date,
		Category:      input.category,
		PaymentMethod: input.paymentMethod,
		Description:   input.description,
	}
	if err := s.expenses.Create(expense); err != nil {
		return nil, err
	}

	middleware.LogInfo("Expense added by user %d: %s - %s", userID, expense.Title, expense.Amount)
	return expense, nil
}

// List retrieves the user's expenses with the optional category filter and
// case-insensitive search, ordered by date descending
func (s *ExpenseService) List(userID uint, filter repository.ListFilter) ([]models.Expense, error) {
	return s.expenses.ListByUser(userID, filter)
}

// Get retrieves one expense scoped to its owner
func (s *ExpenseService) Get(userID, id uint) (*models.Expense, error) {
	return s.expenses.GetByIDAndUserID(id, userID)
}

// Update re-validates and rewrites an existing expense
func (s *ExpenseService) Update(userID, id uint, req *ExpenseRequest) (*models.Expense, error) {
	expense, err := s.expenses.GetByIDAndUserID(id, userID)
	if err != nil {
		return nil, err
	}

	input, err := s.validateExpense(userID, req)
	if err != nil {
		return nil, err
	}

	expense.Title = input.title
	expense.Amount = input.amount
	expense.Date = input.date
	expense.Category = input.category
	expense.PaymentMethod = input.paymentMethod
	expense.Description = input.description

	if err := s.expenses.Update(expense); err != nil {
		return nil, err
	}

	middleware.LogInfo("Expense updated by user %d: %s - %s", userID, expense.Title, expense.Amount)
	return expense, nil
}

// Delete removes an expense scoped to its owner
func (s *ExpenseService) Delete(userID, id uint) error {
	expense, err := s.expenses.GetByIDAndUserID(id, userID)
	if err != nil {
		return err
	}
	if err := s.expenses.Delete(id, userID); err != nil {
		return err
	}

	middleware.LogInfo("Expense deleted by user %d: %s - %s", userID, expense.Title, expense.Amount)
	return nil
}
