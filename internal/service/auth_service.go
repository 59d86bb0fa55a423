package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/expense-tracker/internal/middleware"
	"github.com/expense-tracker/internal/models"
	"github.com/expense-tracker/internal/repository"
	"github.com/expense-tracker/internal/session"
	"github.com/expense-tracker/internal/validate"
	"github.com/expense-tracker/pkg/crypto"
)

// deleteConfirmation is the literal the user must type to delete their
// account
const deleteConfirmation = "DELETE"

// AuthService handles registration, authentication and account lifecycle
type AuthService struct {
	users      UserStore
	expenses   ExpenseStore
	budgets    BudgetStore
	categories CategoryStore
	sessions   SessionManager
}

// NewAuthService creates a new AuthService
func NewAuthService(
	users UserStore,
	expenses ExpenseStore,
	budgets BudgetStore,
	categories CategoryStore,
	sessions SessionManager,
) *AuthService {
	return &AuthService{
		users:      users,
		expenses:   expenses,
		budgets:    budgets,
		categories: categories,
		sessions:   sessions,
	}
}

// RegisterRequest represents the registration request
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates a new account with its starter categories
func (s *AuthService) Register(req *RegisterRequest) (*models.User, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)
	password := req.Password

	if username == "" || email == "" || password == "" {
		return nil, validationErr("All fields are required.")
	}
	if n := utf8.RuneCountInString(username); n < 3 || n > 50 {
		return nil, validationErr("Username must be between 3 and 50 characters.")
	}
	if !validate.Email(email) {
		return nil, validationErr("Please enter a valid email address.")
	}
	if ok, message := validate.Password(password); !ok {
		return nil, validationErr(message)
	}

	taken, err := s.users.ExistsByUsername(username, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrUsernameTaken
	}
	taken, err = s.users.ExistsByEmail(email, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailTaken
	}

	passwordHash, err := crypto.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		IsActive:     true,
		Role:         models.RoleUser,
	}

	categories := make([]models.Category, len(models.DefaultCategories))
	copy(categories, models.DefaultCategories)

	if err := s.users.Create(user, categories); err != nil {
		// Insert race after the exists checks; the store cannot name the
		// colliding field here, so the caller gets the generic conflict.
		if errors.Is(err, repository.ErrDuplicateUser) {
			return nil, ErrDuplicateUser
		}
		return nil, err
	}

	middleware.LogInfo("New user registered: %s (%s)", username, email)
	return user, nil
}

// LoginRequest represents the login request
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates an active account and opens a session
func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (string, *models.User, error) {
	email := strings.TrimSpace(req.Email)

	if email == "" || req.Password == "" {
		return "", nil, validationErr("Email and password are required.")
	}
	if !validate.Email(email) {
		return "", nil, validationErr("Please enter a valid email address.")
	}

	user, err := s.users.GetActiveByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			middleware.LogWarn("Failed login attempt for email: %s", email)
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !crypto.CheckPassword(req.Password, user.PasswordHash) {
		middleware.LogWarn("Failed login attempt for email: %s", email)
		return "", nil, ErrInvalidCredentials
	}

	now := time.Now()
	if err := s.users.UpdateLastLogin(user.ID, now); err != nil {
		return "", nil, err
	}
	user.LastLogin = &now

	token, err := s.sessions.Create(ctx, session.Data{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	})
	if err != nil {
		return "", nil, err
	}

	middleware.LogInfo("User logged in: %s (%s) - Role: %s", user.Username, email, user.Role)
	return token, user, nil
}

// Logout closes the caller's session
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}

// GetUserByID retrieves a user by ID
func (s *AuthService) GetUserByID(id uint) (*models.User, error) {
	return s.users.GetByID(id)
}

// UpdateProfileRequest represents the profile update request
type UpdateProfileRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// UpdateProfile changes the caller's username and email, keeping the
// session payload in sync
func (s *AuthService) UpdateProfile(ctx context.Context, userID uint, token string, req *UpdateProfileRequest) (*models.User, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)

	if username == "" || email == "" {
		return nil, validationErr("All fields are required.")
	}
	if !validate.Email(email) {
		return nil, validationErr("Please enter a valid email address.")
	}

	user, err := s.users.GetByID(userID)
	if err != nil {
		return nil, err
	}

	taken, err := s.users.ExistsByUsername(username, userID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrUsernameTaken
	}
	taken, err = s.users.ExistsByEmail(email, userID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailTaken
	}

	user.Username = username
	user.Email = email
	if err := s.users.Update(user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUser) {
			return nil, ErrDuplicateUser
		}
		return nil, err
	}

	if err := s.sessions.Update(ctx, token, session.Data{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	}); err != nil {
		return nil, err
	}

	middleware.LogInfo("Profile updated by user %d", userID)
	return user, nil
}

// ChangePasswordRequest represents the password change request
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

// ChangePassword replaces the caller's password after verifying the
// current one, then destroys the session so they must log in again
func (s *AuthService) ChangePassword(ctx context.Context, userID uint, token string, req *ChangePasswordRequest) error {
	current := strings.TrimSpace(req.CurrentPassword)
	newPassword := strings.TrimSpace(req.NewPassword)
	confirm := strings.TrimSpace(req.ConfirmPassword)

	if current == "" || newPassword == "" || confirm == "" {
		return validationErr("All fields are required.")
	}

	user, err := s.users.GetByID(userID)
	if err != nil {
		return err
	}

	if !crypto.CheckPassword(current, user.PasswordHash) {
		return ErrWrongPassword
	}
	if ok, message := validate.ChangePassword(newPassword); !ok {
		return validationErr(message)
	}
	if newPassword != confirm {
		return validationErr("New passwords do not match.")
	}

	passwordHash, err := crypto.HashPassword(newPassword)
	if err != nil {
		return err
	}

	user.PasswordHash = passwordHash
	if err := s.users.Update(user); err != nil {
		return err
	}

	if err := s.sessions.Delete(ctx, token); err != nil {
		return err
	}

	middleware.LogInfo("Password changed by user %d - session cleared", userID)
	return nil
}

// DeleteAccountRequest represents the self-service account deletion
// request
type DeleteAccountRequest struct {
	ConfirmText string `json:"confirm_text"`
	Password    string `json:"password"`
}

// DeleteAccount removes the caller's account and all owned data in one
// transaction, then verifies nothing remains. The verification runs after
// the transaction committed; a failure is logged, not rolled back.
func (s *AuthService) DeleteAccount(ctx context.Context, userID uint, token string, req *DeleteAccountRequest) error {
	if strings.TrimSpace(req.ConfirmText) != deleteConfirmation {
		return validationErr("Please type 'DELETE' to confirm account deletion.")
	}
	password := strings.TrimSpace(req.Password)
	if password == "" {
		return validationErr("Please enter your password to confirm account deletion.")
	}

	user, err := s.users.GetByID(userID)
	if err != nil {
		return err
	}
	if !crypto.CheckPassword(password, user.PasswordHash) {
		return ErrWrongPassword
	}

	expenseCount, err := s.expenses.CountByUserID(userID)
	if err != nil {
		return err
	}
	categoryCount, err := s.categories.CountByUserID(userID)
	if err != nil {
		return err
	}
	budgetCount, err := s.budgets.CountByUserID(userID)
	if err != nil {
		return err
	}

	if err := s.users.DeleteWithOwnedData(userID, false); err != nil {
		return err
	}

	remainingExpenses, expErr := s.expenses.CountByUserID(userID)
	remainingCategories, catErr := s.categories.CountByUserID(userID)
	remainingBudgets, budErr := s.budgets.CountByUserID(userID)
	switch {
	case expErr != nil || catErr != nil || budErr != nil:
		middleware.LogError("Could not verify data deletion for user %d: expenses=%v categories=%v budgets=%v",
			userID, expErr, catErr, budErr)
	case remainingExpenses > 0 || remainingCategories > 0 || remainingBudgets > 0:
		middleware.LogError("Data deletion incomplete for user %d: %d expenses, %d categories, %d budgets still exist",
			userID, remainingExpenses, remainingCategories, remainingBudgets)
	default:
		middleware.LogInfo("Account completely deleted: %s (%s) - Successfully removed %d expenses, %d categories, %d budgets",
			user.Username, user.Email, expenseCount, categoryCount, budgetCount)
	}

	return s.sessions.Delete(ctx, token)
}
