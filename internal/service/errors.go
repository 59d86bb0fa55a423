package service

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrEmailTaken         = errors.New("email already exists")
	ErrDuplicateUser      = errors.New("username or email already exists")
	ErrWrongPassword      = errors.New("current password is incorrect")
	ErrConfirmMismatch    = errors.New("confirmation does not match")
)

// ValidationError carries the human-readable reason an input was rejected.
// It is raised before any mutation takes place.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationErr(message string) error {
	return &ValidationError{Message: message}
}

// CategoryInUseError blocks category deletion while expenses still
// reference the category name
type CategoryInUseError struct {
	Name  string
	Count int64
}

func (e *CategoryInUseError) Error() string {
	return fmt.Sprintf("Cannot delete category '%s' because it has %d expense(s). Please reassign or delete those expenses first.", e.Name, e.Count)
}
