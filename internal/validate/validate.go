// Package validate holds the pure input validation rules shared by the
// registration, expense and budget flows. Every function returns the
// human-readable reason used in API responses.
package validate

import (
	"regexp"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

var (
	emailPattern     = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	upperPattern     = regexp.MustCompile(`[A-Z]`)
	lowerPattern     = regexp.MustCompile(`[a-z]`)
	digitPattern     = regexp.MustCompile(`\d`)
	maxExpenseAmount = decimal.RequireFromString("999999.99")
)

// DateLayout is the accepted wire format for calendar dates.
const DateLayout = "2006-01-02"

// Email reports whether s looks like local@domain.tld with a 2+ letter TLD.
// No DNS or mailbox checks.
func Email(s string) bool {
	return emailPattern.MatchString(s)
}

// Password enforces the registration password policy: at least 8
// characters with one uppercase letter, one lowercase letter and one
// digit. Returns the first failing reason.
func Password(s string) (bool, string) {
	if utf8.RuneCountInString(s) < 8 {
		return false, "Password must be at least 8 characters long"
	}
	if !upperPattern.MatchString(s) {
		return false, "Password must contain at least one uppercase letter"
	}
	if !lowerPattern.MatchString(s) {
		return false, "Password must contain at least one lowercase letter"
	}
	if !digitPattern.MatchString(s) {
		return false, "Password must contain at least one digit"
	}
	return true, "Password is valid"
}

// ChangePassword enforces the change-password policy. It is deliberately
// weaker than the registration policy (length only, no composition); the
// two are kept as distinct named rules.
func ChangePassword(s string) (bool, string) {
	if utf8.RuneCountInString(s) < 6 {
		return false, "New password must be at least 6 characters long"
	}
	return true, "Password is valid"
}

// Amount parses a monetary amount and checks it against the business
// range [0, 999999.99].
func Amount(s string) (bool, decimal.Decimal, string) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return false, decimal.Zero, "Invalid amount format"
	}
	if amount.IsNegative() {
		return false, decimal.Zero, "Amount cannot be negative"
	}
	if amount.GreaterThan(maxExpenseAmount) {
		return false, decimal.Zero, "Amount too large"
	}
	return true, amount, "Valid amount"
}

// Date parses a YYYY-MM-DD date and rejects dates after the current
// server-local calendar day.
func Date(s string) (bool, time.Time, string) {
	return dateAt(s, time.Now())
}

func dateAt(s string, now time.Time) (bool, time.Time, string) {
	date, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return false, time.Time{}, "Invalid date format"
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	if date.After(today) {
		return false, time.Time{}, "Date cannot be in the future"
	}
	return true, date, "Valid date"
}
