// Package report computes the budget and spending aggregates shown on the
// dashboard, the reports page and both exports. Everything here is a pure
// function over already-loaded data; amounts are decimals so the
// arithmetic is exact.
package report

import (
	"github.com/expense-tracker/internal/models"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Summary is the aggregate view of a user's spending against their budget
type Summary struct {
	Total        decimal.Decimal            `json:"total_expenses"`
	BudgetAmount decimal.Decimal            `json:"budget_amount"`
	Remaining    decimal.Decimal            `json:"remaining"`
	Overspent    bool                       `json:"overspent"`
	// UtilizationPct is nil when no budget is set
	UtilizationPct *decimal.Decimal           `json:"utilization_pct"`
	ByCategory     map[string]decimal.Decimal `json:"by_category"`
}

// Summarize computes the spending summary for one user. categories is the
// set of known category names: every one of them appears in ByCategory
// (zero when unused), and expenses whose category is not in the set are
// left out of the breakdown without being treated as an error. budget may
// be nil, in which case the budget amount is zero and utilization is not
// applicable.
func Summarize(expenses []models.Expense, budget *models.Budget, categories []string) Summary {
	total := decimal.Zero
	byCategory := make(map[string]decimal.Decimal, len(categories))
	for _, name := range categories {
		byCategory[name] = decimal.Zero
	}

	for _, e := range expenses {
		total = total.Add(e.Amount)
		if current, known := byCategory[e.Category]; known {
			byCategory[e.Category] = current.Add(e.Amount)
		}
	}

	budgetAmount := decimal.Zero
	if budget != nil {
		budgetAmount = budget.Amount
	}

	remaining := budgetAmount.Sub(total)

	var utilization *decimal.Decimal
	if budgetAmount.IsPositive() {
		pct := total.Div(budgetAmount).Mul(hundred)
		utilization = &pct
	}

	return Summary{
		Total:          total,
		BudgetAmount:   budgetAmount,
		Remaining:      remaining,
		Overspent:      remaining.IsNegative(),
		UtilizationPct: utilization,
		ByCategory:     byCategory,
	}
}

// CategoryShare is one category's slice of the total spend
type CategoryShare struct {
	Name       string          `json:"name"`
	Amount     decimal.Decimal `json:"amount"`
	Percentage decimal.Decimal `json:"percentage"`
}

// Shares lists the categories with a nonzero total in the order the
// category names were given, each with its percentage of the overall
// total (zero when the total itself is zero).
func (s Summary) Shares(categories []string) []CategoryShare {
	shares := make([]CategoryShare, 0, len(categories))
	for _, name := range categories {
		amount, known := s.ByCategory[name]
		if !known || amount.IsZero() {
			continue
		}
		pct := decimal.Zero
		if s.Total.IsPositive() {
			pct = amount.Div(s.Total).Mul(hundred)
		}
		shares = append(shares, CategoryShare{
			Name:       name,
			Amount:     amount,
			Percentage: pct,
		})
	}
	return shares
}
