package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Budget represents a user's monthly spending budget.
// The unique index on UserID keeps it to one row per user; writes go
// through create-or-update semantics in the repository.
type Budget struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	UserID    uint            `gorm:"uniqueIndex;not null" json:"user_id"`
	Amount    decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"amount"`
	StartDate *time.Time      `gorm:"type:date" json:"start_date"`
	EndDate   *time.Time      `gorm:"type:date" json:"end_date"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"-"`
}

// TableName specifies the table name for Budget model
func (Budget) TableName() string {
	return "budgets"
}
