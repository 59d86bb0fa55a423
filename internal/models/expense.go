package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod represents how an expense was paid
type PaymentMethod string

const (
	PaymentCash  PaymentMethod = "Cash"
	PaymentCard  PaymentMethod = "Card"
	PaymentUPI   PaymentMethod = "UPI"
	PaymentOther PaymentMethod = "Other"
)

// IsValid checks if the payment method is one of the supported values
func (p PaymentMethod) IsValid() bool {
	switch p {
	case PaymentCash, PaymentCard, PaymentUPI, PaymentOther:
		return true
	}
	return false
}

// Expense represents a single expense record owned by a user
type Expense struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	UserID        uint            `gorm:"index;not null" json:"user_id"`
	Title         string          `gorm:"size:200;not null" json:"title"`
	Amount        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	Date          time.Time       `gorm:"type:date;not null" json:"date"`
	Category      string          `gorm:"size:50;not null" json:"category"`
	PaymentMethod PaymentMethod   `gorm:"size:50;not null" json:"payment_method"`
	Description   string          `gorm:"size:500" json:"description"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"-"`
}

// TableName specifies the table name for Expense model
func (Expense) TableName() string {
	return "expenses"
}
