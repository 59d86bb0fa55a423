package models

import "time"

// Category represents a user-defined expense category
type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_category" json:"user_id"`
	Name      string    `gorm:"size:50;not null;uniqueIndex:idx_user_category" json:"name"`
	Color     string    `gorm:"size:7;default:'#3b82f6'" json:"color"`
	Icon      string    `gorm:"size:20;default:'📁'" json:"icon"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"-"`
}

// TableName specifies the table name for Category model
func (Category) TableName() string {
	return "categories"
}

// DefaultCategories is the starter set created for every new account
var DefaultCategories = []Category{
	{Name: "Food", Color: "#ef4444", Icon: "🍕"},
	{Name: "Travel", Color: "#3b82f6", Icon: "🚗"},
	{Name: "Shopping", Color: "#22c55e", Icon: "🛍️"},
	{Name: "Utilities", Color: "#f59e0b", Icon: "⚡"},
	{Name: "Other", Color: "#8b5cf6", Icon: "📁"},
}

// DefaultCategoryNames returns the fixed category enumeration the spending
// breakdown aggregates over, in seeding order.
func DefaultCategoryNames() []string {
	names := make([]string, len(DefaultCategories))
	for i, c := range DefaultCategories {
		names[i] = c.Name
	}
	return names
}
