package models

import "time"

// AdminLog records an administrative action. Rows are append-only and are
// never updated or deleted by normal flows.
type AdminLog struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	AdminID      uint      `gorm:"index;not null" json:"admin_id"`
	Action       string    `gorm:"size:200;not null" json:"action"`
	TargetUserID *uint     `gorm:"index" json:"target_user_id"`
	Details      string    `gorm:"type:text" json:"details"`
	IPAddress    string    `gorm:"size:45" json:"ip_address"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName specifies the table name for AdminLog model
func (AdminLog) TableName() string {
	return "admin_logs"
}
