package repository

import (
	"github.com/expense-tracker/internal/models"
	"gorm.io/gorm"
)

// AdminLogRepository handles admin audit log data access. Logs are
// append-only; there are no update or delete paths here.
type AdminLogRepository struct {
	db *gorm.DB
}

// NewAdminLogRepository creates a new AdminLogRepository
func NewAdminLogRepository(db *gorm.DB) *AdminLogRepository {
	return &AdminLogRepository{db: db}
}

// Create appends an admin log row
func (r *AdminLogRepository) Create(entry *models.AdminLog) error {
	return r.db.Create(entry).Error
}

// RecentByAdmin retrieves the latest actions of one admin
func (r *AdminLogRepository) RecentByAdmin(adminID uint, limit int) ([]models.AdminLog, error) {
	var logs []models.AdminLog
	result := r.db.Where("admin_id = ?", adminID).
		Order("created_at DESC").
		Limit(limit).
		Find(&logs)
	return logs, result.Error
}
