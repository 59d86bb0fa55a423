package repository

import (
	"errors"
	"time"

	"github.com/expense-tracker/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound = errors.New("user not found")
	// ErrDuplicateUser is returned when a unique index fires without the
	// conflicting field being known (insert race after the exists checks).
	ErrDuplicateUser = errors.New("username or email already exists")
)

// UserRepository handles user data access
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user together with their starter categories in one
// transaction.
func (r *UserRepository) Create(user *models.User, categories []models.Category) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		for i := range categories {
			categories[i].UserID = user.ID
		}
		if len(categories) > 0 {
			if err := tx.Create(&categories).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateUser
		}
		return err
	}
	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(id uint) (*models.User, error) {
	var user models.User
	result := r.db.First(&user, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, result.Error
	}
	return &user, nil
}

// GetActiveByEmail retrieves an active user by email
func (r *UserRepository) GetActiveByEmail(email string) (*models.User, error) {
	var user models.User
	result := r.db.Where("email = ? AND is_active = ?", email, true).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, result.Error
	}
	return &user, nil
}

// GetByEmail retrieves a user by email regardless of active state
func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	result := r.db.Where("email = ?", email).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, result.Error
	}
	return &user, nil
}

// ExistsByUsername checks if a username is taken, optionally excluding a
// user id (0 = no exclusion)
func (r *UserRepository) ExistsByUsername(username string, excludeID uint) (bool, error) {
	var count int64
	q := r.db.Model(&models.User{}).Where("username = ?", username)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Count(&count).Error
	return count > 0, err
}

// ExistsByEmail checks if an email is taken, optionally excluding a user
// id (0 = no exclusion)
func (r *UserRepository) ExistsByEmail(email string, excludeID uint) (bool, error) {
	var count int64
	q := r.db.Model(&models.User{}).Where("email = ?", email)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Count(&count).Error
	return count > 0, err
}

// Update saves user changes
func (r *UserRepository) Update(user *models.User) error {
	err := r.db.Save(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateUser
	}
	return err
}

// UpdateLastLogin stamps the last successful authentication time
func (r *UserRepository) UpdateLastLogin(id uint, at time.Time) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).Update("last_login", at).Error
}

// UserListQuery describes the admin user listing filters
type UserListQuery struct {
	Search   string
	Role     string // "all", "user" or "admin"
	Status   string // "all", "active" or "inactive"
	Page     int
	PageSize int
}

// List retrieves users with filtering and pagination, newest first
func (r *UserRepository) List(q UserListQuery) ([]models.User, int64, error) {
	query := r.db.Model(&models.User{})

	if q.Search != "" {
		pattern := "%" + q.Search + "%"
		query = query.Where("username ILIKE ? OR email ILIKE ?", pattern, pattern)
	}
	if q.Role != "" && q.Role != "all" {
		query = query.Where("role = ?", q.Role)
	}
	switch q.Status {
	case "active":
		query = query.Where("is_active = ?", true)
	case "inactive":
		query = query.Where("is_active = ?", false)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []models.User
	offset := (q.Page - 1) * q.PageSize
	result := query.Order("created_at DESC").
		Offset(offset).
		Limit(q.PageSize).
		Find(&users)
	if result.Error != nil {
		return nil, 0, result.Error
	}

	return users, total, nil
}

// CountAll counts all users
func (r *UserRepository) CountAll() (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Count(&count).Error
	return count, err
}

// CountActive counts active users
func (r *UserRepository) CountActive() (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("is_active = ?", true).Count(&count).Error
	return count, err
}

// CountCreatedSince counts users registered after the given time
func (r *UserRepository) CountCreatedSince(since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("created_at >= ?", since).Count(&count).Error
	return count, err
}

// UserSpend is one row of the top-spenders ranking
type UserSpend struct {
	Username   string          `json:"username"`
	TotalSpent decimal.Decimal `json:"total_spent"`
}

// TopSpenders ranks users by their total expense amount
func (r *UserRepository) TopSpenders(limit int) ([]UserSpend, error) {
	var rows []UserSpend
	err := r.db.Model(&models.User{}).
		Select("users.username, SUM(expenses.amount) as total_spent").
		Joins("JOIN expenses ON expenses.user_id = users.id").
		Group("users.id").
		Order("SUM(expenses.amount) DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

// DeleteWithOwnedData deletes the user's expenses, categories and budgets
// followed by the user row, all in one transaction. When purgeAdminLogs is
// set, admin log rows naming the user (as actor or target) are removed as
// well (admin-initiated deletion path).
func (r *UserRepository) DeleteWithOwnedData(userID uint, purgeAdminLogs bool) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.Expense{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Category{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Budget{}).Error; err != nil {
			return err
		}
		if purgeAdminLogs {
			if err := tx.Where("admin_id = ?", userID).Delete(&models.AdminLog{}).Error; err != nil {
				return err
			}
			if err := tx.Where("target_user_id = ?", userID).Delete(&models.AdminLog{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&models.User{}, userID).Error
	})
}
