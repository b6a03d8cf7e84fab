package repository

import (
	"time"

	"backoffice-service/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new login account
func (r *UserRepository) Create(tenantID string, user *models.User) error {
	user.TenantID = tenantID
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	return r.db.Create(user).Error
}

// GetByEmail retrieves an account by email within a tenant
func (r *UserRepository) GetByEmail(tenantID string, email string) (*models.User, error) {
	var user models.User
	err := r.db.Where("tenant_id = ? AND LOWER(email) = LOWER(?)", tenantID, email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByID retrieves an account by ID within a tenant
func (r *UserRepository) GetByID(tenantID string, userID uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.db.Where("tenant_id = ? AND id = ?", tenantID, userID).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// EmailExists reports whether an account already uses the email
func (r *UserRepository) EmailExists(tenantID string, email string) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).
		Where("tenant_id = ? AND LOWER(email) = LOWER(?)", tenantID, email).
		Count(&count).Error
	return count > 0, err
}

// TouchLogin bumps the account's updated_at on successful login
func (r *UserRepository) TouchLogin(tenantID string, userID uuid.UUID) error {
	return r.db.Model(&models.User{}).
		Where("tenant_id = ? AND id = ?", tenantID, userID).
		Update("updated_at", time.Now()).Error
}
