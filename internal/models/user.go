package models

import (
	"time"

	"github.com/google/uuid"
)

// UserRole represents the access level of a back-office account
type UserRole string

const (
	UserRoleAdmin    UserRole = "ADMIN"
	UserRoleCustomer UserRole = "CUSTOMER"
)

// User is a login account. Customer-facing accounts link to a Customer record.
type User struct {
	ID           uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	TenantID     string     `json:"tenantId" gorm:"type:varchar(255);not null;index:idx_users_tenant_email,unique"`
	Email        string     `json:"email" gorm:"type:varchar(255);not null;index:idx_users_tenant_email,unique"`
	PasswordHash string     `json:"-" gorm:"type:varchar(255);not null"`
	Role         UserRole   `json:"role" gorm:"type:varchar(20);default:'CUSTOMER'"`
	CustomerID   *uuid.UUID `json:"customerId,omitempty" gorm:"type:uuid"`
	IsActive     bool       `json:"isActive" gorm:"default:true"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName returns the table name for the User model
func (User) TableName() string {
	return "users"
}

// LoginRequest is the payload for password authentication
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterCustomerRequest is the storefront self-registration payload
type RegisterCustomerRequest struct {
	FullName       string `json:"fullName" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	Password       string `json:"password" binding:"required,min=8"`
	DocumentNumber string `json:"documentNumber"`
	PhoneNumber    string `json:"phoneNumber"`
	Age            int    `json:"age" binding:"min=0"`
}

// TokenResponse carries an issued JWT back to the caller
type TokenResponse struct {
	Token      string    `json:"token"`
	Expiration time.Time `json:"expiration"`
}
