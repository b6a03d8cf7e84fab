package models

import (
	"time"

	"github.com/google/uuid"
)

// Customer represents a buyer managed by the back-office
type Customer struct {
	ID             uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	TenantID       string    `json:"tenantId" gorm:"type:varchar(255);not null;index:idx_customers_tenant_id;index:idx_customers_tenant_name"`
	FullName       string    `json:"fullName" gorm:"type:varchar(255);not null;index:idx_customers_tenant_name"`
	DocumentNumber string    `json:"documentNumber" gorm:"type:varchar(100)"`
	Email          string    `json:"email" gorm:"type:varchar(255)"`
	PhoneNumber    string    `json:"phoneNumber" gorm:"type:varchar(50)"`
	Age            int       `json:"age" gorm:"default:0"`
	IsActive       bool      `json:"isActive" gorm:"default:true"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Sales []Sale `json:"sales,omitempty" gorm:"foreignKey:CustomerID"`
}

// TableName returns the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}

// CreateCustomerRequest is the payload for creating a customer
type CreateCustomerRequest struct {
	FullName       string `json:"fullName" binding:"required"`
	DocumentNumber string `json:"documentNumber"`
	Email          string `json:"email" binding:"omitempty,email"`
	PhoneNumber    string `json:"phoneNumber"`
	Age            int    `json:"age" binding:"min=0"`
}

// UpdateCustomerRequest is the payload for updating a customer
type UpdateCustomerRequest struct {
	FullName       *string `json:"fullName"`
	DocumentNumber *string `json:"documentNumber"`
	Email          *string `json:"email" binding:"omitempty,email"`
	PhoneNumber    *string `json:"phoneNumber"`
	Age            *int    `json:"age"`
	IsActive       *bool   `json:"isActive"`
}
