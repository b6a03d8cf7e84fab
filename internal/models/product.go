package models

import (
	"time"

	"github.com/google/uuid"
)

// Product represents a sellable product in the back-office catalog
type Product struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	TenantID    string    `json:"tenantId" gorm:"type:varchar(255);not null;index:idx_products_tenant_id;index:idx_products_tenant_name"`
	Name        string    `json:"name" gorm:"type:varchar(255);not null;index:idx_products_tenant_name"`
	SKU         string    `json:"sku" gorm:"type:varchar(100)"`
	Description string    `json:"description" gorm:"type:text"`
	UnitPrice   float64   `json:"unitPrice" gorm:"type:decimal(12,2);not null;default:0"`
	Stock       int       `json:"stock" gorm:"default:0"`
	IsActive    bool      `json:"isActive" gorm:"default:true;index:idx_products_tenant_active"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Loaded via joins, not stored
	Items []SaleItem `json:"items,omitempty" gorm:"foreignKey:ProductID"`
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// CreateProductRequest is the payload for creating a product
type CreateProductRequest struct {
	Name        string  `json:"name" binding:"required"`
	SKU         string  `json:"sku"`
	Description string  `json:"description"`
	UnitPrice   float64 `json:"unitPrice" binding:"min=0"`
	Stock       int     `json:"stock" binding:"min=0"`
}

// UpdateProductRequest is the payload for updating a product.
// Pointer fields distinguish "not sent" from zero values.
type UpdateProductRequest struct {
	Name        *string  `json:"name"`
	SKU         *string  `json:"sku"`
	Description *string  `json:"description"`
	UnitPrice   *float64 `json:"unitPrice"`
	Stock       *int     `json:"stock"`
	IsActive    *bool    `json:"isActive"`
}
