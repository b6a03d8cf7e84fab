package models

import (
	"time"

	"github.com/google/uuid"
)

// SaleStatus represents the lifecycle state of a sale
type SaleStatus string

const (
	SaleStatusPending   SaleStatus = "PENDING"
	SaleStatusConfirmed SaleStatus = "CONFIRMED"
	SaleStatusCancelled SaleStatus = "CANCELLED"
)

// Sale represents a completed or pending sale with its line items
type Sale struct {
	ID         uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	TenantID   string     `json:"tenantId" gorm:"type:varchar(255);not null;index:idx_sales_tenant_id;index:idx_sales_tenant_date"`
	CustomerID uuid.UUID  `json:"customerId" gorm:"type:uuid;not null;index"`
	Date       time.Time  `json:"date" gorm:"not null;index:idx_sales_tenant_date,sort:desc"`
	Subtotal   float64    `json:"subtotal" gorm:"type:decimal(12,2);not null"`
	Tax        float64    `json:"tax" gorm:"type:decimal(12,2);not null;default:0"`
	Total      float64    `json:"total" gorm:"type:decimal(12,2);not null"`
	Status     SaleStatus `json:"status" gorm:"type:varchar(20);default:'PENDING';index"`
	Notes      string     `json:"notes" gorm:"type:text"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Customer *Customer  `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	Items    []SaleItem `json:"items,omitempty" gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for the Sale model
func (Sale) TableName() string {
	return "sales"
}

// SaleItem represents a single product line within a sale
type SaleItem struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	SaleID    uuid.UUID `json:"saleId" gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID `json:"productId" gorm:"type:uuid;not null;index"`
	Quantity  int       `json:"quantity" gorm:"not null"`
	UnitPrice float64   `json:"unitPrice" gorm:"type:decimal(12,2);not null"`
	Amount    float64   `json:"amount" gorm:"type:decimal(12,2);not null"`

	Product *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

// TableName returns the table name for the SaleItem model
func (SaleItem) TableName() string {
	return "sale_items"
}

// SaleItemInput is one requested line in a sale creation payload
type SaleItemInput struct {
	ProductID uuid.UUID `json:"productId" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
}

// CreateSaleRequest is the payload for creating a sale
type CreateSaleRequest struct {
	CustomerID uuid.UUID       `json:"customerId" binding:"required"`
	Date       *time.Time      `json:"date"`
	Notes      string          `json:"notes"`
	Items      []SaleItemInput `json:"items" binding:"required,min=1,dive"`
}

// DashboardMetrics summarizes catalog and sales activity for a tenant
type DashboardMetrics struct {
	TotalProducts   int64   `json:"totalProducts"`
	ActiveProducts  int64   `json:"activeProducts"`
	TotalCustomers  int64   `json:"totalCustomers"`
	ActiveCustomers int64   `json:"activeCustomers"`
	TotalSales      int64   `json:"totalSales"`
	TotalRevenue    float64 `json:"totalRevenue"`
	RecentSales     []Sale  `json:"recentSales"`
}
