package repository

import (
	"time"

	"backoffice-service/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SaleFilter narrows sale listings
type SaleFilter struct {
	CustomerID *uuid.UUID
	Status     models.SaleStatus
	DateFrom   *time.Time
	DateTo     *time.Time
	Page       int
	PageSize   int
}

type SaleRepository struct {
	db *gorm.DB
}

func NewSaleRepository(db *gorm.DB) *SaleRepository {
	return &SaleRepository{db: db}
}

// Create inserts a sale with its line items in one transaction
func (r *SaleRepository) Create(tenantID string, sale *models.Sale) error {
	sale.TenantID = tenantID
	if sale.ID == uuid.Nil {
		sale.ID = uuid.New()
	}
	return r.db.Create(sale).Error
}

// GetByID retrieves a sale with its customer and item products loaded
func (r *SaleRepository) GetByID(tenantID string, saleID uuid.UUID) (*models.Sale, error) {
	var sale models.Sale
	err := r.db.Where("tenant_id = ? AND id = ?", tenantID, saleID).
		Preload("Customer").
		Preload("Items").
		Preload("Items.Product").
		First(&sale).Error
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

// List retrieves sales with filters and pagination, newest first
func (r *SaleRepository) List(tenantID string, filter *SaleFilter) ([]models.Sale, int64, error) {
	var sales []models.Sale
	var total int64

	query := r.db.Model(&models.Sale{}).Where("tenant_id = ?", tenantID)

	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.DateFrom != nil {
		query = query.Where("date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("date <= ?", *filter.DateTo)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.PageSize
	err := query.Order("date DESC").
		Preload("Customer").
		Preload("Items").
		Offset(offset).Limit(filter.PageSize).
		Find(&sales).Error
	if err != nil {
		return nil, 0, err
	}

	return sales, total, nil
}

// ListByCustomer retrieves all sales for one customer, newest first
func (r *SaleRepository) ListByCustomer(tenantID string, customerID uuid.UUID) ([]models.Sale, error) {
	var sales []models.Sale
	err := r.db.Where("tenant_id = ? AND customer_id = ?", tenantID, customerID).
		Order("date DESC").
		Preload("Items").
		Preload("Items.Product").
		Find(&sales).Error
	return sales, err
}

// UpdateStatus transitions a sale's status
func (r *SaleRepository) UpdateStatus(tenantID string, saleID uuid.UUID, status models.SaleStatus) error {
	result := r.db.Model(&models.Sale{}).
		Where("tenant_id = ? AND id = ?", tenantID, saleID).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListAll retrieves every sale for export, newest first
func (r *SaleRepository) ListAll(tenantID string) ([]models.Sale, error) {
	var sales []models.Sale
	err := r.db.Where("tenant_id = ?", tenantID).
		Order("date DESC").
		Preload("Customer").
		Preload("Items").
		Preload("Items.Product").
		Find(&sales).Error
	return sales, err
}

// DashboardMetrics aggregates catalog and sales figures for a tenant
func (r *SaleRepository) DashboardMetrics(tenantID string, recentLimit int) (*models.DashboardMetrics, error) {
	metrics := &models.DashboardMetrics{}

	if err := r.db.Model(&models.Sale{}).
		Where("tenant_id = ? AND status <> ?", tenantID, models.SaleStatusCancelled).
		Count(&metrics.TotalSales).Error; err != nil {
		return nil, err
	}

	var revenue struct {
		Total float64
	}
	if err := r.db.Model(&models.Sale{}).
		Select("COALESCE(SUM(total), 0) as total").
		Where("tenant_id = ? AND status <> ?", tenantID, models.SaleStatusCancelled).
		Scan(&revenue).Error; err != nil {
		return nil, err
	}
	metrics.TotalRevenue = revenue.Total

	if recentLimit <= 0 {
		recentLimit = 5
	}
	if err := r.db.Where("tenant_id = ?", tenantID).
		Order("date DESC").
		Preload("Customer").
		Limit(recentLimit).
		Find(&metrics.RecentSales).Error; err != nil {
		return nil, err
	}

	return metrics, nil
}
