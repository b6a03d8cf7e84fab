package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"backoffice-service/internal/models"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const CustomerCacheTTL = 5 * time.Minute

// CustomerFilter narrows customer listings
type CustomerFilter struct {
	Query      string
	OnlyActive bool
	Page       int
	PageSize   int
}

type CustomerRepository struct {
	db    *gorm.DB
	redis *redis.Client
}

func NewCustomerRepository(db *gorm.DB, redis *redis.Client) *CustomerRepository {
	return &CustomerRepository{db: db, redis: redis}
}

func (r *CustomerRepository) invalidateCustomerCaches(ctx context.Context, tenantID string, customerID uuid.UUID) {
	if r.redis == nil {
		return
	}
	r.redis.Del(ctx, fmt.Sprintf("backoffice:customer:%s:%s", tenantID, customerID.String()))

	keys, err := r.redis.Keys(ctx, fmt.Sprintf("backoffice:customers:list:%s:*", tenantID)).Result()
	if err == nil && len(keys) > 0 {
		r.redis.Del(ctx, keys...)
	}
}

// Create inserts a new customer for the tenant
func (r *CustomerRepository) Create(tenantID string, customer *models.Customer) error {
	customer.TenantID = tenantID
	if customer.ID == uuid.Nil {
		customer.ID = uuid.New()
	}

	err := r.db.Create(customer).Error
	if err == nil {
		r.invalidateCustomerCaches(context.Background(), tenantID, customer.ID)
	}
	return err
}

// GetByID retrieves a customer by ID with caching
func (r *CustomerRepository) GetByID(tenantID string, customerID uuid.UUID) (*models.Customer, error) {
	ctx := context.Background()
	cacheKey := fmt.Sprintf("backoffice:customer:%s:%s", tenantID, customerID.String())

	if r.redis != nil {
		val, err := r.redis.Get(ctx, cacheKey).Result()
		if err == nil {
			var customer models.Customer
			if err := json.Unmarshal([]byte(val), &customer); err == nil {
				return &customer, nil
			}
		}
	}

	var customer models.Customer
	if err := r.db.Where("tenant_id = ? AND id = ?", tenantID, customerID).First(&customer).Error; err != nil {
		return nil, err
	}

	if r.redis != nil {
		if data, err := json.Marshal(customer); err == nil {
			r.redis.Set(ctx, cacheKey, data, CustomerCacheTTL)
		}
	}

	return &customer, nil
}

// GetByName retrieves a customer by full name (case-insensitive)
func (r *CustomerRepository) GetByName(tenantID string, name string) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.Where("tenant_id = ? AND LOWER(full_name) = LOWER(?)", tenantID, name).First(&customer).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// List retrieves customers with filters and pagination
func (r *CustomerRepository) List(tenantID string, filter *CustomerFilter) ([]models.Customer, int64, error) {
	var customers []models.Customer
	var total int64

	query := r.db.Model(&models.Customer{}).Where("tenant_id = ?", tenantID)

	if filter.OnlyActive {
		query = query.Where("is_active = ?", true)
	}
	if filter.Query != "" {
		like := "%" + filter.Query + "%"
		query = query.Where("full_name ILIKE ? OR email ILIKE ? OR document_number ILIKE ?", like, like, like)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.PageSize
	if err := query.Order("full_name ASC").Offset(offset).Limit(filter.PageSize).Find(&customers).Error; err != nil {
		return nil, 0, err
	}

	return customers, total, nil
}

// Update applies column updates to a customer
func (r *CustomerRepository) Update(tenantID string, customerID uuid.UUID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()
	result := r.db.Model(&models.Customer{}).
		Where("tenant_id = ? AND id = ?", tenantID, customerID).
		Updates(updates)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.invalidateCustomerCaches(context.Background(), tenantID, customerID)
	return nil
}

// Deactivate marks a customer inactive. Customers are never hard-deleted
// because sales keep pointing at them.
func (r *CustomerRepository) Deactivate(tenantID string, customerID uuid.UUID) error {
	return r.Update(tenantID, customerID, map[string]interface{}{"is_active": false})
}

// ListAll retrieves every customer for export, no pagination
func (r *CustomerRepository) ListAll(tenantID string) ([]models.Customer, error) {
	var customers []models.Customer
	err := r.db.Where("tenant_id = ?", tenantID).Order("full_name ASC").Find(&customers).Error
	return customers, err
}

// Counts returns total and active customer counts for the tenant
func (r *CustomerRepository) Counts(tenantID string) (total int64, active int64, err error) {
	if err = r.db.Model(&models.Customer{}).Where("tenant_id = ?", tenantID).Count(&total).Error; err != nil {
		return
	}
	err = r.db.Model(&models.Customer{}).Where("tenant_id = ? AND is_active = ?", tenantID, true).Count(&active).Error
	return
}
