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

// Cache TTL constants
const (
	ProductCacheTTL     = 5 * time.Minute
	ProductListCacheTTL = 2 * time.Minute
)

// ProductFilter narrows product listings
type ProductFilter struct {
	Query      string
	OnlyActive bool
	Page       int
	PageSize   int
}

type ProductRepository struct {
	db    *gorm.DB
	redis *redis.Client
}

func NewProductRepository(db *gorm.DB, redis *redis.Client) *ProductRepository {
	return &ProductRepository{db: db, redis: redis}
}

func (r *ProductRepository) invalidateProductCaches(ctx context.Context, tenantID string, productID uuid.UUID) {
	if r.redis == nil {
		return
	}
	r.redis.Del(ctx, fmt.Sprintf("backoffice:product:%s:%s", tenantID, productID.String()))

	keys, err := r.redis.Keys(ctx, fmt.Sprintf("backoffice:products:list:%s:*", tenantID)).Result()
	if err == nil && len(keys) > 0 {
		r.redis.Del(ctx, keys...)
	}
}

// Create inserts a new product for the tenant
func (r *ProductRepository) Create(tenantID string, product *models.Product) error {
	product.TenantID = tenantID
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}

	err := r.db.Create(product).Error
	if err == nil {
		r.invalidateProductCaches(context.Background(), tenantID, product.ID)
	}
	return err
}

// GetByID retrieves a product by ID with caching
func (r *ProductRepository) GetByID(tenantID string, productID uuid.UUID) (*models.Product, error) {
	ctx := context.Background()
	cacheKey := fmt.Sprintf("backoffice:product:%s:%s", tenantID, productID.String())

	if r.redis != nil {
		val, err := r.redis.Get(ctx, cacheKey).Result()
		if err == nil {
			var product models.Product
			if err := json.Unmarshal([]byte(val), &product); err == nil {
				return &product, nil
			}
		}
	}

	var product models.Product
	if err := r.db.Where("tenant_id = ? AND id = ?", tenantID, productID).First(&product).Error; err != nil {
		return nil, err
	}

	if r.redis != nil {
		if data, err := json.Marshal(product); err == nil {
			r.redis.Set(ctx, cacheKey, data, ProductCacheTTL)
		}
	}

	return &product, nil
}

// GetByName retrieves a product by name (case-insensitive)
func (r *ProductRepository) GetByName(tenantID string, name string) (*models.Product, error) {
	var product models.Product
	err := r.db.Where("tenant_id = ? AND LOWER(name) = LOWER(?)", tenantID, name).First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// List retrieves products with filters and pagination
func (r *ProductRepository) List(tenantID string, filter *ProductFilter) ([]models.Product, int64, error) {
	var products []models.Product
	var total int64

	query := r.db.Model(&models.Product{}).Where("tenant_id = ?", tenantID)

	if filter.OnlyActive {
		query = query.Where("is_active = ?", true)
	}
	if filter.Query != "" {
		like := "%" + filter.Query + "%"
		query = query.Where("name ILIKE ? OR sku ILIKE ?", like, like)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.PageSize
	if err := query.Order("name ASC").Offset(offset).Limit(filter.PageSize).Find(&products).Error; err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

// Update applies column updates to a product
func (r *ProductRepository) Update(tenantID string, productID uuid.UUID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()
	result := r.db.Model(&models.Product{}).
		Where("tenant_id = ? AND id = ?", tenantID, productID).
		Updates(updates)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.invalidateProductCaches(context.Background(), tenantID, productID)
	return nil
}

// Deactivate marks a product inactive. Products are never hard-deleted
// because sale items keep pointing at them.
func (r *ProductRepository) Deactivate(tenantID string, productID uuid.UUID) error {
	return r.Update(tenantID, productID, map[string]interface{}{"is_active": false})
}

// ListAll retrieves every product for export, no pagination
func (r *ProductRepository) ListAll(tenantID string) ([]models.Product, error) {
	var products []models.Product
	err := r.db.Where("tenant_id = ?", tenantID).Order("name ASC").Find(&products).Error
	return products, err
}

// Counts returns total and active product counts for the tenant
func (r *ProductRepository) Counts(tenantID string) (total int64, active int64, err error) {
	if err = r.db.Model(&models.Product{}).Where("tenant_id = ?", tenantID).Count(&total).Error; err != nil {
		return
	}
	err = r.db.Model(&models.Product{}).Where("tenant_id = ? AND is_active = ?", tenantID, true).Count(&active).Error
	return
}
