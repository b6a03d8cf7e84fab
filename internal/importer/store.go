package importer

import (
	"backoffice-service/internal/models"
	"gorm.io/gorm"
)

// GormStore adapts a gorm transaction to the Store interface, scoping
// every read and write to one tenant.
type GormStore struct {
	tx       *gorm.DB
	tenantID string
}

func NewGormStore(tx *gorm.DB, tenantID string) *GormStore {
	return &GormStore{tx: tx, tenantID: tenantID}
}

func (s *GormStore) Products() ([]*models.Product, error) {
	var products []*models.Product
	if err := s.tx.Where("tenant_id = ?", s.tenantID).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (s *GormStore) Customers() ([]*models.Customer, error) {
	var customers []*models.Customer
	if err := s.tx.Where("tenant_id = ?", s.tenantID).Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

func (s *GormStore) CreateProduct(p *models.Product) error {
	return s.tx.Create(p).Error
}

func (s *GormStore) UpdateProduct(p *models.Product) error {
	return s.tx.Save(p).Error
}

func (s *GormStore) CreateCustomer(c *models.Customer) error {
	return s.tx.Create(c).Error
}

func (s *GormStore) UpdateCustomer(c *models.Customer) error {
	return s.tx.Save(c).Error
}

func (s *GormStore) CreateSale(sale *models.Sale) error {
	return s.tx.Create(sale).Error
}

// Flush is a no-op: IDs are generated client-side and every write has
// already been issued on the transaction.
func (s *GormStore) Flush() error {
	return nil
}
