package services

import (
	"backoffice-service/internal/models"
	"backoffice-service/internal/repository"
	"github.com/google/uuid"
)

type ProductService struct {
	repo *repository.ProductRepository
}

func NewProductService(repo *repository.ProductRepository) *ProductService {
	return &ProductService{repo: repo}
}

func (s *ProductService) Create(tenantID string, req *models.CreateProductRequest) (*models.Product, error) {
	product := &models.Product{
		Name:        req.Name,
		SKU:         req.SKU,
		Description: req.Description,
		UnitPrice:   req.UnitPrice,
		Stock:       req.Stock,
		IsActive:    true,
	}
	if err := s.repo.Create(tenantID, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *ProductService) Get(tenantID string, productID uuid.UUID) (*models.Product, error) {
	return s.repo.GetByID(tenantID, productID)
}

func (s *ProductService) List(tenantID string, filter *repository.ProductFilter) ([]models.Product, int64, error) {
	return s.repo.List(tenantID, filter)
}

func (s *ProductService) Update(tenantID string, productID uuid.UUID, req *models.UpdateProductRequest) (*models.Product, error) {
	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.SKU != nil {
		updates["sku"] = *req.SKU
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.UnitPrice != nil {
		updates["unit_price"] = *req.UnitPrice
	}
	if req.Stock != nil {
		updates["stock"] = *req.Stock
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) > 0 {
		if err := s.repo.Update(tenantID, productID, updates); err != nil {
			return nil, err
		}
	}
	return s.repo.GetByID(tenantID, productID)
}

func (s *ProductService) Deactivate(tenantID string, productID uuid.UUID) error {
	return s.repo.Deactivate(tenantID, productID)
}
