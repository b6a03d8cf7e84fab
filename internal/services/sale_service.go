package services

import (
	"errors"
	"fmt"
	"time"

	"backoffice-service/internal/models"
	"backoffice-service/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrCustomerNotFound = errors.New("customer not found")
	ErrProductNotFound  = errors.New("product not found")
	ErrProductInactive  = errors.New("product is not active")
)

type SaleService struct {
	saleRepo     *repository.SaleRepository
	productRepo  *repository.ProductRepository
	customerRepo *repository.CustomerRepository
	taxRate      float64
}

func NewSaleService(saleRepo *repository.SaleRepository, productRepo *repository.ProductRepository, customerRepo *repository.CustomerRepository, taxRate float64) *SaleService {
	return &SaleService{
		saleRepo:     saleRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		taxRate:      taxRate,
	}
}

// SaleTotals is the computed monetary breakdown of a sale
type SaleTotals struct {
	Subtotal float64
	Tax      float64
	Total    float64
}

// ComputeTotals sums line amounts and applies the tax rate on top.
// Values stay unrounded; formatting is a presentation concern.
func ComputeTotals(items []models.SaleItem, taxRate float64) SaleTotals {
	var subtotal float64
	for _, item := range items {
		subtotal += item.Amount
	}
	tax := subtotal * taxRate
	return SaleTotals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal + tax,
	}
}

// Create records a sale with its line items, pricing each line at the
// product's current unit price.
func (s *SaleService) Create(tenantID string, req *models.CreateSaleRequest) (*models.Sale, error) {
	if _, err := s.customerRepo.GetByID(tenantID, req.CustomerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}

	items := make([]models.SaleItem, 0, len(req.Items))
	for _, input := range req.Items {
		product, err := s.productRepo.GetByID(tenantID, input.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: %s", ErrProductNotFound, input.ProductID)
			}
			return nil, err
		}
		if !product.IsActive {
			return nil, fmt.Errorf("%w: %s", ErrProductInactive, product.Name)
		}

		items = append(items, models.SaleItem{
			ID:        uuid.New(),
			ProductID: product.ID,
			Quantity:  input.Quantity,
			UnitPrice: product.UnitPrice,
			Amount:    float64(input.Quantity) * product.UnitPrice,
		})
	}

	totals := ComputeTotals(items, s.taxRate)

	date := time.Now().UTC()
	if req.Date != nil {
		date = req.Date.UTC()
	}

	sale := &models.Sale{
		ID:         uuid.New(),
		CustomerID: req.CustomerID,
		Date:       date,
		Subtotal:   totals.Subtotal,
		Tax:        totals.Tax,
		Total:      totals.Total,
		Status:     models.SaleStatusConfirmed,
		Notes:      req.Notes,
		Items:      items,
	}

	if err := s.saleRepo.Create(tenantID, sale); err != nil {
		return nil, err
	}
	return sale, nil
}

func (s *SaleService) Get(tenantID string, saleID uuid.UUID) (*models.Sale, error) {
	return s.saleRepo.GetByID(tenantID, saleID)
}

func (s *SaleService) List(tenantID string, filter *repository.SaleFilter) ([]models.Sale, int64, error) {
	return s.saleRepo.List(tenantID, filter)
}

// Cancel marks a sale CANCELLED. Sales are never deleted.
func (s *SaleService) Cancel(tenantID string, saleID uuid.UUID) error {
	return s.saleRepo.UpdateStatus(tenantID, saleID, models.SaleStatusCancelled)
}

// Dashboard aggregates metrics across all three domains
func (s *SaleService) Dashboard(tenantID string) (*models.DashboardMetrics, error) {
	metrics, err := s.saleRepo.DashboardMetrics(tenantID, 5)
	if err != nil {
		return nil, err
	}

	if metrics.TotalProducts, metrics.ActiveProducts, err = s.productRepo.Counts(tenantID); err != nil {
		return nil, err
	}
	if metrics.TotalCustomers, metrics.ActiveCustomers, err = s.customerRepo.Counts(tenantID); err != nil {
		return nil, err
	}

	return metrics, nil
}
