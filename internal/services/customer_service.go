package services

import (
	"backoffice-service/internal/models"
	"backoffice-service/internal/repository"
	"github.com/google/uuid"
)

type CustomerService struct {
	repo *repository.CustomerRepository
}

func NewCustomerService(repo *repository.CustomerRepository) *CustomerService {
	return &CustomerService{repo: repo}
}

func (s *CustomerService) Create(tenantID string, req *models.CreateCustomerRequest) (*models.Customer, error) {
	customer := &models.Customer{
		FullName:       req.FullName,
		DocumentNumber: req.DocumentNumber,
		Email:          req.Email,
		PhoneNumber:    req.PhoneNumber,
		Age:            req.Age,
		IsActive:       true,
	}
	if err := s.repo.Create(tenantID, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *CustomerService) Get(tenantID string, customerID uuid.UUID) (*models.Customer, error) {
	return s.repo.GetByID(tenantID, customerID)
}

func (s *CustomerService) List(tenantID string, filter *repository.CustomerFilter) ([]models.Customer, int64, error) {
	return s.repo.List(tenantID, filter)
}

func (s *CustomerService) Update(tenantID string, customerID uuid.UUID, req *models.UpdateCustomerRequest) (*models.Customer, error) {
	updates := map[string]interface{}{}
	if req.FullName != nil {
		updates["full_name"] = *req.FullName
	}
	if req.DocumentNumber != nil {
		updates["document_number"] = *req.DocumentNumber
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.PhoneNumber != nil {
		updates["phone_number"] = *req.PhoneNumber
	}
	if req.Age != nil {
		updates["age"] = *req.Age
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) > 0 {
		if err := s.repo.Update(tenantID, customerID, updates); err != nil {
			return nil, err
		}
	}
	return s.repo.GetByID(tenantID, customerID)
}

func (s *CustomerService) Deactivate(tenantID string, customerID uuid.UUID) error {
	return s.repo.Deactivate(tenantID, customerID)
}
