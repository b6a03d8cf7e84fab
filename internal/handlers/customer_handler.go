package handlers

import (
	"errors"
	"net/http"

	"backoffice-service/internal/config"
	"backoffice-service/internal/models"
	"backoffice-service/internal/repository"
	"backoffice-service/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type CustomerHandler struct {
	service  *services.CustomerService
	saleRepo *repository.SaleRepository
	cfg      *config.Config
	logger   *logrus.Logger
}

func NewCustomerHandler(service *services.CustomerService, saleRepo *repository.SaleRepository, cfg *config.Config, logger *logrus.Logger) *CustomerHandler {
	return &CustomerHandler{service: service, saleRepo: saleRepo, cfg: cfg, logger: logger}
}

// Create creates a customer
// POST /api/v1/customers
func (h *CustomerHandler) Create(c *gin.Context) {
	tenantID := c.GetString("tenant_id")

	var req models.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	customer, err := h.service.Create(tenantID, &req)
	if err != nil {
		h.logger.WithError(err).Error("Failed to create customer")
		respondInternalError(c)
		return
	}

	c.JSON(http.StatusCreated, models.SuccessResponse{Success: true, Data: customer})
}

// Get retrieves one customer
// GET /api/v1/customers/:id
func (h *CustomerHandler) Get(c *gin.Context) {
	tenantID := c.GetString("tenant_id")

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	customer, err := h.service.Get(tenantID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "Customer not found")
			return
		}
		h.logger.WithError(err).Error("Failed to get customer")
		respondInternalError(c)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: customer})
}

// List retrieves customers with pagination and search
// GET /api/v1/customers
func (h *CustomerHandler) List(c *gin.Context) {
	tenantID := c.GetString("tenant_id")
	page, pageSize := pagination(c, h.cfg)

	filter := &repository.CustomerFilter{
		Query:      c.Query("q"),
		OnlyActive: c.DefaultQuery("onlyActive", "false") == "true",
		Page:       page,
		PageSize:   pageSize,
	}

	customers, total, err := h.service.List(tenantID, filter)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list customers")
		respondInternalError(c)
		return
	}

	c.JSON(http.StatusOK, models.ListResponse{
		Success:  true,
		Data:     customers,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

// Update modifies a customer
// PUT /api/v1/customers/:id
func (h *CustomerHandler) Update(c *gin.Context) {
	tenantID := c.GetString("tenant_id")

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	customer, err := h.service.Update(tenantID, id, &req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "Customer not found")
			return
		}
		h.logger.WithError(err).Error("Failed to update customer")
		respondInternalError(c)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: customer})
}

// Delete deactivates a customer
// DELETE /api/v1/customers/:id
func (h *CustomerHandler) Delete(c *gin.Context) {
	tenantID := c.GetString("tenant_id")

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Deactivate(tenantID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "Customer not found")
			return
		}
		h.logger.WithError(err).Error("Failed to deactivate customer")
		respondInternalError(c)
		return
	}

	message := "Customer deactivated"
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Message: &message})
}

// Sales lists the customer's sale history
// GET /api/v1/customers/:id/sales
func (h *CustomerHandler) Sales(c *gin.Context) {
	tenantID := c.GetString("tenant_id")

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if _, err := h.service.Get(tenantID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "Customer not found")
			return
		}
		h.logger.WithError(err).Error("Failed to get customer")
		respondInternalError(c)
		return
	}

	sales, err := h.saleRepo.ListByCustomer(tenantID, id)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list customer sales")
		respondInternalError(c)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: sales})
}
