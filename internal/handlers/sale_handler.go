package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"backoffice-service/internal/config"
	"backoffice-service/internal/events"
	"backoffice-service/internal/models"
	"backoffice-service/internal/repository"
	"backoffice-service/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type SaleHandler struct {
	service        *services.SaleService
	receiptService services.ReceiptService
	publisher      *events.Publisher
	cfg            *config.Config
	logger         *logrus.Logger
}

func NewSaleHandler(service *services.SaleService, receiptService services.ReceiptService, publisher *events.Publisher, cfg *config.Config, logger *logrus.Logger) *SaleHandler {
	return &SaleHandler{
		service:        service,
		receiptService: receiptService,
		publisher:      publisher,
		cfg:            cfg,
		logger:         logger,
	}
}

// Create records a sale
// POST /api/v1/sales
func (h *SaleHandler) Create(c *gin.Context) {
	tenantID := c.GetString("tenant_id")

	var req models.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	sale, err := h.service.Create(tenantID, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCustomerNotFound):
			respondNotFound(c, "Customer not found")
		case errors.Is(err, services.ErrProductNotFound):
			respondNotFound(c, err.Error())
		case errors.Is(err, services.ErrProductInactive):
			respondError(c, http.StatusUnprocessableEntity, "PRODUCT_INACTIVE", err.Error())
		default:
			h.logger.WithError(err).Error("Failed to create sale")
			respondInternalError(c)
		}
		return
	}

	h.publisher.PublishSaleCreated(tenantID, sale)
	c.JSON(http.StatusCreated, models.SuccessResponse{Success: true, Data: sale})
}

// Get retrieves one sale with its items
// GET /api/v1/sales/:id
func (h *SaleHandler) Get(c *gin.Context) {
	tenantID := c.GetString("tenant_id")

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	sale, err := h.service.Get(tenantID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "Sale not found")
			return
		}
		h.logger.WithError(err).Error("Failed to get sale")
		respondInternalError(c)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: sale})
}

// List retrieves sales with filters and pagination
// GET /api/v1/sales
func (h *SaleHandler) List(c *gin.Context) {
	tenantID := c.GetString("tenant_id")
	page, pageSize := pagination(c, h.cfg)

	filter := &repository.SaleFilter{
		Status:   models.SaleStatus(c.Query("status")),
		Page:     page,
		PageSize: pageSize,
	}

	if raw := c.Query("customerId"); raw != "" {
		customerID, err := uuid.Parse(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, "INVALID_ID", "Invalid customerId parameter")
			return
		}
		filter.CustomerID = &customerID
	}

	if raw := c.Query("dateFrom"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, "INVALID_DATE", "Invalid dateFrom parameter")
			return
		}
		filter.DateFrom = &t
	}
	if raw := c.Query("dateTo"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, "INVALID_DATE", "Invalid dateTo parameter")
			return
		}
		filter.DateTo = &t
	}

	sales, total, err := h.service.List(tenantID, filter)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list sales")
		respondInternalError(c)
		return
	}

	c.JSON(http.StatusOK, models.ListResponse{
		Success:  true,
		Data:     sales,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

// Cancel marks a sale CANCELLED
// POST /api/v1/sales/:id/cancel
func (h *SaleHandler) Cancel(c *gin.Context) {
	tenantID := c.GetString("tenant_id")

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Cancel(tenantID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "Sale not found")
			return
		}
		h.logger.WithError(err).Error("Failed to cancel sale")
		respondInternalError(c)
		return
	}

	h.publisher.PublishSaleCancelled(tenantID, id.String())

	message := "Sale cancelled"
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Message: &message})
}

// Receipt renders the sale's receipt as a PDF download
// GET /api/v1/sales/:id/receipt
func (h *SaleHandler) Receipt(c *gin.Context) {
	tenantID := c.GetString("tenant_id")

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	sale, err := h.service.Get(tenantID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "Sale not found")
			return
		}
		h.logger.WithError(err).Error("Failed to get sale")
		respondInternalError(c)
		return
	}

	data, contentType, err := h.receiptService.GenerateReceipt(sale)
	if err != nil {
		h.logger.WithError(err).Error("Failed to generate receipt")
		respondInternalError(c)
		return
	}

	filename := fmt.Sprintf("receipt-%s.pdf", sale.ID.String()[:8])
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, contentType, data)
}

// Dashboard returns aggregated catalog and sales metrics
// GET /api/v1/dashboard
func (h *SaleHandler) Dashboard(c *gin.Context) {
	tenantID := c.GetString("tenant_id")

	metrics, err := h.service.Dashboard(tenantID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to load dashboard metrics")
		respondInternalError(c)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: metrics})
}
