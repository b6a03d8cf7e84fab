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

type ProductHandler struct {
	service *services.ProductService
	cfg     *config.Config
	logger  *logrus.Logger
}

func NewProductHandler(service *services.ProductService, cfg *config.Config, logger *logrus.Logger) *ProductHandler {
	return &ProductHandler{service: service, cfg: cfg, logger: logger}
}

// Create creates a product
// POST /api/v1/products
func (h *ProductHandler) Create(c *gin.Context) {
	tenantID := c.GetString("tenant_id")

	var req models.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	product, err := h.service.Create(tenantID, &req)
	if err != nil {
		h.logger.WithError(err).Error("Failed to create product")
		respondInternalError(c)
		return
	}

	c.JSON(http.StatusCreated, models.SuccessResponse{Success: true, Data: product})
}

// Get retrieves one product
// GET /api/v1/products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	tenantID := c.GetString("tenant_id")

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	product, err := h.service.Get(tenantID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "Product not found")
			return
		}
		h.logger.WithError(err).Error("Failed to get product")
		respondInternalError(c)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: product})
}

// List retrieves products with pagination and search
// GET /api/v1/products
func (h *ProductHandler) List(c *gin.Context) {
	tenantID := c.GetString("tenant_id")
	page, pageSize := pagination(c, h.cfg)

	filter := &repository.ProductFilter{
		Query:      c.Query("q"),
		OnlyActive: c.DefaultQuery("onlyActive", "false") == "true",
		Page:       page,
		PageSize:   pageSize,
	}

	products, total, err := h.service.List(tenantID, filter)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list products")
		respondInternalError(c)
		return
	}

	c.JSON(http.StatusOK, models.ListResponse{
		Success:  true,
		Data:     products,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

// Update modifies a product
// PUT /api/v1/products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	tenantID := c.GetString("tenant_id")

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	product, err := h.service.Update(tenantID, id, &req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "Product not found")
			return
		}
		h.logger.WithError(err).Error("Failed to update product")
		respondInternalError(c)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: product})
}

// Delete deactivates a product
// DELETE /api/v1/products/:id
func (h *ProductHandler) Delete(c *gin.Context) {
	tenantID := c.GetString("tenant_id")

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Deactivate(tenantID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "Product not found")
			return
		}
		h.logger.WithError(err).Error("Failed to deactivate product")
		respondInternalError(c)
		return
	}

	message := "Product deactivated"
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Message: &message})
}
