package handlers

import (
	"bytes"
	"net/http"

	"backoffice-service/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ExportHandler struct {
	service *services.ExportService
	logger  *logrus.Logger
}

func NewExportHandler(service *services.ExportService, logger *logrus.Logger) *ExportHandler {
	return &ExportHandler{service: service, logger: logger}
}

func (h *ExportHandler) sendWorkbook(c *gin.Context, buf *bytes.Buffer, filename string) {
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// Products downloads the product catalog as xlsx
// GET /api/v1/export/products
func (h *ExportHandler) Products(c *gin.Context) {
	tenantID := c.GetString("tenant_id")

	buf, err := h.service.ExportProducts(tenantID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to export products")
		respondInternalError(c)
		return
	}

	h.sendWorkbook(c, buf, "products.xlsx")
}

// Customers downloads the customer list as xlsx
// GET /api/v1/export/customers
func (h *ExportHandler) Customers(c *gin.Context) {
	tenantID := c.GetString("tenant_id")

	buf, err := h.service.ExportCustomers(tenantID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to export customers")
		respondInternalError(c)
		return
	}

	h.sendWorkbook(c, buf, "customers.xlsx")
}

// Sales downloads the sales ledger as xlsx, one row per line item
// GET /api/v1/export/sales
func (h *ExportHandler) Sales(c *gin.Context) {
	tenantID := c.GetString("tenant_id")

	buf, err := h.service.ExportSales(tenantID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to export sales")
		respondInternalError(c)
		return
	}

	h.sendWorkbook(c, buf, "sales.xlsx")
}
