package handlers

import (
	"encoding/csv"
	"net/http"
	"path/filepath"
	"strings"

	"backoffice-service/internal/events"
	"backoffice-service/internal/importer"
	"backoffice-service/internal/models"
	"backoffice-service/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// MaxImportFileSize caps uploads at 10 MB
const MaxImportFileSize = 10 << 20

type ImportHandler struct {
	importer      *importer.Importer
	exportService *services.ExportService
	publisher     *events.Publisher
	logger        *logrus.Logger
}

func NewImportHandler(imp *importer.Importer, exportService *services.ExportService, publisher *events.Publisher, logger *logrus.Logger) *ImportHandler {
	return &ImportHandler{importer: imp, exportService: exportService, publisher: publisher, logger: logger}
}

// Upload processes an uploaded Excel workbook through the bulk-import
// pipeline. A clean file is persisted atomically; a file with any
// validation error returns the error report and persists nothing.
// POST /api/v1/import
func (h *ImportHandler) Upload(c *gin.Context) {
	tenantID := c.GetString("tenant_id")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "FILE_REQUIRED", "A file upload named 'file' is required")
		return
	}

	if fileHeader.Size > MaxImportFileSize {
		respondError(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "File exceeds the 10 MB limit")
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if ext != ".xlsx" && ext != ".xlsm" {
		respondError(c, http.StatusBadRequest, "UNSUPPORTED_FORMAT", "Only .xlsx files are supported")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.logger.WithError(err).Error("Failed to open uploaded file")
		respondInternalError(c)
		return
	}
	defer file.Close()

	report, err := h.importer.Run(tenantID, file)
	if err != nil {
		h.logger.WithError(err).WithField("tenant_id", tenantID).Error("Import failed")
		respondError(c, http.StatusUnprocessableEntity, "IMPORT_FAILED", err.Error())
		return
	}

	h.publisher.PublishImportCompleted(tenantID, report)

	status := http.StatusOK
	if report.ErrorCount > 0 {
		status = http.StatusUnprocessableEntity
	}
	c.JSON(status, models.SuccessResponse{Success: report.Persisted, Data: report})
}

// Template returns the import template definition or a downloadable file
// GET /api/v1/import/template?format=json|csv|xlsx
func (h *ImportHandler) Template(c *gin.Context) {
	format := c.DefaultQuery("format", "json")

	template := models.BulkImportTemplate()

	switch format {
	case "csv":
		h.writeCSVTemplate(c, template)
	case "xlsx":
		buf, err := h.exportService.ImportTemplateWorkbook()
		if err != nil {
			h.logger.WithError(err).Error("Failed to build import template")
			respondInternalError(c)
			return
		}
		c.Header("Content-Disposition", "attachment; filename=bulk_import_template.xlsx")
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
	default:
		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"template": template,
		})
	}
}

func (h *ImportHandler) writeCSVTemplate(c *gin.Context, template models.ImportTemplate) {
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment; filename=bulk_import_template.csv")

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	headers := make([]string, len(template.Columns))
	for i, col := range template.Columns {
		headers[i] = col.Name
	}
	writer.Write(headers)
}
