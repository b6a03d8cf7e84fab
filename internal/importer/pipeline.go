package importer

import (
	"fmt"
	"io"
	"time"

	"backoffice-service/internal/models"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Importer runs the bulk import pipeline end to end: workbook parsing,
// normalization, and the transactional reconcile step.
type Importer struct {
	db      *gorm.DB
	taxRate float64
	logger  *logrus.Logger
}

func NewImporter(db *gorm.DB, taxRate float64, logger *logrus.Logger) *Importer {
	return &Importer{db: db, taxRate: taxRate, logger: logger}
}

// Run processes one uploaded workbook for a tenant. When normalization
// reports any error the report is returned with nothing persisted; a
// clean batch is applied in a single transaction. A non-nil error means
// the batch could not be processed at all and nothing was written.
func (imp *Importer) Run(tenantID string, file io.Reader) (*models.ImportReport, error) {
	start := time.Now()

	grid, err := ReadWorkbook(file)
	if err != nil {
		return nil, err
	}

	rows := ExtractRows(grid)
	normalized := Normalize(rows)
	report := normalized.Report()

	if report.ErrorCount > 0 {
		report.Persisted = false
		report.ProcessingMs = time.Since(start).Milliseconds()
		imp.logger.WithFields(logrus.Fields{
			"tenant_id":  tenantID,
			"total_rows": report.TotalRows,
			"errors":     report.ErrorCount,
		}).Warn("Import rejected, validation errors found")
		return report, nil
	}

	reconciler := NewReconciler(imp.taxRate)
	err = imp.db.Transaction(func(tx *gorm.DB) error {
		return reconciler.Apply(NewGormStore(tx, tenantID), tenantID, normalized)
	})
	if err != nil {
		return nil, fmt.Errorf("import transaction failed: %w", err)
	}

	report.Persisted = true
	report.ProcessingMs = time.Since(start).Milliseconds()
	imp.logger.WithFields(logrus.Fields{
		"tenant_id":     tenantID,
		"total_rows":    report.TotalRows,
		"products":      report.ProductsCount,
		"customers":     report.CustomersCount,
		"sales":         report.SalesCount,
		"processing_ms": report.ProcessingMs,
	}).Info("Import completed")

	return report, nil
}
