package events

import (
	"encoding/json"
	"time"

	"backoffice-service/internal/models"
	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"
)

const (
	SubjectSaleCreated     = "backoffice.sale.created"
	SubjectSaleCancelled   = "backoffice.sale.cancelled"
	SubjectImportCompleted = "backoffice.import.completed"
)

// Publisher emits domain events to NATS. A nil publisher is safe to
// call; every method becomes a no-op so the service runs without a
// broker in development.
type Publisher struct {
	conn   *nats.Conn
	logger *logrus.Entry
}

// NewPublisher connects to NATS. An empty URL disables publishing.
func NewPublisher(natsURL string, logger *logrus.Logger) (*Publisher, error) {
	if natsURL == "" {
		return nil, nil
	}

	conn, err := nats.Connect(natsURL,
		nats.Name("backoffice-service"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, err
	}

	return &Publisher{
		conn:   conn,
		logger: logger.WithField("component", "events.publisher"),
	}, nil
}

// SaleEvent is the payload for sale lifecycle events
type SaleEvent struct {
	TenantID   string    `json:"tenantId"`
	SaleID     string    `json:"saleId"`
	CustomerID string    `json:"customerId"`
	Total      float64   `json:"total"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurredAt"`
}

// ImportCompletedEvent is the payload emitted after a bulk import run
type ImportCompletedEvent struct {
	TenantID       string    `json:"tenantId"`
	TotalRows      int       `json:"totalRows"`
	ProductsCount  int       `json:"productsCount"`
	CustomersCount int       `json:"customersCount"`
	SalesCount     int       `json:"salesCount"`
	ErrorCount     int       `json:"errorCount"`
	Persisted      bool      `json:"persisted"`
	OccurredAt     time.Time `json:"occurredAt"`
}

func (p *Publisher) publish(subject string, payload interface{}) {
	if p == nil || p.conn == nil {
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		p.logger.WithError(err).WithField("subject", subject).Warn("Failed to marshal event")
		return
	}

	if err := p.conn.Publish(subject, data); err != nil {
		p.logger.WithError(err).WithField("subject", subject).Warn("Failed to publish event")
	}
}

// PublishSaleCreated emits a sale created event
func (p *Publisher) PublishSaleCreated(tenantID string, sale *models.Sale) {
	p.publish(SubjectSaleCreated, SaleEvent{
		TenantID:   tenantID,
		SaleID:     sale.ID.String(),
		CustomerID: sale.CustomerID.String(),
		Total:      sale.Total,
		Status:     string(sale.Status),
		OccurredAt: time.Now().UTC(),
	})
}

// PublishSaleCancelled emits a sale cancelled event
func (p *Publisher) PublishSaleCancelled(tenantID string, saleID string) {
	p.publish(SubjectSaleCancelled, SaleEvent{
		TenantID:   tenantID,
		SaleID:     saleID,
		Status:     string(models.SaleStatusCancelled),
		OccurredAt: time.Now().UTC(),
	})
}

// PublishImportCompleted emits the outcome of a bulk import run
func (p *Publisher) PublishImportCompleted(tenantID string, report *models.ImportReport) {
	p.publish(SubjectImportCompleted, ImportCompletedEvent{
		TenantID:       tenantID,
		TotalRows:      report.TotalRows,
		ProductsCount:  report.ProductsCount,
		CustomersCount: report.CustomersCount,
		SalesCount:     report.SalesCount,
		ErrorCount:     report.ErrorCount,
		Persisted:      report.Persisted,
		OccurredAt:     time.Now().UTC(),
	})
}

// IsConnected returns true if connected to NATS
func (p *Publisher) IsConnected() bool {
	return p != nil && p.conn != nil && p.conn.IsConnected()
}

// Close drains and closes the connection
func (p *Publisher) Close() {
	if p == nil || p.conn == nil {
		return
	}
	p.conn.Close()
}
