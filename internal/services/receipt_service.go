package services

import (
	"fmt"
	"os"
	"strings"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"backoffice-service/internal/models"
)

// ReceiptService renders sale receipts as PDF documents
type ReceiptService interface {
	GenerateReceipt(sale *models.Sale) ([]byte, string, error)
}

type receiptService struct {
	businessName    string
	businessAddress string
	footerText      string
}

func NewReceiptService() ReceiptService {
	name := os.Getenv("RECEIPT_BUSINESS_NAME")
	if name == "" {
		name = "Back Office"
	}

	footer := os.Getenv("RECEIPT_FOOTER_TEXT")
	if footer == "" {
		footer = "Thank you for your purchase!"
	}

	return &receiptService{
		businessName:    name,
		businessAddress: os.Getenv("RECEIPT_BUSINESS_ADDRESS"),
		footerText:      footer,
	}
}

// GenerateReceipt renders a PDF receipt for a sale. The sale must be
// loaded with its customer and item products.
func (s *receiptService) GenerateReceipt(sale *models.Sale) ([]byte, string, error) {
	cfg := config.NewBuilder().
		WithLeftMargin(10).
		WithTopMargin(15).
		WithRightMargin(10).
		Build()

	m := maroto.New(cfg)

	s.addHeader(m, sale)
	s.addCustomer(m, sale)
	s.addItemsTable(m, sale)
	s.addTotals(m, sale)
	s.addFooter(m)

	doc, err := m.Generate()
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate PDF: %w", err)
	}

	return doc.GetBytes(), "application/pdf", nil
}

func receiptNumber(sale *models.Sale) string {
	id := strings.ReplaceAll(sale.ID.String(), "-", "")
	return "RCP-" + strings.ToUpper(id[:8])
}

func (s *receiptService) addHeader(m core.Maroto, sale *models.Sale) {
	m.AddRow(30,
		col.New(6).Add(
			text.New(s.businessName, props.Text{
				Size:  16,
				Style: fontstyle.Bold,
				Align: align.Left,
			}),
			text.New(s.businessAddress, props.Text{
				Size:  9,
				Top:   8,
				Align: align.Left,
			}),
		),
		col.New(6).Add(
			text.New("RECEIPT", props.Text{
				Size:  20,
				Style: fontstyle.Bold,
				Align: align.Right,
			}),
			text.New(fmt.Sprintf("# %s", receiptNumber(sale)), props.Text{
				Size:  10,
				Top:   8,
				Align: align.Right,
			}),
			text.New(sale.Date.Format("Jan 02, 2006"), props.Text{
				Size:  10,
				Top:   13,
				Align: align.Right,
			}),
		),
	)

	m.AddRow(5, line.NewCol(12))
}

func (s *receiptService) addCustomer(m core.Maroto, sale *models.Sale) {
	var name, email string
	if sale.Customer != nil {
		name = sale.Customer.FullName
		email = sale.Customer.Email
	}

	m.AddRow(20,
		col.New(6).Add(
			text.New("BILL TO:", props.Text{
				Size:  10,
				Style: fontstyle.Bold,
				Align: align.Left,
			}),
			text.New(name, props.Text{
				Size:  10,
				Top:   5,
				Align: align.Left,
			}),
			text.New(email, props.Text{
				Size:  9,
				Top:   10,
				Align: align.Left,
			}),
		),
		col.New(6).Add(
			text.New(fmt.Sprintf("Status: %s", sale.Status), props.Text{
				Size:  10,
				Align: align.Right,
			}),
		),
	)

	m.AddRow(5, line.NewCol(12))
}

func (s *receiptService) addItemsTable(m core.Maroto, sale *models.Sale) {
	m.AddRow(8,
		col.New(6).Add(
			text.New("Item", props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Left}),
		),
		col.New(2).Add(
			text.New("Qty", props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Center}),
		),
		col.New(2).Add(
			text.New("Price", props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Right}),
		),
		col.New(2).Add(
			text.New("Amount", props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Right}),
		),
	)

	m.AddRow(2, line.NewCol(12))

	for _, item := range sale.Items {
		name := item.ProductID.String()
		if item.Product != nil {
			name = item.Product.Name
		}

		m.AddRow(8,
			col.New(6).Add(
				text.New(name, props.Text{Size: 9, Align: align.Left}),
			),
			col.New(2).Add(
				text.New(fmt.Sprintf("%d", item.Quantity), props.Text{Size: 9, Align: align.Center}),
			),
			col.New(2).Add(
				text.New(fmt.Sprintf("%.2f", item.UnitPrice), props.Text{Size: 9, Align: align.Right}),
			),
			col.New(2).Add(
				text.New(fmt.Sprintf("%.2f", item.Amount), props.Text{Size: 9, Align: align.Right}),
			),
		)
	}

	m.AddRow(3, line.NewCol(12))
}

func (s *receiptService) addTotals(m core.Maroto, sale *models.Sale) {
	rows := []struct {
		label string
		value float64
		bold  bool
	}{
		{"Subtotal:", sale.Subtotal, false},
		{"Tax:", sale.Tax, false},
		{"TOTAL:", sale.Total, true},
	}

	for _, row := range rows {
		size := 10.0
		style := fontstyle.Normal
		if row.bold {
			size = 12.0
			style = fontstyle.Bold
			m.AddRow(2, col.New(8), line.NewCol(4))
		}

		m.AddRow(7,
			col.New(8),
			col.New(2).Add(
				text.New(row.label, props.Text{Size: size, Style: style, Align: align.Right}),
			),
			col.New(2).Add(
				text.New(fmt.Sprintf("%.2f", row.value), props.Text{Size: size, Style: style, Align: align.Right}),
			),
		)
	}
}

func (s *receiptService) addFooter(m core.Maroto) {
	m.AddRow(10)
	m.AddRow(10,
		col.New(12).Add(
			text.New(s.footerText, props.Text{
				Size:  9,
				Align: align.Center,
			}),
		),
	)
}
