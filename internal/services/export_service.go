package services

import (
	"bytes"
	"fmt"

	"backoffice-service/internal/models"
	"backoffice-service/internal/repository"
	"github.com/xuri/excelize/v2"
)

// ExportService renders catalog and sales data as xlsx workbooks
type ExportService struct {
	productRepo  *repository.ProductRepository
	customerRepo *repository.CustomerRepository
	saleRepo     *repository.SaleRepository
}

func NewExportService(productRepo *repository.ProductRepository, customerRepo *repository.CustomerRepository, saleRepo *repository.SaleRepository) *ExportService {
	return &ExportService{
		productRepo:  productRepo,
		customerRepo: customerRepo,
		saleRepo:     saleRepo,
	}
}

func newWorkbook(sheet string, header []interface{}) (*excelize.File, error) {
	f := excelize.NewFile()
	defaultSheet := f.GetSheetName(0)
	if defaultSheet != sheet {
		if err := f.SetSheetName(defaultSheet, sheet); err != nil {
			return nil, err
		}
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, err
	}
	return f, nil
}

func writeRow(f *excelize.File, sheet string, rowNum int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

// ExportProducts writes every product of the tenant to a workbook
func (s *ExportService) ExportProducts(tenantID string) (*bytes.Buffer, error) {
	products, err := s.productRepo.ListAll(tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}

	const sheet = "Products"
	f, err := newWorkbook(sheet, []interface{}{"Name", "SKU", "Description", "UnitPrice", "Stock", "IsActive", "CreatedAt"})
	if err != nil {
		return nil, err
	}
	defer f.Close()

	for i, p := range products {
		row := []interface{}{p.Name, p.SKU, p.Description, p.UnitPrice, p.Stock, p.IsActive, p.CreatedAt.Format("2006-01-02 15:04:05")}
		if err := writeRow(f, sheet, i+2, row); err != nil {
			return nil, err
		}
	}

	return f.WriteToBuffer()
}

// ExportCustomers writes every customer of the tenant to a workbook
func (s *ExportService) ExportCustomers(tenantID string) (*bytes.Buffer, error) {
	customers, err := s.customerRepo.ListAll(tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to load customers: %w", err)
	}

	const sheet = "Customers"
	f, err := newWorkbook(sheet, []interface{}{"FullName", "DocumentNumber", "Email", "PhoneNumber", "Age", "IsActive", "CreatedAt"})
	if err != nil {
		return nil, err
	}
	defer f.Close()

	for i, c := range customers {
		row := []interface{}{c.FullName, c.DocumentNumber, c.Email, c.PhoneNumber, c.Age, c.IsActive, c.CreatedAt.Format("2006-01-02 15:04:05")}
		if err := writeRow(f, sheet, i+2, row); err != nil {
			return nil, err
		}
	}

	return f.WriteToBuffer()
}

// ExportSales writes every sale of the tenant to a workbook, one row per
// line item so quantities and amounts stay visible.
func (s *ExportService) ExportSales(tenantID string) (*bytes.Buffer, error) {
	sales, err := s.saleRepo.ListAll(tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to load sales: %w", err)
	}

	const sheet = "Sales"
	f, err := newWorkbook(sheet, []interface{}{"Date", "Customer", "Product", "Quantity", "UnitPrice", "Amount", "Subtotal", "Tax", "Total", "Status"})
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rowNum := 2
	for _, sale := range sales {
		customerName := sale.CustomerID.String()
		if sale.Customer != nil {
			customerName = sale.Customer.FullName
		}

		for _, item := range sale.Items {
			productName := item.ProductID.String()
			if item.Product != nil {
				productName = item.Product.Name
			}

			row := []interface{}{
				sale.Date.Format("2006-01-02"),
				customerName,
				productName,
				item.Quantity,
				item.UnitPrice,
				item.Amount,
				sale.Subtotal,
				sale.Tax,
				sale.Total,
				string(sale.Status),
			}
			if err := writeRow(f, sheet, rowNum, row); err != nil {
				return nil, err
			}
			rowNum++
		}
	}

	return f.WriteToBuffer()
}

// ImportTemplateWorkbook builds the downloadable bulk-import template
// with a header row and one example row.
func (s *ExportService) ImportTemplateWorkbook() (*bytes.Buffer, error) {
	columns := models.BulkImportColumns()

	header := make([]interface{}, len(columns))
	example := make([]interface{}, len(columns))
	for i, c := range columns {
		header[i] = c.Name
		example[i] = c.Example
	}

	const sheet = "Import"
	f, err := newWorkbook(sheet, header)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if err := writeRow(f, sheet, 2, example); err != nil {
		return nil, err
	}

	return f.WriteToBuffer()
}
