package models

import "time"

// Recognized bulk-import column headers. Matching is case-insensitive
// and unknown columns are ignored.
const (
	ImportColProductName  = "ProductName"
	ImportColPrice        = "Price"
	ImportColCustomerName = "CustomerName"
	ImportColEmail        = "Email"
	ImportColSaleDate     = "SaleDate"
	ImportColQuantity     = "Quantity"
)

// RawImportRow is one non-blank spreadsheet row before normalization.
// Empty string means the column was absent or blank. RowNumber is the
// 1-based spreadsheet row (header is row 1).
type RawImportRow struct {
	RowNumber    int
	ProductName  string
	PriceText    string
	CustomerName string
	Email        string
	SaleDateText string
	QuantityText string
}

// ImportedProduct is one distinct product name seen across the import.
// A later row's price overwrites an earlier one when present.
type ImportedProduct struct {
	Name       string
	Price      *float64
	SourceRows []int
}

// ImportedCustomer is one distinct customer name seen across the import.
// Email is seeded from the first occurrence and never overwritten.
type ImportedCustomer struct {
	Name       string
	Email      string
	SourceRows []int
}

// ImportedSaleIntent is one sale to create; every row with both a
// product and a customer name yields exactly one, no deduplication.
type ImportedSaleIntent struct {
	ProductName  string
	CustomerName string
	SaleDate     *time.Time
	Quantity     *int
	SourceRow    int
}

// ImportError is a row-level validation error
type ImportError struct {
	RowNumber int    `json:"rowNumber"`
	Message   string `json:"message"`
}

// ImportReport is the consolidated result returned to the caller.
// Counts come from the normalization stage and are reported whether or
// not anything was persisted.
type ImportReport struct {
	TotalRows      int           `json:"totalRows"`
	ProductsCount  int           `json:"productsCount"`
	CustomersCount int           `json:"customersCount"`
	SalesCount     int           `json:"salesCount"`
	ErrorCount     int           `json:"errorCount"`
	Errors         []ImportError `json:"errors"`
	Persisted      bool          `json:"persisted"`
	ProcessingMs   int64         `json:"processingMs"`
}

// ImportTemplateColumn defines a column in the import template
type ImportTemplateColumn struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
	Type        string `json:"type"`
	Example     string `json:"example"`
}

// ImportTemplate defines the structure of an import template
type ImportTemplate struct {
	Entity  string                 `json:"entity"`
	Version string                 `json:"version"`
	Columns []ImportTemplateColumn `json:"columns"`
}

// BulkImportColumns returns the column definitions for the combined
// product/customer/sale import
func BulkImportColumns() []ImportTemplateColumn {
	return []ImportTemplateColumn{
		{Name: ImportColProductName, Description: "Product name - matched case-insensitively against existing products", Required: true, Type: "string", Example: "Cement Bag 50kg"},
		{Name: ImportColPrice, Description: "Unit price - overwrites the matched product's price when present", Required: false, Type: "number", Example: "12.50"},
		{Name: ImportColCustomerName, Description: "Customer full name - matched case-insensitively against existing customers", Required: true, Type: "string", Example: "Acme Construction"},
		{Name: ImportColEmail, Description: "Customer email - taken from the first row that names the customer", Required: false, Type: "string", Example: "orders@acme.com"},
		{Name: ImportColSaleDate, Description: "Sale date - defaults to the import time when absent", Required: false, Type: "date", Example: "2024-01-05"},
		{Name: ImportColQuantity, Description: "Quantity sold - defaults to 1", Required: false, Type: "number", Example: "10"},
	}
}

// BulkImportTemplate returns the template definition for the bulk import
func BulkImportTemplate() ImportTemplate {
	return ImportTemplate{
		Entity:  "bulk-import",
		Version: "1.0",
		Columns: BulkImportColumns(),
	}
}
