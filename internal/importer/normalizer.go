package importer

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"backoffice-service/internal/models"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Layouts accepted for the SaleDate column, tried in order.
var saleDateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"01/02/2006",
	"2006/01/02",
	"01-02-06",
	time.RFC3339,
}

// Normalized holds the in-memory tables produced from the raw rows.
// Product and customer maps are keyed by the lower-cased trimmed name;
// every qualifying row contributes one sale intent, no deduplication.
type Normalized struct {
	Products  map[string]*models.ImportedProduct
	Customers map[string]*models.ImportedCustomer
	Sales     []models.ImportedSaleIntent
	Errors    []models.ImportError
	TotalRows int
}

// Report summarizes the normalization outcome in the wire shape
// returned to the caller.
func (n *Normalized) Report() *models.ImportReport {
	errs := n.Errors
	if errs == nil {
		errs = []models.ImportError{}
	}
	return &models.ImportReport{
		TotalRows:      n.TotalRows,
		ProductsCount:  len(n.Products),
		CustomersCount: len(n.Customers),
		SalesCount:     len(n.Sales),
		ErrorCount:     len(n.Errors),
		Errors:         errs,
	}
}

// Normalize folds raw rows into deduplicated product/customer tables and
// a sale-intent list, accumulating every validation error. Rows are
// independent: no error short-circuits later rows or other fields of the
// same row. Errors come out empty exactly when every row had both names
// and every supplied price/email/date/quantity parsed.
func Normalize(rows []models.RawImportRow) *Normalized {
	n := &Normalized{
		Products:  make(map[string]*models.ImportedProduct),
		Customers: make(map[string]*models.ImportedCustomer),
		TotalRows: len(rows),
	}

	for _, raw := range rows {
		n.normalizeProduct(raw)
		n.normalizeCustomer(raw)
		n.normalizeSale(raw)
	}

	return n
}

func (n *Normalized) addError(row int, message string) {
	n.Errors = append(n.Errors, models.ImportError{RowNumber: row, Message: message})
}

func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func (n *Normalized) normalizeProduct(raw models.RawImportRow) {
	if raw.ProductName == "" {
		n.addError(raw.RowNumber, "ProductName is required.")
		return
	}

	key := nameKey(raw.ProductName)
	prod, ok := n.Products[key]
	if !ok {
		prod = &models.ImportedProduct{Name: raw.ProductName}
		n.Products[key] = prod
	}

	if raw.PriceText != "" {
		if price, err := strconv.ParseFloat(raw.PriceText, 64); err == nil {
			prod.Price = &price
		} else {
			n.addError(raw.RowNumber, fmt.Sprintf("Invalid price value '%s' for product '%s'.", raw.PriceText, raw.ProductName))
		}
	}

	prod.SourceRows = append(prod.SourceRows, raw.RowNumber)
}

func (n *Normalized) normalizeCustomer(raw models.RawImportRow) {
	if raw.CustomerName == "" {
		n.addError(raw.RowNumber, "CustomerName is required.")
		return
	}

	key := nameKey(raw.CustomerName)
	cust, ok := n.Customers[key]
	if !ok {
		cust = &models.ImportedCustomer{Name: raw.CustomerName, Email: raw.Email}
		n.Customers[key] = cust
	}

	if raw.Email != "" && validate.Var(raw.Email, "email") != nil {
		n.addError(raw.RowNumber, fmt.Sprintf("Invalid email address '%s' for customer '%s'.", raw.Email, raw.CustomerName))
	}

	cust.SourceRows = append(cust.SourceRows, raw.RowNumber)
}

// A sale intent is attempted whenever both names are present, even when
// the product or customer field above produced an error for this row.
// Unparseable dates and quantities are reported but leave the field
// unset rather than dropping the intent.
func (n *Normalized) normalizeSale(raw models.RawImportRow) {
	if raw.ProductName == "" || raw.CustomerName == "" {
		return
	}

	var saleDate *time.Time
	if raw.SaleDateText != "" {
		if d, ok := parseSaleDate(raw.SaleDateText); ok {
			saleDate = &d
		} else {
			n.addError(raw.RowNumber, fmt.Sprintf("Invalid sale date '%s'.", raw.SaleDateText))
		}
	}

	var quantity *int
	if raw.QuantityText != "" {
		if q, err := strconv.Atoi(raw.QuantityText); err == nil {
			quantity = &q
		} else {
			n.addError(raw.RowNumber, fmt.Sprintf("Invalid quantity '%s'.", raw.QuantityText))
		}
	}

	n.Sales = append(n.Sales, models.ImportedSaleIntent{
		ProductName:  raw.ProductName,
		CustomerName: raw.CustomerName,
		SaleDate:     saleDate,
		Quantity:     quantity,
		SourceRow:    raw.RowNumber,
	})
}

func parseSaleDate(text string) (time.Time, bool) {
	for _, layout := range saleDateLayouts {
		if d, err := time.Parse(layout, text); err == nil {
			return d, true
		}
	}
	return time.Time{}, false
}
