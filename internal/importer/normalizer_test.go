package importer

import (
	"testing"
	"time"

	"backoffice-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func row(num int, product, price, customer, email, date, qty string) models.RawImportRow {
	return models.RawImportRow{
		RowNumber:    num,
		ProductName:  product,
		PriceText:    price,
		CustomerName: customer,
		Email:        email,
		SaleDateText: date,
		QuantityText: qty,
	}
}

func TestNormalizeDeduplicatesProductsCaseInsensitively(t *testing.T) {
	n := Normalize([]models.RawImportRow{
		row(2, "Cement", "10.00", "Acme", "", "", ""),
		row(3, "cement", "12.50", "Beta", "", "", ""),
		row(4, "CEMENT", "", "Gamma", "", "", ""),
	})

	require.Empty(t, n.Errors)
	require.Len(t, n.Products, 1)

	prod := n.Products["cement"]
	require.NotNil(t, prod)
	assert.Equal(t, "Cement", prod.Name, "first spelling wins")
	require.NotNil(t, prod.Price)
	assert.Equal(t, 12.50, *prod.Price, "later price overwrites, blank does not")
	assert.Equal(t, []int{2, 3, 4}, prod.SourceRows)
}

func TestNormalizeCustomerEmailFirstOccurrenceWins(t *testing.T) {
	n := Normalize([]models.RawImportRow{
		row(2, "Cement", "", "Acme", "first@acme.com", "", ""),
		row(3, "Sand", "", "acme", "second@acme.com", "", ""),
	})

	require.Empty(t, n.Errors)
	require.Len(t, n.Customers, 1)
	assert.Equal(t, "first@acme.com", n.Customers["acme"].Email)
}

func TestNormalizeAccumulatesAllErrors(t *testing.T) {
	n := Normalize([]models.RawImportRow{
		row(2, "", "abc", "", "not-an-email", "never", "many"),
		row(3, "Cement", "x", "Acme", "bad@", "2024-13-99", "1.5"),
	})

	messages := make([]string, 0, len(n.Errors))
	for _, e := range n.Errors {
		messages = append(messages, e.Message)
	}

	assert.Contains(t, messages, "ProductName is required.")
	assert.Contains(t, messages, "CustomerName is required.")
	assert.Contains(t, messages, "Invalid price value 'x' for product 'Cement'.")
	assert.Contains(t, messages, "Invalid email address 'bad@' for customer 'Acme'.")
	assert.Contains(t, messages, "Invalid sale date '2024-13-99'.")
	assert.Contains(t, messages, "Invalid quantity '1.5'.")
	// Row 2 has no names, so no price/date/quantity checks ran for it.
	assert.Len(t, n.Errors, 6)
}

func TestNormalizeSaleIntentRequiresBothNames(t *testing.T) {
	n := Normalize([]models.RawImportRow{
		row(2, "Cement", "10", "", "", "", ""),
		row(3, "", "", "Acme", "", "", ""),
		row(4, "Cement", "", "Acme", "", "", ""),
		row(5, "Cement", "", "Acme", "", "", ""),
	})

	require.Len(t, n.Sales, 2, "sale intents are not deduplicated")
	assert.Equal(t, 4, n.Sales[0].SourceRow)
	assert.Equal(t, 5, n.Sales[1].SourceRow)
}

func TestNormalizeSaleDateLayouts(t *testing.T) {
	cases := []struct {
		text string
		want time.Time
	}{
		{"2024-01-05", time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)},
		{"2024-01-05 13:30:00", time.Date(2024, 1, 5, 13, 30, 0, 0, time.UTC)},
		{"01/05/2024", time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)},
		{"2024/01/05", time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)},
	}

	for _, tc := range cases {
		n := Normalize([]models.RawImportRow{
			row(2, "Cement", "", "Acme", "", tc.text, ""),
		})
		require.Empty(t, n.Errors, "date %q should parse", tc.text)
		require.Len(t, n.Sales, 1)
		require.NotNil(t, n.Sales[0].SaleDate)
		assert.True(t, tc.want.Equal(*n.Sales[0].SaleDate), "date %q", tc.text)
	}
}

func TestNormalizeInvalidDateKeepsIntent(t *testing.T) {
	n := Normalize([]models.RawImportRow{
		row(2, "Cement", "", "Acme", "", "not a date", ""),
	})

	require.Len(t, n.Errors, 1)
	require.Len(t, n.Sales, 1)
	assert.Nil(t, n.Sales[0].SaleDate)
	assert.Nil(t, n.Sales[0].Quantity)
}

func TestNormalizeReport(t *testing.T) {
	n := Normalize([]models.RawImportRow{
		row(2, "Cement", "10", "Acme", "a@acme.com", "", "2"),
		row(3, "Sand", "bad", "Beta", "", "", ""),
	})

	report := n.Report()
	assert.Equal(t, 2, report.TotalRows)
	assert.Equal(t, 2, report.ProductsCount)
	assert.Equal(t, 2, report.CustomersCount)
	assert.Equal(t, 2, report.SalesCount)
	assert.Equal(t, 1, report.ErrorCount)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, 3, report.Errors[0].RowNumber)
}

func TestNormalizeReportEmptyErrorsIsNotNil(t *testing.T) {
	n := Normalize(nil)
	report := n.Report()
	assert.NotNil(t, report.Errors)
	assert.Empty(t, report.Errors)
}
