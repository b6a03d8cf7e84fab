package importer

import (
	"errors"
	"testing"
	"time"

	"backoffice-service/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	products  []*models.Product
	customers []*models.Customer
	sales     []*models.Sale
	flushed   bool

	productErr error
	saleErr    error
}

func (s *fakeStore) Products() ([]*models.Product, error) {
	if s.productErr != nil {
		return nil, s.productErr
	}
	return s.products, nil
}

func (s *fakeStore) Customers() ([]*models.Customer, error) { return s.customers, nil }

func (s *fakeStore) CreateProduct(p *models.Product) error {
	s.products = append(s.products, p)
	return nil
}

func (s *fakeStore) UpdateProduct(p *models.Product) error { return nil }

func (s *fakeStore) CreateCustomer(c *models.Customer) error {
	s.customers = append(s.customers, c)
	return nil
}

func (s *fakeStore) UpdateCustomer(c *models.Customer) error { return nil }

func (s *fakeStore) CreateSale(sale *models.Sale) error {
	if s.saleErr != nil {
		return s.saleErr
	}
	s.sales = append(s.sales, sale)
	return nil
}

func (s *fakeStore) Flush() error {
	s.flushed = true
	return nil
}

const testTenant = "tenant-1"

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func TestApplyCreatesNewProductsAndCustomers(t *testing.T) {
	store := &fakeStore{}
	n := Normalize([]models.RawImportRow{
		row(2, "Brick", "2.50", "Acme", "x@acme.com", "2024-01-05", "10"),
	})
	require.Empty(t, n.Errors)

	r := NewReconciler(0.19)
	require.NoError(t, r.Apply(store, testTenant, n))

	require.Len(t, store.products, 1)
	p := store.products[0]
	assert.Equal(t, "Brick", p.Name)
	assert.Equal(t, 2.50, p.UnitPrice)
	assert.Equal(t, 0, p.Stock)
	assert.True(t, p.IsActive)
	assert.Equal(t, testTenant, p.TenantID)
	assert.NotEqual(t, uuid.Nil, p.ID)

	require.Len(t, store.customers, 1)
	c := store.customers[0]
	assert.Equal(t, "Acme", c.FullName)
	assert.Equal(t, "x@acme.com", c.Email)
	assert.Contains(t, c.DocumentNumber, "IMPORT-")
	assert.True(t, c.IsActive)

	assert.True(t, store.flushed)

	require.Len(t, store.sales, 1)
	sale := store.sales[0]
	assert.Equal(t, c.ID, sale.CustomerID)
	assert.Equal(t, models.SaleStatusConfirmed, sale.Status)
	assert.Equal(t, "Imported from Excel", sale.Notes)
	assert.Equal(t, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), sale.Date)

	require.Len(t, sale.Items, 1)
	item := sale.Items[0]
	assert.Equal(t, p.ID, item.ProductID)
	assert.Equal(t, 10, item.Quantity)
	assert.Equal(t, 2.50, item.UnitPrice)
	assert.Equal(t, 25.0, item.Amount)
	assert.Equal(t, 25.0, sale.Subtotal)
	assert.InDelta(t, 4.75, sale.Tax, 1e-9)
	assert.InDelta(t, 29.75, sale.Total, 1e-9)
}

func TestApplyUpdatesExistingProductCaseInsensitively(t *testing.T) {
	existing := &models.Product{
		ID:        uuid.New(),
		TenantID:  testTenant,
		Name:      "BRICK",
		UnitPrice: 1.00,
		Stock:     7,
		IsActive:  false,
	}
	store := &fakeStore{products: []*models.Product{existing}}

	n := &Normalized{
		Products: map[string]*models.ImportedProduct{
			"brick": {Name: "Brick", Price: floatPtr(2.50)},
		},
		Customers: map[string]*models.ImportedCustomer{},
	}

	require.NoError(t, NewReconciler(0.19).Apply(store, testTenant, n))

	require.Len(t, store.products, 1, "no duplicate inserted")
	assert.Equal(t, 2.50, existing.UnitPrice)
	assert.True(t, existing.IsActive)
	assert.Equal(t, 7, existing.Stock, "stock untouched")
}

func TestApplyKeepsPriceWhenImportHasNone(t *testing.T) {
	existing := &models.Product{ID: uuid.New(), Name: "Brick", UnitPrice: 9.99, IsActive: false}
	store := &fakeStore{products: []*models.Product{existing}}

	n := &Normalized{
		Products: map[string]*models.ImportedProduct{
			"brick": {Name: "Brick"},
		},
		Customers: map[string]*models.ImportedCustomer{},
	}

	require.NoError(t, NewReconciler(0.19).Apply(store, testTenant, n))
	assert.Equal(t, 9.99, existing.UnitPrice)
	assert.True(t, existing.IsActive)
}

func TestApplyKeepsEmailWhenImportHasNone(t *testing.T) {
	existing := &models.Customer{ID: uuid.New(), FullName: "Acme", Email: "keep@acme.com", IsActive: false}
	store := &fakeStore{customers: []*models.Customer{existing}}

	n := &Normalized{
		Products: map[string]*models.ImportedProduct{},
		Customers: map[string]*models.ImportedCustomer{
			"acme": {Name: "acme"},
		},
	}

	require.NoError(t, NewReconciler(0.19).Apply(store, testTenant, n))
	require.Len(t, store.customers, 1)
	assert.Equal(t, "keep@acme.com", existing.Email)
	assert.True(t, existing.IsActive)
}

func TestApplySaleDefaults(t *testing.T) {
	store := &fakeStore{}
	n := &Normalized{
		Products: map[string]*models.ImportedProduct{
			"brick": {Name: "Brick", Price: floatPtr(4.00)},
		},
		Customers: map[string]*models.ImportedCustomer{
			"acme": {Name: "Acme"},
		},
		Sales: []models.ImportedSaleIntent{
			{ProductName: "Brick", CustomerName: "Acme", SourceRow: 2},
		},
	}

	fixed := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	r := NewReconciler(0.19)
	r.now = func() time.Time { return fixed }

	require.NoError(t, r.Apply(store, testTenant, n))
	require.Len(t, store.sales, 1)
	sale := store.sales[0]
	assert.Equal(t, fixed, sale.Date, "date defaults to now")
	require.Len(t, sale.Items, 1)
	assert.Equal(t, 1, sale.Items[0].Quantity, "quantity defaults to 1")
	assert.Equal(t, 4.00, sale.Subtotal)
}

func TestApplyFailsWhenSaleNamesDoNotResolve(t *testing.T) {
	store := &fakeStore{}
	n := &Normalized{
		Products:  map[string]*models.ImportedProduct{},
		Customers: map[string]*models.ImportedCustomer{},
		Sales: []models.ImportedSaleIntent{
			{ProductName: "Ghost", CustomerName: "Nobody", SourceRow: 5},
		},
	}

	err := NewReconciler(0.19).Apply(store, testTenant, n)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Ghost")
	assert.Empty(t, store.sales)
}

func TestApplyPropagatesStoreErrors(t *testing.T) {
	store := &fakeStore{productErr: errors.New("db down")}
	n := &Normalized{
		Products:  map[string]*models.ImportedProduct{},
		Customers: map[string]*models.ImportedCustomer{},
	}

	err := NewReconciler(0.19).Apply(store, testTenant, n)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db down")
}

// Mirrors the documented end-to-end behavior: a blocking validation
// error still yields full normalization counts, and a clean run of the
// same sheet persists one sale with the expected arithmetic.
func TestImportScenarioEndToEnd(t *testing.T) {
	n := Normalize([]models.RawImportRow{
		row(2, "Brick", "2.50", "Acme", "x@acme.com", "2024-01-05", "10"),
		row(3, "", "", "Beta", "", "", "3"),
	})

	report := n.Report()
	assert.Equal(t, 2, report.TotalRows)
	assert.Equal(t, 1, report.ErrorCount)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, 3, report.Errors[0].RowNumber)
	assert.Equal(t, "ProductName is required.", report.Errors[0].Message)
	assert.Equal(t, 1, report.ProductsCount)
	assert.Equal(t, 2, report.CustomersCount)
	assert.Equal(t, 1, report.SalesCount)

	// Fixing the bad row makes the batch persistable.
	clean := Normalize([]models.RawImportRow{
		row(2, "Brick", "2.50", "Acme", "x@acme.com", "2024-01-05", "10"),
		row(3, "Sand", "1.00", "Beta", "", "", "3"),
	})
	require.Empty(t, clean.Errors)

	store := &fakeStore{}
	require.NoError(t, NewReconciler(0.19).Apply(store, testTenant, clean))
	assert.Len(t, store.products, 2)
	assert.Len(t, store.customers, 2)
	assert.Len(t, store.sales, 2)
}

func TestApplyIdempotentForProductsAndCustomers(t *testing.T) {
	store := &fakeStore{}
	rows := []models.RawImportRow{
		row(2, "Brick", "2.50", "Acme", "x@acme.com", "", "1"),
	}

	require.NoError(t, NewReconciler(0.19).Apply(store, testTenant, Normalize(rows)))
	require.NoError(t, NewReconciler(0.19).Apply(store, testTenant, Normalize(rows)))

	assert.Len(t, store.products, 1)
	assert.Len(t, store.customers, 1)
	assert.Len(t, store.sales, 2, "each run creates its own sales")
}

func TestApplyQuantityOverride(t *testing.T) {
	store := &fakeStore{}
	n := &Normalized{
		Products: map[string]*models.ImportedProduct{
			"brick": {Name: "Brick", Price: floatPtr(3.00)},
		},
		Customers: map[string]*models.ImportedCustomer{
			"acme": {Name: "Acme"},
		},
		Sales: []models.ImportedSaleIntent{
			{ProductName: "Brick", CustomerName: "Acme", Quantity: intPtr(4), SourceRow: 2},
		},
	}

	require.NoError(t, NewReconciler(0.10).Apply(store, testTenant, n))
	require.Len(t, store.sales, 1)
	sale := store.sales[0]
	assert.Equal(t, 12.0, sale.Subtotal)
	assert.InDelta(t, 1.2, sale.Tax, 1e-9)
	assert.InDelta(t, 13.2, sale.Total, 1e-9)
}
