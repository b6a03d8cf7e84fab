package importer

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"backoffice-service/internal/models"
	"github.com/google/uuid"
)

// Store is the persistence capability the reconciler needs. The
// production implementation wraps a database transaction; tests use an
// in-memory fake.
type Store interface {
	Products() ([]*models.Product, error)
	Customers() ([]*models.Customer, error)
	CreateProduct(p *models.Product) error
	UpdateProduct(p *models.Product) error
	CreateCustomer(c *models.Customer) error
	UpdateCustomer(c *models.Customer) error
	CreateSale(s *models.Sale) error
	// Flush makes upserted products and customers visible to the sale
	// inserts that follow. IDs are assigned client-side, so for the
	// transactional store this is a checkpoint, not a round trip.
	Flush() error
}

// Reconciler merges normalized import tables into the store. It must
// only run when normalization produced zero errors, and the caller is
// responsible for wrapping Apply in a single transaction.
type Reconciler struct {
	taxRate float64
	now     func() time.Time
}

func NewReconciler(taxRate float64) *Reconciler {
	return &Reconciler{taxRate: taxRate, now: time.Now}
}

// Apply upserts products and customers by case-insensitive name, then
// creates one sale per intent. Any error aborts the whole batch; the
// caller rolls back the enclosing transaction.
func (r *Reconciler) Apply(store Store, tenantID string, n *Normalized) error {
	products, err := r.upsertProducts(store, tenantID, n)
	if err != nil {
		return err
	}

	customers, err := r.upsertCustomers(store, tenantID, n)
	if err != nil {
		return err
	}

	if err := store.Flush(); err != nil {
		return fmt.Errorf("failed to flush upserted records: %w", err)
	}

	return r.insertSales(store, tenantID, n, products, customers)
}

func (r *Reconciler) upsertProducts(store Store, tenantID string, n *Normalized) (map[string]*models.Product, error) {
	existing, err := store.Products()
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}

	byName := make(map[string]*models.Product, len(existing))
	for _, p := range existing {
		byName[nameKey(p.Name)] = p
	}

	for _, key := range sortedKeys(n.Products) {
		imp := n.Products[key]
		if p, ok := byName[key]; ok {
			if imp.Price != nil {
				p.UnitPrice = *imp.Price
			}
			p.IsActive = true
			if err := store.UpdateProduct(p); err != nil {
				return nil, fmt.Errorf("failed to update product '%s': %w", imp.Name, err)
			}
			continue
		}

		p := &models.Product{
			ID:       uuid.New(),
			TenantID: tenantID,
			Name:     imp.Name,
			Stock:    0,
			IsActive: true,
		}
		if imp.Price != nil {
			p.UnitPrice = *imp.Price
		}
		if err := store.CreateProduct(p); err != nil {
			return nil, fmt.Errorf("failed to create product '%s': %w", imp.Name, err)
		}
		byName[key] = p
	}

	return byName, nil
}

func (r *Reconciler) upsertCustomers(store Store, tenantID string, n *Normalized) (map[string]*models.Customer, error) {
	existing, err := store.Customers()
	if err != nil {
		return nil, fmt.Errorf("failed to load customers: %w", err)
	}

	byName := make(map[string]*models.Customer, len(existing))
	for _, c := range existing {
		byName[nameKey(c.FullName)] = c
	}

	for _, key := range sortedKeys(n.Customers) {
		imp := n.Customers[key]
		if c, ok := byName[key]; ok {
			if imp.Email != "" {
				c.Email = imp.Email
			}
			c.IsActive = true
			if err := store.UpdateCustomer(c); err != nil {
				return nil, fmt.Errorf("failed to update customer '%s': %w", imp.Name, err)
			}
			continue
		}

		c := &models.Customer{
			ID:             uuid.New(),
			TenantID:       tenantID,
			FullName:       imp.Name,
			Email:          imp.Email,
			DocumentNumber: importDocumentNumber(),
			PhoneNumber:    "",
			Age:            0,
			IsActive:       true,
		}
		if err := store.CreateCustomer(c); err != nil {
			return nil, fmt.Errorf("failed to create customer '%s': %w", imp.Name, err)
		}
		byName[key] = c
	}

	return byName, nil
}

// Sale intents always resolve against the post-upsert maps: every name
// that reaches this point was either matched or freshly inserted above.
// A miss means the batch is inconsistent, so it aborts the transaction
// instead of silently skipping the sale.
func (r *Reconciler) insertSales(store Store, tenantID string, n *Normalized, products map[string]*models.Product, customers map[string]*models.Customer) error {
	for _, intent := range n.Sales {
		product, ok := products[nameKey(intent.ProductName)]
		if !ok {
			return fmt.Errorf("product '%s' not found after upsert (row %d)", intent.ProductName, intent.SourceRow)
		}
		customer, ok := customers[nameKey(intent.CustomerName)]
		if !ok {
			return fmt.Errorf("customer '%s' not found after upsert (row %d)", intent.CustomerName, intent.SourceRow)
		}

		qty := 1
		if intent.Quantity != nil {
			qty = *intent.Quantity
		}

		date := r.now().UTC()
		if intent.SaleDate != nil {
			date = intent.SaleDate.UTC()
		}

		amount := float64(qty) * product.UnitPrice
		subtotal := amount
		tax := subtotal * r.taxRate

		sale := &models.Sale{
			ID:         uuid.New(),
			TenantID:   tenantID,
			CustomerID: customer.ID,
			Date:       date,
			Subtotal:   subtotal,
			Tax:        tax,
			Total:      subtotal + tax,
			Status:     models.SaleStatusConfirmed,
			Notes:      "Imported from Excel",
			Items: []models.SaleItem{{
				ID:        uuid.New(),
				ProductID: product.ID,
				Quantity:  qty,
				UnitPrice: product.UnitPrice,
				Amount:    amount,
			}},
		}
		if err := store.CreateSale(sale); err != nil {
			return fmt.Errorf("failed to create sale for row %d: %w", intent.SourceRow, err)
		}
	}

	return nil
}

func importDocumentNumber() string {
	return "IMPORT-" + strings.ReplaceAll(uuid.New().String(), "-", "")
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
