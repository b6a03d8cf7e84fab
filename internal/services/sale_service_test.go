package services

import (
	"testing"

	"backoffice-service/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestComputeTotalsSumsLineAmounts(t *testing.T) {
	items := []models.SaleItem{
		{Quantity: 10, UnitPrice: 2.50, Amount: 25.0},
		{Quantity: 2, UnitPrice: 7.25, Amount: 14.5},
	}

	totals := ComputeTotals(items, 0.19)

	assert.InDelta(t, 39.5, totals.Subtotal, 0.0001)
	assert.InDelta(t, 39.5*0.19, totals.Tax, 0.0001)
	assert.InDelta(t, 39.5+39.5*0.19, totals.Total, 0.0001)
}

func TestComputeTotalsSingleItem(t *testing.T) {
	items := []models.SaleItem{
		{Quantity: 1, UnitPrice: 100.0, Amount: 100.0},
	}

	totals := ComputeTotals(items, 0.19)

	assert.InDelta(t, 100.0, totals.Subtotal, 0.0001)
	assert.InDelta(t, 19.0, totals.Tax, 0.0001)
	assert.InDelta(t, 119.0, totals.Total, 0.0001)
}

func TestComputeTotalsZeroTaxRate(t *testing.T) {
	items := []models.SaleItem{
		{Quantity: 3, UnitPrice: 5.0, Amount: 15.0},
	}

	totals := ComputeTotals(items, 0)

	assert.InDelta(t, 15.0, totals.Subtotal, 0.0001)
	assert.Zero(t, totals.Tax)
	assert.InDelta(t, 15.0, totals.Total, 0.0001)
}

func TestComputeTotalsNoItems(t *testing.T) {
	totals := ComputeTotals(nil, 0.19)

	assert.Zero(t, totals.Subtotal)
	assert.Zero(t, totals.Tax)
	assert.Zero(t, totals.Total)
}
