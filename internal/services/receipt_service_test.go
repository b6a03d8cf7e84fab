package services

import (
	"testing"
	"time"

	"backoffice-service/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSale() *models.Sale {
	product := &models.Product{
		ID:        uuid.New(),
		Name:      "Cement Bag 50kg",
		UnitPrice: 12.5,
	}

	return &models.Sale{
		ID:         uuid.New(),
		CustomerID: uuid.New(),
		Date:       time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
		Subtotal:   125.0,
		Tax:        23.75,
		Total:      148.75,
		Status:     models.SaleStatusConfirmed,
		Customer: &models.Customer{
			ID:       uuid.New(),
			FullName: "Acme Construction",
			Email:    "orders@acme.com",
		},
		Items: []models.SaleItem{
			{
				ID:        uuid.New(),
				ProductID: product.ID,
				Quantity:  10,
				UnitPrice: 12.5,
				Amount:    125.0,
				Product:   product,
			},
		},
	}
}

func TestGenerateReceiptReturnsPDF(t *testing.T) {
	service := NewReceiptService()

	data, contentType, err := service.GenerateReceipt(testSale())
	require.NoError(t, err)

	assert.Equal(t, "application/pdf", contentType)
	require.Greater(t, len(data), 4)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestGenerateReceiptWithoutPreloads(t *testing.T) {
	service := NewReceiptService()

	sale := testSale()
	sale.Customer = nil
	sale.Items[0].Product = nil

	data, contentType, err := service.GenerateReceipt(sale)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", contentType)
	assert.NotEmpty(t, data)
}

func TestReceiptNumberUsesSaleID(t *testing.T) {
	sale := testSale()

	number := receiptNumber(sale)

	assert.Len(t, number, len("RCP-")+8)
	assert.Equal(t, "RCP-", number[:4])
	assert.Equal(t, number, receiptNumber(sale))
}
