package importer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestReadWorkbook(t *testing.T) {
	buf := buildWorkbook(t, [][]interface{}{
		{"ProductName", "Price"},
		{"Cement", "12.50"},
	})

	grid, err := ReadWorkbook(buf)
	require.NoError(t, err)
	require.Len(t, grid, 2)
	assert.Equal(t, "ProductName", grid[0][0])
	assert.Equal(t, "Cement", grid[1][0])
}

func TestReadWorkbookRejectsGarbage(t *testing.T) {
	_, err := ReadWorkbook(bytes.NewBufferString("not an xlsx file"))
	assert.Error(t, err)
}

func TestExtractRowsHeaderMatching(t *testing.T) {
	grid := [][]string{
		{"  productname ", "PRICE", "CustomerName", "email", "SaleDate", "Quantity"},
		{"Cement", "10", "Acme", "a@b.com", "2024-01-05", "3"},
	}

	rows := ExtractRows(grid)
	require.Len(t, rows, 1)
	assert.Equal(t, 2, rows[0].RowNumber)
	assert.Equal(t, "Cement", rows[0].ProductName)
	assert.Equal(t, "10", rows[0].PriceText)
	assert.Equal(t, "Acme", rows[0].CustomerName)
	assert.Equal(t, "a@b.com", rows[0].Email)
	assert.Equal(t, "2024-01-05", rows[0].SaleDateText)
	assert.Equal(t, "3", rows[0].QuantityText)
}

func TestExtractRowsDuplicateHeaderFirstWins(t *testing.T) {
	grid := [][]string{
		{"ProductName", "ProductName"},
		{"first", "second"},
	}

	rows := ExtractRows(grid)
	require.Len(t, rows, 1)
	assert.Equal(t, "first", rows[0].ProductName)
}

func TestExtractRowsSkipsBlankRowsKeepsNumbers(t *testing.T) {
	grid := [][]string{
		{"ProductName", "CustomerName"},
		{"Cement", "Acme"},
		{"", "  "},
		{"Sand", "Beta"},
	}

	rows := ExtractRows(grid)
	require.Len(t, rows, 2)
	assert.Equal(t, 2, rows[0].RowNumber)
	assert.Equal(t, 4, rows[1].RowNumber)
	assert.Equal(t, "Sand", rows[1].ProductName)
}

func TestExtractRowsMissingColumnsAndShortRows(t *testing.T) {
	grid := [][]string{
		{"ProductName", "Price", "CustomerName"},
		{"Cement"},
	}

	rows := ExtractRows(grid)
	require.Len(t, rows, 1)
	assert.Equal(t, "Cement", rows[0].ProductName)
	assert.Equal(t, "", rows[0].PriceText)
	assert.Equal(t, "", rows[0].CustomerName)
	assert.Equal(t, "", rows[0].Email)
}

func TestExtractRowsTrimsCellValues(t *testing.T) {
	grid := [][]string{
		{"ProductName", "CustomerName"},
		{"  Cement  ", " Acme "},
	}

	rows := ExtractRows(grid)
	require.Len(t, rows, 1)
	assert.Equal(t, "Cement", rows[0].ProductName)
	assert.Equal(t, "Acme", rows[0].CustomerName)
}
