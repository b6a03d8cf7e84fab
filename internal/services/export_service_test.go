package services

import (
	"testing"

	"backoffice-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestImportTemplateWorkbook(t *testing.T) {
	service := NewExportService(nil, nil, nil)

	buf, err := service.ImportTemplateWorkbook()
	require.NoError(t, err)
	require.NotZero(t, buf.Len())

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Import")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	columns := models.BulkImportColumns()
	require.Len(t, rows[0], len(columns))
	for i, col := range columns {
		assert.Equal(t, col.Name, rows[0][i])
		assert.Equal(t, col.Example, rows[1][i])
	}
}

func TestNewWorkbookRenamesDefaultSheet(t *testing.T) {
	f, err := newWorkbook("Products", []interface{}{"Name", "SKU"})
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, "Products", f.GetSheetName(0))

	rows, err := f.GetRows("Products")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"Name", "SKU"}, rows[0])
}

func TestWriteRowAppendsBelowHeader(t *testing.T) {
	f, err := newWorkbook("Products", []interface{}{"Name", "UnitPrice"})
	require.NoError(t, err)
	defer f.Close()

	require.NoError(t, writeRow(f, "Products", 2, []interface{}{"Cement Bag 50kg", 12.5}))
	require.NoError(t, writeRow(f, "Products", 3, []interface{}{"Steel Rod", 4.75}))

	rows, err := f.GetRows("Products")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Cement Bag 50kg", rows[1][0])
	assert.Equal(t, "Steel Rod", rows[2][0])
}
