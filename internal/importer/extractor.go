package importer

import (
	"fmt"
	"io"
	"strings"

	"backoffice-service/internal/models"
	"github.com/xuri/excelize/v2"
)

// ReadWorkbook opens an uploaded xlsx file and returns the cell grid of
// its first sheet, header row included.
func ReadWorkbook(file io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets found in Excel file")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("Excel file is empty")
	}

	return rows, nil
}

// ExtractRows maps the cell grid into raw import rows. Row 1 is scanned
// for headers (case-insensitive, first occurrence wins); rows 2..N are
// emitted in sheet order with their 1-based row numbers. A row whose
// cells are all blank after trimming is skipped entirely.
func ExtractRows(grid [][]string) []models.RawImportRow {
	headerIdx := make(map[string]int)
	for col, header := range grid[0] {
		key := strings.ToLower(strings.TrimSpace(header))
		if key == "" {
			continue
		}
		if _, ok := headerIdx[key]; !ok {
			headerIdx[key] = col
		}
	}

	cell := func(row []string, header string) string {
		idx, ok := headerIdx[strings.ToLower(header)]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	var raws []models.RawImportRow
	for i, row := range grid[1:] {
		blank := true
		for _, v := range row {
			if strings.TrimSpace(v) != "" {
				blank = false
				break
			}
		}
		if blank {
			continue
		}

		raws = append(raws, models.RawImportRow{
			RowNumber:    i + 2,
			ProductName:  cell(row, models.ImportColProductName),
			PriceText:    cell(row, models.ImportColPrice),
			CustomerName: cell(row, models.ImportColCustomerName),
			Email:        cell(row, models.ImportColEmail),
			SaleDateText: cell(row, models.ImportColSaleDate),
			QuantityText: cell(row, models.ImportColQuantity),
		})
	}

	return raws
}
