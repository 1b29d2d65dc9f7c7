package parser

import (
	"github.com/ukaji3/nqtlfill-go/pkg/nqtlfill/models"
	"github.com/ukaji3/nqtlfill-go/pkg/nqtlfill/normalize"
	"github.com/xuri/excelize/v2"
)

// ExtractGrid reads a sheet as a rectangular text grid. Cells are read as
// displayed text; absent markers ("nan", "#N/A", ...) become empty strings.
// When mergeAware is set the sheet's merged ranges are attached to the grid.
func ExtractGrid(f *excelize.File, sheetName string, mergeAware bool) (models.Grid, error) {
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return models.Grid{}, err
	}

	for _, row := range rows {
		for colIdx, cellValue := range row {
			row[colIdx] = coerceText(cellValue)
		}
	}

	grid := models.NewGrid(sheetName, rows)
	if mergeAware && grid.Rows() > 0 {
		merges, err := ExtractMerges(f, sheetName)
		if err != nil {
			return grid, err
		}
		grid.Merges = merges
	}

	return grid, nil
}

// coerceText maps a cell's text form to the value used for matching.
func coerceText(s string) string {
	return normalize.Value(s)
}
