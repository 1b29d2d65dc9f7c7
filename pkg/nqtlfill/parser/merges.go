package parser

import (
	"strings"

	"github.com/ukaji3/nqtlfill-go/pkg/nqtlfill/models"
	"github.com/xuri/excelize/v2"
)

// ExtractMerges returns the merged ranges of a sheet as 0-based bounds.
func ExtractMerges(f *excelize.File, sheetName string) ([]models.MergeRange, error) {
	mergeCells, err := f.GetMergeCells(sheetName)
	if err != nil {
		return nil, err
	}

	var result []models.MergeRange
	for _, mc := range mergeCells {
		if area := parseRangeToMerge(mc.GetStartAxis() + ":" + mc.GetEndAxis()); area != nil {
			result = append(result, *area)
		}
	}

	return result, nil
}

// parseRangeToMerge parses a range string like $A$1:$D$10.
func parseRangeToMerge(rangeStr string) *models.MergeRange {
	rangeStr = strings.ReplaceAll(rangeStr, "$", "")

	parts := strings.Split(rangeStr, ":")
	if len(parts) != 2 {
		return nil
	}

	startCol, startRow, err := excelize.CellNameToCoordinates(parts[0])
	if err != nil {
		return nil
	}

	endCol, endRow, err := excelize.CellNameToCoordinates(parts[1])
	if err != nil {
		return nil
	}

	if endRow < startRow {
		startRow, endRow = endRow, startRow
	}
	if endCol < startCol {
		startCol, endCol = endCol, startCol
	}

	return &models.MergeRange{
		R1: startRow - 1,
		C1: startCol - 1,
		R2: endRow - 1,
		C2: endCol - 1,
	}
}
