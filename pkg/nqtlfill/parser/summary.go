package parser

import (
	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/nqtlfill-go/pkg/nqtlfill/models"
)

// Summarize counts the grid's non-empty cells and locates their extent.
func Summarize(grid models.Grid) models.SheetSummary {
	sum := models.SheetSummary{Sheet: grid.Sheet, Merges: len(grid.Merges)}

	top, left, bottom, right := -1, -1, -1, -1
	for r, row := range grid.Cells {
		for c, text := range row {
			if text == "" {
				continue
			}
			sum.Cells++
			if top < 0 {
				top = r
			}
			bottom = r
			if left < 0 || c < left {
				left = c
			}
			right = max(right, c)
		}
	}
	if sum.Cells == 0 {
		return sum
	}

	// Grid coordinates are 0-based; excelize names cells from (1, 1).
	if start, err := excelize.CoordinatesToCellName(left+1, top+1); err == nil {
		if end, err := excelize.CoordinatesToCellName(right+1, bottom+1); err == nil {
			sum.Range = start + ":" + end
		}
	}
	return sum
}
