package models

// MergeRange represents the 0-based inclusive bounds of a merged cell range.
type MergeRange struct {
	// R1 is the start row.
	R1 int `json:"r1"`
	// C1 is the start column.
	C1 int `json:"c1"`
	// R2 is the end row (inclusive).
	R2 int `json:"r2"`
	// C2 is the end column (inclusive).
	C2 int `json:"c2"`
}

// Contains reports whether (row, col) lies inside the range.
func (m MergeRange) Contains(row, col int) bool {
	return row >= m.R1 && row <= m.R2 && col >= m.C1 && col <= m.C2
}

// Grid is a rectangular, 0-indexed, row-major text view of one sheet.
type Grid struct {
	// Sheet is the sheet name.
	Sheet string `json:"sheet"`
	// Cells holds the cell text; every row has the same length.
	Cells [][]string `json:"cells"`
	// Merges lists merged ranges on the sheet.
	Merges []MergeRange `json:"merges,omitempty"`
}

// NewGrid pads ragged rows to a rectangle.
func NewGrid(sheet string, rows [][]string) Grid {
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	cells := make([][]string, len(rows))
	for i, row := range rows {
		padded := make([]string, width)
		copy(padded, row)
		cells[i] = padded
	}
	return Grid{Sheet: sheet, Cells: cells}
}

// Rows returns the number of rows.
func (g Grid) Rows() int {
	return len(g.Cells)
}

// Cols returns the number of columns.
func (g Grid) Cols() int {
	if len(g.Cells) == 0 {
		return 0
	}
	return len(g.Cells[0])
}

// Cell returns the text at (row, col); ok is false when out of bounds.
func (g Grid) Cell(row, col int) (string, bool) {
	if row < 0 || row >= len(g.Cells) {
		return "", false
	}
	r := g.Cells[row]
	if col < 0 || col >= len(r) {
		return "", false
	}
	return r[col], true
}

// SpanEnd returns the last column of the merged range covering (row, col),
// or col itself when the cell is not merged.
func (g Grid) SpanEnd(row, col int) int {
	for _, m := range g.Merges {
		if m.Contains(row, col) {
			return m.C2
		}
	}
	return col
}

// Workbook is the set of sheet grids read from one spreadsheet file.
type Workbook struct {
	// BookName is the workbook file name (no path).
	BookName string `json:"book_name"`
	// Sheets holds the grids in workbook order.
	Sheets []Grid `json:"sheets"`
}
