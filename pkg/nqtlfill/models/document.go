package models

// Cell is a mutable text container in a document table.
type Cell struct {
	text    string
	changed bool
}

// NewCell returns a cell holding text.
func NewCell(text string) *Cell {
	return &Cell{text: text}
}

// Text returns the cell's current text.
func (c *Cell) Text() string {
	return c.text
}

// SetText replaces the cell's text. Setting identical text is not a change.
func (c *Cell) SetText(text string) {
	if text == c.text {
		return
	}
	c.text = text
	c.changed = true
}

// Changed reports whether SetText altered the cell.
func (c *Cell) Changed() bool {
	return c.changed
}

// Row is one table row.
type Row struct {
	Cells []*Cell
}

// NewRow builds a row from plain cell texts.
func NewRow(texts ...string) *Row {
	cells := make([]*Cell, len(texts))
	for i, t := range texts {
		cells[i] = NewCell(t)
	}
	return &Row{Cells: cells}
}

// Texts returns the current text of every cell.
func (r *Row) Texts() []string {
	out := make([]string, len(r.Cells))
	for i, c := range r.Cells {
		out[i] = c.Text()
	}
	return out
}

// Table is one document table.
type Table struct {
	Rows []*Row
}

// Document is the table structure of a word-processing document.
type Document struct {
	Tables []*Table
}
