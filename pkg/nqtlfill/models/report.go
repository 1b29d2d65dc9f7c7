package models

// Report is the diagnostics view of one run.
type Report struct {
	// Metrics maps metric name to label display name to the captured figures.
	Metrics map[string]map[string][]string `json:"metrics" yaml:"metrics"`
	// RowsUpdated is the number of document rows that received at least one value.
	RowsUpdated int `json:"rows_updated" yaml:"rows_updated"`
	// Warnings lists non-fatal problems (unreadable sheets, zero updates).
	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	// NonNumeric lists captured figures that do not read as numbers.
	NonNumeric []FigureNote `json:"non_numeric,omitempty" yaml:"non_numeric,omitempty"`
	// SkippedRows lists document rows too short for the table layout.
	SkippedRows []string `json:"skipped_rows,omitempty" yaml:"skipped_rows,omitempty"`
	// Sheets describes every sheet read from the workbook, in workbook order.
	Sheets []SheetSummary `json:"sheets,omitempty" yaml:"sheets,omitempty"`
}

// FigureNote points at one captured figure.
type FigureNote struct {
	Metric   string `json:"metric" yaml:"metric"`
	Label    string `json:"label" yaml:"label"`
	Position int    `json:"position" yaml:"position"`
	Value    string `json:"value" yaml:"value"`
}

// SheetSummary describes one workbook sheet that was read.
type SheetSummary struct {
	Sheet string `json:"sheet" yaml:"sheet"`
	// Range is the A1-style extent of the non-empty cells, empty for a
	// blank sheet.
	Range  string `json:"range,omitempty" yaml:"range,omitempty"`
	Cells  int    `json:"cells" yaml:"cells"`
	Merges int    `json:"merges" yaml:"merges"`
}
