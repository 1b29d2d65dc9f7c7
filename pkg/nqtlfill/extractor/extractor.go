// Package extractor scans spreadsheet grids for metric anchors and harvests
// the labeled value rows beneath them.
package extractor

import (
	"strings"

	"go.uber.org/zap"

	"github.com/ukaji3/nqtlfill-go/pkg/nqtlfill/catalog"
	"github.com/ukaji3/nqtlfill-go/pkg/nqtlfill/models"
	"github.com/ukaji3/nqtlfill-go/pkg/nqtlfill/normalize"
)

// AnchorScope selects which text of a row is tested for a metric.
type AnchorScope string

const (
	// ScopeColumns tests each of the first AnchorColumns cells on its own.
	ScopeColumns AnchorScope = "columns"
	// ScopeRow tests the concatenated text of the whole row.
	ScopeRow AnchorScope = "row"
)

// Defaults used when a Config field is left zero.
const (
	DefaultWindow        = 14
	DefaultValueWidth    = 3
	DefaultAnchorColumns = 2
)

// Config configures an Extractor.
type Config struct {
	// Scope is the anchor strategy.
	Scope AnchorScope
	// AnchorColumns is the number of leading cells tested under ScopeColumns.
	AnchorColumns int
	// Window is the number of rows after an anchor searched for labels.
	Window int
	// ValueWidth is the number of cells captured to the right of a label.
	ValueWidth int
	// StopAtNextAnchor closes a window at the next anchor row.
	StopAtNextAnchor bool
	// MergeAware starts value capture after a horizontally merged label.
	MergeAware bool
	// Metrics classifies anchor text.
	Metrics catalog.Matcher[string]
	// Labels classifies label cells.
	Labels catalog.Matcher[models.Label]
	// Logger receives per-anchor debug output.
	Logger *zap.Logger
}

// DefaultConfig returns the configuration used by the assembly pipeline.
func DefaultConfig() Config {
	return Config{
		Scope:            ScopeColumns,
		AnchorColumns:    DefaultAnchorColumns,
		Window:           DefaultWindow,
		ValueWidth:       DefaultValueWidth,
		StopAtNextAnchor: true,
		MergeAware:       true,
	}
}

// Extractor builds an ExtractionResult from grids. It holds no per-run
// state and may be reused.
type Extractor struct {
	cfg Config
	log *zap.Logger
}

// New returns an Extractor; zero fields of cfg take their defaults.
func New(cfg Config) *Extractor {
	if cfg.Scope == "" {
		cfg.Scope = ScopeColumns
	}
	if cfg.AnchorColumns <= 0 {
		cfg.AnchorColumns = DefaultAnchorColumns
	}
	if cfg.Window <= 0 {
		cfg.Window = DefaultWindow
	}
	if cfg.ValueWidth <= 0 {
		cfg.ValueWidth = DefaultValueWidth
	}
	if cfg.Metrics == nil {
		cfg.Metrics = catalog.Fuzzy(catalog.DefaultMetrics())
	}
	if cfg.Labels == nil {
		cfg.Labels = catalog.LabelMatcher()
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Extractor{cfg: cfg, log: log}
}

// Extract scans every grid in order into a fresh result.
func (e *Extractor) Extract(grids ...models.Grid) models.ExtractionResult {
	result := models.NewExtractionResult()
	for _, g := range grids {
		e.ExtractGrid(result, g)
	}
	return result
}

// ExtractGrid scans one grid into result, overwriting any (metric, label)
// pair it captures again. A capture with no values never replaces one that
// has values. Empty grids are skipped.
func (e *Extractor) ExtractGrid(result models.ExtractionResult, grid models.Grid) {
	rows := grid.Rows()
	if rows == 0 {
		return
	}

	anchors := make([]string, rows)
	for r := 0; r < rows; r++ {
		if metric, ok := e.anchor(grid, r); ok {
			anchors[r] = metric
		}
	}

	for r, metric := range anchors {
		if metric == "" {
			continue
		}
		e.log.Debug("metric anchor",
			zap.String("sheet", grid.Sheet),
			zap.Int("row", r+1),
			zap.String("metric", metric))

		for i := 1; i <= e.cfg.Window && r+i < rows; i++ {
			row := r + i
			if e.cfg.StopAtNextAnchor && anchors[row] != "" {
				break
			}
			label, values, ok := e.harvest(grid, row)
			if !ok {
				continue
			}
			prev, seen := result.Get(metric, label)
			if seen && values.Empty() && !prev.Empty() {
				e.log.Debug("empty capture ignored",
					zap.String("metric", metric),
					zap.String("label", string(label)),
					zap.Int("row", row+1))
				continue
			}
			if seen {
				e.log.Debug("overwriting earlier values",
					zap.String("metric", metric),
					zap.String("label", string(label)),
					zap.Strings("previous", prev))
			}
			result.Set(metric, label, values)
		}
	}
}

// anchor classifies row r as a metric anchor.
func (e *Extractor) anchor(grid models.Grid, r int) (string, bool) {
	switch e.cfg.Scope {
	case ScopeRow:
		if text := strings.Join(grid.Cells[r], " "); strings.TrimSpace(text) != "" {
			return e.cfg.Metrics.Classify(text)
		}
	default:
		for c := 0; c < e.cfg.AnchorColumns; c++ {
			text, ok := grid.Cell(r, c)
			if !ok {
				break
			}
			if text == "" {
				continue
			}
			if metric, ok := e.cfg.Metrics.Classify(text); ok {
				return metric, true
			}
		}
	}
	return "", false
}

// harvest finds the first label cell of row r and captures the cells to its
// right. Missing cells yield empty values.
func (e *Extractor) harvest(grid models.Grid, r int) (models.Label, models.ValueTuple, bool) {
	for c := 0; c < grid.Cols(); c++ {
		text, _ := grid.Cell(r, c)
		if text == "" {
			continue
		}
		label, ok := e.cfg.Labels.Classify(text)
		if !ok {
			continue
		}

		start := c + 1
		if e.cfg.MergeAware {
			start = grid.SpanEnd(r, c) + 1
		}
		values := make(models.ValueTuple, e.cfg.ValueWidth)
		for i := range values {
			if v, ok := grid.Cell(r, start+i); ok {
				values[i] = normalize.Value(v)
			}
		}
		return label, values, true
	}
	return "", nil, false
}
