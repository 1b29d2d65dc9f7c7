// Package injector writes extracted values into the label rows of document
// tables.
//
// Each table is walked top to bottom with an explicit State. A header row
// naming a metric opens it; label rows beneath receive that metric's values;
// the reset policy closes it again. State never crosses a table boundary.
package injector

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ukaji3/nqtlfill-go/pkg/nqtlfill/catalog"
	"github.com/ukaji3/nqtlfill-go/pkg/nqtlfill/models"
	"github.com/ukaji3/nqtlfill-go/pkg/nqtlfill/normalize"
)

// LabelPlacement locates the label cell of a data row.
type LabelPlacement string

const (
	// PlacementHeader reads the label from the header cell itself.
	PlacementHeader LabelPlacement = "header"
	// PlacementAdjacent reads the label from the cell after the header cell.
	PlacementAdjacent LabelPlacement = "adjacent"
	// PlacementFixed reads the label from Config.LabelColumn.
	PlacementFixed LabelPlacement = "fixed"
)

// ResetPolicy decides which rows close the active metric.
type ResetPolicy string

const (
	// ResetBlankHeader closes on a row whose header cell is blank.
	ResetBlankHeader ResetPolicy = "blank-header"
	// ResetBlankRow closes on a row whose cells are all blank.
	ResetBlankRow ResetPolicy = "blank-row"
	// ResetNever keeps the metric until the next header or the table end.
	ResetNever ResetPolicy = "never"
)

// ErrShortRow marks a row lacking the header or label cell the layout needs.
var ErrShortRow = errors.New("row has fewer cells than the layout requires")

// RowError is a row skipped during injection. Table and Row are 1-based.
type RowError struct {
	Table int
	Row   int
	Err   error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("table %d row %d skipped: %v", e.Table, e.Row, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// Config configures an Injector.
type Config struct {
	// HeaderColumn is the cell tested for a metric header.
	HeaderColumn int
	// Placement locates the label cell.
	Placement LabelPlacement
	// LabelColumn is the label cell index under PlacementFixed.
	LabelColumn int
	// Reset is the reset policy. When empty it resolves to ResetBlankHeader
	// for PlacementHeader and ResetBlankRow otherwise.
	Reset ResetPolicy
	// Metrics classifies header text.
	Metrics catalog.Matcher[string]
	// Labels classifies label cells.
	Labels catalog.Matcher[models.Label]
	// Logger receives per-row debug output.
	Logger *zap.Logger
	// OnSkip, when set, is called for every row Step could not process.
	OnSkip func(*RowError)
}

// EffectiveReset returns the reset policy after resolving the default.
func (c Config) EffectiveReset() ResetPolicy {
	if c.Reset != "" {
		return c.Reset
	}
	if c.Placement == PlacementHeader || c.Placement == "" {
		return ResetBlankHeader
	}
	return ResetBlankRow
}

// Injector fills document tables from an ExtractionResult.
type Injector struct {
	cfg Config
	log *zap.Logger
}

// New returns an Injector; nil matchers default to the built-in catalogs
// (fuzzy for headers, strict for labels).
func New(cfg Config) *Injector {
	if cfg.Placement == "" {
		cfg.Placement = PlacementHeader
	}
	if cfg.Metrics == nil {
		cfg.Metrics = catalog.Fuzzy(catalog.DefaultMetrics())
	}
	if cfg.Labels == nil {
		cfg.Labels = catalog.Strict(catalog.DefaultLabels())
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Injector{cfg: cfg, log: log}
}

// Inject fills every table of doc and returns the number of rows that
// received at least one value. The caller must not share doc with a
// concurrent Inject.
func (in *Injector) Inject(doc *models.Document, result models.ExtractionResult) int {
	if doc == nil {
		return 0
	}
	updated := 0
	for i, table := range doc.Tables {
		n := in.walk(i+1, table, result)
		if n > 0 {
			in.log.Debug("table updated", zap.Int("table", i+1), zap.Int("rows", n))
		}
		updated += n
	}
	return updated
}

// InjectTable walks one table from NoActiveMetric.
func (in *Injector) InjectTable(table *models.Table, result models.ExtractionResult) int {
	return in.walk(1, table, result)
}

func (in *Injector) walk(index int, table *models.Table, result models.ExtractionResult) int {
	if table == nil {
		return 0
	}
	updated := 0
	state := NoActiveMetric()
	for i, row := range table.Rows {
		next, written, err := in.Step(state, row, result)
		if err != nil {
			skip := &RowError{Table: index, Row: i + 1, Err: err}
			in.log.Debug("row skipped", zap.Error(skip))
			if in.cfg.OnSkip != nil {
				in.cfg.OnSkip(skip)
			}
		}
		if written > 0 {
			updated++
		}
		state = next
	}
	return updated
}

// Step processes one row in state and returns the next state and the
// number of cells written. A row missing the header or label cell yields an
// error wrapping ErrShortRow.
//
// A header is classified to exactly one metric, the earliest declared one
// whose fragment it contains. When result holds no values for that metric
// the state becomes NoActiveMetric, even if the header also names a later
// metric that result does hold.
func (in *Injector) Step(state State, row *models.Row, result models.ExtractionResult) (State, int, error) {
	headerCell, ok := cellText(row, in.cfg.HeaderColumn)
	if !ok {
		return state, 0, fmt.Errorf("header column %d: %w", in.cfg.HeaderColumn, ErrShortRow)
	}
	header := normalize.Header(headerCell)

	if metric, ok := in.cfg.Metrics.Classify(header); ok {
		if result.Has(metric) {
			return Active(metric), 0, nil
		}
		// A header we hold no data for must not inherit the previous metric.
		return NoActiveMetric(), 0, nil
	}

	written := 0
	var err error
	if metric, ok := state.Metric(); ok {
		written, err = in.fill(row, metric, result)
	}

	if in.resets(row, header) {
		state = NoActiveMetric()
	}
	return state, written, err
}

// labelColumn returns the label cell index for the configured placement.
func (in *Injector) labelColumn() int {
	switch in.cfg.Placement {
	case PlacementAdjacent:
		return in.cfg.HeaderColumn + 1
	case PlacementFixed:
		return in.cfg.LabelColumn
	default:
		return in.cfg.HeaderColumn
	}
}

// fill writes the non-empty values of (metric, label) after the label cell.
// Values beyond the end of the row are dropped.
func (in *Injector) fill(row *models.Row, metric string, result models.ExtractionResult) (int, error) {
	col := in.labelColumn()
	text, ok := cellText(row, col)
	if !ok {
		return 0, fmt.Errorf("label column %d: %w", col, ErrShortRow)
	}
	label, ok := in.cfg.Labels.Classify(normalize.Header(text))
	if !ok {
		return 0, nil
	}
	values, ok := result.Get(metric, label)
	if !ok {
		return 0, nil
	}

	written := 0
	for i, v := range values {
		target := col + 1 + i
		if target >= len(row.Cells) {
			break
		}
		if v == "" || row.Cells[target] == nil {
			continue
		}
		row.Cells[target].SetText(v)
		written++
	}
	return written, nil
}

// resets applies the reset policy to a processed row.
func (in *Injector) resets(row *models.Row, header string) bool {
	switch in.cfg.EffectiveReset() {
	case ResetBlankHeader:
		return header == ""
	case ResetBlankRow:
		for i := range row.Cells {
			if text, _ := cellText(row, i); strings.TrimSpace(text) != "" {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// cellText returns the text of cell i; ok is false when the cell is missing.
func cellText(row *models.Row, i int) (string, bool) {
	if row == nil || i < 0 || i >= len(row.Cells) || row.Cells[i] == nil {
		return "", false
	}
	return row.Cells[i].Text(), true
}
