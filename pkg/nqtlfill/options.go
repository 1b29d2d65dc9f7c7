// Package nqtlfill transplants NQTL operational figures from a spreadsheet
// workbook into the tables of a word-processing document template.
package nqtlfill

import (
	"go.uber.org/zap"

	"github.com/ukaji3/nqtlfill-go/pkg/nqtlfill/catalog"
	"github.com/ukaji3/nqtlfill-go/pkg/nqtlfill/extractor"
	"github.com/ukaji3/nqtlfill-go/pkg/nqtlfill/injector"
)

// Options configures extraction and injection.
type Options struct {
	// Scope selects how anchor rows are recognised.
	Scope extractor.AnchorScope
	// AnchorColumns is the number of leading cells tested for a metric.
	AnchorColumns int
	// Window is the number of rows after an anchor searched for labels.
	Window int
	// ValueWidth is the number of figures captured per label.
	ValueWidth int
	// StopAtNextAnchor closes a window at the next anchor row.
	// If nil, defaults to true.
	StopAtNextAnchor *bool
	// MergeAware reads merged ranges and skips over merged label cells.
	// If nil, defaults to true.
	MergeAware *bool

	// HeaderColumn is the document cell tested for a metric header.
	HeaderColumn int
	// Placement locates the label cell of document rows.
	Placement injector.LabelPlacement
	// LabelColumn is the label cell under the fixed placement.
	LabelColumn int
	// Reset is the reset policy; empty picks the placement's default.
	Reset injector.ResetPolicy

	// ExtraMetrics are appended to the built-in catalog, after it in
	// precedence.
	ExtraMetrics []catalog.Entry[string]

	// Logger receives diagnostics. If nil, logging is disabled.
	Logger *zap.Logger
}

// DefaultOptions returns default options.
func DefaultOptions() Options {
	return Options{
		Scope:         extractor.ScopeColumns,
		AnchorColumns: extractor.DefaultAnchorColumns,
		Window:        extractor.DefaultWindow,
		ValueWidth:    extractor.DefaultValueWidth,
		Placement:     injector.PlacementHeader,
	}
}

// ShouldStopAtNextAnchor returns whether windows close at the next anchor.
func (o Options) ShouldStopAtNextAnchor() bool {
	if o.StopAtNextAnchor != nil {
		return *o.StopAtNextAnchor
	}
	return true
}

// ShouldMergeAware returns whether merged ranges are honoured.
func (o Options) ShouldMergeAware() bool {
	if o.MergeAware != nil {
		return *o.MergeAware
	}
	return true
}

// Metrics returns the metric catalog in effect.
func (o Options) Metrics() *catalog.Catalog[string] {
	c := catalog.DefaultMetrics()
	if len(o.ExtraMetrics) > 0 {
		c = c.Extend(o.ExtraMetrics...)
	}
	return c
}

func (o Options) logger() *zap.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return zap.NewNop()
}

func (o Options) extractorConfig(metrics *catalog.Catalog[string]) extractor.Config {
	return extractor.Config{
		Scope:            o.Scope,
		AnchorColumns:    o.AnchorColumns,
		Window:           o.Window,
		ValueWidth:       o.ValueWidth,
		StopAtNextAnchor: o.ShouldStopAtNextAnchor(),
		MergeAware:       o.ShouldMergeAware(),
		Metrics:          catalog.Fuzzy(metrics),
		Labels:           catalog.LabelMatcher(),
		Logger:           o.logger().Named("extract"),
	}
}

func (o Options) injectorConfig(metrics *catalog.Catalog[string]) injector.Config {
	return injector.Config{
		HeaderColumn: o.HeaderColumn,
		Placement:    o.Placement,
		LabelColumn:  o.LabelColumn,
		Reset:        o.Reset,
		Metrics:      catalog.Fuzzy(metrics),
		Labels:       catalog.Strict(catalog.DefaultLabels()),
		Logger:       o.logger().Named("inject"),
	}
}
