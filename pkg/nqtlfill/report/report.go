// Package report builds the diagnostics view of an assembly run.
package report

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ukaji3/nqtlfill-go/pkg/nqtlfill/models"
)

// figureNoise is stripped from a figure before it is parsed as a number.
var figureNoise = strings.NewReplacer("%", "", ",", "", "$", "", " ", "")

// Build returns the report for result. Warnings are stringified in order;
// nil warnings are dropped.
func Build(result models.ExtractionResult, rowsUpdated int, warnings []error) models.Report {
	rep := models.Report{
		Metrics:     make(map[string]map[string][]string, result.Len()),
		RowsUpdated: rowsUpdated,
	}

	for _, metric := range result.Metrics() {
		labels := make(map[string][]string)
		for _, label := range models.Labels() {
			values, ok := result.Get(metric, label)
			if !ok {
				continue
			}
			labels[label.String()] = append([]string(nil), values...)
			rep.NonNumeric = append(rep.NonNumeric, figureNotes(metric, label, values)...)
		}
		rep.Metrics[metric] = labels
	}

	for _, w := range warnings {
		if w != nil {
			rep.Warnings = append(rep.Warnings, w.Error())
		}
	}
	return rep
}

// figureNotes lists the non-empty values that do not read as numbers.
func figureNotes(metric string, label models.Label, values models.ValueTuple) []models.FigureNote {
	var notes []models.FigureNote
	for i, v := range values {
		if v == "" || IsNumeric(v) {
			continue
		}
		notes = append(notes, models.FigureNote{
			Metric:   metric,
			Label:    label.String(),
			Position: i,
			Value:    v,
		})
	}
	return notes
}

// IsNumeric reports whether figure parses as a decimal once percent signs,
// currency signs, thousands separators and spaces are removed.
func IsNumeric(figure string) bool {
	cleaned := figureNoise.Replace(strings.TrimSpace(figure))
	if cleaned == "" {
		return false
	}
	_, err := decimal.NewFromString(cleaned)
	return err == nil
}
