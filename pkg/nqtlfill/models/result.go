package models

import "sort"

// ValueTuple is the fixed-width ordered set of figures captured for one
// (metric, label) pair. An empty element means no value was extracted.
type ValueTuple []string

// Empty reports whether no element carries a value.
func (v ValueTuple) Empty() bool {
	for _, s := range v {
		if s != "" {
			return false
		}
	}
	return true
}

// ExtractionResult maps metric name to label to captured values.
type ExtractionResult map[string]map[Label]ValueTuple

// NewExtractionResult returns an empty result.
func NewExtractionResult() ExtractionResult {
	return make(ExtractionResult)
}

// Set stores values for (metric, label), replacing any previous tuple.
func (r ExtractionResult) Set(metric string, label Label, values ValueTuple) {
	labels, ok := r[metric]
	if !ok {
		labels = make(map[Label]ValueTuple)
		r[metric] = labels
	}
	labels[label] = values
}

// Get returns the tuple stored for (metric, label).
func (r ExtractionResult) Get(metric string, label Label) (ValueTuple, bool) {
	labels, ok := r[metric]
	if !ok {
		return nil, false
	}
	v, ok := labels[label]
	return v, ok
}

// Has reports whether any label was captured for metric.
func (r ExtractionResult) Has(metric string) bool {
	_, ok := r[metric]
	return ok
}

// Metrics returns the metric names in lexical order.
func (r ExtractionResult) Metrics() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of (metric, label) pairs.
func (r ExtractionResult) Len() int {
	n := 0
	for _, labels := range r {
		n += len(labels)
	}
	return n
}
