package models

// Metric is a canonical compliance figure the tool knows how to locate.
type Metric struct {
	// Name is the canonical display name and the metric's identity.
	Name string `json:"name" yaml:"name"`
	// Group is the reporting section the metric belongs to (e.g. "Prior Authorization").
	Group string `json:"group,omitempty" yaml:"group,omitempty"`
	// Fragments are normalized substrings that identify the metric in free text.
	Fragments []string `json:"fragments" yaml:"fragments"`
}
