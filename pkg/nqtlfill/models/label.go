// Package models defines data structures shared by the extraction and
// injection passes.
package models

// Label is one of the four category tokens that identify a data sub-row
// beneath a metric: network status crossed with care setting.
type Label string

const (
	// LabelInpatientIN is in-network inpatient.
	LabelInpatientIN Label = "Inpatient IN"
	// LabelInpatientOON is out-of-network inpatient.
	LabelInpatientOON Label = "Inpatient OON"
	// LabelOutpatientIN is in-network outpatient.
	LabelOutpatientIN Label = "Outpatient IN"
	// LabelOutpatientOON is out-of-network outpatient.
	LabelOutpatientOON Label = "Outpatient OON"
)

// Labels returns the closed label set in display order.
func Labels() []Label {
	return []Label{LabelInpatientIN, LabelInpatientOON, LabelOutpatientIN, LabelOutpatientOON}
}

func (l Label) String() string {
	return string(l)
}
