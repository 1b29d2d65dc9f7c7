package catalog

import "github.com/ukaji3/nqtlfill-go/pkg/nqtlfill/models"

// labelEntries declares each label with its spelled-out aliases.
func labelEntries() []Entry[models.Label] {
	return []Entry[models.Label]{
		{
			ID:        models.LabelInpatientIN,
			Names:     []string{string(models.LabelInpatientIN)},
			Fragments: []string{"inpatient in-network", "in-network inpatient"},
		},
		{
			ID:        models.LabelInpatientOON,
			Names:     []string{string(models.LabelInpatientOON)},
			Fragments: []string{"inpatient out-of-network", "out-of-network inpatient"},
		},
		{
			ID:        models.LabelOutpatientIN,
			Names:     []string{string(models.LabelOutpatientIN)},
			Fragments: []string{"outpatient in-network", "in-network outpatient"},
		},
		{
			ID:        models.LabelOutpatientOON,
			Names:     []string{string(models.LabelOutpatientOON)},
			Fragments: []string{"outpatient out-of-network", "out-of-network outpatient"},
		},
	}
}

// DefaultLabels returns the label set with the aliases seen in submitted
// workbooks and templates.
func DefaultLabels() *Catalog[models.Label] {
	return New(labelEntries()...)
}

// LabelMatcher is the workbook label strategy: exact or normalized equality
// on any name or alias, then substring search over the spelled-out aliases
// only. Short keys such as "inpatientin" are prefixes of ordinary prose
// ("Inpatient includes ...") and must equal the whole cell.
func LabelMatcher() Matcher[models.Label] {
	labels := DefaultLabels()
	var aliases []Entry[models.Label]
	for _, e := range labelEntries() {
		aliases = append(aliases, Entry[models.Label]{ID: e.ID, Fragments: e.Fragments})
	}
	return Chain(Exact(labels), Normalized(labels), Substring(New(aliases...)))
}
