package catalog

import "github.com/ukaji3/nqtlfill-go/pkg/nqtlfill/models"

// Metric groups of the NQTL operational data collection form.
const (
	GroupMedicalManagement           = "Medical Management"
	GroupPriorAuthorization          = "Prior Authorization"
	GroupConcurrentReview            = "Concurrent Review"
	GroupRetrospectiveReview         = "Retrospective Review"
	GroupExperimentalInvestigational = "Experimental/Investigational"
)

// metricEntry is shorthand for a metric entry whose ID is its display name.
func metricEntry(group, name string, fragments ...string) Entry[string] {
	return Entry[string]{ID: name, Group: group, Names: []string{name}, Fragments: fragments}
}

// reviewMetrics declares the five metrics shared by every utilization review
// type. The "overturned on appeal" metric precedes the denial metric whose
// fragment it contains. submitted lists extra fragments for the submission
// count row, which workbooks often abbreviate.
func reviewMetrics(group, review string, submitted ...string) []Entry[string] {
	return []Entry[string]{
		metricEntry(group, "Number (#) of Claims Submitted for "+review,
			append([]string{"submitted for " + review}, submitted...)...),
		metricEntry(group, "Percentage (%) of "+review+" Claims Denied Due to Non-Administrative Reasons Overturned on Appeal",
			review+" claims denied due to non administrative reasons overturned"),
		metricEntry(group, "Percentage (%) of "+review+" Claims Denied Due to Non-Administrative Reasons",
			review+" claims denied"),
		metricEntry(group, "Average Processing Time (in Days) for "+review+" Requests",
			processingTime(review+" requests")...),
		metricEntry(group, "Average Processing Time (in Days) for "+review+" Appeals",
			processingTime(review+" appeals")...),
	}
}

// processingTime lists the wordings of "processing time ... for subject"
// headers, with and without the day unit.
func processingTime(subject string) []string {
	return []string{
		"processing time for " + subject,
		"processing time in days for " + subject,
		"processing time days for " + subject,
	}
}

// DefaultMetricEntries returns the built-in metric declarations in
// precedence order.
func DefaultMetricEntries() []Entry[string] {
	entries := []Entry[string]{
		metricEntry(GroupMedicalManagement, "Number (#) of Total Claims Incurred During the Plan Year",
			"total claims incurred"),
		metricEntry(GroupMedicalManagement, "Percentage (%) of Claims Denied Based on Lack of Medical Necessity Overturned on Appeal",
			"lack of medical necessity overturned"),
		metricEntry(GroupMedicalManagement, "Percentage (%) of Claims Denied Based on Lack of Medical Necessity",
			"denied based on lack of medical necessity"),
	}
	entries = append(entries, reviewMetrics(GroupPriorAuthorization, "Prior Authorization", "submitted for prior auth")...)
	entries = append(entries, reviewMetrics(GroupConcurrentReview, "Concurrent Review")...)
	entries = append(entries, reviewMetrics(GroupRetrospectiveReview, "Retrospective Review")...)
	entries = append(entries,
		metricEntry(GroupExperimentalInvestigational, "Percentage (%) of Claims Denied as Experimental/Investigational",
			"claims denied as experimental investigational"),
		metricEntry(GroupExperimentalInvestigational, "Average Processing Time (in Days) for Experimental/Investigational Requests",
			processingTime("experimental investigational requests")...),
		metricEntry(GroupExperimentalInvestigational, "Percentage (%) of Experimental/Investigational Claims Appealed",
			"experimental investigational claims appealed"),
		metricEntry(GroupExperimentalInvestigational, "Percentage (%) of Experimental/Investigational Denials Overturned on Appeal",
			"experimental investigational denials overturned"),
		metricEntry(GroupExperimentalInvestigational, "Average Processing Time (in Days) for Experimental/Investigational Appeals",
			processingTime("experimental investigational appeals")...),
	)
	return entries
}

// DefaultMetrics returns the built-in metric catalog.
func DefaultMetrics() *Catalog[string] {
	return New(DefaultMetricEntries()...)
}

// Metrics converts catalog entries to their model form.
func Metrics(c *Catalog[string]) []models.Metric {
	out := make([]models.Metric, 0, c.Len())
	for _, e := range c.entries {
		out = append(out, models.Metric{Name: e.ID, Group: e.Group, Fragments: append([]string(nil), e.Fragments...)})
	}
	return out
}
