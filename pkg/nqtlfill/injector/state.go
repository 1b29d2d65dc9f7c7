package injector

// State is the active-metric cursor of a table walk: either no metric is in
// scope, or exactly one is.
type State struct {
	metric string
	active bool
}

// NoActiveMetric is the initial state of every table.
func NoActiveMetric() State {
	return State{}
}

// Active returns the state with metric in scope.
func Active(metric string) State {
	return State{metric: metric, active: true}
}

// Metric returns the metric in scope.
func (s State) Metric() (string, bool) {
	return s.metric, s.active
}

func (s State) String() string {
	if !s.active {
		return "NoActiveMetric"
	}
	return "ActiveMetric(" + s.metric + ")"
}
