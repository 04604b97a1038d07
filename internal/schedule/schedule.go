// Package schedule decides when periodic simulation outputs are due.
// It performs no I/O: the driver delegates the actual writes.
package schedule

// Plan holds the dump cadence for the three output categories. An interval
// of zero or less disables that category.
type Plan struct {
	VizInterval        int
	RestartInterval    int
	DiagnosticInterval int
}

// Decision reports which categories are due at a given step.
type Decision struct {
	Viz         bool
	Restart     bool
	Diagnostics bool
}

// Due reports the categories due at the given step. On the final step,
// visualization and restart dumps are forced (when enabled) so the run
// always ends with a consistent output set. Diagnostics are never forced;
// they fire strictly on their interval.
func (p Plan) Due(step int, finalStep bool) Decision {
	return Decision{
		Viz:         p.VizInterval > 0 && (step%p.VizInterval == 0 || finalStep),
		Restart:     p.RestartInterval > 0 && (step%p.RestartInterval == 0 || finalStep),
		Diagnostics: p.DiagnosticInterval > 0 && step%p.DiagnosticInterval == 0,
	}
}

// Enabled reports whether any category is active.
func (p Plan) Enabled() bool {
	return p.VizInterval > 0 || p.RestartInterval > 0 || p.DiagnosticInterval > 0
}
