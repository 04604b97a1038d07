// Package diagnostics collects run-time figures from the prescribed
// kinematics: Strouhal number, heave/pitch excursion, and a trace recorder
// that doubles as the driver's diagnostics writer.
package diagnostics

// Metric accumulates one diagnostic figure over a run.
type Metric interface {
	Name() string
	Observe(time float64, velocity []float64)
	Value() float64
	Reset()
}
