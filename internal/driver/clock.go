package driver

import "math"

// timeEps is the relative tolerance for the end-of-run comparison.
const timeEps = 1e-8

// Clock tracks the driver's local copy of simulation time. The integrator
// owns the authoritative clock; this copy exists for logging and for the
// end-time termination check.
type Clock struct {
	Step int     // iteration counter, monotonically increasing
	Time float64 // current time, advanced by dt after each step
	End  float64 // configured end time
	Dt   float64 // step size of the most recent advance
}

// ReachedEnd reports whether the current time is within epsilon of the end
// time.
func (c *Clock) ReachedEnd() bool {
	return math.Abs(c.Time-c.End) <= timeEps*math.Max(1.0, math.Abs(c.End))
}
