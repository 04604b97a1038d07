package diagnostics

import (
	"github.com/san-kum/flapsim/internal/body"
	"github.com/san-kum/flapsim/internal/kinematics"
)

// Sample is one diagnostic row: the cached velocity of every body at a
// dump step, in registry order.
type Sample struct {
	Step       int
	Time       float64
	Velocities [][]float64
}

// Recorder samples every body's cached kinematics state when the driver
// reports a diagnostics dump due. It satisfies the driver's
// DiagnosticsWriter contract and feeds any attached metrics.
type Recorder struct {
	bodies  *body.Registry
	metrics []Metric
	samples []Sample
}

func NewRecorder(bodies *body.Registry) *Recorder {
	return &Recorder{bodies: bodies}
}

func (r *Recorder) AddMetric(m Metric) { r.metrics = append(r.metrics, m) }

func (r *Recorder) WriteDiagnostics(step int, time float64) error {
	s := Sample{Step: step, Time: time}
	r.bodies.ForEach(func(m kinematics.Model) error {
		vel := m.Velocity(0)
		row := make([]float64, len(vel))
		copy(row, vel)
		s.Velocities = append(s.Velocities, row)

		for _, metric := range r.metrics {
			metric.Observe(time, row)
		}
		return nil
	})
	r.samples = append(r.samples, s)
	return nil
}

// Samples returns the collected rows.
func (r *Recorder) Samples() []Sample { return r.samples }

// MetricValues returns the final value of every attached metric by name.
func (r *Recorder) MetricValues() map[string]float64 {
	out := make(map[string]float64, len(r.metrics))
	for _, m := range r.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}

// BodyNames returns the registry traversal order the sample rows follow.
func (r *Recorder) BodyNames() []string { return r.bodies.Names() }
