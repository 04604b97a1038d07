package diagnostics

import "math"

// PeakVelocity tracks the largest magnitude seen in one velocity component
// over the run.
type PeakVelocity struct {
	name  string
	index int
	peak  float64
}

// NewPeakHeaveRate tracks the vertical translational component.
func NewPeakHeaveRate() *PeakVelocity {
	return &PeakVelocity{name: "peak_heave_rate", index: 1}
}

// NewPeakPitchRate tracks the out-of-plane angular component (2D layout).
func NewPeakPitchRate() *PeakVelocity {
	return &PeakVelocity{name: "peak_pitch_rate", index: 2}
}

func (p *PeakVelocity) Name() string { return p.name }

func (p *PeakVelocity) Observe(time float64, velocity []float64) {
	if p.index >= len(velocity) {
		return
	}
	p.peak = math.Max(p.peak, math.Abs(velocity[p.index]))
}

func (p *PeakVelocity) Value() float64 { return p.peak }

func (p *PeakVelocity) Reset() { p.peak = 0 }
