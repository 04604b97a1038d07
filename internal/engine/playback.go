package engine

import (
	"fmt"
	"math"

	"github.com/san-kum/flapsim/internal/kinematics"
)

// Playback is a deterministic fixed-step HierarchyIntegrator used when no
// flow solver is attached: the CLI dry-runs prescribed kinematics against
// it, and the driver tests use it as their collaborator. It advances time
// by a constant dt (clipped to land exactly on the end time), calls each
// registered model's SetVelocity then SetShape once per advance, and
// integrates each body's center of mass from its own prescribed velocity.
type Playback struct {
	dt       float64
	end      float64
	maxSteps int

	step   int
	t      float64
	models []kinematics.Model
	coms   map[string][]float64
}

// NewPlayback builds a playback engine with a fixed step dt running to end
// time. maxSteps bounds the step budget; zero or less means unbounded.
func NewPlayback(dt, end float64, maxSteps int) *Playback {
	return &Playback{
		dt:       dt,
		end:      end,
		maxSteps: maxSteps,
		coms:     make(map[string][]float64),
	}
}

func (p *Playback) Step() int        { return p.step }
func (p *Playback) Time() float64    { return p.t }
func (p *Playback) EndTime() float64 { return p.end }

// MaxTimeStepSize clips the fixed step so the final advance lands exactly
// on the end time.
func (p *Playback) MaxTimeStepSize() float64 {
	return math.Min(p.dt, p.end-p.t)
}

// timeSlop absorbs float accumulation error so a run of dt-sized steps
// does not leave a sliver step behind.
const timeSlop = 1e-12

func (p *Playback) StepsRemaining() bool {
	if p.maxSteps > 0 && p.step >= p.maxSteps {
		return false
	}
	return p.end-p.t > timeSlop*math.Max(1.0, math.Abs(p.end))
}

func (p *Playback) RegisterKinematics(m kinematics.Model) {
	p.models = append(p.models, m)
	com := []float64{0, 0}
	if o, ok := m.(interface{ InitialOffset() (x, y float64) }); ok {
		com[0], com[1] = o.InitialOffset()
	}
	p.coms[m.Name()] = com
}

func (p *Playback) Advance(dt float64) error {
	if dt <= 0 {
		return fmt.Errorf("engine: non-positive time step %g", dt)
	}

	newTime := p.t + dt
	for _, m := range p.models {
		com := p.coms[m.Name()]
		if err := m.SetVelocity(newTime, nil, com, nil); err != nil {
			return fmt.Errorf("engine: body %q: %w", m.Name(), err)
		}
		if err := m.SetShape(newTime, nil); err != nil {
			return fmt.Errorf("engine: body %q: %w", m.Name(), err)
		}

		// Forward-Euler COM update from the prescribed velocity. The real
		// constraint solver owns this; playback tracks it for display.
		vel := m.Velocity(0)
		for d := 0; d < len(com) && d < 2; d++ {
			com[d] += vel[d] * dt
		}
	}

	p.t = newTime
	p.step++
	return nil
}

// CenterOfMass returns the tracked COM for a registered body.
func (p *Playback) CenterOfMass(name string) []float64 {
	return p.coms[name]
}
