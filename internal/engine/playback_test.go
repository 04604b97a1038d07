package engine

import (
	"math"
	"testing"

	"github.com/san-kum/flapsim/internal/kinematics"
)

// countingModel records how often each setter is called and at what times.
type countingModel struct {
	name     string
	velCalls []float64
	shpCalls []float64
	vel      []float64
}

func (c *countingModel) Name() string { return c.name }

func (c *countingModel) SetVelocity(t float64, angles, com, tagged []float64) error {
	c.velCalls = append(c.velCalls, t)
	return nil
}

func (c *countingModel) SetShape(t float64, angles []float64) error {
	c.shpCalls = append(c.shpCalls, t)
	return nil
}

func (c *countingModel) Velocity(level int) []float64 { return c.vel }

func (c *countingModel) Shape(level int) []kinematics.Point { return nil }

func TestPlaybackEvaluatesEachModelOncePerAdvance(t *testing.T) {
	p := NewPlayback(0.1, 1.0, 0)
	m := &countingModel{name: "foil", vel: []float64{0, 0, 0}}
	p.RegisterKinematics(m)

	steps := 0
	for p.StepsRemaining() {
		if err := p.Advance(p.MaxTimeStepSize()); err != nil {
			t.Fatalf("advance failed: %v", err)
		}
		steps++
	}

	if steps != 10 {
		t.Errorf("expected 10 advances, got %d", steps)
	}
	if len(m.velCalls) != steps || len(m.shpCalls) != steps {
		t.Errorf("expected %d evaluations, got %d velocity and %d shape",
			steps, len(m.velCalls), len(m.shpCalls))
	}

	// Each evaluation happens at the new time, not the old one.
	if got := m.velCalls[0]; math.Abs(got-0.1) > 1e-12 {
		t.Errorf("first evaluation at t=%g, want 0.1", got)
	}
	if got := m.velCalls[steps-1]; math.Abs(got-1.0) > 1e-9 {
		t.Errorf("last evaluation at t=%g, want 1.0", got)
	}
}

func TestPlaybackClipsFinalStep(t *testing.T) {
	// 0.3 does not divide 1.0: the last step must be clipped.
	p := NewPlayback(0.3, 1.0, 0)

	for p.StepsRemaining() {
		dt := p.MaxTimeStepSize()
		if dt > 0.3+1e-12 {
			t.Fatalf("dt %g exceeds fixed step", dt)
		}
		if err := p.Advance(dt); err != nil {
			t.Fatalf("advance failed: %v", err)
		}
	}

	if math.Abs(p.Time()-1.0) > 1e-12 {
		t.Errorf("final time %g, want exactly 1.0", p.Time())
	}
}

func TestPlaybackStepBudget(t *testing.T) {
	p := NewPlayback(0.1, 100.0, 5)

	steps := 0
	for p.StepsRemaining() {
		if err := p.Advance(p.MaxTimeStepSize()); err != nil {
			t.Fatalf("advance failed: %v", err)
		}
		steps++
	}

	if steps != 5 {
		t.Errorf("expected step budget of 5 to cap the run, got %d steps", steps)
	}
	if p.StepsRemaining() {
		t.Error("expected no steps remaining")
	}
}

func TestPlaybackTracksHeaveCOM(t *testing.T) {
	foil, err := kinematics.NewFlappingFoil("foil", kinematics.ParamSet{
		"frequency":       1.0,
		"heave_amplitude": 0.25,
		"pitch_amplitude": 10.0,
	})
	if err != nil {
		t.Fatalf("failed to build foil: %v", err)
	}

	p := NewPlayback(1e-4, 0.25, 0)
	p.RegisterKinematics(foil)

	for p.StepsRemaining() {
		if err := p.Advance(p.MaxTimeStepSize()); err != nil {
			t.Fatalf("advance failed: %v", err)
		}
	}

	// After a quarter period the heave position is h0*sin(pi/2) = h0.
	com := p.CenterOfMass("foil")
	if math.Abs(com[0]) > 1e-9 {
		t.Errorf("expected no horizontal drift, got %g", com[0])
	}
	if math.Abs(com[1]-0.25) > 1e-3 {
		t.Errorf("expected COM y near 0.25, got %g", com[1])
	}
}

func TestPlaybackSeedsCOMFromInitialOffset(t *testing.T) {
	eel, err := kinematics.NewUndulator("eel2d_2", kinematics.ParamSet{
		"frequency":        1.0,
		"initial_offset_x": 2.0,
		"initial_offset_y": -0.2,
	})
	if err != nil {
		t.Fatalf("failed to build undulator: %v", err)
	}

	p := NewPlayback(0.1, 0.3, 0)
	p.RegisterKinematics(eel)

	for p.StepsRemaining() {
		if err := p.Advance(p.MaxTimeStepSize()); err != nil {
			t.Fatalf("advance failed: %v", err)
		}
	}

	// Zero prescribed rigid velocity: the COM stays at its placement.
	com := p.CenterOfMass("eel2d_2")
	if com[0] != 2.0 || com[1] != -0.2 {
		t.Errorf("expected COM at configured offset (2, -0.2), got (%g, %g)", com[0], com[1])
	}
}

func TestPlaybackRejectsBadStep(t *testing.T) {
	p := NewPlayback(0.1, 1.0, 0)
	if err := p.Advance(0); err == nil {
		t.Error("expected error for zero dt")
	}
	if err := p.Advance(-0.1); err == nil {
		t.Error("expected error for negative dt")
	}
}
