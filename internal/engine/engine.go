// Package engine defines the hierarchy-integrator interface the driver
// consumes, and a fixed-step playback implementation of it.
//
// The real collaborator is an external adaptive-mesh flow solver: mesh
// refinement, pressure-velocity coupling and immersed-boundary force
// spreading all live behind [HierarchyIntegrator] and are out of scope
// here. [Playback] stands in for it when no flow solver is attached,
// advancing time at a fixed step and driving the registered kinematics.
package engine

import "github.com/san-kum/flapsim/internal/kinematics"

// HierarchyIntegrator is the consumer-side contract of the external
// numerical engine. All cross-partition communication happens inside
// Advance; the driver only queries scalars and delegates the step.
type HierarchyIntegrator interface {
	// Step returns the current integrator step index.
	Step() int

	// Time returns the current integrator time.
	Time() float64

	// EndTime returns the configured end time of the run.
	EndTime() float64

	// MaxTimeStepSize returns the largest stable step the engine will
	// accept for the next advance.
	MaxTimeStepSize() float64

	// StepsRemaining reports whether the engine has step budget left.
	StepsRemaining() bool

	// Advance moves the coupled system forward by dt. Each registered
	// kinematics model is evaluated exactly once per advance, at the new
	// time. A returned error is a fatal abort signal; the driver performs
	// no retry.
	Advance(dt float64) error

	// RegisterKinematics attaches a body's kinematics to the engine's
	// constraint solver.
	RegisterKinematics(m kinematics.Model)
}
