// Package driver runs the outer time-stepping loop of a simulation: it
// owns the local clock, queries the hierarchy integrator for step sizes,
// delegates the advance, and triggers scheduled output dumps.
package driver

import (
	"context"
	"fmt"
	"io"

	"github.com/san-kum/flapsim/internal/body"
	"github.com/san-kum/flapsim/internal/engine"
	"github.com/san-kum/flapsim/internal/kinematics"
	"github.com/san-kum/flapsim/internal/schedule"
)

// State is the driver lifecycle phase.
type State int

const (
	NotStarted State = iota
	Running
	Finished
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "not_started"
	case Running:
		return "running"
	case Finished:
		return "finished"
	default:
		return "unknown"
	}
}

// AbortError wraps a fatal condition raised during the loop with the step
// and time it occurred at. The driver never retries: the run is batch and
// single-shot, and any engine failure ends it.
type AbortError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *AbortError) Error() string {
	return fmt.Sprintf("driver: aborted at step %d (t=%.6f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *AbortError) Unwrap() error { return e.Wrapped }

// Result summarizes a completed run.
type Result struct {
	Advances        int
	FinalTime       float64
	VizDumps        int
	RestartDumps    int
	DiagnosticDumps int
}

// Options carries the injected output collaborators. Any writer may be
// nil, in which case its category is silently skipped even when due.
type Options struct {
	Viz         VizWriter
	Restart     RestartWriter
	Diagnostics DiagnosticsWriter
	Log         io.Writer
}

// Driver orchestrates the iteration loop against a hierarchy integrator.
// It is single-threaded and synchronous: every iteration blocks on the
// advance call before consulting the dump schedule.
type Driver struct {
	hier   engine.HierarchyIntegrator
	bodies *body.Registry
	plan   schedule.Plan
	opts   Options

	state State
	clock Clock
}

// New builds a driver around an integrator, a body registry, and a dump
// plan. Bodies are attached to the integrator's constraint solver on Run.
func New(hier engine.HierarchyIntegrator, bodies *body.Registry, plan schedule.Plan, opts Options) *Driver {
	if opts.Log == nil {
		opts.Log = io.Discard
	}
	return &Driver{hier: hier, bodies: bodies, plan: plan, opts: opts}
}

// State returns the current lifecycle phase.
func (d *Driver) State() State { return d.state }

// Clock returns a copy of the driver's local clock.
func (d *Driver) Clock() Clock { return d.clock }

// Run executes the loop until the end time is reached or the integrator
// exhausts its step budget, whichever happens first. Both conditions are
// checked every iteration. Errors from the engine or a writer abort the
// run; ctx cancellation does too.
func (d *Driver) Run(ctx context.Context) (*Result, error) {
	if d.state != NotStarted {
		return nil, fmt.Errorf("driver: run already %s", d.state)
	}

	if err := d.bodies.ForEach(func(m kinematics.Model) error {
		d.hier.RegisterKinematics(m)
		return nil
	}); err != nil {
		return nil, fmt.Errorf("driver: body registration: %w", err)
	}

	d.clock = Clock{
		Step: d.hier.Step(),
		Time: d.hier.Time(),
		End:  d.hier.EndTime(),
	}

	result := &Result{FinalTime: d.clock.Time}

	// Initial visualization dump before the first advance.
	if d.opts.Viz != nil && d.plan.VizInterval > 0 {
		fmt.Fprintf(d.opts.Log, "Writing visualization files at step %d\n", d.clock.Step)
		if err := d.opts.Viz.WriteViz(d.clock.Step, d.clock.Time); err != nil {
			return result, d.abort(err)
		}
		result.VizDumps++
	}

	d.state = Running

	for !d.clock.ReachedEnd() && d.hier.StepsRemaining() {
		select {
		case <-ctx.Done():
			d.state = Finished
			return result, d.abort(ctx.Err())
		default:
		}

		step := d.hier.Step()
		t := d.hier.Time()
		fmt.Fprintf(d.opts.Log, "At beginning of timestep # %d, simulation time is %g\n", step, t)

		dt := d.hier.MaxTimeStepSize()
		if err := d.hier.Advance(dt); err != nil {
			d.state = Finished
			return result, d.abort(err)
		}

		t += dt
		d.clock.Step = step + 1
		d.clock.Time = t
		d.clock.Dt = dt
		result.Advances++
		result.FinalTime = t

		fmt.Fprintf(d.opts.Log, "At end       of timestep # %d, simulation time is %g\n", step, t)

		finalStep := !d.hier.StepsRemaining() || d.clock.ReachedEnd()
		if err := d.dump(result, finalStep); err != nil {
			d.state = Finished
			return result, d.abort(err)
		}
	}

	d.state = Finished
	return result, nil
}

func (d *Driver) dump(result *Result, finalStep bool) error {
	due := d.plan.Due(d.clock.Step, finalStep)

	if due.Viz && d.opts.Viz != nil {
		fmt.Fprintf(d.opts.Log, "Writing visualization files at step %d\n", d.clock.Step)
		if err := d.opts.Viz.WriteViz(d.clock.Step, d.clock.Time); err != nil {
			return err
		}
		result.VizDumps++
	}
	if due.Restart && d.opts.Restart != nil {
		fmt.Fprintf(d.opts.Log, "Writing restart files at step %d\n", d.clock.Step)
		if err := d.opts.Restart.WriteRestart(d.clock.Step, d.clock.Time); err != nil {
			return err
		}
		result.RestartDumps++
	}
	if due.Diagnostics && d.opts.Diagnostics != nil {
		if err := d.opts.Diagnostics.WriteDiagnostics(d.clock.Step, d.clock.Time); err != nil {
			return err
		}
		result.DiagnosticDumps++
	}
	return nil
}

func (d *Driver) abort(err error) error {
	return &AbortError{Step: d.clock.Step, Time: d.clock.Time, Wrapped: err}
}
