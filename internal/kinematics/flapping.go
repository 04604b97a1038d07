package kinematics

import "math"

// Default pivot is the quarter-chord point.
const (
	DefaultPivotX      = 0.25
	DefaultPivotY      = 0.0
	DefaultPhaseOffset = 90.0 // degrees, pitch leads heave
)

// FoilParams holds the flapping-foil motion parameters. Angles are stored
// in radians; configuration supplies pitch_amplitude and phase_offset in
// degrees and they are converted once at construction.
type FoilParams struct {
	Frequency      float64 // flapping frequency f (Hz)
	HeaveAmplitude float64 // h0, normalized by chord
	PitchAmplitude float64 // theta0 (rad)
	PhaseOffset    float64 // phi (rad), phi > 0 means pitch leads heave
	PivotX         float64 // pitch pivot relative to initial COM
	PivotY         float64
	OffsetX        float64 // initial COM offset
	OffsetY        float64
}

// Strouhal returns the approximate Strouhal number St = f*A/U for the
// peak-to-peak amplitude A = 2*h0 and reference velocity u. Diagnostic
// only, not a control input.
func (p FoilParams) Strouhal(u float64) float64 {
	return p.Frequency * (2.0 * p.HeaveAmplitude) / u
}

// FlappingFoil implements prescribed heaving and pitching motion for a
// rigid foil, following Lei et al. (2021) AIAA 2021-2817:
//
//	h(t) = h0 sin(wt)        heave
//	q(t) = q0 sin(wt + phi)  pitch
//
// with w = 2*pi*f. The velocity vector is [0, dh/dt, dq/dt] in 2D: no
// horizontal translation is prescribed, heave drives the vertical
// component, and the pitch rate acts about the out-of-plane axis.
type FlappingFoil struct {
	name   string
	params FoilParams
	omega  float64 // 2*pi*f, fixed at construction
	dim    int

	// Cached state, overwritten by each SetVelocity/SetShape call.
	time float64
	com  []float64
	vel  []float64
}

// NewFlappingFoil builds a foil model from a flat parameter lookup.
// frequency, heave_amplitude and pitch_amplitude are required; absence of
// any of them is a fatal configuration error naming the key.
func NewFlappingFoil(name string, db ParamSet) (*FlappingFoil, error) {
	return newFlappingFoil(name, db, 2)
}

// NewFlappingFoil3D is the three-dimensional variant. The 3D velocity
// layout mirrors the 2D motion (heave in slot 1, pitch rate in the last
// rotational slot) and is unverified against a resolved 3D run.
func NewFlappingFoil3D(name string, db ParamSet) (*FlappingFoil, error) {
	return newFlappingFoil(name, db, 3)
}

func newFlappingFoil(name string, db ParamSet, dim int) (*FlappingFoil, error) {
	var p FoilParams
	var err error

	if p.Frequency, err = db.require(name, "frequency"); err != nil {
		return nil, err
	}
	if p.HeaveAmplitude, err = db.require(name, "heave_amplitude"); err != nil {
		return nil, err
	}
	pitchDeg, err := db.require(name, "pitch_amplitude")
	if err != nil {
		return nil, err
	}
	p.PitchAmplitude = degToRad(pitchDeg)

	p.PhaseOffset = degToRad(db.lookup("phase_offset", DefaultPhaseOffset))
	p.PivotX = db.lookup("pivot_point_x", DefaultPivotX)
	p.PivotY = db.lookup("pivot_point_y", DefaultPivotY)
	p.OffsetX = db.lookup("initial_offset_x", 0)
	p.OffsetY = db.lookup("initial_offset_y", 0)

	return &FlappingFoil{
		name:   name,
		params: p,
		omega:  2.0 * math.Pi * p.Frequency,
		dim:    dim,
		vel:    make([]float64, velocityLen(dim)),
	}, nil
}

func (f *FlappingFoil) Name() string { return f.name }

// Params returns the motion parameters the foil was constructed with.
func (f *FlappingFoil) Params() FoilParams { return f.params }

// Heave returns the heave position and velocity at time t.
func (f *FlappingFoil) Heave(t float64) (h, hDot float64) {
	h = f.params.HeaveAmplitude * math.Sin(f.omega*t)
	hDot = f.params.HeaveAmplitude * f.omega * math.Cos(f.omega*t)
	return h, hDot
}

// Pitch returns the pitch angle and pitch rate at time t.
func (f *FlappingFoil) Pitch(t float64) (theta, thetaDot float64) {
	theta = f.params.PitchAmplitude * math.Sin(f.omega*t+f.params.PhaseOffset)
	thetaDot = f.params.PitchAmplitude * f.omega * math.Cos(f.omega*t+f.params.PhaseOffset)
	return theta, thetaDot
}

func (f *FlappingFoil) SetVelocity(t float64, incrementedAngles, centerOfMass, taggedPoint []float64) error {
	if err := checkTime(t); err != nil {
		return err
	}
	f.time = t
	f.com = append(f.com[:0], centerOfMass...)

	_, hDot := f.Heave(t)
	_, thetaDot := f.Pitch(t)

	f.vel[0] = 0.0 // no horizontal translation
	f.vel[1] = hDot
	if f.dim == 2 {
		f.vel[2] = thetaDot
	} else {
		// Slots 2 and 3 stay zeroed and the pitch rate lands in slot 4.
		// Slot 2 doubles as the third translational component, which
		// prescribed heave/pitch never drives. Unverified in 3D.
		f.vel[2] = 0.0
		f.vel[3] = 0.0
		f.vel[4] = thetaDot
	}
	return nil
}

func (f *FlappingFoil) SetShape(t float64, incrementedAngles []float64) error {
	// Rigid body: no deformation.
	return checkTime(t)
}

func (f *FlappingFoil) Velocity(level int) []float64 {
	return f.vel
}

func (f *FlappingFoil) Shape(level int) []Point {
	return nil
}

// InitialOffset returns the configured initial COM placement.
func (f *FlappingFoil) InitialOffset() (x, y float64) {
	return f.params.OffsetX, f.params.OffsetY
}

// Time returns the time of the last SetVelocity call.
func (f *FlappingFoil) Time() float64 { return f.time }

// CenterOfMass returns the COM recorded at the last SetVelocity call.
func (f *FlappingFoil) CenterOfMass() []float64 { return f.com }
