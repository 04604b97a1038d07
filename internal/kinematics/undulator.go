package kinematics

import (
	"fmt"
	"math"
)

// Carangiform amplitude envelope defaults, a(s) = a0*(c1 + c2*s + c3*s^2)
// for arclength s in [0,1].
const (
	DefaultWavelength = 1.0
	DefaultAmplitude  = 0.1
	DefaultEnvelopeC1 = 0.02
	DefaultEnvelopeC2 = -0.08
	DefaultEnvelopeC3 = 0.16
	DefaultBodyPoints = 64
)

// UndulatorParams holds the traveling-wave motion parameters.
type UndulatorParams struct {
	Frequency  float64 // undulation frequency f (Hz)
	Wavelength float64 // body wavelength, in body lengths
	Amplitude  float64 // a0, tail-beat amplitude scale
	C1, C2, C3 float64 // amplitude envelope coefficients
	Points     int     // backbone discretization, at least 2
	OffsetX    float64 // initial COM placement
	OffsetY    float64
}

// Undulator implements traveling-wave body deformation for an anguilliform
// swimmer. The lateral backbone displacement is
//
//	y(s,t) = a(s) sin(2*pi*(s/lambda - f*t))
//
// with the quadratic amplitude envelope a(s) = a0*(c1 + c2*s + c3*s^2).
// The prescribed rigid velocity is zero: net swimming motion emerges from
// the constraint solver's momentum balance, not from the kinematics.
type Undulator struct {
	name   string
	params UndulatorParams
	omega  float64

	time  float64
	vel   []float64
	shape []Point
}

// NewUndulator builds a deforming-body model from a flat parameter lookup.
// Only frequency is required; envelope and wavelength default to the
// carangiform values above.
func NewUndulator(name string, db ParamSet) (*Undulator, error) {
	var p UndulatorParams
	var err error

	if p.Frequency, err = db.require(name, "frequency"); err != nil {
		return nil, err
	}
	p.Wavelength = db.lookup("wavelength", DefaultWavelength)
	p.Amplitude = db.lookup("amplitude", DefaultAmplitude)
	p.C1 = db.lookup("envelope_c1", DefaultEnvelopeC1)
	p.C2 = db.lookup("envelope_c2", DefaultEnvelopeC2)
	p.C3 = db.lookup("envelope_c3", DefaultEnvelopeC3)
	p.Points = int(db.lookup("num_points", DefaultBodyPoints))
	if p.Points < 2 {
		return nil, fmt.Errorf("kinematics: body %q: num_points must be at least 2, got %d", name, p.Points)
	}
	p.OffsetX = db.lookup("initial_offset_x", 0)
	p.OffsetY = db.lookup("initial_offset_y", 0)

	return &Undulator{
		name:   name,
		params: p,
		omega:  2.0 * math.Pi * p.Frequency,
		vel:    make([]float64, velocityLen(2)),
		shape:  make([]Point, p.Points),
	}, nil
}

func (u *Undulator) Name() string { return u.name }

// Params returns the motion parameters the undulator was constructed with.
func (u *Undulator) Params() UndulatorParams { return u.params }

// Midline returns the lateral displacement of the backbone point at
// arclength s (in [0,1]) at time t.
func (u *Undulator) Midline(s, t float64) float64 {
	a := u.params.Amplitude * (u.params.C1 + u.params.C2*s + u.params.C3*s*s)
	return a * math.Sin(2.0*math.Pi*(s/u.params.Wavelength-u.params.Frequency*t))
}

func (u *Undulator) SetVelocity(t float64, incrementedAngles, centerOfMass, taggedPoint []float64) error {
	if err := checkTime(t); err != nil {
		return err
	}
	u.time = t
	for i := range u.vel {
		u.vel[i] = 0
	}
	return nil
}

func (u *Undulator) SetShape(t float64, incrementedAngles []float64) error {
	if err := checkTime(t); err != nil {
		return err
	}
	u.time = t

	n := len(u.shape)
	for i := 0; i < n; i++ {
		s := float64(i) / float64(n-1)
		// Offsets are relative to the body frame: x along the backbone
		// centered on the COM, y from the traveling wave.
		u.shape[i] = Point{X: s - 0.5, Y: u.Midline(s, t)}
	}
	return nil
}

func (u *Undulator) Velocity(level int) []float64 {
	return u.vel
}

// InitialOffset returns the configured initial COM placement.
func (u *Undulator) InitialOffset() (x, y float64) {
	return u.params.OffsetX, u.params.OffsetY
}

func (u *Undulator) Shape(level int) []Point {
	return u.shape
}
