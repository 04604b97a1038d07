package kinematics

import "math"

// Point is a reference-frame-relative position offset of one boundary point.
type Point struct {
	X float64
	Y float64
}

// Model is the contract every prescribed-kinematics implementation must
// satisfy. SetVelocity and SetShape are called by the constraint solver at
// the time it requires; Velocity and Shape read the cached result back.
// Both setters are idempotent for a given time and mutate only the model's
// own cached state.
type Model interface {
	// Name returns the body name the model was configured for.
	Name() string

	// SetVelocity computes the rigid-body velocity at the given time.
	// incrementedAngles is the body's accumulated rotation from the
	// reference axis and centerOfMass its current position, both supplied
	// by the constraint solver; taggedPoint is the tracked material point.
	// Rejects non-finite time with ErrNonFiniteTime.
	SetVelocity(time float64, incrementedAngles, centerOfMass, taggedPoint []float64) error

	// SetShape computes the body deformation at the given time. Rigid
	// models cache a nil shape.
	SetShape(time float64, incrementedAngles []float64) error

	// Velocity returns the cached velocity vector for the given refinement
	// level: D translational components followed by R rotational ones,
	// where R is 1 in two dimensions and 3 in three. Prescribed motion is
	// level-independent, so the same vector is served for every level.
	Velocity(level int) []float64

	// Shape returns the cached deformation for the given refinement level,
	// or nil for rigid bodies.
	Shape(level int) []Point
}

// ParamSet is the flat per-body key/value lookup handed to model
// constructors by the configuration layer.
type ParamSet map[string]float64

// require returns the value for key or a fatal ConfigError naming the
// missing key and the offending body.
func (p ParamSet) require(body, key string) (float64, error) {
	v, ok := p[key]
	if !ok {
		return 0, &ConfigError{Body: body, Key: key}
	}
	return v, nil
}

// lookup returns the value for key, or def when absent.
func (p ParamSet) lookup(key string, def float64) float64 {
	if v, ok := p[key]; ok {
		return v
	}
	return def
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180.0
}

func checkTime(t float64) error {
	if math.IsNaN(t) || math.IsInf(t, 0) {
		return ErrNonFiniteTime
	}
	return nil
}

// velocityLen returns the velocity vector length for a spatial dimension:
// D translational plus R rotational components.
func velocityLen(dim int) int {
	if dim == 2 {
		return 3 // [Vx, Vy, wz]
	}
	return 6 // 3 translational + 3 rotational
}
