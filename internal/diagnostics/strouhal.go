package diagnostics

// Strouhal reports St = f*A/U for the peak-to-peak heave amplitude
// A = 2*h0 and a reference freestream velocity. It is a configured figure,
// not a measured one; it exists so every run records the operating point
// alongside its trace.
type Strouhal struct {
	name      string
	frequency float64
	heaveAmp  float64
	refVel    float64
}

// NewStrouhal builds the metric for one named body. The body name is part
// of the metric name so multi-foil runs record one value per body.
func NewStrouhal(body string, frequency, heaveAmplitude, referenceVelocity float64) *Strouhal {
	return &Strouhal{
		name:      "strouhal_" + body,
		frequency: frequency,
		heaveAmp:  heaveAmplitude,
		refVel:    referenceVelocity,
	}
}

func (s *Strouhal) Name() string { return s.name }

func (s *Strouhal) Observe(time float64, velocity []float64) {}

func (s *Strouhal) Value() float64 {
	if s.refVel == 0 {
		return 0
	}
	return s.frequency * (2.0 * s.heaveAmp) / s.refVel
}

func (s *Strouhal) Reset() {}
