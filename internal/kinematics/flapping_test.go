package kinematics

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func fullFoilParams() ParamSet {
	return ParamSet{
		"frequency":       1.5,
		"heave_amplitude": 0.25,
		"pitch_amplitude": 15.0,
	}
}

var _ = Describe("FlappingFoil", func() {
	Describe("construction", func() {
		It("succeeds when all required keys are present", func() {
			foil, err := NewFlappingFoil("foil", fullFoilParams())
			Expect(err).NotTo(HaveOccurred())
			Expect(foil.Name()).To(Equal("foil"))
		})

		DescribeTable("fails when a required key is missing",
			func(missing string) {
				db := fullFoilParams()
				delete(db, missing)

				_, err := NewFlappingFoil("eel2d_1", db)
				Expect(err).To(MatchError(ErrMissingParameter))

				var cfgErr *ConfigError
				Expect(err).To(BeAssignableToTypeOf(cfgErr))
				cfgErr = err.(*ConfigError)
				Expect(cfgErr.Key).To(Equal(missing))
				Expect(cfgErr.Body).To(Equal("eel2d_1"))
				Expect(err.Error()).To(ContainSubstring(missing))
				Expect(err.Error()).To(ContainSubstring("eel2d_1"))
			},
			Entry("frequency", "frequency"),
			Entry("heave_amplitude", "heave_amplitude"),
			Entry("pitch_amplitude", "pitch_amplitude"),
		)

		It("defaults the phase offset to 90 degrees exactly", func() {
			foil, err := NewFlappingFoil("foil", fullFoilParams())
			Expect(err).NotTo(HaveOccurred())
			Expect(foil.Params().PhaseOffset).To(Equal(math.Pi / 2))
		})

		It("round-trips an explicit 90 degree phase offset to pi/2", func() {
			db := fullFoilParams()
			db["phase_offset"] = 90.0

			foil, err := NewFlappingFoil("foil", db)
			Expect(err).NotTo(HaveOccurred())
			Expect(foil.Params().PhaseOffset).To(BeNumerically("~", math.Pi/2, 1e-12))
		})

		It("converts pitch amplitude from degrees once at construction", func() {
			foil, err := NewFlappingFoil("foil", fullFoilParams())
			Expect(err).NotTo(HaveOccurred())
			Expect(foil.Params().PitchAmplitude).To(BeNumerically("~", 15.0*math.Pi/180.0, 1e-12))
		})

		It("defaults the pivot to the quarter chord", func() {
			foil, err := NewFlappingFoil("foil", fullFoilParams())
			Expect(err).NotTo(HaveOccurred())
			Expect(foil.Params().PivotX).To(Equal(0.25))
			Expect(foil.Params().PivotY).To(Equal(0.0))
		})
	})

	Describe("heave kinematics", func() {
		var foil *FlappingFoil

		BeforeEach(func() {
			var err error
			foil, err = NewFlappingFoil("foil", fullFoilParams())
			Expect(err).NotTo(HaveOccurred())
		})

		It("matches the analytic derivative of the heave position", func() {
			p := foil.Params()
			omega := 2.0 * math.Pi * p.Frequency
			for _, t := range []float64{0, 0.1, 0.25, 1.0 / 3.0, 2.0, 17.3} {
				_, hDot := foil.Heave(t)
				want := p.HeaveAmplitude * omega * math.Cos(omega*t)
				Expect(hDot).To(BeNumerically("~", want, 1e-9*math.Max(1, math.Abs(want))))
			}
		})

		It("agrees with a central-difference derivative of the position", func() {
			const eps = 1e-6
			for _, t := range []float64{0.05, 0.5, 1.7} {
				hMinus, _ := foil.Heave(t - eps)
				hPlus, _ := foil.Heave(t + eps)
				_, hDot := foil.Heave(t)
				numeric := (hPlus - hMinus) / (2 * eps)
				Expect(hDot).To(BeNumerically("~", numeric, 1e-5))
			}
		})
	})

	Describe("pitch kinematics", func() {
		It("matches the analytic derivative of the pitch angle", func() {
			db := fullFoilParams()
			db["phase_offset"] = 75.0
			foil, err := NewFlappingFoil("foil", db)
			Expect(err).NotTo(HaveOccurred())

			p := foil.Params()
			omega := 2.0 * math.Pi * p.Frequency
			for _, t := range []float64{0, 0.2, 0.9, 3.1} {
				_, thetaDot := foil.Pitch(t)
				want := p.PitchAmplitude * omega * math.Cos(omega*t+p.PhaseOffset)
				Expect(thetaDot).To(BeNumerically("~", want, 1e-9*math.Max(1, math.Abs(want))))

				const eps = 1e-6
				thMinus, _ := foil.Pitch(t - eps)
				thPlus, _ := foil.Pitch(t + eps)
				Expect(thetaDot).To(BeNumerically("~", (thPlus-thMinus)/(2*eps), 1e-5))
			}
		})
	})

	Describe("velocity vector", func() {
		It("lays out [0, heave rate, pitch rate] in 2D", func() {
			foil, err := NewFlappingFoil("foil", fullFoilParams())
			Expect(err).NotTo(HaveOccurred())

			t := 0.37
			Expect(foil.SetVelocity(t, nil, []float64{0, 0}, nil)).To(Succeed())

			_, hDot := foil.Heave(t)
			_, thetaDot := foil.Pitch(t)

			vel := foil.Velocity(0)
			Expect(vel).To(HaveLen(3))
			Expect(vel[0]).To(Equal(0.0))
			Expect(vel[1]).To(Equal(hDot))
			Expect(vel[2]).To(Equal(thetaDot))
		})

		It("preserves the reference 3D layout with the pitch rate in slot 4", func() {
			foil, err := NewFlappingFoil3D("foil", fullFoilParams())
			Expect(err).NotTo(HaveOccurred())

			t := 0.37
			Expect(foil.SetVelocity(t, nil, []float64{0, 0, 0}, nil)).To(Succeed())

			_, hDot := foil.Heave(t)
			_, thetaDot := foil.Pitch(t)

			vel := foil.Velocity(0)
			Expect(vel).To(HaveLen(6))
			Expect(vel[0]).To(Equal(0.0))
			Expect(vel[1]).To(Equal(hDot))
			Expect(vel[2]).To(Equal(0.0))
			Expect(vel[3]).To(Equal(0.0))
			Expect(vel[4]).To(Equal(thetaDot))
		})

		It("serves the same vector for every refinement level", func() {
			foil, err := NewFlappingFoil("foil", fullFoilParams())
			Expect(err).NotTo(HaveOccurred())
			Expect(foil.SetVelocity(0.1, nil, []float64{0, 0}, nil)).To(Succeed())

			for level := 0; level < 4; level++ {
				Expect(foil.Velocity(level)).To(Equal(foil.Velocity(0)))
			}
		})

		It("rejects non-finite time", func() {
			foil, err := NewFlappingFoil("foil", fullFoilParams())
			Expect(err).NotTo(HaveOccurred())

			Expect(foil.SetVelocity(math.NaN(), nil, nil, nil)).To(MatchError(ErrNonFiniteTime))
			Expect(foil.SetVelocity(math.Inf(1), nil, nil, nil)).To(MatchError(ErrNonFiniteTime))
			Expect(foil.SetShape(math.NaN(), nil)).To(MatchError(ErrNonFiniteTime))
		})

		It("accepts negative time", func() {
			foil, err := NewFlappingFoil("foil", fullFoilParams())
			Expect(err).NotTo(HaveOccurred())
			Expect(foil.SetVelocity(-0.5, nil, []float64{0, 0}, nil)).To(Succeed())
		})
	})

	Describe("shape", func() {
		It("is nil for a rigid foil", func() {
			foil, err := NewFlappingFoil("foil", fullFoilParams())
			Expect(err).NotTo(HaveOccurred())
			Expect(foil.SetShape(0.5, nil)).To(Succeed())
			Expect(foil.Shape(0)).To(BeNil())
		})
	})

	Describe("Strouhal number", func() {
		It("equals f*2*h0 for unit reference velocity", func() {
			foil, err := NewFlappingFoil("foil", fullFoilParams())
			Expect(err).NotTo(HaveOccurred())
			p := foil.Params()
			Expect(p.Strouhal(1.0)).To(BeNumerically("~", p.Frequency*2*p.HeaveAmplitude, 1e-12))
		})
	})
})

var _ = Describe("Undulator", func() {
	It("requires a frequency", func() {
		_, err := NewUndulator("eel", ParamSet{})
		Expect(err).To(MatchError(ErrMissingParameter))
		Expect(err.Error()).To(ContainSubstring("frequency"))
	})

	DescribeTable("rejects a backbone with fewer than two points",
		func(points float64) {
			_, err := NewUndulator("eel", ParamSet{"frequency": 1.0, "num_points": points})
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("num_points"))
			Expect(err.Error()).To(ContainSubstring("eel"))
		},
		Entry("negative", -4.0),
		Entry("zero", 0.0),
		Entry("single point", 1.0),
	)

	It("reads the initial offset keys", func() {
		u, err := NewUndulator("eel2d_2", ParamSet{
			"frequency":        1.0,
			"initial_offset_x": 2.0,
			"initial_offset_y": -0.2,
		})
		Expect(err).NotTo(HaveOccurred())

		x, y := u.InitialOffset()
		Expect(x).To(Equal(2.0))
		Expect(y).To(Equal(-0.2))
	})

	It("produces a shape with the configured number of points", func() {
		u, err := NewUndulator("eel", ParamSet{"frequency": 2.0, "num_points": 32})
		Expect(err).NotTo(HaveOccurred())
		Expect(u.SetShape(0.25, nil)).To(Succeed())
		Expect(u.Shape(0)).To(HaveLen(32))
	})

	It("is periodic in time with period 1/f", func() {
		u, err := NewUndulator("eel", ParamSet{"frequency": 2.0})
		Expect(err).NotTo(HaveOccurred())

		period := 1.0 / u.Params().Frequency
		for _, s := range []float64{0, 0.3, 0.7, 1.0} {
			Expect(u.Midline(s, 0.13)).To(BeNumerically("~", u.Midline(s, 0.13+period), 1e-12))
		}
	})

	It("prescribes zero rigid velocity", func() {
		u, err := NewUndulator("eel", ParamSet{"frequency": 1.0})
		Expect(err).NotTo(HaveOccurred())
		Expect(u.SetVelocity(0.4, nil, []float64{0, 0}, nil)).To(Succeed())
		for _, v := range u.Velocity(0) {
			Expect(v).To(BeZero())
		}
	})

	It("damps the envelope toward the head", func() {
		u, err := NewUndulator("eel", ParamSet{"frequency": 1.0})
		Expect(err).NotTo(HaveOccurred())

		// Peak lateral excursion grows from head (s=0) to tail (s=1).
		head := math.Abs(u.Params().C1)
		tail := math.Abs(u.Params().C1 + u.Params().C2 + u.Params().C3)
		Expect(tail).To(BeNumerically(">", head))
	})
})
