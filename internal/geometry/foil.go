// Package geometry generates immersed-boundary vertex sets for foil and
// fish-school simulations.
package geometry

import (
	"fmt"
	"math"
	"strconv"
)

// NACA4 generates a NACA 4-digit airfoil surface as an ordered point loop
// (trailing edge over the upper surface to the leading edge, then back
// along the lower surface), scaled by chord and shifted so the leading
// edge sits at x=0.
func NACA4(code string, numPoints int, chord float64) ([]float64, []float64, error) {
	if len(code) != 4 {
		return nil, nil, fmt.Errorf("geometry: NACA code must have 4 digits, got %q", code)
	}
	digits := make([]int, 4)
	for i, r := range code {
		d, err := strconv.Atoi(string(r))
		if err != nil {
			return nil, nil, fmt.Errorf("geometry: invalid NACA code %q", code)
		}
		digits[i] = d
	}

	m := float64(digits[0]) / 100.0              // maximum camber
	p := float64(digits[1]) / 10.0               // location of max camber
	t := float64(digits[2]*10+digits[3]) / 100.0 // maximum thickness

	n := numPoints / 2
	xu := make([]float64, n)
	yu := make([]float64, n)
	xl := make([]float64, n)
	yl := make([]float64, n)

	for i := 0; i < n; i++ {
		// Cosine spacing concentrates points at the leading and trailing
		// edges.
		beta := math.Pi * float64(i) / float64(n-1)
		x := (1.0 - math.Cos(beta)) / 2.0

		yt := 5 * t * (0.2969*math.Sqrt(x) - 0.1260*x - 0.3516*x*x + 0.2843*x*x*x - 0.1015*x*x*x*x)

		var yc, dycdx float64
		if m > 0 && p > 0 {
			if x <= p {
				yc = m / (p * p) * (2*p*x - x*x)
				dycdx = 2 * m / (p * p) * (p - x)
			} else {
				yc = m / ((1 - p) * (1 - p)) * ((1 - 2*p) + 2*p*x - x*x)
				dycdx = 2 * m / ((1 - p) * (1 - p)) * (p - x)
			}
		}

		theta := math.Atan(dycdx)
		xu[i] = x - yt*math.Sin(theta)
		yu[i] = yc + yt*math.Cos(theta)
		xl[i] = x + yt*math.Sin(theta)
		yl[i] = yc - yt*math.Cos(theta)
	}

	// Upper surface reversed, then lower surface skipping the shared
	// leading-edge point.
	xs := make([]float64, 0, 2*n-1)
	ys := make([]float64, 0, 2*n-1)
	for i := n - 1; i >= 0; i-- {
		xs = append(xs, xu[i]*chord)
		ys = append(ys, yu[i]*chord)
	}
	for i := 1; i < n; i++ {
		xs = append(xs, xl[i]*chord)
		ys = append(ys, yl[i]*chord)
	}

	// Shift the leading edge to x=0.
	minX := xs[0]
	for _, x := range xs {
		minX = math.Min(minX, x)
	}
	for i := range xs {
		xs[i] -= minX
	}

	return xs, ys, nil
}

// Ellipse generates an elliptical foil with the given thickness ratio,
// leading edge at x=0.
func Ellipse(thickness float64, numPoints int, chord float64) ([]float64, []float64) {
	a := chord / 2.0
	b := thickness * chord / 2.0

	xs := make([]float64, numPoints)
	ys := make([]float64, numPoints)
	for i := 0; i < numPoints; i++ {
		theta := 2.0 * math.Pi * float64(i) / float64(numPoints)
		xs[i] = a*math.Cos(theta) + a
		ys[i] = b * math.Sin(theta)
	}
	return xs, ys
}
