package geometry

// Placement positions one copy of a base body in a school formation.
type Placement struct {
	Name   string
	ShiftX float64
	ShiftY float64
}

// SchoolFormation is the 4-fish diamond layout used in the wake-interaction
// runs: two columns dx apart, rows at +/- dy/2.
func SchoolFormation(dx, dy float64) []Placement {
	return []Placement{
		{Name: "eel2d_1", ShiftX: 0.0, ShiftY: -dy / 2},
		{Name: "eel2d_2", ShiftX: dx, ShiftY: -dy / 2},
		{Name: "eel2d_3", ShiftX: 0.0, ShiftY: dy / 2},
		{Name: "eel2d_4", ShiftX: dx, ShiftY: dy / 2},
	}
}

// PlaceBody shifts base coordinates into formation position, recentering
// the vertical coordinate on its mean first so each copy oscillates about
// its own row.
func PlaceBody(xs, ys []float64, p Placement) ([]float64, []float64) {
	var yMean float64
	for _, y := range ys {
		yMean += y
	}
	if len(ys) > 0 {
		yMean /= float64(len(ys))
	}

	outX := make([]float64, len(xs))
	outY := make([]float64, len(ys))
	for i := range xs {
		outX[i] = xs[i] + p.ShiftX
		outY[i] = ys[i] - yMean + p.ShiftY
	}
	return outX, outY
}
