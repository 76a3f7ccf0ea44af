package surface

import "math"

// Ellipse is the upper half of x^2/a^2 + y^2/b^2 = 1.
type Ellipse struct {
	SemiMajor float64 // a, horizontal
	SemiMinor float64 // b, vertical
}

func NewEllipse(a, b float64) *Ellipse {
	return &Ellipse{SemiMajor: a, SemiMinor: b}
}

func (e *Ellipse) Name() string { return "ellipse" }

// q is the 1 - x^2/a^2 term shared by all derivatives, floored away
// from zero near |x| -> a.
func (e *Ellipse) q(x float64) float64 {
	q := 1 - x*x/(e.SemiMajor*e.SemiMajor)
	if q < denomFloor {
		q = denomFloor
	}
	return q
}

func (e *Ellipse) Height(x float64) float64 {
	return e.SemiMinor * math.Sqrt(e.q(x))
}

func (e *Ellipse) Slope(x float64) float64 {
	a2 := e.SemiMajor * e.SemiMajor
	return -e.SemiMinor * x / (a2 * math.Sqrt(e.q(x)))
}

func (e *Ellipse) Second(x float64) float64 {
	a2 := e.SemiMajor * e.SemiMajor
	return -e.SemiMinor / (a2 * math.Pow(e.q(x), 1.5))
}

func (e *Ellipse) CurvatureRadius(x float64) float64 {
	return radiusFrom(e.Slope(x), e.Second(x))
}

func (e *Ellipse) Params() map[string]float64 {
	return map[string]float64{
		"semi_major": e.SemiMajor,
		"semi_minor": e.SemiMinor,
	}
}
