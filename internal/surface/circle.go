package surface

import "math"

// Circle is the upper semicircle y = sqrt(R^2 - x^2) centered at the
// origin. Closed-form derivatives, with floored denominators so samples
// at |x| -> R stay finite.
type Circle struct {
	Radius float64
}

func NewCircle(radius float64) *Circle {
	return &Circle{Radius: radius}
}

func (c *Circle) Name() string { return "circle" }

func (c *Circle) Height(x float64) float64 {
	return safeSqrt(c.Radius*c.Radius - x*x)
}

func (c *Circle) Slope(x float64) float64 {
	d := c.Radius*c.Radius - x*x
	if d < denomFloor {
		d = denomFloor
	}
	return -x / math.Sqrt(d)
}

func (c *Circle) Second(x float64) float64 {
	d := c.Radius*c.Radius - x*x
	if d < denomFloor {
		d = denomFloor
	}
	return -c.Radius * c.Radius / math.Pow(d, 1.5)
}

func (c *Circle) CurvatureRadius(x float64) float64 {
	return radiusFrom(c.Slope(x), c.Second(x))
}

func (c *Circle) Params() map[string]float64 {
	return map[string]float64{"radius": c.Radius}
}
