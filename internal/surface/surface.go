// Package surface provides the surface geometries a mass can slide along.
//
// Each family implements [Surface], the closed capability set the stepper
// needs: height, first and second derivative, and curvature radius at a
// horizontal position. Families are a fixed set (track, circle, ellipse,
// expr); dispatch happens once at configuration time.
package surface

import "math"

const (
	// denomFloor keeps closed-form derivatives finite near domain edges
	// (|x| -> radius for the circle family).
	denomFloor = 1e-12

	// curvFloor: below this |y''| the surface counts as flat and the
	// curvature radius is +Inf.
	curvFloor = 1e-9

	// fdStep is the central-difference step for families without
	// closed-form derivatives.
	fdStep = 1e-4
)

type Surface interface {
	Name() string
	Height(x float64) float64
	Slope(x float64) float64
	Second(x float64) float64
	CurvatureRadius(x float64) float64
}

// Describable surfaces expose their numeric parameters for display.
type Describable interface {
	Params() map[string]float64
}

// safeSqrt clamps the operand before the root so float error near a
// domain boundary cannot produce NaN.
func safeSqrt(v float64) float64 {
	if v < denomFloor {
		v = denomFloor
	}
	return math.Sqrt(v)
}

// radiusFrom converts first and second derivatives to a curvature radius.
// Flat or inflection regions report +Inf.
func radiusFrom(slope, second float64) float64 {
	if math.Abs(second) < curvFloor {
		return math.Inf(1)
	}
	return math.Pow(1+slope*slope, 1.5) / math.Abs(second)
}
