package surface

import "math"

// Track is the built-in piecewise surface: a flat run-in for x < 0
// followed by a cosine hill. Derivatives are closed-form on both pieces.
type Track struct {
	Amplitude float64
	Frequency float64
}

func NewTrack() *Track {
	return &Track{
		Amplitude: 1.0,
		Frequency: 1.0,
	}
}

func (t *Track) Name() string { return "track" }

func (t *Track) Height(x float64) float64 {
	if x < 0 {
		return 0
	}
	return t.Amplitude * (1 - math.Cos(t.Frequency*x))
}

func (t *Track) Slope(x float64) float64 {
	if x < 0 {
		return 0
	}
	return t.Amplitude * t.Frequency * math.Sin(t.Frequency*x)
}

func (t *Track) Second(x float64) float64 {
	if x < 0 {
		return 0
	}
	return t.Amplitude * t.Frequency * t.Frequency * math.Cos(t.Frequency*x)
}

func (t *Track) CurvatureRadius(x float64) float64 {
	return radiusFrom(t.Slope(x), t.Second(x))
}

func (t *Track) Params() map[string]float64 {
	return map[string]float64{
		"amplitude": t.Amplitude,
		"frequency": t.Frequency,
	}
}
