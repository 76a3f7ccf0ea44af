package physics

import (
	"fmt"
	"math"
)

type Phase int

const (
	PhaseContact Phase = iota
	PhaseProjectile
	PhaseStopped
)

func (p Phase) String() string {
	switch p {
	case PhaseContact:
		return "contact"
	case PhaseProjectile:
		return "projectile"
	case PhaseStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// MuFunc is a deterministic friction coefficient as a function of the
// horizontal position. It is always evaluated at the pre-step x.
type MuFunc func(x float64) float64

func ConstantMu(mu float64) MuFunc {
	return func(float64) float64 { return mu }
}

type Params struct {
	Gravity float64
	Mass    float64
	Dx      float64
	Mu      MuFunc
}

func DefaultParams() Params {
	return Params{
		Gravity: 9.81,
		Mass:    1.0,
		Dx:      0.01,
		Mu:      ConstantMu(0.3),
	}
}

func (p Params) Validate() error {
	if p.Gravity <= 0 {
		return fmt.Errorf("gravity must be positive, got %f", p.Gravity)
	}
	if p.Mass <= 0 {
		return fmt.Errorf("mass must be positive, got %f", p.Mass)
	}
	if p.Dx <= 0 {
		return fmt.Errorf("dx must be positive, got %f", p.Dx)
	}
	if p.Mu == nil {
		return fmt.Errorf("friction function must be set")
	}
	return nil
}

// State is the mutable simulation record. It has exactly one writer,
// the [Stepper], which advances it one horizontal increment per call.
type State struct {
	X float64 // horizontal position
	V float64 // speed along the path
	W float64 // cumulative friction work, frozen after liftoff
	Y float64 // height, tracked explicitly once airborne

	Phase    Phase
	LiftoffX float64 // NaN while still in contact

	// In-flight velocity components, set at liftoff.
	VX float64
	VY float64
}

func (s State) Lifted() bool {
	return !math.IsNaN(s.LiftoffX)
}

// StepResult is the read-only per-increment sample handed to result
// sinks. Normal force components are those at the start of the
// increment; they are identically zero once contact is lost.
type StepResult struct {
	X  float64
	V  float64
	Y  float64
	KE float64
	PE float64
	W  float64

	Normal            float64
	NormalGravity     float64
	NormalCentripetal float64
	Accel             float64

	Phase Phase
}

// Energy is the mechanical energy KE + PE of the sample.
func (r StepResult) Energy() float64 {
	return r.KE + r.PE
}
