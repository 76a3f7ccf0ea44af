// Package metrics provides run-level diagnostics computed from the
// per-step sample stream.
package metrics

import (
	"math"

	"github.com/shardul-317/slidesim/internal/physics"
	"github.com/shardul-317/slidesim/internal/sim"
)

// EnergyError tracks the worst violation of the energy bookkeeping
// KE + PE + W = E0 over a run. While in contact the sum is conserved up
// to integration error, and after liftoff both terms are frozen; only
// the terminal sample is excluded: it clamps a negative kinetic
// overshoot to zero, which breaks the balance.
type EnergyError struct {
	initial float64
	maxErr  float64
	samples int
}

func NewEnergyError() *EnergyError { return &EnergyError{} }

func (e *EnergyError) Name() string { return "energy_error" }

func (e *EnergyError) Observe(r physics.StepResult) {
	if r.Phase == physics.PhaseStopped {
		return
	}
	total := r.KE + r.PE + r.W
	if e.samples == 0 {
		e.initial = total
	}
	e.samples++

	err := math.Abs(total - e.initial)
	if e.initial != 0 {
		err /= math.Abs(e.initial)
	}
	if err > e.maxErr {
		e.maxErr = err
	}
}

func (e *EnergyError) Value() float64 { return e.maxErr }

func (e *EnergyError) Reset() {
	e.initial = 0
	e.maxErr = 0
	e.samples = 0
}

// FrictionWork reports the cumulative friction work at the last sample.
type FrictionWork struct {
	work float64
}

func NewFrictionWork() *FrictionWork { return &FrictionWork{} }

func (f *FrictionWork) Name() string { return "friction_work" }

func (f *FrictionWork) Observe(r physics.StepResult) {
	f.work = r.W
}

func (f *FrictionWork) Value() float64 { return f.work }

func (f *FrictionWork) Reset() { f.work = 0 }

// Liftoff records the x of the first sample that reports loss of
// contact; NaN while the mass stays on the surface.
type Liftoff struct {
	x      float64
	lifted bool
}

func NewLiftoff() *Liftoff {
	return &Liftoff{x: math.NaN()}
}

func (l *Liftoff) Name() string { return "liftoff_x" }

func (l *Liftoff) Observe(r physics.StepResult) {
	if !l.lifted && r.Phase == physics.PhaseProjectile {
		l.x = r.X
		l.lifted = true
	}
}

func (l *Liftoff) Value() float64 { return l.x }

func (l *Liftoff) Reset() {
	l.x = math.NaN()
	l.lifted = false
}

// Defaults is the metric set the CLI attaches to every run.
func Defaults() []sim.Metric {
	return []sim.Metric{
		NewEnergyError(),
		NewFrictionWork(),
		NewLiftoff(),
	}
}
