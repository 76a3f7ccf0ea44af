package sim

import (
	"fmt"

	"github.com/shardul-317/slidesim/internal/physics"
)

// Domain is the half-open horizontal range [XMin, XMax) a run covers.
type Domain struct {
	XMin float64
	XMax float64
}

func (d Domain) Contains(x float64) bool {
	return x >= d.XMin && x < d.XMax
}

func (d Domain) Validate() error {
	if d.XMax <= d.XMin {
		return fmt.Errorf("domain [%f, %f) is empty", d.XMin, d.XMax)
	}
	return nil
}

type Metric interface {
	Name() string
	Observe(r physics.StepResult)
	Value() float64
	Reset()
}

// Observer consumes samples after the state has been advanced; it must
// not feed back into the numeric state.
type Observer interface {
	OnStep(r physics.StepResult)
}

type Summary struct {
	InitialEnergy  float64 `json:"initial_energy"`
	FinalEnergy    float64 `json:"final_energy"`
	FrictionWork   float64 `json:"friction_work"`
	LiftoffX       float64 `json:"liftoff_x"` // NaN when contact never broke
	MaxEnergyError float64 `json:"max_energy_error"`
	Steps          int     `json:"steps"`
	FinalPhase     string  `json:"final_phase"`
}

type Result struct {
	Steps   []physics.StepResult
	Summary Summary
	Metrics map[string]float64
}
