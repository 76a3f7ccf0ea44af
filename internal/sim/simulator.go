// Package sim owns the simulation state and the stepping loop, exposing
// the start/pause/reset operations a UI, test harness, or batch runner
// drives. Tick-driven and batch runs share the same Step path, so both
// produce identical trajectories for identical inputs.
package sim

import (
	"context"
	"math"

	"github.com/shardul-317/slidesim/internal/physics"
)

// Simulator is the single writer of its SimulationState. Rendering and
// persistence hang off it as observers and never touch the state.
type Simulator struct {
	stepper *physics.Stepper
	domain  Domain
	state   physics.State

	x0, v0  float64
	running bool

	initialEnergy float64
	maxEnergyErr  float64
	steps         int

	metrics   []Metric
	observers []Observer
}

func New(stepper *physics.Stepper, domain Domain, x0, v0 float64) (*Simulator, error) {
	if err := stepper.Params().Validate(); err != nil {
		return nil, err
	}
	if err := domain.Validate(); err != nil {
		return nil, err
	}
	s := &Simulator{
		stepper: stepper,
		domain:  domain,
		running: true,
	}
	s.Reset(x0, v0)
	return s, nil
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) State() physics.State      { return s.state }
func (s *Simulator) Domain() Domain            { return s.domain }
func (s *Simulator) Stepper() *physics.Stepper { return s.stepper }
func (s *Simulator) Running() bool             { return s.running }
func (s *Simulator) Pause()                    { s.running = false }
func (s *Simulator) Resume()                   { s.running = true }
func (s *Simulator) StepsTaken() int           { return s.steps }
func (s *Simulator) InitialEnergy() float64    { return s.initialEnergy }
func (s *Simulator) MaxEnergyError() float64   { return s.maxEnergyErr }

// Done reports whether the run reached a terminal condition: the mass
// stopped or left the configured domain.
func (s *Simulator) Done() bool {
	return s.state.Phase == physics.PhaseStopped || !s.domain.Contains(s.state.X)
}

// Reset reinitializes the state at the given start conditions, clearing
// accumulated friction work and metric history. The pause flag is left
// alone; pausing and resetting are independent controls.
func (s *Simulator) Reset(x0, v0 float64) {
	s.x0, s.v0 = x0, v0
	s.state = s.stepper.NewState(x0, v0)
	p := s.stepper.Params()
	s.initialEnergy = 0.5*p.Mass*v0*v0 + p.Mass*p.Gravity*s.state.Y
	s.maxEnergyErr = 0
	s.steps = 0
	for _, m := range s.metrics {
		m.Reset()
	}
}

// Restart is Reset back to the run's original start conditions.
func (s *Simulator) Restart() {
	s.Reset(s.x0, s.v0)
}

// Step advances the state by exactly one horizontal increment. Once the
// run is done it is a no-op: the frozen state is returned and ok is
// false, which callers surface as "simulation complete".
func (s *Simulator) Step() (physics.StepResult, bool) {
	if s.Done() {
		return physics.StepResult{
			X: s.state.X, V: s.state.V, Y: s.state.Y,
			W: s.state.W, Phase: s.state.Phase,
		}, false
	}

	r := s.stepper.Step(&s.state)
	s.steps++

	// The conservation invariant binds while in contact; the terminal
	// clamp and the frozen flight bookkeeping are excluded.
	if r.Phase == physics.PhaseContact {
		err := math.Abs(r.KE + r.PE + r.W - s.initialEnergy)
		if err > s.maxEnergyErr {
			s.maxEnergyErr = err
		}
	}

	for _, m := range s.metrics {
		m.Observe(r)
	}
	for _, o := range s.observers {
		o.OnStep(r)
	}
	return r, true
}

// Tick is the interactive entry point: one Step per tick while not
// paused. The physics is the same Step the batch loop uses.
func (s *Simulator) Tick() (physics.StepResult, bool) {
	if !s.running {
		return physics.StepResult{}, false
	}
	return s.Step()
}

// RunToCompletion drives Step until the run terminates, collecting one
// sample per increment plus summary scalars.
func (s *Simulator) RunToCompletion(ctx context.Context) (*Result, error) {
	result := &Result{
		Steps:   make([]physics.StepResult, 0, 1024),
		Metrics: make(map[string]float64),
	}

	for !s.Done() {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		r, ok := s.Step()
		if !ok {
			break
		}
		result.Steps = append(result.Steps, r)
	}

	result.Summary = s.Summarize(result)
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	return result, nil
}

// Summarize builds the end-of-run scalars from the current state and
// the collected samples.
func (s *Simulator) Summarize(result *Result) Summary {
	finalEnergy := s.initialEnergy
	if n := len(result.Steps); n > 0 {
		last := result.Steps[n-1]
		finalEnergy = last.Energy()
	}
	return Summary{
		InitialEnergy:  s.initialEnergy,
		FinalEnergy:    finalEnergy,
		FrictionWork:   s.state.W,
		LiftoffX:       s.state.LiftoffX,
		MaxEnergyError: s.maxEnergyErr,
		Steps:          s.steps,
		FinalPhase:     s.state.Phase.String(),
	}
}
