package sim

import (
	"context"
	"math"
	"testing"

	"github.com/shardul-317/slidesim/internal/physics"
	"github.com/shardul-317/slidesim/internal/surface"
)

// statesEqual compares states treating NaN liftoff markers as equal.
func statesEqual(a, b physics.State) bool {
	eq := func(x, y float64) bool {
		return x == y || (math.IsNaN(x) && math.IsNaN(y))
	}
	return eq(a.X, b.X) && eq(a.V, b.V) && eq(a.W, b.W) && eq(a.Y, b.Y) &&
		a.Phase == b.Phase && eq(a.LiftoffX, b.LiftoffX) &&
		eq(a.VX, b.VX) && eq(a.VY, b.VY)
}

func newTrackSim(t *testing.T, mu, v0 float64) *Simulator {
	t.Helper()
	params := physics.Params{
		Gravity: 9.81,
		Mass:    1.0,
		Dx:      0.01,
		Mu:      physics.ConstantMu(mu),
	}
	stepper := physics.NewStepper(surface.NewTrack(), params)
	s, err := New(stepper, Domain{XMin: -4.0, XMax: 5.0}, -4.0, v0)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return s
}

func TestRunToCompletionFrictionStop(t *testing.T) {
	s := newTrackSim(t, 0.3, 3.0)

	result, err := s.RunToCompletion(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if result.Summary.FinalPhase != "stopped" {
		t.Fatalf("expected stopped, got %s", result.Summary.FinalPhase)
	}
	if !math.IsNaN(result.Summary.LiftoffX) {
		t.Error("expected no liftoff on the flat run-in")
	}
	if result.Summary.FrictionWork <= 0 {
		t.Errorf("expected positive friction work, got %f", result.Summary.FrictionWork)
	}
	if result.Summary.MaxEnergyError > 1e-9 {
		t.Errorf("energy bookkeeping error too large: %g", result.Summary.MaxEnergyError)
	}

	// On the flat the object only decelerates, and W never decreases.
	prevV, prevW := math.Inf(1), -1.0
	for _, r := range result.Steps {
		if r.Phase == physics.PhaseContact {
			if r.V > prevV {
				t.Fatalf("velocity increased at x=%f: %f > %f", r.X, r.V, prevV)
			}
			prevV = r.V
		}
		if r.W < prevW {
			t.Fatalf("friction work decreased at x=%f: %f < %f", r.X, r.W, prevW)
		}
		prevW = r.W
	}
}

func TestDeterminism(t *testing.T) {
	first, err := newTrackSim(t, 0.3, 3.0).RunToCompletion(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	second, err := newTrackSim(t, 0.3, 3.0).RunToCompletion(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if len(first.Steps) != len(second.Steps) {
		t.Fatalf("step counts differ: %d vs %d", len(first.Steps), len(second.Steps))
	}
	for i := range first.Steps {
		if first.Steps[i] != second.Steps[i] {
			t.Fatalf("trajectories diverge at step %d: %+v vs %+v", i, first.Steps[i], second.Steps[i])
		}
	}
}

func TestTickedRunMatchesBatch(t *testing.T) {
	batch, err := newTrackSim(t, 0.2, 4.0).RunToCompletion(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	// Tick-driven run with pauses sprinkled in; pausing must not change
	// the numeric trajectory.
	s := newTrackSim(t, 0.2, 4.0)
	var ticked []physics.StepResult
	i := 0
	for !s.Done() {
		if i%7 == 0 {
			s.Pause()
			if _, ok := s.Tick(); ok {
				t.Fatal("Tick advanced while paused")
			}
			s.Resume()
		}
		r, ok := s.Tick()
		if !ok {
			break
		}
		ticked = append(ticked, r)
		i++
	}

	if len(batch.Steps) != len(ticked) {
		t.Fatalf("step counts differ: batch %d, ticked %d", len(batch.Steps), len(ticked))
	}
	for i := range ticked {
		if batch.Steps[i] != ticked[i] {
			t.Fatalf("trajectories diverge at step %d", i)
		}
	}
}

func TestStepNoOpOutsideDomain(t *testing.T) {
	params := physics.DefaultParams()
	stepper := physics.NewStepper(surface.NewTrack(), params)
	s, err := New(stepper, Domain{XMin: -4.0, XMax: 5.0}, 6.0, 1.0)
	if err != nil {
		t.Fatal(err)
	}

	if !s.Done() {
		t.Fatal("expected simulation outside domain to be done")
	}
	before := s.State()
	if _, ok := s.Step(); ok {
		t.Error("expected Step to be a no-op outside the domain")
	}
	if !statesEqual(s.State(), before) {
		t.Error("state changed on a no-op step")
	}
}

func TestStoppedIsTerminalAndIdempotent(t *testing.T) {
	s := newTrackSim(t, 0.5, 2.0)
	if _, err := s.RunToCompletion(context.Background()); err != nil {
		t.Fatal(err)
	}
	if s.State().Phase != physics.PhaseStopped {
		t.Fatalf("expected stopped, got %v", s.State().Phase)
	}

	before := s.State()
	for i := 0; i < 3; i++ {
		if _, ok := s.Step(); ok {
			t.Fatal("Step advanced a stopped simulation")
		}
	}
	if !statesEqual(s.State(), before) {
		t.Error("stopped state mutated by further steps")
	}
}

func TestResetClearsAccumulatedState(t *testing.T) {
	s := newTrackSim(t, 0.3, 3.0)
	for i := 0; i < 50; i++ {
		s.Step()
	}
	if s.State().W == 0 {
		t.Fatal("expected friction work after 50 steps")
	}

	s.Reset(-4.0, 3.0)
	st := s.State()
	if st.W != 0 || st.X != -4.0 || st.V != 3.0 || st.Phase != physics.PhaseContact {
		t.Errorf("reset left stale state: %+v", st)
	}
	if s.StepsTaken() != 0 {
		t.Errorf("expected step counter cleared, got %d", s.StepsTaken())
	}
}

func TestResetDoesNotTouchPause(t *testing.T) {
	s := newTrackSim(t, 0.3, 3.0)
	s.Pause()
	s.Reset(-4.0, 3.0)
	if s.Running() {
		t.Error("reset must not resume a paused simulation")
	}
}

func TestContextCancellation(t *testing.T) {
	s := newTrackSim(t, 0.0, 5.0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := s.RunToCompletion(ctx); err != context.Canceled {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

type countingObserver struct{ n int }

func (c *countingObserver) OnStep(physics.StepResult) { c.n++ }

func TestObserversSeeEverySample(t *testing.T) {
	s := newTrackSim(t, 0.3, 3.0)
	obs := &countingObserver{}
	s.AddObserver(obs)

	result, err := s.RunToCompletion(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if obs.n != len(result.Steps) {
		t.Errorf("observer saw %d samples, result has %d", obs.n, len(result.Steps))
	}
}
