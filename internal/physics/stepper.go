package physics

import (
	"math"

	"github.com/shardul-317/slidesim/internal/surface"
)

// speedFloor avoids a divide-by-zero when converting the horizontal
// increment to a flight-time increment.
const speedFloor = 1e-6

// Stepper advances a [State] along a surface one horizontal increment
// at a time. In contact it applies an energy balance with friction loss
// and watches for the normal force crossing zero; after liftoff it
// integrates simplified projectile kinematics (no horizontal
// deceleration and no re-contact, matching the modeled system).
type Stepper struct {
	surf   surface.Surface
	params Params
}

func NewStepper(surf surface.Surface, params Params) *Stepper {
	return &Stepper{surf: surf, params: params}
}

func (st *Stepper) Surface() surface.Surface { return st.surf }
func (st *Stepper) Params() Params           { return st.params }

// NewState places the mass on the surface at x0 with speed v0.
func (st *Stepper) NewState(x0, v0 float64) State {
	return State{
		X:        x0,
		V:        v0,
		Y:        st.surf.Height(x0),
		Phase:    PhaseContact,
		LiftoffX: math.NaN(),
	}
}

// Step advances the state by exactly one horizontal increment and
// returns the resulting sample. Calling it on a stopped state is a
// no-op that returns the same frozen sample.
func (st *Stepper) Step(s *State) StepResult {
	switch s.Phase {
	case PhaseContact:
		return st.stepContact(s)
	case PhaseProjectile:
		return st.stepProjectile(s)
	default:
		return st.frozen(s)
	}
}

func (st *Stepper) stepContact(s *State) StepResult {
	g, m, dx := st.params.Gravity, st.params.Mass, st.params.Dx

	x := s.X
	slope := st.surf.Slope(x)
	theta := math.Atan(slope)
	cosT, sinT := math.Cos(theta), math.Sin(theta)
	ds := math.Sqrt(1+slope*slope) * dx
	y := st.surf.Height(x)

	// Signed curvature: concave-up surface presses the mass in, convex
	// reduces the normal force until the surface cannot pull.
	kappa := 0.0
	if r := st.surf.CurvatureRadius(x); !math.IsInf(r, 1) {
		kappa = 1 / r
		if st.surf.Second(x) < 0 {
			kappa = -kappa
		}
	}

	nGravity := m * g * cosT
	nCentripetal := m * s.V * s.V * kappa
	nTotal := nGravity + nCentripetal

	if nTotal <= 0 {
		// Liftoff at this x: the surface cannot supply the required
		// force. Normal components report as zero from here on, W and
		// the mechanical energy stay frozen, and flight begins on the
		// next increment.
		s.Phase = PhaseProjectile
		s.LiftoffX = x
		s.Y = y
		s.VX = s.V * cosT
		s.VY = s.V * sinT

		ke := 0.5 * m * s.V * s.V
		return StepResult{
			X: x, V: s.V, Y: y,
			KE: ke, PE: m * g * y, W: s.W,
			Accel: -g * sinT,
			Phase: PhaseProjectile,
		}
	}

	mu := st.params.Mu(x)
	friction := mu * nTotal
	dW := friction * ds
	accel := -g*sinT - (friction/m)*(s.V/math.Sqrt(1+slope*slope))

	eOld := 0.5*m*s.V*s.V + m*g*y
	xNew := x + dx
	yNew := st.surf.Height(xNew)
	keNew := eOld - dW - m*g*yNew
	wNew := s.W + dW

	if keNew < 0 {
		// Friction and gravity exhausted the kinetic budget inside this
		// increment; terminal, not an error.
		s.X, s.Y, s.V, s.W = xNew, yNew, 0, wNew
		s.Phase = PhaseStopped
		return st.frozen(s)
	}

	s.X, s.Y, s.W = xNew, yNew, wNew
	s.V = math.Sqrt(2 * keNew / m)

	return StepResult{
		X: xNew, V: s.V, Y: yNew,
		KE: keNew, PE: m * g * yNew, W: wNew,
		Normal:            nTotal,
		NormalGravity:     nGravity,
		NormalCentripetal: nCentripetal,
		Accel:             accel,
		Phase:             PhaseContact,
	}
}

func (st *Stepper) stepProjectile(s *State) StepResult {
	g, m, dx := st.params.Gravity, st.params.Mass, st.params.Dx

	speed := math.Hypot(s.VX, s.VY)
	if speed < speedFloor {
		speed = speedFloor
	}
	dt := dx / speed

	s.X += dx
	s.Y += s.VY*dt - 0.5*g*dt*dt
	s.VY -= g * dt
	s.V = math.Hypot(s.VX, s.VY)

	return StepResult{
		X: s.X, V: s.V, Y: s.Y,
		KE: 0.5 * m * s.V * s.V, PE: m * g * s.Y, W: s.W,
		Accel: -g,
		Phase: PhaseProjectile,
	}
}

// frozen builds the terminal sample for a stopped state. The mass rests
// on the surface, so the gravity component of the normal force remains.
func (st *Stepper) frozen(s *State) StepResult {
	g, m := st.params.Gravity, st.params.Mass
	theta := math.Atan(st.surf.Slope(s.X))
	n := m * g * math.Cos(theta)
	return StepResult{
		X: s.X, V: 0, Y: s.Y,
		KE: 0, PE: m * g * s.Y, W: s.W,
		Normal:        n,
		NormalGravity: n,
		Phase:         PhaseStopped,
	}
}
