package physics_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/shardul-317/slidesim/internal/physics"
	"github.com/shardul-317/slidesim/internal/surface"
)

// dome is a synthetic surface with zero slope and a constant convex
// curvature radius, handy for exercising the liftoff balance exactly.
type dome struct{ r float64 }

func (d dome) Name() string                      { return "dome" }
func (d dome) Height(x float64) float64          { return 0 }
func (d dome) Slope(x float64) float64           { return 0 }
func (d dome) Second(x float64) float64          { return -1 / d.r }
func (d dome) CurvatureRadius(x float64) float64 { return d.r }

var _ = Describe("Stepper", func() {
	var params physics.Params

	BeforeEach(func() {
		params = physics.Params{
			Gravity: 9.81,
			Mass:    1.0,
			Dx:      0.01,
			Mu:      physics.ConstantMu(0.3),
		}
	})

	Describe("contact phase on the flat-then-curved track", func() {
		It("conserves KE + PE + W at every step", func() {
			st := physics.NewStepper(surface.NewTrack(), params)
			s := st.NewState(-4.0, 3.0)
			e0 := 0.5 * 3.0 * 3.0

			for s.Phase == physics.PhaseContact {
				r := st.Step(&s)
				if r.Phase != physics.PhaseContact {
					break
				}
				Expect(r.KE + r.PE + r.W).To(BeNumerically("~", e0, 1e-9))
			}
		})

		It("accrues monotonically non-decreasing friction work", func() {
			st := physics.NewStepper(surface.NewTrack(), params)
			s := st.NewState(-4.0, 3.0)

			prev := 0.0
			for s.Phase == physics.PhaseContact {
				r := st.Step(&s)
				Expect(r.W).To(BeNumerically(">=", prev))
				prev = r.W
			}
		})

		It("stops where friction exhausts the kinetic budget", func() {
			st := physics.NewStepper(surface.NewTrack(), params)
			s := st.NewState(-4.0, 3.0)

			for s.Phase != physics.PhaseStopped {
				st.Step(&s)
			}

			// Flat run-in: v0^2/2 = mu*g*d gives the analytic stop distance.
			d := 3.0 * 3.0 / (2 * 0.3 * 9.81)
			Expect(s.X).To(BeNumerically("~", -4.0+d, 0.02))
			Expect(s.V).To(BeZero())
		})

		It("evaluates the friction coefficient at the pre-step x", func() {
			var seen []float64
			params.Mu = func(x float64) float64 {
				seen = append(seen, x)
				return 0.3
			}
			st := physics.NewStepper(surface.NewTrack(), params)
			s := st.NewState(-4.0, 3.0)

			st.Step(&s)
			st.Step(&s)

			Expect(seen).To(HaveLen(2))
			Expect(seen[0]).To(Equal(-4.0))
			Expect(seen[1]).To(BeNumerically("~", -3.99, 1e-12))
		})
	})

	Describe("stopped phase", func() {
		It("is idempotent", func() {
			st := physics.NewStepper(surface.NewTrack(), params)
			s := st.NewState(-4.0, 1.0)

			for s.Phase != physics.PhaseStopped {
				st.Step(&s)
			}
			first := st.Step(&s)
			second := st.Step(&s)

			Expect(second).To(Equal(first))
			Expect(s.Phase).To(Equal(physics.PhaseStopped))
		})
	})

	Describe("liftoff on a frictionless circle", func() {
		BeforeEach(func() {
			params.Mu = physics.ConstantMu(0)
		})

		It("separates at the angle where g·cosθ = v²/R", func() {
			circ := surface.NewCircle(5.0)
			st := physics.NewStepper(circ, params)
			s := st.NewState(0, 4.0)

			for s.Phase == physics.PhaseContact && s.X < 4.9 {
				st.Step(&s)
			}
			Expect(s.Phase).To(Equal(physics.PhaseProjectile))

			// cosθ* = (v0² + 2gR) / (3gR), x* = R·sinθ*.
			g, r, v0 := params.Gravity, 5.0, 4.0
			cosStar := (v0*v0 + 2*g*r) / (3 * g * r)
			xStar := r * math.Sqrt(1-cosStar*cosStar)
			Expect(s.LiftoffX).To(BeNumerically("~", xStar, 0.05))
		})

		It("conserves energy exactly up to liftoff", func() {
			circ := surface.NewCircle(5.0)
			st := physics.NewStepper(circ, params)
			s := st.NewState(0, 4.0)
			e0 := 0.5*4.0*4.0 + 9.81*circ.Height(0)

			for s.Phase == physics.PhaseContact && s.X < 4.9 {
				r := st.Step(&s)
				Expect(r.W).To(BeZero())
				Expect(r.KE + r.PE).To(BeNumerically("~", e0, 1e-9))
			}
		})

		It("reports zero normal force from the liftoff sample onward", func() {
			circ := surface.NewCircle(5.0)
			st := physics.NewStepper(circ, params)
			s := st.NewState(0, 4.0)

			lifted := false
			for i := 0; i < 2000 && s.Phase != physics.PhaseStopped; i++ {
				r := st.Step(&s)
				if r.Phase == physics.PhaseProjectile {
					lifted = true
				}
				if lifted {
					Expect(r.Normal).To(BeZero())
					Expect(r.NormalGravity).To(BeZero())
					Expect(r.NormalCentripetal).To(BeZero())
				}
			}
			Expect(lifted).To(BeTrue())
		})
	})

	Describe("liftoff tie-break", func() {
		It("treats an exactly-zero normal force as separation", func() {
			// g=9, R=1, v=3: N = m(g - v²/R) is exactly zero.
			params.Gravity = 9.0
			st := physics.NewStepper(dome{r: 1.0}, params)
			s := st.NewState(0, 3.0)

			r := st.Step(&s)
			Expect(r.Phase).To(Equal(physics.PhaseProjectile))
			Expect(s.LiftoffX).To(Equal(0.0))
		})
	})

	Describe("projectile phase", func() {
		It("freezes friction work and conserves mechanical energy in flight", func() {
			params.Mu = physics.ConstantMu(0)
			st := physics.NewStepper(surface.NewCircle(5.0), params)
			s := st.NewState(0, 4.0)

			for s.Phase == physics.PhaseContact {
				st.Step(&s)
			}
			wAtLiftoff := s.W

			var prev physics.StepResult
			first := true
			for i := 0; i < 100; i++ {
				r := st.Step(&s)
				Expect(r.W).To(Equal(wAtLiftoff))
				Expect(r.Accel).To(Equal(-params.Gravity))
				if !first {
					Expect(r.Energy()).To(BeNumerically("~", prev.Energy(), 1e-9))
				}
				prev, first = r, false
			}
		})

		It("keeps the horizontal velocity component unchanged", func() {
			params.Mu = physics.ConstantMu(0)
			st := physics.NewStepper(surface.NewCircle(5.0), params)
			s := st.NewState(0, 4.0)

			for s.Phase == physics.PhaseContact {
				st.Step(&s)
			}
			vx := s.VX
			for i := 0; i < 50; i++ {
				st.Step(&s)
			}
			Expect(s.VX).To(Equal(vx))
		})
	})

	Describe("negative kinetic energy overshoot", func() {
		It("clamps the velocity to zero and terminates", func() {
			// Steep friction so the budget dies within one increment.
			params.Mu = physics.ConstantMu(50.0)
			st := physics.NewStepper(surface.NewTrack(), params)
			s := st.NewState(-4.0, 0.1)

			r := st.Step(&s)
			Expect(r.Phase).To(Equal(physics.PhaseStopped))
			Expect(r.V).To(BeZero())
			Expect(r.KE).To(BeZero())
		})
	})
})
