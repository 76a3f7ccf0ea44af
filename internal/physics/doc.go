// Package physics implements the kinematic step integrator for a point
// mass sliding along a curved surface under gravity and friction.
//
// The integrator is a three-phase state machine:
//
//   - contact: the mass is constrained to the surface; each increment
//     applies an energy balance E_new = E_old - μ·N·ds and tests the
//     normal force for the liftoff condition N ≤ 0.
//   - projectile: after liftoff the mass flies ballistically with the
//     contact-exit velocity; friction work and mechanical energy stay
//     frozen at their liftoff values.
//   - stopped: terminal; further steps return the same frozen sample.
//
// The projectile phase deliberately ignores horizontal deceleration and
// any later re-contact with the surface.
package physics
