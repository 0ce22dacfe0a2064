// Package ballphysics implements the 6-DOF ball state, the aerodynamic
// force model, and the fixed-step RK4 trajectory integrator described in
// spec.md §3, §4.1 and §4.2.
package ballphysics

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// MaxSpeedFtPerSec is the sanity ceiling on ball speed (200 mph) spec.md
// requires the integrator to enforce between steps to catch divergence.
const MaxSpeedFtPerSec = 200.0 * 5280.0 / 3600.0

// GravityFtPerSec2 is standard gravity in ft/s^2.
const GravityFtPerSec2 = 32.174

// Errors returned by the force model and integrator. All are recoverable
// at the trajectory level per spec.md §7: the caller aborts this
// trajectory and continues the at-bat rather than the game.
var (
	ErrNonFiniteForce    = errors.New("ballphysics: non-finite force")
	ErrIntegratorAborted = errors.New("ballphysics: integrator aborted")
	ErrTrajectoryTooLong = errors.New("ballphysics: trajectory exceeds buffer capacity")
)

// State is the 6-DOF ball state: position and velocity in feet/ft-per-second,
// plus spin rate and axis.
type State struct {
	Position r3.Vec  // feet
	Velocity r3.Vec  // ft/s
	SpinRPM  float64 // revolutions per minute
	SpinAxis r3.Vec  // unit vector
}

// Speed returns the scalar speed in ft/s.
func (s State) Speed() float64 { return r3.Norm(s.Velocity) }

func finiteVec(v r3.Vec) bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) &&
		!math.IsNaN(v.Y) && !math.IsInf(v.Y, 0) &&
		!math.IsNaN(v.Z) && !math.IsInf(v.Z, 0)
}

func finiteState(s State) bool {
	return finiteVec(s.Position) && finiteVec(s.Velocity) &&
		!math.IsNaN(s.SpinRPM) && !math.IsInf(s.SpinRPM, 0) && finiteVec(s.SpinAxis)
}

// NormalizeAxis returns a unit vector along v, or the zero vector if v has
// no length (no Magnus effect in that case).
func NormalizeAxis(v r3.Vec) r3.Vec {
	n := r3.Norm(v)
	if n == 0 {
		return r3.Vec{}
	}
	return r3.Scale(1/n, v)
}
