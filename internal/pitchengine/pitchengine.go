// Package pitchengine drives one pitch's trajectory from release to the
// plate, and solves the inverse problem spec.md requires: given a target
// plate-crossing point, iteratively adjust the release aim so the pitch —
// accounting for Magnus drift — actually arrives there. Grounded on the
// classical RK4 step loop from CAMSim's integration engine, generalized
// from aircraft state to ball flight and driven by internal/ballphysics.
package pitchengine

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/baseball-sim/pitchsim/internal/ballphysics"
	"github.com/baseball-sim/pitchsim/internal/environment"
	"github.com/baseball-sim/pitchsim/internal/simconfig"
)

// Coordinate convention: X is horizontal (positive toward first base/right
// field), Y is distance from home plate toward the mound (positive,
// decreasing as the ball approaches the plate), Z is height above the
// ground. The plate is the Y=0 plane.

// MoundDistanceFt is the regulation distance from the rubber to the back
// point of home plate.
const MoundDistanceFt = 60.5

// ReleasePoint is where a pitch leaves the pitcher's hand, in feet.
type ReleasePoint struct {
	X, Y, Z float64
}

// DefaultRelease returns a typical over-the-top release point: 1.5ft
// toward the third-base side (-X), 5.5ft off the mound distance toward the
// plate (extension), 6ft off the ground.
func DefaultRelease() ReleasePoint {
	return ReleasePoint{X: -1.5, Y: MoundDistanceFt - 5.5, Z: 6.0}
}

// PlateCrossing is where and how a pitch arrives at the plate.
type PlateCrossing struct {
	HorizontalIn float64 // inches from center, + = toward 1B
	HeightIn     float64 // inches above the ground
	SpeedMPH     float64
	Velocity     r3.Vec
	TimeS        float64
}

// Pitch is a fully specified thrown pitch: release point, initial
// velocity, and spin.
type Pitch struct {
	Release  ReleasePoint
	Velocity r3.Vec // ft/s, Y component negative (toward the plate)
	SpinRPM  float64
	SpinAxis r3.Vec
}

// ErrDidNotReachPlate is returned when a trajectory's Y velocity is
// non-negative or the step budget is exhausted before Y crosses zero — a
// malformed pitch (e.g. release aimed away from the plate).
var ErrDidNotReachPlate = errors.New("pitchengine: trajectory never reached the plate")

const maxPlateSteps = 4000

// Fly integrates a pitch from release to the plate (Y=0), returning the
// plate-crossing state. The aero force is composed with the game's wind
// (subtracted from the ball's air-relative velocity) and gravity, per
// ballphysics.GravityForce.
func Fly(p Pitch, aero ballphysics.AeroParams, cond environment.Conditions, dt float64) (PlateCrossing, error) {
	wind := cond.WindVector()
	force := func(s ballphysics.State) (r3.Vec, error) {
		relVel := r3.Sub(s.Velocity, wind)
		f, err := aero.Force(relVel, s.SpinRPM, s.SpinAxis)
		if err != nil {
			return r3.Vec{}, err
		}
		gravity := r3.Vec{Z: -aero.BallMassSlug * ballphysics.GravityFtPerSec2}
		return r3.Add(f, gravity), nil
	}

	state := ballphysics.State{
		Position: r3.Vec{X: p.Release.X, Y: p.Release.Y, Z: p.Release.Z},
		Velocity: p.Velocity,
		SpinRPM:  p.SpinRPM,
		SpinAxis: p.SpinAxis,
	}

	t := 0.0
	for step := 0; step < maxPlateSteps; step++ {
		next, err := ballphysics.Step(state, force, dt, aero.BallMassSlug, ballphysics.ReferencePrecision)
		if err != nil {
			return PlateCrossing{}, err
		}
		if next.Speed() > ballphysics.MaxSpeedFtPerSec {
			return PlateCrossing{}, ballphysics.ErrIntegratorAborted
		}

		if next.Position.Y <= 0 {
			denom := state.Position.Y - next.Position.Y
			frac := 1.0
			if denom != 0 {
				frac = (state.Position.Y - 0) / denom
			}
			frac = clamp01(frac)
			landing := ballphysics.LerpState(state, next, frac)
			return PlateCrossing{
				HorizontalIn: landing.Position.X * 12.0,
				HeightIn:     landing.Position.Z * 12.0,
				SpeedMPH:     landing.Speed() * 3600.0 / 5280.0,
				Velocity:     landing.Velocity,
				TimeS:        t + frac*dt,
			}, nil
		}

		state = next
		t += dt
	}
	return PlateCrossing{}, ErrDidNotReachPlate
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// Target is the desired plate-crossing location and the pitch
// characteristics (speed, spin) that should produce it.
type Target struct {
	HorizontalIn float64
	HeightIn     float64
	SpeedMPH     float64
	SpinRPM      float64
	SpinAxis     r3.Vec
}

const maxTargetingIterations = 5
const targetingCorrectionGain = 0.9

// Solve finds release aim angles that land a pitch at Target, via the
// fixed-point iteration spec.md describes: each iteration flies a trial
// pitch, measures the (horizontal, height) miss, and nudges the aim by
// 0.9x the miss, converging in at most 5 iterations (the same handful of
// corrections a pitcher's repeated motor calibration would need).
func Solve(release ReleasePoint, target Target, aero ballphysics.AeroParams, cond environment.Conditions, dt float64) (Pitch, PlateCrossing, error) {
	speedFtS := target.SpeedMPH * 5280.0 / 3600.0

	aimX := target.HorizontalIn / 12.0
	aimZ := target.HeightIn / 12.0

	var lastCrossing PlateCrossing
	for iter := 0; iter < maxTargetingIterations; iter++ {
		vel := aimVelocity(release, aimX, aimZ, speedFtS)
		pitch := Pitch{Release: release, Velocity: vel, SpinRPM: target.SpinRPM, SpinAxis: target.SpinAxis}

		crossing, err := Fly(pitch, aero, cond, dt)
		if err != nil {
			return Pitch{}, PlateCrossing{}, err
		}
		lastCrossing = crossing

		errX := target.HorizontalIn - crossing.HorizontalIn
		errZ := target.HeightIn - crossing.HeightIn
		if math.Abs(errX) < 0.05 && math.Abs(errZ) < 0.05 {
			return pitch, crossing, nil
		}

		aimX += targetingCorrectionGain * errX / 12.0
		aimZ += targetingCorrectionGain * errZ / 12.0
	}

	vel := aimVelocity(release, aimX, aimZ, speedFtS)
	pitch := Pitch{Release: release, Velocity: vel, SpinRPM: target.SpinRPM, SpinAxis: target.SpinAxis}
	return pitch, lastCrossing, nil
}

// aimVelocity builds a release velocity vector of magnitude speedFtS
// pointed from release toward the aim point on the plate plane.
func aimVelocity(release ReleasePoint, aimX, aimZ, speedFtS float64) r3.Vec {
	aimPoint := r3.Vec{X: aimX, Y: 0, Z: aimZ}
	releaseVec := r3.Vec{X: release.X, Y: release.Y, Z: release.Z}
	dir := r3.Sub(aimPoint, releaseVec)
	n := r3.Norm(dir)
	if n == 0 {
		return r3.Vec{Y: -speedFtS}
	}
	return r3.Scale(speedFtS/n, dir)
}

// ReleaseVelocityFromArsenal returns an arsenal pitch's configured mean
// release speed/spin as Target inputs for Solve. It adds no noise: the
// caller (pitcher.BuildTarget) samples command noise in inches and adds it
// to the intended target before calling Solve — command noise is modeled
// as a miss in intended target, not in the targeting math itself.
func ReleaseVelocityFromArsenal(ap simconfig.ArsenalPitch) (speedMPH, spinRPM float64) {
	return ap.MeanReleaseMPH, ap.MeanSpinRPM
}

// SpinAxisFromArsenal converts an arsenal pitch's tilt/gyro description
// (clock-face tilt in degrees, gyro-spin fraction in degrees) into a unit
// spin axis vector in the X/Z (tilt) plane with a Y (gyro) component.
func SpinAxisFromArsenal(ap simconfig.ArsenalPitch) r3.Vec {
	tiltRad := (ap.SpinAxisTiltDeg) * math.Pi / 180.0
	gyroRad := ap.SpinAxisGyroDeg * math.Pi / 180.0

	// A tilt of 0 degrees (12 o'clock from the catcher's view) is pure
	// backspin: for a pitch travelling toward the plate (-Y) that is an axis
	// along -X, so the Magnus direction (axis x velocity) points up. Tilt
	// rotates the axis through +Z (90 degrees, sidespin) to +X (180 degrees,
	// topspin) as it sweeps around the clock face; gyro tilts some of the
	// axis into the Y (bullet-spin) direction, which contributes no Magnus
	// lift.
	x := -math.Cos(tiltRad) * math.Cos(gyroRad)
	z := math.Sin(tiltRad) * math.Cos(gyroRad)
	y := math.Sin(gyroRad)
	return ballphysics.NormalizeAxis(r3.Vec{X: x, Y: y, Z: z})
}
