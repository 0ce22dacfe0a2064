package ballphysics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// ForceFunc returns the net force (lbf) acting on the ball in the given
// state — aerodynamic force plus gravity plus anything else the caller's
// closure wants to add (e.g. a constant wind-driven term).
type ForceFunc func(State) (r3.Vec, error)

// GravityForce returns a ForceFunc closure that adds constant downward
// gravity to an aerodynamic force model, the composition every pitch and
// batted-ball trajectory integrates under.
func GravityForce(aero AeroParams, spinRPM float64, spinAxis r3.Vec) ForceFunc {
	return func(s State) (r3.Vec, error) {
		f, err := aero.Force(s.Velocity, spinRPM, spinAxis)
		if err != nil {
			return r3.Vec{}, err
		}
		gravity := r3.Vec{Z: -aero.BallMassSlug * GravityFtPerSec2}
		return r3.Add(f, gravity), nil
	}
}

// Precision selects how aggressively the integrator rounds intermediate
// state. Reference mode keeps full float64 precision; Bulk mode rounds
// state to float32 after every step, approximating the reduced-precision
// "fast/bulk" mode spec.md §4.2 permits outside deterministic-reference
// runs.
type Precision int

const (
	ReferencePrecision Precision = iota
	BulkPrecision
)

// Params configures one Integrate call.
type Params struct {
	Dt          float64
	MaxTime     float64
	GroundLevel float64
	MassSlug    float64
	Precision   Precision

	// AdaptiveSubdivision enables halving the step when predicted force
	// change across a step is large. Must stay false in deterministic
	// reference runs (spec.md §4.2).
	AdaptiveSubdivision bool
	maxSubdivisionDepth int

	// Trace, if non-nil, receives the (time, position, velocity) samples
	// for the whole trajectory. Borrowed from a BufferPool by the caller.
	Trace *Buffer
}

// Result is the outcome of a completed integration.
type Result struct {
	Landing     State
	LandingTime float64
	Steps       int
	// TimedOut is true when MaxTime elapsed before the ball reached
	// GroundLevel (e.g. a towering fly ball integrated only to the
	// fence-height check point by the caller).
	TimedOut bool
}

// Integrate runs fixed-step RK4 from initial until the ball crosses
// GroundLevel (linearly interpolating the final step) or MaxTime elapses.
// Four force evaluations occur per step, per spec.md §4.2's classical RK4
// contract.
func Integrate(initial State, force ForceFunc, p Params) (Result, error) {
	if p.Dt <= 0 {
		return Result{}, ErrIntegratorAborted
	}
	if p.maxSubdivisionDepth == 0 {
		p.maxSubdivisionDepth = 4
	}
	maxSteps := int(math.Ceil(p.MaxTime/p.Dt)) + 2

	state := initial
	if p.Precision == BulkPrecision {
		state = roundState(state)
	}
	t := 0.0

	if p.Trace != nil {
		if !p.Trace.Append(t, state.Position, state.Velocity) {
			return Result{}, ErrTrajectoryTooLong
		}
	}

	for step := 0; step < maxSteps; step++ {
		if t >= p.MaxTime {
			return Result{Landing: state, LandingTime: t, Steps: step, TimedOut: true}, nil
		}

		dt := p.Dt
		next, err := stepWithSubdivision(state, force, dt, p.MassSlug, p.AdaptiveSubdivision, p.maxSubdivisionDepth)
		if err != nil {
			return Result{Landing: state, LandingTime: t, Steps: step}, ErrIntegratorAborted
		}
		if p.Precision == BulkPrecision {
			next = roundState(next)
		}
		if !finiteState(next) {
			return Result{Landing: state, LandingTime: t, Steps: step}, ErrIntegratorAborted
		}
		if next.Speed() > MaxSpeedFtPerSec {
			// Integrator divergence sanity check (spec.md §3).
			return Result{Landing: state, LandingTime: t, Steps: step}, ErrIntegratorAborted
		}

		if next.Position.Z <= p.GroundLevel {
			frac := 0.0
			denom := state.Position.Z - next.Position.Z
			if denom != 0 {
				frac = (state.Position.Z - p.GroundLevel) / denom
			}
			frac = clamp(frac, 0, 1)
			landingPos := lerpVec(state.Position, next.Position, frac)
			landingVel := lerpVec(state.Velocity, next.Velocity, frac)
			landingTime := t + frac*dt
			landing := State{Position: landingPos, Velocity: landingVel, SpinRPM: next.SpinRPM, SpinAxis: next.SpinAxis}
			if p.Trace != nil {
				p.Trace.Append(landingTime, landingPos, landingVel)
			}
			return Result{Landing: landing, LandingTime: landingTime, Steps: step + 1}, nil
		}

		if p.Trace != nil {
			if !p.Trace.Append(t+dt, next.Position, next.Velocity) {
				return Result{Landing: next, LandingTime: t + dt, Steps: step + 1}, ErrTrajectoryTooLong
			}
		}

		state = next
		t += dt
	}

	return Result{Landing: state, LandingTime: t, Steps: maxSteps, TimedOut: true}, nil
}

// stepWithSubdivision takes one RK4 step of size dt, optionally
// subdividing into two half-steps when the force changes sharply across
// the interval (a cheap proxy: compare the end-of-step force estimate
// against the start-of-step force).
func stepWithSubdivision(s State, force ForceFunc, dt, mass float64, adaptive bool, depth int) (State, error) {
	if !adaptive || depth <= 0 {
		return rk4Step(s, force, dt, mass)
	}

	f0, err := force(s)
	if err != nil {
		return State{}, err
	}
	trial, err := rk4Step(s, force, dt, mass)
	if err != nil {
		return State{}, err
	}
	f1, err := force(trial)
	if err != nil {
		return State{}, err
	}

	delta := r3.Norm(r3.Sub(f1, f0))
	scale := math.Max(r3.Norm(f0), 1e-6)
	if delta/scale <= 0.25 {
		return trial, nil
	}

	half, err := rk4Step(s, force, dt/2, mass)
	if err != nil {
		return State{}, err
	}
	return stepWithSubdivision(half, force, dt/2, mass, adaptive, depth-1)
}

// Step advances one fixed-size RK4 step, with optional bulk-precision
// rounding. It's exported so callers that terminate on a condition other
// than ground contact (pitchengine's plate-crossing plane, for instance)
// can drive their own loop with the same four-evaluation RK4 core that
// Integrate uses for ground-crossing trajectories.
func Step(s State, force ForceFunc, dt, mass float64, precision Precision) (State, error) {
	next, err := rk4Step(s, force, dt, mass)
	if err != nil {
		return State{}, err
	}
	if precision == BulkPrecision {
		next = roundState(next)
	}
	if !finiteState(next) {
		return State{}, ErrNonFiniteForce
	}
	return next, nil
}

// LerpState linearly interpolates between two states at fraction frac in
// [0,1], used to find the exact crossing point of a termination plane
// between two integrated steps.
func LerpState(a, b State, frac float64) State {
	return State{
		Position: lerpVec(a.Position, b.Position, frac),
		Velocity: lerpVec(a.Velocity, b.Velocity, frac),
		SpinRPM:  b.SpinRPM,
		SpinAxis: b.SpinAxis,
	}
}

// rk4Step performs one classical RK4 step with four force evaluations.
func rk4Step(s State, force ForceFunc, dt, mass float64) (State, error) {
	deriv := func(st State) (posDot, velDot r3.Vec, err error) {
		f, err := force(st)
		if err != nil {
			return r3.Vec{}, r3.Vec{}, err
		}
		return st.Velocity, r3.Scale(1/mass, f), nil
	}

	k1p, k1v, err := deriv(s)
	if err != nil {
		return State{}, err
	}

	s2 := advance(s, k1p, k1v, dt/2)
	k2p, k2v, err := deriv(s2)
	if err != nil {
		return State{}, err
	}

	s3 := advance(s, k2p, k2v, dt/2)
	k3p, k3v, err := deriv(s3)
	if err != nil {
		return State{}, err
	}

	s4 := advance(s, k3p, k3v, dt)
	k4p, k4v, err := deriv(s4)
	if err != nil {
		return State{}, err
	}

	posDot := rk4Combine(k1p, k2p, k3p, k4p)
	velDot := rk4Combine(k1v, k2v, k3v, k4v)

	return State{
		Position: r3.Add(s.Position, r3.Scale(dt, posDot)),
		Velocity: r3.Add(s.Velocity, r3.Scale(dt, velDot)),
		SpinRPM:  s.SpinRPM,
		SpinAxis: s.SpinAxis,
	}, nil
}

func advance(s State, velAtK, accAtK r3.Vec, dt float64) State {
	return State{
		Position: r3.Add(s.Position, r3.Scale(dt, velAtK)),
		Velocity: r3.Add(s.Velocity, r3.Scale(dt, accAtK)),
		SpinRPM:  s.SpinRPM,
		SpinAxis: s.SpinAxis,
	}
}

func rk4Combine(k1, k2, k3, k4 r3.Vec) r3.Vec {
	sum := r3.Add(k1, r3.Add(r3.Scale(2, k2), r3.Add(r3.Scale(2, k3), k4)))
	return r3.Scale(1.0/6.0, sum)
}

func lerpVec(a, b r3.Vec, frac float64) r3.Vec {
	return r3.Add(a, r3.Scale(frac, r3.Sub(b, a)))
}

func roundState(s State) State {
	return State{
		Position: r3.Vec{X: float64(float32(s.Position.X)), Y: float64(float32(s.Position.Y)), Z: float64(float32(s.Position.Z))},
		Velocity: r3.Vec{X: float64(float32(s.Velocity.X)), Y: float64(float32(s.Velocity.Y)), Z: float64(float32(s.Velocity.Z))},
		SpinRPM:  float64(float32(s.SpinRPM)),
		SpinAxis: s.SpinAxis,
	}
}
