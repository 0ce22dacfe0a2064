// Package play resolves a ball in play into an out, a hit (single through
// home run), and the resulting baserunner advancement. Batted-ball
// classification flies the contact outcome through internal/ballphysics
// against the park's fence geometry; baserunner advancement is adapted
// from the teacher's processSingle/processDouble/processTriple/
// processHomeRun/processWalk functions in simulation/engine.go. Each Runner
// carries a Speed, but the advancement odds are fixed and do not depend on it.
package play

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/baseball-sim/pitchsim/internal/ballpark"
	"github.com/baseball-sim/pitchsim/internal/ballphysics"
	"github.com/baseball-sim/pitchsim/internal/contact"
	"github.com/baseball-sim/pitchsim/internal/environment"
	"github.com/baseball-sim/pitchsim/internal/pitchrng"
)

// Type is the classification of a ball in play.
type Type string

const (
	Out      Type = "out"
	Single   Type = "single"
	Double   Type = "double"
	Triple   Type = "triple"
	HomeRun  Type = "home_run"
)

// Classification is the outcome of flying a contact.Outcome through the
// park.
type Classification struct {
	Type         Type
	HangTimeS    float64
	DistanceFt   float64
	LandingSpray float64
}

const maxBattedBallSteps = 20000

// Fly integrates a batted ball's trajectory from contact until it reaches
// the ground (or the step budget runs out). It does not stop at the fence;
// Classify compares the landing point with the fence afterwards.
func Fly(co contact.Outcome, aero ballphysics.AeroParams, cond environment.Conditions, dt float64) (ballphysics.Result, error) {
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

	speedFtS := co.ExitVelocityMPH * 5280.0 / 3600.0
	launchRad := co.LaunchAngleDeg * math.Pi / 180.0
	sprayRad := co.SprayAngleDeg * math.Pi / 180.0

	horizSpeed := speedFtS * math.Cos(launchRad)
	vel := r3.Vec{
		X: horizSpeed * math.Sin(sprayRad),
		Y: -horizSpeed * math.Cos(sprayRad), // toward the outfield, away from home plate
		Z: speedFtS * math.Sin(launchRad),
	}

	state := ballphysics.State{
		Position: r3.Vec{Z: 3.0}, // contact point roughly at the batter's hip height
		Velocity: vel,
		SpinRPM:  co.BackspinRPM,
		SpinAxis: r3.Vec{X: -1}, // pure backspin for a ball travelling along -Y: axis x velocity points up
	}

	return ballphysics.Integrate(state, force, ballphysics.Params{
		Dt:          dt,
		MaxTime:     float64(maxBattedBallSteps) * dt,
		GroundLevel: 0,
		MassSlug:    aero.BallMassSlug,
	})
}

// Classify flies the ball and determines whether it clears the fence,
// is caught for an out, or falls for a hit. fielderRangeFtS is the
// effective outfield range rate (ft of ground an outfielder can cover per
// second of hang time) used to decide whether a fly ball is catchable.
// batterHand ("L" or "R") selects the park's handedness-split HR factor.
func Classify(co contact.Outcome, park *ballpark.Park, aero ballphysics.AeroParams, cond environment.Conditions, dt float64, fielderRangeFtS float64, batterHand string, rng *pitchrng.Stream) (Classification, error) {
	result, err := Fly(co, aero, cond, dt)
	if err != nil {
		return Classification{}, err
	}

	// Altitude thins the air the trajectory already flew through, but the
	// park factor layers an additional empirical carry boost on top of
	// that physics, the same way the teacher's stadium model did.
	distance := math.Hypot(result.Landing.Position.X, result.Landing.Position.Y) * ballpark.AltitudeCarryBoost(park.Altitude)
	spray := math.Atan2(result.Landing.Position.X, -result.Landing.Position.Y) * 180.0 / math.Pi

	if !ballpark.IsFoul(spray) {
		fenceDist, fenceHeight := park.FenceAt(spray)
		if clearsFence(distance, result.Landing.Position.Z, fenceDist, fenceHeight) {
			hrChance := clamp01(park.Factors.Multiplier("home_run", batterHand))
			if rng.Float64() < hrChance {
				return Classification{Type: HomeRun, HangTimeS: result.LandingTime, DistanceFt: distance, LandingSpray: spray}, nil
			}
			// A below-neutral HR factor (short porch robbed by a tall
			// wall, thin air not enough to carry it out) knocks the ball
			// down into a deep double instead of letting it clear.
			return Classification{Type: Double, HangTimeS: result.LandingTime, DistanceFt: distance, LandingSpray: spray}, nil
		}
	}

	return classifyInPark(co, distance, result.LandingTime, spray, fielderRangeFtS, park.Surface, rng), nil
}

// clearsFence reports whether a ball that landed landingDist from home
// plate went past a fence fenceDist away. Only the landing distance is
// compared: fenceHeight is not consulted, so a ball that lands beyond the
// wall counts as clearing it whatever its height when it reached the wall.
func clearsFence(landingDist, landingZ, fenceDist, fenceHeight float64) bool {
	return landingDist >= fenceDist && landingZ >= 0
}

// classifyInPark decides out vs. single/double/triple for a ball that
// stayed in the park, from its hang time, landing distance, and a simple
// fielder-range-against-hang-time catch check.
func classifyInPark(co contact.Outcome, distanceFt, hangTimeS, sprayDeg float64, fielderRangeFtS float64, surface string, rng *pitchrng.Stream) Classification {
	isGroundBall := co.LaunchAngleDeg < 10

	if isGroundBall {
		// Groundball out probability starts at 0.75 and falls as exit
		// velocity climbs above 70 mph (a harder grounder outruns the
		// infield's range); the landing distance is not used. Turf speeds
		// the grounder through the infield,
		// shaving a bit off the out chance.
		outProb := clamp01(0.75-clamp01((co.ExitVelocityMPH-70)/120)) / ballpark.SurfaceEffect(surface, "single")
		if rng.Float64() < clamp01(outProb) {
			return Classification{Type: Out, HangTimeS: hangTimeS, DistanceFt: distanceFt, LandingSpray: sprayDeg}
		}
		return Classification{Type: Single, HangTimeS: hangTimeS, DistanceFt: distanceFt, LandingSpray: sprayDeg}
	}

	// Fly ball / line drive: catchable if the distance a fielder must
	// cover (landing distance, minus typical starting depth) is within
	// what their range rate affords in the available hang time.
	const outfielderStartDepthFt = 300
	coverageNeededFt := math.Abs(distanceFt - outfielderStartDepthFt)
	catchable := coverageNeededFt <= fielderRangeFtS*hangTimeS

	if catchable {
		return Classification{Type: Out, HangTimeS: hangTimeS, DistanceFt: distanceFt, LandingSpray: sprayDeg}
	}

	switch {
	case distanceFt < 280:
		return Classification{Type: Single, HangTimeS: hangTimeS, DistanceFt: distanceFt, LandingSpray: sprayDeg}
	case distanceFt < 350:
		return Classification{Type: Double, HangTimeS: hangTimeS, DistanceFt: distanceFt, LandingSpray: sprayDeg}
	default:
		// Deep drives in the gap/down the line that aren't caught and
		// aren't gone are rare triples; most settle for a double.
		if rng.Float64() < 0.3 {
			return Classification{Type: Triple, HangTimeS: hangTimeS, DistanceFt: distanceFt, LandingSpray: sprayDeg}
		}
		return Classification{Type: Double, HangTimeS: hangTimeS, DistanceFt: distanceFt, LandingSpray: sprayDeg}
	}
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

// Runner is a baserunner: identity and speed, mirroring the teacher's
// BaseRunner shape.
type Runner struct {
	PlayerID string
	Name     string
	Speed    float64 // 0-100 scale
}

// Bases is the occupancy of first/second/third.
type Bases struct {
	First, Second, Third *Runner
}

// Advance applies baserunner movement for a resolved Type, returning runs
// scored and leaving Bases updated with the batter's new position. Rules
// are adapted from the teacher's process{Single,Double,Triple,HomeRun}:
// deterministic advancement for extra-base hits, probabilistic advancement
// on singles (a runner from second scores more often than not; a runner on
// first occasionally stretches to third).
func Advance(bases *Bases, batter Runner, t Type, rng *pitchrng.Stream) (runs int) {
	switch t {
	case Single:
		if bases.Third != nil {
			runs++
			bases.Third = nil
		}
		if bases.Second != nil {
			if rng.Float64() < 0.85 {
				runs++
				bases.Second = nil
			} else {
				bases.Third = bases.Second
				bases.Second = nil
			}
		}
		if bases.First != nil {
			if rng.Float64() < 0.15 {
				bases.Third = bases.First
			} else {
				bases.Second = bases.First
			}
			bases.First = nil
		}
		bases.First = &batter

	case Double:
		if bases.Third != nil {
			runs++
			bases.Third = nil
		}
		if bases.Second != nil {
			runs++
			bases.Second = nil
		}
		if bases.First != nil {
			if rng.Float64() < 0.75 {
				runs++
			} else {
				bases.Third = bases.First
			}
			bases.First = nil
		}
		bases.Second = &batter

	case Triple:
		if bases.Third != nil {
			runs++
			bases.Third = nil
		}
		if bases.Second != nil {
			runs++
			bases.Second = nil
		}
		if bases.First != nil {
			runs++
			bases.First = nil
		}
		bases.Third = &batter

	case HomeRun:
		runs++
		if bases.Third != nil {
			runs++
			bases.Third = nil
		}
		if bases.Second != nil {
			runs++
			bases.Second = nil
		}
		if bases.First != nil {
			runs++
			bases.First = nil
		}

	case Out:
		// No advancement; outs elsewhere on the bases (double plays,
		// runners doubled off) are outside this model's scope.
	}

	return runs
}

// Walk forces runners per the teacher's processWalk: only runners with no
// open base behind them are forced to advance.
func Walk(bases *Bases, batter Runner) (runs int) {
	if bases.First != nil && bases.Second != nil && bases.Third != nil {
		runs++
		bases.Third = bases.Second
		bases.Second = bases.First
	} else if bases.First != nil && bases.Second != nil {
		bases.Third = bases.Second
		bases.Second = bases.First
	} else if bases.First != nil {
		bases.Second = bases.First
	}
	bases.First = &batter
	return runs
}
