// Package ballpark turns a park's surveyed fence table into a continuous
// fence-distance/height function usable by the play resolver, and carries
// the altitude/surface/park-factor adjustments spec.md's play module needs
// on top of pure trajectory physics.
package ballpark

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/interp"

	"github.com/baseball-sim/pitchsim/internal/simconfig"
)

// Park wraps a simconfig.ParkGeometry with a piecewise-linear fence
// interpolator and the environmental multipliers that apply to batted-ball
// outcomes once the trajectory lands.
type Park struct {
	Geometry simconfig.ParkGeometry
	Altitude int    // feet above sea level
	Surface  string // "grass" or "turf"
	Factors  Factors

	fenceDist   interp.PiecewiseLinear
	fenceHeight interp.PiecewiseLinear
}

// New builds a Park from surveyed geometry, fitting the piecewise-linear
// fence predictors once so FenceAt is cheap on the play-resolution hot path.
// Factors defaults to NeutralFactors(); callers with real park-factor data
// can set p.Factors after construction.
func New(geo simconfig.ParkGeometry, altitude int, surface string) (*Park, error) {
	if len(geo.Fences) < 2 {
		return nil, fmt.Errorf("ballpark: park %q needs at least two fence points", geo.Name)
	}
	angles := make([]float64, len(geo.Fences))
	dists := make([]float64, len(geo.Fences))
	heights := make([]float64, len(geo.Fences))
	for i, f := range geo.Fences {
		angles[i] = f.SprayAngleDeg
		dists[i] = f.DistanceFt
		heights[i] = f.HeightFt
	}

	p := &Park{Geometry: geo, Altitude: altitude, Surface: surface, Factors: NeutralFactors()}
	if err := p.fenceDist.Fit(angles, dists); err != nil {
		return nil, fmt.Errorf("ballpark: fitting fence distance table: %w", err)
	}
	if err := p.fenceHeight.Fit(angles, heights); err != nil {
		return nil, fmt.Errorf("ballpark: fitting fence height table: %w", err)
	}
	return p, nil
}

// FoulLineDeg is the spray angle magnitude beyond which a batted ball is
// foul territory, per spec.md's |spray| > 45 degree rule.
const FoulLineDeg = 45.0

// IsFoul reports whether a spray angle (degrees, 0 = dead center, negative
// toward left field) lands in foul territory.
func IsFoul(sprayAngleDeg float64) bool {
	return math.Abs(sprayAngleDeg) > FoulLineDeg
}

// FenceAt returns the outfield wall's distance and height at the given
// spray angle, clamped to the surveyed range.
func (p *Park) FenceAt(sprayAngleDeg float64) (distanceFt, heightFt float64) {
	lo, hi := p.Geometry.Fences[0].SprayAngleDeg, p.Geometry.Fences[len(p.Geometry.Fences)-1].SprayAngleDeg
	a := clampTo(sprayAngleDeg, lo, hi)
	return p.fenceDist.Predict(a), p.fenceHeight.Predict(a)
}

func clampTo(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Factors holds the park-specific multipliers applied to outcome
// probabilities once the ball lands: altitude inflates carry, turf speeds
// ground balls, and a park's own handedness-split HR factors shade batted
// balls that clear the fence into a home run versus a deep double.
type Factors struct {
	RunsFactor, HRFactor, HitsFactor, DoublesFactor, TriplesFactor float64
	LHBHRFactor, RHBHRFactor                                       float64
	BABIPFactor, StrikeoutFactor, WalkFactor                       float64
}

// NeutralFactors returns factors with no park effect (100 = neutral).
func NeutralFactors() Factors {
	return Factors{
		RunsFactor: 100, HRFactor: 100, HitsFactor: 100, DoublesFactor: 100, TriplesFactor: 100,
		LHBHRFactor: 100, RHBHRFactor: 100, BABIPFactor: 100, StrikeoutFactor: 100, WalkFactor: 100,
	}
}

// Multiplier returns the factor (as a 1.0-centered ratio) for an outcome
// type and batter handedness ("L" or "R").
func (f Factors) Multiplier(outcomeType, batterHand string) float64 {
	switch outcomeType {
	case "home_run":
		if batterHand == "L" && f.LHBHRFactor > 0 {
			return f.LHBHRFactor / 100.0
		}
		if batterHand == "R" && f.RHBHRFactor > 0 {
			return f.RHBHRFactor / 100.0
		}
		return f.HRFactor / 100.0
	case "double":
		return ratioOr1(f.DoublesFactor)
	case "triple":
		return ratioOr1(f.TriplesFactor)
	case "single", "hit":
		return ratioOr1(f.HitsFactor)
	case "walk":
		return ratioOr1(f.WalkFactor)
	case "strikeout":
		return ratioOr1(f.StrikeoutFactor)
	default:
		return 1.0
	}
}

func ratioOr1(f float64) float64 {
	if f > 0 {
		return f / 100.0
	}
	return 1.0
}

// AltitudeCarryBoost returns the fractional increase in fly-ball carry
// distance from playing at altitude — roughly 2% per 1000 ft above 1000 ft,
// capped at 20% (Coors Field at 5280 ft gets about 8.6%; the cap is reached
// at 11,000 ft).
func AltitudeCarryBoost(altitudeFt int) float64 {
	if altitudeFt <= 1000 {
		return 1.0
	}
	boost := float64(altitudeFt-1000) / 1000.0 * 0.02
	if boost > 0.20 {
		boost = 0.20
	}
	return 1.0 + boost
}

// SurfaceEffect returns the multiplier a playing surface applies to a
// ground-ball outcome's chance of going for a hit; turf speeds grounders
// through the infield slightly relative to grass.
func SurfaceEffect(surface, outcomeType string) float64 {
	switch surface {
	case "turf", "artificial":
		if outcomeType == "single" || outcomeType == "double" {
			return 1.03
		}
		return 1.0
	default:
		return 1.0
	}
}
