// Package umpire implements the sigmoid-boundary ball/strike call: given
// where a pitch actually crossed the plate, it returns a probability the
// pitch is called a strike. It generalizes the teacher's UmpireTendencies
// (zone size, edge tendency, count tendency, consistency) from a
// percentage-adjustment model over historical rates into a continuous
// model keyed on physical plate-crossing coordinates.
package umpire

import (
	"math"

	"github.com/baseball-sim/pitchsim/internal/pitchrng"
)

// Zone is the rule-book strike zone in inches, centered on home plate:
// HalfWidth is the horizontal half-width, Bottom/Top the vertical bounds
// (which in a full implementation would be batter-height-dependent; kept
// fixed here, since per-batter zone height is configuration the simulation
// core doesn't yet model).
type Zone struct {
	HalfWidthIn float64
	BottomIn    float64
	TopIn       float64
}

// DefaultZone is the rulebook 17-inch-wide plate zone, roughly knees to
// chest for an average hitter.
func DefaultZone() Zone {
	return Zone{HalfWidthIn: 8.5, BottomIn: 18, TopIn: 42}
}

// Tendencies is one umpire's calling profile. Fields keep the teacher's
// 0-100-centered-on-100 scale for zone size and edge tendency so
// configuration authored against the old model still reads naturally.
type Tendencies struct {
	StrikeZoneSize float64 // 100 = rulebook zone, >100 = larger
	EdgeTendency   float64 // 100 = average edge-call sharpness, >100 = calls more of the margin
	CountTendency  float64 // >0 = more hitter-friendly in hitter's counts
	Consistency    float64 // 0-100, higher = tighter sigmoid (less call noise)
}

// DefaultTendencies returns a league-average umpire.
func DefaultTendencies() Tendencies {
	return Tendencies{StrikeZoneSize: 100, EdgeTendency: 100, CountTendency: 0, Consistency: 70}
}

// effectiveZone scales DefaultZone by this umpire's StrikeZoneSize.
func (t Tendencies) effectiveZone() Zone {
	z := DefaultZone()
	scale := t.StrikeZoneSize / 100.0
	return Zone{
		HalfWidthIn: z.HalfWidthIn * scale,
		BottomIn:    z.BottomIn - (scale-1)*6,
		TopIn:       z.TopIn + (scale-1)*6,
	}
}

// sigmoidSharpness converts EdgeTendency and Consistency into the
// sigmoid's steepness (inches over which the call probability transitions
// from mostly-ball to mostly-strike). Sharper (less edge-generous, more
// consistent) umpires have a narrower transition band.
func (t Tendencies) sigmoidSharpness() float64 {
	edgeSoftness := t.EdgeTendency / 100.0 // >1 = fuzzier edges, more generous
	consistencyFactor := consistencyFactor(t.Consistency)
	return 1.0 * edgeSoftness / consistencyFactor
}

func consistencyFactor(consistency float64) float64 {
	switch {
	case consistency >= 80:
		return 1.0
	case consistency >= 60:
		return 0.95
	case consistency >= 40:
		return 0.90
	default:
		return 0.85
	}
}

// StrikeProbability returns the probability a pitch crossing the plate at
// (horizontalIn, heightIn) — horizontal measured from the center of the
// plate, height from the ground — is called a strike, given the count and
// this umpire's tendencies. The horizontal and vertical margins each pass
// through an independent logistic sigmoid and the two multiply, so a pitch
// has to be inside both dimensions' fuzzy boundary to likely be a strike.
func (t Tendencies) StrikeProbability(horizontalIn, heightIn float64, balls, strikes int) float64 {
	zone := t.effectiveZone()
	sharpness := t.sigmoidSharpness()

	countShift := 0.0
	if balls > strikes {
		countShift = -t.CountTendency * 0.02 // hitter's count: shrink the effective zone a hair
	} else if strikes > balls {
		countShift = t.CountTendency * 0.02
	}

	horizMargin := zone.HalfWidthIn - math.Abs(horizontalIn) + countShift
	pHoriz := sigmoid(horizMargin / sharpness)

	var vertMargin float64
	if heightIn < (zone.BottomIn+zone.TopIn)/2 {
		vertMargin = heightIn - zone.BottomIn
	} else {
		vertMargin = zone.TopIn - heightIn
	}
	vertMargin += countShift
	pVert := sigmoid(vertMargin / sharpness)

	return pHoriz * pVert
}

func sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}

// Call draws a called strike/ball from StrikeProbability using the
// supplied deterministic RNG stream, returning true for a strike.
func (t Tendencies) Call(horizontalIn, heightIn float64, balls, strikes int, rng *pitchrng.Stream) bool {
	return rng.Float64() < t.StrikeProbability(horizontalIn, heightIn, balls, strikes)
}
