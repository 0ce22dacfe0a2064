// Package swing implements the batter's swing/take decision for a pitch
// that has already arrived at the plate.
package swing

import (
	"math"

	"github.com/baseball-sim/pitchsim/internal/pitchrng"
	"github.com/baseball-sim/pitchsim/internal/players"
	"github.com/baseball-sim/pitchsim/internal/simconfig"
	"github.com/baseball-sim/pitchsim/internal/umpire"
)

// Decision is the outcome of a batter's swing/take choice for one pitch.
type Decision struct {
	Swung             bool
	InZoneProbability float64 // the zone-membership signal the decision was based on
}

// zone mirrors umpire.DefaultZone's rulebook dimensions; the swing model
// reasons about the true rulebook zone, not the umpire's personal zone,
// since a batter doesn't know an umpire's idiosyncrasies mid-pitch.
var zone = umpire.DefaultZone()

// zoneMembership returns a smooth 0-1 "how deep inside the zone is this
// pitch" signal, the same sigmoid-margin shape the umpire package uses for
// calling pitches, so swing decisions and ball/strike calls are built on a
// consistent notion of "in the zone."
func zoneMembership(horizontalIn, heightIn float64) float64 {
	horizMargin := zone.HalfWidthIn - math.Abs(horizontalIn)
	var vertMargin float64
	mid := (zone.BottomIn + zone.TopIn) / 2
	if heightIn < mid {
		vertMargin = heightIn - zone.BottomIn
	} else {
		vertMargin = zone.TopIn - heightIn
	}
	return sigmoid(horizMargin/3.0) * sigmoid(vertMargin/3.0)
}

func sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}

// reactionPenaltySpeedMPH is the velocity above which a hitter's reaction
// time starts to matter for recognizing and committing to a swing.
const reactionPenaltySpeedMPH = 95.0

// tunneledPitches get an extra swing-inducing bump: breaking pitches that
// tunnel off a fastball look identical out of the hand, so hitters commit
// to swings they'd otherwise take.
var tunneledPitches = map[string]bool{
	"slider":    true,
	"curveball": true,
}

// Decide draws a swing/take decision. A disciplined hitter (high Eye
// grade) swings less at pitches outside the zone and more at pitches
// inside it than an undisciplined one; the two-strike protection
// adjustment widens the effective swing zone once the batter is
// protecting the plate. pitchSpeedMPH and pitchName drive the reaction-time
// and pitch-tunneling modifiers.
func Decide(hitter players.Hitter, horizontalIn, heightIn, pitchSpeedMPH float64, pitchName string, balls, strikes int, cal simconfig.Calibration, rng *pitchrng.Stream) Decision {
	membership := zoneMembership(horizontalIn, heightIn)

	baseSwingRate := 0.15 + 0.65*membership // 15% chase floor, 80% in-zone ceiling

	discipline := hitter.DisciplineRating()
	// Discipline pulls chase swings down and in-zone takes down,
	// symmetric around the membership midpoint.
	disciplineAdjust := cal.DisciplineMultiplier * (membership - 0.5) * (discipline - 0.5) * 2

	protectionBoost := 0.0
	if strikes >= 2 {
		protectionBoost = (1 - membership) * 0.20 // widen the zone when protecting with 2 strikes
	}

	reactionPenalty := 0.0
	if pitchSpeedMPH > reactionPenaltySpeedMPH {
		over := clamp01((pitchSpeedMPH - reactionPenaltySpeedMPH) / 15.0)
		reactionPenalty = over * (1 - hitter.ReactionRating()) * 0.25
	}

	tunnelBonus := 0.0
	if tunneledPitches[pitchName] {
		tunnelBonus = 0.08 * membership
	}

	p := baseSwingRate + disciplineAdjust + protectionBoost - reactionPenalty + tunnelBonus
	p = clamp01(p)

	return Decision{Swung: rng.Float64() < p, InZoneProbability: membership}
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
