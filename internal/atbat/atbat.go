// Package atbat sequences individual pitches into a complete plate
// appearance: tracking the count, applying foul-ball and two-strike
// protection rules, and terminating at a strikeout, walk, or ball in play.
// Grounded on the teacher's Count/AtBat shape in models/game_state.go,
// generalized from a stat-lookup outcome draw into a pitch-by-pitch loop
// driven by the physics and decision packages.
package atbat

import (
	"fmt"
	"math"

	"github.com/baseball-sim/pitchsim/internal/ballphysics"
	"github.com/baseball-sim/pitchsim/internal/contact"
	"github.com/baseball-sim/pitchsim/internal/environment"
	"github.com/baseball-sim/pitchsim/internal/pitcher"
	"github.com/baseball-sim/pitchsim/internal/pitchengine"
	"github.com/baseball-sim/pitchsim/internal/pitchrng"
	"github.com/baseball-sim/pitchsim/internal/players"
	"github.com/baseball-sim/pitchsim/internal/simconfig"
	"github.com/baseball-sim/pitchsim/internal/swing"
	"github.com/baseball-sim/pitchsim/internal/umpire"
)

// Count is balls and strikes.
type Count struct {
	Balls   int
	Strikes int
}

// Result is the terminal outcome of one plate appearance.
type Result string

const (
	StrikeoutLooking  Result = "strikeout_looking"
	StrikeoutSwinging Result = "strikeout_swinging"
	Walk              Result = "walk"
	HitByPitch        Result = "hit_by_pitch"
	BallInPlay        Result = "ball_in_play"
	// PitchLimitAborted fires when the 20-pitch cap is hit without a
	// terminal count. The game loop records it as an out (not counted as a
	// strikeout) so the game can continue, and it is flagged in the
	// PitchRecord for the caller to log.
	PitchLimitAborted Result = "pitch_limit_aborted"
)

// hbpHorizontalThresholdIn is how far a taken pitch must drift past the
// plate before it's close enough to the batter to hit them, rather than
// just miss the zone outside. hbpHeightLowIn/HighIn bound the vertical
// range a pitch can strike a standing batter.
const (
	hbpHorizontalThresholdIn = 14.0
	hbpHeightLowIn           = 10.0
	hbpHeightHighIn          = 55.0
)

// isHitByPitch reports whether a taken pitch crossed close enough to the
// batter's body to be called a hit-by-pitch rather than a ball.
func isHitByPitch(horizontalIn, heightIn float64) bool {
	return math.Abs(horizontalIn) >= hbpHorizontalThresholdIn && heightIn >= hbpHeightLowIn && heightIn <= hbpHeightHighIn
}

// PitchRecord is one pitch's diagnostic trace: intention, location,
// call/swing outcome, and (if the pitch was put in play) the contact
// result. internal/debuglog serializes these.
type PitchRecord struct {
	Index          int
	Intention      simconfig.Intention
	PitchName      string
	Crossing       pitchengine.PlateCrossing
	CalledStrike   bool
	Swung          bool
	Whiff          bool
	Foul           bool
	Contact        contact.Outcome
	CountAfter     Count
	Degraded       bool
	DegradedReason string
}

// Outcome is the full record of one plate appearance.
type Outcome struct {
	Result  Result
	Pitches []PitchRecord
	Contact contact.Outcome // populated only when Result == BallInPlay
}

// Run simulates one complete plate appearance.
func Run(
	p players.Pitcher,
	h players.Hitter,
	ump umpire.Tendencies,
	cfg simconfig.Config,
	cond environment.Conditions,
	aero ballphysics.AeroParams,
	rng *pitchrng.Stream,
) Outcome {
	count := Count{}
	var pitches []PitchRecord

	for i := 0; i < cfg.Calibration.MaxPitchesPerAtBat; i++ {
		pitchRNG := rng.Sub(fmt.Sprintf("pitch-%d", i))

		intent := pitcher.SelectIntent(p, cfg.PitcherControl, count.Balls, count.Strikes, pitchRNG)
		target := pitcher.BuildTarget(p, intent, cfg.Calibration, count.Balls, count.Strikes, pitchRNG)
		release := pitchengine.DefaultRelease()

		_, crossing, err := pitchengine.Solve(release, target, aero, cond, cfg.Calibration.DtNormal)
		record := PitchRecord{Index: i, Intention: intent.Intention, PitchName: intent.PitchName, Crossing: crossing}
		if err != nil {
			// Non-finite force or integrator divergence: this single
			// pitch is unrecoverable. Per spec.md error taxonomy it's
			// treated as a ball outside the zone and the at-bat continues.
			record.Degraded = true
			record.DegradedReason = err.Error()
			count.Balls++
			record.CountAfter = count
			pitches = append(pitches, record)
			if count.Balls >= 4 {
				return Outcome{Result: Walk, Pitches: pitches}
			}
			continue
		}

		calledStrike := ump.Call(crossing.HorizontalIn, crossing.HeightIn, count.Balls, count.Strikes, pitchRNG)
		record.CalledStrike = calledStrike

		swingDecision := swing.Decide(h, crossing.HorizontalIn, crossing.HeightIn, crossing.SpeedMPH, intent.PitchName, count.Balls, count.Strikes, cfg.Calibration, pitchRNG)
		record.Swung = swingDecision.Swung

		if !swingDecision.Swung {
			if isHitByPitch(crossing.HorizontalIn, crossing.HeightIn) {
				record.CountAfter = count
				pitches = append(pitches, record)
				return Outcome{Result: HitByPitch, Pitches: pitches}
			}
			if calledStrike {
				count.Strikes++
			} else {
				count.Balls++
			}
			record.CountAfter = count
			pitches = append(pitches, record)

			if count.Strikes >= 3 {
				return Outcome{Result: StrikeoutLooking, Pitches: pitches}
			}
			if count.Balls >= 4 {
				return Outcome{Result: Walk, Pitches: pitches}
			}
			continue
		}

		ap := p.PitchByName(intent.PitchName)
		co := contact.Resolve(h, ap.BaseWhiffRate, swingDecision.InZoneProbability, crossing.SpeedMPH, count.Strikes, cfg.Calibration, pitchRNG)
		record.Whiff = co.Whiff
		record.Foul = co.Foul
		record.Contact = co

		if co.Whiff {
			count.Strikes++
			record.CountAfter = count
			pitches = append(pitches, record)
			if count.Strikes >= 3 {
				return Outcome{Result: StrikeoutSwinging, Pitches: pitches}
			}
			continue
		}

		if co.Foul {
			if count.Strikes < 2 {
				count.Strikes++
			}
			record.CountAfter = count
			pitches = append(pitches, record)
			continue
		}

		record.CountAfter = count
		pitches = append(pitches, record)
		return Outcome{Result: BallInPlay, Pitches: pitches, Contact: co}
	}

	pitches[len(pitches)-1].Degraded = true
	pitches[len(pitches)-1].DegradedReason = "pitch limit reached without a terminal count"
	return Outcome{Result: PitchLimitAborted, Pitches: pitches}
}
