// Package game orchestrates a full nine-inning (or extra-innings) contest
// from its constituent at-bats: inning/out bookkeeping, lineup turnover,
// and scoring. Adapted from the teacher's GameState/Count/BaseState shape
// in models/game_state.go and the simulateGame loop in
// simulation/engine.go, rebuilt around internal/atbat's physics-driven
// plate appearances instead of a stat-blend outcome draw.
package game

import (
	"fmt"

	"github.com/baseball-sim/pitchsim/internal/atbat"
	"github.com/baseball-sim/pitchsim/internal/ballpark"
	"github.com/baseball-sim/pitchsim/internal/ballphysics"
	"github.com/baseball-sim/pitchsim/internal/debuglog"
	"github.com/baseball-sim/pitchsim/internal/environment"
	"github.com/baseball-sim/pitchsim/internal/pitchrng"
	"github.com/baseball-sim/pitchsim/internal/play"
	"github.com/baseball-sim/pitchsim/internal/players"
	"github.com/baseball-sim/pitchsim/internal/simconfig"
	"github.com/baseball-sim/pitchsim/internal/umpire"
)

// Team is one side's starting pitcher and batting order for the game.
// Bullpen management and mid-game pitching changes are out of scope; the
// starter pitches the full game (spec.md's Non-goals exclude roster/
// bullpen management as a reporting concern, and nothing in the physics
// core requires more than one arm per team to exercise).
type Team struct {
	Name    string
	Pitcher players.Pitcher
	Lineup  []players.Hitter
}

// Result is the final boxscore-level outcome of one simulated game. The
// plate-appearance outcome counters exist so a batch of Results can derive
// the K%/BB%/HR% league-calibration rates spec.md §8 checks against.
type Result struct {
	GameID       string
	HomeScore    int
	AwayScore    int
	TotalPitches int
	Innings      int
	Winner       string // "home", "away", or "" for an uncompleted/tied game

	PlateAppearances int
	Strikeouts       int
	Walks            int
	HitByPitches     int
	HomeRuns         int
}

const maxInnings = 30 // sanity cap so a pathological tie can't loop forever

// Simulate plays one complete game deterministically: baseSeed and
// gameIndex together derive every random stream the game uses (weather,
// pitch-by-pitch noise, contact quality, baserunning), so the same
// (baseSeed, gameIndex, config) always reproduces byte-identical results
// regardless of how many worker goroutines run concurrently.
func Simulate(gameID string, home, away Team, cfg simconfig.Config, park *ballpark.Park, parkMeta environment.Park, aero ballphysics.AeroParams, umpTendencies umpire.Tendencies, baseSeed int64, gameIndex int, sink *debuglog.Sink) Result {
	seed := pitchrng.ForGame(baseSeed, gameIndex)
	rng := pitchrng.New(seed, "game")

	cond := environment.ForGame(parkMeta, rng.Sub("weather"))
	// Overlay this game's altitude/temperature/humidity-derived air density
	// onto the aerodynamic model; aero otherwise only carries ball
	// mass/radius and the lookup-table toggle, shared across the batch.
	gameAero := aero
	gameAero.AirDensitySlugFt3 = cond.AirDensitySlugFt3

	s := &state{
		inning: 1,
		half:   top,
		bases:  play.Bases{},
	}

	homeIdx, awayIdx := 0, 0
	totalPitches := 0
	atBatIndex := 0

	for s.inning <= maxInnings {
		battingIsHome := s.half == bottom
		var battingTeam Team
		var idx *int
		if battingIsHome {
			battingTeam = home
			idx = &homeIdx
		} else {
			battingTeam = away
			idx = &awayIdx
		}
		var pitchingTeam Team
		if battingIsHome {
			pitchingTeam = away
		} else {
			pitchingTeam = home
		}

		hitter := battingTeam.Lineup[*idx%len(battingTeam.Lineup)]
		*idx++

		abRNG := rng.Sub(fmt.Sprintf("%d-%s-ab-%d", s.inning, s.half, atBatIndex))
		outcome := atbat.Run(pitchingTeam.Pitcher, hitter, umpTendencies, cfg, cond, gameAero, abRNG)
		totalPitches += len(outcome.Pitches)
		if sink != nil {
			_ = sink.LogAtBat(gameID, atBatIndex, outcome)
		}
		atBatIndex++

		switch outcome.Result {
		case atbat.StrikeoutLooking, atbat.StrikeoutSwinging:
			s.strikeouts++
		case atbat.Walk:
			s.walks++
		case atbat.HitByPitch:
			s.hitByPitches++
		}

		runs, outsAdded, hr := resolveAtBat(outcome, s, hitter, park, gameAero, cond, cfg, abRNG)
		if hr {
			s.homeRuns++
		}
		if battingIsHome {
			s.homeScore += runs
		} else {
			s.awayScore += runs
		}
		s.outs += outsAdded

		if s.outs >= 3 {
			if gameOver(s) {
				break
			}
			s.advanceHalfInning()
		}

		if gameOver(s) {
			break
		}
	}

	winner := ""
	if s.homeScore > s.awayScore {
		winner = "home"
	} else if s.awayScore > s.homeScore {
		winner = "away"
	}

	return Result{
		GameID:       gameID,
		HomeScore:    s.homeScore,
		AwayScore:    s.awayScore,
		TotalPitches: totalPitches,
		Innings:      s.inning,
		Winner:       winner,

		PlateAppearances: atBatIndex,
		Strikeouts:       s.strikeouts,
		Walks:            s.walks,
		HitByPitches:     s.hitByPitches,
		HomeRuns:         s.homeRuns,
	}
}

type half string

const (
	top    half = "top"
	bottom half = "bottom"
)

type state struct {
	inning    int
	half      half
	outs      int
	homeScore int
	awayScore int
	bases     play.Bases

	strikeouts   int
	walks        int
	hitByPitches int
	homeRuns     int
}

func (s *state) advanceHalfInning() {
	s.outs = 0
	s.bases = play.Bases{}
	if s.half == top {
		s.half = bottom
	} else {
		s.half = top
		s.inning++
	}
}

// gameOver implements the teacher's IsGameOver rule: the game ends after
// the completed bottom of the 9th (or later) if the score isn't tied, or
// immediately if the home team takes the lead batting in the bottom of
// the 9th or later.
func gameOver(s *state) bool {
	if s.inning >= 9 && s.half == bottom {
		if s.outs >= 3 && s.homeScore != s.awayScore {
			return true
		}
		if s.homeScore > s.awayScore {
			return true
		}
	}
	if s.inning > 9 && s.half == bottom && s.outs >= 3 {
		return s.homeScore != s.awayScore
	}
	return false
}

// resolveAtBat converts an atbat.Outcome into runs scored, outs added, and
// whether the at-bat ended on a home run, updating baserunners in place for
// hits and walks/HBP; strikeouts and other outs leave the bases unchanged.
// A hit-by-pitch is resolved with the same forced-advancement rule as a walk.
func resolveAtBat(outcome atbat.Outcome, s *state, hitter players.Hitter, park *ballpark.Park, aero ballphysics.AeroParams, cond environment.Conditions, cfg simconfig.Config, rng *pitchrng.Stream) (runs, outs int, hr bool) {
	batter := play.Runner{PlayerID: hitter.ID, Name: hitter.Name, Speed: 50 + 30*(float64(hitter.Attributes.Speed)-20.0)/60.0}

	switch outcome.Result {
	case atbat.StrikeoutLooking, atbat.StrikeoutSwinging, atbat.PitchLimitAborted:
		return 0, 1, false
	case atbat.Walk, atbat.HitByPitch:
		return play.Walk(&s.bases, batter), 0, false
	case atbat.BallInPlay:
		const fielderRangeFtS = 26.0
		classification, err := play.Classify(outcome.Contact, park, aero, cond, cfg.Calibration.DtFast, fielderRangeFtS, string(hitter.BatsHand), rng)
		if err != nil {
			// A batted-ball trajectory that diverges numerically is
			// treated as a routine out rather than aborting the game.
			return 0, 1, false
		}
		if classification.Type == play.Out {
			return 0, 1, false
		}
		runsScored := play.Advance(&s.bases, batter, classification.Type, rng)
		return runsScored, 0, classification.Type == play.HomeRun
	default:
		return 0, 1, false
	}
}
