// Package contact implements the bat-ball collision model: whether a
// swing makes contact, and if so the batted ball's exit velocity, launch
// angle and spray angle, via the BBS (bat-ball-speed) collision equation.
package contact

import (
	"github.com/baseball-sim/pitchsim/internal/pitchrng"
	"github.com/baseball-sim/pitchsim/internal/players"
	"github.com/baseball-sim/pitchsim/internal/simconfig"
)

// Outcome is the result of a swing that was offered at a pitch.
type Outcome struct {
	Whiff           bool
	Foul            bool
	ExitVelocityMPH float64
	LaunchAngleDeg  float64
	SprayAngleDeg   float64
	BackspinRPM     float64
}

// Resolve determines whether a swing connects and, if so, the batted
// ball's launch parameters. pitchWhiffRate is the pitch type's configured
// base_whiff_rate; inZoneProbability comes from the swing package's zone
// membership signal (pitches further from the heart of the zone are
// harder to square up, even when a batter chooses to offer at them).
func Resolve(hitter players.Hitter, pitchWhiffRate float64, inZoneProbability float64, pitchSpeedMPH float64, strikes int, cal simconfig.Calibration, rng *pitchrng.Stream) Outcome {
	contactRating := hitter.ContactRating()

	whiffP := pitchWhiffRate * (1.3 - 0.6*contactRating) * (1.4 - 0.4*inZoneProbability)
	if strikes >= 2 {
		whiffP *= cal.TwoStrikeWhiffBonus
	}
	whiffP = clamp01(whiffP)

	if rng.Float64() < whiffP {
		return Outcome{Whiff: true}
	}

	quality := contactQuality(contactRating, inZoneProbability, rng)

	foulP := foulProbability(quality, strikes, cal)
	foul := rng.Float64() < foulP

	ev := exitVelocity(cal, pitchSpeedMPH, hitter.BatSpeedMPH(), quality)
	launch := launchAngle(hitter, quality, cal, rng)
	spray := sprayAngle(quality, cal, rng)
	backspin := 1200 + 800*quality // harder, better-struck contact carries more backspin

	// A launch angle steep enough to scrape the backstop or a pop-up hit
	// nearly straight down can't stay fair regardless of the probabilistic
	// foul roll above.
	if launch < -8 || launch > 65 {
		foul = true
	}

	return Outcome{
		Foul:            foul,
		ExitVelocityMPH: ev,
		LaunchAngleDeg:  launch,
		SprayAngleDeg:   spray,
		BackspinRPM:     backspin,
	}
}

// contactQuality is a 0-1 signal for how squarely the bat met the ball;
// it drives exit velocity, launch angle spread and foul probability.
func contactQuality(contactRating, inZoneProbability float64, rng *pitchrng.Stream) float64 {
	mean := 0.35 + 0.35*contactRating + 0.20*inZoneProbability
	q := mean + rng.NormFloat64()*0.18
	return clamp01(q)
}

func foulProbability(quality float64, strikes int, cal simconfig.Calibration) float64 {
	base := cal.WeakContactFoulProb * (1 - quality)
	if strikes >= 2 {
		base += cal.TwoStrikeProtectionFoul(qualityLabel(quality))
	}
	return clamp01(base)
}

func qualityLabel(q float64) string {
	switch {
	case q >= 0.7:
		return "solid"
	case q >= 0.4:
		return "fair"
	default:
		return "weak"
	}
}

// exitVelocity applies the BBS equation EV = q*v_pitch + (1+q)*v_bat,
// scaled down for weak contact.
func exitVelocity(cal simconfig.Calibration, pitchSpeedMPH, batSpeedMPH, quality float64) float64 {
	q := cal.CollisionEfficiencyWood
	ev := q*pitchSpeedMPH + (1+q)*batSpeedMPH
	return ev * (0.55 + 0.55*quality)
}

// launchAngle biases toward the hitter's power tendency but is otherwise
// driven by contact quality: mishits cluster toward the ground-ball/
// pop-up extremes, square contact clusters near the calibrated
// line-drive/fly-ball middle of simconfig's attack angle range.
func launchAngle(hitter players.Hitter, quality float64, cal simconfig.Calibration, rng *pitchrng.Stream) float64 {
	lo, hi := cal.AttackAngleRangeDeg[0], cal.AttackAngleRangeDeg[1]
	mid := (lo + hi) / 2
	powerShift := (hitter.PowerRating() - 0.5) * (hi - mid) * 0.6

	spread := (1 - quality) * 35
	angle := mid + powerShift + rng.NormFloat64()*(8+spread)
	return clampRange(angle, -70, 70)
}

// sprayAngle is approximately pull-neutral with Gaussian scatter, widened
// for weaker contact (mishits are less directionally controlled).
func sprayAngle(quality float64, cal simconfig.Calibration, rng *pitchrng.Stream) float64 {
	sigma := cal.SpraySigmaDeg * (1.2 - 0.3*quality)
	return clampRange(rng.NormFloat64()*sigma, -45, 45)
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

func clampRange(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
