// Package pitcher selects a pitch intention for the current count and
// turns it into a concrete pitchengine.Target, adding command noise drawn
// from the pitcher's control tier.
package pitcher

import (
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/baseball-sim/pitchsim/internal/pitchengine"
	"github.com/baseball-sim/pitchsim/internal/pitchrng"
	"github.com/baseball-sim/pitchsim/internal/players"
	"github.com/baseball-sim/pitchsim/internal/simconfig"
)

// zoneHalfWidthIn and zoneBounds mirror umpire.DefaultZone; duplicated
// here (rather than importing internal/umpire) because a pitcher's intended
// target is a purely offensive decision independent of how the zone will
// later be called.
const zoneHalfWidthIn = 8.5
const zoneBottomIn = 18
const zoneTopIn = 42
const zoneCenterHeightIn = (zoneBottomIn + zoneTopIn) / 2

// intentionTarget returns the nominal (noise-free) plate location for an
// intention category, independent of the batter's stance.
func intentionTarget(intent simconfig.Intention, rng *pitchrng.Stream) (horizontalIn, heightIn float64) {
	switch intent {
	case simconfig.StrikeLooking:
		return 0, zoneCenterHeightIn
	case simconfig.StrikeCompetitive:
		// Uniform over the inner 70% of the zone's width and its full
		// height; the draw is not biased toward the edges.
		return (rng.Float64()*2 - 1) * zoneHalfWidthIn * 0.7, zoneBottomIn + rng.Float64()*(zoneTopIn-zoneBottomIn)
	case simconfig.StrikeCorner:
		side := 1.0
		if rng.Float64() < 0.5 {
			side = -1.0
		}
		return side * zoneHalfWidthIn * 0.95, zoneBottomIn + rng.Float64()*(zoneTopIn-zoneBottomIn)
	case simconfig.WasteChase:
		side := 1.0
		if rng.Float64() < 0.5 {
			side = -1.0
		}
		return side * (zoneHalfWidthIn + 4 + rng.Float64()*4), zoneBottomIn - 6 + rng.Float64()*4
	case simconfig.BallIntentional:
		side := 1.0
		if rng.Float64() < 0.5 {
			side = -1.0
		}
		return side * (zoneHalfWidthIn + 8), zoneTopIn + 8
	default:
		return 0, zoneCenterHeightIn
	}
}

// Intent is the selected intention and pitch type for one pitch.
type Intent struct {
	Intention simconfig.Intention
	PitchName string
}

// SelectIntent draws an intention from the pitcher-control table for the
// current count, then picks a pitch type from the arsenal weighted by each
// pitch's tunnel-swing factor, raised further by the pitch's base whiff
// rate when the intention is WasteChase or StrikeCorner.
func SelectIntent(p players.Pitcher, cfg simconfig.PitcherControlConfig, balls, strikes int, rng *pitchrng.Stream) Intent {
	probs := cfg.ForCount(balls, strikes)
	r := rng.Float64()

	var intent simconfig.Intention
	switch {
	case r < probs.StrikeLooking:
		intent = simconfig.StrikeLooking
	case r < probs.StrikeLooking+probs.StrikeCompetitive:
		intent = simconfig.StrikeCompetitive
	case r < probs.StrikeLooking+probs.StrikeCompetitive+probs.StrikeCorner:
		intent = simconfig.StrikeCorner
	case r < probs.StrikeLooking+probs.StrikeCompetitive+probs.StrikeCorner+probs.WasteChase:
		intent = simconfig.WasteChase
	default:
		intent = simconfig.BallIntentional
	}

	pitchName := selectPitchType(p, intent, rng)
	return Intent{Intention: intent, PitchName: pitchName}
}

func selectPitchType(p players.Pitcher, intent simconfig.Intention, rng *pitchrng.Stream) string {
	if len(p.Arsenal) == 0 {
		return "fastball"
	}
	weights := make([]float64, len(p.Arsenal))
	total := 0.0
	for i, ap := range p.Arsenal {
		w := ap.TunnelSwingFactor
		if intent == simconfig.WasteChase || intent == simconfig.StrikeCorner {
			// Breaking/offspeed stuff plays up when trying to miss bats
			// off the edge of the zone.
			w *= 1 + (ap.BaseWhiffRate)
		}
		weights[i] = w
		total += w
	}
	r := rng.Float64() * total
	acc := 0.0
	for i, w := range weights {
		acc += w
		if r <= acc {
			return p.Arsenal[i].Name
		}
	}
	return p.Arsenal[len(p.Arsenal)-1].Name
}

// BuildTarget converts a selected Intent into a pitchengine.Target,
// sampling command noise from a Gaussian keyed on the pitcher's control
// tier and ControlZoneBias.
func BuildTarget(p players.Pitcher, intent Intent, cal simconfig.Calibration, balls, strikes int, rng *pitchrng.Stream) pitchengine.Target {
	horizIn, heightIn := intentionTarget(intent.Intention, rng)

	sigma := cal.CommandSigmaInches(p.ControlTier) * (1.1 - 0.2*p.ControlZoneBias())
	noise := distuv.Normal{Mu: 0, Sigma: sigma, Src: rngSource{rng}}

	ap := p.PitchByName(intent.PitchName)
	spinAxis := pitchengine.SpinAxisFromArsenal(ap)
	speedMPH, spinRPM := pitchengine.ReleaseVelocityFromArsenal(ap)

	return pitchengine.Target{
		HorizontalIn: horizIn + noise.Rand(),
		HeightIn:     heightIn + noise.Rand(),
		SpeedMPH:     speedMPH,
		SpinRPM:      spinRPM,
		SpinAxis:     spinAxis,
	}
}

// rngSource adapts pitchrng.Stream to the math/rand.Source interface
// distuv.Normal's Src field expects, so Gaussian command noise draws from
// the same deterministic, per-entity stream as every other random decision
// in the pitch rather than an independent global source.
type rngSource struct {
	s *pitchrng.Stream
}

func (r rngSource) Int63() int64 {
	return int64(r.s.Intn(1<<31)) << 32 | int64(r.s.Intn(1<<31))
}

func (r rngSource) Seed(int64) {}
