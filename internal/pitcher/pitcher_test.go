package pitcher

import (
	"testing"

	"github.com/baseball-sim/pitchsim/internal/pitchrng"
	"github.com/baseball-sim/pitchsim/internal/players"
	"github.com/baseball-sim/pitchsim/internal/simconfig"
)

func testPitcher() players.Pitcher {
	return players.Pitcher{
		ID:          "p1",
		ControlTier: "average",
		Attributes:  players.Attributes{Accuracy: 50},
		Arsenal:     simconfig.Default().Arsenal,
	}
}

func TestSelectIntentIsDeterministicForSameRNG(t *testing.T) {
	p := testPitcher()
	cfg := simconfig.Default().PitcherControl

	a := SelectIntent(p, cfg, 0, 0, pitchrng.New(1, "pitch"))
	b := SelectIntent(p, cfg, 0, 0, pitchrng.New(1, "pitch"))
	if a != b {
		t.Errorf("SelectIntent should be deterministic given the same RNG stream: %+v vs %+v", a, b)
	}
}

func TestSelectIntentThreeAndOhMostlyThrowsStrikeLooking(t *testing.T) {
	p := testPitcher()
	cfg := simconfig.Default().PitcherControl

	counts := map[simconfig.Intention]int{}
	for i := int64(0); i < 500; i++ {
		intent := SelectIntent(p, cfg, 3, 0, pitchrng.New(i, "pitch"))
		counts[intent.Intention]++
	}
	if counts[simconfig.StrikeLooking] < counts[simconfig.WasteChase] {
		t.Error("a 3-0 count should favor StrikeLooking far more than WasteChase")
	}
}

func TestSelectIntentPicksAPitchFromTheArsenal(t *testing.T) {
	p := testPitcher()
	cfg := simconfig.Default().PitcherControl
	intent := SelectIntent(p, cfg, 1, 1, pitchrng.New(2, "pitch"))

	found := false
	for _, ap := range p.Arsenal {
		if ap.Name == intent.PitchName {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("SelectIntent chose a pitch name %q not present in the arsenal", intent.PitchName)
	}
}

func TestSelectIntentEmptyArsenalFallsBackToFastball(t *testing.T) {
	p := players.Pitcher{ControlTier: "average"}
	cfg := simconfig.Default().PitcherControl
	intent := SelectIntent(p, cfg, 0, 0, pitchrng.New(3, "pitch"))
	if intent.PitchName != "fastball" {
		t.Errorf("empty-arsenal pitcher should fall back to \"fastball\", got %q", intent.PitchName)
	}
}

func TestBuildTargetEliteControlTighterThanPoor(t *testing.T) {
	cal := simconfig.Default().Calibration

	elite := players.Pitcher{ControlTier: "elite", Attributes: players.Attributes{Accuracy: 50}, Arsenal: simconfig.Default().Arsenal}
	poor := players.Pitcher{ControlTier: "poor", Attributes: players.Attributes{Accuracy: 50}, Arsenal: simconfig.Default().Arsenal}

	intent := Intent{Intention: simconfig.StrikeLooking, PitchName: "fastball"}

	var eliteSpread, poorSpread float64
	const trials = 200
	for i := int64(0); i < trials; i++ {
		et := BuildTarget(elite, intent, cal, 0, 0, pitchrng.New(i, "cmd"))
		pt := BuildTarget(poor, intent, cal, 0, 0, pitchrng.New(i, "cmd"))
		eliteSpread += abs(et.HorizontalIn)
		poorSpread += abs(pt.HorizontalIn)
	}

	if eliteSpread >= poorSpread {
		t.Errorf("elite control should produce tighter average dispersion than poor control: elite=%.2f poor=%.2f", eliteSpread, poorSpread)
	}
}

func TestBuildTargetCarriesArsenalPitchCharacteristics(t *testing.T) {
	p := testPitcher()
	cal := simconfig.Default().Calibration
	intent := Intent{Intention: simconfig.StrikeLooking, PitchName: "slider"}

	target := BuildTarget(p, intent, cal, 0, 0, pitchrng.New(4, "cmd"))
	want := p.PitchByName("slider")
	if target.SpeedMPH != want.MeanReleaseMPH {
		t.Errorf("BuildTarget SpeedMPH = %.1f, want %.1f", target.SpeedMPH, want.MeanReleaseMPH)
	}
	if target.SpinRPM != want.MeanSpinRPM {
		t.Errorf("BuildTarget SpinRPM = %.1f, want %.1f", target.SpinRPM, want.MeanSpinRPM)
	}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
