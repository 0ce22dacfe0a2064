package umpire

import (
	"testing"

	"github.com/baseball-sim/pitchsim/internal/pitchrng"
)

func TestStrikeProbabilityCenterIsHighestConfidence(t *testing.T) {
	u := DefaultTendencies()
	center := u.StrikeProbability(0, 30, 0, 0)
	edge := u.StrikeProbability(8.4, 30, 0, 0)
	farOutside := u.StrikeProbability(20, 30, 0, 0)

	if center <= edge {
		t.Errorf("dead-center pitch should be called more confidently than a near-edge one: center=%.3f edge=%.3f", center, edge)
	}
	if edge <= farOutside {
		t.Errorf("a near-edge pitch should be called more often than a pitch well outside: edge=%.3f far=%.3f", edge, farOutside)
	}
	if farOutside > 0.1 {
		t.Errorf("a pitch well outside the zone should rarely be called a strike, got %.3f", farOutside)
	}
}

func TestStrikeProbabilityMonotoneDecreasingOutward(t *testing.T) {
	u := DefaultTendencies()
	prev := 1.0
	for _, h := range []float64{0, 2, 4, 6, 8, 10, 12} {
		p := u.StrikeProbability(h, 30, 0, 0)
		if p > prev {
			t.Errorf("strike probability should not increase moving outward: at %.0fin got %.3f after %.3f", h, p, prev)
		}
		prev = p
	}
}

func TestLargerZoneSizeCallsMoreStrikes(t *testing.T) {
	tight := Tendencies{StrikeZoneSize: 90, EdgeTendency: 100, Consistency: 70}
	generous := Tendencies{StrikeZoneSize: 115, EdgeTendency: 100, Consistency: 70}

	const horiz, height = 8.0, 30.0
	if generous.StrikeProbability(horiz, height, 0, 0) <= tight.StrikeProbability(horiz, height, 0, 0) {
		t.Error("a larger strike zone should call a borderline pitch a strike more often")
	}
}

func TestHigherConsistencySharpensTheBoundary(t *testing.T) {
	noisy := Tendencies{StrikeZoneSize: 100, EdgeTendency: 100, Consistency: 20}
	consistent := Tendencies{StrikeZoneSize: 100, EdgeTendency: 100, Consistency: 95}

	// Just inside the edge, a sharper (more consistent) umpire should be
	// closer to certain than a noisier one whose transition band is wider.
	const horiz, height = 8.0, 30.0
	if consistent.StrikeProbability(horiz, height, 0, 0) <= noisy.StrikeProbability(horiz, height, 0, 0) {
		t.Error("higher consistency should sharpen the call near the zone edge")
	}
}

func TestCallIsDeterministicForSameRNG(t *testing.T) {
	u := DefaultTendencies()
	a := u.Call(0, 30, 0, 0, pitchrng.New(5, "call"))
	b := u.Call(0, 30, 0, 0, pitchrng.New(5, "call"))
	if a != b {
		t.Error("Call should be deterministic given the same RNG stream")
	}
}

func TestConsistencyFactorTiers(t *testing.T) {
	tests := []struct {
		consistency float64
		want        float64
	}{
		{90, 1.0},
		{70, 0.95},
		{50, 0.90},
		{10, 0.85},
	}
	for _, tt := range tests {
		if got := consistencyFactor(tt.consistency); got != tt.want {
			t.Errorf("consistencyFactor(%.0f) = %.2f, want %.2f", tt.consistency, got, tt.want)
		}
	}
}
