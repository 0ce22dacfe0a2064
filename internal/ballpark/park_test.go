package ballpark

import (
	"math"
	"testing"

	"github.com/baseball-sim/pitchsim/internal/simconfig"
)

func testGeometry() simconfig.ParkGeometry {
	return simconfig.ParkGeometry{
		Name: "test-park",
		Fences: []simconfig.FencePoint{
			{SprayAngleDeg: -45, DistanceFt: 330, HeightFt: 8},
			{SprayAngleDeg: 0, DistanceFt: 400, HeightFt: 8},
			{SprayAngleDeg: 45, DistanceFt: 330, HeightFt: 8},
		},
	}
}

func TestNewRejectsFewerThanTwoFences(t *testing.T) {
	_, err := New(simconfig.ParkGeometry{Name: "too-short", Fences: []simconfig.FencePoint{{SprayAngleDeg: 0, DistanceFt: 400, HeightFt: 8}}}, 0, "grass")
	if err == nil {
		t.Error("expected an error for a park with fewer than two fence points")
	}
}

func TestFenceAtInterpolatesAndClamps(t *testing.T) {
	park, err := New(testGeometry(), 0, "grass")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	tests := []struct {
		name   string
		angle  float64
		wantFt float64
	}{
		{"center field matches survey", 0, 400},
		{"left field line matches survey", -45, 330},
		{"beyond the line clamps", -90, 330},
		{"midway interpolates", -22.5, 365},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dist, _ := park.FenceAt(tt.angle)
			if math.Abs(dist-tt.wantFt) > 0.5 {
				t.Errorf("FenceAt(%.1f) = %.2f, want ~%.2f", tt.angle, dist, tt.wantFt)
			}
		})
	}
}

func TestIsFoul(t *testing.T) {
	tests := []struct {
		angle float64
		foul  bool
	}{
		{0, false},
		{44.9, false},
		{45.1, true},
		{-46, true},
	}
	for _, tt := range tests {
		if got := IsFoul(tt.angle); got != tt.foul {
			t.Errorf("IsFoul(%.1f) = %v, want %v", tt.angle, got, tt.foul)
		}
	}
}

func TestFactorsMultiplierHandednessSplit(t *testing.T) {
	f := Factors{LHBHRFactor: 120, RHBHRFactor: 90, HRFactor: 100}
	if got := f.Multiplier("home_run", "L"); math.Abs(got-1.2) > 1e-9 {
		t.Errorf("LHB HR multiplier = %.3f, want 1.2", got)
	}
	if got := f.Multiplier("home_run", "R"); math.Abs(got-0.9) > 1e-9 {
		t.Errorf("RHB HR multiplier = %.3f, want 0.9", got)
	}
}

func TestNeutralFactorsAreAllOne(t *testing.T) {
	f := NeutralFactors()
	for _, outcome := range []string{"home_run", "double", "triple", "single", "walk", "strikeout", "unknown"} {
		if got := f.Multiplier(outcome, "R"); math.Abs(got-1.0) > 1e-9 {
			t.Errorf("neutral factors multiplier for %q = %.3f, want 1.0", outcome, got)
		}
	}
}

func TestAltitudeCarryBoost(t *testing.T) {
	if got := AltitudeCarryBoost(500); got != 1.0 {
		t.Errorf("below 1000ft should have no boost, got %.3f", got)
	}
	if got := AltitudeCarryBoost(5280); math.Abs(got-1.0857) > 0.001 {
		t.Errorf("Coors-altitude boost = %.4f, want ~1.0857", got)
	}
	if got := AltitudeCarryBoost(50000); got != 1.20 {
		t.Errorf("boost should cap at 1.20, got %.3f", got)
	}
}

func TestSurfaceEffect(t *testing.T) {
	if got := SurfaceEffect("turf", "single"); math.Abs(got-1.03) > 1e-9 {
		t.Errorf("turf single effect = %.3f, want 1.03", got)
	}
	if got := SurfaceEffect("grass", "single"); got != 1.0 {
		t.Errorf("grass should have no surface effect, got %.3f", got)
	}
	if got := SurfaceEffect("turf", "strikeout"); got != 1.0 {
		t.Errorf("turf should not affect strikeouts, got %.3f", got)
	}
}
