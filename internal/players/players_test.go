package players

import (
	"testing"

	"github.com/baseball-sim/pitchsim/internal/simconfig"
)

func testArsenal(names ...string) []simconfig.ArsenalPitch {
	arsenal := make([]simconfig.ArsenalPitch, len(names))
	for i, n := range names {
		arsenal[i] = simconfig.ArsenalPitch{Name: n}
	}
	return arsenal
}

func TestBatSpeedMPHScalesWithPower(t *testing.T) {
	weak := Hitter{Attributes: Attributes{Power: 20, Contact: 50}}
	strong := Hitter{Attributes: Attributes{Power: 80, Contact: 50}}

	if strong.BatSpeedMPH() <= weak.BatSpeedMPH() {
		t.Errorf("expected higher Power grade to raise bat speed: weak=%.2f strong=%.2f", weak.BatSpeedMPH(), strong.BatSpeedMPH())
	}
}

func TestDisciplineRatingRange(t *testing.T) {
	tests := []struct {
		grade int
		want  float64
	}{
		{20, 0.0},
		{50, 0.5},
		{80, 1.0},
	}
	for _, tt := range tests {
		h := Hitter{Attributes: Attributes{Eye: tt.grade}}
		if got := h.DisciplineRating(); got != tt.want {
			t.Errorf("DisciplineRating() for grade %d = %.3f, want %.3f", tt.grade, got, tt.want)
		}
	}
}

func TestPitchByNameFallsBackToFirstArsenalEntry(t *testing.T) {
	p := Pitcher{Arsenal: testArsenal("fastball", "slider")}
	got := p.PitchByName("nonexistent")
	if got.Name != "fastball" {
		t.Errorf("PitchByName fallback = %q, want %q", got.Name, "fastball")
	}
}

func TestPitchByNameFindsExactMatch(t *testing.T) {
	p := Pitcher{Arsenal: testArsenal("fastball", "slider")}
	got := p.PitchByName("slider")
	if got.Name != "slider" {
		t.Errorf("PitchByName(\"slider\") = %q, want \"slider\"", got.Name)
	}
}

func TestPitchByNameEmptyArsenalReturnsNamedStub(t *testing.T) {
	p := Pitcher{}
	got := p.PitchByName("fastball")
	if got.Name != "fastball" {
		t.Errorf("empty-arsenal fallback should still carry the requested name, got %q", got.Name)
	}
}

func TestControlZoneBiasScalesWithAccuracy(t *testing.T) {
	wild := Pitcher{Attributes: Attributes{Accuracy: 20}}
	precise := Pitcher{Attributes: Attributes{Accuracy: 80}}
	if precise.ControlZoneBias() <= wild.ControlZoneBias() {
		t.Error("expected higher Accuracy grade to raise ControlZoneBias")
	}
}
