package dataloader

import "testing"

func TestFloatStatParsesFloatIntAndString(t *testing.T) {
	stats := statRow{"AVG": 0.275, "SB": 12, "ERA": "3.45"}

	if got := floatStat(stats, "AVG", 0); got != 0.275 {
		t.Errorf("floatStat(AVG) = %v, want 0.275", got)
	}
	if got := floatStat(stats, "SB", 0); got != 12 {
		t.Errorf("floatStat(SB) = %v, want 12", got)
	}
	if got := floatStat(stats, "ERA", 0); got != 3.45 {
		t.Errorf("floatStat(ERA) = %v, want 3.45", got)
	}
}

func TestFloatStatFallsBackWhenMissingOrNil(t *testing.T) {
	if got := floatStat(nil, "AVG", 0.250); got != 0.250 {
		t.Errorf("floatStat(nil) = %v, want fallback 0.250", got)
	}
	stats := statRow{}
	if got := floatStat(stats, "AVG", 0.250); got != 0.250 {
		t.Errorf("floatStat(missing key) = %v, want fallback 0.250", got)
	}
}

func TestPercentileTo2080ClampsToGradeBounds(t *testing.T) {
	if got := percentileTo2080(-100, 0, 40, false); got != 20 {
		t.Errorf("below-range value should clamp to 20, got %d", got)
	}
	if got := percentileTo2080(1000, 0, 40, false); got != 80 {
		t.Errorf("above-range value should clamp to 80, got %d", got)
	}
	if got := percentileTo2080(20, 0, 40, false); got != 50 {
		t.Errorf("midpoint value should map to 50, got %d", got)
	}
}

func TestPercentileTo2080InvertsWhenLowerIsBetter(t *testing.T) {
	low := percentileTo2080(2.0, 2.0, 5.0, true)
	high := percentileTo2080(5.0, 2.0, 5.0, true)
	if low <= high {
		t.Errorf("lowerIsBetter should grade the low end higher: low=%d high=%d", low, high)
	}
}

func TestPercentileTo2080DegenerateRangeReturnsAverage(t *testing.T) {
	if got := percentileTo2080(5, 3, 3, false); got != 50 {
		t.Errorf("a zero-width range should return the average grade, got %d", got)
	}
}

func TestHitterAttributesFromStatsUsesTeacherFallbacks(t *testing.T) {
	attrs := hitterAttributesFromStats(nil)
	if attrs.Accuracy != 50 || attrs.Range != 50 {
		t.Error("hitter attributes with no stat data should default unused ratings to 50")
	}
	if attrs.Power < 20 || attrs.Power > 80 {
		t.Errorf("Power grade out of 20-80 range: %d", attrs.Power)
	}
}

func TestHitterAttributesFromStatsHigherISORaisesPower(t *testing.T) {
	weak := hitterAttributesFromStats(statRow{"ISO": 0.080})
	strong := hitterAttributesFromStats(statRow{"ISO": 0.280})
	if strong.Power <= weak.Power {
		t.Errorf("higher ISO should raise Power grade: weak=%d strong=%d", weak.Power, strong.Power)
	}
}

func TestPitcherAttributesFromStatsLowerERARaisesContact(t *testing.T) {
	good := pitcherAttributesFromStats(statRow{"ERA": 2.50})
	bad := pitcherAttributesFromStats(statRow{"ERA": 5.50})
	if good.Contact <= bad.Contact {
		t.Errorf("lower ERA should raise the Contact-suppression grade: good=%d bad=%d", good.Contact, bad.Contact)
	}
}

func TestControlTierFromWalkRateBuckets(t *testing.T) {
	tests := []struct {
		bbPer9 float64
		want   string
	}{
		{1.8, "elite"},
		{3.0, "average"},
		{4.5, "poor"},
	}
	for _, tt := range tests {
		got := controlTierFromWalkRate(statRow{"BB/9": tt.bbPer9})
		if got != tt.want {
			t.Errorf("controlTierFromWalkRate(%.1f) = %q, want %q", tt.bbPer9, got, tt.want)
		}
	}
}
