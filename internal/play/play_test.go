package play

import (
	"testing"

	"github.com/baseball-sim/pitchsim/internal/ballpark"
	"github.com/baseball-sim/pitchsim/internal/ballphysics"
	"github.com/baseball-sim/pitchsim/internal/contact"
	"github.com/baseball-sim/pitchsim/internal/environment"
	"github.com/baseball-sim/pitchsim/internal/pitchrng"
	"github.com/baseball-sim/pitchsim/internal/simconfig"
)

func neutralAero() ballphysics.AeroParams {
	return ballphysics.AeroParams{BallMassSlug: 0.01, BallRadiusFt: 0.121, AirDensitySlugFt3: 0.00237}
}

func neutralPark(t *testing.T) *ballpark.Park {
	t.Helper()
	p, err := ballpark.New(simconfig.DefaultParkGeometry(), 0, "grass")
	if err != nil {
		t.Fatalf("ballpark.New: %v", err)
	}
	return p
}

func TestFlyDeepDriveHasPositiveHangTime(t *testing.T) {
	co := contact.Outcome{ExitVelocityMPH: 108, LaunchAngleDeg: 28, SprayAngleDeg: 0, BackspinRPM: 2000}
	result, err := Fly(co, neutralAero(), environment.Conditions{}, 0.002)
	if err != nil {
		t.Fatalf("Fly returned error: %v", err)
	}
	if result.LandingTime <= 0 {
		t.Error("expected a positive hang time")
	}
}

func TestClassifyHardCenterFlyIsAHomeRun(t *testing.T) {
	park := neutralPark(t)
	co := contact.Outcome{ExitVelocityMPH: 110, LaunchAngleDeg: 28, SprayAngleDeg: 0, BackspinRPM: 2200}

	cl, err := Classify(co, park, neutralAero(), environment.Conditions{}, 0.002, 0, "R", pitchrng.New(1, "play"))
	if err != nil {
		t.Fatalf("Classify returned error: %v", err)
	}
	if cl.Type != HomeRun {
		t.Errorf("expected a HomeRun classification, got %q (distance=%.1fft)", cl.Type, cl.DistanceFt)
	}
}

func TestClassifyWeakGroundBallIsOftenAnOut(t *testing.T) {
	park := neutralPark(t)
	co := contact.Outcome{ExitVelocityMPH: 75, LaunchAngleDeg: -5, SprayAngleDeg: 5, BackspinRPM: 800}

	var outs int
	const trials = 100
	for i := int64(0); i < trials; i++ {
		cl, err := Classify(co, park, neutralAero(), environment.Conditions{}, 0.002, 90, "R", pitchrng.New(i, "play"))
		if err != nil {
			t.Fatalf("Classify returned error: %v", err)
		}
		if cl.Type == Out {
			outs++
		}
	}
	if outs < trials/2 {
		t.Errorf("expected most weak ground balls to be outs, got %d/%d", outs, trials)
	}
}

func TestClassifyFoulBallNeverClearsFence(t *testing.T) {
	park := neutralPark(t)
	co := contact.Outcome{ExitVelocityMPH: 110, LaunchAngleDeg: 28, SprayAngleDeg: 60, BackspinRPM: 2200}

	cl, err := Classify(co, park, neutralAero(), environment.Conditions{}, 0.002, 90, "R", pitchrng.New(2, "play"))
	if err != nil {
		t.Fatalf("Classify returned error: %v", err)
	}
	if cl.Type == HomeRun {
		t.Error("a foul-territory spray angle should never classify as a home run")
	}
}

func TestAdvanceSingleAlwaysScoresRunnerFromThird(t *testing.T) {
	bases := &Bases{Third: &Runner{PlayerID: "r3"}}
	batter := Runner{PlayerID: "batter"}
	runs := Advance(bases, batter, Single, pitchrng.New(1, "advance"))
	if runs < 1 {
		t.Errorf("runner on third should score on a single, got %d runs", runs)
	}
	if bases.Third != nil {
		t.Error("third base should be empty after the runner scores")
	}
	if bases.First == nil || bases.First.PlayerID != "batter" {
		t.Error("batter should occupy first base after a single")
	}
}

func TestAdvanceHomeRunScoresEveryoneOnBase(t *testing.T) {
	bases := &Bases{First: &Runner{PlayerID: "r1"}, Second: &Runner{PlayerID: "r2"}, Third: &Runner{PlayerID: "r3"}}
	batter := Runner{PlayerID: "batter"}
	runs := Advance(bases, batter, HomeRun, pitchrng.New(1, "advance"))
	if runs != 4 {
		t.Errorf("grand slam should score 4 runs, got %d", runs)
	}
	if bases.First != nil || bases.Second != nil || bases.Third != nil {
		t.Error("bases should be empty after a home run")
	}
}

func TestAdvanceTripleClearsAllBasesAndPutsBatterOnThird(t *testing.T) {
	bases := &Bases{First: &Runner{PlayerID: "r1"}, Second: &Runner{PlayerID: "r2"}}
	batter := Runner{PlayerID: "batter"}
	runs := Advance(bases, batter, Triple, pitchrng.New(1, "advance"))
	if runs != 2 {
		t.Errorf("expected both baserunners to score on a triple, got %d", runs)
	}
	if bases.Third == nil || bases.Third.PlayerID != "batter" {
		t.Error("batter should be on third after a triple")
	}
}

func TestAdvanceOutLeavesBasesUnchanged(t *testing.T) {
	bases := &Bases{First: &Runner{PlayerID: "r1"}}
	batter := Runner{PlayerID: "batter"}
	runs := Advance(bases, batter, Out, pitchrng.New(1, "advance"))
	if runs != 0 {
		t.Errorf("an out should never score a run via Advance, got %d", runs)
	}
	if bases.First == nil || bases.First.PlayerID != "r1" {
		t.Error("bases should be unchanged after an out")
	}
}

func TestWalkForcesOnlyWhenBasesLoaded(t *testing.T) {
	bases := &Bases{First: &Runner{PlayerID: "r1"}, Second: &Runner{PlayerID: "r2"}, Third: &Runner{PlayerID: "r3"}}
	batter := Runner{PlayerID: "batter"}
	runs := Walk(bases, batter)
	if runs != 1 {
		t.Errorf("bases-loaded walk should force in 1 run, got %d", runs)
	}
	if bases.First == nil || bases.First.PlayerID != "batter" {
		t.Error("batter should occupy first after a walk")
	}
}

func TestWalkWithFirstBaseOpenDoesNotForceAnyone(t *testing.T) {
	bases := &Bases{Second: &Runner{PlayerID: "r2"}}
	batter := Runner{PlayerID: "batter"}
	runs := Walk(bases, batter)
	if runs != 0 {
		t.Errorf("a walk with first base open should never score a run, got %d", runs)
	}
	if bases.Second == nil || bases.Second.PlayerID != "r2" {
		t.Error("runner on second should not be forced when first base was open")
	}
}
