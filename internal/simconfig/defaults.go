package simconfig

// Default returns the calibration baseline described in spec.md: the
// intention tables of §4.6, the knobs of §6, and a neutral-park fence
// table sampled every 5 degrees from foul line to foul line (§4.3).
func Default() Config {
	return Config{
		Calibration: Calibration{
			DtNormal: 0.001,
			DtFast:   0.002,
			DtUltra:  0.005,

			CommandSigmaInchesElite:   2.7,
			CommandSigmaInchesAverage: 4.3,
			CommandSigmaInchesPoor:    6.3,

			WeakContactFoulProb: 0.35,

			TwoStrikeProtectionFoulSolid: 0.10,
			TwoStrikeProtectionFoulFair:  0.15,
			TwoStrikeProtectionFoulWeak:  0.05,

			DisciplineMultiplier: 0.12,
			TwoStrikeWhiffBonus:  1.1,

			UseLookupTable: false,

			CollisionEfficiencyWood: 0.2,
			SpraySigmaDeg:           27.0,
			AttackAngleRangeDeg:     [2]float64{-5, 25},

			MaxPitchesPerAtBat: 20,
		},
		PitcherControl: PitcherControlConfig{
			ByCount: map[string]IntentionProbs{
				"0-0": {StrikeLooking: 0.60, StrikeCompetitive: 0.20, StrikeCorner: 0.10, WasteChase: 0.05, BallIntentional: 0.05},
				"3-0": {StrikeLooking: 0.80, StrikeCompetitive: 0.15, StrikeCorner: 0.02, WasteChase: 0.01, BallIntentional: 0.02},
				"0-2": {StrikeLooking: 0.10, StrikeCompetitive: 0.20, StrikeCorner: 0.25, WasteChase: 0.30, BallIntentional: 0.15},
				"1-0": {StrikeLooking: 0.55, StrikeCompetitive: 0.25, StrikeCorner: 0.10, WasteChase: 0.05, BallIntentional: 0.05},
				"0-1": {StrikeLooking: 0.45, StrikeCompetitive: 0.25, StrikeCorner: 0.15, WasteChase: 0.10, BallIntentional: 0.05},
				"1-1": {StrikeLooking: 0.45, StrikeCompetitive: 0.25, StrikeCorner: 0.15, WasteChase: 0.10, BallIntentional: 0.05},
				"2-0": {StrikeLooking: 0.70, StrikeCompetitive: 0.20, StrikeCorner: 0.05, WasteChase: 0.02, BallIntentional: 0.03},
				"2-1": {StrikeLooking: 0.50, StrikeCompetitive: 0.25, StrikeCorner: 0.13, WasteChase: 0.08, BallIntentional: 0.04},
				"1-2": {StrikeLooking: 0.20, StrikeCompetitive: 0.25, StrikeCorner: 0.22, WasteChase: 0.23, BallIntentional: 0.10},
				"2-2": {StrikeLooking: 0.25, StrikeCompetitive: 0.25, StrikeCorner: 0.20, WasteChase: 0.20, BallIntentional: 0.10},
				"3-1": {StrikeLooking: 0.65, StrikeCompetitive: 0.20, StrikeCorner: 0.07, WasteChase: 0.03, BallIntentional: 0.05},
				"3-2": {StrikeLooking: 0.45, StrikeCompetitive: 0.27, StrikeCorner: 0.15, WasteChase: 0.08, BallIntentional: 0.05},
			},
			Default: IntentionProbs{StrikeLooking: 0.45, StrikeCompetitive: 0.25, StrikeCorner: 0.15, WasteChase: 0.10, BallIntentional: 0.05},
		},
		Arsenal: []ArsenalPitch{
			{Name: "fastball", MeanReleaseMPH: 93.5, MeanSpinRPM: 2250, SpinAxisTiltDeg: 12.5 * 30, SpinAxisGyroDeg: 0, BaseWhiffRate: 0.18, TunnelSwingFactor: 1.0},
			{Name: "two_seam", MeanReleaseMPH: 92.0, MeanSpinRPM: 2150, SpinAxisTiltDeg: 2 * 30, SpinAxisGyroDeg: 5, BaseWhiffRate: 0.15, TunnelSwingFactor: 1.0},
			{Name: "cutter", MeanReleaseMPH: 89.0, MeanSpinRPM: 2350, SpinAxisTiltDeg: 1 * 30, SpinAxisGyroDeg: 10, BaseWhiffRate: 0.22, TunnelSwingFactor: 1.05},
			{Name: "slider", MeanReleaseMPH: 84.5, MeanSpinRPM: 2450, SpinAxisTiltDeg: 3 * 30, SpinAxisGyroDeg: 20, BaseWhiffRate: 0.34, TunnelSwingFactor: 1.15},
			{Name: "curveball", MeanReleaseMPH: 78.0, MeanSpinRPM: 2600, SpinAxisTiltDeg: 6 * 30, SpinAxisGyroDeg: 15, BaseWhiffRate: 0.32, TunnelSwingFactor: 1.15},
			{Name: "changeup", MeanReleaseMPH: 84.0, MeanSpinRPM: 1750, SpinAxisTiltDeg: 10 * 30, SpinAxisGyroDeg: 5, BaseWhiffRate: 0.30, TunnelSwingFactor: 1.1},
			{Name: "splitter", MeanReleaseMPH: 85.5, MeanSpinRPM: 1250, SpinAxisTiltDeg: 9 * 30, SpinAxisGyroDeg: 5, BaseWhiffRate: 0.36, TunnelSwingFactor: 1.1},
		},
		Park:            DefaultParkGeometry(),
		PitchEngineIter: 5,
	}
}

// DefaultParkGeometry returns a neutral park's fence table, surveyed every
// 5 degrees from the left-field line (-45) to the right-field line (+45),
// with center field at 0: center ~= 400 ft, alleys ~= 375 ft, corners ~= 330 ft.
func DefaultParkGeometry() ParkGeometry {
	return ParkGeometry{
		Name: "neutral",
		Fences: []FencePoint{
			{SprayAngleDeg: -45, DistanceFt: 330, HeightFt: 8},
			{SprayAngleDeg: -40, DistanceFt: 338, HeightFt: 8},
			{SprayAngleDeg: -35, DistanceFt: 348, HeightFt: 8},
			{SprayAngleDeg: -30, DistanceFt: 360, HeightFt: 8},
			{SprayAngleDeg: -25, DistanceFt: 370, HeightFt: 8},
			{SprayAngleDeg: -22.5, DistanceFt: 375, HeightFt: 8},
			{SprayAngleDeg: -20, DistanceFt: 378, HeightFt: 8},
			{SprayAngleDeg: -15, DistanceFt: 385, HeightFt: 8},
			{SprayAngleDeg: -10, DistanceFt: 392, HeightFt: 8},
			{SprayAngleDeg: -5, DistanceFt: 397, HeightFt: 8},
			{SprayAngleDeg: 0, DistanceFt: 400, HeightFt: 8},
			{SprayAngleDeg: 5, DistanceFt: 397, HeightFt: 8},
			{SprayAngleDeg: 10, DistanceFt: 392, HeightFt: 8},
			{SprayAngleDeg: 15, DistanceFt: 385, HeightFt: 8},
			{SprayAngleDeg: 20, DistanceFt: 378, HeightFt: 8},
			{SprayAngleDeg: 22.5, DistanceFt: 375, HeightFt: 8},
			{SprayAngleDeg: 25, DistanceFt: 370, HeightFt: 8},
			{SprayAngleDeg: 30, DistanceFt: 360, HeightFt: 8},
			{SprayAngleDeg: 35, DistanceFt: 348, HeightFt: 8},
			{SprayAngleDeg: 40, DistanceFt: 338, HeightFt: 8},
			{SprayAngleDeg: 45, DistanceFt: 330, HeightFt: 8},
		},
	}
}
