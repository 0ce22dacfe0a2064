// Package simconfig holds the structured, file-loadable configuration for
// every calibration constant the simulation core exposes: pitch arsenal
// defaults, park geometry, command-noise sigmas, foul/whiff rates, and the
// per-count pitcher intention tables. None of these are compiled-in
// literals inside the decision packages — they all flow from here so
// calibration can change without a rebuild.
package simconfig

import (
	"fmt"

	"github.com/spf13/viper"
)

// Intention is one of the five pitch-intention categories a pitcher can
// select for a given pitch (spec.md Data Model, "Pitch Intention").
type Intention string

const (
	StrikeLooking     Intention = "strike_looking"
	StrikeCompetitive Intention = "strike_competitive"
	StrikeCorner      Intention = "strike_corner"
	WasteChase        Intention = "waste_chase"
	BallIntentional   Intention = "ball_intentional"
)

// IntentionProbs is a probability distribution over the five intentions.
// It need not sum to exactly 1.0 on input; Normalize enforces that.
type IntentionProbs struct {
	StrikeLooking     float64 `mapstructure:"strike_looking" json:"strike_looking"`
	StrikeCompetitive float64 `mapstructure:"strike_competitive" json:"strike_competitive"`
	StrikeCorner      float64 `mapstructure:"strike_corner" json:"strike_corner"`
	WasteChase        float64 `mapstructure:"waste_chase" json:"waste_chase"`
	BallIntentional   float64 `mapstructure:"ball_intentional" json:"ball_intentional"`
}

// Normalize scales the five probabilities to sum to 1.0. If all are zero it
// falls back to an even split so callers never divide by zero.
func (p IntentionProbs) Normalize() IntentionProbs {
	sum := p.StrikeLooking + p.StrikeCompetitive + p.StrikeCorner + p.WasteChase + p.BallIntentional
	if sum <= 0 {
		return IntentionProbs{0.2, 0.2, 0.2, 0.2, 0.2}
	}
	return IntentionProbs{
		StrikeLooking:     p.StrikeLooking / sum,
		StrikeCompetitive: p.StrikeCompetitive / sum,
		StrikeCorner:      p.StrikeCorner / sum,
		WasteChase:        p.WasteChase / sum,
		BallIntentional:   p.BallIntentional / sum,
	}
}

// CountKey formats a (balls, strikes) count as "B-S", matching the
// notation in spec.md's intention table ("0-0", "3-0", "0-2").
func CountKey(balls, strikes int) string { return fmt.Sprintf("%d-%d", balls, strikes) }

// PitcherControlConfig holds the count-dependent intention tables.
type PitcherControlConfig struct {
	// ByCount maps a CountKey to the probabilities used in that count. The
	// same tables apply to every pitcher: intention selection does not
	// depend on ControlZoneBias. Missing counts fall back to Default.
	ByCount map[string]IntentionProbs `mapstructure:"by_count"`
	Default IntentionProbs            `mapstructure:"default"`
}

// ForCount returns the configured distribution for (balls, strikes),
// falling back to Default when the exact count isn't tabulated.
func (c PitcherControlConfig) ForCount(balls, strikes int) IntentionProbs {
	if p, ok := c.ByCount[CountKey(balls, strikes)]; ok {
		return p.Normalize()
	}
	return c.Default.Normalize()
}

// ArsenalPitch describes one pitch type in a pitcher's repertoire.
type ArsenalPitch struct {
	Name              string  `mapstructure:"name" json:"name"`
	MeanReleaseMPH    float64 `mapstructure:"mean_release_mph" json:"mean_release_mph"`
	MeanSpinRPM       float64 `mapstructure:"mean_spin_rpm" json:"mean_spin_rpm"`
	SpinAxisTiltDeg   float64 `mapstructure:"spin_axis_tilt_deg" json:"spin_axis_tilt_deg"`
	SpinAxisGyroDeg   float64 `mapstructure:"spin_axis_gyro_deg" json:"spin_axis_gyro_deg"`
	BaseWhiffRate     float64 `mapstructure:"base_whiff_rate" json:"base_whiff_rate"`
	TunnelSwingFactor float64 `mapstructure:"tunnel_swing_factor" json:"tunnel_swing_factor"`
}

// FencePoint is one surveyed distance/height sample of the outfield wall.
type FencePoint struct {
	SprayAngleDeg float64 `mapstructure:"spray_angle_deg" json:"spray_angle_deg"`
	DistanceFt    float64 `mapstructure:"distance_ft" json:"distance_ft"`
	HeightFt      float64 `mapstructure:"height_ft" json:"height_ft"`
}

// ParkGeometry is the 5-degree surveyed fence table for one ballpark.
type ParkGeometry struct {
	Name   string       `mapstructure:"name" json:"name"`
	Fences []FencePoint `mapstructure:"fences" json:"fences"`
}

// Calibration holds every numeric tuning knob spec.md requires to be
// exposed through a single configuration record (spec.md §4.8, §6).
type Calibration struct {
	DtNormal float64 `mapstructure:"dt_normal" json:"dt_normal"`
	DtFast   float64 `mapstructure:"dt_fast" json:"dt_fast"`
	DtUltra  float64 `mapstructure:"dt_ultra" json:"dt_ultra"`

	CommandSigmaInchesElite   float64 `mapstructure:"command_sigma_inches_elite" json:"command_sigma_inches_elite"`
	CommandSigmaInchesAverage float64 `mapstructure:"command_sigma_inches_average" json:"command_sigma_inches_average"`
	CommandSigmaInchesPoor    float64 `mapstructure:"command_sigma_inches_poor" json:"command_sigma_inches_poor"`

	WeakContactFoulProb float64 `mapstructure:"weak_contact_foul_prob" json:"weak_contact_foul_prob"`

	TwoStrikeProtectionFoulSolid float64 `mapstructure:"two_strike_protection_foul_solid" json:"two_strike_protection_foul_solid"`
	TwoStrikeProtectionFoulFair  float64 `mapstructure:"two_strike_protection_foul_fair" json:"two_strike_protection_foul_fair"`
	TwoStrikeProtectionFoulWeak  float64 `mapstructure:"two_strike_protection_foul_weak" json:"two_strike_protection_foul_weak"`

	DisciplineMultiplier float64 `mapstructure:"discipline_multiplier" json:"discipline_multiplier"`
	TwoStrikeWhiffBonus  float64 `mapstructure:"two_strike_whiff_bonus" json:"two_strike_whiff_bonus"`

	UseLookupTable bool `mapstructure:"use_lookup_table" json:"use_lookup_table"`

	CollisionEfficiencyWood float64    `mapstructure:"collision_efficiency_wood" json:"collision_efficiency_wood"`
	SpraySigmaDeg           float64    `mapstructure:"spray_sigma_deg" json:"spray_sigma_deg"`
	AttackAngleRangeDeg     [2]float64 `mapstructure:"attack_angle_range_deg" json:"attack_angle_range_deg"`

	MaxPitchesPerAtBat int `mapstructure:"max_pitches_per_at_bat" json:"max_pitches_per_at_bat"`
}

// Config is the full, structured configuration for a simulation run.
type Config struct {
	Calibration     Calibration            `mapstructure:"calibration"`
	PitcherControl  PitcherControlConfig   `mapstructure:"pitcher_control"`
	Arsenal         []ArsenalPitch         `mapstructure:"arsenal"`
	Park            ParkGeometry           `mapstructure:"park"`
	// PitchEngineIter and ByParkOverrides are decoded from the file but
	// nothing reads them: pitchengine.Solve always uses its own fixed
	// budget of 5 targeting iterations, and the park always comes from Park.
	PitchEngineIter int                    `mapstructure:"pitch_engine_max_iterations"`
	ByParkOverrides map[string]ParkGeometry `mapstructure:"park_overrides"`
}

// Load reads a structured config file (JSON, YAML, or TOML, detected from
// the extension) and merges it over Default(). A malformed file fails at
// startup, per spec.md §7 ("Input errors... fail at startup, never
// mid-game"); it never returns a partially applied config.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("simconfig: reading %s: %w", path, err)
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("simconfig: decoding %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("simconfig: %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects configuration that would make the engine misbehave
// silently (e.g. zero time step). Called at startup only.
func (c Config) Validate() error {
	if c.Calibration.DtNormal <= 0 || c.Calibration.DtFast <= 0 || c.Calibration.DtUltra <= 0 {
		return fmt.Errorf("integrator time steps must be positive")
	}
	if c.Calibration.MaxPitchesPerAtBat <= 0 {
		return fmt.Errorf("max_pitches_per_at_bat must be positive")
	}
	if len(c.Park.Fences) < 2 {
		return fmt.Errorf("park fence table needs at least two points")
	}
	if len(c.Arsenal) == 0 {
		return fmt.Errorf("arsenal must declare at least one pitch type")
	}
	return nil
}

// CommandSigmaInches returns the location-noise sigma for a named control
// tier ("elite", "average", "poor"), defaulting to average for unknown
// tiers.
func (c Calibration) CommandSigmaInches(tier string) float64 {
	switch tier {
	case "elite":
		return c.CommandSigmaInchesElite
	case "poor":
		return c.CommandSigmaInchesPoor
	default:
		return c.CommandSigmaInchesAverage
	}
}

// TwoStrikeProtectionFoul returns the extra foul probability for a
// two-strike "protection" foul by contact quality.
func (c Calibration) TwoStrikeProtectionFoul(quality string) float64 {
	switch quality {
	case "solid":
		return c.TwoStrikeProtectionFoulSolid
	case "fair":
		return c.TwoStrikeProtectionFoulFair
	default:
		return c.TwoStrikeProtectionFoulWeak
	}
}
