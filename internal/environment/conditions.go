// Package environment derives the per-game atmospheric conditions — air
// density, wind — that feed the aerodynamic force model. It is adapted
// from the teacher's weather service, with the network fetch dropped:
// conditions here are generated deterministically from a per-game RNG
// stream rather than fetched from a forecast API, so a run stays
// reproducible without network access.
package environment

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/baseball-sim/pitchsim/internal/pitchrng"
)

// Park is the subset of park metadata conditions generation needs.
type Park struct {
	Name     string
	RoofType string // "dome", "indoor", "fixed_roof", "closed", "retractable", "outdoor"
	Altitude int     // feet above sea level
}

// IsControlled reports whether the park's roof keeps weather out of play.
// Retractable roofs are modeled as outdoor, matching the teacher's
// judgment call that most games are played with them open.
func (p Park) IsControlled() bool {
	switch p.RoofType {
	case "dome", "indoor", "fixed_roof", "closed":
		return true
	default:
		return false
	}
}

// Conditions are the atmospheric inputs to one game's physics: air density
// for the aerodynamic model, plus a wind vector subtracted from the ball's
// velocity to get its velocity relative to the air.
type Conditions struct {
	TemperatureF   float64
	HumidityPct    float64
	PressureInHg   float64
	WindSpeedFtS   float64
	WindDir        r3.Vec // unit vector in the ball state's horizontal X/Y plane (X toward 1B)
	AirDensitySlugFt3 float64
}

// WindVector returns the wind velocity vector in ft/s (WindDir scaled by
// WindSpeedFtS), the term Integrate's ForceFunc subtracts from ball
// velocity to get velocity relative to the air.
func (c Conditions) WindVector() r3.Vec {
	return r3.Scale(c.WindSpeedFtS, c.WindDir)
}

const seaLevelDensitySlugFt3 = 0.0023769

// ForGame derives deterministic conditions for one game at a park, seeded
// from the game's own RNG stream so repeated runs with the same seed
// reproduce identical weather. Domed parks always return controlled
// conditions with no wind, matching the teacher's dome handling.
func ForGame(park Park, rng *pitchrng.Stream) Conditions {
	if park.IsControlled() {
		return Conditions{
			TemperatureF:      72,
			HumidityPct:       50,
			PressureInHg:      29.92,
			WindSpeedFtS:      0,
			WindDir:           r3.Vec{},
			AirDensitySlugFt3: seaLevelDensitySlugFt3,
		}
	}

	weather := rng.Sub("weather")

	temp := 55 + weather.Float64()*30 // roughly 55-85F outdoor game-day range
	humidity := 30 + weather.Float64()*50
	pressure := 29.92 - float64(park.Altitude)/1000.0

	windSpeedMph := weather.NormFloat64()*4 + 6 // mean 6 mph, sd 4, clamped below
	if windSpeedMph < 0 {
		windSpeedMph = 0
	}
	windSpeedFtS := windSpeedMph * 5280.0 / 3600.0

	angle := weather.Float64() * 2 * math.Pi
	windDir := r3.Vec{X: math.Cos(angle), Y: math.Sin(angle)}

	return Conditions{
		TemperatureF:      temp,
		HumidityPct:       humidity,
		PressureInHg:      pressure,
		WindSpeedFtS:      windSpeedFtS,
		WindDir:           windDir,
		AirDensitySlugFt3: airDensity(temp, pressure, humidity, park.Altitude),
	}
}

// airDensity approximates air density from temperature, station pressure
// and humidity, scaling the sea-level constant the aerodynamic model
// otherwise assumes. Humid, hot, high-altitude air is less dense, which
// thins drag and modestly extends fly-ball carry.
func airDensity(tempF, pressureInHg, humidityPct float64, altitudeFt int) float64 {
	pressureRatio := pressureInHg / 29.92
	tempRatio := (459.67 + 59.0) / (459.67 + tempF) // relative to 59F standard
	humidityFactor := 1.0 - 0.0002*humidityPct       // humid air is slightly less dense
	density := seaLevelDensitySlugFt3 * pressureRatio * tempRatio * humidityFactor
	if altitudeFt > 0 {
		density *= math.Exp(-float64(altitudeFt) / 30000.0)
	}
	return density
}
