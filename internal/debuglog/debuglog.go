// Package debuglog collects opt-in, per-pitch diagnostic records and
// writes them as JSON lines. It is deliberately built on encoding/json
// and a plain io.Writer rather than the charmbracelet structured logger
// used elsewhere: this is a bulk data-dump sink consumed by offline
// analysis tooling, not an operational log line, and it sits off the
// simulation's hot path (only active when a run opts in).
package debuglog

import (
	"encoding/json"
	"io"
	"sync"

	"github.com/baseball-sim/pitchsim/internal/atbat"
)

// PitchEvent is one pitch's diagnostic record, flattened for JSON-lines
// output.
type PitchEvent struct {
	GameID      string  `json:"game_id"`
	AtBatIndex  int     `json:"at_bat_index"`
	PitchIndex  int     `json:"pitch_index"`
	Intention   string  `json:"intention"`
	PitchName   string  `json:"pitch_name"`
	HorizontalIn float64 `json:"horizontal_in"`
	HeightIn     float64 `json:"height_in"`
	SpeedMPH     float64 `json:"speed_mph"`
	CalledStrike bool    `json:"called_strike"`
	Swung        bool    `json:"swung"`
	Whiff        bool    `json:"whiff"`
	Foul         bool    `json:"foul"`
	Degraded     bool    `json:"degraded,omitempty"`
	DegradedReason string `json:"degraded_reason,omitempty"`
}

// Sink writes PitchEvents as newline-delimited JSON. It's safe for
// concurrent use by multiple worker goroutines sharing one underlying
// writer (e.g. one file per run, many games writing into it).
type Sink struct {
	mu  sync.Mutex
	enc *json.Encoder
}

// NewSink wraps w (typically an os.File opened for a run) in a Sink.
// Passing a nil w disables writing — LogAtBat becomes a no-op — so callers can
// construct a Sink unconditionally and only open a real file when
// debug logging is requested.
func NewSink(w io.Writer) *Sink {
	if w == nil {
		return &Sink{}
	}
	return &Sink{enc: json.NewEncoder(w)}
}

// LogAtBat writes one PitchEvent per pitch in an at-bat outcome.
func (s *Sink) LogAtBat(gameID string, atBatIndex int, outcome atbat.Outcome) error {
	if s == nil || s.enc == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range outcome.Pitches {
		ev := PitchEvent{
			GameID:         gameID,
			AtBatIndex:     atBatIndex,
			PitchIndex:     p.Index,
			Intention:      string(p.Intention),
			PitchName:      p.PitchName,
			HorizontalIn:   p.Crossing.HorizontalIn,
			HeightIn:       p.Crossing.HeightIn,
			SpeedMPH:       p.Crossing.SpeedMPH,
			CalledStrike:   p.CalledStrike,
			Swung:          p.Swung,
			Whiff:          p.Whiff,
			Foul:           p.Foul,
			Degraded:       p.Degraded,
			DegradedReason: p.DegradedReason,
		}
		if err := s.enc.Encode(ev); err != nil {
			return err
		}
	}
	return nil
}
