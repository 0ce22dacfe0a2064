// Package dataloader is the narrow external-collaborator boundary between
// the simulation core and Postgres: it loads team rosters and aggregated
// season stats via pgx, and converts raw batting/pitching stat rows into
// the players.Attributes the physics engine consumes. It is adapted from
// the teacher's simulation/helpers.go (loadTeamRoster, loadPlayerStatistics,
// applyBattingStats, applyPitchingStats, setDefaultAttributes), replacing
// the teacher's scouting-default heuristics — which exist only to fill in
// missing flavor-text attributes — with a stat-percentile-to-20-80 scale
// conversion, since here Attributes directly drive physics parameters
// (bat speed, command sigma, discipline) rather than being display-only.
package dataloader

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/baseball-sim/pitchsim/internal/players"
	"github.com/baseball-sim/pitchsim/internal/simconfig"
)

// Store is a thin pgx-backed reader over the roster and season-stat tables.
type Store struct {
	pool *pgxpool.Pool
}

// New wraps an already-connected pool. The caller owns the pool's lifetime.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// rosterRow mirrors one row of the players table, prior to stat attachment.
type rosterRow struct {
	id         string
	name       string
	position   string
	bats       string
	throws     string
}

// LoadTeam loads a team's active roster and current-season aggregates, and
// returns it as a batting lineup plus its starting pitcher (the teacher's
// roster/lineup split, minus bullpen data this model doesn't use).
func (s *Store) LoadTeam(ctx context.Context, teamID string, season int, arsenal []simconfig.ArsenalPitch) (lineup []players.Hitter, starter players.Pitcher, err error) {
	rows, err := s.pool.Query(ctx, `
		SELECT p.id, p.first_name || ' ' || p.last_name, p.position, p.bats, p.throws
		FROM players p
		WHERE p.team_id = $1 AND p.status = 'active'
		ORDER BY p.position, p.last_name
	`, teamID)
	if err != nil {
		return nil, players.Pitcher{}, fmt.Errorf("query roster: %w", err)
	}
	defer rows.Close()

	var roster []rosterRow
	for rows.Next() {
		var r rosterRow
		if err := rows.Scan(&r.id, &r.name, &r.position, &r.bats, &r.throws); err != nil {
			return nil, players.Pitcher{}, fmt.Errorf("scan roster row: %w", err)
		}
		roster = append(roster, r)
	}
	if err := rows.Err(); err != nil {
		return nil, players.Pitcher{}, fmt.Errorf("iterate roster: %w", err)
	}

	ids := make([]string, len(roster))
	for i, r := range roster {
		ids[i] = r.id
	}
	batting, pitching, err := s.loadSeasonStats(ctx, ids, season)
	if err != nil {
		return nil, players.Pitcher{}, fmt.Errorf("load season stats: %w", err)
	}

	for _, r := range roster {
		if r.position == "P" {
			if starter.ID == "" {
				starter = players.Pitcher{
					ID:          r.id,
					Name:        r.name,
					ThrowsHand:  players.Hand(r.throws),
					Attributes:  pitcherAttributesFromStats(pitching[r.id]),
					ControlTier: controlTierFromWalkRate(pitching[r.id]),
					Arsenal:     arsenal,
				}
			}
			continue
		}
		lineup = append(lineup, players.Hitter{
			ID:         r.id,
			Name:       r.name,
			BatsHand:   players.Hand(r.bats),
			Attributes: hitterAttributesFromStats(batting[r.id]),
		})
	}

	if starter.ID == "" {
		return nil, players.Pitcher{}, fmt.Errorf("team %s has no active pitcher on roster", teamID)
	}
	return lineup, starter, nil
}

type statRow map[string]interface{}

// loadSeasonStats loads the aggregated batting and pitching JSON blobs for
// every player ID, exactly as the teacher's loadPlayerStatistics does
// against player_season_aggregates, minus the fielding query this model has
// no use for (no defensive physics in scope).
func (s *Store) loadSeasonStats(ctx context.Context, playerIDs []string, season int) (batting, pitching map[string]statRow, err error) {
	batting = make(map[string]statRow)
	pitching = make(map[string]statRow)
	if len(playerIDs) == 0 {
		return batting, pitching, nil
	}

	if err := s.loadAggregates(ctx, playerIDs, season, "batting", batting); err != nil {
		return nil, nil, fmt.Errorf("load batting aggregates: %w", err)
	}
	if err := s.loadAggregates(ctx, playerIDs, season, "pitching", pitching); err != nil {
		return nil, nil, fmt.Errorf("load pitching aggregates: %w", err)
	}
	return batting, pitching, nil
}

func (s *Store) loadAggregates(ctx context.Context, playerIDs []string, season int, statsType string, into map[string]statRow) error {
	rows, err := s.pool.Query(ctx, `
		SELECT player_id, aggregated_stats
		FROM player_season_aggregates
		WHERE player_id = ANY($1) AND season = $2 AND stats_type = $3
	`, playerIDs, season, statsType)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var playerID string
		var raw []byte
		if err := rows.Scan(&playerID, &raw); err != nil {
			continue
		}
		var stats statRow
		if err := json.Unmarshal(raw, &stats); err != nil {
			continue
		}
		into[playerID] = stats
	}
	return rows.Err()
}

func floatStat(stats statRow, key string, fallback float64) float64 {
	if stats == nil {
		return fallback
	}
	switch v := stats[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case string:
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

// percentileTo2080 clamps a raw stat's position within [lo, hi] and maps it
// onto the 20-80 scouting scale, inverting the direction when lower-is-better
// (e.g. ERA, K%) is true.
func percentileTo2080(value, lo, hi float64, lowerIsBetter bool) int {
	if hi == lo {
		return 50
	}
	frac := (value - lo) / (hi - lo)
	if lowerIsBetter {
		frac = 1 - frac
	}
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	return 20 + int(frac*60.0)
}

// hitterAttributesFromStats converts a batting aggregate row into 20-80
// attributes, league-average defaults matching the teacher's applyBattingStats
// fallback constants when a field is absent.
func hitterAttributesFromStats(stats statRow) players.Attributes {
	avg := floatStat(stats, "AVG", 0.250)
	iso := floatStat(stats, "ISO", 0.150)
	bbPct := floatStat(stats, "BB%", 8.5)
	kPct := floatStat(stats, "K%", 22.0)
	sb := floatStat(stats, "SB", 5)

	return players.Attributes{
		Speed:       percentileTo2080(sb, 0, 40, false),
		Power:       percentileTo2080(iso, 0.080, 0.280, false),
		Contact:     percentileTo2080(kPct, 10, 32, true),
		Eye:         percentileTo2080(bbPct, 4, 16, false),
		ArmStrength: percentileTo2080(avg, 0.220, 0.300, false), // no throwing data for hitters; approximate from overall offensive quality
		Accuracy:    50,
		Range:       50,
		Hands:       50,
		Clutch:      50,
		Durability:  50,
		Composure:   50,
	}
}

// pitcherAttributesFromStats converts a pitching aggregate row into 20-80
// attributes that drive command and pitch selection.
func pitcherAttributesFromStats(stats statRow) players.Attributes {
	era := floatStat(stats, "ERA", 4.50)
	kPer9 := floatStat(stats, "K/9", 8.5)
	bbPer9 := floatStat(stats, "BB/9", 3.2)

	return players.Attributes{
		Speed:       50,
		Power:       percentileTo2080(kPer9, 6.0, 12.0, false),
		Contact:     percentileTo2080(era, 2.50, 5.50, true),
		Eye:         50,
		ArmStrength: percentileTo2080(kPer9, 6.0, 12.0, false),
		Accuracy:    percentileTo2080(bbPer9, 1.5, 5.0, true),
		Range:       50,
		Hands:       50,
		Clutch:      50,
		Durability:  50,
		Composure:   50,
	}
}

// controlTierFromWalkRate buckets a pitcher's command into the three tiers
// simconfig.Calibration.CommandSigmaInches* keys off, using the same BB/9
// breakpoints the teacher's ERA+-style tiering implies.
func controlTierFromWalkRate(stats statRow) string {
	bbPer9 := floatStat(stats, "BB/9", 3.2)
	switch {
	case bbPer9 < 2.3:
		return "elite"
	case bbPer9 > 3.8:
		return "poor"
	default:
		return "average"
	}
}
