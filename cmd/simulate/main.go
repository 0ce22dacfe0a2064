// Command simulate is a CLI batch runner over internal/game: it builds two
// league-average teams (or loads real rosters with --db-url/--home/--away),
// runs a batch of games, and prints the calibration-rate summary from
// spec.md §8. Grounded in stormlightlabs-baseball's cobra+viper+lipgloss
// command stack (cmd/cmd.go, cli/cli.go, internal/echo).
package main

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/baseball-sim/pitchsim/internal/ballpark"
	"github.com/baseball-sim/pitchsim/internal/cliui"
	"github.com/baseball-sim/pitchsim/internal/dataloader"
	"github.com/baseball-sim/pitchsim/internal/environment"
	"github.com/baseball-sim/pitchsim/internal/game"
	"github.com/baseball-sim/pitchsim/internal/players"
	"github.com/baseball-sim/pitchsim/internal/simconfig"
	"github.com/baseball-sim/pitchsim/internal/umpire"
)

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Baseball physics simulation batch runner",
		Long:  cliui.Header("Baseball Physics Simulator") + "\n\nRuns batches of physics-driven games and reports calibration rates.",
	}
	cmd.AddCommand(runCmd())
	return cmd
}

func runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a batch of simulated games",
		RunE:  runBatch,
	}
	cmd.Flags().Int64("seed", 1, "base RNG seed; every game derives its own stream from (seed, game index)")
	cmd.Flags().Int("games", 100, "number of games to simulate")
	cmd.Flags().Int("workers", 0, "worker pool size (default: number of CPUs)")
	cmd.Flags().String("config", "", "path to a calibration config file (JSON/YAML/TOML); omit for built-in defaults")
	cmd.Flags().String("db-url", "", "Postgres connection string; when set, --home/--away are loaded as real rosters")
	cmd.Flags().String("home", "", "home team ID (requires --db-url)")
	cmd.Flags().String("away", "", "away team ID (requires --db-url)")
	cmd.Flags().Int("season", 0, "season to load stats for (default: current year)")
	viper.BindPFlags(cmd.Flags())
	return cmd
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := simconfig.Load(viper.GetString("config"))
	if err != nil {
		return fmt.Errorf("loading calibration: %w", err)
	}

	park, err := ballpark.New(cfg.Park, 0, "grass")
	if err != nil {
		return fmt.Errorf("building park: %w", err)
	}
	parkMeta := environment.Park{Name: cfg.Park.Name, RoofType: "open", Altitude: 0}

	home, away, err := loadTeams(ctx, cfg)
	if err != nil {
		return err
	}

	workers := viper.GetInt("workers")
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	req := game.BatchRequest{
		GameIDPrefix: "sim",
		Home:         home,
		Away:         away,
		Config:       cfg,
		Park:         park,
		ParkMeta:     parkMeta,
		Umpire:       umpire.DefaultTendencies(),
		BaseSeed:     viper.GetInt64("seed"),
		Count:        viper.GetInt("games"),
		Workers:      workers,
	}

	results, err := game.RunBatch(ctx, req)
	if err != nil {
		fmt.Println(cliui.Error(err.Error()))
		return err
	}

	printSummary(results)
	return nil
}

func loadTeams(ctx context.Context, cfg simconfig.Config) (home, away game.Team, err error) {
	dbURL := viper.GetString("db-url")
	if dbURL == "" {
		return syntheticTeam("Home", cfg.Arsenal), syntheticTeam("Away", cfg.Arsenal), nil
	}

	homeID, awayID := viper.GetString("home"), viper.GetString("away")
	if homeID == "" || awayID == "" {
		return game.Team{}, game.Team{}, fmt.Errorf("--home and --away are required with --db-url")
	}

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		return game.Team{}, game.Team{}, fmt.Errorf("connecting to database: %w", err)
	}
	defer pool.Close()

	loader := dataloader.New(pool)
	season := viper.GetInt("season")

	homeLineup, homePitcher, err := loader.LoadTeam(ctx, homeID, season, cfg.Arsenal)
	if err != nil {
		return game.Team{}, game.Team{}, fmt.Errorf("loading home team: %w", err)
	}
	awayLineup, awayPitcher, err := loader.LoadTeam(ctx, awayID, season, cfg.Arsenal)
	if err != nil {
		return game.Team{}, game.Team{}, fmt.Errorf("loading away team: %w", err)
	}

	return game.Team{Name: homeID, Pitcher: homePitcher, Lineup: homeLineup},
		game.Team{Name: awayID, Pitcher: awayPitcher, Lineup: awayLineup}, nil
}

// syntheticTeam builds a league-average nine-hitter lineup and starter, for
// runs that aren't backed by a roster database.
func syntheticTeam(name string, arsenal []simconfig.ArsenalPitch) game.Team {
	avg := players.Attributes{Speed: 50, Power: 50, Contact: 50, Eye: 50, Vision: 50, ArmStrength: 50, Accuracy: 50, Range: 50, Hands: 50, Clutch: 50, Durability: 50, Composure: 50}

	lineup := make([]players.Hitter, 9)
	for i := range lineup {
		lineup[i] = players.Hitter{
			ID:         fmt.Sprintf("%s-h%d", name, i+1),
			Name:       fmt.Sprintf("%s Hitter %d", name, i+1),
			BatsHand:   players.Right,
			Attributes: avg,
		}
	}

	return game.Team{
		Name:   name,
		Lineup: lineup,
		Pitcher: players.Pitcher{
			ID:          name + "-p1",
			Name:        name + " Starter",
			ThrowsHand:  players.Right,
			Attributes:  avg,
			ControlTier: "average",
			Arsenal:     arsenal,
		},
	}
}

// printSummary reports aggregate batch results, including the K%/BB%/HBP%/HR%
// league-calibration rates spec.md §8 defines as soft regression bounds.
func printSummary(results []game.Result) {
	n := len(results)
	fmt.Println(cliui.Header("Batch Summary"))
	fmt.Println(cliui.Row("games", n))
	if n == 0 {
		return
	}

	var homeWins, homeRuns, awayRuns, pitches int
	var pa, strikeouts, walks, hbp, hrCount int
	for _, r := range results {
		if r.Winner == "home" {
			homeWins++
		}
		homeRuns += r.HomeScore
		awayRuns += r.AwayScore
		pitches += r.TotalPitches
		pa += r.PlateAppearances
		strikeouts += r.Strikeouts
		walks += r.Walks
		hbp += r.HitByPitches
		hrCount += r.HomeRuns
	}

	fmt.Println(cliui.Row("home win rate", fmt.Sprintf("%.3f", float64(homeWins)/float64(n))))
	fmt.Println(cliui.Row("avg home runs/game", fmt.Sprintf("%.2f", float64(homeRuns)/float64(n))))
	fmt.Println(cliui.Row("avg away runs/game", fmt.Sprintf("%.2f", float64(awayRuns)/float64(n))))
	fmt.Println(cliui.Row("avg pitches/game", fmt.Sprintf("%.1f", float64(pitches)/float64(n))))

	if pa > 0 {
		fmt.Println(cliui.Row("K%", fmt.Sprintf("%.1f%%", 100*float64(strikeouts)/float64(pa))))
		fmt.Println(cliui.Row("BB%", fmt.Sprintf("%.1f%%", 100*float64(walks)/float64(pa))))
		fmt.Println(cliui.Row("HBP%", fmt.Sprintf("%.1f%%", 100*float64(hbp)/float64(pa))))
		fmt.Println(cliui.Row("HR%", fmt.Sprintf("%.1f%%", 100*float64(hrCount)/float64(pa))))
	}
}

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, cliui.Error(err.Error()))
		os.Exit(1)
	}
}
