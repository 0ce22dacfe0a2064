package game

import (
	"context"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/baseball-sim/pitchsim/internal/ballpark"
	"github.com/baseball-sim/pitchsim/internal/ballphysics"
	"github.com/baseball-sim/pitchsim/internal/debuglog"
	"github.com/baseball-sim/pitchsim/internal/environment"
	"github.com/baseball-sim/pitchsim/internal/simconfig"
	"github.com/baseball-sim/pitchsim/internal/umpire"
)

// BatchRequest configures a batch of independent game simulations sharing
// one matchup, park, and configuration.
type BatchRequest struct {
	GameIDPrefix string
	Home, Away   Team
	Config       simconfig.Config
	Park         *ballpark.Park
	ParkMeta     environment.Park
	Umpire       umpire.Tendencies
	BaseSeed     int64
	Count        int
	Workers      int
	Sink         *debuglog.Sink
}

// RunBatch simulates Count independent games concurrently, bounded to
// Workers goroutines via errgroup.SetLimit — the same fixed-worker-pool
// shape as the teacher's RunSimulation, rebuilt on errgroup instead of a
// manual sync.WaitGroup/channel pair. Each game's results are written to
// its own slot in the returned slice by index, so the output is
// byte-identical no matter how many workers ran it (per spec.md's
// determinism requirement): goroutine completion order never affects
// which slot a result lands in, because each game's random stream is
// derived purely from (BaseSeed, game index), never from scheduling order.
func RunBatch(ctx context.Context, req BatchRequest) ([]Result, error) {
	results := make([]Result, req.Count)

	workers := req.Workers
	if workers <= 0 {
		workers = 1
	}

	aero := ballphysics.DefaultAeroParams()
	if req.Config.Calibration.UseLookupTable {
		aero = aero.WithLookupTable()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := 0; i < req.Count; i++ {
		i := i
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			gameID := idForIndex(req.GameIDPrefix, i)
			results[i] = Simulate(gameID, req.Home, req.Away, req.Config, req.Park, req.ParkMeta, aero, req.Umpire, req.BaseSeed, i, req.Sink)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func idForIndex(prefix string, i int) string {
	if prefix == "" {
		prefix = "game"
	}
	return prefix + "-" + strconv.Itoa(i)
}
