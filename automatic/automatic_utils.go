package automatic

import (
	"context"
	"sync/atomic"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/joerivera/rummage/config"
)

// CompVsComp plays numGames solver-vs-solver games across the configured
// number of workers and returns per-player win counts. Each worker owns
// its runner; nothing is shared between in-flight games.
func CompVsComp(ctx context.Context, cfg *config.Config, numGames int, logchan chan string) (map[string]int, error) {
	workers := cfg.GetInt("selfplay-workers")
	if workers < 1 {
		workers = 1
	}

	var p1Wins, p2Wins, draws int64
	var next int64 = -1

	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			runner, err := NewGameRunner(logchan, cfg)
			if err != nil {
				return err
			}
			for {
				idx := int(atomic.AddInt64(&next, 1))
				if idx >= numGames {
					return nil
				}
				winner, err := runner.PlayGame(ctx, idx)
				if err != nil {
					return err
				}
				switch winner {
				case "p1":
					atomic.AddInt64(&p1Wins, 1)
				case "p2":
					atomic.AddInt64(&p2Wins, 1)
				default:
					atomic.AddInt64(&draws, 1)
				}
			}
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	results := map[string]int{
		"p1": int(p1Wins), "p2": int(p2Wins), "draw": int(draws),
	}
	log.Info().Int("games", numGames).Interface("results", results).
		Msg("self-play finished")
	return results, nil
}
