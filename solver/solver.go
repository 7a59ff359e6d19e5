// Package solver finds the best legal move for a rack against a board: a
// replacement meld list that sheds as many rack tiles as possible while
// keeping every meld on the table valid. The default strategy transforms
// the existing board incrementally in four phases; an exhaustive strategy
// re-packs whole tile neighborhoods under a wall-clock budget. Both sit
// behind the same FindBestMove contract.
package solver

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/joerivera/rummage/equity"
	"github.com/joerivera/rummage/game"
	"github.com/joerivera/rummage/meld"
	"github.com/joerivera/rummage/tiles"
)

// Strategy is the pluggable move-finding engine. It receives owned working
// copies of the rack tiles and board melds and may mutate them freely. It
// returns the proposed replacement meld list, or nil when no tile-shedding
// move exists. Returning nil is not an error.
type Strategy interface {
	BestMove(ctx context.Context, rack []tiles.Tile, melds []meld.Meld) ([]meld.Meld, error)
	Name() string
}

// Solver is the single entry point consumed by callers. It clones the
// caller's rack and board before handing them to its strategy, so caller
// state is never touched.
type Solver struct {
	strategy Strategy
}

// Option configures a Solver.
type Option func(*Solver)

// WithStrategy swaps out the move-finding strategy.
func WithStrategy(s Strategy) Option {
	return func(sv *Solver) { sv.strategy = s }
}

// New creates a solver. With no options it runs the incremental strategy
// with the tile-count scorer.
func New(opts ...Option) *Solver {
	sv := &Solver{
		strategy: NewIncrementalStrategy(equity.NewTileCountScorer()),
	}
	for _, opt := range opts {
		opt(sv)
	}
	return sv
}

// FindBestMove computes a replacement meld list for the board that sheds
// at least one rack tile. A nil meld list with a nil error means no move;
// the caller decides whether to draw. The rack and board are read-only
// snapshots: all mutation happens on internal clones.
func (sv *Solver) FindBestMove(ctx context.Context, rack *game.Rack, board *game.Board) ([]meld.Meld, error) {
	workRack := append([]tiles.Tile(nil), rack.Tiles()...)
	workMelds := board.CloneMelds()

	result, err := sv.strategy.BestMove(ctx, workRack, workMelds)
	if err != nil {
		return nil, err
	}
	if result == nil {
		log.Debug().Str("strategy", sv.strategy.Name()).Msg("no move found")
		return nil, nil
	}
	log.Debug().Str("strategy", sv.strategy.Name()).
		Int("melds", len(result)).Msg("move found")
	return result, nil
}
