package solver

import (
	"fmt"
	"time"

	"github.com/joerivera/rummage/equity"
)

// FromOptions builds a solver from the string knobs the config exposes.
// Strategies: "incremental", "exhaustive". Scorers: "tilecount",
// "hightile". The budget only applies to the exhaustive strategy.
func FromOptions(strategy, scorer string, budget time.Duration) (*Solver, error) {
	var sc equity.MeldScorer
	switch scorer {
	case "", "tilecount":
		sc = equity.NewTileCountScorer()
	case "hightile":
		sc = equity.NewHighTileScorer()
	default:
		return nil, fmt.Errorf("unknown scorer %q", scorer)
	}

	switch strategy {
	case "", "incremental":
		return New(WithStrategy(NewIncrementalStrategy(sc))), nil
	case "exhaustive":
		ex := NewExhaustiveStrategy(sc)
		if budget > 0 {
			ex.ComponentBudget = budget
		}
		return New(WithStrategy(ex)), nil
	}
	return nil, fmt.Errorf("unknown strategy %q", strategy)
}
