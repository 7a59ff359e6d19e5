// Package equity holds the pluggable scoring policies the solver uses to
// rank competing meld candidates.
package equity

import (
	"github.com/joerivera/rummage/meld"
)

// MeldScorer ranks a candidate meld. Higher is better. The solver sorts
// candidates by score descending before committing them greedily, so the
// scorer is the strategy knob for which melds get played first.
type MeldScorer interface {
	ScoreMeld(m meld.Meld) int
}
