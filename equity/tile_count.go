package equity

import (
	"github.com/joerivera/rummage/meld"
)

// TileCountScorer is the baseline policy: a meld is worth the number of
// tiles it plays.
type TileCountScorer struct{}

func NewTileCountScorer() *TileCountScorer {
	return &TileCountScorer{}
}

func (s *TileCountScorer) ScoreMeld(m meld.Meld) int {
	return m.Len()
}
