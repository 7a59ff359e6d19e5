package equity

import (
	"github.com/joerivera/rummage/meld"
)

const (
	defaultHighRank  = 10
	defaultHighBonus = 15
)

// HighTileScorer biases toward shedding high-value tiles: any tile at or
// above HighRank adds Bonus on top of the tile count. Left on the rack at
// game end those tiles cost their face value, so dumping them early is the
// risk-averse play.
type HighTileScorer struct {
	HighRank int
	Bonus    int
}

func NewHighTileScorer() *HighTileScorer {
	return &HighTileScorer{HighRank: defaultHighRank, Bonus: defaultHighBonus}
}

func (s *HighTileScorer) ScoreMeld(m meld.Meld) int {
	score := m.Len()
	for _, t := range m.Tiles() {
		if !t.IsJoker() && t.Rank() >= s.HighRank {
			score += s.Bonus
		}
	}
	return score
}
