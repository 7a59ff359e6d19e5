package tiles

import (
	"testing"

	"github.com/matryer/is"
)

func TestBagDistribution(t *testing.T) {
	is := is.New(t)
	b := NewBag()
	is.Equal(b.TilesRemaining(), BagSize)

	counts := map[string]int{}
	jokers := 0
	for {
		tl, ok := b.Draw()
		if !ok {
			break
		}
		if tl.IsJoker() {
			jokers++
			continue
		}
		counts[tl.String()]++
	}
	is.Equal(jokers, NumJokers)
	is.Equal(len(counts), NumColors*(MaxRank-MinRank+1))
	for _, n := range counts {
		is.Equal(n, CopiesPerTile)
	}
}

func TestDrawNStopsAtEmpty(t *testing.T) {
	is := is.New(t)
	b := NewBag()
	hand := b.DrawN(14)
	is.Equal(len(hand), 14)
	is.Equal(b.TilesRemaining(), BagSize-14)

	rest := b.DrawN(BagSize)
	is.Equal(len(rest), BagSize-14)
	_, ok := b.Draw()
	is.True(!ok)
}
