package tiles

import (
	"lukechampine.com/frand"
)

const (
	// CopiesPerTile is how many physical copies of each numbered tile the
	// bag holds.
	CopiesPerTile = 2
	// NumJokers is the joker count in a full bag.
	NumJokers = 2
	// BagSize is the full tile universe: 4 colors x 13 ranks x 2 copies
	// plus the jokers.
	BagSize = NumColors*(MaxRank-MinRank+1)*CopiesPerTile + NumJokers
)

// Bag is the draw pile. It is shuffled on creation and tiles are drawn off
// the end.
type Bag struct {
	tiles []Tile
}

// NewBag builds and shuffles a full 106-tile bag.
func NewBag() *Bag {
	b := &Bag{tiles: make([]Tile, 0, BagSize)}
	for i := 0; i < NumJokers; i++ {
		b.tiles = append(b.tiles, NewJoker())
	}
	for _, color := range RealColors() {
		for rank := MinRank; rank <= MaxRank; rank++ {
			for i := 0; i < CopiesPerTile; i++ {
				b.tiles = append(b.tiles, MustNew(color, rank))
			}
		}
	}
	b.Shuffle()
	return b
}

// Shuffle reshuffles whatever remains in the bag.
func (b *Bag) Shuffle() {
	frand.Shuffle(len(b.tiles), func(i, j int) {
		b.tiles[i], b.tiles[j] = b.tiles[j], b.tiles[i]
	})
}

// Draw removes one tile. The second return is false once the bag is empty.
func (b *Bag) Draw() (Tile, bool) {
	if len(b.tiles) == 0 {
		return Tile{}, false
	}
	t := b.tiles[len(b.tiles)-1]
	b.tiles = b.tiles[:len(b.tiles)-1]
	return t, true
}

// DrawN draws up to n tiles, stopping quietly if the bag runs out.
func (b *Bag) DrawN(n int) []Tile {
	out := make([]Tile, 0, n)
	for i := 0; i < n; i++ {
		t, ok := b.Draw()
		if !ok {
			break
		}
		out = append(out, t)
	}
	return out
}

// TilesRemaining returns the count of undrawn tiles.
func (b *Bag) TilesRemaining() int {
	return len(b.tiles)
}
