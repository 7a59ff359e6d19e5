// Package game holds the table state for a tile-rummy game: the board of
// melds, each player's rack, and the turn sequence that ties them to the
// bag.
package game

import (
	"fmt"
	"strings"

	"github.com/joerivera/rummage/meld"
	"github.com/joerivera/rummage/tiles"
)

// Board is the shared table: an ordered collection of melds. Between turns
// every meld must be valid; only a solver's private working copy may pass
// through invalid intermediate states.
type Board struct {
	melds []meld.Meld
}

func NewBoard() *Board {
	return &Board{}
}

// Melds returns the board's melds. Callers must not modify the slice.
func (b *Board) Melds() []meld.Meld { return b.melds }

// AddMeld appends a meld to the board.
func (b *Board) AddMeld(m meld.Meld) {
	b.melds = append(b.melds, m)
}

// AllTiles flattens the board into a single tile list.
func (b *Board) AllTiles() []tiles.Tile {
	var out []tiles.Tile
	for _, m := range b.melds {
		out = append(out, m.Tiles()...)
	}
	return out
}

// ValidState reports whether every meld on the board is legal.
func (b *Board) ValidState() bool {
	for _, m := range b.melds {
		if !m.Valid() {
			return false
		}
	}
	return true
}

// CloneMelds deep-copies the meld list for a solver's working state.
func (b *Board) CloneMelds() []meld.Meld {
	out := make([]meld.Meld, len(b.melds))
	for i, m := range b.melds {
		out[i] = m.Clone()
	}
	return out
}

// Apply replaces the board state with the solver's proposed meld list.
func (b *Board) Apply(newMelds []meld.Meld) {
	b.melds = newMelds
}

func (b *Board) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Board (%d melds):\n", len(b.melds))
	for i, m := range b.melds {
		fmt.Fprintf(&sb, "  %2d. %v\n", i+1, m)
	}
	return sb.String()
}
