// Package meld implements the atomic legal unit of the board: a group
// (same rank, distinct colors, 3 or 4 tiles) or a run (same color,
// consecutive ranks, 3 or more tiles), either of which may lean on jokers.
package meld

import (
	"strings"

	"github.com/samber/lo"

	"github.com/joerivera/rummage/tiles"
)

// Kind classifies a meld.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindGroup
	KindRun
)

func (k Kind) String() string {
	switch k {
	case KindGroup:
		return "group"
	case KindRun:
		return "run"
	}
	return "invalid"
}

const (
	// MinSize is the smallest legal meld.
	MinSize = 3
	// MaxGroupSize caps a group at one tile per color.
	MaxGroupSize = 4
)

// Meld is an ordered collection of tiles. The ordering is canonical: real
// tiles sorted by rank then color, and in a run each joker pinned into the
// rank hole it bridges (leftover jokers trail the sequence). Pinning the
// jokers keeps their represented position recoverable from their neighbors.
type Meld struct {
	tiles []tiles.Tile
}

// New builds a meld from the given tiles and canonicalizes the order. It
// does not require validity; call Valid.
func New(ts ...tiles.Tile) Meld {
	m := Meld{tiles: append([]tiles.Tile(nil), ts...)}
	m.canonicalize()
	return m
}

// Len returns the tile count.
func (m Meld) Len() int { return len(m.tiles) }

// Tile returns the tile at position i in canonical order.
func (m Meld) Tile(i int) tiles.Tile { return m.tiles[i] }

// Tiles returns the underlying tile slice in canonical order. Callers must
// not modify it.
func (m Meld) Tiles() []tiles.Tile { return m.tiles }

// Clone deep-copies the meld.
func (m Meld) Clone() Meld {
	return Meld{tiles: append([]tiles.Tile(nil), m.tiles...)}
}

// Append returns a new meld with t added, re-canonicalized.
func (m Meld) Append(t tiles.Tile) Meld {
	return New(append(append([]tiles.Tile(nil), m.tiles...), t)...)
}

// Remove returns a new meld without the tile carrying the given identity.
// The second return is false if no tile matched.
func (m Meld) Remove(id uint64) (Meld, bool) {
	for i, t := range m.tiles {
		if t.ID() == id {
			out := make([]tiles.Tile, 0, len(m.tiles)-1)
			out = append(out, m.tiles[:i]...)
			out = append(out, m.tiles[i+1:]...)
			return New(out...), true
		}
	}
	return m, false
}

// ReplaceAt swaps in t at position i and re-canonicalizes.
func (m Meld) ReplaceAt(i int, t tiles.Tile) Meld {
	out := append([]tiles.Tile(nil), m.tiles...)
	out[i] = t
	return New(out...)
}

// ContainsValue reports whether any tile matches t by face value.
func (m Meld) ContainsValue(t tiles.Tile) bool {
	for _, mt := range m.tiles {
		if mt.EqualValue(t) {
			return true
		}
	}
	return false
}

// HasJoker reports whether the meld holds at least one joker.
func (m Meld) HasJoker() bool {
	for _, t := range m.tiles {
		if t.IsJoker() {
			return true
		}
	}
	return false
}

// Points sums the face values of the meld's tiles.
func (m Meld) Points() int { return tiles.Points(m.tiles) }

func (m Meld) String() string {
	parts := make([]string, len(m.tiles))
	for i, t := range m.tiles {
		parts[i] = t.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// EqualValues reports whether two melds hold the same multiset of tile
// face values, ignoring identity.
func (m Meld) EqualValues(o Meld) bool {
	if len(m.tiles) != len(o.tiles) {
		return false
	}
	// canonical order makes a positional comparison sufficient for real
	// tiles; jokers all compare equal anyway
	for i := range m.tiles {
		if !m.tiles[i].EqualValue(o.tiles[i]) {
			return false
		}
	}
	return true
}

func (m *Meld) partition() (real []tiles.Tile, jokers []tiles.Tile) {
	jokers, real = lo.FilterReject(m.tiles, func(t tiles.Tile, _ int) bool {
		return t.IsJoker()
	})
	return real, jokers
}

func (m *Meld) canonicalize() {
	real, jokers := m.partition()
	tiles.Sort(real)

	if len(jokers) == 0 {
		m.tiles = real
		return
	}

	// Pin jokers into run holes when the real tiles read as a run.
	if len(real) > 0 && sameColor(real) && !hasDupRank(real) {
		out := make([]tiles.Tile, 0, len(real)+len(jokers))
		ji := 0
		for i, t := range real {
			if i > 0 {
				for gap := t.Rank() - real[i-1].Rank() - 1; gap > 0 && ji < len(jokers); gap-- {
					out = append(out, jokers[ji])
					ji++
				}
			}
			out = append(out, t)
		}
		out = append(out, jokers[ji:]...)
		m.tiles = out
		return
	}

	m.tiles = append(real, jokers...)
}

func sameRank(ts []tiles.Tile) bool {
	for _, t := range ts[1:] {
		if t.Rank() != ts[0].Rank() {
			return false
		}
	}
	return true
}

func sameColor(ts []tiles.Tile) bool {
	for _, t := range ts[1:] {
		if t.Color() != ts[0].Color() {
			return false
		}
	}
	return true
}

func hasDupRank(sorted []tiles.Tile) bool {
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Rank() == sorted[i-1].Rank() {
			return true
		}
	}
	return false
}

// Kind classifies the meld. A meld that is neither a legal group nor a
// legal run is KindInvalid.
func (m Meld) Kind() Kind {
	if len(m.tiles) < MinSize {
		return KindInvalid
	}
	real, jokers := m.partition()
	if len(real) == 0 {
		// an all-joker meld is never independently valid
		return KindInvalid
	}
	if sameRank(real) {
		if validGroup(real, len(jokers)) {
			return KindGroup
		}
		return KindInvalid
	}
	if sameColor(real) && validRun(real, len(jokers)) {
		return KindRun
	}
	return KindInvalid
}

// Valid reports whether the meld is a legal group or run. It is pure and
// deterministic; the joker-sufficiency check covers internal gaps only, so
// callers must not promise the same joker to two melds at once.
func (m Meld) Valid() bool {
	return m.Kind() != KindInvalid
}

func validGroup(real []tiles.Tile, numJokers int) bool {
	size := len(real) + numJokers
	if size != 3 && size != 4 {
		return false
	}
	seen := [tiles.NumColors]bool{}
	for _, t := range real {
		if seen[t.Color()] {
			return false
		}
		seen[t.Color()] = true
	}
	return true
}

func validRun(sortedReal []tiles.Tile, numJokers int) bool {
	needed := 0
	for i := 1; i < len(sortedReal); i++ {
		gap := sortedReal[i].Rank() - sortedReal[i-1].Rank()
		if gap == 0 {
			return false
		}
		needed += gap - 1
	}
	return numJokers >= needed
}
