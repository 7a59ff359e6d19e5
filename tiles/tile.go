// Package tiles implements the physical tile set for tile rummy: the
// individual tile value object, the text shorthand used everywhere in the
// program, and the bag the game draws from.
package tiles

import (
	"fmt"
	"sort"
	"sync/atomic"
)

// Color is a tile color. The joker carries its own pseudo-color.
type Color uint8

const (
	Red Color = iota
	Orange
	Blue
	Black
	JokerColor
)

const (
	// MinRank and MaxRank bound the printed face values.
	MinRank = 1
	MaxRank = 13
	// JokerRank is used for rack scoring only; it plays no part in
	// ordering or rule checks.
	JokerRank = 30
	// NumColors is the size of the real color palette (jokers excluded).
	NumColors = 4
)

var colorNames = [...]string{"Red", "Orange", "Blue", "Black", "Joker"}
var colorLetters = [...]byte{'R', 'O', 'B', 'K', 'J'}

func (c Color) String() string {
	if int(c) >= len(colorNames) {
		return "??"
	}
	return colorNames[c]
}

// Letter returns the single-letter form used by the text shorthand
// (K for Black, to keep Blue on B).
func (c Color) Letter() byte {
	return colorLetters[c]
}

// RealColors lists the four playable colors in canonical order.
func RealColors() []Color {
	return []Color{Red, Orange, Blue, Black}
}

// tile ids are handed out once at construction and never reused. The deck
// holds two physical copies of every numbered tile, so value equality alone
// cannot say which copy sits where; the id can.
var nextID uint64

// Tile is an immutable physical tile. Two tiles may share a face value
// (EqualValue) while remaining distinct objects (ID).
type Tile struct {
	id    uint64
	color Color
	rank  int8
	joker bool
}

// New creates a numbered tile. Colors outside the real palette and ranks
// outside 1..13 are caller errors.
func New(color Color, rank int) (Tile, error) {
	if color >= JokerColor {
		return Tile{}, fmt.Errorf("invalid tile color: %v", color)
	}
	if rank < MinRank || rank > MaxRank {
		return Tile{}, fmt.Errorf("invalid tile rank: %d", rank)
	}
	return Tile{
		id:    atomic.AddUint64(&nextID, 1),
		color: color,
		rank:  int8(rank),
	}, nil
}

// MustNew is New for statically-known tiles; it panics on bad input.
func MustNew(color Color, rank int) Tile {
	t, err := New(color, rank)
	if err != nil {
		panic(err)
	}
	return t
}

// NewJoker creates a joker tile.
func NewJoker() Tile {
	return Tile{
		id:    atomic.AddUint64(&nextID, 1),
		color: JokerColor,
		rank:  JokerRank,
		joker: true,
	}
}

// ID is the tile's per-instance identity. Use it for ownership and removal;
// use EqualValue for rule checks.
func (t Tile) ID() uint64     { return t.id }
func (t Tile) Color() Color   { return t.color }
func (t Tile) Rank() int      { return int(t.rank) }
func (t Tile) IsJoker() bool  { return t.joker }
func (t Tile) IsZero() bool   { return t.id == 0 }

// Points is the tile's face value for rack scoring; jokers score 30.
func (t Tile) Points() int { return int(t.rank) }

// EqualValue reports face-value equality, the only equality the rules see.
func (t Tile) EqualValue(o Tile) bool {
	return t.color == o.color && t.rank == o.rank && t.joker == o.joker
}

// Same reports physical identity.
func (t Tile) Same(o Tile) bool { return t.id == o.id }

// Less orders tiles by rank, then color. Jokers sort last.
func (t Tile) Less(o Tile) bool {
	if t.rank != o.rank {
		return t.rank < o.rank
	}
	return t.color < o.color
}

func (t Tile) String() string {
	if t.joker {
		return "JOKER"
	}
	return fmt.Sprintf("%c%d", t.color.Letter(), t.rank)
}

// Sort sorts in place by rank, then color.
func Sort(ts []Tile) {
	sort.Slice(ts, func(i, j int) bool { return ts[i].Less(ts[j]) })
}

// Points sums face values over a slice of tiles.
func Points(ts []Tile) int {
	total := 0
	for _, t := range ts {
		total += t.Points()
	}
	return total
}
