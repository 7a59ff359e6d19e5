package game

import (
	"errors"
	"strings"

	"github.com/joerivera/rummage/tiles"
)

// ErrTilesNotPresent is returned when a removal asks for tiles the rack
// does not hold. The rack is left untouched.
var ErrTilesNotPresent = errors.New("tiles not present in rack")

// Rack is one player's hand of tiles, kept sorted for display.
type Rack struct {
	tiles []tiles.Tile
}

// NewRack creates a rack holding the given tiles.
func NewRack(ts []tiles.Tile) *Rack {
	r := &Rack{tiles: append([]tiles.Tile(nil), ts...)}
	tiles.Sort(r.tiles)
	return r
}

func (r *Rack) Len() int { return len(r.tiles) }

// Tiles returns the rack's tiles in sorted order. Callers must not modify
// the returned slice.
func (r *Rack) Tiles() []tiles.Tile { return r.tiles }

// Copy deep-copies the rack.
func (r *Rack) Copy() *Rack {
	return &Rack{tiles: append([]tiles.Tile(nil), r.tiles...)}
}

// Add places a tile on the rack.
func (r *Rack) Add(t tiles.Tile) {
	r.tiles = append(r.tiles, t)
	tiles.Sort(r.tiles)
}

// AddAll places several tiles on the rack.
func (r *Rack) AddAll(ts []tiles.Tile) {
	r.tiles = append(r.tiles, ts...)
	tiles.Sort(r.tiles)
}

// ContainsValue reports whether the rack holds a tile matching t by face
// value.
func (r *Rack) ContainsValue(t tiles.Tile) bool {
	for _, rt := range r.tiles {
		if rt.EqualValue(t) {
			return true
		}
	}
	return false
}

// RemoveAll removes one rack tile per requested tile, matching by face
// value. The removal is atomic: if any tile is missing the rack is left
// exactly as it was and ErrTilesNotPresent is returned.
func (r *Rack) RemoveAll(ts []tiles.Tile) error {
	working := append([]tiles.Tile(nil), r.tiles...)
	for _, want := range ts {
		found := -1
		for i, have := range working {
			if have.EqualValue(want) {
				found = i
				break
			}
		}
		if found == -1 {
			return ErrTilesNotPresent
		}
		working = append(working[:found], working[found+1:]...)
	}
	r.tiles = working
	return nil
}

// Points is the total face value left on the rack; this is the end-of-game
// penalty count (jokers cost 30).
func (r *Rack) Points() int {
	return tiles.Points(r.tiles)
}

func (r *Rack) String() string {
	parts := make([]string, len(r.tiles))
	for i, t := range r.tiles {
		parts[i] = t.String()
	}
	return strings.Join(parts, " ")
}
