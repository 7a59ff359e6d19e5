package solver

import (
	"fmt"
	"strings"

	"github.com/joerivera/rummage/game"
	"github.com/joerivera/rummage/meld"
	"github.com/joerivera/rummage/tiles"
)

// Guide explains a proposed move in terms a person at the table can act
// on: which tiles leave the rack, and which melds on the new board are
// untouched carryovers.
type Guide struct {
	// Played are the tiles (by face value) the move takes off the rack.
	Played []tiles.Tile
	// Melds is the proposed board; Changed marks melds that are new or
	// modified relative to the old board.
	Melds []GuideMeld
}

type GuideMeld struct {
	Meld    meld.Meld
	Changed bool
}

type valueKey struct {
	color tiles.Color
	rank  int
	joker bool
}

func keyOf(t tiles.Tile) valueKey {
	return valueKey{color: t.Color(), rank: t.Rank(), joker: t.IsJoker()}
}

// PlayedFromRack computes the face-value multiset difference between the
// new board and the old one: exactly the tiles the move spends from the
// rack.
func PlayedFromRack(oldBoard *game.Board, newMelds []meld.Meld) []tiles.Tile {
	counts := map[valueKey]int{}
	var samples = map[valueKey]tiles.Tile{}
	for _, m := range newMelds {
		for _, t := range m.Tiles() {
			counts[keyOf(t)]++
			samples[keyOf(t)] = t
		}
	}
	for _, t := range oldBoard.AllTiles() {
		counts[keyOf(t)]--
	}

	var played []tiles.Tile
	for k, n := range counts {
		for i := 0; i < n; i++ {
			played = append(played, samples[k])
		}
	}
	tiles.Sort(played)
	return played
}

// BuildGuide diffs the old board against the proposed meld list.
func BuildGuide(oldBoard *game.Board, newMelds []meld.Meld) Guide {
	g := Guide{Played: PlayedFromRack(oldBoard, newMelds)}
	old := oldBoard.Melds()
	for _, m := range newMelds {
		changed := true
		for _, om := range old {
			if m.EqualValues(om) {
				changed = false
				break
			}
		}
		g.Melds = append(g.Melds, GuideMeld{Meld: m, Changed: changed})
	}
	return g
}

func (g Guide) String() string {
	var sb strings.Builder
	if len(g.Played) == 0 {
		sb.WriteString("No tiles played from rack (rearrangement only)\n")
	} else {
		parts := make([]string, len(g.Played))
		for i, t := range g.Played {
			parts[i] = t.String()
		}
		fmt.Fprintf(&sb, "Play from rack: %s\n", strings.Join(parts, " "))
	}
	sb.WriteString("New board:\n")
	for i, gm := range g.Melds {
		marker := ""
		if gm.Changed {
			marker = "  << new/modified"
		}
		fmt.Fprintf(&sb, "  %2d. %v%s\n", i+1, gm.Meld, marker)
	}
	return sb.String()
}
