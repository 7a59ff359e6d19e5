package solver

import (
	"context"
	"testing"

	"github.com/matryer/is"

	"github.com/joerivera/rummage/game"
	"github.com/joerivera/rummage/meld"
	"github.com/joerivera/rummage/tiles"
)

func tl(c tiles.Color, r int) tiles.Tile { return tiles.MustNew(c, r) }

func countValue(melds []meld.Meld, rack *game.Rack, want tiles.Tile) int {
	n := 0
	for _, m := range melds {
		for _, t := range m.Tiles() {
			if t.EqualValue(want) {
				n++
			}
		}
	}
	for _, t := range rack.Tiles() {
		if t.EqualValue(want) {
			n++
		}
	}
	return n
}

func allValid(melds []meld.Meld) bool {
	for _, m := range melds {
		if !m.Valid() {
			return false
		}
	}
	return true
}

func totalTiles(melds []meld.Meld) int {
	n := 0
	for _, m := range melds {
		n += m.Len()
	}
	return n
}

func TestRackOnlyMove(t *testing.T) {
	// scenario: empty board, the rack holds a full run
	is := is.New(t)
	rack := game.NewRack([]tiles.Tile{tl(tiles.Red, 1), tl(tiles.Red, 2), tl(tiles.Red, 3)})
	board := game.NewBoard()

	melds, err := New().FindBestMove(context.Background(), rack, board)
	is.NoErr(err)
	is.Equal(len(melds), 1)
	is.Equal(melds[0].Len(), 3)
	is.True(allValid(melds))

	// the caller's rack is a read-only snapshot
	is.Equal(rack.Len(), 3)
}

func TestExtensionMove(t *testing.T) {
	// scenario: R1-R2-R3 on the board, R4 on the rack
	is := is.New(t)
	board := game.NewBoard()
	board.AddMeld(meld.New(tl(tiles.Red, 1), tl(tiles.Red, 2), tl(tiles.Red, 3)))
	rack := game.NewRack([]tiles.Tile{tl(tiles.Red, 4)})

	melds, err := New().FindBestMove(context.Background(), rack, board)
	is.NoErr(err)
	is.Equal(len(melds), 1)
	is.Equal(melds[0].Len(), 4)
	is.True(melds[0].ContainsValue(tl(tiles.Red, 4)))
	is.True(allValid(melds))
}

func TestScavengeFromGroup(t *testing.T) {
	// scenario: a 4-group on the board donates its red tile to a new run
	is := is.New(t)
	board := game.NewBoard()
	board.AddMeld(meld.New(tl(tiles.Red, 4), tl(tiles.Blue, 4), tl(tiles.Orange, 4), tl(tiles.Black, 4)))
	rack := game.NewRack([]tiles.Tile{tl(tiles.Red, 3), tl(tiles.Red, 5)})

	melds, err := New().FindBestMove(context.Background(), rack, board)
	is.NoErr(err)
	is.Equal(len(melds), 2)
	is.Equal(melds[0].Len(), 3) // the shrunk group
	is.Equal(melds[1].Len(), 3) // the new red run
	is.True(allValid(melds))
	is.Equal(totalTiles(melds), 6)
}

func TestJokerRescue(t *testing.T) {
	// scenario: swap R2 for the board joker, then spend the joker on a
	// brand-new group
	is := is.New(t)
	board := game.NewBoard()
	board.AddMeld(meld.New(tl(tiles.Red, 1), tiles.NewJoker(), tl(tiles.Red, 3)))
	rack := game.NewRack([]tiles.Tile{tl(tiles.Red, 2), tl(tiles.Blue, 10), tl(tiles.Black, 10)})

	melds, err := New().FindBestMove(context.Background(), rack, board)
	is.NoErr(err)
	is.Equal(len(melds), 2)

	var run, group meld.Meld
	for _, m := range melds {
		if m.Kind() == meld.KindRun {
			run = m
		} else {
			group = m
		}
	}
	is.True(!run.HasJoker()) // the run is pure now
	is.Equal(run.Len(), 3)
	is.True(group.HasJoker()) // the joker went to work in the group
	is.Equal(group.Len(), 3)
	is.True(group.ContainsValue(tl(tiles.Blue, 10)))
	is.True(group.ContainsValue(tl(tiles.Black, 10)))
	is.True(allValid(melds))
}

func TestNoMoveReturnsNil(t *testing.T) {
	is := is.New(t)
	rack := game.NewRack([]tiles.Tile{tl(tiles.Red, 1), tl(tiles.Blue, 5)})
	board := game.NewBoard()

	melds, err := New().FindBestMove(context.Background(), rack, board)
	is.NoErr(err)
	is.True(melds == nil)
}

func TestThreeTileMeldsNeverDonate(t *testing.T) {
	is := is.New(t)

	// a 3-group cannot donate
	board := game.NewBoard()
	board.AddMeld(meld.New(tl(tiles.Red, 4), tl(tiles.Blue, 4), tl(tiles.Orange, 4)))
	rack := game.NewRack([]tiles.Tile{tl(tiles.Red, 3), tl(tiles.Red, 5)})
	melds, err := New().FindBestMove(context.Background(), rack, board)
	is.NoErr(err)
	is.True(melds == nil)

	// a run only donates its ends, never the interior
	board = game.NewBoard()
	board.AddMeld(meld.New(tl(tiles.Red, 4), tl(tiles.Red, 5), tl(tiles.Red, 6), tl(tiles.Red, 7)))
	rack = game.NewRack([]tiles.Tile{tl(tiles.Blue, 5), tl(tiles.Black, 5)})
	melds, err = New().FindBestMove(context.Background(), rack, board)
	is.NoErr(err)
	is.True(melds == nil)
}

func TestConservationWithDuplicateTiles(t *testing.T) {
	// two physical R4s in play: one on the board, one on the rack. The
	// move must neither duplicate nor vanish either of them.
	is := is.New(t)
	board := game.NewBoard()
	board.AddMeld(meld.New(tl(tiles.Red, 4), tl(tiles.Blue, 4), tl(tiles.Orange, 4), tl(tiles.Black, 4)))
	rack := game.NewRack([]tiles.Tile{tl(tiles.Red, 3), tl(tiles.Red, 4), tl(tiles.Red, 5)})

	before := countValue(board.Melds(), rack, tl(tiles.Red, 4))
	is.Equal(before, 2)

	melds, err := New().FindBestMove(context.Background(), rack, board)
	is.NoErr(err)
	is.True(melds != nil)

	played := PlayedFromRack(board, melds)
	remaining := rack.Copy()
	is.NoErr(remaining.RemoveAll(played))
	is.Equal(countValue(melds, remaining, tl(tiles.Red, 4)), 2)
	is.True(allValid(melds))
}

func TestDonorNeverShrinksBelowThree(t *testing.T) {
	is := is.New(t)
	board := game.NewBoard()
	board.AddMeld(meld.New(tl(tiles.Red, 4), tl(tiles.Blue, 4), tl(tiles.Orange, 4), tl(tiles.Black, 4)))
	rack := game.NewRack([]tiles.Tile{tl(tiles.Red, 3), tl(tiles.Red, 5), tl(tiles.Blue, 3), tl(tiles.Blue, 5)})

	melds, err := New().FindBestMove(context.Background(), rack, board)
	is.NoErr(err)
	is.True(melds != nil)
	for _, m := range melds {
		is.True(m.Len() >= meld.MinSize)
		is.True(m.Valid())
	}
	// only one tile may leave the 4-group, so only one new run fits
	is.Equal(len(melds), 2)
}

// The 20-meld board below once tricked the scavenging phase into sourcing
// the same physical Red 3 twice. Both strategies must keep the Red 3 count
// steady: one on the board in the red run plus the one on the rack.
func TestFullBoardNoDuplication(t *testing.T) {
	boardLines := []string{
		"b 1 4", "5 rbk", "b 6 9", "12 rbko", "r 3 5",
		"7 rbko", "1 rbko", "6 rbo", "k 9 11", "o 7 9",
		"k 4 7", "r 9 12", "8 rbo", "9 rbko", "o 11 13",
		"2 rbko", "10 rbo", "o 3 6", "13 rbo", "11 rkb",
	}

	for _, sv := range []*Solver{
		New(),
		exhaustiveSolver(),
	} {
		board := game.NewBoard()
		for _, line := range boardLines {
			ts, err := tiles.ParseLine(line)
			if err != nil {
				t.Fatal(err)
			}
			m := meld.New(ts...)
			if !m.Valid() {
				t.Fatalf("test board meld invalid: %v", m)
			}
			board.AddMeld(m)
		}
		rack := game.NewRack([]tiles.Tile{tl(tiles.Red, 3)})

		r3 := tl(tiles.Red, 3)
		before := countValue(board.Melds(), rack, r3)
		if before != 2 {
			t.Fatalf("setup expects 2 Red 3s, counted %d", before)
		}

		melds, err := sv.FindBestMove(context.Background(), rack, board)
		if err != nil {
			t.Fatal(err)
		}
		if melds == nil {
			// no move is a legal answer; the rack keeps its Red 3
			if got := countValue(board.Melds(), rack, r3); got != 2 {
				t.Fatalf("Red 3 count changed with no move: %d", got)
			}
			continue
		}
		if !allValid(melds) {
			t.Fatalf("proposed board has invalid melds")
		}
		played := PlayedFromRack(board, melds)
		remaining := rack.Copy()
		if err := remaining.RemoveAll(played); err != nil {
			t.Fatal(err)
		}
		if got := countValue(melds, remaining, r3); got != 2 {
			t.Fatalf("Red 3 count after move = %d, want 2", got)
		}
		if got, want := totalTiles(melds)+remaining.Len(), len(board.AllTiles())+1; got != want {
			t.Fatalf("tile total after move = %d, want %d", got, want)
		}
	}
}
