package solver

import (
	"context"
	"testing"
	"time"

	"github.com/matryer/is"

	"github.com/joerivera/rummage/equity"
	"github.com/joerivera/rummage/game"
	"github.com/joerivera/rummage/meld"
	"github.com/joerivera/rummage/tiles"
)

func exhaustiveSolver() *Solver {
	return New(WithStrategy(NewExhaustiveStrategy(equity.NewTileCountScorer())))
}

func TestExhaustiveRackOnly(t *testing.T) {
	is := is.New(t)
	rack := game.NewRack([]tiles.Tile{tl(tiles.Red, 1), tl(tiles.Red, 2), tl(tiles.Red, 3)})

	melds, err := exhaustiveSolver().FindBestMove(context.Background(), rack, game.NewBoard())
	is.NoErr(err)
	is.Equal(len(melds), 1)
	is.Equal(melds[0].Len(), 3)
}

func TestExhaustiveRepacksBoard(t *testing.T) {
	// the incremental engine solves this by scavenging; the exhaustive
	// engine must find an equivalent or better packing
	is := is.New(t)
	board := game.NewBoard()
	board.AddMeld(meld.New(tl(tiles.Red, 4), tl(tiles.Blue, 4), tl(tiles.Orange, 4), tl(tiles.Black, 4)))
	rack := game.NewRack([]tiles.Tile{tl(tiles.Red, 3), tl(tiles.Red, 5)})

	melds, err := exhaustiveSolver().FindBestMove(context.Background(), rack, board)
	is.NoErr(err)
	is.True(melds != nil)
	is.True(allValid(melds))
	// every board tile is still on the table
	is.Equal(totalTiles(melds), 6)

	played := PlayedFromRack(board, melds)
	is.Equal(len(played), 2)
}

func TestExhaustiveCoversEveryBoardTile(t *testing.T) {
	// no re-pack may strand a board tile; when the only "improvement"
	// would drop tiles, the answer is no move
	is := is.New(t)
	board := game.NewBoard()
	board.AddMeld(meld.New(tl(tiles.Red, 4), tl(tiles.Blue, 4), tl(tiles.Orange, 4)))
	rack := game.NewRack([]tiles.Tile{tl(tiles.Black, 9)})

	melds, err := exhaustiveSolver().FindBestMove(context.Background(), rack, board)
	is.NoErr(err)
	is.True(melds == nil)
}

func TestExhaustiveBudgetFallsBackToExistingBoard(t *testing.T) {
	is := is.New(t)
	strat := NewExhaustiveStrategy(equity.NewTileCountScorer())
	strat.ComponentBudget = -time.Second // expired before the search starts

	board := game.NewBoard()
	board.AddMeld(meld.New(tl(tiles.Red, 4), tl(tiles.Blue, 4), tl(tiles.Orange, 4), tl(tiles.Black, 4)))
	rack := game.NewRack([]tiles.Tile{tl(tiles.Red, 3), tl(tiles.Red, 5)})

	melds, err := New(WithStrategy(strat)).FindBestMove(context.Background(), rack, board)
	is.NoErr(err)
	// timed out everywhere: no rack tile gets placed, so no move
	is.True(melds == nil)
}

func TestExhaustiveConservation(t *testing.T) {
	is := is.New(t)
	board := game.NewBoard()
	board.AddMeld(meld.New(tl(tiles.Red, 4), tl(tiles.Blue, 4), tl(tiles.Orange, 4), tl(tiles.Black, 4)))
	board.AddMeld(meld.New(tl(tiles.Blue, 7), tl(tiles.Blue, 8), tl(tiles.Blue, 9)))
	rack := game.NewRack([]tiles.Tile{tl(tiles.Red, 3), tl(tiles.Red, 4), tl(tiles.Red, 5), tl(tiles.Blue, 10)})

	before := countValue(board.Melds(), rack, tl(tiles.Red, 4))
	is.Equal(before, 2)

	melds, err := exhaustiveSolver().FindBestMove(context.Background(), rack, board)
	is.NoErr(err)
	is.True(melds != nil)
	is.True(allValid(melds))

	played := PlayedFromRack(board, melds)
	remaining := rack.Copy()
	is.NoErr(remaining.RemoveAll(played))
	is.Equal(countValue(melds, remaining, tl(tiles.Red, 4)), 2)

	// progress: at least one rack tile was shed
	is.True(remaining.Len() < rack.Len())
}
