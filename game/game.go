package game

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/joerivera/rummage/meld"
	"github.com/joerivera/rummage/tiles"
)

const (
	// DefaultHandSize is the opening deal.
	DefaultHandSize = 14
	// OpeningThreshold is the face-value total a player's first play must
	// reach using rack tiles only.
	OpeningThreshold = 30
)

// Game ties the board, the bag and the players into a turn sequence. It
// knows nothing about how moves are found; a driver (the shell, the
// self-play harness) brings its own solver and commits results through
// Commit and Draw.
type Game struct {
	board   *Board
	bag     *tiles.Bag
	players []*Player
	onTurn  int
	turnNum int
	playing bool
}

// NewGame seats the named players at an empty board with a fresh bag.
func NewGame(names ...string) (*Game, error) {
	if len(names) < 2 {
		return nil, fmt.Errorf("need at least 2 players, got %d", len(names))
	}
	g := &Game{
		board: NewBoard(),
		bag:   tiles.NewBag(),
	}
	for _, name := range names {
		g.players = append(g.players, NewPlayer(name))
	}
	return g, nil
}

func (g *Game) Board() *Board      { return g.board }
func (g *Game) Bag() *tiles.Bag    { return g.bag }
func (g *Game) Players() []*Player { return g.players }
func (g *Game) Turn() int          { return g.turnNum }
func (g *Game) Playing() bool      { return g.playing }

func (g *Game) PlayerOnTurn() *Player { return g.players[g.onTurn] }

// Deal gives every player their opening hand and starts the game.
func (g *Game) Deal() {
	for _, p := range g.players {
		p.Rack.AddAll(g.bag.DrawN(DefaultHandSize))
	}
	g.onTurn = 0
	g.turnNum = 0
	g.playing = true
	log.Debug().Int("players", len(g.players)).
		Int("bag", g.bag.TilesRemaining()).Msg("dealt opening hands")
}

// Commit applies a solver result for the player on turn: the board takes
// the proposed meld list and the played tiles leave the rack atomically.
// The board is untouched if the rack removal fails.
func (g *Game) Commit(newMelds []meld.Meld, played []tiles.Tile) error {
	p := g.PlayerOnTurn()
	if err := p.Rack.RemoveAll(played); err != nil {
		return err
	}
	g.board.Apply(newMelds)
	if p.Rack.Len() == 0 {
		g.playing = false
		log.Info().Str("player", p.Name).Msg("rack emptied, game over")
	}
	g.nextTurn()
	return nil
}

// Draw is the no-move turn: the player on turn draws a tile if any remain.
// It returns false if the bag was empty.
func (g *Game) Draw() bool {
	p := g.PlayerOnTurn()
	ok := p.DrawFrom(g.bag)
	g.nextTurn()
	return ok
}

// End stops the game; racks are scored as they stand.
func (g *Game) End() {
	g.playing = false
}

func (g *Game) nextTurn() {
	g.onTurn = (g.onTurn + 1) % len(g.players)
	g.turnNum++
}

// Winner returns the player with the lowest rack point total. An emptied
// rack always wins outright.
func (g *Game) Winner() *Player {
	best := g.players[0]
	for _, p := range g.players[1:] {
		if p.Rack.Points() < best.Rack.Points() {
			best = p
		}
	}
	return best
}
