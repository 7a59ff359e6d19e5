// Package automatic plays full games of tile rummy between solver-driven
// players, mostly to exercise the engine and to compare strategies and
// scoring policies over many games.
package automatic

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/joerivera/rummage/config"
	"github.com/joerivera/rummage/game"
	"github.com/joerivera/rummage/meld"
	"github.com/joerivera/rummage/solver"
)

// GameRunner drives one game at a time between two solver players. Lines
// describing finished games go to logchan if one is provided.
type GameRunner struct {
	cfg     *config.Config
	logchan chan string
	solvers [2]*solver.Solver
	game    *game.Game
}

// NewGameRunner builds a runner whose two players share the configured
// strategy and scorer.
func NewGameRunner(logchan chan string, cfg *config.Config) (*GameRunner, error) {
	r := &GameRunner{cfg: cfg, logchan: logchan}
	for i := range r.solvers {
		sv, err := solver.FromOptions(
			cfg.GetString("solver-strategy"),
			cfg.GetString("solver-scorer"),
			cfg.GetDuration("exhaustive-budget"))
		if err != nil {
			return nil, err
		}
		r.solvers[i] = sv
	}
	return r, nil
}

// Game exposes the game in progress (or just finished), for tests and for
// callers that want to display the final position.
func (r *GameRunner) Game() *game.Game { return r.game }

// PlayGame runs a single game to completion and returns the winner's
// name. The game ends when a rack empties or when a full round passes with
// no moves and an empty bag.
func (r *GameRunner) PlayGame(ctx context.Context, gameIdx int) (string, error) {
	g, err := game.NewGame("p1", "p2")
	if err != nil {
		return "", err
	}
	r.game = g
	g.Deal()

	stuck := 0
	for g.Playing() {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		moved, err := r.playTurn(ctx, g, r.solvers[g.Turn()%2])
		if err != nil {
			return "", err
		}
		if moved {
			stuck = 0
			continue
		}
		if g.Draw() {
			continue
		}
		stuck++
		if stuck >= len(g.Players()) {
			// nobody can move and there is nothing left to draw
			g.End()
		}
	}

	winner := g.Winner()
	log.Debug().Int("game", gameIdx).Str("winner", winner.Name).
		Int("turns", g.Turn()).Msg("game over")
	if r.logchan != nil {
		r.logchan <- fmt.Sprintf("%d,%s,%d,%d,%d\n",
			gameIdx, winner.Name, g.Turn(),
			g.Players()[0].Rack.Points(), g.Players()[1].Rack.Points())
	}
	return winner.Name, nil
}

// playTurn finds and commits a move for the player on turn. The first move
// of a player's game must come from the rack alone and be worth the
// opening threshold, so pre-opening turns are solved against an empty
// board.
func (r *GameRunner) playTurn(ctx context.Context, g *game.Game, sv *solver.Solver) (bool, error) {
	p := g.PlayerOnTurn()

	if !p.Opened {
		melds, err := sv.FindBestMove(ctx, p.Rack, game.NewBoard())
		if err != nil {
			return false, err
		}
		if melds == nil {
			return false, nil
		}
		if pointsOf(melds) < game.OpeningThreshold {
			return false, nil
		}
		played := solver.PlayedFromRack(game.NewBoard(), melds)
		combined := append(g.Board().CloneMelds(), melds...)
		if err := g.Commit(combined, played); err != nil {
			return false, err
		}
		p.Opened = true
		return true, nil
	}

	melds, err := sv.FindBestMove(ctx, p.Rack, g.Board())
	if err != nil {
		return false, err
	}
	if melds == nil {
		return false, nil
	}
	played := solver.PlayedFromRack(g.Board(), melds)
	if err := g.Commit(melds, played); err != nil {
		return false, err
	}
	return true, nil
}

func pointsOf(melds []meld.Meld) int {
	total := 0
	for _, m := range melds {
		total += m.Points()
	}
	return total
}
