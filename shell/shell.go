// Package shell is the interactive analyzer: type in a board and a rack
// with the tile shorthand, run the solver, and read back the move guide.
package shell

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/rs/zerolog/log"

	"github.com/joerivera/rummage/automatic"
	"github.com/joerivera/rummage/config"
	"github.com/joerivera/rummage/game"
	"github.com/joerivera/rummage/meld"
	"github.com/joerivera/rummage/solver"
	"github.com/joerivera/rummage/tiles"
)

type ShellController struct {
	l   *readline.Instance
	cfg *config.Config

	board *game.Board
	rack  *game.Rack

	// the last solve, kept until the user commits or discards it
	pending []meld.Meld
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func showMessage(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

func NewShellController(cfg *config.Config) *ShellController {
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[31mrummage>\033[0m ",
		HistoryFile:     "/tmp/readline.tmp",
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		panic(err)
	}
	return &ShellController{
		l:     l,
		cfg:   cfg,
		board: game.NewBoard(),
		rack:  game.NewRack(nil),
	}
}

func (sc *ShellController) showError(err error) {
	showMessage("error: "+err.Error(), sc.l.Stderr())
}

// Loop reads and executes commands until exit/EOF.
func (sc *ShellController) Loop() {
	defer sc.l.Close()
	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				break
			}
			continue
		} else if err == io.EOF {
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		cmd, args := fields[0], fields[1:]
		if cmd == "exit" || cmd == "quit" {
			break
		}
		sc.execute(cmd, args)
	}
	log.Debug().Msg("exiting shell..")
}

func (sc *ShellController) execute(cmd string, args []string) {
	out := sc.l.Stderr()
	switch cmd {
	case "board":
		sc.addMeld(strings.Join(args, " "))
	case "rack":
		sc.setRack(strings.Join(args, " "))
	case "show":
		showMessage(sc.board.String(), out)
		showMessage("Rack: "+sc.rack.String(), out)
	case "solve":
		sc.solve()
	case "commit":
		sc.commit()
	case "clear":
		sc.board = game.NewBoard()
		sc.rack = game.NewRack(nil)
		sc.pending = nil
		showMessage("cleared", out)
	case "selfplay":
		sc.selfplay(args)
	case "set":
		if len(args) != 2 {
			showMessage("usage: set <key> <value>", out)
			return
		}
		sc.cfg.Set(args[0], args[1])
		showMessage(args[0]+" = "+args[1], out)
	case "settings":
		for k, v := range sc.cfg.AllSettings() {
			showMessage(k+": "+strings.TrimSpace(strings.ReplaceAll(
				strings.Trim(stringify(v), "\n"), "\n", " ")), out)
		}
	case "help":
		usage(out)
	default:
		showMessage("unknown command "+cmd+"; try 'help'", out)
	}
}

func (sc *ShellController) addMeld(line string) {
	ts, err := tiles.ParseLine(line)
	if err != nil {
		sc.showError(err)
		return
	}
	if len(ts) == 0 {
		showMessage("usage: board <shorthand>, e.g. 'board 10 rbk' or 'board b 3 8'", sc.l.Stderr())
		return
	}
	m := meld.New(ts...)
	if !m.Valid() {
		showMessage("not a legal meld: "+m.String(), sc.l.Stderr())
		return
	}
	sc.board.AddMeld(m)
	sc.pending = nil
	showMessage("added "+m.String(), sc.l.Stderr())
}

func (sc *ShellController) setRack(line string) {
	ts, err := tiles.ParseLine(line)
	if err != nil {
		sc.showError(err)
		return
	}
	sc.rack = game.NewRack(ts)
	sc.pending = nil
	showMessage("rack: "+sc.rack.String(), sc.l.Stderr())
}

func (sc *ShellController) solve() {
	sv, err := solver.FromOptions(
		sc.cfg.GetString("solver-strategy"),
		sc.cfg.GetString("solver-scorer"),
		sc.cfg.GetDuration("exhaustive-budget"))
	if err != nil {
		sc.showError(err)
		return
	}
	melds, err := sv.FindBestMove(context.Background(), sc.rack, sc.board)
	if err != nil {
		sc.showError(err)
		return
	}
	if melds == nil {
		showMessage("no move found; draw a tile", sc.l.Stderr())
		return
	}
	sc.pending = melds
	showMessage(solver.BuildGuide(sc.board, melds).String(), sc.l.Stderr())
	showMessage("type 'commit' to apply this move", sc.l.Stderr())
}

func (sc *ShellController) selfplay(args []string) {
	numGames := sc.cfg.GetInt("selfplay-games")
	if len(args) == 1 {
		if n, err := strconv.Atoi(args[0]); err == nil && n > 0 {
			numGames = n
		}
	}
	logchan := make(chan string, numGames)
	results, err := automatic.CompVsComp(context.Background(), sc.cfg, numGames, logchan)
	if err != nil {
		sc.showError(err)
		return
	}
	close(logchan)
	showMessage(fmt.Sprintf("p1 %d - p2 %d (%d games)",
		results["p1"], results["p2"], numGames), sc.l.Stderr())
}

func (sc *ShellController) commit() {
	if sc.pending == nil {
		showMessage("nothing to commit; run 'solve' first", sc.l.Stderr())
		return
	}
	played := solver.PlayedFromRack(sc.board, sc.pending)
	if err := sc.rack.RemoveAll(played); err != nil {
		sc.showError(err)
		return
	}
	sc.board.Apply(sc.pending)
	sc.pending = nil
	showMessage(sc.board.String(), sc.l.Stderr())
	showMessage("Rack: "+sc.rack.String(), sc.l.Stderr())
}
