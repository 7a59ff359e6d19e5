package shell

import (
	"fmt"
	"io"
)

func stringify(v any) string {
	return fmt.Sprintf("%v", v)
}

func usage(w io.Writer) {
	io.WriteString(w, `Commands:
  board <shorthand>   add a meld to the board ("board 10 rbk", "board b 3 8")
  rack <shorthand>    set the rack ("rack R3 R5 J", "rack b 1 4")
  show                display the board and rack
  solve               find the best move for the current position
  commit              apply the last solve result
  clear               reset board and rack
  selfplay [n]        play n solver-vs-solver games and report wins
  set <key> <value>   change a setting (solver-strategy, solver-scorer, ...)
  settings            show effective settings
  exit                leave the shell
`)
}
