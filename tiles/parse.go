package tiles

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// The shorthand accepted by the shell and the solve service:
//
//	R10        a single tile (color letter + rank)
//	J          a joker
//	10 rbk     a group: rank 10 in Red, Blue, Black
//	b 3 8      a run: Blue 3 through 8
func letterColor(r rune) (Color, bool) {
	switch unicode.ToUpper(r) {
	case 'R':
		return Red, true
	case 'O':
		return Orange, true
	case 'B':
		return Blue, true
	case 'K':
		return Black, true
	}
	return 0, false
}

// ParseTile parses a single tile token such as "R10", "k7" or "J".
func ParseTile(tok string) (Tile, error) {
	tok = strings.TrimSpace(tok)
	if tok == "" {
		return Tile{}, fmt.Errorf("empty tile token")
	}
	if strings.EqualFold(tok, "J") || strings.EqualFold(tok, "joker") {
		return NewJoker(), nil
	}
	color, ok := letterColor(rune(tok[0]))
	if !ok {
		return Tile{}, fmt.Errorf("unknown color letter in %q", tok)
	}
	rank, err := strconv.Atoi(tok[1:])
	if err != nil {
		return Tile{}, fmt.Errorf("bad rank in %q: %w", tok, err)
	}
	return New(color, rank)
}

// ParseLine parses one line of shorthand into tiles. It accepts the group
// form ("10 rbk"), the run form ("b 3 8"), and one or more single-tile
// tokens ("R10 B4 J").
func ParseLine(line string) ([]Tile, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, nil
	}

	// "10 rbk": rank followed by a string of color letters.
	if len(fields) == 2 {
		if rank, err := strconv.Atoi(fields[0]); err == nil {
			out := make([]Tile, 0, len(fields[1]))
			for _, r := range fields[1] {
				color, ok := letterColor(r)
				if !ok {
					return nil, fmt.Errorf("unknown color letter %q in %q", r, line)
				}
				t, err := New(color, rank)
				if err != nil {
					return nil, err
				}
				out = append(out, t)
			}
			return out, nil
		}
	}

	// "b 3 8": color letter, start rank, end rank.
	if len(fields) == 3 && len(fields[0]) == 1 {
		if color, ok := letterColor(rune(fields[0][0])); ok {
			start, err1 := strconv.Atoi(fields[1])
			end, err2 := strconv.Atoi(fields[2])
			if err1 == nil && err2 == nil {
				if end < start {
					return nil, fmt.Errorf("run range out of order in %q", line)
				}
				out := make([]Tile, 0, end-start+1)
				for rank := start; rank <= end; rank++ {
					t, err := New(color, rank)
					if err != nil {
						return nil, err
					}
					out = append(out, t)
				}
				return out, nil
			}
		}
	}

	// Fall back to single-tile tokens.
	out := make([]Tile, 0, len(fields))
	for _, tok := range fields {
		t, err := ParseTile(tok)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}
