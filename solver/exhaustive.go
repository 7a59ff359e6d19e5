package solver

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	"github.com/joerivera/rummage/equity"
	"github.com/joerivera/rummage/meld"
	"github.com/joerivera/rummage/movegen"
	"github.com/joerivera/rummage/tiles"
)

// DefaultComponentBudget bounds the packing search per component. Subset
// partitions grow combinatorially past roughly 20 tiles, so an escape
// valve is not optional.
const DefaultComponentBudget = 3 * time.Second

// ExhaustiveStrategy dissolves the board and re-packs it for a maximal
// score. The full tile universe is split into connected components over a
// co-meld adjacency graph, and each component is solved independently by a
// memoized maximum-set-packing search. Every board tile must be covered by
// the packing (tiles cannot vanish); a component that cannot be re-packed
// inside the budget keeps its existing melds.
type ExhaustiveStrategy struct {
	scorer equity.MeldScorer
	// ComponentBudget is the wall-clock limit per component.
	ComponentBudget time.Duration
}

func NewExhaustiveStrategy(scorer equity.MeldScorer) *ExhaustiveStrategy {
	return &ExhaustiveStrategy{scorer: scorer, ComponentBudget: DefaultComponentBudget}
}

func (s *ExhaustiveStrategy) Name() string { return "exhaustive" }

// BestMove re-packs each component and returns the combined meld list if
// the packing sheds at least one rack tile. The memo is scoped to the
// call: the legal meld universe changes every turn, so nothing is worth
// keeping across invocations.
func (s *ExhaustiveStrategy) BestMove(ctx context.Context, rack []tiles.Tile, melds []meld.Meld) ([]meld.Meld, error) {
	boardIDs := map[uint64]bool{}
	pool := append([]tiles.Tile(nil), rack...)
	for _, m := range melds {
		for _, t := range m.Tiles() {
			boardIDs[t.ID()] = true
			pool = append(pool, t)
		}
	}

	comps := connectedComponents(pool, melds)

	var result []meld.Meld
	rackCovered := 0
	for _, comp := range comps {
		packed, ok := s.solveComponent(ctx, comp, boardIDs)
		if !ok {
			// keep this neighborhood exactly as it stands
			result = append(result, compMelds(comp, melds)...)
			continue
		}
		for _, m := range packed {
			for _, t := range m.Tiles() {
				if !boardIDs[t.ID()] {
					rackCovered++
				}
			}
		}
		result = append(result, packed...)
	}

	if rackCovered == 0 {
		return nil, nil
	}
	return result, nil
}

// component is one island of mutually reachable tiles.
type component struct {
	tiles []tiles.Tile
}

// connectedComponents splits the pool along co-meld adjacency: two tiles
// are adjacent if they could sit in the same group (same rank, different
// color) or run (same color, adjacent rank), or if they already share a
// board meld. The meld edges keep each existing meld, jokers included,
// inside a single component.
func connectedComponents(pool []tiles.Tile, melds []meld.Meld) []component {
	idx := make(map[uint64]int, len(pool))
	for i, t := range pool {
		idx[t.ID()] = i
	}
	adj := make([][]int, len(pool))
	addEdge := func(i, j int) {
		adj[i] = append(adj[i], j)
		adj[j] = append(adj[j], i)
	}

	for i := 0; i < len(pool); i++ {
		for j := i + 1; j < len(pool); j++ {
			a, b := pool[i], pool[j]
			if a.IsJoker() || b.IsJoker() {
				continue
			}
			group := a.Rank() == b.Rank() && a.Color() != b.Color()
			run := a.Color() == b.Color() && absInt(a.Rank()-b.Rank()) == 1
			if group || run {
				addEdge(i, j)
			}
		}
	}
	for _, m := range melds {
		ts := m.Tiles()
		for k := 1; k < len(ts); k++ {
			addEdge(idx[ts[0].ID()], idx[ts[k].ID()])
		}
	}

	visited := make([]bool, len(pool))
	var comps []component
	for i := range pool {
		if visited[i] {
			continue
		}
		visited[i] = true
		stack := []int{i}
		var comp component
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			comp.tiles = append(comp.tiles, pool[cur])
			for _, nb := range adj[cur] {
				if !visited[nb] {
					visited[nb] = true
					stack = append(stack, nb)
				}
			}
		}
		comps = append(comps, comp)
	}
	return comps
}

// compMelds returns the existing melds that live inside the component.
func compMelds(comp component, melds []meld.Meld) []meld.Meld {
	in := map[uint64]bool{}
	for _, t := range comp.tiles {
		in[t.ID()] = true
	}
	var out []meld.Meld
	for _, m := range melds {
		if m.Len() > 0 && in[m.Tile(0).ID()] {
			out = append(out, m)
		}
	}
	return out
}

type packResult struct {
	score int
	melds []meld.Meld
	ok    bool
}

type componentSolver struct {
	scorer   equity.MeldScorer
	boardIDs map[uint64]bool
	cands    []meld.Meld
	candIDs  [][]uint64
	memo     map[string]packResult
	deadline time.Time
	ctx      context.Context
	expired  bool
}

// solveComponent runs the memoized packing search for one component.
// ok=false means the component should keep its current configuration
// (board coverage impossible, or the budget ran out).
func (s *ExhaustiveStrategy) solveComponent(ctx context.Context, comp component, boardIDs map[uint64]bool) ([]meld.Meld, bool) {
	cands := movegen.AllWithJokers(comp.tiles)
	if len(cands) == 0 {
		// nothing constructible; only fine if no board tile is stranded
		for _, t := range comp.tiles {
			if boardIDs[t.ID()] {
				return nil, false
			}
		}
		return nil, true
	}

	// shuffle before the score sort so ties between equal-score melds
	// break differently from game to game
	frand.Shuffle(len(cands), func(i, j int) {
		cands[i], cands[j] = cands[j], cands[i]
	})
	sort.SliceStable(cands, func(i, j int) bool {
		return s.scorer.ScoreMeld(cands[i]) > s.scorer.ScoreMeld(cands[j])
	})

	cs := &componentSolver{
		scorer:   s.scorer,
		boardIDs: boardIDs,
		cands:    cands,
		candIDs:  make([][]uint64, len(cands)),
		memo:     map[string]packResult{},
		deadline: time.Now().Add(s.ComponentBudget),
		ctx:      ctx,
	}
	for i, c := range cands {
		ids := make([]uint64, c.Len())
		for k, t := range c.Tiles() {
			ids[k] = t.ID()
		}
		cs.candIDs[i] = ids
	}

	res := cs.search(comp.tiles)
	if cs.expired {
		log.Debug().Int("component-tiles", len(comp.tiles)).
			Msg("packing budget exhausted, keeping existing melds")
		return nil, false
	}
	return res.melds, res.ok
}

// search finds the max-score packing of remaining that covers every board
// tile in it. Rack tiles may stay uncovered; they simply stay on the rack.
func (cs *componentSolver) search(remaining []tiles.Tile) packResult {
	if cs.expired || time.Now().After(cs.deadline) || cs.ctx.Err() != nil {
		cs.expired = true
		return packResult{}
	}
	if len(remaining) == 0 {
		return packResult{ok: true}
	}
	key := idsKey(remaining)
	if res, hit := cs.memo[key]; hit {
		return res
	}

	have := map[uint64]bool{}
	for _, t := range remaining {
		have[t.ID()] = true
	}

	// the first uncovered board tile anchors the branch: any packing of
	// this remainder must put it somewhere
	anchor := uint64(0)
	hasAnchor := false
	for _, t := range remaining {
		if cs.boardIDs[t.ID()] {
			anchor = t.ID()
			hasAnchor = true
			break
		}
	}

	best := packResult{}
	if !hasAnchor {
		// all remaining are rack tiles; leaving them is legal
		best = packResult{ok: true}
	}

	for i, cand := range cs.cands {
		ids := cs.candIDs[i]
		if hasAnchor && !containsID(ids, anchor) {
			continue
		}
		if !subset(ids, have) {
			continue
		}
		sub := cs.search(without(remaining, ids))
		if cs.expired {
			return packResult{}
		}
		if !sub.ok {
			continue
		}
		total := cs.scorer.ScoreMeld(cand) + sub.score
		if !best.ok || total > best.score {
			best = packResult{
				score: total,
				melds: append([]meld.Meld{cand}, sub.melds...),
				ok:    true,
			}
		}
	}

	cs.memo[key] = best
	return best
}

func containsID(ids []uint64, id uint64) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}

func subset(ids []uint64, have map[uint64]bool) bool {
	for _, id := range ids {
		if !have[id] {
			return false
		}
	}
	return true
}

func without(remaining []tiles.Tile, ids []uint64) []tiles.Tile {
	out := make([]tiles.Tile, 0, len(remaining)-len(ids))
	for _, t := range remaining {
		if !containsID(ids, t.ID()) {
			out = append(out, t)
		}
	}
	return out
}

// idsKey is the memo key: the sorted identity multiset of the remainder.
func idsKey(remaining []tiles.Tile) string {
	ids := make([]uint64, len(remaining))
	for i, t := range remaining {
		ids[i] = t.ID()
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	var sb strings.Builder
	for _, id := range ids {
		sb.WriteString(strconv.FormatUint(id, 36))
		sb.WriteByte('.')
	}
	return sb.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
