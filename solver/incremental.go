package solver

import (
	"context"
	"sort"

	"github.com/joerivera/rummage/equity"
	"github.com/joerivera/rummage/meld"
	"github.com/joerivera/rummage/movegen"
	"github.com/joerivera/rummage/tiles"
)

// IncrementalStrategy transforms the existing board in four strictly
// sequential phases: joker retrieval, rack-only melds, single-tile
// extensions, and loose-tile scavenging. Each phase is greedy and no phase
// revisits an earlier phase's decisions; the trade is optimality for a
// runtime bounded by construction.
type IncrementalStrategy struct {
	scorer equity.MeldScorer
}

func NewIncrementalStrategy(scorer equity.MeldScorer) *IncrementalStrategy {
	return &IncrementalStrategy{scorer: scorer}
}

func (s *IncrementalStrategy) Name() string { return "incremental" }

// BestMove runs the four phases over the owned working copies and returns
// the resulting meld list only if the rack strictly shrank.
func (s *IncrementalStrategy) BestMove(ctx context.Context, rack []tiles.Tile, melds []meld.Meld) ([]meld.Meld, error) {
	initial := len(rack)
	st := &workState{rack: rack, melds: melds, scorer: s.scorer}

	st.retrieveJokers()
	st.playRackMelds()
	st.extendMelds()
	st.scavengeLooseTiles()

	if len(st.rack) < initial {
		return st.melds, nil
	}
	return nil, nil
}

// workState is the mutable (board, rack) pair a single BestMove invocation
// owns. It may pass through transient invalid board states between the two
// halves of a joker swap but is valid again by the time a phase returns.
type workState struct {
	rack   []tiles.Tile
	melds  []meld.Meld
	scorer equity.MeldScorer
}

func (st *workState) removeRackAt(i int) {
	st.rack = append(st.rack[:i], st.rack[i+1:]...)
}

// phase 1: free jokers embedded in board melds by swapping in the rack
// tile they stand for. At most one swap per meld per invocation so meld
// positions stay coherent.
func (st *workState) retrieveJokers() {
	for mi := range st.melds {
		m := st.melds[mi]
		if !m.HasJoker() {
			continue
		}
		for pos := 0; pos < m.Len(); pos++ {
			joker := m.Tile(pos)
			if !joker.IsJoker() {
				continue
			}
			color, rank, ok := jokerIdentity(m, pos)
			if !ok {
				continue
			}
			ri := findRackTile(st.rack, color, rank)
			if ri == -1 {
				continue
			}
			swapped := m.ReplaceAt(pos, st.rack[ri])
			if !swapped.Valid() {
				continue
			}
			st.melds[mi] = swapped
			// the freed joker takes the played tile's rack slot; rack
			// size is unchanged, so retrieval alone is never progress
			st.rack[ri] = joker
			break
		}
	}
}

// jokerIdentity deduces the (color, rank) the joker at the given canonical
// position stands in for. Ambiguous situations (two adjacent jokers, a
// group missing more than one color) return ok=false and are skipped.
func jokerIdentity(m meld.Meld, pos int) (tiles.Color, int, bool) {
	var real []tiles.Tile
	for _, t := range m.Tiles() {
		if !t.IsJoker() {
			real = append(real, t)
		}
	}
	if len(real) == 0 {
		return 0, 0, false
	}

	if len(real) >= 2 && sameRankAll(real) {
		// group: the joker is the one missing color, if exactly one is
		seen := [tiles.NumColors]bool{}
		for _, t := range real {
			seen[t.Color()] = true
		}
		missing, count := -1, 0
		for c := 0; c < tiles.NumColors; c++ {
			if !seen[c] {
				missing = c
				count++
			}
		}
		if count != 1 {
			return 0, 0, false
		}
		return tiles.Color(missing), real[0].Rank(), true
	}

	// run: read the immediate neighbor in canonical order
	color := real[0].Color()
	if pos > 0 && !m.Tile(pos-1).IsJoker() {
		rank := m.Tile(pos-1).Rank() + 1
		return color, rank, rank <= tiles.MaxRank
	}
	if pos+1 < m.Len() && !m.Tile(pos+1).IsJoker() {
		rank := m.Tile(pos+1).Rank() - 1
		return color, rank, rank >= tiles.MinRank
	}
	return 0, 0, false
}

func sameRankAll(ts []tiles.Tile) bool {
	for _, t := range ts[1:] {
		if t.Rank() != ts[0].Rank() {
			return false
		}
	}
	return true
}

func findRackTile(rack []tiles.Tile, color tiles.Color, rank int) int {
	for i, t := range rack {
		if !t.IsJoker() && t.Color() == color && t.Rank() == rank {
			return i
		}
	}
	return -1
}

// phase 2: play every meld constructible from the rack alone, best score
// first. Greedy with no backtracking: once a candidate's tiles are gone,
// overlapping candidates simply fail to source and are skipped.
func (st *workState) playRackMelds() {
	cands := movegen.AllWithJokers(st.rack)
	st.sortCandidates(cands)
	for _, cand := range cands {
		taken, ok := takeTiles(&st.rack, cand.Tiles())
		if !ok {
			continue
		}
		st.melds = append(st.melds, meld.New(taken...))
	}
}

// phase 3: append single rack tiles onto existing melds. The tentative
// append re-canonicalizes and re-validates; an append that breaks the meld
// is simply not kept. The scan index only advances past tiles that stay,
// so removals never skip an unvisited tile.
func (st *workState) extendMelds() {
	i := 0
	for i < len(st.rack) {
		placed := false
		for mi := range st.melds {
			ext := st.melds[mi].Append(st.rack[i])
			if !ext.Valid() {
				continue
			}
			st.melds[mi] = ext
			st.removeRackAt(i)
			placed = true
			break
		}
		if !placed {
			i++
		}
	}
}

// looseTile is a board tile eligible to leave its oversized donor meld.
type looseTile struct {
	tile  tiles.Tile
	donor int
}

// tileSource says where one required tile of a scavenge candidate comes
// from: a rack index or a loose-list index.
type tileSource struct {
	fromRack bool
	idx      int
}

// phase 4: combine remaining rack tiles with loose tiles from oversized
// melds into brand-new melds. A donor meld never drops below 3 tiles, and
// every new meld must spend at least one rack tile, otherwise it is a
// pointless reshuffle.
func (st *workState) scavengeLooseTiles() {
	if len(st.rack) == 0 {
		return
	}
	var loose []looseTile
	for mi, m := range st.melds {
		if m.Len() <= meld.MinSize {
			continue
		}
		switch m.Kind() {
		case meld.KindGroup:
			for _, t := range m.Tiles() {
				loose = append(loose, looseTile{tile: t, donor: mi})
			}
		case meld.KindRun:
			// only the ends can leave a run without breaking contiguity
			loose = append(loose,
				looseTile{tile: m.Tile(0), donor: mi},
				looseTile{tile: m.Tile(m.Len() - 1), donor: mi})
		}
	}

	pool := append([]tiles.Tile(nil), st.rack...)
	for _, lt := range loose {
		pool = append(pool, lt.tile)
	}

	cands := movegen.AllWithJokers(pool)
	st.sortCandidates(cands)

	consumed := map[uint64]bool{}
	for _, cand := range cands {
		sources, ok := st.planCandidate(cand, loose, consumed)
		if !ok {
			continue
		}
		st.commitCandidate(cand, sources, loose, consumed)
	}
}

// planCandidate sources every required tile, rack first then loose, and
// applies the donor safety check. It mutates nothing; ok=false means the
// candidate is silently rejected.
func (st *workState) planCandidate(cand meld.Meld, loose []looseTile, consumed map[uint64]bool) ([]tileSource, bool) {
	sources := make([]tileSource, 0, cand.Len())
	usedRack := map[int]bool{}
	usedLoose := map[int]bool{}
	perDonor := map[int]int{}
	rackCount := 0

	for _, want := range cand.Tiles() {
		if ri := matchTile(st.rack, want, usedRack); ri != -1 {
			usedRack[ri] = true
			sources = append(sources, tileSource{fromRack: true, idx: ri})
			rackCount++
			continue
		}
		li := matchLoose(loose, want, usedLoose, consumed)
		if li == -1 {
			return nil, false
		}
		usedLoose[li] = true
		sources = append(sources, tileSource{idx: li})
		perDonor[loose[li].donor]++
	}

	// a meld built purely from scavenged board tiles moves nothing forward
	if rackCount == 0 {
		return nil, false
	}
	// never shrink a donor below legality
	for donor, claimed := range perDonor {
		if st.melds[donor].Len()-claimed < meld.MinSize {
			return nil, false
		}
	}
	return sources, true
}

// commitCandidate pulls the planned tiles out of their donors and the
// rack and appends the new meld. Donors stay valid throughout: groups
// tolerate any removal and runs only ever donate their ends.
func (st *workState) commitCandidate(cand meld.Meld, sources []tileSource, loose []looseTile, consumed map[uint64]bool) {
	built := make([]tiles.Tile, 0, cand.Len())
	var rackIdxs []int

	for _, src := range sources {
		if src.fromRack {
			built = append(built, st.rack[src.idx])
			rackIdxs = append(rackIdxs, src.idx)
			continue
		}
		lt := loose[src.idx]
		donorAfter, removed := st.melds[lt.donor].Remove(lt.tile.ID())
		if !removed {
			// the plan guaranteed presence; nothing sane to do here
			continue
		}
		st.melds[lt.donor] = donorAfter
		consumed[lt.tile.ID()] = true
		built = append(built, lt.tile)
	}

	sort.Sort(sort.Reverse(sort.IntSlice(rackIdxs)))
	for _, i := range rackIdxs {
		st.removeRackAt(i)
	}
	st.melds = append(st.melds, meld.New(built...))
}

// matchTile finds a rack tile for want: identity match beats value match
// so pool-sourced instances land back on themselves, and jokers only ever
// match jokers.
func matchTile(rack []tiles.Tile, want tiles.Tile, used map[int]bool) int {
	for i, t := range rack {
		if !used[i] && t.Same(want) {
			return i
		}
	}
	for i, t := range rack {
		if !used[i] && t.EqualValue(want) {
			return i
		}
	}
	return -1
}

func matchLoose(loose []looseTile, want tiles.Tile, used map[int]bool, consumed map[uint64]bool) int {
	for i, lt := range loose {
		if !used[i] && !consumed[lt.tile.ID()] && lt.tile.Same(want) {
			return i
		}
	}
	for i, lt := range loose {
		if !used[i] && !consumed[lt.tile.ID()] && lt.tile.EqualValue(want) {
			return i
		}
	}
	return -1
}

// takeTiles removes the candidate's required tiles from the rack, matching
// identity first then face value. All-or-nothing: on any miss the rack is
// untouched and ok is false. The returned instances are the actual rack
// tiles taken, in candidate order.
func takeTiles(rack *[]tiles.Tile, wants []tiles.Tile) ([]tiles.Tile, bool) {
	used := map[int]bool{}
	idxs := make([]int, 0, len(wants))
	for _, want := range wants {
		i := matchTile(*rack, want, used)
		if i == -1 {
			return nil, false
		}
		used[i] = true
		idxs = append(idxs, i)
	}
	taken := make([]tiles.Tile, len(idxs))
	for k, i := range idxs {
		taken[k] = (*rack)[i]
	}
	sort.Sort(sort.Reverse(sort.IntSlice(idxs)))
	for _, i := range idxs {
		*rack = append((*rack)[:i], (*rack)[i+1:]...)
	}
	return taken, true
}

func (st *workState) sortCandidates(cands []meld.Meld) {
	sort.SliceStable(cands, func(i, j int) bool {
		return st.scorer.ScoreMeld(cands[i]) > st.scorer.ScoreMeld(cands[j])
	})
}
