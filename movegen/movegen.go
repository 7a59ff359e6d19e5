// Package movegen enumerates every group and run constructible from an
// unordered pool of tiles. Generation is pure: the pool is never mutated,
// and emitted melds reference the pool's own tile instances so a caller can
// trace each required tile back to its source.
package movegen

import (
	"github.com/samber/lo"

	"github.com/joerivera/rummage/meld"
	"github.com/joerivera/rummage/tiles"
)

// All enumerates every group and run over the real tiles in the pool.
// Jokers in the pool are ignored; see AllWithJokers.
func All(pool []tiles.Tile) []meld.Meld {
	return append(Groups(pool), Runs(pool)...)
}

// AllWithJokers enumerates everything All does, plus melds that spend one
// of the pool's jokers: bridging a single rank hole in a run, or completing
// a group that has exactly two distinct real colors.
func AllWithJokers(pool []tiles.Tile) []meld.Meld {
	out := All(pool)
	joker, ok := firstJoker(pool)
	if !ok {
		return out
	}
	out = append(out, jokerGroups(pool, joker)...)
	out = append(out, jokerRuns(pool, joker)...)
	return out
}

func firstJoker(pool []tiles.Tile) (tiles.Tile, bool) {
	return lo.Find(pool, func(t tiles.Tile) bool { return t.IsJoker() })
}

// Groups buckets real tiles by rank and emits every 3- and 4-combination
// that validates (duplicate colors inside a bucket are weeded out by the
// validity check).
func Groups(pool []tiles.Tile) []meld.Meld {
	var out []meld.Meld
	for _, bucket := range rankBuckets(pool) {
		if len(bucket) >= 3 {
			forEachCombination(bucket, 3, func(combo []tiles.Tile) {
				if m := meld.New(combo...); m.Valid() {
					out = append(out, m)
				}
			})
		}
		if len(bucket) >= 4 {
			forEachCombination(bucket, 4, func(combo []tiles.Tile) {
				if m := meld.New(combo...); m.Valid() {
					out = append(out, m)
				}
			})
		}
	}
	return out
}

// Runs buckets real tiles by color and emits every contiguous window of
// length >= 3. Once a window starting at i fails, no longer window starting
// at i can succeed, so the scan moves to the next start index.
func Runs(pool []tiles.Tile) []meld.Meld {
	var out []meld.Meld
	for _, bucket := range colorBuckets(pool) {
		for i := 0; i < len(bucket); i++ {
			for j := i + 2; j < len(bucket); j++ {
				m := meld.New(bucket[i : j+1]...)
				if !m.Valid() {
					break
				}
				out = append(out, m)
			}
		}
	}
	return out
}

// jokerGroups emits pair-plus-joker groups for every two-distinct-color
// pair within a rank bucket.
func jokerGroups(pool []tiles.Tile, joker tiles.Tile) []meld.Meld {
	var out []meld.Meld
	for _, bucket := range rankBuckets(pool) {
		if len(bucket) < 2 {
			continue
		}
		forEachCombination(bucket, 2, func(combo []tiles.Tile) {
			if combo[0].Color() == combo[1].Color() {
				return
			}
			if m := meld.New(combo[0], combo[1], joker); m.Valid() {
				out = append(out, m)
			}
		})
	}
	return out
}

// jokerRuns emits windows whose real tiles leave exactly one rank hole of
// size one for the joker to bridge. A two-tile window with one hole also
// qualifies (e.g. R5 R7 + joker).
func jokerRuns(pool []tiles.Tile, joker tiles.Tile) []meld.Meld {
	var out []meld.Meld
	for _, bucket := range colorBuckets(pool) {
		for i := 0; i < len(bucket); i++ {
			for j := i + 1; j < len(bucket); j++ {
				window := bucket[i : j+1]
				span := window[len(window)-1].Rank() - window[0].Rank() + 1
				holes := span - len(window)
				if holes > 1 {
					break
				}
				if holes != 1 || len(window)+1 < meld.MinSize {
					continue
				}
				m := meld.New(append(append([]tiles.Tile(nil), window...), joker)...)
				if m.Valid() {
					out = append(out, m)
				}
			}
		}
	}
	return out
}

func rankBuckets(pool []tiles.Tile) map[int][]tiles.Tile {
	buckets := make(map[int][]tiles.Tile)
	for _, t := range pool {
		if t.IsJoker() {
			continue
		}
		buckets[t.Rank()] = append(buckets[t.Rank()], t)
	}
	return buckets
}

// colorBuckets buckets real tiles by color, rank-sorted, with duplicate
// ranks dropped (a second copy of the same tile can never extend the same
// run, and keeping it would trip the window pruning on a fake gap).
func colorBuckets(pool []tiles.Tile) map[tiles.Color][]tiles.Tile {
	buckets := make(map[tiles.Color][]tiles.Tile)
	for _, t := range pool {
		if t.IsJoker() {
			continue
		}
		buckets[t.Color()] = append(buckets[t.Color()], t)
	}
	for color, bucket := range buckets {
		tiles.Sort(bucket)
		deduped := bucket[:0]
		for _, t := range bucket {
			if len(deduped) > 0 && t.Rank() == deduped[len(deduped)-1].Rank() {
				continue
			}
			deduped = append(deduped, t)
		}
		buckets[color] = deduped
	}
	return buckets
}

// forEachCombination visits every k-combination of ts. The visited slice
// is reused between calls; visitors must copy if they keep it.
func forEachCombination(ts []tiles.Tile, k int, visit func([]tiles.Tile)) {
	combo := make([]tiles.Tile, k)
	var walk func(start, depth int)
	walk = func(start, depth int) {
		if depth == k {
			visit(combo)
			return
		}
		for i := start; i <= len(ts)-(k-depth); i++ {
			combo[depth] = ts[i]
			walk(i+1, depth+1)
		}
	}
	walk(0, 0)
}
