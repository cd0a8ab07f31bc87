package ivl

import (
	"sort"

	"github.com/biogo/store/interval"
	"github.com/pkg/errors"
)

// Set is a sorted, disjoint collection of intervals, the way
// interval.BEDUnion keeps one chromosome's coverage as a sorted
// non-overlapping endpoint list. Add and Union always merge intervals that
// overlap or touch end to end into one stored interval. Set
// exists to serve containment and overlap checks that accumulate one
// interval at a time, such as block.Validate's per-member deletion-run
// disjointness check.
//
// Containment and overlap queries (Which, DisjointFrom) are answered by a
// github.com/biogo/store/interval.IntTree built over the disjoint members,
// the same library kortschak-ins/cmd/ins and kortschak-loopy/cmd/rinse use
// to cull and merge genomic intervals. The tree is rebuilt lazily after Add
// invalidates it, since biogo/store/interval has no incremental insert that
// keeps an interval tree's augmented ranges correct without a fresh
// AdjustRanges pass.
type Set struct {
	ivs  []Interval // sorted by Lo, pairwise disjoint (and non-adjoining)
	tree *interval.IntTree
}

// NewSet returns a Set containing the union of the given intervals.
func NewSet(ivs ...Interval) *Set {
	s := &Set{}
	for _, iv := range ivs {
		s.Add(iv)
	}
	return s
}

// Intervals returns the Set's members in increasing order. The caller must
// not mutate the returned slice.
func (s *Set) Intervals() []Interval { return s.ivs }

// Len returns the number of disjoint intervals currently stored.
func (s *Set) Len() int { return len(s.ivs) }

// Add merges iv into the set, combining it with any interval it overlaps or
// touches.
func (s *Set) Add(iv Interval) {
	if iv.Empty() {
		return
	}
	// Find the first stored interval whose Hi >= iv.Lo: everything before it
	// is strictly to the left and untouched.
	i := sort.Search(len(s.ivs), func(i int) bool { return s.ivs[i].Hi >= iv.Lo })
	j := i
	merged := iv
	for j < len(s.ivs) && s.ivs[j].Lo <= merged.Hi {
		u, ok := merged.Union(s.ivs[j])
		if !ok {
			break
		}
		merged = u
		j++
	}
	tail := append([]Interval{}, s.ivs[j:]...)
	s.ivs = append(s.ivs[:i], merged)
	s.ivs = append(s.ivs, tail...)
	s.tree = nil
}

// Union returns a new Set containing every interval of s and other, merged.
func (s *Set) Union(other *Set) *Set {
	out := NewSet(s.ivs...)
	for _, iv := range other.ivs {
		out.Add(iv)
	}
	return out
}

// Contains reports whether p is covered by some interval in the set.
func (s *Set) Contains(p Pos) bool {
	_, ok := s.Which(Interval{Lo: p, Hi: p + 1})
	return ok
}

// ivlNode adapts Interval to interval.IntInterface so a Set's disjoint
// members can be loaded into a github.com/biogo/store/interval.IntTree.
type ivlNode struct {
	id uintptr
	Interval
}

func (n ivlNode) ID() uintptr { return n.id }

func (n ivlNode) Range() interval.IntRange {
	return interval.IntRange{Start: n.Lo, End: n.Hi}
}

// Overlap reports whether n and b share any position, mirroring
// Interval.Overlaps.
func (n ivlNode) Overlap(b interval.IntRange) bool {
	return n.Lo < b.End && b.Start < n.Hi
}

// queryTree returns the Set's query structure, rebuilding it if Add has
// mutated the set since the last query.
func (s *Set) queryTree() *interval.IntTree {
	if s.tree != nil {
		return s.tree
	}
	t := &interval.IntTree{}
	for i, iv := range s.ivs {
		if err := t.Insert(ivlNode{id: uintptr(i), Interval: iv}, true); err != nil {
			panic(errors.Wrap(err, "ivl.Set: building query tree"))
		}
	}
	t.AdjustRanges()
	s.tree = t
	return s.tree
}

// Which returns the stored interval containing iv in its entirety, if any.
// It answers the "containment query" a caller needs before treating a
// candidate sub-interval as fully inside one already-known region.
func (s *Set) Which(iv Interval) (Interval, bool) {
	if len(s.ivs) == 0 {
		return Interval{}, false
	}
	q := ivlNode{Interval: iv}
	for _, got := range s.queryTree().Get(q) {
		cand := got.(ivlNode).Interval
		if cand.Lo <= iv.Lo && iv.Hi <= cand.Hi {
			return cand, true
		}
	}
	return Interval{}, false
}

// Difference returns the portion of iv not covered by the set.
func (s *Set) Difference(iv Interval) []Interval {
	var out []Interval
	cur := iv.Lo
	for _, stored := range s.ivs {
		if stored.Hi <= cur || stored.Lo >= iv.Hi {
			continue
		}
		if stored.Lo > cur {
			out = append(out, Interval{Lo: cur, Hi: stored.Lo})
		}
		if stored.Hi > cur {
			cur = stored.Hi
		}
	}
	if cur < iv.Hi {
		out = append(out, Interval{Lo: cur, Hi: iv.Hi})
	}
	return out
}

// DisjointFrom reports whether no interval in s overlaps iv.
func (s *Set) DisjointFrom(iv Interval) bool {
	if len(s.ivs) == 0 {
		return true
	}
	return len(s.queryTree().Get(ivlNode{Interval: iv})) == 0
}
