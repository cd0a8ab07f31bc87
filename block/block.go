// Package block implements the compressed multi-genome alignment unit at
// the center of the pangenome graph: a consensus sequence, a gap map, and
// per-member edit maps, together with the coordinate engine, reconsensus,
// and combine operations that keep the encoding canonical as blocks merge
// (spec.md §3-§4).
package block

import (
	"fmt"
	"sort"

	"github.com/dgryski/go-farm"
	"github.com/pkg/errors"

	"github.com/plaquette/pangraph/cigar"
)

// NodeID identifies one genome's occurrence inside a block's member set. The
// outer graph this package plugs into (spec.md §9) is the NodeID minting
// authority, assigning them as it threads Nodes through Blocks; nothing in
// this package's scope (consensus, edits, slicing, combine) issues a NodeID
// itself, so there is no arena here for this package to call.
type NodeID uint64

// Pos is a 1-based consensus position.
type Pos = cigar.Pos

// Block is the compressed multi-genome alignment unit described in
// spec.md §3. The zero value is not meaningful; use New, Slice, or Concat.
type Block struct {
	ID        string
	Consensus []byte
	Gaps      map[Pos]int
	Mutate    map[NodeID]cigar.SNPMap
	Insert    map[NodeID]cigar.InsMap
	Delete    map[NodeID]cigar.DelMap
}

// contentID derives a default, deterministic block ID from its consensus
// bytes, the way fusion/kmer_index.go hashes k-mers with farm.Hash64WithSeed
// rather than handing out an incrementing counter: two blocks built from the
// same bytes get the same default ID, which is convenient for the
// accuracy-harness's bit-exact JSON comparisons (spec.md §6).
func contentID(consensus []byte) string {
	h := farm.Hash64WithSeed(consensus, 0)
	return fmt.Sprintf("%016x", h)
}

// New returns a depth-0 block wrapping consensus as-is, with no members and
// no gaps (spec.md §4.4 "new(consensus)").
func New(consensus []byte) *Block {
	return &Block{
		ID:        contentID(consensus),
		Consensus: append([]byte{}, consensus...),
		Gaps:      map[Pos]int{},
		Mutate:    map[NodeID]cigar.SNPMap{},
		Insert:    map[NodeID]cigar.InsMap{},
		Delete:    map[NodeID]cigar.DelMap{},
	}
}

// Depth returns the number of member nodes.
func (b *Block) Depth() int { return len(b.Mutate) }

// Length returns the consensus length (not the alignment/gapped length).
func (b *Block) Length() int { return len(b.Consensus) }

// Members returns the block's member nodes in a stable (sorted) order.
func (b *Block) Members() []NodeID {
	out := make([]NodeID, 0, len(b.Mutate))
	for n := range b.Mutate {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (b *Block) hasMember(n NodeID) bool {
	_, ok := b.Mutate[n]
	return ok
}

// Slice returns a new block whose consensus is b.Consensus[lo-1:hi-1] (lo,hi
// are 1-based, half-open, i.e. the interval [lo, hi) of 1-based consensus
// positions). Every edit whose consensus key lies in the interval is kept
// and shifted by -(lo-1); the gap map is filtered the same way. Requires
// 1 <= lo < hi <= L+1 (spec.md §4.4 "slice").
func Slice(b *Block, lo, hi Pos) (*Block, error) {
	L := b.Length()
	if lo < 1 || hi <= lo || hi > L+1 {
		return nil, errors.Wrapf(ErrInvariantViolation, "block.Slice: interval [%d,%d) out of range for length %d", lo, hi, L)
	}
	shift := lo - 1
	out := New(b.Consensus[lo-1 : hi-1])
	out.ID = contentID(out.Consensus)

	// A gap cluster anchored at consensus position 0 precedes the whole
	// block (spec.md §9, open question 1); it only belongs to this slice
	// when the slice itself starts at the block's first column.
	anchored := func(p Pos) bool {
		if p == 0 {
			return lo == 1
		}
		return p >= lo && p < hi
	}

	for p, g := range b.Gaps {
		if anchored(p) {
			out.Gaps[p-shift] = g
		}
	}
	for n := range b.Mutate {
		out.Mutate[n] = cigar.SNPMap{}
		out.Insert[n] = cigar.InsMap{}
		out.Delete[n] = cigar.DelMap{}
		for p, nuc := range b.Mutate[n] {
			if p >= lo && p < hi {
				out.Mutate[n][p-shift] = nuc
			}
		}
		for k, s := range b.Insert[n] {
			if anchored(k.Pos) {
				out.Insert[n][cigar.InsKey{Pos: k.Pos - shift, Off: k.Off}] = s
			}
		}
		for p, length := range b.Delete[n] {
			if p >= lo && p < hi {
				out.Delete[n][p-shift] = length
			}
		}
	}
	return out, nil
}

// Concat concatenates blocks that all share the exact same member-node set
// (spec.md §4.4 "concat"). It fails with ErrMemberSetMismatch otherwise.
func Concat(blocks ...*Block) (*Block, error) {
	if len(blocks) == 0 {
		return nil, errors.Wrap(ErrInvariantViolation, "block.Concat: no blocks given")
	}
	first := blocks[0].Members()
	for _, b := range blocks[1:] {
		if !sameMembers(first, b.Members()) {
			return nil, errors.Wrap(ErrMemberSetMismatch, "block.Concat: member sets differ")
		}
	}

	var consensus []byte
	for _, b := range blocks {
		consensus = append(consensus, b.Consensus...)
	}
	out := New(consensus)
	for _, n := range first {
		out.Mutate[n] = cigar.SNPMap{}
		out.Insert[n] = cigar.InsMap{}
		out.Delete[n] = cigar.DelMap{}
	}

	shift := 0
	for _, b := range blocks {
		for p, g := range b.Gaps {
			// Sum rather than overwrite: a trailing gap cluster at the end
			// of one block and a leading one (position 0) at the start of
			// the next can describe the same physical seam.
			out.Gaps[p+shift] += g
		}
		for _, n := range first {
			for p, nuc := range b.Mutate[n] {
				out.Mutate[n][p+shift] = nuc
			}
			for k, s := range b.Insert[n] {
				out.Insert[n][cigar.InsKey{Pos: k.Pos + shift, Off: k.Off}] = s
			}
			for p, length := range b.Delete[n] {
				out.Delete[n][p+shift] = length
			}
		}
		shift += b.Length()
	}
	return out, nil
}

func sameMembers(a, b []NodeID) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
