package block

import (
	"bytes"

	"github.com/biogo/hts/sam"
	"github.com/pkg/errors"

	"github.com/plaquette/pangraph/cigar"
	"github.com/plaquette/pangraph/ivl"
)

// Orientation records which strand of the query block an Alignment places
// against the reference.
type Orientation int

const (
	Forward Orientation = iota
	Reverse
)

// Alignment is the pairwise-alignment record combine consumes (spec.md §6).
// It is produced by a collaborator outside this package's scope.
type Alignment struct {
	Cigar       sam.Cigar
	Orientation Orientation
	QryInterval ivl.Interval
	RefInterval ivl.Interval
}

// ChildKind tags the three possible outcomes of combine (spec.md §4.7).
type ChildKind int

const (
	RefOnly ChildKind = iota
	QryOnly
	Shared
)

// Child is one block produced by Combine, tagged with how it relates to the
// two parents.
type Child struct {
	Kind  ChildKind
	Block *Block
}

// Combine fuses query block q and reference block r along alignment a,
// producing the ordered list of ref-only, qry-only, and shared children
// (spec.md §4.7). Children are ordered by position along the reference; a
// query-only flank, which has no reference position of its own, always
// follows the reference-only flank at the same end: ref-only prefix,
// qry-only prefix, segments, ref-only suffix, qry-only suffix.
func Combine(q, r *Block, a Alignment, maxgap int) ([]Child, error) {
	if a.RefInterval.Lo < 1 || a.RefInterval.Empty() || a.RefInterval.Hi > r.Length()+1 {
		return nil, errors.Wrapf(ErrAlignmentOutOfRange, "block.Combine: ref interval %v out of range for length %d", a.RefInterval, r.Length())
	}
	if a.QryInterval.Lo < 1 || a.QryInterval.Empty() || a.QryInterval.Hi > q.Length()+1 {
		return nil, errors.Wrapf(ErrAlignmentOutOfRange, "block.Combine: qry interval %v out of range for length %d", a.QryInterval, q.Length())
	}

	qeff := q
	qIv := a.QryInterval
	if a.Orientation == Reverse {
		qeff = ReverseComplement(q)
		L := Pos(q.Length())
		qIv = ivl.New(L-a.QryInterval.Hi+2, L-a.QryInterval.Lo+2)
	}

	segs, err := cigar.Partition(a.Cigar, qeff.Consensus, r.Consensus, qIv.Lo, a.RefInterval.Lo, maxgap)
	if err != nil {
		return nil, errors.Wrap(err, "block.Combine")
	}

	var children []Child

	if a.RefInterval.Lo > 1 {
		pre, err := Slice(r, 1, a.RefInterval.Lo)
		if err != nil {
			return nil, errors.Wrap(err, "block.Combine: ref-only prefix")
		}
		children = append(children, Child{RefOnly, pre})
	}
	if qIv.Lo > 1 {
		pre, err := Slice(qeff, 1, qIv.Lo)
		if err != nil {
			return nil, errors.Wrap(err, "block.Combine: qry-only prefix")
		}
		children = append(children, Child{QryOnly, pre})
	}

	for _, seg := range segs {
		switch seg.Kind() {
		case cigar.RefOnly:
			blk, err := Slice(r, seg.Ref.Lo, seg.Ref.Hi)
			if err != nil {
				return nil, errors.Wrap(err, "block.Combine: ref-only segment")
			}
			children = append(children, Child{RefOnly, blk})
		case cigar.QryOnly:
			blk, err := Slice(qeff, seg.Qry.Lo, seg.Qry.Hi)
			if err != nil {
				return nil, errors.Wrap(err, "block.Combine: qry-only segment")
			}
			children = append(children, Child{QryOnly, blk})
		case cigar.Shared:
			blk, err := buildShared(qeff, r, seg)
			if err != nil {
				return nil, errors.Wrap(err, "block.Combine: shared segment")
			}
			children = append(children, Child{Shared, blk})
		}
	}

	if a.RefInterval.Hi <= r.Length() {
		post, err := Slice(r, a.RefInterval.Hi, r.Length()+1)
		if err != nil {
			return nil, errors.Wrap(err, "block.Combine: ref-only suffix")
		}
		children = append(children, Child{RefOnly, post})
	}
	if qIv.Hi <= qeff.Length() {
		post, err := Slice(qeff, qIv.Hi, qeff.Length()+1)
		if err != nil {
			return nil, errors.Wrap(err, "block.Combine: qry-only suffix")
		}
		children = append(children, Child{QryOnly, post})
	}

	return children, nil
}

// buildShared implements spec.md §4.7 steps 1-4 for one shared segment: slice
// both parents, fold the segment's query-vs-reference edits into every query
// member, seed the merged gap map from the new insertions those edits
// introduce, union the member sets, and reconsensus the result.
func buildShared(qeff, r *Block, seg cigar.Segment) (*Block, error) {
	qSlice, err := Slice(qeff, seg.Qry.Lo, seg.Qry.Hi)
	if err != nil {
		return nil, err
	}
	rSlice, err := Slice(r, seg.Ref.Lo, seg.Ref.Hi)
	if err != nil {
		return nil, err
	}
	for _, n := range qSlice.Members() {
		if rSlice.hasMember(n) {
			return nil, errors.Wrapf(ErrMemberSetMismatch, "block.Combine: node %v present in both parents", n)
		}
	}

	for _, n := range qSlice.Members() {
		if err := unionEdits(qSlice, n, seg.SNP, seg.Ins, seg.Del); err != nil {
			return nil, err
		}
	}

	out := New(seg.Consensus)

	for p, g := range rSlice.Gaps {
		out.Gaps[p] = g
	}
	for _, n := range qSlice.Members() {
		for k, s := range qSlice.Insert[n] {
			if need := k.Off + len(s); out.Gaps[k.Pos] < need {
				out.Gaps[k.Pos] = need
			}
		}
	}

	for _, n := range rSlice.Members() {
		out.Mutate[n] = rSlice.Mutate[n]
		out.Insert[n] = rSlice.Insert[n]
		out.Delete[n] = rSlice.Delete[n]
	}
	for _, n := range qSlice.Members() {
		out.Mutate[n] = qSlice.Mutate[n]
		out.Insert[n] = qSlice.Insert[n]
		out.Delete[n] = qSlice.Delete[n]
	}

	Reconsensus(out)
	return out, nil
}

// unionEdits merges snp/ins/del into node n's edit maps on b, failing with
// ErrEditCollision if an existing entry disagrees (spec.md §4.7 step 2).
func unionEdits(b *Block, n NodeID, snp cigar.SNPMap, ins cigar.InsMap, del cigar.DelMap) error {
	for p, nuc := range snp {
		if existing, ok := b.Mutate[n][p]; ok && existing != nuc {
			return errors.Wrapf(ErrEditCollision, "block.Combine: snp collision for node %v at %d", n, p)
		}
		b.Mutate[n][p] = nuc
	}
	for k, s := range ins {
		if existing, ok := b.Insert[n][k]; ok && !bytes.Equal(existing, s) {
			return errors.Wrapf(ErrEditCollision, "block.Combine: insert collision for node %v at (%d,%d)", n, k.Pos, k.Off)
		}
		b.Insert[n][k] = append([]byte{}, s...)
	}
	for p, length := range del {
		if existing, ok := b.Delete[n][p]; ok && existing != length {
			return errors.Wrapf(ErrEditCollision, "block.Combine: delete collision for node %v at %d", n, p)
		}
		b.Delete[n][p] = length
	}
	return nil
}
