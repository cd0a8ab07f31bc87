package block

import (
	"github.com/pkg/errors"

	"github.com/plaquette/pangraph/ivl"
	"github.com/plaquette/pangraph/seq"
)

// Validate checks spec.md §3 invariants 1-5 against b's current state,
// independent of any mutating operation. It is the free-standing
// sanity-checker role markduplicates/validate.go plays for duplicate-marking
// output: something a test, or combine's own post-condition check, can call
// without going through append!/reconsensus! themselves.
func Validate(b *Block) error {
	L := b.Length()

	members := map[NodeID]bool{}
	for n := range b.Mutate {
		members[n] = true
	}
	// Invariant 1: mutate/insert/delete share the same key set.
	if len(b.Insert) != len(members) || len(b.Delete) != len(members) {
		return errors.Wrap(ErrInvariantViolation, "block.Validate: mutate/insert/delete key sets differ in size")
	}
	for n := range members {
		if _, ok := b.Insert[n]; !ok {
			return errors.Wrapf(ErrInvariantViolation, "block.Validate: node %v missing from insert", n)
		}
		if _, ok := b.Delete[n]; !ok {
			return errors.Wrapf(ErrInvariantViolation, "block.Validate: node %v missing from delete", n)
		}
	}

	for n := range members {
		for p := range b.Mutate[n] {
			if p < 1 || p > L {
				return errors.Wrapf(ErrInvariantViolation, "block.Validate: node %v snp at %d out of [1,%d]", n, p, L)
			}
		}
		// A member's deletion runs must be pairwise disjoint: two entries
		// covering the same consensus column would be an ambiguous encoding
		// of "how much of this column is gone" (spec.md §4.1's interval set).
		dels := ivl.NewSet()
		for p, length := range b.Delete[n] {
			if p < 1 || p > L {
				return errors.Wrapf(ErrInvariantViolation, "block.Validate: node %v del at %d out of [1,%d]", n, p, L)
			}
			if length < 1 || p+length-1 > L {
				return errors.Wrapf(ErrInvariantViolation, "block.Validate: node %v del at %d length %d runs past end (L=%d)", n, p, length, L)
			}
			run := ivl.New(p, p+Pos(length))
			if !dels.DisjointFrom(run) {
				return errors.Wrapf(ErrInvariantViolation, "block.Validate: node %v has overlapping deletion runs at %d", n, p)
			}
			dels.Add(run)
		}
		for k, s := range b.Insert[n] {
			g, ok := b.Gaps[k.Pos]
			if !ok {
				return errors.Wrapf(ErrInvariantViolation, "block.Validate: node %v insert at %d has no gap cluster", n, k.Pos)
			}
			if k.Off < 0 || k.Off+len(s) > g {
				return errors.Wrapf(ErrInvariantViolation, "block.Validate: node %v insert at (%d,%d) length %d overruns gap cluster of size %d", n, k.Pos, k.Off, len(s), g)
			}
		}
	}

	// Invariant 4: round-tripping gaps out of the aligned reconstruction
	// reproduces the ungapped reconstruction, for every member.
	for n := range members {
		gapped, err := b.SequenceOf(n, true)
		if err != nil {
			return errors.Wrapf(err, "block.Validate: node %v gapped sequence", n)
		}
		ungapped, err := b.SequenceOf(n, false)
		if err != nil {
			return errors.Wrapf(err, "block.Validate: node %v ungapped sequence", n)
		}
		if string(seq.StripGaps(gapped)) != string(ungapped) {
			return errors.Wrapf(ErrInvariantViolation, "block.Validate: node %v gapped/ungapped reconstructions disagree", n)
		}
	}

	// Invariant 5: depth-1 blocks carry no edits for their sole member.
	if len(members) == 1 {
		for n := range members {
			if len(b.Mutate[n]) != 0 || len(b.Insert[n]) != 0 || len(b.Delete[n]) != 0 {
				return errors.Wrapf(ErrInvariantViolation, "block.Validate: depth-1 node %v carries edits", n)
			}
		}
	}

	return nil
}
