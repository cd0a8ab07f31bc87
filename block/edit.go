package block

import (
	"github.com/pkg/errors"

	"github.com/plaquette/pangraph/cigar"
)

// validateEdits checks spec.md §3 invariants 2-3 for a single member's
// proposed edits against this block's current consensus/gap shape: every
// referenced consensus position lies in [1, L], deletions don't run past
// the end, and every insertion fits inside its gap cluster.
func (b *Block) validateEdits(snp cigar.SNPMap, ins cigar.InsMap, del cigar.DelMap) error {
	L := b.Length()
	for p := range snp {
		if p < 1 || p > L {
			return errors.Wrapf(ErrInvariantViolation, "snp position %d out of [1,%d]", p, L)
		}
	}
	for p, length := range del {
		if p < 1 || p > L {
			return errors.Wrapf(ErrInvariantViolation, "del position %d out of [1,%d]", p, L)
		}
		if length < 1 || p+length-1 > L {
			return errors.Wrapf(ErrInvariantViolation, "del at %d length %d runs past end (L=%d)", p, length, L)
		}
	}
	for k, s := range ins {
		g, ok := b.Gaps[k.Pos]
		if !ok {
			return errors.Wrapf(ErrInvariantViolation, "insert at consensus position %d has no gap cluster", k.Pos)
		}
		if k.Off < 0 || k.Off+len(s) > g {
			return errors.Wrapf(ErrInvariantViolation, "insert at (%d,%d) length %d overruns gap cluster of size %d", k.Pos, k.Off, len(s), g)
		}
	}
	return nil
}

// Append registers node as a new member of b with the given edits. It fails
// with ErrDuplicateMember if node is already present, or ErrInvariantViolation
// if any edit is out of range (spec.md §4.4 "append!").
func Append(b *Block, node NodeID, snp cigar.SNPMap, ins cigar.InsMap, del cigar.DelMap) error {
	if b.hasMember(node) {
		return errors.Wrapf(ErrDuplicateMember, "block.Append: node %v", node)
	}
	if err := b.validateEdits(snp, ins, del); err != nil {
		return err
	}
	b.Mutate[node] = cloneSNP(snp)
	b.Insert[node] = cloneIns(ins)
	b.Delete[node] = cloneDel(del)
	return nil
}

// Swap relabels the single member node old to new (spec.md §4.4 "swap!").
func Swap(b *Block, old, new_ NodeID) error {
	if !b.hasMember(old) {
		return errors.Wrapf(ErrUnknownMember, "block.Swap: node %v", old)
	}
	if old == new_ {
		return nil
	}
	if b.hasMember(new_) {
		return errors.Wrapf(ErrDuplicateMember, "block.Swap: target node %v already present", new_)
	}
	b.Mutate[new_] = b.Mutate[old]
	b.Insert[new_] = b.Insert[old]
	b.Delete[new_] = b.Delete[old]
	delete(b.Mutate, old)
	delete(b.Insert, old)
	delete(b.Delete, old)
	return nil
}

// SwapMany coalesces the member nodes olds into a single member new_,
// merging their edit maps. It fails with ErrEditCollision if two of the
// olds carry an insertion at the same (position, offset) key, since which
// one should win is ambiguous (spec.md §4.4 "swap!").
func SwapMany(b *Block, olds []NodeID, new_ NodeID) error {
	if len(olds) == 0 {
		return errors.Wrap(ErrInvariantViolation, "block.SwapMany: no source nodes")
	}
	for _, n := range olds {
		if !b.hasMember(n) {
			return errors.Wrapf(ErrUnknownMember, "block.SwapMany: node %v", n)
		}
	}
	if b.hasMember(new_) {
		isSource := false
		for _, n := range olds {
			if n == new_ {
				isSource = true
			}
		}
		if !isSource {
			return errors.Wrapf(ErrDuplicateMember, "block.SwapMany: target node %v already present", new_)
		}
	}

	mergedSNP := cigar.SNPMap{}
	mergedIns := cigar.InsMap{}
	mergedDel := cigar.DelMap{}
	for _, n := range olds {
		for p, nuc := range b.Mutate[n] {
			if existing, ok := mergedSNP[p]; ok && existing != nuc {
				return errors.Wrapf(ErrEditCollision, "block.SwapMany: snp collision at %d", p)
			}
			mergedSNP[p] = nuc
		}
		for k, s := range b.Insert[n] {
			if _, ok := mergedIns[k]; ok {
				return errors.Wrapf(ErrEditCollision, "block.SwapMany: insert collision at (%d,%d)", k.Pos, k.Off)
			}
			mergedIns[k] = s
		}
		for p, length := range b.Delete[n] {
			if existing, ok := mergedDel[p]; ok && existing != length {
				return errors.Wrapf(ErrEditCollision, "block.SwapMany: del collision at %d", p)
			}
			mergedDel[p] = length
		}
	}
	for _, n := range olds {
		delete(b.Mutate, n)
		delete(b.Insert, n)
		delete(b.Delete, n)
	}
	b.Mutate[new_] = mergedSNP
	b.Insert[new_] = mergedIns
	b.Delete[new_] = mergedDel
	return nil
}

func cloneSNP(m cigar.SNPMap) cigar.SNPMap {
	out := make(cigar.SNPMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneIns(m cigar.InsMap) cigar.InsMap {
	out := make(cigar.InsMap, len(m))
	for k, v := range m {
		out[k] = append([]byte{}, v...)
	}
	return out
}

func cloneDel(m cigar.DelMap) cigar.DelMap {
	out := make(cigar.DelMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
