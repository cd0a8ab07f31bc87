package block

import (
	"github.com/plaquette/pangraph/cigar"
	"github.com/plaquette/pangraph/seq"
)

// ReverseComplement returns a new block representing b's alignment read on
// the opposite strand (spec.md §4.3). Every coordinate system flips:
//
//   - consensus position p (1-based, out of L) becomes L-p+1.
//   - a gap cluster anchored after old position p (spec.md §9, open question
//     1 extends this to p==0, a cluster before the first column) becomes a
//     cluster anchored after new position L-p. This falls out of the same
//     flip: old column p+1 lands at new column L-p, so the run that used to
//     sit between old columns p and p+1 now sits between new columns L-p and
//     L-p+1, i.e. it is "after" L-p.
//   - within a gap cluster of width g, the bytes at old offsets
//     [off, off+len(s)) (0-indexed from the anchor) occupy new offsets
//     [g-off-len(s), g-off), reverse-complemented: reversing the whole
//     sequence also reverses the order of bytes inside every gap run, not
//     just the order of runs relative to each other.
//
// ReverseComplement(ReverseComplement(b)) reproduces b's per-member
// sequences exactly (spec.md §8 property P3); the offset arithmetic above is
// the resolution of that round-trip requirement, not the literal
// "gaps[locus] - off + 1" phrased in spec.md §9, which does not account for
// runs longer than one inserted base.
func ReverseComplement(b *Block) *Block {
	L := Pos(b.Length())
	out := New(seq.ReverseComplement(b.Consensus))
	out.ID = b.ID

	for p, g := range b.Gaps {
		out.Gaps[L-p] = g
	}

	for _, n := range b.Members() {
		out.Mutate[n] = cigar.SNPMap{}
		out.Insert[n] = cigar.InsMap{}
		out.Delete[n] = cigar.DelMap{}

		for p, nuc := range b.Mutate[n] {
			out.Mutate[n][L-p+1] = seq.ComplementByte(nuc)
		}
		for p, length := range b.Delete[n] {
			// Old run covers columns [p, p+length). Its reverse image covers
			// new columns [L-(p+length-1)+1, L-p+1] = [L-p-length+2, L-p+1].
			out.Delete[n][L-p-length+2] = length
		}
		for k, s := range b.Insert[n] {
			g := b.Gaps[k.Pos]
			newOff := g - k.Off - len(s)
			out.Insert[n][cigar.InsKey{Pos: L - k.Pos, Off: newOff}] = seq.ReverseComplement(s)
		}
	}
	return out
}
