package block

import "github.com/pkg/errors"

// Sequence returns the block's consensus bytes (no gaps).
func (b *Block) Sequence() []byte { return append([]byte{}, b.Consensus...) }

// deletedMask returns a length-L boolean slice marking which consensus
// columns are deleted for member n.
func (b *Block) deletedMask(n NodeID) []bool {
	mask := make([]bool, b.Length())
	for start, length := range b.Delete[n] {
		for p := start; p < start+length && p <= b.Length(); p++ {
			mask[p-1] = true
		}
	}
	return mask
}

// gapRow returns the g bytes of the gap cluster following consensus
// position p, for member n, filling in any inserted bytes at their
// recorded offset and '-' everywhere else.
func (b *Block) gapRow(n NodeID, p Pos, g int) []byte {
	row := make([]byte, g)
	for i := range row {
		row[i] = gapByte
	}
	type piece struct {
		off int
		s   []byte
	}
	var pieces []piece
	for k, s := range b.Insert[n] {
		if k.Pos == p {
			pieces = append(pieces, piece{off: k.Off, s: s})
		}
	}
	for _, pc := range pieces {
		for i, c := range pc.s {
			if pc.off+i < g {
				row[pc.off+i] = c
			}
		}
	}
	return row
}

// LengthOf returns the realized sequence length of member n:
// L + sum(inserted bytes) - sum(deleted bytes) (spec.md §4.4 "length(b, node)").
func (b *Block) LengthOf(n NodeID) (int, error) {
	if !b.hasMember(n) {
		return 0, errors.Wrapf(ErrUnknownMember, "block.LengthOf: node %v", n)
	}
	length := b.Length()
	for _, l := range b.Delete[n] {
		length -= l
	}
	for _, s := range b.Insert[n] {
		length += len(s)
	}
	return length, nil
}

// SequenceOf reconstructs member n's bytes. With gapped=false it returns the
// realized (ungapped) sequence, length == LengthOf(n). With gapped=true it
// returns the aligned row: positions outside n's edits match the consensus,
// length == GappedLength() (spec.md §4.4).
func (b *Block) SequenceOf(n NodeID, gapped bool) ([]byte, error) {
	if !b.hasMember(n) {
		return nil, errors.Wrapf(ErrUnknownMember, "block.SequenceOf: node %v", n)
	}
	mask := b.deletedMask(n)
	snp := b.Mutate[n]

	out := make([]byte, 0, b.GappedLength())
	emitGap := func(p Pos) {
		if g, ok := b.Gaps[p]; ok {
			row := b.gapRow(n, p, g)
			if gapped {
				out = append(out, row...)
			} else {
				for _, c := range row {
					if c != gapByte {
						out = append(out, c)
					}
				}
			}
		}
	}
	emitGap(0)
	for p := 1; p <= b.Length(); p++ {
		switch {
		case mask[p-1]:
			if gapped {
				out = append(out, gapByte)
			}
		default:
			if nuc, ok := snp[p]; ok {
				out = append(out, nuc)
			} else {
				out = append(out, b.Consensus[p-1])
			}
		}
		emitGap(p)
	}
	return out, nil
}
