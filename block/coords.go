package block

// Xi implements the C -> G coordinate translation of spec.md §4.5:
// Xi(x) = x + sum_{p < x} gaps[p]. x may range over [1, L+1], where L+1
// denotes the position just past the last consensus column.
func (b *Block) Xi(x Pos) Pos {
	total := x
	for p, g := range b.Gaps {
		if p < x {
			total += g
		}
	}
	return total
}

// GappedLength returns L + sum(gaps), the total width of the gapped
// alignment.
func (b *Block) GappedLength() int {
	total := b.Length()
	for _, g := range b.Gaps {
		total += g
	}
	return total
}

// SequenceGapped returns the consensus threaded with gap-byte runs from the
// gap map (spec.md §4.4 "sequence(b; gaps=true)"). Gaps[0], if present, is a
// cluster preceding the first consensus column (spec.md §9, open question 1).
func (b *Block) SequenceGapped() []byte {
	out := make([]byte, 0, b.GappedLength())
	if g, ok := b.Gaps[0]; ok {
		for i := 0; i < g; i++ {
			out = append(out, gapByte)
		}
	}
	for p := 1; p <= b.Length(); p++ {
		out = append(out, b.Consensus[p-1])
		if g, ok := b.Gaps[p]; ok {
			for i := 0; i < g; i++ {
				out = append(out, gapByte)
			}
		}
	}
	return out
}

const gapByte = '-'
