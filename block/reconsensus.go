package block

import (
	"github.com/plaquette/pangraph/cigar"
	"github.com/plaquette/pangraph/seq"
)

// gapOrder extends seq.Order with the gap byte ranked last, so that on a
// tie between a called base and a gap the called base wins (spec.md §3
// invariant 6 only pins down A<C<G<T<N; this module additionally always
// prefers a real call over '-' on a tie).
func gapOrder(b byte) int {
	if r, ok := seq.Order[b]; ok {
		return r
	}
	return len(seq.Order)
}

// plurality picks the consensus byte for one alignment column given the
// bytes every member shows at that column.
func plurality(column []byte) byte {
	counts := map[byte]int{}
	for _, c := range column {
		counts[c]++
	}
	best := column[0]
	bestCount := -1
	for c, n := range counts {
		if n > bestCount || (n == bestCount && gapOrder(c) < gapOrder(best)) {
			best, bestCount = c, n
		}
	}
	return best
}

// Reconsensus recomputes b's consensus so each column equals the plurality
// byte across members, and re-encodes every member's edits against the new
// consensus (spec.md §4.6). For depth <= 2 it leaves b unchanged and returns
// false: the consensus is arbitrary among tied choices at that depth, and
// keeping it stable avoids unnecessary churn (spec.md §9, open question 2 --
// reconsensus is always attempted, but is a deliberate no-op below depth 3).
// It never leaves b partially updated: the new state is staged in locals and
// swapped in only once every member has been diffed successfully.
func Reconsensus(b *Block) bool {
	members := b.Members()
	if len(members) <= 2 {
		return false
	}

	totalCols := b.GappedLength()
	rows := make(map[NodeID][]byte, len(members))
	for _, n := range members {
		row, err := b.SequenceOf(n, true)
		if err != nil {
			// Members() only returns nodes known to be present; this cannot fail.
			panic(err)
		}
		rows[n] = row
	}

	newConsensus := make([]byte, 0, b.Length())
	newGaps := map[Pos]int{}
	newMutate := make(map[NodeID]cigar.SNPMap, len(members))
	newInsert := make(map[NodeID]cigar.InsMap, len(members))
	newDelete := make(map[NodeID]cigar.DelMap, len(members))
	for _, n := range members {
		newMutate[n] = cigar.SNPMap{}
		newInsert[n] = cigar.InsMap{}
		newDelete[n] = cigar.DelMap{}
	}

	type delRun struct {
		start, length Pos
	}
	openDel := map[NodeID]*delRun{}
	type insRun struct {
		anchor Pos
		off    int
		bytes  []byte
	}
	openIns := map[NodeID]*insRun{}

	flushDel := func(n NodeID) {
		if r := openDel[n]; r != nil {
			newDelete[n][r.start] = r.length
			openDel[n] = nil
		}
	}
	flushIns := func(n NodeID) {
		if r := openIns[n]; r != nil {
			newInsert[n][cigar.InsKey{Pos: r.anchor, Off: r.off}] = r.bytes
			openIns[n] = nil
		}
	}

	consensusPos := Pos(0)
	offset := 0
	col := make([]byte, len(members))
	for c := 0; c < totalCols; c++ {
		for i, n := range members {
			col[i] = rows[n][c]
		}
		p := plurality(col)

		if p != seq.Gap {
			consensusPos++
			offset = 0
			newConsensus = append(newConsensus, p)
			for _, n := range members {
				v := rows[n][c]
				if v == seq.Gap {
					if r := openDel[n]; r != nil && r.start+r.length == consensusPos {
						r.length++
					} else {
						flushDel(n)
						openDel[n] = &delRun{start: consensusPos, length: 1}
					}
				} else {
					flushDel(n)
					if v != p {
						newMutate[n][consensusPos] = v
					}
				}
			}
		} else {
			newGaps[consensusPos]++
			for _, n := range members {
				v := rows[n][c]
				if v != seq.Gap {
					if r := openIns[n]; r != nil && r.anchor == consensusPos && r.off+len(r.bytes) == offset {
						r.bytes = append(r.bytes, v)
					} else {
						flushIns(n)
						openIns[n] = &insRun{anchor: consensusPos, off: offset, bytes: []byte{v}}
					}
				} else {
					flushIns(n)
				}
			}
			offset++
		}
	}
	for _, n := range members {
		flushDel(n)
		flushIns(n)
	}

	b.Consensus = newConsensus
	b.Gaps = newGaps
	b.Mutate = newMutate
	b.Insert = newInsert
	b.Delete = newDelete
	return true
}
