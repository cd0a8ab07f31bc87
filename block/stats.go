package block

// Stats is a small plain-struct summary of a block's shape, computed on
// demand with no exporter, the way markduplicates/metrics.go tallies a
// library-size report.
type Stats struct {
	Depth            int
	ConsensusLength  int
	GapColumns       int
	MinMemberLength  int
	MaxMemberLength  int
	MeanMemberLength float64
}

// ComputeStats summarizes b. For a depth-0 block only Depth, ConsensusLength
// and GapColumns are filled in; the member-length fields stay zero.
func ComputeStats(b *Block) (Stats, error) {
	s := Stats{
		Depth:           b.Depth(),
		ConsensusLength: b.Length(),
	}
	for _, g := range b.Gaps {
		s.GapColumns += g
	}
	if s.Depth == 0 {
		return s, nil
	}

	total := 0
	first := true
	for _, n := range b.Members() {
		length, err := b.LengthOf(n)
		if err != nil {
			return Stats{}, err
		}
		if first || length < s.MinMemberLength {
			s.MinMemberLength = length
		}
		if first || length > s.MaxMemberLength {
			s.MaxMemberLength = length
		}
		first = false
		total += length
	}
	s.MeanMemberLength = float64(total) / float64(s.Depth)
	return s, nil
}
