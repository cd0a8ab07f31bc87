package block

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plaquette/pangraph/cigar"
)

func TestComputeStatsDepthZero(t *testing.T) {
	b := New([]byte("ACGT"))
	s, err := ComputeStats(b)
	require.NoError(t, err)
	assert.Equal(t, 0, s.Depth)
	assert.Equal(t, 4, s.ConsensusLength)
	assert.Equal(t, 0, s.GapColumns)
}

func TestComputeStatsAcrossMembers(t *testing.T) {
	b := New([]byte("ACGT"))
	b.Gaps[2] = 2
	require.NoError(t, Append(b, 1, nil, cigar.InsMap{{Pos: 2, Off: 0}: []byte("GG")}, nil)) // length 6
	require.NoError(t, Append(b, 2, nil, nil, cigar.DelMap{4: 1}))                           // length 3

	s, err := ComputeStats(b)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Depth)
	assert.Equal(t, 2, s.GapColumns)
	assert.Equal(t, 3, s.MinMemberLength)
	assert.Equal(t, 6, s.MaxMemberLength)
	assert.InDelta(t, 4.5, s.MeanMemberLength, 1e-9)
}
