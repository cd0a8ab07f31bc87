package block

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plaquette/pangraph/cigar"
)

func TestValidateAcceptsWellFormedBlock(t *testing.T) {
	b := New([]byte("ACGT"))
	b.Gaps[2] = 1
	require.NoError(t, Append(b, 1, cigar.SNPMap{4: 'A'}, cigar.InsMap{{Pos: 2, Off: 0}: []byte("C")}, nil))
	require.NoError(t, Append(b, 2, nil, nil, nil))
	assert.NoError(t, Validate(b))
}

func TestValidateRejectsDepthOneWithEdits(t *testing.T) {
	b := New([]byte("ACGT"))
	b.Mutate[1] = cigar.SNPMap{2: 'T'}
	b.Insert[1] = cigar.InsMap{}
	b.Delete[1] = cigar.DelMap{}
	assert.ErrorIs(t, Validate(b), ErrInvariantViolation)
}

func TestValidateRejectsOutOfRangeSNP(t *testing.T) {
	b := New([]byte("ACGT"))
	b.Mutate[1] = cigar.SNPMap{9: 'T'}
	b.Insert[1] = cigar.InsMap{}
	b.Delete[1] = cigar.DelMap{}
	assert.ErrorIs(t, Validate(b), ErrInvariantViolation)
}

func TestValidateRejectsInsertWithoutGapCluster(t *testing.T) {
	b := New([]byte("ACGT"))
	b.Mutate[1] = cigar.SNPMap{}
	b.Insert[1] = cigar.InsMap{{Pos: 2, Off: 0}: []byte("C")}
	b.Delete[1] = cigar.DelMap{}
	assert.ErrorIs(t, Validate(b), ErrInvariantViolation)
}

func TestValidateRejectsOverlappingDeletionRuns(t *testing.T) {
	b := New([]byte("ACGTACGT"))
	b.Mutate[1] = cigar.SNPMap{}
	b.Insert[1] = cigar.InsMap{}
	b.Delete[1] = cigar.DelMap{2: 4, 4: 2} // [2,6) and [4,6) overlap at columns 4-5
	assert.ErrorIs(t, Validate(b), ErrInvariantViolation)
}
