package block

import (
	"testing"

	"github.com/biogo/hts/sam"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plaquette/pangraph/cigar"
	"github.com/plaquette/pangraph/ivl"
)

func fullMatchAlignment(n int) Alignment {
	return Alignment{
		Cigar:       sam.Cigar{sam.NewCigarOp(sam.CigarMatch, n)},
		Orientation: Forward,
		QryInterval: ivl.New(1, n+1),
		RefInterval: ivl.New(1, n+1),
	}
}

func TestCombineFullSpanScenario6(t *testing.T) {
	// spec.md §8.2 scenario 6.
	q := New([]byte("ACGT"))
	require.NoError(t, Append(q, 1, nil, nil, nil))
	r := New([]byte("ACCT"))
	require.NoError(t, Append(r, 2, nil, nil, nil))

	children, err := Combine(q, r, fullMatchAlignment(4), 100)
	require.NoError(t, err)
	require.Len(t, children, 1)
	c := children[0]
	assert.Equal(t, Shared, c.Kind)
	assert.Equal(t, "ACCT", string(c.Block.Consensus))
	assert.ElementsMatch(t, []NodeID{1, 2}, c.Block.Members())

	qSeq, err := c.Block.SequenceOf(1, false)
	require.NoError(t, err)
	assert.Equal(t, "ACGT", string(qSeq))

	rSeq, err := c.Block.SequenceOf(2, false)
	require.NoError(t, err)
	assert.Equal(t, "ACCT", string(rSeq))
}

func TestCombineRejectsOutOfRangeInterval(t *testing.T) {
	q := New([]byte("ACGT"))
	require.NoError(t, Append(q, 1, nil, nil, nil))
	r := New([]byte("ACCT"))
	require.NoError(t, Append(r, 2, nil, nil, nil))

	a := fullMatchAlignment(4)
	a.RefInterval = ivl.New(1, 9)
	_, err := Combine(q, r, a, 100)
	assert.ErrorIs(t, err, ErrAlignmentOutOfRange)
}

func TestCombineProducesFlankingChildren(t *testing.T) {
	// R = "AAACCTTT": unaligned 3bp prefix/suffix flank a 2bp aligned core.
	q := New([]byte("CC"))
	require.NoError(t, Append(q, 1, nil, nil, nil))
	r := New([]byte("AAACCTTT"))
	require.NoError(t, Append(r, 2, nil, nil, nil))

	a := Alignment{
		Cigar:       sam.Cigar{sam.NewCigarOp(sam.CigarMatch, 2)},
		Orientation: Forward,
		QryInterval: ivl.New(1, 3),
		RefInterval: ivl.New(4, 6),
	}
	children, err := Combine(q, r, a, 100)
	require.NoError(t, err)
	require.Len(t, children, 3)

	assert.Equal(t, RefOnly, children[0].Kind)
	assert.Equal(t, "AAA", string(children[0].Block.Consensus))

	assert.Equal(t, Shared, children[1].Kind)
	assert.Equal(t, "CC", string(children[1].Block.Consensus))

	assert.Equal(t, RefOnly, children[2].Kind)
	assert.Equal(t, "TTT", string(children[2].Block.Consensus))
}

func TestCombineReverseOrientation(t *testing.T) {
	// Q on the reverse strand reads "ACGT" -> revcomp "ACGT" (palindrome),
	// aligning cleanly against R = "ACGT".
	q := New([]byte("ACGT"))
	require.NoError(t, Append(q, 1, nil, nil, nil))
	r := New([]byte("ACGT"))
	require.NoError(t, Append(r, 2, nil, nil, nil))

	a := fullMatchAlignment(4)
	a.Orientation = Reverse
	children, err := Combine(q, r, a, 100)
	require.NoError(t, err)
	require.Len(t, children, 1)
	assert.Equal(t, Shared, children[0].Kind)
	assert.Equal(t, "ACGT", string(children[0].Block.Consensus))
}

func TestCombineDetectsEditCollision(t *testing.T) {
	q := New([]byte("ACGT"))
	require.NoError(t, Append(q, 1, cigar.SNPMap{3: 'A'}, nil, nil))
	r := New([]byte("ACCT"))
	require.NoError(t, Append(r, 2, nil, nil, nil))

	_, err := Combine(q, r, fullMatchAlignment(4), 100)
	assert.ErrorIs(t, err, ErrEditCollision)
}
