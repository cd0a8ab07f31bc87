package seq

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReverseComplement(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"ACGT", "ACGT"}, // palindrome, scenario 5 of spec.md §8.2
		{"AACCGGTT", "AACCGGTT"},
		{"AAAA", "TTTT"},
		{"ACGTN", "NACGT"},
		{"A-CG", "CG-T"},
	}
	for _, tt := range tests {
		got := string(ReverseComplement([]byte(tt.in)))
		assert.Equal(t, tt.want, got, "revcomp(%s)", tt.in)
	}
}

func TestReverseComplementInvolution(t *testing.T) {
	for _, in := range []string{"ACGTACGTN", "GATTACA", "A", ""} {
		rc := ReverseComplement([]byte(in))
		rc2 := ReverseComplement(rc)
		assert.Equal(t, in, string(rc2))
	}
}

func TestHamming(t *testing.T) {
	d, err := Hamming([]byte("ACGT"), []byte("ACTT"))
	require.NoError(t, err)
	assert.Equal(t, 1, d)

	_, err = Hamming([]byte("ACG"), []byte("ACGT"))
	assert.Error(t, err)
}

func TestStripGaps(t *testing.T) {
	assert.Equal(t, "ACGTGG", string(StripGaps([]byte("ACGT--GG"))))
}

func TestComplementByte(t *testing.T) {
	assert.Equal(t, byte('T'), ComplementByte('A'))
	assert.Equal(t, byte('A'), ComplementByte('T'))
	assert.Equal(t, byte('G'), ComplementByte('C'))
	assert.Equal(t, byte('C'), ComplementByte('G'))
	assert.Equal(t, byte('N'), ComplementByte('N'))
	assert.Equal(t, byte(Gap), ComplementByte(Gap))
}
