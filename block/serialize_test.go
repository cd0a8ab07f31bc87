package block

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plaquette/pangraph/cigar"
)

func TestMarshalJSONCanonicalKeyOrder(t *testing.T) {
	b := New([]byte("ACGTACGTAC"))
	b.ID = "blk1"
	b.Gaps[10] = 1
	b.Gaps[2] = 3
	require.NoError(t, Append(b, 1, cigar.SNPMap{10: 'A', 2: 'T'}, nil, nil))

	data, err := b.MarshalJSON()
	require.NoError(t, err)

	// "2" must sort before "10" numerically, not lexicographically.
	s := string(data)
	assert.True(t, indexOf(s, `"2":3`) < indexOf(s, `"10":1`))
	assert.True(t, indexOf(s, `"2":"T"`) < indexOf(s, `"10":"A"`))
}

func indexOf(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}

func TestJSONRoundTrip(t *testing.T) {
	b := New([]byte("ACGT"))
	b.ID = "blk1"
	b.Gaps[2] = 2
	require.NoError(t, Append(b, 1, cigar.SNPMap{4: 'A'}, cigar.InsMap{{Pos: 2, Off: 0}: []byte("GG")}, nil))
	require.NoError(t, Append(b, 2, nil, nil, cigar.DelMap{3: 1}))

	data, err := json.Marshal(b)
	require.NoError(t, err)

	var out Block
	require.NoError(t, json.Unmarshal(data, &out))

	assert.Equal(t, b.ID, out.ID)
	assert.Equal(t, string(b.Consensus), string(out.Consensus))
	assert.Equal(t, b.Gaps, out.Gaps)
	assert.Equal(t, b.Mutate, out.Mutate)
	assert.Equal(t, b.Insert, out.Insert)
	assert.Equal(t, b.Delete, out.Delete)
}

func TestMarshalJSONIsDeterministic(t *testing.T) {
	b := New([]byte("ACGT"))
	require.NoError(t, Append(b, 5, cigar.SNPMap{2: 'T'}, nil, nil))
	require.NoError(t, Append(b, 1, cigar.SNPMap{3: 'A'}, nil, nil))

	first, err := b.MarshalJSON()
	require.NoError(t, err)
	second, err := b.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}
