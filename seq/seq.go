// Package seq provides byte-level operations on the DNA alphabet shared by
// every other package in this module: reverse-complement, Hamming distance,
// and the fixed plurality tie-break order used by consensus recomputation.
package seq

import "github.com/pkg/errors"

// Gap is the byte used for an alignment-column gap. It never appears in a
// stored consensus, only in a gapped view of one.
const Gap = '-'

// revCompTable maps every byte this module is willing to see in a consensus
// or member sequence to its complement. Anything else maps to 'N'.
var revCompTable = [256]byte{}

func init() {
	for i := range revCompTable {
		revCompTable[i] = 'N'
	}
	revCompTable['A'] = 'T'
	revCompTable['T'] = 'A'
	revCompTable['C'] = 'G'
	revCompTable['G'] = 'C'
	revCompTable['N'] = 'N'
	revCompTable[Gap] = Gap
}

// ReverseComplement returns the reverse complement of b, mapping A<->T,
// C<->G, N->N, and the gap byte to itself. It does not mutate b.
func ReverseComplement(b []byte) []byte {
	n := len(b)
	out := make([]byte, n)
	for i, c := range b {
		out[n-1-i] = revCompTable[c]
	}
	return out
}

// ComplementByte returns the complement of a single nucleotide byte.
func ComplementByte(c byte) byte { return revCompTable[c] }

// Order gives the fixed plurality tie-break rank used when recomputing a
// consensus column (spec invariant: ties broken A<C<G<T<N). Lower rank wins.
var Order = map[byte]int{
	'A': 0,
	'C': 1,
	'G': 2,
	'T': 3,
	'N': 4,
}

// Hamming returns the number of positions at which a and b differ. It
// returns an error if the sequences have different lengths.
func Hamming(a, b []byte) (int, error) {
	if len(a) != len(b) {
		return 0, errors.Errorf("seq.Hamming: length mismatch %d != %d", len(a), len(b))
	}
	d := 0
	for i := range a {
		if a[i] != b[i] {
			d++
		}
	}
	return d, nil
}

// StripGaps returns b with every Gap byte removed.
func StripGaps(b []byte) []byte {
	out := make([]byte, 0, len(b))
	for _, c := range b {
		if c != Gap {
			out = append(out, c)
		}
	}
	return out
}
