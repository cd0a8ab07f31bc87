package ivl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetAddMergesOverlaps(t *testing.T) {
	s := NewSet(New(5, 15), New(7, 17), New(20, 25))
	assert.Equal(t, []Interval{New(5, 17), New(20, 25)}, s.Intervals())
}

func TestSetAddMergesTouching(t *testing.T) {
	s := NewSet(New(0, 5), New(5, 10))
	assert.Equal(t, []Interval{New(0, 10)}, s.Intervals())
}

func TestSetContainsAndWhich(t *testing.T) {
	s := NewSet(New(5, 17), New(20, 25))
	assert.True(t, s.Contains(10))
	assert.False(t, s.Contains(18))

	iv, ok := s.Which(New(6, 16))
	assert.True(t, ok)
	assert.Equal(t, New(5, 17), iv)

	_, ok = s.Which(New(16, 21))
	assert.False(t, ok)
}

func TestSetDifference(t *testing.T) {
	s := NewSet(New(5, 10), New(15, 20))
	got := s.Difference(New(0, 25))
	assert.Equal(t, []Interval{New(0, 5), New(10, 15), New(20, 25)}, got)
}

func TestSetDisjointFrom(t *testing.T) {
	s := NewSet(New(5, 10))
	assert.True(t, s.DisjointFrom(New(10, 15)))
	assert.False(t, s.DisjointFrom(New(9, 15)))
}

func TestSetUnion(t *testing.T) {
	a := NewSet(New(0, 5))
	b := NewSet(New(4, 10), New(20, 25))
	u := a.Union(b)
	assert.Equal(t, []Interval{New(0, 10), New(20, 25)}, u.Intervals())
}
