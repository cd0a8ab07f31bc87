package ivl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntervalBasics(t *testing.T) {
	iv := New(3, 8)
	assert.Equal(t, 5, iv.Len())
	assert.True(t, iv.Contains(3))
	assert.True(t, iv.Contains(7))
	assert.False(t, iv.Contains(8))
	assert.False(t, New(3, 3).Contains(3))
}

func TestIntervalOverlapsAndUnion(t *testing.T) {
	a := New(0, 5)
	b := New(4, 9)
	c := New(5, 9)
	d := New(6, 9)

	assert.True(t, a.Overlaps(b))
	assert.False(t, a.Overlaps(c))
	assert.False(t, a.Overlaps(d))

	assert.True(t, a.Adjoins(c))
	assert.False(t, a.Adjoins(d))

	u, ok := a.Union(b)
	assert.True(t, ok)
	assert.Equal(t, New(0, 9), u)

	_, ok = a.Union(d)
	assert.False(t, ok)
}

func TestIntervalIntersect(t *testing.T) {
	a := New(0, 10)
	b := New(5, 15)
	got, ok := a.Intersect(b)
	assert.True(t, ok)
	assert.Equal(t, New(5, 10), got)

	_, ok = New(0, 5).Intersect(New(5, 10))
	assert.False(t, ok)
}

func TestIntervalShift(t *testing.T) {
	assert.Equal(t, New(2, 7), New(0, 5).Shift(2))
	assert.Equal(t, New(-2, 3), New(0, 5).Shift(-2))
}
