package ivl

import "github.com/pkg/errors"

// Pos is the integer coordinate type used throughout this module: consensus
// positions, gapped-consensus positions, and per-member sequence positions
// are all Pos.
type Pos = int

// Interval is a half-open range [Lo, Hi) on the integers.
type Interval struct {
	Lo, Hi Pos
}

// New returns the interval [lo, hi). It panics if hi < lo, since an
// interval's bounds are a precondition callers are expected to have already
// validated (see block.Slice for the one place this is user-facing).
func New(lo, hi Pos) Interval {
	if hi < lo {
		panic(errors.Errorf("ivl.New: hi %d < lo %d", hi, lo))
	}
	return Interval{Lo: lo, Hi: hi}
}

// Len returns Hi - Lo.
func (iv Interval) Len() Pos { return iv.Hi - iv.Lo }

// Empty reports whether the interval contains no positions.
func (iv Interval) Empty() bool { return iv.Hi <= iv.Lo }

// Contains reports whether p falls in [Lo, Hi).
func (iv Interval) Contains(p Pos) bool { return p >= iv.Lo && p < iv.Hi }

// Overlaps reports whether iv and other share any position.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Lo < other.Hi && other.Lo < iv.Hi
}

// Adjoins reports whether iv and other overlap or touch end-to-end (so that
// Union would produce a single contiguous interval).
func (iv Interval) Adjoins(other Interval) bool {
	return iv.Lo <= other.Hi && other.Lo <= iv.Hi
}

// Union returns the smallest interval spanning both iv and other, and false
// if the two intervals neither overlap nor touch (in which case the returned
// interval is meaningless).
func (iv Interval) Union(other Interval) (Interval, bool) {
	if !iv.Adjoins(other) {
		return Interval{}, false
	}
	lo := iv.Lo
	if other.Lo < lo {
		lo = other.Lo
	}
	hi := iv.Hi
	if other.Hi > hi {
		hi = other.Hi
	}
	return Interval{Lo: lo, Hi: hi}, true
}

// Intersect returns the overlap of iv and other, and false if they don't
// overlap.
func (iv Interval) Intersect(other Interval) (Interval, bool) {
	lo := iv.Lo
	if other.Lo > lo {
		lo = other.Lo
	}
	hi := iv.Hi
	if other.Hi < hi {
		hi = other.Hi
	}
	if lo >= hi {
		return Interval{}, false
	}
	return Interval{Lo: lo, Hi: hi}, true
}

// Shift returns iv translated by delta.
func (iv Interval) Shift(delta Pos) Interval {
	return Interval{Lo: iv.Lo + delta, Hi: iv.Hi + delta}
}
