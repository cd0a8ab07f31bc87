package ivl

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ParseRegion parses a region string addressing a sub-interval of a block's
// consensus coordinate space, in one of the forms:
//
//	<id>:<first>-<last>   1-based, inclusive on both ends
//	<id>:<pos>            a single 1-based consensus position
//	<id>                  the whole consensus
//
// It returns the id and the half-open [Lo, Hi) interval equivalent to the
// range, matching this module's 1-based/half-open convention (spec.md §4.4).
// length, if > 0, bounds an unqualified "<id>" region to [1, length+1).
// Grounded on interval.ParseRegionString's contig:start-end syntax, adapted
// from that package's 0-based BED convention to this module's 1-based one.
func ParseRegion(region string, length int) (id string, iv Interval, err error) {
	if len(region) == 0 {
		return "", Interval{}, errors.New("ivl.ParseRegion: empty region string")
	}
	colon := strings.IndexByte(region, ':')
	if colon == -1 {
		if length <= 0 {
			return "", Interval{}, errors.Errorf("ivl.ParseRegion: %q has no range and no length was given", region)
		}
		return region, New(1, length+1), nil
	}
	if colon == 0 {
		return "", Interval{}, errors.New("ivl.ParseRegion: empty id")
	}
	id = region[:colon]
	rangeStr := region[colon+1:]

	dash := strings.IndexByte(rangeStr, '-')
	if dash == -1 {
		pos, err := strconv.Atoi(rangeStr)
		if err != nil {
			return "", Interval{}, errors.Wrapf(err, "ivl.ParseRegion: bad position %q", rangeStr)
		}
		if pos <= 0 {
			return "", Interval{}, errors.Errorf("ivl.ParseRegion: position %d out of range", pos)
		}
		return id, New(pos, pos+1), nil
	}

	first, err := strconv.Atoi(rangeStr[:dash])
	if err != nil {
		return "", Interval{}, errors.Wrapf(err, "ivl.ParseRegion: bad start %q", rangeStr[:dash])
	}
	last, err := strconv.Atoi(rangeStr[dash+1:])
	if err != nil {
		return "", Interval{}, errors.Wrapf(err, "ivl.ParseRegion: bad end %q", rangeStr[dash+1:])
	}
	if first <= 0 || last < first {
		return "", Interval{}, errors.Errorf("ivl.ParseRegion: invalid range %q", rangeStr)
	}
	return id, New(first, last+1), nil
}
