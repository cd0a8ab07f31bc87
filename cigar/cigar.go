// Package cigar consumes a CIGAR alignment between a query and a reference
// consensus and splits it into segments: query-only, reference-only, or
// shared, with the per-column edits of the shared segments extracted as
// SNP/insertion/deletion maps keyed by 1-based position within the segment's
// own stretch of reference consensus (position 1 is the segment's first
// reference column). This is the component combine.go leans on hardest
// (spec.md §4.2).
package cigar

import (
	"github.com/biogo/hts/sam"
	"github.com/pkg/errors"

	"github.com/plaquette/pangraph/ivl"
)

// Pos is a 1-based consensus position, matching ivl.Pos.
type Pos = ivl.Pos

// SNPMap maps a reference-relative consensus position to the query
// nucleotide found there.
type SNPMap map[Pos]byte

// InsKey locates an insertion: Off positions into the gap cluster that
// follows consensus position Pos.
type InsKey struct {
	Pos Pos
	Off int
}

// InsMap maps an insertion site to the inserted bytes.
type InsMap map[InsKey][]byte

// DelMap maps a reference-relative consensus position to the number of
// consecutive consensus columns deleted starting there.
type DelMap map[Pos]int

// ErrMalformedCigar is returned when a CIGAR contains an operation this
// partitioner does not know how to place (spec.md §7).
var ErrMalformedCigar = errors.New("cigar: malformed cigar")

// Segment is one piece of a partitioned alignment. Exactly one of Qry/Ref is
// nil for a QryOnly/RefOnly segment; both are set for a Shared segment.
type Segment struct {
	Consensus []byte // the segment's derived consensus bytes (reference bytes for Shared/RefOnly, query bytes for QryOnly)
	Qry       *ivl.Interval
	Ref       *ivl.Interval
	SNP       SNPMap
	Ins       InsMap
	Del       DelMap
}

// Kind reports what sort of segment this is.
func (s Segment) Kind() Kind {
	switch {
	case s.Qry != nil && s.Ref != nil:
		return Shared
	case s.Ref != nil:
		return RefOnly
	default:
		return QryOnly
	}
}

// Kind tags a Segment the way a tagged variant would in a language with sum
// types (spec.md §9 design note on pattern matching).
type Kind int

const (
	// Shared segments are backed by both a query and a reference interval.
	Shared Kind = iota
	// RefOnly segments cover reference consensus not touched by the query.
	RefOnly
	// QryOnly segments cover query consensus not touched by the reference.
	QryOnly
)

// shareable reports whether a CigarOpType can live inside a shared segment
// (i.e. is M/=/X/I/D, as opposed to clipping ops which never do).
func shareable(t sam.CigarOpType) bool {
	switch t {
	case sam.CigarMatch, sam.CigarEqual, sam.CigarMismatch, sam.CigarInsertion, sam.CigarDeletion:
		return true
	default:
		return false
	}
}

// Partition splits cig into segments. qry and ref are the full consensus
// byte sequences of the query and reference blocks; qStart/rStart are the
// 1-based consensus positions at which the alignment begins in each.
// maxgap is the minimum indel run length that forces a split rather than
// being absorbed as an edit.
func Partition(cig sam.Cigar, qry, ref []byte, qStart, rStart Pos, maxgap int) ([]Segment, error) {
	if maxgap < 1 {
		return nil, errors.Errorf("cigar.Partition: maxgap must be >= 1, got %d", maxgap)
	}

	var segs []Segment
	qpos, rpos := qStart, rStart

	// shared-segment accumulator state; flushed into segs whenever a long
	// indel forces a split, or at the end.
	sharedOpen := false
	var shQ0, shR0 Pos // 1-based starts of the open shared segment
	snp := SNPMap{}
	ins := InsMap{}
	del := DelMap{}

	flushShared := func(qEnd, rEnd Pos) {
		if !sharedOpen {
			return
		}
		consensus := append([]byte{}, ref[shR0-1:rEnd-1]...)
		segs = append(segs, Segment{
			Consensus: consensus,
			Qry:       ivlPtr(ivl.New(shQ0, qEnd)),
			Ref:       ivlPtr(ivl.New(shR0, rEnd)),
			SNP:       snp,
			Ins:       ins,
			Del:       del,
		})
		sharedOpen = false
		snp, ins, del = SNPMap{}, InsMap{}, DelMap{}
	}
	openShared := func() {
		if !sharedOpen {
			shQ0, shR0 = qpos, rpos
			sharedOpen = true
		}
	}

	for _, op := range cig {
		t := op.Type()
		n := op.Len()
		if !shareable(t) {
			return nil, errors.Wrapf(ErrMalformedCigar, "unsupported op %s", t.String())
		}
		switch t {
		case sam.CigarMatch, sam.CigarEqual, sam.CigarMismatch:
			openShared()
			for i := 0; i < n; i++ {
				qb, rb := qry[qpos-1], ref[rpos-1]
				if qb != rb {
					snp[rpos-shR0+1] = qb
				}
				qpos++
				rpos++
			}
		case sam.CigarInsertion:
			if n >= maxgap {
				// Long insertion: splits the alignment. The query-only
				// segment is not recorded as an edit.
				flushShared(qpos, rpos)
				segs = append(segs, Segment{
					Consensus: append([]byte{}, qry[qpos-1:qpos-1+n]...),
					Qry:       ivlPtr(ivl.New(qpos, qpos+n)),
				})
				qpos += n
				continue
			}
			openShared()
			pos := rpos - shR0 // consensus position (local to segment) the insertion follows; 0 means "before the segment's first column"
			ins[InsKey{Pos: pos, Off: 0}] = append([]byte{}, qry[qpos-1:qpos-1+n]...)
			qpos += n
		case sam.CigarDeletion:
			if n >= maxgap {
				flushShared(qpos, rpos)
				segs = append(segs, Segment{
					Consensus: append([]byte{}, ref[rpos-1:rpos-1+n]...),
					Ref:       ivlPtr(ivl.New(rpos, rpos+n)),
				})
				rpos += n
				continue
			}
			openShared()
			del[rpos-shR0+1] = n
			rpos += n
		}
	}
	flushShared(qpos, rpos)
	return segs, nil
}

func ivlPtr(iv ivl.Interval) *ivl.Interval { return &iv }
