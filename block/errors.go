package block

import "github.com/pkg/errors"

// Error taxonomy, spec.md §7. Every mutating operation either returns one of
// these (possibly wrapped with call-site detail via errors.Wrapf) or
// succeeds outright; nothing is ever partially applied.
var (
	// ErrInvariantViolation signals an edit referencing a position outside
	// the consensus, or an insertion whose offset+length overruns its gap
	// cluster.
	ErrInvariantViolation = errors.New("block: invariant violation")
	// ErrMemberSetMismatch signals Concat receiving blocks with differing
	// member sets.
	ErrMemberSetMismatch = errors.New("block: member set mismatch")
	// ErrDuplicateMember signals Append given a node already present.
	ErrDuplicateMember = errors.New("block: duplicate member")
	// ErrEditCollision signals that merging edit maps would place two
	// different values at the same key.
	ErrEditCollision = errors.New("block: edit collision")
	// ErrAlignmentOutOfRange signals Combine's interval exceeding a parent's
	// consensus length.
	ErrAlignmentOutOfRange = errors.New("block: alignment out of range")
	// ErrUnknownMember signals an operation referencing a node the block
	// does not have as a member.
	ErrUnknownMember = errors.New("block: unknown member")
)
