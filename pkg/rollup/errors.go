package rollup

import "errors"

// Sentinel errors returned by the package's proof, append, and
// accumulator operations. Callers should compare with errors.Is since
// some call sites (the SplitRollUp methods) wrap these with additional
// context.
var (
	// ErrTreeFull is returned when an append would exceed the tree's
	// fixed depth capacity (2^Depth leaves).
	ErrTreeFull = errors.New("rollup: tree is full")

	// ErrIndexOutOfRange is returned when an index does not lie in
	// [0, 2^Depth).
	ErrIndexOutOfRange = errors.New("rollup: index out of range")

	// ErrSiblingLengthMismatch is returned when a siblings vector's
	// length does not equal the tree depth (or sub-tree splice depth).
	ErrSiblingLengthMismatch = errors.New("rollup: sibling vector length mismatch")

	// ErrInvalidProof is returned by StartingLeafProof callers when a
	// well-formed starting-leaf proof fails to verify; malformed input
	// is reported with the more specific errors above.
	ErrInvalidProof = errors.New("rollup: invalid starting-leaf proof")

	// ErrSubTreeMisaligned is returned when an append index is not
	// aligned to the sub-tree depth boundary (index mod 2^d != 0).
	ErrSubTreeMisaligned = errors.New("rollup: sub-tree insertion index is not aligned")

	// ErrSubTreeSizeMismatch is returned when a leaf batch's length
	// exceeds 2^d for the sub-tree depth d in use; shorter batches are
	// padded with empty leaves.
	ErrSubTreeSizeMismatch = errors.New("rollup: leaf batch size does not match sub-tree depth")

	// ErrSiblingsNotInitialized is returned by UpdateCached when the
	// accumulator was constructed without a cached sibling vector.
	ErrSiblingsNotInitialized = errors.New("rollup: split roll-up has no cached siblings")

	// ErrVerifyStartMismatch is returned by Verify when the candidate
	// OPRU's starting tree state does not match the accumulator's.
	ErrVerifyStartMismatch = errors.New("rollup: opru start state does not match accumulator")

	// ErrVerifyMergedLeavesMismatch is returned by Verify when the
	// candidate OPRU's merged-leaves digest does not match.
	ErrVerifyMergedLeavesMismatch = errors.New("rollup: opru merged leaves digest does not match accumulator")

	// ErrVerifyResultIndexMismatch is returned by Verify when the
	// candidate OPRU's result index does not match the accumulator's.
	ErrVerifyResultIndexMismatch = errors.New("rollup: opru result index does not match accumulator")
)
