package rollup

import (
	"fmt"

	"github.com/holiman/uint256"
)

// OPRU (one-pass roll-up) is a candidate state transition produced by
// a single caller: a tree moving from Start to Result while absorbing
// a leaf sequence whose rolling digest is MergedLeaves. It carries no
// proof data of its own — Verify checks it against an accumulator that
// already holds (or has itself verified) that proof.
type OPRU struct {
	Start        TreeState
	Result       TreeState
	MergedLeaves Digest
}

// SplitRollUp accumulates a sequence of appends across multiple calls,
// binding them into a single OPRU-shaped commitment. A nil Siblings
// field means the accumulator re-verifies a starting-leaf proof on
// every Update call (variant A); a non-nil Siblings field means the
// accumulator verified the proof once at construction and trusts its
// own threaded frontier thereafter (variant B) — see UpdateCached.
type SplitRollUp struct {
	Hasher Hasher
	Depth  uint

	Start  TreeState
	Result TreeState

	MergedLeaves Digest
	Siblings     []*uint256.Int
}

// NewSplitRollUp starts a variant-A accumulator at the given tree
// state: every subsequent Update call supplies and re-verifies its own
// starting-leaf proof.
func NewSplitRollUp(h Hasher, depth uint, start TreeState) *SplitRollUp {
	return &SplitRollUp{
		Hasher: h,
		Depth:  depth,
		Start:  start,
		Result: start,
	}
}

// NewSplitRollUpWithSiblings starts a variant-B accumulator: it
// verifies the starting-leaf proof once, here, against the given
// siblings, and caches the frontier so that UpdateCached never needs a
// proof argument again. A siblings vector shorter than depth is taken
// as the upper-tree frontier for sub-tree mode at d = depth -
// len(siblings) (see UpdateSubTreeCached) and is verified with
// StartingLeafProofSubTree.
func NewSplitRollUpWithSiblings(h Hasher, depth uint, start TreeState, siblings []*uint256.Int) (*SplitRollUp, error) {
	var ok bool
	var err error
	if uint(len(siblings)) < depth {
		ok, err = StartingLeafProofSubTree(h, start.Root, depth-uint(len(siblings)), start.Index, siblings)
	} else {
		ok, err = StartingLeafProof(h, start.Root, start.Index, siblings)
	}
	if err != nil {
		return nil, fmt.Errorf("splitrollup: init with siblings: %w", err)
	}
	if !ok {
		return nil, ErrInvalidProof
	}
	return &SplitRollUp{
		Hasher:       h,
		Depth:        depth,
		Start:        start,
		Result:       start,
		MergedLeaves: Digest{},
		Siblings:     siblings,
	}, nil
}

// Update folds leaves into the accumulator, re-verifying a
// starting-leaf proof for the current Result state on every call
// (variant A). It does not require the accumulator to have been built
// with cached siblings.
func (s *SplitRollUp) Update(siblings []*uint256.Int, leaves []*uint256.Int) error {
	res, err := RollUp(s.Hasher, s.Result.Root, s.Result.Index, siblings, leaves)
	if err != nil {
		return fmt.Errorf("splitrollup: update: %w", err)
	}
	s.Result = res.State
	s.MergedLeaves = Merge(s.MergedLeaves, leaves)
	s.Siblings = res.Siblings
	return nil
}

// UpdateCached folds leaves into the accumulator using its own cached
// frontier siblings, without re-verifying a starting-leaf proof
// (variant B). This is a deliberate, documented trust assumption: the
// cached Siblings are trusted to still match Result once they were
// verified at construction (or at the most recent UpdateCached), not
// re-checked against Result.Root on every call. A caller that mutates
// Result or Siblings out of band between calls breaks this invariant
// silently; that is a caller error, not one this method can detect.
func (s *SplitRollUp) UpdateCached(leaves []*uint256.Int) error {
	if s.Siblings == nil {
		return ErrSiblingsNotInitialized
	}
	if exceedsCapacity(uint(len(s.Siblings)), s.Result.Index, uint64(len(leaves))) {
		return ErrTreeFull
	}
	curIndex := s.Result.Index
	node := s.Result.Root
	siblings := s.Siblings
	for _, leaf := range leaves {
		n, sib := appendAt(s.Hasher, 0, curIndex, siblings, leaf)
		node, siblings = n, sib
		curIndex++
	}
	s.Result = TreeState{Root: node, Index: curIndex}
	s.MergedLeaves = Merge(s.MergedLeaves, leaves)
	s.Siblings = siblings
	return nil
}

// UpdateSubTree is the variant-A subtree counterpart of Update: it
// re-verifies a subtree starting-leaf proof every call.
func (s *SplitRollUp) UpdateSubTree(d uint, siblings []*uint256.Int, batches [][]*uint256.Int) error {
	res, err := RollUpSubTree(s.Hasher, s.Result.Root, d, s.Result.Index, siblings, batches)
	if err != nil {
		return fmt.Errorf("splitrollup: update subtree: %w", err)
	}
	s.Result = res.State
	s.MergedLeaves = MergeSubTrees(s.MergedLeaves, d, batches)
	s.Siblings = res.Siblings
	return nil
}

// UpdateSubTreeCached is the variant-B subtree counterpart of
// UpdateCached: no proof is re-verified, the cached upper-tree
// siblings are trusted as-is.
func (s *SplitRollUp) UpdateSubTreeCached(d uint, batches [][]*uint256.Int) error {
	if s.Siblings == nil {
		return ErrSiblingsNotInitialized
	}
	if exceedsCapacity(uint(len(s.Siblings)), s.Result.Index>>d, uint64(len(batches))) {
		return ErrTreeFull
	}
	curIndex := s.Result.Index
	node := s.Result.Root
	siblings := s.Siblings
	for _, batch := range batches {
		subRoot, err := SubTreeRoot(s.Hasher, d, batch)
		if err != nil {
			return fmt.Errorf("splitrollup: update subtree cached: %w", err)
		}
		n, sib := appendAt(s.Hasher, d, curIndex>>d, siblings, subRoot)
		node, siblings = n, sib
		curIndex += uint64(1) << d
	}
	s.Result = TreeState{Root: node, Index: curIndex}
	s.MergedLeaves = MergeSubTrees(s.MergedLeaves, d, batches)
	s.Siblings = siblings
	return nil
}

// Verify checks a candidate OPRU against the accumulator. Three
// precondition checks are required assertions surfaced as typed
// errors (start state, merged-leaves digest, and result index must
// all match what the accumulator itself produced); only the final
// root comparison is returned as the proof verdict.
func Verify(s *SplitRollUp, opru *OPRU) (bool, error) {
	if !s.Start.Eq(opru.Start) {
		return false, ErrVerifyStartMismatch
	}
	if s.MergedLeaves != opru.MergedLeaves {
		return false, ErrVerifyMergedLeavesMismatch
	}
	if s.Result.Index != opru.Result.Index {
		return false, ErrVerifyResultIndexMismatch
	}
	return s.Result.Root.Eq(opru.Result.Root), nil
}
