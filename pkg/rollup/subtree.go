package rollup

import "github.com/holiman/uint256"

// SplitToSubTrees splits a flat leaf batch into chunks of 2^depth,
// the shape RollUpSubTree expects. The final chunk may be shorter than
// 2^depth; SubTreeRoot treats any missing trailing leaves as empty.
func SplitToSubTrees(depth uint, leaves []*uint256.Int) [][]*uint256.Int {
	size := int(uint64(1) << depth)
	if len(leaves) == 0 {
		return nil
	}
	chunks := make([][]*uint256.Int, 0, (len(leaves)+size-1)/size)
	for i := 0; i < len(leaves); i += size {
		end := i + size
		if end > len(leaves) {
			end = len(leaves)
		}
		chunks = append(chunks, leaves[i:end])
	}
	return chunks
}

// SubTreeRoot computes the root of a depth-d subtree whose leaves are
// given by leaves (len(leaves) <= 2^d; any remaining trailing leaves
// are treated as empty). The computation never combines two entirely
// empty subtrees through h.ParentOf: it tracks a shrinking "filled
// prefix" watermark level by level and substitutes the hasher's own
// pre-hashed zero the moment a pair falls entirely outside that
// prefix, rather than materializing a full 2^d array of zero leaves.
func SubTreeRoot(h Hasher, depth uint, leaves []*uint256.Int) (*uint256.Int, error) {
	capacity := uint64(1) << depth
	if uint64(len(leaves)) > capacity {
		return nil, ErrSubTreeSizeMismatch
	}
	zero := h.PreHashedZero()
	if len(leaves) == 0 {
		return zero[depth], nil
	}

	layer := make([]*uint256.Int, len(leaves))
	copy(layer, leaves)
	filled := uint64(len(layer))

	for level := uint(0); level < depth; level++ {
		nextLen := (filled + 1) / 2
		next := make([]*uint256.Int, nextLen)
		for i := uint64(0); i < nextLen; i++ {
			leftIdx, rightIdx := 2*i, 2*i+1
			left := layer[leftIdx]
			var right *uint256.Int
			if rightIdx < filled {
				right = layer[rightIdx]
			} else {
				right = zero[level]
			}
			next[i] = h.ParentOf(left, right)
		}
		layer = next
		filled = nextLen
	}
	return layer[0], nil
}

// StartingLeafProofSubTree proves that the depth-d-aligned index is
// the next empty subtree slot in a tree with the given root: the same
// bit-pattern check as StartingLeafProof, performed on the upper tree
// above the subtree boundary (levels d..Depth-1), with the subtree's
// own empty root Z[d] standing in for the leaf.
func StartingLeafProofSubTree(h Hasher, root *uint256.Int, d uint, index uint64, siblings []*uint256.Int) (bool, error) {
	if index%(uint64(1)<<d) != 0 {
		return false, ErrSubTreeMisaligned
	}
	zero := h.PreHashedZero()
	fullDepth := uint(len(zero) - 1)
	if d > fullDepth {
		return false, ErrIndexOutOfRange
	}
	upperDepth := fullDepth - d
	if len(siblings) != int(upperDepth) {
		return false, ErrSiblingLengthMismatch
	}
	subIndex := index >> d
	if subIndex >= uint64(1)<<upperDepth {
		return false, ErrIndexOutOfRange
	}

	for level, sib := range siblings {
		abs := uint(level) + d
		isZeroSubtree := bitAt(subIndex, uint(level)) == 0
		matchesZero := sib.Eq(zero[abs])
		if isZeroSubtree && !matchesZero {
			return false, nil
		}
		if !isZeroSubtree && matchesZero {
			return false, nil
		}
	}
	return MerkleProof(h, root, zero[d], subIndex, siblings), nil
}

// AppendSubTree inserts a full depth-d subtree of leaves at index,
// proven by StartingLeafProofSubTree, and returns the new root, the
// next index (index + 2^d), and the new upper-tree frontier siblings.
func AppendSubTree(h Hasher, root *uint256.Int, d uint, index uint64, siblings []*uint256.Int, leaves []*uint256.Int) (*Result, error) {
	ok, err := StartingLeafProofSubTree(h, root, d, index, siblings)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidProof
	}
	subRoot, err := SubTreeRoot(h, d, leaves)
	if err != nil {
		return nil, err
	}

	newRoot, newSiblings := appendAt(h, d, index>>d, siblings, subRoot)
	return &Result{State: TreeState{Root: newRoot, Index: index + (uint64(1) << d)}, Siblings: newSiblings}, nil
}

// RollUpSubTree folds a sequence of depth-d-aligned subtree batches
// into the tree starting at index, verifying the starting-leaf proof
// once and then threading the subtree frontier algorithm across every
// batch in order. Each batch is treated as a full 2^d-leaf subtree;
// SubTreeRoot pads a short trailing batch with empty leaves.
func RollUpSubTree(h Hasher, root *uint256.Int, d uint, index uint64, siblings []*uint256.Int, batches [][]*uint256.Int) (*Result, error) {
	if len(batches) == 0 {
		return &Result{State: TreeState{Root: root, Index: index}, Siblings: siblings}, nil
	}
	if index%(uint64(1)<<d) != 0 {
		return nil, ErrSubTreeMisaligned
	}
	ok, err := StartingLeafProofSubTree(h, root, d, index, siblings)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidProof
	}
	if exceedsCapacity(uint(len(siblings)), index>>d, uint64(len(batches))) {
		return nil, ErrTreeFull
	}

	curRoot, curIndex, curSiblings := root, index, siblings
	for _, batch := range batches {
		subRoot, err := SubTreeRoot(h, d, batch)
		if err != nil {
			return nil, err
		}
		newRoot, newSiblings := appendAt(h, d, curIndex>>d, curSiblings, subRoot)
		curRoot, curSiblings = newRoot, newSiblings
		curIndex += uint64(1) << d
	}
	return &Result{State: TreeState{Root: curRoot, Index: curIndex}, Siblings: curSiblings}, nil
}

// appendAt is appendOne generalized to splice a node in at a given
// base depth d (0 for single-leaf append): frontier levels are counted
// from d upward and the zero table is indexed at level+d accordingly.
// The returned siblings are the starting-leaf proof for upperIndex+1.
func appendAt(h Hasher, d uint, upperIndex uint64, siblings []*uint256.Int, node *uint256.Int) (*uint256.Int, []*uint256.Int) {
	zero := h.PreHashedZero()
	upperDepth := len(siblings)
	newSiblings := make([]*uint256.Int, upperDepth)

	// carry is true while walking the trailing run of 1 bits of
	// upperIndex, i.e. below the level that the increment flips to 1.
	carry := true
	for level := 0; level < upperDepth; level++ {
		abs := uint(level) + d
		if bitAt(upperIndex, uint(level)) == 0 {
			if carry {
				newSiblings[level] = node
				carry = false
			} else {
				newSiblings[level] = siblings[level]
			}
			node = h.ParentOf(node, zero[abs])
		} else {
			if carry {
				newSiblings[level] = zero[abs]
			} else {
				newSiblings[level] = siblings[level]
			}
			node = h.ParentOf(siblings[level], node)
		}
	}
	return node, newSiblings
}
