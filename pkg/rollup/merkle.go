package rollup

import "github.com/holiman/uint256"

// ComputeRoot reconstructs a Merkle root from a leaf and its sibling
// path, given the leaf's index. siblings[i] is the sibling at level i
// (0 = the leaf's own sibling, len(siblings)-1 = the sibling just
// below the root).
func ComputeRoot(h Hasher, leaf *uint256.Int, index uint64, siblings []*uint256.Int) *uint256.Int {
	current := leaf
	for level, sib := range siblings {
		if bitAt(index, uint(level)) == 0 {
			current = h.ParentOf(current, sib)
		} else {
			current = h.ParentOf(sib, current)
		}
	}
	return current
}

// MerkleProof reports whether leaf at index, combined with siblings,
// reconstructs root under h.
func MerkleProof(h Hasher, root, leaf *uint256.Int, index uint64, siblings []*uint256.Int) bool {
	return ComputeRoot(h, leaf, index, siblings).Eq(root)
}

// StartingLeafProof proves that index is the next empty slot in a
// tree with the given root: every sibling at a level where index's bit
// is 0 must equal the hasher's pre-hashed zero for that level (the
// subtree rooted there is untouched), every sibling at a level where
// the bit is 1 must differ from it (that subtree holds real data), and
// the zero leaf at index must itself reconstruct root.
//
// A malformed call (wrong sibling length, or index at or past the
// tree's capacity) returns (false, err); a well-formed call that
// simply fails the proof returns (false, nil).
func StartingLeafProof(h Hasher, root *uint256.Int, index uint64, siblings []*uint256.Int) (bool, error) {
	zero := h.PreHashedZero()
	depth := len(zero) - 1
	if len(siblings) != depth {
		return false, ErrSiblingLengthMismatch
	}
	if index >= uint64(1)<<uint(depth) {
		return false, ErrIndexOutOfRange
	}

	for level, sib := range siblings {
		isZeroSubtree := bitAt(index, uint(level)) == 0
		matchesZero := sib.Eq(zero[level])
		if isZeroSubtree && !matchesZero {
			return false, nil
		}
		if !isZeroSubtree && matchesZero {
			return false, nil
		}
	}

	return MerkleProof(h, root, zero[0], index, siblings), nil
}

// bitAt returns bit `level` of index (0 = least significant).
func bitAt(index uint64, level uint) uint64 {
	return (index >> level) & 1
}
