package rollup

import "github.com/holiman/uint256"

// Hasher is the two-to-one compression function a tree is built over.
// Implementations must be deterministic and side-effect free; ParentOf
// may be called concurrently from multiple goroutines on the same
// Hasher value.
type Hasher interface {
	// ParentOf combines a left and right child into their parent node.
	ParentOf(left, right *uint256.Int) *uint256.Int

	// PreHashedZero returns the zero table Z, where Z[0] is the empty
	// leaf value and Z[i] = ParentOf(Z[i-1], Z[i-1]) for i >= 1. The
	// returned slice must not be mutated by the caller.
	PreHashedZero() []*uint256.Int
}

// BuildZeroTable derives the pre-hashed zero table for a hasher given
// the empty-leaf value and the tree depth, by repeated self-combination.
// depth+1 entries are returned: Z[0]..Z[depth].
func BuildZeroTable(h func(l, r *uint256.Int) *uint256.Int, emptyLeaf *uint256.Int, depth uint) []*uint256.Int {
	z := make([]*uint256.Int, depth+1)
	z[0] = new(uint256.Int).Set(emptyLeaf)
	for i := uint(1); i <= depth; i++ {
		z[i] = h(z[i-1], z[i-1])
	}
	return z
}
