package rollup

import "github.com/holiman/uint256"

// Digest is the rolling Keccak-256 accumulator bound into a
// SplitRollUp's mergedLeaves field. It is always computed with
// Keccak-256 regardless of the tree's Hasher, so two trees built over
// different hash functions but fed the same leaf sequence still
// produce the same Digest.
type Digest [32]byte

// Merge folds each leaf into base in order: the new digest is
// keccak256(prev ‖ leaf) for each leaf, starting from prev = base.
// This is the single-leaf counterpart to RollUp's frontier folding.
func Merge(base Digest, leaves []*uint256.Int) Digest {
	cur := base
	for _, leaf := range leaves {
		lb := leaf.Bytes32()
		var next Digest
		copy(next[:], keccak256(cur[:], lb[:]))
		cur = next
	}
	return cur
}

// SubTreeHash digests an entire subtree batch as a single unit:
// keccak256 of the flat big-endian concatenation of its leaves, padded
// with zero leaves up to 2^depth. This intentionally differs from
// folding the same leaves individually through Merge — see
// MergeSubTrees.
func SubTreeHash(depth uint, leaves []*uint256.Int) Digest {
	capacity := int(uint64(1) << depth)
	buf := make([]byte, 0, capacity*32)
	for i := 0; i < capacity; i++ {
		if i < len(leaves) {
			b := leaves[i].Bytes32()
			buf = append(buf, b[:]...)
		} else {
			buf = append(buf, make([]byte, 32)...)
		}
	}
	var out Digest
	copy(out[:], keccak256(buf))
	return out
}

// MergeSubTrees folds a sequence of subtree batches into base, one
// SubTreeHash per batch, the subtree-mode counterpart to Merge.
func MergeSubTrees(base Digest, depth uint, batches [][]*uint256.Int) Digest {
	cur := base
	for _, batch := range batches {
		h := SubTreeHash(depth, batch)
		var next Digest
		copy(next[:], keccak256(cur[:], h[:]))
		cur = next
	}
	return cur
}

// MergeResult bundles both digest variants for a single call so a
// caller can see that per-leaf folding and per-subtree folding
// genuinely diverge rather than silently picking one.
type MergeResult struct {
	// PerLeaf is Merge(base, leaves): each leaf folded individually.
	PerLeaf Digest

	// PerSubTree is MergeSubTrees(base, depth, [][]*uint256.Int{leaves}):
	// the same leaves folded as one subtree-hashed unit.
	PerSubTree Digest
}

// MergeBoth computes both the per-leaf and per-subtree digests for
// the same leaf batch so a caller can compare them directly.
func MergeBoth(base Digest, depth uint, leaves []*uint256.Int) MergeResult {
	return MergeResult{
		PerLeaf:    Merge(base, leaves),
		PerSubTree: MergeSubTrees(base, depth, [][]*uint256.Int{leaves}),
	}
}
