package rollup

import "github.com/holiman/uint256"

// TreeState is the public, persistable summary of a tree: its current
// root and the index of the next leaf to be appended.
type TreeState struct {
	Root  *uint256.Int
	Index uint64
}

// Eq reports whether two tree states describe the same root and
// index. Root is a pointer field, so == on TreeState values compares
// pointer identity, not the underlying 256-bit value; Eq is the
// correct comparison.
func (t TreeState) Eq(o TreeState) bool {
	return t.Index == o.Index && t.Root.Eq(o.Root)
}

// NewTree returns the state of an empty tree under h: root = Z[D], the
// last entry of h's zero table (D is the depth h was built for), and
// index = 0. The depth argument is not consulted.
func NewTree(h Hasher, depth uint) TreeState {
	zero := h.PreHashedZero()
	return TreeState{Root: zero[len(zero)-1], Index: 0}
}

// Result is returned by Append and carries the new frontier siblings
// alongside the updated tree state, so a caller threading many appends
// together (as SplitRollUp does) never needs to re-derive a starting
// proof from scratch.
type Result struct {
	State    TreeState
	Siblings []*uint256.Int
}

// Append inserts leaf at the tree's next empty index, proven by a
// starting-leaf proof of (root, index, siblings), and returns the new
// root, the next index, and the new frontier siblings for that index.
func Append(h Hasher, root *uint256.Int, index uint64, siblings []*uint256.Int, leaf *uint256.Int) (*Result, error) {
	ok, err := StartingLeafProof(h, root, index, siblings)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidProof
	}
	newRoot, newSiblings := appendOne(h, index, siblings, leaf)
	return &Result{State: TreeState{Root: newRoot, Index: index + 1}, Siblings: newSiblings}, nil
}

// RollUp folds a batch of leaves into the tree starting at index,
// verifying the starting-leaf proof once and then threading the
// frontier algorithm across every leaf in order.
func RollUp(h Hasher, root *uint256.Int, index uint64, siblings []*uint256.Int, leaves []*uint256.Int) (*Result, error) {
	if len(leaves) == 0 {
		return &Result{State: TreeState{Root: root, Index: index}, Siblings: siblings}, nil
	}
	ok, err := StartingLeafProof(h, root, index, siblings)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidProof
	}
	if exceedsCapacity(uint(len(siblings)), index, uint64(len(leaves))) {
		return nil, ErrTreeFull
	}

	curRoot, curIndex, curSiblings := root, index, siblings
	for _, leaf := range leaves {
		newRoot, newSiblings := appendOne(h, curIndex, curSiblings, leaf)
		curRoot, curSiblings = newRoot, newSiblings
		curIndex++
	}
	return &Result{State: TreeState{Root: curRoot, Index: curIndex}, Siblings: curSiblings}, nil
}

// exceedsCapacity reports whether inserting count leaves starting at
// index would run past a tree's 2^depth capacity.
func exceedsCapacity(depth uint, index, count uint64) bool {
	return index+count > uint64(1)<<depth
}

// appendOne runs the single-leaf frontier update: for each level, if
// the index bit is 0 the node advances by combining with the zero
// subtree, and if the bit is 1 it advances by combining with the
// existing left sibling. The new frontier is the proof for index+1:
// levels in index's trailing run of 1 bits become the zero subtree,
// the first 0-bit level takes the node hashed up to that level, and
// every higher level keeps its sibling. It is the d=0 case of appendAt.
func appendOne(h Hasher, index uint64, siblings []*uint256.Int, leaf *uint256.Int) (*uint256.Int, []*uint256.Int) {
	return appendAt(h, 0, index, siblings, leaf)
}
