package rollup

import (
	"github.com/holiman/uint256"
	"golang.org/x/crypto/sha3"
)

// KeccakHasher is a Hasher whose two-to-one function is Keccak-256 of
// the big-endian concatenation of the two 32-byte children. It is the
// default hasher and the one mergedLeaves is always computed with,
// regardless of which Hasher a tree was built over.
type KeccakHasher struct {
	depth uint
	zero  []*uint256.Int
}

// NewKeccakHasher builds a KeccakHasher with an empty leaf of zero for
// a tree of the given depth.
func NewKeccakHasher(depth uint) *KeccakHasher {
	return &KeccakHasher{
		depth: depth,
		zero:  BuildZeroTable(keccakParentOf, new(uint256.Int), depth),
	}
}

// ParentOf implements Hasher.
func (h *KeccakHasher) ParentOf(left, right *uint256.Int) *uint256.Int {
	return keccakParentOf(left, right)
}

// PreHashedZero implements Hasher.
func (h *KeccakHasher) PreHashedZero() []*uint256.Int {
	return h.zero
}

func keccakParentOf(left, right *uint256.Int) *uint256.Int {
	lb, rb := left.Bytes32(), right.Bytes32()
	sum := keccak256(lb[:], rb[:])
	var out uint256.Int
	out.SetBytes(sum)
	return &out
}

func keccak256(data ...[]byte) []byte {
	d := sha3.NewLegacyKeccak256()
	for _, b := range data {
		d.Write(b)
	}
	return d.Sum(nil)
}
