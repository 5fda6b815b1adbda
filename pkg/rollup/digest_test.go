package rollup

import (
	"testing"

	"github.com/holiman/uint256"
)

func TestMergeIsOrderSensitive(t *testing.T) {
	leaves1 := []*uint256.Int{u256(1), u256(2)}
	leaves2 := []*uint256.Int{u256(2), u256(1)}
	d1 := Merge(Digest{}, leaves1)
	d2 := Merge(Digest{}, leaves2)
	if d1 == d2 {
		t.Fatal("merge digest should depend on leaf order")
	}
}

func TestMergeIsDeterministic(t *testing.T) {
	leaves := []*uint256.Int{u256(1), u256(2), u256(3)}
	d1 := Merge(Digest{}, leaves)
	d2 := Merge(Digest{}, leaves)
	if d1 != d2 {
		t.Fatal("merge digest should be deterministic")
	}
}

func TestSubTreeHashPadsWithZero(t *testing.T) {
	full := SubTreeHash(2, []*uint256.Int{u256(1), u256(2), u256(3), u256(4)})
	partial := SubTreeHash(2, []*uint256.Int{u256(1), u256(2), u256(3)})
	if full == partial {
		t.Fatal("a full batch and a short batch should not hash the same")
	}
}

func TestMergeBothDivergesFromPerLeafFolding(t *testing.T) {
	leaves := []*uint256.Int{u256(1), u256(2), u256(3), u256(4)}
	result := MergeBoth(Digest{}, 2, leaves)
	if result.PerLeaf == result.PerSubTree {
		t.Fatal("per-leaf and per-subtree digests are expected to diverge")
	}
}
