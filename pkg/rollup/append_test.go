package rollup

import (
	"testing"

	"github.com/holiman/uint256"
)

func TestAppendFillsTreeSequentially(t *testing.T) {
	h := NewKeccakHasher(3)
	zero := h.PreHashedZero()
	root := zero[3]
	siblings := []*uint256.Int{zero[0], zero[1], zero[2]}

	for i := uint64(0); i < 8; i++ {
		res, err := Append(h, root, i, siblings, u256(i+1))
		if err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
		if res.State.Index != i+1 {
			t.Fatalf("append %d: expected index %d, got %d", i, i+1, res.State.Index)
		}
		root, siblings = res.State.Root, res.Siblings
	}

	if _, err := Append(h, root, 8, siblings, u256(99)); err == nil {
		t.Fatal("append past capacity should fail the starting-leaf proof")
	}
}

func TestRollUpMatchesSequentialAppend(t *testing.T) {
	h := NewKeccakHasher(4)
	zero := h.PreHashedZero()
	root := zero[4]
	siblings := []*uint256.Int{zero[0], zero[1], zero[2], zero[3]}

	leaves := []*uint256.Int{u256(1), u256(2), u256(3), u256(4), u256(5)}

	// Sequential reference: thread Append across the whole batch.
	refRoot, refIndex, refSiblings := root, uint64(0), siblings
	for _, leaf := range leaves {
		res, err := Append(h, refRoot, refIndex, refSiblings, leaf)
		if err != nil {
			t.Fatalf("reference append: %v", err)
		}
		refRoot, refIndex, refSiblings = res.State.Root, res.State.Index, res.Siblings
	}

	batchRes, err := RollUp(h, root, 0, siblings, leaves)
	if err != nil {
		t.Fatalf("rollup: %v", err)
	}
	if !batchRes.State.Root.Eq(refRoot) {
		t.Fatal("RollUp root should match sequential Append")
	}
	if batchRes.State.Index != refIndex {
		t.Fatalf("RollUp index %d != sequential index %d", batchRes.State.Index, refIndex)
	}
	for i := range batchRes.Siblings {
		if !batchRes.Siblings[i].Eq(refSiblings[i]) {
			t.Fatalf("sibling %d mismatch", i)
		}
	}
}

func TestRollUpEmptyBatchIsNoop(t *testing.T) {
	h := NewKeccakHasher(2)
	zero := h.PreHashedZero()
	res, err := RollUp(h, zero[2], 0, []*uint256.Int{zero[0], zero[1]}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.State.Root.Eq(zero[2]) || res.State.Index != 0 {
		t.Fatal("empty rollup should not change tree state")
	}
}

func TestAppendRejectsInvalidStartingProof(t *testing.T) {
	h := NewKeccakHasher(3)
	zero := h.PreHashedZero()
	bogusSiblings := []*uint256.Int{u256(123), zero[1], zero[2]}
	if _, err := Append(h, zero[3], 0, bogusSiblings, u256(1)); err != ErrInvalidProof {
		t.Fatalf("expected ErrInvalidProof, got %v", err)
	}
}
