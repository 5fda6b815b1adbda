package rollup

import (
	"testing"

	"github.com/holiman/uint256"
)

// These tests check cross-cutting properties that should hold for any
// hasher and any sequence of appends, rather than one fixed scenario.

func eachHasher(t *testing.T, depth uint, f func(t *testing.T, h Hasher)) {
	t.Helper()
	for _, h := range []Hasher{NewKeccakHasher(depth), NewPoseidonHasher(depth), NewMiMCHasher(depth)} {
		h := h
		t.Run("", func(t *testing.T) { f(t, h) })
	}
}

func TestSingleAppendsEquivalentToRollUpForAnyHasher(t *testing.T) {
	eachHasher(t, 4, func(t *testing.T, h Hasher) {
		zero := h.PreHashedZero()
		root := zero[4]
		siblings := append([]*uint256.Int(nil), zero[0], zero[1], zero[2], zero[3])
		leaves := []*uint256.Int{u256(11), u256(22), u256(33)}

		seqRoot, seqIndex, seqSiblings := root, uint64(0), siblings
		for _, leaf := range leaves {
			res, err := Append(h, seqRoot, seqIndex, seqSiblings, leaf)
			if err != nil {
				t.Fatalf("append: %v", err)
			}
			seqRoot, seqIndex, seqSiblings = res.State.Root, res.State.Index, res.Siblings
		}

		batch, err := RollUp(h, root, 0, siblings, leaves)
		if err != nil {
			t.Fatalf("rollup: %v", err)
		}
		if !batch.State.Root.Eq(seqRoot) || batch.State.Index != seqIndex {
			t.Fatal("RollUp must agree with an equivalent sequence of Append calls")
		}
	})
}

func TestStartingLeafProofHoldsOnlyAtNextIndex(t *testing.T) {
	eachHasher(t, 3, func(t *testing.T, h Hasher) {
		zero := h.PreHashedZero()
		res, err := Append(h, zero[3], 0, []*uint256.Int{zero[0], zero[1], zero[2]}, u256(5))
		if err != nil {
			t.Fatalf("append: %v", err)
		}

		ok, err := StartingLeafProof(h, res.State.Root, res.State.Index, res.Siblings)
		if err != nil || !ok {
			t.Fatalf("proof at the real next index should verify: ok=%v err=%v", ok, err)
		}

		for _, wrongIndex := range []uint64{0, 2, 3} {
			ok, err := StartingLeafProof(h, res.State.Root, wrongIndex, res.Siblings)
			if err == nil && ok {
				t.Fatalf("proof at index %d should not verify", wrongIndex)
			}
		}
	})
}

func TestAppendNeverExceedsTreeCapacity(t *testing.T) {
	eachHasher(t, 2, func(t *testing.T, h Hasher) {
		zero := h.PreHashedZero()
		root := zero[2]
		siblings := []*uint256.Int{zero[0], zero[1]}
		for i := uint64(0); i < 4; i++ {
			res, err := Append(h, root, i, siblings, u256(i+1))
			if err != nil {
				t.Fatalf("append %d: %v", i, err)
			}
			root, siblings = res.State.Root, res.Siblings
		}
		if _, err := Append(h, root, 4, siblings, u256(99)); err == nil {
			t.Fatal("appending past 2^depth leaves should fail")
		}
	})
}

func TestSubTreeRootAgreesWithLeafByLeafAppendForAnyHasher(t *testing.T) {
	eachHasher(t, 5, func(t *testing.T, h Hasher) {
		zero := h.PreHashedZero()
		d := uint(2)
		leaves := []*uint256.Int{u256(1), u256(2), u256(3), u256(4)}

		viaSubTree, err := AppendSubTree(h, zero[5], d, 0, []*uint256.Int{zero[2], zero[3], zero[4]}, leaves)
		if err != nil {
			t.Fatalf("append subtree: %v", err)
		}

		root, index, siblings := zero[5], uint64(0), []*uint256.Int{zero[0], zero[1], zero[2], zero[3], zero[4]}
		for _, leaf := range leaves {
			res, err := Append(h, root, index, siblings, leaf)
			if err != nil {
				t.Fatalf("append: %v", err)
			}
			root, index, siblings = res.State.Root, res.State.Index, res.Siblings
		}

		if !viaSubTree.State.Root.Eq(root) {
			t.Fatal("subtree insertion of a full batch must match leaf-by-leaf insertion")
		}
	})
}

func TestVerifyOnlyPassesForTheAccumulatorsOwnTransition(t *testing.T) {
	h := NewKeccakHasher(4)
	zero := h.PreHashedZero()
	start := TreeState{Root: zero[4], Index: 0}
	acc := NewSplitRollUp(h, 4, start)
	if err := acc.Update([]*uint256.Int{zero[0], zero[1], zero[2], zero[3]}, []*uint256.Int{u256(1), u256(2)}); err != nil {
		t.Fatalf("update: %v", err)
	}

	wrongResult := acc.Result
	wrongResult.Index++
	opru := &OPRU{Start: start, Result: wrongResult, MergedLeaves: acc.MergedLeaves}
	if _, err := Verify(acc, opru); err != ErrVerifyResultIndexMismatch {
		t.Fatalf("expected ErrVerifyResultIndexMismatch, got %v", err)
	}
}
