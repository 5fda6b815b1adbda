package rollup

import (
	"testing"

	"github.com/holiman/uint256"
)

func u256(v uint64) *uint256.Int {
	return uint256.NewInt(v)
}

func TestBuildZeroTable(t *testing.T) {
	h := NewKeccakHasher(4)
	zero := h.PreHashedZero()
	if len(zero) != 5 {
		t.Fatalf("expected 5 entries, got %d", len(zero))
	}
	if !zero[0].Eq(u256(0)) {
		t.Fatalf("zero[0] should be the empty leaf")
	}
	for i := 1; i < len(zero); i++ {
		want := h.ParentOf(zero[i-1], zero[i-1])
		if !zero[i].Eq(want) {
			t.Fatalf("zero[%d] mismatch", i)
		}
	}
}

func TestKeccakHasherDeterministic(t *testing.T) {
	h := NewKeccakHasher(2)
	a, b := u256(1), u256(2)
	if !h.ParentOf(a, b).Eq(h.ParentOf(a, b)) {
		t.Fatal("ParentOf should be deterministic")
	}
	if h.ParentOf(a, b).Eq(h.ParentOf(b, a)) {
		t.Fatal("ParentOf should not be commutative")
	}
}

func TestPoseidonHasherDeterministicAndOrderSensitive(t *testing.T) {
	h := NewPoseidonHasher(2)
	a, b := u256(1), u256(2)
	if !h.ParentOf(a, b).Eq(h.ParentOf(a, b)) {
		t.Fatal("ParentOf should be deterministic")
	}
	if h.ParentOf(a, b).Eq(h.ParentOf(b, a)) {
		t.Fatal("ParentOf should depend on operand order")
	}
	if h.ParentOf(a, b).Eq(h.ParentOf(a, u256(3))) {
		t.Fatal("different inputs should not collide")
	}
}

func TestMiMCHasherDeterministicAndOrderSensitive(t *testing.T) {
	h := NewMiMCHasher(2)
	a, b := u256(1), u256(2)
	if !h.ParentOf(a, b).Eq(h.ParentOf(a, b)) {
		t.Fatal("ParentOf should be deterministic")
	}
	if h.ParentOf(a, b).Eq(h.ParentOf(b, a)) {
		t.Fatal("ParentOf should depend on operand order")
	}
}

func TestHashersAgreeOnZeroTableShape(t *testing.T) {
	for _, h := range []Hasher{NewKeccakHasher(3), NewPoseidonHasher(3), NewMiMCHasher(3)} {
		if len(h.PreHashedZero()) != 4 {
			t.Fatalf("%T: expected 4 zero entries, got %d", h, len(h.PreHashedZero()))
		}
	}
}
