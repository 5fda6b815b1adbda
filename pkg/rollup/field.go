package rollup

import (
	"math/big"

	"github.com/holiman/uint256"
)

// Shared BN254 scalar field arithmetic for the algebraic hashers
// (Poseidon, MiMC). Both operate over F_r, the order of the BN254
// elliptic curve group, which is the field SNARK circuits over this
// curve operate in natively.
var bn254ScalarField, _ = new(big.Int).SetString(
	"21888242871839275222246405745257275088548364400416034343698204186575808495617", 10)

// fieldAdd returns (a + b) mod r.
func fieldAdd(a, b *big.Int) *big.Int {
	r := new(big.Int).Add(a, b)
	return r.Mod(r, bn254ScalarField)
}

// fieldMul returns (a * b) mod r.
func fieldMul(a, b *big.Int) *big.Int {
	r := new(big.Int).Mul(a, b)
	return r.Mod(r, bn254ScalarField)
}

// fieldExp returns a^e mod r.
func fieldExp(a, e *big.Int) *big.Int {
	return new(big.Int).Exp(a, e, bn254ScalarField)
}

// sBox applies the degree-5 S-box x^5 mod r used by both Poseidon and
// MiMC over BN254 (the smallest exponent coprime with r-1 on this
// field).
func sBox(x *big.Int) *big.Int {
	return fieldExp(new(big.Int).Mod(x, bn254ScalarField), big.NewInt(5))
}

// uint256ToField converts a *uint256.Int value into the scalar field,
// reducing if the encoded value is >= r.
func uint256ToField(v *uint256.Int) *big.Int {
	bytes := v.Bytes32()
	b := new(big.Int).SetBytes(bytes[:])
	return b.Mod(b, bn254ScalarField)
}

// fieldToUint256 converts a reduced scalar field element back into a
// *uint256.Int.
func fieldToUint256(v *big.Int) *uint256.Int {
	var out uint256.Int
	out.SetBytes(v.Bytes())
	return &out
}
