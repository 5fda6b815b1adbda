// Package rollup implements an append-only, fixed-depth binary Merkle
// tree with a pluggable two-to-one hash function, single-leaf and
// sub-tree batch insertion, and a split roll-up accumulator that binds
// a leaf sequence across multiple calls using a rolling Keccak-256
// digest.
//
// Every exported function in this package is pure: no I/O, no shared
// mutable state, no goroutines. Concurrent mutation of a *SplitRollUp
// value from more than one goroutine is a caller error.
package rollup
