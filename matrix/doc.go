// SPDX-License-Identifier: MIT

// Package matrix provides the strictly shaped, single-precision matrix type
// used for genotype frequencies, genotype likelihoods and NMF factors.
//
// What & Why:
//
//	Dense is a row-major float32 buffer with explicit shape checks at every
//	public boundary. Factor updates mutate Dense values in place; products and
//	transposes allocate fresh results and never alias their operands.
//	Accumulations (products, norms) run in float64 and round once on store.
//
// Contents:
//   - dense.go          — Dense storage, safe accessors, row views, column copies.
//   - linear_algebra.go — Mul, MulTA, MulBT, Transpose.
//   - elementwise.go    — Clip, row L1 normalization, AllClose.
//   - permute.go        — column/row permutations and their inverses.
//   - norms.go          — Frobenius, chunked Frobenius, RMSD.
//   - gonum.go          — bridges to gonum/mat for dense solves.
//   - textio.go         — delimited text encoding.
//
// Errors:
//
//	All functions return sentinels from errors.go wrapped with an operation
//	tag; match them with errors.Is. No public function panics on user input.
package matrix
