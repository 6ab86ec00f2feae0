// SPDX-License-Identifier: MIT

// Package partition splits index spaces into contiguous blocks and runs
// disjoint-ownership parallel reductions over them.
//
// Purpose:
//   - Site batches for mini-batch updates: Split(n, batches).
//   - Individual chunks for parallel reductions: Split(m, threads).
//   - Race-free accumulation: every worker receives the exclusive sub-slice
//     of the accumulator that matches its Range; no locks are involved.
//
// Determinism:
//   - Block boundaries depend only on (total, parts).
//   - Accumulate writes each slot from exactly one goroutine, so the result is
//     identical to a sequential run; the final sum walks slots in index order.
//
// Complexity quicksheet:
//   - Split: O(parts). Accumulate: O(total) work + one goroutine per range.
package partition
