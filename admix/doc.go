// SPDX-License-Identifier: MIT

// Package admix estimates admixture proportions (Q) and ancestral allele
// frequencies (F) from individual allele frequencies X ≈ Q·Fᵗ and scores the
// fit against genotype likelihoods.
//
// What & Why:
//
//	Fit runs regularized non-negative matrix factorization with mini-batch
//	multiplicative (Lee–Seung) updates. Each site batch updates F then Q,
//	repeating each update a few times while it still makes progress
//	(acceleration). The regularization strength alpha damps Q only.
//	AlphaSearch drives Fit over a schedule of alpha values and keeps the
//	run with the highest genotype-likelihood log-likelihood.
//
// Lifecycle of one Fit:
//
//	Init → OuterLoop{ BatchSweep → ConvergenceCheck } → Finalize → Done
//
//	Init        seed the RNG, shuffle site columns, seed Q, solve F, build batches/chunks.
//	BatchSweep  per batch: accelerated F-update, then accelerated Q-update.
//	Convergence RMSD between consecutive Q; stop below tolerance or at MaxIter.
//	Finalize    un-shuffle, Pi = clip(Q·Fᵗ), Frobenius error, log-likelihood.
//
// Concurrency:
//
//	Fit and AlphaSearch run on the calling goroutine. Only the final
//	reductions (Frobenius error, log-likelihood) fan out: one goroutine per
//	individual chunk, each owning its own accumulator slots.
//	No cancellation: a started fit runs to completion.
//
// Observability:
//
//	Progress is reported as Events to an Observer (WithObserver). The
//	telemetry package provides zerolog and Prometheus observers.
//
// Determinism:
//
//	Given the same inputs and options (seed, K, iterations, batches) results
//	are bit-identical across runs; the thread count only changes how the
//	final sums are partitioned.
package admix
