// Package admixnmf estimates population admixture with regularized
// non-negative matrix factorization.
//
// 🚀 What is admixnmf?
//
//	Given individual allele frequencies X (individuals × sites) and genotype
//	likelihoods, admixnmf factorizes X ≈ Q·Fᵗ where
//		• Q holds each individual's ancestry proportions (rows sum to 1)
//		• F holds the allele frequencies of each ancestral population
//	and scores the result with a Hardy–Weinberg genotype-likelihood model.
//
// ✨ Highlights
//
//   - Mini-batch multiplicative updates with adaptive inner repetition
//   - Tikhonov-style damping on Q, with an automatic search over its strength
//   - Deterministic given a seed; parallel likelihood reduction
//   - Structured progress events, zerolog and Prometheus observers
//
// Layout:
//
//	matrix/    — float32 Dense storage, products, norms, permutations, text I/O
//	partition/ — contiguous range splitting and race-free parallel reductions
//	admix/     — Fit, AlphaSearch, LogLikelihood and the update kernels
//	telemetry/ — zerolog and Prometheus observers for admix events
//	config/    — YAML run configuration
//	cmd/admixnmf — command-line front end (fit, search)
//
// Quick start:
//
//	res, err := admix.Fit(X, likes, 3, admix.WithSeed(1), admix.WithBatches(5))
//	if err != nil { /* errors.Is(err, admix.ErrInvalidInput) ... */ }
//	fmt.Println(res.LogLikelihood)
package admixnmf
