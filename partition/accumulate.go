// SPDX-License-Identifier: MIT

package partition

import (
	"fmt"
	"sort"
	"sync"

	"gonum.org/v1/gonum/floats"
)

// Chunk is the unit of work handed to a worker: the index range it covers
// and the accumulator slots it exclusively owns (len(Acc) == Range.Len(),
// Acc[k] belongs to index Range.Start+k).
type Chunk struct {
	Range Range
	Acc   []float64
}

// Accumulate allocates an n-slot accumulator, runs fn once per range on its
// own goroutine and returns the filled accumulator after all workers join.
// MAIN DESCRIPTION:
//   - Each worker sees only Chunk.Acc, a sub-slice of the accumulator aligned
//     with its range, so no two workers can write the same slot.
//   - A single range runs inline on the calling goroutine.
//
// Errors:
//   - ErrOverlap when ranges overlap each other or leave [0,n).
//
// Complexity:
//   - Time O(n) plus fn cost, Space O(n).
func Accumulate(ranges []Range, n int, fn func(c Chunk)) ([]float64, error) {
	if err := validateDisjoint(ranges, n); err != nil {
		return nil, err
	}

	acc := make([]float64, n)
	if len(ranges) == 1 {
		r := ranges[0]
		fn(Chunk{Range: r, Acc: acc[r.Start:r.End:r.End]})

		return acc, nil
	}

	var wg sync.WaitGroup
	wg.Add(len(ranges))
	for _, r := range ranges {
		// full slice expression caps the chunk so append cannot spill into a neighbour
		c := Chunk{Range: r, Acc: acc[r.Start:r.End:r.End]}
		go func() {
			defer wg.Done()
			fn(c)
		}()
	}
	wg.Wait() // join barrier before anyone reads acc

	return acc, nil
}

// Sum runs Accumulate and reduces the accumulator in index order.
func Sum(ranges []Range, n int, fn func(c Chunk)) (float64, error) {
	acc, err := Accumulate(ranges, n, fn)
	if err != nil {
		return 0, err
	}

	return floats.Sum(acc), nil
}

// validateDisjoint checks that ranges lie in [0,n) and do not overlap.
func validateDisjoint(ranges []Range, n int) error {
	sorted := make([]Range, len(ranges))
	copy(sorted, ranges)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	prevEnd := 0
	for _, r := range sorted {
		if r.Start < prevEnd || r.End < r.Start || r.End > n {
			return fmt.Errorf("Accumulate: range %s (n=%d): %w", r, n, ErrOverlap)
		}
		prevEnd = r.End
	}

	return nil
}
