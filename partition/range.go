// SPDX-License-Identifier: MIT

package partition

import "fmt"

// Range is a half-open index interval [Start, End).
type Range struct {
	Start int // first index (inclusive)
	End   int // one past the last index
}

// Len returns the number of indices covered by r.
func (r Range) Len() int { return r.End - r.Start }

// String renders r as "[start,end)".
func (r Range) String() string { return fmt.Sprintf("[%d,%d)", r.Start, r.End) }

// BlockSize returns ⌈total/parts⌉ clamped to at least 1.
// Complexity: O(1).
func BlockSize(total, parts int) int {
	if parts <= 0 || total <= 0 {
		return 1
	}
	size := (total + parts - 1) / parts
	if size < 1 {
		size = 1
	}

	return size
}

// Split partitions [0,total) into contiguous blocks of size ⌈total/parts⌉.
// MAIN DESCRIPTION:
//   - The last block is truncated at total.
//   - Fewer than parts blocks are returned when the size rounding leaves
//     nothing for the tail (e.g. total=10, parts=4 → 3,3,3,1; total=6, parts=4 → 2,2,2).
//   - parts > total degrades to one item per block; it is never an error.
//
// Errors:
//   - ErrEmptyRange when total <= 0.
//   - ErrBadParts when parts <= 0.
//
// Complexity:
//   - Time O(parts), Space O(parts).
func Split(total, parts int) ([]Range, error) {
	if total <= 0 {
		return nil, fmt.Errorf("Split(%d,%d): %w", total, parts, ErrEmptyRange)
	}
	if parts <= 0 {
		return nil, fmt.Errorf("Split(%d,%d): %w", total, parts, ErrBadParts)
	}

	size := BlockSize(total, parts)
	out := make([]Range, 0, (total+size-1)/size)
	var start, end int
	for start = 0; start < total; start += size {
		end = start + size
		if end > total {
			end = total // truncate the tail block
		}
		out = append(out, Range{Start: start, End: end})
	}

	return out, nil
}
