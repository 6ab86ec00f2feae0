// SPDX-License-Identifier: MIT

package partition

import "errors"

var (
	// ErrEmptyRange is returned when the index space to split has no items.
	ErrEmptyRange = errors.New("partition: total must be > 0")

	// ErrBadParts is returned when the requested number of blocks is not positive.
	ErrBadParts = errors.New("partition: parts must be > 0")

	// ErrOverlap is returned when ranges handed to Accumulate overlap or fall
	// outside the accumulator.
	ErrOverlap = errors.New("partition: ranges overlap or exceed accumulator")
)
