// SPDX-License-Identifier: MIT

// Package matrix - Dense storage (row-major, float32) & safe accessors.
//
// Purpose:
//   - Provide a cache-friendly row-major buffer with the explicit index formula i*cols + j.
//   - Guarantee safety at the public surface: At/Set return errors instead of panicking.
//   - Support no-copy row windows (RowView) and copy-based column extraction (ColRange).
//   - Enforce a numeric policy (rejection of NaN/Inf on Set/Apply) from a single flag.
//
// AI-Hints:
//   - Hot kernels outside the package read and write through Data(); the
//     layout contract (offset = i*Cols()+j) is part of the API.
//   - RowView windows share storage with the base; writes are visible in both.
//
// Complexity quicksheet:
//   - NewDense: O(r*c) zero-init; At/Set: O(1); Clone: O(r*c); RowView: O(1); ColRange: O(r*w).

package matrix

import (
	"fmt"
	"math"
	"strings"
)

// DefaultValidateNaNInf toggles finite-only validation in Set and Apply.
const DefaultValidateNaNInf = true

// ---------- error context tags ----------

const (
	ctxAt       = "At"
	ctxSet      = "Set"
	ctxApply    = "Apply"
	ctxRowView  = "RowView"
	ctxColRange = "ColRange"
	ctxCopyFrom = "CopyFrom"
	ctxData     = "NewDenseData"
)

// ---------- formatting literals ----------

const (
	_fmtRowOpen  = "["
	_fmtRowClose = "]\n"
	_fmtSep      = ", "
)

// denseErrorf wraps an error with a uniform Dense context and callsite indices.
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a concrete row-major single-precision matrix.
//   - r,c hold dimensions (rows, cols).
//   - data is a flat buffer of length r*c in row-major order (offset = i*c + j).
//   - validateNaNInf enables NaN/Inf rejection in Set and Apply.
type Dense struct {
	r, c           int       // row and column counts (> 0)
	data           []float32 // contiguous row-major storage (len == r*c)
	validateNaNInf bool      // numeric guard for Set/Apply
}

var _ fmt.Stringer = (*Dense)(nil)

// NewDense creates an r×c zero matrix using row-major storage.
// MAIN DESCRIPTION:
//   - Public constructor with strict shape validation and default numeric policy.
//
// Errors:
//   - ErrInvalidDimensions when rows<=0 or cols<=0.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewDense(rows, cols int) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}

	return &Dense{
		r:              rows,
		c:              cols,
		data:           make([]float32, rows*cols), // zero-filled by the runtime
		validateNaNInf: DefaultValidateNaNInf,
	}, nil
}

// NewDenseData creates an r×c matrix holding a copy of data (row-major).
// MAIN DESCRIPTION:
//   - Ingestion constructor: the caller keeps ownership of data.
//
// Implementation:
//   - Stage 1: validate shape and len(data) == rows*cols.
//   - Stage 2: reject NaN/±Inf under the default numeric policy.
//   - Stage 3: copy into a fresh buffer.
//
// Errors:
//   - ErrInvalidDimensions, ErrDimensionMismatch, ErrNaNInf (with coordinates).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewDenseData(rows, cols int, data []float32) (*Dense, error) {
	m, err := NewDense(rows, cols)
	if err != nil {
		return nil, err
	}
	if len(data) != rows*cols {
		return nil, fmt.Errorf("%s(%d,%d): len=%d: %w", ctxData, rows, cols, len(data), ErrDimensionMismatch)
	}
	for idx, v := range data {
		if isNonFinite32(v) {
			return nil, denseErrorf(ctxData, idx/cols, idx%cols, ErrNaNInf)
		}
	}
	copy(m.data, data)

	return m, nil
}

// Rows returns the row count. Complexity: O(1).
func (m *Dense) Rows() int { return m.r }

// Cols returns the column count. Complexity: O(1).
func (m *Dense) Cols() int { return m.c }

// Shape packs Rows() and Cols() into a single call.
func (m *Dense) Shape() (rows, cols int) { return m.r, m.c }

// Data exposes the row-major backing slice (len == Rows()*Cols()).
// Writes through the slice bypass the numeric policy.
func (m *Dense) Data() []float32 { return m.data }

// indexOf bounds-checks (row,col) and returns the flat offset.
func (m *Dense) indexOf(row, col int) (int, error) {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return 0, ErrOutOfRange
	}

	return row*m.c + col, nil
}

// At returns the value at (row, col) or ErrOutOfRange.
// Complexity: O(1).
func (m *Dense) At(row, col int) (float32, error) {
	off, err := m.indexOf(row, col)
	if err != nil {
		return 0, denseErrorf(ctxAt, row, col, err)
	}

	return m.data[off], nil
}

// Set stores v at (row, col) or returns an error (bounds or numeric policy).
// Errors:
//   - ErrOutOfRange for bounds; ErrNaNInf for non-finite v when policy is on.
//
// Complexity: O(1).
func (m *Dense) Set(row, col int, v float32) error {
	off, err := m.indexOf(row, col)
	if err != nil {
		return denseErrorf(ctxSet, row, col, err)
	}
	if m.validateNaNInf && isNonFinite32(v) {
		return denseErrorf(ctxSet, row, col, ErrNaNInf)
	}
	m.data[off] = v

	return nil
}

// Row returns a copy of row i.
func (m *Dense) Row(i int) ([]float32, error) {
	if i < 0 || i >= m.r {
		return nil, denseErrorf(ctxAt, i, 0, ErrOutOfRange)
	}
	out := make([]float32, m.c)
	copy(out, m.data[i*m.c:(i+1)*m.c])

	return out, nil
}

// Clone returns a deep copy (new buffer, same numeric policy).
// Complexity: O(r*c).
func (m *Dense) Clone() *Dense {
	cp := make([]float32, len(m.data))
	copy(cp, m.data)

	return &Dense{r: m.r, c: m.c, data: cp, validateNaNInf: m.validateNaNInf}
}

// CopyFrom overwrites m with the contents of src (identical shapes required).
// Used to refresh snapshot buffers without reallocating.
func (m *Dense) CopyFrom(src *Dense) error {
	if src == nil {
		return fmt.Errorf("Dense.%s: %w", ctxCopyFrom, ErrNilMatrix)
	}
	if m.r != src.r || m.c != src.c {
		return fmt.Errorf("Dense.%s: %dx%d <- %dx%d: %w", ctxCopyFrom, m.r, m.c, src.r, src.c, ErrDimensionMismatch)
	}
	copy(m.data, src.data)

	return nil
}

// RowView returns a no-copy window over rows [r0, r1) sharing storage with m.
// MAIN DESCRIPTION:
//   - Rows are contiguous in row-major layout, so the window is itself a
//     valid Dense; in-place updates on the view mutate m.
//
// Errors:
//   - ErrOutOfRange when the window is empty or leaves [0, Rows()).
//
// Complexity:
//   - Time O(1), Space O(1).
func (m *Dense) RowView(r0, r1 int) (*Dense, error) {
	if r0 < 0 || r1 > m.r || r0 >= r1 {
		return nil, fmt.Errorf("Dense.%s(%d,%d): %w", ctxRowView, r0, r1, ErrOutOfRange)
	}

	return &Dense{
		r:              r1 - r0,
		c:              m.c,
		data:           m.data[r0*m.c : r1*m.c : r1*m.c],
		validateNaNInf: m.validateNaNInf,
	}, nil
}

// ColRange materializes a copy of columns [c0, c1).
// Errors:
//   - ErrOutOfRange when the window is empty or leaves [0, Cols()).
//
// Complexity:
//   - Time O(r*(c1-c0)), Space O(r*(c1-c0)).
func (m *Dense) ColRange(c0, c1 int) (*Dense, error) {
	if c0 < 0 || c1 > m.c || c0 >= c1 {
		return nil, fmt.Errorf("Dense.%s(%d,%d): %w", ctxColRange, c0, c1, ErrOutOfRange)
	}
	w := c1 - c0
	out := &Dense{r: m.r, c: w, data: make([]float32, m.r*w), validateNaNInf: m.validateNaNInf}
	for i := 0; i < m.r; i++ {
		copy(out.data[i*w:(i+1)*w], m.data[i*m.c+c0:i*m.c+c1])
	}

	return out, nil
}

// String renders rows as bracketed, comma-separated lines. Diagnostics only.
func (m *Dense) String() string {
	var b strings.Builder
	var i, j, base int
	for i = 0; i < m.r; i++ {
		b.WriteString(_fmtRowOpen)
		base = i * m.c
		for j = 0; j < m.c; j++ {
			b.WriteString(fmt.Sprintf("%g", m.data[base+j]))
			if j+1 < m.c {
				b.WriteString(_fmtSep)
			}
		}
		b.WriteString(_fmtRowClose)
	}

	return b.String()
}

// Do visits each element in row-major order; stops early when f returns false.
func (m *Dense) Do(f func(i, j int, v float32) bool) {
	var i, j, base int
	for i = 0; i < m.r; i++ {
		base = i * m.c
		for j = 0; j < m.c; j++ {
			if !f(i, j, m.data[base+j]) {
				return
			}
		}
	}
}

// Apply replaces each element with f(i,j,v) in place.
// Behavior highlights:
//   - Deterministic row-major order.
//   - Under the numeric policy a non-finite result aborts with ErrNaNInf;
//     elements written before the failure remain updated.
func (m *Dense) Apply(f func(i, j int, v float32) float32) error {
	var i, j, base int
	var nv float32
	for i = 0; i < m.r; i++ {
		base = i * m.c
		for j = 0; j < m.c; j++ {
			nv = f(i, j, m.data[base+j])
			if m.validateNaNInf && isNonFinite32(nv) {
				return denseErrorf(ctxApply, i, j, ErrNaNInf)
			}
			m.data[base+j] = nv
		}
	}

	return nil
}

// isNonFinite32 reports NaN or ±Inf.
func isNonFinite32(v float32) bool {
	f := float64(v)

	return math.IsNaN(f) || math.IsInf(f, 0)
}
