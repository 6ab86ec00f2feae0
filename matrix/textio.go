// SPDX-License-Identifier: MIT
// Package matrix - whitespace-delimited text encoding.
//
// Format:
//   - One row per line, cells separated by spaces or tabs.
//   - Blank lines and lines starting with '#' are ignored.
//   - Every data line must have the same number of cells.

package matrix

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const (
	commentPrefix = "#"
	cellSep       = '\t'
	maxLineBytes  = 64 << 20 // wide genotype rows
)

// ReadText decodes a Dense from r.
// Errors:
//   - ErrParse (bad number, ragged rows), ErrInvalidDimensions (no data),
//     ErrNaNInf (non-finite cells), plus any read error from r.
//
// Complexity: O(r*c).
func ReadText(r io.Reader) (*Dense, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var (
		data []float32
		cols int
		rows int
		line int
	)
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, commentPrefix) {
			continue
		}
		fields := strings.Fields(text)
		if rows == 0 {
			cols = len(fields)
		} else if len(fields) != cols {
			return nil, matrixErrorf(opRead, fmt.Errorf("line %d: %d cells, want %d: %w", line, len(fields), cols, ErrParse))
		}
		for j, f := range fields {
			v, err := strconv.ParseFloat(f, 32)
			if err != nil {
				return nil, matrixErrorf(opRead, fmt.Errorf("line %d col %d: %q: %w", line, j, f, ErrParse))
			}
			data = append(data, float32(v))
		}
		rows++
	}
	if err := sc.Err(); err != nil {
		return nil, matrixErrorf(opRead, err)
	}

	m, err := NewDenseData(rows, cols, data)
	if err != nil {
		return nil, matrixErrorf(opRead, err)
	}

	return m, nil
}

// WriteText encodes m to w with prec digits after the decimal point
// (prec < 0 selects the shortest exact representation).
func WriteText(w io.Writer, m *Dense, prec int) error {
	if err := ValidateNotNil(m); err != nil {
		return matrixErrorf(opWrite, err)
	}
	bw := bufio.NewWriter(w)
	buf := make([]byte, 0, 32)
	var i, j int
	for i = 0; i < m.r; i++ {
		for j = 0; j < m.c; j++ {
			if j > 0 {
				buf = append(buf, cellSep)
			}
			buf = strconv.AppendFloat(buf, float64(m.data[i*m.c+j]), 'f', prec, 32)
			if _, err := bw.Write(buf); err != nil {
				return matrixErrorf(opWrite, err)
			}
			buf = buf[:0]
		}
		if err := bw.WriteByte('\n'); err != nil {
			return matrixErrorf(opWrite, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return matrixErrorf(opWrite, err)
	}

	return nil
}
