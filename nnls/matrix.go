// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nnls

// Matrix is a dense column-major matrix view:
// element (i,j) is Data[j*Stride+i] with Stride ≥ Rows.
type Matrix[F Float] struct {
	Rows, Cols int
	Stride     int
	Data       []F
}

// NewMatrix wraps data as a packed rows × cols column-major matrix.
// A nil data slice allocates a zero matrix.
func NewMatrix[F Float](rows, cols int, data []F) Matrix[F] {
	if rows < 0 || cols < 0 {
		panic("negative matrix dimension")
	}
	if data == nil {
		data = make([]F, rows*cols)
	} else if len(data) < rows*cols {
		panic("matrix data shorter than dimensions imply")
	}
	return Matrix[F]{Rows: rows, Cols: cols, Stride: rows, Data: data}
}

// At returns the element at row i, column j.
func (m Matrix[F]) At(i, j int) F {
	if i < 0 || i >= m.Rows || j < 0 || j >= m.Cols {
		panic("matrix index out of range")
	}
	return m.Data[j*m.Stride+i]
}
