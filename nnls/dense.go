// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nnls

import (
	"gonum.org/v1/gonum/mat"
)

// Dense adapts the float64 solver to gonum matrix types.
type Dense struct {
	*Solver[float64]
	rhs []float64
}

// NewDense builds a float64 solver from any gonum matrix.
// maxIter and tol follow the same defaults as New.
func NewDense(a mat.Matrix, maxIter int, tol float64) (*Dense, error) {
	m, n := a.Dims()
	col := NewMatrix[float64](m, n, nil)
	for j := 0; j < n; j++ {
		for i := 0; i < m; i++ {
			col.Data[j*m+i] = a.At(i, j)
		}
	}
	s, err := New(col, maxIter, tol)
	if err != nil {
		return nil, err
	}
	return &Dense{Solver: s, rhs: make([]float64, m)}, nil
}

// SolveVec computes the non-negative solution for the right-hand side b,
// returned as a freshly allocated vector. The status, iteration count and
// residual norm are available through the embedded solver.
func (d *Dense) SolveVec(b mat.Vector) *mat.VecDense {
	if b.Len() != d.m {
		panic("nnls: rhs dimension not match solver")
	}
	if raw, ok := b.(mat.RawVectorer); ok && raw.RawVector().Inc == 1 {
		copy(d.rhs, raw.RawVector().Data)
	} else {
		for i := range d.rhs {
			d.rhs[i] = b.AtVec(i)
		}
	}
	x := d.Solver.Solve(d.rhs)
	out := make([]float64, d.n)
	copy(out, x)
	return mat.NewVecDense(d.n, out)
}
