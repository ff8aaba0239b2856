// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package lsq provides unconstrained linear least-squares solves on top of
// the gonum decompositions: a QR solve for full column rank systems, a
// rank-revealing SVD minimum-norm solve, and solves restricted to an
// arbitrary column subset.
package lsq

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
)

var eps = math.Nextafter(1, 2) - 1

// QR solves 𝚖𝚒𝚗 ‖𝐀𝐱-𝐛‖₂ via the QR decomposition of 𝐀.
// The matrix must have at least as many rows as columns; an
// ill-conditioned system surfaces as a mat.Condition error.
func QR(a mat.Matrix, b mat.Vector) (*mat.VecDense, error) {
	m, n := a.Dims()
	switch {
	case m <= 0 || n <= 0:
		return nil, errors.New("lsq: matrix dimensions must be positive")
	case m < n:
		return nil, errors.New("lsq: QR needs at least as many rows as columns")
	case b.Len() != m:
		return nil, errors.New("lsq: rhs length does not match row count")
	}

	var qr mat.QR
	qr.Factorize(a)
	var x mat.VecDense
	if err := qr.SolveVecTo(&x, false, b); err != nil {
		return nil, err
	}
	return &x, nil
}

// MinNorm solves 𝚖𝚒𝚗 ‖𝐀𝐱-𝐛‖₂ via a rank-revealing SVD, returning the
// minimum-norm solution. Singular values at or below rcond times the largest
// are treated as zero, so rank-deficient systems do not abort.
// rcond ≤ 0 defaults to 𝚖𝚊𝚡(m,n)·ε.
func MinNorm(a mat.Matrix, b mat.Vector, rcond float64) (*mat.VecDense, error) {
	m, n := a.Dims()
	switch {
	case m <= 0 || n <= 0:
		return nil, errors.New("lsq: matrix dimensions must be positive")
	case b.Len() != m:
		return nil, errors.New("lsq: rhs length does not match row count")
	}

	var svd mat.SVD
	if ok := svd.Factorize(a, mat.SVDThin); !ok {
		return nil, errors.New("lsq: SVD factorization failed")
	}
	if rcond <= 0 {
		rcond = float64(max(m, n)) * eps
	}

	values := svd.Values(nil)
	rank := 0
	for _, v := range values {
		if v > rcond*values[0] {
			rank++
		}
	}
	if rank == 0 {
		return mat.NewVecDense(n, nil), nil
	}

	var x mat.VecDense
	svd.SolveVecTo(&x, b, rank)
	return &x, nil
}

// Subset solves the least-squares problem restricted to the given column
// subset of 𝐀 and scatters the result into a full-length solution with
// zeros on the complement.
func Subset(a mat.Matrix, cols []int, b mat.Vector) (*mat.VecDense, error) {
	m, n := a.Dims()
	switch {
	case m <= 0 || n <= 0:
		return nil, errors.New("lsq: matrix dimensions must be positive")
	case b.Len() != m:
		return nil, errors.New("lsq: rhs length does not match row count")
	}
	if len(cols) == 0 {
		return mat.NewVecDense(n, nil), nil
	}

	sub := mat.NewDense(m, len(cols), nil)
	for k, j := range cols {
		if j < 0 || j >= n {
			return nil, errors.New("lsq: column index out of range")
		}
		for i := 0; i < m; i++ {
			sub.Set(i, k, a.At(i, j))
		}
	}

	y, err := QR(sub, b)
	if err != nil {
		return nil, err
	}
	x := mat.NewVecDense(n, nil)
	for k, j := range cols {
		x.SetVec(j, y.AtVec(k))
	}
	return x, nil
}
