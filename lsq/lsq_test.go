// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lsq

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

func TestQRKnown(t *testing.T) {
	a := mat.NewDense(4, 2, []float64{
		1, 1,
		2, 4,
		3, 9,
		4, 16,
	})
	b := mat.NewVecDense(4, []float64{0.6, 2.2, 4.8, 8.4})

	x, err := QR(a, b)
	require.NoError(t, err)
	require.True(t, floats.EqualApprox([]float64{0.1, 0.5}, x.RawVector().Data, 1e-6))
}

func TestQRValidation(t *testing.T) {
	a := mat.NewDense(2, 3, nil)
	_, err := QR(a, mat.NewVecDense(2, nil))
	require.Error(t, err) // wide system

	a = mat.NewDense(3, 2, nil)
	_, err = QR(a, mat.NewVecDense(2, nil))
	require.Error(t, err) // rhs length mismatch
}

func TestMinNormRankDeficient(t *testing.T) {
	// Third column is the sum of the first two: rank 2.
	a := mat.NewDense(3, 3, []float64{
		1, 0, 1,
		0, 1, 1,
		0, 0, 0,
	})
	b := mat.NewVecDense(3, []float64{1, 1, 0})

	x, err := MinNorm(a, b, 0)
	require.NoError(t, err)

	// Among all solutions x1+x3 = 1, x2+x3 = 1 the minimum-norm one
	// is (1/3, 1/3, 2/3).
	want := []float64{1. / 3, 1. / 3, 2. / 3}
	require.True(t, floats.EqualApprox(want, x.RawVector().Data, 1e-10),
		"want %v got %v", want, x.RawVector().Data)

	// Residual of the consistent system is zero.
	var r mat.VecDense
	r.MulVec(a, x)
	r.SubVec(&r, b)
	require.InDelta(t, 0, mat.Norm(&r, 2), 1e-12)
}

func TestMinNormZeroMatrix(t *testing.T) {
	a := mat.NewDense(3, 2, nil)
	x, err := MinNorm(a, mat.NewVecDense(3, []float64{1, 2, 3}), 0)
	require.NoError(t, err)
	require.Equal(t, []float64{0, 0}, x.RawVector().Data)
}

func TestSubset(t *testing.T) {
	a := mat.NewDense(4, 3, []float64{
		1, 1, 1,
		2, 4, 8,
		3, 9, 27,
		4, 16, 64,
	})

	// b = 0.1·col0 + 0.13·col2, solved on the subset {0, 2}.
	var b mat.VecDense
	b.MulVec(a, mat.NewVecDense(3, []float64{0.1, 0, 0.13}))

	x, err := Subset(a, []int{0, 2}, &b)
	require.NoError(t, err)
	require.True(t, floats.EqualApprox([]float64{0.1, 0, 0.13}, x.RawVector().Data, 1e-10))
	require.Equal(t, 0.0, x.AtVec(1))

	_, err = Subset(a, []int{0, 3}, &b)
	require.Error(t, err) // column index out of range

	empty, err := Subset(a, nil, &b)
	require.NoError(t, err)
	require.Equal(t, []float64{0, 0, 0}, empty.RawVector().Data)
}
