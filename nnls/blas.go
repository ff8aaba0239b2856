// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nnls

// Unit-stride level-1 kernels over the generic scalar.
// The float64 boundary uses gonum instead (dense.go, lsq).

// dot computes the inner product of x and y.
func dot[F Float](x, y []F) (d F) {
	if len(x) > len(y) {
		panic("bound check error")
	}
	for i, v := range x {
		d += v * y[i]
	}
	return d
}

// axpy computes y += a*x over len(y) elements.
func axpy[F Float](a F, x, y []F) {
	if a == 0 {
		return
	}
	if len(y) > len(x) {
		panic("bound check error")
	}
	for i := range y {
		y[i] += a * x[i]
	}
}

// nrm2 computes the Euclidean norm of x without overflow.
func nrm2[F Float](x []F) F {
	switch len(x) {
	case 0:
		return 0
	case 1:
		return abs(x[0])
	}
	var scale F
	ssq := F(1)
	for _, v := range x {
		if v = abs(v); v > 0 {
			if scale < v {
				s := scale / v
				ssq = 1 + ssq*s*s
				scale = v
			} else {
				s := v / scale
				ssq += s * s
			}
		}
	}
	return scale * sqrt(ssq)
}
