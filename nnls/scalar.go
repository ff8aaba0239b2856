// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nnls

import "math"

// Float is the scalar constraint of the solver.
// float32 serves as the reduced-precision backend.
type Float interface {
	~float32 | ~float64
}

// epsilon computes the machine precision of F.
// The float32 rounding of 7/3 lands below 4/3 + 1, hence the sign fix.
func epsilon[F Float]() F {
	e := F(7)/3 - F(4)/3 - 1
	if e < 0 {
		e = -e
	}
	return e
}

// sqrtEps is the default dual-feasibility tolerance for F.
func sqrtEps[F Float]() F {
	return sqrt(epsilon[F]())
}

func sqrt[F Float](x F) F {
	return F(math.Sqrt(float64(x)))
}

func abs[F Float](x F) F {
	if x < 0 {
		return -x
	}
	return x
}
