// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nnls

// house constructs the Householder reflection 𝐐 = 𝐈 - b⁻¹𝐮𝐮ᵀ (b = s·uₚ) that
// zeroes v[p+1:] while leaving v[:p] untouched.
//
// On return v holds the quantities defining 𝐮 together with the new pivot
// value s = -σ‖(vₚ,v[p+1:])‖₂ at v[p], and up holds the pivot component
// uₚ = vₚ - s of 𝐮. When v[p:] is zero the reflection is the identity and
// up is returned as zero.
//
// C.L. Lawson, R.J. Hanson, 'Solving least squares problems' Prentice Hall, 1974.
// (revised 1995 edition) Chapters 10.
func house[F Float](p int, v []F) (up F) {
	m := len(v)
	if p < 0 || p+1 >= m {
		return
	}

	// Scale by the largest magnitude to avoid overflow in the sum of squares.
	maxV := abs(v[p])
	for _, t := range v[p+1:] {
		if t = abs(t); t > maxV {
			maxV = t
		}
	}
	if maxV <= 0 {
		return
	}

	inv := 1 / maxV
	t := v[p] * inv
	sum := t * t
	for _, u := range v[p+1:] {
		u *= inv
		sum += u * u
	}

	s := maxV * sqrt(sum)
	if v[p] > 0 {
		s = -s
	}
	up = v[p] - s
	v[p] = s
	return up
}

// applyHouse applies the reflection built by house on (u, up) to the vector c
// in place: c ← c + b⁻¹(𝐮ᵀc)𝐮.
func applyHouse[F Float](p int, u []F, up F, c []F) {
	m := len(u)
	if p < 0 || p+1 >= m || len(c) < m {
		return
	}

	b := u[p] * up
	if b >= 0 {
		// Identity transformation when s·uₚ = 0.
		return
	}
	b = 1 / b

	sm := c[p] * up
	for i := p + 1; i < m; i++ {
		sm += c[i] * u[i]
	}
	if sm != 0 {
		sm *= b
		c[p] += sm * up
		for i := p + 1; i < m; i++ {
			c[i] += sm * u[i]
		}
	}
}

// givens computes the 2×2 rotation
//
//	⎡ c s⎤⎡a⎤ = ⎡(a²+b²)¹ᐟ²⎤ ≡ ⎡r⎤
//	⎣-s c⎦⎣b⎦   ⎣     ０    ⎦   ⎣0⎦
//
// used to restore triangular form after a column leaves the passive set.
//
// C.L. Lawson, R.J. Hanson, 'Solving least squares problems' Prentice Hall, 1974.
// (revised 1995 edition) Chapters 3.
func givens[F Float](a, b F) (c, s, r F) {
	if xa, xb := abs(a), abs(b); xa > xb {
		xr := b / a
		yr := sqrt(1 + xr*xr)
		c = 1 / yr
		if a < 0 {
			c = -c
		}
		s = c * xr
		r = xa * yr
	} else if xb > 0 {
		xr := a / b
		yr := sqrt(1 + xr*xr)
		s = 1 / yr
		if b < 0 {
			s = -s
		}
		c = s * xr
		r = xb * yr
	} else {
		s = 1
	}
	return c, s, r
}

// rotate applies the rotation computed by givens to the pair (x, y).
func rotate[F Float](c, s, x, y F) (F, F) {
	return c*x + s*y, -s*x + c*y
}
