// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package nnls solves the non-negative least-squares problem
// 𝚖𝚒𝚗 ‖𝐀𝐱-𝐛‖₂ subject to 𝐱 ≥ 0 with the Lawson-Hanson active-set method.
//
// The n column indices are partitioned into two sets ℤ(zero) and ℙ(pivot):
//   - 𝐱ⱼ = 0, j ∈ ℤ : variables in the active set ℤ are held at zero
//   - 𝐱ⱼ > 0, j ∈ ℙ : variables in the passive set ℙ are free
//
// Substituting the problem into the KKT conditions yields the dual n-vector
// 𝐰 = -𝛁𝒇(𝐱) = 𝐀ᵀ(𝐛-𝐀𝐱), and optimality of a feasible 𝐱 is given by:
//   - 𝐰ⱼ = 0, ∀j ∈ ℙ
//   - 𝐰ⱼ ≤ 0, ∀j ∈ ℤ
//
// Each iteration relaxes the active constraint with the largest dual weight,
// moving its index from ℤ to ℙ, and solves the subproblem 𝚖𝚒𝚗 ‖𝐀ᴾ𝐳-𝐛‖₂
// restricted to the passive columns. An infeasible subproblem solution only
// yields a descent direction: the update is cut back to 𝐱 + ɑ(𝐳-𝐱) with the
// step ɑ ∈ (0,1] placing the first violating coefficient exactly on zero,
// whose index then returns from ℙ to ℤ before the subproblem is solved again.
//
// Rather than factoring 𝐀ᴾ from scratch each iteration, the solver keeps a
// working copy of the augmented system [𝐀:𝐛] under an orthogonal 𝐐 that
// triangularizes the passive columns: a Householder reflection extends the
// factorization when an index enters ℙ, and Givens rotations restore the
// triangular form when one leaves. The restricted subproblem then reduces to
// back substitution, and the residual norm falls out of the transformed
// right-hand side as ‖(𝐐𝐛)₂‖₂.
//
// All workspace is sized at construction; Solve allocates nothing.
//
// # References
//
//	C.L. Lawson, R.J. Hanson, 'Solving least squares problems' Prentice Hall, 1974.
//	(revised 1995 edition) Chapters 23, Algorithm 23.10.
package nnls

import "errors"

// Status reports the outcome of the most recent Solve.
type Status int

const (
	// NotComputed no Solve call has completed yet.
	NotComputed Status = iota
	// Success dual feasibility was reached within the iteration budget.
	Success
	// NoConvergence the iteration budget was exhausted before dual
	// feasibility; the best solution found so far is retained.
	NoConvergence
)

func (s Status) String() string {
	switch s {
	case NotComputed:
		return "NotComputed"
	case Success:
		return "Success"
	case NoConvergence:
		return "NoConvergence"
	}
	return "Unknown"
}

// factor guards acceptance of a candidate column against near linear
// dependence on the current passive set.
const factor = 0.01

// Solver holds a problem matrix 𝐀 and the workspace to solve
// 𝚖𝚒𝚗 ‖𝐀𝐱-𝐛‖₂ s.t. 𝐱 ≥ 0 for any number of right-hand sides.
//
// A Solver is not safe for concurrent use: every Solve call mutates the
// shared workspace. Independent Solver instances share no state and may
// run in parallel.
type Solver[F Float] struct {
	m, n    int
	maxIter int
	tol     F

	// pristine column-major copy of 𝐀, stride m
	a []F

	// workspace allocated once and reused by every Solve
	qa  []F   // working copy of 𝐀, overwritten with 𝐐𝐀
	qb  []F   // working copy of 𝐛, overwritten with 𝐐𝐛
	x   []F   // primal solution
	w   []F   // dual vector 𝐰
	z   []F   // subproblem solution candidate
	idx []int // idx[:np] is ℙ, idx[np:] is ℤ
	np  int   // number of passive indices

	iter   int
	status Status
	rnorm  F
	logger *Logger
}

// New builds a solver for 𝚖𝚒𝚗 ‖𝐀𝐱-𝐛‖₂ s.t. 𝐱 ≥ 0.
//
// The matrix is copied, so later mutation of a does not affect the solver.
// A unique solution requires 𝚛𝚊𝚗𝚔(𝐀) = n (hence m ≥ n); fewer rows than
// columns are accepted, but then at most m coefficients can become passive.
//
// maxIter ≤ 0 defaults to 2n. tol ≤ 0 defaults to √ε of the scalar type;
// it bounds the dual vector at termination, so problems with large entries
// may need tol scaled by the magnitudes of 𝐀 and 𝐛.
func New[F Float](a Matrix[F], maxIter int, tol F) (*Solver[F], error) {
	m, n := a.Rows, a.Cols
	switch {
	case m <= 0 || n <= 0:
		return nil, errors.New("nnls: matrix dimensions must be positive")
	case a.Stride < m:
		return nil, errors.New("nnls: matrix stride less than row count")
	case len(a.Data) < a.Stride*(n-1)+m:
		return nil, errors.New("nnls: matrix data shorter than dimensions imply")
	}

	if maxIter <= 0 {
		maxIter = 2 * n
	}
	if tol <= 0 {
		tol = sqrtEps[F]()
	}

	s := &Solver[F]{
		m: m, n: n,
		maxIter: maxIter,
		tol:     tol,
		a:       make([]F, m*n),
		qa:      make([]F, m*n),
		qb:      make([]F, m),
		x:       make([]F, n),
		w:       make([]F, n),
		z:       make([]F, m),
		idx:     make([]int, n),
	}
	for j := 0; j < n; j++ {
		copy(s.a[j*m:j*m+m], a.Data[j*a.Stride:j*a.Stride+m])
	}
	return s, nil
}

// Info returns the status of the most recent Solve.
func (s *Solver[F]) Info() Status { return s.status }

// Iterations returns the number of iterations the most recent Solve used.
func (s *Solver[F]) Iterations() int { return s.iter }

// MaxIterations returns the configured iteration budget.
func (s *Solver[F]) MaxIterations() int { return s.maxIter }

// SetMaxIterations changes the iteration budget for subsequent Solve calls.
// A value ≤ 0 restores the default 2n.
func (s *Solver[F]) SetMaxIterations(maxIter int) {
	if maxIter <= 0 {
		maxIter = 2 * s.n
	}
	s.maxIter = maxIter
}

// Tolerance returns the dual-feasibility tolerance.
func (s *Solver[F]) Tolerance() F { return s.tol }

// X returns the solution of the most recent Solve.
// The slice is owned by the solver and overwritten by the next Solve.
func (s *Solver[F]) X() []F { return s.x }

// ResidualNorm returns ‖𝐀𝐱-𝐛‖₂ for the most recent Solve.
func (s *Solver[F]) ResidualNorm() F { return s.rnorm }

// SetLogger attaches an iteration tracer. A nil logger disables tracing.
// Tracing writes through fmt and voids the no-allocation property of Solve.
func (s *Solver[F]) SetLogger(l *Logger) { s.logger = l }

// Solve computes the non-negative solution for the right-hand side b.
//
// The returned slice is the solver-owned solution vector, valid until the
// next Solve call. Exhausting the iteration budget is not fatal: Solve
// returns the best solution found and Info reports NoConvergence.
// Solve panics when len(b) does not match the row count of 𝐀.
func (s *Solver[F]) Solve(b []F) []F {
	if len(b) != s.m {
		panic("nnls: rhs dimension not match solver")
	}

	m, n, mda := s.m, s.n, s.m
	qa, qb, x, w, z, idx := s.qa, s.qb, s.x, s.w, s.z, s.idx

	copy(qa, s.a)
	copy(qb, b)
	for i := range idx {
		idx[i] = i
	}
	for i := range x {
		x[i] = 0
	}
	s.np, s.iter = 0, 0
	s.status = NotComputed

	// The main loop continues until no more active constraints can be freed.
	for {
		// Quit when ℤ is empty (all coefficients positive)
		// or m columns of 𝐀 have been triangularized.
		if s.np >= n || s.np >= m {
			return s.finish(Success)
		}

		// Dual vector 𝐰 = 𝐀ᵀ(𝐛-𝐀𝐱) over ℤ. The passive rows are already
		// triangularized and contribute zero, so only the transformed tails
		// take part in each product.
		for _, j := range idx[s.np:] {
			w[j] = dot(qa[mda*j+s.np:mda*j+m], qb[s.np:m])
		}

		for {
			// Find t ∈ ℤ such that 𝐰ₜ = 𝚖𝚊𝚡 { 𝐰ⱼ : j ∈ ℤ }.
			var wmax F
			iz := -1
			for i, j := range idx[s.np:] {
				if w[j] > wmax {
					wmax, iz = w[j], s.np+i
				}
			}

			// Quit when 𝐰ⱼ ≤ tol ∀j ∈ ℤ: no constraint worth relaxing
			// remains and the Kuhn-Tucker conditions are satisfied.
			if iz < 0 || wmax <= s.tol {
				return s.finish(Success)
			}

			j := idx[iz]
			aj := qa[mda*j : mda*j+m]

			// Trial Householder step on column j. The pivot element is
			// saved so a rejected candidate can be restored.
			asave := aj[s.np]
			up := house(s.np, aj)

			// Accept j only if it is sufficiently independent of the
			// passive columns and its proposed coefficient
			// 𝐳ₚ = (𝐐𝐛)ₚ/(𝐐𝐀)ₚⱼ would be positive.
			accept := false
			if unorm := nrm2(aj[:s.np]); abs(aj[s.np])*factor >= unorm*epsilon[F]() {
				copy(z, qb)
				applyHouse(s.np, aj, up, z)
				accept = z[s.np]/aj[s.np] > 0
			}
			if !accept {
				aj[s.np] = asave
				w[j] = 0
				continue
			}

			// Commit the transformation: 𝐛 ← 𝐐𝐛, move j from ℤ to ℙ and
			// apply the reflection to the columns remaining in ℤ.
			copy(qb, z)
			idx[iz] = idx[s.np]
			idx[s.np] = j
			s.np++
			for _, jj := range idx[s.np:] {
				applyHouse(s.np-1, aj, up, qa[mda*jj:mda*jj+m])
			}
			for i := s.np; i < m; i++ {
				aj[i] = 0
			}
			w[j] = 0

			if s.logger.enable(LogTrace) {
				s.logger.log("nnls: iter %d move column %d to passive set (w = %v)\n", s.iter, j, wmax)
			}
			break
		}

		// The freed coefficients of the subproblem solution may turn
		// negative. The inner loop continues until all violating indices
		// have been moved back to ℤ.
		for {
			if s.iter >= s.maxIter {
				return s.finish(NoConvergence)
			}
			s.iter++

			// Back substitution on the triangular system 𝐑𝐳 = (𝐐𝐛)₁
			// gives the subproblem solution over ℙ.
			for ip, col := s.np-1, -1; ip >= 0; ip-- {
				if col >= 0 {
					axpy(-z[ip+1], qa[mda*col:mda*col+ip+1], z[:ip+1])
				}
				col = idx[ip]
				z[ip] /= qa[mda*col+ip]
			}

			// Largest feasible step towards 𝐳:
			// ɑ = 𝚖𝚒𝚗 { 𝐱ⱼ/(𝐱ⱼ-𝐳ⱼ) : 𝐳ⱼ ≤ 0, j ∈ ℙ }.
			alpha, jj := F(2), -1
			for ip, l := range idx[:s.np] {
				if z[ip] <= 0 {
					if t := -x[l] / (z[ip] - x[l]); alpha > t {
						alpha, jj = t, ip
					}
				}
			}

			// All coefficients feasible: accept 𝐳 as the new 𝐱 and
			// return to the main loop.
			if jj < 0 {
				for ip, l := range idx[:s.np] {
					x[l] = z[ip]
				}
				break
			}

			// Back step: interpolate 𝐱 ← 𝐱 + ɑ(𝐳-𝐱) so the first
			// violating coefficient lands exactly on zero.
			for ip, l := range idx[:s.np] {
				x[l] += alpha * (z[ip] - x[l])
			}

			t := idx[jj]
			x[t] = 0
			if s.logger.enable(LogTrace) {
				s.logger.log("nnls: iter %d move column %d back to active set (ɑ = %v)\n", s.iter, t, alpha)
			}

			// Move t back from ℙ to ℤ. The passive columns right of t
			// shift one place left, and a Givens rotation per column
			// restores the triangular form of [𝐀:𝐛].
			for k := jj + 1; k < s.np; k++ {
				ii := idx[k]
				idx[k-1] = ii
				ci := qa[mda*ii : mda*ii+k+1]
				var cc, ss F
				cc, ss, ci[k-1] = givens(ci[k-1], ci[k])
				ci[k] = 0
				for l := 0; l < n; l++ {
					if l != ii {
						cl := qa[mda*l : mda*l+k+1]
						cl[k-1], cl[k] = rotate(cc, ss, cl[k-1], cl[k])
					}
				}
				qb[k-1], qb[k] = rotate(cc, ss, qb[k-1], qb[k])
			}
			s.np--
			idx[s.np] = t

			// Solve the shrunken subproblem again.
			copy(z, qb)
		}
	}
}

// finish records the residual norm ‖(𝐐𝐛)₂‖₂ and terminal status.
func (s *Solver[F]) finish(st Status) []F {
	if s.np < s.m {
		s.rnorm = nrm2(s.qb[s.np:s.m])
	} else {
		s.rnorm = 0
	}
	s.status = st
	if s.logger.enable(LogLast) {
		s.logger.log("nnls: %v after %d iterations, residual %v\n", st, s.iter, s.rnorm)
	}
	return s.x
}
