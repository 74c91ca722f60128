// Package linalg implements the dense and sparse linear-algebra kernels
// of spec.md §4.4: dense LU/Cholesky, a sparse COO/CSR builder, skyline
// Cholesky, CG, preconditioned CG, and Reverse Cuthill-McKee ordering.
// These are implemented directly rather than deferred to gosl/la because
// spec.md §4.4 and §7 specify exact pivot tolerances and a typed
// Singular/NotPositiveDefinite error contract that a generic solver call
// does not expose; grounded in algorithm shape on
// original_source/fea-solver/src/math/{mod,sparse}.rs, with storage via
// github.com/cpmech/gosl/la.MatAlloc for the dense case (see DESIGN.md).
package linalg

import (
	"math"

	"github.com/cpmech/gosl/la"
	"github.com/daveh07/fea3d/fea/ferr"
)

// Dense wraps a row-major matrix allocated via gosl/la, matching the
// teacher's allocation idiom (fem/e_beam.go's la.MatAlloc calls).
type Dense struct {
	N, M int
	A    [][]float64
}

// NewDense allocates an n x m zeroed dense matrix.
func NewDense(n, m int) *Dense {
	return &Dense{N: n, M: m, A: la.MatAlloc(n, m)}
}

// SolveLU solves A x = b via Gaussian elimination with partial pivoting,
// returning ferr.SingularMatrixErr() if no usable pivot is found
// (spec.md §4.5 step 3).
func SolveLU(a [][]float64, b []float64) ([]float64, error) {
	n := len(b)
	aug := make([][]float64, n)
	for i := 0; i < n; i++ {
		aug[i] = make([]float64, n+1)
		copy(aug[i][:n], a[i])
		aug[i][n] = b[i]
	}
	for col := 0; col < n; col++ {
		piv := col
		best := math.Abs(aug[col][col])
		for r := col + 1; r < n; r++ {
			if math.Abs(aug[r][col]) > best {
				best = math.Abs(aug[r][col])
				piv = r
			}
		}
		if best < 1e-15 {
			return nil, ferr.SingularMatrixErr()
		}
		aug[col], aug[piv] = aug[piv], aug[col]
		for r := col + 1; r < n; r++ {
			factor := aug[r][col] / aug[col][col]
			if factor == 0 {
				continue
			}
			for c := col; c <= n; c++ {
				aug[r][c] -= factor * aug[col][c]
			}
		}
	}
	x := make([]float64, n)
	for i := n - 1; i >= 0; i-- {
		sum := aug[i][n]
		for j := i + 1; j < n; j++ {
			sum -= aug[i][j] * x[j]
		}
		x[i] = sum / aug[i][i]
	}
	return x, nil
}

// SolveCholesky solves A x = b for symmetric positive-definite A via
// dense Cholesky factorization, returning ferr.NotPositiveDefiniteErr()
// on a non-positive pivot (spec.md §4.4, §7).
func SolveCholesky(a [][]float64, b []float64) ([]float64, error) {
	n := len(b)
	l := make([][]float64, n)
	for i := range l {
		l[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := 0; j <= i; j++ {
			sum := a[i][j]
			for k := 0; k < j; k++ {
				sum -= l[i][k] * l[j][k]
			}
			if i == j {
				if sum <= 0 {
					return nil, ferr.NotPositiveDefiniteErr()
				}
				l[i][j] = math.Sqrt(sum)
			} else {
				l[i][j] = sum / l[j][j]
			}
		}
	}
	// forward: L y = b
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		sum := b[i]
		for k := 0; k < i; k++ {
			sum -= l[i][k] * y[k]
		}
		y[i] = sum / l[i][i]
	}
	// backward: Lt x = y
	x := make([]float64, n)
	for i := n - 1; i >= 0; i-- {
		sum := y[i]
		for k := i + 1; k < n; k++ {
			sum -= l[k][i] * x[k]
		}
		x[i] = sum / l[i][i]
	}
	return x, nil
}
