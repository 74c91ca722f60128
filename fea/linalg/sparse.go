package linalg

import (
	"math"
	"sort"

	"github.com/daveh07/fea3d/fea/ferr"
)

const sparseDropTol = 1e-15

// CooEntry is one (row,col,value) triple of the COO accumulator.
type CooEntry struct {
	Row, Col int
	Value    float64
}

// SparseBuilder accumulates (row,col,value) triples and converts to CSR
// on ToCSR (spec.md §4.4), grounded on
// original_source/fea-solver/src/math/sparse.rs's SparseMatrixBuilder.
type SparseBuilder struct {
	Size    int
	Entries []CooEntry
}

// NewSparseBuilder pre-sizes the entry slice, mirroring the Rust
// source's size*60 capacity heuristic for typical frame/plate meshes.
func NewSparseBuilder(size int) *SparseBuilder {
	return &SparseBuilder{Size: size, Entries: make([]CooEntry, 0, size*60)}
}

// Add records one (row,col,value) triple, dropping negligible values
// (spec.md §6's sparse accumulator threshold).
func (b *SparseBuilder) Add(row, col int, value float64) {
	if math.Abs(value) <= sparseDropTol {
		return
	}
	b.Entries = append(b.Entries, CooEntry{row, col, value})
}

// AddBlock scatters an n x n dense block at (rowStart,colStart).
func (b *SparseBuilder) AddBlock(rowStart, colStart int, block [][]float64) {
	for i := range block {
		for j := range block[i] {
			b.Add(rowStart+i, colStart+j, block[i][j])
		}
	}
}

// AddElementMatrix scatters an element matrix at the given global DOF
// indices.
func (b *SparseBuilder) AddElementMatrix(dofs []int, kElem [][]float64) {
	for a, row := range dofs {
		for c, col := range dofs {
			b.Add(row, col, kElem[a][c])
		}
	}
}

// CSR is a compressed-sparse-row matrix.
type CSR struct {
	N          int
	RowOffsets []int
	ColIndices []int
	Values     []float64
}

// ToCSR merges duplicate (row,col) entries by summation and sorts
// within each row by column.
func (b *SparseBuilder) ToCSR() *CSR {
	type key struct{ r, c int }
	merged := make(map[key]float64, len(b.Entries))
	for _, e := range b.Entries {
		merged[key{e.Row, e.Col}] += e.Value
	}
	rows := make([][]int, b.Size)
	for k := range merged {
		rows[k.r] = append(rows[k.r], k.c)
	}
	csr := &CSR{N: b.Size, RowOffsets: make([]int, b.Size+1)}
	for r := 0; r < b.Size; r++ {
		sort.Ints(rows[r])
		csr.RowOffsets[r+1] = csr.RowOffsets[r] + len(rows[r])
	}
	csr.ColIndices = make([]int, csr.RowOffsets[b.Size])
	csr.Values = make([]float64, csr.RowOffsets[b.Size])
	idx := 0
	for r := 0; r < b.Size; r++ {
		for _, c := range rows[r] {
			csr.ColIndices[idx] = c
			csr.Values[idx] = merged[key{r, c}]
			idx++
		}
	}
	return csr
}

// ToDense expands the builder into an n x n dense slice.
func (b *SparseBuilder) ToDense() [][]float64 {
	out := make([][]float64, b.Size)
	for i := range out {
		out[i] = make([]float64, b.Size)
	}
	for _, e := range b.Entries {
		out[e.Row][e.Col] += e.Value
	}
	return out
}

// Nnz returns the number of stored (pre-merge) entries.
func (b *SparseBuilder) Nnz() int { return len(b.Entries) }

// Sparsity returns the fraction of the dense n^2 footprint occupied.
func (b *SparseBuilder) Sparsity() float64 {
	if b.Size == 0 {
		return 0
	}
	return float64(len(b.Entries)) / float64(b.Size*b.Size)
}

// Get returns the value at (row,col), 0 if absent. O(log nnz-in-row).
func (c *CSR) Get(row, col int) float64 {
	lo, hi := c.RowOffsets[row], c.RowOffsets[row+1]
	for lo < hi {
		mid := (lo + hi) / 2
		if c.ColIndices[mid] < col {
			lo = mid + 1
		} else if c.ColIndices[mid] > col {
			hi = mid
		} else {
			return c.Values[mid]
		}
	}
	return 0
}

// MatVec computes y = A x for a CSR matrix.
func MatVec(c *CSR, x []float64) []float64 {
	y := make([]float64, c.N)
	for r := 0; r < c.N; r++ {
		var s float64
		for idx := c.RowOffsets[r]; idx < c.RowOffsets[r+1]; idx++ {
			s += c.Values[idx] * x[c.ColIndices[idx]]
		}
		y[r] = s
	}
	return y
}

// SkylineCholesky is a symmetric sparse direct solver storing each row
// from its column-height bound to the diagonal (spec.md §4.4's "Skyline
// Cholesky"), grounded on
// original_source/fea-solver/src/math/sparse.rs's SparseCholeskySolver.
type SkylineCholesky struct {
	n       int
	heights []int
	skyline [][]float64 // skyline[i] has length heights[i]+1, column (i-heights[i])..i
}

// NewSkylineCholesky builds column-height bookkeeping and copies in the
// lower-triangular nonzeros of csr.
func NewSkylineCholesky(csr *CSR) *SkylineCholesky {
	n := csr.N
	heights := make([]int, n)
	for r := 0; r < n; r++ {
		h := 0
		for idx := csr.RowOffsets[r]; idx < csr.RowOffsets[r+1]; idx++ {
			col := csr.ColIndices[idx]
			if col < r && r-col > h {
				h = r - col
			}
		}
		heights[r] = h
	}
	sc := &SkylineCholesky{n: n, heights: heights, skyline: make([][]float64, n)}
	for r := 0; r < n; r++ {
		sc.skyline[r] = make([]float64, heights[r]+1)
	}
	for r := 0; r < n; r++ {
		start := r - heights[r]
		for idx := csr.RowOffsets[r]; idx < csr.RowOffsets[r+1]; idx++ {
			col := csr.ColIndices[idx]
			if col >= start && col <= r {
				sc.skyline[r][col-start] = csr.Values[idx]
			}
		}
	}
	return sc
}

func (sc *SkylineCholesky) get(row, col int) float64 {
	if col > row {
		return sc.get(col, row)
	}
	start := row - sc.heights[row]
	if col < start {
		return 0
	}
	return sc.skyline[row][col-start]
}

// Factorize performs in-place modified Cholesky factorization, returning
// ferr.NotPositiveDefiniteErr() on a non-positive diagonal (spec.md
// §4.4).
func (sc *SkylineCholesky) Factorize() error {
	for i := 0; i < sc.n; i++ {
		hi := sc.heights[i]
		startI := i - hi
		for j := startI; j < i; j++ {
			hj := sc.heights[j]
			startJ := j - hj
			start := maxInt(startI, startJ)
			var sum float64
			for k := start; k < j; k++ {
				sum += sc.get(i, k) * sc.get(j, k)
			}
			diagJ := sc.get(j, j)
			if math.Abs(diagJ) < 1e-15 {
				return ferr.NotPositiveDefiniteErr()
			}
			sc.skyline[i][j-startI] = (sc.get(i, j) - sum) / diagJ
		}
		var sum float64
		for k := startI; k < i; k++ {
			v := sc.get(i, k)
			sum += v * v
		}
		diag := sc.get(i, i) - sum
		if diag <= 0 {
			return ferr.NotPositiveDefiniteErr()
		}
		sc.skyline[i][hi] = math.Sqrt(diag)
	}
	return nil
}

// Solve performs forward/backward substitution against the factorized
// matrix.
func (sc *SkylineCholesky) Solve(b []float64) []float64 {
	n := sc.n
	x := make([]float64, n)
	copy(x, b)
	for i := 0; i < n; i++ {
		start := i - sc.heights[i]
		var sum float64
		for j := start; j < i; j++ {
			sum += sc.get(i, j) * x[j]
		}
		x[i] = (x[i] - sum) / sc.get(i, i)
	}
	for i := n - 1; i >= 0; i-- {
		x[i] /= sc.get(i, i)
		start := i - sc.heights[i]
		for j := start; j < i; j++ {
			x[j] -= sc.get(i, j) * x[i]
		}
	}
	return x
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// SolveCG runs unpreconditioned conjugate gradient, returning a
// best-effort solution if max_iter is exhausted without converging
// (spec.md §4.4's convergence test ||r||_2 < tol; breakdown check
// matches original_source/fea-solver/src/math/sparse.rs's solve_cg).
func SolveCG(csr *CSR, b []float64, tol float64, maxIter int) []float64 {
	n := csr.N
	x := make([]float64, n)
	r := make([]float64, n)
	copy(r, b)
	if norm(r) < tol {
		return x
	}
	p := make([]float64, n)
	copy(p, r)
	rDotR := dot(r, r)
	for iter := 0; iter < maxIter; iter++ {
		ap := MatVec(csr, p)
		pDotAp := dot(p, ap)
		if math.Abs(pDotAp) < 1e-15 {
			break
		}
		alpha := rDotR / pDotAp
		for i := range x {
			x[i] += alpha * p[i]
			r[i] -= alpha * ap[i]
		}
		rDotRNew := dot(r, r)
		if math.Sqrt(rDotRNew) < tol {
			return x
		}
		beta := rDotRNew / rDotR
		for i := range p {
			p[i] = r[i] + beta*p[i]
		}
		rDotR = rDotRNew
	}
	return x
}

// SolvePCG runs Jacobi-preconditioned conjugate gradient (spec.md
// §4.4).
func SolvePCG(csr *CSR, b []float64, tol float64, maxIter int) []float64 {
	n := csr.N
	diag := make([]float64, n)
	for i := 0; i < n; i++ {
		d := csr.Get(i, i)
		if math.Abs(d) < 1e-15 {
			d = 1.0
		}
		diag[i] = d
	}
	x := make([]float64, n)
	r := make([]float64, n)
	copy(r, b)
	if norm(r) < tol {
		return x
	}
	z := make([]float64, n)
	for i := range z {
		z[i] = r[i] / diag[i]
	}
	p := make([]float64, n)
	copy(p, z)
	rDotZ := dot(r, z)
	for iter := 0; iter < maxIter; iter++ {
		ap := MatVec(csr, p)
		pDotAp := dot(p, ap)
		if math.Abs(pDotAp) < 1e-15 {
			break
		}
		alpha := rDotZ / pDotAp
		for i := range x {
			x[i] += alpha * p[i]
			r[i] -= alpha * ap[i]
		}
		if norm(r) < tol {
			return x
		}
		for i := range z {
			z[i] = r[i] / diag[i]
		}
		rDotZNew := dot(r, z)
		beta := rDotZNew / rDotZ
		for i := range p {
			p[i] = z[i] + beta*p[i]
		}
		rDotZ = rDotZNew
	}
	return x
}

func dot(a, b []float64) float64 {
	var s float64
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}

func norm(a []float64) float64 { return math.Sqrt(dot(a, a)) }

// ReverseCuthillMckee computes a bandwidth-reducing permutation (spec.md
// §4.4), grounded on
// original_source/fea-solver/src/math/sparse.rs's reverse_cuthill_mckee.
func ReverseCuthillMckee(csr *CSR) []int {
	n := csr.N
	adj := make([][]int, n)
	for r := 0; r < n; r++ {
		for idx := csr.RowOffsets[r]; idx < csr.RowOffsets[r+1]; idx++ {
			c := csr.ColIndices[idx]
			if c == r || math.Abs(csr.Values[idx]) <= sparseDropTol {
				continue
			}
			adj[r] = append(adj[r], c)
		}
	}
	degree := make([]int, n)
	for i := range adj {
		degree[i] = len(adj[i])
	}
	for i := range adj {
		nbrs := adj[i]
		sort.Slice(nbrs, func(a, b int) bool { return degree[nbrs[a]] < degree[nbrs[b]] })
	}

	visited := make([]bool, n)
	order := make([]int, 0, n)
	for len(order) < n {
		start := -1
		best := -1
		for i := 0; i < n; i++ {
			if visited[i] {
				continue
			}
			if best == -1 || degree[i] < best {
				best = degree[i]
				start = i
			}
		}
		if start == -1 {
			break
		}
		queue := []int{start}
		visited[start] = true
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			order = append(order, cur)
			for _, nb := range adj[cur] {
				if !visited[nb] {
					visited[nb] = true
					queue = append(queue, nb)
				}
			}
		}
	}
	// reverse
	for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
		order[i], order[j] = order[j], order[i]
	}
	return order
}

// ApplyPermutation reorders vec according to perm.
func ApplyPermutation(vec []float64, perm []int) []float64 {
	out := make([]float64, len(vec))
	for i, p := range perm {
		out[i] = vec[p]
	}
	return out
}

// InversePermutation returns the inverse of perm.
func InversePermutation(perm []int) []int {
	inv := make([]int, len(perm))
	for i, p := range perm {
		inv[p] = i
	}
	return inv
}
