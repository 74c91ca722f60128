package linalg

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

// A simple 3x3 SPD system with a known solution, used across the dense
// and sparse solvers below.
func spd3() ([][]float64, []float64, []float64) {
	a := [][]float64{
		{4, 1, 0},
		{1, 3, 1},
		{0, 1, 2},
	}
	x := []float64{1, 2, 3}
	b := make([]float64, 3)
	for i := range b {
		for j := range x {
			b[i] += a[i][j] * x[j]
		}
	}
	return a, b, x
}

func TestSolveLUMatchesKnownSolution(tst *testing.T) {
	chk.PrintTitle("SolveLUMatchesKnownSolution")
	a, b, want := spd3()
	got, err := SolveLU(a, b)
	if err != nil {
		tst.Fatalf("SolveLU: %v", err)
	}
	chk.Vector(tst, "x", 1e-9, got, want)
}

func TestSolveLUSingularReturnsError(tst *testing.T) {
	chk.PrintTitle("SolveLUSingularReturnsError")
	a := [][]float64{{1, 2}, {2, 4}}
	if _, err := SolveLU(a, []float64{1, 2}); err == nil {
		tst.Fatal("expected SingularMatrix error")
	}
}

func TestSolveCholeskyMatchesKnownSolution(tst *testing.T) {
	chk.PrintTitle("SolveCholeskyMatchesKnownSolution")
	a, b, want := spd3()
	got, err := SolveCholesky(a, b)
	if err != nil {
		tst.Fatalf("SolveCholesky: %v", err)
	}
	chk.Vector(tst, "x", 1e-9, got, want)
}

func TestSolveCholeskyNotPositiveDefinite(tst *testing.T) {
	chk.PrintTitle("SolveCholeskyNotPositiveDefinite")
	a := [][]float64{{1, 2}, {2, 1}}
	if _, err := SolveCholesky(a, []float64{1, 1}); err == nil {
		tst.Fatal("expected NotPositiveDefinite error")
	}
}

func spd3CSR() *CSR {
	a, _, _ := spd3()
	b := NewSparseBuilder(3)
	for i := range a {
		for j := range a[i] {
			b.Add(i, j, a[i][j])
		}
	}
	return b.ToCSR()
}

func TestSparseBuilderMergesDuplicatesAndToDenseRoundTrips(tst *testing.T) {
	chk.PrintTitle("SparseBuilderMergesDuplicatesAndToDenseRoundTrips")
	b := NewSparseBuilder(2)
	b.Add(0, 0, 1.0)
	b.Add(0, 0, 2.0) // duplicate entries sum
	b.Add(1, 1, 5.0)
	dense := b.ToDense()
	if dense[0][0] != 3.0 || dense[1][1] != 5.0 {
		tst.Errorf("ToDense=%v want [[3 0][0 5]]", dense)
	}
	csr := b.ToCSR()
	if csr.Get(0, 0) != 3.0 || csr.Get(1, 1) != 5.0 || csr.Get(0, 1) != 0 {
		tst.Errorf("CSR.Get mismatch vs merged dense")
	}
}

func TestCSRMatVecMatchesDense(tst *testing.T) {
	chk.PrintTitle("CSRMatVecMatchesDense")
	a, x, _ := spd3()
	csr := spd3CSR()
	got := MatVec(csr, x)
	want := make([]float64, 3)
	for i := range a {
		for j := range a[i] {
			want[i] += a[i][j] * x[j]
		}
	}
	chk.Vector(tst, "A*x", 1e-12, got, want)
}

func TestSolveCGConverges(tst *testing.T) {
	chk.PrintTitle("SolveCGConverges")
	csr := spd3CSR()
	_, b, want := spd3()
	got := SolveCG(csr, b, 1e-10, 100)
	chk.Vector(tst, "x", 1e-6, got, want)
}

func TestSolvePCGConverges(tst *testing.T) {
	chk.PrintTitle("SolvePCGConverges")
	csr := spd3CSR()
	_, b, want := spd3()
	got := SolvePCG(csr, b, 1e-10, 100)
	chk.Vector(tst, "x", 1e-6, got, want)
}

func TestSkylineCholeskyMatchesDense(tst *testing.T) {
	chk.PrintTitle("SkylineCholeskyMatchesDense")
	csr := spd3CSR()
	_, b, want := spd3()
	sc := NewSkylineCholesky(csr)
	if err := sc.Factorize(); err != nil {
		tst.Fatalf("Factorize: %v", err)
	}
	got := sc.Solve(b)
	chk.Vector(tst, "x", 1e-9, got, want)
}

// ReverseCuthillMckee must return a valid permutation of 0..n-1.
func TestReverseCuthillMckeeIsAPermutation(tst *testing.T) {
	chk.PrintTitle("ReverseCuthillMckeeIsAPermutation")
	csr := spd3CSR()
	perm := ReverseCuthillMckee(csr)
	if len(perm) != 3 {
		tst.Fatalf("len(perm)=%d want 3", len(perm))
	}
	seen := make(map[int]bool)
	for _, p := range perm {
		if p < 0 || p >= 3 || seen[p] {
			tst.Fatalf("perm=%v is not a valid permutation", perm)
		}
		seen[p] = true
	}
	inv := InversePermutation(perm)
	for i, p := range perm {
		if inv[p] != i {
			tst.Errorf("InversePermutation mismatch at %d", i)
		}
	}
}

func TestApplyPermutationRoundTrip(tst *testing.T) {
	chk.PrintTitle("ApplyPermutationRoundTrip")
	v := []float64{10, 20, 30}
	perm := []int{2, 0, 1}
	permuted := ApplyPermutation(v, perm)
	want := []float64{30, 10, 20}
	chk.Vector(tst, "permuted", 1e-12, permuted, want)
	inv := InversePermutation(perm)
	restored := ApplyPermutation(permuted, inv)
	chk.Vector(tst, "restored", 1e-12, restored, v)
}
