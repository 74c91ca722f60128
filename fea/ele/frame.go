package ele

import (
	"math"
)

const (
	zeroForceTol = 1e-10
	pivotTol     = 1e-15
)

// FrameLocalStiffness builds the 12x12 local stiffness matrix for a 3D
// Euler-Bernoulli beam-column (spec.md §4.1), grounded on
// original_source/fea-solver/src/math/mod.rs's member_local_stiffness
// and cross-checked against BookmarkSciencePrrojects-gofem/fem/e_beam.go's
// Recompute.
func FrameLocalStiffness(e, g, a, iy, iz, j, l float64) [12][12]float64 {
	var k [12][12]float64

	ea_l := e * a / l
	// Bending in the local xy plane (about local z, uses Iz) affects Fy, Mz.
	k12z := 12 * e * iz / (l * l * l)
	k6z := 6 * e * iz / (l * l)
	k4z := 4 * e * iz / l
	k2z := 2 * e * iz / l
	// Bending in the local xz plane (about local y, uses Iy) affects Fz, My.
	k12y := 12 * e * iy / (l * l * l)
	k6y := 6 * e * iy / (l * l)
	k4y := 4 * e * iy / l
	k2y := 2 * e * iy / l
	gj_l := g * j / l

	// Axial: Fx_i, Fx_j (indices 0, 6)
	k[0][0], k[0][6] = ea_l, -ea_l
	k[6][0], k[6][6] = -ea_l, ea_l

	// Bending in xy plane (Fy, Mz): indices 1(Fy_i),5(Mz_i),7(Fy_j),11(Mz_j)
	k[1][1], k[1][5], k[1][7], k[1][11] = k12z, k6z, -k12z, k6z
	k[5][1], k[5][5], k[5][7], k[5][11] = k6z, k4z, -k6z, k2z
	k[7][1], k[7][5], k[7][7], k[7][11] = -k12z, -k6z, k12z, -k6z
	k[11][1], k[11][5], k[11][7], k[11][11] = k6z, k2z, -k6z, k4z

	// Bending in xz plane (Fz, My): indices 2(Fz_i),4(My_i),8(Fz_j),10(My_j)
	k[2][2], k[2][4], k[2][8], k[2][10] = k12y, -k6y, -k12y, -k6y
	k[4][2], k[4][4], k[4][8], k[4][10] = -k6y, k4y, k6y, k2y
	k[8][2], k[8][4], k[8][8], k[8][10] = -k12y, k6y, k12y, k6y
	k[10][2], k[10][4], k[10][8], k[10][10] = -k6y, k2y, k6y, k4y

	// Torsion: Mx_i, Mx_j (indices 3, 9)
	k[3][3], k[3][9] = gj_l, -gj_l
	k[9][3], k[9][9] = -gj_l, gj_l

	return k
}

// FrameGeometricStiffness builds the 12x12 geometric stiffness matrix
// driven by axial force p (tension-positive); zero when |p| is below
// tolerance (spec.md §4.1).
func FrameGeometricStiffness(p, a, iy, iz, l float64) [12][12]float64 {
	var k [12][12]float64
	if math.Abs(p) < zeroForceTol {
		return k
	}
	ip := iy + iz
	pl := p / l
	t1 := 6 * pl / 5.0
	t2 := pl * l / 10.0
	t3 := pl * ip / a
	t4 := 2 * pl * l * l / 15.0
	t5 := pl * l * l / 30.0

	// Axial diagonal.
	k[0][0], k[0][6] = pl, -pl
	k[6][0], k[6][6] = -pl, pl

	// Bending plane xy (Fy,Mz): 1,5,7,11
	k[1][1], k[1][5], k[1][7], k[1][11] = t1, t2, -t1, t2
	k[5][1], k[5][5], k[5][7], k[5][11] = t2, t4, -t2, -t5
	k[7][1], k[7][5], k[7][7], k[7][11] = -t1, -t2, t1, -t2
	k[11][1], k[11][5], k[11][7], k[11][11] = t2, -t5, -t2, t4

	// Bending plane xz (Fz,My): 2,4,8,10 (sign-flipped vs xy plane, matching
	// the elastic-stiffness convention above)
	k[2][2], k[2][4], k[2][8], k[2][10] = t1, -t2, -t1, -t2
	k[4][2], k[4][4], k[4][8], k[4][10] = -t2, t4, t2, -t5
	k[8][2], k[8][4], k[8][8], k[8][10] = -t1, t2, t1, t2
	k[10][2], k[10][4], k[10][8], k[10][10] = -t2, -t5, t2, t4

	// Torsional diagonal.
	k[3][3], k[3][9] = t3, -t3
	k[9][3], k[9][9] = -t3, t3

	return k
}

// FerUniformLoad computes the fixed-end-reaction 12-vector for a
// uniform load w over the full member length in local direction dir
// (0=axial x, 1=local y, 2=local z), per spec.md §4.1.
func FerUniformLoad(w, l float64, dir int) [12]float64 {
	var fer [12]float64
	switch dir {
	case 0:
		fer[0] = -w * l / 2
		fer[6] = -w * l / 2
	case 1:
		fer[1] = -w * l / 2
		fer[7] = -w * l / 2
		fer[5] = -w * l * l / 12
		fer[11] = w * l * l / 12
	case 2:
		fer[2] = -w * l / 2
		fer[8] = -w * l / 2
		fer[4] = w * l * l / 12
		fer[10] = -w * l * l / 12
	}
	return fer
}

// FerTrapezoidalLoad computes FER for a linearly varying load from w1 at
// the i-end to w2 at the j-end, by superposing a uniform component
// min(w1,w2) with a triangular component, each via standard fixed-end
// beam formulas. Supplements spec.md §3's two-end-intensity distributed
// load beyond the uniform case in §4.1 (see SPEC_FULL.md supplemented
// features).
func FerTrapezoidalLoad(w1, w2, l float64, dir int) [12]float64 {
	if w1 == w2 {
		return FerUniformLoad(w1, l, dir)
	}
	// Decompose into a uniform part at min(w1,w2) plus a triangular part
	// that ramps from 0 to |w2-w1| (or the mirror image).
	uniform := FerUniformLoad(math.Min(w1, w2), l, dir)
	delta := math.Abs(w2 - w1)
	tri := ferTriangular(delta, l, dir, w1 > w2)
	var out [12]float64
	for i := range out {
		out[i] = uniform[i] + tri[i]
	}
	return out
}

// ferTriangular computes the FER for a triangular load ramping linearly
// from 0 at i to peak at j (or mirrored if decreasing), using the
// standard beam fixed-end-moment/shear formulas for a triangular span
// load: R_i = 3*peak*L/20, R_j = 7*peak*L/20 (shear sense before sign
// convention), M_i = peak*L^2/30, M_j = peak*L^2/20.
func ferTriangular(peak, l float64, dir int, decreasing bool) [12]float64 {
	var fer [12]float64
	if peak == 0 {
		return fer
	}
	ri := 3 * peak * l / 20.0
	rj := 7 * peak * l / 20.0
	mi := peak * l * l / 30.0
	mj := peak * l * l / 20.0
	if decreasing {
		ri, rj = rj, ri
		mi, mj = mj, mi
	}
	switch dir {
	case 0:
		fer[0] = -ri
		fer[6] = -rj
	case 1:
		fer[1] = -ri
		fer[7] = -rj
		fer[5] = -mi
		fer[11] = mj
	case 2:
		fer[2] = -ri
		fer[8] = -rj
		fer[4] = mi
		fer[10] = -mj
	}
	return fer
}

// FerPointLoad computes the FER 12-vector for a point load p at
// distance a from the i-end (b = L-a) in local direction dir, per
// spec.md §4.1.
func FerPointLoad(p, a, l float64, dir int) [12]float64 {
	var fer [12]float64
	b := l - a
	switch dir {
	case 0:
		fer[0] = -p * b / l
		fer[6] = -p * a / l
	case 1:
		fer[1] = -p * b * b * (3*a + b) / (l * l * l)
		fer[5] = -p * a * b * b / (l * l)
		fer[7] = -p * a * a * (a + 3*b) / (l * l * l)
		fer[11] = p * a * a * b / (l * l)
	case 2:
		fer[2] = -p * b * b * (3*a + b) / (l * l * l)
		fer[4] = p * a * b * b / (l * l)
		fer[8] = -p * a * a * (a + 3*b) / (l * l * l)
		fer[10] = -p * a * a * b / (l * l)
	}
	return fer
}

// ApplyReleases statically condenses k against a 12-boolean release
// mask, returning the condensed stiffness zero-padded at released
// positions (spec.md §4.1). If the released-released sub-block is
// singular within pivotTol, the original k is returned unchanged.
func ApplyReleases(k [12][12]float64, releases [12]bool) [12][12]float64 {
	var unreleased, released []int
	for i := 0; i < 12; i++ {
		if releases[i] {
			released = append(released, i)
		} else {
			unreleased = append(unreleased, i)
		}
	}
	if len(released) == 0 {
		return k
	}

	n1, n2 := len(unreleased), len(released)
	k11 := subMatrix(k, unreleased, unreleased)
	k12 := subMatrix(k, unreleased, released)
	k21 := subMatrix(k, released, unreleased)
	k22 := subMatrix(k, released, released)

	k22Inv, ok := invert(k22, n2)
	if !ok {
		return k
	}

	// condensed = k11 - k12 * k22Inv * k21
	k12InvK22 := matMul(k12, k22Inv, n1, n2, n2)
	correction := matMul(k12InvK22, k21, n1, n2, n1)

	var out [12][12]float64
	for a := 0; a < n1; a++ {
		for b := 0; b < n1; b++ {
			out[unreleased[a]][unreleased[b]] = k11[a][b] - correction[a][b]
		}
	}
	return out
}

// ApplyFerReleases condenses a FER 12-vector against the same release
// mask used for ApplyReleases, per spec.md §4.1.
func ApplyFerReleases(fer [12]float64, k [12][12]float64, releases [12]bool) [12]float64 {
	var unreleased, released []int
	for i := 0; i < 12; i++ {
		if releases[i] {
			released = append(released, i)
		} else {
			unreleased = append(unreleased, i)
		}
	}
	if len(released) == 0 {
		return fer
	}
	n1, n2 := len(unreleased), len(released)
	k12 := subMatrix(k, unreleased, released)
	k22 := subMatrix(k, released, released)
	k22Inv, ok := invert(k22, n2)
	if !ok {
		return fer
	}
	fer1 := make([]float64, n1)
	for a, idx := range unreleased {
		fer1[a] = fer[idx]
	}
	fer2 := make([]float64, n2)
	for a, idx := range released {
		fer2[a] = fer[idx]
	}
	// condensed = fer1 - k12 * k22Inv * fer2
	tmp := matVec(k22Inv, fer2, n2, n2)
	corr := matVec(k12, tmp, n1, n2)

	var out [12]float64
	for a, idx := range unreleased {
		out[idx] = fer1[a] - corr[a]
	}
	return out
}

func subMatrix(k [12][12]float64, rows, cols []int) [][]float64 {
	out := make([][]float64, len(rows))
	for i, r := range rows {
		out[i] = make([]float64, len(cols))
		for j, c := range cols {
			out[i][j] = k[r][c]
		}
	}
	return out
}

func matMul(a, b [][]float64, n, m, p int) [][]float64 {
	out := make([][]float64, n)
	for i := 0; i < n; i++ {
		out[i] = make([]float64, p)
		for j := 0; j < p; j++ {
			var s float64
			for k := 0; k < m; k++ {
				s += a[i][k] * b[k][j]
			}
			out[i][j] = s
		}
	}
	return out
}

func matVec(a [][]float64, x []float64, n, m int) []float64 {
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		var s float64
		for k := 0; k < m; k++ {
			s += a[i][k] * x[k]
		}
		out[i] = s
	}
	return out
}

// invert computes the inverse of an nxn matrix via Gauss-Jordan
// elimination with partial pivoting, reporting singularity within
// pivotTol (spec.md §4.1's "tolerance 1e-15 on any pivot").
func invert(a [][]float64, n int) ([][]float64, bool) {
	aug := make([][]float64, n)
	for i := 0; i < n; i++ {
		aug[i] = make([]float64, 2*n)
		copy(aug[i][:n], a[i])
		aug[i][n+i] = 1
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
		if best < pivotTol {
			return nil, false
		}
		aug[col], aug[piv] = aug[piv], aug[col]
		pivotVal := aug[col][col]
		for j := 0; j < 2*n; j++ {
			aug[col][j] /= pivotVal
		}
		for r := 0; r < n; r++ {
			if r == col {
				continue
			}
			factor := aug[r][col]
			if factor == 0 {
				continue
			}
			for j := 0; j < 2*n; j++ {
				aug[r][j] -= factor * aug[col][j]
			}
		}
	}
	out := make([][]float64, n)
	for i := 0; i < n; i++ {
		out[i] = make([]float64, n)
		copy(out[i], aug[i][n:])
	}
	return out, true
}
