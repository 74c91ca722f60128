// Package ele implements the element kernels of spec.md §4.1 (3D frame
// member) and §4.2 (plate/shell). Grounded on
// BookmarkSciencePrrojects-gofem/fem/e_beam.go's Recompute method for
// the overall shape of the local-stiffness/transformation/geometric-
// stiffness construction, and on original_source/fea-solver/src/math/
// mod.rs for the exact tie-break rules and coefficients (spec.md §4.1
// fixes one of two tie-breaking conventions found in that source).
package ele

import (
	"math"

	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/utl"
	"github.com/daveh07/fea3d/fea/ferr"
)

const zeroLenTol = 1e-10

// MemberTransform builds the 12x12 block-diagonal transformation matrix
// T for a frame member running from node i to node j, given its
// rotation about the local x axis (spec.md §4.1).
func MemberTransform(iCoord, jCoord [3]float64, rotation float64) (t [12][12]float64, length float64, err error) {
	dx := jCoord[0] - iCoord[0]
	dy := jCoord[1] - iCoord[1]
	dz := jCoord[2] - iCoord[2]
	d := [3]float64{dx, dy, dz}
	length = math.Sqrt(utl.Dot3d(d[:], d[:]))
	if length < zeroLenTol {
		return t, 0, ferr.InvalidGeometry("member length %.3e is below tolerance %.0e", length, zeroLenTol)
	}

	x := [3]float64{dx / length, dy / length, dz / length}
	var y, z [3]float64

	switch {
	case math.Abs(x[0]) < zeroLenTol && math.Abs(x[2]) < zeroLenTol:
		// Vertical member.
		if x[1] > 0 {
			y = [3]float64{-1, 0, 0}
		} else {
			y = [3]float64{1, 0, 0}
		}
		z = [3]float64{0, 0, 1}
	case math.Abs(dy) < zeroLenTol:
		// Horizontal member.
		y = [3]float64{0, 1, 0}
		z = cross(x, y)
		z = normalize(z)
	default:
		// Inclined: project onto the global XZ plane.
		proj := normalize([3]float64{dx, 0, dz})
		if x[1] > 0 {
			z = normalize(cross(proj, x))
		} else {
			z = normalize(cross(x, proj))
		}
		y = normalize(cross(z, x))
	}

	if math.Abs(rotation) > zeroLenTol {
		cr, sr := math.Cos(rotation), math.Sin(rotation)
		yr := [3]float64{
			y[0]*cr + z[0]*sr,
			y[1]*cr + z[1]*sr,
			y[2]*cr + z[2]*sr,
		}
		zr := [3]float64{
			-y[0]*sr + z[0]*cr,
			-y[1]*sr + z[1]*cr,
			-y[2]*sr + z[2]*cr,
		}
		y, z = yr, zr
	}

	r := [3][3]float64{x, y, z}
	for block := 0; block < 4; block++ {
		off := block * 3
		for a := 0; a < 3; a++ {
			for b := 0; b < 3; b++ {
				t[off+a][off+b] = r[a][b]
			}
		}
	}
	return t, length, nil
}

func cross(a, b [3]float64) [3]float64 {
	var out [3]float64
	utl.Cross3d(out[:], a[:], b[:])
	return out
}

func normalize(v [3]float64) [3]float64 {
	n := math.Sqrt(utl.Dot3d(v[:], v[:]))
	if n < zeroLenTol {
		return v
	}
	return [3]float64{v[0] / n, v[1] / n, v[2] / n}
}

// rows12 returns row-slice views into a 12x12 array's own backing
// storage (no copy), so the fixed-size element matrices can be passed
// to gosl/la's []float64-based routines without abandoning stack
// allocation (see DESIGN.md's fea/ele entry).
func rows12(a *[12][12]float64) [][]float64 {
	rows := make([][]float64, 12)
	for i := range rows {
		rows[i] = a[i][:]
	}
	return rows
}

// TransformToGlobal computes Tt * Klocal * T for a 12x12 local matrix,
// via la.MatTrMul3 (matching BookmarkSciencePrrojects-gofem/fem/e_beam.go's
// `la.MatTrMul3(o.K, 1, o.T, o.Kl, o.T)` sandwich-product idiom).
func TransformToGlobal(t, klocal [12][12]float64) [12][12]float64 {
	var out [12][12]float64
	la.MatTrMul3(rows12(&out), 1, rows12(&t), rows12(&klocal), rows12(&t))
	return out
}

// TransformToLocal computes T * Vglobal for a 12-vector via la.MatVecMul.
func TransformToLocal(t [12][12]float64, vGlobal [12]float64) [12]float64 {
	var out [12]float64
	la.MatVecMul(out[:], 1, rows12(&t), vGlobal[:])
	return out
}

// TransformToGlobalVec computes Tt * Vlocal for a 12-vector via
// la.MatTrVecMulAdd (matching e_beam.go's
// `la.MatTrVecMulAdd(o.fi, -1.0, o.T, o.fxl)` transpose-times-vector
// idiom; out starts zeroed so the "Add" is a plain assignment here).
func TransformToGlobalVec(t [12][12]float64, vLocal [12]float64) [12]float64 {
	var out [12]float64
	la.MatTrVecMulAdd(out[:], 1, rows12(&t), vLocal[:])
	return out
}

// DirectionComponents resolves a load direction into local x/y/z
// fractions of a unit load. For a local-frame axis (local=true, axis
// selects x/y/z) the fraction is the trivial basis vector; for a
// global-frame axis it is t's direction-cosine projection of the
// corresponding global unit vector (row i, column axis of t's leading
// 3x3 block), so a load declared along a global axis splits across
// whichever local axes it is not parallel to (spec.md §3's
// local-or-global load tag).
func DirectionComponents(t [12][12]float64, axis int, local bool) [3]float64 {
	if local {
		var c [3]float64
		c[axis] = 1
		return c
	}
	return [3]float64{t[0][axis], t[1][axis], t[2][axis]}
}
