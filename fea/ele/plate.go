package ele

import (
	"math"

	"github.com/cpmech/gosl/utl"
	"github.com/daveh07/fea3d/fea/ferr"
)

// gaussPoint is one (location, weight) pair of a Gauss-Legendre rule on
// the parent square [-1,1]^2.
type gaussPoint struct{ r, s, w float64 }

var gauss2x2 = func() []gaussPoint {
	g := 1.0 / math.Sqrt(3.0)
	return []gaussPoint{
		{-g, -g, 1}, {g, -g, 1}, {g, g, 1}, {-g, g, 1},
	}
}()

// shapeFuncs returns the bilinear shape functions and their natural
// derivatives at (r,s) for corners ordered i,j,m,n (spec.md §4.2).
func shapeFuncs(r, s float64) (n [4]float64, dnr [4]float64, dns [4]float64) {
	n = [4]float64{
		(1 - r) * (1 - s) / 4,
		(1 + r) * (1 - s) / 4,
		(1 + r) * (1 + s) / 4,
		(1 - r) * (1 + s) / 4,
	}
	dnr = [4]float64{-(1 - s) / 4, (1 - s) / 4, (1 + s) / 4, -(1 + s) / 4}
	dns = [4]float64{-(1 - r) / 4, -(1 + r) / 4, (1 + r) / 4, (1 - r) / 4}
	return
}

// planeStressMatrix returns the isotropic plane-stress constitutive
// matrix with optional in-plane stiffness modifiers kx,ky (spec.md
// §4.2's membrane D_m; pass kx=ky=1 for the bending D_b).
func planeStressMatrix(e, nu, kx, ky float64) [3][3]float64 {
	c := e / (1 - nu*nu)
	return [3][3]float64{
		{c * kx, c * nu, 0},
		{c * nu, c * ky, 0},
		{0, 0, c * (1 - nu) / 2},
	}
}

// PlateMembraneStiffness builds the 8x8 membrane (plane-stress)
// stiffness for a rectangular plate of half-width b=width/2,
// half-height c=height/2, via 2x2 Gauss quadrature (spec.md §4.2).
func PlateMembraneStiffness(e, nu, kxMod, kyMod, t, width, height float64) [8][8]float64 {
	var k [8][8]float64
	detJ := width * height / 4
	d := planeStressMatrix(e, nu, kxMod, kyMod)

	for _, gp := range gauss2x2 {
		_, dnr, dns := shapeFuncs(gp.r, gp.s)
		var bMat [3][8]float64
		for a := 0; a < 4; a++ {
			dndx := dnr[a] * (2 / width)
			dndy := dns[a] * (2 / height)
			bMat[0][2*a] = dndx
			bMat[1][2*a+1] = dndy
			bMat[2][2*a] = dndy
			bMat[2][2*a+1] = dndx
		}
		wgt := gp.w * detJ
		for i := 0; i < 8; i++ {
			for j := 0; j < 8; j++ {
				var s float64
				for p := 0; p < 3; p++ {
					for q := 0; q < 3; q++ {
						s += bMat[p][i] * d[p][q] * bMat[q][j]
					}
				}
				k[i][j] += t * s * wgt
			}
		}
	}
	return k
}

// bendingCurvatureB builds the 3x12 curvature B-matrix at (r,s) (spec.md
// §4.2: kappa_x = d(ry)/dx, kappa_y = -d(rx)/dy, kappa_xy = -d(rx)/dx + d(ry)/dy),
// with per-node DOF order (w, rx, ry).
func bendingCurvatureB(r, s, width, height float64) [3][12]float64 {
	_, dnr, dns := shapeFuncs(r, s)
	var bMat [3][12]float64
	for a := 0; a < 4; a++ {
		dndx := dnr[a] * (2 / width)
		dndy := dns[a] * (2 / height)
		col := 3 * a
		bMat[0][col+2] = dndx   // kappa_x from d(ry)/dx
		bMat[1][col+1] = -dndy  // kappa_y from -d(rx)/dy
		bMat[2][col+1] = -dndx  // kappa_xy from -d(rx)/dx
		bMat[2][col+2] = dndy   // kappa_xy from +d(ry)/dy
	}
	return bMat
}

// cornerSign gives the (xi0,eta0) corner signs of the parent square for
// nodes i,j,m,n, matching shapeFuncs' corner ordering.
var cornerSign = [4][2]float64{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}

// kirchhoffCurvatureB builds the 3x12 curvature B-matrix for the
// classical ACM (Adini-Clough-Melosh) non-conforming rectangular
// thin-plate element at natural coordinates (r,s)=(xi,eta), half-width
// a=width/2, half-height b=height/2 (spec.md §4.2's "12-term polynomial
// shape function... reproduce the PyNite closed-form"). The combined
// field w(xi,eta) = sum_k(Nw_k w_k + Nrx_k rx_k + Nry_k ry_k) uses the
// Hermite shape functions
//
//	Nw  = (1/8)(1+xi0 xi)(1+eta0 eta)(2+xi0 xi+eta0 eta-xi^2-eta^2)
//	Nrx = -(b/8) eta0 (1+xi0 xi)(1+eta0 eta)(1-eta^2)
//	Nry =  (a/8) xi0  (1+xi0 xi)(1+eta0 eta)(1-xi^2)
//
// and curvatures are exact second derivatives of that single field
// (kappa_x=-d2w/dx2, kappa_y=-d2w/dy2, kappa_xy=-2 d2w/dxdy), so unlike
// Mindlin/DKMQ there is no independent shear B-matrix: Kirchhoff theory
// carries no transverse-shear strain energy by construction.
func kirchhoffCurvatureB(r, s, width, height float64) [3][12]float64 {
	a, b := width/2, height/2
	var bMat [3][12]float64
	for k := 0; k < 4; k++ {
		x0, y0 := cornerSign[k][0], cornerSign[k][1]
		col := 3 * k

		bMat[0][col] = (3.0 / (4 * a * a)) * x0 * r * (1 + y0*s)
		bMat[1][col] = (3.0 / (4 * b * b)) * y0 * s * (1 + x0*r)
		bMat[2][col] = -(x0 * y0 / (4 * a * b)) * (4 - 3*r*r - 3*s*s)

		bMat[0][col+1] = 0
		bMat[1][col+1] = -(1.0 / (8 * b)) * (1 + x0*r) * (2*y0 + 6*s)
		bMat[2][col+1] = -(x0 / (4 * a)) * (3*s*s + 2*y0*s - 1)

		bMat[0][col+2] = (1.0 / (8 * a)) * (1 + y0*s) * (2*x0 + 6*r)
		bMat[1][col+2] = 0
		bMat[2][col+2] = (y0 / (4 * b)) * (3*r*r + 2*x0*r - 1)
	}
	return bMat
}

// shearB builds the 2x12 transverse-shear B-matrix at (r,s) (spec.md
// §4.2: gamma_xz = dw/dx + ry, gamma_yz = dw/dy - rx).
func shearB(r, s, width, height float64) [2][12]float64 {
	n, dnr, dns := shapeFuncs(r, s)
	var bMat [2][12]float64
	for a := 0; a < 4; a++ {
		dndx := dnr[a] * (2 / width)
		dndy := dns[a] * (2 / height)
		col := 3 * a
		bMat[0][col] = dndx
		bMat[0][col+2] = n[a]
		bMat[1][col] = dndy
		bMat[1][col+1] = -n[a]
	}
	return bMat
}

// PlateBendingStiffness builds the 12x12 bending stiffness for the
// (w,rx,ry) DOFs of a rectangular plate under the requested formulation
// (spec.md §4.2). kappa = 5/6 is the shear correction factor.
func PlateBendingStiffness(e, g, nu, t, width, height float64, formulation int) [12][12]float64 {
	const kappa = 5.0 / 6.0
	db := scaleMat3(planeStressMatrix(e, nu, 1, 1), t*t*t/12.0)
	detJ := width * height / 4
	shearStiff := kappa * g * t

	var kBend [12][12]float64
	accumulateCurvature := func(scale float64) {
		for _, gp := range gauss2x2 {
			bMat := bendingCurvatureB(gp.r, gp.s, width, height)
			wgt := gp.w * detJ * scale
			addBtDB3x12(&kBend, bMat, db, wgt)
		}
	}

	switch formulation {
	case 0: // Kirchhoff: the ACM closed-form curvature field (see
		// kirchhoffCurvatureB), integrated with the same db used by the
		// other formulations but with no shear term at all — Kirchhoff
		// theory has no transverse-shear strain energy.
		for _, gp := range gauss2x2 {
			bMat := kirchhoffCurvatureB(gp.r, gp.s, width, height)
			wgt := gp.w * detJ
			addBtDB3x12(&kBend, bMat, db, wgt)
		}
	case 2: // DKMQ
		edgeLens := quadEdgeLengths(width, height)
		d := e * t * t * t / (12 * (1 - nu*nu))
		var phiSum, maxPhi float64
		for _, lk := range edgeLens {
			alpha := 12 * d / (lk * lk * shearStiff)
			phi := 1.0 / (1.0 + alpha)
			phiSum += phi
			if phi > maxPhi {
				maxPhi = phi
			}
		}
		phiAvg := phiSum / float64(len(edgeLens))
		accumulateCurvature(1.0 - 0.5*phiAvg)
		if maxPhi > 0.1 {
			bs := shearB(0, 0, width, height)
			addBtDB2x12(&kBend, bs, shearStiff*phiAvg, 4*detJ)
		}
	default: // Mindlin-Reissner
		accumulateCurvature(1.0)
		bs := shearB(0, 0, width, height)
		addBtDB2x12(&kBend, bs, shearStiff, 4*detJ)
	}
	return kBend
}

func quadEdgeLengths(width, height float64) [4]float64 {
	return [4]float64{width, height, width, height}
}

func scaleMat3(m [3][3]float64, s float64) [3][3]float64 {
	var out [3][3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = m[i][j] * s
		}
	}
	return out
}

func addBtDB3x12(k *[12][12]float64, b [3][12]float64, d [3][3]float64, wgt float64) {
	for i := 0; i < 12; i++ {
		for j := 0; j < 12; j++ {
			var s float64
			for p := 0; p < 3; p++ {
				for q := 0; q < 3; q++ {
					s += b[p][i] * d[p][q] * b[q][j]
				}
			}
			k[i][j] += s * wgt
		}
	}
}

func addBtDB2x12(k *[12][12]float64, b [2][12]float64, shear, wgt float64) {
	for i := 0; i < 12; i++ {
		for j := 0; j < 12; j++ {
			s := b[0][i]*shear*b[0][j] + b[1][i]*shear*b[1][j]
			k[i][j] += s * wgt
		}
	}
}

// ExpandMembrane scatters an 8x8 membrane stiffness (u,v per node) into
// the 24x24 element matrix at the {DX,DY} DOFs of each node.
func ExpandMembrane(k8 [8][8]float64) [24][24]float64 {
	var out [24][24]float64
	for a := 0; a < 4; a++ {
		for b := 0; b < 4; b++ {
			for di := 0; di < 2; di++ {
				for dj := 0; dj < 2; dj++ {
					out[6*a+di][6*b+dj] = k8[2*a+di][2*b+dj]
				}
			}
		}
	}
	return out
}

// ExpandBending scatters a 12x12 bending stiffness (w,rx,ry per node)
// into the 24x24 element matrix at the {DZ,RX,RY} DOFs of each node.
func ExpandBending(k12 [12][12]float64) [24][24]float64 {
	var out [24][24]float64
	for a := 0; a < 4; a++ {
		for b := 0; b < 4; b++ {
			for di := 0; di < 3; di++ {
				for dj := 0; dj < 3; dj++ {
					out[6*a+2+di][6*b+2+dj] = k12[3*a+di][3*b+dj]
				}
			}
		}
	}
	return out
}

// DrillingStabilization seeds the RZ diagonal at each corner with a weak
// spring so the assembled matrix is never singular for a plate-only mesh
// (spec.md §4.2).
func DrillingStabilization(k24 *[24][24]float64) {
	minBendingDiag := math.Inf(1)
	found := false
	for a := 0; a < 4; a++ {
		d := k24[6*a+2][6*a+2]
		if d > 1e-12 && d < minBendingDiag {
			minBendingDiag = d
			found = true
		}
	}
	var spring float64
	if found {
		spring = minBendingDiag / 1000.0
	} else {
		maxMembraneDiag := 0.0
		for a := 0; a < 4; a++ {
			for di := 0; di < 2; di++ {
				if v := k24[6*a+di][6*a+di]; v > maxMembraneDiag {
					maxMembraneDiag = v
				}
			}
		}
		spring = maxMembraneDiag / 100000.0
	}
	for a := 0; a < 4; a++ {
		k24[6*a+5][6*a+5] += spring
	}
}

// PlateTransform builds the 24x24 block-diagonal transformation for a
// rectangular plate from corner coordinates i,j,m,n (spec.md §4.2): local
// x = i->j unit, local z = x cross (i->n), local y = z cross x.
func PlateTransform(i, j, _, n [3]float64) ([24][24]float64, error) {
	var t [24][24]float64
	dx := sub3(j, i)
	lx := norm3(dx)
	if lx < zeroLenTol {
		return t, ferr.InvalidGeometry("plate edge i-j length %.3e below tolerance", lx)
	}
	x := scale3(dx, 1/lx)
	din := sub3(n, i)
	zraw := cross(x, din)
	lz := norm3(zraw)
	if lz < zeroLenTol {
		return t, ferr.InvalidGeometry("plate is degenerate (i,j,n collinear)")
	}
	z := scale3(zraw, 1/lz)
	y := normalize(cross(z, x))

	r := [3][3]float64{x, y, z}
	for block := 0; block < 8; block++ {
		off := block * 3
		for a := 0; a < 3; a++ {
			for b := 0; b < 3; b++ {
				t[off+a][off+b] = r[a][b]
			}
		}
	}
	return t, nil
}

func sub3(a, b [3]float64) [3]float64 { return [3]float64{a[0] - b[0], a[1] - b[1], a[2] - b[2]} }
func scale3(a [3]float64, s float64) [3]float64 { return [3]float64{a[0] * s, a[1] * s, a[2] * s} }
func norm3(a [3]float64) float64                { return math.Sqrt(utl.Dot3d(a[:], a[:])) }

// MembraneStressAt evaluates sigma_x, sigma_y, tau_xy at the element
// center from the 8 membrane DOFs (u,v per node) (spec.md §4.7's plate
// stress reconstruction).
func MembraneStressAt(e, nu, kxMod, kyMod, width, height float64, u [8]float64) [3]float64 {
	_, dnr, dns := shapeFuncs(0, 0)
	var bMat [3][8]float64
	for a := 0; a < 4; a++ {
		dndx := dnr[a] * (2 / width)
		dndy := dns[a] * (2 / height)
		bMat[0][2*a] = dndx
		bMat[1][2*a+1] = dndy
		bMat[2][2*a] = dndy
		bMat[2][2*a+1] = dndx
	}
	d := planeStressMatrix(e, nu, kxMod, kyMod)
	var strain [3]float64
	for p := 0; p < 3; p++ {
		for i := 0; i < 8; i++ {
			strain[p] += bMat[p][i] * u[i]
		}
	}
	var stress [3]float64
	for p := 0; p < 3; p++ {
		for q := 0; q < 3; q++ {
			stress[p] += d[p][q] * strain[q]
		}
	}
	return stress
}

// BendingMomentAt evaluates Mx, My, Mxy at the element center from the
// 12 bending DOFs (w,rx,ry per node) (spec.md §4.7), using the same
// curvature field PlateBendingStiffness used to build the element's
// stiffness for this formulation (Kirchhoff's ACM field has no shear
// term and a distinct curvature B-matrix from Mindlin/DKMQ's).
func BendingMomentAt(e, nu, t, width, height float64, d [12]float64, formulation int) [3]float64 {
	var bMat [3][12]float64
	if formulation == 0 {
		bMat = kirchhoffCurvatureB(0, 0, width, height)
	} else {
		bMat = bendingCurvatureB(0, 0, width, height)
	}
	db := scaleMat3(planeStressMatrix(e, nu, 1, 1), t*t*t/12.0)
	var curvature [3]float64
	for p := 0; p < 3; p++ {
		for i := 0; i < 12; i++ {
			curvature[p] += bMat[p][i] * d[i]
		}
	}
	var moment [3]float64
	for p := 0; p < 3; p++ {
		for q := 0; q < 3; q++ {
			moment[p] += db[p][q] * curvature[q]
		}
	}
	return moment
}

// VonMisesMembrane combines plane-stress components into a scalar von
// Mises equivalent stress.
func VonMisesMembrane(stress [3]float64) float64 {
	sx, sy, txy := stress[0], stress[1], stress[2]
	return math.Sqrt(sx*sx - sx*sy + sy*sy + 3*txy*txy)
}

// PressureFer computes the 24-vector fixed-end reaction for a uniform
// pressure p normal to the plate, expanded to the {DZ,RX,RY} DOFs of
// each corner (spec.md §4.2).
func PressureFer(p, width, height float64) [24]float64 {
	b, c := width/2, height/2
	bc := b * c
	fer12 := [12]float64{
		-4 * p * bc * 0.25, -4 * p * bc * (c / 12), 4 * p * bc * (b / 12),
		-4 * p * bc * 0.25, -4 * p * bc * (c / 12), -4 * p * bc * (b / 12),
		-4 * p * bc * 0.25, 4 * p * bc * (c / 12), -4 * p * bc * (b / 12),
		-4 * p * bc * 0.25, 4 * p * bc * (c / 12), 4 * p * bc * (b / 12),
	}
	var out [24]float64
	for a := 0; a < 4; a++ {
		out[6*a+2] = fer12[3*a]
		out[6*a+3] = fer12[3*a+1]
		out[6*a+4] = fer12[3*a+2]
	}
	return out
}
