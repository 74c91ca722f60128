package ele

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
)

// Steel W-shape-ish properties used across the frame element tests.
const (
	testE  = 200e9
	testG  = 77e9
	testA  = 4.94e-3
	testIy = 8.49e-5
	testIz = 7.2e-6
	testJ  = 1.25e-7
	testL  = 4.0
)

// spec.md §8 "Symmetry": K[i,j] = K[j,i] within 1e-6 relative tolerance.
func TestFrameLocalStiffnessSymmetric(tst *testing.T) {
	chk.PrintTitle("FrameLocalStiffnessSymmetric")
	k := FrameLocalStiffness(testE, testG, testA, testIy, testIz, testJ, testL)
	for i := 0; i < 12; i++ {
		for j := 0; j < 12; j++ {
			scale := math.Max(1.0, math.Abs(k[i][j]))
			if math.Abs(k[i][j]-k[j][i]) > 1e-6*scale {
				tst.Errorf("K[%d][%d]=%v != K[%d][%d]=%v", i, j, k[i][j], j, i, k[j][i])
			}
		}
	}
}

func TestFrameGeometricStiffnessSymmetric(tst *testing.T) {
	chk.PrintTitle("FrameGeometricStiffnessSymmetric")
	kg := FrameGeometricStiffness(50000.0, testA, testIy, testIz, testL)
	for i := 0; i < 12; i++ {
		for j := 0; j < 12; j++ {
			scale := math.Max(1.0, math.Abs(kg[i][j]))
			if math.Abs(kg[i][j]-kg[j][i]) > 1e-6*scale {
				tst.Errorf("Kg[%d][%d]=%v != Kg[%d][%d]=%v", i, j, kg[i][j], j, i, kg[j][i])
			}
		}
	}
}

// spec.md §8 "Rigid-body mode": a pure translation applied to both ends
// of an unrestrained element yields zero element forces.
func TestFrameRigidBodyTranslation(tst *testing.T) {
	chk.PrintTitle("FrameRigidBodyTranslation")
	k := FrameLocalStiffness(testE, testG, testA, testIy, testIz, testJ, testL)
	d := [12]float64{0.01, 0.02, -0.03, 0, 0, 0, 0.01, 0.02, -0.03, 0, 0, 0}
	f := make([]float64, 12)
	for i := 0; i < 12; i++ {
		for j := 0; j < 12; j++ {
			f[i] += k[i][j] * d[j]
		}
	}
	chk.Vector(tst, "f", 1e-6, f, make([]float64, 12))
}

// spec.md §8 "Condensation idempotence": releasing nothing returns K
// bit-for-bit.
func TestApplyReleasesEmptyMaskIsIdentity(tst *testing.T) {
	chk.PrintTitle("ApplyReleasesEmptyMaskIsIdentity")
	k := FrameLocalStiffness(testE, testG, testA, testIy, testIz, testJ, testL)
	var none [12]bool
	out := ApplyReleases(k, none)
	for i := 0; i < 12; i++ {
		for j := 0; j < 12; j++ {
			if out[i][j] != k[i][j] {
				tst.Errorf("condensed[%d][%d]=%v != original=%v", i, j, out[i][j], k[i][j])
			}
		}
	}
}

// spec.md §8 "Release consistency": releasing My_i/Mz_i and condensing
// must leave those rows/columns at exactly zero stiffness, so any
// moment reconstructed at a released end against that row is zero.
func TestApplyReleasesZeroesReleasedRow(tst *testing.T) {
	chk.PrintTitle("ApplyReleasesZeroesReleasedRow")
	k := FrameLocalStiffness(testE, testG, testA, testIy, testIz, testJ, testL)
	var releases [12]bool
	releases[4] = true // My_i
	releases[5] = true // Mz_i
	out := ApplyReleases(k, releases)
	for j := 0; j < 12; j++ {
		if out[4][j] != 0 || out[5][j] != 0 || out[j][4] != 0 || out[j][5] != 0 {
			tst.Errorf("released row/col %d not zero: out[4][%d]=%v out[5][%d]=%v", j, j, out[4][j], j, out[5][j])
		}
	}
}

func TestFerUniformLoadEqualShearsOpposingMoments(tst *testing.T) {
	chk.PrintTitle("FerUniformLoadEqualShearsOpposingMoments")
	fer := FerUniformLoad(1000.0, testL, 1)
	chk.Scalar(tst, "Fy_i", 1e-9, fer[1], -1000.0*testL/2)
	chk.Scalar(tst, "Fy_j", 1e-9, fer[7], -1000.0*testL/2)
	chk.Scalar(tst, "Mz_i + Mz_j", 1e-9, fer[5]+fer[11], 0)
}
