package ele

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

// spec.md §8 "Transformation orthogonality": Tt*T = I within 1e-10 on
// the 3x3 block, checked across vertical, horizontal, and inclined
// members (the three branches of MemberTransform's tie-break logic).
func TestMemberTransformOrthogonality(tst *testing.T) {
	chk.PrintTitle("MemberTransformOrthogonality")
	cases := []struct {
		name string
		i, j [3]float64
	}{
		{"horizontal", [3]float64{0, 0, 0}, [3]float64{5, 0, 0}},
		{"vertical", [3]float64{0, 0, 0}, [3]float64{0, 3, 0}},
		{"inclined", [3]float64{0, 0, 0}, [3]float64{4, 3, 2}},
	}
	for _, c := range cases {
		t, length, err := MemberTransform(c.i, c.j, 0)
		if err != nil {
			tst.Fatalf("%s: %v", c.name, err)
		}
		if length <= 0 {
			tst.Fatalf("%s: non-positive length", c.name)
		}
		var r [3][3]float64
		for a := 0; a < 3; a++ {
			for b := 0; b < 3; b++ {
				r[a][b] = t[a][b]
			}
		}
		for a := 0; a < 3; a++ {
			for b := 0; b < 3; b++ {
				var s float64
				for k := 0; k < 3; k++ {
					s += r[k][a] * r[k][b]
				}
				expect := 0.0
				if a == b {
					expect = 1.0
				}
				if abs(s-expect) > 1e-10 {
					tst.Errorf("%s: (Tt*T)[%d][%d]=%v want %v", c.name, a, b, s, expect)
				}
			}
		}
	}
}

func TestMemberTransformZeroLengthFails(tst *testing.T) {
	chk.PrintTitle("MemberTransformZeroLengthFails")
	_, _, err := MemberTransform([3]float64{0, 0, 0}, [3]float64{0, 0, 0}, 0)
	if err == nil {
		tst.Fatal("expected an error for a zero-length member")
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
