package solve

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/daveh07/fea3d/fea/model"
)

// portalFrame builds spec.md §8 scenario 2: a single-bay, single-story
// portal frame (fixed bases, rigid beam-to-column joints) with a dead
// gravity case on the roof nodes and a wind case pushing sideways on one
// of them, combined in "1.2D + 1.0W".
func portalFrame() *model.Model {
	m := model.New()
	mat := model.Steel("Steel")
	m.AddMaterial(mat)
	sec := model.NewSection("W1", 4.94e-3, 8.49e-5, 7.2e-6, 1.25e-7)
	m.AddSection(sec)

	m.AddNode(model.NewNode("N1", 0, 0, 0)) // base, left
	m.AddNode(model.NewNode("N2", 6, 0, 0)) // base, right
	m.AddNode(model.NewNode("N3", 0, 0, 4)) // roof, left
	m.AddNode(model.NewNode("N4", 6, 0, 4)) // roof, right

	m.AddMember(model.NewMember("Col1", "N1", "N3", "Steel", "W1"))
	m.AddMember(model.NewMember("Col2", "N2", "N4", "Steel", "W1"))
	m.AddMember(model.NewMember("Beam", "N3", "N4", "Steel", "W1"))

	m.AddSupport("N1", model.Fixed())
	m.AddSupport("N2", model.Fixed())

	m.AddNodeLoad(model.NodeLoad{Node: "N3", Case: "Dead", Fz: -60000})
	m.AddNodeLoad(model.NodeLoad{Node: "N4", Case: "Dead", Fz: -60000})
	m.AddNodeLoad(model.NodeLoad{Node: "N3", Case: "Wind", Fx: 10000})

	m.AddLoadCombination(model.NewLoadCombination("1.2D + 1.0W").With("Dead", 1.2).With("Wind", 1.0))
	return m
}

// spec.md §8 scenario 2 (Portal frame dead+wind P-Delta): the P-Delta
// sidesway drift at the roof must exceed the linear-theory drift (second
// order amplification of the lateral deflection under axial load), but
// stay within the same order of magnitude for this lightly loaded frame.
func TestPortalFrameDeadWindPDelta(tst *testing.T) {
	chk.PrintTitle("PortalFrameDeadWindPDelta")

	mLinear := portalFrame()
	if err := Analyze(mLinear, WithAnalysisType(model.Linear), WithComboTags("1.2D + 1.0W")); err != nil {
		tst.Fatalf("Analyze (linear): %v", err)
	}
	n3Linear, _ := mLinear.GetNode("N3")
	driftLinear := n3Linear.Displacements["1.2D + 1.0W"][0]

	mPDelta := portalFrame()
	history := make([]float64, 0)
	if err := Analyze(mPDelta,
		WithAnalysisType(model.PDelta),
		WithComboTags("1.2D + 1.0W"),
		WithHistory(&history),
	); err != nil {
		tst.Fatalf("Analyze (P-Delta): %v", err)
	}
	n3PDelta, _ := mPDelta.GetNode("N3")
	driftPDelta := n3PDelta.Displacements["1.2D + 1.0W"][0]

	if driftLinear <= 0 {
		tst.Fatalf("expected positive linear sidesway drift, got %v", driftLinear)
	}
	if driftPDelta <= driftLinear {
		tst.Errorf("P-Delta drift=%v want > linear drift=%v (second-order amplification)", driftPDelta, driftLinear)
	}
	amplification := driftPDelta / driftLinear
	if amplification > 1.5 {
		tst.Errorf("P-Delta amplification=%.3f want <1.5 for this lightly loaded frame", amplification)
	}
	if len(history) == 0 {
		tst.Errorf("expected at least one recorded P-Delta iteration delta")
	}

	// Reaction equilibrium: the two base Fx reactions must balance the
	// applied wind shear.
	n1, _ := mPDelta.GetNode("N1")
	n2, _ := mPDelta.GetNode("N2")
	sumFx := n1.Reactions["1.2D + 1.0W"][0] + n2.Reactions["1.2D + 1.0W"][0]
	if math.Abs(sumFx+10000) > 5.0 {
		tst.Errorf("sum of base Fx reactions=%v want approx -10000", sumFx)
	}
}
