package solve

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/daveh07/fea3d/fea/model"
	"github.com/daveh07/fea3d/fea/result"
)

// cantileverModel builds spec.md §8 scenario 1: a single fixed-free
// member with a transverse tip load, along the global x axis.
func cantileverModel(tipLoad float64) (*model.Model, *model.Section, *model.Material) {
	m := model.New()
	mat := model.Steel("Steel")
	sec := model.Rectangular("R1", 0.3, 0.5)
	m.AddMaterial(mat)
	m.AddSection(sec)
	m.AddNode(model.NewNode("N1", 0, 0, 0))
	m.AddNode(model.NewNode("N2", 10, 0, 0))
	m.AddMember(model.NewMember("M1", "N1", "N2", "Steel", "R1"))
	m.AddSupport("N1", model.Fixed())
	m.AddNodeLoad(model.NodeLoad{Node: "N2", Case: "Case 1", Fy: tipLoad})
	return m, sec, mat
}

// spec.md §8 scenario 1 (Cantilever tip deflection) plus the Reaction
// equilibrium property, checked together since they share one model.
func TestCantileverTipDeflectionAndReactions(tst *testing.T) {
	chk.PrintTitle("CantileverTipDeflectionAndReactions")
	const p = -10000.0
	m, sec, mat := cantileverModel(p)

	if err := Analyze(m); err != nil {
		tst.Fatalf("Analyze: %v", err)
	}

	n2, _ := m.GetNode("N2")
	dy := n2.Displacements["Combo 1"][1]
	expected := p * 10.0 * 10.0 * 10.0 / (3 * mat.E * sec.Iz)
	if math.Abs(dy-expected) > 0.02*math.Abs(expected) {
		tst.Errorf("tip dy=%v want %v (2%%)", dy, expected)
	}

	n1, _ := m.GetNode("N1")
	reactFy := n1.Reactions["Combo 1"][1]
	if math.Abs(reactFy-(-p)) > 1.0 {
		tst.Errorf("reaction Fy=%v want %v (+/-1N)", reactFy, -p)
	}
	reactMz := n1.Reactions["Combo 1"][5]
	expectedMoment := -p * 10.0
	if math.Abs(math.Abs(reactMz)-math.Abs(expectedMoment)) > 0.01*math.Abs(expectedMoment) {
		tst.Errorf("|reaction Mz|=%v want %v (1%%)", math.Abs(reactMz), math.Abs(expectedMoment))
	}

	// spec.md §8 "Reaction equilibrium": reactions + applied loads sum to
	// zero on every free-body DOF, within 1N or 1e-6 of the largest force.
	sumFy := reactFy + p
	if math.Abs(sumFy) > 1.0 {
		tst.Errorf("Fy equilibrium residual=%v", sumFy)
	}
}

// spec.md §8 scenario 4 (Released beam): a simply-supported span under a
// uniform load reproduces the textbook wL^2/8 mid-span moment and a
// zero moment at the pinned ends. Out-of-plane and torsional DOFs are
// restrained at both nodes since this single-member model has no other
// members to resist lateral-torsional rigid-body rotation.
func TestReleasedBeamMidSpanMoment(tst *testing.T) {
	chk.PrintTitle("ReleasedBeamMidSpanMoment")
	const w = -5000.0
	const l = 6.0
	m := model.New()
	m.AddMaterial(model.Steel("Steel"))
	m.AddSection(model.Rectangular("R1", 0.3, 0.5))
	m.AddNode(model.NewNode("N1", 0, 0, 0))
	m.AddNode(model.NewNode("N2", l, 0, 0))
	mem := model.NewMember("M1", "N1", "N2", "Steel", "R1")
	m.AddMember(mem)
	m.AddSupport("N1", model.WithRestraints(true, true, true, true, true, false))
	m.AddSupport("N2", model.WithRestraints(false, true, true, true, true, false))
	m.AddDistributedLoad(model.DistributedLoad{Member: "M1", Case: "Case 1", W1: w, W2: w, Direction: model.LocalY})

	if err := Analyze(m); err != nil {
		tst.Fatalf("Analyze: %v", err)
	}

	mz0, err := result.MomentZ(m, mem, 0, "Combo 1")
	if err != nil {
		tst.Fatalf("MomentZ(0): %v", err)
	}
	if math.Abs(mz0) > 1.0 {
		tst.Errorf("moment at pinned end=%v want ~0", mz0)
	}

	mzMid, err := result.MomentZ(m, mem, l/2, "Combo 1")
	if err != nil {
		tst.Fatalf("MomentZ(mid): %v", err)
	}
	expectedMid := -w * l * l / 8
	if math.Abs(math.Abs(mzMid)-expectedMid) > 0.01*expectedMid {
		tst.Errorf("mid-span |moment|=%v want %v (1%%)", math.Abs(mzMid), expectedMid)
	}

	n1, _ := m.GetNode("N1")
	n2, _ := m.GetNode("N2")
	totalReactionFy := n1.Reactions["Combo 1"][1] + n2.Reactions["Combo 1"][1]
	totalLoad := -w * l
	if math.Abs(totalReactionFy-totalLoad) > 1e-6*totalLoad {
		tst.Errorf("sum of vertical reactions=%v want %v", totalReactionFy, totalLoad)
	}
}

// spec.md §8 "Enforced displacement": a node with an enforced value
// reports exactly that value after solving, within machine epsilon.
func TestEnforcedDisplacementExact(tst *testing.T) {
	chk.PrintTitle("EnforcedDisplacementExact")
	m := model.New()
	m.AddMaterial(model.Steel("Steel"))
	m.AddSection(model.Rectangular("R1", 0.3, 0.5))
	m.AddNode(model.NewNode("N1", 0, 0, 0))
	m.AddNode(model.NewNode("N2", 5, 0, 0))
	m.AddMember(model.NewMember("M1", "N1", "N2", "Steel", "R1"))
	m.AddSupport("N1", model.Fixed())
	const enforced = -0.01
	m.AddSupport("N2", model.NewSupport().WithEnforcedDy(enforced))

	if err := Analyze(m); err != nil {
		tst.Fatalf("Analyze: %v", err)
	}
	n2, _ := m.GetNode("N2")
	dy := n2.Displacements["Combo 1"][1]
	chk.Scalar(tst, "enforced dy", 1e-12, dy, enforced)
}

// spec.md §8 "round-trip determinism": two independently built, identical
// models solve to identical displacements within 1e-12.
func TestRoundTripDeterminism(tst *testing.T) {
	chk.PrintTitle("RoundTripDeterminism")
	m1, _, _ := cantileverModel(-8000.0)
	m2, _, _ := cantileverModel(-8000.0)

	if err := Analyze(m1); err != nil {
		tst.Fatalf("Analyze m1: %v", err)
	}
	if err := Analyze(m2); err != nil {
		tst.Fatalf("Analyze m2: %v", err)
	}
	n2a, _ := m1.GetNode("N2")
	n2b, _ := m2.GetNode("N2")
	da := n2a.Displacements["Combo 1"]
	db := n2b.Displacements["Combo 1"]
	for i := 0; i < 6; i++ {
		if math.Abs(da[i]-db[i]) > 1e-12 {
			tst.Errorf("dof %d: %v != %v", i, da[i], db[i])
		}
	}
}

// spec.md §8 scenario 6 (Sparse vs dense equivalence): the sparse PCG
// path and the dense LU path must agree to within 1e-6 relative, per DOF.
func TestSparseVsDenseEquivalence(tst *testing.T) {
	chk.PrintTitle("SparseVsDenseEquivalence")
	mDense, _, _ := cantileverModel(-12000.0)
	mSparse, _, _ := cantileverModel(-12000.0)

	if err := Analyze(mDense, WithSparse(false)); err != nil {
		tst.Fatalf("Analyze dense: %v", err)
	}
	if err := Analyze(mSparse, WithSparse(true)); err != nil {
		tst.Fatalf("Analyze sparse: %v", err)
	}

	for _, name := range []string{"N1", "N2"} {
		nd, _ := mDense.GetNode(name)
		ns, _ := mSparse.GetNode(name)
		dd := nd.Displacements["Combo 1"]
		ds := ns.Displacements["Combo 1"]
		for i := 0; i < 6; i++ {
			scale := math.Max(1e-9, math.Abs(dd[i]))
			if math.Abs(dd[i]-ds[i]) > 1e-6*scale {
				tst.Errorf("%s dof %d: dense=%v sparse=%v", name, i, dd[i], ds[i])
			}
		}
	}
}

// simplySupportedPlate builds spec.md §8 scenario 3: a single rectangular
// plate, pinned (Dz + full in-plane restraint, since an isolated single
// element has no neighbors to otherwise carry membrane rigid-body modes)
// at its four corners, under a uniform downward (local -z) pressure.
func simplySupportedPlate(formulation model.BendingFormulation, thickness float64) *model.Model {
	m := model.New()
	m.AddMaterial(model.Steel("Steel"))
	m.AddNode(model.NewNode("N1", 0, 0, 0))
	m.AddNode(model.NewNode("N2", 2, 0, 0))
	m.AddNode(model.NewNode("N3", 2, 1, 0))
	m.AddNode(model.NewNode("N4", 0, 1, 0))
	m.AddPlate(model.NewPlate("P1", "N1", "N2", "N3", "N4", "Steel", thickness).WithFormulation(formulation))
	for _, n := range []string{"N1", "N2", "N3", "N4"} {
		m.AddSupport(n, model.WithRestraints(true, true, true, false, false, true))
	}
	m.AddPlateLoad(model.PlateLoad{Plate: "P1", Case: "Case 1", Pressure: -1000})
	return m
}

// spec.md §8 scenario 3 (Simply-supported plate) and the Reaction
// equilibrium property applied to a plate: the sum of corner Dz
// reactions balances the total applied pressure, and the reconstructed
// von Mises membrane stress is finite and non-negative.
func TestSimplySupportedPlateEquilibriumAndStress(tst *testing.T) {
	chk.PrintTitle("SimplySupportedPlateEquilibriumAndStress")
	m := simplySupportedPlate(model.Mindlin, 0.01)
	if err := Analyze(m); err != nil {
		tst.Fatalf("Analyze: %v", err)
	}

	totalDz := 0.0
	for _, n := range []string{"N1", "N2", "N3", "N4"} {
		node, _ := m.GetNode(n)
		totalDz += node.Reactions["Combo 1"][2]
	}
	totalLoad := 1000.0 * 2.0 * 1.0
	if math.Abs(totalDz-totalLoad) > 0.02*totalLoad {
		tst.Errorf("sum of Dz reactions=%v want %v (2%%)", totalDz, totalLoad)
	}

	p, _ := m.GetPlate("P1")
	vm, err := result.VonMises(p, "Combo 1")
	if err != nil {
		tst.Fatalf("VonMises: %v", err)
	}
	if math.IsNaN(vm) || math.IsInf(vm, 0) || vm < 0 {
		tst.Errorf("von Mises stress=%v want a finite, non-negative value", vm)
	}
}

// spec.md §8 "Kirchhoff vs Mindlin agreement": on a thin plate
// (t/span < 1/50) the two bending formulations' center-point moments
// should agree within spec.md's stated 5% bound, since the Mindlin
// element's shear contribution vanishes as t/span shrinks.
func TestKirchhoffVsMindlinAgreementOnThinPlate(tst *testing.T) {
	chk.PrintTitle("KirchhoffVsMindlinAgreementOnThinPlate")
	const thickness = 0.01 // span 2m => t/span = 1/200, well under 1/50
	mKirchhoff := simplySupportedPlate(model.Kirchhoff, thickness)
	mMindlin := simplySupportedPlate(model.Mindlin, thickness)

	if err := Analyze(mKirchhoff); err != nil {
		tst.Fatalf("Analyze Kirchhoff: %v", err)
	}
	if err := Analyze(mMindlin); err != nil {
		tst.Fatalf("Analyze Mindlin: %v", err)
	}

	pk, _ := mKirchhoff.GetPlate("P1")
	pm, _ := mMindlin.GetPlate("P1")
	mk := pk.BendingMoment["Combo 1"]
	mm := pm.BendingMoment["Combo 1"]

	magK := math.Hypot(mk[0], mk[1])
	magM := math.Hypot(mm[0], mm[1])
	if magK == 0 || magM == 0 {
		tst.Fatalf("expected nonzero bending moments: Kirchhoff=%v Mindlin=%v", mk, mm)
	}
	// At t/span=1/200 the Mindlin element's shear term is negligible, so
	// its moments should converge onto the Kirchhoff element's closed-form
	// (shear-free) moments to within spec.md's 5% bound.
	rel := math.Abs(magK-magM) / math.Max(magK, magM)
	if rel > 0.05 {
		tst.Errorf("Kirchhoff/Mindlin moment magnitude disagreement=%.3f want <0.05 (Kirchhoff=%v Mindlin=%v)", rel, mk, mm)
	}
}
