package assemble

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/daveh07/fea3d/fea/model"
)

func twoNodeModel() *model.Model {
	m := model.New()
	m.AddMaterial(model.Steel("Steel"))
	m.AddSection(model.Rectangular("R1", 0.3, 0.5))
	m.AddNode(model.NewNode("N1", 0, 0, 0))
	m.AddNode(model.NewNode("N2", 4, 0, 0))
	m.AddMember(model.NewMember("M1", "N1", "N2", "Steel", "R1"))
	return m
}

// BuildPartition must mark every DOF of an unsupported node as free, and
// every restrained DOF of a supported node as restrained, recording any
// enforced value under its global DOF index.
func TestBuildPartitionFreeRestrainedEnforced(tst *testing.T) {
	chk.PrintTitle("BuildPartitionFreeRestrainedEnforced")
	m := twoNodeModel()
	m.AddSupport("N1", model.Fixed())
	m.AddSupport("N2", model.NewSupport().WithEnforcedDy(-0.02))
	if err := Prepare(m); err != nil {
		tst.Fatalf("Prepare: %v", err)
	}

	part := BuildPartition(m)
	if len(part.Restrained) != 7 {
		tst.Fatalf("len(Restrained)=%d want 7 (6 fixed + 1 enforced)", len(part.Restrained))
	}
	if len(part.Free) != 5 {
		tst.Fatalf("len(Free)=%d want 5", len(part.Free))
	}
	n2, _ := m.GetNode("N2")
	dyDof := n2.DofOffset() + 1
	v, ok := part.Enforced[dyDof]
	if !ok || v != -0.02 {
		tst.Errorf("Enforced[%d]=%v,%v want -0.02,true", dyDof, v, ok)
	}
}

// An unsupported node contributes all six DOFs as free.
func TestBuildPartitionNoSupportIsFullyFree(tst *testing.T) {
	chk.PrintTitle("BuildPartitionNoSupportIsFullyFree")
	m := twoNodeModel()
	if err := Prepare(m); err != nil {
		tst.Fatalf("Prepare: %v", err)
	}
	part := BuildPartition(m)
	if len(part.Free) != 12 || len(part.Restrained) != 0 {
		tst.Errorf("Free=%d Restrained=%d want 12,0", len(part.Free), len(part.Restrained))
	}
}

// GlobalStiffness must be symmetric (spec.md §8 "Symmetry" applied at
// assembly scope) and its size must match 6*nodes.
func TestGlobalStiffnessSymmetricAndSized(tst *testing.T) {
	chk.PrintTitle("GlobalStiffnessSymmetricAndSized")
	m := twoNodeModel()
	if err := Prepare(m); err != nil {
		tst.Fatalf("Prepare: %v", err)
	}
	k, err := GlobalStiffness(m)
	if err != nil {
		tst.Fatalf("GlobalStiffness: %v", err)
	}
	n := m.TotalDofs()
	if len(k) != n || len(k[0]) != n {
		tst.Fatalf("K is %dx%d want %dx%d", len(k), len(k[0]), n, n)
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if k[i][j] != k[j][i] {
				tst.Errorf("K[%d][%d]=%v != K[%d][%d]=%v", i, j, k[i][j], j, i, k[j][i])
			}
		}
	}
}

// LoadVector must place a node load's six components at that node's DOF
// offset, scaled by the combo's factor for the load's case.
func TestLoadVectorPlacesNodeLoadScaledByComboFactor(tst *testing.T) {
	chk.PrintTitle("LoadVectorPlacesNodeLoadScaledByComboFactor")
	m := twoNodeModel()
	m.AddNodeLoad(model.NodeLoad{Node: "N2", Case: "Dead", Fy: -1000})
	if err := Prepare(m); err != nil {
		tst.Fatalf("Prepare: %v", err)
	}
	combo := model.NewLoadCombination("Combo").With("Dead", 1.5)
	p, err := LoadVector(m, combo)
	if err != nil {
		tst.Fatalf("LoadVector: %v", err)
	}
	n2, _ := m.GetNode("N2")
	off := n2.DofOffset()
	if p[off+1] != -1500 {
		tst.Errorf("P[Fy]=%v want -1500", p[off+1])
	}
	// An unlisted case contributes nothing regardless of combo factor.
	combo2 := model.NewLoadCombination("Other").With("Live", 2.0)
	p2, err := LoadVector(m, combo2)
	if err != nil {
		tst.Fatalf("LoadVector: %v", err)
	}
	if p2[off+1] != 0 {
		tst.Errorf("P[Fy]=%v want 0 for an unreferenced case", p2[off+1])
	}
}
