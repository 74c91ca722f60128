package persist

import (
	"encoding/json"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/daveh07/fea3d/fea/model"
)

// buildRichModel exercises every catalog kind the JSON document carries:
// nodes, a yield-stressed material, a derived section, a released
// member, a plate, a fully/partially restrained support pair (one with
// an enforced value), every load kind, and a load combination.
func buildRichModel() *model.Model {
	m := model.New()
	m.AddNode(model.NewNode("N1", 0, 0, 0))
	m.AddNode(model.NewNode("N2", 4, 0, 0))
	m.AddNode(model.NewNode("N3", 4, 3, 0))
	m.AddNode(model.NewNode("N4", 0, 3, 0))
	m.AddMaterial(model.Steel("Steel"))
	m.AddSection(model.Rectangular("R1", 0.3, 0.5))
	m.AddMember(model.NewMember("M1", "N1", "N2", "Steel", "R1").WithReleases(model.PinJ()).WithRotation(0.1))
	m.AddPlate(model.NewPlate("P1", "N1", "N2", "N3", "N4", "Steel", 0.01).WithFormulation(model.Mindlin))
	m.AddSupport("N1", model.Fixed())
	m.AddSupport("N2", model.NewSupport().WithEnforcedDy(-0.005))
	m.AddNodeLoad(model.NodeLoad{Node: "N3", Case: "Dead", Fz: -500})
	m.AddPointLoad(model.PointLoad{Member: "M1", Case: "Live", Magnitude: 2000, Direction: model.LocalY, Distance: 1.0})
	m.AddDistributedLoad(model.DistributedLoad{Member: "M1", Case: "Dead", W1: -1000, W2: -1000, Direction: model.LocalY})
	m.AddPlateLoad(model.PlateLoad{Plate: "P1", Case: "Live", Pressure: 1500})
	m.AddLoadCombination(model.NewLoadCombination("1.2D+1.6L").With("Dead", 1.2).With("Live", 1.6))
	return m
}

func TestMarshalUnmarshalRoundTrip(tst *testing.T) {
	chk.PrintTitle("MarshalUnmarshalRoundTrip")
	m := buildRichModel()

	data, err := Marshal(m)
	if err != nil {
		tst.Fatalf("Marshal: %v", err)
	}
	got, err := Unmarshal(data)
	if err != nil {
		tst.Fatalf("Unmarshal: %v", err)
	}

	if len(got.Nodes) != len(m.Nodes) || len(got.Members) != len(m.Members) ||
		len(got.Plates) != len(m.Plates) || len(got.Supports) != len(m.Supports) ||
		len(got.Combos) != len(m.Combos) {
		tst.Fatalf("catalog counts mismatch: %+v", got)
	}

	n2, err := got.GetNode("N2")
	if err != nil || n2.X != 4 {
		tst.Errorf("N2 did not round-trip: %v %+v", err, n2)
	}

	mem, err := got.GetMember("M1")
	if err != nil {
		tst.Fatalf("GetMember: %v", err)
	}
	if mem.Releases.JNode[4] != true || mem.Releases.JNode[5] != true {
		tst.Errorf("PinJ releases did not round-trip: %+v", mem.Releases)
	}
	chk.Scalar(tst, "rotation", 1e-15, mem.Rotation, 0.1)

	sec, err := got.GetSection("R1")
	if err != nil {
		tst.Fatalf("GetSection: %v", err)
	}
	origSec, _ := m.GetSection("R1")
	chk.Scalar(tst, "Iz", 1e-15, sec.Iz, origSec.Iz)
	if sec.Width == nil || *sec.Width != *origSec.Width {
		tst.Errorf("Width pointer field did not round-trip")
	}

	sup := got.Supports["N2"]
	if sup.EnforcedDy == nil || *sup.EnforcedDy != -0.005 {
		tst.Errorf("enforced Dy did not round-trip: %+v", sup)
	}
	if !sup.Dy {
		tst.Errorf("setting EnforcedDy must imply Dy=true")
	}

	combo := got.Combos["1.2D+1.6L"]
	if combo == nil || combo.Factor("Dead") != 1.2 || combo.Factor("Live") != 1.6 {
		tst.Errorf("combo factors did not round-trip: %+v", combo)
	}

	if len(got.DistLoads) != 1 || got.DistLoads[0].W1 != -1000 {
		tst.Errorf("distributed load did not round-trip: %+v", got.DistLoads)
	}
	if len(got.PlateLoads) != 1 || got.PlateLoads[0].Pressure != 1500 {
		tst.Errorf("plate load did not round-trip: %+v", got.PlateLoads)
	}
}

// Unmarshal must still enforce spec.md §3's referential invariants: a
// member naming an unknown node fails with NodeNotFound even when it
// arrives via JSON rather than a direct AddMember call.
func TestUnmarshalRejectsDanglingReference(tst *testing.T) {
	chk.PrintTitle("UnmarshalRejectsDanglingReference")
	m := model.New()
	m.AddNode(model.NewNode("N1", 0, 0, 0))
	m.AddMaterial(model.Steel("Steel"))
	m.AddSection(model.Rectangular("R1", 0.3, 0.5))
	data, err := Marshal(m)
	if err != nil {
		tst.Fatalf("Marshal: %v", err)
	}

	// Hand-craft a document referencing a node that was never added.
	var d doc
	if err := json.Unmarshal(data, &d); err != nil {
		tst.Fatalf("decode: %v", err)
	}
	d.Members = append(d.Members, memberDoc{Name: "M1", INode: "N1", JNode: "Ghost", Material: "Steel", Section: "R1"})
	redone, err := json.Marshal(d)
	if err != nil {
		tst.Fatalf("re-encode: %v", err)
	}
	if _, err := Unmarshal(redone); err == nil {
		tst.Fatal("expected NodeNotFound for a dangling member reference")
	}
}
