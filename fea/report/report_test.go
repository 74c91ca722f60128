package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/daveh07/fea3d/fea/model"
	"github.com/daveh07/fea3d/fea/solve"
)

func analyzedCantilever(tst *testing.T) (*model.Model, *model.Member) {
	m := model.New()
	m.AddMaterial(model.Steel("Steel"))
	m.AddSection(model.Rectangular("R1", 0.3, 0.5))
	m.AddNode(model.NewNode("N1", 0, 0, 0))
	m.AddNode(model.NewNode("N2", 5, 0, 0))
	m.AddMember(model.NewMember("M1", "N1", "N2", "Steel", "R1"))
	m.AddSupport("N1", model.Fixed())
	m.AddNodeLoad(model.NodeLoad{Node: "N2", Case: "Case 1", Fy: -5000})
	if err := solve.Analyze(m); err != nil {
		tst.Fatalf("Analyze: %v", err)
	}
	mem, err := m.GetMember("M1")
	if err != nil {
		tst.Fatalf("GetMember: %v", err)
	}
	return m, mem
}

// ConvergenceSparkline must render a non-empty plot for a non-empty
// history and a placeholder message for an empty one.
func TestConvergenceSparkline(tst *testing.T) {
	chk.PrintTitle("ConvergenceSparkline")
	if got := ConvergenceSparkline(nil); got != "(no iterations recorded)" {
		tst.Errorf("empty history=%q want placeholder", got)
	}
	got := ConvergenceSparkline([]float64{0.01, 0.004, 0.0009, 0.0001})
	if got == "" || !strings.Contains(got, "P-Delta") {
		tst.Errorf("non-empty history rendered %q, want a caption mentioning P-Delta", got)
	}
}

// MemberDiagram must produce a non-empty image file for each quantity.
func TestMemberDiagramWritesFile(tst *testing.T) {
	chk.PrintTitle("MemberDiagramWritesFile")
	m, mem := analyzedCantilever(tst)
	dir := tst.TempDir()

	for _, q := range []Quantity{QuantityAxial, QuantityShearY, QuantityMomentZ} {
		path := filepath.Join(dir, q.label()+".png")
		if err := MemberDiagram(m, mem, q, "Combo 1", path); err != nil {
			tst.Fatalf("MemberDiagram(%v): %v", q, err)
		}
		info, err := os.Stat(path)
		if err != nil {
			tst.Fatalf("stat %s: %v", path, err)
		}
		if info.Size() == 0 {
			tst.Errorf("%s is empty", path)
		}
	}
}

// MemberDiagramSet must render three sibling files sharing basePath's stem.
func TestMemberDiagramSet(tst *testing.T) {
	chk.PrintTitle("MemberDiagramSet")
	m, mem := analyzedCantilever(tst)
	dir := tst.TempDir()
	base := filepath.Join(dir, "M1.png")
	if err := MemberDiagramSet(m, mem, "Combo 1", base); err != nil {
		tst.Fatalf("MemberDiagramSet: %v", err)
	}
	for _, suffix := range []string{"_axial", "_shear_y", "_moment_z"} {
		path := filepath.Join(dir, "M1"+suffix+".png")
		if _, err := os.Stat(path); err != nil {
			tst.Errorf("expected %s to exist: %v", path, err)
		}
	}
}

// WritePDF must assemble a non-empty report embedding the rendered
// diagrams, after a prior successful analyze().
func TestWritePDF(tst *testing.T) {
	chk.PrintTitle("WritePDF")
	m, mem := analyzedCantilever(tst)
	dir := tst.TempDir()
	diagramPath := filepath.Join(dir, "M1_axial.png")
	if err := MemberDiagram(m, mem, QuantityAxial, "Combo 1", diagramPath); err != nil {
		tst.Fatalf("MemberDiagram: %v", err)
	}

	pdfPath := filepath.Join(dir, "report.pdf")
	if err := WritePDF(m, "Combo 1", []string{diagramPath}, pdfPath); err != nil {
		tst.Fatalf("WritePDF: %v", err)
	}
	info, err := os.Stat(pdfPath)
	if err != nil {
		tst.Fatalf("stat %s: %v", pdfPath, err)
	}
	if info.Size() == 0 {
		tst.Errorf("%s is empty", pdfPath)
	}
}
