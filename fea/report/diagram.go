// Package report renders analysis results for human consumption: member
// force diagrams (gonum/plot), a printable PDF summary (fpdf), and a
// terminal convergence sparkline (asciigraph). None of this is part of
// the analysis core itself (spec.md §6 describes a pure library API);
// it is the domain-stack enrichment of SPEC_FULL.md's DOMAIN STACK
// section, grounded on alexiusacademia-gorcb/internal/diagram/image.go's
// plotter.NewLine diagram-export idiom.
package report

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/daveh07/fea3d/fea/model"
	"github.com/daveh07/fea3d/fea/result"
)

// stationCount is the number of sample points used to plot a member's
// force diagram along its span.
const stationCount = 21

// Quantity selects which per-station member-force accessor (fea/result)
// MemberDiagram samples and plots.
type Quantity int

const (
	QuantityAxial Quantity = iota
	QuantityShearY
	QuantityShearZ
	QuantityMomentY
	QuantityMomentZ
	QuantityTorsion
)

func (q Quantity) label() string {
	switch q {
	case QuantityAxial:
		return "Axial Force"
	case QuantityShearY:
		return "Shear Y"
	case QuantityShearZ:
		return "Shear Z"
	case QuantityMomentY:
		return "Moment Y"
	case QuantityMomentZ:
		return "Moment Z"
	case QuantityTorsion:
		return "Torsion"
	}
	return "Unknown"
}

func sample(m *model.Model, mem *model.Member, q Quantity, combo string) (plotter.XYs, error) {
	pts := make(plotter.XYs, stationCount)
	for i := 0; i < stationCount; i++ {
		x := mem.Length * float64(i) / float64(stationCount-1)
		var v float64
		var err error
		switch q {
		case QuantityAxial:
			v, err = result.Axial(mem, x, combo)
		case QuantityShearY:
			v, err = result.ShearY(mem, x, combo)
		case QuantityShearZ:
			v, err = result.ShearZ(mem, x, combo)
		case QuantityMomentY:
			v, err = result.MomentY(m, mem, x, combo)
		case QuantityMomentZ:
			v, err = result.MomentZ(m, mem, x, combo)
		case QuantityTorsion:
			v, err = result.Torsion(mem, x, combo)
		}
		if err != nil {
			return nil, err
		}
		pts[i] = plotter.XY{X: x, Y: v}
	}
	return pts, nil
}

// MemberDiagram renders one force/moment quantity along mem's span for
// combo to filename (extension selects the gonum/plot backend: .png,
// .svg, .pdf).
func MemberDiagram(m *model.Model, mem *model.Member, q Quantity, combo, filename string) error {
	pts, err := sample(m, mem, q, combo)
	if err != nil {
		return err
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s — %s (%s)", mem.Name, q.label(), combo)
	p.X.Label.Text = "Position along member (m)"
	p.Y.Label.Text = q.label()

	zero, err := plotter.NewLine(plotter.XYs{{X: 0, Y: 0}, {X: mem.Length, Y: 0}})
	if err != nil {
		return err
	}
	zero.LineStyle.Width = vg.Points(0.5)
	zero.LineStyle.Color = color.Gray{Y: 160}
	p.Add(zero)

	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	line.LineStyle.Width = vg.Points(2)
	line.LineStyle.Color = color.RGBA{R: 30, G: 60, B: 200, A: 255}
	p.Add(line)

	fill, err := plotter.NewPolygon(append(append(plotter.XYs{}, pts...), plotter.XY{X: mem.Length, Y: 0}, plotter.XY{X: 0, Y: 0}))
	if err == nil {
		fill.Color = color.RGBA{R: 30, G: 60, B: 200, A: 60}
		fill.LineStyle.Width = 0
		p.Add(fill)
	}

	if dir := filepath.Dir(filename); dir != "" && dir != "." {
		os.MkdirAll(dir, 0755)
	}
	return p.Save(6*vg.Inch, 3*vg.Inch, filename)
}

// MemberDiagramSet renders Axial, ShearY, MomentZ for mem under combo to
// three files sharing basePath's stem (basePath without extension gets a
// "_axial"/"_shear_y"/"_moment_z" suffix, extension preserved).
func MemberDiagramSet(m *model.Model, mem *model.Member, combo, basePath string) error {
	ext := filepath.Ext(basePath)
	stem := basePath[:len(basePath)-len(ext)]
	quantities := []struct {
		q      Quantity
		suffix string
	}{
		{QuantityAxial, "_axial"},
		{QuantityShearY, "_shear_y"},
		{QuantityMomentZ, "_moment_z"},
	}
	for _, qs := range quantities {
		if err := MemberDiagram(m, mem, qs.q, combo, stem+qs.suffix+ext); err != nil {
			return err
		}
	}
	return nil
}
