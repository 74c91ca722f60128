package result

import (
	"github.com/daveh07/fea3d/fea/assemble"
	"github.com/daveh07/fea3d/fea/ele"
	"github.com/daveh07/fea3d/fea/ferr"
	"github.com/daveh07/fea3d/fea/model"
)

// ComputePlateResults reconstructs nodal displacements (in local axes)
// and center-point membrane stress / bending moment for every plate
// under combo (spec.md §4.7).
func ComputePlateResults(m *model.Model, combo *model.LoadCombination) error {
	for _, name := range m.PlateOrder {
		p := m.Plates[name]
		if err := computeOnePlate(m, p, combo); err != nil {
			return err
		}
	}
	for _, name := range m.QuadOrder {
		q := m.Quads[name]
		if err := computeOnePlate(m, &q.Plate, combo); err != nil {
			return err
		}
	}
	return nil
}

func computeOnePlate(m *model.Model, p *model.Plate, combo *model.LoadCombination) error {
	mat, err := m.GetMaterial(p.Material)
	if err != nil {
		return err
	}

	var dGlobal [24]float64
	names := p.Nodes()
	for a, nn := range names {
		node, err := m.GetNode(nn)
		if err != nil {
			return err
		}
		d, ok := node.Displacements[combo.Name]
		if !ok {
			return ferr.NotAnalyzedErr()
		}
		copy(dGlobal[6*a:6*a+6], d[:])
	}

	g, err := assemble.BuildPlateGeometry(m, p)
	if err != nil {
		return err
	}
	dLocal := transformVec24ToLocal(g.T, dGlobal)
	p.NodalDisplacements[combo.Name] = dLocal

	var uMembrane [8]float64
	var dBending [12]float64
	for a := 0; a < 4; a++ {
		uMembrane[2*a] = dLocal[6*a]
		uMembrane[2*a+1] = dLocal[6*a+1]
		dBending[3*a] = dLocal[6*a+2]
		dBending[3*a+1] = dLocal[6*a+3]
		dBending[3*a+2] = dLocal[6*a+4]
	}

	stress := ele.MembraneStressAt(mat.E, mat.Nu, p.KxMod, p.KyMod, p.Width, p.Height, uMembrane)
	p.MembraneStress[combo.Name] = stress
	moment := ele.BendingMomentAt(mat.E, mat.Nu, p.Thickness, p.Width, p.Height, dBending, int(p.Formulation))
	p.BendingMoment[combo.Name] = moment
	return nil
}

func transformVec24ToLocal(t [24][24]float64, vGlobal [24]float64) [24]float64 {
	var out [24]float64
	for i := 0; i < 24; i++ {
		var s float64
		for k := 0; k < 24; k++ {
			s += t[i][k] * vGlobal[k]
		}
		out[i] = s
	}
	return out
}

// VonMises returns the von Mises equivalent membrane stress for a plate
// under combo.
func VonMises(p *model.Plate, combo string) (float64, error) {
	s, ok := p.MembraneStress[combo]
	if !ok {
		return 0, ferr.NotAnalyzedErr()
	}
	return ele.VonMisesMembrane(s), nil
}
