package assemble

import (
	"github.com/cpmech/gosl/la"
	"github.com/daveh07/fea3d/fea/ele"
	"github.com/daveh07/fea3d/fea/model"
)

// GlobalStiffness assembles the dense global stiffness matrix by
// scattering each element's transformed stiffness by 6x6 sub-blocks
// (spec.md §4.3).
func GlobalStiffness(m *model.Model) ([][]float64, error) {
	n := m.TotalDofs()
	k := la.MatAlloc(n, n)
	for _, name := range m.MemberOrder {
		mem := m.Members[name]
		g, err := BuildMemberGeometry(m, mem)
		if err != nil {
			return nil, err
		}
		kg := g.GlobalStiffness()
		scatter12(k, kg, g.Dofs)
	}
	for _, name := range m.PlateOrder {
		p := m.Plates[name]
		g, err := BuildPlateGeometry(m, p)
		if err != nil {
			return nil, err
		}
		kg := g.GlobalStiffness()
		scatter24(k, kg, g.Dofs)
	}
	for _, name := range m.QuadOrder {
		q := m.Quads[name]
		g, err := BuildPlateGeometry(m, &q.Plate)
		if err != nil {
			return nil, err
		}
		kg := g.GlobalStiffness()
		scatter24(k, kg, g.Dofs)
	}
	return k, nil
}

// GeometricStiffness assembles the P-Delta geometric stiffness matrix
// using each member's currently-stored axial force for combo (spec.md
// §4.5's P-Delta driver step b). Members with |P| below tolerance
// contribute nothing.
func GeometricStiffness(m *model.Model, combo string) ([][]float64, error) {
	n := m.TotalDofs()
	k := la.MatAlloc(n, n)
	for _, name := range m.MemberOrder {
		mem := m.Members[name]
		forces, ok := mem.LocalForce(combo)
		if !ok {
			continue
		}
		p := -forces[0] // tension-positive axial (spec.md §4.7 sign convention)
		g, err := BuildMemberGeometry(m, mem)
		if err != nil {
			return nil, err
		}
		kg := ele.FrameGeometricStiffness(p, g.Sec.A, g.Sec.Iy, g.Sec.Iz, g.Length)
		kgGlobal := ele.TransformToGlobal(g.T, kg)
		scatter12(k, kgGlobal, g.Dofs)
	}
	return k, nil
}

func scatter12(k [][]float64, ke [12][12]float64, dofs [12]int) {
	for a := 0; a < 12; a++ {
		for b := 0; b < 12; b++ {
			k[dofs[a]][dofs[b]] += ke[a][b]
		}
	}
}

func scatter24(k [][]float64, ke [24][24]float64, dofs [24]int) {
	for a := 0; a < 24; a++ {
		for b := 0; b < 24; b++ {
			k[dofs[a]][dofs[b]] += ke[a][b]
		}
	}
}

// LoadVector assembles the global load vector for a combo (spec.md
// §4.3): node loads weighted by combo factor, minus transformed FER
// contributions from member distributed and point loads, minus plate
// pressure FER.
func LoadVector(m *model.Model, combo *model.LoadCombination) ([]float64, error) {
	n := m.TotalDofs()
	p := make([]float64, n)

	for _, l := range m.NodeLoads {
		f := combo.Factor(l.Case)
		if f == 0 {
			continue
		}
		node := m.Nodes[l.Node]
		off := node.DofOffset()
		p[off+0] += f * l.Fx
		p[off+1] += f * l.Fy
		p[off+2] += f * l.Fz
		p[off+3] += f * l.Mx
		p[off+4] += f * l.My
		p[off+5] += f * l.Mz
	}

	for _, l := range m.DistLoads {
		f := combo.Factor(l.Case)
		if f == 0 {
			continue
		}
		mem := m.Members[l.Member]
		g, err := BuildMemberGeometry(m, mem)
		if err != nil {
			return nil, err
		}
		ferLocal := distributedFerLocal(g, l.W1, l.W2, l.Direction)
		ferLocal = ele.ApplyFerReleases(ferLocal, ele.FrameLocalStiffness(g.Mat.E, g.Mat.G, g.Sec.A, g.Sec.Iy, g.Sec.Iz, g.Sec.J, g.Length), mem.Releases.AsArray())
		ferGlobal := ele.TransformToGlobalVec(g.T, ferLocal)
		for i := 0; i < 12; i++ {
			p[g.Dofs[i]] -= f * ferGlobal[i]
		}
	}

	for _, l := range m.PointLoads {
		f := combo.Factor(l.Case)
		if f == 0 {
			continue
		}
		mem := m.Members[l.Member]
		g, err := BuildMemberGeometry(m, mem)
		if err != nil {
			return nil, err
		}
		ferLocal := pointFerLocal(g, l.Magnitude, l.Distance, l.Direction)
		ferLocal = ele.ApplyFerReleases(ferLocal, ele.FrameLocalStiffness(g.Mat.E, g.Mat.G, g.Sec.A, g.Sec.Iy, g.Sec.Iz, g.Sec.J, g.Length), mem.Releases.AsArray())
		ferGlobal := ele.TransformToGlobalVec(g.T, ferLocal)
		for i := 0; i < 12; i++ {
			p[g.Dofs[i]] -= f * ferGlobal[i]
		}
	}

	for _, l := range m.PlateLoads {
		f := combo.Factor(l.Case)
		if f == 0 {
			continue
		}
		pl := m.Plates[l.Plate]
		g, err := BuildPlateGeometry(m, pl)
		if err != nil {
			return nil, err
		}
		ferLocal := ele.PressureFer(l.Pressure, pl.Width, pl.Height)
		ferGlobal := transformPlateVec(g.T, ferLocal)
		for i := 0; i < 24; i++ {
			p[g.Dofs[i]] -= f * ferGlobal[i]
		}
	}

	return p, nil
}

// transformPlateVec computes Tt * Vlocal via la.MatTrVecMulAdd, mirroring
// fea/ele/transform.go's TransformToGlobalVec.
func transformPlateVec(t [24][24]float64, vLocal [24]float64) [24]float64 {
	var out [24]float64
	la.MatTrVecMulAdd(out[:], 1, rows24(&t), vLocal[:])
	return out
}

// distributedFerLocal builds the local fixed-end reactions for a
// distributed load, projecting a global-framed direction (spec.md §3)
// across the member's local axes via ele.DirectionComponents and
// superposing one FerTrapezoidalLoad call per nonzero local component
// (FER is linear in load intensity, so superposition is exact).
func distributedFerLocal(g *MemberGeometry, w1, w2 float64, dir model.Direction) [12]float64 {
	comps := ele.DirectionComponents(g.T, dir.Axis(), dir.IsLocal())
	var fer [12]float64
	for axis, c := range comps {
		if c == 0 {
			continue
		}
		axisFer := ele.FerTrapezoidalLoad(w1*c, w2*c, g.Length, axis)
		for i := range fer {
			fer[i] += axisFer[i]
		}
	}
	return fer
}

// pointFerLocal is distributedFerLocal's point-load counterpart.
func pointFerLocal(g *MemberGeometry, magnitude, distance float64, dir model.Direction) [12]float64 {
	comps := ele.DirectionComponents(g.T, dir.Axis(), dir.IsLocal())
	var fer [12]float64
	for axis, c := range comps {
		if c == 0 {
			continue
		}
		axisFer := ele.FerPointLoad(magnitude*c, distance, g.Length, axis)
		for i := range fer {
			fer[i] += axisFer[i]
		}
	}
	return fer
}
