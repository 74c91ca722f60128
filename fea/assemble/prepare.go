// Package assemble builds the global stiffness matrix and load vector
// from a model.Model (spec.md §4.3, component 4 of §2's pipeline),
// grounded on BookmarkSciencePrrojects-gofem/fem/domain.go's Domain
// assembly orchestration, reworked around a simple free/restrained DOF
// partition instead of that file's Lagrange-multiplier EssentialBcs
// machinery (spec.md §4.3 specifies partitioning, not multipliers).
package assemble

import (
	"math"

	"github.com/cpmech/gosl/la"
	"github.com/daveh07/fea3d/fea/ele"
	"github.com/daveh07/fea3d/fea/ferr"
	"github.com/daveh07/fea3d/fea/model"
)

// Prepare runs the prepare pass (spec.md §4.3): assigns zero-based node
// indices in insertion order, caches member lengths (failing with
// InvalidGeometry below the zero-length tolerance), and caches plate
// width/height. Transitions the model to Prepared.
func Prepare(m *model.Model) error {
	for idx, name := range m.NodeOrder {
		m.Nodes[name].Index = idx
	}
	for _, name := range m.MemberOrder {
		mem := m.Members[name]
		ni, _ := m.GetNode(mem.INode)
		nj, _ := m.GetNode(mem.JNode)
		dx := nj.X - ni.X
		dy := nj.Y - ni.Y
		dz := nj.Z - ni.Z
		l := math.Sqrt(dx*dx + dy*dy + dz*dz)
		if l < 1e-10 {
			return ferr.InvalidGeometry("member %q has zero length", mem.Name)
		}
		mem.Length = l
	}
	for _, name := range m.PlateOrder {
		p := m.Plates[name]
		ni, _ := m.GetNode(p.INode)
		nj, _ := m.GetNode(p.JNode)
		nm, _ := m.GetNode(p.MNode)
		p.Width = dist(ni, nj)
		p.Height = dist(nj, nm)
	}
	for _, name := range m.QuadOrder {
		q := m.Quads[name]
		ni, _ := m.GetNode(q.INode)
		nj, _ := m.GetNode(q.JNode)
		nm, _ := m.GetNode(q.MNode)
		q.Width = dist(ni, nj)
		q.Height = dist(nj, nm)
	}
	m.MarkPrepared()
	return nil
}

func dist(a, b *model.Node) float64 {
	dx, dy, dz := b.X-a.X, b.Y-a.Y, b.Z-a.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// MemberGeometry bundles the per-member data the element kernels need.
type MemberGeometry struct {
	Member *model.Member
	Mat    *model.Material
	Sec    *model.Section
	INode  *model.Node
	JNode  *model.Node
	T      [12][12]float64
	Length float64
	Dofs   [12]int
}

// BuildMemberGeometry resolves a member's material/section/nodes and
// builds its transformation matrix.
func BuildMemberGeometry(m *model.Model, mem *model.Member) (*MemberGeometry, error) {
	mat, err := m.GetMaterial(mem.Material)
	if err != nil {
		return nil, err
	}
	sec, err := m.GetSection(mem.Section)
	if err != nil {
		return nil, err
	}
	ni, err := m.GetNode(mem.INode)
	if err != nil {
		return nil, err
	}
	nj, err := m.GetNode(mem.JNode)
	if err != nil {
		return nil, err
	}
	t, l, err := ele.MemberTransform(ni.Coords(), nj.Coords(), mem.Rotation)
	if err != nil {
		return nil, err
	}
	var dofs [12]int
	io, jo := ni.DofOffset(), nj.DofOffset()
	for i := 0; i < 6; i++ {
		dofs[i] = io + i
		dofs[6+i] = jo + i
	}
	return &MemberGeometry{Member: mem, Mat: mat, Sec: sec, INode: ni, JNode: nj, T: t, Length: l, Dofs: dofs}, nil
}

// LocalStiffnessCondensed returns the member's local stiffness with
// releases applied (spec.md §4.1).
func (g *MemberGeometry) LocalStiffnessCondensed() [12][12]float64 {
	k := ele.FrameLocalStiffness(g.Mat.E, g.Mat.G, g.Sec.A, g.Sec.Iy, g.Sec.Iz, g.Sec.J, g.Length)
	return ele.ApplyReleases(k, g.Member.Releases.AsArray())
}

// GlobalStiffness returns Tt * Klocal_condensed * T.
func (g *MemberGeometry) GlobalStiffness() [12][12]float64 {
	kl := g.LocalStiffnessCondensed()
	return ele.TransformToGlobal(g.T, kl)
}

// PlateGeometry bundles the per-plate data the shell kernel needs.
type PlateGeometry struct {
	Plate  *model.Plate
	Mat    *model.Material
	Nodes  [4]*model.Node
	T      [24][24]float64
	Dofs   [24]int
}

// BuildPlateGeometry resolves a plate's material/nodes and transform.
func BuildPlateGeometry(m *model.Model, p *model.Plate) (*PlateGeometry, error) {
	mat, err := m.GetMaterial(p.Material)
	if err != nil {
		return nil, err
	}
	var nodes [4]*model.Node
	names := p.Nodes()
	for i, nn := range names {
		n, err := m.GetNode(nn)
		if err != nil {
			return nil, err
		}
		nodes[i] = n
	}
	t, err := ele.PlateTransform(nodes[0].Coords(), nodes[1].Coords(), nodes[2].Coords(), nodes[3].Coords())
	if err != nil {
		return nil, err
	}
	var dofs [24]int
	for a, n := range nodes {
		off := n.DofOffset()
		for i := 0; i < 6; i++ {
			dofs[6*a+i] = off + i
		}
	}
	return &PlateGeometry{Plate: p, Mat: mat, Nodes: nodes, T: t, Dofs: dofs}, nil
}

// LocalStiffness builds the full 24x24 local stiffness: membrane +
// bending + drilling stabilization (spec.md §4.2).
func (g *PlateGeometry) LocalStiffness() [24][24]float64 {
	p := g.Plate
	mat := g.Mat
	k8 := ele.PlateMembraneStiffness(mat.E, mat.Nu, p.KxMod, p.KyMod, p.Thickness, p.Width, p.Height)
	k12 := ele.PlateBendingStiffness(mat.E, mat.G, mat.Nu, p.Thickness, p.Width, p.Height, int(p.Formulation))
	k24m := ele.ExpandMembrane(k8)
	k24b := ele.ExpandBending(k12)
	var out [24][24]float64
	for i := 0; i < 24; i++ {
		for j := 0; j < 24; j++ {
			out[i][j] = k24m[i][j] + k24b[i][j]
		}
	}
	ele.DrillingStabilization(&out)
	return out
}

// GlobalStiffness returns Tt * Klocal * T for the plate.
func (g *PlateGeometry) GlobalStiffness() [24][24]float64 {
	kl := g.LocalStiffness()
	return transformPlate(g.T, kl)
}

// rows24 returns row-slice views into a 24x24 array's own backing
// storage, mirroring fea/ele/transform.go's rows12 so the plate's fixed-
// size matrices can be passed to gosl/la's []float64-based routines.
func rows24(a *[24][24]float64) [][]float64 {
	rows := make([][]float64, 24)
	for i := range rows {
		rows[i] = a[i][:]
	}
	return rows
}

// transformPlate computes Tt * Klocal * T via la.MatTrMul3, the same
// sandwich-product idiom fea/ele/transform.go's TransformToGlobal uses
// for the frame element (BookmarkSciencePrrojects-gofem/fem/e_beam.go's
// `la.MatTrMul3(o.K, 1, o.T, o.Kl, o.T)`).
func transformPlate(t, klocal [24][24]float64) [24][24]float64 {
	var out [24][24]float64
	la.MatTrMul3(rows24(&out), 1, rows24(&t), rows24(&klocal), rows24(&t))
	return out
}
