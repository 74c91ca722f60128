// Package persist serializes a model.Model to and from JSON (spec.md
// §6: "Persisted form is the model itself ... JSON is one natural
// choice"). Grounded on BookmarkSciencePrrojects-gofem/inp/mat.go's
// MatDb JSON-catalog round-trip and read via
// github.com/cpmech/gosl/io.ReadFile/io.WriteFileSD per SPEC_FULL.md's
// ambient stack.
package persist

import (
	"encoding/json"
	"path/filepath"

	"github.com/cpmech/gosl/io"
	"github.com/daveh07/fea3d/fea/model"
)

// doc is the on-disk shape; result maps (displacements, reactions,
// forces) are intentionally omitted since §6 says they "may optionally
// be included" and a freshly-loaded model is expected to be re-analyzed.
type doc struct {
	Nodes      []nodeDoc               `json:"nodes"`
	Materials  []materialDoc           `json:"materials"`
	Sections   []sectionDoc            `json:"sections"`
	Members    []memberDoc             `json:"members"`
	Plates     []plateDoc              `json:"plates"`
	Supports   []supportDoc            `json:"supports"`
	NodeLoads  []model.NodeLoad        `json:"node_loads"`
	PointLoads []model.PointLoad       `json:"point_loads"`
	DistLoads  []model.DistributedLoad `json:"dist_loads"`
	PlateLoads []model.PlateLoad       `json:"plate_loads"`
	Combos     []comboDoc              `json:"combos"`
}

type nodeDoc struct {
	Name string  `json:"name"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Z    float64 `json:"z"`
}

type materialDoc struct {
	Name string   `json:"name"`
	E    float64  `json:"e"`
	G    float64  `json:"g"`
	Nu   float64  `json:"nu"`
	Rho  float64  `json:"rho"`
	Fy   *float64 `json:"fy,omitempty"`
}

type sectionDoc struct {
	Name  string   `json:"name"`
	A     float64  `json:"a"`
	Iy    float64  `json:"iy"`
	Iz    float64  `json:"iz"`
	J     float64  `json:"j"`
	Zy    *float64 `json:"zy,omitempty"`
	Zz    *float64 `json:"zz,omitempty"`
	Depth *float64 `json:"depth,omitempty"`
	Width *float64 `json:"width,omitempty"`
}

type memberDoc struct {
	Name            string               `json:"name"`
	INode           string               `json:"i_node"`
	JNode           string               `json:"j_node"`
	Material        string               `json:"material"`
	Section         string               `json:"section"`
	Rotation        float64              `json:"rotation"`
	Releases        model.MemberReleases `json:"releases"`
	TensionOnly     bool                 `json:"tension_only"`
	CompressionOnly bool                 `json:"compression_only"`
}

type plateDoc struct {
	Name        string                   `json:"name"`
	INode       string                   `json:"i_node"`
	JNode       string                   `json:"j_node"`
	MNode       string                   `json:"m_node"`
	NNode       string                   `json:"n_node"`
	Material    string                   `json:"material"`
	Thickness   float64                  `json:"thickness"`
	KxMod       float64                  `json:"kx_mod"`
	KyMod       float64                  `json:"ky_mod"`
	Formulation model.BendingFormulation `json:"formulation"`
}

type supportDoc struct {
	Node       string   `json:"node"`
	Dx         bool     `json:"dx"`
	Dy         bool     `json:"dy"`
	Dz         bool     `json:"dz"`
	Rx         bool     `json:"rx"`
	Ry         bool     `json:"ry"`
	Rz         bool     `json:"rz"`
	EnforcedDx *float64 `json:"enforced_dx,omitempty"`
	EnforcedDy *float64 `json:"enforced_dy,omitempty"`
	EnforcedDz *float64 `json:"enforced_dz,omitempty"`
	EnforcedRx *float64 `json:"enforced_rx,omitempty"`
	EnforcedRy *float64 `json:"enforced_ry,omitempty"`
	EnforcedRz *float64 `json:"enforced_rz,omitempty"`
}

type comboDoc struct {
	Name    string             `json:"name"`
	Factors map[string]float64 `json:"factors"`
}

// Marshal encodes m into the JSON document form.
func Marshal(m *model.Model) ([]byte, error) {
	d := doc{}
	for _, name := range m.NodeOrder {
		n := m.Nodes[name]
		d.Nodes = append(d.Nodes, nodeDoc{Name: n.Name, X: n.X, Y: n.Y, Z: n.Z})
	}
	for name, mat := range m.Materials {
		d.Materials = append(d.Materials, materialDoc{Name: name, E: mat.E, G: mat.G, Nu: mat.Nu, Rho: mat.Rho, Fy: mat.Fy})
	}
	for name, s := range m.Sections {
		d.Sections = append(d.Sections, sectionDoc{
			Name: name, A: s.A, Iy: s.Iy, Iz: s.Iz, J: s.J,
			Zy: s.Zy, Zz: s.Zz, Depth: s.Depth, Width: s.Width,
		})
	}
	for _, name := range m.MemberOrder {
		mem := m.Members[name]
		d.Members = append(d.Members, memberDoc{
			Name: mem.Name, INode: mem.INode, JNode: mem.JNode,
			Material: mem.Material, Section: mem.Section, Rotation: mem.Rotation,
			Releases: mem.Releases, TensionOnly: mem.TensionOnly, CompressionOnly: mem.CompressionOnly,
		})
	}
	for _, name := range m.PlateOrder {
		p := m.Plates[name]
		d.Plates = append(d.Plates, plateDoc{
			Name: p.Name, INode: p.INode, JNode: p.JNode, MNode: p.MNode, NNode: p.NNode,
			Material: p.Material, Thickness: p.Thickness, KxMod: p.KxMod, KyMod: p.KyMod,
			Formulation: p.Formulation,
		})
	}
	for nodeName, s := range m.Supports {
		d.Supports = append(d.Supports, supportDoc{
			Node: nodeName, Dx: s.Dx, Dy: s.Dy, Dz: s.Dz, Rx: s.Rx, Ry: s.Ry, Rz: s.Rz,
			EnforcedDx: s.EnforcedDx, EnforcedDy: s.EnforcedDy, EnforcedDz: s.EnforcedDz,
			EnforcedRx: s.EnforcedRx, EnforcedRy: s.EnforcedRy, EnforcedRz: s.EnforcedRz,
		})
	}
	d.NodeLoads = m.NodeLoads
	d.PointLoads = m.PointLoads
	d.DistLoads = m.DistLoads
	d.PlateLoads = m.PlateLoads
	for _, name := range m.ComboOrder {
		c := m.Combos[name]
		d.Combos = append(d.Combos, comboDoc{Name: c.Name, Factors: c.Factors})
	}
	return json.MarshalIndent(d, "", "  ")
}

// Unmarshal rebuilds a Model from JSON, replaying the same Add* calls a
// caller would make so every DuplicateName/NotFound invariant check of
// spec.md §3 still runs.
func Unmarshal(data []byte) (*model.Model, error) {
	var d doc
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, err
	}
	m := model.New()
	for _, n := range d.Nodes {
		if err := m.AddNode(model.NewNode(n.Name, n.X, n.Y, n.Z)); err != nil {
			return nil, err
		}
	}
	for _, mat := range d.Materials {
		material := model.NewMaterial(mat.Name, mat.E, mat.G, mat.Nu, mat.Rho)
		material.Fy = mat.Fy
		if err := m.AddMaterial(material); err != nil {
			return nil, err
		}
	}
	for _, s := range d.Sections {
		sec := model.NewSection(s.Name, s.A, s.Iy, s.Iz, s.J)
		sec.Zy, sec.Zz, sec.Depth, sec.Width = s.Zy, s.Zz, s.Depth, s.Width
		if err := m.AddSection(sec); err != nil {
			return nil, err
		}
	}
	for _, md := range d.Members {
		mem := model.NewMember(md.Name, md.INode, md.JNode, md.Material, md.Section).
			WithRotation(md.Rotation).WithReleases(md.Releases)
		if md.TensionOnly {
			mem.WithTensionOnly()
		}
		if md.CompressionOnly {
			mem.WithCompressionOnly()
		}
		if err := m.AddMember(mem); err != nil {
			return nil, err
		}
	}
	for _, pd := range d.Plates {
		p := model.NewPlate(pd.Name, pd.INode, pd.JNode, pd.MNode, pd.NNode, pd.Material, pd.Thickness).
			WithFormulation(pd.Formulation).WithModifiers(pd.KxMod, pd.KyMod)
		if err := m.AddPlate(p); err != nil {
			return nil, err
		}
	}
	for _, sd := range d.Supports {
		s := model.WithRestraints(sd.Dx, sd.Dy, sd.Dz, sd.Rx, sd.Ry, sd.Rz)
		s.EnforcedDx, s.EnforcedDy, s.EnforcedDz = sd.EnforcedDx, sd.EnforcedDy, sd.EnforcedDz
		s.EnforcedRx, s.EnforcedRy, s.EnforcedRz = sd.EnforcedRx, sd.EnforcedRy, sd.EnforcedRz
		if err := m.AddSupport(sd.Node, s); err != nil {
			return nil, err
		}
	}
	for _, l := range d.NodeLoads {
		if err := m.AddNodeLoad(l); err != nil {
			return nil, err
		}
	}
	for _, l := range d.PointLoads {
		if err := m.AddPointLoad(l); err != nil {
			return nil, err
		}
	}
	for _, l := range d.DistLoads {
		if err := m.AddDistributedLoad(l); err != nil {
			return nil, err
		}
	}
	for _, l := range d.PlateLoads {
		if err := m.AddPlateLoad(l); err != nil {
			return nil, err
		}
	}
	for _, cd := range d.Combos {
		c := model.NewLoadCombination(cd.Name)
		for caseName, factor := range cd.Factors {
			c.With(caseName, factor)
		}
		if err := m.AddLoadCombination(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Save writes m to path as JSON via gosl/io, mirroring
// BookmarkSciencePrrojects-gofem/inp/t_read_test.go's io.WriteFileSD(dir,
// fn, content) call shape.
func Save(path string, m *model.Model) error {
	data, err := Marshal(m)
	if err != nil {
		return err
	}
	dir, fn := filepath.Split(path)
	io.WriteFileSD(dir, fn, string(data))
	return nil
}

// Load reads a model from path.
func Load(path string) (*model.Model, error) {
	data, err := io.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Unmarshal(data)
}
