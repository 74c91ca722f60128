package model

// BendingFormulation selects the plate-bending kernel used by a Plate
// element (spec.md §4.2).
type BendingFormulation int

const (
	Kirchhoff BendingFormulation = iota
	Mindlin
	DKMQ
)

func (f BendingFormulation) String() string {
	switch f {
	case Kirchhoff:
		return "Kirchhoff"
	case Mindlin:
		return "Mindlin"
	case DKMQ:
		return "DKMQ"
	}
	return "Unknown"
}

// Plate is a rectangular 4-node shell element referencing four node
// names in CCW order (i,j,m,n) (spec.md §3). The core assumes the
// element is an axis-aligned rectangle; Width/Height are cached at
// prepare-time from node coordinates.
type Plate struct {
	Name     string
	INode    string
	JNode    string
	MNode    string
	NNode    string
	Material string
	Thickness float64
	KxMod, KyMod float64
	Formulation  BendingFormulation

	Width, Height float64

	// Per-combo displacement/stress results populated after analyze().
	NodalDisplacements map[string][24]float64
	MembraneStress     map[string][3]float64 // sigma_x, sigma_y, tau_xy
	BendingMoment      map[string][3]float64 // Mx, My, Mxy
}

// NewPlate builds a plate with unit stiffness modifiers and the Mindlin
// bending formulation (a reasonable default per spec.md §9's "reasonable
// implementation" guidance, since it is the only formulation that is
// numerically robust without a thinness assumption).
func NewPlate(name, i, j, m, n, material string, thickness float64) *Plate {
	return &Plate{
		Name: name, INode: i, JNode: j, MNode: m, NNode: n, Material: material,
		Thickness: thickness, KxMod: 1, KyMod: 1, Formulation: Mindlin,
		NodalDisplacements: make(map[string][24]float64),
		MembraneStress:     make(map[string][3]float64),
		BendingMoment:      make(map[string][3]float64),
	}
}

func (p *Plate) WithFormulation(f BendingFormulation) *Plate { p.Formulation = f; return p }
func (p *Plate) WithModifiers(kx, ky float64) *Plate {
	p.KxMod = kx
	p.KyMod = ky
	return p
}

// Nodes returns the four corner node names in CCW order.
func (p *Plate) Nodes() [4]string { return [4]string{p.INode, p.JNode, p.MNode, p.NNode} }

// Quad is a 4-node shell that shares the Plate element's fields/result
// maps via embedding. Its stiffness and results come from the same
// rectangular plate kernel as Plate, using the embedded Formulation
// field; there is no separate MITC4 kernel, and a distorted quad is
// treated as a rectangle sized by its i-j and j-m edges.
type Quad struct {
	Plate
}

// NewQuad builds a quadrilateral shell element.
func NewQuad(name, i, j, m, n, material string, thickness float64) *Quad {
	return &Quad{Plate: *NewPlate(name, i, j, m, n, material, thickness)}
}
