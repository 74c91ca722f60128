package model

// MemberReleases marks which of the 12 local end DOFs of a frame member
// are released (spec.md §3, §4.1), six per end in {DX,DY,DZ,RX,RY,RZ}
// order.
type MemberReleases struct {
	INode [6]bool
	JNode [6]bool
}

// NoReleases returns a mask with nothing released.
func NoReleases() MemberReleases { return MemberReleases{} }

// PinI releases the two bending rotations at the i-end.
func PinI() MemberReleases {
	return MemberReleases{INode: [6]bool{false, false, false, false, true, true}}
}

// PinJ releases the two bending rotations at the j-end.
func PinJ() MemberReleases {
	return MemberReleases{JNode: [6]bool{false, false, false, false, true, true}}
}

// PinBoth releases the bending rotations at both ends.
func PinBoth() MemberReleases {
	return MemberReleases{
		INode: [6]bool{false, false, false, false, true, true},
		JNode: [6]bool{false, false, false, false, true, true},
	}
}

// AsArray flattens the releases into the 12-element mask used directly
// by the condensation kernel (fea/ele).
func (r MemberReleases) AsArray() [12]bool {
	var arr [12]bool
	copy(arr[0:6], r.INode[:])
	copy(arr[6:12], r.JNode[:])
	return arr
}

// Member is a 3D frame (beam-column) element referencing two node
// names, a material, and a section (spec.md §3).
type Member struct {
	Name     string
	INode    string
	JNode    string
	Material string
	Section  string

	Rotation         float64 // radians, about local x
	Releases         MemberReleases
	TensionOnly      bool
	CompressionOnly  bool

	// Length is cached at prepare-time.
	Length float64

	// Per-combo analysis results, populated only after a successful
	// analyze() (spec.md §4.9).
	LocalForces        map[string][12]float64
	GlobalForces       map[string][12]float64
	LocalDisplacements map[string][12]float64
}

// NewMember builds a member with no releases/rotation.
func NewMember(name, iNode, jNode, material, section string) *Member {
	return &Member{
		Name: name, INode: iNode, JNode: jNode, Material: material, Section: section,
		LocalForces:        make(map[string][12]float64),
		GlobalForces:       make(map[string][12]float64),
		LocalDisplacements: make(map[string][12]float64),
	}
}

func (m *Member) WithRotation(rotation float64) *Member { m.Rotation = rotation; return m }
func (m *Member) WithReleases(r MemberReleases) *Member { m.Releases = r; return m }
func (m *Member) WithTensionOnly() *Member {
	m.TensionOnly = true
	m.CompressionOnly = false
	return m
}
func (m *Member) WithCompressionOnly() *Member {
	m.CompressionOnly = true
	m.TensionOnly = false
	return m
}

// LocalForce returns the stored 12-vector of local end forces for a
// combo, in order [Fx_i,Fy_i,Fz_i,Mx_i,My_i,Mz_i,Fx_j,...,Mz_j].
func (m *Member) LocalForce(combo string) ([12]float64, bool) {
	f, ok := m.LocalForces[combo]
	return f, ok
}
