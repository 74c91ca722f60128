// Package model implements the in-memory catalog of nodes, materials,
// sections, members, plates, supports, loads, and load combinations
// (spec.md §3, component 1 of §2's pipeline), plus the model's
// Building/Prepared/Solved state machine (spec.md §4.9). Grounded on
// original_source/fea-solver/src/model.rs's FEModel, reworked around
// Go maps/slices instead of Rust's HashMap<String, T> fields, and on the
// teacher's inp/mat.go MatDb name-keyed-catalog idiom for the add/Get
// pattern.
package model

import "github.com/daveh07/fea3d/fea/ferr"

// State is one of the three states a Model can be in (spec.md §4.9).
type State int

const (
	Building State = iota
	Prepared
	Solved
)

// AnalysisType enumerates the solver the last (or pending) analyze call
// used; only Linear and PDelta are contract-specified (spec.md §4.6).
type AnalysisType int

const (
	Linear AnalysisType = iota
	PDelta
	Nonlinear
	Modal
)

func (a AnalysisType) String() string {
	switch a {
	case Linear:
		return "linear"
	case PDelta:
		return "pdelta"
	case Nonlinear:
		return "nonlinear"
	case Modal:
		return "modal"
	}
	return "unknown"
}

// Model is the declarative structural model: the single mutable source
// of truth the assembler/solver/result packages read from.
type Model struct {
	Nodes      map[string]*Node
	Materials  map[string]*Material
	Sections   map[string]*Section
	Members    map[string]*Member
	Plates     map[string]*Plate
	Quads      map[string]*Quad
	Supports   map[string]*Support // keyed by node name
	NodeLoads  []NodeLoad
	PointLoads []PointLoad
	DistLoads  []DistributedLoad
	PlateLoads []PlateLoad
	Combos     map[string]*LoadCombination

	// NodeOrder/MemberOrder/PlateOrder preserve insertion order for
	// deterministic DOF numbering and combo iteration (spec.md §5's
	// ordering guarantee; Go maps do not iterate in insertion order).
	NodeOrder   []string
	MemberOrder []string
	PlateOrder  []string
	QuadOrder   []string
	ComboOrder  []string

	state    State
	solution AnalysisType
}

// New returns an empty model in the Building state.
func New() *Model {
	return &Model{
		Nodes:     make(map[string]*Node),
		Materials: make(map[string]*Material),
		Sections:  make(map[string]*Section),
		Members:   make(map[string]*Member),
		Plates:    make(map[string]*Plate),
		Quads:     make(map[string]*Quad),
		Supports:  make(map[string]*Support),
		Combos:    make(map[string]*LoadCombination),
		state:     Building,
	}
}

// invalidate returns the model to Building on any mutation (spec.md
// §4.9, §3's "Lifecycle").
func (m *Model) invalidate() {
	m.state = Building
}

// State returns the model's current lifecycle state.
func (m *Model) State() State { return m.state }

// IsAnalyzed reports whether the model currently holds a valid solve.
func (m *Model) IsAnalyzed() bool { return m.state == Solved }

// SolutionType returns the analysis type of the current solve; only
// meaningful when IsAnalyzed() is true.
func (m *Model) SolutionType() AnalysisType { return m.solution }

// MarkSolved transitions the model into Solved(kind); called only by
// the solve package after a successful analyze().
func (m *Model) MarkSolved(kind AnalysisType) {
	m.state = Solved
	m.solution = kind
}

// MarkPrepared transitions the model into Prepared; called only by the
// assembler's prepare pass.
func (m *Model) MarkPrepared() {
	if m.state == Building {
		m.state = Prepared
	}
}

// --- Nodes ---

// AddNode registers a node; fails with DuplicateName if the name exists.
func (m *Model) AddNode(n *Node) error {
	if _, ok := m.Nodes[n.Name]; ok {
		return ferr.DuplicateName(n.Name)
	}
	m.Nodes[n.Name] = n
	m.NodeOrder = append(m.NodeOrder, n.Name)
	m.invalidate()
	return nil
}

// GetNode returns a node by name, or NodeNotFound.
func (m *Model) GetNode(name string) (*Node, error) {
	n, ok := m.Nodes[name]
	if !ok {
		return nil, ferr.NodeNotFound(name)
	}
	return n, nil
}

// --- Materials ---

func (m *Model) AddMaterial(mat *Material) error {
	if _, ok := m.Materials[mat.Name]; ok {
		return ferr.DuplicateName(mat.Name)
	}
	m.Materials[mat.Name] = mat
	m.invalidate()
	return nil
}

func (m *Model) GetMaterial(name string) (*Material, error) {
	mat, ok := m.Materials[name]
	if !ok {
		return nil, ferr.MaterialNotFound(name)
	}
	return mat, nil
}

// --- Sections ---

func (m *Model) AddSection(s *Section) error {
	if _, ok := m.Sections[s.Name]; ok {
		return ferr.DuplicateName(s.Name)
	}
	m.Sections[s.Name] = s
	m.invalidate()
	return nil
}

func (m *Model) GetSection(name string) (*Section, error) {
	s, ok := m.Sections[name]
	if !ok {
		return nil, ferr.SectionNotFound(name)
	}
	return s, nil
}

// --- Members ---

// AddMember registers a member after validating its node/material/
// section references resolve (spec.md §3 invariant).
func (m *Model) AddMember(mem *Member) error {
	if _, ok := m.Members[mem.Name]; ok {
		return ferr.DuplicateName(mem.Name)
	}
	if _, err := m.GetNode(mem.INode); err != nil {
		return err
	}
	if _, err := m.GetNode(mem.JNode); err != nil {
		return err
	}
	if _, err := m.GetMaterial(mem.Material); err != nil {
		return err
	}
	if _, err := m.GetSection(mem.Section); err != nil {
		return err
	}
	m.Members[mem.Name] = mem
	m.MemberOrder = append(m.MemberOrder, mem.Name)
	m.invalidate()
	return nil
}

func (m *Model) GetMember(name string) (*Member, error) {
	mem, ok := m.Members[name]
	if !ok {
		return nil, ferr.MemberNotFound(name)
	}
	return mem, nil
}

// --- Plates / Quads ---

func (m *Model) AddPlate(p *Plate) error {
	if _, ok := m.Plates[p.Name]; ok {
		return ferr.DuplicateName(p.Name)
	}
	for _, nn := range p.Nodes() {
		if _, err := m.GetNode(nn); err != nil {
			return err
		}
	}
	if _, err := m.GetMaterial(p.Material); err != nil {
		return err
	}
	m.Plates[p.Name] = p
	m.PlateOrder = append(m.PlateOrder, p.Name)
	m.invalidate()
	return nil
}

func (m *Model) GetPlate(name string) (*Plate, error) {
	p, ok := m.Plates[name]
	if !ok {
		return nil, ferr.PlateNotFound(name)
	}
	return p, nil
}

func (m *Model) AddQuad(q *Quad) error {
	if _, ok := m.Quads[q.Name]; ok {
		return ferr.DuplicateName(q.Name)
	}
	for _, nn := range q.Nodes() {
		if _, err := m.GetNode(nn); err != nil {
			return err
		}
	}
	if _, err := m.GetMaterial(q.Material); err != nil {
		return err
	}
	m.Quads[q.Name] = q
	m.QuadOrder = append(m.QuadOrder, q.Name)
	m.invalidate()
	return nil
}

// --- Supports ---

// AddSupport attaches a support to a node, replacing any existing one.
func (m *Model) AddSupport(nodeName string, s *Support) error {
	if _, err := m.GetNode(nodeName); err != nil {
		return err
	}
	m.Supports[nodeName] = s
	m.invalidate()
	return nil
}

// --- Loads ---

func (m *Model) AddNodeLoad(l NodeLoad) error {
	if _, err := m.GetNode(l.Node); err != nil {
		return err
	}
	m.NodeLoads = append(m.NodeLoads, l)
	m.invalidate()
	return nil
}

func (m *Model) AddPointLoad(l PointLoad) error {
	if _, err := m.GetMember(l.Member); err != nil {
		return err
	}
	m.PointLoads = append(m.PointLoads, l)
	m.invalidate()
	return nil
}

func (m *Model) AddDistributedLoad(l DistributedLoad) error {
	if _, err := m.GetMember(l.Member); err != nil {
		return err
	}
	m.DistLoads = append(m.DistLoads, l)
	m.invalidate()
	return nil
}

func (m *Model) AddPlateLoad(l PlateLoad) error {
	if _, err := m.GetPlate(l.Plate); err != nil {
		return err
	}
	m.PlateLoads = append(m.PlateLoads, l)
	m.invalidate()
	return nil
}

// --- Load combinations ---

func (m *Model) AddLoadCombination(c *LoadCombination) error {
	if _, ok := m.Combos[c.Name]; ok {
		return ferr.DuplicateName(c.Name)
	}
	m.Combos[c.Name] = c
	m.ComboOrder = append(m.ComboOrder, c.Name)
	m.invalidate()
	return nil
}

// EnsureDefaultCombo creates a "Combo 1" combination covering "Case 1"
// at factor 1 if the model defines no combos (original_source/
// fea-solver/src/model.rs's analyze() entry point default).
func (m *Model) EnsureDefaultCombo() {
	if len(m.Combos) > 0 {
		return
	}
	c := NewLoadCombination("Combo 1").With("Case 1", 1.0)
	m.Combos[c.Name] = c
	m.ComboOrder = append(m.ComboOrder, c.Name)
}

// ComboNames returns the combination names in insertion order.
func (m *Model) ComboNames() []string {
	out := make([]string, len(m.ComboOrder))
	copy(out, m.ComboOrder)
	return out
}

// LoadCases returns the deduplicated, sorted set of load-case names
// referenced by node loads, member point and distributed loads, and plate
// loads (mirrors
// original_source/fea-solver/src/model.rs's load_cases()).
func (m *Model) LoadCases() []string {
	seen := make(map[string]bool)
	var names []string
	add := func(c string) {
		if !seen[c] {
			seen[c] = true
			names = append(names, c)
		}
	}
	for _, l := range m.NodeLoads {
		add(l.Case)
	}
	for _, l := range m.PointLoads {
		add(l.Case)
	}
	for _, l := range m.DistLoads {
		add(l.Case)
	}
	for _, l := range m.PlateLoads {
		add(l.Case)
	}
	sortStrings(names)
	return names
}

func sortStrings(s []string) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}

// TotalDofs returns 6*len(Nodes).
func (m *Model) TotalDofs() int { return 6 * len(m.Nodes) }
