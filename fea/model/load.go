package model

// LoadCase names a free-form grouping of applied loads (spec.md §3).
// These named constructors mirror original_source/fea-solver's load_case.rs.
type LoadCase struct {
	Name        string
	Description string
}

func NewLoadCase(name string) LoadCase { return LoadCase{Name: name} }
func Dead() LoadCase                   { return LoadCase{"Dead", "Dead loads (self-weight and permanent loads)"} }
func Live() LoadCase                   { return LoadCase{"Live", "Live loads (occupancy, furniture, etc.)"} }
func Wind() LoadCase                   { return LoadCase{"Wind", "Wind loads"} }
func Seismic() LoadCase                { return LoadCase{"Seismic", "Seismic/earthquake loads"} }
func Snow() LoadCase                   { return LoadCase{"Snow", "Snow loads"} }

// Direction tags a load's axis; member loads may be given in the
// member's local frame or in global coordinates (spec.md §3).
type Direction int

const (
	LocalX Direction = iota
	LocalY
	LocalZ
	GlobalX
	GlobalY
	GlobalZ
)

// IsLocal reports whether the direction is expressed in the member's
// local frame.
func (d Direction) IsLocal() bool { return d == LocalX || d == LocalY || d == LocalZ }

// Axis returns the coordinate axis (0=x, 1=y, 2=z) the direction
// refers to, independent of whether it is local- or global-framed.
func (d Direction) Axis() int {
	switch d {
	case LocalX, GlobalX:
		return 0
	case LocalY, GlobalY:
		return 1
	case LocalZ, GlobalZ:
		return 2
	}
	return 1
}

// NodeLoad applies six load components directly at a node's DOFs.
type NodeLoad struct {
	Node     string
	Case     string
	Fx, Fy, Fz, Mx, My, Mz float64
}

// PointLoad applies a concentrated force to a member at a distance from
// its i-node.
type PointLoad struct {
	Member    string
	Case      string
	Magnitude float64
	Direction Direction
	Distance  float64 // from i-node
}

// DistributedLoad applies a (possibly trapezoidal) distributed load to
// a member; uniform when W1 == W2.
type DistributedLoad struct {
	Member    string
	Case      string
	W1, W2    float64 // end intensities, N/m
	Direction Direction
}

// IsUniform reports whether the two end intensities coincide.
func (d DistributedLoad) IsUniform() bool { return d.W1 == d.W2 }

// PlateLoad applies a uniform pressure normal to a plate's surface.
type PlateLoad struct {
	Plate    string
	Case     string
	Pressure float64 // Pa, positive toward local +z
}

// LoadCombination maps load-case names to scalar factors (spec.md §3).
// Cases with no entry contribute nothing.
type LoadCombination struct {
	Name    string
	Factors map[string]float64
}

// NewLoadCombination builds an empty combination.
func NewLoadCombination(name string) *LoadCombination {
	return &LoadCombination{Name: name, Factors: make(map[string]float64)}
}

// With adds a case/factor pair and returns the receiver for chaining.
func (c *LoadCombination) With(caseName string, factor float64) *LoadCombination {
	c.Factors[caseName] = factor
	return c
}

// Factor returns the scalar factor for a case, or 0 if absent.
func (c *LoadCombination) Factor(caseName string) float64 {
	return c.Factors[caseName]
}
