package model

// Node is a point in space identified by a caller-chosen name. Index is
// assigned by the assembler's prepare pass (spec.md §4.3); DOF offset in
// the global system is 6*Index.
type Node struct {
	Name    string
	X, Y, Z float64

	// Index is the zero-based node ordinal assigned at prepare-time.
	Index int

	// Per-combo results, in {DX,DY,DZ,RX,RY,RZ} order, populated only
	// after a successful analyze() (spec.md §4.9).
	Displacements map[string][6]float64
	Reactions     map[string][6]float64
}

// NewNode builds a node at the given coordinates.
func NewNode(name string, x, y, z float64) *Node {
	return &Node{
		Name: name, X: x, Y: y, Z: z,
		Displacements: make(map[string][6]float64),
		Reactions:     make(map[string][6]float64),
	}
}

// Coords returns the node's position as a 3-vector.
func (n *Node) Coords() [3]float64 {
	return [3]float64{n.X, n.Y, n.Z}
}

// DofOffset returns the global row/column of this node's DX DOF; the
// remaining five DOFs follow at +1..+5 in {DX,DY,DZ,RX,RY,RZ} order.
func (n *Node) DofOffset() int {
	return 6 * n.Index
}
