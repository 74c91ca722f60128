package assemble

import "github.com/daveh07/fea3d/fea/model"

// Partition holds the free/restrained DOF index lists and the enforced
// displacement values keyed by global DOF (spec.md §4.3).
type Partition struct {
	Free       []int
	Restrained []int
	Enforced   map[int]float64
}

// BuildPartition walks every node in order: nodes without a support
// contribute all six DOFs as free; nodes with a support are masked by
// the restraint booleans (spec.md §4.3).
func BuildPartition(m *model.Model) *Partition {
	part := &Partition{Enforced: make(map[int]float64)}
	for _, name := range m.NodeOrder {
		node := m.Nodes[name]
		off := node.DofOffset()
		sup, hasSupport := m.Supports[name]
		if !hasSupport {
			for i := 0; i < 6; i++ {
				part.Free = append(part.Free, off+i)
			}
			continue
		}
		restraints := sup.Restraints()
		enforced := sup.Enforced()
		for i := 0; i < 6; i++ {
			if restraints[i] {
				part.Restrained = append(part.Restrained, off+i)
				if enforced[i] != nil {
					part.Enforced[off+i] = *enforced[i]
				}
			} else {
				part.Free = append(part.Free, off+i)
			}
		}
	}
	return part
}
