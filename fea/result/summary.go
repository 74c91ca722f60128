package result

import (
	"math"

	"github.com/daveh07/fea3d/fea/ferr"
	"github.com/daveh07/fea3d/fea/model"
)

// Summary aggregates the scalar scan results of spec.md §4.8 for one
// combo: maximum nodal displacement magnitude, maximum reaction
// component, and maximum member axial/moment, plus the DOF counts used
// to size the solve.
type Summary struct {
	Combo           string
	MaxDisplacement float64
	MaxDispNode     string
	MaxReaction     float64
	MaxReactionNode string
	MaxAxial        float64
	MaxAxialMember  string
	MaxMomentY      float64
	MaxMomentZ      float64
	MaxMomentMember string
	TotalDofs       int
	FreeDofs        int
	RestrainedDofs  int
}

// Summarize scans the model's per-combo results (spec.md §4.8),
// requiring a prior successful analyze() for combo.
func Summarize(m *model.Model, comboName string) (*Summary, error) {
	if !m.IsAnalyzed() {
		return nil, ferr.NotAnalyzedErr()
	}
	s := &Summary{Combo: comboName, TotalDofs: m.TotalDofs()}

	for _, name := range m.NodeOrder {
		node := m.Nodes[name]
		d, ok := node.Displacements[comboName]
		if !ok {
			continue
		}
		mag := math.Sqrt(d[0]*d[0] + d[1]*d[1] + d[2]*d[2])
		if mag > s.MaxDisplacement {
			s.MaxDisplacement = mag
			s.MaxDispNode = name
		}
		sup, hasSup := m.Supports[name]
		if !hasSup {
			s.FreeDofs += 6
			continue
		}
		restraints := sup.Restraints()
		for i := 0; i < 6; i++ {
			if restraints[i] {
				s.RestrainedDofs++
			} else {
				s.FreeDofs++
			}
		}
		r, ok := node.Reactions[comboName]
		if !ok {
			continue
		}
		for i := 0; i < 6; i++ {
			if math.Abs(r[i]) > s.MaxReaction {
				s.MaxReaction = math.Abs(r[i])
				s.MaxReactionNode = name
			}
		}
	}

	for _, name := range m.MemberOrder {
		mem := m.Members[name]
		axial, err := MaxAxial(mem, comboName)
		if err == nil && axial > s.MaxAxial {
			s.MaxAxial = axial
			s.MaxAxialMember = name
		}
		my, err := MaxMomentY(mem, comboName)
		if err == nil && my > s.MaxMomentY {
			s.MaxMomentY = my
			s.MaxMomentMember = name
		}
		mz, err := MaxMomentZ(mem, comboName)
		if err == nil && mz > s.MaxMomentZ {
			s.MaxMomentZ = mz
		}
	}

	return s, nil
}
