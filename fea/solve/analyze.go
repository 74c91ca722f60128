package solve

import (
	"github.com/daveh07/fea3d/fea/assemble"
	"github.com/daveh07/fea3d/fea/ferr"
	"github.com/daveh07/fea3d/fea/model"
	"github.com/daveh07/fea3d/fea/result"
)

// Analyze is the external entry point of spec.md §4.9/§6: it ensures a
// default combo exists, prepares the model, assembles the elastic
// global stiffness once, then for every combo the options select,
// dispatches to the linear or P-Delta driver, reconstructs member
// forces and reactions, and marks the model solved. Grounded on
// original_source/fea-solver/src/model.rs's analyze().
func Analyze(m *model.Model, opts ...Option) error {
	o := DefaultOptions(opts...)

	m.EnsureDefaultCombo()
	if err := assemble.Prepare(m); err != nil {
		return err
	}

	kElastic, err := assemble.GlobalStiffness(m)
	if err != nil {
		return err
	}
	part := assemble.BuildPartition(m)
	if len(part.Free) == 0 {
		return ferr.NoFreeDofsErr()
	}

	for _, name := range m.ComboNames() {
		if !o.wantsCombo(name) {
			continue
		}
		combo := m.Combos[name]

		switch o.AnalysisType {
		case model.PDelta:
			if err := solvePDelta(m, kElastic, part, combo, o); err != nil {
				return err
			}
		default:
			if err := solveLinear(m, kElastic, part, combo, o); err != nil {
				return err
			}
			if err := result.ComputeMemberForces(m, combo); err != nil {
				return err
			}
		}
		if err := result.ComputeReactions(m, combo); err != nil {
			return err
		}
		if err := result.ComputePlateResults(m, combo); err != nil {
			return err
		}
	}

	m.MarkSolved(o.AnalysisType)
	return nil
}
