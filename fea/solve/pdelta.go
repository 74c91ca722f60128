package solve

import (
	"math"

	"github.com/cpmech/gosl/la"
	"github.com/daveh07/fea3d/fea/assemble"
	"github.com/daveh07/fea3d/fea/ferr"
	"github.com/daveh07/fea3d/fea/model"
	"github.com/daveh07/fea3d/fea/result"
)

// solvePDelta runs the second-order driver (spec.md §4.5): solve
// linearly once, then iterate recomputing member axial forces, building
// the geometric stiffness, and re-solving against K_elastic+K_geometric
// until the max displacement change across all DOFs falls below
// o.Tolerance. Returns ferr.ConvergenceFailed if o.MaxIterations is
// exhausted first, matching original_source/fea-solver/src/model.rs's
// p-delta loop.
func solvePDelta(m *model.Model, kElastic [][]float64, part *assemble.Partition, combo *model.LoadCombination, o Options) error {
	if err := solveLinear(m, kElastic, part, combo, o); err != nil {
		return err
	}
	if err := result.ComputeMemberForces(m, combo); err != nil {
		return err
	}

	n := m.TotalDofs()
	prev := snapshotDisplacements(m, combo.Name, n)

	for iter := 0; iter < o.MaxIterations; iter++ {
		kg, err := assemble.GeometricStiffness(m, combo.Name)
		if err != nil {
			return err
		}
		kTotal := la.MatAlloc(n, n)
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				kTotal[i][j] = kElastic[i][j] + kg[i][j]
			}
		}
		if err := solveLinear(m, kTotal, part, combo, o); err != nil {
			return err
		}
		if err := result.ComputeMemberForces(m, combo); err != nil {
			return err
		}

		cur := snapshotDisplacements(m, combo.Name, n)
		maxDelta := 0.0
		for i := range cur {
			d := math.Abs(cur[i] - prev[i])
			if d > maxDelta {
				maxDelta = d
			}
		}
		prev = cur
		if o.History != nil {
			*o.History = append(*o.History, maxDelta)
		}
		if maxDelta < o.Tolerance {
			return nil
		}
	}
	return ferr.ConvergenceFailed(o.MaxIterations)
}

func snapshotDisplacements(m *model.Model, combo string, n int) []float64 {
	out := make([]float64, n)
	for _, name := range m.NodeOrder {
		node := m.Nodes[name]
		off := node.DofOffset()
		d := node.Displacements[combo]
		copy(out[off:off+6], d[:])
	}
	return out
}
