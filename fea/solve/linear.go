package solve

import (
	"github.com/daveh07/fea3d/fea/assemble"
	"github.com/daveh07/fea3d/fea/ferr"
	"github.com/daveh07/fea3d/fea/linalg"
	"github.com/daveh07/fea3d/fea/model"
)

// solveLinear runs the linear driver of spec.md §4.5 for one combo
// against an already-assembled global stiffness kGlobal and partition:
// build P, extract K_ff/P_f (correcting for enforced displacements),
// solve, scatter back, and distribute into node displacement maps.
func solveLinear(m *model.Model, kGlobal [][]float64, part *assemble.Partition, combo *model.LoadCombination, o Options) error {
	n := m.TotalDofs()
	p, err := assemble.LoadVector(m, combo)
	if err != nil {
		return err
	}

	if len(part.Free) == 0 {
		return ferr.NoFreeDofsErr()
	}

	nf := len(part.Free)
	pf := make([]float64, nf)
	for i, f := range part.Free {
		pf[i] = p[f]
		for d, v := range part.Enforced {
			pf[i] -= kGlobal[f][d] * v
		}
	}

	var df []float64
	if o.Sparse {
		builder := linalg.NewSparseBuilder(nf)
		for a, fa := range part.Free {
			for b, fb := range part.Free {
				builder.Add(a, b, kGlobal[fa][fb])
			}
		}
		csr := builder.ToCSR()
		df = linalg.SolvePCG(csr, pf, o.Tolerance, maxInt(o.MaxIterations, 200))
	} else {
		kff := make([][]float64, nf)
		for a, fa := range part.Free {
			kff[a] = make([]float64, nf)
			for b, fb := range part.Free {
				kff[a][b] = kGlobal[fa][fb]
			}
		}
		df, err = linalg.SolveLU(kff, pf)
		if err != nil {
			return err
		}
	}

	full := make([]float64, n)
	for i, f := range part.Free {
		full[f] = df[i]
	}
	for d, v := range part.Enforced {
		full[d] = v
	}

	for _, name := range m.NodeOrder {
		node := m.Nodes[name]
		off := node.DofOffset()
		var d [6]float64
		copy(d[:], full[off:off+6])
		node.Displacements[combo.Name] = d
	}
	return nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
