package report

import "github.com/guptarohit/asciigraph"

// ConvergenceSparkline renders a P-Delta max-displacement-delta history
// (populated via solve.WithHistory) as a terminal ASCII plot, for the
// solve CLI subcommand's verbose output (SPEC_FULL.md's DOMAIN STACK).
func ConvergenceSparkline(history []float64) string {
	if len(history) == 0 {
		return "(no iterations recorded)"
	}
	return asciigraph.Plot(history,
		asciigraph.Height(10),
		asciigraph.Caption("P-Delta max displacement delta per iteration"),
	)
}
