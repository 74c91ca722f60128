package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/cpmech/gosl/io"
	"github.com/spf13/cobra"

	"github.com/daveh07/fea3d/fea/model"
	"github.com/daveh07/fea3d/fea/persist"
	"github.com/daveh07/fea3d/fea/report"
	"github.com/daveh07/fea3d/fea/result"
	"github.com/daveh07/fea3d/fea/solve"
)

var (
	solveType          string
	solveSparse        bool
	solveTolerance     float64
	solveMaxIterations int
	solveCombos        []string
	solveVerbose       bool
)

var solveCmd = &cobra.Command{
	Use:   "solve <model.json>",
	Short: "Run a linear or P-Delta analysis on a JSON model and print a summary",
	Long: `Load a model persisted as JSON (fea/persist), run analyze() with the
given options, and print a per-combo result summary (max displacement,
max reaction, max axial/moment, DOF counts).

Examples:
  fea3d solve frame.json
  fea3d solve frame.json --type pdelta --tolerance 1e-7 --verbose
  fea3d solve frame.json --combo "Combo 1" --combo "Combo 2"`,
	Args: cobra.ExactArgs(1),
	RunE: runSolve,
}

func init() {
	rootCmd.AddCommand(solveCmd)

	solveCmd.Flags().StringVar(&solveType, "type", "linear", "Analysis type: linear or pdelta")
	solveCmd.Flags().BoolVar(&solveSparse, "sparse", false, "Use the sparse PCG solver instead of dense LU")
	solveCmd.Flags().Float64Var(&solveTolerance, "tolerance", 1e-6, "Convergence tolerance (P-Delta) / PCG residual tolerance")
	solveCmd.Flags().IntVar(&solveMaxIterations, "max-iterations", 30, "Max P-Delta iterations; PCG uses the larger of this and 200")
	solveCmd.Flags().StringArrayVar(&solveCombos, "combo", nil, "Restrict to named combos (repeatable); default is all combos")
	solveCmd.Flags().BoolVarP(&solveVerbose, "verbose", "v", false, "Print a convergence sparkline for P-Delta runs")
}

func runSolve(cmd *cobra.Command, args []string) error {
	m, err := persist.Load(args[0])
	if err != nil {
		return fmt.Errorf("loading model: %w", err)
	}

	analysisType := model.Linear
	if solveType == "pdelta" {
		analysisType = model.PDelta
	}

	var history []float64
	opts := []solve.Option{
		solve.WithAnalysisType(analysisType),
		solve.WithSparse(solveSparse),
		solve.WithTolerance(solveTolerance),
		solve.WithMaxIterations(solveMaxIterations),
		solve.WithHistory(&history),
	}
	if len(solveCombos) > 0 {
		opts = append(opts, solve.WithComboTags(solveCombos...))
	}

	io.PfYel("solving %s (%s)...\n", args[0], analysisType.String())
	if err := solve.Analyze(m, opts...); err != nil {
		io.PfRed("analysis failed: %v\n", err)
		return err
	}
	io.PfGreen("analysis complete\n\n")

	if solveVerbose && analysisType == model.PDelta {
		fmt.Println(report.ConvergenceSparkline(history))
		fmt.Println()
	}

	for _, name := range m.ComboNames() {
		s, err := result.Summarize(m, name)
		if err != nil {
			return err
		}
		printSummary(s)
	}
	return nil
}

func printSummary(s *result.Summary) {
	io.PfWhite("Combo: %s\n", s.Combo)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Total DOFs:\t%d\n", s.TotalDofs)
	fmt.Fprintf(w, "  Free / Restrained:\t%d / %d\n", s.FreeDofs, s.RestrainedDofs)
	fmt.Fprintf(w, "  Max displacement:\t%.6g m (node %s)\n", s.MaxDisplacement, s.MaxDispNode)
	fmt.Fprintf(w, "  Max reaction:\t%.6g N (node %s)\n", s.MaxReaction, s.MaxReactionNode)
	fmt.Fprintf(w, "  Max axial force:\t%.6g N (member %s)\n", s.MaxAxial, s.MaxAxialMember)
	fmt.Fprintf(w, "  Max moment Y:\t%.6g N·m (member %s)\n", s.MaxMomentY, s.MaxMomentMember)
	fmt.Fprintf(w, "  Max moment Z:\t%.6g N·m\n", s.MaxMomentZ)
	w.Flush()
	fmt.Println()
}
