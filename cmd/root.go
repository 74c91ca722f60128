// Package cmd implements the command-line surface over the fea3d
// analysis core (spec.md §6: "a pure library API, not a wire
// protocol" — this package is additive). Structured after
// alexiusacademia-gorcb/cmd/root.go's cobra.Command{Use, Short, Long,
// Run} + init()-registration idiom (SPEC_FULL.md's AMBIENT STACK).
package cmd

import (
	"fmt"
	"os"

	"github.com/cpmech/gosl/io"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "fea3d",
	Short: "3D structural finite-element analysis core",
	Long: `fea3d - 3D Structural Finite Element Analysis

A command-line tool over a library for linear static and P-Delta
analysis of 3D frame and plate/shell structures:

  - Frame/beam-column elements (12-DOF Euler-Bernoulli, releases,
    tension/compression-only, fixed-end reactions)
  - Plate/shell elements (membrane + bending, Kirchhoff/Mindlin/DKMQ)
  - Dense or sparse linear solve, P-Delta iteration
  - JSON model persistence

Use 'fea3d --help' to see available commands.`,
	Run: func(cmd *cobra.Command, args []string) {
		io.PfWhite("\nfea3d -- 3D Structural Finite Element Analysis\n\n")
		io.Pf("Use 'fea3d solve <model.json>' to run an analysis.\n")
		io.Pf("Use 'fea3d report <model.json>' to render diagrams and a PDF summary.\n\n")
	},
}

// Execute runs the root command, matching gorcb/cmd/root.go's
// os.Exit(1)-on-error boundary.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
