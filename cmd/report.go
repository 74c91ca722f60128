package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/cpmech/gosl/io"
	"github.com/spf13/cobra"

	"github.com/daveh07/fea3d/fea/model"
	"github.com/daveh07/fea3d/fea/persist"
	"github.com/daveh07/fea3d/fea/report"
	"github.com/daveh07/fea3d/fea/solve"
)

var (
	reportCombo   string
	reportOutDir  string
	reportMembers []string
)

var reportCmd = &cobra.Command{
	Use:   "report <model.json>",
	Short: "Analyze a model and render member diagrams plus a PDF summary",
	Long: `Load a model, run a linear analysis, render axial/shear/moment
diagrams for the requested members (gonum/plot), and assemble them into
a printable PDF report (fpdf) under --out-dir.

Examples:
  fea3d report frame.json --member B1 --member B2 --out-dir ./out`,
	Args: cobra.ExactArgs(1),
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringVar(&reportCombo, "combo", "", "Combo to report on; default is the model's first combo")
	reportCmd.Flags().StringVar(&reportOutDir, "out-dir", "./out", "Directory to write diagram images and the PDF report")
	reportCmd.Flags().StringArrayVar(&reportMembers, "member", nil, "Members to diagram (repeatable); default is all members")
}

func runReport(cmd *cobra.Command, args []string) error {
	m, err := persist.Load(args[0])
	if err != nil {
		return fmt.Errorf("loading model: %w", err)
	}

	if err := solve.Analyze(m, solve.WithAnalysisType(model.Linear)); err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	combo := reportCombo
	if combo == "" {
		names := m.ComboNames()
		if len(names) == 0 {
			return fmt.Errorf("model has no load combinations")
		}
		combo = names[0]
	}

	members := reportMembers
	if len(members) == 0 {
		members = m.MemberOrder
	}

	var diagramPaths []string
	for _, name := range members {
		mem, err := m.GetMember(name)
		if err != nil {
			return err
		}
		base := filepath.Join(reportOutDir, name+".png")
		if err := report.MemberDiagramSet(m, mem, combo, base); err != nil {
			return fmt.Errorf("rendering diagrams for %s: %w", name, err)
		}
		stem := base[:len(base)-len(filepath.Ext(base))]
		diagramPaths = append(diagramPaths, stem+"_axial.png", stem+"_shear_y.png", stem+"_moment_z.png")
	}

	pdfPath := filepath.Join(reportOutDir, "report.pdf")
	if err := report.WritePDF(m, combo, diagramPaths, pdfPath); err != nil {
		return fmt.Errorf("writing PDF: %w", err)
	}

	io.PfGreen("wrote %s and %d diagram image(s) to %s\n", pdfPath, len(diagramPaths), reportOutDir)
	return nil
}
