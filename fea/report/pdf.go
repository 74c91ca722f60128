package report

import (
	"fmt"

	"codeberg.org/go-pdf/fpdf"

	"github.com/daveh07/fea3d/fea/model"
	"github.com/daveh07/fea3d/fea/result"
)

// WritePDF assembles a printable analysis report (summary table plus
// embedded member diagrams) to path, wiring codeberg.org/go-pdf/fpdf per
// SPEC_FULL.md's DOMAIN STACK. diagramPaths is a set of image files
// already rendered via MemberDiagram/MemberDiagramSet (fpdf embeds
// images, it does not plot).
func WritePDF(m *model.Model, comboName string, diagramPaths []string, path string) error {
	summary, err := result.Summarize(m, comboName)
	if err != nil {
		return err
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Structural Analysis Report", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 8, fmt.Sprintf("Load combination: %s", comboName), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Summary", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	rows := [][2]string{
		{"Total DOFs", fmt.Sprintf("%d", summary.TotalDofs)},
		{"Free DOFs", fmt.Sprintf("%d", summary.FreeDofs)},
		{"Restrained DOFs", fmt.Sprintf("%d", summary.RestrainedDofs)},
		{"Max displacement", fmt.Sprintf("%.6g m (node %s)", summary.MaxDisplacement, summary.MaxDispNode)},
		{"Max reaction", fmt.Sprintf("%.6g N (node %s)", summary.MaxReaction, summary.MaxReactionNode)},
		{"Max axial force", fmt.Sprintf("%.6g N (member %s)", summary.MaxAxial, summary.MaxAxialMember)},
		{"Max moment Y", fmt.Sprintf("%.6g N·m (member %s)", summary.MaxMomentY, summary.MaxMomentMember)},
		{"Max moment Z", fmt.Sprintf("%.6g N·m", summary.MaxMomentZ)},
	}
	for _, r := range rows {
		pdf.CellFormat(60, 7, r[0], "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 7, r[1], "", 1, "L", false, 0, "")
	}

	for _, img := range diagramPaths {
		pdf.AddPage()
		pdf.ImageOptions(img, 10, 10, 190, 0, false, fpdf.ImageOptions{ImageType: "", ReadDpi: true}, 0, "")
	}

	return pdf.OutputFileAndClose(path)
}
