package result

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/daveh07/fea3d/fea/model"
)

// Summarize requires a prior successful analyze() (spec.md §4.9).
func TestSummarizeRequiresAnalyze(tst *testing.T) {
	chk.PrintTitle("SummarizeRequiresAnalyze")
	m := model.New()
	if _, err := Summarize(m, "Combo 1"); err == nil {
		tst.Fatal("expected NotAnalyzed error before any analyze() call")
	}
}
