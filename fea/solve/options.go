// Package solve implements the linear and P-Delta solver drivers
// (spec.md §4.5) and the top-level analyze() entry point (spec.md §4.9,
// original_source/fea-solver/src/model.rs's analyze()).
package solve

import "github.com/daveh07/fea3d/fea/model"

// Options mirrors spec.md §4.6's analysis options table.
type Options struct {
	AnalysisType    model.AnalysisType
	CheckStability  bool
	CheckStatics    bool
	MaxIterations   int
	Tolerance       float64
	Sparse          bool
	ComboTags       []string // optional filter; nil/empty means "all"
	NumModes        int

	// History, if non-nil, is appended with the max-displacement-delta of
	// every P-Delta iteration (solve CLI's convergence sparkline).
	History *[]float64
}

// Option is a functional-option constructor in the teacher's
// fun.Prms-adjacent idiom (see SPEC_FULL.md's AMBIENT STACK), used to
// build an Options value with spec.md §4.6's defaults pre-filled.
type Option func(*Options)

// DefaultOptions returns the spec.md §4.6 defaults: linear analysis,
// dense solve, max_iterations=30, tolerance=1e-6.
func DefaultOptions(opts ...Option) Options {
	o := Options{
		AnalysisType:  model.Linear,
		MaxIterations: 30,
		Tolerance:     1e-6,
	}
	for _, apply := range opts {
		apply(&o)
	}
	return o
}

func WithAnalysisType(t model.AnalysisType) Option { return func(o *Options) { o.AnalysisType = t } }
func WithMaxIterations(n int) Option               { return func(o *Options) { o.MaxIterations = n } }
func WithTolerance(tol float64) Option             { return func(o *Options) { o.Tolerance = tol } }
func WithSparse(sparse bool) Option                { return func(o *Options) { o.Sparse = sparse } }
func WithCheckStability(v bool) Option             { return func(o *Options) { o.CheckStability = v } }
func WithCheckStatics(v bool) Option                { return func(o *Options) { o.CheckStatics = v } }
func WithComboTags(tags ...string) Option          { return func(o *Options) { o.ComboTags = tags } }
func WithNumModes(n int) Option                    { return func(o *Options) { o.NumModes = n } }
func WithHistory(h *[]float64) Option              { return func(o *Options) { o.History = h } }

// wantsCombo reports whether combo should be solved given o.ComboTags.
func (o Options) wantsCombo(name string) bool {
	if len(o.ComboTags) == 0 {
		return true
	}
	for _, t := range o.ComboTags {
		if t == name {
			return true
		}
	}
	return false
}
