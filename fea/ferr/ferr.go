// Package ferr defines the typed, caller-switchable error kinds of the
// analysis core (see spec.md §7).
package ferr

import (
	"errors"
	"fmt"
)

// Kind identifies one of the error categories from spec.md §7.
type Kind int

const (
	KindDuplicateName Kind = iota
	KindNodeNotFound
	KindMaterialNotFound
	KindSectionNotFound
	KindMemberNotFound
	KindPlateNotFound
	KindInvalidGeometry
	KindNoFreeDofs
	KindSingularMatrix
	KindNotPositiveDefinite
	KindConvergenceFailed
	KindAnalysisFailed
	KindNotAnalyzed
)

func (k Kind) String() string {
	switch k {
	case KindDuplicateName:
		return "DuplicateName"
	case KindNodeNotFound:
		return "NodeNotFound"
	case KindMaterialNotFound:
		return "MaterialNotFound"
	case KindSectionNotFound:
		return "SectionNotFound"
	case KindMemberNotFound:
		return "MemberNotFound"
	case KindPlateNotFound:
		return "PlateNotFound"
	case KindInvalidGeometry:
		return "InvalidGeometry"
	case KindNoFreeDofs:
		return "NoFreeDofs"
	case KindSingularMatrix:
		return "SingularMatrix"
	case KindNotPositiveDefinite:
		return "NotPositiveDefinite"
	case KindConvergenceFailed:
		return "ConvergenceFailed"
	case KindAnalysisFailed:
		return "AnalysisFailed"
	case KindNotAnalyzed:
		return "NotAnalyzed"
	}
	return "Unknown"
}

// Error is the concrete error type carried through the core. Name/Reason
// hold the offending identifier or explanation; Iterations is only set
// for ConvergenceFailed.
type Error struct {
	Kind       Kind
	Name       string
	Reason     string
	Iterations int
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindDuplicateName:
		return fmt.Sprintf("duplicate name %q", e.Name)
	case KindNodeNotFound:
		return fmt.Sprintf("node %q not found", e.Name)
	case KindMaterialNotFound:
		return fmt.Sprintf("material %q not found", e.Name)
	case KindSectionNotFound:
		return fmt.Sprintf("section %q not found", e.Name)
	case KindMemberNotFound:
		return fmt.Sprintf("member %q not found", e.Name)
	case KindPlateNotFound:
		return fmt.Sprintf("plate %q not found", e.Name)
	case KindInvalidGeometry:
		return fmt.Sprintf("invalid geometry: %s", e.Reason)
	case KindNoFreeDofs:
		return "no free degrees of freedom"
	case KindSingularMatrix:
		return "singular matrix"
	case KindNotPositiveDefinite:
		return "matrix is not positive definite"
	case KindConvergenceFailed:
		return fmt.Sprintf("p-delta did not converge in %d iterations", e.Iterations)
	case KindAnalysisFailed:
		return fmt.Sprintf("analysis failed: %s", e.Reason)
	case KindNotAnalyzed:
		return "model has not been analyzed"
	}
	return "unknown fea error"
}

// Is supports errors.Is(err, ferr.NotAnalyzed) style checks against a
// sentinel of the same Kind.
func (e *Error) Is(target error) bool {
	var te *Error
	if errors.As(target, &te) {
		return e.Kind == te.Kind
	}
	return false
}

func sentinel(k Kind) *Error { return &Error{Kind: k} }

// Sentinels for errors.Is comparisons that do not carry per-call detail.
var (
	NoFreeDofs          = sentinel(KindNoFreeDofs)
	SingularMatrix      = sentinel(KindSingularMatrix)
	NotPositiveDefinite = sentinel(KindNotPositiveDefinite)
	NotAnalyzed         = sentinel(KindNotAnalyzed)
)

func DuplicateName(name string) error {
	return &Error{Kind: KindDuplicateName, Name: name}
}

func NodeNotFound(name string) error {
	return &Error{Kind: KindNodeNotFound, Name: name}
}

func MaterialNotFound(name string) error {
	return &Error{Kind: KindMaterialNotFound, Name: name}
}

func SectionNotFound(name string) error {
	return &Error{Kind: KindSectionNotFound, Name: name}
}

func MemberNotFound(name string) error {
	return &Error{Kind: KindMemberNotFound, Name: name}
}

func PlateNotFound(name string) error {
	return &Error{Kind: KindPlateNotFound, Name: name}
}

func InvalidGeometry(reason string, args ...interface{}) error {
	return &Error{Kind: KindInvalidGeometry, Reason: fmt.Sprintf(reason, args...)}
}

func NoFreeDofsErr() error {
	return &Error{Kind: KindNoFreeDofs}
}

func SingularMatrixErr() error {
	return &Error{Kind: KindSingularMatrix}
}

func NotPositiveDefiniteErr() error {
	return &Error{Kind: KindNotPositiveDefinite}
}

func ConvergenceFailed(maxIterations int) error {
	return &Error{Kind: KindConvergenceFailed, Iterations: maxIterations}
}

func AnalysisFailed(reason string, args ...interface{}) error {
	return &Error{Kind: KindAnalysisFailed, Reason: fmt.Sprintf(reason, args...)}
}

func NotAnalyzedErr() error {
	return &Error{Kind: KindNotAnalyzed}
}
