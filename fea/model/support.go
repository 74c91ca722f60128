package model

// Support records which of a node's six DOFs are restrained, plus any
// enforced displacement value for each (spec.md §3). Setting an enforced
// value always forces the corresponding restraint boolean true.
type Support struct {
	Dx, Dy, Dz, Rx, Ry, Rz bool

	EnforcedDx, EnforcedDy, EnforcedDz *float64
	EnforcedRx, EnforcedRy, EnforcedRz *float64
}

// NewSupport returns a support with nothing restrained.
func NewSupport() *Support { return &Support{} }

// Fixed restrains all six DOFs.
func Fixed() *Support {
	return &Support{Dx: true, Dy: true, Dz: true, Rx: true, Ry: true, Rz: true}
}

// Pinned restrains the three translations only.
func Pinned() *Support {
	return &Support{Dx: true, Dy: true, Dz: true}
}

// RollerY restrains DY only (vertical roller).
func RollerY() *Support { return &Support{Dy: true} }

// RollerX restrains DX only.
func RollerX() *Support { return &Support{Dx: true} }

// WithRestraints returns a support with the given six restraint flags.
func WithRestraints(dx, dy, dz, rx, ry, rz bool) *Support {
	return &Support{Dx: dx, Dy: dy, Dz: dz, Rx: rx, Ry: ry, Rz: rz}
}

func (s *Support) WithEnforcedDx(v float64) *Support { s.Dx = true; s.EnforcedDx = &v; return s }
func (s *Support) WithEnforcedDy(v float64) *Support { s.Dy = true; s.EnforcedDy = &v; return s }
func (s *Support) WithEnforcedDz(v float64) *Support { s.Dz = true; s.EnforcedDz = &v; return s }
func (s *Support) WithEnforcedRx(v float64) *Support { s.Rx = true; s.EnforcedRx = &v; return s }
func (s *Support) WithEnforcedRy(v float64) *Support { s.Ry = true; s.EnforcedRy = &v; return s }
func (s *Support) WithEnforcedRz(v float64) *Support { s.Rz = true; s.EnforcedRz = &v; return s }

// Restraints returns the six restraint booleans in {DX,DY,DZ,RX,RY,RZ}
// order.
func (s *Support) Restraints() [6]bool {
	return [6]bool{s.Dx, s.Dy, s.Dz, s.Rx, s.Ry, s.Rz}
}

// Enforced returns the six optional enforced-displacement values in the
// same DOF order.
func (s *Support) Enforced() [6]*float64 {
	return [6]*float64{s.EnforcedDx, s.EnforcedDy, s.EnforcedDz, s.EnforcedRx, s.EnforcedRy, s.EnforcedRz}
}

// RestrainedDofs returns the local DOF indices (0-5) that are restrained.
func (s *Support) RestrainedDofs() []int {
	r := s.Restraints()
	var out []int
	for i, v := range r {
		if v {
			out = append(out, i)
		}
	}
	return out
}

// FreeDofs returns the local DOF indices (0-5) that are free.
func (s *Support) FreeDofs() []int {
	r := s.Restraints()
	var out []int
	for i, v := range r {
		if !v {
			out = append(out, i)
		}
	}
	return out
}

// IsSupported reports whether any DOF is restrained.
func (s *Support) IsSupported() bool {
	for _, v := range s.Restraints() {
		if v {
			return true
		}
	}
	return false
}

// NumRestrained counts restrained DOFs.
func (s *Support) NumRestrained() int {
	n := 0
	for _, v := range s.Restraints() {
		if v {
			n++
		}
	}
	return n
}
