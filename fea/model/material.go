package model

import "math"

// Material is an isotropic linear-elastic material (spec.md §3). If a
// caller only supplies E and Nu, G must be derived via Isotropic.
type Material struct {
	Name string
	E    float64 // modulus of elasticity, Pa
	G    float64 // shear modulus, Pa
	Nu   float64 // Poisson's ratio
	Rho  float64 // density, kg/m^3
	Fy   *float64 // optional yield strength, Pa
}

// NewMaterial builds a material with explicit E, G, Nu, Rho.
func NewMaterial(name string, e, g, nu, rho float64) *Material {
	return &Material{Name: name, E: e, G: g, Nu: nu, Rho: rho}
}

// Isotropic derives G from E and Nu per the contract G = E / (2*(1+Nu)).
func Isotropic(name string, e, nu, rho float64) *Material {
	return NewMaterial(name, e, e/(2*(1+nu)), nu, rho)
}

// WithYieldStrength returns a copy of m with Fy set.
func (m Material) WithYieldStrength(fy float64) *Material {
	m.Fy = &fy
	return &m
}

// Steel returns a standard A36 steel material.
func Steel(name string) *Material {
	fy := 250e6
	return &Material{Name: name, E: 200e9, G: 77e9, Nu: 0.3, Rho: 7850.0, Fy: &fy}
}

// Concrete returns a concrete material from its compressive strength fc
// (Pa), using the ACI estimate E = 4700*sqrt(fc in MPa) MPa.
func Concrete(name string, fc float64) *Material {
	fcMPa := fc / 1e6
	e := 4700.0 * math.Sqrt(fcMPa) * 1e6
	return &Material{Name: name, E: e, G: e / (2 * 1.2), Nu: 0.2, Rho: 2400.0}
}

// Aluminum returns a standard 6061-T6 aluminum material.
func Aluminum(name string) *Material {
	fy := 276e6
	return &Material{Name: name, E: 68.9e9, G: 26e9, Nu: 0.33, Rho: 2700.0, Fy: &fy}
}

