package model

import "math"

// Section holds the cross-section properties used by the frame element
// kernel (spec.md §3): area A, strong/weak moments of inertia Iy/Iz,
// torsional constant J, and optional plastic moduli/dimensions.
type Section struct {
	Name string
	A    float64
	Iy   float64
	Iz   float64
	J    float64

	Zy     *float64
	Zz     *float64
	Depth  *float64
	Width  *float64
}

// NewSection builds a section from explicit A, Iy, Iz, J.
func NewSection(name string, a, iy, iz, j float64) *Section {
	return &Section{Name: name, A: a, Iy: iy, Iz: iz, J: j}
}

// Rectangular derives section properties for a solid rectangle of the
// given width and depth, including the Saint-Venant torsion-constant
// approximation j = a*b^3/3*(1 - 0.63*b/a) with a >= b.
func Rectangular(name string, width, depth float64) *Section {
	a := width * depth
	iy := width * depth * depth * depth / 12.0
	iz := depth * width * width * width / 12.0

	aDim, bDim := width, depth
	if bDim > aDim {
		aDim, bDim = bDim, aDim
	}
	j := aDim * bDim * bDim * bDim / 3.0 * (1.0 - 0.63*bDim/aDim)

	zy := width * depth * depth / 4.0
	zz := depth * width * width / 4.0
	s := &Section{Name: name, A: a, Iy: iy, Iz: iz, J: j, Zy: &zy, Zz: &zz, Depth: &depth, Width: &width}
	return s
}

// Circular derives section properties for a solid circular section of
// the given diameter.
func Circular(name string, diameter float64) *Section {
	r := diameter / 2.0
	a := math.Pi * r * r
	i := math.Pi * r * r * r * r / 4.0
	j := math.Pi * r * r * r * r / 2.0
	z := math.Pi * r * r * r / 4.0 * 4.0 / 3.0
	return &Section{Name: name, A: a, Iy: i, Iz: i, J: j, Zy: &z, Zz: &z}
}

// Pipe derives section properties for a circular hollow section from its
// outer diameter and wall thickness.
func Pipe(name string, outerDiameter, wallThickness float64) *Section {
	ro := outerDiameter / 2.0
	ri := ro - wallThickness
	a := math.Pi * (ro*ro - ri*ri)
	i := math.Pi / 4.0 * (math.Pow(ro, 4) - math.Pow(ri, 4))
	j := math.Pi / 2.0 * (math.Pow(ro, 4) - math.Pow(ri, 4))
	return &Section{Name: name, A: a, Iy: i, Iz: i, J: j}
}

// WideFlange derives section properties for an I/W-shape from overall
// depth, flange width, flange thickness, and web thickness.
func WideFlange(name string, depth, flangeWidth, flangeThickness, webThickness float64) *Section {
	hw := depth - 2*flangeThickness
	a := 2*flangeWidth*flangeThickness + hw*webThickness
	iy := (flangeWidth*math.Pow(depth, 3) - (flangeWidth-webThickness)*math.Pow(hw, 3)) / 12.0
	iz := (2*flangeThickness*math.Pow(flangeWidth, 3) + hw*math.Pow(webThickness, 3)) / 12.0
	j := (2*flangeWidth*math.Pow(flangeThickness, 3) + hw*math.Pow(webThickness, 3)) / 3.0
	zy := flangeWidth*flangeThickness*(depth-flangeThickness) + webThickness*hw*hw/4.0
	zz := flangeThickness*flangeWidth*flangeWidth/2.0 + hw*webThickness*webThickness/4.0
	d, w := depth, flangeWidth
	return &Section{Name: name, A: a, Iy: iy, Iz: iz, J: j, Zy: &zy, Zz: &zz, Depth: &d, Width: &w}
}

// BoxSection derives section properties for a rectangular hollow
// section (closed thin-walled torsion formula j = 4*Am^2*t / s).
func BoxSection(name string, width, depth, wallThickness float64) *Section {
	t := wallThickness
	outerA := width * depth
	innerA := (width - 2*t) * (depth - 2*t)
	a := outerA - innerA
	iy := (width*math.Pow(depth, 3) - (width-2*t)*math.Pow(depth-2*t, 3)) / 12.0
	iz := (depth*math.Pow(width, 3) - (depth-2*t)*math.Pow(width-2*t, 3)) / 12.0
	am := (width - t) * (depth - t)
	s := 2*(width+depth) - 4*t
	j := 4 * am * am * t / s
	d, w := depth, width
	return &Section{Name: name, A: a, Iy: iy, Iz: iz, J: j, Depth: &d, Width: &w}
}

// Ry returns the radius of gyration about the strong (y) axis.
func (s *Section) Ry() float64 { return math.Sqrt(s.Iy / s.A) }

// Rz returns the radius of gyration about the weak (z) axis.
func (s *Section) Rz() float64 { return math.Sqrt(s.Iz / s.A) }

// Ip returns the polar moment of inertia Iy+Iz used by the geometric
// stiffness torsional term (spec.md §4.1).
func (s *Section) Ip() float64 { return s.Iy + s.Iz }
