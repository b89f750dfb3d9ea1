package section

import (
	"fmt"
	"math"
)

// MM4PerCM4 converts second moments of area between mm⁴ and cm⁴
const MM4PerCM4 = 1e4

// Section represents a beam cross-section defined by vertices
// The section is defined in a local coordinate system where:
// - Y-axis points upward
// - X-axis points to the right
// - Origin can be at any convenient location
type Section struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Section geometry defined by vertices (in mm)
	// The section is assumed to be a simple polygon (no holes); either
	// winding order is accepted
	Vertices []Point `json:"vertices" yaml:"vertices"`
}

// Point represents a 2D coordinate
type Point struct {
	X float64 `json:"x" yaml:"x"` // mm
	Y float64 `json:"y" yaml:"y"` // mm
}

// Properties holds calculated geometric properties
type Properties struct {
	// Overall dimensions
	Width  float64 // Maximum width (mm)
	Height float64 // Total height (mm)
	Area   float64 // Gross area (mm²)

	// Centroid location
	CentroidX float64 // mm
	CentroidY float64 // mm

	// Bounding box
	MinX float64
	MaxX float64
	MinY float64
	MaxY float64

	// Second moments of area about the centroidal axes (mm⁴)
	Ix float64
	Iy float64

	// Extreme fibre distances from the centroid (mm)
	YTop    float64
	YBottom float64
}

// IxCM4 returns the strong-axis second moment of area in cm⁴, the unit used for beam input
func (p *Properties) IxCM4() float64 {
	return p.Ix / MM4PerCM4
}

// SectionModulus returns the elastic section modulus to the bottom fibre (mm³)
func (p *Properties) SectionModulus() float64 {
	if p.YBottom <= 0 {
		return 0
	}
	return p.Ix / p.YBottom
}

// Rectangle creates a solid rectangular section with its bottom-left corner at the origin
func Rectangle(width, height float64) *Section {
	return &Section{
		Name: fmt.Sprintf("%gx%g", width, height),
		Vertices: []Point{
			{0, 0},
			{width, 0},
			{width, height},
			{0, height},
		},
	}
}

// Validate checks if the section definition is valid
func (s *Section) Validate() error {
	if len(s.Vertices) < 3 {
		return &ValidationError{"section must have at least 3 vertices"}
	}
	for i, v := range s.Vertices {
		if math.IsNaN(v.X) || math.IsNaN(v.Y) || math.IsInf(v.X, 0) || math.IsInf(v.Y, 0) {
			return &ValidationError{msg: fmt.Sprintf("vertex %d is not finite", i+1)}
		}
	}
	if a, _, _ := s.calculateAreaAndCentroid(); a <= 0 {
		return &ValidationError{"section must enclose a positive area"}
	}
	return nil
}

// ValidationError represents a section validation error
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}
