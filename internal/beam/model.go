package beam

import (
	"fmt"
	"math"
	"strings"
)

// Unit conversions from input units to the consistent N-m system used by the solver
const (
	ModulusScale = 1e9  // GPa -> Pa
	InertiaScale = 1e-8 // cm⁴ -> m⁴
)

// Config describes the beam geometry and stiffness
type Config struct {
	Length float64 `json:"length" yaml:"length"` // L (m)
	E      float64 `json:"e" yaml:"e"`           // Modulus of elasticity (GPa)
	I      float64 `json:"i" yaml:"i"`           // Moment of inertia (cm⁴)
}

// EI returns the flexural rigidity in N·m²
func (c Config) EI() float64 {
	return c.E * ModulusScale * c.I * InertiaScale
}

// Validate checks that the beam can be analyzed
func (c Config) Validate() error {
	if !finite(c.Length) || c.Length <= 0 {
		return fmt.Errorf("%w: length=%g", ErrInvalidGeometry, c.Length)
	}
	ei := c.EI()
	if !finite(ei) || ei <= 0 {
		return fmt.Errorf("%w: EI=%g (E=%g, I=%g)", ErrInvalidGeometry, ei, c.E, c.I)
	}
	return nil
}

// SupportKind identifies the boundary condition of a support
type SupportKind int

const (
	Pinned SupportKind = iota
	Roller
	Fixed
	Hinge
)

var supportNames = map[SupportKind]string{
	Pinned: "PINNED",
	Roller: "ROLLER",
	Fixed:  "FIXED",
	Hinge:  "HINGE",
}

func (k SupportKind) String() string {
	if name, ok := supportNames[k]; ok {
		return name
	}
	return fmt.Sprintf("SupportKind(%d)", int(k))
}

// ParseSupportKind accepts the names used in input files and flags (case-insensitive)
func ParseSupportKind(s string) (SupportKind, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "PINNED", "PIN":
		return Pinned, nil
	case "ROLLER":
		return Roller, nil
	case "FIXED":
		return Fixed, nil
	case "HINGE":
		return Hinge, nil
	}
	return 0, fmt.Errorf("%w: unknown support type %q", ErrInvalidSupport, s)
}

// Support is a boundary condition or internal hinge at a position along the beam
type Support struct {
	ID       string
	Kind     SupportKind
	Position float64 // m from the left end
}

// NewSupport creates a support after checking its position
func NewSupport(id string, kind SupportKind, position float64) (Support, error) {
	if _, ok := supportNames[kind]; !ok {
		return Support{}, fmt.Errorf("%w: support %q has unknown kind %d", ErrInvalidSupport, id, int(kind))
	}
	if !finite(position) || position < 0 {
		return Support{}, fmt.Errorf("%w: support %q at x=%g", ErrInvalidSupport, id, position)
	}
	return Support{ID: id, Kind: kind, Position: position}, nil
}

// Restraints reports which degrees of freedom the support fixes
func (s Support) Restraints() (translation, rotation bool) {
	switch s.Kind {
	case Pinned, Roller:
		return true, false
	case Fixed:
		return true, true
	}
	return false, false
}

// ReactionCount is the number of independent reaction components the support
// provides to a planar beam. Pinned supports also resist horizontal movement.
func (s Support) ReactionCount() int {
	switch s.Kind {
	case Fixed:
		return 3
	case Pinned:
		return 2
	case Roller:
		return 1
	}
	return 0
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
