package fem

import (
	"fmt"

	"github.com/alexiusacademia/gobeam/internal/beam"
)

// PlanarEquations is the number of equilibrium equations of a planar beam
const PlanarEquations = 3

// Reaction is the response of one non-hinge support
type Reaction struct {
	ID       string           `json:"id"`
	Label    string           `json:"label"`
	Kind     beam.SupportKind `json:"-"`
	Type     string           `json:"type"`
	Position float64          `json:"position"` // m
	Force    float64          `json:"force"`    // kN, upward positive
	Moment   float64          `json:"moment"`   // kN·m, fixed supports only
}

// Reactions extracts the support reactions from the penalty terms
func (m *Model) Reactions(u []float64) []Reaction {
	var out []Reaction
	for _, s := range m.Supports {
		if s.Kind == beam.Hinge {
			continue
		}
		force, moment := m.reaction(u, s)
		out = append(out, Reaction{
			ID:       s.ID,
			Label:    fmt.Sprintf("R%d", len(out)+1),
			Kind:     s.Kind,
			Type:     s.Kind.String(),
			Position: s.Position,
			Force:    force,
			Moment:   moment,
		})
	}
	return out
}

func (m *Model) reaction(u []float64, s beam.Support) (force, moment float64) {
	translation, rotation := s.Restraints()
	n := NearestNode(m.Nodes, s.Position)
	if translation {
		force = m.Penalty * u[2*n] / -ForceScale
	}
	if rotation {
		moment = m.Penalty * u[2*n+1] / ForceScale
	}
	return force, moment
}

// Determinacy returns the degree of static indeterminacy and whether the
// support count is sufficient for stability. Stability here is the necessary
// condition only; a geometrically unstable arrangement is not detected.
// Reaction counts include the horizontal component: fixed 3, pinned 2, roller 1.
func Determinacy(supports []beam.Support) (degree int, stable bool) {
	reactions, hinges := 0, 0
	for _, s := range supports {
		reactions += s.ReactionCount()
		if s.Kind == beam.Hinge {
			hinges++
		}
	}
	return reactions - PlanarEquations - hinges, reactions >= PlanarEquations
}
