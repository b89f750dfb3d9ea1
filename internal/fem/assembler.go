package fem

import (
	"github.com/alexiusacademia/gobeam/internal/beam"
	"gonum.org/v1/gonum/mat"
)

// Model is the discretized beam of one analysis call. It owns its global
// stiffness matrix and is never shared between calls.
type Model struct {
	Nodes    []float64
	EI       float64
	Penalty  float64
	Supports []beam.Support

	// K is the global 2N×2N stiffness including penalty terms
	K *mat.Dense

	releases   [][]int // released local DOFs per element
	degenerate int
}

// NewModel assembles the global stiffness of the beam over nodes and applies
// the support penalties.
func NewModel(nodes []float64, ei, penaltyFactor float64, supports []beam.Support) *Model {
	m := &Model{
		Nodes:    nodes,
		EI:       ei,
		Penalty:  penaltyFactor * ei,
		Supports: supports,
	}
	m.releases = hingeReleases(nodes, supports)
	m.K = m.assemble()
	m.applySupports()
	return m
}

// DOFs returns the size of the global system
func (m *Model) DOFs() int { return 2 * len(m.Nodes) }

// Elements returns the number of beam elements
func (m *Model) Elements() int { return len(m.Nodes) - 1 }

// Length returns the length of element e
func (m *Model) Length(e int) float64 { return m.Nodes[e+1] - m.Nodes[e] }

// Released returns the local DOFs of element e that carry a moment release
func (m *Model) Released(e int) []int { return m.releases[e] }

// hingeReleases maps each hinge onto its nearest node and releases the end
// rotation of the element on its left, or the start rotation of the first
// element for a hinge at the left end.
func hingeReleases(nodes []float64, supports []beam.Support) [][]int {
	rel := make([][]int, len(nodes)-1)
	if len(rel) == 0 {
		return rel
	}
	for _, s := range supports {
		if s.Kind != beam.Hinge {
			continue
		}
		n := NearestNode(nodes, s.Position)
		e, dof := n-1, EndRotation
		if n == 0 {
			e, dof = 0, StartRotation
		}
		if !contains(rel[e], dof) {
			rel[e] = append(rel[e], dof)
		}
	}
	return rel
}

// elementStiffness returns the released stiffness of element e, or nil for a
// degenerate element.
func (m *Model) elementStiffness(e int, f []float64) *mat.Dense {
	le := m.Length(e)
	if le <= 0 {
		return nil
	}
	k := ElementStiffness(m.EI, le)
	if len(m.releases[e]) > 0 {
		Release(k, f, m.releases[e]...)
	}
	return k
}

func (m *Model) assemble() *mat.Dense {
	n := m.DOFs()
	K := mat.NewDense(n, n, nil)
	for e := 0; e < m.Elements(); e++ {
		k := m.elementStiffness(e, nil)
		if k == nil {
			m.degenerate++
			continue
		}
		base := 2 * e
		for i := 0; i < 4; i++ {
			for j := 0; j < 4; j++ {
				K.Set(base+i, base+j, K.At(base+i, base+j)+k.At(i, j))
			}
		}
	}
	return K
}

// applySupports adds the penalty stiffness on restrained DOFs. Hinges are
// handled by element releases and add nothing here.
func (m *Model) applySupports() {
	for _, s := range m.Supports {
		translation, rotation := s.Restraints()
		n := NearestNode(m.Nodes, s.Position)
		if translation {
			m.K.Set(2*n, 2*n, m.K.At(2*n, 2*n)+m.Penalty)
		}
		if rotation {
			m.K.Set(2*n+1, 2*n+1, m.K.At(2*n+1, 2*n+1)+m.Penalty)
		}
	}
}

func contains(xs []int, x int) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}
