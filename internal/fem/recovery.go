package fem

import "github.com/alexiusacademia/gobeam/internal/beam"

// Side selects which element governs the internal forces at a node. Shear and
// moment jump at concentrated loads and supports, so a node has a value just
// to its left and one just to its right.
type Side int

const (
	// Right reads the element starting at the node
	Right Side = iota
	// Left reads the element ending at the node
	Left
)

func (s Side) String() string {
	if s == Left {
		return "left"
	}
	return "right"
}

// EndForces returns the end forces of element e, f = k·u_e − f_eq, in solver
// units (upward force and counter-clockwise moment positive).
func (m *Model) EndForces(e int, u []float64, loads []beam.Load) []float64 {
	k, feq := m.elementLoads(e, loads)
	out := make([]float64, 4)
	if k == nil {
		return out
	}
	ue := u[2*e : 2*e+4]
	for i := 0; i < 4; i++ {
		sum := -feq[i]
		for j := 0; j < 4; j++ {
			sum += k.At(i, j) * ue[j]
		}
		out[i] = sum
	}
	return out
}

// ForcesAt returns the shear (kN) and bending moment (kN·m) at the node
// nearest to x, taken from the requested side.
func (m *Model) ForcesAt(u []float64, loads []beam.Load, x float64, side Side) (shear, moment float64) {
	return m.nodeForces(u, loads, NearestNode(m.Nodes, x), side)
}

func (m *Model) nodeForces(u []float64, loads []beam.Load, n int, side Side) (shear, moment float64) {
	if m.Elements() == 0 {
		return 0, 0
	}
	if side == Right && n == m.Elements() {
		side = Left
	}
	if side == Left && n == 0 {
		side = Right
	}

	if side == Right {
		f := m.EndForces(n, u, loads)
		return f[0] / ForceScale, -f[1] / ForceScale
	}
	f := m.EndForces(n-1, u, loads)
	return -f[2] / ForceScale, f[3] / ForceScale
}
