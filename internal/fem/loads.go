package fem

import (
	"math"

	"github.com/alexiusacademia/gobeam/internal/beam"
	"gonum.org/v1/gonum/mat"
)

// OverlapTolerance is the shortest load/element overlap that produces nodal loads
const OverlapTolerance = 1e-9

// intensity returns the distributed intensity of l at x, or ok=false for
// concentrated loads.
func intensity(l beam.Load, x float64) (q float64, ok bool) {
	switch v := l.(type) {
	case beam.UniformLoad:
		return v.Magnitude, true
	case beam.VaryingLoad:
		t := (x - v.Start) / (v.End - v.Start)
		return v.StartMagnitude + t*(v.EndMagnitude-v.StartMagnitude), true
	}
	return 0, false
}

// distributedLoads returns the equivalent nodal loads of every distributed
// load acting on element e, before any moment release. Values are in solver
// units with upward force and counter-clockwise moment positive.
func (m *Model) distributedLoads(e int, loads []beam.Load) []float64 {
	f := make([]float64, 4)
	x1, x2 := m.Nodes[e], m.Nodes[e+1]
	for _, l := range loads {
		if _, ok := intensity(l, x1); !ok {
			continue
		}
		start, end := l.Extent()
		a, b := math.Max(x1, start), math.Min(x2, end)
		if b-a < OverlapTolerance {
			continue
		}
		qa, _ := intensity(l, a)
		qb, _ := intensity(l, b)
		// downward input is negative in solver axes
		q1, q2 := -qa*ForceScale, -qb*ForceScale
		lo := b - a

		shear := (q1 + q2) / 2 * lo / 2
		f[0] += shear
		f[1] += lo * lo * (3*q1 + 2*q2) / 60
		f[2] += shear
		f[3] -= lo * lo * (2*q1 + 3*q2) / 60
	}
	return f
}

// elementLoads returns the released stiffness and equivalent nodal loads of
// element e. k is nil for a degenerate element.
func (m *Model) elementLoads(e int, loads []beam.Load) (*mat.Dense, []float64) {
	f := m.distributedLoads(e, loads)
	return m.elementStiffness(e, f), f
}

// LoadVector builds the global force vector of a load case
func (m *Model) LoadVector(loads []beam.Load) []float64 {
	F := make([]float64, m.DOFs())

	if hasDistributed(loads) {
		for e := 0; e < m.Elements(); e++ {
			k, f := m.elementLoads(e, loads)
			if k == nil {
				continue
			}
			for i, v := range f {
				F[2*e+i] += v
			}
		}
	}

	for _, l := range loads {
		switch v := l.(type) {
		case beam.PointLoad:
			n := NearestNode(m.Nodes, v.Position)
			F[2*n] -= v.Magnitude * ForceScale
		case beam.MomentLoad:
			n := NearestNode(m.Nodes, v.Position)
			F[2*n+1] -= v.Magnitude * ForceScale
		}
	}
	return F
}

func hasDistributed(loads []beam.Load) bool {
	for _, l := range loads {
		if k := l.Kind(); k == beam.UDL || k == beam.UVL {
			return true
		}
	}
	return false
}
