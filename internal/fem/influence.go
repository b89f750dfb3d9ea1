package fem

import "github.com/alexiusacademia/gobeam/internal/beam"

// Point is one ordinate of an influence line
type Point struct {
	X     float64 `json:"x"`
	Value float64 `json:"value"`
}

// Influence holds the influence lines of one analysis
type Influence struct {
	// Reactions maps support IDs to their reaction influence line
	Reactions map[string][]Point `json:"reactions"`
	Shear     []Point            `json:"shear"`
	Moment    []Point            `json:"moment"`
}

// InfluenceLines sweeps a 1 kN unit load over intervals+1 evenly spaced
// stations and records every support reaction plus the shear and moment at
// the probe. Every station reuses the same factorization.
func (m *Model) InfluenceLines(lu *LU, probe float64, intervals int) *Influence {
	inf := &Influence{Reactions: make(map[string][]Point)}
	length := m.Nodes[len(m.Nodes)-1]
	probeNode := NearestNode(m.Nodes, probe)

	for i := 0; i <= intervals; i++ {
		x := length * float64(i) / float64(intervals)
		unit := []beam.Load{beam.PointLoad{ID: "unit", Magnitude: 1, Position: x}}
		u := lu.Solve(m.LoadVector(unit))

		for _, r := range m.Reactions(u) {
			inf.Reactions[r.ID] = append(inf.Reactions[r.ID], Point{X: x, Value: r.Force})
		}

		// the shear at the probe jumps as the load crosses it
		side := Left
		if x <= probe {
			side = Right
		}
		v, mo := m.nodeForces(u, unit, probeNode, side)
		inf.Shear = append(inf.Shear, Point{X: x, Value: v})
		inf.Moment = append(inf.Moment, Point{X: x, Value: mo})
	}
	return inf
}
