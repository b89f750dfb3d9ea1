package fem

import (
	"math"
	"sort"

	"github.com/alexiusacademia/gobeam/internal/beam"
)

// MinInterval returns the largest allowed gap between adjacent nodes
func MinInterval(length float64) float64 {
	return math.Max(0.1, length/100)
}

// CriticalPoints collects the positions that must become nodes: both beam
// ends, the probe, every support and every load boundary.
func CriticalPoints(length float64, supports []beam.Support, loads []beam.Load, probe float64) []float64 {
	points := []float64{0, length, probe}
	for _, s := range supports {
		points = append(points, s.Position)
	}
	for _, l := range loads {
		start, end := l.Extent()
		points = append(points, start)
		if end != start {
			points = append(points, end)
		}
	}
	return points
}

// GenerateMesh returns strictly increasing node positions over [0, length].
// Every critical position (clamped into the beam) appears exactly once and no
// two neighbours are further apart than MinInterval(length).
func GenerateMesh(length float64, critical []float64) []float64 {
	set := make(map[float64]struct{}, len(critical)+2)
	set[0] = struct{}{}
	set[length] = struct{}{}
	for _, x := range critical {
		set[clamp(x, 0, length)] = struct{}{}
	}

	xs := make([]float64, 0, len(set))
	for x := range set {
		xs = append(xs, x)
	}
	sort.Float64s(xs)

	step := MinInterval(length)
	nodes := make([]float64, 0, len(xs)+int(length/step)+1)
	for i := 0; i < len(xs)-1; i++ {
		start, end := xs[i], xs[i+1]
		gap := end - start
		if gap <= 0 {
			continue
		}
		nodes = append(nodes, start)
		n := int(math.Ceil(gap / step))
		for s := 1; s < n; s++ {
			nodes = append(nodes, start+float64(s)*gap/float64(n))
		}
	}
	nodes = append(nodes, length)
	return nodes
}

// NearestNode maps a position onto the closest node. Ties go to the lower index.
func NearestNode(nodes []float64, x float64) int {
	best := 0
	bestDist := math.Inf(1)
	for i, n := range nodes {
		if d := math.Abs(n - x); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

func clamp(x, lo, hi float64) float64 {
	return math.Min(math.Max(x, lo), hi)
}
