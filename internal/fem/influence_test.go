package fem

import (
	"testing"

	"github.com/alexiusacademia/gobeam/internal/beam"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ordinateAt(t *testing.T, pts []Point, x float64) float64 {
	t.Helper()
	for _, p := range pts {
		if p.X == x {
			return p.Value
		}
	}
	t.Fatalf("no ordinate at x=%g", x)
	return 0
}

func TestInfluenceLinesSimplySupported(t *testing.T) {
	res, err := Analyze(steel, simplySupported(10), nil, 5)
	require.NoError(t, err)
	require.NotNil(t, res.Influence)

	inf := res.Influence
	require.Len(t, inf.Shear, DefaultInfluenceStations+1)
	require.Len(t, inf.Moment, DefaultInfluenceStations+1)
	require.Len(t, inf.Reactions, 2)
	assert.Equal(t, 0.0, inf.Shear[0].X)
	assert.Equal(t, 10.0, inf.Shear[len(inf.Shear)-1].X)

	// the unit load acts at the node nearest to each station
	for _, p := range inf.Reactions["A"] {
		x := res.Nodes[NearestNode(res.Nodes, p.X)]
		assert.InDelta(t, 1-x/10, p.Value, 1e-6, "R_A at x=%g", p.X)
	}
	for _, p := range inf.Reactions["B"] {
		x := res.Nodes[NearestNode(res.Nodes, p.X)]
		assert.InDelta(t, x/10, p.Value, 1e-6, "R_B at x=%g", p.X)
	}

	assert.InDelta(t, 2.5, ordinateAt(t, inf.Moment, 5), 1e-6)
	assert.InDelta(t, 1.0, ordinateAt(t, inf.Moment, 2), 1e-6)
	assert.InDelta(t, 1.0, ordinateAt(t, inf.Moment, 8), 1e-6)

	// load left of the probe reads the right face, load right of it the left face
	assert.InDelta(t, -0.2, ordinateAt(t, inf.Shear, 2), 1e-6)
	assert.InDelta(t, 0.2, ordinateAt(t, inf.Shear, 8), 1e-6)
}

func TestInfluenceLinesStations(t *testing.T) {
	res, err := Analyze(steel, simplySupported(10), nil, 3, WithInfluenceStations(10))
	require.NoError(t, err)
	require.NotNil(t, res.Influence)
	assert.Len(t, res.Influence.Moment, 11)
	for i, p := range res.Influence.Moment {
		assert.InDelta(t, float64(i), p.X, 1e-12)
	}
}

func TestInfluenceLinesSkipHinges(t *testing.T) {
	supports := []beam.Support{
		{ID: "A", Kind: beam.Pinned, Position: 0},
		{ID: "B", Kind: beam.Roller, Position: 6},
		{ID: "H", Kind: beam.Hinge, Position: 8},
		{ID: "C", Kind: beam.Roller, Position: 10},
	}
	res, err := Analyze(steel, supports, nil, 7)
	require.NoError(t, err)
	require.NotNil(t, res.Influence)

	assert.NotContains(t, res.Influence.Reactions, "H")
	assert.Len(t, res.Influence.Reactions, 3)

	// a unit load on the suspended span beyond the hinge
	assert.InDelta(t, 1.0, ordinateAt(t, res.Influence.Reactions["C"], 10), 1e-6)
	assert.InDelta(t, 0.0, ordinateAt(t, res.Influence.Reactions["C"], 4), 1e-6)
}
