package fem

import (
	"testing"

	"github.com/alexiusacademia/gobeam/internal/beam"
	"github.com/stretchr/testify/assert"
)

func TestLoadVectorUniform(t *testing.T) {
	m := NewModel([]float64{0, 2}, 1, DefaultPenaltyFactor, nil)
	F := m.LoadVector([]beam.Load{beam.UniformLoad{ID: "w", Magnitude: 3, Start: 0, End: 2}})

	// fixed-end forces wl/2 and wl²/12 in solver units
	assert.InDeltaSlice(t, []float64{-3000, -1000, -3000, 1000}, F, 1e-9)
}

func TestLoadVectorVarying(t *testing.T) {
	m := NewModel([]float64{0, 3}, 1, DefaultPenaltyFactor, nil)
	F := m.LoadVector([]beam.Load{beam.VaryingLoad{ID: "q", StartMagnitude: 0, EndMagnitude: 2, Start: 0, End: 3}})

	// resultant 3 kN split equally, end moments l²(3q1+2q2)/60 and −l²(2q1+3q2)/60
	assert.InDelta(t, -1500, F[0], 1e-9)
	assert.InDelta(t, -1500, F[2], 1e-9)
	assert.InDelta(t, 9*(2*-2000)/60, F[1], 1e-9)
	assert.InDelta(t, -9*(3*-2000)/60, F[3], 1e-9)
}

func TestLoadVectorPartialOverlap(t *testing.T) {
	m := NewModel([]float64{0, 1, 2, 3}, 1, DefaultPenaltyFactor, nil)
	F := m.LoadVector([]beam.Load{beam.UniformLoad{ID: "w", Magnitude: 1, Start: 1, End: 2}})

	assert.InDeltaSlice(t, []float64{0, 0}, F[0:2], 1e-12, "unloaded element")
	assert.InDeltaSlice(t, []float64{0, 0}, F[6:8], 1e-12, "unloaded element")
	assert.InDelta(t, -1000, F[2]+F[4], 1e-9)
}

func TestLoadVectorConcentrated(t *testing.T) {
	m := NewModel([]float64{0, 1, 2}, 1, DefaultPenaltyFactor, nil)
	F := m.LoadVector([]beam.Load{
		beam.PointLoad{ID: "P", Magnitude: 4, Position: 1.9},
		beam.MomentLoad{ID: "M", Magnitude: 2, Position: 0.4},
	})

	assert.Equal(t, []float64{0, -2000, 0, 0, -4000, 0}, F)
}

func TestLoadVectorReleasedElement(t *testing.T) {
	supports := []beam.Support{{ID: "H", Kind: beam.Hinge, Position: 1}}
	m := NewModel([]float64{0, 1, 2}, 1, DefaultPenaltyFactor, supports)
	assert.Equal(t, []int{EndRotation}, m.Released(0))
	assert.Empty(t, m.Released(1))

	F := m.LoadVector([]beam.Load{beam.UniformLoad{ID: "w", Magnitude: 1, Start: 0, End: 1}})

	// propped cantilever shares 5/8 and 3/8 of the load
	assert.InDelta(t, -625, F[0], 1e-9)
	assert.InDelta(t, -375, F[2], 1e-9)
	assert.InDelta(t, 0, F[3], 1e-9)
}
