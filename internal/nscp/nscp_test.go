package nscp

import (
	"errors"
	"testing"

	"github.com/alexiusacademia/gobeam/internal/beam"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactor(t *testing.T) {
	combo, err := Find("2", LoadCombinations)
	require.NoError(t, err)

	assert.Equal(t, 1.2, combo.Factor(beam.Dead))
	assert.Equal(t, 1.6, combo.Factor(beam.Live))
	assert.Equal(t, 0.5, combo.Factor(beam.RoofLive))
	assert.Equal(t, 0.0, combo.Factor(beam.Earthquake))
	assert.Equal(t, 0.0, combo.Factor(beam.Category("X")))
}

func TestApply(t *testing.T) {
	loads := []beam.Load{
		beam.UniformLoad{ID: "self", Magnitude: 10, Start: 0, End: 6},
		beam.PointLoad{ID: "occupancy", Magnitude: 5, Position: 3, Cat: beam.Live},
		beam.PointLoad{ID: "quake", Magnitude: 8, Position: 2, Cat: beam.Earthquake},
	}

	factored := SimplifiedCombinations[1].Apply(loads)
	require.Len(t, factored, 2, "earthquake has no factor in 1.2D + 1.6L")

	assert.InDelta(t, 12, factored[0].(beam.UniformLoad).Magnitude, 1e-12)
	assert.InDelta(t, 8, factored[1].(beam.PointLoad).Magnitude, 1e-12)
	assert.Equal(t, beam.Live, factored[1].Category())
	assert.Equal(t, 10.0, loads[0].(beam.UniformLoad).Magnitude, "input is not modified")
}

func TestFindUnknown(t *testing.T) {
	_, err := Find("99", LoadCombinations)
	assert.True(t, errors.Is(err, ErrUnknownCombination))
}

func TestGoverning(t *testing.T) {
	loads := []beam.Load{
		beam.PointLoad{ID: "D", Magnitude: 10, Position: 1},
		beam.PointLoad{ID: "L", Magnitude: 10, Position: 1, Cat: beam.Live},
	}
	total := func(ls []beam.Load) (float64, error) {
		var sum float64
		for _, l := range ls {
			sum += beam.Resultant(l)
		}
		return sum, nil
	}

	v, combo, err := Governing(loads, LoadCombinations, total)
	require.NoError(t, err)
	assert.Equal(t, "2", combo.ID)
	assert.InDelta(t, 28, v, 1e-12)

	failing := func([]beam.Load) (float64, error) { return 0, errors.New("boom") }
	_, _, err = Governing(loads, LoadCombinations, failing)
	assert.ErrorContains(t, err, "combination 1")
}

func TestMaterials(t *testing.T) {
	assert.InDelta(t, 4700*5, Ec(25), 1e-9)
	assert.Equal(t, 0.0, Ec(0))
	assert.InDelta(t, 23.5, ToGPa(Ec(25)), 1e-9)
	assert.InDelta(t, 3.1, ModulusOfRupture(25, 1), 1e-12)

	// 300×500 rectangle: Ig = 3.125e9 mm⁴, yt = 250 mm
	assert.InDelta(t, 38.75, CrackingMoment(25, 3.125e9, 250), 1e-9)
}
