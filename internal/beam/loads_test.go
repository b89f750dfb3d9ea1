package beam

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConstructors(t *testing.T) {
	p, err := NewPointLoad("P1", 10, 2.5)
	require.NoError(t, err)
	assert.Equal(t, Point, p.Kind())
	assert.Equal(t, Dead, p.Category())

	w, err := NewUniformLoad("W1", 5, 0, 4)
	require.NoError(t, err)
	start, end := w.Extent()
	assert.Equal(t, 0.0, start)
	assert.Equal(t, 4.0, end)

	_, err = NewMomentLoad("M1", math.NaN(), 1)
	assert.True(t, errors.Is(err, ErrInvalidLoad))

	_, err = NewUniformLoad("W2", 5, 3, 3)
	assert.True(t, errors.Is(err, ErrInvalidLoad), "empty span")

	_, err = NewVaryingLoad("Q1", 1, 2, 4, 1)
	assert.True(t, errors.Is(err, ErrInvalidLoad), "reversed span")

	_, err = NewPointLoad("P2", 1, -0.5)
	assert.True(t, errors.Is(err, ErrInvalidLoad))
}

func TestParseLoadKind(t *testing.T) {
	for _, k := range []LoadKind{Point, UDL, UVL, Moment} {
		got, err := ParseLoadKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}
	got, err := ParseLoadKind("udl")
	require.NoError(t, err)
	assert.Equal(t, UDL, got)

	_, err = ParseLoadKind("TRIANGLE")
	assert.True(t, errors.Is(err, ErrInvalidLoad))
}

func TestParseCategory(t *testing.T) {
	tests := map[string]Category{
		"":     Dead,
		"dead": Dead,
		"L":    Live,
		"lr":   RoofLive,
		"W":    Wind,
		"E":    Earthquake,
		"rain": Rain,
	}
	for in, want := range tests {
		got, err := ParseCategory(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseCategory("snow")
	assert.Error(t, err)
}

func TestIntensity(t *testing.T) {
	q := VaryingLoad{StartMagnitude: 2, EndMagnitude: 6, Start: 1, End: 5}
	assert.InDelta(t, 2, q.Intensity(1), 1e-12)
	assert.InDelta(t, 4, q.Intensity(3), 1e-12)
	assert.InDelta(t, 6, q.Intensity(5), 1e-12)
	assert.Equal(t, 0.0, q.Intensity(5.5))

	w := UniformLoad{Magnitude: 3, Start: 2, End: 4}
	assert.Equal(t, 3.0, w.Intensity(2))
	assert.Equal(t, 0.0, w.Intensity(1))
}

func TestResultant(t *testing.T) {
	assert.Equal(t, 7.0, Resultant(PointLoad{Magnitude: 7}))
	assert.Equal(t, 0.0, Resultant(MomentLoad{Magnitude: 7}))
	assert.Equal(t, 12.0, Resultant(UniformLoad{Magnitude: 3, Start: 1, End: 5}))
	assert.Equal(t, 16.0, Resultant(VaryingLoad{StartMagnitude: 2, EndMagnitude: 6, Start: 1, End: 5}))
}

func TestScaleAndCategory(t *testing.T) {
	q := VaryingLoad{ID: "Q", StartMagnitude: 2, EndMagnitude: 6, Start: 1, End: 5}

	s := Scale(q, 1.5)
	require.IsType(t, VaryingLoad{}, s)
	assert.Equal(t, 3.0, s.(VaryingLoad).StartMagnitude)
	assert.Equal(t, 9.0, s.(VaryingLoad).EndMagnitude)
	assert.Equal(t, 2.0, q.StartMagnitude, "original is not modified")

	live := WithCategory(PointLoad{ID: "P", Magnitude: 1}, Live)
	assert.Equal(t, Live, live.Category())
	assert.Equal(t, "P", live.Name())
}
