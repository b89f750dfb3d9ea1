package cmd

import (
	"errors"
	"testing"

	"github.com/alexiusacademia/gobeam/internal/beam"
	"github.com/alexiusacademia/gobeam/internal/config"
	"github.com/alexiusacademia/gobeam/internal/input"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLoad(t *testing.T) {
	tests := []struct {
		name string
		kind beam.LoadKind
		arg  string
		want input.LoadSpec
	}{
		{"point", beam.Point, "10@5", input.LoadSpec{Type: "POINT", Magnitude: 10, X: 5}},
		{"point with category", beam.Point, "12.5@2.5/L", input.LoadSpec{Type: "POINT", Magnitude: 12.5, X: 2.5, Category: "L"}},
		{"moment", beam.Moment, "-4@3", input.LoadSpec{Type: "MOMENT", Magnitude: -4, X: 3}},
		{"udl", beam.UDL, "6@0:8", input.LoadSpec{Type: "UDL", Magnitude: 6, Start: 0, End: 8}},
		{"uvl", beam.UVL, "0:9@2:5/W", input.LoadSpec{Type: "UVL", Magnitude: 0, EndMagnitude: 9, Start: 2, End: 5, Category: "W"}},
		{"spaces", beam.UDL, " 3 @ 1 : 4 ", input.LoadSpec{Type: "UDL", Magnitude: 3, Start: 1, End: 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseLoad(tt.kind, tt.arg)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		kind beam.LoadKind
		arg  string
	}{
		{"missing position", beam.Point, "10"},
		{"bad magnitude", beam.Point, "ten@5"},
		{"udl without range", beam.UDL, "5@3"},
		{"uvl single magnitude", beam.UVL, "5@0:3"},
		{"bad range end", beam.UDL, "5@0:x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseLoad(tt.kind, tt.arg)
			assert.True(t, errors.Is(err, beam.ErrInvalidLoad), "got %v", err)
		})
	}
}

func TestFromFlags(t *testing.T) {
	f := beamFlags{
		length:   8,
		e:        200,
		i:        10000,
		supports: []string{"fixed@0", "roller@8"},
		points:   []string{"10@3/L"},
		udls:     []string{"4@0:8"},
	}
	p, err := f.fromFlags()
	require.NoError(t, err)

	assert.Equal(t, beam.Config{Length: 8, E: 200, I: 10000}, p.Config)
	assert.Equal(t, 4.0, p.Probe)
	require.Len(t, p.Supports, 2)
	assert.Equal(t, beam.Fixed, p.Supports[0].Kind)
	assert.Equal(t, "S2", p.Supports[1].ID)
	assert.Equal(t, 8.0, p.Supports[1].Position)

	require.Len(t, p.Loads, 2)
	assert.Equal(t, beam.Point, p.Loads[0].Kind())
	assert.Equal(t, beam.Live, p.Loads[0].Category())
	assert.Equal(t, beam.UDL, p.Loads[1].Kind())
	assert.Equal(t, beam.Dead, p.Loads[1].Category())
	assert.InDelta(t, 42, beam.Resultant(p.Loads[0])+beam.Resultant(p.Loads[1]), 1e-12)
}

func TestFromFlagsErrors(t *testing.T) {
	base := beamFlags{length: 6, e: 200, i: 1000}

	noAt := base
	noAt.supports = []string{"pinned"}
	_, err := noAt.fromFlags()
	assert.True(t, errors.Is(err, beam.ErrInvalidSupport), "got %v", err)

	beyond := base
	beyond.supports = []string{"pinned@0", "roller@7"}
	_, err = beyond.fromFlags()
	assert.True(t, errors.Is(err, beam.ErrInvalidSupport), "got %v", err)

	geometry := beamFlags{length: 0, e: 200, i: 1000}
	_, err = geometry.fromFlags()
	assert.True(t, errors.Is(err, beam.ErrInvalidGeometry), "got %v", err)
}

func TestAnalysisOptions(t *testing.T) {
	opts := analysisOptions(config.Default(), nil)
	assert.Len(t, opts, 3)
}

func TestFactorText(t *testing.T) {
	assert.Equal(t, "-", factorText(0))
	assert.Equal(t, "1.2", factorText(1.2))
	assert.Equal(t, "1", factorText(1))
	assert.Equal(t, "0.5", factorText(0.5))
}

func TestStationLabel(t *testing.T) {
	assert.Equal(t, "2.5", stationLabel(2.5))
	assert.Equal(t, "10", stationLabel(10))
	assert.Equal(t, "0", stationLabel(0))
	assert.Equal(t, "0.333", stationLabel(1.0/3))
}
