package input

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alexiusacademia/gobeam/internal/beam"
	"github.com/alexiusacademia/gobeam/internal/fem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
beam:
  length: 10
  e: 200
  i: 10000
probe: 4
supports:
  - {id: A, type: PINNED, x: 0}
  - {type: roller, x: 10}
loads:
  - {id: P1, type: POINT, magnitude: 10, x: 5, category: L}
  - {type: UDL, magnitude: 2, start: 0, end: 10}
  - {type: UVL, magnitude: 0, end_magnitude: 3, start: 2, end: 8}
  - {type: MOMENT, magnitude: -4, x: 7}
`

func TestDecodeYAML(t *testing.T) {
	p, err := Decode(strings.NewReader(sampleYAML), YAML)
	require.NoError(t, err)

	assert.Equal(t, beam.Config{Length: 10, E: 200, I: 10000}, p.Config)
	assert.Equal(t, 4.0, p.Probe)

	require.Len(t, p.Supports, 2)
	assert.Equal(t, beam.Support{ID: "A", Kind: beam.Pinned, Position: 0}, p.Supports[0])
	assert.Equal(t, "S2", p.Supports[1].ID)
	assert.Equal(t, beam.Roller, p.Supports[1].Kind)

	require.Len(t, p.Loads, 4)
	assert.Equal(t, beam.PointLoad{ID: "P1", Magnitude: 10, Position: 5, Cat: beam.Live}, p.Loads[0])
	assert.Equal(t, "UDL2", p.Loads[1].Name())
	assert.Equal(t, beam.Dead, p.Loads[1].Category())
	assert.Equal(t, beam.VaryingLoad{ID: "UVL3", StartMagnitude: 0, EndMagnitude: 3, Start: 2, End: 8, Cat: beam.Dead}, p.Loads[2])
	assert.Equal(t, beam.Moment, p.Loads[3].Kind())
}

func TestDecodeJSONDefaultsProbeToMidspan(t *testing.T) {
	doc := `{"beam":{"length":6,"e":200,"i":5000},"supports":[{"type":"FIXED","x":0}],"loads":[]}`
	p, err := Decode(strings.NewReader(doc), JSON)
	require.NoError(t, err)
	assert.Equal(t, 3.0, p.Probe)
	assert.Empty(t, p.Loads)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"bad geometry", `{"beam":{"length":0,"e":200,"i":1}}`, beam.ErrInvalidGeometry},
		{"bad support type", `{"beam":{"length":5,"e":200,"i":1},"supports":[{"type":"SPRING"}]}`, beam.ErrInvalidSupport},
		{"support beyond beam", `{"beam":{"length":5,"e":200,"i":1},"supports":[{"type":"PIN","x":6}]}`, beam.ErrInvalidSupport},
		{"empty span", `{"beam":{"length":5,"e":200,"i":1},"loads":[{"type":"UDL","magnitude":1,"start":2,"end":2}]}`, beam.ErrInvalidLoad},
		{"point load beyond beam", `{"beam":{"length":10,"e":200,"i":1},"loads":[{"type":"POINT","magnitude":10,"x":25}]}`, beam.ErrInvalidLoad},
		{"udl beyond beam", `{"beam":{"length":10,"e":200,"i":1},"loads":[{"type":"UDL","magnitude":10,"start":5,"end":20}]}`, beam.ErrInvalidLoad},
		{"moment beyond beam", `{"beam":{"length":10,"e":200,"i":1},"loads":[{"type":"MOMENT","magnitude":3,"x":10.5}]}`, beam.ErrInvalidLoad},
		{"duplicate support id", `{"beam":{"length":5,"e":200,"i":1},"supports":[{"id":"A","type":"PIN"},{"id":"A","type":"ROLLER","x":5}]}`, beam.ErrInvalidSupport},
		{"bad category", `{"beam":{"length":5,"e":200,"i":1},"loads":[{"type":"POINT","magnitude":1,"category":"snow"}]}`, beam.ErrInvalidLoad},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.doc), JSON)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}

	_, err := Decode(strings.NewReader(""), YAML)
	assert.Error(t, err)
}

func TestDecodeLoadAtBeamEnd(t *testing.T) {
	doc := `{"beam":{"length":10,"e":200,"i":1},"loads":[{"type":"POINT","magnitude":10,"x":10},{"type":"UDL","magnitude":2,"start":0,"end":10}]}`
	p, err := Decode(strings.NewReader(doc), JSON)
	require.NoError(t, err)
	assert.Len(t, p.Loads, 2)
}

func TestDefaultSupportIDsSkipTakenNames(t *testing.T) {
	doc := `{"beam":{"length":10,"e":200,"i":1},"supports":[{"type":"PIN"},{"id":"S1","type":"ROLLER","x":10}]}`
	p, err := Decode(strings.NewReader(doc), JSON)
	require.NoError(t, err)
	require.Len(t, p.Supports, 2)
	assert.Equal(t, "S2", p.Supports[0].ID)
	assert.Equal(t, "S1", p.Supports[1].ID)

	res, err := fem.Analyze(p.Config, p.Supports, nil, p.Probe)
	require.NoError(t, err)
	require.NotNil(t, res.Influence)
	require.Len(t, res.Influence.Reactions, 2)
	for id, line := range res.Influence.Reactions {
		assert.Len(t, line, fem.DefaultInfluenceStations+1, id)
	}
}

func TestFormatOf(t *testing.T) {
	for path, want := range map[string]Format{"a.yaml": YAML, "b.YML": YAML, "c.json": JSON, "d.xlsx": XLSX} {
		got, err := FormatOf(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}
	_, err := FormatOf("beam.toml")
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "beam.yml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o644))

	p, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, p.Loads, 4)

	_, err = Load(filepath.Join(dir, "beam.txt"))
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestWorkbookRoundTrip(t *testing.T) {
	want, err := Decode(strings.NewReader(sampleYAML), YAML)
	require.NoError(t, err)

	wb, err := Workbook(want)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, wb.Write(&buf))
	require.NoError(t, wb.Close())

	got, err := Decode(&buf, XLSX)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestYAMLRoundTrip(t *testing.T) {
	want, err := Decode(strings.NewReader(sampleYAML), YAML)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteYAML(&buf, want))

	got, err := Decode(&buf, YAML)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
