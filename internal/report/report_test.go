package report

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexiusacademia/gobeam/internal/beam"
	"github.com/alexiusacademia/gobeam/internal/fem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleReport(t *testing.T) Report {
	t.Helper()
	cfg := beam.Config{Length: 6, E: 200, I: 12000}
	supports := []beam.Support{
		{ID: "A", Kind: beam.Fixed, Position: 0},
		{ID: "B", Kind: beam.Roller, Position: 6},
	}
	loads := []beam.Load{
		beam.UniformLoad{ID: "w", Magnitude: 8, Start: 0, End: 6, Cat: beam.Dead},
		beam.PointLoad{ID: "P", Magnitude: 20, Position: 2, Cat: beam.Live},
	}
	res, err := fem.Analyze(cfg, supports, loads, 3)
	require.NoError(t, err)
	return Report{
		Project:  "Test",
		Date:     time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
		Config:   cfg,
		Supports: supports,
		Loads:    loads,
		Results:  res,
	}
}

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePDF(&buf, sampleReport(t)))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))

	assert.Error(t, WritePDF(&buf, Report{}))
}

func TestWorkbook(t *testing.T) {
	r := sampleReport(t)
	f, err := Workbook(r)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SummarySheet, NodesSheet, ReactionsSheet, InfluenceSheet}, f.GetSheetList())

	rows, err := f.GetRows(NodesSheet)
	require.NoError(t, err)
	assert.Len(t, rows, len(r.Results.Nodes)+1)

	rows, err = f.GetRows(ReactionsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "R1", rows[1][0])
	assert.Equal(t, "A", rows[1][1])

	rows, err = f.GetRows(InfluenceSheet)
	require.NoError(t, err)
	assert.Len(t, rows, fem.DefaultInfluenceStations+2)
	assert.Equal(t, []string{"x (m)", "Shear", "Moment", "R A", "R B"}, rows[0])

	title, err := f.GetCellValue(SummarySheet, "B2")
	require.NoError(t, err)
	assert.Equal(t, "Beam Analysis Report", title)
}

func TestSaveFiles(t *testing.T) {
	r := sampleReport(t)
	dir := filepath.Join(t.TempDir(), "out")

	require.NoError(t, SavePDF(filepath.Join(dir, "beam.pdf"), r))
	require.NoError(t, SaveXLSX(filepath.Join(dir, "beam.xlsx"), r))

	f, err := excelize.OpenFile(filepath.Join(dir, "beam.xlsx"))
	require.NoError(t, err)
	defer f.Close()
	v, err := f.GetCellValue(SummarySheet, "B6")
	require.NoError(t, err)
	assert.Equal(t, "6", v)

	info, err := os.Stat(filepath.Join(dir, "beam.pdf"))
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}
