package input

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Workbook sheet names
const (
	BeamSheet     = "Beam"
	SupportsSheet = "Supports"
	LoadsSheet    = "Loads"
)

var (
	supportHeader = []any{"ID", "Type", "X (m)"}
	loadHeader    = []any{"ID", "Type", "Magnitude", "End Magnitude", "X (m)", "Start (m)", "End (m)", "Category"}
)

// decodeWorkbook reads the Beam sheet as key/value rows and the Supports and
// Loads sheets as tables with one header row.
func decodeWorkbook(r io.Reader) (*File, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	file := &File{}
	rows, err := f.GetRows(BeamSheet)
	if err != nil {
		return nil, fmt.Errorf("sheet %s: %w", BeamSheet, err)
	}
	for i, row := range rows {
		if len(row) < 2 || strings.TrimSpace(row[0]) == "" {
			continue
		}
		v, err := toFloat(row[1])
		if err != nil {
			return nil, fmt.Errorf("sheet %s row %d: %w", BeamSheet, i+1, err)
		}
		switch strings.ToLower(strings.TrimSpace(row[0])) {
		case "length", "l":
			file.Beam.Length = v
		case "e":
			file.Beam.E = v
		case "i":
			file.Beam.I = v
		case "probe":
			file.Probe = &v
		}
	}

	rows, err = f.GetRows(SupportsSheet)
	if err != nil {
		return nil, fmt.Errorf("sheet %s: %w", SupportsSheet, err)
	}
	for i := 1; i < len(rows); i++ {
		row := pad(rows[i], len(supportHeader))
		if row[1] == "" {
			continue
		}
		x, err := toFloat(row[2])
		if err != nil {
			return nil, fmt.Errorf("sheet %s row %d: %w", SupportsSheet, i+1, err)
		}
		file.Supports = append(file.Supports, SupportSpec{ID: row[0], Type: row[1], Position: x})
	}

	// the Loads sheet is optional
	if idx, _ := f.GetSheetIndex(LoadsSheet); idx < 0 {
		return file, nil
	}
	rows, err = f.GetRows(LoadsSheet)
	if err != nil {
		return nil, fmt.Errorf("sheet %s: %w", LoadsSheet, err)
	}
	for i := 1; i < len(rows); i++ {
		row := pad(rows[i], len(loadHeader))
		if row[1] == "" {
			continue
		}
		var nums [5]float64
		for j := range nums {
			if nums[j], err = toFloat(row[2+j]); err != nil {
				return nil, fmt.Errorf("sheet %s row %d: %w", LoadsSheet, i+1, err)
			}
		}
		file.Loads = append(file.Loads, LoadSpec{
			ID:           row[0],
			Type:         row[1],
			Magnitude:    nums[0],
			EndMagnitude: nums[1],
			X:            nums[2],
			Start:        nums[3],
			End:          nums[4],
			Category:     row[7],
		})
	}
	return file, nil
}

// Workbook lays out a problem in the sheets read back by Decode
func Workbook(p *Problem) (*excelize.File, error) {
	desc := Marshal(p)
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", BeamSheet); err != nil {
		return nil, err
	}
	for _, name := range []string{SupportsSheet, LoadsSheet} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, err
		}
	}

	beamRows := [][]any{
		{"Length", desc.Beam.Length, "m"},
		{"E", desc.Beam.E, "GPa"},
		{"I", desc.Beam.I, "cm⁴"},
		{"Probe", *desc.Probe, "m"},
	}
	for i, row := range beamRows {
		if err := setRow(f, BeamSheet, i+1, row); err != nil {
			return nil, err
		}
	}

	if err := setRow(f, SupportsSheet, 1, supportHeader); err != nil {
		return nil, err
	}
	for i, s := range desc.Supports {
		if err := setRow(f, SupportsSheet, i+2, []any{s.ID, s.Type, s.Position}); err != nil {
			return nil, err
		}
	}

	if err := setRow(f, LoadsSheet, 1, loadHeader); err != nil {
		return nil, err
	}
	for i, l := range desc.Loads {
		row := []any{l.ID, l.Type, l.Magnitude, l.EndMagnitude, l.X, l.Start, l.End, l.Category}
		if err := setRow(f, LoadsSheet, i+2, row); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func pad(row []string, n int) []string {
	for len(row) < n {
		row = append(row, "")
	}
	for i := range row {
		row[i] = strings.TrimSpace(row[i])
	}
	return row
}

func toFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}
