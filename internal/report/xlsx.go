package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/xuri/excelize/v2"
)

// Workbook sheet names
const (
	SummarySheet   = "Summary"
	NodesSheet     = "Nodes"
	ReactionsSheet = "Reactions"
	InfluenceSheet = "Influence"
)

type sheetWriter struct {
	f      *excelize.File
	header int
	err    error
}

func (s *sheetWriter) row(sheet string, n int, values ...any) {
	if s.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(1, n)
	if err != nil {
		s.err = err
		return
	}
	s.err = s.f.SetSheetRow(sheet, cell, &values)
}

func (s *sheetWriter) headerRow(sheet string, values ...any) {
	s.row(sheet, 1, values...)
	if s.err != nil {
		return
	}
	end, err := excelize.CoordinatesToCellName(len(values), 1)
	if err != nil {
		s.err = err
		return
	}
	if s.err = s.f.SetCellStyle(sheet, "A1", end, s.header); s.err != nil {
		return
	}
	last, _ := excelize.ColumnNumberToName(len(values))
	s.err = s.f.SetColWidth(sheet, "A", last, 16)
}

// Workbook lays out the results in Summary, Nodes, Reactions and Influence sheets
func Workbook(r Report) (*excelize.File, error) {
	if r.Results == nil {
		return nil, fmt.Errorf("report: no results")
	}
	r.defaults()
	res := r.Results

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return nil, err
	}
	sheets := []string{NodesSheet, ReactionsSheet}
	if res.Influence != nil {
		sheets = append(sheets, InfluenceSheet)
	}
	for _, name := range sheets {
		if _, err := f.NewSheet(name); err != nil {
			return nil, err
		}
	}
	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"DDDDDD"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}
	w := &sheetWriter{f: f, header: header}

	w.headerRow(SummarySheet, "Item", "Value", "Unit", "Position (m)")
	summary := [][]any{
		{"Title", r.Title},
		{"Project", r.Project},
		{"Date", r.Date.Format("2006-01-02")},
		{"Load combination", r.Combination},
		{"Length", r.Config.Length, "m"},
		{"E", r.Config.E, "GPa"},
		{"I", r.Config.I, "cm4"},
		{"EI", r.Config.EI(), "N-m2"},
		{"Max shear", res.MaxShear.Value, "kN", res.MaxShear.Position},
		{"Max moment", res.MaxMoment.Value, "kN-m", res.MaxMoment.Position},
		{"Max deflection", res.MaxDeflection.Value, "mm", res.MaxDeflection.Position},
		{"Degree of indeterminacy", res.Determinacy},
		{"Stable", res.Stable},
	}
	for i, row := range summary {
		w.row(SummarySheet, i+2, row...)
	}
	for i, warn := range res.Warnings {
		w.row(SummarySheet, len(summary)+2+i, "Warning", warn)
	}

	w.headerRow(NodesSheet, "x (m)", "Shear right (kN)", "Moment right (kN-m)", "Shear left (kN)", "Moment left (kN-m)", "Deflection (mm)", "Rotation (rad)")
	for i, x := range res.Nodes {
		w.row(NodesSheet, i+2, x, res.Shear[i], res.Moment[i], res.ShearLeft[i], res.MomentLeft[i], res.Deflection[i], res.Rotation[i])
	}

	w.headerRow(ReactionsSheet, "Reaction", "Support", "Type", "Position (m)", "Force (kN)", "Moment (kN-m)")
	for i, rx := range res.Reactions {
		w.row(ReactionsSheet, i+2, rx.Label, rx.ID, rx.Type, rx.Position, rx.Force, rx.Moment)
	}

	if inf := res.Influence; inf != nil {
		ids := make([]string, 0, len(inf.Reactions))
		for id := range inf.Reactions {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		header := []any{"x (m)", "Shear", "Moment"}
		for _, id := range ids {
			header = append(header, "R "+id)
		}
		w.headerRow(InfluenceSheet, header...)
		for i, p := range inf.Shear {
			row := []any{p.X, p.Value, inf.Moment[i].Value}
			for _, id := range ids {
				row = append(row, inf.Reactions[id][i].Value)
			}
			w.row(InfluenceSheet, i+2, row...)
		}
	}
	if w.err != nil {
		return nil, w.err
	}

	if err := addDiagramChart(f, len(res.Nodes)); err != nil {
		return nil, err
	}
	return f, nil
}

// addDiagramChart plots the shear and moment columns of the Nodes sheet
func addDiagramChart(f *excelize.File, n int) error {
	last := n + 1
	series := func(col string) excelize.ChartSeries {
		return excelize.ChartSeries{
			Name:       fmt.Sprintf("'%s'!$%s$1", NodesSheet, col),
			Categories: fmt.Sprintf("'%s'!$A$2:$A$%d", NodesSheet, last),
			Values:     fmt.Sprintf("'%s'!$%s$2:$%s$%d", NodesSheet, col, col, last),
		}
	}
	return f.AddChart(NodesSheet, "I2", &excelize.Chart{
		Type:   excelize.Scatter,
		Series: []excelize.ChartSeries{series("B"), series("C")},
	})
}

// WriteXLSX writes the results workbook to w
func WriteXLSX(w io.Writer, r Report) error {
	f, err := Workbook(r)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Write(w)
}

// SaveXLSX writes the results workbook to a file
func SaveXLSX(path string, r Report) error {
	f, err := create(path)
	if err != nil {
		return err
	}
	if err := WriteXLSX(f, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
