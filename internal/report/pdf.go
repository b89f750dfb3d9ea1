package report

import (
	"bytes"
	"fmt"
	"io"
	"sort"

	"github.com/alexiusacademia/gobeam/internal/diagram"
	"github.com/alexiusacademia/gobeam/internal/version"
	"github.com/phpdave11/gofpdf"
)

const (
	pageMargin = 15.0
	rowHeight  = 6.0
)

// WritePDF renders the calculation report as an A4 PDF
func WritePDF(w io.Writer, r Report) error {
	if r.Results == nil {
		return fmt.Errorf("report: no results")
	}
	r.defaults()
	res := r.Results

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, 6, fmt.Sprintf("gobeam v%s - page %d", version.Version, pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, tr(r.Title))
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	if r.Project != "" {
		pdf.Cell(0, rowHeight, tr(fmt.Sprintf("Project: %s", r.Project)))
		pdf.Ln(rowHeight)
	}
	if r.Author != "" {
		pdf.Cell(0, rowHeight, tr(fmt.Sprintf("Author: %s", r.Author)))
		pdf.Ln(rowHeight)
	}
	pdf.Cell(0, rowHeight, fmt.Sprintf("Date: %s", r.Date.Format("2006-01-02")))
	pdf.Ln(10)

	heading(pdf, "1. Input Data")
	keyValues(pdf, [][2]string{
		{"Span length L", fmt.Sprintf("%.3f m", r.Config.Length)},
		{"Modulus of elasticity E", fmt.Sprintf("%.2f GPa", r.Config.E)},
		{"Moment of inertia I", fmt.Sprintf("%.2f cm^4", r.Config.I)},
		{"Flexural rigidity EI", fmt.Sprintf("%.4e N-m^2", r.Config.EI())},
	})
	if r.Combination != "" {
		keyValues(pdf, [][2]string{{"Load combination", r.Combination}})
	}
	pdf.Ln(4)

	table(pdf, []string{"Support", "Type", "Position (m)"}, []float64{40, 50, 50}, func(row func(...string)) {
		for _, s := range r.Supports {
			row(s.ID, s.Kind.String(), fmt.Sprintf("%.3f", s.Position))
		}
	})
	pdf.Ln(4)
	table(pdf, []string{"Load", "Type", "Cat.", "Magnitude", "Position (m)"}, []float64{25, 25, 15, 55, 60}, func(row func(...string)) {
		for _, l := range r.Loads {
			mag, pos := loadDescription(l)
			row(l.Name(), l.Kind().String(), string(l.Category()), mag, pos)
		}
	})

	heading(pdf, "2. Results")
	keyValues(pdf, [][2]string{
		{"Maximum shear", fmt.Sprintf("%.3f kN at x = %.3f m", res.MaxShear.Value, res.MaxShear.Position)},
		{"Maximum moment", fmt.Sprintf("%.3f kN-m at x = %.3f m", res.MaxMoment.Value, res.MaxMoment.Position)},
		{"Maximum deflection", fmt.Sprintf("%.3f mm at x = %.3f m", res.MaxDeflection.Value, res.MaxDeflection.Position)},
		{"Degree of indeterminacy", determinacyText(res.Determinacy, res.Stable)},
	})
	pdf.Ln(4)
	table(pdf, []string{"Reaction", "Support", "Position (m)", "Force (kN)", "Moment (kN-m)"}, []float64{30, 30, 40, 40, 40}, func(row func(...string)) {
		for _, rx := range res.Reactions {
			row(rx.Label, rx.Type, fmt.Sprintf("%.3f", rx.Position), fmt.Sprintf("%.3f", rx.Force), fmt.Sprintf("%.3f", rx.Moment))
		}
	})
	for _, warn := range res.Warnings {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.MultiCell(0, rowHeight, tr("Warning: "+warn), "", "L", false)
	}

	var img bytes.Buffer
	if err := diagram.WriteResultDiagrams(&img, res, "png"); err != nil {
		return fmt.Errorf("report diagrams: %w", err)
	}
	pdf.AddPage()
	heading(pdf, "3. Diagrams")
	opts := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}
	pdf.RegisterImageOptionsReader("diagrams", opts, &img)
	pdf.ImageOptions("diagrams", pageMargin, pdf.GetY(), 180, 0, false, opts, 0, "")

	pdf.AddPage()
	heading(pdf, "4. Nodal Results")
	table(pdf, []string{"x (m)", "V right (kN)", "M right (kN-m)", "V left (kN)", "M left (kN-m)", "Defl. (mm)"}, []float64{25, 30, 32, 30, 32, 31}, func(row func(...string)) {
		for i, x := range res.Nodes {
			row(fmt.Sprintf("%.3f", x),
				fmt.Sprintf("%.3f", res.Shear[i]), fmt.Sprintf("%.3f", res.Moment[i]),
				fmt.Sprintf("%.3f", res.ShearLeft[i]), fmt.Sprintf("%.3f", res.MomentLeft[i]),
				fmt.Sprintf("%.4f", res.Deflection[i]))
		}
	})

	if inf := res.Influence; inf != nil {
		heading(pdf, fmt.Sprintf("5. Influence Lines (probe x = %.3f m)", res.Probe))
		ids := make([]string, 0, len(inf.Reactions))
		for id := range inf.Reactions {
			ids = append(ids, id)
		}
		sort.Strings(ids)

		header := []string{"x (m)", "Shear", "Moment"}
		for _, id := range ids {
			header = append(header, "R "+id)
		}
		widths := make([]float64, len(header))
		for i := range widths {
			widths[i] = 180 / float64(len(header))
		}
		table(pdf, header, widths, func(row func(...string)) {
			for i, p := range inf.Shear {
				cells := []string{fmt.Sprintf("%.3f", p.X), fmt.Sprintf("%.4f", p.Value), fmt.Sprintf("%.4f", inf.Moment[i].Value)}
				for _, id := range ids {
					cells = append(cells, fmt.Sprintf("%.4f", inf.Reactions[id][i].Value))
				}
				row(cells...)
			}
		})
	}

	if err := pdf.Error(); err != nil {
		return err
	}
	return pdf.Output(w)
}

// SavePDF writes the report to a file
func SavePDF(path string, r Report) error {
	f, err := create(path)
	if err != nil {
		return err
	}
	if err := WritePDF(f, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func heading(pdf *gofpdf.Fpdf, text string) {
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, text)
	pdf.Ln(9)
}

func keyValues(pdf *gofpdf.Fpdf, kv [][2]string) {
	pdf.SetFont("Helvetica", "", 10)
	for _, p := range kv {
		pdf.CellFormat(70, rowHeight, p[0], "", 0, "L", false, 0, "")
		pdf.CellFormat(0, rowHeight, p[1], "", 1, "L", false, 0, "")
	}
}

// table draws a bordered table with a shaded header row
func table(pdf *gofpdf.Fpdf, header []string, widths []float64, body func(row func(...string))) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(220, 220, 220)
	for i, h := range header {
		pdf.CellFormat(widths[i], rowHeight, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	body(func(cells ...string) {
		for i, c := range cells {
			pdf.CellFormat(widths[i], rowHeight, c, "1", 0, "R", false, 0, "")
		}
		pdf.Ln(-1)
	})
}

func determinacyText(degree int, stable bool) string {
	switch {
	case !stable:
		return "Unstable"
	case degree == 0:
		return "0 (statically determinate)"
	}
	return fmt.Sprintf("%d (statically indeterminate)", degree)
}
