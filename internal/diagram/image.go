package diagram

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexiusacademia/gobeam/internal/fem"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgpdf"
	"gonum.org/v1/plot/vg/vgsvg"
)

var (
	shearColor      = color.RGBA{R: 0, G: 100, B: 0, A: 255}
	shearFill       = color.RGBA{R: 144, G: 238, B: 144, A: 120}
	momentColor     = color.RGBA{R: 0, G: 0, B: 139, A: 255}
	momentFill      = color.RGBA{R: 100, G: 149, B: 237, A: 120}
	deflectionColor = color.RGBA{R: 178, G: 34, B: 34, A: 255}
	influenceColor  = color.RGBA{R: 139, G: 69, B: 19, A: 255}
)

// newSeriesPlot draws a filled response curve with a zero baseline
func newSeriesPlot(s Series, line, fill color.Color) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = s.Title
	p.X.Label.Text = "x (m)"
	if s.Unit != "" {
		p.Y.Label.Text = s.Unit
	}
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(s.X))
	for i := range s.X {
		pts[i] = plotter.XY{X: s.X[i], Y: s.Y[i]}
	}
	l, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	l.LineStyle.Width = vg.Points(2)
	l.LineStyle.Color = line
	l.FillColor = fill
	p.Add(l)

	if len(s.X) > 0 {
		base, err := plotter.NewLine(plotter.XYs{{X: s.X[0], Y: 0}, {X: s.X[len(s.X)-1], Y: 0}})
		if err != nil {
			return nil, err
		}
		base.LineStyle.Width = vg.Points(1)
		base.LineStyle.Color = color.Black
		p.Add(base)
	}
	return p, nil
}

// resultPlots builds the shear, moment and deflection diagrams
func resultPlots(res *fem.Results) ([]*plot.Plot, error) {
	sfd, err := newSeriesPlot(ShearSeries(res), shearColor, shearFill)
	if err != nil {
		return nil, err
	}
	bmd, err := newSeriesPlot(MomentSeries(res), momentColor, momentFill)
	if err != nil {
		return nil, err
	}
	// sagging drawn below the axis like a structural moment diagram
	bmd.Y.Scale = plot.InvertedScale{Normalizer: plot.LinearScale{}}

	dfl, err := newSeriesPlot(DeflectionSeries(res), deflectionColor, nil)
	if err != nil {
		return nil, err
	}
	return []*plot.Plot{sfd, bmd, dfl}, nil
}

// ExportResultDiagrams exports the shear, moment and deflection diagrams
// stacked on one page. The format follows the extension (.png, .svg or .pdf).
func ExportResultDiagrams(res *fem.Results, filename string) error {
	filename = withExtension(filename)
	if err := ensureDir(filename); err != nil {
		return err
	}
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := WriteResultDiagrams(f, res, filepath.Ext(filename)); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", filename, err)
	}
	return f.Close()
}

// WriteResultDiagrams renders the stacked diagrams to w as png, svg or pdf
func WriteResultDiagrams(w io.Writer, res *fem.Results, format string) error {
	plots, err := resultPlots(res)
	if err != nil {
		return err
	}
	c := alignPlots(plots, 8*vg.Inch, 10*vg.Inch, format)
	_, err = c.WriteTo(w)
	return err
}

// ExportInfluenceDiagram exports one influence line to an image file
func ExportInfluenceDiagram(title string, pts []fem.Point, filename string) error {
	p, err := newSeriesPlot(InfluenceSeries(title, pts), influenceColor, nil)
	if err != nil {
		return err
	}
	p.Y.Label.Text = "Ordinate (per kN)"

	markers, err := plotter.NewScatter(InfluenceXYs(pts))
	if err != nil {
		return err
	}
	markers.GlyphStyle.Color = influenceColor
	markers.GlyphStyle.Radius = vg.Points(2)
	markers.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(markers)

	if err := ensureDir(filename); err != nil {
		return err
	}
	return p.Save(8*vg.Inch, 4*vg.Inch, withExtension(filename))
}

// InfluenceXYs converts influence ordinates to plotter points
func InfluenceXYs(pts []fem.Point) plotter.XYs {
	xys := make(plotter.XYs, len(pts))
	for i, p := range pts {
		xys[i] = plotter.XY{X: p.X, Y: p.Value}
	}
	return xys
}

// alignPlots draws plots in a single column on a canvas of the given format
func alignPlots(plots []*plot.Plot, width, height vg.Length, format string) vg.CanvasWriterTo {
	var c vg.CanvasWriterTo
	switch strings.ToLower(strings.TrimPrefix(format, ".")) {
	case "svg":
		c = vgsvg.New(width, height)
	case "pdf":
		c = vgpdf.New(width, height)
	default:
		c = vgimg.PngCanvas{Canvas: vgimg.New(width, height)}
	}

	rows := make([][]*plot.Plot, len(plots))
	for i, p := range plots {
		rows[i] = []*plot.Plot{p}
	}
	tiles := draw.Tiles{
		Rows:      len(plots),
		Cols:      1,
		PadTop:    vg.Millimeter * 4,
		PadBottom: vg.Millimeter * 4,
		PadLeft:   vg.Millimeter * 4,
		PadRight:  vg.Millimeter * 4,
		PadY:      vg.Millimeter * 6,
	}
	canvases := plot.Align(rows, tiles, draw.New(c))
	for i := range rows {
		rows[i][0].Draw(canvases[i][0])
	}
	return c
}

// withExtension defaults unknown extensions to PNG
func withExtension(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png", ".svg", ".pdf":
		return filename
	}
	return filename + ".png"
}

// Create directory if needed
func ensureDir(filename string) error {
	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		return os.MkdirAll(dir, 0755)
	}
	return nil
}
