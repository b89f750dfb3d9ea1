package diagram

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/alexiusacademia/gobeam/internal/beam"
	"github.com/alexiusacademia/gobeam/internal/fem"
	"github.com/guptarohit/asciigraph"
)

// Default chart size in terminal cells
const (
	ChartWidth  = 60
	ChartHeight = 12
)

// Series is a response sampled along the beam
type Series struct {
	Title string
	Unit  string
	X     []float64
	Y     []float64
}

// ShearSeries returns the shear force diagram with both faces at every node
// so that jumps under point loads and supports are drawn vertically
func ShearSeries(res *fem.Results) Series {
	return stepSeries("SHEAR FORCE DIAGRAM", "kN", res.Nodes, res.ShearLeft, res.Shear)
}

// MomentSeries returns the bending moment diagram (sagging positive)
func MomentSeries(res *fem.Results) Series {
	return stepSeries("BENDING MOMENT DIAGRAM", "kN·m", res.Nodes, res.MomentLeft, res.Moment)
}

// DeflectionSeries returns the elastic curve
func DeflectionSeries(res *fem.Results) Series {
	return Series{Title: "DEFLECTED SHAPE", Unit: "mm", X: res.Nodes, Y: res.Deflection}
}

// InfluenceSeries converts influence line ordinates into a series
func InfluenceSeries(title string, pts []fem.Point) Series {
	s := Series{Title: title}
	for _, p := range pts {
		s.X = append(s.X, p.X)
		s.Y = append(s.Y, p.Value)
	}
	return s
}

func stepSeries(title, unit string, x, left, right []float64) Series {
	s := Series{Title: title, Unit: unit}
	for i := range x {
		if i > 0 {
			s.X = append(s.X, x[i])
			s.Y = append(s.Y, left[i])
		}
		if i < len(x)-1 {
			s.X = append(s.X, x[i])
			s.Y = append(s.Y, right[i])
		}
	}
	return s
}

// DrawChart renders a series as an ASCII line chart sampled at uniform
// spacing along the beam
func DrawChart(s Series, width, height int) string {
	if len(s.X) == 0 {
		return ""
	}
	if width <= 0 {
		width = ChartWidth
	}
	if height <= 0 {
		height = ChartHeight
	}

	data := Resample(s.X, s.Y, width)
	caption := fmt.Sprintf("x = %.2f … %.2f m", s.X[0], s.X[len(s.X)-1])
	if s.Unit != "" {
		caption += fmt.Sprintf("   (%s)", s.Unit)
	}

	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  %s\n", s.Title))
	sb.WriteString(fmt.Sprintf("  %s\n\n", strings.Repeat("─", utf8.RuneCountInString(s.Title))))
	sb.WriteString(asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Offset(4),
		asciigraph.Precision(2),
		asciigraph.Caption(caption),
	))
	sb.WriteString("\n")
	return sb.String()
}

// DrawResultDiagrams renders the shear, moment and deflection charts
func DrawResultDiagrams(res *fem.Results, width, height int) string {
	var sb strings.Builder
	for _, s := range []Series{ShearSeries(res), MomentSeries(res), DeflectionSeries(res)} {
		sb.WriteString(DrawChart(s, width, height))
	}
	return sb.String()
}

// DrawInfluenceDiagrams renders the shear, moment and reaction influence lines
func DrawInfluenceDiagrams(inf *fem.Influence, probe float64, width, height int) string {
	if inf == nil {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(DrawChart(InfluenceSeries(fmt.Sprintf("ILD SHEAR AT x = %.2f m", probe), inf.Shear), width, height))
	sb.WriteString(DrawChart(InfluenceSeries(fmt.Sprintf("ILD MOMENT AT x = %.2f m", probe), inf.Moment), width, height))
	for _, id := range sortedKeys(inf.Reactions) {
		sb.WriteString(DrawChart(InfluenceSeries("ILD REACTION "+id, inf.Reactions[id]), width, height))
	}
	return sb.String()
}

// Resample linearly interpolates y(x) at n evenly spaced stations. Where x
// repeats, the later value wins past the repeated abscissa.
func Resample(x, y []float64, n int) []float64 {
	if len(x) == 0 || n <= 0 {
		return nil
	}
	if n == 1 || len(x) == 1 {
		return []float64{y[0]}
	}
	out := make([]float64, n)
	x0, x1 := x[0], x[len(x)-1]
	j := 0
	for i := 0; i < n; i++ {
		xi := x0 + (x1-x0)*float64(i)/float64(n-1)
		for j < len(x)-2 && x[j+1] <= xi {
			j++
		}
		dx := x[j+1] - x[j]
		if dx <= 0 {
			out[i] = y[j+1]
			continue
		}
		t := math.Max(0, math.Min(1, (xi-x[j])/dx))
		out[i] = y[j] + t*(y[j+1]-y[j])
	}
	return out
}

// DrawBeamSketch creates an ASCII elevation of the beam with its supports and loads
func DrawBeamSketch(length float64, supports []beam.Support, loads []beam.Load, width int) string {
	if width <= 0 {
		width = ChartWidth
	}
	col := func(x float64) int {
		c := int(math.Round(x / length * float64(width-1)))
		return max(0, min(width-1, c))
	}

	loadRow := []rune(strings.Repeat(" ", width))
	beamRow := []rune(strings.Repeat("━", width))
	supportRow := []rune(strings.Repeat(" ", width))

	for _, l := range loads {
		start, end := l.Extent()
		switch l.Kind() {
		case beam.UDL, beam.UVL:
			for c := col(start); c <= col(end); c++ {
				if loadRow[c] == ' ' {
					loadRow[c] = '┬'
				}
			}
		case beam.Point:
			loadRow[col(start)] = '↓'
		case beam.Moment:
			loadRow[col(start)] = '↻'
		}
	}

	for _, s := range supports {
		c := col(s.Position)
		switch s.Kind {
		case beam.Pinned:
			supportRow[c] = '△'
		case beam.Roller:
			supportRow[c] = '○'
		case beam.Fixed:
			supportRow[c] = '▓'
			beamRow[c] = '┃'
		case beam.Hinge:
			beamRow[c] = '●'
		}
	}

	lenLabel := fmt.Sprintf("%.2f m", length)
	scale := "0" + strings.Repeat(" ", max(1, width-1-len(lenLabel))) + lenLabel

	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString("  BEAM ELEVATION\n")
	sb.WriteString("  ──────────────\n\n")
	sb.WriteString("  " + string(loadRow) + "\n")
	sb.WriteString("  " + string(beamRow) + "\n")
	sb.WriteString("  " + string(supportRow) + "\n")
	sb.WriteString("  " + scale + "\n")
	sb.WriteString("\n")
	sb.WriteString("  Legend:\n")
	sb.WriteString("  △ = Pinned   ○ = Roller   ▓ = Fixed   ● = Hinge\n")
	sb.WriteString("  ↓ = Point load   ↻ = Moment   ┬ = Distributed load\n")

	return sb.String()
}

// DrawSummaryBox creates a summary box for results
func DrawSummaryBox(title string, lines []string) string {
	var sb strings.Builder

	maxLen := utf8.RuneCountInString(title)
	for _, line := range lines {
		if n := utf8.RuneCountInString(line); n > maxLen {
			maxLen = n
		}
	}
	maxLen += 4

	border := strings.Repeat("═", maxLen)
	row := func(text string) {
		pad := maxLen - 4 - utf8.RuneCountInString(text)
		sb.WriteString(fmt.Sprintf("  ║  %s%s  ║\n", text, strings.Repeat(" ", pad)))
	}
	sb.WriteString(fmt.Sprintf("  ╔%s╗\n", border))
	row(title)
	sb.WriteString(fmt.Sprintf("  ╠%s╣\n", border))
	for _, line := range lines {
		row(line)
	}
	sb.WriteString(fmt.Sprintf("  ╚%s╝\n", border))

	return sb.String()
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
