// Package report writes beam analysis results as PDF calculation sheets and XLSX workbooks.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/alexiusacademia/gobeam/internal/beam"
	"github.com/alexiusacademia/gobeam/internal/fem"
)

// Report is everything needed to document one analysis
type Report struct {
	Title       string
	Project     string
	Author      string
	Combination string // load combination description, empty for service loads
	Date        time.Time

	Config   beam.Config
	Supports []beam.Support
	Loads    []beam.Load
	Results  *fem.Results
}

func (r *Report) defaults() {
	if r.Title == "" {
		r.Title = "Beam Analysis Report"
	}
	if r.Date.IsZero() {
		r.Date = time.Now()
	}
}

// loadDescription summarises a load's magnitude and position in input units
func loadDescription(l beam.Load) (magnitude, position string) {
	switch v := l.(type) {
	case beam.PointLoad:
		return fmt.Sprintf("%.2f kN", v.Magnitude), fmt.Sprintf("x = %.3f", v.Position)
	case beam.MomentLoad:
		return fmt.Sprintf("%.2f kN-m", v.Magnitude), fmt.Sprintf("x = %.3f", v.Position)
	case beam.UniformLoad:
		return fmt.Sprintf("%.2f kN/m", v.Magnitude), fmt.Sprintf("%.3f - %.3f", v.Start, v.End)
	case beam.VaryingLoad:
		return fmt.Sprintf("%.2f to %.2f kN/m", v.StartMagnitude, v.EndMagnitude), fmt.Sprintf("%.3f - %.3f", v.Start, v.End)
	}
	return "", ""
}

func create(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}
	return os.Create(path)
}
