// Package input reads beam descriptions from YAML, JSON and XLSX files.
package input

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexiusacademia/gobeam/internal/beam"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for file extensions other than .yaml, .yml, .json and .xlsx
var ErrUnsupportedFormat = errors.New("input: unsupported file format")

// Format identifies a beam description encoding
type Format int

const (
	YAML Format = iota
	JSON
	XLSX
)

// FormatOf infers the format from a file extension
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML, nil
	case ".json":
		return JSON, nil
	case ".xlsx":
		return XLSX, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
}

// File is the on-disk and over-the-wire description of a beam problem
type File struct {
	Beam     beam.Config   `json:"beam" yaml:"beam"`
	Probe    *float64      `json:"probe,omitempty" yaml:"probe,omitempty"`
	Supports []SupportSpec `json:"supports" yaml:"supports"`
	Loads    []LoadSpec    `json:"loads" yaml:"loads"`
}

// SupportSpec describes one support
type SupportSpec struct {
	ID       string  `json:"id,omitempty" yaml:"id,omitempty"`
	Type     string  `json:"type" yaml:"type"`
	Position float64 `json:"x" yaml:"x"`
}

// LoadSpec describes one load. Concentrated loads use X; distributed loads
// use Start and End. EndMagnitude only applies to UVL.
type LoadSpec struct {
	ID           string  `json:"id,omitempty" yaml:"id,omitempty"`
	Type         string  `json:"type" yaml:"type"`
	Magnitude    float64 `json:"magnitude" yaml:"magnitude"`
	EndMagnitude float64 `json:"end_magnitude,omitempty" yaml:"end_magnitude,omitempty"`
	X            float64 `json:"x,omitempty" yaml:"x,omitempty"`
	Start        float64 `json:"start,omitempty" yaml:"start,omitempty"`
	End          float64 `json:"end,omitempty" yaml:"end,omitempty"`
	Category     string  `json:"category,omitempty" yaml:"category,omitempty"`
}

// Problem is a validated beam ready for analysis
type Problem struct {
	Config   beam.Config
	Supports []beam.Support
	Loads    []beam.Load
	Probe    float64
}

// Load reads and validates a beam description, choosing the decoder from the extension
func Load(path string) (*Problem, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	p, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return p, nil
}

// Decode reads a beam description in the given format
func Decode(r io.Reader, format Format) (*Problem, error) {
	var (
		file *File
		err  error
	)
	switch format {
	case YAML, JSON:
		// JSON is a subset of YAML
		file = &File{}
		err = yaml.NewDecoder(r).Decode(file)
		if errors.Is(err, io.EOF) {
			err = errors.New("empty document")
		}
	case XLSX:
		file, err = decodeWorkbook(r)
	default:
		return nil, fmt.Errorf("%w: format %d", ErrUnsupportedFormat, int(format))
	}
	if err != nil {
		return nil, err
	}
	return file.Build()
}

// Build converts the description into beam values, assigning default IDs
// and defaulting the probe to midspan. Support IDs must be unique and every
// support and load must lie on the beam.
func (f *File) Build() (*Problem, error) {
	if err := f.Beam.Validate(); err != nil {
		return nil, err
	}
	p := &Problem{Config: f.Beam, Probe: f.Beam.Length / 2}
	if f.Probe != nil {
		p.Probe = *f.Probe
	}

	taken := make(map[string]bool, len(f.Supports))
	for _, s := range f.Supports {
		if s.ID == "" {
			continue
		}
		if taken[s.ID] {
			return nil, fmt.Errorf("%w: duplicate support id %q", beam.ErrInvalidSupport, s.ID)
		}
		taken[s.ID] = true
	}

	for i, s := range f.Supports {
		kind, err := beam.ParseSupportKind(s.Type)
		if err != nil {
			return nil, fmt.Errorf("support %d: %w", i+1, err)
		}
		id := s.ID
		if id == "" {
			id = defaultSupportID(taken, i+1)
		}
		sup, err := beam.NewSupport(id, kind, s.Position)
		if err != nil {
			return nil, err
		}
		if sup.Position > f.Beam.Length {
			return nil, fmt.Errorf("%w: support %q at x=%g beyond L=%g", beam.ErrInvalidSupport, id, sup.Position, f.Beam.Length)
		}
		p.Supports = append(p.Supports, sup)
	}

	for i, spec := range f.Loads {
		l, err := spec.build(i)
		if err != nil {
			return nil, err
		}
		if _, end := l.Extent(); end > f.Beam.Length {
			return nil, fmt.Errorf("%w: load %q extends to x=%g beyond L=%g", beam.ErrInvalidLoad, l.Name(), end, f.Beam.Length)
		}
		p.Loads = append(p.Loads, l)
	}
	return p, nil
}

// defaultSupportID returns the first free S<n> name from n onwards
func defaultSupportID(taken map[string]bool, n int) string {
	for ; ; n++ {
		id := fmt.Sprintf("S%d", n)
		if !taken[id] {
			taken[id] = true
			return id
		}
	}
}

func (s LoadSpec) build(i int) (beam.Load, error) {
	kind, err := beam.ParseLoadKind(s.Type)
	if err != nil {
		return nil, fmt.Errorf("load %d: %w", i+1, err)
	}
	cat, err := beam.ParseCategory(s.Category)
	if err != nil {
		return nil, fmt.Errorf("load %d: %w", i+1, err)
	}
	id := s.ID
	if id == "" {
		id = fmt.Sprintf("%s%d", kind, i+1)
	}

	var l beam.Load
	switch kind {
	case beam.Point:
		l, err = beam.NewPointLoad(id, s.Magnitude, s.X)
	case beam.Moment:
		l, err = beam.NewMomentLoad(id, s.Magnitude, s.X)
	case beam.UDL:
		l, err = beam.NewUniformLoad(id, s.Magnitude, s.Start, s.End)
	case beam.UVL:
		l, err = beam.NewVaryingLoad(id, s.Magnitude, s.EndMagnitude, s.Start, s.End)
	}
	if err != nil {
		return nil, err
	}
	return beam.WithCategory(l, cat), nil
}

// Marshal encodes a problem back into its file description
func Marshal(p *Problem) *File {
	probe := p.Probe
	f := &File{Beam: p.Config, Probe: &probe}
	for _, s := range p.Supports {
		f.Supports = append(f.Supports, SupportSpec{ID: s.ID, Type: s.Kind.String(), Position: s.Position})
	}
	for _, l := range p.Loads {
		spec := LoadSpec{ID: l.Name(), Type: l.Kind().String(), Category: string(l.Category())}
		switch v := l.(type) {
		case beam.PointLoad:
			spec.Magnitude, spec.X = v.Magnitude, v.Position
		case beam.MomentLoad:
			spec.Magnitude, spec.X = v.Magnitude, v.Position
		case beam.UniformLoad:
			spec.Magnitude, spec.Start, spec.End = v.Magnitude, v.Start, v.End
		case beam.VaryingLoad:
			spec.Magnitude, spec.EndMagnitude = v.StartMagnitude, v.EndMagnitude
			spec.Start, spec.End = v.Start, v.End
		}
		f.Loads = append(f.Loads, spec)
	}
	return f
}

// WriteYAML writes the problem as a YAML description
func WriteYAML(w io.Writer, p *Problem) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(Marshal(p)); err != nil {
		return err
	}
	return enc.Close()
}
