package cmd

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alexiusacademia/gobeam/internal/beam"
	"github.com/alexiusacademia/gobeam/internal/config"
	"github.com/alexiusacademia/gobeam/internal/fem"
	"github.com/alexiusacademia/gobeam/internal/input"
	"github.com/spf13/cobra"
)

const beamInputHelp = `Beam input (either --file or the geometry flags):
  --file beam.yaml|beam.json|beam.xlsx
  --length L --E E --I I                  m, GPa, cm⁴
  --support KIND@x                        KIND: pinned, roller, fixed, hinge
  --point P@x[/CAT]                       kN, downward positive
  --moment M@x[/CAT]                      kN-m, clockwise positive
  --udl w@a:b[/CAT]                       kN/m over [a, b]
  --uvl w1:w2@a:b[/CAT]                   kN/m varying from w1 at a to w2 at b
CAT is the load category for combinations: D (default), L, Lr, W, E, R.`

// beamFlags collects the beam description shared by the analysis commands
type beamFlags struct {
	file     string
	length   float64
	e        float64
	i        float64
	probe    float64
	supports []string
	points   []string
	moments  []string
	udls     []string
	uvls     []string
}

func (f *beamFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.file, "file", "f", "", "Beam description file (.yaml, .json, .xlsx)")
	cmd.Flags().Float64VarP(&f.length, "length", "L", 0, "Beam length (m)")
	cmd.Flags().Float64Var(&f.e, "E", 0, "Modulus of elasticity (GPa)")
	cmd.Flags().Float64Var(&f.i, "I", 0, "Moment of inertia (cm⁴)")
	cmd.Flags().Float64VarP(&f.probe, "probe", "x", -1, "Influence line section (m), default midspan")
	cmd.Flags().StringArrayVarP(&f.supports, "support", "s", nil, "Support KIND@x (repeatable)")
	cmd.Flags().StringArrayVarP(&f.points, "point", "p", nil, "Point load P@x[/CAT] (repeatable)")
	cmd.Flags().StringArrayVarP(&f.moments, "moment", "m", nil, "Applied moment M@x[/CAT] (repeatable)")
	cmd.Flags().StringArrayVarP(&f.udls, "udl", "w", nil, "Uniform load w@a:b[/CAT] (repeatable)")
	cmd.Flags().StringArrayVar(&f.uvls, "uvl", nil, "Varying load w1:w2@a:b[/CAT] (repeatable)")
}

// problem reads --file when given, otherwise builds the beam from the flags
func (f *beamFlags) problem(cmd *cobra.Command) (*input.Problem, error) {
	var (
		p   *input.Problem
		err error
	)
	if f.file != "" {
		p, err = input.Load(f.file)
	} else {
		p, err = f.fromFlags()
	}
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("probe") {
		p.Probe = f.probe
	}
	return p, nil
}

func (f *beamFlags) fromFlags() (*input.Problem, error) {
	desc := &input.File{Beam: beam.Config{Length: f.length, E: f.e, I: f.i}}

	for _, s := range f.supports {
		kind, x, ok := strings.Cut(s, "@")
		if !ok {
			return nil, fmt.Errorf("%w: %q, expected KIND@x", beam.ErrInvalidSupport, s)
		}
		pos, err := parseNumber(x)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", beam.ErrInvalidSupport, s, err)
		}
		desc.Supports = append(desc.Supports, input.SupportSpec{Type: kind, Position: pos})
	}

	specs := []struct {
		kind beam.LoadKind
		args []string
	}{
		{beam.Point, f.points},
		{beam.Moment, f.moments},
		{beam.UDL, f.udls},
		{beam.UVL, f.uvls},
	}
	for _, group := range specs {
		for _, arg := range group.args {
			spec, err := parseLoad(group.kind, arg)
			if err != nil {
				return nil, err
			}
			desc.Loads = append(desc.Loads, spec)
		}
	}
	return desc.Build()
}

// parseLoad reads MAG@POS[/CAT]; MAG is w1:w2 for UVL and POS is a:b for distributed loads
func parseLoad(kind beam.LoadKind, arg string) (input.LoadSpec, error) {
	bad := func(format string) error {
		return fmt.Errorf("%w: %s %q, expected %s", beam.ErrInvalidLoad, kind, arg, format)
	}
	spec := input.LoadSpec{Type: kind.String()}

	body, cat, _ := strings.Cut(arg, "/")
	spec.Category = cat
	mag, pos, ok := strings.Cut(body, "@")
	if !ok {
		return spec, bad(loadFormat(kind))
	}

	var err error
	switch kind {
	case beam.Point, beam.Moment:
		if spec.Magnitude, err = parseNumber(mag); err != nil {
			return spec, bad(loadFormat(kind))
		}
		if spec.X, err = parseNumber(pos); err != nil {
			return spec, bad(loadFormat(kind))
		}
		return spec, nil
	case beam.UVL:
		w1, w2, ok := strings.Cut(mag, ":")
		if !ok {
			return spec, bad(loadFormat(kind))
		}
		if spec.Magnitude, err = parseNumber(w1); err != nil {
			return spec, bad(loadFormat(kind))
		}
		if spec.EndMagnitude, err = parseNumber(w2); err != nil {
			return spec, bad(loadFormat(kind))
		}
	default:
		if spec.Magnitude, err = parseNumber(mag); err != nil {
			return spec, bad(loadFormat(kind))
		}
	}

	a, b, ok := strings.Cut(pos, ":")
	if !ok {
		return spec, bad(loadFormat(kind))
	}
	if spec.Start, err = parseNumber(a); err != nil {
		return spec, bad(loadFormat(kind))
	}
	if spec.End, err = parseNumber(b); err != nil {
		return spec, bad(loadFormat(kind))
	}
	return spec, nil
}

func loadFormat(kind beam.LoadKind) string {
	switch kind {
	case beam.UDL:
		return "w@a:b[/CAT]"
	case beam.UVL:
		return "w1:w2@a:b[/CAT]"
	case beam.Moment:
		return "M@x[/CAT]"
	}
	return "P@x[/CAT]"
}

func parseNumber(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

// analysisOptions maps settings onto solver options
func analysisOptions(cfg config.Config, log *slog.Logger) []fem.Option {
	return []fem.Option{
		fem.WithPenaltyFactor(cfg.PenaltyFactor),
		fem.WithInfluenceStations(cfg.InfluenceStations),
		fem.WithLogger(log),
	}
}
