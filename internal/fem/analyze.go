package fem

import (
	"fmt"
	"math"

	"github.com/alexiusacademia/gobeam/internal/beam"
)

// Extreme is the largest absolute value of a response and where it occurs
type Extreme struct {
	Value    float64 `json:"value"`
	Position float64 `json:"position"`
}

// Results is the complete output of one analysis
type Results struct {
	Probe float64   `json:"probe"`
	Nodes []float64 `json:"nodes"` // m

	// Per node, taken just right of the node (just left for the last node)
	Shear  []float64 `json:"shear"`  // kN
	Moment []float64 `json:"moment"` // kN·m
	// Per node, taken just left of the node (just right for the first node)
	ShearLeft  []float64 `json:"shear_left"`
	MomentLeft []float64 `json:"moment_left"`

	Deflection []float64 `json:"deflection"` // mm, upward positive
	Rotation   []float64 `json:"rotation"`   // rad, counter-clockwise positive

	Reactions []Reaction `json:"reactions"`

	MaxShear      Extreme `json:"max_shear"`
	MaxMoment     Extreme `json:"max_moment"`
	MaxDeflection Extreme `json:"max_deflection"`

	Determinacy int  `json:"determinacy"`
	Stable      bool `json:"stable"`

	// Influence is nil when the structure is not stable
	Influence *Influence `json:"influence,omitempty"`

	// Warnings reports tolerated numerical problems such as singular pivots
	Warnings []string `json:"warnings,omitempty"`
}

// Analyze solves the beam under the given loads and samples the influence
// lines at probe. It either returns complete results or an error; invalid
// geometry fails before any matrix work with beam.ErrInvalidGeometry.
func Analyze(cfg beam.Config, supports []beam.Support, loads []beam.Load, probe float64, opts ...Option) (*Results, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	log := o.logger

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if math.IsNaN(probe) || math.IsInf(probe, 0) {
		return nil, fmt.Errorf("%w: probe x=%g", beam.ErrInvalidGeometry, probe)
	}
	for _, s := range supports {
		if math.IsNaN(s.Position) || math.IsInf(s.Position, 0) {
			return nil, fmt.Errorf("%w: support %q at x=%g", beam.ErrInvalidSupport, s.ID, s.Position)
		}
	}
	probe = clamp(probe, 0, cfg.Length)

	nodes := GenerateMesh(cfg.Length, CriticalPoints(cfg.Length, supports, loads, probe))
	m := NewModel(nodes, cfg.EI(), o.penaltyFactor, supports)
	log.Debug("model assembled", "nodes", len(nodes), "dofs", m.DOFs(), "penalty", m.Penalty)

	lu, err := Factorize(m.K)
	if err != nil {
		return nil, fmt.Errorf("factorize stiffness: %w", err)
	}

	res := &Results{Probe: probe, Nodes: nodes}
	if m.degenerate > 0 {
		res.Warnings = append(res.Warnings, fmt.Sprintf("%d zero-length elements skipped", m.degenerate))
	}
	if sing := lu.Singular(); len(sing) > 0 {
		log.Warn("singular pivots skipped", "count", len(sing), "columns", sing)
		res.Warnings = append(res.Warnings,
			fmt.Sprintf("stiffness matrix is singular at %d degree(s) of freedom; affected displacements were set to zero", len(sing)))
	}

	u := lu.Solve(m.LoadVector(loads))
	res.recover(m, u, loads)
	res.Reactions = m.Reactions(u)
	res.Determinacy, res.Stable = Determinacy(supports)

	if res.Stable {
		res.Influence = m.InfluenceLines(lu, probe, o.stations)
	} else {
		log.Debug("influence lines skipped", "reason", "unstable", "determinacy", res.Determinacy)
		res.Warnings = append(res.Warnings, "structure is unstable; displacements and internal forces are not meaningful")
	}
	log.Debug("analysis complete",
		"max_moment", res.MaxMoment.Value, "max_shear", res.MaxShear.Value, "reactions", len(res.Reactions))
	return res, nil
}

func (r *Results) recover(m *Model, u []float64, loads []beam.Load) {
	n := len(m.Nodes)
	r.Shear = make([]float64, n)
	r.Moment = make([]float64, n)
	r.ShearLeft = make([]float64, n)
	r.MomentLeft = make([]float64, n)
	r.Deflection = make([]float64, n)
	r.Rotation = make([]float64, n)

	for i, x := range m.Nodes {
		r.Shear[i], r.Moment[i] = m.nodeForces(u, loads, i, Right)
		r.ShearLeft[i], r.MomentLeft[i] = m.nodeForces(u, loads, i, Left)
		r.Deflection[i] = u[2*i] * 1000
		r.Rotation[i] = u[2*i+1]

		r.MaxShear.update(r.Shear[i], x)
		r.MaxShear.update(r.ShearLeft[i], x)
		r.MaxMoment.update(r.Moment[i], x)
		r.MaxMoment.update(r.MomentLeft[i], x)
		r.MaxDeflection.update(r.Deflection[i], x)
	}
}

func (e *Extreme) update(v, x float64) {
	if math.Abs(v) > math.Abs(e.Value) {
		e.Value, e.Position = v, x
	}
}
