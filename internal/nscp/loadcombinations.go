package nscp

import (
	"errors"
	"fmt"
	"math"

	"github.com/alexiusacademia/gobeam/internal/beam"
)

// ErrUnknownCombination is returned when a combination ID is not in the table
var ErrUnknownCombination = errors.New("nscp: unknown load combination")

// LoadCombination represents an NSCP load combination
// Based on NSCP 2015 Section 203.3 - Load Combinations Using Strength Design
type LoadCombination struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	// Load factors for each load category
	Dead       float64 `json:"D,omitempty"`  // D - Dead load
	Live       float64 `json:"L,omitempty"`  // L - Live load
	Roof       float64 `json:"Lr,omitempty"` // Lr - Roof live load
	Wind       float64 `json:"W,omitempty"`  // W - Wind load
	Earthquake float64 `json:"E,omitempty"`  // E - Earthquake load
	Rain       float64 `json:"R,omitempty"`  // R - Rain load
}

// NSCP 2015 Section 203.3.1 - Basic Load Combinations
var LoadCombinations = []LoadCombination{
	{
		ID:          "1",
		Description: "1.4D",
		Dead:        1.4,
	},
	{
		ID:          "2",
		Description: "1.2D + 1.6L + 0.5(Lr or R)",
		Dead:        1.2,
		Live:        1.6,
		Roof:        0.5,
		Rain:        0.5,
	},
	{
		ID:          "3",
		Description: "1.2D + 1.6(Lr or R) + (1.0L or 0.5W)",
		Dead:        1.2,
		Live:        1.0,
		Roof:        1.6,
		Rain:        1.6,
		Wind:        0.5,
	},
	{
		ID:          "4",
		Description: "1.2D + 1.0W + 1.0L + 0.5(Lr or R)",
		Dead:        1.2,
		Live:        1.0,
		Wind:        1.0,
		Roof:        0.5,
		Rain:        0.5,
	},
	{
		ID:          "5",
		Description: "1.2D + 1.0E + 1.0L",
		Dead:        1.2,
		Live:        1.0,
		Earthquake:  1.0,
	},
	{
		ID:          "6",
		Description: "0.9D + 1.0W",
		Dead:        0.9,
		Wind:        1.0,
	},
	{
		ID:          "7",
		Description: "0.9D + 1.0E",
		Dead:        0.9,
		Earthquake:  1.0,
	},
}

// SimplifiedCombinations for common beam design scenarios
// These are the most frequently used combinations for gravity loads
var SimplifiedCombinations = []LoadCombination{
	{
		ID:          "1",
		Description: "1.4D",
		Dead:        1.4,
	},
	{
		ID:          "2",
		Description: "1.2D + 1.6L",
		Dead:        1.2,
		Live:        1.6,
	},
}

// Factor returns the load factor the combination applies to a category
func (lc LoadCombination) Factor(c beam.Category) float64 {
	switch c {
	case beam.Dead:
		return lc.Dead
	case beam.Live:
		return lc.Live
	case beam.RoofLive:
		return lc.Roof
	case beam.Wind:
		return lc.Wind
	case beam.Earthquake:
		return lc.Earthquake
	case beam.Rain:
		return lc.Rain
	}
	return 0
}

// Apply returns the factored loads of the combination. Loads whose category
// has no factor in the combination are dropped.
func (lc LoadCombination) Apply(loads []beam.Load) []beam.Load {
	factored := make([]beam.Load, 0, len(loads))
	for _, l := range loads {
		f := lc.Factor(l.Category())
		if f == 0 {
			continue
		}
		factored = append(factored, beam.Scale(l, f))
	}
	return factored
}

// Find looks up a combination by ID
func Find(id string, combinations []LoadCombination) (LoadCombination, error) {
	for _, c := range combinations {
		if c.ID == id {
			return c, nil
		}
	}
	return LoadCombination{}, fmt.Errorf("%w: %q", ErrUnknownCombination, id)
}

// Governing evaluates every combination with response and returns the one
// producing the largest absolute value. response receives the factored loads.
func Governing(loads []beam.Load, combinations []LoadCombination, response func([]beam.Load) (float64, error)) (float64, LoadCombination, error) {
	var maxValue float64
	var governingCombo LoadCombination

	for _, combo := range combinations {
		v, err := response(combo.Apply(loads))
		if err != nil {
			return 0, LoadCombination{}, fmt.Errorf("combination %s: %w", combo.ID, err)
		}
		if math.Abs(v) > math.Abs(maxValue) || governingCombo.ID == "" {
			maxValue = v
			governingCombo = combo
		}
	}

	return maxValue, governingCombo, nil
}
