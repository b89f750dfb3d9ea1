package cmd

import (
	"fmt"
	"math"
	"os"
	"text/tabwriter"

	"github.com/alexiusacademia/gobeam/internal/beam"
	"github.com/alexiusacademia/gobeam/internal/diagram"
	"github.com/alexiusacademia/gobeam/internal/fem"
	"github.com/alexiusacademia/gobeam/internal/nscp"
	"github.com/spf13/cobra"
)

var (
	combosInput beamFlags

	// Options
	useSimplified bool
)

var combosCmd = &cobra.Command{
	Use:   "combos",
	Short: "NSCP load combinations and the governing factored response",
	Long: `List the NSCP 2015 load combinations (Section 203.3). When a beam is
given, every combination is applied to the loads by category and the beam is
solved once per combination. The combination with the largest absolute
bending moment governs.

Load categories:
  D  - Dead load
  L  - Live load
  Lr - Roof live load
  W  - Wind load
  E  - Earthquake load
  R  - Rain load

` + beamInputHelp + `

Examples:
  # List all combinations
  gobeam combos

  # Governing combination for dead and live UDL on a simple span
  gobeam combos -L 6 --E 25 --I 312500 -s pinned@0 -s roller@6 \
    -w 15@0:6/D -w 10@0:6/L`,
	Run: runCombos,
}

func init() {
	rootCmd.AddCommand(combosCmd)

	combosInput.register(combosCmd)
	combosCmd.Flags().BoolVar(&useSimplified, "simplified", false, "Use simplified combinations (gravity only: 1.4D and 1.2D+1.6L)")
}

// comboResult holds the maxima of one factored analysis
type comboResult struct {
	combo nscp.LoadCombination
	res   *fem.Results
}

func runCombos(cmd *cobra.Command, args []string) {
	combinations := nscp.LoadCombinations
	if useSimplified {
		combinations = nscp.SimplifiedCombinations
	}

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("          NSCP 2015 LOAD COMBINATIONS")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	if combosInput.file == "" && !cmd.Flags().Changed("length") {
		printCombinations(combinations)
		return
	}

	p, err := combosInput.problem(cmd)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	cfg, err := settings()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	opts := analysisOptions(cfg, logger())

	printLoadsByCategory(p.Loads)

	var results []comboResult
	maxMu, governing, err := nscp.Governing(p.Loads, combinations, func(loads []beam.Load) (float64, error) {
		res, err := fem.Analyze(p.Config, p.Supports, loads, p.Probe, opts...)
		if err != nil {
			return 0, err
		}
		results = append(results, comboResult{res: res})
		return res.MaxMoment.Value, nil
	})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	for i := range results {
		results[i].combo = combinations[i]
	}

	fmt.Println("FACTORED RESPONSES:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  #\tCombination\tVmax (kN)\tMmax (kN-m)\tδmax (mm)\n")
	fmt.Fprintf(w, "  ─\t───────────\t─────────\t───────────\t─────────\n")
	for _, r := range results {
		marker := ""
		if r.combo.ID == governing.ID {
			marker = " ← GOVERNS"
		}
		fmt.Fprintf(w, "  %s\t%s\t%.2f\t%.2f\t%.3f%s\n", r.combo.ID, r.combo.Description,
			r.res.MaxShear.Value, r.res.MaxMoment.Value, r.res.MaxDeflection.Value, marker)
	}
	w.Flush()
	fmt.Println()

	maxVu := 0.0
	for _, r := range results {
		if math.Abs(r.res.MaxShear.Value) > math.Abs(maxVu) {
			maxVu = r.res.MaxShear.Value
		}
	}

	fmt.Println("RESULT:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	fmt.Printf("  Governing Combination: %s (%s)\n", governing.ID, governing.Description)
	fmt.Println()
	fmt.Print(diagram.DrawSummaryBox("FACTORED DESIGN VALUES", []string{
		fmt.Sprintf("Mu = %.2f kN-m", maxMu),
		fmt.Sprintf("Vu = %.2f kN", maxVu),
	}))
	fmt.Println()
}

func printCombinations(combinations []nscp.LoadCombination) {
	fmt.Println("LOAD FACTORS (NSCP 2015 Section 203.3):")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  #\tCombination\tD\tL\tLr\tW\tE\tR\n")
	fmt.Fprintf(w, "  ─\t───────────\t─\t─\t──\t─\t─\t─\n")
	for _, c := range combinations {
		fmt.Fprintf(w, "  %s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n", c.ID, c.Description,
			factorText(c.Dead), factorText(c.Live), factorText(c.Roof),
			factorText(c.Wind), factorText(c.Earthquake), factorText(c.Rain))
	}
	w.Flush()
	fmt.Println()
	fmt.Println("  Use 'gobeam analyze --combo ID' to analyze one combination.")
	fmt.Println()
}

func printLoadsByCategory(loads []beam.Load) {
	totals := map[beam.Category]float64{}
	var order []beam.Category
	for _, l := range loads {
		c := l.Category()
		if _, ok := totals[c]; !ok {
			order = append(order, c)
		}
		totals[c] += beam.Resultant(l)
	}

	fmt.Println("UNFACTORED LOADS (resultant per category):")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, c := range order {
		fmt.Fprintf(w, "  %s:\t%.2f kN\n", c, totals[c])
	}
	w.Flush()
	fmt.Println()
}

func factorText(f float64) string {
	if f == 0 {
		return "-"
	}
	return fmt.Sprintf("%.2g", f)
}
