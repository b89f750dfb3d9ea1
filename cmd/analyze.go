package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/alexiusacademia/gobeam/internal/beam"
	"github.com/alexiusacademia/gobeam/internal/diagram"
	"github.com/alexiusacademia/gobeam/internal/fem"
	"github.com/alexiusacademia/gobeam/internal/input"
	"github.com/alexiusacademia/gobeam/internal/nscp"
	"github.com/alexiusacademia/gobeam/internal/report"
	"github.com/spf13/cobra"
)

var (
	analyzeInput beamFlags

	// Options
	analyzeCombo   string
	analyzeDiagram bool
	analyzeNodes   bool
	analyzeOutput  string
	analyzeReport  string
	analyzeXLSX    string
	analyzeSave    string
	analyzeProject string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a beam for reactions, shear, moment and deflection",
	Long: `Solve a straight beam by the direct stiffness method and report the
support reactions, shear force, bending moment and deflection.

` + beamInputHelp + `

Examples:
  # Simply supported 10 m steel beam with a midspan point load
  gobeam analyze --length 10 --E 200 --I 10000 \
    --support pinned@0 --support roller@10 --point 10@5

  # Propped cantilever with dead and live UDL, factored with 1.2D + 1.6L
  gobeam analyze -L 8 --E 25 --I 312500 -s fixed@0 -s roller@8 \
    -w 12@0:8 -w 6@0:8/L --combo 2 --diagram

  # From a file, exporting diagrams and reports
  gobeam analyze --file beam.yaml --output out/beam.png --report out/beam.pdf --xlsx out/beam.xlsx`,
	Run: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeInput.register(analyzeCmd)

	analyzeCmd.Flags().StringVarP(&analyzeCombo, "combo", "c", "", "NSCP load combination ID applied by load category (see 'gobeam combos')")
	analyzeCmd.Flags().BoolVarP(&analyzeDiagram, "diagram", "d", false, "Show shear, moment and deflection charts")
	analyzeCmd.Flags().BoolVarP(&analyzeNodes, "nodes", "n", false, "Print results at every node")
	analyzeCmd.Flags().StringVarP(&analyzeOutput, "output", "o", "", "Export diagrams to image file (png, svg, pdf)")
	analyzeCmd.Flags().StringVar(&analyzeReport, "report", "", "Write a PDF calculation report")
	analyzeCmd.Flags().StringVar(&analyzeXLSX, "xlsx", "", "Write results to an Excel workbook")
	analyzeCmd.Flags().StringVar(&analyzeSave, "save", "", "Save the beam description (.yaml or .xlsx)")
	analyzeCmd.Flags().StringVar(&analyzeProject, "project", "", "Project name for reports")
}

func runAnalyze(cmd *cobra.Command, args []string) {
	p, err := analyzeInput.problem(cmd)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	cfg, err := settings()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	log := logger()

	loads := p.Loads
	comboDesc := ""
	if analyzeCombo != "" {
		combo, err := nscp.Find(analyzeCombo, nscp.LoadCombinations)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		loads = combo.Apply(loads)
		comboDesc = combo.Description
	}

	res, err := fem.Analyze(p.Config, p.Supports, loads, p.Probe, analysisOptions(cfg, log)...)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("     BEAM ANALYSIS - DIRECT STIFFNESS METHOD")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	printInputData(p, loads, comboDesc)
	fmt.Print(diagram.DrawBeamSketch(p.Config.Length, p.Supports, loads, diagram.ChartWidth))
	fmt.Println()

	printReactions(res)

	fmt.Print(diagram.DrawSummaryBox("MAXIMUM RESPONSES", []string{
		fmt.Sprintf("Shear       V = %10.3f kN    at x = %.3f m", res.MaxShear.Value, res.MaxShear.Position),
		fmt.Sprintf("Moment      M = %10.3f kN-m  at x = %.3f m", res.MaxMoment.Value, res.MaxMoment.Position),
		fmt.Sprintf("Deflection  δ = %10.3f mm    at x = %.3f m", res.MaxDeflection.Value, res.MaxDeflection.Position),
	}))
	fmt.Println()

	if analyzeNodes {
		printNodalResults(res)
	}

	printStatus(res)

	if analyzeDiagram {
		fmt.Print(diagram.DrawResultDiagrams(res, diagram.ChartWidth, diagram.ChartHeight))
		fmt.Println()
	}

	rep := report.Report{
		Project:     analyzeProject,
		Combination: comboDesc,
		Config:      p.Config,
		Supports:    p.Supports,
		Loads:       loads,
		Results:     res,
	}
	exportFiles(p, res, rep)
}

func exportFiles(p *input.Problem, res *fem.Results, rep report.Report) {
	if analyzeOutput != "" {
		if err := diagram.ExportResultDiagrams(res, analyzeOutput); err != nil {
			fmt.Printf("Error exporting diagrams: %v\n", err)
		} else {
			fmt.Printf("  ✓ Diagrams exported to: %s\n", analyzeOutput)
		}
	}
	if analyzeReport != "" {
		if err := report.SavePDF(analyzeReport, rep); err != nil {
			fmt.Printf("Error writing report: %v\n", err)
		} else {
			fmt.Printf("  ✓ Report written to: %s\n", analyzeReport)
		}
	}
	if analyzeXLSX != "" {
		if err := report.SaveXLSX(analyzeXLSX, rep); err != nil {
			fmt.Printf("Error writing workbook: %v\n", err)
		} else {
			fmt.Printf("  ✓ Results written to: %s\n", analyzeXLSX)
		}
	}
	if analyzeSave != "" {
		if err := saveProblem(analyzeSave, p); err != nil {
			fmt.Printf("Error saving beam: %v\n", err)
		} else {
			fmt.Printf("  ✓ Beam description saved to: %s\n", analyzeSave)
		}
	}
}

// saveProblem writes the unfactored beam description in the format implied by the extension
func saveProblem(path string, p *input.Problem) error {
	format, err := input.FormatOf(path)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	if format == input.XLSX {
		wb, err := input.Workbook(p)
		if err != nil {
			return err
		}
		defer wb.Close()
		return wb.SaveAs(path)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := input.WriteYAML(f, p); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func printInputData(p *input.Problem, loads []beam.Load, comboDesc string) {
	fmt.Println("INPUT DATA:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Span Length (L):\t%.3f m\n", p.Config.Length)
	fmt.Fprintf(w, "  Modulus of Elasticity (E):\t%.2f GPa\n", p.Config.E)
	fmt.Fprintf(w, "  Moment of Inertia (I):\t%.2f cm⁴\n", p.Config.I)
	fmt.Fprintf(w, "  Flexural Rigidity (EI):\t%.4e N·m²\n", p.Config.EI())
	if comboDesc != "" {
		fmt.Fprintf(w, "  Load Combination:\t%s\n", comboDesc)
	}
	w.Flush()
	fmt.Println()

	fmt.Println("SUPPORTS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  ID\tType\tx (m)")
	for _, s := range p.Supports {
		fmt.Fprintf(w, "  %s\t%s\t%.3f\n", s.ID, s.Kind, s.Position)
	}
	w.Flush()
	fmt.Println()

	fmt.Println("LOADS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	if len(loads) == 0 {
		fmt.Println("  (none)")
		fmt.Println()
		return
	}
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  ID\tType\tCat.\tMagnitude\tPosition (m)")
	for _, l := range loads {
		mag, pos := describeLoad(l)
		fmt.Fprintf(w, "  %s\t%s\t%s\t%s\t%s\n", l.Name(), l.Kind(), l.Category(), mag, pos)
	}
	w.Flush()
	fmt.Println()
}

func describeLoad(l beam.Load) (magnitude, position string) {
	switch v := l.(type) {
	case beam.PointLoad:
		return fmt.Sprintf("%.3f kN", v.Magnitude), fmt.Sprintf("%.3f", v.Position)
	case beam.MomentLoad:
		return fmt.Sprintf("%.3f kN-m", v.Magnitude), fmt.Sprintf("%.3f", v.Position)
	case beam.UniformLoad:
		return fmt.Sprintf("%.3f kN/m", v.Magnitude), fmt.Sprintf("%.3f → %.3f", v.Start, v.End)
	case beam.VaryingLoad:
		return fmt.Sprintf("%.3f → %.3f kN/m", v.StartMagnitude, v.EndMagnitude), fmt.Sprintf("%.3f → %.3f", v.Start, v.End)
	}
	return "", ""
}

func printReactions(res *fem.Results) {
	fmt.Println("REACTIONS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  Label\tSupport\tType\tx (m)\tForce (kN)\tMoment (kN-m)")
	var total float64
	for _, r := range res.Reactions {
		moment := "-"
		if r.Kind == beam.Fixed {
			moment = fmt.Sprintf("%.3f", r.Moment)
		}
		fmt.Fprintf(w, "  %s\t%s\t%s\t%.3f\t%.3f\t%s\n", r.Label, r.ID, r.Type, r.Position, r.Force, moment)
		total += r.Force
	}
	fmt.Fprintf(w, "  \t\t\tΣ\t%.3f\t\n", total)
	w.Flush()
	fmt.Println()
}

func printNodalResults(res *fem.Results) {
	fmt.Println("NODAL RESULTS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "x (m)\tV⁻ (kN)\tV⁺ (kN)\tM⁻ (kN-m)\tM⁺ (kN-m)\tδ (mm)\tθ (rad)\t")
	for i, x := range res.Nodes {
		fmt.Fprintf(w, "%.3f\t%.3f\t%.3f\t%.3f\t%.3f\t%.4f\t%.6f\t\n",
			x, res.ShearLeft[i], res.Shear[i], res.MomentLeft[i], res.Moment[i], res.Deflection[i], res.Rotation[i])
	}
	w.Flush()
	fmt.Println()
}

func printStatus(res *fem.Results) {
	fmt.Println("STATUS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	switch {
	case !res.Stable:
		fmt.Println("  Structure: UNSTABLE (insufficient reactions) ⚠")
	case res.Determinacy == 0:
		fmt.Println("  Structure: Statically determinate ✓")
	default:
		fmt.Printf("  Structure: Statically indeterminate to degree %d ✓\n", res.Determinacy)
	}
	for _, warn := range res.Warnings {
		fmt.Printf("  ⚠ %s\n", warn)
	}
	fmt.Printf("  Mesh: %d nodes\n", len(res.Nodes))
	fmt.Println()
}
