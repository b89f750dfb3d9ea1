package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/alexiusacademia/gobeam/internal/diagram"
	"github.com/alexiusacademia/gobeam/internal/nscp"
	"github.com/alexiusacademia/gobeam/internal/section"
	"github.com/spf13/cobra"
)

var (
	sectionFile   string
	sectionWidth  float64
	sectionHeight float64
	sectionFc     float64
)

var sectionCmd = &cobra.Command{
	Use:   "section",
	Short: "Second moment of area of a beam section",
	Long: `Compute the area, centroid and second moment of area of a beam
cross-section. The strong-axis moment of inertia is printed in cm⁴, ready
for the --I flag of 'gobeam analyze'.

Rectangular sections are given with --width and --height. Any other simple
polygon (T-beams, L-beams, ...) is defined in a JSON file of vertices in mm.
With --fc the modulus of elasticity Ec = 4700√f'c and the cracking moment
are reported for normalweight concrete.

Example JSON file structure:
{
  "name": "T-Beam Section",
  "vertices": [
    {"x": 200, "y": 0},
    {"x": 400, "y": 0},
    {"x": 400, "y": 400},
    {"x": 600, "y": 400},
    {"x": 600, "y": 500},
    {"x": 0, "y": 500},
    {"x": 0, "y": 400},
    {"x": 200, "y": 400}
  ]
}

Examples:
  gobeam section --width 300 --height 500 --fc 28
  gobeam section --file tbeam.json`,
	Run: runSection,
}

func init() {
	rootCmd.AddCommand(sectionCmd)

	sectionCmd.Flags().StringVarP(&sectionFile, "file", "f", "", "Section definition file (JSON)")
	sectionCmd.Flags().Float64VarP(&sectionWidth, "width", "b", 0, "Rectangular section width (mm)")
	sectionCmd.Flags().Float64Var(&sectionHeight, "height", 0, "Rectangular section depth (mm)")
	sectionCmd.Flags().Float64Var(&sectionFc, "fc", 0, "Concrete compressive strength f'c (MPa), optional")
}

func runSection(cmd *cobra.Command, args []string) {
	var sec *section.Section
	if sectionFile != "" {
		var err error
		sec, err = section.LoadFromFile(sectionFile)
		if err != nil {
			fmt.Printf("Error loading section: %v\n", err)
			return
		}
	} else {
		if sectionWidth <= 0 || sectionHeight <= 0 {
			fmt.Println("Error: provide --file or a positive --width and --height")
			return
		}
		sec = section.Rectangle(sectionWidth, sectionHeight)
	}
	props := sec.CalculateProperties()

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("     SECTION PROPERTIES")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	fmt.Println("GEOMETRY:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if sec.Name != "" {
		fmt.Fprintf(w, "  Section:\t%s\n", sec.Name)
	}
	fmt.Fprintf(w, "  Vertices:\t%d\n", len(sec.Vertices))
	fmt.Fprintf(w, "  Overall Width:\t%.1f mm\n", props.Width)
	fmt.Fprintf(w, "  Overall Height:\t%.1f mm\n", props.Height)
	fmt.Fprintf(w, "  Width at Top Fibre:\t%.1f mm\n", sec.WidthAtDepth(props.Height*0.01))
	fmt.Fprintf(w, "  Width at Bottom Fibre:\t%.1f mm\n", sec.WidthAtDepth(props.Height*0.99))
	fmt.Fprintf(w, "  Gross Area (Ag):\t%.1f mm²\n", props.Area)
	fmt.Fprintf(w, "  Centroid (x̄, ȳ):\t(%.2f, %.2f) mm\n", props.CentroidX, props.CentroidY)
	fmt.Fprintf(w, "  Top Fibre (yt,top):\t%.2f mm\n", props.YTop)
	fmt.Fprintf(w, "  Bottom Fibre (yt,bot):\t%.2f mm\n", props.YBottom)
	w.Flush()
	fmt.Println()

	fmt.Println("SECOND MOMENT OF AREA:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Ix (strong axis):\t%.4e mm⁴\t= %.2f cm⁴\n", props.Ix, props.IxCM4())
	fmt.Fprintf(w, "  Iy (weak axis):\t%.4e mm⁴\t= %.2f cm⁴\n", props.Iy, props.Iy/section.MM4PerCM4)
	fmt.Fprintf(w, "  Section Modulus (Sb):\t%.4e mm³\t\n", props.SectionModulus())
	w.Flush()
	fmt.Println()

	lines := []string{fmt.Sprintf("I = %.2f cm⁴", props.IxCM4())}
	if sectionFc > 0 {
		ec := nscp.Ec(sectionFc)
		mcr := nscp.CrackingMoment(sectionFc, props.Ix, props.YBottom)

		fmt.Println("CONCRETE (NSCP 2015):")
		fmt.Println("───────────────────────────────────────────────────────────────")
		w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "  f'c:\t%.1f MPa\n", sectionFc)
		fmt.Fprintf(w, "  Ec = 4700√f'c:\t%.0f MPa\n", ec)
		fmt.Fprintf(w, "  fr = 0.62√f'c:\t%.3f MPa\n", nscp.ModulusOfRupture(sectionFc, 1.0))
		fmt.Fprintf(w, "  Mcr = fr·Ig/yt:\t%.2f kN-m\n", mcr)
		w.Flush()
		fmt.Println()
		lines = append(lines, fmt.Sprintf("E = %.2f GPa", nscp.ToGPa(ec)))
	}

	fmt.Print(diagram.DrawSummaryBox("BEAM INPUT", lines))
	fmt.Println()
	if sectionFc > 0 {
		fmt.Printf("  Use: gobeam analyze --E %.2f --I %.2f ...\n", nscp.ToGPa(nscp.Ec(sectionFc)), props.IxCM4())
	} else {
		fmt.Printf("  Use: gobeam analyze --I %.2f ...\n", props.IxCM4())
	}
	fmt.Println()
}
