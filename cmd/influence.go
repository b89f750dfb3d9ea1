package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/alexiusacademia/gobeam/internal/diagram"
	"github.com/alexiusacademia/gobeam/internal/fem"
	"github.com/spf13/cobra"
)

var (
	influenceInput beamFlags

	influenceStations int
	influenceDiagram  bool
	influenceOutput   string
)

var influenceCmd = &cobra.Command{
	Use:   "influence",
	Short: "Influence lines for reactions, shear and moment",
	Long: `Move a 1 kN unit load across the beam and tabulate the support
reactions and the shear and moment at the probe section (--probe).

Ordinates are per kN of downward load. For stations left of the probe the
shear is read on the right face of the section, otherwise on the left face.
Loads given in the beam description are ignored.

` + beamInputHelp + `

Examples:
  # Influence lines at 4 m on a two-span continuous beam
  gobeam influence -L 12 --E 200 --I 20000 -s pinned@0 -s roller@6 -s roller@12 --probe 4

  # Finer sweep with charts and image export
  gobeam influence --file beam.yaml --stations 60 --diagram --output out/ild.png`,
	Run: runInfluence,
}

func init() {
	rootCmd.AddCommand(influenceCmd)

	influenceInput.register(influenceCmd)
	influenceCmd.Flags().IntVar(&influenceStations, "stations", 0, "Number of intervals swept by the unit load (default from settings)")
	influenceCmd.Flags().BoolVarP(&influenceDiagram, "diagram", "d", false, "Show influence line charts")
	influenceCmd.Flags().StringVarP(&influenceOutput, "output", "o", "", "Export influence lines to image files (png, svg, pdf); one file per line")
}

func runInfluence(cmd *cobra.Command, args []string) {
	p, err := influenceInput.problem(cmd)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	cfg, err := settings()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	if influenceStations > 0 {
		cfg.InfluenceStations = influenceStations
	}

	res, err := fem.Analyze(p.Config, p.Supports, nil, p.Probe, analysisOptions(cfg, logger())...)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("     INFLUENCE LINES - UNIT LOAD 1 kN")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	inf := res.Influence
	if inf == nil {
		fmt.Println("  Structure is unstable; influence lines are not available ⚠")
		for _, warn := range res.Warnings {
			fmt.Printf("  ⚠ %s\n", warn)
		}
		fmt.Println()
		return
	}

	fmt.Printf("  Probe section: x = %.3f m\n", res.Probe)
	fmt.Printf("  Stations: %d\n\n", len(inf.Shear))

	ids := make([]string, 0, len(inf.Reactions))
	for id := range inf.Reactions {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	header := []string{"x (m)", "V", "M"}
	for _, id := range ids {
		header = append(header, "R "+id)
	}
	fmt.Fprintln(w, strings.Join(header, "\t")+"\t")
	for i, pt := range inf.Shear {
		cells := []string{stationLabel(pt.X), fmt.Sprintf("%.4f", pt.Value), fmt.Sprintf("%.4f", inf.Moment[i].Value)}
		for _, id := range ids {
			cells = append(cells, fmt.Sprintf("%.4f", inf.Reactions[id][i].Value))
		}
		fmt.Fprintln(w, strings.Join(cells, "\t")+"\t")
	}
	w.Flush()
	fmt.Println()

	if influenceDiagram {
		fmt.Print(diagram.DrawInfluenceDiagrams(inf, res.Probe, diagram.ChartWidth, diagram.ChartHeight))
		fmt.Println()
	}

	if influenceOutput != "" {
		ext := filepath.Ext(influenceOutput)
		base := strings.TrimSuffix(influenceOutput, ext)
		files := map[string][]fem.Point{
			base + "_shear" + ext:  inf.Shear,
			base + "_moment" + ext: inf.Moment,
		}
		titles := map[string]string{
			base + "_shear" + ext:  fmt.Sprintf("ILD Shear at x = %.2f m", res.Probe),
			base + "_moment" + ext: fmt.Sprintf("ILD Moment at x = %.2f m", res.Probe),
		}
		for _, id := range ids {
			name := base + "_R" + id + ext
			files[name] = inf.Reactions[id]
			titles[name] = "ILD Reaction " + id
		}
		for _, name := range sortedNames(files) {
			if err := diagram.ExportInfluenceDiagram(titles[name], files[name], name); err != nil {
				fmt.Printf("Error exporting %s: %v\n", name, err)
				continue
			}
			fmt.Printf("  ✓ Influence line exported to: %s\n", name)
		}
	}
}

func sortedNames(m map[string][]fem.Point) []string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// stationLabel formats an influence line station without trailing zeros
func stationLabel(x float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.3f", x), "0"), ".")
}
