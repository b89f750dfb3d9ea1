package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alexiusacademia/gobeam/internal/config"
	"github.com/alexiusacademia/gobeam/internal/version"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	envFile string
)

var rootCmd = &cobra.Command{
	Use:   "gobeam",
	Short: "Beam Analysis Tool",
	Long: `gobeam - Go Beam Analyzer

A CLI tool for the static analysis of straight beams
using the direct stiffness method (Euler-Bernoulli elements).

This tool helps structural engineers compute:
  - Support reactions and degree of indeterminacy
  - Shear force, bending moment and deflection along the span
  - Influence lines for reactions, shear and moment
  - Factored responses using NSCP 2015 load combinations
  - Second moment of area of beam sections

Units: m, kN, kN/m, kN-m, GPa, cm⁴. Downward loads and clockwise
moments are positive; sagging moment is positive.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println()
		fmt.Println("  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Println("  ║                                                           ║")
		fmt.Printf("  ║   gobeam v%-48s║\n", version.Version)
		fmt.Println("  ║   Go Beam Analyzer - Direct Stiffness Method              ║")
		fmt.Printf("  ║   %-56s║\n", fmt.Sprintf("%s ©  %s", version.Author, version.Year))
		fmt.Println("  ║                                                           ║")
		fmt.Println("  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Println()
		fmt.Println("  A CLI tool for the static analysis of beams with any")
		fmt.Println("  combination of pinned, roller and fixed supports and hinges.")
		fmt.Println()
		fmt.Println("  Features:")
		fmt.Println("    • Point, moment, uniform and linearly varying loads")
		fmt.Println("    • Shear, moment and deflection diagrams (terminal, PNG, SVG, PDF)")
		fmt.Println("    • Influence lines for reactions, shear and moment")
		fmt.Println("    • NSCP 2015 load combinations")
		fmt.Println("    • PDF and Excel reports, HTTP API")
		fmt.Println()
		fmt.Println("  Use 'gobeam --help' to see available commands.")
		fmt.Println()
		fmt.Println("  ─────────────────────────────────────────────────────────────")
		fmt.Printf("  Copyright © %s %s. All rights reserved.\n", version.Year, version.Author)
		fmt.Println()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log solver diagnostics to stderr")
	rootCmd.PersistentFlags().StringVar(&envFile, "env", ".env", "Settings file read before the environment")
}

// logger writes warnings (debug with --verbose) to stderr
func logger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// settings loads GOBEAM_* configuration
func settings() (config.Config, error) {
	return config.Load(envFile)
}
