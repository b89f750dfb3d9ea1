package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexiusacademia/gobeam/internal/server"
	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the beam analysis HTTP API",
	Long: `Start an HTTP server exposing the analysis as JSON.

Routes:
  GET  /api/health       liveness check
  POST /api/analyze      beam description in, results out
  POST /api/report/pdf   PDF calculation report
  POST /api/report/xlsx  Excel workbook

The request body uses the same structure as a beam file, plus optional
"combination", "project" and "author" fields. Settings such as the listen
address and the per-client rate limit are read from GOBEAM_* variables or
the --env file.

Examples:
  gobeam serve
  gobeam serve --addr :9090`,
	Run: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides GOBEAM_ADDR)")
}

func runServe(cmd *cobra.Command, args []string) {
	cfg, err := settings()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	if serveAddr != "" {
		cfg.Addr = serveAddr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := logger()
	if err := server.New(cfg, log).Run(ctx); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
