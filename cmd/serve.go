package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/eurobeam/internal/server"
)

var (
	serveAddr  string
	serveRate  float64
	serveBurst int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the analysis over HTTP",
	Long: `Start the HTTP API.

Routes:
  POST /api/beam/analyze       JSON input → {input, result}
  POST /api/beam/report.pdf    JSON input → PDF report
  POST /api/beam/summary.xlsx  JSON input → summary workbook
  GET  /api/locales            supported languages
  GET  /api/limits             accepted input ranges

Missing input fields take the configured defaults. ?lang= selects the
export language. Each client address is rate limited.

Examples:
  eurobeam serve
  eurobeam serve --addr 127.0.0.1:9000 --rate 2 --burst 5`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "Listen address")
	serveCmd.Flags().Float64Var(&serveRate, "rate", 5, "Requests per second per client")
	serveCmd.Flags().IntVar(&serveBurst, "burst", 10, "Burst size per client")
}

func runServe(cmd *cobra.Command, args []string) error {
	// access logs are JSON
	if err := setupLogger(os.Stderr, cfg.LogLevel, true); err != nil {
		return err
	}

	sc := cfg.Server
	if cmd.Flags().Changed("addr") {
		sc.Addr = serveAddr
	}
	if cmd.Flags().Changed("rate") {
		sc.Rate = serveRate
	}
	if cmd.Flags().Changed("burst") {
		sc.Burst = serveBurst
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	srv := server.New(server.Config{
		Defaults: cfg.Input,
		Limits:   cfg.Limits,
		Lang:     cfg.Lang,
		Rate:     sc.Rate,
		Burst:    sc.Burst,
	}, slog.Default())
	return srv.ListenAndServe(ctx, sc.Addr)
}
