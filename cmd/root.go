package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/alexiusacademia/eurobeam/internal/config"
	"github.com/alexiusacademia/eurobeam/internal/version"
)

var (
	configPath string
	logLevel   string

	// cfg is resolved before any subcommand runs
	cfg = config.Default()
)

// skipConfig marks commands that must work with a broken config file
const skipConfig = "skip-config"

var rootCmd = &cobra.Command{
	Use:   "eurobeam",
	Short: "Reinforced Concrete Beam Design Tool (Eurocode 2)",
	Long: `eurobeam - Reinforced Concrete Beam Designer

A CLI tool for the preliminary design of singly reinforced
rectangular concrete beams following simplified Eurocode 2 rules.

This tool helps structural engineers perform:
  - Bending moment and shear analysis (simply supported or cantilever)
  - Tension reinforcement sizing and bar selection
  - Development length calculation
  - Concrete shear resistance check (V_Rd,c)
  - Span/depth deflection check

Reports can be exported as PDF, spreadsheets and diagrams.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env is optional
		_ = godotenv.Load()

		var overrides []func(*config.Config)
		if cmd.Flags().Changed("log-level") {
			overrides = append(overrides, func(c *config.Config) { c.LogLevel = logLevel })
		}

		if cmd.Annotations[skipConfig] == "" {
			loaded, err := config.Load(configPath, overrides...)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			cfg = loaded
		} else {
			for _, o := range overrides {
				o(&cfg)
			}
		}
		return setupLogger(os.Stderr, cfg.LogLevel, false)
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println()
		fmt.Println("  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Println("  ║                                                           ║")
		fmt.Printf("  ║   eurobeam v%-46s║\n", version.Version)
		fmt.Println("  ║   Reinforced Concrete Beam Designer (Eurocode 2)          ║")
		fmt.Println("  ║                                                           ║")
		fmt.Println("  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Println()
		fmt.Println("  Features:")
		fmt.Println("    • Moment and shear for uniform and point loads")
		fmt.Println("    • Required steel area, bar count and development length")
		fmt.Println("    • Shear resistance and span/depth checks")
		fmt.Println("    • PDF reports, spreadsheet summaries and batch runs")
		fmt.Println("    • Interactive form and HTTP API")
		fmt.Println()
		fmt.Println("  Use 'eurobeam --help' to see available commands.")
		fmt.Println()
		fmt.Println("  ─────────────────────────────────────────────────────────────")
		fmt.Printf("  Copyright © %s %s. All rights reserved.\n", version.Year, version.Author)
		fmt.Println()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SilenceErrors = true

	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultConfigPath(), "Path to the TOML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
}

// setupLogger installs the default slog logger
func setupLogger(w io.Writer, level string, json bool) error {
	lvl, err := config.ParseLogLevel(level)
	if err != nil {
		return err
	}
	opts := &slog.HandlerOptions{Level: lvl}
	var h slog.Handler = slog.NewTextHandler(w, opts)
	if json {
		h = slog.NewJSONHandler(w, opts)
	}
	slog.SetDefault(slog.New(h))
	return nil
}
