package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/alexiusacademia/eurobeam/internal/tui"
)

var (
	interactiveLang string
	interactiveDark bool
	interactivePDF  string
	interactiveXLSX string
)

var interactiveCmd = &cobra.Command{
	Use:     "interactive",
	Aliases: []string{"ui"},
	Short:   "Open the interactive design form",
	Long: `Edit the beam parameters in a terminal form. Every change reruns
the analysis and redraws the summary, the moment diagram and the
cross-section.

Keys:
  tab / ↑ ↓     move between fields
  ← →           cycle support, bar diameter and material selectors
  ctrl+t        toggle dark mode
  ctrl+l        cycle language
  ctrl+p        write the PDF report
  ctrl+s        append a row to the summary workbook
  esc / ctrl+c  quit`,
	RunE: runInteractive,
}

func init() {
	rootCmd.AddCommand(interactiveCmd)

	interactiveCmd.Flags().StringVar(&interactiveLang, "lang", "", "Form language (en, de, fr, it)")
	interactiveCmd.Flags().BoolVar(&interactiveDark, "dark", false, "Start in dark mode")
	interactiveCmd.Flags().StringVar(&interactivePDF, "pdf", "beam_report.pdf", "PDF report path for ctrl+p")
	interactiveCmd.Flags().StringVar(&interactiveXLSX, "xlsx", "beam_summary.xlsx", "Summary workbook path for ctrl+s")
}

func runInteractive(cmd *cobra.Command, args []string) error {
	opts := tui.Options{
		Input:    cfg.Input,
		Limits:   cfg.Limits,
		Lang:     cfg.Lang,
		Dark:     cfg.Dark,
		PDFPath:  interactivePDF,
		XLSXPath: interactiveXLSX,
	}
	if interactiveLang != "" {
		opts.Lang = interactiveLang
	}
	if cmd.Flags().Changed("dark") {
		opts.Dark = interactiveDark
	}

	program := tea.NewProgram(tui.NewModel(opts), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}
