package cmd

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/alexiusacademia/eurobeam/internal/beam"
	"github.com/alexiusacademia/eurobeam/internal/locale"
	"github.com/alexiusacademia/eurobeam/internal/report"
)

var (
	batchFile    string
	batchOutput  string
	batchWorkers int
	batchLang    string
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Analyze every parameter set of a spreadsheet",
	Long: `Read beam parameter sets from the first sheet of a workbook and
analyze them in parallel. The first row is a header; columns are:

  support, span_m, uniform_load_knm, point_load_kn, width_mm, height_mm,
  cover_mm, bar_diameter_mm, concrete_fck_mpa, steel_fyk_mpa

Blank cells take the configured defaults. Rows that fail to parse or
validate are reported and left out of the output workbook; the command
then exits non-zero.

Examples:
  eurobeam batch --file beams.xlsx --output summary.xlsx
  eurobeam batch -f beams.xlsx -o summary.xlsx --workers 4 --lang it`,
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVarP(&batchFile, "file", "f", "", "Input workbook [required]")
	batchCmd.Flags().StringVarP(&batchOutput, "output", "o", "", "Summary workbook to write")
	batchCmd.Flags().IntVarP(&batchWorkers, "workers", "w", runtime.NumCPU(), "Number of parallel workers")
	batchCmd.Flags().StringVar(&batchLang, "lang", "", "Summary language (en, de, fr, it)")

	batchCmd.MarkFlagRequired("file")
}

// batchResult is the outcome of one imported row
type batchResult struct {
	Row    int
	Input  beam.BeamInput
	Result beam.AnalysisResult
	Err    error
}

// analyzeRows validates and analyzes every row with at most workers
// goroutines. Results keep the input order.
func analyzeRows(rows []report.InputRow, limits beam.Limits, workers int) []batchResult {
	results := make([]batchResult, len(rows))
	var g errgroup.Group
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, row := range rows {
		i, row := i, row
		g.Go(func() error {
			r := batchResult{Row: row.Row, Input: row.Input, Err: row.Err}
			if r.Err == nil {
				r.Err = row.Input.ValidateWithin(limits)
			}
			if r.Err == nil {
				r.Result = beam.Analyze(row.Input)
			}
			results[i] = r
			return nil
		})
	}
	// row errors are kept per result
	_ = g.Wait()
	return results
}

func runBatch(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(batchFile)
	if err != nil {
		return fmt.Errorf("reading %s: %w", batchFile, err)
	}
	rows, err := report.ReadInputsWith(bytes.NewReader(data), cfg.Input)
	if err != nil {
		return fmt.Errorf("%s: %w", batchFile, err)
	}

	lang := cfg.Lang
	if batchLang != "" {
		lang = batchLang
	}
	l := locale.Lookup(lang)

	slog.Info("batch started", "file", batchFile, "rows", len(rows), "workers", batchWorkers)
	results := analyzeRows(rows, cfg.Limits, batchWorkers)

	out := cmd.OutOrStdout()
	failed := printBatch(out, results, l)

	if batchOutput != "" {
		var summary [][]any
		for _, r := range results {
			if r.Err == nil {
				summary = append(summary, report.SummaryRow(r.Input, r.Result, l))
			}
		}
		if err := writeSummaryFile(batchOutput, summary, l); err != nil {
			return err
		}
		fmt.Fprintf(out, "\n  Summary written to: %s\n", batchOutput)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d rows failed", failed, len(results))
	}
	return nil
}

func writeSummaryFile(path string, rows [][]any, l locale.Labels) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := report.WriteSummary(f, rows, l); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// printBatch writes one line per row and returns the number of failures
func printBatch(out io.Writer, results []batchResult, l locale.Labels) int {
	failed := 0
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Row\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
		l.BeamType, "L [m]", l.MomentMax, l.SteelRequired, l.Bars, l.ShearCheck, l.DeflectionCheck)
	for _, r := range results {
		if r.Err != nil {
			failed++
			slog.Warn("row rejected", "row", r.Row, "error", r.Err)
			fmt.Fprintf(w, "  %d\t✗ %s\n", r.Row, oneLine(r.Err))
			continue
		}
		fmt.Fprintf(w, "  %d\t%s\t%.2f\t%.2f\t%.1f\t%d Ø%.0f\t%s\t%s\n",
			r.Row,
			l.SupportName(r.Input.Support == beam.Cantilever),
			r.Input.SpanM,
			r.Result.MomentMaxKNm,
			r.Result.RequiredSteelAreaMM2,
			r.Result.BarCount, r.Input.BarDiameterMM,
			l.CheckMark(r.Result.ShearOK),
			l.CheckMark(r.Result.DeflectionOK),
		)
	}
	w.Flush()
	return failed
}

// oneLine flattens a joined error for table output
func oneLine(err error) string {
	return strings.ReplaceAll(err.Error(), "\n", "; ")
}
