package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/eurobeam/internal/beam"
	"github.com/alexiusacademia/eurobeam/internal/diagram"
	"github.com/alexiusacademia/eurobeam/internal/locale"
	"github.com/alexiusacademia/eurobeam/internal/report"
)

var (
	// Beam
	analyzeSpan    float64
	analyzeSupport string
	analyzeUniform float64
	analyzePoint   float64

	// Single load selector
	analyzeLoadType string
	analyzeLoad     float64

	// Section
	analyzeWidth  float64
	analyzeHeight float64
	analyzeCover  float64
	analyzeBar    float64

	// Materials
	analyzeFck float64
	analyzeFyk float64

	// Output
	analyzeLang        string
	analyzeDiagram     bool
	analyzePlot        string
	analyzeSectionPlot string
	analyzePDF         string
	analyzeXLSX        string
	analyzeJSON        bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze and design a singly reinforced beam",
	Long: `Compute the bending moment diagram, governing moment and shear,
required tension steel, bar count, development length, shear resistance
and span/depth check of a rectangular beam.

Unset flags take their values from the config file ([defaults]) or the
built-in defaults (5 m simply supported beam, 10 kN/m, 300x500 mm,
cover 25 mm, Ø16, C30, B500).

Examples:
  # Defaults
  eurobeam analyze

  # Cantilever with a tip load and the ASCII diagrams
  eurobeam analyze --support cantilever --span 3 --uniform 0 --point 20 --diagram

  # Single load selector, German PDF report
  eurobeam analyze --load-type point --load 40 --lang de --pdf bericht.pdf

  # Append the run to a summary workbook
  eurobeam analyze -b 250 --height 450 --bar 20 --xlsx summary.xlsx`,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	// Beam flags
	analyzeCmd.Flags().Float64VarP(&analyzeSpan, "span", "L", 5, "Span length (m)")
	analyzeCmd.Flags().StringVarP(&analyzeSupport, "support", "s", "simply-supported", "Support condition (simply-supported, cantilever)")
	analyzeCmd.Flags().Float64VarP(&analyzeUniform, "uniform", "q", 10, "Uniform load (kN/m)")
	analyzeCmd.Flags().Float64VarP(&analyzePoint, "point", "P", 0, "Point load (kN), at midspan or at the free end")
	analyzeCmd.Flags().StringVar(&analyzeLoadType, "load-type", "", "Apply a single load: uniform, point or combined (zeroes the other component)")
	analyzeCmd.Flags().Float64Var(&analyzeLoad, "load", 0, "Load magnitude for --load-type (kN/m or kN)")

	// Section flags
	analyzeCmd.Flags().Float64VarP(&analyzeWidth, "width", "b", 300, "Beam width (mm)")
	analyzeCmd.Flags().Float64Var(&analyzeHeight, "height", 500, "Beam total depth (mm)")
	analyzeCmd.Flags().Float64VarP(&analyzeCover, "cover", "c", 25, "Concrete cover (mm)")
	analyzeCmd.Flags().Float64Var(&analyzeBar, "bar", 16, "Bar diameter (mm)")

	// Material flags
	analyzeCmd.Flags().Float64Var(&analyzeFck, "fck", 30, "Concrete characteristic strength fck (MPa)")
	analyzeCmd.Flags().Float64Var(&analyzeFyk, "fyk", 500, "Steel characteristic yield strength fyk (MPa)")

	// Output flags
	analyzeCmd.Flags().StringVar(&analyzeLang, "lang", "", "Output language (en, de, fr, it)")
	analyzeCmd.Flags().BoolVar(&analyzeDiagram, "diagram", false, "Show ASCII moment diagram and cross-section")
	analyzeCmd.Flags().StringVar(&analyzePlot, "plot", "", "Export moment diagram to file (png, svg, pdf)")
	analyzeCmd.Flags().StringVar(&analyzeSectionPlot, "section-plot", "", "Export cross-section to file (png, svg, pdf)")
	analyzeCmd.Flags().StringVar(&analyzePDF, "pdf", "", "Write a PDF report")
	analyzeCmd.Flags().StringVar(&analyzeXLSX, "xlsx", "", "Append a summary row to a workbook")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Print input and result as JSON")
}

// inputFromFlags starts from the configured defaults and applies every
// flag the user set
func inputFromFlags(cmd *cobra.Command, in beam.BeamInput) (beam.BeamInput, error) {
	flags := cmd.Flags()
	applyFloatFlag(cmd, "span", &in.SpanM, analyzeSpan)
	applyFloatFlag(cmd, "uniform", &in.UniformLoadKNm, analyzeUniform)
	applyFloatFlag(cmd, "point", &in.PointLoadKN, analyzePoint)
	applyFloatFlag(cmd, "width", &in.WidthMM, analyzeWidth)
	applyFloatFlag(cmd, "height", &in.HeightMM, analyzeHeight)
	applyFloatFlag(cmd, "cover", &in.CoverMM, analyzeCover)
	applyFloatFlag(cmd, "bar", &in.BarDiameterMM, analyzeBar)
	applyFloatFlag(cmd, "fck", &in.ConcreteFckMPa, analyzeFck)
	applyFloatFlag(cmd, "fyk", &in.SteelFykMPa, analyzeFyk)

	if flags.Changed("support") {
		s, err := beam.ParseSupport(analyzeSupport)
		if err != nil {
			return in, err
		}
		in.Support = s
	}

	if flags.Changed("load-type") {
		kind, err := beam.ParseLoadKind(analyzeLoadType)
		if err != nil {
			return in, err
		}
		magnitude := analyzeLoad
		if !flags.Changed("load") {
			// keep the magnitude already set for that component
			magnitude = in.UniformLoadKNm
			if kind == beam.PointLoad {
				magnitude = in.PointLoadKN
			}
		}
		in = in.WithLoad(kind, magnitude)
	}
	return in, nil
}

func applyFloatFlag(cmd *cobra.Command, name string, target *float64, value float64) {
	if cmd.Flags().Changed(name) {
		*target = value
	}
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	in, err := inputFromFlags(cmd, cfg.Input)
	if err != nil {
		return err
	}
	if err := in.ValidateWithin(cfg.Limits); err != nil {
		return err
	}

	lang := cfg.Lang
	if analyzeLang != "" {
		lang = analyzeLang
	}
	l := locale.Lookup(lang)

	res := beam.Analyze(in)
	slog.Debug("analysis complete", "support", in.Support, "span_m", in.SpanM, "moment_max_knm", res.MomentMaxKNm)

	out := cmd.OutOrStdout()
	if analyzeJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(struct {
			Input  beam.BeamInput      `json:"input"`
			Result beam.AnalysisResult `json:"result"`
		}{in, res}); err != nil {
			return err
		}
	} else {
		printAnalysis(out, in, res, l)
	}

	layout := beam.Layout(in, res.BarCount)
	if analyzeDiagram && !analyzeJSON {
		fmt.Fprintln(out, diagram.MomentASCII(res, l, 60, 10))
		fmt.Fprintln(out, diagram.SectionASCII(in, layout, l))
	}

	return exportAnalysis(out, in, res, layout, l)
}

func exportAnalysis(out io.Writer, in beam.BeamInput, res beam.AnalysisResult, layout beam.BarLayout, l locale.Labels) error {
	if analyzePlot != "" {
		p, err := diagram.MomentPlot(res, l)
		if err != nil {
			return err
		}
		if err := diagram.Export(p, analyzePlot, diagram.MomentWidth, diagram.MomentHeight); err != nil {
			return fmt.Errorf("exporting moment diagram: %w", err)
		}
		fmt.Fprintf(out, "  Moment diagram exported to: %s\n", analyzePlot)
	}

	if analyzeSectionPlot != "" {
		p, err := diagram.SectionPlot(in, layout, l)
		if err != nil {
			return err
		}
		if err := diagram.Export(p, analyzeSectionPlot, diagram.SectionWidth(in, diagram.SectionHeight), diagram.SectionHeight); err != nil {
			return fmt.Errorf("exporting cross-section: %w", err)
		}
		fmt.Fprintf(out, "  Cross-section exported to: %s\n", analyzeSectionPlot)
	}

	if analyzePDF != "" {
		if err := writePDFFile(analyzePDF, in, res, l); err != nil {
			return err
		}
		fmt.Fprintf(out, "  PDF report written to: %s\n", analyzePDF)
	}

	if analyzeXLSX != "" {
		if err := report.AppendSummary(analyzeXLSX, in, res, l); err != nil {
			return err
		}
		fmt.Fprintf(out, "  Summary row appended to: %s\n", analyzeXLSX)
	}
	return nil
}

func writePDFFile(path string, in beam.BeamInput, res beam.AnalysisResult, l locale.Labels) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := report.WritePDF(f, in, res, l); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

func printAnalysis(out io.Writer, in beam.BeamInput, res beam.AnalysisResult, l locale.Labels) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintf(out, "     %s\n", l.Title)
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintln(out)

	fmt.Fprintf(out, "%s:\n", l.Inputs)
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  %s:\t%s\n", l.BeamType, l.SupportName(in.Support == beam.Cantilever))
	fmt.Fprintf(w, "  %s:\t%.2f\n", l.Span, in.SpanM)
	fmt.Fprintf(w, "  %s:\t%.2f\n", l.UniformLoad, in.UniformLoadKNm)
	fmt.Fprintf(w, "  %s:\t%.2f\n", l.PointLoad, in.PointLoadKN)
	fmt.Fprintf(w, "  %s:\t%.0f\n", l.Width, in.WidthMM)
	fmt.Fprintf(w, "  %s:\t%.0f\n", l.Height, in.HeightMM)
	fmt.Fprintf(w, "  %s:\t%.0f\n", l.Cover, in.CoverMM)
	fmt.Fprintf(w, "  %s:\t%.0f\n", l.BarDiameter, in.BarDiameterMM)
	fmt.Fprintf(w, "  %s:\t%.0f\n", l.Fck, in.ConcreteFckMPa)
	fmt.Fprintf(w, "  %s:\t%.0f\n", l.Fyk, in.SteelFykMPa)
	w.Flush()
	fmt.Fprintln(out)

	printLoadCases(out, in)

	fmt.Fprintf(out, "%s:\n", l.Results)
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  %s:\t%.2f\n", l.MomentMax, res.MomentMaxKNm)
	fmt.Fprintf(w, "  %s:\t%.2f\n", l.ShearMax, res.ShearMaxKN)
	fmt.Fprintf(w, "  %s:\t%.0f\n", l.EffectiveDepth, res.EffectiveDepthMM)
	fmt.Fprintf(w, "  f_yd / f_cd:\t%.1f / %.1f MPa\n", res.DesignYieldMPa, res.DesignConcreteMPa)
	fmt.Fprintf(w, "  %s:\t%.1f\n", l.SteelRequired, res.RequiredSteelAreaMM2)
	fmt.Fprintf(w, "  %s:\t%d Ø%.0f\n", l.Bars, res.BarCount, in.BarDiameterMM)
	fmt.Fprintf(w, "  %s:\t%.1f\n", l.SteelProvided, res.ProvidedSteelAreaMM2)
	fmt.Fprintf(w, "  %s:\t%.0f\n", l.DevelopmentLength, res.DevelopmentLengthMM)
	fmt.Fprintf(w, "  %s:\t%.2f\n", l.ShearCapacity, res.ShearCapacityKN)
	w.Flush()
	fmt.Fprintln(out)

	fmt.Fprint(out, diagram.SummaryBox(l.Summary, diagram.SummaryLines(in, res, l)))
	fmt.Fprintln(out)
}

// printLoadCases lists the contribution of every active load component
func printLoadCases(out io.Writer, in beam.BeamInput) {
	fmt.Fprintln(out, "LOAD CASES:")
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Case\tMoment(x)\tPeak M [kN-m]\tPeak V [kN]\n")
	fmt.Fprintf(w, "  ────\t─────────\t─────────────\t───────────\n")
	active := 0
	for _, lc := range beam.LoadCases(in.Support) {
		q := in.UniformLoadKNm
		if lc.Kind == beam.PointLoad {
			q = in.PointLoadKN
		}
		if q <= 0 {
			continue
		}
		active++
		peak := math.Abs(lc.Moment(q, in.SpanM, lc.Critical(in.SpanM)))
		fmt.Fprintf(w, "  %s\t%s\t%.2f\t%.2f\n", lc.Kind, lc.Description, peak, lc.PeakShear(q, in.SpanM))
	}
	if active == 0 {
		fmt.Fprintf(w, "  (none)\t\t0.00\t0.00\n")
	}
	w.Flush()
	fmt.Fprintln(out)
}
