package diagram

import (
	"fmt"
	"math"
	"strings"

	"github.com/guptarohit/asciigraph"
	"github.com/mattn/go-runewidth"

	"github.com/alexiusacademia/eurobeam/internal/beam"
	"github.com/alexiusacademia/eurobeam/internal/locale"
)

// MomentASCII draws the bending moment diagram as a terminal line chart.
// width and height are in character cells; zero selects a default.
func MomentASCII(res beam.AnalysisResult, l locale.Labels, width, height int) string {
	if len(res.MomentProfile) == 0 {
		return ""
	}
	if width <= 0 {
		width = 60
	}
	if height <= 0 {
		height = 10
	}
	span := 0.0
	if n := len(res.XCoordinates); n > 0 {
		span = res.XCoordinates[n-1]
	}

	opts := []asciigraph.Option{
		asciigraph.Width(width),
		asciigraph.Height(height),
		asciigraph.Precision(1),
		asciigraph.Caption(fmt.Sprintf("%s, %s 0 … %.2f m", l.MomentDiagram, l.Moment, span)),
	}
	// a flat profile still needs a visible axis
	if res.MomentMaxKNm == 0 {
		opts = append(opts, asciigraph.LowerBound(-1), asciigraph.UpperBound(1))
	}
	return asciigraph.Plot(res.MomentProfile, opts...)
}

// SectionASCII draws the cross-section outline with the tension bars
func SectionASCII(in beam.BeamInput, layout beam.BarLayout, l locale.Labels) string {
	var sb strings.Builder

	// Scale factors for ASCII drawing; terminal cells are about twice as tall as wide
	widthChars := 30
	heightChars := int(math.Round(float64(widthChars) * in.HeightMM / in.WidthMM / 2))
	heightChars = min(max(heightChars, 6), 24)

	barRow := heightChars - 1 - int(math.Round(in.CoverMM/in.HeightMM*float64(heightChars)))
	barRow = min(max(barRow, 1), heightChars-1)

	row := make([]rune, widthChars)
	for i := range row {
		row[i] = ' '
	}
	for _, b := range layout.Bars {
		col := int(b.X / in.WidthMM * float64(widthChars))
		col = min(max(col, 0), widthChars-1)
		row[col] = '●'
	}

	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  %s\n", strings.ToUpper(l.CrossSection)))
	sb.WriteString(fmt.Sprintf("  %s\n", strings.Repeat("─", runewidth.StringWidth(l.CrossSection))))
	sb.WriteString(fmt.Sprintf("  ┌%s┐\n", strings.Repeat("─", widthChars)))
	for i := 1; i < heightChars; i++ {
		fill := strings.Repeat(" ", widthChars)
		if i == barRow {
			fill = string(row)
		}
		sb.WriteString(fmt.Sprintf("  │%s│", fill))
		if i == heightChars/2 {
			sb.WriteString(fmt.Sprintf("  h = %.0f mm", in.HeightMM))
		}
		if i == barRow {
			sb.WriteString(fmt.Sprintf("  %d Ø%.0f", len(layout.Bars), in.BarDiameterMM))
		}
		sb.WriteString("\n")
	}
	sb.WriteString(fmt.Sprintf("  └%s┘\n", strings.Repeat("─", widthChars)))
	sb.WriteString(fmt.Sprintf("   b = %.0f mm, c = %.0f mm", in.WidthMM, in.CoverMM))
	if layout.Spacing > 0 {
		sb.WriteString(fmt.Sprintf(", s = %.0f mm (clear %.0f mm)", layout.Spacing, layout.ClearSpacing()))
	}
	sb.WriteString("\n")

	return sb.String()
}

// SummaryLines formats the design summary rows shown by every front end
func SummaryLines(in beam.BeamInput, res beam.AnalysisResult, l locale.Labels) []string {
	return []string{
		fmt.Sprintf("%s = %.2f", l.MomentMax, res.MomentMaxKNm),
		fmt.Sprintf("%s = %.2f", l.ShearMax, res.ShearMaxKN),
		fmt.Sprintf("%s = %.1f → Ø%.0f × %d", l.SteelRequired, res.RequiredSteelAreaMM2, in.BarDiameterMM, res.BarCount),
		fmt.Sprintf("%s = %.1f", l.SteelProvided, res.ProvidedSteelAreaMM2),
		fmt.Sprintf("%s = %.0f", l.DevelopmentLength, res.DevelopmentLengthMM),
		fmt.Sprintf("%s: %s (%.2f / %.2f kN)", l.ShearCheck, l.CheckMark(res.ShearOK), res.ShearMaxKN, res.ShearCapacityKN),
		fmt.Sprintf("%s: %s (L/h = %.1f ≤ %.0f)", l.DeflectionCheck, l.CheckMark(res.DeflectionOK), res.SpanDepthRatio, res.SpanDepthLimit),
	}
}

// SummaryBox creates a summary box for results
func SummaryBox(title string, lines []string) string {
	var sb strings.Builder

	maxLen := runewidth.StringWidth(title)
	for _, line := range lines {
		maxLen = max(maxLen, runewidth.StringWidth(line))
	}
	maxLen += 4

	border := strings.Repeat("═", maxLen)
	sb.WriteString(fmt.Sprintf("  ╔%s╗\n", border))
	sb.WriteString(fmt.Sprintf("  ║  %s  ║\n", pad(title, maxLen-4)))
	sb.WriteString(fmt.Sprintf("  ╠%s╣\n", border))
	for _, line := range lines {
		sb.WriteString(fmt.Sprintf("  ║  %s  ║\n", pad(line, maxLen-4)))
	}
	sb.WriteString(fmt.Sprintf("  ╚%s╝\n", border))

	return sb.String()
}

func pad(s string, width int) string {
	return runewidth.FillRight(s, width)
}
