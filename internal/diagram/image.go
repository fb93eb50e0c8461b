package diagram

import (
	"bytes"
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/alexiusacademia/eurobeam/internal/beam"
	"github.com/alexiusacademia/eurobeam/internal/locale"
)

var (
	momentColor   = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	momentFill    = color.RGBA{R: 31, G: 119, B: 180, A: 60}
	concreteColor = color.RGBA{R: 200, G: 200, B: 200, A: 120}
	steelColor    = color.RGBA{R: 139, G: 69, B: 19, A: 255}
)

// Default canvas sizes
const (
	MomentWidth   = 8 * vg.Inch
	MomentHeight  = 2.5 * vg.Inch
	SectionHeight = 3 * vg.Inch
)

// MomentPlot builds the bending moment diagram
func MomentPlot(res beam.AnalysisResult, l locale.Labels) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = l.MomentDiagram
	p.X.Label.Text = l.Length
	p.Y.Label.Text = l.Moment
	p.Add(plotter.NewGrid())

	n := len(res.XCoordinates)
	if n == 0 || n != len(res.MomentProfile) {
		return nil, fmt.Errorf("moment profile has %d values for %d stations", len(res.MomentProfile), n)
	}

	pts := make(plotter.XYs, n)
	for i := range pts {
		pts[i] = plotter.XY{X: res.XCoordinates[i], Y: res.MomentProfile[i]}
	}

	// Shaded area between the diagram and the beam axis
	area := make(plotter.XYs, 0, n+2)
	area = append(area, plotter.XY{X: res.XCoordinates[0], Y: 0})
	area = append(area, pts...)
	area = append(area, plotter.XY{X: res.XCoordinates[n-1], Y: 0})
	shade, err := plotter.NewPolygon(area)
	if err != nil {
		return nil, err
	}
	shade.Color = momentFill
	shade.LineStyle.Width = 0
	p.Add(shade)

	axis, err := plotter.NewLine(plotter.XYs{
		{X: res.XCoordinates[0], Y: 0},
		{X: res.XCoordinates[n-1], Y: 0},
	})
	if err != nil {
		return nil, err
	}
	axis.LineStyle.Width = vg.Points(1)
	axis.LineStyle.Color = color.Gray{Y: 128}
	p.Add(axis)

	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	line.LineStyle.Width = vg.Points(2)
	line.LineStyle.Color = momentColor
	p.Add(line)
	p.Legend.Add(l.Moment, line)
	p.Legend.Top = true

	// Label the governing value where it occurs
	peak := 0
	for i, m := range res.MomentProfile {
		if math.Abs(m) > math.Abs(res.MomentProfile[peak]) {
			peak = i
		}
	}
	labels, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    []plotter.XY{pts[peak]},
		Labels: []string{fmt.Sprintf("%.2f", res.MomentMaxKNm)},
	})
	if err != nil {
		return nil, err
	}
	p.Add(labels)

	return p, nil
}

// SectionPlot builds the cross-section drawing with the bar layout.
// Bars are drawn to scale.
func SectionPlot(in beam.BeamInput, layout beam.BarLayout, l locale.Labels) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = l.CrossSection
	p.X.Label.Text = "b [mm]"
	p.Y.Label.Text = "h [mm]"
	p.Add(plotter.NewGrid())

	outline := plotter.XYs{
		{X: 0, Y: 0},
		{X: in.WidthMM, Y: 0},
		{X: in.WidthMM, Y: in.HeightMM},
		{X: 0, Y: in.HeightMM},
	}
	concrete, err := plotter.NewPolygon(outline)
	if err != nil {
		return nil, err
	}
	concrete.Color = concreteColor
	concrete.LineStyle.Width = vg.Points(2)
	concrete.LineStyle.Color = color.Black
	p.Add(concrete)

	for _, b := range layout.Bars {
		bar, err := plotter.NewPolygon(circle(b.X, b.Y, b.Diameter/2, 24))
		if err != nil {
			return nil, err
		}
		bar.Color = steelColor
		bar.LineStyle.Color = steelColor
		p.Add(bar)
	}

	label, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    []plotter.XY{{X: in.WidthMM / 2, Y: in.CoverMM + in.BarDiameterMM + 10}},
		Labels: []string{fmt.Sprintf("%d Ø%.0f", len(layout.Bars), in.BarDiameterMM)},
	})
	if err != nil {
		return nil, err
	}
	p.Add(label)

	p.X.Min, p.X.Max = 0, in.WidthMM
	p.Y.Min, p.Y.Max = 0, in.HeightMM

	return p, nil
}

// SectionWidth returns a canvas width that keeps the section proportions
// for the given canvas height
func SectionWidth(in beam.BeamInput, height vg.Length) vg.Length {
	if in.HeightMM <= 0 {
		return height
	}
	w := height * vg.Length(in.WidthMM/in.HeightMM)
	return max(w, 2*vg.Inch)
}

func circle(cx, cy, r float64, n int) plotter.XYs {
	pts := make(plotter.XYs, n)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = plotter.XY{X: cx + r*math.Cos(a), Y: cy + r*math.Sin(a)}
	}
	return pts
}

// Export saves a plot to an image file, choosing the format from the extension
func Export(p *plot.Plot, filename string, width, height vg.Length) error {
	// Create directory if needed
	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png", ".svg", ".pdf", ".jpg", ".jpeg":
		return p.Save(width, height, filename)
	default:
		return p.Save(width, height, filename+".png")
	}
}

// RenderPNG renders a plot into memory
func RenderPNG(p *plot.Plot, width, height vg.Length) ([]byte, error) {
	wt, err := p.WriterTo(width, height, "png")
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
