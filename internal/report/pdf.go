// Package report exports analysis runs as PDF documents and spreadsheets.
package report

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/phpdave11/gofpdf"

	"github.com/alexiusacademia/eurobeam/internal/beam"
	"github.com/alexiusacademia/eurobeam/internal/diagram"
	"github.com/alexiusacademia/eurobeam/internal/locale"
)

// Now is the clock used for report dates
var Now = time.Now

// WritePDF renders the design report for one run
func WritePDF(w io.Writer, in beam.BeamInput, res beam.AnalysisResult, l locale.Labels) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(tr(l.Title), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr(l.Title), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 5, tr(fmt.Sprintf("%s: %s", l.Date, Now().Format("2006-01-02"))), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	section := func(title string) {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 8, tr(title), "B", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
	}
	row := func(label, value string) {
		pdf.CellFormat(90, 6, tr(label), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 6, tr(value), "", 1, "L", false, 0, "")
	}

	section(l.Inputs)
	row(l.Span, fmt.Sprintf("%.2f", in.SpanM))
	row(l.BeamType, l.SupportName(in.Support == beam.Cantilever))
	row(l.UniformLoad, fmt.Sprintf("%.2f", in.UniformLoadKNm))
	row(l.PointLoad, fmt.Sprintf("%.2f", in.PointLoadKN))
	row(l.Width, fmt.Sprintf("%.0f", in.WidthMM))
	row(l.Height, fmt.Sprintf("%.0f", in.HeightMM))
	row(l.Cover, fmt.Sprintf("%.0f", in.CoverMM))
	row(l.BarDiameter, fmt.Sprintf("%.0f", in.BarDiameterMM))
	row(l.Fck, fmt.Sprintf("%.0f", in.ConcreteFckMPa))
	row(l.Fyk, fmt.Sprintf("%.0f", in.SteelFykMPa))
	pdf.Ln(3)

	section(l.Summary)
	row(l.MomentMax, fmt.Sprintf("%.2f", res.MomentMaxKNm))
	row(l.ShearMax, fmt.Sprintf("%.2f", res.ShearMaxKN))
	row(l.SteelRequired, fmt.Sprintf("%.1f (%.2f cm²)", res.RequiredSteelAreaMM2, res.RequiredSteelAreaMM2/100))
	row(l.Bars, fmt.Sprintf("Ø%.0f × %d", in.BarDiameterMM, res.BarCount))
	row(l.SteelProvided, fmt.Sprintf("%.1f", res.ProvidedSteelAreaMM2))
	row(l.DevelopmentLength, fmt.Sprintf("%.0f", res.DevelopmentLengthMM))
	row(l.EffectiveDepth, fmt.Sprintf("%.0f", res.EffectiveDepthMM))
	row(l.ShearCapacity, fmt.Sprintf("%.2f", res.ShearCapacityKN))
	row(l.ShearCheck, okText(l, res.ShearOK))
	row(l.SpanDepth, fmt.Sprintf("%.1f / %.0f", res.SpanDepthRatio, res.SpanDepthLimit))
	row(l.DeflectionCheck, okText(l, res.DeflectionOK))
	pdf.Ln(3)

	if err := addDiagrams(pdf, in, res, l); err != nil {
		return err
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.MultiCell(0, 4, tr(l.Footer), "", "C", false)

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("building pdf: %w", err)
	}
	return pdf.Output(w)
}

// okText avoids the check glyphs, which the core fonts cannot encode
func okText(l locale.Labels, ok bool) string {
	if ok {
		return l.OK
	}
	return l.NotOK
}

func addDiagrams(pdf *gofpdf.Fpdf, in beam.BeamInput, res beam.AnalysisResult, l locale.Labels) error {
	moment, err := diagram.MomentPlot(res, l)
	if err != nil {
		return err
	}
	momentPNG, err := diagram.RenderPNG(moment, diagram.MomentWidth, diagram.MomentHeight)
	if err != nil {
		return fmt.Errorf("rendering moment diagram: %w", err)
	}

	layout := beam.Layout(in, res.BarCount)
	section, err := diagram.SectionPlot(in, layout, l)
	if err != nil {
		return err
	}
	sectionW := diagram.SectionWidth(in, diagram.SectionHeight)
	sectionPNG, err := diagram.RenderPNG(section, sectionW, diagram.SectionHeight)
	if err != nil {
		return fmt.Errorf("rendering cross-section: %w", err)
	}

	opts := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
	pdf.RegisterImageOptionsReader("moment", opts, bytes.NewReader(momentPNG))
	pdf.RegisterImageOptionsReader("section", opts, bytes.NewReader(sectionPNG))

	pageW, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	usable := pageW - left - right

	// 8in x 2.5in keeps its aspect ratio across the usable width
	pdf.ImageOptions("moment", left, pdf.GetY(), usable, usable*2.5/8, true, opts, 0, "")
	pdf.Ln(2)

	h := 55.0
	w := h * float64(sectionW/diagram.SectionHeight)
	pdf.ImageOptions("section", left+(usable-w)/2, pdf.GetY(), w, h, true, opts, 0, "")
	pdf.Ln(4)

	return pdf.Error()
}
