package report

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/alexiusacademia/eurobeam/internal/beam"
	"github.com/alexiusacademia/eurobeam/internal/locale"
)

// SheetName is the sheet written by WriteSummary and AppendSummary
const SheetName = "Summary"

// ErrEmptySheet is returned when an import sheet has no data rows
var ErrEmptySheet = errors.New("spreadsheet has no data rows")

// InputColumns is the column order expected by ReadInputs
var InputColumns = []string{
	"support", "span_m", "uniform_load_knm", "point_load_kn", "width_mm",
	"height_mm", "cover_mm", "bar_diameter_mm", "concrete_fck_mpa", "steel_fyk_mpa",
}

// SummaryHeader returns the localized column titles of a summary sheet
func SummaryHeader(l locale.Labels) []string {
	cm2 := func(s string) string { return strings.Replace(s, "mm²", "cm²", 1) }
	return []string{
		l.Span, l.BeamType, l.UniformLoad, l.PointLoad,
		l.Width, l.Height, l.Cover, l.Fck, l.Fyk,
		l.MomentMax, l.ShearMax, cm2(l.SteelRequired), l.BarDiameter, l.Bars,
		cm2(l.SteelProvided), l.DevelopmentLength, l.ShearCapacity,
		l.ShearCheck, l.DeflectionCheck,
	}
}

// SummaryRow returns one summary line for a run. Steel areas are in cm²,
// check outcomes are localized Yes/No.
func SummaryRow(in beam.BeamInput, res beam.AnalysisResult, l locale.Labels) []any {
	return []any{
		in.SpanM, in.Support.String(), in.UniformLoadKNm, in.PointLoadKN,
		in.WidthMM, in.HeightMM, in.CoverMM, in.ConcreteFckMPa, in.SteelFykMPa,
		round2(res.MomentMaxKNm),
		round2(res.ShearMaxKN),
		round2(res.RequiredSteelAreaMM2 / 100),
		in.BarDiameterMM,
		res.BarCount,
		round2(res.ProvidedSteelAreaMM2 / 100),
		round2(res.DevelopmentLengthMM),
		round2(res.ShearCapacityKN),
		l.YesNo(res.ShearOK),
		l.YesNo(res.DeflectionOK),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// WriteSummary writes a workbook with a header and one line per row
func WriteSummary(w io.Writer, rows [][]any, l locale.Labels) error {
	f, err := newSummaryFile(l)
	if err != nil {
		return err
	}
	defer f.Close()

	for i, row := range rows {
		if err := setRow(f, SheetName, i+2, row); err != nil {
			return err
		}
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// AppendSummary adds one line to the workbook at path, creating it when missing
func AppendSummary(path string, in beam.BeamInput, res beam.AnalysisResult, l locale.Labels) error {
	var (
		f     *excelize.File
		err   error
		sheet = SheetName
		next  = 2
	)
	if _, statErr := os.Stat(path); statErr == nil {
		f, err = excelize.OpenFile(path)
		if err != nil {
			return fmt.Errorf("opening %s: %w", path, err)
		}
		sheet = f.GetSheetName(0)
		rows, err := f.GetRows(sheet)
		if err != nil {
			f.Close()
			return fmt.Errorf("reading %s: %w", path, err)
		}
		next = len(rows) + 1
	} else {
		f, err = newSummaryFile(l)
		if err != nil {
			return err
		}
	}
	defer f.Close()

	if err := setRow(f, sheet, next, SummaryRow(in, res, l)); err != nil {
		return err
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

func newSummaryFile(l locale.Labels) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		f.Close()
		return nil, err
	}

	header := SummaryHeader(l)
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		f.Close()
		return nil, err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, err
	}
	last, _ := excelize.CoordinatesToCellName(len(header), 1)
	if err := f.SetCellStyle(SheetName, "A1", last, bold); err != nil {
		f.Close()
		return nil, err
	}
	lastCol, _ := excelize.ColumnNumberToName(len(header))
	if err := f.SetColWidth(SheetName, "A", lastCol, 16); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("writing row %d: %w", row, err)
	}
	return nil
}

// InputRow is one imported parameter set. Err is set when the row could
// not be parsed; Input then holds whatever was read.
type InputRow struct {
	Row   int // 1-based sheet row
	Input beam.BeamInput
	Err   error
}

// ReadInputs imports parameter sets from the first sheet, filling blank
// cells from beam.DefaultInput
func ReadInputs(r io.Reader) ([]InputRow, error) {
	return ReadInputsWith(r, beam.DefaultInput())
}

// ReadInputsWith imports parameter sets, filling blank cells from defaults.
// The first row is a header. Fully blank rows are skipped.
func ReadInputsWith(r io.Reader, defaults beam.BeamInput) ([]InputRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("reading rows: %w", err)
	}

	var out []InputRow
	for i := 1; i < len(rows); i++ {
		if blank(rows[i]) {
			continue
		}
		in, err := parseRow(rows[i], defaults)
		out = append(out, InputRow{Row: i + 1, Input: in, Err: err})
	}
	if len(out) == 0 {
		return nil, ErrEmptySheet
	}
	return out, nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func parseRow(row []string, in beam.BeamInput) (beam.BeamInput, error) {
	cell := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	var errs []error
	if s := cell(0); s != "" {
		support, err := beam.ParseSupport(s)
		if err != nil {
			errs = append(errs, err)
		}
		in.Support = support
	}

	numbers := []*float64{
		&in.SpanM, &in.UniformLoadKNm, &in.PointLoadKN, &in.WidthMM,
		&in.HeightMM, &in.CoverMM, &in.BarDiameterMM, &in.ConcreteFckMPa, &in.SteelFykMPa,
	}
	for j, dst := range numbers {
		s := cell(j + 1)
		if s == "" {
			continue
		}
		v, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
		if err != nil {
			errs = append(errs, &beam.ValidationError{Field: InputColumns[j+1], Raw: s, Constraint: "must be a number"})
			continue
		}
		*dst = v
	}
	return in, errors.Join(errs...)
}
