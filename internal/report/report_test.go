package report_test

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/alexiusacademia/eurobeam/internal/beam"
	"github.com/alexiusacademia/eurobeam/internal/locale"
	"github.com/alexiusacademia/eurobeam/internal/report"
)

func TestWritePDF(t *testing.T) {
	report.Now = func() time.Time { return time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC) }
	t.Cleanup(func() { report.Now = time.Now })

	for _, code := range locale.Supported() {
		in := beam.DefaultInput()
		var buf bytes.Buffer
		require.NoError(t, report.WritePDF(&buf, in, beam.Analyze(in), locale.Lookup(code)), code)
		assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")), code)
	}
}

func TestWritePDF_Cantilever(t *testing.T) {
	in := beam.DefaultInput()
	in.Support = beam.Cantilever
	in.PointLoadKN = 20

	var buf bytes.Buffer
	require.NoError(t, report.WritePDF(&buf, in, beam.Analyze(in), locale.Lookup("fr")))
	assert.Greater(t, buf.Len(), 1000)
}

func TestSummaryRow(t *testing.T) {
	in := beam.DefaultInput()
	res := beam.Analyze(in)
	row := report.SummaryRow(in, res, locale.Lookup("en"))

	require.Len(t, row, len(report.SummaryHeader(locale.Lookup("en"))))
	assert.Equal(t, "simply-supported", row[1])
	assert.Equal(t, 31.25, row[9])
	assert.Equal(t, 1.6, row[11])
	assert.Equal(t, 1, row[13])
	assert.Equal(t, 2.01, row[14])
	assert.Equal(t, "Yes", row[17])
	assert.Equal(t, "Yes", row[18])
}

func TestSummaryRow_LocalizedChecks(t *testing.T) {
	in := beam.DefaultInput()
	in.HeightMM = 200 // L/h = 25
	row := report.SummaryRow(in, beam.Analyze(in), locale.Lookup("de"))
	assert.Equal(t, "Nein", row[len(row)-1])
}

func TestSummaryHeader_SteelInSquareCentimetres(t *testing.T) {
	header := report.SummaryHeader(locale.Lookup("en"))
	assert.Equal(t, "As,req [cm²]", header[11])
	assert.Equal(t, "As,prov [cm²]", header[14])
}

func TestWriteSummary_RoundTrip(t *testing.T) {
	en := locale.Lookup("en")
	var rows [][]any
	for _, span := range []float64{3, 5, 8} {
		in := beam.DefaultInput()
		in.SpanM = span
		rows = append(rows, report.SummaryRow(in, beam.Analyze(in), en))
	}

	var buf bytes.Buffer
	require.NoError(t, report.WriteSummary(&buf, rows, en))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, report.SheetName, f.GetSheetName(0))
	got, err := f.GetRows(report.SheetName)
	require.NoError(t, err)
	require.Len(t, got, 4)
	assert.Equal(t, report.SummaryHeader(en), got[0])
	assert.Equal(t, "8", got[3][0])
}

func TestAppendSummary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.xlsx")
	de := locale.Lookup("de")
	in := beam.DefaultInput()

	require.NoError(t, report.AppendSummary(path, in, beam.Analyze(in), de))
	in.SpanM = 6
	require.NoError(t, report.AppendSummary(path, in, beam.Analyze(in), de))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows(report.SheetName)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, de.Span, got[0][0])
	assert.Equal(t, "5", got[1][0])
	assert.Equal(t, "6", got[2][0])
}

func workbook(t *testing.T, rows ...[]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	header := report.InputColumns
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &header))
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return &buf
}

func TestReadInputs(t *testing.T) {
	buf := workbook(t,
		[]any{"cantilever", 3, 0, 20, 250, 450, 30, 20, 35, 550},
		[]any{"ss", "six", 10},
		[]any{},
		[]any{"simply supported", 4},
	)

	rows, err := report.ReadInputs(buf)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	first := rows[0]
	require.NoError(t, first.Err)
	assert.Equal(t, 2, first.Row)
	assert.Equal(t, beam.BeamInput{
		SpanM: 3, Support: beam.Cantilever, UniformLoadKNm: 0, PointLoadKN: 20,
		WidthMM: 250, HeightMM: 450, CoverMM: 30, BarDiameterMM: 20,
		ConcreteFckMPa: 35, SteelFykMPa: 550,
	}, first.Input)

	bad := rows[1]
	assert.Equal(t, 3, bad.Row)
	require.Error(t, bad.Err)
	assert.True(t, errors.Is(bad.Err, beam.ErrInvalidInput))
	assert.Contains(t, bad.Err.Error(), "span_m")

	partial := rows[2]
	require.NoError(t, partial.Err)
	assert.Equal(t, 5, partial.Row)
	want := beam.DefaultInput()
	want.SpanM = 4
	assert.Equal(t, want, partial.Input)
}

func TestReadInputsWith_Defaults(t *testing.T) {
	defaults := beam.DefaultInput()
	defaults.ConcreteFckMPa = 25

	rows, err := report.ReadInputsWith(workbook(t, []any{"", 6}), defaults)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 25.0, rows[0].Input.ConcreteFckMPa)
	assert.Equal(t, 6.0, rows[0].Input.SpanM)
}

func TestReadInputs_HeaderOnly(t *testing.T) {
	_, err := report.ReadInputs(workbook(t))
	assert.ErrorIs(t, err, report.ErrEmptySheet)
}

func TestReadInputs_NotAWorkbook(t *testing.T) {
	_, err := report.ReadInputs(bytes.NewBufferString("span,load\n5,10\n"))
	assert.Error(t, err)
}
