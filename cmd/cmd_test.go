package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/alexiusacademia/eurobeam/internal/beam"
	"github.com/alexiusacademia/eurobeam/internal/locale"
	"github.com/alexiusacademia/eurobeam/internal/report"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append(args, "--config", filepath.Join(t.TempDir(), "none.toml")))
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestAnalyzeJSON(t *testing.T) {
	out, err := execute(t, "analyze", "--json", "--span", "8", "--load-type", "point", "--load", "40")
	require.NoError(t, err)

	var got struct {
		Input  beam.BeamInput      `json:"input"`
		Result beam.AnalysisResult `json:"result"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 8.0, got.Input.SpanM)
	assert.Equal(t, 0.0, got.Input.UniformLoadKNm)
	assert.Equal(t, 40.0, got.Input.PointLoadKN)
	assert.InDelta(t, 80, got.Result.MomentMaxKNm, 1e-9)
}

func TestAnalyzeRows_KeepsOrderAndErrors(t *testing.T) {
	var rows []report.InputRow
	for i := 0; i < 20; i++ {
		in := beam.DefaultInput()
		in.SpanM = float64(i + 1)
		rows = append(rows, report.InputRow{Row: i + 2, Input: in})
	}
	rows[3].Err = &beam.ValidationError{Field: "span_m", Raw: "x", Constraint: "must be a number"}
	rows[5].Input.BarDiameterMM = 18

	results := analyzeRows(rows, beam.DefaultLimits(), 3)
	require.Len(t, results, len(rows))
	for i, r := range results {
		assert.Equal(t, rows[i].Row, r.Row)
		switch i {
		case 3, 5:
			assert.True(t, errors.Is(r.Err, beam.ErrInvalidInput), "row %d", r.Row)
		default:
			require.NoError(t, r.Err, "row %d", r.Row)
			assert.Equal(t, beam.Analyze(rows[i].Input), r.Result)
		}
	}
}

func TestBatch(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "beams.xlsx")
	outPath := filepath.Join(dir, "summary.xlsx")

	f := excelize.NewFile()
	header := report.InputColumns
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &header))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{"ss", 5}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]any{"cantilever", 3, 0, 20}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A4", &[]any{"ss", 50}))
	require.NoError(t, f.SaveAs(in))
	require.NoError(t, f.Close())

	out, err := execute(t, "batch", "--file", in, "--output", outPath, "--workers", "2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 3 rows failed")
	assert.Contains(t, out, "span_m")

	got, err := excelize.OpenFile(outPath)
	require.NoError(t, err)
	defer got.Close()
	rows, err := got.GetRows(report.SheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "eurobeam", "config.toml")
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"config", "init", "--config", path})
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
	})
	require.NoError(t, rootCmd.Execute())

	_, err := os.Stat(path)
	assert.NoError(t, err)
	assert.Contains(t, out.String(), path)
}

func TestPrintAnalysis_LoadCases(t *testing.T) {
	in := beam.DefaultInput()
	in.PointLoadKN = 20

	var out bytes.Buffer
	printAnalysis(&out, in, beam.Analyze(in), locale.Lookup("en"))
	text := out.String()
	assert.Contains(t, text, "LOAD CASES:")
	assert.Contains(t, text, "w·x·(L−x)/2")
	assert.Contains(t, text, "P at L/2")
	assert.Contains(t, text, "31.25")
	assert.Contains(t, text, "25.00")
}

func TestPrintAnalysis_NoLoads(t *testing.T) {
	in := beam.DefaultInput().WithLoad(beam.UniformLoad, 0)

	var out bytes.Buffer
	printAnalysis(&out, in, beam.Analyze(in), locale.Lookup("en"))
	assert.Contains(t, out.String(), "(none)")
}

func TestLogLevelFlagOverridesEnv(t *testing.T) {
	t.Setenv("EUROBEAM_LOG_LEVEL", "chatty")
	_, err := execute(t, "--log-level", "warn")
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestConfigInit_ExistingFileHint(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	rootCmd.SetArgs([]string{"config", "init", "--config", path})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--force")
}
