package tui

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/eurobeam/internal/beam"
)

func newTestModel(t *testing.T) *Model {
	t.Helper()
	dir := t.TempDir()
	return NewModel(Options{
		Input:    beam.DefaultInput(),
		Limits:   beam.DefaultLimits(),
		Lang:     "en",
		PDFPath:  filepath.Join(dir, "report.pdf"),
		XLSXPath: filepath.Join(dir, "summary.xlsx"),
	})
}

func press(m *Model, msgs ...tea.KeyMsg) {
	for _, msg := range msgs {
		m.Update(msg)
	}
}

func typeText(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewModelAnalyzesDefaults(t *testing.T) {
	m := newTestModel(t)
	res, err := m.Result()
	require.NoError(t, err)
	assert.InDelta(t, 31.25, res.MomentMaxKNm, 1e-9)
	assert.Equal(t, beam.DefaultInput(), m.Input())
}

func TestEditRecomputes(t *testing.T) {
	m := newTestModel(t)

	press(m, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, fieldSpan, m.focus)

	press(m, tea.KeyMsg{Type: tea.KeyBackspace})
	_, err := m.Result()
	require.Error(t, err)
	assert.ErrorIs(t, err, beam.ErrInvalidInput)

	press(m, typeText("8"))
	res, err := m.Result()
	require.NoError(t, err)
	assert.Equal(t, 8.0, m.Input().SpanM)
	assert.InDelta(t, 80, res.MomentMaxKNm, 1e-9)
}

func TestSelectorCyclesSupport(t *testing.T) {
	m := newTestModel(t)
	require.Equal(t, fieldSupport, m.focus)

	press(m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, beam.Cantilever, m.Input().Support)
	res, err := m.Result()
	require.NoError(t, err)
	assert.InDelta(t, 125, res.MomentMaxKNm, 1e-9)

	press(m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, beam.SimplySupported, m.Input().Support)
}

func TestSelectorCyclesBarDiameter(t *testing.T) {
	m := newTestModel(t)
	m.setFocus(fieldBar)

	press(m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 20.0, m.Input().BarDiameterMM)
}

func TestOutOfRangeShowsConstraint(t *testing.T) {
	m := newTestModel(t)
	m.setFocus(fieldSpan)
	press(m, typeText("0"))

	assert.Equal(t, 50.0, m.Input().SpanM)
	_, err := m.Result()
	require.Error(t, err)
	assert.Contains(t, m.View(), "span_m")
}

func TestToggles(t *testing.T) {
	m := newTestModel(t)

	press(m, tea.KeyMsg{Type: tea.KeyCtrlT})
	assert.True(t, m.dark)

	press(m, tea.KeyMsg{Type: tea.KeyCtrlL})
	assert.Equal(t, "Deutsch", m.labels.Language)
	assert.Contains(t, m.View(), "Bemessungsübersicht")
}

func TestExportPDF(t *testing.T) {
	m := newTestModel(t)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlP})
	require.NotNil(t, cmd)
	m.Update(cmd())

	data, err := os.ReadFile(m.pdfPath)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
	assert.Contains(t, m.status, m.pdfPath)
}

func TestExportRow(t *testing.T) {
	m := newTestModel(t)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	require.NotNil(t, cmd)
	m.Update(cmd())

	_, err := os.Stat(m.xlsxPath)
	assert.NoError(t, err)
}

func TestExportSkippedWhenInvalid(t *testing.T) {
	m := newTestModel(t)
	m.setFocus(fieldSpan)
	press(m, typeText("0"))

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlP})
	assert.Nil(t, cmd)
	assert.Equal(t, "nothing to export", m.status)
}

func TestViewShowsDiagrams(t *testing.T) {
	m := newTestModel(t)
	out := m.View()
	assert.Contains(t, out, "Design Summary")
	assert.Contains(t, out, "Bending Moment Diagram")
	assert.Contains(t, out, "BEAM CROSS-SECTION")
}
