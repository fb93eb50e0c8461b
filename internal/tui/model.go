// Package tui provides the Bubble Tea beam design form.
package tui

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/alexiusacademia/eurobeam/internal/beam"
	"github.com/alexiusacademia/eurobeam/internal/diagram"
	"github.com/alexiusacademia/eurobeam/internal/eurocode"
	"github.com/alexiusacademia/eurobeam/internal/locale"
	"github.com/alexiusacademia/eurobeam/internal/report"
)

// Options configures a new form
type Options struct {
	Input    beam.BeamInput
	Limits   beam.Limits
	Lang     string
	Dark     bool
	PDFPath  string
	XLSXPath string
}

type fieldKind int

const (
	numberField fieldKind = iota
	selectField
)

type field struct {
	key   string
	label func(locale.Labels) string
	kind  fieldKind

	input textinput.Model

	// selector state; option text comes from format
	options []float64
	index   int
	format  func(locale.Labels, float64) string
}

const (
	fieldSupport = iota
	fieldSpan
	fieldUniform
	fieldPoint
	fieldWidth
	fieldHeight
	fieldCover
	fieldBar
	fieldFck
	fieldFyk
)

// Model implements the Bubble Tea design form.
type Model struct {
	limits   beam.Limits
	lang     string
	labels   locale.Labels
	dark     bool
	pdfPath  string
	xlsxPath string

	fields []field
	focus  int

	input  beam.BeamInput
	result beam.AnalysisResult
	err    error
	status string

	width  int
	height int
}

type exportedMsg struct {
	path string
	err  error
}

// NewModel constructs the form and runs the first analysis.
func NewModel(opts Options) *Model {
	m := &Model{
		limits:   opts.Limits,
		lang:     opts.Lang,
		labels:   locale.Lookup(opts.Lang),
		dark:     opts.Dark,
		pdfPath:  opts.PDFPath,
		xlsxPath: opts.XLSXPath,
	}
	m.initFields(opts.Input)
	m.setFocus(0)
	m.recompute()
	return m
}

func (m *Model) initFields(in beam.BeamInput) {
	number := func(key string, label func(locale.Labels) string, v float64) field {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 10
		ti.Width = 10
		ti.SetValue(strconv.FormatFloat(v, 'f', -1, 64))
		return field{key: key, label: label, kind: numberField, input: ti}
	}
	selector := func(key string, label func(locale.Labels) string, options []float64, v float64, format func(locale.Labels, float64) string) field {
		f := field{key: key, label: label, kind: selectField, options: options, format: format}
		for i, o := range options {
			if o == v {
				f.index = i
			}
		}
		return f
	}
	plain := func(_ locale.Labels, v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

	m.fields = []field{
		selector("support", func(l locale.Labels) string { return l.BeamType },
			[]float64{float64(beam.SimplySupported), float64(beam.Cantilever)}, float64(in.Support),
			func(l locale.Labels, v float64) string { return l.SupportName(beam.Support(v) == beam.Cantilever) }),
		number("span_m", func(l locale.Labels) string { return l.Span }, in.SpanM),
		number("uniform_load_knm", func(l locale.Labels) string { return l.UniformLoad }, in.UniformLoadKNm),
		number("point_load_kn", func(l locale.Labels) string { return l.PointLoad }, in.PointLoadKN),
		number("width_mm", func(l locale.Labels) string { return l.Width }, in.WidthMM),
		number("height_mm", func(l locale.Labels) string { return l.Height }, in.HeightMM),
		number("cover_mm", func(l locale.Labels) string { return l.Cover }, in.CoverMM),
		selector("bar_diameter_mm", func(l locale.Labels) string { return l.BarDiameter }, eurocode.BarDiameters, in.BarDiameterMM, plain),
		selector("concrete_fck_mpa", func(l locale.Labels) string { return l.Fck }, eurocode.ConcreteClasses, in.ConcreteFckMPa, plain),
		selector("steel_fyk_mpa", func(l locale.Labels) string { return l.Fyk }, eurocode.SteelGrades, in.SteelFykMPa, plain),
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case exportedMsg:
		if msg.err != nil {
			m.status = "export failed: " + msg.err.Error()
		} else {
			m.status = "saved " + msg.path
		}
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab", "down", "enter":
			return m, m.setFocus(m.focus + 1)
		case "shift+tab", "up":
			return m, m.setFocus(m.focus - 1)
		case "ctrl+t":
			m.dark = !m.dark
			return m, nil
		case "ctrl+l":
			m.lang = locale.Next(m.lang)
			m.labels = locale.Lookup(m.lang)
			return m, nil
		case "ctrl+p":
			return m, m.exportPDF()
		case "ctrl+s":
			return m, m.exportRow()
		}

		f := &m.fields[m.focus]
		if f.kind == selectField {
			switch msg.String() {
			case "left", "h":
				f.index = (f.index + len(f.options) - 1) % len(f.options)
				m.recompute()
			case "right", "l", " ":
				f.index = (f.index + 1) % len(f.options)
				m.recompute()
			}
			return m, nil
		}

		var cmd tea.Cmd
		before := f.input.Value()
		f.input, cmd = f.input.Update(msg)
		if f.input.Value() != before {
			m.recompute()
		}
		return m, cmd
	}

	// cursor blink and other messages go to the focused input
	if f := &m.fields[m.focus]; f.kind == numberField {
		var cmd tea.Cmd
		f.input, cmd = f.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) setFocus(idx int) tea.Cmd {
	count := len(m.fields)
	if idx < 0 {
		idx = count - 1
	}
	if idx >= count {
		idx = 0
	}
	m.focus = idx
	var cmd tea.Cmd
	for i := range m.fields {
		if m.fields[i].kind != numberField {
			continue
		}
		if i == idx {
			cmd = m.fields[i].input.Focus()
		} else {
			m.fields[i].input.Blur()
		}
	}
	return cmd
}

// recompute rebuilds the input from the form and reruns the analysis
func (m *Model) recompute() {
	var (
		in   beam.BeamInput
		errs []error
	)
	values := make([]float64, len(m.fields))
	for i, f := range m.fields {
		if f.kind == selectField {
			values[i] = f.options[f.index]
			continue
		}
		raw := strings.TrimSpace(f.input.Value())
		v, err := strconv.ParseFloat(strings.Replace(raw, ",", ".", 1), 64)
		if err != nil {
			errs = append(errs, &beam.ValidationError{Field: f.key, Raw: raw, Constraint: "must be a number"})
			continue
		}
		values[i] = v
	}

	in.Support = beam.Support(values[fieldSupport])
	in.SpanM = values[fieldSpan]
	in.UniformLoadKNm = values[fieldUniform]
	in.PointLoadKN = values[fieldPoint]
	in.WidthMM = values[fieldWidth]
	in.HeightMM = values[fieldHeight]
	in.CoverMM = values[fieldCover]
	in.BarDiameterMM = values[fieldBar]
	in.ConcreteFckMPa = values[fieldFck]
	in.SteelFykMPa = values[fieldFyk]
	m.input = in

	if len(errs) == 0 {
		if err := in.ValidateWithin(m.limits); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		m.err = errors.Join(errs...)
		return
	}
	m.err = nil
	m.result = beam.Analyze(in)
}

// Input returns the parameter set currently in the form
func (m *Model) Input() beam.BeamInput {
	return m.input
}

// Result returns the latest analysis, or the validation error of the form
func (m *Model) Result() (beam.AnalysisResult, error) {
	if m.err != nil {
		return beam.AnalysisResult{}, m.err
	}
	return m.result, nil
}

func (m *Model) exportPDF() tea.Cmd {
	res, err := m.Result()
	if err != nil {
		m.status = "nothing to export"
		return nil
	}
	in, labels, path := m.input, m.labels, m.pdfPath
	return func() tea.Msg {
		f, err := os.Create(path)
		if err != nil {
			return exportedMsg{path: path, err: err}
		}
		err = report.WritePDF(f, in, res, labels)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		return exportedMsg{path: path, err: err}
	}
}

func (m *Model) exportRow() tea.Cmd {
	res, err := m.Result()
	if err != nil {
		m.status = "nothing to export"
		return nil
	}
	in, labels, path := m.input, m.labels, m.xlsxPath
	return func() tea.Msg {
		return exportedMsg{path: path, err: report.AppendSummary(path, in, res, labels)}
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	p := newPalette(m.dark)
	l := m.labels

	var form strings.Builder
	form.WriteString(p.header.Render(l.Inputs))
	form.WriteString("\n\n")
	for i, f := range m.fields {
		label := fmt.Sprintf("%-24s", f.label(l))
		var value string
		if f.kind == selectField {
			value = "‹ " + f.format(l, f.options[f.index]) + " ›"
		} else {
			value = f.input.View()
		}
		if i == m.focus {
			form.WriteString(p.focused.Render("> "+label) + " " + value)
		} else {
			form.WriteString(p.label.Render("  "+label) + " " + p.value.Render(value))
		}
		form.WriteString("\n")
	}

	var results string
	if m.err != nil {
		var sb strings.Builder
		for _, line := range strings.Split(m.err.Error(), "\n") {
			sb.WriteString(p.fail.Render(line))
			sb.WriteString("\n")
		}
		results = sb.String()
	} else {
		results = m.renderResults(p)
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, form.String(), "  ", results)

	var out strings.Builder
	out.WriteString(p.title.Render(l.Title))
	out.WriteString("\n\n")
	out.WriteString(body)
	out.WriteString("\n")
	if m.err == nil {
		out.WriteString(diagram.MomentASCII(m.result, l, 60, 8))
		out.WriteString("\n")
		out.WriteString(diagram.SectionASCII(m.input, beam.Layout(m.input, m.result.BarCount), l))
	}
	out.WriteString("\n")
	out.WriteString(p.footer.Render("tab/↑↓ field · ←/→ select · ctrl+t theme · ctrl+l " + l.Language + " · ctrl+p PDF · ctrl+s xlsx · esc quit"))
	if m.status != "" {
		out.WriteString("\n")
		out.WriteString(p.footer.Render(m.status))
	}
	return p.app.Render(out.String())
}

func (m *Model) renderResults(p palette) string {
	l := m.labels
	lines := diagram.SummaryLines(m.input, m.result, l)
	styled := make([]string, 0, len(lines)+2)
	styled = append(styled, p.header.Render(l.Summary), "")
	for i, line := range lines {
		switch {
		case i == len(lines)-2:
			styled = append(styled, p.check(m.result.ShearOK).Render(line))
		case i == len(lines)-1:
			styled = append(styled, p.check(m.result.DeflectionOK).Render(line))
		default:
			styled = append(styled, p.value.Render(line))
		}
	}
	return p.card.Render(strings.Join(styled, "\n"))
}
