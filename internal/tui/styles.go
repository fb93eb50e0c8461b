package tui

import "github.com/charmbracelet/lipgloss"

type palette struct {
	app     lipgloss.Style
	title   lipgloss.Style
	header  lipgloss.Style
	label   lipgloss.Style
	focused lipgloss.Style
	value   lipgloss.Style
	ok      lipgloss.Style
	fail    lipgloss.Style
	card    lipgloss.Style
	footer  lipgloss.Style
}

func newPalette(dark bool) palette {
	fg, muted, accent, border := "#2B2B2B", "#6E6E6E", "#1F77B4", "#B0B0B0"
	if dark {
		fg, muted, accent, border = "#F0F0F0", "#8C8C8C", "#C89A3A", "#4A4A4A"
	}
	p := palette{
		app:     lipgloss.NewStyle().Padding(1, 2),
		title:   lipgloss.NewStyle().Foreground(lipgloss.Color(accent)).Bold(true),
		header:  lipgloss.NewStyle().Foreground(lipgloss.Color(muted)).Bold(true),
		label:   lipgloss.NewStyle().Foreground(lipgloss.Color(muted)),
		focused: lipgloss.NewStyle().Foreground(lipgloss.Color(accent)).Bold(true),
		value:   lipgloss.NewStyle().Foreground(lipgloss.Color(fg)),
		ok:      lipgloss.NewStyle().Foreground(lipgloss.Color("#3FA34D")),
		fail:    lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")),
		card: lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color(border)),
		footer: lipgloss.NewStyle().Foreground(lipgloss.Color(muted)),
	}
	if dark {
		p.app = p.app.Background(lipgloss.Color("#1E1E1E"))
	}
	return p
}

func (p palette) check(ok bool) lipgloss.Style {
	if ok {
		return p.ok
	}
	return p.fail
}
