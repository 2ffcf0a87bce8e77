package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	ink    lipgloss.Style
	blank  lipgloss.Style
	cursor lipgloss.Style
	frame  lipgloss.Style

	title   lipgloss.Style
	label   lipgloss.Style
	value   lipgloss.Style
	hint    lipgloss.Style
	ok      lipgloss.Style
	warn    lipgloss.Style
	errText lipgloss.Style
}

func newStyles(th Theme) styles {
	return styles{
		ink:    lipgloss.NewStyle().Foreground(th.Ink),
		blank:  lipgloss.NewStyle().Foreground(th.Blank),
		cursor: lipgloss.NewStyle().Bold(true).Foreground(th.CursorFg).Background(th.CursorBg),
		frame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(th.Frame),

		title:   lipgloss.NewStyle().Bold(true).Foreground(th.Title),
		label:   lipgloss.NewStyle().Foreground(th.Label),
		value:   lipgloss.NewStyle().Bold(true).Foreground(th.Value),
		hint:    lipgloss.NewStyle().Italic(true).Foreground(th.Label),
		ok:      lipgloss.NewStyle().Bold(true).Foreground(th.Saved),
		warn:    lipgloss.NewStyle().Bold(true).Foreground(th.Dirty),
		errText: lipgloss.NewStyle().Bold(true).Foreground(th.Error),
	}
}

// sparkline renders column densities in [0,1] as one bar glyph each,
// empty columns in the blank color.
func (s styles) sparkline(values []float64) string {
	chars := []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	var b strings.Builder
	for _, v := range values {
		idx := int(v * float64(len(chars)-1))
		if idx >= len(chars) {
			idx = len(chars) - 1
		}
		if idx < 0 {
			idx = 0
		}
		c := string(chars[idx])
		if v > 0 {
			b.WriteString(s.ink.Render(c))
		} else {
			b.WriteString(s.blank.Render(c))
		}
	}
	return b.String()
}
