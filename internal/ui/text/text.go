// Package text builds lines of coloured spans and renders them for a terminal
// canvas.
package text

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type Color int

const (
	Default Color = iota
	Green
	Red
	Yellow
	Dim
)

var styles = map[Color]lipgloss.Style{
	Default: lipgloss.NewStyle(),
	Green:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	Red:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	Yellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	Dim:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
}

type Span struct {
	Text  string
	Color Color
}

func Line(s string) Span { return Span{Text: s} }

func (s Span) Fg(c Color) Span {
	s.Color = c
	return s
}

func (s Span) Render() string {
	if s.Color == Default {
		return s.Text
	}
	return styles[s.Color].Render(s.Text)
}

// Text is a block of lines, each made of spans.
type Text struct {
	lines [][]Span
}

func FromLine(spans ...Span) Text {
	var t Text
	t.AddLine(spans...)
	return t
}

func (t *Text) AddLine(spans ...Span) {
	t.lines = append(t.lines, append([]Span(nil), spans...))
}

// Append extends the last line, starting one if the text is empty.
func (t *Text) Append(spans ...Span) {
	if len(t.lines) == 0 {
		t.lines = append(t.lines, nil)
	}
	last := len(t.lines) - 1
	t.lines[last] = append(t.lines[last], spans...)
}

func (t Text) NumLines() int { return len(t.lines) }

func (t Text) Render() string {
	out := make([]string, 0, len(t.lines))
	for _, line := range t.lines {
		var b strings.Builder
		for _, s := range line {
			b.WriteString(s.Render())
		}
		out = append(out, b.String())
	}
	return strings.Join(out, "\n")
}

// Plain renders without colour.
func (t Text) Plain() string {
	out := make([]string, 0, len(t.lines))
	for _, line := range t.lines {
		out = append(out, PlainSpans(line...))
	}
	return strings.Join(out, "\n")
}

func PlainSpans(spans ...Span) string {
	var b strings.Builder
	for _, s := range spans {
		b.WriteString(s.Text)
	}
	return b.String()
}
