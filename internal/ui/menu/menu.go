// Package menu implements the modal side menu each gameplay mode shows: a
// title, an info block and a list of hotkeyed actions.
package menu

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"trafficsandbox.ai/internal/ui"
	"trafficsandbox.ai/internal/ui/text"
)

type Action struct {
	Key   string
	Label string
}

// Press is the action triggered on one frame. A press is consumed at most
// once, so two handlers reading the same frame cannot both act on it.
type Press struct {
	label    string
	consumed bool
}

func (p *Press) Label() string {
	if p == nil {
		return ""
	}
	return p.label
}

func (p *Press) Consumed() bool { return p != nil && p.consumed }

type Menu struct {
	title      string
	actions    []Action
	info       text.Text
	standalone bool
}

func New(title string, actions []Action) *Menu {
	return &Menu{
		title:      title,
		actions:    append([]Action(nil), actions...),
		standalone: true,
	}
}

func (m *Menu) Title() string { return m.title }

// DisableStandaloneLayout renders the menu as a panel embedded in another
// screen instead of as its own bordered box.
func (m *Menu) DisableStandaloneLayout() { m.standalone = false }

func (m *Menu) Standalone() bool { return m.standalone }

func (m *Menu) SetInfo(t text.Text) { m.info = t }

func (m *Menu) Info() text.Text { return m.info }

// Event maps the frame's key to one of the current actions. The key may be
// the action's hotkey or its full label.
func (m *Menu) Event(ctx *ui.EventCtx) *Press {
	key := ctx.Input.Key
	if key == "" {
		return nil
	}
	for _, a := range m.actions {
		if a.Key == key || a.Label == key {
			return &Press{label: a.Label}
		}
	}
	return nil
}

func (m *Menu) HasAction(label string) bool { return m.find(label) >= 0 }

func (m *Menu) Labels() []string {
	out := make([]string, 0, len(m.actions))
	for _, a := range m.actions {
		out = append(out, a.Label)
	}
	return out
}

// ConsumeAction reports whether p triggered label, marking it used.
func (m *Menu) ConsumeAction(label string, p *Press) bool {
	if p == nil || p.consumed || p.label != label || !m.HasAction(label) {
		return false
	}
	p.consumed = true
	return true
}

// MaybeChangeAction relabels from to to when from is present. The hotkey
// carries over.
func (m *Menu) MaybeChangeAction(from, to string) {
	if i := m.find(from); i >= 0 {
		m.actions[i].Label = to
	}
}

// SwapAction consumes a press of from and relabels it to to.
func (m *Menu) SwapAction(from, to string, p *Press) bool {
	if !m.ConsumeAction(from, p) {
		return false
	}
	m.MaybeChangeAction(from, to)
	return true
}

func (m *Menu) find(label string) int {
	for i, a := range m.actions {
		if a.Label == label {
			return i
		}
	}
	return -1
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	keyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

func (m *Menu) Draw(c ui.Canvas) {
	lines := []string{titleStyle.Render(m.title)}
	if m.info.NumLines() > 0 {
		lines = append(lines, m.info.Render())
	}
	for _, a := range m.actions {
		lines = append(lines, fmt.Sprintf("%s %s", keyStyle.Render("["+a.Key+"]"), a.Label))
	}
	block := strings.Join(lines, "\n")
	if m.standalone {
		block = boxStyle.Render(block)
	}
	c.DrawBlock(block)
}
