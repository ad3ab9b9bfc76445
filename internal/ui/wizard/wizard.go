// Package wizard asks the player to pick one string from a list across
// frames.
package wizard

import (
	"strings"

	"trafficsandbox.ai/internal/ui"
)

type Wizard struct {
	query   string
	choices []string
	asked   bool
	aborted bool
}

func New() *Wizard { return &Wizard{} }

// ChooseString returns the picked choice once the frame carries one. The
// choice list is computed on the first call only. Escape aborts.
func (w *Wizard) ChooseString(ctx *ui.EventCtx, query string, choices func() []string) (string, bool) {
	if w.aborted {
		return "", false
	}
	if !w.asked {
		w.query = query
		w.choices = choices()
		w.asked = true
	}
	if ctx.Input.Escape {
		w.aborted = true
		return "", false
	}
	if c := ctx.Input.Choice; c != "" {
		for _, ok := range w.choices {
			if ok == c {
				return c, true
			}
		}
	}
	return "", false
}

func (w *Wizard) Aborted() bool { return w.aborted }

func (w *Wizard) Choices() []string { return append([]string(nil), w.choices...) }

func (w *Wizard) Draw(c ui.Canvas) {
	if !w.asked {
		return
	}
	lines := []string{w.query}
	for _, ch := range w.choices {
		lines = append(lines, "  - "+ch)
	}
	c.DrawBlock(strings.Join(lines, "\n"))
}
