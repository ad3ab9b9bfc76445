package gameplay

import (
	"trafficsandbox.ai/internal/sandbox"
	"trafficsandbox.ai/internal/ui"
	"trafficsandbox.ai/internal/ui/menu"
	"trafficsandbox.ai/internal/ui/text"
)

type freeform struct{}

func newFreeform() (*menu.Menu, *freeform) {
	m := menu.New("Freeform mode", []menu.Action{
		{Key: "l", Label: "change map"},
		{Key: "s", Label: "change scenario"},
		{Key: "q", Label: "quit"},
	})
	m.SetInfo(text.FromLine(text.Line("Explore the map. No scenario is running.")))
	return m, &freeform{}
}

func (f *freeform) event(ctx *ui.EventCtx, app *sandbox.App, m *menu.Menu) *Transition {
	p := m.Event(ctx)
	switch {
	case m.ConsumeAction("change map", p):
		return pushTransition(newWizardScreen(loadMap))
	case m.ConsumeAction("change scenario", p):
		return pushTransition(newWizardScreen(changeScenario))
	case m.ConsumeAction("quit", p):
		return popTransition()
	}
	return nil
}
