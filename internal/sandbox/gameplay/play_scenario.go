package gameplay

import (
	"github.com/dustin/go-humanize"

	"trafficsandbox.ai/internal/sandbox"
	"trafficsandbox.ai/internal/ui"
	"trafficsandbox.ai/internal/ui/menu"
	"trafficsandbox.ai/internal/ui/text"
)

type playScenario struct {
	name string
}

func newPlayScenario(name string) (*menu.Menu, *playScenario) {
	m := menu.New("Playing scenario", []menu.Action{
		{Key: "s", Label: "change scenario"},
		{Key: "q", Label: "quit"},
	})
	m.SetInfo(text.FromLine(text.Line("Playing " + name)))
	return m, &playScenario{name: name}
}

func (p *playScenario) event(ctx *ui.EventCtx, app *sandbox.App, m *menu.Menu) *Transition {
	press := m.Event(ctx)
	switch {
	case m.ConsumeAction("change scenario", press):
		return pushTransition(newWizardScreen(changeScenario))
	case m.ConsumeAction("quit", press):
		return popTransition()
	}

	sim := app.Primary.Sim
	txt := text.FromLine(text.Line("Playing " + p.name))
	txt.AddLine(text.Line(humanize.Comma(int64(sim.ActiveTrips())) + " trips in progress at " + sim.Time().String()))
	m.SetInfo(txt)
	return nil
}
