package gameplay

import (
	"github.com/dustin/go-humanize"

	"trafficsandbox.ai/internal/sandbox"
	"trafficsandbox.ai/internal/sandbox/render"
	"trafficsandbox.ai/internal/sim/analytics"
	"trafficsandbox.ai/internal/sim/geom"
	"trafficsandbox.ai/internal/ui"
	"trafficsandbox.ai/internal/ui/menu"
	"trafficsandbox.ai/internal/ui/text"
)

type createGridlock struct{}

func newCreateGridlock() (*menu.Menu, *createGridlock) {
	m := menu.New("Cause gridlock", []menu.Action{
		{Key: "c", Label: "show agent delay"},
		{Key: "q", Label: "quit"},
	})
	m.SetInfo(text.FromLine(text.Line("Make traffic as slow as possible.")))
	return m, &createGridlock{}
}

func (g *createGridlock) event(ctx *ui.EventCtx, app *sandbox.App, m *menu.Menu, prebaked analytics.Analytics) *Transition {
	p := m.Event(ctx)
	if m.ConsumeAction("quit", p) {
		return popTransition()
	}
	manageAgentColorScheme(m, p, app, "show agent delay", "hide agent delay", render.Delay)

	sim := app.Primary.Sim
	m.SetInfo(gridlockStats(analytics.Collect(sim), prebaked, sim.Time()))
	return nil
}

func gridlockStats(live, prebaked analytics.Analytics, now geom.Time) text.Text {
	unfinished := live.NumUnfinishedTrips(now)
	finished := live.NumFinishedTrips(now)

	var txt text.Text
	txt.AddLine(
		text.Line(humanize.Comma(int64(unfinished))+" trips in progress ("),
		CmpCountMore(unfinished, prebaked.NumUnfinishedTrips(now)),
		text.Line(")"),
	)
	txt.AddLine(
		text.Line(humanize.Comma(int64(finished))+" total finished trips ("),
		CmpCountFewer(finished, prebaked.NumFinishedTrips(now)),
		text.Line(")"),
	)
	return txt
}
