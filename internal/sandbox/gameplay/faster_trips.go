package gameplay

import (
	"github.com/dustin/go-humanize"

	"trafficsandbox.ai/internal/sandbox"
	"trafficsandbox.ai/internal/sandbox/render"
	"trafficsandbox.ai/internal/sim/analytics"
	"trafficsandbox.ai/internal/sim/geom"
	"trafficsandbox.ai/internal/sim/world"
	"trafficsandbox.ai/internal/ui"
	"trafficsandbox.ai/internal/ui/menu"
	"trafficsandbox.ai/internal/ui/text"
)

type fasterTrips struct {
	mode world.TripMode
}

func newFasterTrips(mode world.TripMode) (*menu.Menu, *fasterTrips) {
	m := menu.New("Speed up "+mode.String()+" trips", []menu.Action{
		{Key: "c", Label: "show trip time so far"},
		{Key: "q", Label: "quit"},
	})
	m.SetInfo(text.FromLine(text.Line("Make " + mode.String() + " trips faster.")))
	return m, &fasterTrips{mode: mode}
}

func (f *fasterTrips) event(ctx *ui.EventCtx, app *sandbox.App, m *menu.Menu, prebaked analytics.Analytics) *Transition {
	p := m.Event(ctx)
	if m.ConsumeAction("quit", p) {
		return popTransition()
	}
	manageAgentColorScheme(m, p, app, "show trip time so far", "hide trip time so far", render.TripTimeSoFar)

	sim := app.Primary.Sim
	m.SetInfo(fasterTripsStats(f.mode, analytics.Collect(sim), prebaked, sim.Time()))
	return nil
}

func fasterTripsStats(mode world.TripMode, live, prebaked analytics.Analytics, now geom.Time) text.Text {
	nowTrips := live.FinishedTrips(now, mode)
	baseTrips := prebaked.FinishedTrips(now, mode)

	var txt text.Text
	txt.AddLine(
		text.Line(humanize.Comma(int64(len(nowTrips)))+" finished "+mode.String()+" trips ("),
		CmpCountMore(len(nowTrips), len(baseTrips)),
		text.Line(")"),
	)
	avg, ok := analytics.Mean(nowTrips)
	if !ok {
		return txt
	}
	baseline, _ := analytics.Mean(baseTrips)
	txt.AddLine(text.Line("Average trip time: " + avg.MinimalString()))
	txt.Append(CmpDurationShorter(avg, baseline)...)
	return txt
}
