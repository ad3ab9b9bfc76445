package gameplay

import (
	"trafficsandbox.ai/internal/sandbox"
	"trafficsandbox.ai/internal/sandbox/overlays"
	"trafficsandbox.ai/internal/sim/analytics"
	"trafficsandbox.ai/internal/sim/geom"
	"trafficsandbox.ai/internal/ui"
	"trafficsandbox.ai/internal/ui/menu"
	"trafficsandbox.ai/internal/ui/text"
)

type optimizeBus struct {
	route string
	time  geom.Time
}

func newOptimizeBus(route string, app *sandbox.App) (*menu.Menu, *optimizeBus) {
	m := menu.New("Optimize Bus Challenge", []menu.Action{
		{Key: "r", Label: "show bus route"},
		{Key: "d", Label: "show delays over time"},
		{Key: "q", Label: "quit"},
	})
	m.SetInfo(text.FromLine(text.Line("Route " + route)))
	return m, &optimizeBus{route: route, time: app.Primary.Sim.Time()}
}

func (o *optimizeBus) event(ctx *ui.EventCtx, app *sandbox.App, ov *overlays.Overlays, m *menu.Menu, prebaked analytics.Analytics) *Transition {
	p := m.Event(ctx)
	if m.ConsumeAction("quit", p) {
		return popTransition()
	}

	sim := app.Primary.Sim
	timeChanged := o.time != sim.Time()
	o.time = sim.Time()

	if manageOverlays(m, p, "show bus route", "hide bus route", ov, ov.Kind() == overlays.KindBusRoute, timeChanged) {
		*ov = overlays.ShowBusRoute(sim, o.route)
	}
	if manageOverlays(m, p, "show delays over time", "hide delays over time", ov, ov.Kind() == overlays.KindBusDelaysOverTime, timeChanged) {
		*ov = overlays.BusDelaysOverTime(sim, o.route)
	}

	m.SetInfo(busDelays(o.route, analytics.Collect(sim), prebaked, sim.Time()))
	return nil
}

func busDelays(route string, live, prebaked analytics.Analytics, now geom.Time) text.Text {
	txt := text.FromLine(text.Line("Route " + route))
	avg, ok := analytics.Mean(live.BusDelays(route, now))
	if !ok {
		txt.AddLine(text.Line("No buses have reached a stop yet"))
		return txt
	}
	baseline, _ := analytics.Mean(prebaked.BusDelays(route, now))
	txt.AddLine(text.Line("Average stop delay: " + avg.MinimalString()))
	txt.Append(CmpDurationShorter(avg, baseline)...)
	return txt
}
