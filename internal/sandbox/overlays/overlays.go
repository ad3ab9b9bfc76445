// Package overlays holds the optional data layer drawn over the map. At most
// one overlay is active at a time.
package overlays

import (
	"fmt"
	"strings"

	"trafficsandbox.ai/internal/sim/analytics"
	"trafficsandbox.ai/internal/sim/geom"
	"trafficsandbox.ai/internal/sim/world"
	"trafficsandbox.ai/internal/ui"
)

type Kind int

const (
	KindInactive Kind = iota
	KindBusRoute
	KindBusDelaysOverTime
)

func (k Kind) String() string {
	switch k {
	case KindInactive:
		return "inactive"
	case KindBusRoute:
		return "bus route"
	case KindBusDelaysOverTime:
		return "bus delays over time"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

type Overlays struct {
	kind   Kind
	route  string
	at     geom.Time
	buses  []world.BusPosition
	delays []world.BusArrival
}

func Inactive() Overlays { return Overlays{} }

// ShowBusRoute snapshots where the route's buses are right now.
func ShowBusRoute(sim *world.Sim, route string) Overlays {
	return Overlays{
		kind:  KindBusRoute,
		route: route,
		at:    sim.Time(),
		buses: sim.BusesOnRoute(route),
	}
}

// BusDelaysOverTime snapshots every stop arrival recorded so far for route.
func BusDelaysOverTime(sim *world.Sim, route string) Overlays {
	var delays []world.BusArrival
	for _, a := range sim.BusArrivals() {
		if a.Route == route {
			delays = append(delays, a)
		}
	}
	return Overlays{
		kind:   KindBusDelaysOverTime,
		route:  route,
		at:     sim.Time(),
		delays: delays,
	}
}

func (o Overlays) Kind() Kind       { return o.kind }
func (o Overlays) Active() bool     { return o.kind != KindInactive }
func (o Overlays) Route() string    { return o.route }
func (o Overlays) At() geom.Time    { return o.at }
func (o Overlays) NumBuses() int    { return len(o.buses) }
func (o Overlays) NumArrivals() int { return len(o.delays) }

func (o Overlays) Draw(c ui.Canvas) {
	switch o.kind {
	case KindInactive:
		return
	case KindBusRoute:
		lines := []string{fmt.Sprintf("Route %s at %s: %d buses", o.route, o.at, len(o.buses))}
		for _, b := range o.buses {
			lines = append(lines, fmt.Sprintf("  next stop %d at %s", b.NextStop, b.ETA))
		}
		c.DrawBlock(strings.Join(lines, "\n"))
	case KindBusDelaysOverTime:
		ds := make([]geom.Duration, 0, len(o.delays))
		for _, a := range o.delays {
			ds = append(ds, a.Delay)
		}
		avg, _ := analytics.Mean(ds)
		c.DrawBlock(fmt.Sprintf("Route %s delays at %s: %d arrivals, avg %s", o.route, o.at, len(o.delays), avg))
	}
}
