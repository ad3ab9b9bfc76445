package world

import (
	"sort"

	"trafficsandbox.ai/internal/sim/geom"
)

const (
	// Active drivers beyond this slow every vehicle down proportionally.
	roadCapacity = 200
	busSpeed     = 8.0
	busDwell     = geom.Duration(15)
)

type Trip struct {
	ID     int
	Mode   TripMode
	From   int
	To     int
	Depart geom.Time

	Started  bool
	Finished bool
	End      geom.Time
}

// TripSpec is what a scenario asks the sim to schedule.
type TripSpec struct {
	Depart geom.Time
	From   int
	To     int
	Mode   TripMode
}

type BusArrival struct {
	Route string
	Stop  int
	At    geom.Time
	Delay geom.Duration
}

type BusPosition struct {
	Route    string
	NextStop int
	ETA      geom.Time
}

type bus struct {
	route  BusRoute
	next   int
	nextAt geom.Time
	delay  geom.Duration
}

// Sim is a deterministic, event-ordered trip simulation. Trip travel time is
// straight-line distance over the mode's free-flow speed, stretched by the
// number of drivers on the road when the trip starts.
type Sim struct {
	now    geom.Time
	nextID int

	trips   []*Trip
	pending []*Trip
	sorted  bool
	active  []*Trip

	buses    []*bus
	arrivals []BusArrival
}

func NewSim() *Sim { return &Sim{sorted: true} }

func (s *Sim) Time() geom.Time { return s.now }

func (s *Sim) ScheduleTrip(spec TripSpec) int {
	t := &Trip{
		ID:     s.nextID,
		Mode:   spec.Mode,
		From:   spec.From,
		To:     spec.To,
		Depart: spec.Depart,
	}
	if t.Depart < s.now {
		t.Depart = s.now
	}
	s.nextID++
	s.trips = append(s.trips, t)
	s.pending = append(s.pending, t)
	s.sorted = false
	return t.ID
}

// SeedBusRoute puts one bus at the first stop of the route.
func (s *Sim) SeedBusRoute(route BusRoute) {
	s.buses = append(s.buses, &bus{route: route, nextAt: s.now})
}

func (s *Sim) SeedsBuses() bool { return len(s.buses) > 0 }

func (s *Sim) Step(m *Map, d geom.Duration) {
	if d < 0 {
		return
	}
	end := s.now.Add(d)
	if !s.sorted {
		sort.SliceStable(s.pending, func(i, j int) bool { return s.pending[i].Depart < s.pending[j].Depart })
		s.sorted = true
	}

	for len(s.pending) > 0 && s.pending[0].Depart <= end {
		t := s.pending[0]
		s.pending = s.pending[1:]
		s.finishUntil(t.Depart)
		t.Started = true
		t.End = t.Depart.Add(s.travelTime(m, t))
		s.active = append(s.active, t)
	}
	s.finishUntil(end)

	for _, b := range s.buses {
		s.advanceBus(m, b, end)
	}
	s.now = end
}

func (s *Sim) finishUntil(at geom.Time) {
	kept := s.active[:0]
	for _, t := range s.active {
		if t.End <= at {
			t.Finished = true
			continue
		}
		kept = append(kept, t)
	}
	s.active = kept
}

func (s *Sim) congestion() float64 {
	drivers := 0
	for _, t := range s.active {
		if t.Mode == Drive || t.Mode == Transit {
			drivers++
		}
	}
	return 1 + float64(drivers)/roadCapacity
}

func (s *Sim) travelTime(m *Map, t *Trip) geom.Duration {
	from, to := m.building(t.From), m.building(t.To)
	dist := from.DistTo(to)
	secs := dist / freeFlowSpeed[t.Mode]
	if t.Mode != Walk {
		secs *= s.congestion()
	}
	return geom.Duration(secs)
}

func (s *Sim) advanceBus(m *Map, b *bus, end geom.Time) {
	for b.nextAt <= end {
		stopID := b.route.Stops[b.next]
		s.arrivals = append(s.arrivals, BusArrival{
			Route: b.route.Name,
			Stop:  stopID,
			At:    b.nextAt,
			Delay: b.delay,
		})

		from, _ := m.Stop(stopID)
		b.next = (b.next + 1) % len(b.route.Stops)
		to, _ := m.Stop(b.route.Stops[b.next])
		free := geom.Duration(from.Pos.DistTo(to.Pos) / busSpeed)
		actual := geom.Duration(float64(free) * s.congestion())
		b.delay = actual - free
		b.nextAt = b.nextAt.Add(actual + busDwell)
	}
}

func (m *Map) building(idx int) geom.Pt {
	if idx < 0 || idx >= len(m.Buildings) {
		return geom.Pt{}
	}
	return m.Buildings[idx].Pos
}

// Trips returns a copy of every scheduled trip in scheduling order.
func (s *Sim) Trips() []Trip {
	out := make([]Trip, len(s.trips))
	for i, t := range s.trips {
		out[i] = *t
	}
	return out
}

func (s *Sim) BusArrivals() []BusArrival {
	return append([]BusArrival(nil), s.arrivals...)
}

func (s *Sim) BusesOnRoute(route string) []BusPosition {
	var out []BusPosition
	for _, b := range s.buses {
		if b.route.Name != route {
			continue
		}
		out = append(out, BusPosition{Route: route, NextStop: b.route.Stops[b.next], ETA: b.nextAt})
	}
	return out
}

func (s *Sim) ActiveTrips() int { return len(s.active) }
