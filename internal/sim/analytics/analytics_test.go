package analytics

import (
	"testing"

	"trafficsandbox.ai/internal/sim/geom"
	"trafficsandbox.ai/internal/sim/world"
)

func TestAnalytics_CountsAtTimeOfDay(t *testing.T) {
	a := Analytics{Trips: []TripRecord{
		{ID: 0, Mode: world.Drive, Depart: 0, Finished: true, End: 100},
		{ID: 1, Mode: world.Drive, Depart: 50, Finished: true, End: 400},
		{ID: 2, Mode: world.Bike, Depart: 60, Finished: false},
		{ID: 3, Mode: world.Walk, Depart: 500, Finished: true, End: 900},
	}}

	if got := a.NumFinishedTrips(200); got != 1 {
		t.Fatalf("NumFinishedTrips(200)=%d want 1", got)
	}
	if got := a.NumUnfinishedTrips(200); got != 2 {
		t.Fatalf("NumUnfinishedTrips(200)=%d want 2", got)
	}
	if got := a.NumUnfinishedTrips(1000); got != 1 {
		t.Fatalf("NumUnfinishedTrips(1000)=%d want 1", got)
	}

	ds := a.FinishedTrips(1000, world.Drive)
	if len(ds) != 2 {
		t.Fatalf("FinishedTrips drive=%v", ds)
	}
	avg, ok := Mean(ds)
	if !ok || !avg.EpsilonEq(geom.Seconds(225)) {
		t.Fatalf("Mean=%v ok=%v", avg, ok)
	}
	if _, ok := Mean(nil); ok {
		t.Fatalf("Mean(nil) should report no data")
	}
}

func TestCollect_FromSim(t *testing.T) {
	m := world.Synthetic("t", 3, 1)
	s := world.NewSim()
	s.ScheduleTrip(world.TripSpec{Depart: 0, From: 0, To: 8, Mode: world.Bike})
	s.ScheduleTrip(world.TripSpec{Depart: geom.Time(3600), From: 0, To: 8, Mode: world.Bike})
	route, _ := m.Route("48")
	s.SeedBusRoute(route)
	s.Step(m, geom.Minutes(30))

	a := Collect(s)
	if len(a.Trips) != 2 {
		t.Fatalf("trips=%d", len(a.Trips))
	}
	if !a.Trips[0].Finished || a.Trips[1].Finished {
		t.Fatalf("unexpected trip state: %+v", a.Trips)
	}
	if len(a.BusDelays("48", s.Time())) == 0 {
		t.Fatalf("expected bus arrivals on route 48")
	}
	if a.IsEmpty() || !New().IsEmpty() {
		t.Fatalf("IsEmpty mismatch")
	}
}
