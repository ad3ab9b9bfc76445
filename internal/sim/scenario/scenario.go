// Package scenario describes simulated travel demand and turns it into
// scheduled trips.
package scenario

import (
	"fmt"
	"math/rand"

	"trafficsandbox.ai/internal/sim/geom"
	"trafficsandbox.ai/internal/sim/timer"
	"trafficsandbox.ai/internal/sim/world"
)

const (
	smallRunAgents = 100
	spawnWindow    = geom.Duration(5)
)

// SpawnOverTime spawns NumAgents trips departing uniformly between StartTime
// and StopTime, between random buildings. Percentages pick the trip mode;
// whatever is left over walks.
type SpawnOverTime struct {
	NumAgents      int       `json:"num_agents"`
	StartTime      geom.Time `json:"start_time"`
	StopTime       geom.Time `json:"stop_time"`
	PercentDriving float64   `json:"percent_driving"`
	PercentBiking  float64   `json:"percent_biking"`
	PercentTransit float64   `json:"percent_transit"`
}

type IndividTrip struct {
	Depart geom.Time      `json:"depart"`
	From   int            `json:"from"`
	To     int            `json:"to"`
	Mode   world.TripMode `json:"mode"`
}

type Scenario struct {
	Name          string          `json:"scenario_name"`
	MapName       string          `json:"map_name"`
	SpawnOverTime []SpawnOverTime `json:"spawn_over_time"`
	IndividTrips  []IndividTrip   `json:"individ_trips"`
	SeedBuses     bool            `json:"seed_buses"`
}

func Empty(m *world.Map) Scenario {
	return Scenario{Name: "no people", MapName: m.Name()}
}

// SmallRun is the default-sized random scenario.
func SmallRun(m *world.Map) Scenario {
	s := ScaledRun(m, smallRunAgents)
	s.Name = "small_run"
	return s
}

// ScaledRun spawns exactly n agents right at the start of the day, with buses.
func ScaledRun(m *world.Map, n int) Scenario {
	return Scenario{
		Name:    fmt.Sprintf("scaled_run_%d", n),
		MapName: m.Name(),
		SpawnOverTime: []SpawnOverTime{{
			NumAgents:      n,
			StartTime:      0,
			StopTime:       geom.Time(0).Add(spawnWindow),
			PercentDriving: 0.5,
			PercentBiking:  0.1,
			PercentTransit: 0.2,
		}},
		SeedBuses: true,
	}
}

func (s Scenario) NumAgents() int {
	n := len(s.IndividTrips)
	for _, spawn := range s.SpawnOverTime {
		n += spawn.NumAgents
	}
	return n
}

func (s Scenario) Validate(m *world.Map) error {
	if s.MapName != m.Name() {
		return fmt.Errorf("scenario %s is for map %s, not %s", s.Name, s.MapName, m.Name())
	}
	for i, spawn := range s.SpawnOverTime {
		if spawn.NumAgents < 0 {
			return fmt.Errorf("scenario %s: spawn %d has negative agents", s.Name, i)
		}
		if spawn.StopTime < spawn.StartTime {
			return fmt.Errorf("scenario %s: spawn %d stops before it starts", s.Name, i)
		}
		if p := spawn.PercentDriving + spawn.PercentBiking + spawn.PercentTransit; p > 1 {
			return fmt.Errorf("scenario %s: spawn %d mode percentages sum to %.2f", s.Name, i, p)
		}
	}
	for i, trip := range s.IndividTrips {
		if trip.From < 0 || trip.From >= len(m.Buildings) || trip.To < 0 || trip.To >= len(m.Buildings) {
			return fmt.Errorf("scenario %s: trip %d references unknown building", s.Name, i)
		}
	}
	return nil
}

// Instantiate schedules every agent into sim. All randomness comes from rng,
// so the same rng seed always yields the same population.
func (s Scenario) Instantiate(sim *world.Sim, m *world.Map, rng *rand.Rand, t *timer.Timer) {
	t.Start(fmt.Sprintf("instantiating %s", s.Name))

	if s.SeedBuses {
		for _, route := range m.BusRoutes {
			sim.SeedBusRoute(route)
		}
		t.NoteCount(len(m.BusRoutes), "bus routes seeded")
	}

	spawned := 0
	for _, spawn := range s.SpawnOverTime {
		window := float64(spawn.StopTime - spawn.StartTime)
		for i := 0; i < spawn.NumAgents; i++ {
			depart := spawn.StartTime.Add(geom.Duration(rng.Float64() * window))
			from := rng.Intn(len(m.Buildings))
			to := rng.Intn(len(m.Buildings))
			sim.ScheduleTrip(world.TripSpec{
				Depart: depart,
				From:   from,
				To:     to,
				Mode:   spawn.pickMode(rng.Float64()),
			})
			spawned++
		}
	}
	for _, trip := range s.IndividTrips {
		sim.ScheduleTrip(world.TripSpec{Depart: trip.Depart, From: trip.From, To: trip.To, Mode: trip.Mode})
		spawned++
	}
	t.NoteCount(spawned, "trips scheduled")

	t.Stop(fmt.Sprintf("instantiating %s", s.Name))
}

func (spawn SpawnOverTime) pickMode(roll float64) world.TripMode {
	switch {
	case roll < spawn.PercentDriving:
		return world.Drive
	case roll < spawn.PercentDriving+spawn.PercentBiking:
		return world.Bike
	case roll < spawn.PercentDriving+spawn.PercentBiking+spawn.PercentTransit:
		return world.Transit
	default:
		return world.Walk
	}
}
