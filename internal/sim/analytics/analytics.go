// Package analytics summarizes what happened in a simulation run. The same
// value describes a live run and a prebaked baseline, so the two can be
// compared at the same time of day.
package analytics

import (
	"trafficsandbox.ai/internal/sim/geom"
	"trafficsandbox.ai/internal/sim/world"
)

type TripRecord struct {
	ID       int
	Mode     world.TripMode
	Depart   geom.Time
	Finished bool
	End      geom.Time
}

type Analytics struct {
	Trips       []TripRecord
	BusArrivals []world.BusArrival
	RecordedAt  geom.Time
}

func New() Analytics { return Analytics{} }

// Collect snapshots the sim's current state.
func Collect(s *world.Sim) Analytics {
	trips := s.Trips()
	a := Analytics{
		Trips:       make([]TripRecord, 0, len(trips)),
		BusArrivals: s.BusArrivals(),
		RecordedAt:  s.Time(),
	}
	for _, t := range trips {
		a.Trips = append(a.Trips, TripRecord{
			ID:       t.ID,
			Mode:     t.Mode,
			Depart:   t.Depart,
			Finished: t.Finished,
			End:      t.End,
		})
	}
	return a
}

func (a Analytics) IsEmpty() bool {
	return len(a.Trips) == 0 && len(a.BusArrivals) == 0
}

// FinishedTrips returns durations of trips with the given mode that finished
// by now.
func (a Analytics) FinishedTrips(now geom.Time, mode world.TripMode) []geom.Duration {
	var out []geom.Duration
	for _, t := range a.Trips {
		if t.Mode == mode && t.Finished && t.End <= now {
			out = append(out, t.End.Sub(t.Depart))
		}
	}
	return out
}

func (a Analytics) NumFinishedTrips(now geom.Time) int {
	n := 0
	for _, t := range a.Trips {
		if t.Finished && t.End <= now {
			n++
		}
	}
	return n
}

// NumUnfinishedTrips counts trips that had departed by now but not yet arrived.
func (a Analytics) NumUnfinishedTrips(now geom.Time) int {
	n := 0
	for _, t := range a.Trips {
		if t.Depart > now {
			continue
		}
		if t.Finished && t.End <= now {
			continue
		}
		n++
	}
	return n
}

func (a Analytics) BusDelays(route string, now geom.Time) []geom.Duration {
	var out []geom.Duration
	for _, arr := range a.BusArrivals {
		if arr.Route == route && arr.At <= now {
			out = append(out, arr.Delay)
		}
	}
	return out
}

// Mean returns false for an empty slice.
func Mean(ds []geom.Duration) (geom.Duration, bool) {
	if len(ds) == 0 {
		return 0, false
	}
	var sum geom.Duration
	for _, d := range ds {
		sum += d
	}
	return sum / geom.Duration(len(ds)), true
}
