package world

import (
	"fmt"
	"math/rand"

	"trafficsandbox.ai/internal/sim/geom"
)

const (
	blockSize      = 120.0
	buildingJitter = 20.0
)

// Synthetic builds a size x size grid town with two bus routes: "43" running
// west to east through the middle row and "48" running south to north through
// the middle column. The layout only depends on seed.
func Synthetic(name string, size int, seed int64) *Map {
	if size < 3 {
		size = 3
	}
	rng := rand.New(rand.NewSource(seed))
	m := &Map{MapName: name}

	id := 0
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			m.Buildings = append(m.Buildings, Building{
				ID: id,
				Pos: geom.Pt{
					X: float64(col)*blockSize + rng.Float64()*buildingJitter,
					Y: float64(row)*blockSize + rng.Float64()*buildingJitter,
				},
			})
			id++
		}
	}

	mid := size / 2
	var east, north []int
	stopID := 0
	for i := 0; i < size; i++ {
		m.BusStops = append(m.BusStops, BusStop{ID: stopID, Pos: geom.Pt{X: float64(i) * blockSize, Y: float64(mid)*blockSize - 10}})
		east = append(east, stopID)
		stopID++
	}
	for i := 0; i < size; i++ {
		m.BusStops = append(m.BusStops, BusStop{ID: stopID, Pos: geom.Pt{X: float64(mid)*blockSize - 10, Y: float64(i) * blockSize}})
		north = append(north, stopID)
		stopID++
	}
	m.BusRoutes = []BusRoute{
		{Name: "43", Stops: east},
		{Name: "48", Stops: north},
	}
	m.index()
	return m
}

// SyntheticName is the conventional name for a generated grid of the given size.
func SyntheticName(size int) string { return fmt.Sprintf("grid_%dx%d", size, size) }
