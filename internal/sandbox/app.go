// Package sandbox owns the state every gameplay mode works against: the
// loaded map, its live simulation and the stores and sinks around them.
package sandbox

import (
	"fmt"
	"log"

	"trafficsandbox.ai/internal/observability"
	"trafficsandbox.ai/internal/persistence/indexdb"
	"trafficsandbox.ai/internal/persistence/prebaked"
	"trafficsandbox.ai/internal/persistence/scenariostore"
	"trafficsandbox.ai/internal/sandbox/render"
	"trafficsandbox.ai/internal/sim/world"
)

type MapSource interface {
	Load(name string) (*world.Map, error)
	List() ([]string, error)
}

// PerMap is everything tied to one loaded map.
type PerMap struct {
	Map          *world.Map
	Sim          *world.Sim
	CurrentFlags Flags
}

type Deps struct {
	Log       *log.Logger
	Maps      MapSource
	Scenarios *scenariostore.Store
	Baselines *prebaked.Store
	Index     *indexdb.SQLiteIndex
	Metrics   *observability.Collector
}

type App struct {
	Primary *PerMap
	AgentCS render.AgentColorScheme

	Log       *log.Logger
	Maps      MapSource
	Scenarios *scenariostore.Store
	Baselines *prebaked.Store
	// Index and Metrics are optional.
	Index   *indexdb.SQLiteIndex
	Metrics *observability.Collector
}

func NewApp(flags Flags, deps Deps) (*App, error) {
	if deps.Maps == nil || deps.Scenarios == nil || deps.Baselines == nil {
		return nil, fmt.Errorf("sandbox: maps, scenarios and baselines are required")
	}
	logger := deps.Log
	if logger == nil {
		logger = log.New(log.Writer(), "[sandbox] ", log.LstdFlags|log.Lmicroseconds)
	}
	a := &App{
		AgentCS:   render.VehicleTypes,
		Log:       logger,
		Maps:      deps.Maps,
		Scenarios: deps.Scenarios,
		Baselines: deps.Baselines,
		Index:     deps.Index,
		Metrics:   deps.Metrics,
	}
	pm, err := a.loadPerMap(flags)
	if err != nil {
		return nil, err
	}
	a.Primary = pm
	return a, nil
}

// Reload replaces the primary map and simulation with a fresh one built from
// flags. On error the current state is kept.
func (a *App) Reload(flags Flags) error {
	pm, err := a.loadPerMap(flags)
	if err != nil {
		return err
	}
	a.Primary = pm
	a.AgentCS = render.VehicleTypes
	return nil
}

func (a *App) loadPerMap(flags Flags) (*PerMap, error) {
	m, err := a.Maps.Load(flags.Load)
	if err != nil {
		return nil, fmt.Errorf("load map %s: %w", flags.Load, err)
	}
	return &PerMap{Map: m, Sim: world.NewSim(), CurrentFlags: flags}, nil
}
