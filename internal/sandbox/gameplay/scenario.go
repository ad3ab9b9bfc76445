package gameplay

import (
	"fmt"

	"trafficsandbox.ai/internal/sandbox"
	"trafficsandbox.ai/internal/sim/geom"
	"trafficsandbox.ai/internal/sim/scenario"
	"trafficsandbox.ai/internal/sim/timer"
)

const (
	// TypicalScenario seeds every challenge mode.
	TypicalScenario = "weekday_typical_traffic_from_psrc"
	JustBuses       = "just buses"

	settleStep = geom.Duration(0.1)
)

// Metric labels for where a scenario came from.
const (
	sourceScaled  = "random_scaled"
	sourceDefault = "random_default"
	sourceBuses   = "just_buses"
	sourceStored  = "stored"
)

// BuiltinScenarioName is the label of the procedurally generated scenario
// for the configured agent count.
func BuiltinScenarioName(numAgents *int) string {
	if numAgents != nil {
		return fmt.Sprintf("random scenario with %d agents", *numAgents)
	}
	return "random scenario with some agents"
}

// resolveScenario maps a scenario name to a concrete scenario for the
// primary map, along with a label for where it came from.
func resolveScenario(name string, app *sandbox.App) (scenario.Scenario, string, error) {
	m := app.Primary.Map
	numAgents := app.Primary.CurrentFlags.NumAgents

	switch {
	case name == BuiltinScenarioName(numAgents):
		if numAgents != nil {
			return scenario.ScaledRun(m, *numAgents), sourceScaled, nil
		}
		return scenario.SmallRun(m), sourceDefault, nil
	case name == JustBuses:
		s := scenario.Empty(m)
		s.Name = JustBuses
		s.SeedBuses = true
		return s, sourceBuses, nil
	default:
		s, err := app.Scenarios.Load(m.Name(), name)
		if err != nil {
			return scenario.Scenario{}, sourceStored, fmt.Errorf("load scenario %s: %w", name, err)
		}
		if err := s.Validate(m); err != nil {
			return scenario.Scenario{}, sourceStored, fmt.Errorf("load scenario %s: %w", name, err)
		}
		return s, sourceStored, nil
	}
}

// instantiateScenario seeds the primary sim from the named scenario and
// settles it with one short step. The rng comes from the current flags, so
// equal flags give an equal population.
func instantiateScenario(name string, app *sandbox.App, t *timer.Timer) (scenario.Scenario, string, error) {
	s, source, err := resolveScenario(name, app)
	if err != nil {
		return s, source, err
	}
	pm := app.Primary
	s.Instantiate(pm.Sim, pm.Map, pm.CurrentFlags.SimFlags.MakeRNG(), t)
	pm.Sim.Step(pm.Map, settleStep)
	return s, source, nil
}
