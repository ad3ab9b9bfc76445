package gameplay

import (
	"fmt"
	"strings"

	"trafficsandbox.ai/internal/sim/world"
)

// GameplayMode is one of Freeform, PlayScenario, OptimizeBus, CreateGridlock
// or FasterTrips. Modes are immutable; switching builds a new Runner.
type GameplayMode interface {
	isGameplayMode()
	// Kind is the mode name without parameters.
	Kind() string
	String() string
}

type Freeform struct{}

type PlayScenario struct {
	Scenario string
}

type OptimizeBus struct {
	Route string
}

type CreateGridlock struct{}

type FasterTrips struct {
	Mode world.TripMode
}

func (Freeform) isGameplayMode()       {}
func (PlayScenario) isGameplayMode()   {}
func (OptimizeBus) isGameplayMode()    {}
func (CreateGridlock) isGameplayMode() {}
func (FasterTrips) isGameplayMode()    {}

func (Freeform) Kind() string       { return "freeform" }
func (PlayScenario) Kind() string   { return "play_scenario" }
func (OptimizeBus) Kind() string    { return "optimize_bus" }
func (CreateGridlock) Kind() string { return "create_gridlock" }
func (FasterTrips) Kind() string    { return "faster_trips" }

func (m Freeform) String() string       { return m.Kind() }
func (m PlayScenario) String() string   { return m.Kind() + ":" + m.Scenario }
func (m OptimizeBus) String() string    { return m.Kind() + ":" + m.Route }
func (m CreateGridlock) String() string { return m.Kind() }
func (m FasterTrips) String() string    { return m.Kind() + ":" + m.Mode.String() }

// ParseMode reads the String form back, e.g. "optimize_bus:43" or
// "faster_trips:drive".
func ParseMode(s string) (GameplayMode, error) {
	kind, arg, hasArg := strings.Cut(strings.TrimSpace(s), ":")
	needArg := func() error {
		if !hasArg || strings.TrimSpace(arg) == "" {
			return fmt.Errorf("mode %s needs an argument, e.g. %s:<name>", kind, kind)
		}
		return nil
	}
	switch kind {
	case "freeform":
		return Freeform{}, nil
	case "play_scenario":
		if err := needArg(); err != nil {
			return nil, err
		}
		return PlayScenario{Scenario: arg}, nil
	case "optimize_bus":
		if err := needArg(); err != nil {
			return nil, err
		}
		return OptimizeBus{Route: arg}, nil
	case "create_gridlock":
		return CreateGridlock{}, nil
	case "faster_trips":
		if err := needArg(); err != nil {
			return nil, err
		}
		tm, err := world.ParseTripMode(arg)
		if err != nil {
			return nil, err
		}
		return FasterTrips{Mode: tm}, nil
	default:
		return nil, fmt.Errorf("unknown gameplay mode %q", s)
	}
}
