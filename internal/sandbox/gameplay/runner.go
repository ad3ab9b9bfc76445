package gameplay

import (
	"fmt"

	"trafficsandbox.ai/internal/sandbox"
	"trafficsandbox.ai/internal/sandbox/overlays"
	"trafficsandbox.ai/internal/sim/analytics"
	"trafficsandbox.ai/internal/sim/scenario"
	"trafficsandbox.ai/internal/sim/timer"
	"trafficsandbox.ai/internal/ui"
	"trafficsandbox.ai/internal/ui/menu"
)

const noBaselineWarning = "WARNING! No prebaked sim analytics. Only freeform mode will work."

// modeState is implemented by exactly one struct per GameplayMode.
type modeState interface {
	isModeState()
}

func (*freeform) isModeState()       {}
func (*playScenario) isModeState()   {}
func (*optimizeBus) isModeState()    {}
func (*createGridlock) isModeState() {}
func (*fasterTrips) isModeState()    {}

// Runner drives the active gameplay mode. It owns the mode's menu and the
// baseline analytics the mode compares against.
type Runner struct {
	Mode GameplayMode
	Menu *menu.Menu

	// Scenario is the instantiated scenario's name, empty in freeform.
	Scenario    string
	Agents      int
	HasBaseline bool

	state    modeState
	prebaked analytics.Analytics
}

// Initialize loads the baseline for the primary map, builds the mode and,
// for every mode but freeform, seeds the sim from its scenario. A scenario
// that cannot be resolved aborts initialization.
func Initialize(ctx *ui.EventCtx, mode GameplayMode, app *sandbox.App) (*Runner, error) {
	prebaked, err := app.Baselines.Load(app.Primary.Map.Name())
	hasBaseline := err == nil
	if err != nil {
		app.Log.Print(noBaselineWarning)
		app.Metrics.NoBaseline()
		prebaked = analytics.New()
	}

	var (
		m            *menu.Menu
		state        modeState
		scenarioName string
	)
	switch mode := mode.(type) {
	case Freeform:
		m, state = newFreeform()
	case PlayScenario:
		m, state = newPlayScenario(mode.Scenario)
		scenarioName = mode.Scenario
	case OptimizeBus:
		if _, ok := app.Primary.Map.Route(mode.Route); !ok {
			return nil, fmt.Errorf("optimize bus: no route %q on map %s", mode.Route, app.Primary.Map.Name())
		}
		m, state = newOptimizeBus(mode.Route, app)
		scenarioName = TypicalScenario
	case CreateGridlock:
		m, state = newCreateGridlock()
		scenarioName = TypicalScenario
	case FasterTrips:
		m, state = newFasterTrips(mode.Mode)
		scenarioName = TypicalScenario
	default:
		return nil, fmt.Errorf("unknown gameplay mode %T", mode)
	}
	m.DisableStandaloneLayout()

	r := &Runner{
		Mode:        mode,
		Menu:        m,
		HasBaseline: hasBaseline,
		state:       state,
		prebaked:    prebaked,
	}
	if scenarioName != "" {
		var (
			sc     scenario.Scenario
			source string
			err    error
		)
		took := ctx.LoadingScreen("instantiate scenario", func(_ *ui.EventCtx, t *timer.Timer) {
			sc, source, err = instantiateScenario(scenarioName, app, t)
		})
		if err != nil {
			return nil, fmt.Errorf("initialize %s: %w", mode, err)
		}
		app.Metrics.ScenarioInstantiated(source, took)
		r.Scenario = sc.Name
		r.Agents = sc.NumAgents()
	}
	app.Metrics.ModeInitialized(mode.Kind())
	return r, nil
}

// Event routes one frame to the active mode. A nil result means stay.
func (r *Runner) Event(ctx *ui.EventCtx, app *sandbox.App, ov *overlays.Overlays) *Transition {
	switch s := r.state.(type) {
	case *freeform:
		return s.event(ctx, app, r.Menu)
	case *playScenario:
		return s.event(ctx, app, r.Menu)
	case *optimizeBus:
		return s.event(ctx, app, ov, r.Menu, r.prebaked)
	case *createGridlock:
		return s.event(ctx, app, r.Menu, r.prebaked)
	case *fasterTrips:
		return s.event(ctx, app, r.Menu, r.prebaked)
	default:
		panic(fmt.Sprintf("gameplay: unhandled mode state %T", s))
	}
}

func (r *Runner) Draw(c ui.Canvas) {
	r.Menu.Draw(c)
}
