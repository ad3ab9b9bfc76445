package gameplay

import (
	"trafficsandbox.ai/internal/sandbox"
	"trafficsandbox.ai/internal/ui"
	"trafficsandbox.ai/internal/ui/wizard"
)

type wizardFunc func(w *wizard.Wizard, ctx *ui.EventCtx, app *sandbox.App) *Transition

// wizardScreen runs a wizard callback once per frame until it produces a
// transition.
type wizardScreen struct {
	wiz *wizard.Wizard
	cb  wizardFunc
}

func newWizardScreen(cb wizardFunc) *wizardScreen {
	return &wizardScreen{wiz: wizard.New(), cb: cb}
}

func (s *wizardScreen) Event(ctx *ui.EventCtx, app *sandbox.App) *Transition {
	return s.cb(s.wiz, ctx, app)
}

func (s *wizardScreen) Draw(c ui.Canvas) { s.wiz.Draw(c) }

func changeScenario(w *wizard.Wizard, ctx *ui.EventCtx, app *sandbox.App) *Transition {
	builtin := BuiltinScenarioName(app.Primary.CurrentFlags.NumAgents)
	name, ok := w.ChooseString(ctx, "Instantiate which scenario?", func() []string {
		list, err := app.Scenarios.List(app.Primary.Map.Name())
		if err != nil {
			app.Log.Printf("list scenarios: %v", err)
		}
		return append(list, builtin, JustBuses)
	})
	if ok {
		return replaceTransition(PlayScenario{Scenario: name}, nil)
	}
	if w.Aborted() {
		return popTransition()
	}
	return nil
}

func loadMap(w *wizard.Wizard, ctx *ui.EventCtx, app *sandbox.App) *Transition {
	name, ok := w.ChooseString(ctx, "Load which map?", func() []string {
		all, err := app.Maps.List()
		if err != nil {
			app.Log.Printf("list maps: %v", err)
		}
		current := app.Primary.Map.Name()
		var out []string
		for _, n := range all {
			if n != current {
				out = append(out, n)
			}
		}
		return out
	})
	if ok {
		flags := app.Primary.CurrentFlags.WithMap(name)
		return replaceTransition(Freeform{}, &flags)
	}
	if w.Aborted() {
		return popTransition()
	}
	return nil
}
