package gameplay

import (
	"bytes"
	"log"
	"testing"

	"trafficsandbox.ai/internal/persistence/prebaked"
	"trafficsandbox.ai/internal/persistence/scenariostore"
	"trafficsandbox.ai/internal/sandbox"
	"trafficsandbox.ai/internal/sim/scenario"
	"trafficsandbox.ai/internal/sim/world"
	"trafficsandbox.ai/internal/ui"
)

const testMap = "grid_6x6"

type testEnv struct {
	app  *sandbox.App
	logs *bytes.Buffer
	dir  string
}

func newTestEnv(t *testing.T, numAgents *int) *testEnv {
	t.Helper()
	dir := t.TempDir()
	scenarios, err := scenariostore.Open(dir)
	if err != nil {
		t.Fatalf("open scenarios: %v", err)
	}
	maps := world.StaticMaps{
		testMap:    world.Synthetic(testMap, 6, 1),
		"grid_4x4": world.Synthetic("grid_4x4", 4, 2),
	}
	var buf bytes.Buffer
	flags := sandbox.Flags{
		SimFlags:  sandbox.SimFlags{Load: testMap, RNGSeed: 42},
		NumAgents: numAgents,
		DataDir:   dir,
	}
	app, err := sandbox.NewApp(flags, sandbox.Deps{
		Log:       log.New(&buf, "", 0),
		Maps:      maps,
		Scenarios: scenarios,
		Baselines: prebaked.NewStore(dir),
	})
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}
	return &testEnv{app: app, logs: &buf, dir: dir}
}

// saveTypical stores the scenario every challenge mode starts from.
func (e *testEnv) saveTypical(t *testing.T, agents int) {
	t.Helper()
	s := scenario.ScaledRun(e.app.Primary.Map, agents)
	s.Name = TypicalScenario
	if err := e.app.Scenarios.Save(s); err != nil {
		t.Fatalf("save scenario: %v", err)
	}
}

func (e *testEnv) ctx(in ui.Input) *ui.EventCtx {
	return ui.NewEventCtx(in, e.app.Log)
}

func intPtr(n int) *int { return &n }
