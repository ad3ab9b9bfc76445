package session

import (
	"bytes"
	"database/sql"
	"log"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	_ "modernc.org/sqlite"

	"trafficsandbox.ai/internal/observability"
	"trafficsandbox.ai/internal/persistence/indexdb"
	"trafficsandbox.ai/internal/persistence/prebaked"
	"trafficsandbox.ai/internal/persistence/scenariostore"
	"trafficsandbox.ai/internal/sandbox"
	"trafficsandbox.ai/internal/sandbox/gameplay"
	"trafficsandbox.ai/internal/sandbox/render"
	"trafficsandbox.ai/internal/sim/world"
	"trafficsandbox.ai/internal/ui"
)

type fixture struct {
	app     *sandbox.App
	logs    *bytes.Buffer
	metrics *observability.Collector
	index   *indexdb.SQLiteIndex
	dbPath  string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	scenarios, err := scenariostore.Open(dir)
	if err != nil {
		t.Fatalf("open scenarios: %v", err)
	}
	metrics, err := observability.NewCollector(prometheus.NewRegistry())
	if err != nil {
		t.Fatalf("NewCollector: %v", err)
	}
	dbPath := filepath.Join(dir, "index.sqlite")
	idx, err := indexdb.OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { _ = idx.Close() })

	var buf bytes.Buffer
	app, err := sandbox.NewApp(sandbox.Flags{
		SimFlags: sandbox.SimFlags{Load: "grid_6x6", RNGSeed: 9},
		DataDir:  dir,
	}, sandbox.Deps{
		Log: log.New(&buf, "", 0),
		Maps: world.StaticMaps{
			"grid_6x6": world.Synthetic("grid_6x6", 6, 1),
			"grid_4x4": world.Synthetic("grid_4x4", 4, 2),
		},
		Scenarios: scenarios,
		Baselines: prebaked.NewStore(dir),
		Index:     idx,
		Metrics:   metrics,
	})
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}
	return &fixture{app: app, logs: &buf, metrics: metrics, index: idx, dbPath: dbPath}
}

func (f *fixture) frame(t *testing.T, m *Manager, in ui.Input) {
	t.Helper()
	if err := m.Event(ui.NewEventCtx(in, f.app.Log)); err != nil {
		t.Fatalf("Event(%+v): %v", in, err)
	}
}

func TestManager_ChangeScenario(t *testing.T) {
	f := newFixture(t)
	m, err := New(ui.NewEventCtx(ui.Input{}, f.app.Log), f.app, gameplay.Freeform{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	f.frame(t, m, ui.Input{Key: "s"})
	if m.Depth() != 2 {
		t.Fatalf("wizard not pushed, depth=%d", m.Depth())
	}
	f.frame(t, m, ui.Input{Choice: gameplay.JustBuses})
	if m.Depth() != 1 {
		t.Fatalf("depth=%d", m.Depth())
	}
	mode, ok := m.Runner().Mode.(gameplay.PlayScenario)
	if !ok || mode.Scenario != gameplay.JustBuses {
		t.Fatalf("mode=%v", m.Runner().Mode)
	}
	if !f.app.Primary.Sim.SeedsBuses() {
		t.Fatalf("new mode did not seed buses")
	}

	if got := testutil.ToFloat64(f.metrics.Transitions.WithLabelValues("push")); got != 1 {
		t.Fatalf("push transitions=%v", got)
	}
	if got := testutil.ToFloat64(f.metrics.Transitions.WithLabelValues("pop_then_replace")); got != 1 {
		t.Fatalf("replace transitions=%v", got)
	}
	if got := testutil.ToFloat64(f.metrics.ModeInitializations.WithLabelValues("play_scenario")); got != 1 {
		t.Fatalf("play_scenario initializations=%v", got)
	}
}

func TestManager_StepAdvancesSim(t *testing.T) {
	f := newFixture(t)
	m, err := New(ui.NewEventCtx(ui.Input{}, f.app.Log), f.app, gameplay.PlayScenario{Scenario: gameplay.JustBuses})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	before := f.app.Primary.Sim.Time()
	f.frame(t, m, ui.Input{Step: 30})
	if got := f.app.Primary.Sim.Time().Sub(before); !got.EpsilonEq(30) {
		t.Fatalf("advanced %v want 30s", got)
	}
}

func TestManager_LoadMapRebuildsApp(t *testing.T) {
	f := newFixture(t)
	m, err := New(ui.NewEventCtx(ui.Input{}, f.app.Log), f.app, gameplay.Freeform{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	f.app.AgentCS = render.Delay

	f.frame(t, m, ui.Input{Key: "l"})
	f.frame(t, m, ui.Input{Choice: "grid_4x4"})
	if f.app.Primary.Map.Name() != "grid_4x4" || f.app.Primary.CurrentFlags.Load != "grid_4x4" {
		t.Fatalf("map=%s", f.app.Primary.Map.Name())
	}
	if f.app.AgentCS != render.VehicleTypes {
		t.Fatalf("colour scheme not reset: %v", f.app.AgentCS)
	}
	if _, ok := m.Runner().Mode.(gameplay.Freeform); !ok {
		t.Fatalf("mode=%v", m.Runner().Mode)
	}
}

func TestManager_FailedReplaceKeepsPreviousScreen(t *testing.T) {
	f := newFixture(t)
	m, err := New(ui.NewEventCtx(ui.Input{}, f.app.Log), f.app, gameplay.PlayScenario{Scenario: gameplay.JustBuses})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	prev := m.Runner()
	prevSim := f.app.Primary.Sim

	f.frame(t, m, ui.Input{Key: "s"})
	// A scenario that was listed but vanished before it was picked.
	if err := m.apply(ui.NewEventCtx(ui.Input{}, f.app.Log), &gameplay.Transition{
		Kind: gameplay.PopThenReplace,
		Mode: gameplay.PlayScenario{Scenario: "deleted"},
	}); err == nil {
		t.Fatalf("expected error")
	}
	if m.Runner() != prev || f.app.Primary.Sim != prevSim || m.Depth() != 1 {
		t.Fatalf("previous screen not kept: depth=%d", m.Depth())
	}
	if !strings.Contains(f.logs.String(), "deleted") {
		t.Fatalf("failure not logged: %q", f.logs.String())
	}
}

func TestManager_QuitEndsSession(t *testing.T) {
	f := newFixture(t)
	m, err := New(ui.NewEventCtx(ui.Input{}, f.app.Log), f.app, gameplay.Freeform{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	f.frame(t, m, ui.Input{Key: "q"})
	if !m.Done() || m.Runner() != nil {
		t.Fatalf("session still running")
	}
	if err := m.Event(ui.NewEventCtx(ui.Input{}, f.app.Log)); err == nil {
		t.Fatalf("expected error after session end")
	}
}

func TestManager_RecordsSessions(t *testing.T) {
	f := newFixture(t)
	m, err := New(ui.NewEventCtx(ui.Input{}, f.app.Log), f.app, gameplay.Freeform{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	first := m.SessionID()
	f.frame(t, m, ui.Input{Key: "s"})
	f.frame(t, m, ui.Input{Choice: gameplay.JustBuses})
	if m.SessionID() == first {
		t.Fatalf("replacing the mode should start a new session row")
	}
	if err := f.index.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	db, err := sql.Open("sqlite", f.dbPath)
	if err != nil {
		t.Fatalf("sql.Open: %v", err)
	}
	defer db.Close()

	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM sessions WHERE map_name='grid_6x6'`).Scan(&n); err != nil {
		t.Fatalf("count sessions: %v", err)
	}
	if n != 2 {
		t.Fatalf("sessions=%d want 2", n)
	}
	if err := db.QueryRow(`SELECT COUNT(*) FROM transitions WHERE session_id=?`, first).Scan(&n); err != nil {
		t.Fatalf("count transitions: %v", err)
	}
	if n != 2 {
		t.Fatalf("transitions=%d want 2", n)
	}
}

func TestManager_DrawStack(t *testing.T) {
	f := newFixture(t)
	m, err := New(ui.NewEventCtx(ui.Input{}, f.app.Log), f.app, gameplay.Freeform{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	f.frame(t, m, ui.Input{Key: "s"})
	f.frame(t, m, ui.Input{})
	var c ui.TextCanvas
	m.Draw(&c)
	if !strings.Contains(c.String(), "Freeform mode") || !strings.Contains(c.String(), "Instantiate which scenario?") {
		t.Fatalf("draw=%q", c.String())
	}
}
