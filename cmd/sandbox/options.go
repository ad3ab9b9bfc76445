package main

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"trafficsandbox.ai/internal/observability"
	"trafficsandbox.ai/internal/persistence/indexdb"
	"trafficsandbox.ai/internal/persistence/prebaked"
	"trafficsandbox.ai/internal/persistence/scenariostore"
	"trafficsandbox.ai/internal/sandbox"
	"trafficsandbox.ai/internal/sim/world"
)

// options are the persistent flags. Flags set on the command line override
// the yaml config.
type options struct {
	configPath string
	mapName    string
	dataDir    string
	mode       string
	seed       int64
	numAgents  int
	disableDB  bool
}

func (o *options) bind(cmd *cobra.Command) {
	f := cmd.PersistentFlags()
	f.StringVar(&o.configPath, "config", "", "path to sandbox.yaml (optional)")
	f.StringVar(&o.mapName, "map", "", "map name (overrides config)")
	f.StringVar(&o.dataDir, "data", "", "runtime data directory (overrides config)")
	f.StringVar(&o.mode, "mode", "", `initial gameplay mode, e.g. "freeform" or "optimize_bus:43" (overrides config)`)
	f.Int64Var(&o.seed, "seed", 0, "rng seed (overrides config)")
	f.IntVar(&o.numAgents, "num-agents", 0, "agents in the builtin random scenario (overrides config)")
	f.BoolVar(&o.disableDB, "disable_db", false, "disable the sqlite session index")
}

func (o *options) flags(cmd *cobra.Command) (sandbox.Flags, error) {
	flags, err := sandbox.LoadFlags(o.configPath)
	if err != nil {
		return flags, err
	}
	pf := cmd.Flags()
	if pf.Changed("map") {
		flags.Load = o.mapName
	}
	if pf.Changed("data") {
		flags.DataDir = o.dataDir
	}
	if pf.Changed("mode") {
		flags.InitialMode = o.mode
	}
	if pf.Changed("seed") {
		flags.RNGSeed = o.seed
	}
	if pf.Changed("num-agents") {
		n := o.numAgents
		flags.NumAgents = &n
	}
	flags.Normalize()
	if err := flags.Validate(); err != nil {
		return flags, err
	}
	return flags, nil
}

// runtime is what every command shares: stores opened once, plus optional
// index and metrics.
type runtime struct {
	flags     sandbox.Flags
	maps      *world.MapStore
	scenarios *scenariostore.Store
	baselines *prebaked.Store
	index     *indexdb.SQLiteIndex
	metrics   *observability.Collector
	log       *log.Logger

	shutdownTracing func(context.Context) error
}

func (o *options) open(cmd *cobra.Command, logger *log.Logger, withIndex bool) (*runtime, error) {
	flags, err := o.flags(cmd)
	if err != nil {
		return nil, err
	}
	scenarios, err := scenariostore.Open(flags.DataDir)
	if err != nil {
		return nil, err
	}
	rt := &runtime{
		flags:     flags,
		maps:      world.NewMapStore(flags.DataDir),
		scenarios: scenarios,
		baselines: prebaked.NewStore(flags.DataDir),
		log:       logger,
	}
	rt.shutdownTracing, err = observability.InitTracing(context.Background(), observability.TracingConfigFromEnv(), logger)
	if err != nil {
		return nil, err
	}
	if withIndex && !o.disableDB {
		path := flags.IndexDB
		if path == "" {
			path = filepath.Join(flags.DataDir, "index", "sessions.sqlite")
		}
		idx, err := indexdb.OpenSQLite(path)
		if err != nil {
			return nil, fmt.Errorf("open index: %w", err)
		}
		rt.index = idx
	}
	return rt, nil
}

func (rt *runtime) Close() {
	if rt.index != nil {
		_ = rt.index.Close()
	}
	if err := observability.ShutdownWithTimeout(rt.shutdownTracing, 5*time.Second); err != nil {
		rt.log.Printf("tracing shutdown: %v", err)
	}
}

func (rt *runtime) newApp(flags sandbox.Flags) (*sandbox.App, error) {
	return sandbox.NewApp(flags, sandbox.Deps{
		Log:       rt.log,
		Maps:      rt.maps,
		Scenarios: rt.scenarios,
		Baselines: rt.baselines,
		Index:     rt.index,
		Metrics:   rt.metrics,
	})
}
