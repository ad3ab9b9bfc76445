package sandbox

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// SimFlags pick the map and seed the simulation. Two runs with equal
// SimFlags produce identical populations.
type SimFlags struct {
	Load    string `yaml:"map"`
	RNGSeed int64  `yaml:"rng_seed"`
}

func (f SimFlags) MakeRNG() *rand.Rand {
	return rand.New(rand.NewSource(f.RNGSeed))
}

type Flags struct {
	SimFlags `yaml:",inline"`

	// NumAgents scales the builtin random scenario. Nil keeps the default size.
	NumAgents   *int   `yaml:"num_agents,omitempty"`
	DataDir     string `yaml:"data_dir"`
	InitialMode string `yaml:"initial_mode"`
	IndexDB     string `yaml:"index_db,omitempty"`
}

func LoadFlags(path string) (Flags, error) {
	f := defaults()
	if strings.TrimSpace(path) == "" {
		f.Normalize()
		return f, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return f, err
	}
	if err := yaml.Unmarshal(b, &f); err != nil {
		return f, fmt.Errorf("sandbox.yaml: %w", err)
	}
	f.Normalize()
	if err := f.Validate(); err != nil {
		return f, fmt.Errorf("sandbox.yaml: %w", err)
	}
	return f, nil
}

func defaults() Flags {
	return Flags{
		SimFlags:    SimFlags{Load: "grid_8x8", RNGSeed: 42},
		DataDir:     "data",
		InitialMode: "freeform",
	}
}

func (f *Flags) Normalize() {
	if f == nil {
		return
	}
	f.Load = strings.TrimSpace(f.Load)
	f.DataDir = strings.TrimSpace(f.DataDir)
	if f.DataDir == "" {
		f.DataDir = "data"
	}
	f.InitialMode = strings.TrimSpace(f.InitialMode)
	if f.InitialMode == "" {
		f.InitialMode = "freeform"
	}
	if f.IndexDB != "" && !filepath.IsAbs(f.IndexDB) && !strings.Contains(f.IndexDB, string(filepath.Separator)) {
		f.IndexDB = filepath.Join(f.DataDir, f.IndexDB)
	}
}

func (f Flags) Validate() error {
	if f.Load == "" {
		return fmt.Errorf("map is required")
	}
	if strings.ContainsAny(f.Load, `/\`) {
		return fmt.Errorf("map %q must be a name, not a path", f.Load)
	}
	if f.NumAgents != nil && *f.NumAgents <= 0 {
		return fmt.Errorf("num_agents must be > 0, got %d", *f.NumAgents)
	}
	return nil
}

// WithMap returns a copy loading a different map. NumAgents is shared.
func (f Flags) WithMap(name string) Flags {
	f.Load = name
	return f
}
