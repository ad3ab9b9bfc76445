// Package scenariostore keeps named scenarios as JSON files under
// <data>/scenarios/<map>/<name>.json.
package scenariostore

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"trafficsandbox.ai/internal/sim/scenario"
)

const category = "scenarios"

var ErrNotFound = errors.New("scenario not found")

type Store struct {
	dir    string
	schema *jsonschema.Schema
}

func Open(dataDir string) (*Store, error) {
	schema, err := jsonschema.CompileString("scenario.schema.json", scenarioSchema)
	if err != nil {
		return nil, fmt.Errorf("compile scenario schema: %w", err)
	}
	return &Store{dir: filepath.Join(dataDir, category), schema: schema}, nil
}

func (s *Store) Path(mapName, name string) string {
	return filepath.Join(s.dir, mapName, name+".json")
}

// List returns every scenario name saved for mapName, sorted.
func (s *Store) List(mapName string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(s.dir, mapName))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		out = append(out, strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Strings(out)
	return out, nil
}

func (s *Store) Load(mapName, name string) (scenario.Scenario, error) {
	var sc scenario.Scenario
	b, err := os.ReadFile(s.Path(mapName, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return sc, fmt.Errorf("%s/%s: %w", mapName, name, ErrNotFound)
		}
		return sc, err
	}
	if err := s.validate(b); err != nil {
		return sc, fmt.Errorf("%s/%s: %w", mapName, name, err)
	}
	if err := json.Unmarshal(b, &sc); err != nil {
		return sc, fmt.Errorf("%s/%s: %w", mapName, name, err)
	}
	if sc.MapName != mapName {
		return sc, fmt.Errorf("%s/%s: scenario is for map %q", mapName, name, sc.MapName)
	}
	return sc, nil
}

func (s *Store) Save(sc scenario.Scenario) error {
	b, err := json.MarshalIndent(sc, "", "  ")
	if err != nil {
		return err
	}
	if err := s.validate(b); err != nil {
		return err
	}
	path := s.Path(sc.MapName, sc.Name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

func (s *Store) validate(b []byte) error {
	var v interface{}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return err
	}
	return s.schema.Validate(v)
}
