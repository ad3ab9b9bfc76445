package world

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"trafficsandbox.ai/internal/sim/geom"
)

var ErrMapNotFound = errors.New("map not found")

type Building struct {
	ID  int     `yaml:"id"`
	Pos geom.Pt `yaml:"pos"`
}

type BusStop struct {
	ID  int     `yaml:"id"`
	Pos geom.Pt `yaml:"pos"`
}

type BusRoute struct {
	Name  string `yaml:"name"`
	Stops []int  `yaml:"stops"`
}

// Map is the static road network a simulation runs on. Only the parts the
// sandbox needs are modelled: buildings (trip endpoints) and bus routes.
type Map struct {
	MapName   string     `yaml:"name"`
	Buildings []Building `yaml:"buildings"`
	BusStops  []BusStop  `yaml:"bus_stops"`
	BusRoutes []BusRoute `yaml:"bus_routes"`

	stopIdx map[int]int
}

func (m *Map) Name() string { return m.MapName }

func (m *Map) Route(name string) (BusRoute, bool) {
	for _, r := range m.BusRoutes {
		if r.Name == name {
			return r, true
		}
	}
	return BusRoute{}, false
}

func (m *Map) Stop(id int) (BusStop, bool) {
	if m.stopIdx == nil {
		m.index()
	}
	i, ok := m.stopIdx[id]
	if !ok {
		return BusStop{}, false
	}
	return m.BusStops[i], true
}

func (m *Map) index() {
	m.stopIdx = make(map[int]int, len(m.BusStops))
	for i, s := range m.BusStops {
		m.stopIdx[s.ID] = i
	}
}

func (m *Map) Validate() error {
	if strings.TrimSpace(m.MapName) == "" {
		return fmt.Errorf("map: empty name")
	}
	if len(m.Buildings) == 0 {
		return fmt.Errorf("map %s: no buildings", m.MapName)
	}
	m.index()
	seen := map[string]bool{}
	for _, r := range m.BusRoutes {
		if r.Name == "" {
			return fmt.Errorf("map %s: bus route without name", m.MapName)
		}
		if seen[r.Name] {
			return fmt.Errorf("map %s: duplicate bus route %q", m.MapName, r.Name)
		}
		seen[r.Name] = true
		if len(r.Stops) < 2 {
			return fmt.Errorf("map %s: route %s needs at least 2 stops", m.MapName, r.Name)
		}
		for _, id := range r.Stops {
			if _, ok := m.stopIdx[id]; !ok {
				return fmt.Errorf("map %s: route %s references unknown stop %d", m.MapName, r.Name, id)
			}
		}
	}
	return nil
}

// MapStore reads maps from <dir>/<name>.yaml.
type MapStore struct {
	dir string
}

func NewMapStore(dataDir string) *MapStore {
	return &MapStore{dir: filepath.Join(dataDir, "maps")}
}

func (s *MapStore) Path(name string) string {
	return filepath.Join(s.dir, name+".yaml")
}

func (s *MapStore) Load(name string) (*Map, error) {
	return LoadMap(s.Path(name))
}

func (s *MapStore) Save(m *Map) error {
	return WriteMap(s.Path(m.Name()), m)
}

func (s *MapStore) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		out = append(out, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	sort.Strings(out)
	return out, nil
}

func LoadMap(path string) (*Map, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, ErrMapNotFound)
		}
		return nil, err
	}
	var m Map
	if err := yaml.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

func WriteMap(path string, m *Map) error {
	if err := m.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := yaml.Marshal(m)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

// StaticMaps serves maps held in memory; used by headless tools and tests.
type StaticMaps map[string]*Map

func (s StaticMaps) Load(name string) (*Map, error) {
	m, ok := s[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, ErrMapNotFound)
	}
	return m, nil
}

func (s StaticMaps) List() ([]string, error) {
	out := make([]string, 0, len(s))
	for name := range s {
		out = append(out, name)
	}
	sort.Strings(out)
	return out, nil
}
