package world

import (
	"fmt"
	"strings"
)

type TripMode int

const (
	Walk TripMode = iota
	Bike
	Transit
	Drive
)

var tripModeNames = [...]string{
	Walk:    "walk",
	Bike:    "bike",
	Transit: "transit",
	Drive:   "drive",
}

// meters per second, before congestion
var freeFlowSpeed = [...]float64{
	Walk:    1.4,
	Bike:    4.5,
	Transit: 6.0,
	Drive:   11.0,
}

func AllTripModes() []TripMode { return []TripMode{Walk, Bike, Transit, Drive} }

func (m TripMode) String() string {
	if m < 0 || int(m) >= len(tripModeNames) {
		return fmt.Sprintf("TripMode(%d)", int(m))
	}
	return tripModeNames[m]
}

// Ongoing renders the mode as used in sentences like "Finished bike trips".
func (m TripMode) Ongoing() string {
	switch m {
	case Walk:
		return "walking"
	case Bike:
		return "biking"
	case Transit:
		return "using transit"
	case Drive:
		return "driving"
	}
	return m.String()
}

func ParseTripMode(s string) (TripMode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, n := range tripModeNames {
		if n == s {
			return TripMode(i), nil
		}
	}
	return 0, fmt.Errorf("unknown trip mode %q", s)
}

func (m TripMode) MarshalText() ([]byte, error) {
	if m < 0 || int(m) >= len(tripModeNames) {
		return nil, fmt.Errorf("unknown trip mode %d", int(m))
	}
	return []byte(tripModeNames[m]), nil
}

func (m *TripMode) UnmarshalText(b []byte) error {
	parsed, err := ParseTripMode(string(b))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
