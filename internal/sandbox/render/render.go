package render

import "fmt"

// AgentColorScheme picks how agents are coloured on the map.
type AgentColorScheme int

const (
	VehicleTypes AgentColorScheme = iota
	Delay
	TripTimeSoFar
)

var schemeNames = [...]string{
	VehicleTypes:  "vehicle types",
	Delay:         "delay",
	TripTimeSoFar: "trip time so far",
}

func (s AgentColorScheme) String() string {
	if s < 0 || int(s) >= len(schemeNames) {
		return fmt.Sprintf("AgentColorScheme(%d)", int(s))
	}
	return schemeNames[s]
}
