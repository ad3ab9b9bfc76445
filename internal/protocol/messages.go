package protocol

// HELLO (client -> server)
type HelloMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	PlayerName      string `json:"player_name,omitempty"`
	// Mode overrides the server's initial mode, e.g. "optimize_bus:43".
	Mode string `json:"mode,omitempty"`
}

// WELCOME (server -> client)
type WelcomeMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	SessionID       string `json:"session_id"`
	MapName         string `json:"map_name"`
	Mode            string `json:"mode"`
	Scenario        string `json:"scenario,omitempty"`
	Baseline        bool   `json:"baseline"`
}

// INPUT (client -> server): one frame of player input.
type InputMsg struct {
	Type            string  `json:"type"`
	ProtocolVersion string  `json:"protocol_version"`
	Seq             uint64  `json:"seq"`
	Key             string  `json:"key,omitempty"`
	Choice          string  `json:"choice,omitempty"`
	Escape          bool    `json:"escape,omitempty"`
	StepSeconds     float64 `json:"step_seconds,omitempty"`
}

// FRAME (server -> client): the screen after applying one INPUT.
type FrameMsg struct {
	Type            string   `json:"type"`
	ProtocolVersion string   `json:"protocol_version"`
	Seq             uint64   `json:"seq"`
	SessionID       string   `json:"session_id"`
	MapName         string   `json:"map_name"`
	Mode            string   `json:"mode"`
	SimTime         string   `json:"sim_time"`
	AgentColors     string   `json:"agent_colors"`
	Overlay         string   `json:"overlay"`
	Depth           int      `json:"depth"`
	Done            bool     `json:"done,omitempty"`
	Blocks          []string `json:"blocks"`
}

type ErrorMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	Seq             uint64 `json:"seq,omitempty"`
	Code            string `json:"code"`
	Message         string `json:"message,omitempty"`
}
