package ws

import (
	"encoding/json"
	"io"
	"log"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"trafficsandbox.ai/internal/persistence/prebaked"
	"trafficsandbox.ai/internal/persistence/scenariostore"
	"trafficsandbox.ai/internal/protocol"
	"trafficsandbox.ai/internal/sandbox"
	"trafficsandbox.ai/internal/sandbox/gameplay"
	"trafficsandbox.ai/internal/sandbox/session"
	"trafficsandbox.ai/internal/sim/world"
	"trafficsandbox.ai/internal/ui"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	dir := t.TempDir()
	scenarios, err := scenariostore.Open(dir)
	if err != nil {
		t.Fatalf("open scenarios: %v", err)
	}
	maps := world.StaticMaps{"grid_5x5": world.Synthetic("grid_5x5", 5, 1)}
	logger := log.New(io.Discard, "", 0)

	factory := func(mode gameplay.GameplayMode) (*session.Manager, error) {
		app, err := sandbox.NewApp(sandbox.Flags{
			SimFlags: sandbox.SimFlags{Load: "grid_5x5", RNGSeed: 1},
			DataDir:  dir,
		}, sandbox.Deps{Log: logger, Maps: maps, Scenarios: scenarios, Baselines: prebaked.NewStore(dir)})
		if err != nil {
			return nil, err
		}
		if mode == nil {
			mode = gameplay.Freeform{}
		}
		return session.New(ui.NewEventCtx(ui.Input{}, logger), app, mode)
	}
	srv := httptest.NewServer(NewServer(factory, logger).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func send(t *testing.T, conn *websocket.Conn, v any) {
	t.Helper()
	if err := conn.WriteJSON(v); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func read(t *testing.T, conn *websocket.Conn, wantType string, out any) {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	base, err := protocol.DecodeBase(msg)
	if err != nil || base.Type != wantType {
		t.Fatalf("expected %s, got %s", wantType, msg)
	}
	if out != nil {
		if err := json.Unmarshal(msg, out); err != nil {
			t.Fatalf("decode %s: %v", wantType, err)
		}
	}
}

func input(seq uint64, in protocol.InputMsg) protocol.InputMsg {
	in.Type = protocol.TypeInput
	in.ProtocolVersion = protocol.Version
	in.Seq = seq
	return in
}

func TestServer_FrameLoop(t *testing.T) {
	conn := dial(t, newTestServer(t))
	send(t, conn, protocol.HelloMsg{Type: protocol.TypeHello, ProtocolVersion: protocol.Version, PlayerName: "p1"})

	var welcome protocol.WelcomeMsg
	read(t, conn, protocol.TypeWelcome, &welcome)
	if welcome.Mode != "freeform" || welcome.MapName != "grid_5x5" || welcome.SessionID == "" || welcome.Baseline {
		t.Fatalf("welcome=%+v", welcome)
	}
	var frame protocol.FrameMsg
	read(t, conn, protocol.TypeFrame, &frame)
	if frame.Depth != 1 || len(frame.Blocks) == 0 {
		t.Fatalf("initial frame=%+v", frame)
	}

	send(t, conn, input(1, protocol.InputMsg{Key: "s"}))
	read(t, conn, protocol.TypeFrame, &frame)
	if frame.Seq != 1 || frame.Depth != 2 {
		t.Fatalf("wizard frame=%+v", frame)
	}

	send(t, conn, input(2, protocol.InputMsg{Choice: gameplay.JustBuses}))
	read(t, conn, protocol.TypeFrame, &frame)
	if frame.Mode != "play_scenario:just buses" || frame.Depth != 1 || frame.SimTime != "00:00:00.1" {
		t.Fatalf("scenario frame=%+v", frame)
	}

	send(t, conn, input(3, protocol.InputMsg{StepSeconds: 10}))
	read(t, conn, protocol.TypeFrame, &frame)
	if frame.SimTime != "00:00:10.1" {
		t.Fatalf("sim_time=%q", frame.SimTime)
	}

	send(t, conn, input(4, protocol.InputMsg{Key: "q"}))
	read(t, conn, protocol.TypeFrame, &frame)
	if !frame.Done || frame.Depth != 0 {
		t.Fatalf("final frame=%+v", frame)
	}
}

func TestServer_RejectsBadInput(t *testing.T) {
	conn := dial(t, newTestServer(t))
	send(t, conn, protocol.HelloMsg{Type: protocol.TypeHello, ProtocolVersion: protocol.Version})
	read(t, conn, protocol.TypeWelcome, nil)
	read(t, conn, protocol.TypeFrame, nil)

	send(t, conn, map[string]any{"type": "INPUT", "protocol_version": protocol.Version, "seq": 1, "step_seconds": -5})
	var e protocol.ErrorMsg
	read(t, conn, protocol.TypeError, &e)
	if e.Code != protocol.ErrProtoBadRequest {
		t.Fatalf("error=%+v", e)
	}
}

func TestServer_ModeFromHello(t *testing.T) {
	conn := dial(t, newTestServer(t))
	send(t, conn, protocol.HelloMsg{Type: protocol.TypeHello, ProtocolVersion: protocol.Version, Mode: "play_scenario:just buses"})
	var welcome protocol.WelcomeMsg
	read(t, conn, protocol.TypeWelcome, &welcome)
	if welcome.Scenario != gameplay.JustBuses {
		t.Fatalf("welcome=%+v", welcome)
	}
}

func TestServer_UnknownScenarioFailsHandshake(t *testing.T) {
	conn := dial(t, newTestServer(t))
	send(t, conn, protocol.HelloMsg{Type: protocol.TypeHello, ProtocolVersion: protocol.Version, Mode: "create_gridlock"})
	var e protocol.ErrorMsg
	read(t, conn, protocol.TypeError, &e)
	if e.Code != protocol.ErrModeFailed {
		t.Fatalf("error=%+v", e)
	}
}
