package ws

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"trafficsandbox.ai/internal/protocol"
	"trafficsandbox.ai/internal/sandbox/gameplay"
	"trafficsandbox.ai/internal/sandbox/session"
	"trafficsandbox.ai/internal/ui"
)

// SessionFactory starts a fresh session for one connection. A nil mode means
// the server's configured initial mode.
type SessionFactory func(mode gameplay.GameplayMode) (*session.Manager, error)

// Server runs one sandbox session per websocket connection. Every INPUT is
// applied on the connection's goroutine and answered with one FRAME.
type Server struct {
	newSession SessionFactory
	log        *log.Logger

	upgrader websocket.Upgrader
}

func NewServer(newSession SessionFactory, logger *log.Logger) *Server {
	s := &Server{
		newSession: newSession,
		log:        logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  16 * 1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true }, // dev default
		},
	}
	return s
}

func (s *Server) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		mgr := s.handshake(conn)
		if mgr == nil {
			return
		}

		for !mgr.Done() {
			_ = conn.SetReadDeadline(time.Now().Add(5 * time.Minute))
			_, msg, err := conn.ReadMessage()
			if err != nil {
				break
			}
			base, err := protocol.DecodeBase(msg)
			if err != nil || base.Type != protocol.TypeInput {
				_ = writeError(conn, 0, protocol.ErrProtoBadRequest, "expected INPUT")
				continue
			}
			if err := protocol.Validate(protocol.TypeInput, msg); err != nil {
				_ = writeError(conn, 0, protocol.ErrProtoBadRequest, err.Error())
				continue
			}
			var in protocol.InputMsg
			if err := json.Unmarshal(msg, &in); err != nil {
				continue
			}
			if in.ProtocolVersion != protocol.Version {
				_ = writeError(conn, in.Seq, protocol.ErrProtoBadRequest, "bad protocol_version")
				continue
			}

			ctx := ui.NewEventCtx(ui.Input{
				Key:    in.Key,
				Choice: in.Choice,
				Escape: in.Escape,
				Step:   in.StepSeconds,
			}, mgr.App().Log)
			// A failed mode switch keeps the previous screen; report it and
			// carry on.
			if err := mgr.Event(ctx); err != nil {
				if werr := writeError(conn, in.Seq, protocol.ErrModeFailed, err.Error()); werr != nil {
					break
				}
			}
			if err := writeJSON(conn, Frame(mgr, in.Seq)); err != nil {
				break
			}
		}
	}
}

func (s *Server) handshake(conn *websocket.Conn) *session.Manager {
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		return nil
	}

	base, err := protocol.DecodeBase(msg)
	if err != nil || base.Type != protocol.TypeHello || protocol.Validate(protocol.TypeHello, msg) != nil {
		_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "expected HELLO"), time.Now().Add(time.Second))
		return nil
	}

	var hello protocol.HelloMsg
	if err := json.Unmarshal(msg, &hello); err != nil {
		return nil
	}
	if hello.ProtocolVersion != protocol.Version {
		_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "bad protocol_version"), time.Now().Add(time.Second))
		return nil
	}

	var mode gameplay.GameplayMode
	if m := strings.TrimSpace(hello.Mode); m != "" {
		mode, err = gameplay.ParseMode(m)
		if err != nil {
			_ = writeError(conn, 0, protocol.ErrBadMode, err.Error())
			return nil
		}
	}
	mgr, err := s.newSession(mode)
	if err != nil {
		if s.log != nil {
			s.log.Printf("ws: start session for %q: %v", hello.PlayerName, err)
		}
		_ = writeError(conn, 0, protocol.ErrModeFailed, err.Error())
		return nil
	}

	r := mgr.Runner()
	welcome := protocol.WelcomeMsg{
		Type:            protocol.TypeWelcome,
		ProtocolVersion: protocol.Version,
		SessionID:       mgr.SessionID(),
		MapName:         mgr.App().Primary.Map.Name(),
		Mode:            r.Mode.String(),
		Scenario:        r.Scenario,
		Baseline:        r.HasBaseline,
	}
	if err := writeJSON(conn, welcome); err != nil {
		return nil
	}
	if err := writeJSON(conn, Frame(mgr, 0)); err != nil {
		return nil
	}
	return mgr
}

// Frame renders the session's current screen stack.
func Frame(mgr *session.Manager, seq uint64) protocol.FrameMsg {
	var c ui.TextCanvas
	mgr.Draw(&c)
	app := mgr.App()
	f := protocol.FrameMsg{
		Type:            protocol.TypeFrame,
		ProtocolVersion: protocol.Version,
		Seq:             seq,
		SessionID:       mgr.SessionID(),
		MapName:         app.Primary.Map.Name(),
		SimTime:         app.Primary.Sim.Time().String(),
		AgentColors:     app.AgentCS.String(),
		Overlay:         mgr.Overlays().Kind().String(),
		Depth:           mgr.Depth(),
		Done:            mgr.Done(),
		Blocks:          c.Blocks(),
	}
	if r := mgr.Runner(); r != nil {
		f.Mode = r.Mode.String()
	}
	if f.Blocks == nil {
		f.Blocks = []string{}
	}
	return f
}

func writeError(conn *websocket.Conn, seq uint64, code, msg string) error {
	return writeJSON(conn, protocol.ErrorMsg{
		Type:            protocol.TypeError,
		ProtocolVersion: protocol.Version,
		Seq:             seq,
		Code:            code,
		Message:         msg,
	})
}

func writeJSON(conn *websocket.Conn, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	return conn.WriteMessage(websocket.TextMessage, b)
}
