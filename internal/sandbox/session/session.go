// Package session owns one player's screen stack and applies the
// transitions gameplay screens ask for.
package session

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"trafficsandbox.ai/internal/observability"
	"trafficsandbox.ai/internal/persistence/indexdb"
	"trafficsandbox.ai/internal/sandbox"
	"trafficsandbox.ai/internal/sandbox/gameplay"
	"trafficsandbox.ai/internal/sandbox/overlays"
	"trafficsandbox.ai/internal/sim/geom"
	"trafficsandbox.ai/internal/ui"
)

// sandboxScreen is the bottom of the stack: the running mode plus the
// overlay drawn over the map.
type sandboxScreen struct {
	runner   *gameplay.Runner
	overlays overlays.Overlays
}

func (s *sandboxScreen) Event(ctx *ui.EventCtx, app *sandbox.App) *gameplay.Transition {
	if step := ctx.Input.Step; step > 0 {
		pm := app.Primary
		pm.Sim.Step(pm.Map, geom.Seconds(step))
	}
	return s.runner.Event(ctx, app, &s.overlays)
}

func (s *sandboxScreen) Draw(c ui.Canvas) {
	s.overlays.Draw(c)
	s.runner.Draw(c)
}

type Manager struct {
	app       *sandbox.App
	stack     []gameplay.Screen
	sessionID string
}

// New starts a session in mode. A mode that fails to initialize fails the
// session.
func New(ctx *ui.EventCtx, app *sandbox.App, mode gameplay.GameplayMode) (*Manager, error) {
	m := &Manager{app: app}
	s, err := m.start(ctx, mode)
	if err != nil {
		return nil, err
	}
	m.stack = []gameplay.Screen{s}
	return m, nil
}

func (m *Manager) start(ctx *ui.EventCtx, mode gameplay.GameplayMode) (*sandboxScreen, error) {
	_, span := observability.Tracer().Start(context.Background(), "sandbox.start_mode")
	defer span.End()
	span.SetAttributes(
		attribute.String("map", m.app.Primary.Map.Name()),
		attribute.String("mode", mode.String()),
	)

	r, err := gameplay.Initialize(ctx, mode, m.app)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(
		attribute.String("scenario", r.Scenario),
		attribute.Int("agents", r.Agents),
		attribute.Bool("baseline", r.HasBaseline),
	)
	flags := m.app.Primary.CurrentFlags
	m.sessionID = m.app.Index.RecordSession(indexdb.SessionRecord{
		MapName:  m.app.Primary.Map.Name(),
		Mode:     mode.String(),
		Scenario: r.Scenario,
		Agents:   r.Agents,
		Seed:     flags.RNGSeed,
		Baseline: r.HasBaseline,
	})
	return &sandboxScreen{runner: r, overlays: overlays.Inactive()}, nil
}

func (m *Manager) SessionID() string { return m.sessionID }

func (m *Manager) App() *sandbox.App { return m.app }

func (m *Manager) Done() bool { return len(m.stack) == 0 }

func (m *Manager) Depth() int { return len(m.stack) }

// Runner is the active gameplay runner, nil once the session is done.
func (m *Manager) Runner() *gameplay.Runner {
	if len(m.stack) == 0 {
		return nil
	}
	return m.stack[0].(*sandboxScreen).runner
}

func (m *Manager) Overlays() overlays.Overlays {
	if len(m.stack) == 0 {
		return overlays.Inactive()
	}
	return m.stack[0].(*sandboxScreen).overlays
}

// Event runs one frame on the top screen and applies its transition.
func (m *Manager) Event(ctx *ui.EventCtx) error {
	if m.Done() {
		return fmt.Errorf("session is over")
	}
	tr := m.stack[len(m.stack)-1].Event(ctx, m.app)
	if tr == nil {
		return nil
	}
	return m.apply(ctx, tr)
}

func (m *Manager) apply(ctx *ui.EventCtx, tr *gameplay.Transition) error {
	next := ""
	if tr.Mode != nil {
		next = tr.Mode.String()
	}
	m.app.Metrics.Transition(tr.Kind.String())
	m.app.Index.RecordTransition(m.sessionID, tr.Kind.String(), next)

	switch tr.Kind {
	case gameplay.Pop:
		m.stack = m.stack[:len(m.stack)-1]
	case gameplay.Push:
		m.stack = append(m.stack, tr.Screen)
	case gameplay.PopThenReplace:
		return m.replace(ctx, tr)
	default:
		return fmt.Errorf("unknown transition %v", tr.Kind)
	}
	return nil
}

// replace pops the wizard and swaps the sandbox screen for a new mode. When
// anything fails the previous screen stays.
func (m *Manager) replace(ctx *ui.EventCtx, tr *gameplay.Transition) error {
	m.stack = m.stack[:len(m.stack)-1]

	prevPrimary, prevCS := m.app.Primary, m.app.AgentCS
	if tr.Flags != nil {
		if err := m.app.Reload(*tr.Flags); err != nil {
			m.app.Log.Printf("switch map: %v", err)
			return err
		}
	} else {
		// Modes always start from a fresh sim on the same map.
		if err := m.app.Reload(m.app.Primary.CurrentFlags); err != nil {
			m.app.Log.Printf("reset sim: %v", err)
			return err
		}
	}

	s, err := m.start(ctx, tr.Mode)
	if err != nil {
		m.app.Primary, m.app.AgentCS = prevPrimary, prevCS
		m.app.Log.Printf("start %s: %v", tr.Mode, err)
		return err
	}
	if len(m.stack) == 0 {
		m.stack = append(m.stack, s)
	} else {
		m.stack[len(m.stack)-1] = s
	}
	return nil
}

func (m *Manager) Draw(c ui.Canvas) {
	for _, s := range m.stack {
		s.Draw(c)
	}
}
