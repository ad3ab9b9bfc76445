package menu

import (
	"strings"
	"testing"

	"trafficsandbox.ai/internal/ui"
)

func press(t *testing.T, m *Menu, key string) *Press {
	t.Helper()
	return m.Event(ui.NewEventCtx(ui.Input{Key: key}, nil))
}

func TestMenu_EventMatchesHotkeyOrLabel(t *testing.T) {
	m := New("Freeform mode", []Action{{Key: "n", Label: "change map"}, {Key: "q", Label: "quit"}})

	if p := press(t, m, "n"); p.Label() != "change map" {
		t.Fatalf("hotkey press=%q", p.Label())
	}
	if p := press(t, m, "quit"); p.Label() != "quit" {
		t.Fatalf("label press=%q", p.Label())
	}
	if p := press(t, m, "x"); p != nil {
		t.Fatalf("unknown key produced press %q", p.Label())
	}
}

func TestMenu_SwapActionConsumesOnce(t *testing.T) {
	m := New("Optimize bus", []Action{{Key: "r", Label: "show bus route"}})
	p := press(t, m, "r")

	if !m.SwapAction("show bus route", "hide bus route", p) {
		t.Fatalf("expected swap")
	}
	if m.SwapAction("hide bus route", "show bus route", p) {
		t.Fatalf("press was reused")
	}
	if !m.HasAction("hide bus route") || m.HasAction("show bus route") {
		t.Fatalf("labels=%v", m.Labels())
	}
	// Hotkey follows the relabelled action.
	if p := press(t, m, "r"); p.Label() != "hide bus route" {
		t.Fatalf("press after swap=%q", p.Label())
	}
}

func TestMenu_MaybeChangeActionMissingIsNoop(t *testing.T) {
	m := New("x", []Action{{Key: "a", Label: "show agent delay"}})
	m.MaybeChangeAction("hide agent delay", "show agent delay")
	if got := m.Labels(); len(got) != 1 || got[0] != "show agent delay" {
		t.Fatalf("labels=%v", got)
	}
}

func TestMenu_DrawIncludesActions(t *testing.T) {
	m := New("Freeform mode", []Action{{Key: "q", Label: "quit"}})
	m.DisableStandaloneLayout()
	var c ui.TextCanvas
	m.Draw(&c)
	if !strings.Contains(c.String(), "quit") || !strings.Contains(c.String(), "Freeform mode") {
		t.Fatalf("draw=%q", c.String())
	}
}
