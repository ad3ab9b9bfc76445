package gameplay

import (
	"trafficsandbox.ai/internal/sandbox"
	"trafficsandbox.ai/internal/sandbox/overlays"
	"trafficsandbox.ai/internal/sandbox/render"
	"trafficsandbox.ai/internal/ui/menu"
)

// manageOverlays keeps the show/hide label in line with whether the overlay
// is active, then applies this frame's press. It returns true when the caller
// should (re)build the overlay.
func manageOverlays(m *menu.Menu, p *menu.Press, show, hide string, ov *overlays.Overlays, activeOriginally, timeChanged bool) bool {
	// The overlay can also be changed from outside this menu.
	syncLabel(m, show, hide, activeOriginally)

	switch {
	case !activeOriginally && m.SwapAction(show, hide, p):
		return true
	case activeOriginally && m.SwapAction(hide, show, p):
		*ov = overlays.Inactive()
		return false
	default:
		return activeOriginally && timeChanged
	}
}

func manageAgentColorScheme(m *menu.Menu, p *menu.Press, app *sandbox.App, show, hide string, acs render.AgentColorScheme) {
	activeOriginally := app.AgentCS == acs
	syncLabel(m, show, hide, activeOriginally)

	switch {
	case !activeOriginally && m.SwapAction(show, hide, p):
		app.AgentCS = acs
	case activeOriginally && m.SwapAction(hide, show, p):
		app.AgentCS = render.VehicleTypes
	}
}

func syncLabel(m *menu.Menu, show, hide string, active bool) {
	if active {
		m.MaybeChangeAction(show, hide)
	} else {
		m.MaybeChangeAction(hide, show)
	}
}
