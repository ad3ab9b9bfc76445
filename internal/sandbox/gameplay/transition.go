package gameplay

import (
	"trafficsandbox.ai/internal/sandbox"
	"trafficsandbox.ai/internal/ui"
)

// Screen is one entry of the session's screen stack.
type Screen interface {
	Event(ctx *ui.EventCtx, app *sandbox.App) *Transition
	Draw(c ui.Canvas)
}

type TransitionKind int

const (
	Pop TransitionKind = iota
	Push
	PopThenReplace
)

func (k TransitionKind) String() string {
	switch k {
	case Pop:
		return "pop"
	case Push:
		return "push"
	case PopThenReplace:
		return "pop_then_replace"
	default:
		return "unknown"
	}
}

// Transition asks the enclosing session to change screens. Push carries the
// pushed Screen. PopThenReplace carries the mode to start and, when the map
// changes, the flags to rebuild the app with.
type Transition struct {
	Kind   TransitionKind
	Screen Screen
	Mode   GameplayMode
	Flags  *sandbox.Flags
}

func popTransition() *Transition { return &Transition{Kind: Pop} }

func pushTransition(s Screen) *Transition { return &Transition{Kind: Push, Screen: s} }

func replaceTransition(mode GameplayMode, flags *sandbox.Flags) *Transition {
	return &Transition{Kind: PopThenReplace, Mode: mode, Flags: flags}
}
