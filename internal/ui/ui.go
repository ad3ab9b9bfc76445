// Package ui holds the per-frame plumbing shared by every screen: the input a
// frame carries, the context handed to event handlers and the canvas screens
// draw onto.
package ui

import (
	"log"
	"strings"
	"time"

	"trafficsandbox.ai/internal/sim/timer"
)

// Input is one frame of player input. At most one of the fields is normally
// set: a pressed hotkey, a choice picked in a wizard, or escape.
type Input struct {
	Key    string  `json:"key,omitempty"`
	Choice string  `json:"choice,omitempty"`
	Escape bool    `json:"escape,omitempty"`
	Step   float64 `json:"step_seconds,omitempty"`
}

type EventCtx struct {
	Input Input
	Log   *log.Logger
}

func NewEventCtx(in Input, logger *log.Logger) *EventCtx {
	return &EventCtx{Input: in, Log: logger}
}

// LoadingScreen runs fn to completion as one named loading phase. Nothing
// else happens on this frame until fn returns.
func (ctx *EventCtx) LoadingScreen(name string, fn func(ctx *EventCtx, t *timer.Timer)) time.Duration {
	t := timer.New(name, ctx.Log)
	fn(ctx, t)
	return t.Done()
}

type Canvas interface {
	DrawBlock(s string)
}

// TextCanvas collects drawn blocks in order.
type TextCanvas struct {
	blocks []string
}

func (c *TextCanvas) DrawBlock(s string) { c.blocks = append(c.blocks, s) }

func (c *TextCanvas) Blocks() []string { return append([]string(nil), c.blocks...) }

func (c *TextCanvas) String() string { return strings.Join(c.blocks, "\n") }
