package ui

import (
	"bytes"
	"log"
	"strings"
	"testing"

	"trafficsandbox.ai/internal/sim/timer"
)

func TestEventCtx_LoadingScreenRunsToCompletion(t *testing.T) {
	var buf bytes.Buffer
	ctx := NewEventCtx(Input{}, log.New(&buf, "", 0))

	ran := false
	ctx.LoadingScreen("instantiate scenario", func(_ *EventCtx, tm *timer.Timer) {
		tm.Note("scheduled 3 trips")
		ran = true
	})
	if !ran {
		t.Fatalf("loading function did not run")
	}
	if !strings.Contains(buf.String(), "instantiate scenario") {
		t.Fatalf("log=%q", buf.String())
	}
}

func TestTextCanvas_Blocks(t *testing.T) {
	var c TextCanvas
	c.DrawBlock("a")
	c.DrawBlock("b")
	if c.String() != "a\nb" || len(c.Blocks()) != 2 {
		t.Fatalf("canvas=%q", c.String())
	}
}
