// Package timer tracks nested phases of long synchronous work (loading a map,
// instantiating a scenario) and logs how long each phase took.
package timer

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

type span struct {
	name  string
	start time.Time
}

type Timer struct {
	name  string
	log   *log.Logger
	now   func() time.Time
	start time.Time

	stack []span
	notes []string
}

func New(name string, logger *log.Logger) *Timer {
	t := &Timer{name: name, log: logger, now: time.Now}
	t.start = t.now()
	return t
}

// Throwaway returns a timer that records notes but never logs.
func Throwaway() *Timer { return New("throwaway", nil) }

func (t *Timer) Start(name string) {
	t.stack = append(t.stack, span{name: name, start: t.now()})
}

func (t *Timer) Stop(name string) {
	if len(t.stack) == 0 {
		panic(fmt.Sprintf("timer %s: Stop(%q) with nothing started", t.name, name))
	}
	top := t.stack[len(t.stack)-1]
	if top.name != name {
		panic(fmt.Sprintf("timer %s: Stop(%q) but %q is running", t.name, name, top.name))
	}
	t.stack = t.stack[:len(t.stack)-1]
	t.logf("%s- %s took %s", strings.Repeat("  ", len(t.stack)), name, t.now().Sub(top.start).Round(time.Millisecond))
}

func (t *Timer) Note(msg string) {
	t.notes = append(t.notes, msg)
	t.logf("%s%s", strings.Repeat("  ", len(t.stack)), msg)
}

// NoteCount records "<n> <what>" with thousands separators.
func (t *Timer) NoteCount(n int, what string) {
	t.Note(humanize.Comma(int64(n)) + " " + what)
}

func (t *Timer) Notes() []string { return append([]string(nil), t.notes...) }

// Done closes the timer. Any phase still running is a programming error.
func (t *Timer) Done() time.Duration {
	if len(t.stack) != 0 {
		panic(fmt.Sprintf("timer %s: Done with %q still running", t.name, t.stack[len(t.stack)-1].name))
	}
	elapsed := t.now().Sub(t.start)
	t.logf("%s took %s", t.name, elapsed.Round(time.Millisecond))
	return elapsed
}

func (t *Timer) logf(format string, args ...any) {
	if t.log == nil {
		return
	}
	t.log.Printf(format, args...)
}
