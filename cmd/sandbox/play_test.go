package main

import (
	"testing"

	"trafficsandbox.ai/internal/ui"
)

func TestParseInputLine(t *testing.T) {
	cases := []struct {
		line string
		want ui.Input
		ok   bool
	}{
		{"", ui.Input{}, true},
		{"q", ui.Input{Key: "q"}, true},
		{"change scenario", ui.Input{Key: "change scenario"}, true},
		{":just buses", ui.Input{Choice: "just buses"}, true},
		{"esc", ui.Input{Escape: true}, true},
		{"+30", ui.Input{Step: 30}, true},
		{"+abc", ui.Input{}, false},
		{"+-1", ui.Input{}, false},
	}
	for _, tc := range cases {
		got, ok := parseInputLine(tc.line)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("parseInputLine(%q)=%+v,%v want %+v,%v", tc.line, got, ok, tc.want, tc.ok)
		}
	}
}
