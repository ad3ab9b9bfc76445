package text

import "testing"

func TestText_AppendAndPlain(t *testing.T) {
	var txt Text
	txt.Append(Line("12 trips"))
	txt.Append(Line(" ("), Line("3 more").Fg(Green), Line(")"))
	txt.AddLine(Line("second"))

	if txt.NumLines() != 2 {
		t.Fatalf("NumLines=%d", txt.NumLines())
	}
	if got := txt.Plain(); got != "12 trips (3 more)\nsecond" {
		t.Fatalf("Plain=%q", got)
	}
}

func TestSpan_DefaultRendersVerbatim(t *testing.T) {
	if got := Line("same as baseline").Render(); got != "same as baseline" {
		t.Fatalf("Render=%q", got)
	}
	if c := Line("x").Fg(Red).Color; c != Red {
		t.Fatalf("Fg did not set colour: %v", c)
	}
}
