package geom

import "testing"

func TestDuration_MinimalString(t *testing.T) {
	cases := []struct {
		in   Duration
		want string
	}{
		{0, "0s"},
		{Seconds(0.5), "0.5s"},
		{Seconds(62.1), "1m2.1s"},
		{Minutes(5), "5m"},
		{Hours(1) + Minutes(3), "1h3m"},
		{Hours(2) + Seconds(4), "2h4s"},
		{-Seconds(3), "-3s"},
	}
	for _, tc := range cases {
		if got := tc.in.MinimalString(); got != tc.want {
			t.Fatalf("MinimalString(%v)=%q want %q", float64(tc.in), got, tc.want)
		}
	}
}

func TestDuration_EpsilonEq(t *testing.T) {
	if !Seconds(10).EpsilonEq(Seconds(10.00001)) {
		t.Fatalf("expected near-equal durations to compare equal")
	}
	if Seconds(10).EpsilonEq(Seconds(10.01)) {
		t.Fatalf("expected 10ms apart to differ")
	}
}

func TestTime_String(t *testing.T) {
	tm := Time(0).Add(Hours(7) + Minutes(5) + Seconds(3.2))
	if got := tm.String(); got != "07:05:03.2" {
		t.Fatalf("String()=%q", got)
	}
}
