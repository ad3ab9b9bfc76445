package geom

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Duration is a span of simulated time in seconds.
type Duration float64

// epsilon is the tolerance used by EpsilonEq. Durations are compared at
// 0.1ms resolution.
const epsilon = 0.0001

const (
	Zero Duration = 0
)

func Seconds(s float64) Duration { return Duration(s) }
func Minutes(m float64) Duration { return Duration(m * 60) }
func Hours(h float64) Duration   { return Duration(h * 3600) }

func (d Duration) Seconds() float64 { return float64(d) }

func (d Duration) Abs() Duration {
	if d < 0 {
		return -d
	}
	return d
}

func (d Duration) EpsilonEq(other Duration) bool {
	return math.Abs(float64(d-other)) <= epsilon
}

// MinimalString renders the duration without zero components, e.g. "1h3m",
// "5m2.1s" or "0.5s".
func (d Duration) MinimalString() string {
	var b strings.Builder
	if d < 0 {
		b.WriteByte('-')
		d = -d
	}
	total := math.Round(float64(d)*10) / 10
	hours := int(total / 3600)
	total -= float64(hours) * 3600
	minutes := int(total / 60)
	secs := math.Round((total-float64(minutes)*60)*10) / 10

	if hours > 0 {
		fmt.Fprintf(&b, "%dh", hours)
	}
	if minutes > 0 {
		fmt.Fprintf(&b, "%dm", minutes)
	}
	if secs > 0 || (hours == 0 && minutes == 0) {
		b.WriteString(strconv.FormatFloat(secs, 'f', -1, 64))
		b.WriteByte('s')
	}
	return b.String()
}

func (d Duration) String() string { return d.MinimalString() }

// Time is seconds since midnight of the simulated day.
type Time float64

func (t Time) Add(d Duration) Time   { return t + Time(d) }
func (t Time) Sub(o Time) Duration   { return Duration(t - o) }
func (t Time) Seconds() float64      { return float64(t) }
func (t Time) Before(o Time) bool    { return t < o }
func (t Time) EpsilonEq(o Time) bool { return Duration(t - o).EpsilonEq(0) }

func (t Time) String() string {
	total := float64(t)
	hours := int(total / 3600)
	total -= float64(hours) * 3600
	minutes := int(total / 60)
	secs := total - float64(minutes)*60
	return fmt.Sprintf("%02d:%02d:%04.1f", hours, minutes, secs)
}

// Pt is a position in meters.
type Pt struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

func (p Pt) DistTo(o Pt) float64 {
	return math.Hypot(p.X-o.X, p.Y-o.Y)
}
