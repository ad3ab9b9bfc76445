package gameplay

import (
	"github.com/dustin/go-humanize"

	"trafficsandbox.ai/internal/sim/geom"
	"trafficsandbox.ai/internal/ui/text"
)

// CmpDurationShorter compares a live duration against the baseline. Shorter
// is better.
func CmpDurationShorter(now, baseline geom.Duration) []text.Span {
	switch {
	case now.EpsilonEq(baseline):
		return []text.Span{text.Line(" (same as baseline)")}
	case now < baseline:
		return []text.Span{
			text.Line(" ("),
			text.Line((baseline - now).MinimalString()).Fg(text.Green),
			text.Line(" faster)"),
		}
	default:
		return []text.Span{
			text.Line(" ("),
			text.Line((now - baseline).MinimalString()).Fg(text.Red),
			text.Line(" slower)"),
		}
	}
}

// CmpCountFewer compares counts where fewer is better.
func CmpCountFewer(now, baseline int) text.Span {
	return cmpCount(now, baseline, text.Green, text.Red)
}

// CmpCountMore compares counts where more is better.
func CmpCountMore(now, baseline int) text.Span {
	return cmpCount(now, baseline, text.Red, text.Green)
}

func cmpCount(now, baseline int, fewer, more text.Color) text.Span {
	switch {
	case now == baseline:
		return text.Line("same as baseline")
	case now < baseline:
		return text.Line(humanize.Comma(int64(baseline-now)) + " fewer").Fg(fewer)
	default:
		return text.Line(humanize.Comma(int64(now-baseline)) + " more").Fg(more)
	}
}
