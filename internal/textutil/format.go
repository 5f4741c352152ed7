package textutil

import (
	"fmt"
	"math"
	"strings"
)

// FormatClock renders a duration in seconds as h:mm:ss, or m:ss when the
// duration is below one hour. Negative values render as 0:00.
func FormatClock(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(seconds)
	m, s := total/60, total%60
	h := m / 60
	m %= 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// FormatCompact renders a number of seconds in a compact style suitable for
// filenames: 65 becomes "01m05s", 3661 becomes "01h01m01s".
func FormatCompact(seconds float64) string {
	total := int(math.Round(math.Max(0, seconds)))
	m, s := total/60, total%60
	h := m / 60
	m %= 60
	switch {
	case h > 0:
		return fmt.Sprintf("%02dh%02dm%02ds", h, m, s)
	case m > 0:
		return fmt.Sprintf("%02dm%02ds", m, s)
	default:
		return fmt.Sprintf("%02ds", s)
	}
}

// FormatFadeLabel renders a fade duration for filename suffixes, e.g. "f1s"
// for a whole second count and "f2.5s" otherwise.
func FormatFadeLabel(fade float64) string {
	if fade == math.Trunc(fade) {
		return fmt.Sprintf("f%ds", int(fade))
	}
	label := strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.1f", fade), "0"), ".")
	return "f" + label + "s"
}

// Ternary is a generic conditional helper that returns a if cond is true, b otherwise.
func Ternary[T any](cond bool, a, b T) T {
	if cond {
		return a
	}
	return b
}
