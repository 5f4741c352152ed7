package timecode

import (
	"fmt"
	"math"
	"strings"
)

// splitEpsilon guards against a split point matching the reference time
// itself when looking for the nearest neighbour.
const splitEpsilon = 1e-6

// segment is the structured form of one spec segment during resolution:
// the range core and a verbatim fade suffix that must survive the rewrite.
type segment struct {
	core       string
	fadeSuffix string
}

// ResolveSplits rewrites relative split-point notation against the sorted
// splitPoints list:
//
//	"<TC>-sp"  from TC to the nearest split point after TC, or the total
//	           duration when none follows (or TC itself when the file is
//	           shorter, yielding a zero-length tail the parser then drops)
//	"sp-<TC>"  from the nearest split point before TC to TC, or 0.0
//
// Both resolved bounds are rounded to whole seconds so the rewritten spec
// stays in the plain-seconds grammar. Fade suffixes are preserved verbatim.
// Segments that fail to parse pass through unchanged, and an empty
// splitPoints list makes the whole function a no-op.
func ResolveSplits(spec string, splitPoints []float64, totalDuration float64) string {
	if spec == "" || len(splitPoints) == 0 {
		return spec
	}

	out := make([]string, 0, strings.Count(spec, ";")+1)
	for _, raw := range strings.Split(spec, ";") {
		seg, ok := newSegment(raw)
		if !ok {
			continue
		}
		out = append(out, seg.resolve(splitPoints, totalDuration).String())
	}
	return strings.Join(out, ";")
}

func newSegment(raw string) (segment, bool) {
	part := strings.TrimSpace(raw)
	if part == "" {
		return segment{}, false
	}
	if idx := strings.LastIndex(part, "@"); idx >= 0 {
		return segment{
			core:       strings.TrimSpace(part[:idx]),
			fadeSuffix: "@" + strings.TrimSpace(part[idx+1:]),
		}, true
	}
	return segment{core: part}, true
}

func (s segment) String() string {
	return s.core + s.fadeSuffix
}

// resolve rewrites the segment core when it uses split-point notation. Parse
// failures leave the segment untouched.
func (s segment) resolve(splitPoints []float64, totalDuration float64) segment {
	switch {
	case strings.HasPrefix(s.core, "sp-"):
		end, err := ParseToken(s.core[3:])
		if err != nil {
			return s
		}
		start := previousSplit(splitPoints, end)
		return segment{core: formatBounds(start, end), fadeSuffix: s.fadeSuffix}
	case strings.Contains(s.core, "-sp"):
		start, err := ParseToken(strings.ReplaceAll(s.core, "-sp", ""))
		if err != nil {
			return s
		}
		end := nextSplit(splitPoints, start, totalDuration)
		return segment{core: formatBounds(start, end), fadeSuffix: s.fadeSuffix}
	default:
		return s
	}
}

// nextSplit returns the nearest split point strictly after start, falling
// back to the total duration, or to start itself for files shorter than the
// reference time.
func nextSplit(splitPoints []float64, start, totalDuration float64) float64 {
	for _, sp := range splitPoints {
		if sp > start+splitEpsilon {
			return sp
		}
	}
	if totalDuration > start {
		return totalDuration
	}
	return start
}

// previousSplit returns the nearest split point strictly before end, or 0.
func previousSplit(splitPoints []float64, end float64) float64 {
	start := 0.0
	for _, sp := range splitPoints {
		if sp < end-splitEpsilon {
			start = sp
		}
	}
	return start
}

func formatBounds(start, end float64) string {
	return fmt.Sprintf("%d-%d", int(math.Round(start)), int(math.Round(end)))
}
