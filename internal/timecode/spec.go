package timecode

import (
	"strconv"
	"strings"
)

// DefaultFade is the fade duration applied when a segment carries no "@"
// suffix, or when the suffix cannot be parsed.
const DefaultFade = 0.5

// Range is one resolved segment of a timecode specification. Start is always
// known (0 when the segment omitted it); Open marks a range that runs until
// the file end, in which case End is meaningless.
type Range struct {
	Start float64
	End   float64
	Open  bool
	Fade  float64
}

// Duration returns the closed range length, or 0 for open ranges.
func (r Range) Duration() float64 {
	if r.Open {
		return 0
	}
	return r.End - r.Start
}

// String serializes the range back into the mini-language form, including
// the fade suffix.
func (r Range) String() string {
	var b strings.Builder
	b.WriteString(formatSeconds(r.Start))
	b.WriteByte('-')
	if !r.Open {
		b.WriteString(formatSeconds(r.End))
	}
	b.WriteByte('@')
	b.WriteString(formatSeconds(r.Fade))
	return b.String()
}

// SerializeRanges joins ranges back into a specification string.
func SerializeRanges(ranges []Range) string {
	parts := make([]string, 0, len(ranges))
	for _, r := range ranges {
		parts = append(parts, r.String())
	}
	return strings.Join(parts, ";")
}

// ParseSpec splits a semicolon-delimited specification into ordered ranges.
// Empty segments are skipped. Segments whose closed end does not lie after
// their start are dropped and reported in the second return value; they never
// fail the whole specification. Segments with an unparsable bound produce an
// entry in dropped as well.
//
// defaultFade is applied to segments without an "@" suffix; pass a negative
// value to use DefaultFade.
func ParseSpec(spec string, defaultFade float64) (ranges []Range, dropped []string) {
	if defaultFade < 0 {
		defaultFade = DefaultFade
	}
	for _, part := range strings.Split(spec, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		rangePart, fade := splitFadeSuffix(part, defaultFade)
		if rangePart == "" {
			continue
		}

		r, err := parseRangePart(rangePart)
		if err != nil {
			dropped = append(dropped, part)
			continue
		}
		r.Fade = fade
		if !r.Open && r.End <= r.Start {
			dropped = append(dropped, part)
			continue
		}
		ranges = append(ranges, r)
	}
	return ranges, dropped
}

// splitFadeSuffix strips a trailing "@fade" from a segment. Negative or
// unparsable fade values fall back: negative clamps to 0, garbage reverts to
// the default.
func splitFadeSuffix(part string, defaultFade float64) (string, float64) {
	idx := strings.LastIndex(part, "@")
	if idx < 0 {
		return strings.TrimSpace(part), defaultFade
	}
	rangePart := strings.TrimSpace(part[:idx])
	fadePart := strings.TrimSpace(part[idx+1:])
	if fadePart == "" {
		return rangePart, defaultFade
	}
	fade, err := strconv.ParseFloat(fadePart, 64)
	if err != nil {
		return rangePart, defaultFade
	}
	if fade < 0 {
		fade = 0
	}
	return rangePart, fade
}

func parseRangePart(rangePart string) (Range, error) {
	switch {
	case !strings.Contains(rangePart, "-"):
		// "90" reads as 0-90.
		end, err := ParseToken(rangePart)
		if err != nil {
			return Range{}, err
		}
		return Range{Start: 0, End: end}, nil
	case strings.HasPrefix(rangePart, "-"):
		end, err := ParseToken(strings.TrimSpace(rangePart[1:]))
		if err != nil {
			return Range{}, err
		}
		return Range{Start: 0, End: end}, nil
	case strings.HasSuffix(rangePart, "-"):
		start, err := ParseToken(strings.TrimSpace(rangePart[:len(rangePart)-1]))
		if err != nil {
			return Range{}, err
		}
		return Range{Start: start, Open: true}, nil
	default:
		startPart, endPart, _ := strings.Cut(rangePart, "-")
		start, err := ParseToken(strings.TrimSpace(startPart))
		if err != nil {
			return Range{}, err
		}
		end, err := ParseToken(strings.TrimSpace(endPart))
		if err != nil {
			return Range{}, err
		}
		return Range{Start: start, End: end}, nil
	}
}

func formatSeconds(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
