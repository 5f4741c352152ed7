package timecode

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalidFormat reports a time token that matches none of the accepted
// grammars.
var ErrInvalidFormat = errors.New("invalid time format")

var unitTokenPattern = regexp.MustCompile(`^(\d+(?:\.\d+)?)([hms])?$`)

// ParseToken converts a single time token into seconds.
//
// Accepted forms, in precedence order:
//
//	"90", "12.5"   plain seconds
//	"90s" "5m" "1h" number with unit suffix
//	"1:30"         minutes:seconds
//	"01:02:03"     hours:minutes:seconds
//
// Surrounding whitespace is trimmed before matching. Anything else fails
// with ErrInvalidFormat.
func ParseToken(token string) (float64, error) {
	token = strings.TrimSpace(token)

	if m := unitTokenPattern.FindStringSubmatch(token); m != nil {
		value, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, token)
		}
		switch m[2] {
		case "h":
			return value * 3600, nil
		case "m":
			return value * 60, nil
		default:
			return value, nil
		}
	}

	parts := strings.Split(token, ":")
	switch len(parts) {
	case 2:
		m, errM := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		s, errS := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if errM != nil || errS != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, token)
		}
		return m*60 + s, nil
	case 3:
		h, errH := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		m, errM := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		s, errS := strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
		if errH != nil || errM != nil || errS != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, token)
		}
		return h*3600 + m*60 + s, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, token)
	}
}
