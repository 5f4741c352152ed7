package timecode

import (
	"errors"
	"testing"
)

func TestParseToken(t *testing.T) {
	tests := []struct {
		token    string
		expected float64
	}{
		{"90", 90},
		{"12.5", 12.5},
		{"90s", 90},
		{"5m", 300},
		{"1h", 3600},
		{"1:30", 90},
		{"01:02:03", 3723},
		{"0:00", 0},
		{" 1:30 ", 90},
		{"2.5m", 150},
	}
	for _, tt := range tests {
		got, err := ParseToken(tt.token)
		if err != nil {
			t.Fatalf("ParseToken(%q) returned error: %v", tt.token, err)
		}
		if got != tt.expected {
			t.Fatalf("ParseToken(%q) = %v, want %v", tt.token, got, tt.expected)
		}
	}
}

func TestParseTokenRejectsInvalidInput(t *testing.T) {
	for _, token := range []string{"", "abc", "1:2:3:4", "1;30", "90x", "-5", "1:xx"} {
		if _, err := ParseToken(token); !errors.Is(err, ErrInvalidFormat) {
			t.Fatalf("ParseToken(%q) error = %v, want ErrInvalidFormat", token, err)
		}
	}
}
