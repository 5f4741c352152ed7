package progress

import (
	"bytes"
	"testing"
)

func TestBarFill(t *testing.T) {
	cases := []struct {
		i, total int
		want     string
	}{
		{0, 4, "--------"},
		{2, 4, "####----"},
		{4, 4, "########"},
	}
	for _, tc := range cases {
		if got := Bar(8, tc.i, tc.total); got != tc.want {
			t.Fatalf("Bar(8, %d, %d) = %q, want %q", tc.i, tc.total, got, tc.want)
		}
	}
}

func TestBarZeroTotal(t *testing.T) {
	if got := Bar(4, 1, 0); got != "----" {
		t.Fatalf("expected empty bar for zero total, got %q", got)
	}
}

func TestLineSilentOffTerminal(t *testing.T) {
	var buf bytes.Buffer
	line := NewLine(&buf)
	line.Update("working 1/3")
	line.Done()
	if buf.Len() != 0 {
		t.Fatalf("expected no output on non-terminal writer, got %q", buf.String())
	}
}
