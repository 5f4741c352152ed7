// Package progress renders a single self-overwriting console line for
// long-running batch operations. On non-terminal outputs the line is
// suppressed entirely; structured logs remain the durable record.
package progress

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// Line keeps one console line alive via carriage returns.
type Line struct {
	w       io.Writer
	enabled bool
	lastLen int
	active  bool
}

// NewLine builds a Line writing to w. Rendering only happens when w is a
// terminal; everywhere else Update and Done are no-ops.
func NewLine(w io.Writer) *Line {
	line := &Line{w: w}
	if f, ok := w.(*os.File); ok {
		line.enabled = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return line
}

// Update replaces the current line with text.
func (l *Line) Update(text string) {
	if !l.enabled {
		return
	}
	text = strings.NewReplacer("\r", " ", "\n", " ").Replace(text)
	fmt.Fprint(l.w, "\r"+text)
	if pad := l.lastLen - len(text); pad > 0 {
		fmt.Fprint(l.w, strings.Repeat(" ", pad), "\r"+text)
	}
	l.lastLen = len(text)
	l.active = true
}

// Done terminates the live line with a newline if anything was rendered.
func (l *Line) Done() {
	if l.enabled && l.active {
		fmt.Fprintln(l.w)
	}
	l.lastLen = 0
	l.active = false
}

// Bar renders a fixed-width progress bar for step i of total.
func Bar(width, i, total int) string {
	if total <= 0 || width <= 0 {
		return strings.Repeat("-", max(width, 0))
	}
	filled := int(float64(width)*float64(i)/float64(total) + 0.5)
	if filled > width {
		filled = width
	}
	return strings.Repeat("#", filled) + strings.Repeat("-", width-filled)
}
