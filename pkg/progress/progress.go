// Package progress renders a single-line terminal progress bar.
package progress

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

const barWidth = 40

// Reporter draws download progress. The last value received is the one
// displayed, even when it is lower than the previous one: yt-dlp restarts at
// 0% for every stream it fetches. A disabled Reporter does nothing.
type Reporter struct {
	mu       sync.Mutex
	out      io.Writer
	enabled  bool
	current  float64
	drawn    bool
	finished bool
}

// New creates a reporter writing to out
func New(out io.Writer, enabled bool) *Reporter {
	return &Reporter{out: out, enabled: enabled}
}

// NewTerminal creates a reporter on stdout. It is disabled when show is
// false or stdout is not a terminal.
func NewTerminal(show bool) *Reporter {
	fd := os.Stdout.Fd()
	tty := isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	return New(colorable.NewColorableStdout(), show && tty)
}

// Enabled reports whether anything will be drawn
func (r *Reporter) Enabled() bool {
	return r.enabled
}

// Update records percent as the latest value and redraws
func (r *Reporter) Update(percent float64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.finished {
		return
	}
	r.current = clamp(percent)
	if !r.enabled {
		return
	}
	r.draw()
}

// Finish draws the completed bar and ends the line. Only the first call has an effect.
func (r *Reporter) Finish() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.finished {
		return
	}
	r.finished = true
	r.current = 100
	if !r.enabled {
		return
	}
	r.draw()
	fmt.Fprint(r.out, "\n")
}

// Abort clears the bar without marking it complete
func (r *Reporter) Abort() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.finished {
		return
	}
	r.finished = true
	if r.enabled && r.drawn {
		fmt.Fprint(r.out, "\r\033[2K")
	}
}

// Current returns the displayed percentage
func (r *Reporter) Current() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

func (r *Reporter) draw() {
	fmt.Fprintf(r.out, "\r\033[2K%s %5.1f%%", Bar(r.current, barWidth), r.current)
	r.drawn = true
}

// Bar renders percent as a bracketed bar of the given width
func Bar(percent float64, width int) string {
	filled := int(clamp(percent) / 100 * float64(width))
	var b strings.Builder
	b.WriteByte('[')
	switch {
	case filled >= width:
		b.WriteString(strings.Repeat("=", width))
	case filled > 0:
		b.WriteString(strings.Repeat("=", filled-1))
		b.WriteByte('>')
		b.WriteString(strings.Repeat(" ", width-filled))
	default:
		b.WriteString(strings.Repeat(" ", width))
	}
	b.WriteByte(']')
	return b.String()
}

func clamp(p float64) float64 {
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	default:
		return p
	}
}
