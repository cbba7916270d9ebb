// Package progress renders cosmetic activity indicators on stderr. Nothing
// here feeds back into the pipeline's results; every indicator can be
// stopped unconditionally.
package progress

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

const barWidth = 30

// Bar renders a fixed-width progress bar for the given percentage.
func Bar(percent int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := barWidth * percent / 100
	return strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
}

// BarReporter prints a single-line progress bar, updating only when the
// percentage has advanced enough to matter. The throttle state is local to
// the reporter; concurrent runs never share it.
type BarReporter struct {
	w     io.Writer
	label string
	last  int
}

func NewBarReporter(w io.Writer, label string) *BarReporter {
	return &BarReporter{w: w, label: label, last: -1}
}

// Update redraws the bar when percent advanced by at least 5 points or
// reached 100.
func (r *BarReporter) Update(percent int) {
	if percent > 100 {
		percent = 100
	}
	if percent < 100 && percent < r.last+5 {
		return
	}
	r.last = percent
	fmt.Fprintf(r.w, "\r%s: [%s] %d%%", r.label, Bar(percent), percent)
}

// Done clears the bar's line.
func (r *BarReporter) Done() {
	fmt.Fprintf(r.w, "\r%s\r", strings.Repeat(" ", 80))
}

// Spinner shows a braille spinner with elapsed time while a long wait is in
// flight. Start launches the drawing goroutine; Stop cancels it and clears
// the line. Stop is idempotent.
type Spinner struct {
	w     io.Writer
	label string

	mu      sync.Mutex
	stop    chan struct{}
	stopped bool
	done    sync.WaitGroup
}

func NewSpinner(w io.Writer, label string) *Spinner {
	return &Spinner{w: w, label: label}
}

func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stop != nil {
		return
	}
	s.stop = make(chan struct{})
	s.stopped = false
	s.done.Add(1)
	go s.run(s.stop)
}

func (s *Spinner) run(stop chan struct{}) {
	defer s.done.Done()
	frames := []rune("⠋⠙⠹⠸⠼⠴⠦⠧⠇⠏")
	start := time.Now()
	tick := time.NewTicker(100 * time.Millisecond)
	defer tick.Stop()
	idx := 0
	for {
		select {
		case <-stop:
			fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", 80))
			return
		case <-tick.C:
			elapsed := int(time.Since(start).Seconds())
			fmt.Fprintf(s.w, "\r%s %c %02d:%02d", s.label, frames[idx%len(frames)], elapsed/60, elapsed%60)
			idx++
		}
	}
}

// Stop halts the spinner and waits for its line to be cleared.
func (s *Spinner) Stop() {
	s.mu.Lock()
	if s.stop == nil || s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	close(s.stop)
	s.mu.Unlock()
	s.done.Wait()
}
