package progress

import (
	"bytes"
	"strings"
	"testing"
)

func TestBarBounds(t *testing.T) {
	if got := Bar(0); strings.Contains(got, "█") {
		t.Errorf("Bar(0) should be empty, got %q", got)
	}
	if got := Bar(100); strings.Contains(got, "░") {
		t.Errorf("Bar(100) should be full, got %q", got)
	}
	if got := Bar(150); got != Bar(100) {
		t.Errorf("Bar should clamp above 100")
	}
	if got := Bar(-5); got != Bar(0) {
		t.Errorf("Bar should clamp below 0")
	}
}

func TestBarReporterThrottles(t *testing.T) {
	var buf bytes.Buffer
	r := NewBarReporter(&buf, "Uploading")

	r.Update(0)
	first := buf.Len()
	if first == 0 {
		t.Fatal("first update should draw")
	}
	r.Update(2) // below the 5-point step
	if buf.Len() != first {
		t.Fatal("update below the throttle step should not redraw")
	}
	r.Update(5)
	if buf.Len() == first {
		t.Fatal("update at the throttle step should redraw")
	}
	before := buf.Len()
	r.Update(100)
	if buf.Len() == before {
		t.Fatal("reaching 100 must always draw")
	}
}

func TestSpinnerStopIdempotent(t *testing.T) {
	var buf bytes.Buffer
	s := NewSpinner(&buf, "Processing")
	s.Start()
	s.Stop()
	s.Stop() // second stop must not panic or block
}

func TestSpinnerStopWithoutStart(t *testing.T) {
	s := NewSpinner(&bytes.Buffer{}, "Processing")
	s.Stop()
}
