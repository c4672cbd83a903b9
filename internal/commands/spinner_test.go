package commands

import (
	"strings"
	"testing"
	"time"
)

func TestSpinner_Lifecycle(t *testing.T) {
	out := &syncBuffer{}
	s := newSpinner(out, "Thinking")

	s.start()
	time.Sleep(200 * time.Millisecond)
	s.stopWithSuccess("Done")

	got := out.String()
	if !strings.Contains(got, "Thinking") {
		t.Errorf("expected spinner message in output, got %q", got)
	}
	if !strings.Contains(got, "Done") {
		t.Errorf("expected success message in output, got %q", got)
	}
	if !strings.Contains(got, "\033[?25h") {
		t.Error("cursor should be restored")
	}
}

func TestSpinner_StopTwice(t *testing.T) {
	out := &syncBuffer{}
	s := newSpinner(out, "Thinking")

	s.start()
	s.stopWithError()
	s.stopWithError()

	if strings.Contains(out.String(), "✓") {
		t.Error("error stop should not print a checkmark")
	}
}
