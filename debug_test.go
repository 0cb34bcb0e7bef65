package liquid

import (
	"bytes"
	"log"
	"strings"
	"testing"
	"time"
)

func TestAvg(t *testing.T) {
	if got := avg(10*time.Millisecond, 0); got != 0 {
		t.Errorf("avg over zero = %v, want 0", got)
	}
	if got := avg(10*time.Millisecond, 4); got != 2500*time.Microsecond {
		t.Errorf("avg = %v, want 2.5ms", got)
	}
}

func TestDebugLogOncePerSecond(t *testing.T) {
	var buf bytes.Buffer
	prev := Logger
	Logger = log.New(&buf, "", 0)
	defer func() { Logger = prev }()

	s := newTestStage(t)
	s.SetDebugMode(true)

	// First call only starts the window.
	s.debugLog()
	if buf.Len() != 0 {
		t.Fatalf("unexpected output %q", buf.String())
	}

	s.stats.since = time.Now().Add(-2 * time.Second)
	s.stats.ticks, s.stats.frames = 120, 118
	s.debugLog()
	out := buf.String()
	if !strings.Contains(out, "ticks: 120") || !strings.Contains(out, "frames: 118") {
		t.Errorf("log = %q", out)
	}
	if s.stats.ticks != 0 {
		t.Error("stats not reset after logging")
	}

	buf.Reset()
	s.debugLog()
	if buf.Len() != 0 {
		t.Errorf("logged again within a second: %q", buf.String())
	}
}

func TestDebugLogDisabled(t *testing.T) {
	var buf bytes.Buffer
	prev := Logger
	Logger = log.New(&buf, "", 0)
	defer func() { Logger = prev }()

	s := newTestStage(t)
	s.stats.since = time.Now().Add(-time.Hour)
	s.debugLog()
	if buf.Len() != 0 {
		t.Errorf("logged with debug off: %q", buf.String())
	}
}
