package liquid

import (
	"time"
)

// debugStats accumulates per-frame timings between log lines.
// Only populated when Stage.debug is true.
type debugStats struct {
	since  time.Time
	update time.Duration
	draw   time.Duration
	ticks  int
	frames int
}

// debugLog prints average update and draw times about once per second.
func (s *Stage) debugLog() {
	if !s.debug {
		return
	}
	now := time.Now()
	if s.stats.since.IsZero() {
		s.stats.since = now
		return
	}
	if now.Sub(s.stats.since) < time.Second {
		return
	}
	st := s.stats
	Logger.Printf("ticks: %d | frames: %d | update avg: %v | draw avg: %v | blend: %.3f -> %.3f",
		st.ticks, st.frames, avg(st.update, st.ticks), avg(st.draw, st.frames),
		s.transition.Value(), s.transition.Target())
	s.stats = debugStats{since: now}
}

func avg(total time.Duration, n int) time.Duration {
	if n == 0 {
		return 0
	}
	return total / time.Duration(n)
}
