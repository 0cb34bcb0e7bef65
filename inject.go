package liquid

// syntheticPointerEvent represents a single injected pointer sample in
// screen coordinates.
type syntheticPointerEvent struct {
	x, y    float64
	present bool
}

// InjectMove queues a pointer sample at the given screen coordinates. The
// event is consumed on the next Update; while injected events are pending,
// real input is ignored.
func (s *Stage) InjectMove(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{x: x, y: y, present: true})
}

// InjectEnter queues a pointer sample at the center of the hover region.
func (s *Stage) InjectEnter() {
	b := s.hover.Bounds
	s.InjectMove(b.X+b.Width/2, b.Y+b.Height/2)
}

// InjectLeave queues the disappearance of the pointer.
func (s *Stage) InjectLeave() {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{
		x: s.hover.lastX, y: s.hover.lastY,
	})
}

// InjectPath queues moves linearly interpolated from (fromX, fromY) to
// (toX, toY) over the given number of frames. Minimum frames is 2.
func (s *Stage) InjectPath(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	for i := 0; i < frames; i++ {
		t := float64(i) / float64(frames-1)
		s.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
}

// popInjected pops one event from the inject queue. It returns false when
// the queue is empty and real input should be used.
func (s *Stage) popInjected() (syntheticPointerEvent, bool) {
	if len(s.injectQueue) == 0 {
		return syntheticPointerEvent{}, false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]
	return evt, true
}
