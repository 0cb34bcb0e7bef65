package liquid

import "github.com/hajimehoshi/ebiten/v2"

// EventType identifies a kind of hover event.
type EventType uint8

const (
	EventPointerEnter EventType = iota // fires when the pointer enters the region
	EventPointerLeave                  // fires when the pointer leaves the region or disappears
)

// PointerContext carries the pointer position at the time of a hover event.
// For a leave caused by the pointer disappearing (last touch released),
// X and Y hold the last known position.
type PointerContext struct {
	X, Y float64
}

type pointerHandler struct {
	id uint32
	fn func(PointerContext)
}

// CallbackHandle allows removing a registered callback.
type CallbackHandle struct {
	id     uint32
	region *HoverRegion
	event  EventType
}

// Remove unregisters this callback. Safe to call more than once.
func (h CallbackHandle) Remove() {
	if h.region == nil {
		return
	}
	switch h.event {
	case EventPointerEnter:
		h.region.enter = removePointerHandler(h.region.enter, h.id)
	case EventPointerLeave:
		h.region.leave = removePointerHandler(h.region.leave, h.id)
	}
}

func removePointerHandler(s []pointerHandler, id uint32) []pointerHandler {
	for i, h := range s {
		if h.id == id {
			out := make([]pointerHandler, 0, len(s)-1)
			out = append(out, s[:i]...)
			return append(out, s[i+1:]...)
		}
	}
	return s
}

// HoverRegion turns a stream of pointer samples into enter and leave events
// for one rectangle. It fires only on transitions, never twice in a row for
// the same side.
type HoverRegion struct {
	Bounds Rect

	inside bool
	lastX  float64
	lastY  float64
	nextID uint32
	enter  []pointerHandler
	leave  []pointerHandler
}

// OnPointerEnter registers a callback for pointer enter events.
func (r *HoverRegion) OnPointerEnter(fn func(PointerContext)) CallbackHandle {
	r.nextID++
	r.enter = append(r.enter, pointerHandler{id: r.nextID, fn: fn})
	return CallbackHandle{id: r.nextID, region: r, event: EventPointerEnter}
}

// OnPointerLeave registers a callback for pointer leave events.
func (r *HoverRegion) OnPointerLeave(fn func(PointerContext)) CallbackHandle {
	r.nextID++
	r.leave = append(r.leave, pointerHandler{id: r.nextID, fn: fn})
	return CallbackHandle{id: r.nextID, region: r, event: EventPointerLeave}
}

// Inside reports whether the pointer was inside on the last Update.
func (r *HoverRegion) Inside() bool {
	return r.inside
}

// Update feeds one pointer sample. present is false when there is no
// pointer at all, which counts as outside.
func (r *HoverRegion) Update(x, y float64, present bool) {
	if present {
		r.lastX, r.lastY = x, y
	}
	inside := present && r.Bounds.Contains(x, y)
	if inside == r.inside {
		return
	}
	r.inside = inside
	ctx := PointerContext{X: r.lastX, Y: r.lastY}
	handlers := r.leave
	if inside {
		handlers = r.enter
	}
	for _, h := range handlers {
		h.fn(ctx)
	}
}

// pointerSampler polls Ebitengine for the one pointer that drives the
// transition. Touches take precedence over the mouse; once the last touch
// lifts, the pointer is absent until the mouse cursor moves again.
type pointerSampler struct {
	touchIDs   []ebiten.TouchID
	touchMode  bool
	lastCursor [2]int
}

func (p *pointerSampler) sample() (x, y float64, present bool) {
	p.touchIDs = ebiten.AppendTouchIDs(p.touchIDs[:0])
	cx, cy := ebiten.CursorPosition()
	touching := len(p.touchIDs) > 0
	var tx, ty int
	if touching {
		tx, ty = ebiten.TouchPosition(p.touchIDs[0])
	}
	return p.resolve(cx, cy, touching, tx, ty)
}

// resolve picks the active pointer from one frame's cursor and first-touch
// positions and advances the touch/cursor handoff.
func (p *pointerSampler) resolve(cx, cy int, touching bool, tx, ty int) (x, y float64, present bool) {
	if touching {
		p.touchMode = true
		p.lastCursor = [2]int{cx, cy}
		return float64(tx), float64(ty), true
	}
	if p.touchMode {
		if p.lastCursor == [2]int{cx, cy} {
			return 0, 0, false
		}
		p.touchMode = false
	}
	return float64(cx), float64(cy), true
}
