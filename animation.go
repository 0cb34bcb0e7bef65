package liquid

import (
	"fmt"
	"sort"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Transition owns the blend value read by the compositor. Pointer enter and
// leave retarget it toward 1 and 0; Update advances the in-flight tween.
//
// A retarget always replaces the running tween, starting from the current
// value, so rapid enter/leave alternation never queues animations.
// There is no global animation manager; the Stage calls Update each tick.
type Transition struct {
	duration float32
	easing   ease.TweenFunc
	tween    *gween.Tween
	value    float64
	target   float64
}

// NewTransition creates a transition at rest at 0. A nil easing falls back
// to ease.OutQuart.
func NewTransition(duration float32, fn ease.TweenFunc) *Transition {
	if fn == nil {
		fn = ease.OutQuart
	}
	return &Transition{duration: duration, easing: fn}
}

// Enter animates toward 1.
func (t *Transition) Enter() { t.To(1) }

// Leave animates toward 0.
func (t *Transition) Leave() { t.To(0) }

// To starts a tween from the current value to target, clamped to [0, 1].
// Any in-flight tween is dropped.
func (t *Transition) To(target float64) {
	target = clamp01(target)
	t.target = target
	if t.duration <= 0 {
		t.tween = nil
		t.value = target
		return
	}
	t.tween = gween.New(float32(t.value), float32(target), t.duration, t.easing)
}

// Set jumps to v immediately, cancelling any tween.
func (t *Transition) Set(v float64) {
	t.tween = nil
	t.value = clamp01(v)
	t.target = t.value
}

// Configure changes duration and easing for subsequent retargets. The
// in-flight tween keeps its original timing.
func (t *Transition) Configure(duration float32, fn ease.TweenFunc) {
	if fn == nil {
		fn = ease.OutQuart
	}
	t.duration = duration
	t.easing = fn
}

// Update advances the in-flight tween by dt seconds.
func (t *Transition) Update(dt float32) {
	if t.tween == nil {
		return
	}
	val, finished := t.tween.Update(dt)
	t.value = clamp01(float64(val))
	if finished {
		t.value = t.target
		t.tween = nil
	}
}

// Value returns the current blend value, always in [0, 1].
func (t *Transition) Value() float64 { return t.value }

// Target returns the value the transition is heading to.
func (t *Transition) Target() float64 { return t.target }

// Active reports whether a tween is in flight.
func (t *Transition) Active() bool { return t.tween != nil }

var easings = map[string]ease.TweenFunc{
	"linear":     ease.Linear,
	"inQuad":     ease.InQuad,
	"outQuad":    ease.OutQuad,
	"inOutQuad":  ease.InOutQuad,
	"inCubic":    ease.InCubic,
	"outCubic":   ease.OutCubic,
	"inOutCubic": ease.InOutCubic,
	"inQuart":    ease.InQuart,
	"outQuart":   ease.OutQuart,
	"inOutQuart": ease.InOutQuart,
	"inQuint":    ease.InQuint,
	"outQuint":   ease.OutQuint,
	"inOutQuint": ease.InOutQuint,
	"inSine":     ease.InSine,
	"outSine":    ease.OutSine,
	"inOutSine":  ease.InOutSine,
	"inExpo":     ease.InExpo,
	"outExpo":    ease.OutExpo,
	"inOutExpo":  ease.InOutExpo,
	"outBounce":  ease.OutBounce,
	"outElastic": ease.OutElastic,
}

// Easing looks up an easing function by name, e.g. "outQuart".
func Easing(name string) (ease.TweenFunc, error) {
	fn, ok := easings[name]
	if !ok {
		return nil, fmt.Errorf("unknown easing %q", name)
	}
	return fn, nil
}

// EasingNames returns the accepted easing names, sorted.
func EasingNames() []string {
	names := make([]string, 0, len(easings))
	for name := range easings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
