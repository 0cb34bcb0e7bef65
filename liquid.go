package liquid

import (
	"image/color"
	"log"
	"os"
)

// Logger receives bootstrap, reload and debug messages. Replace it to
// redirect or silence output.
var Logger = log.New(os.Stderr, "[liquid] ", log.LstdFlags)

// Color represents an RGBA color with components in [0, 1].
// ClearColor values are straight alpha; colors produced by samplers and the
// compositor are premultiplied, matching what Ebitengine feeds to shaders.
type Color struct {
	R, G, B, A float64
}

// Premultiply returns c with its color components scaled by alpha.
func (c Color) Premultiply() Color {
	return Color{R: c.R * c.A, G: c.G * c.A, B: c.B * c.A, A: c.A}
}

// Mix linearly interpolates between c and other: c*(1-t) + other*t.
func (c Color) Mix(other Color, t float64) Color {
	return Color{
		R: c.R*(1-t) + other.R*t,
		G: c.G*(1-t) + other.G*t,
		B: c.B*(1-t) + other.B*t,
		A: c.A*(1-t) + other.A*t,
	}
}

// RGBA converts a premultiplied Color to a color.RGBA.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R)*255 + 0.5),
		G: uint8(clamp01(c.G)*255 + 0.5),
		B: uint8(clamp01(c.B)*255 + 0.5),
		A: uint8(clamp01(c.A)*255 + 0.5),
	}
}

// Vec2 is a 2D vector used for texture coordinates and resolutions.
type Vec2 struct {
	X, Y float64
}

// Aspect returns X/Y. A zero Y yields zero.
func (v Vec2) Aspect() float64 {
	if v.Y == 0 {
		return 0
	}
	return v.X / v.Y
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// The right and bottom edges are exclusive so that a window-sized rect does
// not contain a cursor that has left through those edges.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.Width &&
		y >= r.Y && y < r.Y+r.Height
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
