package liquid

import "math"

// CoverRatio returns the per-axis scale that crops a source of resolution in
// so that it fills a viewport of resolution out without distortion, like CSS
// background-size: cover. Each component is in (0, 1]; at most one of them
// is below 1.
func CoverRatio(in, out Vec2) Vec2 {
	inAspect, outAspect := in.Aspect(), out.Aspect()
	if inAspect == 0 || outAspect == 0 {
		return Vec2{1, 1}
	}
	return Vec2{
		X: math.Min(outAspect/inAspect, 1),
		Y: math.Min(inAspect/outAspect, 1),
	}
}

// FitCover maps a viewport coordinate uv in [0,1]² to the texture coordinate
// that shows the centered, cropped part of the source image.
func FitCover(uv, in, out Vec2) Vec2 {
	ratio := CoverRatio(in, out)
	return Vec2{
		X: uv.X*ratio.X + (1-ratio.X)*0.5,
		Y: uv.Y*ratio.Y + (1-ratio.Y)*0.5,
	}
}
