package liquid

import (
	"context"
	"image"
	"math"
	"runtime"

	"golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"
)

// WrapMode selects how a sampler treats coordinates outside [0, 1].
type WrapMode uint8

const (
	WrapClamp  WrapMode = iota // clamp to the edge texel
	WrapRepeat                 // tile the image
)

// Sampler returns the bilinearly filtered, premultiplied color at a
// normalized texture coordinate.
type Sampler interface {
	Sample(u, v float64) Color
}

// ImageSampler samples an image.Image the way the GPU path samples a
// texture: texel centers at half-integer positions, bilinear filtering and
// the configured wrap mode.
type ImageSampler struct {
	Wrap WrapMode
	pix  *image.RGBA
	w, h int
}

// NewImageSampler copies img into a premultiplied RGBA buffer and returns a
// sampler over it.
func NewImageSampler(img image.Image, wrap WrapMode) *ImageSampler {
	b := img.Bounds()
	rgba, ok := img.(*image.RGBA)
	if !ok || b.Min != (image.Point{}) {
		rgba = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	}
	return &ImageSampler{Wrap: wrap, pix: rgba, w: b.Dx(), h: b.Dy()}
}

// Size returns the sampled image's dimensions in pixels.
func (s *ImageSampler) Size() (int, int) {
	return s.w, s.h
}

func (s *ImageSampler) index(i, n int) int {
	if s.Wrap == WrapRepeat {
		i %= n
		if i < 0 {
			i += n
		}
		return i
	}
	return min(max(i, 0), n-1)
}

func (s *ImageSampler) texel(x, y int) Color {
	x = s.index(x, s.w)
	y = s.index(y, s.h)
	o := s.pix.PixOffset(x, y)
	p := s.pix.Pix[o : o+4 : o+4]
	return Color{
		R: float64(p[0]) / 255,
		G: float64(p[1]) / 255,
		B: float64(p[2]) / 255,
		A: float64(p[3]) / 255,
	}
}

// Sample implements Sampler.
func (s *ImageSampler) Sample(u, v float64) Color {
	if s.w == 0 || s.h == 0 {
		return Color{}
	}
	px := u*float64(s.w) - 0.5
	py := v*float64(s.h) - 0.5
	x0, y0 := math.Floor(px), math.Floor(py)
	fx, fy := px-x0, py-y0
	ix, iy := int(x0), int(y0)

	top := s.texel(ix, iy).Mix(s.texel(ix+1, iy), fx)
	bottom := s.texel(ix, iy+1).Mix(s.texel(ix+1, iy+1), fx)
	return top.Mix(bottom, fy)
}

// CompositeParams holds the per-frame uniforms of the displacement
// compositor.
type CompositeParams struct {
	// Blend is the transition progress in [0, 1].
	Blend float64
	// Intensity scales the horizontal displacement.
	Intensity float64
	// ImageResolution is the aspect source for the fit-cover mapping.
	ImageResolution Vec2
	// Resolution is the output viewport size.
	Resolution Vec2
}

// Composite computes one output color for viewport coordinate uv. It is the
// CPU twin of shaders/displace.kage and must stay in step with it.
//
// The second image is displaced by (1-Blend)/2 rather than (1-Blend), so at
// Blend 0 it still carries a residual offset. Its weight in the mix is zero
// there, so the residual is invisible at rest.
func Composite(uv Vec2, p CompositeParams, a, b, disp Sampler) Color {
	uv = FitCover(uv, p.ImageResolution, p.Resolution)
	offset := disp.Sample(uv.X, uv.Y).R * p.Intensity

	c1 := a.Sample(uv.X+p.Blend*offset, uv.Y)
	c2 := b.Sample(uv.X-(1-p.Blend)/2*offset, uv.Y)
	return c1.Mix(c2, p.Blend)
}

// RenderCPU rasterizes a full frame into dst using Composite for every
// pixel. Rows are split into bands rendered concurrently; the samplers are
// read-only so no locking is needed.
func RenderCPU(ctx context.Context, dst *image.RGBA, p CompositeParams, a, b, disp Sampler) error {
	bounds := dst.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return nil
	}

	bands := min(runtime.GOMAXPROCS(0), h)
	rowsPerBand := (h + bands - 1) / bands

	g, ctx := errgroup.WithContext(ctx)
	for y0 := 0; y0 < h; y0 += rowsPerBand {
		y1 := min(y0+rowsPerBand, h)
		g.Go(func() error {
			for y := y0; y < y1; y++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				v := (float64(y) + 0.5) / float64(h)
				for x := 0; x < w; x++ {
					u := (float64(x) + 0.5) / float64(w)
					c := Composite(Vec2{u, v}, p, a, b, disp)
					dst.SetRGBA(bounds.Min.X+x, bounds.Min.Y+y, c.RGBA())
				}
			}
			return nil
		})
	}
	return g.Wait()
}
