package liquid

import (
	"context"
	"image"
	"image/color"
	"testing"
)

// constSampler returns the same color everywhere.
type constSampler Color

func (c constSampler) Sample(u, v float64) Color { return Color(c) }

// probeSampler records the last coordinate it was sampled at.
type probeSampler struct {
	c    Color
	u, v float64
}

func (p *probeSampler) Sample(u, v float64) Color {
	p.u, p.v = u, v
	return p.c
}

// rampSampler returns a horizontal gray ramp, clamped like an edge texel.
type rampSampler struct{}

func (rampSampler) Sample(u, v float64) Color {
	g := clamp01(u)
	return Color{R: g, G: g, B: g, A: 1}
}

func solidImage(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

func squareParams(blend float64) CompositeParams {
	return CompositeParams{
		Blend:           blend,
		Intensity:       0.3,
		ImageResolution: Vec2{100, 100},
		Resolution:      Vec2{100, 100},
	}
}

func TestCompositeBlendZeroSamplesAUndisplaced(t *testing.T) {
	a := &probeSampler{c: Color{R: 1, A: 1}}
	b := &probeSampler{c: Color{B: 1, A: 1}}
	disp := constSampler{R: 1, G: 1, B: 1, A: 1}

	got := Composite(Vec2{0.4, 0.6}, squareParams(0), a, b, disp)

	if got != (Color{R: 1, A: 1}) {
		t.Errorf("Composite at d=0 = %v, want pure A", got)
	}
	if !approx(a.u, 0.4, 1e-12) || !approx(a.v, 0.6, 1e-12) {
		t.Errorf("A sampled at (%v, %v), want (0.4, 0.6)", a.u, a.v)
	}
	// B still carries the (1-d)/2 residual offset; its weight is zero.
	if !approx(b.u, 0.4-0.5*0.3, 1e-12) {
		t.Errorf("B sampled at u=%v, want %v", b.u, 0.4-0.5*0.3)
	}
}

func TestCompositeBlendOneSamplesBUndisplaced(t *testing.T) {
	a := &probeSampler{c: Color{R: 1, A: 1}}
	b := &probeSampler{c: Color{B: 1, A: 1}}
	disp := constSampler{R: 0.5, A: 1}

	got := Composite(Vec2{0.3, 0.2}, squareParams(1), a, b, disp)

	if got != (Color{B: 1, A: 1}) {
		t.Errorf("Composite at d=1 = %v, want pure B", got)
	}
	if !approx(b.u, 0.3, 1e-12) {
		t.Errorf("B sampled at u=%v, want 0.3", b.u)
	}
	if !approx(a.u, 0.3+0.5*0.3, 1e-12) {
		t.Errorf("A sampled at u=%v, want %v", a.u, 0.3+0.5*0.3)
	}
}

func TestCompositeDisplacementIsHorizontalOnly(t *testing.T) {
	a := &probeSampler{c: Color{A: 1}}
	b := &probeSampler{c: Color{A: 1}}
	disp := constSampler{R: 1, A: 1}

	Composite(Vec2{0.5, 0.7}, squareParams(0.5), a, b, disp)

	if a.v != 0.7 || b.v != 0.7 {
		t.Errorf("v changed: a=%v b=%v, want 0.7", a.v, b.v)
	}
	if !approx(a.u, 0.5+0.5*0.3, 1e-12) {
		t.Errorf("A u = %v, want %v", a.u, 0.5+0.5*0.3)
	}
	if !approx(b.u, 0.5-0.25*0.3, 1e-12) {
		t.Errorf("B u = %v, want %v", b.u, 0.5-0.25*0.3)
	}
}

func TestCompositeIsConvexCombination(t *testing.T) {
	a := constSampler{R: 0.9, G: 0.1, B: 0.4, A: 1}
	b := constSampler{R: 0.2, G: 0.8, B: 0.4, A: 0.5}
	disp := rampSampler{}

	for i := 0; i <= 20; i++ {
		d := float64(i) / 20
		got := Composite(Vec2{0.37, 0.81}, squareParams(d), a, b, disp)
		check := func(name string, v, x, y float64) {
			lo, hi := min(x, y), max(x, y)
			if v < lo-1e-12 || v > hi+1e-12 {
				t.Errorf("d=%v %s = %v, outside [%v, %v]", d, name, v, lo, hi)
			}
		}
		check("R", got.R, a.R, b.R)
		check("G", got.G, a.G, b.G)
		check("B", got.B, a.B, b.B)
		check("A", got.A, a.A, b.A)
	}
}

func TestCompositeZeroIntensityIsPlainCrossfade(t *testing.T) {
	a := rampSampler{}
	b := constSampler{R: 1, G: 1, B: 1, A: 1}
	p := squareParams(0.25)
	p.Intensity = 0

	got := Composite(Vec2{0.2, 0.5}, p, a, b, rampSampler{})
	want := Color{R: 0.2, G: 0.2, B: 0.2, A: 1}.Mix(Color{R: 1, G: 1, B: 1, A: 1}, 0.25)
	if !approx(got.R, want.R, 1e-12) || !approx(got.A, want.A, 1e-12) {
		t.Errorf("Composite = %v, want %v", got, want)
	}
}

func TestImageSamplerWrapModes(t *testing.T) {
	// 2x1 image: black then white.
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.SetRGBA(0, 0, color.RGBA{0, 0, 0, 255})
	img.SetRGBA(1, 0, color.RGBA{255, 255, 255, 255})

	clampS := NewImageSampler(img, WrapClamp)
	repeatS := NewImageSampler(img, WrapRepeat)

	tests := []struct {
		name string
		s    *ImageSampler
		u    float64
		want float64
	}{
		{"clamp left texel center", clampS, 0.25, 0},
		{"clamp right texel center", clampS, 0.75, 1},
		{"clamp midpoint", clampS, 0.5, 0.5},
		{"clamp far left", clampS, -3, 0},
		{"clamp far right", clampS, 4, 1},
		{"repeat wraps right", repeatS, 1.25, 0},
		{"repeat wraps left", repeatS, -0.25, 1},
		{"repeat seam", repeatS, 1.0, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.s.Sample(tt.u, 0.5)
			if !approx(got.R, tt.want, 1e-9) {
				t.Errorf("Sample(%v) R = %v, want %v", tt.u, got.R, tt.want)
			}
		})
	}
}

func TestImageSamplerOffsetBounds(t *testing.T) {
	img := solidImage(8, 8, color.RGBA{10, 20, 30, 255})
	sub := img.SubImage(image.Rect(2, 2, 6, 6))
	s := NewImageSampler(sub, WrapClamp)
	if w, h := s.Size(); w != 4 || h != 4 {
		t.Fatalf("Size = %dx%d, want 4x4", w, h)
	}
	got := s.Sample(0.5, 0.5).RGBA()
	if got != (color.RGBA{10, 20, 30, 255}) {
		t.Errorf("Sample = %v, want {10 20 30 255}", got)
	}
}

func TestImageSamplerEmpty(t *testing.T) {
	s := NewImageSampler(image.NewRGBA(image.Rect(0, 0, 0, 0)), WrapRepeat)
	if got := s.Sample(0.5, 0.5); got != (Color{}) {
		t.Errorf("Sample on empty image = %v, want zero", got)
	}
}

func TestRenderCPUSolidInputs(t *testing.T) {
	a := NewImageSampler(solidImage(4, 4, color.RGBA{255, 0, 0, 255}), WrapClamp)
	b := NewImageSampler(solidImage(4, 4, color.RGBA{0, 0, 255, 255}), WrapClamp)
	disp := NewImageSampler(NoiseMap(16, 16, 4, 2, 7), WrapRepeat)

	dst := image.NewRGBA(image.Rect(0, 0, 33, 17))
	if err := RenderCPU(context.Background(), dst, squareParams(0.5), a, b, disp); err != nil {
		t.Fatalf("RenderCPU: %v", err)
	}
	want := color.RGBA{128, 0, 128, 255}
	for y := 0; y < 17; y++ {
		for x := 0; x < 33; x++ {
			if got := dst.RGBAAt(x, y); got != want {
				t.Fatalf("pixel (%d, %d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestRenderCPUCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := constSampler{A: 1}
	dst := image.NewRGBA(image.Rect(0, 0, 8, 8))
	if err := RenderCPU(ctx, dst, squareParams(0), s, s, s); err == nil {
		t.Fatal("expected error from cancelled context")
	}
}

func TestRenderCPUEmptyDestination(t *testing.T) {
	s := constSampler{A: 1}
	if err := RenderCPU(context.Background(), image.NewRGBA(image.Rect(0, 0, 0, 5)), squareParams(0), s, s, s); err != nil {
		t.Fatalf("RenderCPU on empty image: %v", err)
	}
}
