package liquid

import (
	"context"
	"image"
	"image/color"
	"testing"
)

func TestRenderFrameMatchesEndpoints(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ImageResolution = [2]float64{0, 0}
	src := newSources(
		solidImage(16, 16, color.RGBA{255, 0, 0, 255}),
		solidImage(16, 16, color.RGBA{0, 255, 0, 255}),
		NoiseMap(16, 16, 4, 2, 5),
	)

	tests := []struct {
		name  string
		blend float64
		want  color.RGBA
	}{
		{"rest shows A", 0, color.RGBA{255, 0, 0, 255}},
		{"full shows B", 1, color.RGBA{0, 255, 0, 255}},
		{"clamped above", 3, color.RGBA{0, 255, 0, 255}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := RenderFrame(context.Background(), cfg, src, tt.blend, 12, 9)
			if err != nil {
				t.Fatalf("RenderFrame: %v", err)
			}
			if img.Bounds() != image.Rect(0, 0, 12, 9) {
				t.Fatalf("bounds = %v", img.Bounds())
			}
			for _, p := range []image.Point{{0, 0}, {6, 4}, {11, 8}} {
				if got := img.RGBAAt(p.X, p.Y); got != tt.want {
					t.Errorf("pixel %v = %v, want %v", p, got, tt.want)
				}
			}
		})
	}
}

func TestRenderFrameClearShowsThroughTransparency(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ClearColor = "#0000ff"
	src := newSources(
		image.NewRGBA(image.Rect(0, 0, 4, 4)),
		image.NewRGBA(image.Rect(0, 0, 4, 4)),
		NoiseMap(4, 4, 2, 1, 1),
	)
	img, err := RenderFrame(context.Background(), cfg, src, 0.5, 4, 4)
	if err != nil {
		t.Fatalf("RenderFrame: %v", err)
	}
	if got := img.RGBAAt(2, 2); got != (color.RGBA{0, 0, 255, 255}) {
		t.Errorf("pixel = %v, want opaque blue", got)
	}
}

func TestRenderFrameErrors(t *testing.T) {
	src := GenerateSources(4, 4, 1)
	if _, err := RenderFrame(context.Background(), DefaultConfig(), src, 0, 0, 10); err == nil {
		t.Error("expected error for zero width")
	}
	bad := DefaultConfig()
	bad.Intensity = -1
	if _, err := RenderFrame(context.Background(), bad, src, 0, 10, 10); err == nil {
		t.Error("expected error for invalid config")
	}
}

func TestCompositeOver(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.SetRGBA(0, 0, color.RGBA{255, 0, 0, 255})
	img.SetRGBA(1, 0, color.RGBA{0, 0, 0, 0})
	compositeOver(img, Color{R: 0, G: 1, B: 0, A: 1})

	if got := img.RGBAAt(0, 0); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("opaque pixel = %v, want unchanged", got)
	}
	if got := img.RGBAAt(1, 0); got != (color.RGBA{0, 255, 0, 255}) {
		t.Errorf("transparent pixel = %v, want background", got)
	}
}
