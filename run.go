package liquid

import (
	"context"
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// Run opens a resizable window sized from the stage's config and runs the
// game loop until the window closes or a script finishes. The window is
// transparent when the clear color is.
func Run(s *Stage) error {
	ebiten.SetWindowTitle(s.cfg.Title)
	ebiten.SetWindowSize(s.cfg.Width, s.cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	err := ebiten.RunGameWithOptions(s, &ebiten.RunGameOptions{
		ScreenTransparent: s.clear.A < 1,
	})
	if cerr := s.Close(); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}

// RenderFrame composites one w×h frame on the CPU at the given blend value,
// without a window or GPU. The sources are normalized the same way NewStage
// does, so the result matches what the shader draws. The clear color shows
// through transparent source pixels.
func RenderFrame(ctx context.Context, cfg Config, src *Sources, blend float64, w, h int) (*image.RGBA, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("render: invalid size %dx%d", w, h)
	}
	bg, err := cfg.Clear()
	if err != nil {
		return nil, err
	}

	normalized := src.Normalize(cfg.MaxTextureSide)
	a, b, disp := normalized.Samplers()
	p := CompositeParams{
		Blend:           clamp01(blend),
		Intensity:       cfg.Intensity,
		ImageResolution: cfg.resolution(src.Native),
		Resolution:      Vec2{float64(w), float64(h)},
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if err := RenderCPU(ctx, dst, p, a, b, disp); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	compositeOver(dst, bg.Premultiply())
	return dst, nil
}

// compositeOver draws the premultiplied background behind dst in place.
func compositeOver(dst *image.RGBA, bg Color) {
	if bg.A == 0 {
		return
	}
	for i := 0; i+3 < len(dst.Pix); i += 4 {
		a := float64(dst.Pix[i+3]) / 255
		dst.Pix[i] = uint8(float64(dst.Pix[i]) + bg.R*255*(1-a) + 0.5)
		dst.Pix[i+1] = uint8(float64(dst.Pix[i+1]) + bg.G*255*(1-a) + 0.5)
		dst.Pix[i+2] = uint8(float64(dst.Pix[i+2]) + bg.B*255*(1-a) + 0.5)
		dst.Pix[i+3] = uint8(float64(dst.Pix[i+3]) + bg.A*255*(1-a) + 0.5)
	}
}
