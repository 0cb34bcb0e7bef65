package liquid

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Stage is the render context of one transition: it owns the textures, the
// shader filter, the blend transition and the input state, and implements
// ebiten.Game. It lives from program start to exit.
type Stage struct {
	cfg        Config
	sources    *Sources
	textures   *TextureSet
	filter     *DisplaceFilter
	canvas     *ebiten.Image
	transition *Transition
	hover      HoverRegion
	pointer    pointerSampler
	clear      Color
	debug      bool
	stats      debugStats

	// Viewport state, updated from Layout.
	resolution Vec2
	imageRes   Vec2

	// Synthetic input and scripted runs.
	injectQueue []syntheticPointerEvent
	testRunner  *TestRunner
	exitOnDone  bool

	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir   string
	screenshotQueue []string
	clipboard       *Clipboard
	copyRequested   bool

	watcher    *ConfigWatcher
	configPath string
}

// NewStage normalizes src, uploads it to the GPU and wires pointer enter and
// leave to the transition.
func NewStage(cfg Config, src *Sources) (*Stage, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	bg, err := cfg.Clear()
	if err != nil {
		return nil, err
	}

	normalized := src.Normalize(cfg.MaxTextureSide)
	textures := NewTextureSet(normalized)
	w, h := textures.Size()

	s := &Stage{
		cfg:           cfg,
		sources:       normalized,
		textures:      textures,
		filter:        NewDisplaceFilter(textures),
		canvas:        ebiten.NewImage(w, h),
		transition:    NewTransition(float32(cfg.Duration), cfg.EasingFunc()),
		clear:         bg,
		imageRes:      cfg.resolution(src.Native),
		ScreenshotDir: cfg.ScreenshotDir,
	}
	s.Resize(cfg.Width, cfg.Height)
	s.hover.OnPointerEnter(func(PointerContext) { s.transition.Enter() })
	s.hover.OnPointerLeave(func(PointerContext) { s.transition.Leave() })
	return s, nil
}

// Transition returns the driver of the blend value.
func (s *Stage) Transition() *Transition {
	return s.transition
}

// Hover returns the region that drives the transition.
func (s *Stage) Hover() *HoverRegion {
	return &s.hover
}

// Resolution returns the current viewport size.
func (s *Stage) Resolution() Vec2 {
	return s.resolution
}

// Resize records a new viewport size. Only the resolution uniform and the
// hover bounds change; textures are left alone.
func (s *Stage) Resize(w, h int) {
	s.resolution = Vec2{float64(w), float64(h)}
	s.hover.Bounds = Rect{Width: float64(w), Height: float64(h)}
}

// Params returns the compositor uniforms for the current frame.
func (s *Stage) Params() CompositeParams {
	return CompositeParams{
		Blend:           s.transition.Value(),
		Intensity:       s.cfg.Intensity,
		ImageResolution: s.imageRes,
		Resolution:      s.resolution,
	}
}

// SetDebugMode enables or disables debug mode. When enabled, an FPS and
// blend overlay is drawn and per-second timing stats are logged.
func (s *Stage) SetDebugMode(enabled bool) {
	s.debug = enabled
}

// ApplyConfig re-applies the tunables of cfg: intensity, duration, easing,
// image resolution and clear color. Asset paths and window size are
// ignored; textures are never reloaded here.
func (s *Stage) ApplyConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	bg, err := cfg.Clear()
	if err != nil {
		return err
	}
	s.cfg.Intensity = cfg.Intensity
	s.cfg.Duration = cfg.Duration
	s.cfg.Easing = cfg.Easing
	s.cfg.ImageResolution = cfg.ImageResolution
	s.cfg.ClearColor = cfg.ClearColor
	s.clear = bg
	s.imageRes = s.cfg.resolution(s.sources.Native)
	s.transition.Configure(float32(cfg.Duration), cfg.EasingFunc())
	return nil
}

// Update implements ebiten.Game.
func (s *Stage) Update() error {
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	s.pollConfig()
	s.handleKeys()

	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	x, y, present := s.nextPointer()
	s.step(float32(1.0/float64(ebiten.TPS())), x, y, present)

	if s.debug {
		s.stats.update += time.Since(t0)
		s.stats.ticks++
	}
	if s.exitOnDone && s.testRunner != nil && s.testRunner.Done() && len(s.screenshotQueue) == 0 {
		return ebiten.Termination
	}
	return nil
}

// nextPointer returns the pointer sample for this frame: an injected event
// if one is queued, nothing while a script is running, real input otherwise.
func (s *Stage) nextPointer() (float64, float64, bool) {
	if evt, ok := s.popInjected(); ok {
		return evt.x, evt.y, evt.present
	}
	if s.testRunner != nil {
		return s.hover.lastX, s.hover.lastY, s.hover.inside
	}
	return s.pointer.sample()
}

// step advances one tick: hover detection first, so a retarget takes effect
// in the same frame, then the tween.
func (s *Stage) step(dt float32, x, y float64, present bool) {
	s.hover.Update(x, y, present)
	s.transition.Update(dt)
}

func (s *Stage) handleKeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		s.Screenshot("manual")
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		s.CopyFrame()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}
}

// Draw implements ebiten.Game. The shader renders at texture resolution
// into an offscreen canvas, which is then stretched over the screen with
// linear filtering; the fit-cover mapping already accounts for the screen's
// aspect ratio.
func (s *Stage) Draw(screen *ebiten.Image) {
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	screen.Fill(s.clear.Premultiply().RGBA())
	s.filter.Apply(s.canvas, s.Params())

	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	cw, ch := s.canvas.Bounds().Dx(), s.canvas.Bounds().Dy()
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(float64(sw)/float64(cw), float64(sh)/float64(ch))
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(s.canvas, &op)

	s.flushCapture(screen)

	if s.debug {
		drawOverlay(screen, s.transition.Value())
		s.stats.draw += time.Since(t0)
		s.stats.frames++
		s.debugLog()
	}
}

// Layout implements ebiten.Game. The logical screen always matches the
// window, and every call feeds the new size to Resize.
func (s *Stage) Layout(outsideWidth, outsideHeight int) (int, int) {
	if float64(outsideWidth) != s.resolution.X || float64(outsideHeight) != s.resolution.Y {
		s.Resize(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

// Close stops the config watcher, if any.
func (s *Stage) Close() error {
	if s.watcher == nil {
		return nil
	}
	err := s.watcher.Close()
	s.watcher = nil
	if err != nil {
		return fmt.Errorf("close watcher: %w", err)
	}
	return nil
}
