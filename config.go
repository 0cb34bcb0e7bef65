package liquid

import (
	"errors"
	"fmt"
	"os"

	css "github.com/mazznoer/csscolorparser"
	"github.com/tanema/gween/ease"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every Config.Validate failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds the tunables of a transition and its window. The zero value
// is not usable; start from DefaultConfig.
type Config struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`

	// Assets. Leave all three empty to use generated stand-ins.
	ImageA       string `yaml:"image_a"`
	ImageB       string `yaml:"image_b"`
	Displacement string `yaml:"displacement"`
	// MaxTextureSide caps the normalized texture size; 0 keeps native size.
	MaxTextureSide int `yaml:"max_texture_side"`

	// Intensity scales the horizontal displacement.
	Intensity float64 `yaml:"intensity"`
	// Duration of one enter or leave tween, in seconds.
	Duration float64 `yaml:"duration"`
	Easing   string  `yaml:"easing"`
	// ImageResolution feeds the cover fit. [0, 0] uses image A's native
	// size, as do generated stand-ins.
	ImageResolution [2]float64 `yaml:"image_resolution"`
	// ClearColor is any CSS color string.
	ClearColor string `yaml:"clear_color"`

	ScreenshotDir string `yaml:"screenshot_dir"`
}

// DefaultConfig returns the stock transition: intensity 0.3, 0.8 s quartic
// ease-out, a 3456×5184 portrait source and a transparent clear.
func DefaultConfig() Config {
	return Config{
		Title:           "liquid",
		Width:           800,
		Height:          600,
		MaxTextureSide:  2048,
		Intensity:       0.3,
		Duration:        0.8,
		Easing:          "outQuart",
		ImageResolution: [2]float64{3456, 5184},
		ClearColor:      "#ffffff00",
		ScreenshotDir:   "screenshots",
	}
}

// LoadConfig reads a YAML file over DefaultConfig. An empty path returns the
// defaults. The result is validated.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: load %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: unmarshal %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks ranges, the easing name and the clear color.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidConfig, c.Width, c.Height)
	}
	if c.Intensity < 0 {
		return fmt.Errorf("%w: intensity %v is negative", ErrInvalidConfig, c.Intensity)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("%w: duration %v must be positive", ErrInvalidConfig, c.Duration)
	}
	if c.MaxTextureSide < 0 {
		return fmt.Errorf("%w: max_texture_side %d is negative", ErrInvalidConfig, c.MaxTextureSide)
	}
	if c.ImageResolution[0] < 0 || c.ImageResolution[1] < 0 {
		return fmt.Errorf("%w: image_resolution %v is negative", ErrInvalidConfig, c.ImageResolution)
	}
	if _, err := Easing(c.Easing); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := c.Clear(); err != nil {
		return err
	}
	assets := 0
	for _, p := range []string{c.ImageA, c.ImageB, c.Displacement} {
		if p != "" {
			assets++
		}
	}
	if assets != 0 && assets != 3 {
		return fmt.Errorf("%w: set all of image_a, image_b and displacement, or none", ErrInvalidConfig)
	}
	return nil
}

// Clear parses ClearColor.
func (c Config) Clear() (Color, error) {
	parsed, err := css.Parse(c.ClearColor)
	if err != nil {
		return Color{}, fmt.Errorf("%w: clear_color %q: %w", ErrInvalidConfig, c.ClearColor, err)
	}
	return Color{R: parsed.R, G: parsed.G, B: parsed.B, A: parsed.A}, nil
}

// EasingFunc resolves Easing, falling back to ease.OutQuart.
func (c Config) EasingFunc() ease.TweenFunc {
	fn, err := Easing(c.Easing)
	if err != nil {
		return ease.OutQuart
	}
	return fn
}

// HasAssets reports whether image paths are configured.
func (c Config) HasAssets() bool {
	return c.ImageA != ""
}

// resolution returns the configured image resolution, or native when unset
// or when no assets are configured and the pictures are generated.
func (c Config) resolution(native Vec2) Vec2 {
	if !c.HasAssets() || c.ImageResolution[0] == 0 || c.ImageResolution[1] == 0 {
		return native
	}
	return Vec2{c.ImageResolution[0], c.ImageResolution[1]}
}
