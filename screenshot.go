package liquid

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Screenshot queues a labeled screenshot to be captured at the end of the
// current frame's Draw call. The resulting PNG is written to ScreenshotDir
// with a timestamped filename. Safe to call from Update or Draw.
func (s *Stage) Screenshot(label string) {
	s.screenshotQueue = append(s.screenshotQueue, label)
}

// CopyFrame requests that the next rendered frame be copied to the system
// clipboard as a PNG.
func (s *Stage) CopyFrame() {
	s.copyRequested = true
}

// flushCapture reads the frame back once if any screenshot or clipboard copy
// is pending. Called at the end of Stage.Draw.
func (s *Stage) flushCapture(screen *ebiten.Image) {
	if len(s.screenshotQueue) == 0 && !s.copyRequested {
		return
	}
	img := readFrame(screen)

	if s.copyRequested {
		s.copyRequested = false
		if s.clipboard == nil {
			s.clipboard = NewClipboard()
		}
		if err := s.clipboard.WriteImage(img); err != nil {
			Logger.Printf("clipboard: %v", err)
		}
	}

	if len(s.screenshotQueue) > 0 {
		if err := writeScreenshots(s.ScreenshotDir, s.screenshotQueue, img, time.Now()); err != nil {
			Logger.Printf("screenshot: %v", err)
		}
		s.screenshotQueue = s.screenshotQueue[:0]
	}
}

// readFrame converts the premultiplied screen pixels to straight-alpha NRGBA.
func readFrame(screen *ebiten.Image) *image.NRGBA {
	bounds := screen.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	pixels := make([]byte, 4*w*h)
	screen.ReadPixels(pixels)

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	unpremultiply(img.Pix, pixels)
	return img
}

func unpremultiply(dst, src []byte) {
	for i := 0; i+3 < len(src); i += 4 {
		r, g, b, a := src[i], src[i+1], src[i+2], src[i+3]
		if a > 0 && a < 255 {
			r = uint8(min(int(r)*255/int(a), 255))
			g = uint8(min(int(g)*255/int(a), 255))
			b = uint8(min(int(b)*255/int(a), 255))
		}
		dst[i] = r
		dst[i+1] = g
		dst[i+2] = b
		dst[i+3] = a
	}
}

// writeScreenshots writes img once per label into dir.
func writeScreenshots(dir string, labels []string, img image.Image, now time.Time) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	stamp := now.Format("20060102_150405")
	for _, label := range labels {
		path := filepath.Join(dir, fmt.Sprintf("%s_%s.png", stamp, sanitizeLabel(label)))
		if err := WritePNG(path, img); err != nil {
			return err
		}
	}
	return nil
}

// WritePNG encodes an image to a PNG file at the given path.
func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "unlabeled" for empty strings.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
