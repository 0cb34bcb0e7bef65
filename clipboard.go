package liquid

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"

	"golang.design/x/clipboard"
)

// ErrClipboardUnavailable is returned when the system clipboard could not
// be initialized, e.g. on a headless Linux box without X11.
var ErrClipboardUnavailable = errors.New("clipboard unavailable")

// Clipboard copies frames to the system clipboard.
type Clipboard struct {
	initialized bool
}

// NewClipboard initializes the system clipboard. Failure is logged once and
// leaves the clipboard disabled.
func NewClipboard() *Clipboard {
	err := clipboard.Init()
	if err != nil {
		Logger.Printf("clipboard disabled: %v", err)
	}
	return &Clipboard{initialized: err == nil}
}

// Available reports whether writes can succeed.
func (c *Clipboard) Available() bool {
	return c.initialized
}

// WriteImage encodes img as PNG and places it on the clipboard.
func (c *Clipboard) WriteImage(img image.Image) error {
	if !c.initialized {
		return ErrClipboardUnavailable
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("encode clipboard image: %w", err)
	}
	clipboard.Write(clipboard.FmtImage, buf.Bytes())
	return nil
}
