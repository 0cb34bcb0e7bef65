package liquid

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Sources holds the decoded images of one transition: the two pictures and
// the grayscale displacement map. Sources are immutable after load.
type Sources struct {
	A, B         image.Image
	Displacement image.Image
	// Native is the resolution of A as decoded, before any resampling.
	Native Vec2
}

// LoadSources decodes the three images from disk. Any format registered with
// the image package works, including webp, bmp and tiff.
func LoadSources(pathA, pathB, pathDisplacement string) (*Sources, error) {
	a, err := decodeFile(pathA)
	if err != nil {
		return nil, err
	}
	b, err := decodeFile(pathB)
	if err != nil {
		return nil, err
	}
	d, err := decodeFile(pathDisplacement)
	if err != nil {
		return nil, err
	}
	return newSources(a, b, d), nil
}

func newSources(a, b, d image.Image) *Sources {
	bounds := a.Bounds()
	return &Sources{
		A:            a,
		B:            b,
		Displacement: d,
		Native:       Vec2{float64(bounds.Dx()), float64(bounds.Dy())},
	}
}

func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("decode %s: empty image", path)
	}
	return img, nil
}

// normalizedSize returns A's size scaled down so that its longest side does
// not exceed maxSide. maxSide <= 0 keeps the native size.
func (s *Sources) normalizedSize(maxSide int) (int, int) {
	w, h := s.A.Bounds().Dx(), s.A.Bounds().Dy()
	longest := max(w, h)
	if maxSide <= 0 || longest <= maxSide {
		return w, h
	}
	scale := float64(maxSide) / float64(longest)
	return max(1, int(float64(w)*scale+0.5)), max(1, int(float64(h)*scale+0.5))
}

// Normalize resamples all three images to one common size derived from A.
// DrawRectShader needs equally sized sources; the compositor samples in
// normalized coordinates, so stretching B or the displacement map onto A's
// grid does not change the result. Native is carried over unchanged.
func (s *Sources) Normalize(maxSide int) *Sources {
	w, h := s.normalizedSize(maxSide)
	return &Sources{
		A:            resample(s.A, w, h, draw.CatmullRom),
		B:            resample(s.B, w, h, draw.CatmullRom),
		Displacement: resample(s.Displacement, w, h, draw.BiLinear),
		Native:       s.Native,
	}
}

func resample(src image.Image, w, h int, k draw.Interpolator) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if src.Bounds().Dx() == w && src.Bounds().Dy() == h {
		draw.Draw(dst, dst.Bounds(), src, src.Bounds().Min, draw.Src)
		return dst
	}
	k.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// Samplers returns CPU samplers over the sources: clamp-to-edge for the two
// pictures and repeat for the displacement map.
func (s *Sources) Samplers() (a, b, disp *ImageSampler) {
	return NewImageSampler(s.A, WrapClamp),
		NewImageSampler(s.B, WrapClamp),
		NewImageSampler(s.Displacement, WrapRepeat)
}

// TextureSet is the GPU side of a normalized Sources: three equally sized
// Ebitengine images.
type TextureSet struct {
	A, B         *ebiten.Image
	Displacement *ebiten.Image
	Native       Vec2
}

// NewTextureSet uploads normalized sources. It panics if the three images do
// not share one size, since the shader could not draw them.
func NewTextureSet(src *Sources) *TextureSet {
	size := src.A.Bounds().Size()
	if src.B.Bounds().Size() != size || src.Displacement.Bounds().Size() != size {
		panic(fmt.Sprintf("liquid: texture sizes differ: %v %v %v",
			size, src.B.Bounds().Size(), src.Displacement.Bounds().Size()))
	}
	return &TextureSet{
		A:            ebiten.NewImageFromImage(src.A),
		B:            ebiten.NewImageFromImage(src.B),
		Displacement: ebiten.NewImageFromImage(src.Displacement),
		Native:       src.Native,
	}
}

// Size returns the common texture size in pixels.
func (t *TextureSet) Size() (int, int) {
	b := t.A.Bounds()
	return b.Dx(), b.Dy()
}
