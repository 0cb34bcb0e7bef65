package liquid

import (
	"image"
	"image/color"
	"math"
	"math/rand/v2"
)

// GenerateSources builds a stand-in transition when no image files are
// configured: two diagonal gradients and a tileable value-noise
// displacement map, all w×h.
func GenerateSources(w, h int, seed uint64) *Sources {
	a := gradientImage(w, h,
		color.RGBA{R: 0x1d, G: 0x35, B: 0x57, A: 0xff},
		color.RGBA{R: 0x45, G: 0x7b, B: 0x9d, A: 0xff})
	b := gradientImage(w, h,
		color.RGBA{R: 0xe6, G: 0x39, B: 0x46, A: 0xff},
		color.RGBA{R: 0xf1, G: 0xfa, B: 0xee, A: 0xff})
	d := NoiseMap(w, h, 8, 4, seed)
	return newSources(a, b, d)
}

func gradientImage(w, h int, from, to color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	lerp := func(a, b uint8, t float64) uint8 {
		return uint8(float64(a)*(1-t) + float64(b)*t + 0.5)
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			t := (float64(x)/float64(max(w-1, 1)) + float64(y)/float64(max(h-1, 1))) / 2
			img.SetRGBA(x, y, color.RGBA{
				R: lerp(from.R, to.R, t),
				G: lerp(from.G, to.G, t),
				B: lerp(from.B, to.B, t),
				A: 0xff,
			})
		}
	}
	return img
}

// NoiseMap returns a grayscale value-noise image that tiles seamlessly in
// both directions. period is the lattice size of the first octave; each
// further octave doubles it at half the amplitude.
func NoiseMap(w, h, period, octaves int, seed uint64) *image.Gray {
	period = max(period, 1)
	octaves = max(octaves, 1)
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	type layer struct {
		n       int
		lattice []float64
	}
	layers := make([]layer, octaves)
	for i := range layers {
		n := period << i
		l := layer{n: n, lattice: make([]float64, n*n)}
		for j := range l.lattice {
			l.lattice[j] = rng.Float64()
		}
		layers[i] = l
	}

	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			u, v := float64(x)/float64(w), float64(y)/float64(h)
			sum, amp, norm := 0.0, 1.0, 0.0
			for _, l := range layers {
				sum += amp * latticeValue(l.lattice, l.n, u*float64(l.n), v*float64(l.n))
				norm += amp
				amp /= 2
			}
			img.SetGray(x, y, color.Gray{Y: uint8(clamp01(sum/norm)*255 + 0.5)})
		}
	}
	return img
}

// latticeValue smoothly interpolates a periodic n×n lattice at (x, y).
func latticeValue(lattice []float64, n int, x, y float64) float64 {
	x0, y0 := math.Floor(x), math.Floor(y)
	fx, fy := smoothstep(x-x0), smoothstep(y-y0)
	ix, iy := int(x0), int(y0)
	at := func(i, j int) float64 {
		i = ((i % n) + n) % n
		j = ((j % n) + n) % n
		return lattice[j*n+i]
	}
	top := at(ix, iy)*(1-fx) + at(ix+1, iy)*fx
	bottom := at(ix, iy+1)*(1-fx) + at(ix+1, iy+1)*fx
	return top*(1-fy) + bottom*fy
}

func smoothstep(t float64) float64 {
	return t * t * (3 - 2*t)
}
