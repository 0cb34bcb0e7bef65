package liquid

import (
	_ "embed"

	"github.com/hajimehoshi/ebiten/v2"
)

// displaceShaderSrc is the GPU twin of Composite. The shader uses
// //kage:unit pixels; Ebitengine feeds it premultiplied colors and the
// output stays premultiplied.
//
//go:embed shaders/displace.kage
var displaceShaderSrc []byte

// Compiled lazily on first use; rendering is single-threaded.

var displaceShader *ebiten.Shader

func ensureDisplaceShader() *ebiten.Shader {
	if displaceShader == nil {
		s, err := ebiten.NewShader(displaceShaderSrc)
		if err != nil {
			panic("liquid: failed to compile displacement shader: " + err.Error())
		}
		displaceShader = s
	}
	return displaceShader
}

// DisplaceFilter draws the displacement cross-dissolve of a TextureSet into
// a destination image. Images[0] and Images[1] are the two pictures and
// Images[2] is the displacement map; all three share one size.
type DisplaceFilter struct {
	set      *TextureSet
	uniforms map[string]any
	res      [2]float32 // persistent buffers to avoid per-frame slice escape
	imageRes [2]float32
	shaderOp ebiten.DrawRectShaderOptions
}

// NewDisplaceFilter creates a filter reading from set.
func NewDisplaceFilter(set *TextureSet) *DisplaceFilter {
	f := &DisplaceFilter{
		set:      set,
		uniforms: make(map[string]any, 4),
	}
	f.uniforms["Resolution"] = f.res[:]
	f.uniforms["ImageResolution"] = f.imageRes[:]
	f.shaderOp.Images[0] = set.A
	f.shaderOp.Images[1] = set.B
	f.shaderOp.Images[2] = set.Displacement
	f.shaderOp.Uniforms = f.uniforms
	f.shaderOp.Blend = ebiten.BlendCopy
	return f
}

// setUniforms copies p into the uniform map.
func (f *DisplaceFilter) setUniforms(p CompositeParams) {
	f.uniforms["Displacement"] = float32(clamp01(p.Blend))
	f.uniforms["Effect"] = float32(p.Intensity)
	f.res[0], f.res[1] = float32(p.Resolution.X), float32(p.Resolution.Y)
	f.imageRes[0], f.imageRes[1] = float32(p.ImageResolution.X), float32(p.ImageResolution.Y)
}

// Apply renders one composited frame into dst. dst must be the texture
// set's size; Stage owns such a canvas and scales it to the screen.
func (f *DisplaceFilter) Apply(dst *ebiten.Image, p CompositeParams) {
	f.setUniforms(p)
	w, h := f.set.Size()
	dst.DrawRectShader(w, h, ensureDisplaceShader(), &f.shaderOp)
}
