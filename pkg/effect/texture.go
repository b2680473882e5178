package effect

import (
	"github.com/taigrr/engine3d/pkg/math3d"
	"github.com/taigrr/engine3d/pkg/render"
)

// UVVertex is a mesh vertex with texture coordinates.
type UVVertex struct {
	Pos math3d.Vec3
	UV  math3d.Vec2
}

// TextureVertex carries interpolated texture coordinates and the face
// intensity. Intensity does not interpolate: arithmetic keeps the
// receiver's value.
type TextureVertex struct {
	Pos       math3d.Vec3
	UV        math3d.Vec2
	Intensity float64
}

// Add returns the sum of the interpolated components.
func (v TextureVertex) Add(o TextureVertex) TextureVertex {
	return TextureVertex{v.Pos.Add(o.Pos), v.UV.Add(o.UV), v.Intensity}
}

// Sub returns the difference of the interpolated components.
func (v TextureVertex) Sub(o TextureVertex) TextureVertex {
	return TextureVertex{v.Pos.Sub(o.Pos), v.UV.Sub(o.UV), v.Intensity}
}

// Scale multiplies every interpolated component by s.
func (v TextureVertex) Scale(s float64) TextureVertex {
	return TextureVertex{v.Pos.Scale(s), v.UV.Scale(s), v.Intensity}
}

// Div divides every interpolated component by s.
func (v TextureVertex) Div(s float64) TextureVertex {
	return TextureVertex{v.Pos.Div(s), v.UV.Div(s), v.Intensity}
}

// InterpTo returns the vertex a fraction t of the way to dst.
func (v TextureVertex) InterpTo(dst TextureVertex, t float64) TextureVertex {
	return TextureVertex{v.Pos.Lerp(dst.Pos, t), v.UV.Lerp(dst.UV, t), v.Intensity}
}

// Position returns the vertex position.
func (v TextureVertex) Position() math3d.Vec3 { return v.Pos }

// WithPosition returns a copy of v moved to p.
func (v TextureVertex) WithPosition(p math3d.Vec3) TextureVertex {
	v.Pos = p
	return v
}

// Texture maps a bound texture across each triangle, perspective correct,
// and darkens it by the face intensity.
type Texture struct {
	transform
	Light Light

	tex *render.Texture
}

// NewTexture creates a texture-mapped effect. tex must not be nil.
func NewTexture(tex *render.Texture, light Light) *Texture {
	return &Texture{transform: newTransform(), Light: light, tex: tex}
}

// NewTexturePipeline creates a pipeline drawing UV-mapped meshes with e.
func NewTexturePipeline(e *Texture, sink render.PixelSink, width, height int, opts ...render.Option) *render.Pipeline[UVVertex, TextureVertex, TextureVertex] {
	return render.NewPipeline[UVVertex, TextureVertex, TextureVertex](e, sink, width, height, opts...)
}

// BindTexture replaces the sampled texture.
func (e *Texture) BindTexture(tex *render.Texture) {
	e.tex = tex
}

// BoundTexture returns the sampled texture.
func (e *Texture) BoundTexture() *render.Texture {
	return e.tex
}

func (e *Texture) VertexShader(in UVVertex) TextureVertex {
	return TextureVertex{Pos: e.point(in.Pos), UV: in.UV}
}

func (e *Texture) GeometryShader(t render.Triangle[TextureVertex]) render.Triangle[TextureVertex] {
	intensity := e.Light.Intensity(FaceNormal(t.V0.Pos, t.V1.Pos, t.V2.Pos))
	t.V0.Intensity = intensity
	t.V1.Intensity = intensity
	t.V2.Intensity = intensity
	return t
}

// PixelShader samples the texture. Interpolation can land UVs a hair
// outside [0, 1], so they are clamped first.
func (e *Texture) PixelShader(v TextureVertex) render.Color {
	uv := v.UV.Clamp(0, 1)
	return e.Light.Tint(e.tex.SampleUV(uv.X, uv.Y)).Scale(v.Intensity)
}
