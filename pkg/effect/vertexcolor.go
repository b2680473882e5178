package effect

import (
	"github.com/taigrr/engine3d/pkg/math3d"
	"github.com/taigrr/engine3d/pkg/render"
)

// ColorVertex is a position with a color in [0, 255] per channel.
type ColorVertex struct {
	Pos   math3d.Vec3
	Color math3d.Vec3
}

// Add returns the sum of the interpolated components.
func (v ColorVertex) Add(o ColorVertex) ColorVertex {
	return ColorVertex{v.Pos.Add(o.Pos), v.Color.Add(o.Color)}
}

// Sub returns the difference of the interpolated components.
func (v ColorVertex) Sub(o ColorVertex) ColorVertex {
	return ColorVertex{v.Pos.Sub(o.Pos), v.Color.Sub(o.Color)}
}

// Scale multiplies every interpolated component by s.
func (v ColorVertex) Scale(s float64) ColorVertex {
	return ColorVertex{v.Pos.Scale(s), v.Color.Scale(s)}
}

// Div divides every interpolated component by s.
func (v ColorVertex) Div(s float64) ColorVertex {
	return ColorVertex{v.Pos.Div(s), v.Color.Div(s)}
}

// InterpTo returns the vertex a fraction t of the way to dst.
func (v ColorVertex) InterpTo(dst ColorVertex, t float64) ColorVertex {
	return ColorVertex{v.Pos.Lerp(dst.Pos, t), v.Color.Lerp(dst.Color, t)}
}

// Position returns the vertex position.
func (v ColorVertex) Position() math3d.Vec3 { return v.Pos }

// WithPosition returns a copy of v moved to p.
func (v ColorVertex) WithPosition(p math3d.Vec3) ColorVertex {
	v.Pos = p
	return v
}

// VertexColor blends per-vertex colors across each triangle. It is unlit.
type VertexColor struct {
	transform
}

// NewVertexColor creates a per-vertex color effect.
func NewVertexColor() *VertexColor {
	return &VertexColor{transform: newTransform()}
}

// NewVertexColorPipeline creates a pipeline drawing colored meshes with e.
func NewVertexColorPipeline(e *VertexColor, sink render.PixelSink, width, height int, opts ...render.Option) *render.Pipeline[ColorVertex, ColorVertex, ColorVertex] {
	return render.NewPipeline[ColorVertex, ColorVertex, ColorVertex](e, sink, width, height, opts...)
}

func (e *VertexColor) VertexShader(in ColorVertex) ColorVertex {
	in.Pos = e.point(in.Pos)
	return in
}

func (e *VertexColor) GeometryShader(t render.Triangle[ColorVertex]) render.Triangle[ColorVertex] {
	return t
}

func (e *VertexColor) PixelShader(v ColorVertex) render.Color {
	return render.ColorFromVec(v.Color)
}
