package effect

import (
	"github.com/taigrr/engine3d/pkg/math3d"
	"github.com/taigrr/engine3d/pkg/render"
)

// NormalVertex is a mesh vertex with a surface normal.
type NormalVertex struct {
	Pos    math3d.Vec3
	Normal math3d.Vec3
}

// GouraudVertex carries the lit color, in [0, 255] per channel, computed at
// the vertex and interpolated across the face.
type GouraudVertex struct {
	Pos   math3d.Vec3
	Color math3d.Vec3
}

// Add returns the sum of the interpolated components.
func (v GouraudVertex) Add(o GouraudVertex) GouraudVertex {
	return GouraudVertex{v.Pos.Add(o.Pos), v.Color.Add(o.Color)}
}

// Sub returns the difference of the interpolated components.
func (v GouraudVertex) Sub(o GouraudVertex) GouraudVertex {
	return GouraudVertex{v.Pos.Sub(o.Pos), v.Color.Sub(o.Color)}
}

// Scale multiplies every interpolated component by s.
func (v GouraudVertex) Scale(s float64) GouraudVertex {
	return GouraudVertex{v.Pos.Scale(s), v.Color.Scale(s)}
}

// Div divides every interpolated component by s.
func (v GouraudVertex) Div(s float64) GouraudVertex {
	return GouraudVertex{v.Pos.Div(s), v.Color.Div(s)}
}

// InterpTo returns the vertex a fraction t of the way to dst.
func (v GouraudVertex) InterpTo(dst GouraudVertex, t float64) GouraudVertex {
	return GouraudVertex{v.Pos.Lerp(dst.Pos, t), v.Color.Lerp(dst.Color, t)}
}

// Position returns the vertex position.
func (v GouraudVertex) Position() math3d.Vec3 { return v.Pos }

// WithPosition returns a copy of v moved to p.
func (v GouraudVertex) WithPosition(p math3d.Vec3) GouraudVertex {
	v.Pos = p
	return v
}

// Gouraud lights every vertex from its own normal and blends the results
// across each triangle.
type Gouraud struct {
	transform
	Light Light
	Color render.Color
}

// NewGouraud creates a smooth-shaded effect for a surface of color c.
func NewGouraud(c render.Color, light Light) *Gouraud {
	return &Gouraud{transform: newTransform(), Light: light, Color: c}
}

// NewGouraudPipeline creates a pipeline drawing meshes with normals with e.
func NewGouraudPipeline(e *Gouraud, sink render.PixelSink, width, height int, opts ...render.Option) *render.Pipeline[NormalVertex, GouraudVertex, GouraudVertex] {
	return render.NewPipeline[NormalVertex, GouraudVertex, GouraudVertex](e, sink, width, height, opts...)
}

// VertexShader rotates the normal but does not translate it.
func (e *Gouraud) VertexShader(in NormalVertex) GouraudVertex {
	intensity := e.Light.Intensity(e.direction(in.Normal))
	return GouraudVertex{
		Pos:   e.point(in.Pos),
		Color: e.Light.Tint(e.Color).Vec().Scale(intensity),
	}
}

func (e *Gouraud) GeometryShader(t render.Triangle[GouraudVertex]) render.Triangle[GouraudVertex] {
	return t
}

func (e *Gouraud) PixelShader(v GouraudVertex) render.Color {
	return render.ColorFromVec(v.Color)
}
