package effect

import (
	"github.com/taigrr/engine3d/pkg/math3d"
	"github.com/taigrr/engine3d/pkg/render"
)

// FlatVertex is a position plus the face normal and light intensity the
// geometry shader stamps on it. Normal and Intensity do not interpolate:
// arithmetic keeps the receiver's values.
type FlatVertex struct {
	Pos       math3d.Vec3
	Normal    math3d.Vec3
	Intensity float64
}

// Add returns the sum of the interpolated components.
func (v FlatVertex) Add(o FlatVertex) FlatVertex {
	v.Pos = v.Pos.Add(o.Pos)
	return v
}

// Sub returns the difference of the interpolated components.
func (v FlatVertex) Sub(o FlatVertex) FlatVertex {
	v.Pos = v.Pos.Sub(o.Pos)
	return v
}

// Scale multiplies every interpolated component by s.
func (v FlatVertex) Scale(s float64) FlatVertex {
	v.Pos = v.Pos.Scale(s)
	return v
}

// Div divides every interpolated component by s.
func (v FlatVertex) Div(s float64) FlatVertex {
	v.Pos = v.Pos.Div(s)
	return v
}

// InterpTo returns the vertex a fraction t of the way to dst.
func (v FlatVertex) InterpTo(dst FlatVertex, t float64) FlatVertex {
	v.Pos = v.Pos.Lerp(dst.Pos, t)
	return v
}

// Position returns the vertex position.
func (v FlatVertex) Position() math3d.Vec3 { return v.Pos }

// WithPosition returns a copy of v moved to p.
func (v FlatVertex) WithPosition(p math3d.Vec3) FlatVertex {
	v.Pos = p
	return v
}

// Flat lights each triangle with one intensity computed from its face
// normal, giving a faceted look.
type Flat struct {
	transform
	Light Light
	Color render.Color
}

// NewFlat creates a flat-shaded effect for a surface of color c.
func NewFlat(c render.Color, light Light) *Flat {
	return &Flat{transform: newTransform(), Light: light, Color: c}
}

// NewFlatPipeline creates a pipeline drawing position-only meshes with e.
func NewFlatPipeline(e *Flat, sink render.PixelSink, width, height int, opts ...render.Option) *render.Pipeline[math3d.Vec3, FlatVertex, FlatVertex] {
	return render.NewPipeline[math3d.Vec3, FlatVertex, FlatVertex](e, sink, width, height, opts...)
}

func (e *Flat) VertexShader(p math3d.Vec3) FlatVertex {
	return FlatVertex{Pos: e.point(p)}
}

func (e *Flat) GeometryShader(t render.Triangle[FlatVertex]) render.Triangle[FlatVertex] {
	n := FaceNormal(t.V0.Pos, t.V1.Pos, t.V2.Pos)
	intensity := e.Light.Intensity(n)

	for _, v := range []*FlatVertex{&t.V0, &t.V1, &t.V2} {
		v.Normal = n
		v.Intensity = intensity
	}
	return t
}

func (e *Flat) PixelShader(v FlatVertex) render.Color {
	return e.Light.Tint(e.Color).Scale(v.Intensity)
}
