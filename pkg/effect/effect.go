// Package effect provides the shading models the render pipeline draws
// with: flat, Gouraud, texture mapped and per-vertex color.
//
// Every effect places its mesh in camera space with a rotation followed by a
// translation. Bind both on the effect before each Draw.
package effect

import (
	"github.com/taigrr/engine3d/pkg/math3d"
	"github.com/taigrr/engine3d/pkg/render"
)

// Light is a single directional light with an ambient floor.
type Light struct {
	// Direction the light travels, unit length.
	Direction math3d.Vec3
	// Ambient is the lowest intensity any surface receives.
	Ambient float64
	// Color tints every lit surface. White leaves surfaces unchanged.
	Color render.Color
}

// DefaultLight returns a white light shining along (1, -1, 2) with an
// ambient level of 0.2.
func DefaultLight() Light {
	return NewLight(math3d.V3(1, -1, 2), 0.2, render.ColorWhite)
}

// NewLight creates a light. The direction is normalized here, once.
func NewLight(direction math3d.Vec3, ambient float64, c render.Color) Light {
	return Light{
		Direction: direction.Normalize(),
		Ambient:   ambient,
		Color:     c,
	}
}

// Intensity returns the diffuse intensity of a surface with unit normal n,
// floored at the ambient level.
func (l Light) Intensity(n math3d.Vec3) float64 {
	return max(-n.Dot(l.Direction), l.Ambient)
}

// Tint modulates c by the light color, channel by channel.
func (l Light) Tint(c render.Color) render.Color {
	if l.Color == render.ColorWhite {
		return c
	}
	return render.ColorFromVec(c.Vec().Mul(l.Color.Vec()).Div(255))
}

// FaceNormal returns the unit normal of the triangle v0 v1 v2. With the
// engine's winding it points toward a camera that sees the front face.
func FaceNormal(v0, v1, v2 math3d.Vec3) math3d.Vec3 {
	return v1.Sub(v0).Cross(v2.Sub(v0)).Normalize()
}

// transform is the rotation and translation shared by every effect's vertex
// shader. It implements render.TransformBinder.
type transform struct {
	rotation    math3d.Mat3
	translation math3d.Vec3
}

func newTransform() transform {
	return transform{rotation: math3d.Identity3()}
}

// BindRotation sets the rotation applied to positions and normals.
func (t *transform) BindRotation(m math3d.Mat3) {
	t.rotation = m
}

// BindTranslation sets the offset added to positions after rotation.
func (t *transform) BindTranslation(v math3d.Vec3) {
	t.translation = v
}

func (t *transform) point(p math3d.Vec3) math3d.Vec3 {
	return p.MulMat3(t.rotation).Add(t.translation)
}

func (t *transform) direction(d math3d.Vec3) math3d.Vec3 {
	return d.MulMat3(t.rotation)
}
