package render

import (
	"github.com/taigrr/engine3d/pkg/math3d"
)

// Camera places the viewer in world space.
//
// The pipeline itself always looks from the origin down +Z. A Camera folds
// its own position and orientation into the rotation and translation an
// object binds on its effect, so moving the camera needs no change in the
// core.
type Camera struct {
	// Position in world space
	Position math3d.Vec3

	// Orientation (Euler angles in radians)
	Pitch float64 // Rotation around X axis (look up/down)
	Yaw   float64 // Rotation around Y axis (look left/right)
	Roll  float64 // Rotation around Z axis (tilt)
}

// NewCamera creates a camera at the origin looking down +Z.
func NewCamera() *Camera {
	return &Camera{}
}

// SetPosition sets the camera position.
func (c *Camera) SetPosition(pos math3d.Vec3) {
	c.Position = pos
}

// SetRotation sets the camera rotation (pitch, yaw, roll in radians).
func (c *Camera) SetRotation(pitch, yaw, roll float64) {
	c.Pitch = pitch
	c.Yaw = yaw
	c.Roll = roll
}

// Orientation returns the camera's rotation in world space: roll, then
// pitch, then yaw.
func (c *Camera) Orientation() math3d.Mat3 {
	return math3d.RotateZ(c.Roll).
		Mul(math3d.RotateX(c.Pitch)).
		Mul(math3d.RotateY(c.Yaw))
}

// ViewMatrix returns the rotation from world space into camera space.
func (c *Camera) ViewMatrix() math3d.Mat3 {
	return c.Orientation().Transpose()
}

// WorldToCamera maps a world-space point into camera space.
func (c *Camera) WorldToCamera(p math3d.Vec3) math3d.Vec3 {
	return p.Sub(c.Position).MulMat3(c.ViewMatrix())
}

// Compose combines an object's world transform with the view. The results
// are what the object's effect binds: a point p ends up at
// p·rotation + translation in camera space.
func (c *Camera) Compose(rotation math3d.Mat3, translation math3d.Vec3) (math3d.Mat3, math3d.Vec3) {
	view := c.ViewMatrix()
	return rotation.Mul(view), translation.Sub(c.Position).MulMat3(view)
}

// Bind composes the object transform with the view and binds it on b.
func (c *Camera) Bind(b TransformBinder, rotation math3d.Mat3, translation math3d.Vec3) {
	r, t := c.Compose(rotation, translation)
	b.BindRotation(r)
	b.BindTranslation(t)
}
