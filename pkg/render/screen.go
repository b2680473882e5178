package render

import "github.com/taigrr/engine3d/pkg/math3d"

// ScreenTransform maps camera space onto pixel coordinates.
//
// Camera space has the eye at the origin looking down +Z with +Y up; x and y
// in [-1, 1] at z = 1 span the screen. Perspective comes from dividing by z.
// A vertex at z = 0 has no projection and produces infinite coordinates;
// keeping geometry in front of the camera is up to the caller.
type ScreenTransform struct {
	halfWidth  float64
	halfHeight float64
}

// NewScreenTransform creates a transform for a width x height pixel target.
func NewScreenTransform(width, height int) ScreenTransform {
	return ScreenTransform{
		halfWidth:  float64(width) / 2,
		halfHeight: float64(height) / 2,
	}
}

// ProjectPoint maps a camera-space point to screen space. The returned z is
// 1/z, which unlike z interpolates linearly across the screen.
func (st ScreenTransform) ProjectPoint(p math3d.Vec3) math3d.Vec3 {
	invZ := 1 / p.Z
	return math3d.V3(
		(p.X*invZ+1)*st.halfWidth,
		(-p.Y*invZ+1)*st.halfHeight,
		invZ,
	)
}

// UnprojectPoint is the inverse of ProjectPoint.
func (st ScreenTransform) UnprojectPoint(p math3d.Vec3) math3d.Vec3 {
	z := 1 / p.Z
	return math3d.V3(
		(p.X/st.halfWidth-1)*z,
		(1-p.Y/st.halfHeight)*z,
		z,
	)
}

// Project prepares v for perspective-correct rasterization. Every attribute
// is multiplied by 1/z, the position is moved to pixel coordinates, and the
// position's z slot is replaced with 1/z itself. Dividing an interpolated
// vertex by its interpolated z slot recovers the true attributes.
func Project[V Vertex[V]](st ScreenTransform, v V) V {
	p := v.Position()
	invZ := 1 / p.Z
	v = v.Scale(invZ)
	return v.WithPosition(math3d.V3(
		(p.X*invZ+1)*st.halfWidth,
		(-p.Y*invZ+1)*st.halfHeight,
		invZ,
	))
}

// Unproject reverses Project, returning v to camera space with its
// attributes divided back out of the 1/z weighting.
func Unproject[V Vertex[V]](st ScreenTransform, v V) V {
	p := v.Position()
	return v.Div(p.Z).WithPosition(st.UnprojectPoint(p))
}
