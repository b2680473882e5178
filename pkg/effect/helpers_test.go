package effect

import (
	"testing"

	"github.com/taigrr/engine3d/pkg/math3d"
	"github.com/taigrr/engine3d/pkg/render"
)

// The quad spans [-0.5, 0.5] on x and y at z = 1 and covers pixels
// [16, 48) of a 64x64 target: 1024 pixels.
const quadSize = 64

var quadCorners = []math3d.Vec3{
	math3d.V3(-0.5, 0.5, 1),  // top left
	math3d.V3(0.5, 0.5, 1),   // top right
	math3d.V3(-0.5, -0.5, 1), // bottom left
	math3d.V3(0.5, -0.5, 1),  // bottom right
}

var quadTriangles = [][3]int{{0, 1, 2}, {1, 3, 2}}

var quadUVs = []math3d.Vec2{
	math3d.V2(0, 0),
	math3d.V2(1, 0),
	math3d.V2(0, 1),
	math3d.V2(1, 1),
}

// quadPixels collects every pixel of fb that is not the background.
func quadPixels(t *testing.T, fb *render.Framebuffer) map[[2]int]render.Color {
	t.Helper()
	lit := make(map[[2]int]render.Color)
	for y := range fb.Height {
		for x := range fb.Width {
			if c := fb.GetPixel(x, y); c != render.ColorBlack {
				lit[[2]int{x, y}] = c
			}
		}
	}
	return lit
}

// lambert is the intensity the default light gives a surface facing the
// camera.
const lambert = 0.816496580927726
