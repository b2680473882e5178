package models

import (
	"github.com/taigrr/engine3d/pkg/math3d"
	"github.com/taigrr/engine3d/pkg/render"
)

// Cube returns an axis-aligned cube of edge length size centered on the
// origin.
//
// Vertex i sits at x = bit 2, y = bit 1, z = bit 0 of i (0 is -, 1 is +).
// The eight corners are shared by all faces, so texture coordinates only
// map cleanly onto the -X and +X sides, and normals point out of the
// corners.
func Cube(size float64) *Mesh {
	h := size / 2

	uvs := [8]math3d.Vec2{
		{X: 1, Y: 1}, {X: 0, Y: 1}, {X: 1, Y: 0}, {X: 0, Y: 0}, // -X side
		{X: 0, Y: 1}, {X: 1, Y: 1}, {X: 0, Y: 0}, {X: 1, Y: 0}, // +X side
	}
	colors := [8]render.Color{
		render.ColorRed,
		render.ColorGreen,
		render.ColorPurple,
		render.ColorWhite,
		render.ColorCyan,
		render.ColorMagenta,
		render.ColorBlue,
		render.ColorYellow,
	}

	m := NewMesh("cube")
	for i := range 8 {
		p := math3d.V3(sign(i&4)*h, sign(i&2)*h, sign(i&1)*h)
		m.Vertices = append(m.Vertices, Vertex{
			Position: p,
			Normal:   p.Normalize(),
			UV:       uvs[i],
			Color:    colors[i],
		})
	}

	// Clockwise as seen from outside.
	m.Triangles = [][3]int{
		{1, 2, 0}, {3, 2, 1}, // -X
		{4, 1, 0}, {4, 5, 1}, // -Y
		{6, 2, 3}, {7, 6, 3}, // +Y
		{6, 5, 4}, {6, 7, 5}, // +X
		{2, 6, 0}, {6, 4, 0}, // -Z
		{5, 3, 1}, {5, 7, 3}, // +Z
	}
	m.Lines = [][2]int{
		{0, 1}, {0, 2}, {0, 4}, {3, 1},
		{3, 2}, {4, 5}, {4, 6}, {5, 1},
		{6, 2}, {7, 3}, {7, 5}, {7, 6},
	}

	m.CalculateBounds()
	return m
}

func sign(bit int) float64 {
	if bit != 0 {
		return 1
	}
	return -1
}
