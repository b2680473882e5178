package models

import (
	"math"

	"github.com/taigrr/engine3d/pkg/math3d"
	"github.com/taigrr/engine3d/pkg/render"
)

// DefaultSphereDivisions is the latitude count used when none is given.
const DefaultSphereDivisions = 16

// Sphere returns a UV sphere of the given radius centered on the origin.
//
// divisions is the number of latitude steps from pole to pole; there are
// twice as many longitudes. Ring vertices are stored longitude by longitude,
// north to south, followed by the north and south poles. Normals are the
// normalized positions. UVs follow longitude and latitude, so a texture
// wraps once around the equator.
func Sphere(radius float64, divisions int) *Mesh {
	if divisions < 2 {
		divisions = 2
	}
	longs := divisions * 2
	ring := divisions - 1 // vertices per longitude, poles excluded

	latStep := math.Pi / float64(divisions)
	longStep := 2 * math.Pi / float64(longs)

	m := NewMesh("sphere")
	m.Vertices = make([]Vertex, 0, longs*ring+2)
	for long := range longs {
		phi := float64(long) * longStep
		for lat := range ring {
			theta := float64(lat+1) * latStep
			m.addVertex(radius, math3d.V3(
				math.Sin(theta)*math.Cos(phi),
				math.Cos(theta),
				math.Sin(theta)*math.Sin(phi),
			), math3d.V2(float64(long)/float64(longs), theta/math.Pi))
		}
	}

	// Quads between each longitude and the previous one. The last pass
	// stitches longitude 0 back onto the final one.
	for long := 1; long <= longs; long++ {
		for lat := range ring {
			prev := (long-1)*ring + lat
			cur := (long%longs)*ring + lat

			if lat < ring-1 {
				m.Triangles = append(m.Triangles, [3]int{cur, prev + 1, prev})
			}
			if lat > 0 {
				m.Triangles = append(m.Triangles, [3]int{cur, prev, cur - 1})
			}
		}
	}

	north := len(m.Vertices)
	south := north + 1
	for long := 1; long <= longs; long++ {
		prev := (long - 1) * ring
		cur := (long % longs) * ring

		m.Triangles = append(m.Triangles,
			[3]int{cur, prev, north},
			[3]int{prev + ring - 1, cur + ring - 1, south},
		)
	}
	m.addVertex(radius, math3d.V3(0, 1, 0), math3d.V2(0.5, 0))
	m.addVertex(radius, math3d.V3(0, -1, 0), math3d.V2(0.5, 1))

	for i := range m.Vertices {
		m.Vertices[i].Color = normalColor(m.Vertices[i].Normal)
	}

	m.CalculateBounds()
	return m
}

// addVertex appends the point at dir, a unit vector, scaled by radius.
func (m *Mesh) addVertex(radius float64, dir math3d.Vec3, uv math3d.Vec2) {
	m.Vertices = append(m.Vertices, Vertex{
		Position: dir.Scale(radius),
		Normal:   dir,
		UV:       uv,
	})
}

// normalColor maps a unit normal onto the color cube, for meshes without
// vertex colors of their own.
func normalColor(n math3d.Vec3) render.Color {
	return render.ColorFromVec(n.Add(math3d.V3(1, 1, 1)).Scale(127.5))
}
