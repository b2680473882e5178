// Package models provides the meshes engine3d draws: the built-in cube and
// sphere and meshes loaded from glTF files, with conversions to the vertex
// lists each effect consumes.
package models

import (
	"fmt"

	"github.com/taigrr/engine3d/pkg/effect"
	"github.com/taigrr/engine3d/pkg/math3d"
	"github.com/taigrr/engine3d/pkg/render"
)

// Mesh is an indexed triangle mesh with every attribute an effect may need.
type Mesh struct {
	Name      string
	Vertices  []Vertex
	Triangles [][3]int
	Lines     [][2]int // Optional; derived from the triangles when empty

	// Texture is the image that came with the mesh, if any.
	Texture *render.Texture

	// Bounding box (calculated on load)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// Vertex holds all vertex attributes.
type Vertex struct {
	Position math3d.Vec3
	Normal   math3d.Vec3
	UV       math3d.Vec2
	Color    render.Color
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{Name: name}
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		return
	}

	m.BoundsMin = m.Vertices[0].Position
	m.BoundsMax = m.Vertices[0].Position

	for _, v := range m.Vertices[1:] {
		m.BoundsMin = m.BoundsMin.Min(v.Position)
		m.BoundsMax = m.BoundsMax.Max(v.Position)
	}
}

// Bounds returns the bounding box as a render.AABB.
func (m *Mesh) Bounds() render.AABB {
	return render.NewAABB(m.BoundsMin, m.BoundsMax)
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// Radius returns the distance from the origin to the farthest vertex.
func (m *Mesh) Radius() float64 {
	var r float64
	for _, v := range m.Vertices {
		r = max(r, v.Position.Len())
	}
	return r
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Triangles)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// Validate reports triangles or lines with bad indices.
func (m *Mesh) Validate() error {
	if err := m.FlatList().Validate(); err != nil {
		return fmt.Errorf("mesh %q: %w", m.Name, err)
	}
	if len(m.Lines) > 0 {
		if err := m.LineList().Validate(); err != nil {
			return fmt.Errorf("mesh %q: %w", m.Name, err)
		}
	}
	return nil
}

// CalculateSmoothNormals sets every vertex normal to the average of the
// normals of the faces around it, weighted by face area.
func (m *Mesh) CalculateSmoothNormals() {
	for i := range m.Vertices {
		m.Vertices[i].Normal = math3d.Vec3{}
	}

	for _, t := range m.Triangles {
		v0 := m.Vertices[t[0]].Position
		v1 := m.Vertices[t[1]].Position
		v2 := m.Vertices[t[2]].Position

		// Not normalized, so larger faces count for more.
		n := v1.Sub(v0).Cross(v2.Sub(v0))

		for _, idx := range t {
			m.Vertices[idx].Normal = m.Vertices[idx].Normal.Add(n)
		}
	}

	for i := range m.Vertices {
		m.Vertices[i].Normal = m.Vertices[i].Normal.Normalize()
	}
}

// Normalize centers the mesh on the origin and scales it so the farthest
// vertex is at distance 1.
func (m *Mesh) Normalize() {
	m.CalculateBounds()
	center := m.Center()
	for i := range m.Vertices {
		m.Vertices[i].Position = m.Vertices[i].Position.Sub(center)
	}

	if r := m.Radius(); r > 0 {
		for i := range m.Vertices {
			m.Vertices[i].Position = m.Vertices[i].Position.Div(r)
		}
	}
	m.CalculateBounds()
}

// Transform applies mat to every position and normal. mat must be a rotation
// or uniform scale.
func (m *Mesh) Transform(mat math3d.Mat3) {
	for i := range m.Vertices {
		m.Vertices[i].Position = m.Vertices[i].Position.MulMat3(mat)
		m.Vertices[i].Normal = m.Vertices[i].Normal.MulMat3(mat).Normalize()
	}
	m.CalculateBounds()
}

// Clone creates a deep copy of the mesh. The texture is shared.
func (m *Mesh) Clone() *Mesh {
	clone := *m
	clone.Vertices = append([]Vertex(nil), m.Vertices...)
	clone.Triangles = append([][3]int(nil), m.Triangles...)
	clone.Lines = append([][2]int(nil), m.Lines...)
	return &clone
}

// FlatList returns the positions and triangles, the input of the flat
// effect.
func (m *Mesh) FlatList() render.IndexedTriangleList[math3d.Vec3] {
	verts := make([]math3d.Vec3, len(m.Vertices))
	for i, v := range m.Vertices {
		verts[i] = v.Position
	}
	return render.IndexedTriangleList[math3d.Vec3]{Vertices: verts, Triangles: m.Triangles}
}

// GouraudList returns positions with normals.
func (m *Mesh) GouraudList() render.IndexedTriangleList[effect.NormalVertex] {
	verts := make([]effect.NormalVertex, len(m.Vertices))
	for i, v := range m.Vertices {
		verts[i] = effect.NormalVertex{Pos: v.Position, Normal: v.Normal}
	}
	return render.IndexedTriangleList[effect.NormalVertex]{Vertices: verts, Triangles: m.Triangles}
}

// TextureList returns positions with texture coordinates.
func (m *Mesh) TextureList() render.IndexedTriangleList[effect.UVVertex] {
	verts := make([]effect.UVVertex, len(m.Vertices))
	for i, v := range m.Vertices {
		verts[i] = effect.UVVertex{Pos: v.Position, UV: v.UV}
	}
	return render.IndexedTriangleList[effect.UVVertex]{Vertices: verts, Triangles: m.Triangles}
}

// ColorList returns positions with vertex colors.
func (m *Mesh) ColorList() render.IndexedTriangleList[effect.ColorVertex] {
	verts := make([]effect.ColorVertex, len(m.Vertices))
	for i, v := range m.Vertices {
		verts[i] = effect.ColorVertex{Pos: v.Position, Color: v.Color.Vec()}
	}
	return render.IndexedTriangleList[effect.ColorVertex]{Vertices: verts, Triangles: m.Triangles}
}

// LineList returns the mesh edges. Without explicit lines every triangle
// edge is listed once.
func (m *Mesh) LineList() render.IndexedLineList {
	verts := make([]math3d.Vec3, len(m.Vertices))
	for i, v := range m.Vertices {
		verts[i] = v.Position
	}

	lines := m.Lines
	if len(lines) == 0 {
		lines = triangleEdges(m.Triangles)
	}
	return render.IndexedLineList{Vertices: verts, Lines: lines}
}

func triangleEdges(tris [][3]int) [][2]int {
	seen := make(map[[2]int]bool, len(tris)*3/2)
	var lines [][2]int
	for _, t := range tris {
		for k := range 3 {
			a, b := t[k], t[(k+1)%3]
			key := [2]int{min(a, b), max(a, b)}
			if seen[key] {
				continue
			}
			seen[key] = true
			lines = append(lines, [2]int{a, b})
		}
	}
	return lines
}
