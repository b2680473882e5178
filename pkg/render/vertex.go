package render

import (
	"errors"
	"fmt"

	"github.com/taigrr/engine3d/pkg/math3d"
)

// Vertex is the arithmetic a shaded vertex type provides so the rasterizer
// can interpolate it without knowing its attributes.
//
// Every attribute takes part in the arithmetic the same way the position
// does, except attributes an effect deliberately freezes (a per-face normal
// or intensity), which are carried through unchanged.
type Vertex[V any] interface {
	Add(V) V
	Sub(V) V
	Scale(s float64) V
	Div(s float64) V
	InterpTo(dst V, t float64) V
	Position() math3d.Vec3
	WithPosition(p math3d.Vec3) V
}

// Triangle is three resolved vertices. It is the unit handed from the
// vertex stage to the geometry stage.
type Triangle[V any] struct {
	V0, V1, V2 V
}

var (
	// ErrIndexOutOfRange reports a triangle or line index outside the vertex list.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrDegenerateIndex reports a primitive that references the same vertex twice.
	ErrDegenerateIndex = errors.New("primitive repeats a vertex index")
)

// IndexedTriangleList is a vertex list plus triangles given as index triples.
type IndexedTriangleList[V any] struct {
	Vertices  []V
	Triangles [][3]int
}

// Validate checks that every index is in range and that no triangle
// references the same vertex twice.
func (l IndexedTriangleList[V]) Validate() error {
	n := len(l.Vertices)
	for i, t := range l.Triangles {
		for _, idx := range t {
			if idx < 0 || idx >= n {
				return fmt.Errorf("triangle %d: index %d of %d vertices: %w", i, idx, n, ErrIndexOutOfRange)
			}
		}
		if t[0] == t[1] || t[1] == t[2] || t[0] == t[2] {
			return fmt.Errorf("triangle %d %v: %w", i, t, ErrDegenerateIndex)
		}
	}
	return nil
}

// IndexedLineList is a vertex list plus line segments given as index pairs.
type IndexedLineList struct {
	Vertices []math3d.Vec3
	Lines    [][2]int
}

// Validate checks that every index is in range and that no line is a
// single repeated vertex.
func (l IndexedLineList) Validate() error {
	n := len(l.Vertices)
	for i, ln := range l.Lines {
		for _, idx := range ln {
			if idx < 0 || idx >= n {
				return fmt.Errorf("line %d: index %d of %d vertices: %w", i, idx, n, ErrIndexOutOfRange)
			}
		}
		if ln[0] == ln[1] {
			return fmt.Errorf("line %d %v: %w", i, ln, ErrDegenerateIndex)
		}
	}
	return nil
}

// mustIndex panics when idx is not a valid index into n vertices.
func mustIndex(kind string, prim, idx, n int) {
	if idx < 0 || idx >= n {
		panic(fmt.Sprintf("render: %s %d: index %d out of range [0,%d)", kind, prim, idx, n))
	}
}
