package render

import (
	"github.com/taigrr/engine3d/pkg/math3d"
)

// WireframePipeline draws indexed line lists. Like an effect's vertex
// shader it rotates and then translates every vertex, and like the triangle
// pipeline it does no clipping.
type WireframePipeline struct {
	sink        PixelSink
	screen      ScreenTransform
	rotation    math3d.Mat3
	translation math3d.Vec3

	projected []math3d.Vec3
	lines     int
}

// NewWireframePipeline creates a line pipeline for a width x height sink.
func NewWireframePipeline(sink PixelSink, width, height int) *WireframePipeline {
	return &WireframePipeline{
		sink:     sink,
		screen:   NewScreenTransform(width, height),
		rotation: math3d.Identity3(),
	}
}

// BindRotation sets the rotation applied to every vertex.
func (w *WireframePipeline) BindRotation(m math3d.Mat3) {
	w.rotation = m
}

// BindTranslation sets the offset added after rotation.
func (w *WireframePipeline) BindTranslation(t math3d.Vec3) {
	w.translation = t
}

// Lines returns the number of segments drawn by the last Draw.
func (w *WireframePipeline) Lines() int {
	return w.lines
}

// Draw draws every line of list in color c. An index outside list.Vertices
// panics.
func (w *WireframePipeline) Draw(list IndexedLineList, c Color) {
	w.projected = w.projected[:0]
	for _, v := range list.Vertices {
		p := v.MulMat3(w.rotation).Add(w.translation)
		w.projected = append(w.projected, w.screen.ProjectPoint(p))
	}

	n := len(w.projected)
	for i, ln := range list.Lines {
		mustIndex("line", i, ln[0], n)
		mustIndex("line", i, ln[1], n)
		DrawLine(w.sink, w.projected[ln[0]].XY(), w.projected[ln[1]].XY(), c)
	}
	w.lines = len(list.Lines)
}

// DrawLine draws a line between two screen points by stepping one pixel at a
// time along the longer axis. Endpoints are quantized with Rast; both are
// drawn.
func DrawLine(sink PixelSink, a, b math3d.Vec2, c Color) {
	x0, y0 := Rast(a.X), Rast(a.Y)
	dx := Rast(b.X) - x0
	dy := Rast(b.Y) - y0

	steps := max(abs(dx), abs(dy))
	if steps == 0 {
		sink.PutPixel(x0, y0, c)
		return
	}

	stepX := float64(dx) / float64(steps)
	stepY := float64(dy) / float64(steps)
	x, y := float64(x0), float64(y0)
	for range steps {
		sink.PutPixel(Rast(x), Rast(y), c)
		x += stepX
		y += stepY
	}
	sink.PutPixel(x0+dx, y0+dy, c)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
