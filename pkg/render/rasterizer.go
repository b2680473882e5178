package render

import (
	"math"

	"github.com/taigrr/engine3d/pkg/math3d"
)

// Rast maps a continuous screen coordinate to the first pixel whose center
// lies at or beyond it. Used for both ends of a span, it makes the start
// inclusive and the end exclusive, so a pixel is drawn exactly when its
// center (x+0.5, y+0.5) is inside the triangle and shared edges are drawn
// once.
func Rast(n float64) int {
	return int(math.Ceil(n - 0.5))
}

// scanliner fills screen-space triangles one row at a time.
//
// Vertices arrive from Project: x and y are pixel coordinates, z is 1/z and
// every other attribute is premultiplied by 1/z. Rows outside [minY, maxY)
// are skipped, which lets several scanliners split one frame between them.
type scanliner[V Vertex[V]] struct {
	shade  func(V) Color
	sink   PixelSink
	minY   int
	maxY   int
	pixels int
}

func newScanliner[V Vertex[V]](shade func(V) Color, sink PixelSink) *scanliner[V] {
	return &scanliner[V]{
		shade: shade,
		sink:  sink,
		minY:  math.MinInt,
		maxY:  math.MaxInt,
	}
}

// triangle sorts the vertices top to bottom and draws the triangle as one
// or two flat-sided pieces.
func (s *scanliner[V]) triangle(v0, v1, v2 V) {
	if v1.Position().Y < v0.Position().Y {
		v0, v1 = v1, v0
	}
	if v2.Position().Y < v1.Position().Y {
		v1, v2 = v2, v1
	}
	if v1.Position().Y < v0.Position().Y {
		v0, v1 = v1, v0
	}

	p0, p1, p2 := v0.Position(), v1.Position(), v2.Position()
	switch {
	case p0.Y == p1.Y:
		if p1.X < p0.X {
			v0, v1 = v1, v0
		}
		s.flatTop(v0, v1, v2)
	case p1.Y == p2.Y:
		if p2.X < p1.X {
			v1, v2 = v2, v1
		}
		s.flatBottom(v0, v1, v2)
	default:
		// Split the long edge at the height of the middle vertex.
		ratio := (p1.Y - p0.Y) / (p2.Y - p0.Y)
		split := v0.InterpTo(v2, ratio)
		// Both halves must meet at exactly p1.Y; the interpolated y can be
		// off by an ulp and shift the seam row.
		sp := split.Position()
		split = split.WithPosition(math3d.V3(sp.X, p1.Y, sp.Z))

		if v1.Position().X < split.Position().X {
			s.flatBottom(v0, v1, split)
			s.flatTop(v1, split, v2)
		} else {
			s.flatBottom(v0, split, v1)
			s.flatTop(split, v1, v2)
		}
	}
}

// flatTop draws a triangle whose top edge runs from topLeft to topRight.
func (s *scanliner[V]) flatTop(topLeft, topRight, bottom V) {
	dy := bottom.Position().Y - topLeft.Position().Y
	leftStep := bottom.Sub(topLeft).Div(dy)
	rightStep := bottom.Sub(topRight).Div(dy)
	s.flat(topLeft, topRight, leftStep, rightStep, topLeft.Position().Y, bottom.Position().Y)
}

// flatBottom draws a triangle whose bottom edge runs from bottomLeft to
// bottomRight.
func (s *scanliner[V]) flatBottom(top, bottomLeft, bottomRight V) {
	dy := bottomRight.Position().Y - top.Position().Y
	leftStep := bottomLeft.Sub(top).Div(dy)
	rightStep := bottomRight.Sub(top).Div(dy)
	s.flat(top, top, leftStep, rightStep, top.Position().Y, bottomRight.Position().Y)
}

// flat walks the rows of a flat-sided triangle. The edges start at left and
// right on row yTop and move by leftStep and rightStep per unit of y.
//
// Edge vertices are evaluated directly at each row center instead of being
// accumulated, so coverage depends only on the edge equations. Attributes
// along a row are accumulated from the first pixel center.
func (s *scanliner[V]) flat(left, right, leftStep, rightStep V, yTop, yBottom float64) {
	yStart := max(Rast(yTop), s.minY)
	yEnd := min(Rast(yBottom), s.maxY)

	for y := yStart; y < yEnd; y++ {
		dist := float64(y) + 0.5 - yTop
		lineStart := left.Add(leftStep.Scale(dist))
		lineEnd := right.Add(rightStep.Scale(dist))

		xStartF := lineStart.Position().X
		xEndF := lineEnd.Position().X
		xStart := Rast(xStartF)
		xEnd := Rast(xEndF)
		if xStart >= xEnd {
			continue
		}

		step := lineEnd.Sub(lineStart).Div(xEndF - xStartF)
		cur := lineStart.Add(step.Scale(float64(xStart) + 0.5 - xStartF))

		for x := xStart; x < xEnd; x++ {
			s.sink.PutPixel(x, y, s.shade(undoPerspective(cur)))
			cur = cur.Add(step)
		}
		s.pixels += xEnd - xStart
	}
}

// undoPerspective divides the 1/z weighting back out of an interpolated vertex. The
// position keeps its screen x and y and gets the true depth in z.
func undoPerspective[V Vertex[V]](v V) V {
	p := v.Position()
	z := 1 / p.Z
	p.Z = z
	return v.Scale(z).WithPosition(p)
}
