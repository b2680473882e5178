package render

import (
	"testing"

	"github.com/taigrr/engine3d/pkg/math3d"
)

// testVertex is a position with one interpolated vector attribute.
type testVertex struct {
	pos  math3d.Vec3
	attr math3d.Vec3
}

func tv(x, y, z float64) testVertex {
	return testVertex{pos: math3d.V3(x, y, z)}
}

func (v testVertex) Add(o testVertex) testVertex {
	return testVertex{v.pos.Add(o.pos), v.attr.Add(o.attr)}
}

func (v testVertex) Sub(o testVertex) testVertex {
	return testVertex{v.pos.Sub(o.pos), v.attr.Sub(o.attr)}
}

func (v testVertex) Scale(s float64) testVertex {
	return testVertex{v.pos.Scale(s), v.attr.Scale(s)}
}

func (v testVertex) Div(s float64) testVertex {
	return testVertex{v.pos.Div(s), v.attr.Div(s)}
}

func (v testVertex) InterpTo(o testVertex, t float64) testVertex {
	return testVertex{v.pos.Lerp(o.pos, t), v.attr.Lerp(o.attr, t)}
}

func (v testVertex) Position() math3d.Vec3 { return v.pos }

func (v testVertex) WithPosition(p math3d.Vec3) testVertex {
	v.pos = p
	return v
}

// solidEffect paints every pixel one color.
type solidEffect struct {
	color Color
}

func (e solidEffect) VertexShader(p math3d.Vec3) testVertex { return testVertex{pos: p} }

func (e solidEffect) GeometryShader(t Triangle[testVertex]) Triangle[testVertex] { return t }

func (e solidEffect) PixelShader(testVertex) Color { return e.color }

// attrEffect shows the interpolated attribute as a color and optionally
// reports every shaded vertex.
type attrEffect struct {
	onPixel func(testVertex)
}

func (e attrEffect) VertexShader(v testVertex) testVertex { return v }

func (e attrEffect) GeometryShader(t Triangle[testVertex]) Triangle[testVertex] { return t }

func (e attrEffect) PixelShader(v testVertex) Color {
	if e.onPixel != nil {
		e.onPixel(v)
	}
	return ColorFromVec(v.attr)
}

// recordingSink counts writes per pixel.
type recordingSink struct {
	writes map[[2]int]int
	last   map[[2]int]Color
	order  [][2]int
}

func newRecordingSink() *recordingSink {
	return &recordingSink{
		writes: make(map[[2]int]int),
		last:   make(map[[2]int]Color),
	}
}

func (s *recordingSink) PutPixel(x, y int, c Color) {
	k := [2]int{x, y}
	s.writes[k]++
	s.last[k] = c
	s.order = append(s.order, k)
}

// screenTriangle fills a triangle given directly in screen space with
// z = 1 and returns the sink that recorded it.
func screenTriangle(t *testing.T, a, b, c math3d.Vec2) *recordingSink {
	t.Helper()
	sink := newRecordingSink()
	s := newScanliner(func(testVertex) Color { return ColorWhite }, PixelSink(sink))
	s.triangle(tv(a.X, a.Y, 1), tv(b.X, b.Y, 1), tv(c.X, c.Y, 1))
	if s.pixels != len(sink.order) {
		t.Fatalf("scanliner counted %d pixels, sink saw %d", s.pixels, len(sink.order))
	}
	return sink
}

// referenceCoverage returns the pixels whose centers fall inside the
// triangle under the fill convention: rows from the top vertex inclusive to
// the bottom vertex exclusive, and on each row from the left edge inclusive
// to the right edge exclusive.
func referenceCoverage(a, b, c math3d.Vec2) map[[2]int]bool {
	pts := []math3d.Vec2{a, b, c}
	minX, maxX := min(a.X, b.X, c.X), max(a.X, b.X, c.X)
	minY, maxY := min(a.Y, b.Y, c.Y), max(a.Y, b.Y, c.Y)

	out := make(map[[2]int]bool)
	for y := int(minY) - 1; y <= int(maxY)+1; y++ {
		cy := float64(y) + 0.5
		if cy < minY || cy >= maxY {
			continue
		}
		left, right := maxX+1, minX-1
		for i := range 3 {
			p, q := pts[i], pts[(i+1)%3]
			if p.Y > q.Y {
				p, q = q, p
			}
			if p.Y == q.Y || cy < p.Y || cy > q.Y {
				continue
			}
			x := p.X + (q.X-p.X)*(cy-p.Y)/(q.Y-p.Y)
			left = min(left, x)
			right = max(right, x)
		}
		for x := int(minX) - 1; x <= int(maxX)+1; x++ {
			cx := float64(x) + 0.5
			if cx >= left && cx < right {
				out[[2]int{x, y}] = true
			}
		}
	}
	return out
}
