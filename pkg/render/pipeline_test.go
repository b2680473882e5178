package render

import (
	"errors"
	"math"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/taigrr/engine3d/pkg/math3d"
)

// newSolidPipeline creates a pipeline that paints c into a fresh framebuffer.
func newSolidPipeline(c Color, width, height int, opts ...Option) (*Pipeline[math3d.Vec3, testVertex, testVertex], *Framebuffer) {
	fb := NewFramebuffer(width, height)
	return NewPipeline[math3d.Vec3, testVertex, testVertex](solidEffect{c}, fb, width, height, opts...), fb
}

func newAttrPipeline(e attrEffect, sink PixelSink, width, height int, opts ...Option) *Pipeline[testVertex, testVertex, testVertex] {
	return NewPipeline[testVertex, testVertex, testVertex](e, sink, width, height, opts...)
}

// Camera-space corners that land on pixels (16,16), (32,16) and (16,32) of
// a 128x128 target.
var (
	cornerA = math3d.V3(-0.75, 0.75, 1)
	cornerB = math3d.V3(-0.5, 0.75, 1)
	cornerC = math3d.V3(-0.75, 0.5, 1)
)

func TestDrawConstantColorTriangle(t *testing.T) {
	want := RGB(200, 50, 50)
	if want != Color(0x00C83232) {
		t.Fatalf("RGB(200, 50, 50) = %#08x", uint32(want))
	}

	for _, bands := range []int{1, 3, 8} {
		p, fb := newSolidPipeline(want, 128, 128, WithBands(bands))
		p.Draw(IndexedTriangleList[math3d.Vec3]{
			Vertices:  []math3d.Vec3{cornerA, cornerB, cornerC},
			Triangles: [][3]int{{0, 1, 2}},
		})

		lit := 0
		for y := range fb.Height {
			for x := range fb.Width {
				inside := x >= 16 && y >= 16 && x+y <= 46
				got := fb.GetPixel(x, y)
				switch {
				case inside && got != want:
					t.Errorf("bands=%d: pixel (%d, %d) = %#06x, want %#06x", bands, x, y, uint32(got), uint32(want))
				case !inside && got != ColorBlack:
					t.Errorf("bands=%d: pixel (%d, %d) outside the triangle was written", bands, x, y)
				}
				if got == want {
					lit++
				}
			}
		}
		if lit != 120 {
			t.Errorf("bands=%d: %d lit pixels, want 120", bands, lit)
		}

		stats := p.Stats()
		if stats != (Stats{Triangles: 1, Rasterized: 1, Pixels: 120}) {
			t.Errorf("bands=%d: stats = %+v", bands, stats)
		}
	}
}

func TestBackFaceCulling(t *testing.T) {
	tests := []struct {
		name     string
		vertices []math3d.Vec3
		culled   bool
	}{
		{"facing camera", []math3d.Vec3{cornerA, cornerB, cornerC}, false},
		{"facing away", []math3d.Vec3{cornerA, cornerC, cornerB}, true},
		{"edge on", []math3d.Vec3{math3d.V3(0, 0, 1), math3d.V3(0, 0.5, 2), math3d.V3(0, -0.5, 3)}, true},
		{"collinear", []math3d.Vec3{math3d.V3(0, 0, 1), math3d.V3(0.1, 0.1, 1), math3d.V3(0.2, 0.2, 1)}, true},
		{"repeated vertex", []math3d.Vec3{cornerA, cornerA, cornerC}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := BackFacing(tc.vertices[0], tc.vertices[1], tc.vertices[2]); got != tc.culled {
				t.Errorf("BackFacing = %v, want %v", got, tc.culled)
			}

			p, fb := newSolidPipeline(ColorWhite, 128, 128)
			p.Draw(IndexedTriangleList[math3d.Vec3]{
				Vertices:  tc.vertices,
				Triangles: [][3]int{{0, 1, 2}},
			})

			written := 0
			for _, c := range fb.Pixels {
				if c != ColorBlack {
					written++
				}
			}
			if tc.culled && (written != 0 || p.Stats().Culled != 1) {
				t.Errorf("culled triangle wrote %d pixels, stats %+v", written, p.Stats())
			}
			if !tc.culled && written == 0 {
				t.Error("visible triangle wrote no pixels")
			}
		})
	}
}

func TestPerspectiveCorrectInterpolation(t *testing.T) {
	// The attribute is the camera-space position, so at every pixel the
	// recovered attribute must be the point of the triangle seen through
	// that pixel's center.
	a := testVertex{pos: math3d.V3(-1, -1, 2)}
	b := testVertex{pos: math3d.V3(1.5, -0.5, 4)}
	c := testVertex{pos: math3d.V3(0, 1.5, 3)}
	if BackFacing(a.pos, b.pos, c.pos) {
		b, c = c, b
	}
	for _, v := range []*testVertex{&a, &b, &c} {
		v.attr = v.pos
	}

	st := NewScreenTransform(128, 128)
	var shaded int
	e := attrEffect{onPixel: func(v testVertex) {
		shaded++
		seen := st.ProjectPoint(v.attr)
		if math.Abs(seen.X-v.pos.X) > 1e-6 || math.Abs(seen.Y-v.pos.Y) > 1e-6 {
			t.Fatalf("attribute %v projects to (%v, %v), pixel center is (%v, %v)",
				v.attr, seen.X, seen.Y, v.pos.X, v.pos.Y)
		}
		if math.Abs(v.pos.Z-v.attr.Z) > 1e-6 {
			t.Fatalf("depth %v, want %v", v.pos.Z, v.attr.Z)
		}
	}}

	p := newAttrPipeline(e, newRecordingSink(), 128, 128)
	p.Draw(IndexedTriangleList[testVertex]{
		Vertices:  []testVertex{a, b, c},
		Triangles: [][3]int{{0, 1, 2}},
	})
	if shaded == 0 {
		t.Fatal("no pixels shaded")
	}
}

func TestColorInterpolationMidpoint(t *testing.T) {
	top := testVertex{pos: math3d.V3(0, 0.5, 1), attr: math3d.V3(127.5, 0, 127.5)}
	right := testVertex{pos: math3d.V3(0.5, -0.5, 1), attr: math3d.V3(0, 0, 255)}
	left := testVertex{pos: math3d.V3(-0.5, -0.5, 1), attr: math3d.V3(255, 0, 0)}

	fb := NewFramebuffer(128, 128)
	p := newAttrPipeline(attrEffect{}, fb, 128, 128)
	p.Draw(IndexedTriangleList[testVertex]{
		Vertices:  []testVertex{top, right, left},
		Triangles: [][3]int{{0, 1, 2}},
	})

	for _, x := range []int{63, 64} {
		c := fb.GetPixel(x, 80)
		if c.R() < 124 || c.R() > 131 || c.G() != 0 || c.B() < 124 || c.B() > 131 {
			t.Errorf("pixel (%d, 80) = (%d, %d, %d), want about (127, 0, 127)", x, c.R(), c.G(), c.B())
		}
	}

	near := fb.GetPixel(33, 95)
	if near.R() < 240 || near.B() > 15 {
		t.Errorf("pixel near the red corner = (%d, %d, %d)", near.R(), near.G(), near.B())
	}
}

func TestLaterTrianglesPaintOver(t *testing.T) {
	first := testVertex{attr: math3d.V3(255, 0, 0)}
	second := testVertex{attr: math3d.V3(0, 0, 255)}

	var verts []testVertex
	for _, base := range []testVertex{first, second} {
		for _, pos := range []math3d.Vec3{cornerA, cornerB, cornerC} {
			v := base
			v.pos = pos
			verts = append(verts, v)
		}
	}

	for _, bands := range []int{1, 4} {
		fb := NewFramebuffer(128, 128)
		p := newAttrPipeline(attrEffect{}, fb, 128, 128, WithBands(bands))
		p.Draw(IndexedTriangleList[testVertex]{
			Vertices:  verts,
			Triangles: [][3]int{{0, 1, 2}, {3, 4, 5}},
		})
		if got := fb.GetPixel(20, 20); got != ColorBlue {
			t.Errorf("bands=%d: overlapping pixel = %#06x, want the later triangle's blue", bands, uint32(got))
		}
	}
}

// randomScene builds overlapping, randomly oriented triangles that stay on
// a 160x120 screen.
func randomScene(n int) IndexedTriangleList[testVertex] {
	r := rand.New(rand.NewPCG(1, 2))
	var list IndexedTriangleList[testVertex]
	for i := range n {
		for range 3 {
			z := 1 + 3*r.Float64()
			list.Vertices = append(list.Vertices, testVertex{
				pos:  math3d.V3((r.Float64()*1.8-0.9)*z, (r.Float64()*1.8-0.9)*z, z),
				attr: math3d.V3(r.Float64()*255, r.Float64()*255, r.Float64()*255),
			})
		}
		list.Triangles = append(list.Triangles, [3]int{3 * i, 3*i + 1, 3*i + 2})
	}
	return list
}

func TestBandedOutputMatchesSequential(t *testing.T) {
	scene := randomScene(80)

	seqFB := NewFramebuffer(160, 120)
	seq := newAttrPipeline(attrEffect{}, seqFB, 160, 120)
	seq.Draw(scene)

	for _, bands := range []int{2, 5, 16, 200} {
		fb := NewFramebuffer(160, 120)
		p := newAttrPipeline(attrEffect{}, fb, 160, 120, WithBands(bands))
		p.Draw(scene)

		for i := range fb.Pixels {
			if fb.Pixels[i] != seqFB.Pixels[i] {
				t.Fatalf("bands=%d: pixel %d = %#06x, sequential %#06x",
					bands, i, uint32(fb.Pixels[i]), uint32(seqFB.Pixels[i]))
			}
		}
		if p.Stats() != seq.Stats() {
			t.Errorf("bands=%d: stats %+v, sequential %+v", bands, p.Stats(), seq.Stats())
		}
	}
}

func TestDrawPanicsOnBadIndex(t *testing.T) {
	p, _ := newSolidPipeline(ColorWhite, 64, 64)

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic")
		}
		if msg, ok := r.(string); !ok || !strings.Contains(msg, "index 3 out of range") {
			t.Errorf("panic = %v", r)
		}
	}()
	p.Draw(IndexedTriangleList[math3d.Vec3]{
		Vertices:  []math3d.Vec3{cornerA, cornerB, cornerC},
		Triangles: [][3]int{{0, 1, 3}},
	})
}

func TestDrawPanicsOffScreen(t *testing.T) {
	// cornerA-C moved two units left, onto columns -14..-12 of a 16x16 target.
	shift := math3d.V3(-2, 0, 0)
	list := IndexedTriangleList[math3d.Vec3]{
		Vertices:  []math3d.Vec3{cornerA.Add(shift), cornerB.Add(shift), cornerC.Add(shift)},
		Triangles: [][3]int{{0, 1, 2}},
	}

	tests := []struct {
		name string
		opts []Option
	}{
		{"sequential", nil},
		{"one band", []Option{WithBands(1)}},
		{"four bands", []Option{WithBands(4)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _ := newSolidPipeline(ColorWhite, 16, 16, tt.opts...)

			defer func() {
				r := recover()
				if r == nil {
					t.Fatal("expected panic")
				}
				if msg, ok := r.(string); !ok || !strings.Contains(msg, "outside 16x16 framebuffer") {
					t.Errorf("panic = %v", r)
				}
			}()
			p.Draw(list)
		})
	}
}

func TestVertexShaderRunsOncePerVertex(t *testing.T) {
	e := &countingEffect{}
	p := NewPipeline[math3d.Vec3, testVertex, testVertex](e, newRecordingSink(), 128, 128)
	p.Draw(IndexedTriangleList[math3d.Vec3]{
		Vertices:  []math3d.Vec3{cornerA, cornerB, cornerC, math3d.V3(-0.5, 0.5, 1)},
		Triangles: [][3]int{{0, 1, 2}, {1, 3, 2}, {2, 1, 0}},
	})

	if e.vertices != 4 {
		t.Errorf("vertex shader ran %d times, want 4", e.vertices)
	}
	if e.triangles != 2 {
		t.Errorf("geometry shader ran %d times, want 2 (one triangle culled)", e.triangles)
	}
}

type countingEffect struct {
	vertices, triangles int
}

func (e *countingEffect) VertexShader(p math3d.Vec3) testVertex {
	e.vertices++
	return testVertex{pos: p}
}

func (e *countingEffect) GeometryShader(t Triangle[testVertex]) Triangle[testVertex] {
	e.triangles++
	return t
}

func (e *countingEffect) PixelShader(testVertex) Color { return ColorWhite }

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		triangles [][3]int
		wantErr   error
	}{
		{"valid", [][3]int{{0, 1, 2}}, nil},
		{"out of range", [][3]int{{0, 1, 3}}, ErrIndexOutOfRange},
		{"negative", [][3]int{{-1, 1, 2}}, ErrIndexOutOfRange},
		{"repeated", [][3]int{{0, 1, 1}}, ErrDegenerateIndex},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			list := IndexedTriangleList[math3d.Vec3]{
				Vertices:  []math3d.Vec3{cornerA, cornerB, cornerC},
				Triangles: tc.triangles,
			}
			err := list.Validate()
			if tc.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() = %v", err)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func BenchmarkPipelineDraw(b *testing.B) {
	scene := randomScene(200)

	for _, bands := range []int{1, 4} {
		fb := NewFramebuffer(160, 120)
		p := newAttrPipeline(attrEffect{}, fb, 160, 120, WithBands(bands))
		name := "sequential"
		if bands > 1 {
			name = "bands"
		}
		b.Run(name, func(b *testing.B) {
			for b.Loop() {
				p.Draw(scene)
			}
		})
	}
}
