package render

import (
	"math"
	"testing"

	"github.com/taigrr/engine3d/pkg/math3d"
)

func TestDrawLine(t *testing.T) {
	tests := []struct {
		name string
		a, b math3d.Vec2
		want [][2]int
	}{
		{
			name: "single point",
			a:    math3d.V2(2.2, 2.7),
			b:    math3d.V2(2.4, 2.9),
			want: [][2]int{{2, 3}},
		},
		{
			name: "horizontal",
			a:    math3d.V2(0.2, 3.2),
			b:    math3d.V2(4.4, 3.0),
			want: [][2]int{{0, 3}, {1, 3}, {2, 3}, {3, 3}, {4, 3}},
		},
		{
			name: "diagonal",
			a:    math3d.V2(0, 0),
			b:    math3d.V2(3, 3),
			want: [][2]int{{0, 0}, {1, 1}, {2, 2}, {3, 3}},
		},
		{
			name: "reversed",
			a:    math3d.V2(3, 3),
			b:    math3d.V2(0, 0),
			want: [][2]int{{3, 3}, {2, 2}, {1, 1}, {0, 0}},
		},
		{
			name: "steep",
			a:    math3d.V2(0, 0),
			b:    math3d.V2(1, 4),
			want: [][2]int{{0, 0}, {0, 1}, {0, 2}, {1, 3}, {1, 4}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sink := newRecordingSink()
			DrawLine(sink, tc.a, tc.b, ColorGreen)

			if len(sink.order) != len(tc.want) {
				t.Fatalf("drew %v, want %v", sink.order, tc.want)
			}
			for i, p := range tc.want {
				if sink.order[i] != p {
					t.Errorf("pixel %d = %v, want %v", i, sink.order[i], p)
				}
				if sink.last[p] != ColorGreen {
					t.Errorf("pixel %v has the wrong color", p)
				}
			}
		})
	}
}

func TestWireframePipelineDraw(t *testing.T) {
	fb := NewFramebuffer(128, 128)
	w := NewWireframePipeline(fb, 128, 128)

	list := IndexedLineList{
		Vertices: []math3d.Vec3{cornerA, cornerB, cornerC},
		Lines:    [][2]int{{0, 1}, {0, 2}},
	}
	w.Draw(list, ColorWhite)

	if w.Lines() != 2 {
		t.Errorf("Lines() = %d, want 2", w.Lines())
	}
	for i := 16; i <= 32; i++ {
		if fb.GetPixel(i, 16) != ColorWhite {
			t.Errorf("top edge pixel (%d, 16) missing", i)
		}
		if fb.GetPixel(16, i) != ColorWhite {
			t.Errorf("left edge pixel (16, %d) missing", i)
		}
	}
	if fb.GetPixel(24, 24) != ColorBlack {
		t.Error("wireframe filled the interior")
	}
}

func TestWireframePipelineTransform(t *testing.T) {
	fb := NewFramebuffer(128, 128)
	w := NewWireframePipeline(fb, 128, 128)

	// The segment sits at the origin; rotating it onto the Y axis and
	// pushing it away lands it on the vertical center line.
	w.BindRotation(math3d.RotateZ(math.Pi / 2))
	w.BindTranslation(math3d.V3(0, 0, 2))
	w.Draw(IndexedLineList{
		Vertices: []math3d.Vec3{math3d.V3(-0.5, 0, 0), math3d.V3(0.5, 0, 0)},
		Lines:    [][2]int{{0, 1}},
	}, ColorRed)

	if fb.GetPixel(64, 64) != ColorRed {
		t.Error("center pixel not drawn")
	}
	if fb.GetPixel(48, 64) != ColorBlack || fb.GetPixel(80, 64) != ColorBlack {
		t.Error("segment still horizontal after rotation")
	}
	lit := 0
	for y := range 128 {
		if fb.GetPixel(64, y) == ColorRed {
			lit++
		}
	}
	if lit < 30 {
		t.Errorf("vertical run = %d pixels, want about 33", lit)
	}
}

func TestWireframePipelinePanicsOnBadIndex(t *testing.T) {
	fb := NewFramebuffer(16, 16)
	w := NewWireframePipeline(fb, 16, 16)

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	w.Draw(IndexedLineList{
		Vertices: []math3d.Vec3{math3d.V3(0, 0, 1)},
		Lines:    [][2]int{{0, 1}},
	}, ColorWhite)
}
