package render

import (
	"image/color"
	"testing"

	"github.com/taigrr/engine3d/pkg/math3d"
)

func TestColorPacking(t *testing.T) {
	c := RGB(0x12, 0x34, 0x56)
	if c != 0x123456 {
		t.Fatalf("RGB = %#x, want 0x123456", uint32(c))
	}
	if c.R() != 0x12 || c.G() != 0x34 || c.B() != 0x56 {
		t.Errorf("channels = %d %d %d", c.R(), c.G(), c.B())
	}
	if high := Color(0xFF123456); high.R() != 0x12 || high.B() != 0x56 {
		t.Error("high byte leaked into the channels")
	}
}

func TestPalette(t *testing.T) {
	tests := []struct {
		name    string
		c       Color
		r, g, b uint8
	}{
		{"white", ColorWhite, 255, 255, 255},
		{"lime", ColorLime, 0, 255, 0},
		{"green", ColorGreen, 0, 128, 0},
		{"silver", ColorSilver, 192, 192, 192},
		{"gray", ColorGray, 128, 128, 128},
		{"purple", ColorPurple, 128, 0, 128},
		{"navy", ColorNavy, 0, 0, 128},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.c != RGB(tc.r, tc.g, tc.b) {
				t.Errorf("%#06x != RGB(%d, %d, %d)", uint32(tc.c), tc.r, tc.g, tc.b)
			}
		})
	}
}

func TestColorFromVecTruncates(t *testing.T) {
	tests := []struct {
		in   math3d.Vec3
		want Color
	}{
		{math3d.V3(127.9, 0.99, 255), RGB(127, 0, 255)},
		{math3d.V3(0, 0, 0), ColorBlack},
		{math3d.V3(255, 255, 255), ColorWhite},
		{math3d.V3(256, 0, 0), ColorBlack}, // wraps
	}

	for _, tc := range tests {
		if got := ColorFromVec(tc.in); got != tc.want {
			t.Errorf("ColorFromVec(%v) = %#06x, want %#06x", tc.in, uint32(got), uint32(tc.want))
		}
	}
}

func TestColorScale(t *testing.T) {
	tests := []struct {
		name string
		c    Color
		s    float64
		want Color
	}{
		{"half", RGB(200, 100, 51), 0.5, RGB(100, 50, 25)},
		{"truncates", ColorWhite, 0.999, RGB(254, 254, 254)},
		{"ambient", ColorWhite, 0.2, RGB(51, 51, 51)},
		{"zero", ColorWhite, 0, ColorBlack},
		{"overflow wraps", RGB(200, 0, 0), 1.5, RGB(44, 0, 0)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.c.Scale(tc.s); got != tc.want {
				t.Errorf("Scale(%v) = (%d, %d, %d), want (%d, %d, %d)",
					tc.s, got.R(), got.G(), got.B(), tc.want.R(), tc.want.G(), tc.want.B())
			}
		})
	}
}

func TestColorImplementsStdColor(t *testing.T) {
	var c color.Color = RGB(255, 128, 0)
	r, g, b, a := c.RGBA()
	if r != 0xFFFF || g != 0x8080 || b != 0 || a != 0xFFFF {
		t.Errorf("RGBA = %#x %#x %#x %#x", r, g, b, a)
	}

	if got := ColorFromStd(color.RGBA{10, 20, 30, 255}); got != RGB(10, 20, 30) {
		t.Errorf("ColorFromStd = %#06x", uint32(got))
	}
	if got := RGB(1, 2, 3).ToRGBA(); got != (color.RGBA{1, 2, 3, 255}) {
		t.Errorf("ToRGBA = %v", got)
	}
}

func TestColorVecRoundTrip(t *testing.T) {
	c := RGB(9, 99, 199)
	if got := ColorFromVec(c.Vec()); got != c {
		t.Errorf("round trip = %#06x, want %#06x", uint32(got), uint32(c))
	}
}
