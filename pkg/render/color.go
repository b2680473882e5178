package render

import (
	"image/color"

	"github.com/taigrr/engine3d/pkg/math3d"
)

// Color is a packed 24-bit RGB value laid out as 0x00RRGGBB.
// The high byte is ignored.
type Color uint32

// Named colors.
const (
	ColorBlack   Color = 0x000000
	ColorWhite   Color = 0xFFFFFF
	ColorRed     Color = 0xFF0000
	ColorLime    Color = 0x00FF00
	ColorBlue    Color = 0x0000FF
	ColorYellow  Color = 0xFFFF00
	ColorCyan    Color = 0x00FFFF
	ColorMagenta Color = 0xFF00FF
	ColorSilver  Color = 0xC0C0C0
	ColorGray    Color = 0x808080
	ColorMaroon  Color = 0x800000
	ColorOlive   Color = 0x808000
	ColorGreen   Color = 0x008000
	ColorPurple  Color = 0x800080
	ColorTeal    Color = 0x008080
	ColorNavy    Color = 0x000080
)

// RGB creates a color from RGB values.
func RGB(r, g, b uint8) Color {
	return Color(uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// ColorFromVec creates a color from a vector holding channel values in
// [0, 255]. Components are truncated, not rounded.
func ColorFromVec(v math3d.Vec3) Color {
	return RGB(toByte(v.X), toByte(v.Y), toByte(v.Z))
}

// ColorFromStd converts any image/color value, dropping alpha.
func ColorFromStd(c color.Color) Color {
	r, g, b, _ := c.RGBA()
	return RGB(uint8(r>>8), uint8(g>>8), uint8(b>>8))
}

// R returns the red channel.
func (c Color) R() uint8 { return uint8(c >> 16) }

// G returns the green channel.
func (c Color) G() uint8 { return uint8(c >> 8) }

// B returns the blue channel.
func (c Color) B() uint8 { return uint8(c) }

// Vec returns the channels as a vector in [0, 255].
func (c Color) Vec() math3d.Vec3 {
	return math3d.V3(float64(c.R()), float64(c.G()), float64(c.B()))
}

// Scale multiplies every channel by s and truncates the result to a byte.
// Results outside [0, 255] wrap; callers keep s within [0, 1].
func (c Color) Scale(s float64) Color {
	return RGB(
		toByte(float64(c.R())*s),
		toByte(float64(c.G())*s),
		toByte(float64(c.B())*s),
	)
}

// RGBA implements color.Color. The alpha channel is always opaque.
func (c Color) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R())
	g = uint32(c.G())
	b = uint32(c.B())
	return r | r<<8, g | g<<8, b | b<<8, 0xFFFF
}

// ToRGBA returns the color as an opaque color.RGBA.
func (c Color) ToRGBA() color.RGBA {
	return color.RGBA{c.R(), c.G(), c.B(), 255}
}

// toByte truncates toward zero and keeps the low eight bits, so an
// out-of-range value wraps instead of saturating.
func toByte(f float64) uint8 {
	return uint8(int64(f))
}
