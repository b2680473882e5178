// Package render implements the engine3d software rendering pipeline: the
// generic shader pipeline, the scanline rasterizer, and the pixel sinks it
// writes to.
package render

import (
	"fmt"
	"image"
	"image/png"
	"os"
)

// PixelSink receives the pixels produced by the rasterizer.
//
// The rasterizer does not clip, so x and y come straight from the projected
// geometry. Callers keep geometry on screen.
type PixelSink interface {
	PutPixel(x, y int, c Color)
}

// Framebuffer is a 2D array of pixels. It is the default PixelSink and can be
// presented to a terminal, a window or a PNG file.
type Framebuffer struct {
	Width  int
	Height int
	Pixels []Color // Row-major pixel data
}

// NewFramebuffer creates a new framebuffer with the given dimensions.
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]Color, width*height),
	}
}

// Clear fills the framebuffer with a solid color.
func (fb *Framebuffer) Clear(c Color) {
	for i := range fb.Pixels {
		fb.Pixels[i] = c
	}
}

// PutPixel sets the pixel at (x, y). Writing outside the framebuffer is a
// caller bug and panics.
func (fb *Framebuffer) PutPixel(x, y int, c Color) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		panic(fmt.Sprintf("render: pixel (%d, %d) outside %dx%d framebuffer", x, y, fb.Width, fb.Height))
	}
	fb.Pixels[y*fb.Width+x] = c
}

// GetPixel returns the color at (x, y).
// Returns black if out of bounds.
func (fb *Framebuffer) GetPixel(x, y int) Color {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return ColorBlack
	}
	return fb.Pixels[y*fb.Width+x]
}

// Contains reports whether (x, y) lies inside the framebuffer.
func (fb *Framebuffer) Contains(x, y int) bool {
	return x >= 0 && x < fb.Width && y >= 0 && y < fb.Height
}

// CopyRGBA writes the framebuffer as 8-bit RGBA into dst, growing it if
// needed, and returns it. Window backends upload this layout directly.
func (fb *Framebuffer) CopyRGBA(dst []byte) []byte {
	n := len(fb.Pixels) * 4
	if cap(dst) < n {
		dst = make([]byte, n)
	}
	dst = dst[:n]
	for i, c := range fb.Pixels {
		o := i * 4
		dst[o] = c.R()
		dst[o+1] = c.G()
		dst[o+2] = c.B()
		dst[o+3] = 0xFF
	}
	return dst
}

// ToImage converts the framebuffer to a standard Go image.RGBA.
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	img.Pix = fb.CopyRGBA(img.Pix)
	return img
}

// SavePNG saves the framebuffer as a PNG file.
func (fb *Framebuffer) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create png: %w", err)
	}
	defer f.Close()
	if err := png.Encode(f, fb.ToImage()); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return f.Close()
}
