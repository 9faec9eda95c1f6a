package pixbuf

import (
	"image"
	"image/color"
)

// RGB565Model converts any color to an opaque 5-6-5 color.
var RGB565Model = color.ModelFunc(rgb565Model)

func rgb565Model(c color.Color) color.Color {
	if _, ok := c.(Color565); ok {
		return c
	}
	r, g, b, _ := c.RGBA()
	return Color565(uint16(r>>11)<<11 | uint16(g>>10)<<5 | uint16(b>>11))
}

// Color565 is a packed 16-bit color: 5 bits red, 6 bits green, 5 bits blue.
type Color565 uint16

// RGBA implements color.Color. Channels are expanded by bit replication.
func (c Color565) RGBA() (r, g, b, a uint32) {
	r5 := uint32(c>>11) & 0x1f
	g6 := uint32(c>>5) & 0x3f
	b5 := uint32(c) & 0x1f
	r8 := r5<<3 | r5>>2
	g8 := g6<<2 | g6>>4
	b8 := b5<<3 | b5>>2
	return r8 | r8<<8, g8 | g8<<8, b8 | b8<<8, 0xffff
}

// RGB565 is an in-memory image of Color565 pixels, stored little endian.
// It implements draw.Image.
type RGB565 struct {
	// Pix holds the pixels, 2 bytes each, row-major.
	Pix []uint8
	// Stride is the byte distance between vertically adjacent pixels.
	Stride int
	// Rect is the image bounds.
	Rect image.Rectangle
}

// NewRGB565 returns a new RGB565 image with the given bounds.
func NewRGB565(r image.Rectangle) *RGB565 {
	return &RGB565{
		Pix:    make([]uint8, 2*r.Dx()*r.Dy()),
		Stride: 2 * r.Dx(),
		Rect:   r,
	}
}

// ColorModel implements image.Image.
func (p *RGB565) ColorModel() color.Model { return RGB565Model }

// Bounds implements image.Image.
func (p *RGB565) Bounds() image.Rectangle { return p.Rect }

// PixOffset returns the index of the first byte of the pixel at (x, y).
func (p *RGB565) PixOffset(x, y int) int {
	return (y-p.Rect.Min.Y)*p.Stride + (x-p.Rect.Min.X)*2
}

// At implements image.Image.
func (p *RGB565) At(x, y int) color.Color {
	return p.RGB565At(x, y)
}

// RGB565At returns the packed color at (x, y), or 0 outside the bounds.
func (p *RGB565) RGB565At(x, y int) Color565 {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return 0
	}
	i := p.PixOffset(x, y)
	return Color565(uint16(p.Pix[i]) | uint16(p.Pix[i+1])<<8)
}

// Set implements draw.Image.
func (p *RGB565) Set(x, y int, c color.Color) {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return
	}
	v := rgb565Model(c).(Color565)
	i := p.PixOffset(x, y)
	p.Pix[i] = uint8(v)
	p.Pix[i+1] = uint8(v >> 8)
}

// Opaque reports whether the image is fully opaque; RGB565 always is.
func (p *RGB565) Opaque() bool { return true }
