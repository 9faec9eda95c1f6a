// Package geom holds the small geometry vocabulary shared by the pageview
// packages: integer and float sizes, float rectangles used for page-relative
// tile bounds, and affine mappings from relative to pixel space.
package geom

import (
	"fmt"
	"image"
	"math"
)

// Size is an integer width and height, used for intrinsic page sizes in points
// and for view sizes in pixels.
type Size struct {
	Width  int
	Height int
}

// F converts the size to a SizeF.
func (s Size) F() SizeF {
	return SizeF{Width: float64(s.Width), Height: float64(s.Height)}
}

// IsZero reports whether either dimension is non-positive.
func (s Size) IsZero() bool {
	return s.Width <= 0 || s.Height <= 0
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// SizeF is a floating point width and height.
type SizeF struct {
	Width  float64
	Height float64
}

// Scale returns the size multiplied by k on both axes.
func (s SizeF) Scale(k float64) SizeF {
	return SizeF{Width: s.Width * k, Height: s.Height * k}
}

// IsZero reports whether either dimension is non-positive.
func (s SizeF) IsZero() bool {
	return s.Width <= 0 || s.Height <= 0
}

func (s SizeF) String() string {
	return fmt.Sprintf("%gx%g", s.Width, s.Height)
}

// Rect is an axis-aligned float rectangle. Page-relative tile bounds use the
// unit square, independent of zoom.
//
// Rect is comparable and is used directly as part of cache keys; values
// computed by the same arithmetic compare equal.
type Rect struct {
	Left, Top, Right, Bottom float64
}

// Unit is the whole-page relative rectangle.
var Unit = Rect{Left: 0, Top: 0, Right: 1, Bottom: 1}

// R is a convenience constructor for Rect.
func R(left, top, right, bottom float64) Rect {
	return Rect{Left: left, Top: top, Right: right, Bottom: bottom}
}

// Width returns Right - Left.
func (r Rect) Width() float64 { return r.Right - r.Left }

// Height returns Bottom - Top.
func (r Rect) Height() float64 { return r.Bottom - r.Top }

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Left >= r.Right || r.Top >= r.Bottom
}

// Contains reports whether the point lies inside r (right/bottom exclusive).
func (r Rect) Contains(x, y float64) bool {
	return x >= r.Left && x < r.Right && y >= r.Top && y < r.Bottom
}

// Round returns the integer rectangle obtained by rounding every edge half up.
func (r Rect) Round() image.Rectangle {
	return image.Rect(Round(r.Left), Round(r.Top), Round(r.Right), Round(r.Bottom))
}

func (r Rect) String() string {
	return fmt.Sprintf("[%g,%g %g,%g]", r.Left, r.Top, r.Right, r.Bottom)
}

// Round rounds v half up to an integer.
func Round(v float64) int {
	return int(math.Floor(v + 0.5))
}

// Ceil returns the least integer value greater than or equal to v.
func Ceil(v float64) int {
	return int(math.Ceil(v))
}

// Floor returns the greatest integer value less than or equal to v.
func Floor(v float64) int {
	return int(math.Floor(v))
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
