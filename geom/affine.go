package geom

import (
	"image"
	"math"

	"golang.org/x/image/math/f64"
)

// Affine is a 2D affine transformation stored as the top two rows of a 3x3
// matrix, in the layout used by golang.org/x/image:
//
//	| a  b  c |
//	| d  e  f |
//	| 0  0  1 |
//
// so that x' = a*x + b*y + c and y' = d*x + e*y + f.
type Affine f64.Aff3

// Identity returns the identity transformation.
func Identity() Affine {
	return Affine{1, 0, 0, 0, 1, 0}
}

// Translate returns a translation by (tx, ty).
func Translate(tx, ty float64) Affine {
	return Affine{1, 0, tx, 0, 1, ty}
}

// Scale returns a scaling by (sx, sy) around the origin.
func Scale(sx, sy float64) Affine {
	return Affine{sx, 0, 0, 0, sy, 0}
}

// Multiply returns a * other: the result applies other first, then a.
func (a Affine) Multiply(other Affine) Affine {
	return Affine{
		a[0]*other[0] + a[1]*other[3],
		a[0]*other[1] + a[1]*other[4],
		a[0]*other[2] + a[1]*other[5] + a[2],
		a[3]*other[0] + a[4]*other[3],
		a[3]*other[1] + a[4]*other[4],
		a[3]*other[2] + a[4]*other[5] + a[5],
	}
}

// PostTranslate returns the transform followed by a translation.
func (a Affine) PostTranslate(tx, ty float64) Affine {
	return Translate(tx, ty).Multiply(a)
}

// PostScale returns the transform followed by a scaling.
func (a Affine) PostScale(sx, sy float64) Affine {
	return Scale(sx, sy).Multiply(a)
}

// TransformPoint applies the transformation to (x, y).
func (a Affine) TransformPoint(x, y float64) (float64, float64) {
	return a[0]*x + a[1]*y + a[2], a[3]*x + a[4]*y + a[5]
}

// MapRect returns the bounding box of r after transformation.
func (a Affine) MapRect(r Rect) Rect {
	x0, y0 := a.TransformPoint(r.Left, r.Top)
	x1, y1 := a.TransformPoint(r.Right, r.Top)
	x2, y2 := a.TransformPoint(r.Left, r.Bottom)
	x3, y3 := a.TransformPoint(r.Right, r.Bottom)
	return Rect{
		Left:   math.Min(math.Min(x0, x1), math.Min(x2, x3)),
		Top:    math.Min(math.Min(y0, y1), math.Min(y2, y3)),
		Right:  math.Max(math.Max(x0, x1), math.Max(x2, x3)),
		Bottom: math.Max(math.Max(y0, y1), math.Max(y2, y3)),
	}
}

// Aff3 returns the transformation as an x/image matrix, suitable for
// golang.org/x/image/draw Transformer implementations.
func (a Affine) Aff3() f64.Aff3 {
	return f64.Aff3(a)
}

// PageRect returns where the whole page lands, in the pixel space of a
// width x height buffer that holds the page-relative region bounds.
//
// The region origin is moved to the buffer origin and the region is stretched
// to the buffer size, so the buffer rectangle [0,0,width,height] maps to the
// full page rectangle. The result is rounded half up. Empty bounds yield an
// empty rectangle.
func PageRect(width, height int, bounds Rect) image.Rectangle {
	if bounds.Empty() || width <= 0 || height <= 0 {
		return image.Rectangle{}
	}
	w, h := float64(width), float64(height)
	m := Identity().
		PostTranslate(-bounds.Left*w, -bounds.Top*h).
		PostScale(1/bounds.Width(), 1/bounds.Height())
	return m.MapRect(Rect{Right: w, Bottom: h}).Round()
}
