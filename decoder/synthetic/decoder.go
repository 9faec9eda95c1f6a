package synthetic

import (
	"fmt"
	"image"
	"image/color"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/message"

	"github.com/gogpu/pageview"
	"github.com/gogpu/pageview/geom"
	"github.com/gogpu/pageview/pixbuf"
)

const fontHinting = font.HintingNone

// Page layout in page-relative units.
const (
	marginX      = 0.1
	emblemTop    = 0.06
	emblemSize   = 0.18
	linesTop     = 0.3
	linesBottom  = 0.86
	lineStep     = 0.035
	lineHeight   = 0.012
	labelSize    = 0.03
	labelBase    = 0.94
	minLabelSize = 2
)

var (
	paper = color.RGBA{R: 0xfa, G: 0xf8, B: 0xf2, A: 0xff}
	ink   = color.RGBA{R: 0x30, G: 0x30, B: 0x30, A: 0xff}
	rule  = color.RGBA{R: 0xc8, G: 0xc8, B: 0xc8, A: 0xff}

	palette = []color.RGBA{
		{R: 0xd3, G: 0x2f, B: 0x2f, A: 0xff},
		{R: 0x19, G: 0x76, B: 0xd2, A: 0xff},
		{R: 0x38, G: 0x8e, B: 0x3c, A: 0xff},
		{R: 0xf5, G: 0x7c, B: 0x00, A: 0xff},
		{R: 0x7b, G: 0x1f, B: 0xa2, A: 0xff},
		{R: 0x00, G: 0x83, B: 0x8f, A: 0xff},
	}
)

// Decoder paints the pages of a Document. It implements pageview.Decoder
// and, like every decoder, is not safe for concurrent use.
type Decoder struct {
	doc     *Document
	printer *message.Printer
	ts      *typesetter
	open    map[int]bool
	emblems map[int]*image.RGBA
	closed  bool
}

var _ pageview.Decoder = (*Decoder)(nil)

// PageCount returns the number of pages.
func (d *Decoder) PageCount() int { return len(d.doc.sizes) }

// PageSize returns the size of page.
func (d *Decoder) PageSize(page int) (geom.Size, error) {
	if page < 0 || page >= len(d.doc.sizes) {
		return geom.Size{}, fmt.Errorf("synthetic: page %d: %w", page, pageview.ErrInvalidPage)
	}
	return d.doc.sizes[page], nil
}

// OpenPage prepares page for rendering.
func (d *Decoder) OpenPage(page int) error {
	if d.closed {
		return ErrClosed
	}
	if _, err := d.PageSize(page); err != nil {
		return err
	}
	if d.doc.broken[page] {
		return fmt.Errorf("synthetic: page %d: %w", page, ErrBrokenPage)
	}
	d.open[page] = true
	return nil
}

// RenderRegion paints the part of page that falls into dst. pageRect is the
// whole page in dst pixel space.
func (d *Decoder) RenderRegion(page int, dst *pixbuf.Buffer, pageRect image.Rectangle, q pixbuf.Quality) error {
	if d.closed {
		return ErrClosed
	}
	if !d.open[page] {
		return fmt.Errorf("synthetic: page %d: %w", page, ErrPageNotOpen)
	}
	size := d.doc.sizes[page]
	if size.IsZero() || pageRect.Empty() {
		return fmt.Errorf("synthetic: page %d: %w", page, pageview.ErrEmptyRegion)
	}

	img := dst.Image()
	m := pageMapper{
		rect: pageRect,
		sx:   float64(pageRect.Dx()),
		sy:   float64(pageRect.Dy()),
	}

	xdraw.Draw(img, img.Bounds(), image.NewUniform(paper), image.Point{}, xdraw.Src)
	d.drawEmblem(img, m, page, size, q)
	d.drawLines(img, m, page)
	return d.drawLabel(img, m, page)
}

// Close releases the decoder. Later calls fail with ErrClosed.
func (d *Decoder) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true
	d.ts.close()
	d.emblems = nil
	return nil
}

// pageMapper maps page-relative coordinates to dst pixels.
type pageMapper struct {
	rect   image.Rectangle
	sx, sy float64
}

func (m pageMapper) point(x, y float64) (float64, float64) {
	return float64(m.rect.Min.X) + x*m.sx, float64(m.rect.Min.Y) + y*m.sy
}

func (m pageMapper) rectangle(x0, y0, x1, y1 float64) image.Rectangle {
	ax, ay := m.point(x0, y0)
	bx, by := m.point(x1, y1)
	return image.Rect(geom.Round(ax), geom.Round(ay), geom.Round(bx), geom.Round(by))
}

func (d *Decoder) drawEmblem(dst xdraw.Image, m pageMapper, page int, size geom.Size, q pixbuf.Quality) {
	// Square on the page: its relative height follows the aspect ratio.
	w := emblemSize
	h := emblemSize * float64(size.Width) / float64(size.Height)
	x0 := 0.5 - w/2
	r := m.rectangle(x0, emblemTop, x0+w, emblemTop+h)
	if !r.Overlaps(dst.Bounds()) {
		return
	}
	src := d.emblem(page)
	scaler := xdraw.Interpolator(xdraw.CatmullRom)
	if q == pixbuf.Reduced {
		scaler = xdraw.NearestNeighbor
	}
	scaler.Scale(dst, r, src, src.Bounds(), xdraw.Over, nil)
}

// emblem returns the page's source image: a disc shaded with the page color.
func (d *Decoder) emblem(page int) *image.RGBA {
	if img, ok := d.emblems[page]; ok {
		return img
	}
	if d.emblems == nil {
		d.emblems = make(map[int]*image.RGBA)
	}
	const n = 64
	c := palette[page%len(palette)]
	img := image.NewRGBA(image.Rect(0, 0, n, n))
	for y := range n {
		for x := range n {
			dx, dy := float64(x)+0.5-n/2, float64(y)+0.5-n/2
			dist := math.Hypot(dx, dy) / (n / 2)
			if dist > 1 {
				continue
			}
			shade := 1 - 0.5*dist
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(float64(c.R) * shade),
				G: uint8(float64(c.G) * shade),
				B: uint8(float64(c.B) * shade),
				A: 0xff,
			})
		}
	}
	d.emblems[page] = img
	return img
}

func (d *Decoder) drawLines(dst xdraw.Image, m pageMapper, page int) {
	bounds := dst.Bounds()
	src := image.NewUniform(rule)
	for i := 0; ; i++ {
		y := linesTop + float64(i)*lineStep
		if y+lineHeight > linesBottom {
			return
		}
		// Deterministic ragged right edge.
		width := 0.55 + float64((page*31+i*17)%40)/100
		x1 := marginX + (1-2*marginX)*width
		r := m.rectangle(marginX, y, x1, y+lineHeight).Intersect(bounds)
		if !r.Empty() {
			xdraw.Draw(dst, r, src, image.Point{}, xdraw.Src)
		}
	}
}

func (d *Decoder) drawLabel(dst xdraw.Image, m pageMapper, page int) error {
	px := labelSize * m.sy
	if px < minLabelSize {
		return nil
	}
	size := fixed.Int26_6(math.Round(px * 64))

	_, baseline := m.point(0.5, labelBase)
	top := baseline - px
	if int(math.Ceil(baseline+px/2)) < dst.Bounds().Min.Y || int(math.Floor(top)) > dst.Bounds().Max.Y {
		return nil
	}

	label := d.doc.label(d.printer, page)
	face, err := d.ts.face(size)
	if err != nil {
		return fmt.Errorf("synthetic: page %d label: %w", page, err)
	}
	cx, _ := m.point(0.5, labelBase)
	adv := d.ts.advance(label, size)

	drawer := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(ink),
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.Int26_6(math.Round(cx*64)) - adv/2,
			Y: fixed.Int26_6(math.Round(baseline * 64)),
		},
	}
	drawer.DrawString(label)
	return nil
}
