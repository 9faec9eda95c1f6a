package layout

import (
	"github.com/gogpu/pageview/geom"
)

// Axis is the scroll axis of the document.
type Axis uint8

const (
	// Vertical stacks pages top to bottom.
	Vertical Axis = iota
	// Horizontal stacks pages left to right.
	Horizontal
)

func (a Axis) String() string {
	if a == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// Config holds the layout rules.
type Config struct {
	// Policy is the fit policy applied at zoom 1.
	Policy FitPolicy
	// FitEachPage fits every page to the view separately; otherwise the
	// largest page fits and the others keep their relative size.
	FitEachPage bool
	// Axis is the scroll axis.
	Axis Axis
	// Spacing is the fixed gap between pages in pixels at zoom 1.
	Spacing float64
	// AutoSpacing gives each page its own viewport-length slot so every page
	// can be centered on screen independently of its neighbours.
	AutoSpacing bool
}

// Layout is the page geometry of one document for one view size.
type Layout struct {
	cfg  Config
	view geom.Size

	original []geom.Size
	sizes    []geom.SizeF
	offsets  []float64
	spacing  []float64

	maxWidthPage  geom.SizeF
	maxHeightPage geom.SizeF
	docLen        float64
}

// New computes the layout of pages with the given intrinsic sizes, in display
// order, for a view of the given pixel size. Pages with a zero size keep a
// zero extent and occupy no space besides their spacing.
func New(pages []geom.Size, view geom.Size, cfg Config) *Layout {
	l := &Layout{
		cfg:      cfg,
		view:     view,
		original: append([]geom.Size(nil), pages...),
	}
	l.calculate()
	return l
}

// Resize returns the layout of the same pages for a new view size.
func (l *Layout) Resize(view geom.Size) *Layout {
	return New(l.original, view, l.cfg)
}

func (l *Layout) calculate() {
	n := len(l.original)
	l.sizes = make([]geom.SizeF, n)
	l.offsets = make([]float64, n)
	l.spacing = make([]float64, n)

	var maxWidth, maxHeight geom.Size
	for _, s := range l.original {
		if s.Width > maxWidth.Width {
			maxWidth = s
		}
		if s.Height > maxHeight.Height {
			maxHeight = s
		}
	}

	calc := newSizeCalculator(l.cfg.Policy, maxWidth, maxHeight, l.view, l.cfg.FitEachPage)
	l.maxWidthPage = calc.optimalMaxWidth
	l.maxHeightPage = calc.optimalMaxHeight
	for i, s := range l.original {
		l.sizes[i] = calc.calculate(s)
	}

	if l.cfg.AutoSpacing {
		l.prepareAutoSpacing()
	}
	l.prepareDocLen()
	l.preparePageOffsets()
}

func (l *Layout) prepareAutoSpacing() {
	n := len(l.sizes)
	for i, s := range l.sizes {
		var sp float64
		if l.cfg.Axis == Vertical {
			sp = float64(l.view.Height) - s.Height
		} else {
			sp = float64(l.view.Width) - s.Width
		}
		sp = max(sp, 0)
		if i < n-1 {
			sp += l.cfg.Spacing
		}
		l.spacing[i] = sp
	}
}

func (l *Layout) prepareDocLen() {
	n := len(l.sizes)
	length := 0.0
	for i := range l.sizes {
		length += l.extent(i)
		if l.cfg.AutoSpacing {
			length += l.spacing[i]
		} else if i < n-1 {
			length += l.cfg.Spacing
		}
	}
	l.docLen = length
}

func (l *Layout) preparePageOffsets() {
	n := len(l.sizes)
	offset := 0.0
	for i := range l.sizes {
		size := l.extent(i)
		if l.cfg.AutoSpacing {
			offset += l.spacing[i] / 2
			if i == 0 {
				offset -= l.cfg.Spacing / 2
			} else if i == n-1 {
				offset += l.cfg.Spacing / 2
			}
			l.offsets[i] = offset
			offset += size + l.spacing[i]/2
		} else {
			l.offsets[i] = offset
			offset += size + l.cfg.Spacing
		}
	}
}

// extent returns the unit-zoom page length along the scroll axis.
func (l *Layout) extent(i int) float64 {
	if l.cfg.Axis == Vertical {
		return l.sizes[i].Height
	}
	return l.sizes[i].Width
}

func (l *Layout) valid(i int) bool {
	return i >= 0 && i < len(l.sizes)
}

// Config returns the layout rules.
func (l *Layout) Config() Config { return l.cfg }

// Axis returns the scroll axis.
func (l *Layout) Axis() Axis { return l.cfg.Axis }

// ViewSize returns the view size the layout was computed for.
func (l *Layout) ViewSize() geom.Size { return l.view }

// PageCount returns the number of pages.
func (l *Layout) PageCount() int { return len(l.sizes) }

// OriginalPageSize returns the intrinsic size reported by the decoder.
func (l *Layout) OriginalPageSize(i int) geom.Size {
	if !l.valid(i) {
		return geom.Size{}
	}
	return l.original[i]
}

// PageSize returns the fitted page size at zoom 1.
func (l *Layout) PageSize(i int) geom.SizeF {
	if !l.valid(i) {
		return geom.SizeF{}
	}
	return l.sizes[i]
}

// ScaledPageSize returns the fitted page size at the given zoom.
func (l *Layout) ScaledPageSize(i int, zoom float64) geom.SizeF {
	return l.PageSize(i).Scale(zoom)
}

// PageOffset returns the distance from the document start to the page's
// leading edge along the scroll axis.
func (l *Layout) PageOffset(i int, zoom float64) float64 {
	if !l.valid(i) {
		return 0
	}
	return l.offsets[i] * zoom
}

// PageLength returns the page's height when scrolling vertically, or its
// width when scrolling horizontally.
func (l *Layout) PageLength(i int, zoom float64) float64 {
	if !l.valid(i) {
		return 0
	}
	return l.extent(i) * zoom
}

// Spacing returns the spacing attributed to page i: the per-page value with
// auto spacing, the fixed gap otherwise.
func (l *Layout) Spacing(i int, zoom float64) float64 {
	if !l.valid(i) {
		return 0
	}
	if l.cfg.AutoSpacing {
		return l.spacing[i] * zoom
	}
	return l.cfg.Spacing * zoom
}

// MaxPageSize returns the fitted size of the page that is largest across the
// scroll axis: the widest page when scrolling vertically, the tallest page
// when scrolling horizontally.
func (l *Layout) MaxPageSize() geom.SizeF {
	if l.cfg.Axis == Vertical {
		return l.maxWidthPage
	}
	return l.maxHeightPage
}

// SecondaryOffset returns the gap centering the page on the cross axis
// against the largest page: X for vertical scrolling, Y for horizontal.
func (l *Layout) SecondaryOffset(i int, zoom float64) float64 {
	if !l.valid(i) {
		return 0
	}
	s := l.sizes[i]
	if l.cfg.Axis == Vertical {
		return zoom * (l.maxWidthPage.Width - s.Width) / 2
	}
	return zoom * (l.maxHeightPage.Height - s.Height) / 2
}

// DocLen returns the document length along the scroll axis: all page
// extents plus spacing.
func (l *Layout) DocLen(zoom float64) float64 {
	return l.docLen * zoom
}

// PageAtOffset returns the last page whose leading edge, moved back by half
// its spacing, does not exceed offset. It returns 0 when no page qualifies.
func (l *Layout) PageAtOffset(offset, zoom float64) int {
	page := 0
	for i := range l.offsets {
		off := l.offsets[i]*zoom - l.Spacing(i, zoom)/2
		if off > offset {
			break
		}
		page = i
	}
	return page
}
