package layout

// SnapEdge is the page edge a scroll position snaps to.
type SnapEdge uint8

const (
	// SnapNone leaves the position unchanged.
	SnapNone SnapEdge = iota
	// SnapStart aligns the page's leading edge with the view's.
	SnapStart
	// SnapCenter centers the page in the view.
	SnapCenter
	// SnapEnd aligns the page's trailing edge with the view's.
	SnapEnd
)

func (e SnapEdge) String() string {
	switch e {
	case SnapStart:
		return "start"
	case SnapCenter:
		return "center"
	case SnapEnd:
		return "end"
	default:
		return "none"
	}
}

// FindFocusPage returns the page under the center of the view. offset is the
// view's scroll-axis position in screen convention (0 at the document start,
// negative further in), viewLength the view extent on the scroll axis.
func (l *Layout) FindFocusPage(offset, viewLength, zoom float64) int {
	if len(l.sizes) == 0 {
		return 0
	}
	// The first and last page must be reachable even when they are shorter
	// than half the view.
	if offset > -1 {
		return 0
	}
	if offset < -l.DocLen(zoom)+viewLength+1 {
		return len(l.sizes) - 1
	}
	center := offset - viewLength/2
	return l.PageAtOffset(-center, zoom)
}

// FindSnapEdge returns the edge to snap to when page is the focus page.
func (l *Layout) FindSnapEdge(page int, offset, viewLength, zoom float64) SnapEdge {
	if !l.valid(page) {
		return SnapNone
	}
	pageOffset := -l.PageOffset(page, zoom)
	pageLength := l.PageLength(page, zoom)
	switch {
	case viewLength >= pageLength:
		return SnapCenter
	case offset >= pageOffset:
		return SnapStart
	case pageOffset-pageLength > offset-viewLength:
		return SnapEnd
	default:
		return SnapNone
	}
}

// SnapOffset returns the document offset (positive, from the document start)
// that shows page aligned to edge.
func (l *Layout) SnapOffset(page int, edge SnapEdge, viewLength, zoom float64) float64 {
	offset := l.PageOffset(page, zoom)
	pageLength := l.PageLength(page, zoom)
	switch edge {
	case SnapCenter:
		offset = offset - viewLength/2 + pageLength/2
	case SnapEnd:
		offset = offset - viewLength + pageLength
	}
	return offset
}

// PageMap maps displayed page indices to document pages. A document can be
// shown as an arbitrary page sequence, for example 0, 2, 2, 8.
type PageMap struct {
	pages    []int
	docPages int
}

// NewPageMap creates a map for a document with docPages pages. An empty
// selection displays every document page in order.
func NewPageMap(selection []int, docPages int) PageMap {
	return PageMap{pages: append([]int(nil), selection...), docPages: docPages}
}

// Len returns the number of displayed pages.
func (m PageMap) Len() int {
	if len(m.pages) > 0 {
		return len(m.pages)
	}
	return m.docPages
}

// DocumentPage returns the document page shown at display index i, or -1
// when i or the selected page is out of range.
func (m PageMap) DocumentPage(i int) int {
	if i < 0 || i >= m.Len() {
		return -1
	}
	if len(m.pages) == 0 {
		return i
	}
	p := m.pages[i]
	if p < 0 || p >= m.docPages {
		return -1
	}
	return p
}

// ValidPage clamps a displayed page index into [0, Len()-1].
func (m PageMap) ValidPage(i int) int {
	if i <= 0 {
		return 0
	}
	if n := m.Len(); i >= n {
		return max(n-1, 0)
	}
	return i
}
