package pageview

import (
	"github.com/gogpu/pageview/geom"
	"github.com/gogpu/pageview/layout"
)

func (v *Viewer) clampZoom(z float64) float64 {
	return geom.Clamp(z, v.opts.minZoom, v.opts.maxZoom)
}

func (v *Viewer) vertical() bool {
	return v.layout == nil || v.layout.Axis() == layout.Vertical
}

// viewLength returns the view extent along the scroll axis.
func (v *Viewer) viewLength() float64 {
	if v.vertical() {
		return float64(v.view.Height)
	}
	return float64(v.view.Width)
}

// scrollOffset returns the view offset along the scroll axis.
func (v *Viewer) scrollOffset() float64 {
	if v.vertical() {
		return v.y
	}
	return v.x
}

// clampOffset keeps content of length content inside a view of length view:
// shorter content is centered, longer content may not leave a gap at either
// end.
func clampOffset(offset, content, view float64) float64 {
	if content < view {
		return (view - content) / 2
	}
	if offset > 0 {
		return 0
	}
	if offset+content < view {
		return view - content
	}
	return offset
}

// moveToLocked clamps and applies a new offset.
func (v *Viewer) moveToLocked(x, y float64) {
	w, h := float64(v.view.Width), float64(v.view.Height)
	maxPage := v.layout.MaxPageSize().Scale(v.zoom)
	docLen := v.layout.DocLen(v.zoom)

	if v.vertical() {
		x = clampOffset(x, maxPage.Width, w)
		y = clampOffset(y, docLen, h)
	} else {
		y = clampOffset(y, maxPage.Height, h)
		x = clampOffset(x, docLen, w)
	}
	v.x, v.y = x, y
}

// scrolledLocked reports the current offset. It runs once the current page
// is up to date.
func (v *Viewer) scrolledLocked() {
	v.emit(PageScrollEvent{Page: v.current, Position: v.positionOffsetLocked()})
}

// loadPageByOffsetLocked updates the current page from the view center,
// runs a layout pass and reports the scroll.
func (v *Viewer) loadPageByOffsetLocked() {
	defer v.scrolledLocked()
	if v.layout.PageCount() == 0 {
		return
	}
	center := -(v.scrollOffset() - v.viewLength()/2)
	page := v.layout.PageAtOffset(center, v.zoom)
	if page != v.current {
		v.showPageLocked(page)
		return
	}
	v.loadPagesLocked()
}

func (v *Viewer) showPageLocked(page int) {
	v.current = v.pageMap.ValidPage(page)
	v.loadPagesLocked()
	v.emit(PageChangeEvent{Page: v.current, Pages: v.layout.PageCount()})
}

func (v *Viewer) jumpToLocked(page int) {
	n := v.layout.PageCount()
	if n == 0 {
		v.moveToLocked(0, 0)
		v.loadPagesLocked()
		v.scrolledLocked()
		return
	}
	if page < 0 || page >= n {
		Logger().Debug("pageview: page clamped", "err", &LayoutError{Page: page, Pages: n})
	}
	page = v.pageMap.ValidPage(page)

	offset := 0.0
	if page > 0 {
		offset = -v.layout.PageOffset(page, v.zoom)
	}
	if v.vertical() {
		v.moveToLocked(v.x, offset)
	} else {
		v.moveToLocked(offset, v.y)
	}
	v.showPageLocked(page)
	v.scrolledLocked()
}

func (v *Viewer) positionOffsetLocked() float64 {
	if v.layout == nil {
		return 0
	}
	span := v.layout.DocLen(v.zoom) - v.viewLength()
	if span <= 0 {
		return 0
	}
	return geom.Clamp(-v.scrollOffset()/span, 0, 1)
}

func (v *Viewer) zoomCenteredLocked(zoom, pivotX, pivotY float64) {
	zoom = v.clampZoom(zoom)
	dz := zoom / v.zoom
	v.zoom = zoom
	x := v.x*dz + pivotX - pivotX*dz
	y := v.y*dz + pivotY - pivotY*dz
	v.moveToLocked(x, y)
	v.loadPageByOffsetLocked()
}

// MoveTo moves the view to the given offset. Offsets are clamped: content
// smaller than the view is centered, larger content never leaves a gap at
// its ends.
func (v *Viewer) MoveTo(x, y float64) error {
	v.mu.Lock()
	if err := v.readyLocked(); err != nil {
		v.mu.Unlock()
		return err
	}
	v.moveToLocked(x, y)
	v.loadPageByOffsetLocked()
	v.unlock()
	return nil
}

// MoveRelative moves the view by dx, dy.
func (v *Viewer) MoveRelative(dx, dy float64) error {
	v.mu.Lock()
	if err := v.readyLocked(); err != nil {
		v.mu.Unlock()
		return err
	}
	v.moveToLocked(v.x+dx, v.y+dy)
	v.loadPageByOffsetLocked()
	v.unlock()
	return nil
}

// ZoomTo sets the zoom factor, clamped to the zoom range, keeping the offset.
func (v *Viewer) ZoomTo(zoom float64) error {
	v.mu.Lock()
	if err := v.readyLocked(); err != nil {
		v.mu.Unlock()
		return err
	}
	v.zoom = v.clampZoom(zoom)
	v.moveToLocked(v.x, v.y)
	v.loadPageByOffsetLocked()
	v.unlock()
	return nil
}

// ZoomCenteredTo sets the zoom factor keeping the view point (pivotX,
// pivotY) over the same document point.
func (v *Viewer) ZoomCenteredTo(zoom, pivotX, pivotY float64) error {
	v.mu.Lock()
	if err := v.readyLocked(); err != nil {
		v.mu.Unlock()
		return err
	}
	v.zoomCenteredLocked(zoom, pivotX, pivotY)
	v.unlock()
	return nil
}

// ZoomCenteredRelativeTo multiplies the zoom factor by dzoom around a pivot.
func (v *Viewer) ZoomCenteredRelativeTo(dzoom, pivotX, pivotY float64) error {
	v.mu.Lock()
	if err := v.readyLocked(); err != nil {
		v.mu.Unlock()
		return err
	}
	v.zoomCenteredLocked(v.zoom*dzoom, pivotX, pivotY)
	v.unlock()
	return nil
}

// JumpTo shows page at the start of the view. Out-of-range pages are
// clamped.
func (v *Viewer) JumpTo(page int) error {
	v.mu.Lock()
	if err := v.readyLocked(); err != nil {
		v.mu.Unlock()
		return err
	}
	v.jumpToLocked(page)
	v.unlock()
	return nil
}

// PositionOffset returns the scroll progress: 0 when the document start is
// shown, 1 when its end is.
func (v *Viewer) PositionOffset() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.positionOffsetLocked()
}

// SetPositionOffset scrolls to progress p in [0, 1].
func (v *Viewer) SetPositionOffset(p float64) error {
	v.mu.Lock()
	if err := v.readyLocked(); err != nil {
		v.mu.Unlock()
		return err
	}
	p = geom.Clamp(p, 0, 1)
	travel := v.viewLength() - v.layout.DocLen(v.zoom)
	if v.vertical() {
		v.moveToLocked(v.x, travel*p)
	} else {
		v.moveToLocked(travel*p, v.y)
	}
	v.loadPageByOffsetLocked()
	v.unlock()
	return nil
}

// Snap moves the view so the focus page is aligned to its nearest edge. It
// reports whether the view moved; it never moves unless page snapping is
// enabled.
func (v *Viewer) Snap() bool {
	v.mu.Lock()
	if !v.opts.pageSnap || v.readyLocked() != nil || v.layout.PageCount() == 0 {
		v.mu.Unlock()
		return false
	}
	offset, length := v.scrollOffset(), v.viewLength()
	page := v.layout.FindFocusPage(offset, length, v.zoom)
	edge := v.layout.FindSnapEdge(page, offset, length, v.zoom)
	if edge == layout.SnapNone {
		v.mu.Unlock()
		return false
	}
	target := -v.layout.SnapOffset(page, edge, length, v.zoom)
	if v.vertical() {
		v.moveToLocked(v.x, target)
	} else {
		v.moveToLocked(target, v.y)
	}
	v.loadPageByOffsetLocked()
	v.unlock()
	return true
}

// DocumentFitsView reports whether the whole document fits the view at
// zoom 1.
func (v *Viewer) DocumentFitsView() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.layout == nil {
		return false
	}
	return v.layout.DocLen(1) < v.viewLength()
}

// OnViewportChanged applies an offset and zoom reported by the input layer.
func (v *Viewer) OnViewportChanged(x, y, zoom float64) error {
	v.mu.Lock()
	if err := v.readyLocked(); err != nil {
		v.mu.Unlock()
		return err
	}
	v.zoom = v.clampZoom(zoom)
	v.moveToLocked(x, y)
	v.loadPageByOffsetLocked()
	v.unlock()
	return nil
}

// OnSizeChanged resizes the view. The document point at the view center
// stays at the center.
func (v *Viewer) OnSizeChanged(width, height int) {
	v.mu.Lock()
	old := v.view
	v.view = geom.Size{Width: width, Height: height}
	if v.readyLocked() != nil || width <= 0 || height <= 0 {
		v.mu.Unlock()
		return
	}

	rx, ry := v.relativeCenterLocked(old)
	v.layout = v.layout.Resize(v.view)

	w, h := float64(width), float64(height)
	maxPage := v.layout.MaxPageSize().Scale(v.zoom)
	docLen := v.layout.DocLen(v.zoom)
	var x, y float64
	if v.vertical() {
		x = -rx*maxPage.Width + w/2
		y = -ry*docLen + h/2
	} else {
		x = -rx*docLen + w/2
		y = -ry*maxPage.Height + h/2
	}
	v.moveToLocked(x, y)
	v.loadPageByOffsetLocked()
	v.unlock()
}

// relativeCenterLocked returns the document point at the center of a view
// of the given size, relative to the content extent on each axis.
func (v *Viewer) relativeCenterLocked(view geom.Size) (rx, ry float64) {
	cx := -v.x + float64(view.Width)/2
	cy := -v.y + float64(view.Height)/2
	maxPage := v.layout.MaxPageSize().Scale(v.zoom)
	docLen := v.layout.DocLen(v.zoom)
	if v.vertical() {
		return ratio(cx, maxPage.Width), ratio(cy, docLen)
	}
	return ratio(cx, docLen), ratio(cy, maxPage.Height)
}

func ratio(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}
