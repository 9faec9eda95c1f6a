package tiling

import (
	"fmt"
	"math"

	"github.com/gogpu/pageview/geom"
	"github.com/gogpu/pageview/layout"
)

// DefaultTileSize is the on-screen footprint of a tile, in pixels.
const DefaultTileSize = 256

// Viewport is the visible window onto the document.
//
// Offsets use screen convention: (0, 0) shows the document start and the
// offsets become negative as the document scrolls towards its end. A
// positive offset means the document is shifted into the view, which
// happens when it is smaller than the view and gets centered.
type Viewport struct {
	OffsetX float64
	OffsetY float64
	Zoom    float64
	Width   float64
	Height  float64
}

// Grid is the number of tile rows and columns of one page.
type Grid struct {
	Rows int
	Cols int
}

func (g Grid) String() string {
	return fmt.Sprintf("%dx%d", g.Rows, g.Cols)
}

// Cell addresses one tile of a page grid.
type Cell struct {
	Row int
	Col int
}

// Range is the inclusive block of visible cells of one page.
type Range struct {
	Page        int
	Grid        Grid
	LeftTop     Cell
	RightBottom Cell
}

// Len returns the number of cells in the range.
func (r Range) Len() int {
	return (r.RightBottom.Row - r.LeftTop.Row + 1) * (r.RightBottom.Col - r.LeftTop.Col + 1)
}

func (r Range) String() string {
	return fmt.Sprintf("page %d grid %v rows %d-%d cols %d-%d",
		r.Page, r.Grid, r.LeftTop.Row, r.RightBottom.Row, r.LeftTop.Col, r.RightBottom.Col)
}

// Calculator computes tile ranges. The zero value is not usable; set
// TileSize to a positive value.
type Calculator struct {
	// TileSize is the tile footprint in screen pixels.
	TileSize float64
	// Preload extends the viewport on every side, in screen pixels.
	Preload float64
}

// GridSize returns the tile grid of a page at the given zoom:
// rows = ceil(1 / (TileSize / scaledHeight)), and likewise for columns.
// A zero-size page has an empty grid.
func (c Calculator) GridSize(l *layout.Layout, page int, zoom float64) Grid {
	s := l.ScaledPageSize(page, zoom)
	if s.IsZero() || c.TileSize <= 0 {
		return Grid{}
	}
	// Dividing the scaled extent directly keeps exact multiples exact.
	return Grid{
		Rows: geom.Ceil(s.Height / c.TileSize),
		Cols: geom.Ceil(s.Width / c.TileSize),
	}
}

// edges returns the visible document-space interval on one axis, extended by
// the preload margin and floored at 0.
func (c Calculator) edges(offset, extent float64) (lead, trail float64) {
	lead = max(-offset-c.Preload, 0)
	trail = max(-offset+extent+c.Preload, 0)
	return lead, trail
}

// Ranges returns the per-page tile ranges covering the viewport, ordered by
// page. Pages with an empty grid or lying entirely outside the viewport on
// the cross axis are omitted.
func (c Calculator) Ranges(l *layout.Layout, v Viewport) []Range {
	if l == nil || l.PageCount() == 0 || v.Zoom <= 0 {
		return nil
	}
	zoom := v.Zoom
	vertical := l.Axis() == layout.Vertical

	leadX, trailX := c.edges(v.OffsetX, v.Width)
	leadY, trailY := c.edges(v.OffsetY, v.Height)

	// Primary axis: p, cross axis: s.
	leadP, trailP, leadS, trailS := leadY, trailY, leadX, trailX
	if !vertical {
		leadP, trailP, leadS, trailS = leadX, trailX, leadY, trailY
	}

	firstPage := l.PageAtOffset(leadP, zoom)
	lastPage := l.PageAtOffset(trailP, zoom)

	ranges := make([]Range, 0, lastPage-firstPage+1)
	for page := firstPage; page <= lastPage; page++ {
		grid := c.GridSize(l, page, zoom)
		if grid.Rows == 0 || grid.Cols == 0 {
			continue
		}
		size := l.ScaledPageSize(page, zoom)
		pageOffset := l.PageOffset(page, zoom)
		secondary := l.SecondaryOffset(page, zoom)

		// Only the first page clips its leading edge and only the last page
		// its trailing edge; interior pages are fully included.
		pageLength, crossLength := size.Height, size.Width
		if !vertical {
			pageLength, crossLength = size.Width, size.Height
		}
		firstP := pageOffset
		if page == firstPage {
			firstP = leadP
		}
		lastP := pageOffset + pageLength
		if page == lastPage {
			lastP = trailP
		}

		if trailS <= secondary || leadS >= secondary+crossLength {
			continue
		}

		primaryCells, crossCells := grid.Rows, grid.Cols
		if !vertical {
			primaryCells, crossCells = grid.Cols, grid.Rows
		}
		primaryStep := pageLength / float64(primaryCells)
		crossStep := crossLength / float64(crossCells)

		p0 := cellIndex(firstP-pageOffset, primaryStep, primaryCells)
		p1 := cellIndex(lastP-pageOffset, primaryStep, primaryCells)
		s0 := cellIndex(leadS-secondary, crossStep, crossCells)
		s1 := cellIndex(trailS-secondary, crossStep, crossCells)

		r := Range{Page: page, Grid: grid}
		if vertical {
			r.LeftTop = Cell{Row: p0, Col: s0}
			r.RightBottom = Cell{Row: p1, Col: s1}
		} else {
			r.LeftTop = Cell{Row: s0, Col: p0}
			r.RightBottom = Cell{Row: s1, Col: p1}
		}
		ranges = append(ranges, r)
	}
	return ranges
}

// cellIndex converts a distance into the page to a cell index clamped to
// [0, cells-1].
func cellIndex(distance, step float64, cells int) int {
	if step <= 0 || math.IsNaN(distance) {
		return 0
	}
	i := geom.Floor(max(distance, 0) / step)
	return min(max(i, 0), cells-1)
}
