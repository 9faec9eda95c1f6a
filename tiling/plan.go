package tiling

import (
	"github.com/gogpu/pageview/geom"
	"github.com/gogpu/pageview/layout"
)

// DefaultThumbnailRatio is the thumbnail size relative to the page size at
// zoom 1.
const DefaultThumbnailRatio = 0.3

// Part describes one tile to be made resident: its page, its position in the
// page grid, its page-relative bounds and the pixel size to render it at.
type Part struct {
	Page      int
	Cell      Cell
	Bounds    geom.Rect
	Width     float64
	Height    float64
	Thumbnail bool
}

// Parts returns the parts of one range in row-major order.
//
// Cells are sized 1/cols x 1/rows of the page; the last row and column are
// cut at the page edge. A full cell renders at TileSize pixels, so a whole
// page would render at TileSize*cols x TileSize*rows.
func (c Calculator) Parts(r Range) []Part {
	if r.Grid.Rows <= 0 || r.Grid.Cols <= 0 {
		return nil
	}
	relPartW := 1 / float64(r.Grid.Cols)
	relPartH := 1 / float64(r.Grid.Rows)
	pageRenderW := c.TileSize / relPartW
	pageRenderH := c.TileSize / relPartH

	parts := make([]Part, 0, r.Len())
	for row := r.LeftTop.Row; row <= r.RightBottom.Row; row++ {
		for col := r.LeftTop.Col; col <= r.RightBottom.Col; col++ {
			relX := relPartW * float64(col)
			relY := relPartH * float64(row)
			relW := relPartW
			relH := relPartH
			if relX+relW > 1 {
				relW = 1 - relX
			}
			if relY+relH > 1 {
				relH = 1 - relY
			}
			w := pageRenderW * relW
			h := pageRenderH * relH
			if w <= 0 || h <= 0 {
				continue
			}
			parts = append(parts, Part{
				Page:   r.Page,
				Cell:   Cell{Row: row, Col: col},
				Bounds: geom.R(relX, relY, relX+relW, relY+relH),
				Width:  w,
				Height: h,
			})
		}
	}
	return parts
}

// Plan flattens ranges into at most limit parts (0 means unlimited), in
// range order. The limit keeps one layout pass from requesting more tiles
// than the cache can hold.
func (c Calculator) Plan(ranges []Range, limit int) []Part {
	var parts []Part
	for _, r := range ranges {
		for _, p := range c.Parts(r) {
			if limit > 0 && len(parts) >= limit {
				return parts
			}
			parts = append(parts, p)
		}
	}
	return parts
}

// Thumbnail returns the whole-page preview part of a page: the page size at
// zoom 1 scaled by ratio. The part has zero size for an invalid page.
func Thumbnail(l *layout.Layout, page int, ratio float64) Part {
	s := l.PageSize(page).Scale(ratio)
	return Part{
		Page:      page,
		Bounds:    geom.Unit,
		Width:     s.Width,
		Height:    s.Height,
		Thumbnail: true,
	}
}
