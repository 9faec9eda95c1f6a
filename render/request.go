package render

import (
	"fmt"

	"github.com/gogpu/pageview/geom"
	"github.com/gogpu/pageview/pixbuf"
)

// Request asks for one tile.
type Request struct {
	// Page is the displayed page index.
	Page int
	// Width and Height are the target pixel size; they are rounded half up.
	Width  float64
	Height float64
	// Bounds is the page-relative region to render.
	Bounds    geom.Rect
	Thumbnail bool
	// Priority is copied to the tile for eviction ordering.
	Priority uint64
	Quality  pixbuf.Quality
	// Version is the layout pass the request belongs to.
	Version uint64
}

func (r Request) String() string {
	kind := "tile"
	if r.Thumbnail {
		kind = "thumb"
	}
	return fmt.Sprintf("%s[%d %v %.0fx%.0f v=%d]", kind, r.Page, r.Bounds, r.Width, r.Height, r.Version)
}
