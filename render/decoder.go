package render

import (
	"image"

	"github.com/gogpu/pageview/geom"
	"github.com/gogpu/pageview/pixbuf"
)

// Decoder rasterizes document pages.
//
// A Decoder is not required to be safe for concurrent use; callers serialize
// access with a single lock.
type Decoder interface {
	// PageCount returns the number of pages in the document.
	PageCount() int

	// PageSize returns the intrinsic size of a page.
	PageSize(page int) (geom.Size, error)

	// OpenPage prepares a page for rendering. It is called once per page
	// before the first RenderRegion.
	OpenPage(page int) error

	// RenderRegion draws the page into dst. pageRect is where the whole
	// page lands in dst's pixel space; it usually extends beyond dst's
	// bounds, and only the overlap is drawn.
	RenderRegion(page int, dst *pixbuf.Buffer, pageRect image.Rectangle, q pixbuf.Quality) error

	// Close releases the document.
	Close() error
}
