// Package pageview renders large multi-page documents into tiles for a
// scrollable, zoomable view.
//
// # Overview
//
// A Viewer lays the pages of a document out along one scroll axis, works out
// which tiles of which pages the view needs, renders the missing ones on a
// background goroutine and keeps the results in a bounded cache. The
// presentation layer draws through DrawTiles and listens for events; the input
// layer reports scrolling, zooming and resizing.
//
// # Quick Start
//
//	import "github.com/gogpu/pageview"
//
//	v := pageview.New(1080, 1920, pageview.WithFitPolicy(layout.FitWidth))
//	defer v.Close()
//
//	if err := v.Load(ctx, src); err != nil {
//	    return err
//	}
//	v.Wait(ctx)
//
//	v.MoveRelative(0, -400)
//	v.Wait(ctx)
//	v.DrawTiles(func(tiles, thumbnails []*cache.Tile) {
//	    // draw thumbnails, then each t.Buffer at the page position of t.Bounds
//	})
//
// # Packages
//
// The engine is split into:
//   - geom: sizes, relative rectangles, the tile affine mapping
//   - pixbuf: owned pixel buffers and their allocator
//   - layout: page sizes, offsets and spacing along the scroll axis
//   - tiling: viewport to tile range calculation
//   - cache: the two-generation tile cache
//   - render: the single-goroutine render worker
//
// # Coordinate System
//
// Offsets use screen convention: (0, 0) shows the document start and offsets
// become negative as the view moves towards the document end. Page-relative
// bounds are in [0,1]x[0,1] with the origin at the top-left corner.
package pageview

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
