package cache

import (
	"fmt"

	"github.com/gogpu/pageview/geom"
	"github.com/gogpu/pageview/pixbuf"
)

// Key identifies a tile: two tiles with the same key show the same pixels.
type Key struct {
	Page      int
	Bounds    geom.Rect
	Thumbnail bool
}

func (k Key) String() string {
	if k.Thumbnail {
		return fmt.Sprintf("thumb[%d]", k.Page)
	}
	return fmt.Sprintf("tile[%d %v]", k.Page, k.Bounds)
}

// Tile is a rendered region of a page.
type Tile struct {
	// Page is the document page index.
	Page int
	// Bounds is the region of the page, relative to its size.
	Bounds geom.Rect
	// Buffer holds the pixels. It is owned by the cache while the tile is
	// resident.
	Buffer *pixbuf.Buffer
	// Thumbnail marks a whole-page preview.
	Thumbnail bool
	// Priority orders eviction: lower priorities go first.
	Priority uint64
	// Version is the layout pass the tile was requested in.
	Version uint64

	index int // position in the generation heap
}

// Key returns the identity of the tile.
func (t *Tile) Key() Key {
	return Key{Page: t.Page, Bounds: t.Bounds, Thumbnail: t.Thumbnail}
}

// Release frees the tile's buffer. It reports whether this call released it.
func (t *Tile) Release() bool {
	if t.Buffer == nil {
		return false
	}
	return t.Buffer.Release()
}

func (t *Tile) String() string {
	return fmt.Sprintf("%v prio=%d v=%d", t.Key(), t.Priority, t.Version)
}
