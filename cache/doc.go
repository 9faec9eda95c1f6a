// Package cache holds the rendered tiles of a document.
//
// # Generations
//
// Tiles live in two generations. Every layout pass first rotates the cache:
// the active generation becomes passive and a fresh active generation starts.
// Tiles requested again by the new pass are promoted back into the active
// generation; the rest stay passive and are the first to go when the cache is
// full.
//
//	c := cache.New(120, 8)
//	c.RotateGeneration()
//	if !c.PromoteIfPresent(page, bounds, priority) {
//	    // request a render
//	}
//	c.Insert(tile)
//
// Within a generation the tile with the lowest priority is evicted first.
//
// # Thumbnails
//
// Whole-page thumbnails are kept apart in a small FIFO list and never compete
// with the tiles of the main generations.
//
// # Buffers
//
// The cache owns the pixel buffer of every resident tile and releases it
// exactly once: on eviction, on duplicate rejection or on Clear.
//
// # Thread Safety
//
// A Cache is safe for concurrent use. Tiles returned by Snapshot and
// Thumbnails stay valid until the next mutation of the cache.
package cache
