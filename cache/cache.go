package cache

import (
	"sync"

	"github.com/gogpu/pageview/geom"
)

// Default capacities.
const (
	// DefaultCapacity is the maximum number of tiles in both generations.
	DefaultCapacity = 120

	// DefaultThumbnailCapacity is the maximum number of thumbnails.
	DefaultThumbnailCapacity = 8
)

// Cache is a bounded two-generation tile store plus a thumbnail list.
//
// After every operation len(active)+len(passive) <= Capacity and
// len(thumbnails) <= ThumbnailCapacity.
//
// Cache must not be copied after creation (has mutex).
type Cache struct {
	mu sync.Mutex

	active  *generation
	passive *generation
	thumbs  []*Tile

	capacity      int
	thumbCapacity int

	hits      uint64
	misses    uint64
	evictions uint64
	released  uint64
}

// New creates a cache holding at most capacity tiles and thumbCapacity
// thumbnails. Non-positive values select the defaults.
func New(capacity, thumbCapacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if thumbCapacity <= 0 {
		thumbCapacity = DefaultThumbnailCapacity
	}
	return &Cache{
		active:        newGeneration(),
		passive:       newGeneration(),
		capacity:      capacity,
		thumbCapacity: thumbCapacity,
	}
}

// Insert adds a tile to the active generation. Thumbnails are routed to
// InsertThumbnail.
//
// While the cache is full, the lowest-priority tile of the passive generation
// is evicted, then of the active one. A resident tile with the same key is
// replaced. Evicted and replaced buffers are released.
func (c *Cache) Insert(t *Tile) bool {
	if t == nil {
		return false
	}
	if t.Thumbnail {
		return c.InsertThumbnail(t)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	k := t.Key()
	if old, ok := c.active.get(k); ok {
		c.active.remove(old)
		c.release(old)
	} else if old, ok := c.passive.get(k); ok {
		c.passive.remove(old)
		c.release(old)
	}

	for c.active.len()+c.passive.len() >= c.capacity {
		victim := c.passive.popLowest()
		if victim == nil {
			victim = c.active.popLowest()
		}
		if victim == nil {
			break
		}
		c.evictions++
		c.release(victim)
	}
	c.active.push(t)
	return true
}

// RotateGeneration starts a new pass: the passive generation is dropped and
// its buffers released, the active generation becomes passive and a new
// empty active generation starts. Two rotations without promotions in
// between empty the cache.
func (c *Cache) RotateGeneration() {
	c.mu.Lock()
	defer c.mu.Unlock()

	dropped := c.passive.len()
	for t := c.passive.popLowest(); t != nil; t = c.passive.popLowest() {
		c.evictions++
		c.release(t)
	}
	c.passive, c.active = c.active, c.passive

	if dropped > 0 {
		slogger().Debug("cache: rotated", "dropped", dropped, "passive", c.passive.len())
	}
}

// PromoteIfPresent reports whether the tile of page with the given bounds is
// resident. A passive tile moves to the active generation and takes the new
// priority; an active tile is left untouched.
func (c *Cache) PromoteIfPresent(page int, bounds geom.Rect, priority uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	k := Key{Page: page, Bounds: bounds}
	if _, ok := c.active.get(k); ok {
		c.hits++
		return true
	}
	if t, ok := c.passive.get(k); ok {
		c.passive.remove(t)
		t.Priority = priority
		c.active.push(t)
		c.hits++
		return true
	}
	c.misses++
	return false
}

// InsertThumbnail appends a thumbnail, evicting the oldest ones while the
// list is full. A thumbnail already present for the same page and bounds is
// kept and the new tile's buffer is released; InsertThumbnail then reports
// false.
func (c *Cache) InsertThumbnail(t *Tile) bool {
	if t == nil {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.containsThumbnail(t.Page, t.Bounds) {
		c.release(t)
		return false
	}
	for len(c.thumbs) >= c.thumbCapacity {
		oldest := c.thumbs[0]
		c.thumbs[0] = nil
		c.thumbs = c.thumbs[1:]
		c.evictions++
		c.release(oldest)
	}
	t.Thumbnail = true
	c.thumbs = append(c.thumbs, t)
	return true
}

// ContainsThumbnail reports whether a thumbnail of page with the given
// bounds is resident.
func (c *Cache) ContainsThumbnail(page int, bounds geom.Rect) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.containsThumbnail(page, bounds)
}

func (c *Cache) containsThumbnail(page int, bounds geom.Rect) bool {
	for _, t := range c.thumbs {
		if t.Page == page && t.Bounds == bounds {
			return true
		}
	}
	return false
}

// Snapshot returns the resident tiles: the passive generation first, then
// the active one, each in ascending priority. The cache keeps owning the
// tiles, and a later Insert may release their buffers; draw through View.
func (c *Cache) Snapshot() []*Tile {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]*Tile, 0, c.active.len()+c.passive.len())
	out = append(out, c.passive.sorted()...)
	out = append(out, c.active.sorted()...)
	return out
}

// View calls fn with the resident tiles, ordered as by Snapshot, and the
// resident thumbnails, oldest first. No buffer is released while fn runs.
// The slices and their buffers must not be used after fn returns, and fn
// must not call other Cache methods.
func (c *Cache) View(fn func(tiles, thumbnails []*Tile)) {
	c.mu.Lock()
	defer c.mu.Unlock()

	tiles := make([]*Tile, 0, c.active.len()+c.passive.len())
	tiles = append(tiles, c.passive.sorted()...)
	tiles = append(tiles, c.active.sorted()...)
	fn(tiles, c.thumbs[:len(c.thumbs):len(c.thumbs)])
}

// Thumbnails returns the resident thumbnails, oldest first.
func (c *Cache) Thumbnails() []*Tile {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]*Tile, len(c.thumbs))
	copy(out, c.thumbs)
	return out
}

// Clear releases every resident buffer and empties the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for _, g := range []*generation{c.active, c.passive} {
		for t := g.popLowest(); t != nil; t = g.popLowest() {
			c.release(t)
			n++
		}
	}
	for i, t := range c.thumbs {
		c.release(t)
		c.thumbs[i] = nil
		n++
	}
	c.thumbs = c.thumbs[:0]

	slogger().Debug("cache: cleared", "tiles", n)
}

// release frees a tile's buffer. Caller must hold c.mu.
func (c *Cache) release(t *Tile) {
	if t.Release() {
		c.released++
	}
}

// Stats returns cache statistics.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Stats{
		Active:            c.active.len(),
		Passive:           c.passive.len(),
		Thumbnails:        len(c.thumbs),
		Capacity:          c.capacity,
		ThumbnailCapacity: c.thumbCapacity,
		Hits:              c.hits,
		Misses:            c.misses,
		Evictions:         c.evictions,
		Released:          c.released,
	}
}

// Stats contains cache statistics.
type Stats struct {
	// Active is the number of tiles requested in the current pass.
	Active int
	// Passive is the number of tiles left over from the previous pass.
	Passive int
	// Thumbnails is the number of resident thumbnails.
	Thumbnails int
	// Capacity is the maximum of Active+Passive.
	Capacity int
	// ThumbnailCapacity is the maximum of Thumbnails.
	ThumbnailCapacity int
	// Hits is the number of successful promotions.
	Hits uint64
	// Misses is the number of promotions that found nothing.
	Misses uint64
	// Evictions counts tiles dropped for room or by rotation.
	Evictions uint64
	// Released is the number of buffers released by the cache.
	Released uint64
}

// Len returns the number of tiles in both generations.
func (s Stats) Len() int { return s.Active + s.Passive }
