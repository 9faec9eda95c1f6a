package pixbuf

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"sync"
	"sync/atomic"
)

// Common errors for buffer allocation.
var (
	// ErrInvalidDimensions is returned when width or height is non-positive.
	ErrInvalidDimensions = errors.New("pixbuf: invalid dimensions")

	// ErrBudgetExceeded is returned when an allocation would exceed the
	// allocator's live byte budget.
	ErrBudgetExceeded = errors.New("pixbuf: live byte budget exceeded")
)

// Quality selects the pixel format of a buffer.
type Quality uint8

const (
	// Full is 32-bit RGBA.
	Full Quality = iota
	// Reduced is 16-bit RGB565, half the memory of Full.
	Reduced
)

// BytesPerPixel returns the storage size of one pixel.
func (q Quality) BytesPerPixel() int {
	if q == Reduced {
		return 2
	}
	return 4
}

func (q Quality) String() string {
	if q == Reduced {
		return "reduced"
	}
	return "full"
}

// Buffer is an owned pixel buffer. The zero value is not usable; buffers are
// obtained from an Allocator.
type Buffer struct {
	img      draw.Image
	pix      []uint8
	width    int
	height   int
	quality  Quality
	alloc    *Allocator
	released atomic.Bool
}

// Width returns the buffer width in pixels.
func (b *Buffer) Width() int { return b.width }

// Height returns the buffer height in pixels.
func (b *Buffer) Height() int { return b.height }

// Quality returns the pixel format of the buffer.
func (b *Buffer) Quality() Quality { return b.quality }

// ByteSize returns the pixel memory held by the buffer.
func (b *Buffer) ByteSize() int { return len(b.pix) }

// Image returns the buffer as a drawable image with bounds (0,0)-(w,h).
// The image must not be used after Release.
func (b *Buffer) Image() draw.Image { return b.img }

// Bounds returns (0,0)-(w,h).
func (b *Buffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.width, b.height)
}

// Released reports whether Release has been called.
func (b *Buffer) Released() bool { return b.released.Load() }

// Release returns the pixel memory to the allocator. It reports whether this
// call performed the release; calling it again is a no-op that returns false
// and is counted as a double release in the allocator statistics.
func (b *Buffer) Release() bool {
	if b == nil {
		return false
	}
	if !b.released.CompareAndSwap(false, true) {
		if b.alloc != nil {
			b.alloc.doubleReleases.Add(1)
		}
		return false
	}
	pix := b.pix
	b.img = nil
	b.pix = nil
	if b.alloc != nil {
		b.alloc.put(b.width, b.height, b.quality, pix)
	}
	return true
}

func (b *Buffer) String() string {
	return fmt.Sprintf("pixbuf.Buffer{%dx%d %s}", b.width, b.height, b.quality)
}

// Stats contains allocator statistics.
type Stats struct {
	// Allocated is the number of buffers handed out.
	Allocated uint64
	// Released is the number of buffers released.
	Released uint64
	// DoubleReleases counts Release calls on already released buffers.
	DoubleReleases uint64
	// Live is Allocated - Released.
	Live int64
	// LiveBytes is the pixel memory currently held by live buffers.
	LiveBytes int64
	// Reused is the number of allocations served from the pool.
	Reused uint64
}

// Allocator hands out pixel buffers and recycles released pixel memory.
//
// Released memory is grouped by dimensions and quality, allowing reuse of
// identically-sized tiles, which is the common case for a tiled viewer.
type Allocator struct {
	mu           sync.Mutex
	buckets      map[poolKey][][]uint8
	maxPerBucket int
	maxLiveBytes int64
	liveBytes    int64

	allocated      atomic.Uint64
	released       atomic.Uint64
	doubleReleases atomic.Uint64
	reused         atomic.Uint64
}

// poolKey identifies a bucket of identical buffer specifications.
type poolKey struct {
	width   int
	height  int
	quality Quality
}

// NewAllocator creates an allocator. maxLiveBytes limits the pixel memory
// held by live buffers (0 means unlimited). maxPerBucket limits how many
// released buffers of each size are retained for reuse (0 disables pooling).
func NewAllocator(maxLiveBytes int64, maxPerBucket int) *Allocator {
	return &Allocator{
		buckets:      make(map[poolKey][][]uint8),
		maxPerBucket: maxPerBucket,
		maxLiveBytes: maxLiveBytes,
	}
}

// Alloc returns a zeroed buffer of the given size and quality.
func (a *Allocator) Alloc(width, height int, q Quality) (*Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	size := width * height * q.BytesPerPixel()
	key := poolKey{width: width, height: height, quality: q}

	a.mu.Lock()
	if a.maxLiveBytes > 0 && a.liveBytes+int64(size) > a.maxLiveBytes {
		a.mu.Unlock()
		return nil, fmt.Errorf("%w: need %d bytes", ErrBudgetExceeded, size)
	}
	a.liveBytes += int64(size)
	var pix []uint8
	if bucket := a.buckets[key]; len(bucket) > 0 {
		pix = bucket[len(bucket)-1]
		a.buckets[key] = bucket[:len(bucket)-1]
	}
	a.mu.Unlock()

	if pix != nil {
		clear(pix)
		a.reused.Add(1)
	} else {
		pix = make([]uint8, size)
	}
	a.allocated.Add(1)

	r := image.Rect(0, 0, width, height)
	b := &Buffer{
		pix:     pix,
		width:   width,
		height:  height,
		quality: q,
		alloc:   a,
	}
	if q == Reduced {
		b.img = &RGB565{Pix: pix, Stride: width * 2, Rect: r}
	} else {
		b.img = &image.RGBA{Pix: pix, Stride: width * 4, Rect: r}
	}
	return b, nil
}

// put returns released pixel memory to its bucket.
func (a *Allocator) put(width, height int, q Quality, pix []uint8) {
	a.released.Add(1)
	key := poolKey{width: width, height: height, quality: q}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.liveBytes -= int64(len(pix))
	bucket := a.buckets[key]
	if len(bucket) >= a.maxPerBucket {
		return
	}
	a.buckets[key] = append(bucket, pix)
}

// Stats returns current allocator statistics.
func (a *Allocator) Stats() Stats {
	a.mu.Lock()
	liveBytes := a.liveBytes
	a.mu.Unlock()

	allocated := a.allocated.Load()
	released := a.released.Load()
	return Stats{
		Allocated:      allocated,
		Released:       released,
		DoubleReleases: a.doubleReleases.Load(),
		Live:           int64(allocated) - int64(released),
		LiveBytes:      liveBytes,
		Reused:         a.reused.Load(),
	}
}

// Purge drops all pooled memory.
func (a *Allocator) Purge() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.buckets = make(map[poolKey][][]uint8)
}

// defaultAllocator is the package-level allocator for convenient usage.
var defaultAllocator = NewAllocator(0, 8)

// Default returns the package-level allocator.
func Default() *Allocator {
	return defaultAllocator
}
