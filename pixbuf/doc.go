// Package pixbuf provides owned pixel buffers for rendered page tiles.
//
// A Buffer is allocated by an Allocator, filled by a page decoder and then
// owned by exactly one holder (normally a cache tile). Pixel memory is a
// scarce resource, so a Buffer is never left to the garbage collector: its
// holder calls Release exactly once, which returns the pixel memory to the
// allocator's pool and updates the allocator's live counters.
//
// Two qualities are supported:
//
//   - Full: 8-bit RGBA, 4 bytes per pixel ([image.RGBA])
//   - Reduced: 16-bit RGB565, 2 bytes per pixel ([RGB565]), opaque
//
// Thread safety: Allocator is safe for concurrent use. A Buffer may be read
// concurrently once filled; Release may race with nothing else.
package pixbuf
