// Package render turns tile requests into rendered tiles on a single
// background goroutine.
//
// A Worker owns one goroutine and a FIFO queue of Requests. For every request
// it opens the page through the Decoder (once per page), computes where the
// whole page lands in the tile's pixel space, allocates a pixel buffer,
// lets the decoder rasterize into it and hands the resulting cache.Tile to
// the completion callback.
//
//	w := render.NewWorker(dec, render.Config{
//	    OnTile: func(t *cache.Tile) { c.Insert(t) },
//	})
//	defer w.Close()
//	w.Start()
//	w.Submit(render.Request{Page: 0, Width: 256, Height: 256, Bounds: b})
//
// # Cancellation
//
// Clear drops every queued request without waiting. A request that is
// already rendering finishes; its tile carries the pass version of the
// request so the receiver can discard it when it has become stale.
//
// # Failures
//
// A page that fails to open is reported once through OnPageError and every
// later request for it is skipped. Allocation and rasterization failures,
// including decoder panics, drop the request after logging it; nothing is
// retried.
package render
