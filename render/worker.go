package render

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync"
	"sync/atomic"

	"github.com/gogpu/pageview/cache"
	"github.com/gogpu/pageview/geom"
	"github.com/gogpu/pageview/pixbuf"
)

// Config configures a Worker.
type Config struct {
	// Allocator provides tile buffers. Nil selects pixbuf.Default().
	Allocator *pixbuf.Allocator

	// DecoderLock serializes decoder calls with other users of the same
	// decoder. Nil gives the worker a private lock.
	DecoderLock sync.Locker

	// DocumentPage maps a displayed page to a decoder page; negative results
	// mark invalid pages. Nil is the identity.
	DocumentPage func(page int) int

	// OnTile receives every tile rendered while the worker is started and
	// takes ownership of its buffer. It runs on the worker goroutine.
	OnTile func(*cache.Tile)

	// OnPageError is called once for every page that fails to open. It runs
	// on the worker goroutine.
	OnPageError func(*PageOpenError)
}

// Worker renders requests one at a time on its own goroutine.
//
// Thread safety: all methods are safe for concurrent use, but Close must not
// be called from OnTile or OnPageError.
type Worker struct {
	dec       Decoder
	pageCount int
	cfg       Config
	alloc     *pixbuf.Allocator
	decMu     sync.Locker

	mu     sync.Mutex
	cond   *sync.Cond
	queue  []Request
	busy   bool
	closed bool

	// idle is closed while nothing is queued or rendering.
	idle         chan struct{}
	idleSignaled bool

	// running gates delivery: completions are released while stopped.
	running atomic.Bool

	pageMu sync.Mutex
	pages  map[int]error // decoder page -> open result

	rendered  atomic.Uint64
	failed    atomic.Uint64
	discarded atomic.Uint64
	cleared   atomic.Uint64

	done chan struct{}
}

// NewWorker creates a worker for dec and starts its goroutine. The worker
// accepts requests immediately but delivers nothing until Start is called.
func NewWorker(dec Decoder, cfg Config) *Worker {
	w := &Worker{
		dec:       dec,
		pageCount: dec.PageCount(),
		cfg:       cfg,
		alloc:     cfg.Allocator,
		decMu:     cfg.DecoderLock,
		pages:     make(map[int]error),
		idle:      make(chan struct{}),
		done:      make(chan struct{}),
	}
	if w.alloc == nil {
		w.alloc = pixbuf.Default()
	}
	if w.decMu == nil {
		w.decMu = &sync.Mutex{}
	}
	w.cond = sync.NewCond(&w.mu)
	close(w.idle)
	w.idleSignaled = true

	go w.loop()
	return w
}

// Start enables delivery of rendered tiles.
func (w *Worker) Start() { w.running.Store(true) }

// Stop disables delivery; tiles completed while stopped are released.
func (w *Worker) Stop() { w.running.Store(false) }

// Running reports whether tiles are delivered.
func (w *Worker) Running() bool { return w.running.Load() }

// Submit appends a request to the queue.
func (w *Worker) Submit(req Request) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrClosed
	}
	w.queue = append(w.queue, req)
	if w.idleSignaled {
		w.idle = make(chan struct{})
		w.idleSignaled = false
	}
	w.cond.Signal()
	return nil
}

// Clear drops every queued request and returns how many were dropped. A
// request already rendering is not interrupted. Clear never blocks on the
// decoder.
func (w *Worker) Clear() int {
	w.mu.Lock()
	defer w.mu.Unlock()

	n := len(w.queue)
	w.queue = nil
	w.cleared.Add(uint64(n))
	w.signalIdleLocked()
	return n
}

// Pending returns the number of queued requests plus the one rendering.
func (w *Worker) Pending() int {
	w.mu.Lock()
	defer w.mu.Unlock()

	n := len(w.queue)
	if w.busy {
		n++
	}
	return n
}

// WaitIdle blocks until nothing is queued or rendering, or ctx is done.
// Tiles rendered before WaitIdle returns have been delivered.
func (w *Worker) WaitIdle(ctx context.Context) error {
	w.mu.Lock()
	idle := w.idle
	w.mu.Unlock()

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// PageErrored reports whether page failed to open. Invalid pages count as
// errored.
func (w *Worker) PageErrored(page int) bool {
	docPage := w.documentPage(page)
	if docPage < 0 {
		return true
	}
	w.pageMu.Lock()
	defer w.pageMu.Unlock()
	return w.pages[docPage] != nil
}

// Close stops the worker, drops queued requests and waits for the goroutine
// to exit. It does not close the decoder. Close is idempotent.
func (w *Worker) Close() {
	w.running.Store(false)

	w.mu.Lock()
	if !w.closed {
		w.closed = true
		w.cleared.Add(uint64(len(w.queue)))
		w.queue = nil
		w.cond.Broadcast()
	}
	w.mu.Unlock()

	<-w.done

	w.mu.Lock()
	w.signalIdleLocked()
	w.mu.Unlock()
}

// signalIdleLocked closes the idle channel once the worker has run dry.
// Caller must hold w.mu.
func (w *Worker) signalIdleLocked() {
	if len(w.queue) == 0 && !w.busy && !w.idleSignaled {
		close(w.idle)
		w.idleSignaled = true
	}
}

// loop is the worker goroutine.
func (w *Worker) loop() {
	defer close(w.done)

	for {
		req, ok := w.next()
		if !ok {
			return
		}

		if tile := w.process(req); tile != nil {
			w.deliver(tile)
		}

		w.mu.Lock()
		w.busy = false
		w.signalIdleLocked()
		w.mu.Unlock()
	}
}

// next blocks for the next request. It returns false once the worker is
// closed.
func (w *Worker) next() (Request, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	for len(w.queue) == 0 && !w.closed {
		w.cond.Wait()
	}
	if w.closed {
		return Request{}, false
	}
	req := w.queue[0]
	w.queue = w.queue[1:]
	w.busy = true
	return req, true
}

func (w *Worker) deliver(t *cache.Tile) {
	if !w.running.Load() || w.cfg.OnTile == nil {
		w.discarded.Add(1)
		t.Release()
		return
	}
	w.rendered.Add(1)
	w.cfg.OnTile(t)
}

// process renders one request and reports failures. It returns nil when the
// request produced no tile.
func (w *Worker) process(req Request) *cache.Tile {
	tile, err := w.render(req)
	if err == nil {
		return tile
	}

	var openErr *PageOpenError
	switch {
	case errors.Is(err, errPageErrored):
	case errors.As(err, &openErr):
		w.failed.Add(1)
		slogger().Warn("render: page open failed", "page", openErr.Page, "err", openErr.Err)
		if w.cfg.OnPageError != nil {
			w.cfg.OnPageError(openErr)
		}
	default:
		w.failed.Add(1)
		slogger().Warn("render: tile dropped", "request", req.String(), "err", err)
	}
	return nil
}

func (w *Worker) render(req Request) (*cache.Tile, error) {
	docPage := w.documentPage(req.Page)
	if docPage < 0 {
		return nil, &RenderError{Page: req.Page, Bounds: req.Bounds, Err: ErrInvalidPage}
	}
	if err := w.openPage(req.Page, docPage); err != nil {
		return nil, err
	}

	width, height := geom.Round(req.Width), geom.Round(req.Height)
	pageRect := geom.PageRect(width, height, req.Bounds)
	if pageRect.Empty() {
		return nil, &RenderError{Page: req.Page, Bounds: req.Bounds, Err: ErrEmptyRegion}
	}

	buf, err := w.alloc.Alloc(width, height, req.Quality)
	if err != nil {
		return nil, &RenderError{Page: req.Page, Bounds: req.Bounds, Err: err}
	}
	if err := w.rasterize(docPage, buf, pageRect, req.Quality); err != nil {
		buf.Release()
		return nil, &RenderError{Page: req.Page, Bounds: req.Bounds, Err: err}
	}

	return &cache.Tile{
		Page:      req.Page,
		Bounds:    req.Bounds,
		Buffer:    buf,
		Thumbnail: req.Thumbnail,
		Priority:  req.Priority,
		Version:   req.Version,
	}, nil
}

// openPage opens a decoder page the first time it is requested and
// remembers the outcome.
func (w *Worker) openPage(page, docPage int) error {
	w.pageMu.Lock()
	openErr, seen := w.pages[docPage]
	w.pageMu.Unlock()
	if seen {
		if openErr != nil {
			return errPageErrored
		}
		return nil
	}

	err := w.call(func() error { return w.dec.OpenPage(docPage) })

	w.pageMu.Lock()
	w.pages[docPage] = err
	w.pageMu.Unlock()

	if err != nil {
		return &PageOpenError{Page: page, Err: err}
	}
	return nil
}

func (w *Worker) rasterize(docPage int, buf *pixbuf.Buffer, pageRect image.Rectangle, q pixbuf.Quality) error {
	return w.call(func() error { return w.dec.RenderRegion(docPage, buf, pageRect, q) })
}

// call runs fn under the decoder lock and turns a panic into ErrPanic.
func (w *Worker) call(fn func() error) (err error) {
	w.decMu.Lock()
	defer w.decMu.Unlock()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrPanic, r)
		}
	}()
	return fn()
}

func (w *Worker) documentPage(page int) int {
	if w.cfg.DocumentPage == nil {
		if page < 0 || page >= w.pageCount {
			return -1
		}
		return page
	}
	return w.cfg.DocumentPage(page)
}

// Stats returns worker statistics.
func (w *Worker) Stats() Stats {
	return Stats{
		Rendered:  w.rendered.Load(),
		Failed:    w.failed.Load(),
		Discarded: w.discarded.Load(),
		Cleared:   w.cleared.Load(),
	}
}

// Stats contains worker statistics.
type Stats struct {
	// Rendered is the number of tiles delivered.
	Rendered uint64
	// Failed is the number of requests that failed to render.
	Failed uint64
	// Discarded is the number of tiles released because the worker was
	// stopped.
	Discarded uint64
	// Cleared is the number of queued requests dropped by Clear or Close.
	Cleared uint64
}
