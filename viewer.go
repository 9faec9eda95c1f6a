package pageview

import (
	"context"
	"sync"

	"github.com/gogpu/pageview/cache"
	"github.com/gogpu/pageview/geom"
	"github.com/gogpu/pageview/layout"
	"github.com/gogpu/pageview/pixbuf"
	"github.com/gogpu/pageview/render"
	"github.com/gogpu/pageview/tiling"
)

// State is the document lifecycle state of a Viewer.
type State uint8

const (
	// StateDefault means no document is loaded.
	StateDefault State = iota
	// StateLoaded means the document is laid out but no tile arrived yet.
	StateLoaded
	// StateShown means at least one tile of the document was rendered.
	StateShown
	// StateError means the last load failed.
	StateError
)

func (s State) String() string {
	switch s {
	case StateLoaded:
		return "loaded"
	case StateShown:
		return "shown"
	case StateError:
		return "error"
	default:
		return "default"
	}
}

// Viewer is a tiled document view: it owns the page layout, the tile cache
// and the render worker of one document at a time.
//
// Every change of offset, zoom, view size or document starts a layout pass:
// queued render requests are dropped, the cache rotates its generations and
// each tile the view needs is either promoted from the cache or requested
// from the worker. Tiles completed for an earlier pass are discarded.
//
// Viewer is safe for concurrent use.
type Viewer struct {
	opts  options
	calc  tiling.Calculator
	cache *cache.Cache
	alloc *pixbuf.Allocator

	// decMu serializes every decoder call.
	decMu sync.Mutex

	mu      sync.Mutex
	closed  bool
	state   State
	dec     Decoder
	worker  *render.Worker
	layout  *layout.Layout
	pageMap layout.PageMap

	view    geom.Size
	x, y    float64
	zoom    float64
	current int

	pass     uint64
	priority uint64

	loadGen    uint64
	loadCancel context.CancelFunc
	loadDone   chan struct{}

	// pending and cleanup run after mu is released.
	pending []Event
	cleanup []func()
}

// New creates a Viewer for a view of width x height pixels.
func New(width, height int, opts ...Option) *Viewer {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	alloc := o.allocator
	if alloc == nil {
		alloc = pixbuf.Default()
	}
	v := &Viewer{
		opts:  o,
		calc:  tiling.Calculator{TileSize: o.tileSize, Preload: o.preload()},
		cache: cache.New(o.cacheCapacity, o.thumbCapacity),
		alloc: alloc,
		view:  geom.Size{Width: width, Height: height},
	}
	v.zoom = v.clampZoom(1)
	return v
}

// unlock releases mu, then runs deferred cleanups and delivers pending
// events.
func (v *Viewer) unlock() {
	events, cleanup := v.pending, v.cleanup
	v.pending, v.cleanup = nil, nil
	v.mu.Unlock()

	for _, fn := range cleanup {
		fn()
	}
	for _, e := range events {
		v.opts.handler(e)
	}
}

// emit queues an event. Caller must hold mu.
func (v *Viewer) emit(e Event) {
	v.pending = append(v.pending, e)
}

// readyLocked reports why navigation is impossible, if it is.
func (v *Viewer) readyLocked() error {
	if v.closed {
		return ErrClosed
	}
	if v.layout == nil {
		return ErrNoDocument
	}
	return nil
}

// Load replaces the current document with the one opened from src. The
// document is opened on a separate goroutine; LoadEvent or ErrorEvent
// reports the outcome. Cancelling ctx abandons the load.
func (v *Viewer) Load(ctx context.Context, src Source) error {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return ErrClosed
	}
	v.recycleLocked()
	v.loadGen++
	gen := v.loadGen
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	v.loadCancel, v.loadDone = cancel, done
	v.unlock()

	go v.load(ctx, cancel, gen, src, done)
	return nil
}

func (v *Viewer) load(ctx context.Context, cancel context.CancelFunc, gen uint64, src Source, done chan struct{}) {
	defer close(done)
	defer cancel()

	dec, err := src.Open(ctx)
	if err == nil && dec == nil {
		err = ErrNoDocument
	}
	if err == nil && ctx.Err() != nil {
		_ = dec.Close()
		err = ctx.Err()
	}

	var (
		pm    layout.PageMap
		sizes []geom.Size
	)
	if err == nil {
		pm, sizes = v.pageSizes(dec)
	}

	v.mu.Lock()
	if gen != v.loadGen || v.closed {
		v.mu.Unlock()
		if err == nil {
			_ = dec.Close()
		}
		return
	}
	if err != nil {
		v.failLoadLocked(err)
	} else {
		v.installLocked(gen, dec, pm, sizes)
	}
	v.unlock()
}

// pageSizes reads the intrinsic size of every displayed page. Pages that
// cannot be measured get a zero size.
func (v *Viewer) pageSizes(dec Decoder) (layout.PageMap, []geom.Size) {
	v.decMu.Lock()
	defer v.decMu.Unlock()

	pm := layout.NewPageMap(v.opts.pages, dec.PageCount())
	sizes := make([]geom.Size, pm.Len())
	for i := range sizes {
		docPage := pm.DocumentPage(i)
		if docPage < 0 {
			continue
		}
		s, err := dec.PageSize(docPage)
		if err != nil {
			Logger().Warn("pageview: page size unavailable", "page", i, "err", err)
			continue
		}
		sizes[i] = s
	}
	return pm, sizes
}

func (v *Viewer) installLocked(gen uint64, dec Decoder, pm layout.PageMap, sizes []geom.Size) {
	v.dec = dec
	v.pageMap = pm
	v.layout = layout.New(sizes, v.view, v.opts.layoutConfig())
	v.worker = render.NewWorker(dec, render.Config{
		Allocator:    v.alloc,
		DecoderLock:  &v.decMu,
		DocumentPage: pm.DocumentPage,
		OnTile:       func(t *cache.Tile) { v.onTile(gen, t) },
		OnPageError:  func(e *PageOpenError) { v.onPageError(gen, e) },
	})
	v.worker.Start()
	v.state = StateLoaded

	Logger().Info("pageview: document loaded", "pages", pm.Len())
	v.emit(LoadEvent{Pages: pm.Len()})
	v.jumpToLocked(v.opts.defaultPage)
}

func (v *Viewer) failLoadLocked(err error) {
	Logger().Warn("pageview: document load failed", "err", err)
	v.recycleLocked()
	v.state = StateError
	v.emit(ErrorEvent{Err: &DocumentLoadError{Err: err}})
}

// recycleLocked drops the current document: pending work is discarded, the
// cache is emptied and the worker and decoder are closed once mu is
// released.
func (v *Viewer) recycleLocked() {
	if v.loadCancel != nil {
		v.loadCancel()
		v.loadCancel = nil
	}
	// Completions of the old document can never match a later pass.
	v.pass++

	w, dec := v.worker, v.dec
	if w != nil {
		w.Stop()
		w.Clear()
	}
	if w != nil || dec != nil {
		v.cleanup = append(v.cleanup, func() {
			if w != nil {
				w.Close()
			}
			if dec != nil {
				if err := dec.Close(); err != nil {
					Logger().Warn("pageview: decoder close failed", "err", err)
				}
			}
		})
	}

	v.worker, v.dec, v.layout = nil, nil, nil
	v.pageMap = layout.PageMap{}
	v.cache.Clear()
	v.x, v.y = 0, 0
	v.zoom = v.clampZoom(1)
	v.current = 0
	v.state = StateDefault
}

// Close releases the document and every cached tile. A closed Viewer
// cannot be reused. A load still in progress closes its decoder on its own.
func (v *Viewer) Close() error {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return nil
	}
	v.closed = true
	hadDocument := v.dec != nil
	v.recycleLocked()
	v.unlock()

	if hadDocument {
		Logger().Info("pageview: closed")
	}
	return nil
}

// Wait blocks until the pending load has finished and the render worker
// has nothing left to do, or ctx is done.
func (v *Viewer) Wait(ctx context.Context) error {
	v.mu.Lock()
	done := v.loadDone
	v.mu.Unlock()

	if done != nil {
		select {
		case <-done:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	v.mu.Lock()
	w := v.worker
	v.mu.Unlock()
	if w == nil {
		return nil
	}
	return w.WaitIdle(ctx)
}

// onTile accepts a rendered tile from the worker of load gen.
func (v *Viewer) onTile(gen uint64, t *cache.Tile) {
	v.mu.Lock()
	if v.closed || gen != v.loadGen || t.Version != v.pass {
		v.mu.Unlock()
		t.Release()
		Logger().Debug("pageview: stale tile dropped", "tile", t.String())
		return
	}

	if v.state == StateLoaded {
		v.state = StateShown
		v.emit(RenderEvent{Pages: v.pageMap.Len()})
	}
	var inserted bool
	if t.Thumbnail {
		inserted = v.cache.InsertThumbnail(t)
	} else {
		inserted = v.cache.Insert(t)
	}
	if inserted {
		v.emit(TileReadyEvent{Page: t.Page, Bounds: t.Bounds, Thumbnail: t.Thumbnail})
	}
	v.unlock()
}

func (v *Viewer) onPageError(gen uint64, e *PageOpenError) {
	v.mu.Lock()
	if v.closed || gen != v.loadGen {
		v.mu.Unlock()
		return
	}
	v.emit(PageErrorEvent{Page: e.Page, Err: e})
	v.unlock()
}

// viewportLocked returns the current viewport.
func (v *Viewer) viewportLocked() tiling.Viewport {
	return tiling.Viewport{
		OffsetX: v.x,
		OffsetY: v.y,
		Zoom:    v.zoom,
		Width:   float64(v.view.Width),
		Height:  float64(v.view.Height),
	}
}

// loadPagesLocked runs a layout pass.
func (v *Viewer) loadPagesLocked() {
	if v.layout == nil || v.worker == nil {
		return
	}
	v.pass++
	v.worker.Clear()
	v.cache.RotateGeneration()

	ranges := v.calc.Ranges(v.layout, v.viewportLocked())
	visible := ranges[:0]
	for _, r := range ranges {
		if v.worker.PageErrored(r.Page) {
			continue
		}
		visible = append(visible, r)
		v.loadThumbnailLocked(r.Page)
	}

	requested, promoted := 0, 0
	for _, p := range v.calc.Plan(visible, v.opts.cacheCapacity) {
		v.priority++
		if v.cache.PromoteIfPresent(p.Page, p.Bounds, v.priority) {
			promoted++
			continue
		}
		v.submitLocked(p, v.priority)
		requested++
	}

	Logger().Debug("pageview: layout pass",
		"pass", v.pass, "ranges", len(visible), "requested", requested, "promoted", promoted)
}

func (v *Viewer) loadThumbnailLocked(page int) {
	if v.opts.thumbnailRatio <= 0 || v.cache.ContainsThumbnail(page, geom.Unit) {
		return
	}
	p := tiling.Thumbnail(v.layout, page, v.opts.thumbnailRatio)
	if geom.Round(p.Width) <= 0 || geom.Round(p.Height) <= 0 {
		return
	}
	v.submitLocked(p, 0)
}

func (v *Viewer) submitLocked(p tiling.Part, priority uint64) {
	err := v.worker.Submit(render.Request{
		Page:      p.Page,
		Width:     p.Width,
		Height:    p.Height,
		Bounds:    p.Bounds,
		Thumbnail: p.Thumbnail,
		Priority:  priority,
		Quality:   v.opts.quality,
		Version:   v.pass,
	})
	if err != nil {
		Logger().Debug("pageview: request not queued", "page", p.Page, "err", err)
	}
}

// VisibleTiles returns the cached tiles: tiles left from the previous pass
// first, then the tiles of the current pass. Tiles rendered later may evict
// them and release their buffers at any time, so drawing goes through
// DrawTiles.
func (v *Viewer) VisibleTiles() []*cache.Tile {
	return v.cache.Snapshot()
}

// Thumbnails returns the cached whole-page thumbnails. Like VisibleTiles,
// their buffers may be released at any time.
func (v *Viewer) Thumbnails() []*cache.Tile {
	return v.cache.Thumbnails()
}

// DrawTiles calls draw with the cached tiles, ordered as by VisibleTiles,
// and the cached thumbnails. Their buffers stay valid until draw returns;
// arriving tiles wait meanwhile. draw must not keep the slices or buffers
// and must not call Viewer methods.
func (v *Viewer) DrawTiles(draw func(tiles, thumbnails []*cache.Tile)) {
	v.cache.View(draw)
}

// PageCount returns the number of displayed pages, 0 without a document.
func (v *Viewer) PageCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.layout == nil {
		return 0
	}
	return v.layout.PageCount()
}

// IsPageErrored reports whether page failed to open.
func (v *Viewer) IsPageErrored(page int) bool {
	v.mu.Lock()
	w := v.worker
	v.mu.Unlock()
	return w != nil && w.PageErrored(page)
}

// State returns the document lifecycle state.
func (v *Viewer) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// CurrentPage returns the page at the center of the view.
func (v *Viewer) CurrentPage() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.current
}

// Zoom returns the zoom factor.
func (v *Viewer) Zoom() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.zoom
}

// Offset returns the view offset in screen convention.
func (v *Viewer) Offset() (x, y float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.x, v.y
}

// ViewSize returns the view size in pixels.
func (v *Viewer) ViewSize() geom.Size {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.view
}

// Layout returns the page layout, or nil without a document. The layout is
// immutable; a resize installs a new one.
func (v *Viewer) Layout() *layout.Layout {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.layout
}

// Stats returns engine statistics.
func (v *Viewer) Stats() Stats {
	v.mu.Lock()
	w, pass := v.worker, v.pass
	v.mu.Unlock()

	s := Stats{
		Pass:    pass,
		Cache:   v.cache.Stats(),
		Buffers: v.alloc.Stats(),
	}
	if w != nil {
		s.Worker = w.Stats()
	}
	return s
}

// Stats contains engine statistics.
type Stats struct {
	// Pass is the current layout pass version.
	Pass uint64
	// Cache describes the tile cache.
	Cache cache.Stats
	// Worker describes the render worker of the current document.
	Worker render.Stats
	// Buffers describes the pixel buffer allocator.
	Buffers pixbuf.Stats
}
