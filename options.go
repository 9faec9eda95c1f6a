package pageview

import (
	"github.com/gogpu/pageview/cache"
	"github.com/gogpu/pageview/layout"
	"github.com/gogpu/pageview/pixbuf"
	"github.com/gogpu/pageview/tiling"
)

// Default configuration constants.
const (
	// DefaultPreloadMargin extends the viewport on every side, in
	// density-independent pixels.
	DefaultPreloadMargin = 20

	// DefaultMinZoom and DefaultMaxZoom bound the zoom factor.
	DefaultMinZoom = 1.0
	DefaultMaxZoom = 10.0
)

// Option configures a Viewer during creation.
//
// Example:
//
//	v := pageview.New(1080, 1920,
//	    pageview.WithFitPolicy(layout.FitBoth),
//	    pageview.WithSpacing(8),
//	    pageview.WithEventHandler(onEvent),
//	)
type Option func(*options)

// options holds the Viewer configuration.
type options struct {
	tileSize       float64
	preloadMargin  float64
	density        float64
	cacheCapacity  int
	thumbCapacity  int
	thumbnailRatio float64

	policy      layout.FitPolicy
	fitEachPage bool
	axis        layout.Axis
	spacing     float64
	autoSpacing bool
	pageSnap    bool

	quality pixbuf.Quality
	minZoom float64
	maxZoom float64

	defaultPage int
	pages       []int

	handler   func(Event)
	allocator *pixbuf.Allocator
}

// defaultOptions returns the default viewer options.
func defaultOptions() options {
	return options{
		tileSize:       tiling.DefaultTileSize,
		preloadMargin:  DefaultPreloadMargin,
		density:        1,
		cacheCapacity:  cache.DefaultCapacity,
		thumbCapacity:  cache.DefaultThumbnailCapacity,
		thumbnailRatio: tiling.DefaultThumbnailRatio,
		policy:         layout.FitWidth,
		axis:           layout.Vertical,
		quality:        pixbuf.Reduced,
		minZoom:        DefaultMinZoom,
		maxZoom:        DefaultMaxZoom,
		handler:        func(Event) {},
	}
}

// preload returns the preload margin in pixels.
func (o *options) preload() float64 { return o.preloadMargin * o.density }

// layoutConfig returns the layout rules with spacing in pixels.
func (o *options) layoutConfig() layout.Config {
	return layout.Config{
		Policy:      o.policy,
		FitEachPage: o.fitEachPage,
		Axis:        o.axis,
		Spacing:     o.spacing * o.density,
		AutoSpacing: o.autoSpacing,
	}
}

// WithTileSize sets the on-screen tile footprint in pixels.
// Non-positive values are ignored.
func WithTileSize(px float64) Option {
	return func(o *options) {
		if px > 0 {
			o.tileSize = px
		}
	}
}

// WithPreloadMargin sets how far beyond the view tiles are prepared, in
// density-independent pixels.
func WithPreloadMargin(dp float64) Option {
	return func(o *options) {
		o.preloadMargin = max(dp, 0)
	}
}

// WithDensity sets the display density: pixels per density-independent
// pixel. It scales the preload margin and the page spacing.
func WithDensity(d float64) Option {
	return func(o *options) {
		if d > 0 {
			o.density = d
		}
	}
}

// WithCacheCapacity sets the maximum number of cached tiles. It also bounds
// the number of tiles requested by one layout pass.
func WithCacheCapacity(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.cacheCapacity = n
		}
	}
}

// WithThumbnailCapacity sets the maximum number of cached thumbnails.
func WithThumbnailCapacity(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.thumbCapacity = n
		}
	}
}

// WithThumbnailRatio sets the thumbnail size relative to the page size at
// zoom 1. Zero disables thumbnails.
func WithThumbnailRatio(r float64) Option {
	return func(o *options) {
		o.thumbnailRatio = max(r, 0)
	}
}

// WithFitPolicy sets how pages are fitted to the view at zoom 1.
func WithFitPolicy(p layout.FitPolicy) Option {
	return func(o *options) {
		o.policy = p
	}
}

// WithFitEachPage fits every page to the view separately instead of
// scaling all pages relative to the largest one.
func WithFitEachPage(on bool) Option {
	return func(o *options) {
		o.fitEachPage = on
	}
}

// WithAxis sets the scroll axis.
func WithAxis(a layout.Axis) Option {
	return func(o *options) {
		o.axis = a
	}
}

// WithSpacing sets the gap between pages in density-independent pixels.
func WithSpacing(dp float64) Option {
	return func(o *options) {
		o.spacing = max(dp, 0)
	}
}

// WithAutoSpacing gives every page a whole view length along the scroll
// axis so each page can be shown centered on its own.
func WithAutoSpacing(on bool) Option {
	return func(o *options) {
		o.autoSpacing = on
	}
}

// WithPageSnap enables Snap.
func WithPageSnap(on bool) Option {
	return func(o *options) {
		o.pageSnap = on
	}
}

// WithQuality sets the pixel format of rendered tiles.
func WithQuality(q pixbuf.Quality) Option {
	return func(o *options) {
		o.quality = q
	}
}

// WithZoomRange bounds the zoom factor. Invalid ranges are ignored.
func WithZoomRange(minZoom, maxZoom float64) Option {
	return func(o *options) {
		if minZoom > 0 && maxZoom >= minZoom {
			o.minZoom, o.maxZoom = minZoom, maxZoom
		}
	}
}

// WithDefaultPage sets the page shown after loading.
func WithDefaultPage(page int) Option {
	return func(o *options) {
		o.defaultPage = max(page, 0)
	}
}

// WithPages displays the given document pages in order instead of the whole
// document. Pages may repeat; out-of-range pages are shown empty.
func WithPages(pages ...int) Option {
	return func(o *options) {
		o.pages = append([]int(nil), pages...)
	}
}

// WithEventHandler sets the function receiving viewer events.
func WithEventHandler(h func(Event)) Option {
	return func(o *options) {
		if h != nil {
			o.handler = h
		}
	}
}

// WithAllocator sets the allocator for tile buffers. The default is
// pixbuf.Default().
func WithAllocator(a *pixbuf.Allocator) Option {
	return func(o *options) {
		o.allocator = a
	}
}
