package pageview

import (
	"testing"

	"github.com/gogpu/pageview/cache"
	"github.com/gogpu/pageview/layout"
	"github.com/gogpu/pageview/pixbuf"
	"github.com/gogpu/pageview/tiling"
)

func TestDefaultOptions(t *testing.T) {
	o := defaultOptions()

	if o.tileSize != tiling.DefaultTileSize {
		t.Errorf("tileSize = %v, want %v", o.tileSize, tiling.DefaultTileSize)
	}
	if o.preload() != DefaultPreloadMargin {
		t.Errorf("preload() = %v, want %v", o.preload(), DefaultPreloadMargin)
	}
	if o.cacheCapacity != cache.DefaultCapacity || o.thumbCapacity != cache.DefaultThumbnailCapacity {
		t.Errorf("capacities = %d/%d", o.cacheCapacity, o.thumbCapacity)
	}
	if o.policy != layout.FitWidth || o.axis != layout.Vertical {
		t.Errorf("policy/axis = %v/%v", o.policy, o.axis)
	}
	if o.quality != pixbuf.Reduced {
		t.Errorf("quality = %v, want reduced", o.quality)
	}
	if o.minZoom != DefaultMinZoom || o.maxZoom != DefaultMaxZoom {
		t.Errorf("zoom range = [%v, %v]", o.minZoom, o.maxZoom)
	}
	if o.handler == nil {
		t.Error("handler is nil")
	}
}

func TestOptions(t *testing.T) {
	tests := []struct {
		name  string
		opt   Option
		check func(o options) bool
	}{
		{"tile size", WithTileSize(512), func(o options) bool { return o.tileSize == 512 }},
		{"tile size ignores zero", WithTileSize(0), func(o options) bool { return o.tileSize == tiling.DefaultTileSize }},
		{"preload clamps negative", WithPreloadMargin(-5), func(o options) bool { return o.preloadMargin == 0 }},
		{"density ignores zero", WithDensity(0), func(o options) bool { return o.density == 1 }},
		{"cache capacity", WithCacheCapacity(40), func(o options) bool { return o.cacheCapacity == 40 }},
		{"cache capacity ignores negative", WithCacheCapacity(-1), func(o options) bool { return o.cacheCapacity == cache.DefaultCapacity }},
		{"thumbnail capacity", WithThumbnailCapacity(3), func(o options) bool { return o.thumbCapacity == 3 }},
		{"thumbnail ratio clamps negative", WithThumbnailRatio(-1), func(o options) bool { return o.thumbnailRatio == 0 }},
		{"fit policy", WithFitPolicy(layout.FitBoth), func(o options) bool { return o.policy == layout.FitBoth }},
		{"fit each page", WithFitEachPage(true), func(o options) bool { return o.fitEachPage }},
		{"axis", WithAxis(layout.Horizontal), func(o options) bool { return o.axis == layout.Horizontal }},
		{"auto spacing", WithAutoSpacing(true), func(o options) bool { return o.autoSpacing }},
		{"page snap", WithPageSnap(true), func(o options) bool { return o.pageSnap }},
		{"quality", WithQuality(pixbuf.Full), func(o options) bool { return o.quality == pixbuf.Full }},
		{"zoom range", WithZoomRange(0.5, 4), func(o options) bool { return o.minZoom == 0.5 && o.maxZoom == 4 }},
		{"zoom range ignores inverted", WithZoomRange(4, 2), func(o options) bool { return o.minZoom == DefaultMinZoom && o.maxZoom == DefaultMaxZoom }},
		{"default page clamps negative", WithDefaultPage(-2), func(o options) bool { return o.defaultPage == 0 }},
		{"nil handler ignored", WithEventHandler(nil), func(o options) bool { return o.handler != nil }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := defaultOptions()
			tt.opt(&o)
			if !tt.check(o) {
				t.Errorf("unexpected options: %+v", o)
			}
		})
	}
}

func TestOptionsDensityScaling(t *testing.T) {
	o := defaultOptions()
	WithDensity(2.5)(&o)
	WithPreloadMargin(10)(&o)
	WithSpacing(4)(&o)

	if got := o.preload(); got != 25 {
		t.Errorf("preload() = %v, want 25", got)
	}
	if got := o.layoutConfig().Spacing; got != 10 {
		t.Errorf("layoutConfig().Spacing = %v, want 10", got)
	}
}

func TestWithPagesCopies(t *testing.T) {
	pages := []int{3, 1, 1}
	o := defaultOptions()
	WithPages(pages...)(&o)
	pages[0] = 9

	if o.pages[0] != 3 || len(o.pages) != 3 {
		t.Errorf("pages = %v, want [3 1 1]", o.pages)
	}
}

func TestNewClampsInitialZoom(t *testing.T) {
	v := New(100, 100, WithZoomRange(2, 4))
	defer v.Close()

	if v.Zoom() != 2 {
		t.Errorf("Zoom() = %v, want 2", v.Zoom())
	}
	if v.State() != StateDefault {
		t.Errorf("State() = %v, want default", v.State())
	}
}
