package pageview

import "github.com/gogpu/pageview/geom"

// Event is a notification from a Viewer. The concrete types are LoadEvent,
// ErrorEvent, PageErrorEvent, RenderEvent, TileReadyEvent, PageChangeEvent
// and PageScrollEvent.
//
// Events are delivered without holding viewer locks, so handlers may call
// back into the Viewer, except Load and Close, which wait for the render
// worker. Events arrive on the goroutine that caused them: the caller's, the
// document loader's or the render worker's.
type Event interface {
	event()
}

// LoadEvent is sent once a document is open and laid out.
type LoadEvent struct {
	Pages int
}

// ErrorEvent is sent when a document fails to load. Err is a
// *DocumentLoadError.
type ErrorEvent struct {
	Err error
}

// PageErrorEvent is sent once for every page that fails to open.
type PageErrorEvent struct {
	Page int
	Err  error
}

// RenderEvent is sent when the first tile of a loaded document arrives.
type RenderEvent struct {
	Pages int
}

// TileReadyEvent is sent for every tile entering the cache; the view should
// be redrawn.
type TileReadyEvent struct {
	Page      int
	Bounds    geom.Rect
	Thumbnail bool
}

// PageChangeEvent is sent when the page at the view center changes.
type PageChangeEvent struct {
	Page  int
	Pages int
}

// PageScrollEvent is sent after every move. Position is the scroll progress
// in [0, 1].
type PageScrollEvent struct {
	Page     int
	Position float64
}

func (LoadEvent) event()       {}
func (ErrorEvent) event()      {}
func (PageErrorEvent) event()  {}
func (RenderEvent) event()     {}
func (TileReadyEvent) event()  {}
func (PageChangeEvent) event() {}
func (PageScrollEvent) event() {}
