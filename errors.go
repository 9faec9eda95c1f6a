package pageview

import (
	"errors"
	"fmt"

	"github.com/gogpu/pageview/render"
)

var (
	// ErrClosed is returned by operations on a closed Viewer.
	ErrClosed = errors.New("pageview: viewer closed")

	// ErrNoDocument is returned by operations that need a loaded document.
	ErrNoDocument = errors.New("pageview: no document loaded")

	// ErrInvalidPage is returned for a page index outside the document.
	ErrInvalidPage = render.ErrInvalidPage

	// ErrEmptyRegion is returned when a tile maps to no pixels.
	ErrEmptyRegion = render.ErrEmptyRegion
)

// PageOpenError reports a page the decoder could not open. It is delivered
// once per page through PageErrorEvent; the page is skipped afterwards.
type PageOpenError = render.PageOpenError

// RenderError reports a tile that could not be rendered. It is logged and
// the tile is dropped.
type RenderError = render.RenderError

// DocumentLoadError reports a document that could not be opened. It is
// delivered through ErrorEvent and the viewer is reset.
type DocumentLoadError struct {
	Err error
}

func (e *DocumentLoadError) Error() string {
	return fmt.Sprintf("pageview: load document: %v", e.Err)
}

func (e *DocumentLoadError) Unwrap() error { return e.Err }

// LayoutError reports a page index outside the layout. Layout queries never
// fail; the index is clamped and the error is only logged.
type LayoutError struct {
	Page  int
	Pages int
}

func (e *LayoutError) Error() string {
	return fmt.Sprintf("pageview: page %d outside [0, %d)", e.Page, e.Pages)
}

func (e *LayoutError) Unwrap() error { return ErrInvalidPage }
