package render

import (
	"errors"
	"fmt"

	"github.com/gogpu/pageview/geom"
)

var (
	// ErrClosed is returned when submitting to a closed worker.
	ErrClosed = errors.New("render: worker closed")

	// ErrInvalidPage is returned for a page the decoder does not have.
	ErrInvalidPage = errors.New("render: invalid page")

	// ErrEmptyRegion is returned when a request maps to no pixels.
	ErrEmptyRegion = errors.New("render: empty region")

	// ErrPanic wraps a panic raised by the decoder.
	ErrPanic = errors.New("render: decoder panic")

	// errPageErrored marks requests skipped because their page failed to
	// open earlier. It is never reported.
	errPageErrored = errors.New("render: page errored")
)

// PageOpenError reports a page that could not be opened. The page stays
// errored for the rest of the session.
type PageOpenError struct {
	Page int
	Err  error
}

func (e *PageOpenError) Error() string {
	return fmt.Sprintf("render: open page %d: %v", e.Page, e.Err)
}

func (e *PageOpenError) Unwrap() error { return e.Err }

// RenderError reports a tile that could not be rendered.
type RenderError struct {
	Page   int
	Bounds geom.Rect
	Err    error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render: page %d region %v: %v", e.Page, e.Bounds, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }
