package pageview

import (
	"context"

	"github.com/gogpu/pageview/render"
)

// Decoder rasterizes document pages. See render.Decoder.
type Decoder = render.Decoder

// Source opens a document.
type Source interface {
	Open(ctx context.Context) (Decoder, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context) (Decoder, error)

// Open calls f.
func (f SourceFunc) Open(ctx context.Context) (Decoder, error) { return f(ctx) }
