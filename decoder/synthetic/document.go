package synthetic

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/pageview"
	"github.com/gogpu/pageview/geom"
)

var (
	// ErrBrokenPage is returned when opening a page marked broken.
	ErrBrokenPage = errors.New("synthetic: broken page")

	// ErrPageNotOpen is returned when rendering a page that was not opened.
	ErrPageNotOpen = errors.New("synthetic: page not open")

	// ErrClosed is returned by a closed decoder.
	ErrClosed = errors.New("synthetic: decoder closed")
)

// Document describes a generated document. It is immutable and implements
// pageview.Source; every Open returns a fresh decoder.
type Document struct {
	sizes  []geom.Size
	broken map[int]bool
	locale language.Tag
}

// Option configures a Document.
type Option func(*Document)

// WithLocale sets the locale used to format page labels.
func WithLocale(tag language.Tag) Option {
	return func(d *Document) {
		d.locale = tag
	}
}

// WithBrokenPages marks pages that fail to open.
func WithBrokenPages(pages ...int) Option {
	return func(d *Document) {
		for _, p := range pages {
			d.broken[p] = true
		}
	}
}

// New creates a document with the given page sizes.
func New(sizes []geom.Size, opts ...Option) *Document {
	d := &Document{
		sizes:  append([]geom.Size(nil), sizes...),
		broken: make(map[int]bool),
		locale: language.English,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Uniform creates a document of n pages of the same size.
func Uniform(n int, size geom.Size, opts ...Option) *Document {
	sizes := make([]geom.Size, max(n, 0))
	for i := range sizes {
		sizes[i] = size
	}
	return New(sizes, opts...)
}

// Mixed creates a document of n pages alternating between portrait and
// landscape orientation of size.
func Mixed(n int, size geom.Size, opts ...Option) *Document {
	sizes := make([]geom.Size, max(n, 0))
	for i := range sizes {
		if i%2 == 1 {
			sizes[i] = geom.Size{Width: size.Height, Height: size.Width}
		} else {
			sizes[i] = size
		}
	}
	return New(sizes, opts...)
}

// PageCount returns the number of pages.
func (d *Document) PageCount() int { return len(d.sizes) }

// Open implements pageview.Source.
func (d *Document) Open(ctx context.Context) (pageview.Decoder, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return d.NewDecoder()
}

// NewDecoder returns a decoder for the document.
func (d *Document) NewDecoder() (*Decoder, error) {
	base, _ := d.locale.Base()
	ts, err := newTypesetter(base.String(), fontHinting)
	if err != nil {
		return nil, fmt.Errorf("synthetic: load font: %w", err)
	}
	return &Decoder{
		doc:     d,
		printer: message.NewPrinter(d.locale),
		ts:      ts,
		open:    make(map[int]bool),
	}, nil
}

// label returns the footer text of page.
func (d *Document) label(p *message.Printer, page int) string {
	return p.Sprintf("Page %d of %d", page+1, len(d.sizes))
}
