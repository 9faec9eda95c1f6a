// Package layout maps a document's page sizes onto a one-dimensional scroll
// axis.
//
// A Layout is built once per document load (and rebuilt when the view is
// resized) from the intrinsic page sizes reported by the decoder, a fit
// policy and spacing rules. Every page is fitted at zoom 1 and the
// resulting sizes, offsets and spacing are stored; queries at other zoom
// levels only multiply, so they are O(1) except PageAtOffset, which walks
// the pages.
//
// Layout queries are issued continuously while scrolling and never fail:
// an out-of-range page index yields a zero result instead of an error.
//
// A Layout is immutable and safe for concurrent use.
package layout
