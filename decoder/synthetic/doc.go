// Package synthetic provides a generated document for pageview.
//
// A Document describes pages by size only; its decoders paint every page
// procedurally: paper, a scaled emblem, placeholder text lines and a
// localized page label set in Go Regular. Rendering is deterministic, so a
// tile rendered on its own matches the same region of a whole-page render.
//
// It serves demos, benchmarks and tests that need a real Decoder without a
// document format:
//
//	doc := synthetic.Uniform(50, geom.Size{Width: 612, Height: 792},
//	    synthetic.WithLocale(language.German))
//	v.Load(ctx, doc)
package synthetic
