// Command pageview renders a view of a generated document to a PNG file.
//
// It loads a synthetic document into a pageview.Viewer, scrolls and zooms
// as requested, waits for the tiles and composites them the way a
// presentation layer would: thumbnails first, then tiles on top.
package main

import (
	"context"
	"flag"
	"image"
	"image/color"
	"image/png"
	"log"
	"log/slog"
	"os"
	"time"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/text/language"

	"github.com/gogpu/pageview"
	"github.com/gogpu/pageview/cache"
	"github.com/gogpu/pageview/decoder/synthetic"
	"github.com/gogpu/pageview/geom"
	"github.com/gogpu/pageview/layout"
	"github.com/gogpu/pageview/pixbuf"
)

func main() {
	var (
		width      = flag.Int("width", 800, "view width")
		height     = flag.Int("height", 1000, "view height")
		pages      = flag.Int("pages", 12, "number of pages")
		mixed      = flag.Bool("mixed", false, "alternate portrait and landscape pages")
		page       = flag.Int("page", 0, "page to jump to")
		scroll     = flag.Float64("scroll", 0, "additional scroll distance in pixels")
		zoom       = flag.Float64("zoom", 1, "zoom factor")
		horizontal = flag.Bool("horizontal", false, "scroll horizontally")
		spacing    = flag.Float64("spacing", 8, "gap between pages")
		full       = flag.Bool("full", false, "render tiles in full quality")
		locale     = flag.String("locale", "en", "locale of page labels")
		timeout    = flag.Duration("timeout", 30*time.Second, "render timeout")
		verbose    = flag.Bool("v", false, "log engine events")
		output     = flag.String("output", "pageview.png", "output file")
	)
	flag.Parse()

	if *verbose {
		pageview.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	tag, err := language.Parse(*locale)
	if err != nil {
		log.Fatalf("Invalid locale %q: %v", *locale, err)
	}
	letter := geom.Size{Width: 612, Height: 792}
	doc := synthetic.Uniform(*pages, letter, synthetic.WithLocale(tag))
	if *mixed {
		doc = synthetic.Mixed(*pages, letter, synthetic.WithLocale(tag))
	}

	opts := []pageview.Option{
		pageview.WithSpacing(*spacing),
		pageview.WithEventHandler(logEvent),
	}
	if *full {
		opts = append(opts, pageview.WithQuality(pixbuf.Full))
	}
	if *horizontal {
		opts = append(opts,
			pageview.WithAxis(layout.Horizontal),
			pageview.WithFitPolicy(layout.FitHeight))
	}

	v := pageview.New(*width, *height, opts...)
	defer v.Close()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if err := v.Load(ctx, doc); err != nil {
		log.Fatalf("Failed to load: %v", err)
	}
	if err := v.Wait(ctx); err != nil {
		log.Fatalf("Failed to load: %v", err)
	}
	if v.State() == pageview.StateError {
		log.Fatalf("Document could not be opened")
	}

	if err := navigate(v, *page, *zoom, *scroll, *horizontal); err != nil {
		log.Fatalf("Failed to navigate: %v", err)
	}
	if err := v.Wait(ctx); err != nil {
		log.Fatalf("Failed to render: %v", err)
	}

	img := composite(v)
	if err := savePNG(*output, img); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}

	st := v.Stats()
	log.Printf("View saved to %s (%dx%d): page %d/%d, %d tiles, %d thumbnails, %d rendered\n",
		*output, *width, *height, v.CurrentPage()+1, v.PageCount(),
		st.Cache.Active+st.Cache.Passive, st.Cache.Thumbnails, st.Worker.Rendered)
}

func navigate(v *pageview.Viewer, page int, zoom, scroll float64, horizontal bool) error {
	if err := v.JumpTo(page); err != nil {
		return err
	}
	if zoom != 1 {
		size := v.ViewSize()
		if err := v.ZoomCenteredTo(zoom, float64(size.Width)/2, float64(size.Height)/2); err != nil {
			return err
		}
	}
	if scroll == 0 {
		return nil
	}
	if horizontal {
		return v.MoveRelative(-scroll, 0)
	}
	return v.MoveRelative(0, -scroll)
}

func logEvent(e pageview.Event) {
	switch e := e.(type) {
	case pageview.ErrorEvent:
		log.Printf("Error: %v", e.Err)
	case pageview.PageErrorEvent:
		log.Printf("Page %d failed: %v", e.Page, e.Err)
	}
}

// composite draws the cached thumbnails and tiles at their view position.
func composite(v *pageview.Viewer) *image.RGBA {
	size := v.ViewSize()
	dst := image.NewRGBA(image.Rect(0, 0, size.Width, size.Height))
	xdraw.Draw(dst, dst.Bounds(), image.NewUniform(color.RGBA{R: 0x50, G: 0x50, B: 0x58, A: 0xff}), image.Point{}, xdraw.Src)

	l := v.Layout()
	if l == nil {
		return dst
	}
	x, y := v.Offset()
	zoom := v.Zoom()

	v.DrawTiles(func(tiles, thumbnails []*cache.Tile) {
		for _, t := range thumbnails {
			drawTile(dst, l, t, x, y, zoom, xdraw.ApproxBiLinear)
		}
		for _, t := range tiles {
			drawTile(dst, l, t, x, y, zoom, xdraw.NearestNeighbor)
		}
	})
	return dst
}

func drawTile(dst xdraw.Image, l *layout.Layout, t *cache.Tile, x, y, zoom float64, interp xdraw.Interpolator) {
	if t.Buffer == nil {
		return
	}
	px, py := pageOrigin(l, t.Page, x, y, zoom)
	ps := l.ScaledPageSize(t.Page, zoom)
	r := geom.Scale(ps.Width, ps.Height).PostTranslate(px, py).MapRect(t.Bounds)

	src := t.Buffer.Image()
	sb := src.Bounds()
	m := geom.Scale(r.Width()/float64(sb.Dx()), r.Height()/float64(sb.Dy())).
		PostTranslate(r.Left, r.Top)
	interp.Transform(dst, m.Aff3(), src, sb, xdraw.Over, nil)
}

// pageOrigin returns the top-left corner of page in view coordinates.
func pageOrigin(l *layout.Layout, page int, x, y, zoom float64) (float64, float64) {
	along, cross := l.PageOffset(page, zoom), l.SecondaryOffset(page, zoom)
	if l.Axis() == layout.Vertical {
		return x + cross, y + along
	}
	return x + along, y + cross
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
