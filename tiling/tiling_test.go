package tiling

import (
	"math"
	"reflect"
	"testing"

	"github.com/gogpu/pageview/geom"
	"github.com/gogpu/pageview/layout"
)

// threePages is 600x800, 600x400, 600x800 fitted to a 600x800 view with no
// spacing: page offsets 0, 800, 1200 and document length 2000.
func threePages() *layout.Layout {
	return layout.New(
		[]geom.Size{{Width: 600, Height: 800}, {Width: 600, Height: 400}, {Width: 600, Height: 800}},
		geom.Size{Width: 600, Height: 800},
		layout.Config{Policy: layout.FitWidth, Axis: layout.Vertical},
	)
}

func rng(page, rows, cols, r0, c0, r1, c1 int) Range {
	return Range{
		Page:        page,
		Grid:        Grid{Rows: rows, Cols: cols},
		LeftTop:     Cell{Row: r0, Col: c0},
		RightBottom: Cell{Row: r1, Col: c1},
	}
}

func TestGridSize(t *testing.T) {
	l := threePages()
	c := Calculator{TileSize: 256}
	tests := []struct {
		page int
		zoom float64
		want Grid
	}{
		{0, 1, Grid{Rows: 4, Cols: 3}},
		{1, 1, Grid{Rows: 2, Cols: 3}},
		{0, 2, Grid{Rows: 7, Cols: 5}},
		{5, 1, Grid{}},
	}
	for _, tt := range tests {
		if got := c.GridSize(l, tt.page, tt.zoom); got != tt.want {
			t.Errorf("GridSize(%d, %v) = %v, want %v", tt.page, tt.zoom, got, tt.want)
		}
	}

	// Exact multiples of the tile size must not round up.
	exact := layout.New([]geom.Size{{Width: 512, Height: 768}}, geom.Size{Width: 512, Height: 768}, layout.Config{})
	if got := c.GridSize(exact, 0, 1); got != (Grid{Rows: 3, Cols: 2}) {
		t.Errorf("GridSize(exact) = %v, want 3x2", got)
	}
}

func TestRanges(t *testing.T) {
	tests := []struct {
		name    string
		preload float64
		v       Viewport
		want    []Range
	}{
		{
			name:    "scrolled into pages 1 and 2",
			v:       Viewport{OffsetY: -1050, Zoom: 1, Width: 600, Height: 800},
			want:    []Range{rng(1, 2, 3, 1, 0, 1, 2), rng(2, 4, 3, 0, 0, 3, 2)},
		},
		{
			name:    "preload widens the leading edge",
			preload: 100,
			v:       Viewport{OffsetY: -1050, Zoom: 1, Width: 600, Height: 800},
			want:    []Range{rng(1, 2, 3, 0, 0, 1, 2), rng(2, 4, 3, 0, 0, 3, 2)},
		},
		{
			name: "zoomed and scrolled sideways",
			v:    Viewport{OffsetX: -300, Zoom: 2, Width: 600, Height: 800},
			want: []Range{rng(0, 7, 5, 0, 1, 3, 3)},
		},
		{
			name: "viewport larger than document",
			v:    Viewport{OffsetY: 500, Zoom: 1, Width: 600, Height: 3000},
			want: []Range{rng(0, 4, 3, 0, 0, 3, 2), rng(1, 2, 3, 0, 0, 1, 2), rng(2, 4, 3, 0, 0, 3, 2)},
		},
	}

	l := threePages()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Calculator{TileSize: 256, Preload: tt.preload}
			got := c.Ranges(l, tt.v)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Ranges() =\n  %v\nwant\n  %v", got, tt.want)
			}
		})
	}
}

func TestRangesDocumentStart(t *testing.T) {
	l := threePages()
	c := Calculator{TileSize: 256}
	got := c.Ranges(l, Viewport{Zoom: 1, Width: 600, Height: 700})
	if len(got) != 1 {
		t.Fatalf("Ranges() returned %d ranges, want 1: %v", len(got), got)
	}
	if got[0] != rng(0, 4, 3, 0, 0, 3, 2) {
		t.Errorf("Ranges()[0] = %v", got[0])
	}
}

func TestRangesDocumentEnd(t *testing.T) {
	l := threePages()
	c := Calculator{TileSize: 256}
	got := c.Ranges(l, Viewport{OffsetY: -1200, Zoom: 1, Width: 600, Height: 800})
	last := got[len(got)-1]
	if last.Page != 2 || last.RightBottom.Row != last.Grid.Rows-1 {
		t.Errorf("last range = %v, want page 2 through its last row", last)
	}
	for _, r := range got {
		if r.RightBottom.Row >= r.Grid.Rows || r.RightBottom.Col >= r.Grid.Cols {
			t.Errorf("range %v exceeds its grid", r)
		}
	}
}

func TestRangesHorizontal(t *testing.T) {
	l := layout.New(
		[]geom.Size{{Width: 400, Height: 800}, {Width: 400, Height: 400}},
		geom.Size{Width: 1000, Height: 800},
		layout.Config{Policy: layout.FitHeight, Axis: layout.Horizontal},
	)
	c := Calculator{TileSize: 256}
	got := c.Ranges(l, Viewport{Zoom: 1, Width: 1000, Height: 800})
	want := []Range{rng(0, 4, 2, 0, 0, 3, 1), rng(1, 2, 2, 0, 0, 1, 1)}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Ranges() = %v, want %v", got, want)
	}
}

func TestRangesIdempotent(t *testing.T) {
	l := threePages()
	c := Calculator{TileSize: 256, Preload: 20}
	for _, off := range []float64{0, -10, -333.3, -799, -800, -1200, -5000, 200} {
		v := Viewport{OffsetY: off, Zoom: 1.5, Width: 600, Height: 800}
		a := c.Ranges(l, v)
		b := c.Ranges(l, v)
		if !reflect.DeepEqual(a, b) {
			t.Errorf("offset %v: Ranges not idempotent: %v vs %v", off, a, b)
		}
	}
}

func TestRangesEmpty(t *testing.T) {
	c := Calculator{TileSize: 256}
	if got := c.Ranges(nil, Viewport{Zoom: 1}); got != nil {
		t.Errorf("Ranges(nil) = %v, want nil", got)
	}
	empty := layout.New(nil, geom.Size{Width: 10, Height: 10}, layout.Config{})
	if got := c.Ranges(empty, Viewport{Zoom: 1, Width: 10, Height: 10}); got != nil {
		t.Errorf("Ranges(empty) = %v, want nil", got)
	}
	if got := c.Ranges(threePages(), Viewport{Zoom: 0, Width: 10, Height: 10}); got != nil {
		t.Errorf("Ranges(zoom 0) = %v, want nil", got)
	}
}

func TestParts(t *testing.T) {
	c := Calculator{TileSize: 256}
	parts := c.Parts(rng(0, 4, 3, 0, 0, 3, 2))
	if len(parts) != 12 {
		t.Fatalf("len(parts) = %d, want 12", len(parts))
	}

	first := parts[0]
	if first.Bounds != geom.R(0, 0, 1.0/3, 0.25) {
		t.Errorf("first bounds = %v", first.Bounds)
	}
	for _, p := range parts {
		if math.Abs(p.Width-256) > 1e-9 || math.Abs(p.Height-256) > 1e-9 {
			t.Errorf("part %v size = %vx%v, want 256x256", p.Cell, p.Width, p.Height)
		}
		if p.Bounds.Right > 1 || p.Bounds.Bottom > 1 {
			t.Errorf("part %v bounds %v exceed the page", p.Cell, p.Bounds)
		}
	}
	last := parts[len(parts)-1]
	if last.Cell != (Cell{Row: 3, Col: 2}) {
		t.Errorf("last cell = %v, want (3,2)", last.Cell)
	}
	if math.Abs(last.Bounds.Right-1) > 1e-9 || math.Abs(last.Bounds.Bottom-1) > 1e-9 {
		t.Errorf("last bounds = %v, want to end at (1,1)", last.Bounds)
	}
}

func TestPlanLimit(t *testing.T) {
	l := threePages()
	c := Calculator{TileSize: 256}
	ranges := c.Ranges(l, Viewport{OffsetY: -1050, Zoom: 1, Width: 600, Height: 800})

	all := c.Plan(ranges, 0)
	if len(all) != 3+12 {
		t.Errorf("len(Plan) = %d, want 15", len(all))
	}
	limited := c.Plan(ranges, 5)
	if len(limited) != 5 {
		t.Errorf("len(Plan(5)) = %d, want 5", len(limited))
	}
	if !reflect.DeepEqual(limited, all[:5]) {
		t.Error("limited plan is not a prefix of the full plan")
	}
}

func TestThumbnail(t *testing.T) {
	l := threePages()
	p := Thumbnail(l, 1, DefaultThumbnailRatio)
	if !p.Thumbnail || p.Bounds != geom.Unit || p.Page != 1 {
		t.Errorf("Thumbnail = %+v", p)
	}
	if math.Abs(p.Width-180) > 1e-9 || math.Abs(p.Height-120) > 1e-9 {
		t.Errorf("Thumbnail size = %vx%v, want 180x120", p.Width, p.Height)
	}
	if z := Thumbnail(l, 9, DefaultThumbnailRatio); z.Width != 0 || z.Height != 0 {
		t.Errorf("Thumbnail(invalid) size = %vx%v, want 0x0", z.Width, z.Height)
	}
}
