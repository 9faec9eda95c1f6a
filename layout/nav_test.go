package layout

import "testing"

func TestFindFocusPage(t *testing.T) {
	l := threePages(0) // offsets 0, 800, 1200; doc length 2000
	tests := []struct {
		name   string
		offset float64
		want   int
	}{
		{"document start", 0, 0},
		{"near start", -0.5, 0},
		{"center on page 1", -600, 1},
		{"document end", -1200, 2},
		{"center on page 2", -1000, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := l.FindFocusPage(tt.offset, 800, 1); got != tt.want {
				t.Errorf("FindFocusPage(%v) = %d, want %d", tt.offset, got, tt.want)
			}
		})
	}
}

func TestFindSnapEdge(t *testing.T) {
	l := threePages(0)
	tests := []struct {
		name       string
		page       int
		offset     float64
		viewLength float64
		want       SnapEdge
	}{
		{"page fits view", 1, -700, 800, SnapCenter},
		{"leading edge visible", 0, 0, 500, SnapStart},
		{"trailing edge visible", 0, -400, 500, SnapEnd},
		{"inside page", 0, -100, 500, SnapNone},
		{"invalid page", 9, 0, 500, SnapNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := l.FindSnapEdge(tt.page, tt.offset, tt.viewLength, 1); got != tt.want {
				t.Errorf("FindSnapEdge = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSnapOffset(t *testing.T) {
	l := threePages(0)
	if got := l.SnapOffset(1, SnapStart, 500, 1); got != 800 {
		t.Errorf("SnapOffset(start) = %v, want 800", got)
	}
	if got := l.SnapOffset(1, SnapCenter, 800, 1); got != 800-400+200 {
		t.Errorf("SnapOffset(center) = %v, want 600", got)
	}
	if got := l.SnapOffset(0, SnapEnd, 500, 1); got != 300 {
		t.Errorf("SnapOffset(end) = %v, want 300", got)
	}
}

func TestPageMap(t *testing.T) {
	all := NewPageMap(nil, 3)
	if all.Len() != 3 || all.DocumentPage(2) != 2 || all.DocumentPage(3) != -1 {
		t.Errorf("identity map broken: len=%d page2=%d page3=%d", all.Len(), all.DocumentPage(2), all.DocumentPage(3))
	}

	sel := NewPageMap([]int{0, 2, 2, 8}, 5)
	tests := []struct {
		in, want int
	}{
		{0, 0}, {1, 2}, {2, 2}, {3, -1}, {4, -1}, {-1, -1},
	}
	for _, tt := range tests {
		if got := sel.DocumentPage(tt.in); got != tt.want {
			t.Errorf("DocumentPage(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
	if sel.Len() != 4 {
		t.Errorf("Len() = %d, want 4", sel.Len())
	}
	if got := sel.ValidPage(10); got != 3 {
		t.Errorf("ValidPage(10) = %d, want 3", got)
	}
	if got := sel.ValidPage(-2); got != 0 {
		t.Errorf("ValidPage(-2) = %d, want 0", got)
	}
}
